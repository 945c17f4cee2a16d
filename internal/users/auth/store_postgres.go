// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mixlist/mixlist/internal/platform/database/schema"
	"github.com/mixlist/mixlist/internal/platform/dberr"
)

// # User Repository (PostgreSQL)

// PostgresUserRepository implements UserRepository backed by users.account.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// userSelectColumns renders the canonical SELECT column list for account rows.
func userSelectColumns() string {
	t := schema.UserAccount
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.Username, t.Email, t.Password, t.Role, t.AvatarURL,
		t.LastLoginAt, t.CreatedAt, t.UpdatedAt,
	)
}

// scanUser hydrates one account row.
func scanUser(row interface{ Scan(...any) error }) (*User, error) {
	user := &User{}
	var avatarURL *string

	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Role,
		&avatarURL, &user.LastLoginAt, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByID(ctx context.Context, id int64) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userSelectColumns(), schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_id")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = LOWER($1)`,
		userSelectColumns(), schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := scanUser(repository.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_email")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userSelectColumns(), schema.UserAccount.Table, schema.UserAccount.Username)

	user, err := scanUser(repository.db.QueryRow(ctx, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "find_user_by_username")
	}
	return user, nil
}

func (repository *PostgresUserRepository) ListAll(ctx context.Context) ([]*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		userSelectColumns(), schema.UserAccount.Table, schema.UserAccount.ID)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	users := make([]*User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		users = append(users, user)
	}

	return users, nil
}

func (repository *PostgresUserRepository) Create(ctx context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, LOWER($2), $3, $4, $5)
		RETURNING %s, %s, %s
	`,
		t.Table, t.Username, t.Email, t.Password, t.Role, t.AvatarURL,
		t.ID, t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role, user.AvatarURL,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}

	return nil
}

func (repository *PostgresUserRepository) Update(ctx context.Context, user *User) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = LOWER($2), %s = $3, %s = NOW()
		WHERE %s = $4
		RETURNING %s
	`,
		t.Table, t.Username, t.Email, t.AvatarURL, t.UpdatedAt, t.ID, t.UpdatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		user.Username, user.Email, user.AvatarURL, user.ID,
	).Scan(&user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}

	return nil
}

func (repository *PostgresUserRepository) UpdatePassword(ctx context.Context, userID int64, newHash string) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		t.Table, t.Password, t.UpdatedAt, t.ID)

	tag, err := repository.db.Exec(ctx, query, newHash, userID)
	if err != nil {
		return dberr.Wrap(err, "update_user_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresUserRepository) UpdateRole(ctx context.Context, userID int64, role int) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		t.Table, t.Role, t.UpdatedAt, t.ID)

	tag, err := repository.db.Exec(ctx, query, role, userID)
	if err != nil {
		return dberr.Wrap(err, "update_user_role")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresUserRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	t := schema.UserAccount
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1`,
		t.Table, t.LastLoginAt, t.ID)

	if _, err := repository.db.Exec(ctx, query, userID); err != nil {
		return dberr.Wrap(err, "touch_last_login")
	}

	return nil
}

func (repository *PostgresUserRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.ID)

	tag, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// # Session Repository (PostgreSQL)

// PostgresSessionRepository implements SessionRepository backed by users.session.
type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (repository *PostgresSessionRepository) Create(ctx context.Context, session *Session) error {
	t := schema.UserSession
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		t.Table, t.UserID, t.TokenHash, t.IPAddress, t.UserAgent, t.ExpiresAt,
		t.ID, t.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		session.UserID, session.TokenHash, session.IPAddress, session.UserAgent, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_session")
	}

	return nil
}

func (repository *PostgresSessionRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*Session, error) {
	t := schema.UserSession
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		t.ID, t.UserID, t.TokenHash, t.IPAddress, t.UserAgent, t.ExpiresAt, t.CreatedAt,
		t.Table, t.TokenHash,
	)

	session := &Session{}
	err := repository.db.QueryRow(ctx, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash,
		&session.IPAddress, &session.UserAgent, &session.ExpiresAt, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_session_by_token_hash")
	}

	return session, nil
}

func (repository *PostgresSessionRepository) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	t := schema.UserSession
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.TokenHash)

	// Intentionally ignores the affected-row count: logout is idempotent.
	if _, err := repository.db.Exec(ctx, query, tokenHash); err != nil {
		return dberr.Wrap(err, "delete_session")
	}

	return nil
}

func (repository *PostgresSessionRepository) DeleteAllForUser(ctx context.Context, userID int64) error {
	t := schema.UserSession
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, t.Table, t.UserID)

	if _, err := repository.db.Exec(ctx, query, userID); err != nil {
		return dberr.Wrap(err, "delete_user_sessions")
	}

	return nil
}

func (repository *PostgresSessionRepository) DeleteExpired(ctx context.Context) error {
	t := schema.UserSession
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s < NOW()`, t.Table, t.ExpiresAt)

	if _, err := repository.db.Exec(ctx, query); err != nil {
		return dberr.Wrap(err, "delete_expired_sessions")
	}

	return nil
}
