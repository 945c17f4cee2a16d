// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package audit

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mixlist/mixlist/internal/platform/database/schema"
	"github.com/mixlist/mixlist/internal/platform/dberr"
)

// systemActor is the display name used when an entry has no actor.
const systemActor = "System"

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Insert(ctx context.Context, entry *Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s, %s
	`,
		schema.SystemAuditLog.Table,
		schema.SystemAuditLog.ActorID, schema.SystemAuditLog.Action, schema.SystemAuditLog.EntityType,
		schema.SystemAuditLog.EntityID, schema.SystemAuditLog.Details,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.CreatedAt,
	)

	err := repository.db.QueryRow(ctx, query,
		entry.ActorID, entry.Action, entry.EntityType, entry.TargetID, entry.Details,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert_audit_entry")
	}

	return nil
}

// buildFilter renders the WHERE clause for a [Filter], returning the clause
// and its positional arguments. Argument numbering starts at $1.
func buildFilter(filter Filter) (string, []any) {
	clause := ""
	args := make([]any, 0, 2)

	if filter.Action != "" {
		args = append(args, string(filter.Action))
		clause += " WHERE a." + schema.SystemAuditLog.Action + " = $" + strconv.Itoa(len(args))
	}

	if filter.ActorID != nil {
		args = append(args, *filter.ActorID)
		if clause == "" {
			clause += " WHERE "
		} else {
			clause += " AND "
		}
		clause += "a." + schema.SystemAuditLog.ActorID + " = $" + strconv.Itoa(len(args))
	}

	return clause, args
}

func (repository *PostgresRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*EntryWithActor, int, error) {
	whereClause, args := buildFilter(filter)

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s a%s`, schema.SystemAuditLog.Table, whereClause)

	total := 0
	if err := repository.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_audit_entries")
	}

	// Descending timestamp with a descending ID tie-break keeps pages stable
	// when many entries share the same timestamp.
	listQuery := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, u.%s
		FROM %s a
		LEFT JOIN %s u ON a.%s = u.%s
		%s
		ORDER BY a.%s DESC, a.%s DESC
		LIMIT $%d OFFSET $%d
	`,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.ActorID, schema.SystemAuditLog.Action,
		schema.SystemAuditLog.EntityType, schema.SystemAuditLog.EntityID, schema.SystemAuditLog.Details,
		schema.SystemAuditLog.CreatedAt, schema.UserAccount.Username,
		schema.SystemAuditLog.Table,
		schema.UserAccount.Table, schema.SystemAuditLog.ActorID, schema.UserAccount.ID,
		whereClause,
		schema.SystemAuditLog.CreatedAt, schema.SystemAuditLog.ID,
		len(args)+1, len(args)+2,
	)

	rows, err := repository.db.Query(ctx, listQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_audit_entries")
	}
	defer rows.Close()

	entries := make([]*EntryWithActor, 0, limit)
	for rows.Next() {
		entry := &EntryWithActor{}
		var username *string

		err := rows.Scan(
			&entry.ID, &entry.ActorID, &entry.Action, &entry.EntityType,
			&entry.TargetID, &entry.Details, &entry.CreatedAt, &username,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_audit_entry")
		}

		entry.Username = resolveUsername(entry.ActorID, username)
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (repository *PostgresRepository) FindByID(ctx context.Context, id int64) (*EntryWithActor, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, a.%s, u.%s
		FROM %s a
		LEFT JOIN %s u ON a.%s = u.%s
		WHERE a.%s = $1
	`,
		schema.SystemAuditLog.ID, schema.SystemAuditLog.ActorID, schema.SystemAuditLog.Action,
		schema.SystemAuditLog.EntityType, schema.SystemAuditLog.EntityID, schema.SystemAuditLog.Details,
		schema.SystemAuditLog.CreatedAt, schema.UserAccount.Username,
		schema.SystemAuditLog.Table,
		schema.UserAccount.Table, schema.SystemAuditLog.ActorID, schema.UserAccount.ID,
		schema.SystemAuditLog.ID,
	)

	entry := &EntryWithActor{}
	var username *string

	err := repository.db.QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.ActorID, &entry.Action, &entry.EntityType,
		&entry.TargetID, &entry.Details, &entry.CreatedAt, &username,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_audit_entry")
	}

	entry.Username = resolveUsername(entry.ActorID, username)
	return entry, nil
}

func (repository *PostgresRepository) CountByAction(ctx context.Context) ([]*ActionCount, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) AS count
		FROM %s
		GROUP BY %s
		ORDER BY count DESC
	`,
		schema.SystemAuditLog.Action, schema.SystemAuditLog.Table, schema.SystemAuditLog.Action,
	)

	rows, err := repository.db.Query(ctx, query)
	if err != nil {
		return nil, dberr.Wrap(err, "count_audit_actions")
	}
	defer rows.Close()

	counts := make([]*ActionCount, 0)
	for rows.Next() {
		row := &ActionCount{}
		if err := rows.Scan(&row.Action, &row.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_audit_action_count")
		}
		counts = append(counts, row)
	}

	return counts, nil
}

func (repository *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]*EntryWithActor, error) {
	entries, _, err := repository.List(ctx, Filter{}, limit, 0)
	return entries, err
}

// resolveUsername applies the display rules for the actor column.
func resolveUsername(actorID *int64, username *string) string {
	switch {
	case username != nil:
		return *username
	case actorID != nil:
		// Account deleted after the fact: surface the raw ID.
		return fmt.Sprintf("user#%d", *actorID)
	default:
		return systemActor
	}
}
