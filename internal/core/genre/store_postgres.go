package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mixlist/mixlist/internal/platform/database/schema"
	"github.com/mixlist/mixlist/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) List(context context.Context) ([]*Genre, error) {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, g.%s, g.%s, u.%s
		FROM %s g
		LEFT JOIN %s u ON g.%s = u.%s
		ORDER BY g.%s ASC
	`,
		schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.CreatedBy, schema.RefGenre.CreatedAt,
		schema.UserAccount.Username,
		schema.RefGenre.Table, schema.UserAccount.Table,
		schema.RefGenre.CreatedBy, schema.UserAccount.ID,
		schema.RefGenre.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres")
	}
	defer rows.Close()

	genres := make([]*Genre, 0)
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt, &g.CreatedByName); err != nil {
			return nil, dberr.Wrap(err, "scan_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Genre, error) {
	query := fmt.Sprintf(`
		SELECT g.%s, g.%s, g.%s, g.%s, u.%s,
		       (SELECT COUNT(DISTINCT pg.%s) FROM %s pg WHERE pg.%s = g.%s)
		FROM %s g
		LEFT JOIN %s u ON g.%s = u.%s
		WHERE g.%s = $1
	`,
		schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.CreatedBy, schema.RefGenre.CreatedAt,
		schema.UserAccount.Username,
		schema.PlaylistGenre.PlaylistID, schema.PlaylistGenre.Table,
		schema.PlaylistGenre.GenreID, schema.RefGenre.ID,
		schema.RefGenre.Table, schema.UserAccount.Table,
		schema.RefGenre.CreatedBy, schema.UserAccount.ID,
		schema.RefGenre.ID,
	)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt, &g.CreatedByName, &g.PlaylistCount,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_id")
	}

	return g, nil
}

func (repository *PostgresRepository) FindByName(context context.Context, name string) (*Genre, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s, %s FROM %s WHERE LOWER(%s) = LOWER($1)`,
		schema.RefGenre.ID, schema.RefGenre.Name, schema.RefGenre.CreatedBy, schema.RefGenre.CreatedAt,
		schema.RefGenre.Table, schema.RefGenre.Name,
	)

	g := &Genre{}
	err := repository.db.QueryRow(context, query, name).Scan(&g.ID, &g.Name, &g.CreatedBy, &g.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_genre_by_name")
	}

	return g, nil
}

func (repository *PostgresRepository) Create(context context.Context, genre *Genre) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		RETURNING %s, %s
	`,
		schema.RefGenre.Table, schema.RefGenre.Name, schema.RefGenre.CreatedBy,
		schema.RefGenre.ID, schema.RefGenre.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, genre.Name, genre.CreatedBy).
		Scan(&genre.ID, &genre.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_genre")
	}

	return nil
}

func (repository *PostgresRepository) UpdateName(context context.Context, id int64, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.RefGenre.Table, schema.RefGenre.Name, schema.RefGenre.ID)

	tag, err := repository.db.Exec(context, query, name, id)
	if err != nil {
		return dberr.Wrap(err, "update_genre")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.RefGenre.Table, schema.RefGenre.ID)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_genre")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *PostgresRepository) CountPlaylists(context context.Context, id int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.PlaylistGenre.Table, schema.PlaylistGenre.GenreID)

	var count int
	if err := repository.db.QueryRow(context, query, id).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_genre_playlists")
	}

	return count, nil
}
