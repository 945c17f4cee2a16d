// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mixlist/mixlist/internal/platform/dberr"
)

// playlistSelect is the enriched projection shared by every playlist read:
// owner username, like/song counts, and the genre set as a JSON array to
// avoid N+1 follow-up queries.
const playlistSelect = `
	SELECT p.id, p.ownerid, p.title, p.description, p.coverurl, p.ispublic,
	       p.createdat, p.updatedat,
	       u.username,
	       (SELECT COUNT(*) FROM core.playlistlike pl WHERE pl.playlistid = p.id) AS likes_count,
	       (SELECT COUNT(*) FROM core.song s WHERE s.playlistid = p.id) AS songs_count,
	       COALESCE((
	           SELECT json_agg(json_build_object('genre_id', g.id, 'name', g.name))
	           FROM core.genre g
	           JOIN core.playlistgenre pg ON g.id = pg.genreid
	           WHERE pg.playlistid = p.id
	       ), '[]') AS genres
	FROM core.playlist p
	LEFT JOIN users.account u ON p.ownerid = u.id
`

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed playlist store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

// rowScanner is satisfied by both pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanPlaylist hydrates one enriched playlist row. extra receives any
// trailing columns (e.g. window-function totals) appended by the caller.
func scanPlaylist(row rowScanner, extra ...any) (*Playlist, error) {
	p := &Playlist{}
	var genresJSON []byte

	dest := []any{
		&p.ID, &p.OwnerID, &p.Title, &p.Description, &p.CoverURL, &p.IsPublic,
		&p.CreatedAt, &p.UpdatedAt,
		&p.OwnerUsername, &p.LikesCount, &p.SongsCount, &genresJSON,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(genresJSON, &p.Genres); err != nil {
		return nil, fmt.Errorf("postgres: failed to unmarshal genres: %w", err)
	}

	return p, nil
}

func (repository *postgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Playlist, int, error) {
	var queryBuilder strings.Builder
	var args []any
	argID := 1

	// Same projection as playlistSelect plus a window-function total, so the
	// count comes back without a second query.
	queryBuilder.WriteString(`
		SELECT p.id, p.ownerid, p.title, p.description, p.coverurl, p.ispublic,
		       p.createdat, p.updatedat,
		       u.username,
		       (SELECT COUNT(*) FROM core.playlistlike pl WHERE pl.playlistid = p.id) AS likes_count,
		       (SELECT COUNT(*) FROM core.song s WHERE s.playlistid = p.id) AS songs_count,
		       COALESCE((
		           SELECT json_agg(json_build_object('genre_id', g.id, 'name', g.name))
		           FROM core.genre g
		           JOIN core.playlistgenre pg ON g.id = pg.genreid
		           WHERE pg.playlistid = p.id
		       ), '[]') AS genres,
		       COUNT(*) OVER() AS total_count
		FROM core.playlist p
		LEFT JOIN users.account u ON p.ownerid = u.id
		WHERE 1=1`)

	if filter.IsPublic != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.ispublic = $%d", argID))
		args = append(args, *filter.IsPublic)
		argID++
	}

	if len(filter.GenreIDs) > 0 {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND p.id IN (SELECT playlistid FROM core.playlistgenre WHERE genreid = ANY($%d))", argID))
		args = append(args, filter.GenreIDs)
		argID++
	}

	if filter.OwnerID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND p.ownerid = $%d", argID))
		args = append(args, *filter.OwnerID)
		argID++
	}

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(
			" AND (p.title ILIKE $%d OR p.description ILIKE $%d)", argID, argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	sort := "p.createdat"
	switch filter.Sort {
	case "likes":
		sort = "likes_count"
	case "title":
		sort = "p.title"
	case "created_at":
		sort = "p.createdat"
	}

	sortDir := "DESC"
	if strings.EqualFold(filter.SortDir, "asc") {
		sortDir = "ASC"
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s", sort, sortDir))
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_playlists")
	}
	defer rows.Close()

	playlists := make([]*Playlist, 0)
	total := 0

	for rows.Next() {
		p, err := scanPlaylist(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_playlist")
		}
		playlists = append(playlists, p)
	}

	return playlists, total, nil
}

func (repository *postgresRepository) FindByID(context context.Context, id int64) (*Playlist, error) {
	query := playlistSelect + " WHERE p.id = $1"

	p, err := scanPlaylist(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_playlist_by_id")
	}

	return p, nil
}

func (repository *postgresRepository) Create(context context.Context, playlist *Playlist, genreIDs []int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	query := `
		INSERT INTO core.playlist (ownerid, title, description, coverurl, ispublic)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, createdat, updatedat
	`

	err = transaction.QueryRow(context, query,
		playlist.OwnerID, playlist.Title, playlist.Description, playlist.CoverURL, playlist.IsPublic,
	).Scan(&playlist.ID, &playlist.CreatedAt, &playlist.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_playlist")
	}

	for _, genreID := range genreIDs {
		_, err := transaction.Exec(context,
			`INSERT INTO core.playlistgenre (playlistid, genreid) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			playlist.ID, genreID)
		if err != nil {
			return dberr.Wrap(err, "link_playlist_genre")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit create transaction: %w", err)
	}

	return nil
}

func (repository *postgresRepository) Update(context context.Context, playlist *Playlist) error {
	query := `
		UPDATE core.playlist
		SET title = $1, description = $2, coverurl = $3, ispublic = $4, updatedat = NOW()
		WHERE id = $5
	`

	tag, err := repository.pool.Exec(context, query,
		playlist.Title, playlist.Description, playlist.CoverURL, playlist.IsPublic, playlist.ID)
	if err != nil {
		return dberr.Wrap(err, "update_playlist")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *postgresRepository) ReplaceGenres(context context.Context, playlistID int64, genreIDs []int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	if _, err := transaction.Exec(context,
		`DELETE FROM core.playlistgenre WHERE playlistid = $1`, playlistID); err != nil {
		return dberr.Wrap(err, "clear_playlist_genres")
	}

	for _, genreID := range genreIDs {
		_, err := transaction.Exec(context,
			`INSERT INTO core.playlistgenre (playlistid, genreid) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			playlistID, genreID)
		if err != nil {
			return dberr.Wrap(err, "link_playlist_genre")
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit genre transaction: %w", err)
	}

	return nil
}

// Delete removes the playlist and all dependent rows atomically. A failure on
// any table rolls the whole removal back, so no orphaned likes or songs can
// survive a partial delete.
func (repository *postgresRepository) Delete(context context.Context, id int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	dependents := []string{
		`DELETE FROM core.song WHERE playlistid = $1`,
		`DELETE FROM core.playlistgenre WHERE playlistid = $1`,
		`DELETE FROM core.playlistlike WHERE playlistid = $1`,
		`DELETE FROM core.playlistfavorite WHERE playlistid = $1`,
		`DELETE FROM core.playlistclick WHERE playlistid = $1`,
	}
	for _, query := range dependents {
		if _, err := transaction.Exec(context, query, id); err != nil {
			return dberr.Wrap(err, "delete_playlist_dependents")
		}
	}

	tag, err := transaction.Exec(context, `DELETE FROM core.playlist WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_playlist")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit delete transaction: %w", err)
	}

	return nil
}
