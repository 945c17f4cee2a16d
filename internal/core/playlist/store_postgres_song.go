// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mixlist/mixlist/internal/platform/dberr"
)

const songColumns = `id, playlistid, title, artist, url, platform, durationsecs, thumbnailurl, position, addedat`

type postgresSongRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSongRepository constructs a PostgreSQL backed song store.
func NewPostgresSongRepository(pool *pgxpool.Pool) SongRepository {
	return &postgresSongRepository{pool: pool}
}

func scanSong(row rowScanner) (*Song, error) {
	s := &Song{}
	err := row.Scan(
		&s.ID, &s.PlaylistID, &s.Title, &s.Artist, &s.URL, &s.Platform,
		&s.DurationSecs, &s.ThumbnailURL, &s.Position, &s.AddedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (repository *postgresSongRepository) ListByPlaylist(context context.Context, playlistID int64, limit int) ([]*Song, int, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM core.song
		WHERE playlistid = $1
		ORDER BY position ASC, addedat ASC
	`, songColumns)

	args := []any{playlistID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_songs")
	}
	defer rows.Close()

	songs := make([]*Song, 0)
	for rows.Next() {
		s, err := scanSong(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_song")
		}
		songs = append(songs, s)
	}

	var total int
	err = repository.pool.QueryRow(context,
		`SELECT COUNT(*) FROM core.song WHERE playlistid = $1`, playlistID).Scan(&total)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "count_songs")
	}

	return songs, total, nil
}

func (repository *postgresSongRepository) FindByID(context context.Context, playlistID, songID int64) (*Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM core.song WHERE playlistid = $1 AND id = $2`, songColumns)

	s, err := scanSong(repository.pool.QueryRow(context, query, playlistID, songID))
	if err != nil {
		return nil, dberr.Wrap(err, "get_song_by_id")
	}

	return s, nil
}

func (repository *postgresSongRepository) FindByURL(context context.Context, playlistID int64, url string) (*Song, error) {
	query := fmt.Sprintf(`SELECT %s FROM core.song WHERE playlistid = $1 AND url = $2`, songColumns)

	s, err := scanSong(repository.pool.QueryRow(context, query, playlistID, url))
	if err != nil {
		return nil, dberr.Wrap(err, "get_song_by_url")
	}

	return s, nil
}

func (repository *postgresSongRepository) Create(context context.Context, song *Song) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	// Appends at the end of the playlist. The subquery and the insert run in
	// the same transaction, so concurrent adds cannot claim one position.
	query := `
		INSERT INTO core.song (playlistid, title, artist, url, platform, durationsecs, thumbnailurl, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7,
		        (SELECT COALESCE(MAX(position), 0) + 1 FROM core.song WHERE playlistid = $1))
		RETURNING id, position, addedat
	`

	err = transaction.QueryRow(context, query,
		song.PlaylistID, song.Title, song.Artist, song.URL, song.Platform,
		song.DurationSecs, song.ThumbnailURL,
	).Scan(&song.ID, &song.Position, &song.AddedAt)
	if err != nil {
		return dberr.Wrap(err, "create_song")
	}

	if _, err := transaction.Exec(context,
		`UPDATE core.playlist SET updatedat = NOW() WHERE id = $1`, song.PlaylistID); err != nil {
		return dberr.Wrap(err, "touch_playlist")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit song transaction: %w", err)
	}

	return nil
}

func (repository *postgresSongRepository) Update(context context.Context, song *Song) error {
	query := `
		UPDATE core.song
		SET title = $1, artist = $2, url = $3, platform = $4, durationsecs = $5, thumbnailurl = $6
		WHERE playlistid = $7 AND id = $8
	`

	tag, err := repository.pool.Exec(context, query,
		song.Title, song.Artist, song.URL, song.Platform, song.DurationSecs, song.ThumbnailURL,
		song.PlaylistID, song.ID)
	if err != nil {
		return dberr.Wrap(err, "update_song")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

func (repository *postgresSongRepository) Delete(context context.Context, playlistID, songID int64) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer transaction.Rollback(context)

	tag, err := transaction.Exec(context,
		`DELETE FROM core.song WHERE playlistid = $1 AND id = $2`, playlistID, songID)
	if err != nil {
		return dberr.Wrap(err, "delete_song")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	if _, err := transaction.Exec(context,
		`UPDATE core.playlist SET updatedat = NOW() WHERE id = $1`, playlistID); err != nil {
		return dberr.Wrap(err, "touch_playlist")
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit song transaction: %w", err)
	}

	return nil
}
