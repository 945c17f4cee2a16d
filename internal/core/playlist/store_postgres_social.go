// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mixlist/mixlist/internal/platform/dberr"
)

type postgresSocialRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresSocialRepository constructs a PostgreSQL backed social store.
func NewPostgresSocialRepository(pool *pgxpool.Pool) SocialRepository {
	return &postgresSocialRepository{pool: pool}
}

// # Likes

func (repository *postgresSocialRepository) CountLikes(context context.Context, playlistID int64) (int, error) {
	var count int
	err := repository.pool.QueryRow(context,
		`SELECT COUNT(*) FROM core.playlistlike WHERE playlistid = $1`, playlistID).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_likes")
	}
	return count, nil
}

func (repository *postgresSocialRepository) Liked(context context.Context, playlistID, userID int64) (bool, error) {
	var exists bool
	err := repository.pool.QueryRow(context,
		`SELECT EXISTS(SELECT 1 FROM core.playlistlike WHERE playlistid = $1 AND userid = $2)`,
		playlistID, userID).Scan(&exists)
	if err != nil {
		return false, dberr.Wrap(err, "check_like")
	}
	return exists, nil
}

func (repository *postgresSocialRepository) Like(context context.Context, playlistID, userID int64) error {
	_, err := repository.pool.Exec(context,
		`INSERT INTO core.playlistlike (playlistid, userid) VALUES ($1, $2)`, playlistID, userID)
	if err != nil {
		return dberr.Wrap(err, "like_playlist")
	}
	return nil
}

func (repository *postgresSocialRepository) Unlike(context context.Context, playlistID, userID int64) error {
	tag, err := repository.pool.Exec(context,
		`DELETE FROM core.playlistlike WHERE playlistid = $1 AND userid = $2`, playlistID, userID)
	if err != nil {
		return dberr.Wrap(err, "unlike_playlist")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Favorites

func (repository *postgresSocialRepository) FavoritedAt(context context.Context, playlistID, userID int64) (*time.Time, error) {
	var addedAt time.Time
	err := repository.pool.QueryRow(context,
		`SELECT createdat FROM core.playlistfavorite WHERE playlistid = $1 AND userid = $2`,
		playlistID, userID).Scan(&addedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dberr.Wrap(err, "check_favorite")
	}
	return &addedAt, nil
}

func (repository *postgresSocialRepository) Favorite(context context.Context, playlistID, userID int64) error {
	_, err := repository.pool.Exec(context,
		`INSERT INTO core.playlistfavorite (playlistid, userid) VALUES ($1, $2)`, playlistID, userID)
	if err != nil {
		return dberr.Wrap(err, "favorite_playlist")
	}
	return nil
}

func (repository *postgresSocialRepository) Unfavorite(context context.Context, playlistID, userID int64) error {
	tag, err := repository.pool.Exec(context,
		`DELETE FROM core.playlistfavorite WHERE playlistid = $1 AND userid = $2`, playlistID, userID)
	if err != nil {
		return dberr.Wrap(err, "unfavorite_playlist")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *postgresSocialRepository) FavoritesOf(context context.Context, userID int64) ([]*Playlist, error) {
	query := `
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
		FROM core.playlistfavorite pf
		JOIN core.playlist p ON pf.playlistid = p.id
		LEFT JOIN users.account u ON p.ownerid = u.id
		WHERE pf.userid = $1
		ORDER BY pf.createdat DESC
	`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_favorites")
	}
	defer rows.Close()

	playlists := make([]*Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_favorite")
		}
		playlists = append(playlists, p)
	}

	return playlists, nil
}

// # Clicks

func (repository *postgresSocialRepository) RecordClick(context context.Context, playlistID int64, userID *int64) error {
	_, err := repository.pool.Exec(context,
		`INSERT INTO core.playlistclick (playlistid, userid) VALUES ($1, $2)`, playlistID, userID)
	if err != nil {
		return dberr.Wrap(err, "record_click")
	}
	return nil
}

func (repository *postgresSocialRepository) ClickStats(context context.Context, playlistID int64, since time.Time) (*ClickStats, error) {
	stats := &ClickStats{PlaylistID: playlistID, ClicksPerDay: make([]DayCount, 0)}

	err := repository.pool.QueryRow(context,
		`SELECT COUNT(*) FROM core.playlistclick WHERE playlistid = $1`, playlistID).Scan(&stats.TotalClicks)
	if err != nil {
		return nil, dberr.Wrap(err, "count_clicks")
	}

	query := `
		SELECT TO_CHAR(clickedat::date, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM core.playlistclick
		WHERE playlistid = $1 AND clickedat >= $2
		GROUP BY clickedat::date
		ORDER BY day DESC
	`

	rows, err := repository.pool.Query(context, query, playlistID, since)
	if err != nil {
		return nil, dberr.Wrap(err, "click_stats")
	}
	defer rows.Close()

	for rows.Next() {
		var day DayCount
		if err := rows.Scan(&day.Date, &day.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_click_stats")
		}
		stats.ClicksPerDay = append(stats.ClicksPerDay, day)
	}

	return stats, nil
}

// # Discovery

func (repository *postgresSocialRepository) LikedGenres(context context.Context, userID int64) ([]GenreTaste, error) {
	query := `
		SELECT pg.genreid, g.name, COUNT(*) AS count
		FROM core.playlistlike pl
		JOIN core.playlistgenre pg ON pl.playlistid = pg.playlistid
		JOIN core.genre g ON pg.genreid = g.id
		WHERE pl.userid = $1
		GROUP BY pg.genreid, g.name
		ORDER BY count DESC
	`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "liked_genres")
	}
	defer rows.Close()

	tastes := make([]GenreTaste, 0)
	for rows.Next() {
		var taste GenreTaste
		if err := rows.Scan(&taste.GenreID, &taste.Name, &taste.Count); err != nil {
			return nil, dberr.Wrap(err, "scan_liked_genre")
		}
		tastes = append(tastes, taste)
	}

	return tastes, nil
}

// recommendationSelect enriches candidate playlists the same way as regular
// reads; likes_count doubles as the ranking key.
const recommendationSelect = `
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

func (repository *postgresSocialRepository) RecommendByGenres(context context.Context, userID int64, genreIDs []int64, limit int) ([]*Playlist, error) {
	query := recommendationSelect + `
		WHERE p.ispublic = TRUE
		  AND p.ownerid != $1
		  AND p.id IN (SELECT playlistid FROM core.playlistgenre WHERE genreid = ANY($2))
		  AND p.id NOT IN (SELECT playlistid FROM core.playlistlike WHERE userid = $1)
		ORDER BY likes_count DESC
		LIMIT $3
	`

	return repository.queryPlaylists(context, "recommend_by_genres", query, userID, genreIDs, limit)
}

func (repository *postgresSocialRepository) MostLiked(context context.Context, excludeOwner int64, limit int) ([]*Playlist, error) {
	query := recommendationSelect + `
		WHERE p.ispublic = TRUE AND p.ownerid != $1
		ORDER BY likes_count DESC
		LIMIT $2
	`

	return repository.queryPlaylists(context, "most_liked", query, excludeOwner, limit)
}

func (repository *postgresSocialRepository) Trending(context context.Context, since time.Time, limit int) ([]*TrendingPlaylist, error) {
	query := `
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
		       (SELECT COUNT(*) FROM core.playlistclick pc
		        WHERE pc.playlistid = p.id AND pc.clickedat > $1) AS recent_clicks
		FROM core.playlist p
		LEFT JOIN users.account u ON p.ownerid = u.id
		WHERE p.ispublic = TRUE
		ORDER BY recent_clicks DESC, likes_count DESC
		LIMIT $2
	`

	rows, err := repository.pool.Query(context, query, since, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "trending_playlists")
	}
	defer rows.Close()

	trending := make([]*TrendingPlaylist, 0)
	for rows.Next() {
		t := &TrendingPlaylist{}
		p, err := scanPlaylist(rows, &t.RecentClicks)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_trending")
		}
		t.Playlist = *p
		trending = append(trending, t)
	}

	return trending, nil
}

func (repository *postgresSocialRepository) PopularGenres(context context.Context, limit int) ([]GenrePopularity, error) {
	query := `
		SELECT g.id, g.name,
		       COUNT(DISTINCT pg.playlistid) AS playlist_count,
		       COALESCE(SUM((SELECT COUNT(*) FROM core.playlistlike pl WHERE pl.playlistid = pg.playlistid)), 0) AS total_likes
		FROM core.genre g
		JOIN core.playlistgenre pg ON g.id = pg.genreid
		JOIN core.playlist p ON pg.playlistid = p.id AND p.ispublic = TRUE
		GROUP BY g.id, g.name
		ORDER BY playlist_count DESC, total_likes DESC
		LIMIT $1
	`

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, dberr.Wrap(err, "popular_genres")
	}
	defer rows.Close()

	genres := make([]GenrePopularity, 0)
	for rows.Next() {
		var g GenrePopularity
		if err := rows.Scan(&g.GenreID, &g.Name, &g.PlaylistCount, &g.TotalLikes); err != nil {
			return nil, dberr.Wrap(err, "scan_popular_genre")
		}
		genres = append(genres, g)
	}

	return genres, nil
}

func (repository *postgresSocialRepository) Newest(context context.Context, limit int) ([]*Playlist, error) {
	query := recommendationSelect + `
		WHERE p.ispublic = TRUE
		ORDER BY p.createdat DESC
		LIMIT $1
	`

	return repository.queryPlaylists(context, "newest_playlists", query, limit)
}

// queryPlaylists runs an enriched-projection query and hydrates the rows.
func (repository *postgresSocialRepository) queryPlaylists(context context.Context, action, query string, args ...any) ([]*Playlist, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	playlists := make([]*Playlist, 0)
	for rows.Next() {
		p, err := scanPlaylist(rows)
		if err != nil {
			return nil, dberr.Wrap(err, action)
		}
		playlists = append(playlists, p)
	}

	return playlists, nil
}
