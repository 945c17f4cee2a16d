// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package analytics

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mixlist/mixlist/internal/platform/dberr"
)

const rankingLimit = 5

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed analytics store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (repository *postgresRepository) Dashboard(context context.Context) (*Dashboard, error) {
	dashboard := &Dashboard{
		TopCreators:      make([]TopCreator, 0, rankingLimit),
		PopularPlaylists: make([]PopularPlaylist, 0, rankingLimit),
	}

	// One round trip for all scalar counters.
	countersQuery := `
		SELECT
			(SELECT COUNT(*) FROM users.account),
			(SELECT COUNT(*) FROM users.account WHERE roleid = 0),
			(SELECT COUNT(*) FROM users.account WHERE roleid = 1),
			(SELECT COUNT(*) FROM users.account WHERE roleid = 2),
			(SELECT COUNT(*) FROM core.playlist),
			(SELECT COUNT(*) FROM core.playlist WHERE ispublic),
			(SELECT COUNT(*) FROM core.playlist WHERE NOT ispublic),
			(SELECT COUNT(*) FROM core.song),
			(SELECT COUNT(*) FROM core.song WHERE platform = 'youtube'),
			(SELECT COUNT(*) FROM core.song WHERE platform = 'spotify'),
			(SELECT COUNT(*) FROM core.genre),
			(SELECT COUNT(*) FROM core.playlistlike),
			(SELECT COUNT(*) FROM core.playlistfavorite),
			(SELECT COUNT(*) FROM core.playlistclick),
			(SELECT COUNT(*) FROM core.playlist WHERE createdat > NOW() - INTERVAL '7 days'),
			(SELECT COUNT(*) FROM core.playlistlike WHERE createdat > NOW() - INTERVAL '7 days'),
			(SELECT COUNT(*) FROM core.playlistclick WHERE clickedat > NOW() - INTERVAL '7 days')
	`

	err := repository.pool.QueryRow(context, countersQuery).Scan(
		&dashboard.Users.TotalUsers,
		&dashboard.Users.AdminCount,
		&dashboard.Users.ManagementCount,
		&dashboard.Users.RegularUserCount,
		&dashboard.Playlists.TotalPlaylists,
		&dashboard.Playlists.PublicPlaylists,
		&dashboard.Playlists.PrivatePlaylists,
		&dashboard.Songs.TotalSongs,
		&dashboard.Songs.YouTubeSongs,
		&dashboard.Songs.SpotifySongs,
		&dashboard.TotalGenres,
		&dashboard.Interactions.TotalLikes,
		&dashboard.Interactions.TotalFavorites,
		&dashboard.Interactions.TotalClicks,
		&dashboard.RecentActivity.NewPlaylistsWeek,
		&dashboard.RecentActivity.NewLikesWeek,
		&dashboard.RecentActivity.ClicksWeek,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "analytics_counters")
	}

	creatorsQuery := `
		SELECT p.ownerid, u.username,
		       COUNT(*) AS playlist_count,
		       COALESCE(SUM((SELECT COUNT(*) FROM core.playlistlike pl WHERE pl.playlistid = p.id)), 0) AS total_likes
		FROM core.playlist p
		LEFT JOIN users.account u ON p.ownerid = u.id
		WHERE p.ispublic
		GROUP BY p.ownerid, u.username
		ORDER BY playlist_count DESC
		LIMIT $1
	`

	rows, err := repository.pool.Query(context, creatorsQuery, rankingLimit)
	if err != nil {
		return nil, dberr.Wrap(err, "analytics_top_creators")
	}
	defer rows.Close()

	for rows.Next() {
		var creator TopCreator
		if err := rows.Scan(&creator.UserID, &creator.Username, &creator.PlaylistCount, &creator.TotalLikes); err != nil {
			return nil, dberr.Wrap(err, "scan_top_creator")
		}
		dashboard.TopCreators = append(dashboard.TopCreators, creator)
	}
	rows.Close()

	playlistsQuery := `
		SELECT p.id, p.title, u.username,
		       (SELECT COUNT(*) FROM core.playlistlike pl WHERE pl.playlistid = p.id) AS likes_count,
		       (SELECT COUNT(*) FROM core.playlistclick pc WHERE pc.playlistid = p.id) AS clicks_count
		FROM core.playlist p
		LEFT JOIN users.account u ON p.ownerid = u.id
		WHERE p.ispublic
		ORDER BY likes_count DESC
		LIMIT $1
	`

	playlistRows, err := repository.pool.Query(context, playlistsQuery, rankingLimit)
	if err != nil {
		return nil, dberr.Wrap(err, "analytics_popular_playlists")
	}
	defer playlistRows.Close()

	for playlistRows.Next() {
		var popular PopularPlaylist
		if err := playlistRows.Scan(&popular.PlaylistID, &popular.Title, &popular.Creator,
			&popular.LikesCount, &popular.ClicksCount); err != nil {
			return nil, dberr.Wrap(err, "scan_popular_playlist")
		}
		dashboard.PopularPlaylists = append(dashboard.PopularPlaylists, popular)
	}

	return dashboard, nil
}
