// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"context"
	"time"

	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/sec"
)

// # Discovery Feeds

const (
	// trendingWindow is the click-activity lookback for the trending feed.
	trendingWindow = 7 * 24 * time.Hour

	defaultFeedLimit    = 10
	maxFeedLimit        = 50
	popularGenresLimit  = 10
	recommendationLimit = 10
)

// clampFeedLimit normalizes a requested feed size into [1, maxFeedLimit].
func clampFeedLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}

// Trending returns the public playlists with the most click activity over
// the last week, like count breaking ties.
func (service *Service) Trending(ctx context.Context, limit int) ([]*TrendingPlaylist, error) {
	return service.social.Trending(ctx, time.Now().Add(-trendingWindow), clampFeedLimit(limit))
}

// PopularGenres ranks genres by how many public playlists carry them.
func (service *Service) PopularGenres(ctx context.Context) ([]GenrePopularity, error) {
	return service.social.PopularGenres(ctx, popularGenresLimit)
}

// Newest returns the most recently created public playlists.
func (service *Service) Newest(ctx context.Context, limit int) ([]*Playlist, error) {
	return service.social.Newest(ctx, clampFeedLimit(limit))
}

/*
RecommendationsFor builds a personalized feed for one user.

The feed is seeded from the genres of playlists the user has liked: the most
liked public playlists in those genres, excluding the user's own playlists
and ones they already liked. A user with no likes yet falls back to the
globally most liked public playlists.

Visible to the user themselves and to administrators.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - userID: int64

Returns:
  - *Recommendations: The seed genres and the recommended playlists
  - error: Forbidden for other users' feeds, storage errors otherwise
*/
func (service *Service) RecommendationsFor(ctx context.Context, actor *sec.Principal, userID int64) (*Recommendations, error) {
	if !sec.OwnerOrRole(actor, userID, sec.RoleAdministrator) {
		return nil, apperr.Forbidden("You can only view your own recommendations")
	}

	tastes, err := service.social.LikedGenres(ctx, userID)
	if err != nil {
		return nil, err
	}

	var playlists []*Playlist
	if len(tastes) > 0 {
		genreIDs := make([]int64, 0, len(tastes))
		for _, taste := range tastes {
			genreIDs = append(genreIDs, taste.GenreID)
		}
		playlists, err = service.social.RecommendByGenres(ctx, userID, genreIDs, recommendationLimit)
	} else {
		playlists, err = service.social.MostLiked(ctx, userID, recommendationLimit)
	}
	if err != nil {
		return nil, err
	}

	return &Recommendations{BasedOnGenres: tastes, Playlists: playlists}, nil
}
