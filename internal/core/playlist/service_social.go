// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"context"
	"errors"
	"time"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/dberr"
	"github.com/mixlist/mixlist/internal/platform/sec"
)

// clickStatsWindow is how far back the per-day click series reaches.
const clickStatsWindow = 30 * 24 * time.Hour

// # Likes

// LikeCount returns a playlist's like total. Public regardless of playlist
// visibility, matching the list projections.
func (service *Service) LikeCount(ctx context.Context, playlistID int64) (int, error) {
	if _, err := service.playlists.FindByID(ctx, playlistID); err != nil {
		return 0, err
	}
	return service.social.CountLikes(ctx, playlistID)
}

// Like records the actor's like on a playlist. Liking twice is a conflict.
func (service *Service) Like(ctx context.Context, actor *sec.Principal, playlistID int64) error {
	if _, err := service.playlists.FindByID(ctx, playlistID); err != nil {
		return err
	}

	liked, err := service.social.Liked(ctx, playlistID, actor.ID)
	if err != nil {
		return err
	}
	if liked {
		return apperr.Conflict("You already liked this playlist")
	}

	if err := service.social.Like(ctx, playlistID, actor.ID); err != nil {
		return err
	}

	service.recorder.Record(ctx, audit.ActionPlaylistLiked, &actor.ID, &playlistID)

	return nil
}

// Unlike removes the actor's like. Unliking something never liked is a 404.
func (service *Service) Unlike(ctx context.Context, actor *sec.Principal, playlistID int64) error {
	if _, err := service.playlists.FindByID(ctx, playlistID); err != nil {
		return err
	}

	if err := service.social.Unlike(ctx, playlistID, actor.ID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Like")
		}
		return err
	}

	service.recorder.Record(ctx, audit.ActionPlaylistUnliked, &actor.ID, &playlistID)

	return nil
}

// # Favorites

// FavoriteStatus reports whether the actor has favorited a playlist, and
// when.
func (service *Service) FavoriteStatus(ctx context.Context, actor *sec.Principal, playlistID int64) (bool, *time.Time, error) {
	if _, err := service.playlists.FindByID(ctx, playlistID); err != nil {
		return false, nil, err
	}

	addedAt, err := service.social.FavoritedAt(ctx, playlistID, actor.ID)
	if err != nil {
		return false, nil, err
	}

	return addedAt != nil, addedAt, nil
}

// Favorite adds a playlist to the actor's favorites.
func (service *Service) Favorite(ctx context.Context, actor *sec.Principal, playlistID int64) error {
	if _, err := service.playlists.FindByID(ctx, playlistID); err != nil {
		return err
	}

	addedAt, err := service.social.FavoritedAt(ctx, playlistID, actor.ID)
	if err != nil {
		return err
	}
	if addedAt != nil {
		return apperr.Conflict("Playlist already in favorites")
	}

	if err := service.social.Favorite(ctx, playlistID, actor.ID); err != nil {
		return err
	}

	service.recorder.Record(ctx, audit.ActionPlaylistFavorited, &actor.ID, &playlistID)

	return nil
}

// Unfavorite removes a playlist from the actor's favorites.
func (service *Service) Unfavorite(ctx context.Context, actor *sec.Principal, playlistID int64) error {
	if _, err := service.playlists.FindByID(ctx, playlistID); err != nil {
		return err
	}

	if err := service.social.Unfavorite(ctx, playlistID, actor.ID); err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return apperr.NotFound("Favorite")
		}
		return err
	}

	service.recorder.Record(ctx, audit.ActionPlaylistUnfavorited, &actor.ID, &playlistID)

	return nil
}

// FavoritesOf lists a user's favorited playlists, newest favorite first.
// Visible to the user themselves and to administrators.
func (service *Service) FavoritesOf(ctx context.Context, actor *sec.Principal, userID int64) ([]*Playlist, error) {
	if !sec.OwnerOrRole(actor, userID, sec.RoleAdministrator) {
		return nil, apperr.Forbidden("You can only view your own favorites")
	}

	return service.social.FavoritesOf(ctx, userID)
}

// # Clicks

// RecordClick stores one play-through click. Anonymous clicks carry no actor.
func (service *Service) RecordClick(ctx context.Context, viewer *sec.Principal, playlistID int64) error {
	if _, err := service.playlists.FindByID(ctx, playlistID); err != nil {
		return err
	}

	var userID *int64
	if viewer != nil {
		userID = &viewer.ID
	}

	return service.social.RecordClick(ctx, playlistID, userID)
}

// ClickStats returns a playlist's click totals for its owner or an
// administrator.
func (service *Service) ClickStats(ctx context.Context, actor *sec.Principal, playlistID int64) (*ClickStats, error) {
	p, err := service.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !sec.OwnerOrRole(actor, p.OwnerID, sec.RoleAdministrator) {
		return nil, apperr.Forbidden("You can only view stats for your own playlists")
	}

	return service.social.ClickStats(ctx, playlistID, time.Now().Add(-clickStatsWindow))
}
