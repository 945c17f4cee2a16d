// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mixlist/mixlist/internal/audit"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/constants"
	"github.com/mixlist/mixlist/internal/platform/sec"
	"github.com/mixlist/mixlist/internal/platform/validate"
)

// # Songs In Playlists

/*
ListSongs returns a playlist's songs in playback order.

Viewers without a full account only receive the first few songs of a public
playlist, flagged with Limited so clients can prompt for registration.

Parameters:
  - context: context.Context
  - viewer: *sec.Principal (nil for anonymous)
  - playlistID: int64

Returns:
  - *SongList: Songs, total count, and the preview flag
  - error: NotFound if the playlist is missing, Forbidden if private
*/
func (service *Service) ListSongs(ctx context.Context, viewer *sec.Principal, playlistID int64) (*SongList, error) {
	p, err := service.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !visibleTo(viewer, p) {
		return nil, apperr.Forbidden("This playlist is private")
	}

	limit := 0
	capped := previewOnly(viewer)
	if capped {
		limit = constants.MaxSongsForAnonymous
	}

	songs, total, err := service.songs.ListByPlaylist(ctx, playlistID, limit)
	if err != nil {
		return nil, err
	}

	return &SongList{Songs: songs, Total: total, Limited: capped}, nil
}

/*
AddSong appends a song to a playlist.

The platform is derived from the URL; URLs outside YouTube and Spotify are
rejected. A URL already present in the playlist is a conflict. Missing
duration or thumbnail metadata is filled from the source platform when a
metadata provider is configured, on a best-effort basis.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - playlistID: int64
  - input: SongInput

Returns:
  - *Song: The stored song
  - error: NotFound, Forbidden, ValidationError, Conflict, or storage errors
*/
func (service *Service) AddSong(ctx context.Context, actor *sec.Principal, playlistID int64, input SongInput) (*Song, error) {
	p, err := service.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !sec.OwnerOrRole(actor, p.OwnerID, sec.RoleAdministrator) {
		return nil, apperr.Forbidden("You can only add songs to your own playlists")
	}

	song := &Song{
		PlaylistID:   playlistID,
		Title:        strings.TrimSpace(input.Title),
		Artist:       strings.TrimSpace(input.Artist),
		URL:          strings.TrimSpace(input.URL),
		DurationSecs: input.DurationSecs,
		ThumbnailURL: trimPtr(input.ThumbnailURL),
	}

	if err := validateSong(song); err != nil {
		return nil, err
	}

	if _, err := service.songs.FindByURL(ctx, playlistID, song.URL); err == nil {
		return nil, apperr.Conflict("Song already in playlist")
	}

	service.enrich(ctx, song)

	if err := service.songs.Create(ctx, song); err != nil {
		return nil, err
	}

	service.recorder.Record(ctx, audit.ActionSongAdded, &actor.ID, &song.ID)

	return song, nil
}

/*
GetSong returns one song from a playlist.

Parameters:
  - context: context.Context
  - viewer: *sec.Principal (nil for anonymous)
  - playlistID: int64
  - songID: int64

Returns:
  - *Song: The song
  - error: NotFound for a missing playlist or song, Forbidden if private
*/
func (service *Service) GetSong(ctx context.Context, viewer *sec.Principal, playlistID, songID int64) (*Song, error) {
	p, err := service.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !visibleTo(viewer, p) {
		return nil, apperr.Forbidden("This playlist is private")
	}

	return service.songs.FindByID(ctx, playlistID, songID)
}

/*
UpdateSong applies a partial set of changes to a song.

A changed URL re-derives the platform and is revalidated against the
supported-platform patterns.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - playlistID: int64
  - songID: int64
  - input: SongUpdateInput

Returns:
  - *Song: The updated song
  - error: NotFound, Forbidden, ValidationError, or storage errors
*/
func (service *Service) UpdateSong(ctx context.Context, actor *sec.Principal, playlistID, songID int64, input SongUpdateInput) (*Song, error) {
	p, err := service.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if !sec.OwnerOrRole(actor, p.OwnerID, sec.RoleAdministrator) {
		return nil, apperr.Forbidden("You can only update songs in your own playlists")
	}

	song, err := service.songs.FindByID(ctx, playlistID, songID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		song.Title = strings.TrimSpace(*input.Title)
	}
	if input.Artist != nil {
		song.Artist = strings.TrimSpace(*input.Artist)
	}
	if input.URL != nil {
		song.URL = strings.TrimSpace(*input.URL)
	}
	if input.DurationSecs != nil {
		song.DurationSecs = input.DurationSecs
	}
	if input.ThumbnailURL != nil {
		song.ThumbnailURL = trimPtr(input.ThumbnailURL)
	}

	if err := validateSong(song); err != nil {
		return nil, err
	}

	if err := service.songs.Update(ctx, song); err != nil {
		return nil, err
	}

	service.recorder.Record(ctx, audit.ActionSongUpdated, &actor.ID, &songID)

	return song, nil
}

/*
RemoveSong deletes a song from a playlist.

Parameters:
  - context: context.Context
  - actor: *sec.Principal
  - playlistID: int64
  - songID: int64

Returns:
  - error: NotFound, Forbidden, or storage errors
*/
func (service *Service) RemoveSong(ctx context.Context, actor *sec.Principal, playlistID, songID int64) error {
	p, err := service.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return err
	}

	if !sec.OwnerOrRole(actor, p.OwnerID, sec.RoleAdministrator) {
		return apperr.Forbidden("You can only remove songs from your own playlists")
	}

	if err := service.songs.Delete(ctx, playlistID, songID); err != nil {
		return err
	}

	service.recorder.Record(ctx, audit.ActionSongRemoved, &actor.ID, &songID)

	return nil
}

// validateSong enforces field bounds and derives the platform from the URL.
func validateSong(song *Song) error {
	v := &validate.Validator{}
	v.Required("title", song.Title).MaxLen("title", song.Title, MaxTitleLength)
	v.Required("artist", song.Artist).MaxLen("artist", song.Artist, MaxTitleLength)
	v.Required("url", song.URL).MaxLen("url", song.URL, MaxURLLength)
	if song.DurationSecs != nil && *song.DurationSecs < 0 {
		v.Custom("duration_secs", true, "Duration must be a positive number of seconds")
	}
	if err := v.Err(); err != nil {
		return err
	}

	platform, ok := DetectPlatform(song.URL)
	if !ok {
		return apperr.ValidationError("Invalid URL. Only YouTube and Spotify links are allowed")
	}
	song.Platform = platform

	return nil
}

// enrich fills missing metadata from the source platform. Lookup failures
// are logged and swallowed.
func (service *Service) enrich(ctx context.Context, song *Song) {
	if service.enricher == nil {
		return
	}
	if song.DurationSecs != nil && song.ThumbnailURL != nil {
		return
	}

	if err := service.enricher.Enrich(ctx, song); err != nil {
		service.logger.WarnContext(ctx, "song_metadata_enrich_failed",
			slog.String("url", song.URL), slog.Any("error", err))
	}
}
