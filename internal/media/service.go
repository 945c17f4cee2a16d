// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package media

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mixlist/mixlist/internal/core/playlist"
	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/metrics"
)

var (
	errYouTubeNotConfigured = errors.New("youtube: API key not configured")
	errSpotifyNotConfigured = errors.New("spotify: API credentials not configured")
	errVideoNotFound        = errors.New("youtube: video not found")
	errTrackNotFound        = errors.New("spotify: track not found")
)

// Service routes metadata lookups to the right provider and translates
// provider failures into application errors.
type Service struct {
	youtube *YouTubeProvider
	spotify *SpotifyProvider
	logger  *slog.Logger
}

// NewService constructs a new media [Service].
func NewService(youtube *YouTubeProvider, spotify *SpotifyProvider, logger *slog.Logger) *Service {
	return &Service{
		youtube: youtube,
		spotify: spotify,
		logger:  logger,
	}
}

/*
Lookup fetches the metadata behind a song URL.

Parameters:
  - context: context.Context
  - rawURL: string

Returns:
  - *Metadata: Normalized track information
  - error: ValidationError for unsupported URLs, NotFound for dead links,
    BadGateway for provider failures
*/
func (service *Service) Lookup(ctx context.Context, rawURL string) (*Metadata, error) {
	platform, ok := playlist.DetectPlatform(rawURL)
	if !ok {
		return nil, apperr.ValidationError("Invalid URL. Only YouTube and Spotify links are supported")
	}

	var (
		metadata *Metadata
		err      error
	)

	start := time.Now()
	switch platform {
	case playlist.PlatformYouTube:
		videoID, found := ExtractYouTubeID(rawURL)
		if !found {
			return nil, apperr.ValidationError("Could not extract YouTube video ID")
		}
		metadata, err = service.youtube.Fetch(ctx, videoID)
	case playlist.PlatformSpotify:
		trackID, found := ExtractSpotifyID(rawURL)
		if !found {
			return nil, apperr.ValidationError("Could not extract Spotify track ID")
		}
		metadata, err = service.spotify.Fetch(ctx, trackID)
	}

	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.MetadataFetchDuration.WithLabelValues(string(platform), result).
		Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, service.translate(ctx, platform, err)
	}

	return metadata, nil
}

// translate maps provider-level failures onto the application error
// vocabulary.
func (service *Service) translate(ctx context.Context, platform playlist.Platform, err error) error {
	switch {
	case errors.Is(err, errVideoNotFound):
		return apperr.NotFound("YouTube video")
	case errors.Is(err, errTrackNotFound):
		return apperr.NotFound("Spotify track")
	case errors.Is(err, errYouTubeNotConfigured), errors.Is(err, errSpotifyNotConfigured):
		return apperr.Internal(err)
	default:
		service.logger.WarnContext(ctx, "metadata_provider_failed",
			slog.String("provider", string(platform)), slog.Any("error", err))
		return apperr.BadGateway("Metadata provider unavailable")
	}
}

// Enrich implements [playlist.Enricher]: it fills a song's missing duration
// and thumbnail from its source platform. Fields already supplied by the
// client are left alone.
func (service *Service) Enrich(ctx context.Context, song *playlist.Song) error {
	metadata, err := service.Lookup(ctx, song.URL)
	if err != nil {
		return err
	}

	if song.DurationSecs == nil && metadata.DurationSecs > 0 {
		duration := metadata.DurationSecs
		song.DurationSecs = &duration
	}
	if song.ThumbnailURL == nil {
		song.ThumbnailURL = metadata.ThumbnailURL
	}

	return nil
}
