// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"regexp"
	"time"
)

// # Song Platform

// Platform identifies the streaming service a song links to.
type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformSpotify Platform = "spotify"
)

var youtubePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^https?://youtu\.be/[\w-]+`),
	regexp.MustCompile(`^https?://(www\.)?youtube\.com/embed/[\w-]+`),
}

var spotifyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^https?://open\.spotify\.com/track/\w+`),
	regexp.MustCompile(`^https?://open\.spotify\.com/intl-\w+/track/\w+`),
}

// DetectPlatform classifies a song URL. The second return value is false for
// URLs that belong to neither supported platform.
func DetectPlatform(url string) (Platform, bool) {
	for _, pattern := range youtubePatterns {
		if pattern.MatchString(url) {
			return PlatformYouTube, true
		}
	}
	for _, pattern := range spotifyPatterns {
		if pattern.MatchString(url) {
			return PlatformSpotify, true
		}
	}
	return "", false
}

// # Song Entity

// Song is a single track inside a playlist. The platform is always derived
// from the URL, never supplied by the client.
type Song struct {
	ID           int64     `json:"song_id"`
	PlaylistID   int64     `json:"playlist_id"`
	Title        string    `json:"title"`
	Artist       string    `json:"artist"`
	URL          string    `json:"url"`
	Platform     Platform  `json:"platform"`
	DurationSecs *int      `json:"duration_secs"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	Position     int       `json:"position"`
	AddedAt      time.Time `json:"added_at"`
}

// SongList is the gated listing of a playlist's songs. Limited is true when
// the viewer only received the anonymous preview slice.
type SongList struct {
	Songs   []*Song `json:"songs"`
	Total   int     `json:"total"`
	Limited bool    `json:"limited"`
}

// # Song Inputs

// SongInput holds the fields for adding a song to a playlist.
type SongInput struct {
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	URL          string  `json:"url"`
	DurationSecs *int    `json:"duration_secs"`
	ThumbnailURL *string `json:"thumbnail_url"`
}

// SongUpdateInput is the partial-update payload for a song. A changed URL
// re-derives the platform.
type SongUpdateInput struct {
	Title        *string `json:"title"`
	Artist       *string `json:"artist"`
	URL          *string `json:"url"`
	DurationSecs *int    `json:"duration_secs"`
	ThumbnailURL *string `json:"thumbnail_url"`
}
