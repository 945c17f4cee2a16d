// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mixlist/mixlist/internal/core/playlist"
)

/*
TestDetectPlatform classifies song URLs into their streaming platform.
*/
func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		platform playlist.Platform
		ok       bool
	}{
		{"youtube_watch", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", playlist.PlatformYouTube, true},
		{"youtube_watch_no_www", "https://youtube.com/watch?v=dQw4w9WgXcQ", playlist.PlatformYouTube, true},
		{"youtube_short", "https://youtu.be/dQw4w9WgXcQ", playlist.PlatformYouTube, true},
		{"youtube_embed", "https://www.youtube.com/embed/dQw4w9WgXcQ", playlist.PlatformYouTube, true},
		{"youtube_plain_http", "http://www.youtube.com/watch?v=abc123", playlist.PlatformYouTube, true},
		{"spotify_track", "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", playlist.PlatformSpotify, true},
		{"spotify_intl", "https://open.spotify.com/intl-pt/track/4uLU6hMCjMI75M1A2tKUQC", playlist.PlatformSpotify, true},
		{"soundcloud_rejected", "https://soundcloud.com/artist/song", "", false},
		{"spotify_album_rejected", "https://open.spotify.com/album/abc", "", false},
		{"random_site", "https://example.com/watch?v=abc", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			platform, ok := playlist.DetectPlatform(tt.url)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.platform, platform)
		})
	}
}
