// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestExtractYouTubeID covers the supported YouTube URL shapes.
*/
func TestExtractYouTubeID(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		id    string
		found bool
	}{
		{"watch_url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short_url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed_url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"with_extra_params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"not_youtube", "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, found := ExtractYouTubeID(tt.url)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.id, id)
		})
	}
}

/*
TestExtractSpotifyID covers track URLs including the localized intl- variant.
*/
func TestExtractSpotifyID(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		id    string
		found bool
	}{
		{"track_url", "https://open.spotify.com/track/4uLU6hMCjMI75M1A2tKUQC", "4uLU6hMCjMI75M1A2tKUQC", true},
		{"intl_url", "https://open.spotify.com/intl-de/track/4uLU6hMCjMI75M1A2tKUQC", "4uLU6hMCjMI75M1A2tKUQC", true},
		{"not_spotify", "https://youtu.be/dQw4w9WgXcQ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, found := ExtractSpotifyID(tt.url)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.id, id)
		})
	}
}

/*
TestParseISODuration converts ISO-8601 durations to seconds.
*/
func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		seconds  int
	}{
		{"minutes_seconds", "PT3M45S", 225},
		{"hours_minutes_seconds", "PT1H2M3S", 3723},
		{"seconds_only", "PT59S", 59},
		{"hours_only", "PT2H", 7200},
		{"garbage", "not-a-duration", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.seconds, parseISODuration(tt.duration))
		})
	}
}

/*
TestSplitVideoTitle derives artist and clean title from YouTube video names.
*/
func TestSplitVideoTitle(t *testing.T) {
	tests := []struct {
		name       string
		videoTitle string
		channel    string
		artist     string
		title      string
	}{
		{
			"hyphen_separator",
			"Daft Punk - Harder Better Faster Stronger",
			"DaftPunkVEVO",
			"Daft Punk",
			"Harder Better Faster Stronger",
		},
		{
			"pipe_separator",
			"Bonobo | Kerala",
			"Ninja Tune",
			"Bonobo",
			"Kerala",
		},
		{
			"no_separator_falls_back_to_channel",
			"Kerala",
			"Bonobo",
			"Bonobo",
			"Kerala",
		},
		{
			"official_video_noise_stripped",
			"Daft Punk - One More Time (Official Video)",
			"DaftPunkVEVO",
			"Daft Punk",
			"One More Time",
		},
		{
			"lyrics_bracket_noise_stripped",
			"Artist - Song [Lyrics]",
			"Channel",
			"Artist",
			"Song",
		},
		{
			"empty_everything",
			"",
			"",
			"Unknown",
			"Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artist, title := splitVideoTitle(tt.videoTitle, tt.channel)
			assert.Equal(t, tt.artist, artist)
			assert.Equal(t, tt.title, title)
		})
	}
}

/*
TestSplitVideoTitle_FirstSeparatorWins verifies only the first separator splits.
*/
func TestSplitVideoTitle_FirstSeparatorWins(t *testing.T) {
	artist, title := splitVideoTitle("A - B - C", "Channel")
	require.Equal(t, "A", artist)
	assert.Equal(t, "B - C", title)
}
