// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

/*
Package media looks up song metadata from the source streaming platforms.

Two providers are supported: the YouTube Data API v3 and the Spotify Web API
(client-credentials flow). Both are external collaborators over HTTPS; their
failures surface as application errors and never corrupt local state.
*/
package media

import (
	"regexp"
	"strconv"
	"strings"
)

// Metadata is the normalized track information returned by a provider.
type Metadata struct {
	Title        string  `json:"title"`
	Artist       string  `json:"artist"`
	DurationSecs int     `json:"duration_secs"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Platform     string  `json:"platform"`
}

// # URL Identifier Extraction

var (
	youtubeIDPattern = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([a-zA-Z0-9_-]{11})`)
	spotifyIDPattern = regexp.MustCompile(`spotify\.com/(?:intl-[a-z]+/)?track/([a-zA-Z0-9]+)`)
)

// ExtractYouTubeID pulls the 11-character video ID out of a YouTube URL.
func ExtractYouTubeID(url string) (string, bool) {
	match := youtubeIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ExtractSpotifyID pulls the track ID out of a Spotify URL.
func ExtractSpotifyID(url string) (string, bool) {
	match := spotifyIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// # YouTube Title Normalization

var isoDurationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseISODuration converts an ISO-8601 duration (PT3M45S) to seconds.
func parseISODuration(duration string) int {
	match := isoDurationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}

	return atoi(match[1])*3600 + atoi(match[2])*60 + atoi(match[3])
}

// titleSeparators are the artist/title delimiters YouTube uploads use.
var titleSeparators = []string{" - ", " – ", " — ", " | "}

var noisePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\(Official.*?\)`),
	regexp.MustCompile(`(?i)\[Official.*?\]`),
	regexp.MustCompile(`(?i)\(Lyrics.*?\)`),
	regexp.MustCompile(`(?i)\[Lyrics.*?\]`),
	regexp.MustCompile(`(?i)\(Audio.*?\)`),
	regexp.MustCompile(`(?i)\[Audio.*?\]`),
	regexp.MustCompile(`(?i)\(Music Video\)`),
	regexp.MustCompile(`(?i)\[Music Video\]`),
}

var spacePattern = regexp.MustCompile(`\s+`)

// splitVideoTitle derives (artist, title) from an uploaded video title,
// falling back to the channel name when no separator is present, and strips
// the usual "(Official Video)" noise.
func splitVideoTitle(videoTitle, channelTitle string) (artist, title string) {
	artist = channelTitle
	if artist == "" {
		artist = "Unknown"
	}
	title = videoTitle
	if title == "" {
		title = "Unknown"
	}

	for _, separator := range titleSeparators {
		if strings.Contains(title, separator) {
			parts := strings.SplitN(title, separator, 2)
			artist = strings.TrimSpace(parts[0])
			title = strings.TrimSpace(parts[1])
			break
		}
	}

	for _, pattern := range noisePatterns {
		title = pattern.ReplaceAllString(title, "")
	}
	title = strings.TrimSpace(spacePattern.ReplaceAllString(title, " "))

	return artist, title
}
