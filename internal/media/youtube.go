// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package media

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const youtubeAPIBase = "https://www.googleapis.com/youtube/v3"

// YouTubeProvider looks tracks up through the YouTube Data API v3.
type YouTubeProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewYouTubeProvider constructs a provider. An empty apiKey yields a
// provider that reports itself unconfigured on every lookup.
func NewYouTubeProvider(apiKey string) *YouTubeProvider {
	return &YouTubeProvider{
		apiKey:  apiKey,
		baseURL: youtubeAPIBase,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether an API key is present.
func (provider *YouTubeProvider) Configured() bool {
	return provider.apiKey != ""
}

type youtubeVideoResponse struct {
	Items []struct {
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				High    *youtubeThumbnail `json:"high"`
				Default *youtubeThumbnail `json:"default"`
			} `json:"thumbnails"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type youtubeThumbnail struct {
	URL string `json:"url"`
}

// Fetch returns the metadata for one video ID.
func (provider *YouTubeProvider) Fetch(ctx context.Context, videoID string) (*Metadata, error) {
	if !provider.Configured() {
		return nil, errYouTubeNotConfigured
	}

	endpoint := fmt.Sprintf("%s/videos?id=%s&part=snippet,contentDetails&key=%s",
		provider.baseURL, url.QueryEscape(videoID), url.QueryEscape(provider.apiKey))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("youtube: build request: %w", err)
	}

	response, err := provider.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("youtube: request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube: unexpected status %d", response.StatusCode)
	}

	var payload youtubeVideoResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("youtube: decode response: %w", err)
	}

	if len(payload.Items) == 0 {
		return nil, errVideoNotFound
	}

	item := payload.Items[0]
	artist, title := splitVideoTitle(item.Snippet.Title, item.Snippet.ChannelTitle)

	var thumbnail *string
	if item.Snippet.Thumbnails.High != nil {
		thumbnail = &item.Snippet.Thumbnails.High.URL
	} else if item.Snippet.Thumbnails.Default != nil {
		thumbnail = &item.Snippet.Thumbnails.Default.URL
	}

	return &Metadata{
		Title:        title,
		Artist:       artist,
		DurationSecs: parseISODuration(item.ContentDetails.Duration),
		ThumbnailURL: thumbnail,
		Platform:     "youtube",
	}, nil
}
