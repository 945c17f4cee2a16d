// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package media

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyAPIBase  = "https://api.spotify.com/v1"

	// tokenExpirySlack renews the token a minute before Spotify would.
	tokenExpirySlack = time.Minute
)

// SpotifyProvider looks tracks up through the Spotify Web API using the
// client-credentials flow. The access token is cached until shortly before
// its expiry and refreshed under a lock.
type SpotifyProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	baseURL      string
	client       *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// NewSpotifyProvider constructs a provider. Empty credentials yield a
// provider that reports itself unconfigured on every lookup.
func NewSpotifyProvider(clientID, clientSecret string) *SpotifyProvider {
	return &SpotifyProvider{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     spotifyTokenURL,
		baseURL:      spotifyAPIBase,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether API credentials are present.
func (provider *SpotifyProvider) Configured() bool {
	return provider.clientID != "" && provider.clientSecret != ""
}

// accessToken returns a live token, refreshing it when expired.
func (provider *SpotifyProvider) accessToken(ctx context.Context) (string, error) {
	provider.mu.Lock()
	defer provider.mu.Unlock()

	if provider.token != "" && time.Now().Before(provider.tokenExpiry) {
		return provider.token, nil
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, provider.tokenURL,
		strings.NewReader("grant_type=client_credentials"))
	if err != nil {
		return "", fmt.Errorf("spotify: build token request: %w", err)
	}

	credentials := base64.StdEncoding.EncodeToString(
		[]byte(provider.clientID + ":" + provider.clientSecret))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Authorization", "Basic "+credentials)

	response, err := provider.client.Do(request)
	if err != nil {
		return "", fmt.Errorf("spotify: token request failed: %w", err)
	}
	defer response.Body.Close()

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("spotify: decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("spotify: no access token in response (status %d)", response.StatusCode)
	}

	provider.token = payload.AccessToken
	provider.tokenExpiry = time.Now().Add(
		time.Duration(payload.ExpiresIn)*time.Second - tokenExpirySlack)

	return provider.token, nil
}

type spotifyTrackResponse struct {
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	DurationMS int `json:"duration_ms"`
	Album      struct {
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
}

// Fetch returns the metadata for one track ID.
func (provider *SpotifyProvider) Fetch(ctx context.Context, trackID string) (*Metadata, error) {
	if !provider.Configured() {
		return nil, errSpotifyNotConfigured
	}

	token, err := provider.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet,
		provider.baseURL+"/tracks/"+trackID, nil)
	if err != nil {
		return nil, fmt.Errorf("spotify: build request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+token)

	response, err := provider.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("spotify: request failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return nil, errTrackNotFound
	}
	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spotify: unexpected status %d", response.StatusCode)
	}

	var track spotifyTrackResponse
	if err := json.NewDecoder(response.Body).Decode(&track); err != nil {
		return nil, fmt.Errorf("spotify: decode response: %w", err)
	}

	artists := make([]string, 0, len(track.Artists))
	for _, artist := range track.Artists {
		artists = append(artists, artist.Name)
	}

	var thumbnail *string
	if len(track.Album.Images) > 0 {
		thumbnail = &track.Album.Images[0].URL
	}

	return &Metadata{
		Title:        track.Name,
		Artist:       strings.Join(artists, ", "),
		DurationSecs: track.DurationMS / 1000,
		ThumbnailURL: thumbnail,
		Platform:     "spotify",
	}, nil
}
