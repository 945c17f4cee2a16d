// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

/*
Package playlist defines the core domain of Mixlist: user-curated song
collections and the social signals attached to them.

Core Responsibility:

  - Collections: Playlist lifecycle (create, update, publish, delete) and the
    songs inside each playlist.
  - Social: Likes, favorites, and click tracking.
  - Discovery: Trending, newest, popular-genre, and per-user recommendation
    feeds derived from the social signals.

Visibility is a first-class rule here: private playlists and their songs are
only readable by their owner or an administrator, and viewers without an
account only ever see public material.
*/
package playlist

import "time"

// # Domain Constants

const (
	// MaxTitleLength bounds playlist titles and song title/artist fields.
	MaxTitleLength = 255

	// MaxURLLength bounds song source URLs.
	MaxURLLength = 500
)

// # Core Entities

// Playlist is the central aggregate of the Mixlist domain.
type Playlist struct {
	ID          int64     `json:"playlist_id"`
	OwnerID     int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	CoverURL    *string   `json:"cover_url"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// # Computed Fields
	// Populated by read queries, never written directly.
	OwnerUsername *string    `json:"owner_username,omitempty"`
	LikesCount    int        `json:"likes_count"`
	SongsCount    int        `json:"songs_count"`
	Genres        []GenreRef `json:"genres"`
}

// GenreRef is the lightweight genre projection embedded in playlist reads.
type GenreRef struct {
	ID   int64  `json:"genre_id"`
	Name string `json:"name"`
}

// Detail augments a playlist with the viewer's own relationship to it.
type Detail struct {
	Playlist
	UserLiked     bool `json:"user_liked"`
	UserFavorited bool `json:"user_favorited"`
}

// # Query Types

// Filter holds the optional criteria for playlist listing.
// GenreIDs matches playlists tagged with ANY of the listed genres.
type Filter struct {
	GenreIDs []int64
	OwnerID  *int64
	Query    string
	IsPublic *bool
	Sort     string // "likes", "title", "created_at"
	SortDir  string // "asc" or "desc"
}

// # Write Inputs

// CreateInput holds the fields for a new playlist. Visibility defaults to
// public when omitted.
type CreateInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	CoverURL    *string `json:"cover_url"`
	IsPublic    *bool   `json:"is_public"`
	GenreIDs    []int64 `json:"genre_ids"`
}

// UpdateInput is the partial-update payload for a playlist. Nil fields are
// left untouched; a non-nil GenreIDs replaces the full genre set.
type UpdateInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	CoverURL    *string  `json:"cover_url"`
	IsPublic    *bool    `json:"is_public"`
	GenreIDs    *[]int64 `json:"genre_ids"`
}

// # Discovery Projections

// DayCount is one day's click total in a per-playlist stats series.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ClickStats aggregates a playlist's click history for its owner.
type ClickStats struct {
	PlaylistID   int64      `json:"playlist_id"`
	TotalClicks  int        `json:"total_clicks"`
	ClicksPerDay []DayCount `json:"clicks_per_day"`
}

// GenreTaste is a genre a user has gravitated toward, weighted by how many
// liked playlists carry it.
type GenreTaste struct {
	GenreID int64  `json:"genre_id"`
	Name    string `json:"name"`
	Count   int    `json:"count"`
}

// GenrePopularity ranks a genre by public adoption.
type GenrePopularity struct {
	GenreID       int64  `json:"genre_id"`
	Name          string `json:"name"`
	PlaylistCount int    `json:"playlist_count"`
	TotalLikes    int    `json:"total_likes"`
}

// TrendingPlaylist is a playlist ranked by recent click activity.
type TrendingPlaylist struct {
	Playlist
	RecentClicks int `json:"recent_clicks"`
}

// Recommendations is the personalized feed returned for one user.
type Recommendations struct {
	BasedOnGenres []GenreTaste `json:"based_on_genres"`
	Playlists     []*Playlist  `json:"recommendations"`
}
