// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

// Package analytics aggregates platform-wide usage numbers into the single
// dashboard payload served to the Management and Administrator roles.
package analytics

// UserStats breaks the account population down by role.
type UserStats struct {
	TotalUsers       int `json:"total_users"`
	AdminCount       int `json:"admin_count"`
	ManagementCount  int `json:"management_count"`
	RegularUserCount int `json:"regular_user_count"`
}

// PlaylistStats splits the catalogue by visibility.
type PlaylistStats struct {
	TotalPlaylists   int `json:"total_playlists"`
	PublicPlaylists  int `json:"public_playlists"`
	PrivatePlaylists int `json:"private_playlists"`
}

// SongStats splits the songs by source platform.
type SongStats struct {
	TotalSongs   int `json:"total_songs"`
	YouTubeSongs int `json:"youtube_songs"`
	SpotifySongs int `json:"spotify_songs"`
}

// InteractionStats totals the social signals.
type InteractionStats struct {
	TotalLikes     int `json:"total_likes"`
	TotalFavorites int `json:"total_favorites"`
	TotalClicks    int `json:"total_clicks"`
}

// RecentActivity counts the last seven days of platform movement.
type RecentActivity struct {
	NewPlaylistsWeek int `json:"new_playlists_week"`
	NewLikesWeek     int `json:"new_likes_week"`
	ClicksWeek       int `json:"clicks_week"`
}

// TopCreator is one entry in the most-prolific-creators ranking.
type TopCreator struct {
	UserID        int64   `json:"user_id"`
	Username      *string `json:"username"`
	PlaylistCount int     `json:"playlist_count"`
	TotalLikes    int     `json:"total_likes"`
}

// PopularPlaylist is one entry in the most-liked-playlists ranking.
type PopularPlaylist struct {
	PlaylistID  int64   `json:"playlist_id"`
	Title       string  `json:"title"`
	Creator     *string `json:"creator"`
	LikesCount  int     `json:"likes_count"`
	ClicksCount int     `json:"clicks_count"`
}

// Dashboard is the complete analytics payload.
type Dashboard struct {
	Users            UserStats         `json:"users"`
	Playlists        PlaylistStats     `json:"playlists"`
	Songs            SongStats         `json:"songs"`
	TotalGenres      int               `json:"total_genres"`
	Interactions     InteractionStats  `json:"interactions"`
	RecentActivity   RecentActivity    `json:"recent_activity"`
	TopCreators      []TopCreator      `json:"top_creators"`
	PopularPlaylists []PopularPlaylist `json:"popular_playlists"`
}
