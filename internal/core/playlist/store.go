// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package playlist

import (
	"context"
	"time"
)

// # Playlist Data Access

// Repository defines the data access contract for playlist aggregates.
type Repository interface {

	/*
		List returns a filtered, paginated slice of playlists and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (genre, owner, search, visibility, sorting)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Playlist: Slice of enriched playlist records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Playlist, int, error)

	/*
		FindByID returns one playlist with its computed fields and genres.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Playlist: The hydrated entity
		  - error: NotFound if missing
	*/
	FindByID(context context.Context, id int64) (*Playlist, error)

	/*
		Create persists a new playlist and its genre links in one transaction.

		Parameters:
		  - context: context.Context
		  - playlist: *Playlist (ID and timestamps are populated on return)
		  - genreIDs: []int64

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, playlist *Playlist, genreIDs []int64) error

	/*
		Update persists the mutable fields of a playlist and bumps updated_at.

		Parameters:
		  - context: context.Context
		  - playlist: *Playlist

		Returns:
		  - error: NotFound if missing, storage failures otherwise
	*/
	Update(context context.Context, playlist *Playlist) error

	/*
		ReplaceGenres swaps a playlist's full genre set atomically.

		Parameters:
		  - context: context.Context
		  - playlistID: int64
		  - genreIDs: []int64 (empty clears all links)

		Returns:
		  - error: Storage or constraint failures
	*/
	ReplaceGenres(context context.Context, playlistID int64, genreIDs []int64) error

	/*
		Delete removes a playlist and every dependent row (songs, genre links,
		likes, favorites, clicks) in a single transaction. Either everything
		goes or nothing does.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: NotFound if missing, storage failures otherwise
	*/
	Delete(context context.Context, id int64) error
}

// # Song Data Access

// SongRepository defines the data access contract for songs inside playlists.
type SongRepository interface {

	// ListByPlaylist returns a playlist's songs in playback order plus the
	// total count. A positive limit caps the slice without affecting the
	// total.
	ListByPlaylist(context context.Context, playlistID int64, limit int) ([]*Song, int, error)

	// FindByID returns one song, scoped to its playlist.
	FindByID(context context.Context, playlistID, songID int64) (*Song, error)

	// FindByURL returns the song with the given URL inside a playlist, used
	// for duplicate detection.
	FindByURL(context context.Context, playlistID int64, url string) (*Song, error)

	// Create appends a song at the end of its playlist and touches the
	// playlist's updated_at.
	Create(context context.Context, song *Song) error

	// Update persists a song's mutable fields.
	Update(context context.Context, song *Song) error

	// Delete removes a song from its playlist and touches the playlist's
	// updated_at.
	Delete(context context.Context, playlistID, songID int64) error
}

// # Social Data Access

// SocialRepository defines the data access contract for likes, favorites,
// clicks, and the discovery queries built on top of them.
type SocialRepository interface {

	// Likes
	CountLikes(context context.Context, playlistID int64) (int, error)
	Liked(context context.Context, playlistID, userID int64) (bool, error)
	Like(context context.Context, playlistID, userID int64) error
	Unlike(context context.Context, playlistID, userID int64) error

	// Favorites. FavoritedAt returns nil without error when the playlist is
	// not in the user's favorites.
	FavoritedAt(context context.Context, playlistID, userID int64) (*time.Time, error)
	Favorite(context context.Context, playlistID, userID int64) error
	Unfavorite(context context.Context, playlistID, userID int64) error
	FavoritesOf(context context.Context, userID int64) ([]*Playlist, error)

	// Clicks. RecordClick accepts a nil userID for anonymous viewers.
	RecordClick(context context.Context, playlistID int64, userID *int64) error
	ClickStats(context context.Context, playlistID int64, since time.Time) (*ClickStats, error)

	// Discovery
	LikedGenres(context context.Context, userID int64) ([]GenreTaste, error)
	RecommendByGenres(context context.Context, userID int64, genreIDs []int64, limit int) ([]*Playlist, error)
	MostLiked(context context.Context, excludeOwner int64, limit int) ([]*Playlist, error)
	Trending(context context.Context, since time.Time, limit int) ([]*TrendingPlaylist, error)
	PopularGenres(context context.Context, limit int) ([]GenrePopularity, error)
	Newest(context context.Context, limit int) ([]*Playlist, error)
}
