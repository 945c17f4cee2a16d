// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

/*
Package audit implements the append-only accountability trail for Mixlist.

Every state-changing operation in the system records who did what to which
entity. The trail is append-only: entries are never updated or deleted through
the application, and reads are restricted to administrators.

# Architecture

The package exposes two faces:

  - Recorder: a narrow write interface the other domains depend on. Recording
    happens AFTER the primary write succeeds, and a failed audit write is
    logged and counted but never propagated to the caller — accountability
    must not break the user-facing operation.
  - Service: the administrator-facing read side (paging, filtering, action
    summaries, PDF export).
*/
package audit

import "time"

// # Action Codes

// Action is a closed enumeration of every auditable event in the system.
//
// The string values are persisted verbatim, so they must never be renamed.
type Action string

const (
	ActionUserCreated     Action = "USER_CREATED"
	ActionUserUpdated     Action = "USER_UPDATED"
	ActionUserDeleted     Action = "USER_DELETED"
	ActionUserRoleChanged Action = "USER_ROLE_CHANGED"
	ActionUserLogin       Action = "USER_LOGIN"
	ActionUserLogout      Action = "USER_LOGOUT"

	ActionGenreCreated Action = "GENRE_CREATED"
	ActionGenreUpdated Action = "GENRE_UPDATED"
	ActionGenreDeleted Action = "GENRE_DELETED"

	ActionPlaylistCreated     Action = "PLAYLIST_CREATED"
	ActionPlaylistUpdated     Action = "PLAYLIST_UPDATED"
	ActionPlaylistDeleted     Action = "PLAYLIST_DELETED"
	ActionPlaylistPublished   Action = "PLAYLIST_PUBLISHED"
	ActionPlaylistUnpublished Action = "PLAYLIST_UNPUBLISHED"

	ActionSongAdded   Action = "SONG_ADDED"
	ActionSongUpdated Action = "SONG_UPDATED"
	ActionSongRemoved Action = "SONG_REMOVED"

	ActionPlaylistLiked       Action = "PLAYLIST_LIKED"
	ActionPlaylistUnliked     Action = "PLAYLIST_UNLIKED"
	ActionPlaylistFavorited   Action = "PLAYLIST_FAVORITED"
	ActionPlaylistUnfavorited Action = "PLAYLIST_UNFAVORITED"
)

// actionMessages maps each action to its human-readable description.
var actionMessages = map[Action]string{
	ActionUserCreated:     "User account created",
	ActionUserUpdated:     "User account updated",
	ActionUserDeleted:     "User account deleted",
	ActionUserRoleChanged: "User role changed",
	ActionUserLogin:       "User logged in",
	ActionUserLogout:      "User logged out",

	ActionGenreCreated: "Genre created",
	ActionGenreUpdated: "Genre updated",
	ActionGenreDeleted: "Genre deleted",

	ActionPlaylistCreated:     "Playlist created",
	ActionPlaylistUpdated:     "Playlist updated",
	ActionPlaylistDeleted:     "Playlist deleted",
	ActionPlaylistPublished:   "Playlist published",
	ActionPlaylistUnpublished: "Playlist unpublished",

	ActionSongAdded:   "Song added to playlist",
	ActionSongUpdated: "Song updated in playlist",
	ActionSongRemoved: "Song removed from playlist",

	ActionPlaylistLiked:       "Playlist liked",
	ActionPlaylistUnliked:     "Playlist unliked",
	ActionPlaylistFavorited:   "Playlist added to favorites",
	ActionPlaylistUnfavorited: "Playlist removed from favorites",
}

// Valid reports whether the action is part of the closed set.
func (a Action) Valid() bool {
	_, ok := actionMessages[a]
	return ok
}

// Message returns the human-readable description of the action.
// Unknown actions echo back their raw code.
func (a Action) Message() string {
	if msg, ok := actionMessages[a]; ok {
		return msg
	}
	return string(a)
}

// EntityType derives the kind of entity the action targets from the code prefix.
func (a Action) EntityType() string {
	switch {
	case a == ActionSongAdded, a == ActionSongUpdated, a == ActionSongRemoved:
		return "song"
	case len(a) >= 5 && a[:5] == "USER_":
		return "user"
	case len(a) >= 6 && a[:6] == "GENRE_":
		return "genre"
	default:
		return "playlist"
	}
}

// # Domain Entities

// Entry is one immutable row of the audit trail.
//
// ActorID is nil for system-initiated events (e.g. seeded accounts); TargetID
// is nil when the action has no specific entity (e.g. logout).
type Entry struct {
	ID         int64     `json:"id"`
	ActorID    *int64    `json:"user_id"`
	Action     Action    `json:"action"`
	EntityType string    `json:"entity_type"`
	TargetID   *int64    `json:"target_id"`
	Details    string    `json:"details,omitempty"`
	CreatedAt  time.Time `json:"timestamp"`
}

// EntryWithActor is an [Entry] enriched with the actor's current username.
//
// Username is "System" when the entry has no actor, and falls back to the raw
// actor ID when the account has since been deleted.
type EntryWithActor struct {
	Entry
	Username string `json:"username"`
}

// ActionCount is one row of the per-action summary.
type ActionCount struct {
	Action Action `json:"action"`
	Count  int    `json:"count"`
}

// # Query Filters

// Filter narrows audit trail listings.
type Filter struct {
	// Action restricts results to a single action code. Empty means all.
	Action Action
	// ActorID restricts results to one actor. Nil means all.
	ActorID *int64
}
