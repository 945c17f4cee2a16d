package genre

import "time"

const MaxNameLength = 255

// Genre categorizes playlists. Names are unique case-insensitively.
type Genre struct {
	ID        int64     `json:"genre_id"`
	Name      string    `json:"name"`
	CreatedBy *int64    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// CreatedByName is the creator's username, populated on reads.
	CreatedByName *string `json:"created_by"`

	// PlaylistCount is populated on single-genre reads only.
	PlaylistCount *int `json:"playlist_count,omitempty"`
}
