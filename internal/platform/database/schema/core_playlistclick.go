package schema

// PlaylistClickTable represents the 'core.playlistclick' table
type PlaylistClickTable struct {
	Table      string
	ID         string
	PlaylistID string
	UserID     string
	ClickedAt  string
}

// PlaylistClick is the schema definition for core.playlistclick
var PlaylistClick = PlaylistClickTable{
	Table:      "core.playlistclick",
	ID:         "id",
	PlaylistID: "playlistid",
	UserID:     "userid",
	ClickedAt:  "clickedat",
}
