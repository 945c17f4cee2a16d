package schema

// PlaylistFavoriteTable represents the 'core.playlistfavorite' table
type PlaylistFavoriteTable struct {
	Table      string
	PlaylistID string
	UserID     string
	CreatedAt  string
}

// PlaylistFavorite is the schema definition for core.playlistfavorite
var PlaylistFavorite = PlaylistFavoriteTable{
	Table:      "core.playlistfavorite",
	PlaylistID: "playlistid",
	UserID:     "userid",
	CreatedAt:  "createdat",
}
