package schema

// PlaylistLikeTable represents the 'core.playlistlike' table
type PlaylistLikeTable struct {
	Table      string
	PlaylistID string
	UserID     string
	CreatedAt  string
}

// PlaylistLike is the schema definition for core.playlistlike
var PlaylistLike = PlaylistLikeTable{
	Table:      "core.playlistlike",
	PlaylistID: "playlistid",
	UserID:     "userid",
	CreatedAt:  "createdat",
}
