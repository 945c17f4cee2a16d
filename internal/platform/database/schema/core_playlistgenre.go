package schema

// PlaylistGenreTable represents the 'core.playlistgenre' join table
type PlaylistGenreTable struct {
	Table      string
	PlaylistID string
	GenreID    string
}

// PlaylistGenre is the schema definition for core.playlistgenre
var PlaylistGenre = PlaylistGenreTable{
	Table:      "core.playlistgenre",
	PlaylistID: "playlistid",
	GenreID:    "genreid",
}
