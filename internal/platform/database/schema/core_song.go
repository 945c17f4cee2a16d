package schema

// SongTable represents the 'core.song' table
type SongTable struct {
	Table        string
	ID           string
	PlaylistID   string
	Title        string
	Artist       string
	URL          string
	Platform     string
	DurationSecs string
	ThumbnailURL string
	Position     string
	AddedAt      string
}

// Song is the schema definition for core.song
var Song = SongTable{
	Table:        "core.song",
	ID:           "id",
	PlaylistID:   "playlistid",
	Title:        "title",
	Artist:       "artist",
	URL:          "url",
	Platform:     "platform",
	DurationSecs: "durationsecs",
	ThumbnailURL: "thumbnailurl",
	Position:     "position",
	AddedAt:      "addedat",
}

func (t SongTable) Columns() []string {
	return []string{
		t.ID, t.PlaylistID, t.Title, t.Artist, t.URL, t.Platform,
		t.DurationSecs, t.ThumbnailURL, t.Position, t.AddedAt,
	}
}
