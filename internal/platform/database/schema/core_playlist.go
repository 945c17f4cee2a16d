package schema

// PlaylistTable represents the 'core.playlist' table
type PlaylistTable struct {
	Table       string
	ID          string
	OwnerID     string
	Title       string
	Description string
	CoverURL    string
	IsPublic    string
	CreatedAt   string
	UpdatedAt   string
}

// Playlist is the schema definition for core.playlist
var Playlist = PlaylistTable{
	Table:       "core.playlist",
	ID:          "id",
	OwnerID:     "ownerid",
	Title:       "title",
	Description: "description",
	CoverURL:    "coverurl",
	IsPublic:    "ispublic",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t PlaylistTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Title, t.Description, t.CoverURL, t.IsPublic,
		t.CreatedAt, t.UpdatedAt,
	}
}
