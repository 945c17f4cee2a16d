package schema

// RefGenreTable represents the 'core.genre' table
type RefGenreTable struct {
	Table     string
	ID        string
	Name      string
	CreatedBy string
	CreatedAt string
}

// RefGenre is the schema definition for core.genre
var RefGenre = RefGenreTable{
	Table:     "core.genre",
	ID:        "id",
	Name:      "name",
	CreatedBy: "createdby",
	CreatedAt: "createdat",
}

func (t RefGenreTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedBy, t.CreatedAt}
}
