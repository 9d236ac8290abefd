package schema

// CatalogGenreTable represents the 'genre' table
type CatalogGenreTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogGenre is the schema definition for genre
var CatalogGenre = CatalogGenreTable{
	Table: "genre",
	ID:    "genre_id",
	Name:  "name",
}

func (t CatalogGenreTable) Columns() []string {
	return []string{t.ID, t.Name}
}
