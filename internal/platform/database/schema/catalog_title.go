package schema

// CatalogTitleTable represents the 'title' table (alternate titles keyed by linked group)
type CatalogTitleTable struct {
	Table    string
	ID       string
	LinkedID string
	Title    string
}

// CatalogTitle is the schema definition for title
var CatalogTitle = CatalogTitleTable{
	Table:    "title",
	ID:       "title_id",
	LinkedID: "linked_id",
	Title:    "title",
}
