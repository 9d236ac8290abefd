package schema

// CatalogSourceTable represents the 'source' table
type CatalogSourceTable struct {
	Table    string
	ID       string
	Name     string
	Priority string
}

// CatalogSource is the schema definition for source
var CatalogSource = CatalogSourceTable{
	Table:    "source",
	ID:       "source_id",
	Name:     "name",
	Priority: "priority",
}

func (t CatalogSourceTable) Columns() []string {
	return []string{t.ID, t.Name, t.Priority}
}
