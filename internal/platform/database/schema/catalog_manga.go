package schema

// CatalogMangaTable represents the 'manga' table
type CatalogMangaTable struct {
	Table         string
	ID            string
	LinkedID      string
	IsListed      string
	Name          string
	CoverURL      string
	URL           string
	LastUpdated   string
	Status        string
	IsMain        string
	Description   string
	LastWatchTime string
	PublicID      string
	IsOld         string
	SourceID      string
}

// CatalogManga is the schema definition for manga
var CatalogManga = CatalogMangaTable{
	Table:         "manga",
	ID:            "manga_id",
	LinkedID:      "linked_id",
	IsListed:      "is_listed",
	Name:          "name",
	CoverURL:      "cover_url",
	URL:           "url",
	LastUpdated:   "last_updated",
	Status:        "status",
	IsMain:        "is_main",
	Description:   "description",
	LastWatchTime: "last_watch_time",
	PublicID:      "public_id",
	IsOld:         "is_old",
	SourceID:      "source_id",
}

func (t CatalogMangaTable) Columns() []string {
	return []string{
		t.ID, t.LinkedID, t.IsListed, t.Name, t.CoverURL, t.URL, t.LastUpdated,
		t.Status, t.IsMain, t.Description, t.LastWatchTime, t.PublicID, t.IsOld, t.SourceID,
	}
}
