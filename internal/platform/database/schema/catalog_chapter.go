package schema

// CatalogChapterTable represents the 'chapter' table
type CatalogChapterTable struct {
	Table          string
	ID             string
	MangaID        string
	Name           string
	Number         string
	UpdatedAt      string
	LastWatchTime  string
	SequenceNumber string
}

// CatalogChapter is the schema definition for chapter
var CatalogChapter = CatalogChapterTable{
	Table:          "chapter",
	ID:             "chapter_id",
	MangaID:        "manga_id",
	Name:           "chapter_name",
	Number:         "chapter_number",
	UpdatedAt:      "updated_at",
	LastWatchTime:  "last_watch_time",
	SequenceNumber: "sequence_number",
}

func (t CatalogChapterTable) Columns() []string {
	return []string{t.ID, t.MangaID, t.Name, t.Number, t.UpdatedAt, t.LastWatchTime, t.SequenceNumber}
}

// CatalogPageTable represents the 'chapter_page' table
type CatalogPageTable struct {
	Table      string
	ID         string
	ChapterID  string
	URL        string
	PageNumber string
}

// CatalogPage is the schema definition for chapter_page
var CatalogPage = CatalogPageTable{
	Table:      "chapter_page",
	ID:         "chapter_page_id",
	ChapterID:  "chapter_id",
	URL:        "url",
	PageNumber: "page_number",
}

func (t CatalogPageTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.URL, t.PageNumber}
}
