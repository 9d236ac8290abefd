package schema

// CatalogAuthorTable represents the 'author' table. Artists share it.
type CatalogAuthorTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogAuthor is the schema definition for author
var CatalogAuthor = CatalogAuthorTable{
	Table: "author",
	ID:    "author_id",
	Name:  "name",
}

// MangaPersonTable represents a manga-to-author junction ('manga_author' or 'manga_artist')
type MangaPersonTable struct {
	Table    string
	MangaID  string
	AuthorID string
}

// MangaAuthor is the schema definition for manga_author
var MangaAuthor = MangaPersonTable{
	Table:    "manga_author",
	MangaID:  "manga_id",
	AuthorID: "author_id",
}

// MangaArtist is the schema definition for manga_artist
var MangaArtist = MangaPersonTable{
	Table:    "manga_artist",
	MangaID:  "manga_id",
	AuthorID: "author_id",
}

// MangaGenreTable represents the 'manga_genre' junction
type MangaGenreTable struct {
	Table   string
	MangaID string
	GenreID string
}

// MangaGenre is the schema definition for manga_genre
var MangaGenre = MangaGenreTable{
	Table:   "manga_genre",
	MangaID: "manga_id",
	GenreID: "genre_id",
}
