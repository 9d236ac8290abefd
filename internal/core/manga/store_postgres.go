// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangaverse/internal/platform/apperr"
	"github.com/taibuivan/mangaverse/internal/platform/database/schema"
	"github.com/taibuivan/mangaverse/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed manga store.
func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
FindByURL reads the primary manga row.
*/
func (repository *postgresRepository) FindByURL(context context.Context, url string) (Row, error) {
	m := schema.CatalogManga
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(m.Columns(), ", "), m.Table, m.URL)

	var row Row
	err := repository.pool.QueryRow(context, query, url).Scan(
		&row.ID,
		&row.LinkedID,
		&row.IsListed,
		&row.Name,
		&row.CoverURL,
		&row.URL,
		&row.LastUpdated,
		&row.Status,
		&row.IsMain,
		&row.Description,
		&row.LastWatchTime,
		&row.PublicID,
		&row.IsOld,
		&row.SourceID,
	)
	if err != nil {
		return Row{}, dberr.Wrap(err, "find_manga_by_url", "Manga")
	}

	return row, nil
}

// # String Collections

// ListTitles reads alternate titles of a linked group.
func (repository *postgresRepository) ListTitles(context context.Context, linkedID string) ([]string, error) {
	t := schema.CatalogTitle
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, t.Title, t.Table, t.LinkedID)
	return repository.listStrings(context, query, linkedID, "list_titles")
}

// ListAuthors reads author names through manga_author.
func (repository *postgresRepository) ListAuthors(context context.Context, mangaID string) ([]string, error) {
	return repository.listStrings(context, personQuery(schema.MangaAuthor), mangaID, "list_authors")
}

// ListArtists reads artist names through manga_artist.
func (repository *postgresRepository) ListArtists(context context.Context, mangaID string) ([]string, error) {
	return repository.listStrings(context, personQuery(schema.MangaArtist), mangaID, "list_artists")
}

// ListGenreNames reads genre names through manga_genre.
func (repository *postgresRepository) ListGenreNames(context context.Context, mangaID string) ([]string, error) {
	g, j := schema.CatalogGenre, schema.MangaGenre
	query := fmt.Sprintf(`
		SELECT g.%s
		FROM %s g
		JOIN %s j ON j.%s = g.%s
		WHERE j.%s = $1
	`, g.Name, g.Table, j.Table, j.GenreID, g.ID, j.MangaID)
	return repository.listStrings(context, query, mangaID, "list_genres")
}

// personQuery builds the author/artist name query for a junction table.
func personQuery(junction schema.MangaPersonTable) string {
	a := schema.CatalogAuthor
	return fmt.Sprintf(`
		SELECT a.%s
		FROM %s a
		JOIN %s j ON j.%s = a.%s
		WHERE j.%s = $1
	`, a.Name, a.Table, junction.Table, junction.AuthorID, a.ID, junction.MangaID)
}

// listStrings runs a one-column query keyed by a single foreign ID.
func (repository *postgresRepository) listStrings(context context.Context, query string, key string, action string) ([]string, error) {
	rows, err := repository.pool.Query(context, query, key)
	if err != nil {
		return nil, dberr.Wrap(err, action, "Manga")
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, action, "Manga")
	}

	return values, nil
}

// FindSourceName resolves a source ID to its name.
func (repository *postgresRepository) FindSourceName(context context.Context, sourceID string) (string, error) {
	s := schema.CatalogSource
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, s.Name, s.Table, s.ID)

	var name string
	if err := repository.pool.QueryRow(context, query, sourceID).Scan(&name); err != nil {
		return "", dberr.Wrap(err, "find_source_name", "Source")
	}

	return name, nil
}

// # Chapters

/*
ListPackedChapters reads every chapter with at least one page, pages packed.

Description: string_agg folds every page of a chapter into one text column, so
all chapters are read in one round-trip. Each page contributes
"page_id url page_number chapter_id", single-space separated, in page_number
order; see [DecodePages]. The inner join drops chapters without pages, so a
NULL packed column can only come from a broken query and is reported by
[DecodeChapter].
*/
func (repository *postgresRepository) ListPackedChapters(context context.Context, mangaID string) ([]PackedChapter, error) {
	c, p := schema.CatalogChapter, schema.CatalogPage
	query := fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			string_agg(
				p.%s::text || ' ' || p.%s || ' ' || p.%s::text || ' ' || p.%s,
				' ' ORDER BY p.%s
			) AS all_pages
		FROM %s c
		JOIN %s p ON p.%s = c.%s
		WHERE c.%s = $1
		GROUP BY c.%s
		ORDER BY c.%s ASC
	`,
		c.ID, c.Name, c.Number, c.UpdatedAt, c.MangaID, c.LastWatchTime, c.SequenceNumber,
		p.ID, p.URL, p.PageNumber, p.ChapterID,
		p.PageNumber,
		c.Table,
		p.Table, p.ChapterID, c.ID,
		c.MangaID,
		c.ID,
		c.SequenceNumber,
	)

	rows, err := repository.pool.Query(context, query, mangaID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_packed_chapters", "Chapter")
	}

	chapters, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (PackedChapter, error) {
		var chapter PackedChapter
		err := row.Scan(
			&chapter.ID,
			&chapter.Name,
			&chapter.Number,
			&chapter.UpdatedAt,
			&chapter.MangaID,
			&chapter.LastWatchTime,
			&chapter.SequenceNumber,
			&chapter.AllPages,
		)
		return chapter, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_packed_chapter", "Chapter")
	}

	return chapters, nil
}

// # Reconciliation Writes

/*
UpdateTracked overwrites the five tracked scalar fields of one manga.
*/
func (repository *postgresRepository) UpdateTracked(context context.Context, mangaID string, fields TrackedFields) error {
	m := schema.CatalogManga
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $6
	`,
		m.Table,
		m.Name, m.CoverURL, m.LastUpdated, m.Status, m.Description,
		m.ID,
	)

	result, err := repository.pool.Exec(context, query,
		fields.Name,
		fields.CoverURL,
		fields.LastUpdated,
		fields.Status,
		fields.Description,
		mangaID,
	)
	if err != nil {
		return dberr.Wrap(err, "update_manga", "Manga")
	}

	// Verify affected rows
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Manga")
	}

	return nil
}
