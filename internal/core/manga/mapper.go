// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"time"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/platform/apperr"
)

// # Stored Shapes

// Row is the primary manga row. It carries the source as an ID only.
type Row struct {
	ID            string
	LinkedID      string
	IsListed      bool
	Name          string
	CoverURL      string
	URL           string
	LastUpdated   time.Time
	Status        string
	IsMain        bool
	Description   string
	LastWatchTime int64
	PublicID      string
	IsOld         bool
	SourceID      string
}

// Manga converts the row into an entity with a pending source and empty collections.
func (row Row) Manga() *Manga {
	return &Manga{
		ID:            row.ID,
		LinkedID:      row.LinkedID,
		IsListed:      row.IsListed,
		Name:          row.Name,
		CoverURL:      row.CoverURL,
		URL:           row.URL,
		LastUpdated:   row.LastUpdated,
		Status:        row.Status,
		IsMain:        row.IsMain,
		Description:   row.Description,
		LastWatchTime: row.LastWatchTime,
		PublicID:      row.PublicID,
		IsOld:         row.IsOld,
		Source:        PendingSource(),
		Chapters:      []Chapter{},
		Authors:       []string{},
		Artists:       []string{},
		Genres:        []*lookup.Genre{},
		Titles:        []string{},
	}
}

// Parts are the sub-fetch results that complete a [Row].
type Parts struct {
	Titles     []string
	Authors    []string
	Artists    []string
	GenreNames []string
	SourceName string
	Chapters   []PackedChapter
}

// # Canonical Mapping

/*
Assemble builds a complete [Manga] from its row, the sub-fetch results, and the registry.

Description: String collections are copied as fetched (order kept, no dedup).
Genres pass through [lookup.Context.ResolveGenres], so unknown names are dropped.
The source is resolved by name; an unknown name is an invariant violation and
fails the whole assembly, as does any chapter that does not decode.

Returns:
  - *Manga: Entity whose source is resolved
  - error: apperr.Internal (unknown source) or apperr.Corrupted (decode failure)
*/
func Assemble(row Row, parts Parts, registry *lookup.Context) (*Manga, error) {
	entity := row.Manga()

	// Collections copied verbatim
	entity.Titles = append(entity.Titles, parts.Titles...)
	entity.Authors = append(entity.Authors, parts.Authors...)
	entity.Artists = append(entity.Artists, parts.Artists...)

	// Genres filtered through the registry
	entity.Genres = registry.ResolveGenres(parts.GenreNames)

	// Source replaces the pending reference
	source, err := registry.ResolveSource(parts.SourceName)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	entity.Source = ResolvedSource(source)

	// Chapters
	chapters, err := DecodeChapters(parts.Chapters)
	if err != nil {
		return nil, apperr.Corrupted(err)
	}
	entity.Chapters = chapters

	return entity, nil
}

// DecodeChapters decodes every packed row, failing on the first bad chapter.
func DecodeChapters(rows []PackedChapter) ([]Chapter, error) {
	chapters := make([]Chapter, 0, len(rows))
	for _, row := range rows {
		chapter, err := DecodeChapter(row)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}
	return chapters, nil
}
