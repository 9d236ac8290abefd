// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/core/manga"
	"github.com/taibuivan/mangaverse/internal/platform/apperr"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testRegistry() *lookup.Context {
	return lookup.NewContext(
		[]lookup.Source{
			{ID: "s1", Name: "mangadino", Priority: 1},
			{ID: "s2", Name: "readm", Priority: lookup.JunkPriority},
		},
		[]lookup.Genre{
			{ID: "g1", Name: "action"},
			{ID: "g2", Name: "romance"},
		},
	)
}

func packed(s string) *string {
	return &s
}

// fakeRepository is an in-memory [manga.Repository] holding a single manga.
type fakeRepository struct {
	mu sync.Mutex

	row        manga.Row
	titles     []string
	authors    []string
	artists    []string
	genres     []string
	sourceName string
	chapters   []manga.PackedChapter

	// failures keyed by method name
	failures map[string]error

	updates []trackedUpdate
}

type trackedUpdate struct {
	MangaID string
	Fields  manga.TrackedFields
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		row: manga.Row{
			ID:          "m1",
			LinkedID:    "l1",
			IsListed:    true,
			Name:        "Foo",
			CoverURL:    "https://cdn.mangadino.com/foo.jpg",
			URL:         "https://mangadino.com/series/foo",
			LastUpdated: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Status:      "ongoing",
			Description: "A story.",
			SourceID:    "s1",
		},
		titles:     []string{"Foo", "Fū"},
		authors:    []string{"Alice"},
		artists:    []string{"Bob"},
		genres:     []string{"Action", "isekai"},
		sourceName: "mangadino",
		chapters: []manga.PackedChapter{
			{
				ID:       "c1",
				Name:     "Chapter 1",
				Number:   "1",
				MangaID:  "m1",
				AllPages: packed("10 https://cdn.x/1.jpg 1 c1 11 https://cdn.x/2.jpg 2 c1"),
			},
		},
		failures: map[string]error{},
	}
}

func (repository *fakeRepository) fail(method string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return repository.failures[method]
}

func (repository *fakeRepository) FindByURL(_ context.Context, url string) (manga.Row, error) {
	if err := repository.fail("FindByURL"); err != nil {
		return manga.Row{}, err
	}
	if url != repository.row.URL {
		return manga.Row{}, apperr.NotFound("Manga")
	}
	return repository.row, nil
}

func (repository *fakeRepository) ListTitles(context.Context, string) ([]string, error) {
	return repository.titles, repository.fail("ListTitles")
}

func (repository *fakeRepository) ListAuthors(context.Context, string) ([]string, error) {
	return repository.authors, repository.fail("ListAuthors")
}

func (repository *fakeRepository) ListArtists(context.Context, string) ([]string, error) {
	return repository.artists, repository.fail("ListArtists")
}

func (repository *fakeRepository) ListGenreNames(context.Context, string) ([]string, error) {
	return repository.genres, repository.fail("ListGenreNames")
}

func (repository *fakeRepository) FindSourceName(context.Context, string) (string, error) {
	return repository.sourceName, repository.fail("FindSourceName")
}

func (repository *fakeRepository) ListPackedChapters(context.Context, string) ([]manga.PackedChapter, error) {
	return repository.chapters, repository.fail("ListPackedChapters")
}

// UpdateTracked records the write and applies it, so a second reconcile sees
// the new state. Timestamps are cut to microseconds like a TIMESTAMPTZ column.
func (repository *fakeRepository) UpdateTracked(_ context.Context, mangaID string, fields manga.TrackedFields) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if err := repository.failures["UpdateTracked"]; err != nil {
		return err
	}

	repository.updates = append(repository.updates, trackedUpdate{MangaID: mangaID, Fields: fields})
	repository.row.Name = fields.Name
	repository.row.CoverURL = fields.CoverURL
	repository.row.LastUpdated = fields.LastUpdated.Truncate(time.Microsecond)
	repository.row.Status = fields.Status
	repository.row.Description = fields.Description
	return nil
}

func (repository *fakeRepository) updateCount() int {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return len(repository.updates)
}
