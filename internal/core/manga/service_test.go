// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/core/manga"
	"github.com/taibuivan/mangaverse/internal/platform/apperr"
)

// busyLocker reports every key as held by someone else.
type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string) (func(), error) {
	return nil, manga.ErrLocked
}

// countingLocker counts acquisitions and releases.
type countingLocker struct {
	acquired int
	released int
}

func (locker *countingLocker) Acquire(context.Context, string) (func(), error) {
	locker.acquired++
	return func() { locker.released++ }, nil
}

// stubScraper returns a fixed entity or error.
type stubScraper struct {
	entity *manga.Manga
	err    error
	urls   []string
}

func (scraper *stubScraper) FetchManga(_ context.Context, url string, _ *lookup.Context) (*manga.Manga, error) {
	scraper.urls = append(scraper.urls, url)
	if scraper.err != nil {
		return nil, scraper.err
	}
	copied := *scraper.entity
	return &copied, nil
}

func TestService_Get(t *testing.T) {
	repository := newFakeRepository()
	service := manga.NewService(repository, testRegistry(), manga.NoopLocker{}, nil, discardLogger())

	t.Run("found", func(t *testing.T) {
		entity, err := service.Get(context.Background(), repository.row.URL)
		require.NoError(t, err)
		assert.Equal(t, "Foo", entity.Name)
	})

	t.Run("invalid_url", func(t *testing.T) {
		_, err := service.Get(context.Background(), "not a url")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("unknown_source", func(t *testing.T) {
		repository.sourceName = "ghost"
		defer func() { repository.sourceName = "mangadino" }()

		_, err := service.Get(context.Background(), repository.row.URL)
		assert.ErrorIs(t, err, lookup.ErrSourceNotRegistered)
	})
}

func TestService_Reconcile(t *testing.T) {
	repository := newFakeRepository()
	locker := &countingLocker{}
	service := manga.NewService(repository, testRegistry(), locker, nil, discardLogger())

	incoming := storedManga()
	incoming.Status = "completed"

	result, err := service.Reconcile(context.Background(), incoming)
	require.NoError(t, err)

	assert.Equal(t, "m1", result.MangaID)
	assert.True(t, result.Updated)
	assert.Equal(t, []string{manga.FieldStatus}, result.Changed)
	assert.Equal(t, 1, locker.acquired)
	assert.Equal(t, 1, locker.released)

	// The refreshed record now matches
	result, err = service.Reconcile(context.Background(), incoming)
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.Equal(t, 1, repository.updateCount())
}

func TestService_Reconcile_Validation(t *testing.T) {
	service := manga.NewService(newFakeRepository(), testRegistry(), manga.NoopLocker{}, nil, discardLogger())

	_, err := service.Reconcile(context.Background(), &manga.Manga{})

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Len(t, ae.Details, 2)
}

func TestService_Reconcile_NameTooLong(t *testing.T) {
	repository := newFakeRepository()
	service := manga.NewService(repository, testRegistry(), manga.NoopLocker{}, nil, discardLogger())

	incoming := storedManga()
	incoming.Name = strings.Repeat("a", manga.MaxNameLength+1)
	_, err := service.Reconcile(context.Background(), incoming)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Equal(t, manga.FieldName, ae.Details[0].Field)
	assert.Zero(t, repository.updateCount())
}

func TestService_Reconcile_Locked(t *testing.T) {
	repository := newFakeRepository()
	service := manga.NewService(repository, testRegistry(), busyLocker{}, nil, discardLogger())

	_, err := service.Reconcile(context.Background(), storedManga())

	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.ErrorIs(t, err, manga.ErrLocked)
	assert.Zero(t, repository.updateCount())
}

func TestService_Sync(t *testing.T) {
	repository := newFakeRepository()

	scraped := storedManga()
	scraped.URL = "https://mirror.example/foo"
	scraped.Description = "A longer story."
	scraper := &stubScraper{entity: scraped}

	service := manga.NewService(repository, testRegistry(), manga.NoopLocker{}, scraper, discardLogger())

	result, err := service.Sync(context.Background(), repository.row.URL)
	require.NoError(t, err)

	assert.Equal(t, []string{repository.row.URL}, scraper.urls)
	assert.True(t, result.Updated)
	assert.Equal(t, []string{manga.FieldDescription}, result.Changed)
	assert.Equal(t, "A longer story.", repository.row.Description)
}

func TestService_Sync_Failures(t *testing.T) {
	repository := newFakeRepository()

	t.Run("no_scraper", func(t *testing.T) {
		service := manga.NewService(repository, testRegistry(), manga.NoopLocker{}, nil, discardLogger())

		_, err := service.Sync(context.Background(), repository.row.URL)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("upstream", func(t *testing.T) {
		scraper := &stubScraper{err: errors.New("503 from site")}
		service := manga.NewService(repository, testRegistry(), manga.NoopLocker{}, scraper, discardLogger())

		_, err := service.Sync(context.Background(), repository.row.URL)
		assert.Equal(t, "UPSTREAM_ERROR", apperr.As(err).Code)
	})

	t.Run("app_error_passes_through", func(t *testing.T) {
		scraper := &stubScraper{err: apperr.NotFound("Scraper")}
		service := manga.NewService(repository, testRegistry(), manga.NoopLocker{}, scraper, discardLogger())

		_, err := service.Sync(context.Background(), repository.row.URL)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}
