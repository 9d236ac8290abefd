// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lookup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
)

// memoryRepository is an in-memory [lookup.Repository].
type memoryRepository struct {
	mu        sync.Mutex
	genres    []lookup.Genre
	sources   []lookup.Source
	failWrite error
}

func (repository *memoryRepository) UpsertGenres(_ context.Context, names []string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.failWrite != nil {
		return repository.failWrite
	}

	for _, name := range names {
		exists := false
		for _, genre := range repository.genres {
			if genre.Name == name {
				exists = true
				break
			}
		}
		if !exists {
			repository.genres = append(repository.genres, lookup.Genre{ID: "g-" + name, Name: name})
		}
	}
	return nil
}

func (repository *memoryRepository) UpsertSource(_ context.Context, source lookup.Source) (lookup.Source, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for i, stored := range repository.sources {
		if stored.Name == source.Name {
			repository.sources[i].Priority = source.Priority
			return repository.sources[i], nil
		}
	}
	if source.ID == "" {
		source.ID = "src-" + source.Name
	}
	repository.sources = append(repository.sources, source)
	return source, nil
}

func (repository *memoryRepository) ListGenres(context.Context) ([]lookup.Genre, error) {
	return repository.genres, nil
}

func (repository *memoryRepository) ListSources(context.Context) ([]lookup.Source, error) {
	return repository.sources, nil
}

// staticProvider returns fixed registry contributions.
type staticProvider struct {
	name      string
	genres    []string
	source    lookup.Source
	genresErr error
	sourceErr error
}

func (provider staticProvider) Name() string { return provider.name }

func (provider staticProvider) Genres(context.Context) ([]string, error) {
	return provider.genres, provider.genresErr
}

func (provider staticProvider) Source(context.Context) (lookup.Source, error) {
	return provider.source, provider.sourceErr
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestService_Build merges every provider's output into one registry.
*/
func TestService_Build(t *testing.T) {
	repository := &memoryRepository{
		sources: []lookup.Source{{ID: "old", Name: "legacy", Priority: 1}},
	}
	service := lookup.NewService(repository, discardLogger())

	registry, err := service.Build(context.Background(), []lookup.Provider{
		staticProvider{name: "mangadino", genres: []string{"Action", " Romance"}, source: lookup.Source{Name: "mangadino", Priority: 1}},
		staticProvider{name: "readm", genres: []string{"action", "Horror", " "}, source: lookup.Source{Name: "readm", Priority: 1}},
	})
	require.NoError(t, err)

	for _, name := range []string{"mangadino", "readm", "legacy"} {
		_, err := registry.ResolveSource(name)
		assert.NoError(t, err, name)
	}

	assert.Len(t, registry.Genres(), 3)
	_, ok := registry.ResolveGenre("horror")
	assert.True(t, ok)
}

/*
TestService_Build_SkipsFailingProvider tolerates a broken scraper.
*/
func TestService_Build_SkipsFailingProvider(t *testing.T) {
	repository := &memoryRepository{}
	service := lookup.NewService(repository, discardLogger())

	registry, err := service.Build(context.Background(), []lookup.Provider{
		staticProvider{name: "broken", genresErr: errors.New("timeout"), sourceErr: errors.New("timeout")},
		staticProvider{name: "readm", genres: []string{"Drama"}, source: lookup.Source{Name: "readm", Priority: 1}},
	})
	require.NoError(t, err)

	assert.Len(t, registry.Sources(), 1)
	_, err = registry.ResolveSource("broken")
	assert.ErrorIs(t, err, lookup.ErrSourceNotRegistered)
}

/*
TestService_Build_StorageFailure propagates persistence errors.
*/
func TestService_Build_StorageFailure(t *testing.T) {
	boom := errors.New("disk full")
	service := lookup.NewService(&memoryRepository{failWrite: boom}, discardLogger())

	_, err := service.Build(context.Background(), []lookup.Provider{
		staticProvider{name: "readm", genres: []string{"Drama"}, source: lookup.Source{Name: "readm"}},
	})
	assert.ErrorIs(t, err, boom)
}
