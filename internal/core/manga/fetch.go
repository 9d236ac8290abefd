// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
)

// # Fetch Orchestration

// Fetcher assembles complete entities from the store.
type Fetcher struct {
	repo     Repository
	registry *lookup.Context
}

// NewFetcher constructs a [Fetcher] bound to a registry.
func NewFetcher(repo Repository, registry *lookup.Context) *Fetcher {
	return &Fetcher{
		repo:     repo,
		registry: registry,
	}
}

/*
FetchManga loads the manga stored under url with all of its collections.

Description: The primary row is read first; its IDs key every other query.
Titles, authors, artists, genres, the source name and the packed chapters are
then fetched concurrently and joined once. The first failing sub-fetch cancels
the shared context, so siblings still in flight stop early, and its error is
returned. No partial entity is ever returned.

Parameters:
  - context: context.Context
  - url: string (Source page URL, unique per stored manga)

Returns:
  - *Manga: Fully resolved entity
  - error: Storage, decode or registry failures
*/
func (fetcher *Fetcher) FetchManga(context context.Context, url string) (*Manga, error) {

	// 1. Primary row (hard prerequisite)
	row, err := fetcher.repo.FindByURL(context, url)
	if err != nil {
		return nil, err
	}

	// 2. Independent sub-fetches. Each goroutine owns one field of parts.
	var parts Parts
	group, groupCtx := errgroup.WithContext(context)

	group.Go(func() (err error) {
		parts.Titles, err = fetcher.repo.ListTitles(groupCtx, row.LinkedID)
		return err
	})
	group.Go(func() (err error) {
		parts.Authors, err = fetcher.repo.ListAuthors(groupCtx, row.ID)
		return err
	})
	group.Go(func() (err error) {
		parts.Artists, err = fetcher.repo.ListArtists(groupCtx, row.ID)
		return err
	})
	group.Go(func() (err error) {
		parts.GenreNames, err = fetcher.repo.ListGenreNames(groupCtx, row.ID)
		return err
	})
	group.Go(func() (err error) {
		parts.SourceName, err = fetcher.repo.FindSourceName(groupCtx, row.SourceID)
		return err
	})
	group.Go(func() (err error) {
		parts.Chapters, err = fetcher.repo.ListPackedChapters(groupCtx, row.ID)
		return err
	})

	// 3. Join
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return Assemble(row, parts, fetcher.registry)
}
