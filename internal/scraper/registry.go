// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scraper

import (
	"context"
	"net/url"
	"sync"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/core/manga"
	"github.com/taibuivan/mangaverse/internal/platform/apperr"
	"github.com/taibuivan/mangaverse/pkg/slice"
)

// # Scraper Registry

// Registry routes URLs to registered scrapers. It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	scrapers []Scraper
}

// NewRegistry constructs a registry holding the given scrapers.
func NewRegistry(scrapers ...Scraper) *Registry {
	registry := &Registry{}
	registry.Register(scrapers...)
	return registry
}

// Register appends scrapers. Earlier registrations win when hosts overlap.
func (registry *Registry) Register(scrapers ...Scraper) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.scrapers = append(registry.scrapers, scrapers...)
}

// Len returns the number of registered scrapers.
func (registry *Registry) Len() int {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return len(registry.scrapers)
}

// Providers exposes every scraper as a registry [lookup.Provider].
func (registry *Registry) Providers() []lookup.Provider {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	return slice.Map(registry.scrapers, func(scraper Scraper) lookup.Provider {
		return scraper
	})
}

/*
ForURL returns the scraper owning pageURL's host.

Returns:
  - Scraper: The first registered scraper that handles the URL
  - error: VALIDATION_ERROR for a malformed URL, NOT_FOUND when no scraper handles it
*/
func (registry *Registry) ForURL(pageURL string) (Scraper, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return nil, apperr.ValidationError("Invalid manga URL", apperr.FieldError{Field: manga.FieldURL, Message: "Must be an absolute URL"})
	}

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, scraper := range registry.scrapers {
		if scraper.Handles(parsed) {
			return scraper, nil
		}
	}

	return nil, apperr.NotFound("Scraper for " + parsed.Hostname())
}

// FetchManga routes pageURL to its scraper. It satisfies [manga.Scraper].
func (registry *Registry) FetchManga(context context.Context, pageURL string, lookups *lookup.Context) (*manga.Manga, error) {
	scraper, err := registry.ForURL(pageURL)
	if err != nil {
		return nil, err
	}
	return scraper.FetchManga(context, pageURL, lookups)
}
