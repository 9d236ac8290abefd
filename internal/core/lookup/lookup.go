// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package lookup holds the process-scoped registries that map scraped genre and
source names onto canonical entities.

A [Context] is built once at startup from the union of every scraper's output
(see [Service.Build]) and is read-only afterwards, so it can be shared by all
concurrent fetches without locking.

Resolution policy:

  - Genres: unknown names are dropped by [Context.ResolveGenres]. Sites do not
    share a taxonomy, so a miss is expected and never an error.
  - Sources: the set is closed and pre-registered. A miss means the registry
    and the stored rows disagree, and [Context.ResolveSource] reports it as
    [ErrSourceNotRegistered] for the caller to treat as fatal.
*/
package lookup

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// JunkPriority marks a source as unresolved or low quality. Lower priorities are more authoritative.
const JunkPriority = 2

// ErrSourceNotRegistered is returned when a stored record names a source the registry does not know.
var ErrSourceNotRegistered = errors.New("lookup: source not registered")

// # Registry Entities

// Source is a scraped site. Values handed out by a [Context] are shared and must not be modified.
type Source struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// IsJunk reports whether the source carries the junk priority.
func (s *Source) IsJunk() bool {
	return s.Priority >= JunkPriority
}

// Genre is a canonical genre. Name is always normalized (see [NormalizeGenreName]).
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// # Context

// Context is the immutable lookup registry shared by every fetch and reconcile.
type Context struct {
	genres  map[string]*Genre
	sources map[string]*Source
}

// NewContext builds a registry from the given entities.
//
// Genre names are normalized on the way in. When two entries share a key the
// first one wins.
func NewContext(sources []Source, genres []Genre) *Context {
	c := &Context{
		genres:  make(map[string]*Genre, len(genres)),
		sources: make(map[string]*Source, len(sources)),
	}

	for _, source := range sources {
		if _, exists := c.sources[source.Name]; exists {
			continue
		}
		entry := source
		c.sources[source.Name] = &entry
	}

	for _, genre := range genres {
		key := NormalizeGenreName(genre.Name)
		if key == "" {
			continue
		}
		if _, exists := c.genres[key]; exists {
			continue
		}
		c.genres[key] = &Genre{ID: genre.ID, Name: key}
	}

	return c
}

// NormalizeGenreName trims and lower-cases a genre name using Unicode rules.
func NormalizeGenreName(name string) string {
	trimmed := strings.TrimSpace(norm.NFC.String(name))

	// cases.Caser is stateful, so one is built per call.
	return cases.Lower(language.Und).String(trimmed)
}

// ResolveGenre looks up a genre by name after normalization.
func (c *Context) ResolveGenre(name string) (*Genre, bool) {
	genre, ok := c.genres[NormalizeGenreName(name)]
	return genre, ok
}

// ResolveGenres maps names to registered genres in input order, dropping unknown names.
func (c *Context) ResolveGenres(names []string) []*Genre {
	resolved := make([]*Genre, 0, len(names))
	for _, name := range names {
		if genre, ok := c.ResolveGenre(name); ok {
			resolved = append(resolved, genre)
		}
	}
	return resolved
}

// ResolveSource returns the registered source with the exact given name.
func (c *Context) ResolveSource(name string) (*Source, error) {
	source, ok := c.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSourceNotRegistered, name)
	}
	return source, nil
}

// Sources returns the registered sources ordered by priority, then name.
func (c *Context) Sources() []*Source {
	list := make([]*Source, 0, len(c.sources))
	for _, source := range c.sources {
		list = append(list, source)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Priority != list[j].Priority {
			return list[i].Priority < list[j].Priority
		}
		return list[i].Name < list[j].Name
	})
	return list
}

// Genres returns the registered genres ordered by name.
func (c *Context) Genres() []*Genre {
	list := make([]*Genre, 0, len(c.genres))
	for _, genre := range c.genres {
		list = append(list, genre)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
