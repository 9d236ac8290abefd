// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package manga is the normalization and reconciliation engine of Mangaverse.

It turns stored rows and scraper output into one canonical entity graph
(manga, chapters, pages) and keeps the store in step with fresh scrapes.

Core Responsibility:

  - Decoding: Rebuilds chapter pages from the packed one-row-per-chapter encoding.
  - Mapping: Resolves genres and the source through a shared [lookup.Context].
  - Fetching: Assembles a full [Manga] with concurrent sub-fetches.
  - Reconciling: Writes the tracked scalar fields only when a scrape changed them.
*/
package manga

import (
	"encoding/json"
	"time"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
)

// # Canonical Entities

// Manga is the canonical, source-agnostic record of one series on one site.
type Manga struct {
	ID            string    `json:"id"`
	LinkedID      string    `json:"linked_id"` // Groups records of the same series across re-scrapes
	IsListed      bool      `json:"is_listed"`
	Name          string    `json:"name"`
	CoverURL      string    `json:"cover_url"`
	URL           string    `json:"url"`
	LastUpdated   time.Time `json:"last_updated"`
	Status        string    `json:"status"`
	IsMain        bool      `json:"is_main"`
	Description   string    `json:"description"`
	LastWatchTime int64     `json:"last_watch_time"`
	PublicID      string    `json:"public_id"`
	IsOld         bool      `json:"is_old"`
	Source        SourceRef `json:"source"`

	Chapters []Chapter       `json:"chapters"`
	Authors  []string        `json:"authors"`
	Artists  []string        `json:"artists"`
	Genres   []*lookup.Genre `json:"genres"`
	Titles   []string        `json:"titles"`
}

// Complete reports whether every reference on the entity has been resolved.
func (m *Manga) Complete() bool {
	return m.Source.Resolved()
}

// Chapter is one chapter of a [Manga] and owns its pages.
type Chapter struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Number         string     `json:"number"` // Kept textual: some sites number chapters "12.5"
	MangaID        string     `json:"manga_id"`
	LastWatchTime  int64      `json:"last_watch_time"`
	SequenceNumber int32      `json:"sequence_number"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
	Pages          []Page     `json:"pages"`
}

// Page is a single image of a [Chapter].
type Page struct {
	ID         int64  `json:"id"`
	ChapterID  string `json:"chapter_id"`
	URL        string `json:"url"`
	PageNumber uint32 `json:"page_number"`
}

// # Source Reference

// SourceRef points at a registry-owned [lookup.Source].
//
// The zero value is pending: the manga row has been read but its source has
// not been resolved yet. A pending reference never compares equal to a real
// source and marshals as null.
type SourceRef struct {
	source *lookup.Source
}

// PendingSource returns an unresolved reference.
func PendingSource() SourceRef {
	return SourceRef{}
}

// ResolvedSource wraps a registry entry.
func ResolvedSource(source *lookup.Source) SourceRef {
	return SourceRef{source: source}
}

// Resolved reports whether the reference points at a registry entry.
func (r SourceRef) Resolved() bool {
	return r.source != nil
}

// Get returns the source and whether it is resolved.
func (r SourceRef) Get() (*lookup.Source, bool) {
	return r.source, r.source != nil
}

// MarshalJSON emits the source object or null while pending.
func (r SourceRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.source)
}
