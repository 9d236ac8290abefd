// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package scraper is the boundary to the site-specific scrapers.

The engine never parses sites itself. A [Scraper] supplies the genre names and
the [lookup.Source] a site contributes to the registries, and on demand an
already parsed [manga.Manga] for one of its URLs. The [Registry] routes a URL
to the scraper owning its host.
*/
package scraper

import (
	"context"
	"net/url"
	"strings"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/core/manga"
)

// Scraper is one site collaborator.
type Scraper interface {
	lookup.Provider

	// Handles reports whether the scraper owns pages under u.
	Handles(u *url.URL) bool

	// FetchManga returns the canonical entity for a page URL, with genres and
	// source resolved through registry.
	FetchManga(context context.Context, pageURL string, registry *lookup.Context) (*manga.Manga, error)
}

// # Known Sites

// Site describes a scraped website.
type Site struct {
	Name     string
	Host     string
	Priority int
}

// KnownSites are the sites the catalogue is built from.
var KnownSites = []Site{
	{Name: "manganelo", Host: "manganato.com", Priority: 1},
	{Name: "readm", Host: "readm.org", Priority: 1},
	{Name: "mangadino", Host: "mangadino.com", Priority: 1},
}

// LookupSite returns the known site with the given name.
func LookupSite(name string) (Site, bool) {
	for _, site := range KnownSites {
		if site.Name == name {
			return site, true
		}
	}
	return Site{}, false
}

// Owns reports whether u is on the site's host or one of its subdomains.
func (site Site) Owns(u *url.URL) bool {
	host := strings.ToLower(u.Hostname())
	return host == site.Host || strings.HasSuffix(host, "."+site.Host)
}
