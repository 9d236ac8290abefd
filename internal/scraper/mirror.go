// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/core/manga"
	"github.com/taibuivan/mangaverse/internal/platform/apperr"
	"github.com/taibuivan/mangaverse/pkg/pointer"
	"github.com/taibuivan/mangaverse/pkg/slice"
)

// ErrMirrorStatus is returned when a mirror answers with an unexpected status.
var ErrMirrorStatus = errors.New("scraper: unexpected mirror status")

// # Mirror Scraper

// Mirror reads one site through a JSON mirror that has already parsed its pages.
//
// Expected mirror endpoints:
//
//	GET {base}/genres           -> {"genres": ["Action", ...]}
//	GET {base}/manga?url={page} -> mirrorManga
type Mirror struct {
	site    Site
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// MirrorOptions tune the HTTP behaviour of a [Mirror].
type MirrorOptions struct {
	Timeout time.Duration
	RPS     float64
}

// NewMirror constructs a mirror scraper for site served from baseURL.
func NewMirror(site Site, baseURL string, options MirrorOptions) *Mirror {
	return &Mirror{
		site:    site,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: options.Timeout},
		limiter: rate.NewLimiter(rate.Limit(options.RPS), 1),
	}
}

// Name returns the site name.
func (mirror *Mirror) Name() string {
	return mirror.site.Name
}

// Handles reports whether u belongs to the mirrored site.
func (mirror *Mirror) Handles(u *url.URL) bool {
	return mirror.site.Owns(u)
}

// Source describes the mirrored site. The ID is assigned by the store.
func (mirror *Mirror) Source(context.Context) (lookup.Source, error) {
	return lookup.Source{Name: mirror.site.Name, Priority: mirror.site.Priority}, nil
}

// Genres returns the genre names the site lists, as given by the mirror.
func (mirror *Mirror) Genres(context context.Context) ([]string, error) {
	var body struct {
		Genres []string `json:"genres"`
	}
	if err := mirror.get(context, "/genres", nil, &body); err != nil {
		return nil, err
	}
	return body.Genres, nil
}

// # Mirror Payloads

type mirrorPage struct {
	ID         int64  `json:"id"`
	URL        string `json:"url"`
	PageNumber uint32 `json:"page_number"`
}

type mirrorChapter struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Number         string       `json:"number"`
	UpdatedAt      *time.Time   `json:"updated_at"`
	SequenceNumber int32        `json:"sequence_number"`
	Pages          []mirrorPage `json:"pages"`
}

type mirrorManga struct {
	Name        string          `json:"name"`
	CoverURL    string          `json:"cover_url"`
	LastUpdated *time.Time      `json:"last_updated"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	Titles      []string        `json:"titles"`
	Authors     []string        `json:"authors"`
	Artists     []string        `json:"artists"`
	Genres      []string        `json:"genres"`
	Chapters    []mirrorChapter `json:"chapters"`
}

/*
FetchManga asks the mirror for the parsed page and maps it onto the canonical model.

Description: Genres the registry does not know are dropped. The source is the
mirrored site and must already be registered. Chapters without pages are
dropped since a stored chapter always owns at least one page.

Returns:
  - *manga.Manga: Entity with a resolved source and no stored IDs
  - error: NOT_FOUND when the mirror has no such page, transport failures otherwise
*/
func (mirror *Mirror) FetchManga(context context.Context, pageURL string, registry *lookup.Context) (*manga.Manga, error) {
	source, err := registry.ResolveSource(mirror.site.Name)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	var body mirrorManga
	if err := mirror.get(context, "/manga", url.Values{"url": {pageURL}}, &body); err != nil {
		return nil, err
	}

	return &manga.Manga{
		IsListed:    true,
		Name:        strings.TrimSpace(body.Name),
		CoverURL:    body.CoverURL,
		URL:         pageURL,
		LastUpdated: pointer.Val(body.LastUpdated),
		Status:      strings.ToLower(strings.TrimSpace(body.Status)),
		Description: strings.TrimSpace(body.Description),
		Source:      manga.ResolvedSource(source),
		Chapters:    mapChapters(body.Chapters),
		Authors:     nonNil(body.Authors),
		Artists:     nonNil(body.Artists),
		Genres:      registry.ResolveGenres(body.Genres),
		Titles:      nonNil(body.Titles),
	}, nil
}

func mapChapters(chapters []mirrorChapter) []manga.Chapter {
	withPages := slice.Filter(chapters, func(chapter mirrorChapter) bool {
		return len(chapter.Pages) > 0
	})
	if len(withPages) == 0 {
		return []manga.Chapter{}
	}

	return slice.Map(withPages, func(chapter mirrorChapter) manga.Chapter {
		return manga.Chapter{
			ID:             chapter.ID,
			Name:           chapter.Name,
			Number:         chapter.Number,
			SequenceNumber: chapter.SequenceNumber,
			UpdatedAt:      chapter.UpdatedAt,
			Pages: slice.Map(chapter.Pages, func(page mirrorPage) manga.Page {
				return manga.Page{
					ID:         page.ID,
					ChapterID:  chapter.ID,
					URL:        page.URL,
					PageNumber: page.PageNumber,
				}
			}),
		}
	})
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// get performs one rate limited GET and decodes the JSON body into target.
func (mirror *Mirror) get(context context.Context, path string, query url.Values, target any) error {
	if err := mirror.limiter.Wait(context); err != nil {
		return err
	}

	endpoint := mirror.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(context, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", mirror.site.Name, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := mirror.client.Do(request)
	if err != nil {
		return fmt.Errorf("%s: do request: %w", mirror.site.Name, err)
	}
	defer response.Body.Close()

	switch {
	case response.StatusCode == http.StatusNotFound:
		return apperr.NotFound("Manga page")
	case response.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return fmt.Errorf("%w: %s %d: %s", ErrMirrorStatus, mirror.site.Name, response.StatusCode, string(snippet))
	}

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		return fmt.Errorf("%s: decode response: %w", mirror.site.Name, err)
	}
	return nil
}

// NewMirrors builds one [Mirror] per configured site, in [KnownSites] order.
// A mirror configured for an unknown site name is an error.
func NewMirrors(mirrors map[string]string, options MirrorOptions) ([]Scraper, error) {
	for name := range mirrors {
		if _, ok := LookupSite(name); !ok {
			return nil, fmt.Errorf("scraper: no known site named %q", name)
		}
	}

	var scrapers []Scraper
	for _, site := range KnownSites {
		if baseURL, ok := mirrors[site.Name]; ok {
			scrapers = append(scrapers, NewMirror(site, baseURL, options))
		}
	}
	return scrapers, nil
}
