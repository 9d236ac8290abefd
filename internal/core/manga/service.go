// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/platform/apperr"
	"github.com/taibuivan/mangaverse/internal/platform/validate"
)

// Scraper produces the incoming side of reconciliation for a URL.
type Scraper interface {
	FetchManga(context context.Context, url string, registry *lookup.Context) (*Manga, error)
}

// Result reports what a reconcile did.
type Result struct {
	MangaID string   `json:"manga_id"`
	Updated bool     `json:"updated"`
	Changed []string `json:"changed_fields"`
}

// # Service Layer

// Service orchestrates fetching, scraping and reconciliation.
type Service struct {
	fetcher    *Fetcher
	reconciler *Reconciler
	locker     Locker
	scraper    Scraper
	registry   *lookup.Context
	logger     *slog.Logger
}

// NewService constructs a new [Service]. scraper may be nil, which disables [Service.Sync].
func NewService(repo Repository, registry *lookup.Context, locker Locker, scraper Scraper, logger *slog.Logger, collections ...CollectionReconciler) *Service {
	return &Service{
		fetcher:    NewFetcher(repo, registry),
		reconciler: NewReconciler(repo, logger, collections...),
		locker:     locker,
		scraper:    scraper,
		registry:   registry,
		logger:     logger,
	}
}

/*
Get returns the fully assembled manga stored under url.

Returns:
  - *Manga: Resolved entity
  - error: NOT_FOUND, storage, decode or registry failures
*/
func (service *Service) Get(context context.Context, url string) (*Manga, error) {
	if err := validate.RequiredURL(FieldURL, url); err != nil {
		return nil, err
	}

	entity, err := service.fetcher.FetchManga(context, url)
	if err != nil {
		service.logFetchFailure(url, err)
		return nil, err
	}

	return entity, nil
}

/*
Reconcile applies an already scraped entity onto the record stored under its URL.

Description: The per-URL lock is held from reading the stored record until the
update is written, so two syncs of the same URL cannot interleave.

Parameters:
  - context: context.Context
  - incoming: *Manga (URL identifies the stored record)

Returns:
  - Result: Whether an update was issued and which fields differed
  - error: Validation, lock, storage or decode failures
*/
func (service *Service) Reconcile(context context.Context, incoming *Manga) (Result, error) {
	validator := &validate.Validator{}
	validator.Required(FieldURL, incoming.URL)
	validator.Required(FieldName, incoming.Name).MaxLen(FieldName, incoming.Name, MaxNameLength)
	if incoming.CoverURL != "" {
		validator.URL(FieldCoverURL, incoming.CoverURL)
	}
	if err := validator.Err(); err != nil {
		return Result{}, err
	}

	release, err := service.locker.Acquire(context, incoming.URL)
	if err != nil {
		if errors.Is(err, ErrLocked) {
			conflict := apperr.Conflict("A sync for this manga is already running")
			conflict.Cause = err
			return Result{}, conflict
		}
		return Result{}, apperr.Internal(err)
	}
	defer release()

	stored, err := service.fetcher.FetchManga(context, incoming.URL)
	if err != nil {
		service.logFetchFailure(incoming.URL, err)
		return Result{}, err
	}

	update, updated, err := service.reconciler.Reconcile(context, stored, incoming)
	if err != nil {
		return Result{}, err
	}

	return Result{
		MangaID: stored.ID,
		Updated: updated,
		Changed: update.Changed,
	}, nil
}

/*
Sync scrapes url and reconciles the result against the stored record.
*/
func (service *Service) Sync(context context.Context, url string) (Result, error) {
	if err := validate.RequiredURL(FieldURL, url); err != nil {
		return Result{}, err
	}

	if service.scraper == nil {
		return Result{}, apperr.NotFound("Scraper")
	}

	incoming, err := service.scraper.FetchManga(context, url, service.registry)
	if err != nil {
		if apperr.IsAppError(err) {
			return Result{}, err
		}
		return Result{}, apperr.Upstream(err)
	}

	// The stored record is keyed by the URL that was asked for.
	incoming.URL = url

	return service.Reconcile(context, incoming)
}

// logFetchFailure flags registry misses loudly; they mean stored rows reference an unregistered source.
func (service *Service) logFetchFailure(url string, err error) {
	if errors.Is(err, lookup.ErrSourceNotRegistered) {
		service.logger.Error("source_unresolved",
			slog.String("url", url),
			slog.Any("error", err),
		)
	}
}
