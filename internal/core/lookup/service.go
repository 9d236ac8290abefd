// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lookup

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/mangaverse/pkg/slice"
)

// Provider is the part of a scraper that feeds the registries.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Genres returns the genre names the site advertises.
	Genres(context context.Context) ([]string, error)

	// Source describes the site itself.
	Source(context context.Context) (Source, error)
}

// # Service Layer

// Service builds [Context] values from scraper output and the stored registries.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// providerOutput is what one provider contributed during bootstrap.
type providerOutput struct {
	genres []string
	source *Source
}

/*
Build collects genres and sources from every provider, persists them, and
returns the registry loaded from the store.

Description: Providers are queried concurrently. A provider that fails is
logged and skipped so one broken site does not block startup; storage
failures abort the build. Sources registered by earlier runs stay resolvable
because the final registry is read back from the store.

Parameters:
  - context: context.Context
  - providers: []Provider (may be empty)

Returns:
  - *Context: The immutable registry
  - error: Storage failures
*/
func (service *Service) Build(context context.Context, providers []Provider) (*Context, error) {

	// 1. Fan out to every provider
	outputs := make([]providerOutput, len(providers))
	group, groupCtx := errgroup.WithContext(context)

	for i, provider := range providers {
		group.Go(func() error {
			outputs[i] = service.collect(groupCtx, provider)
			return nil
		})
	}
	_ = group.Wait()

	// 2. Union of normalized genre names
	var all []string
	var sources []Source
	for _, output := range outputs {
		all = append(all, output.genres...)
		if output.source != nil {
			sources = append(sources, *output.source)
		}
	}

	names := slice.Unique(all)
	sort.Strings(names)

	// 3. Persist
	if err := service.repo.UpsertGenres(context, names); err != nil {
		return nil, err
	}
	for _, source := range sources {
		if _, err := service.repo.UpsertSource(context, source); err != nil {
			return nil, err
		}
	}

	// 4. Load the registries back
	return service.Load(context)
}

// Load builds a registry from what is already stored.
func (service *Service) Load(context context.Context) (*Context, error) {
	genres, err := service.repo.ListGenres(context)
	if err != nil {
		return nil, err
	}

	sources, err := service.repo.ListSources(context)
	if err != nil {
		return nil, err
	}

	registry := NewContext(sources, genres)

	service.logger.Info("lookup_built",
		slog.Int("sources", len(sources)),
		slog.Int("genres", len(genres)),
	)

	return registry, nil
}

// collect queries one provider, logging instead of failing.
func (service *Service) collect(context context.Context, provider Provider) providerOutput {
	var output providerOutput

	genres, err := provider.Genres(context)
	if err != nil {
		service.logger.Warn("scraper_bootstrap_failed",
			slog.String("provider", provider.Name()),
			slog.String("stage", "genres"),
			slog.Any("error", err),
		)
	} else {
		normalized := slice.Map(genres, NormalizeGenreName)
		output.genres = slice.Filter(normalized, func(name string) bool { return name != "" })
	}

	source, err := provider.Source(context)
	if err != nil {
		service.logger.Warn("scraper_bootstrap_failed",
			slog.String("provider", provider.Name()),
			slog.String("stage", "source"),
			slog.Any("error", err),
		)
		return output
	}

	output.source = &source
	return output
}
