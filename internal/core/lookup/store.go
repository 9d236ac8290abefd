// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lookup

import "context"

// # Registry Data Access

// Repository defines the persistence contract for the lookup registries.
type Repository interface {

	/*
		UpsertGenres inserts normalized genre names that are not stored yet.

		Parameters:
		  - context: context.Context
		  - names: []string (already normalized, distinct)

		Returns:
		  - error: Storage failures
	*/
	UpsertGenres(context context.Context, names []string) error

	/*
		UpsertSource registers a source by name, keeping the stored ID when the name already exists.

		Returns:
		  - Source: The stored row (ID may differ from the input)
		  - error: Storage failures
	*/
	UpsertSource(context context.Context, source Source) (Source, error)

	// ListGenres returns every stored genre.
	ListGenres(context context.Context) ([]Genre, error)

	// ListSources returns every stored source.
	ListSources(context context.Context) ([]Source, error)
}
