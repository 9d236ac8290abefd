// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import "context"

// # Manga Data Access

// Repository defines the query shapes the engine needs from the relational store.
type Repository interface {

	/*
		FindByURL returns the primary manga row for a source URL.

		Returns:
		  - Row: Scalar columns plus the source ID
		  - error: apperr.NotFound if missing, storage failures otherwise
	*/
	FindByURL(context context.Context, url string) (Row, error)

	// ListTitles returns alternate titles of a linked group, in stored order.
	ListTitles(context context.Context, linkedID string) ([]string, error)

	// ListAuthors returns author names of a manga.
	ListAuthors(context context.Context, mangaID string) ([]string, error)

	// ListArtists returns artist names of a manga.
	ListArtists(context context.Context, mangaID string) ([]string, error)

	// ListGenreNames returns the stored genre names of a manga, unresolved.
	ListGenreNames(context context.Context, mangaID string) ([]string, error)

	// FindSourceName returns the name of a source by ID.
	FindSourceName(context context.Context, sourceID string) (string, error)

	/*
		ListPackedChapters returns one row per chapter that has at least one page,
		with pages packed into [PackedChapter.AllPages] ordered by page number.
	*/
	ListPackedChapters(context context.Context, mangaID string) ([]PackedChapter, error)

	// Updater writes the tracked scalar fields.
	Updater
}
