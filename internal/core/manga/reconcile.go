// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"context"
	"log/slog"
	"time"
)

// Names of the tracked scalar fields, as reported in [UpdateSet.Changed].
const (
	FieldName        = "name"
	FieldCoverURL    = "cover_url"
	FieldLastUpdated = "last_updated"
	FieldStatus      = "status"
	FieldDescription = "description"
)

// FieldURL names the URL that identifies a stored manga in validation errors.
const FieldURL = "url"

// MaxNameLength bounds an incoming name in characters.
const MaxNameLength = 512

// # Tracked Fields

// TrackedFields are the scalar fields reconciliation compares and writes.
type TrackedFields struct {
	Name        string
	CoverURL    string
	LastUpdated time.Time
	Status      string
	Description string
}

// StoredTimePrecision is the resolution of TIMESTAMPTZ columns.
const StoredTimePrecision = time.Microsecond

// Tracked extracts the tracked fields of an entity. LastUpdated is cut to
// [StoredTimePrecision] so a value read back from the store compares equal
// to the one that was written.
func Tracked(m *Manga) TrackedFields {
	return TrackedFields{
		Name:        m.Name,
		CoverURL:    m.CoverURL,
		LastUpdated: m.LastUpdated.Truncate(StoredTimePrecision),
		Status:      m.Status,
		Description: m.Description,
	}
}

// changed lists the fields that differ between f and other. Timestamps compare by instant.
func (f TrackedFields) changed(other TrackedFields) []string {
	var fields []string
	if f.Name != other.Name {
		fields = append(fields, FieldName)
	}
	if f.CoverURL != other.CoverURL {
		fields = append(fields, FieldCoverURL)
	}
	if !f.LastUpdated.Equal(other.LastUpdated) {
		fields = append(fields, FieldLastUpdated)
	}
	if f.Status != other.Status {
		fields = append(fields, FieldStatus)
	}
	if f.Description != other.Description {
		fields = append(fields, FieldDescription)
	}
	return fields
}

// UpdateSet is the write reconciliation decided on.
//
// Fields always carries all five incoming values; Changed only names the ones
// that differed and exists for logging and API responses.
type UpdateSet struct {
	MangaID string
	Fields  TrackedFields
	Changed []string
}

// Diff compares stored and incoming. The second result is false when nothing changed.
func Diff(stored, incoming *Manga) (UpdateSet, bool) {
	fields := Tracked(incoming)
	changed := Tracked(stored).changed(fields)
	if len(changed) == 0 {
		return UpdateSet{}, false
	}

	return UpdateSet{
		MangaID: stored.ID,
		Fields:  fields,
		Changed: changed,
	}, true
}

// # Reconciliation

// Updater persists tracked fields for one manga.
type Updater interface {
	UpdateTracked(context context.Context, mangaID string, fields TrackedFields) error
}

// CollectionReconciler reconciles owned collections (authors, artists, genres,
// titles, chapters) after the scalar step.
//
// No implementation ships yet; the scalar contract does not depend on any.
type CollectionReconciler interface {
	ReconcileCollections(context context.Context, stored, incoming *Manga) error
}

// Reconciler applies scraped state onto stored records.
type Reconciler struct {
	updater     Updater
	collections []CollectionReconciler
	logger      *slog.Logger
}

// NewReconciler constructs a scalar-only reconciler, optionally followed by collection reconcilers.
func NewReconciler(updater Updater, logger *slog.Logger, collections ...CollectionReconciler) *Reconciler {
	return &Reconciler{
		updater:     updater,
		collections: collections,
		logger:      logger,
	}
}

/*
Reconcile writes incoming's tracked fields over stored when any of them differ.

Description: Equal tracked fields mean no write at all. Otherwise exactly one
update is issued, keyed by the stored ID and carrying all five fields. Storage
errors are returned unchanged.

Returns:
  - UpdateSet: The issued update (zero value when none)
  - bool: Whether an update was issued
  - error: Persistence failures
*/
func (reconciler *Reconciler) Reconcile(context context.Context, stored, incoming *Manga) (UpdateSet, bool, error) {
	update, changed := Diff(stored, incoming)

	if changed {
		if err := reconciler.updater.UpdateTracked(context, update.MangaID, update.Fields); err != nil {
			return UpdateSet{}, false, err
		}

		reconciler.logger.Info("manga_reconciled",
			slog.String("manga_id", stored.ID),
			slog.Any("changed", update.Changed),
		)
	} else {
		reconciler.logger.Debug("manga_unchanged", slog.String("manga_id", stored.ID))
	}

	for _, collection := range reconciler.collections {
		if err := collection.ReconcileCollections(context, stored, incoming); err != nil {
			return update, changed, err
		}
	}

	return update, changed, nil
}
