// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/mangaverse/internal/platform/database/schema"
	"github.com/taibuivan/mangaverse/internal/platform/dberr"
	"github.com/taibuivan/mangaverse/pkg/uuid"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed registry store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
UpsertGenres inserts missing genres in a single pipelined batch.

Description: Existing names are left untouched (ON CONFLICT DO NOTHING), so
the IDs that manga_genre rows point at never change across restarts.
*/
func (repository *PostgresRepository) UpsertGenres(context context.Context, names []string) error {

	// Pre-condition verification
	if len(names) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		VALUES ($1, $2)
		ON CONFLICT (%s) DO NOTHING
	`, schema.CatalogGenre.Table, schema.CatalogGenre.ID, schema.CatalogGenre.Name, schema.CatalogGenre.Name)

	// Batch queue construction
	batch := &pgx.Batch{}
	for _, name := range names {
		batch.Queue(query, uuid.New(), name)
	}

	// Send batch and close pipeline
	result := repository.db.SendBatch(context, batch)
	defer result.Close()

	// Verify all items in the batch succeeded
	for i := range names {
		if _, err := result.Exec(); err != nil {
			return dberr.Wrap(err, fmt.Sprintf("upsert_genre[%d]", i), "Genre")
		}
	}

	return nil
}

/*
UpsertSource registers a source, refreshing its priority when the name already exists.
*/
func (repository *PostgresRepository) UpsertSource(context context.Context, source Source) (Source, error) {
	if source.ID == "" {
		source.ID = uuid.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s, %s, %s
	`,
		schema.CatalogSource.Table, schema.CatalogSource.ID, schema.CatalogSource.Name, schema.CatalogSource.Priority,
		schema.CatalogSource.Name, schema.CatalogSource.Priority, schema.CatalogSource.Priority,
		schema.CatalogSource.ID, schema.CatalogSource.Name, schema.CatalogSource.Priority,
	)

	var stored Source
	err := repository.db.QueryRow(context, query, source.ID, source.Name, source.Priority).
		Scan(&stored.ID, &stored.Name, &stored.Priority)
	if err != nil {
		return Source{}, dberr.Wrap(err, "upsert_source", "Source")
	}

	return stored, nil
}

// ListGenres returns every stored genre.
func (repository *PostgresRepository) ListGenres(context context.Context) ([]Genre, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		strings.Join(schema.CatalogGenre.Columns(), ", "), schema.CatalogGenre.Table, schema.CatalogGenre.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_genres", "Genre")
	}

	genres, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Genre, error) {
		var genre Genre
		err := row.Scan(&genre.ID, &genre.Name)
		return genre, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_genre", "Genre")
	}

	return genres, nil
}

// ListSources returns every stored source.
func (repository *PostgresRepository) ListSources(context context.Context) ([]Source, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		strings.Join(schema.CatalogSource.Columns(), ", "), schema.CatalogSource.Table, schema.CatalogSource.Name)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_sources", "Source")
	}

	sources, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Source, error) {
		var source Source
		err := row.Scan(&source.ID, &source.Name, &source.Priority)
		return source, err
	})
	if err != nil {
		return nil, dberr.Wrap(err, "scan_source", "Source")
	}

	return sources, nil
}
