// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/core/manga"
	"github.com/taibuivan/mangaverse/internal/platform/apperr"
)

func TestRowManga_IsPending(t *testing.T) {
	entity := manga.Row{ID: "m1", SourceID: "s1"}.Manga()

	assert.False(t, entity.Complete())
	assert.NotNil(t, entity.Chapters)
	assert.NotNil(t, entity.Genres)

	raw, err := json.Marshal(entity.Source)
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(raw))
}

func TestAssemble_ResolvesSource(t *testing.T) {
	repository := newFakeRepository()

	entity, err := manga.Assemble(repository.row, manga.Parts{
		Titles:     []string{"Foo", "Foo"},
		GenreNames: []string{"Action", "isekai", "ROMANCE"},
		SourceName: "mangadino",
	}, testRegistry())
	require.NoError(t, err)

	source, ok := entity.Source.Get()
	require.True(t, ok)
	assert.Equal(t, "s1", source.ID)
	assert.Equal(t, "mangadino", source.Name)
	assert.True(t, entity.Complete())

	// Titles verbatim, unknown genre dropped
	assert.Equal(t, []string{"Foo", "Foo"}, entity.Titles)
	require.Len(t, entity.Genres, 2)
	assert.Equal(t, "action", entity.Genres[0].Name)
	assert.Equal(t, "romance", entity.Genres[1].Name)
	assert.Empty(t, entity.Chapters)
}

func TestAssemble_SharesRegistryEntries(t *testing.T) {
	registry := testRegistry()
	row := newFakeRepository().row

	first, err := manga.Assemble(row, manga.Parts{SourceName: "readm"}, registry)
	require.NoError(t, err)
	second, err := manga.Assemble(row, manga.Parts{SourceName: "readm"}, registry)
	require.NoError(t, err)

	a, _ := first.Source.Get()
	b, _ := second.Source.Get()
	assert.Same(t, a, b)
	assert.True(t, a.IsJunk())
}

func TestAssemble_UnknownSource(t *testing.T) {
	_, err := manga.Assemble(newFakeRepository().row, manga.Parts{SourceName: "ghost"}, testRegistry())

	require.Error(t, err)
	assert.ErrorIs(t, err, lookup.ErrSourceNotRegistered)
	assert.Equal(t, "INTERNAL_ERROR", apperr.As(err).Code)
}

func TestAssemble_CorruptedChapter(t *testing.T) {
	_, err := manga.Assemble(newFakeRepository().row, manga.Parts{
		SourceName: "mangadino",
		Chapters:   []manga.PackedChapter{{ID: "c1"}},
	}, testRegistry())

	require.Error(t, err)
	assert.ErrorIs(t, err, manga.ErrPagesMissing)
	assert.Equal(t, "DECODE_ERROR", apperr.As(err).Code)
}
