// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangaverse/internal/platform/apperr"
	"github.com/taibuivan/mangaverse/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	t.Run("nil_passthrough", func(t *testing.T) {
		assert.NoError(t, dberr.Wrap(nil, "find_manga", "Manga"))
	})

	t.Run("no_rows_is_not_found", func(t *testing.T) {
		err := dberr.Wrap(pgx.ErrNoRows, "find_manga", "Manga")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "NOT_FOUND", ae.Code)
		assert.Equal(t, "Manga not found", ae.Message)
		assert.ErrorIs(t, err, pgx.ErrNoRows)
	})

	t.Run("other_errors_keep_cause", func(t *testing.T) {
		boom := errors.New("connection reset")
		err := dberr.Wrap(boom, "list_titles", "Title")

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INTERNAL_ERROR", ae.Code)
		assert.ErrorIs(t, err, boom)
	})
}
