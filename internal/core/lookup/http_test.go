// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lookup_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangaverse/internal/core/lookup"
)

func TestHandler_Listings(t *testing.T) {
	registry := lookup.NewContext(
		[]lookup.Source{
			{ID: "s2", Name: "readm", Priority: lookup.JunkPriority},
			{ID: "s1", Name: "mangadino", Priority: 1},
		},
		[]lookup.Genre{{ID: "g2", Name: "Romance"}, {ID: "g1", Name: "Action"}},
	)
	router := lookup.NewHandler(registry).Routes()

	tests := []struct {
		path string
		want string
	}{
		{"/sources", `{"data":[{"id":"s1","name":"mangadino","priority":1},{"id":"s2","name":"readm","priority":2}],"total":2}`},
		{"/genres", `{"data":[{"id":"g1","name":"action"},{"id":"g2","name":"romance"}],"total":2}`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, recorder.Code)
			assert.JSONEq(t, tt.want, recorder.Body.String())
		})
	}
}
