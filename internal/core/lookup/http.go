// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lookup

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/mangaverse/internal/platform/respond"
)

// Handler exposes the registries read-only.
type Handler struct {
	registry *Context
}

// NewHandler constructs a handler over an already built registry.
func NewHandler(registry *Context) *Handler {
	return &Handler{registry: registry}
}

// Routes returns the registry routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/sources", handler.listSources)
	router.Get("/genres", handler.listGenres)
	return router
}

/*
GET /api/v1/sources.

Response:
  - 200: []Source ordered by priority, then name
*/
func (handler *Handler) listSources(writer http.ResponseWriter, _ *http.Request) {
	sources := handler.registry.Sources()
	respond.List(writer, sources, len(sources))
}

// GET /api/v1/genres.
func (handler *Handler) listGenres(writer http.ResponseWriter, _ *http.Request) {
	genres := handler.registry.Genres()
	respond.List(writer, genres, len(genres))
}
