// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package manga

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/mangaverse/internal/core/lookup"
	"github.com/taibuivan/mangaverse/internal/platform/ctxutil"
	"github.com/taibuivan/mangaverse/internal/platform/middleware"
	requestutil "github.com/taibuivan/mangaverse/internal/platform/request"
	"github.com/taibuivan/mangaverse/internal/platform/respond"
	"github.com/taibuivan/mangaverse/internal/platform/sec"
)

// # Handler Implementation

// Handler exposes the manga engine over HTTP.
type Handler struct {
	service *Service
}

// NewHandler constructs a new manga [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the manga endpoints.
//
//   - Public: GET / resolves a stored manga by ?url=.
//   - Restricted: reconcile and sync mutate the store and require [sec.RoleOperator].
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.getManga)

	router.Group(func(operator chi.Router) {
		operator.Use(middleware.RequireRole(sec.RoleOperator))

		operator.Post("/reconcile", handler.reconcile)
		operator.Post("/sync", handler.sync)
	})

	return router
}

/*
GET /api/v1/manga?url=.

Response:
  - 200: Manga
  - 404: No manga stored under url
*/
func (handler *Handler) getManga(writer http.ResponseWriter, request *http.Request) {
	entity, err := handler.service.Get(request.Context(), requestutil.Query(request, FieldURL))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, entity)
}

// reconcileRequest is the scraped state posted by an external crawler.
type reconcileRequest struct {
	URL         string    `json:"url"`
	Name        string    `json:"name"`
	CoverURL    string    `json:"cover_url"`
	LastUpdated time.Time `json:"last_updated"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
}

// toManga maps the payload onto an incoming entity. Only the tracked fields
// are read during reconciliation so the rest stay zero.
func (input reconcileRequest) toManga() *Manga {
	return &Manga{
		URL:         input.URL,
		Name:        input.Name,
		CoverURL:    input.CoverURL,
		LastUpdated: input.LastUpdated,
		Status:      input.Status,
		Description: input.Description,
		Source:      PendingSource(),
		Chapters:    []Chapter{},
		Authors:     []string{},
		Artists:     []string{},
		Genres:      []*lookup.Genre{},
		Titles:      []string{},
	}
}

/*
POST /api/v1/manga/reconcile.

Request:
  - Body: reconcileRequest

Response:
  - 200: Result
  - 409: A sync for the same URL is in flight
*/
func (handler *Handler) reconcile(writer http.ResponseWriter, request *http.Request) {
	var input reconcileRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Reconcile(request.Context(), input.toManga())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	logResult(request, "reconcile", input.URL, result)
	respond.OK(writer, result)
}

type syncRequest struct {
	URL string `json:"url"`
}

/*
POST /api/v1/manga/sync.

Description: Scrapes the URL with the matching registered scraper and
reconciles the result.

Response:
  - 200: Result
  - 404: No scraper handles the URL's host
  - 502: Upstream site failed
*/
func (handler *Handler) sync(writer http.ResponseWriter, request *http.Request) {
	var input syncRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Sync(request.Context(), input.URL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	logResult(request, "sync", input.URL, result)
	respond.OK(writer, result)
}

func logResult(request *http.Request, operation, url string, result Result) {
	ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "manga_"+operation,
		slog.String("url", url),
		slog.String("actor", requestutil.Actor(request)),
		slog.Bool("updated", result.Updated),
		slog.Any("changed_fields", result.Changed),
	)
}
