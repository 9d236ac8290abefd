// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/mangaverse/internal/platform/constants"
	"github.com/taibuivan/mangaverse/internal/platform/middleware"
	"github.com/taibuivan/mangaverse/internal/platform/sec"
)

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

// staticVerifier accepts exactly one token.
type staticVerifier struct {
	token  string
	claims *sec.AuthClaims
}

func (verifier staticVerifier) VerifyToken(token string) (*sec.AuthClaims, error) {
	if token != verifier.token {
		return nil, errors.New("bad token")
	}
	return verifier.claims, nil
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.2")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))
}

func TestRequestID(t *testing.T) {
	handler := middleware.RequestID()(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "sync-42")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "sync-42", recorder.Header().Get(constants.HeaderXRequestID))
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	verifier := staticVerifier{
		token:  "good",
		claims: &sec.AuthClaims{UserID: "op-1", Role: string(sec.RoleOperator)},
	}

	tests := []struct {
		name       string
		header     string
		required   sec.UserRole
		wantStatus int
	}{
		{"anonymous", "", sec.RoleOperator, http.StatusUnauthorized},
		{"malformed", "Token good", sec.RoleOperator, http.StatusUnauthorized},
		{"invalid_token", "Bearer bad", sec.RoleOperator, http.StatusUnauthorized},
		{"operator_allowed", "Bearer good", sec.RoleOperator, http.StatusOK},
		{"lowercase_scheme", "bearer good", sec.RoleReader, http.StatusOK},
		{"admin_required", "Bearer good", sec.RoleAdmin, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Authenticate(verifier)(middleware.RequireRole(tt.required)(okHandler))

			request := httptest.NewRequest(http.MethodPost, "/api/v1/manga/sync", nil)
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, 2)

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))

	// Buckets are per client
	assert.True(t, limiter.Allow("10.0.0.2"))

	assert.Equal(t, 0, limiter.Evict(time.Hour))
	assert.Equal(t, 2, limiter.Evict(-time.Second))
}

func TestRateLimiter_Handler(t *testing.T) {
	handler := middleware.NewRateLimiter(1, 1).Handler(okHandler)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestPanicRecovery(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}

type corsConfig struct {
	development bool
	suffix      string
}

func (cfg corsConfig) IsDevelopment() bool  { return cfg.development }
func (cfg corsConfig) OriginSuffix() string { return cfg.suffix }

func TestCORS(t *testing.T) {
	tests := []struct {
		name      string
		cfg       corsConfig
		origin    string
		wantAllow bool
	}{
		{"development_any", corsConfig{development: true}, "http://localhost:3000", true},
		{"suffix_match", corsConfig{suffix: "mangaverse.app"}, "https://admin.mangaverse.app", true},
		{"suffix_mismatch", corsConfig{suffix: "mangaverse.app"}, "https://evil.io", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/genres", nil)
			request.Header.Set(constants.HeaderOrigin, tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(okHandler).ServeHTTP(recorder, request)

			allowed := recorder.Header().Get("Access-Control-Allow-Origin") == tt.origin
			assert.Equal(t, tt.wantAllow, allowed)
		})
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/api/v1/manga/sync", nil)
	preflight.Header.Set(constants.HeaderOrigin, "https://admin.mangaverse.app")
	recorder := httptest.NewRecorder()
	middleware.CORS(corsConfig{suffix: "mangaverse.app"})(okHandler).ServeHTTP(recorder, preflight)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}
