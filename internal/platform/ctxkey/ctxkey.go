// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxkey defines the typed keys for request-scoped context values.
// The unexported key type keeps them from colliding with keys of other packages.
package ctxkey

type key string

const (
	// KeyRequestID holds the X-Request-ID correlation value (string).
	KeyRequestID key = "request_id"

	// KeyUser holds the verified operator claims (*sec.AuthClaims).
	KeyUser key = "user"

	// KeyLogger holds the request-scoped *slog.Logger.
	KeyLogger key = "logger"
)
