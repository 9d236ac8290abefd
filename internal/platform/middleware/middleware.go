// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the HTTP processing chain shared by every route.

Chain, outermost first:

  - RequestID: correlation ID, echoed in the response.
  - StructuredLogger: per-request slog logger and one access log line.
  - RateLimiter: token bucket per client IP.
  - PanicRecovery: turns a handler panic into a 500 envelope.
  - Authenticate / RequireRole: operator tokens for the write endpoints.
  - CORS: origin allow-list outside development.
*/
package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/taibuivan/mangaverse/internal/platform/constants"
)

// RealIP extracts the client IP, preferring proxy headers over the socket address.
func RealIP(request *http.Request) string {
	if ip := request.Header.Get(constants.HeaderXRealIP); ip != "" {
		return ip
	}

	if forwarded := request.Header.Get(constants.HeaderXForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
