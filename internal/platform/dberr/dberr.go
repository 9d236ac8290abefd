// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/taibuivan/mangaverse/internal/platform/apperr"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
//
// The original error stays reachable through [errors.Is], so callers can still
// match driver sentinels. A missing row maps to NOT_FOUND for resource.
func Wrap(err error, action, resource string) error {
	if err == nil {
		return nil
	}

	cause := fmt.Errorf("postgres: %s: %w", action, err)

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		notFound := apperr.NotFound(resource)
		notFound.Cause = cause
		return notFound
	}

	// 2. Everything else is a storage failure, propagated as-is behind an Internal envelope
	return apperr.Internal(cause)
}
