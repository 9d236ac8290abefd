// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuid generates the time-ordered (version 7) identifiers used for
// catalogue rows and sync lock tokens.
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// entropy failure is unrecoverable
		panic("uuid: failed to generate v7: " + err.Error())
	}
	return id.String()
}
