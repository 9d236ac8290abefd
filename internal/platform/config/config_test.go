// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/mangaverse/internal/platform/config"
)

/*
TestLoad_Defaults verifies that optional settings fall back to their defaults.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mangaverse")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, int32(5), cfg.DBMaxConns)
	assert.Equal(t, 2*time.Minute, cfg.SyncLockTTL)
	assert.False(t, cfg.RedisEnabled())
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_MissingDatabaseURL checks that required variables are enforced.
*/
func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_InvalidPoolSize rejects a non-positive pool bound.
*/
func TestLoad_InvalidPoolSize(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mangaverse")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
	t.Setenv("DB_MAX_CONNS", "0")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestLoad_ScraperMirrors parses the site to mirror map.
*/
func TestLoad_ScraperMirrors(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/mangaverse")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "/keys/public.pem")
	t.Setenv("SCRAPER_MIRRORS", "readm=http://mirror:9000,mangadino=http://mirror:9001")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"readm":     "http://mirror:9000",
		"mangadino": "http://mirror:9001",
	}, cfg.ScraperMirrors)
	assert.Equal(t, 15*time.Second, cfg.ScraperTimeout)
}
