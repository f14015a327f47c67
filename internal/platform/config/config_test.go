// Copyright (c) 2025 Crimson
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "test-public-key")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Postgres.Host)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 15*time.Minute, cfg.Cache.TTL)
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("JWT_PUBLIC_KEY", "test-public-key")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_CONN_MAX_LIFETIME", "5m")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("REDIS_ADDRESS", "redis.internal:6380")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, 5*time.Minute, cfg.Database.Postgres.ConnMaxLifetime)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis.internal:6380", cfg.Cache.Redis.Address)
}

func TestValidate_MissingJWTKey(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Postgres: PostgreSQLConfig{Database: "crimson"}},
		Cache:    CacheConfig{Backend: "memory"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_PUBLIC_KEY")
}

func TestValidate_InvalidCacheBackend(t *testing.T) {
	cfg := &Config{
		JWT:      JWTConfig{PublicKey: "key"},
		Database: DatabaseConfig{Postgres: PostgreSQLConfig{Database: "crimson"}},
		Cache:    CacheConfig{Backend: "memcached"},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_BACKEND")
}
