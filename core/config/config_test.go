package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 32, cfg.Server.BodyLimitMB)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "swimadmin", cfg.Database.Name)
	assert.False(t, cfg.Storage.Enabled)
	assert.Equal(t, "swim-uploads", cfg.Storage.Bucket)
	assert.InDelta(t, 0.88, cfg.Ingest.NameThreshold, 0.0001)
	assert.False(t, cfg.Ingest.BlockOnClubMiss)
	assert.False(t, cfg.Ingest.BlockOnNameMismatch)
	assert.Equal(t, 30, cfg.Ingest.RosterCacheSeconds)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("INGEST_BLOCK_ON_CLUB_MISS", "true")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Ingest.BlockOnClubMiss)
}
