package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "gemini-flash-lite-latest", cfg.AI.Gemini.Model)
	assert.Equal(t, "gemini-embedding-001", cfg.AI.Gemini.EmbeddingModel)
	assert.Equal(t, int32(768), cfg.AI.Gemini.EmbeddingDimensions)
	assert.Equal(t, 3, cfg.Analysis.MinSources)
	assert.Equal(t, 5, cfg.Analysis.MaxGaps)
	assert.InDelta(t, 0.3, cfg.Analysis.SimilarityThreshold, 1e-9)
	assert.Equal(t, "5m", cfg.Cache.TTL)
	assert.InDelta(t, 0.1, cfg.Cache.SweepChance, 1e-9)
	assert.Equal(t, 100, cfg.Cache.KeyTextPrefix)
	assert.Equal(t, ".scholarly-cache", cfg.Store.Directory)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	t.Setenv("SCHOLARLY_ANALYSIS_MAX_GAPS", "7")
	t.Setenv("SCHOLARLY_APP_LOG_LEVEL", "debug")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Analysis.MaxGaps)
	assert.Equal(t, "debug", cfg.App.LogLevel)
}

func TestLoadIsIdempotent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load("")
	require.NoError(t, err)
	second, err := Load("")
	require.NoError(t, err)

	assert.Same(t, first, second)
}

func TestGetLoadsWhenUnset(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg := Get()

	require.NotNil(t, cfg)
	assert.Equal(t, 3, cfg.Analysis.MinSources)
}

func TestGeminiTimeoutParsing(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout(), "empty timeout falls back to the default")

	cfg.AI.Gemini.Timeout = "45s"
	assert.Equal(t, 45*time.Second, cfg.GeminiTimeout())

	cfg.AI.Gemini.Timeout = "not-a-duration"
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout())

	cfg.AI.Gemini.Timeout = "-5s"
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout())
}

func TestCacheTTLParsing(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL(), "empty TTL falls back to the default")

	cfg.Cache.TTL = "90s"
	assert.Equal(t, 90*time.Second, cfg.CacheTTL())

	cfg.Cache.TTL = "garbage"
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL())
}
