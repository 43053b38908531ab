package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, 49, cfg.POTrustDays)
	assert.Equal(t, 100, cfg.ProgressEvery)
	assert.False(t, cfg.LogRuns)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PLANNR_DB", "/tmp/test-plannr.db")
	t.Setenv("PLANNR_PO_TRUST_DAYS", "14")
	t.Setenv("PLANNR_PROGRESS_EVERY", "50")
	t.Setenv("PLANNR_LOG_RUNS", "yes")

	cfg := Load()

	assert.Equal(t, "/tmp/test-plannr.db", cfg.DBPath)
	assert.Equal(t, 14, cfg.POTrustDays)
	assert.Equal(t, 50, cfg.ProgressEvery)
	assert.True(t, cfg.LogRuns)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("PLANNR_PO_TRUST_DAYS", "soon")
	t.Setenv("PLANNR_LOG_RUNS", "maybe")

	cfg := Load()

	assert.Equal(t, 49, cfg.POTrustDays)
	assert.False(t, cfg.LogRuns)
}
