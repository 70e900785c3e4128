package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insuro/internal/config"
	"insuro/internal/models"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine(config.ScoringConfig{TimeZone: "UTC", SettlementSeed: 7, SeedSet: true})
	require.NoError(t, err)
	assert.Equal(t, 0.8, engine.Thresholds().AutoApproveAbove)

	again, err := NewEngine(config.ScoringConfig{TimeZone: "UTC", SettlementSeed: 7, SeedSet: true})
	require.NoError(t, err)
	assert.Equal(t, engine.Finalize(models.ClaimTypeCollision), again.Finalize(models.ClaimTypeCollision))
}

func TestNewEngine_ProfileOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte("thresholds:\n  auto_approve_above: 0.9\n"), 0o600))

	engine, err := NewEngine(config.ScoringConfig{ProfilesPath: path, TimeZone: "UTC"})
	require.NoError(t, err)
	assert.Equal(t, 0.9, engine.Thresholds().AutoApproveAbove)
}

func TestNewEngine_Errors(t *testing.T) {
	_, err := NewEngine(config.ScoringConfig{TimeZone: "Mars/Olympus"})
	assert.Error(t, err)

	_, err = NewEngine(config.ScoringConfig{ProfilesPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}
