package main

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insuro/internal/config"
)

func TestApplyOverrides(t *testing.T) {
	for _, key := range flagKeys {
		t.Setenv(key, "")
	}
	t.Setenv("SCORING_TIMEZONE", "Pacific/Auckland")

	flags := pflag.NewFlagSet("claimctl", pflag.ContinueOnError)
	registerFlags(flags)
	require.NoError(t, flags.Parse([]string{"--profiles", "tuning.yaml", "--seed", "9", "--cache-driver", "Memory"}))

	cfg := config.Config{ReviewWorker: 4}
	applyOverrides(bindFlags(flags), &cfg)

	assert.Equal(t, "tuning.yaml", cfg.Scoring.ProfilesPath)
	assert.Equal(t, "Pacific/Auckland", cfg.Scoring.TimeZone)
	assert.True(t, cfg.Scoring.SeedSet)
	assert.Equal(t, uint64(9), cfg.Scoring.SettlementSeed)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, 4, cfg.ReviewWorker)
}

func TestApplyOverrides_NothingSet(t *testing.T) {
	for _, key := range flagKeys {
		t.Setenv(key, "")
	}
	flags := pflag.NewFlagSet("claimctl", pflag.ContinueOnError)
	registerFlags(flags)
	require.NoError(t, flags.Parse(nil))

	cfg := config.Config{Scoring: config.ScoringConfig{TimeZone: "UTC"}}
	applyOverrides(bindFlags(flags), &cfg)
	assert.Equal(t, "UTC", cfg.Scoring.TimeZone)
	assert.False(t, cfg.Scoring.SeedSet)
}
