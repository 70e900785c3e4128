package main

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"insuro/internal/config"
)

// Flag names map onto the environment keys they override.
var flagKeys = map[string]string{
	"profiles":     "SCORING_PROFILES_PATH",
	"timezone":     "SCORING_TIMEZONE",
	"seed":         "SETTLEMENT_SEED",
	"cache-driver": "CACHE_DRIVER",
	"concurrency":  "FRAUD_REVIEW_CONCURRENCY",
}

func registerFlags(flags *pflag.FlagSet) {
	flags.String("profiles", "", "scoring profiles YAML file")
	flags.String("timezone", "", "time zone used for submission-hour checks")
	flags.Uint64("seed", 0, "seed for the settlement random source")
	flags.String("cache-driver", "", "cache driver (redis or memory)")
	flags.Int("concurrency", 0, "fraud review worker count")
}

// bindFlags layers explicitly set flags over the environment.
func bindFlags(flags *pflag.FlagSet) *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
	return v
}

// applyOverrides copies every value set in v onto cfg.
func applyOverrides(v *viper.Viper, cfg *config.Config) {
	if v.IsSet("SCORING_PROFILES_PATH") {
		cfg.Scoring.ProfilesPath = v.GetString("SCORING_PROFILES_PATH")
	}
	if v.IsSet("SCORING_TIMEZONE") {
		cfg.Scoring.TimeZone = v.GetString("SCORING_TIMEZONE")
	}
	if v.IsSet("SETTLEMENT_SEED") {
		cfg.Scoring.SettlementSeed = v.GetUint64("SETTLEMENT_SEED")
		cfg.Scoring.SeedSet = true
	}
	if v.IsSet("CACHE_DRIVER") {
		cfg.Cache.Driver = strings.ToLower(v.GetString("CACHE_DRIVER"))
	}
	if v.IsSet("FRAUD_REVIEW_CONCURRENCY") {
		cfg.ReviewWorker = v.GetInt("FRAUD_REVIEW_CONCURRENCY")
	}
}
