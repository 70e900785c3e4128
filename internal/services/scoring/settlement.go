package scoring

import (
	"math"
	"strings"

	"insuro/internal/models"
)

// SettlementCalculator turns scores and claim data into payout amounts.
type SettlementCalculator struct {
	bands        []SettlementBand
	multipliers  map[models.ClaimType]float64
	defaultMult  float64
	luxury       map[string]struct{}
	luxuryMult   float64
	finalBase    map[models.ClaimType]int
	finalDefault int
	varMin       float64
	varMax       float64
	rnd          RandomSource
}

// NewSettlementCalculator builds a calculator. A nil rnd falls back to a
// clock-seeded source.
func NewSettlementCalculator(cfg SettlementConfig, rnd RandomSource) *SettlementCalculator {
	if rnd == nil {
		rnd = NewClockSource()
	}

	multipliers := make(map[models.ClaimType]float64, len(cfg.TypeMultipliers))
	for ct, v := range cfg.TypeMultipliers {
		multipliers[canonicalType(ct)] = v
	}
	finalBase := make(map[models.ClaimType]int, len(cfg.FinalBase))
	for ct, v := range cfg.FinalBase {
		finalBase[canonicalType(ct)] = v
	}
	luxury := make(map[string]struct{}, len(cfg.LuxuryBrands))
	for _, b := range cfg.LuxuryBrands {
		luxury[strings.ToLower(strings.TrimSpace(b))] = struct{}{}
	}

	return &SettlementCalculator{
		bands:        sortedBands(cfg.DamageBands),
		multipliers:  multipliers,
		defaultMult:  cfg.DefaultMultiplier,
		luxury:       luxury,
		luxuryMult:   cfg.LuxuryMultiplier,
		finalBase:    finalBase,
		finalDefault: cfg.FinalDefault,
		varMin:       cfg.VariationMin,
		varMax:       cfg.VariationMax,
		rnd:          rnd,
	}
}

// Estimate is the deterministic assessment-pass settlement.
func (c *SettlementCalculator) Estimate(damageScore float64, claimType models.ClaimType, vehicleMake string) int {
	damage := clampScore(damageScore)

	base := 0
	for _, band := range c.bands {
		if damage >= band.Min {
			base = band.Amount
			break
		}
	}

	mult, ok := c.multipliers[canonicalType(claimType)]
	if !ok {
		mult = c.defaultMult
	}
	amount := float64(base) * mult
	if c.IsLuxury(vehicleMake) {
		amount *= c.luxuryMult
	}
	return nonNegative(amount)
}

// Finalize draws the approval-path settlement for claimType.
func (c *SettlementCalculator) Finalize(claimType models.ClaimType) int {
	base, ok := c.finalBase[canonicalType(claimType)]
	if !ok {
		base = c.finalDefault
	}
	factor := c.varMin + (c.varMax-c.varMin)*c.rnd.Float64()
	return nonNegative(float64(base) * factor)
}

// IsLuxury reports whether vehicleMake is one of the configured luxury brands.
func (c *SettlementCalculator) IsLuxury(vehicleMake string) bool {
	_, ok := c.luxury[strings.ToLower(strings.TrimSpace(vehicleMake))]
	return ok
}

func nonNegative(v float64) int {
	r := math.Round(v)
	if math.IsNaN(r) || r < 0 {
		return 0
	}
	return int(r)
}
