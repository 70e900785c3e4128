package scoring

import (
	"math"
	"strings"

	"insuro/internal/models"
)

// DamageScorer estimates damage severity from the claim description and type.
type DamageScorer struct {
	base      float64
	tiers     []SeverityTier
	modifiers map[models.ClaimType]float64
}

// NewDamageScorer builds a scorer from cfg. Keywords are matched lowercased.
func NewDamageScorer(cfg DamageConfig) *DamageScorer {
	tiers := make([]SeverityTier, 0, len(cfg.Tiers))
	for _, t := range cfg.Tiers {
		tiers = append(tiers, SeverityTier{
			Name:     t.Name,
			Bonus:    t.Bonus,
			Keywords: lowerAll(t.Keywords),
		})
	}

	modifiers := make(map[models.ClaimType]float64, len(cfg.TypeModifiers))
	for ct, v := range cfg.TypeModifiers {
		modifiers[canonicalType(ct)] = v
	}

	return &DamageScorer{base: cfg.BaseScore, tiers: tiers, modifiers: modifiers}
}

// Score returns a severity in [0,1]. Only the first matching tier applies.
func (s *DamageScorer) Score(claimType models.ClaimType, description string) float64 {
	score := s.base

	text := strings.ToLower(description)
	for _, tier := range s.tiers {
		if _, ok := firstMatch(text, tier.Keywords); ok {
			score += tier.Bonus
			break
		}
	}

	score += s.modifiers[canonicalType(claimType)]
	return clampScore(score)
}

// clampScore bounds v to [0,1] and rounds to four decimals so threshold
// comparisons are not thrown off by float accumulation.
func clampScore(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return math.Round(v*1e4) / 1e4
}

func firstMatch(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

func canonicalType(ct models.ClaimType) models.ClaimType {
	parsed, ok := models.ParseClaimType(string(ct))
	if !ok {
		return ct
	}
	return parsed
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(strings.TrimSpace(s)))
	}
	return out
}
