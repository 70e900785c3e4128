package scoring

import (
	"time"

	"github.com/rotisserie/eris"

	"insuro/internal/models"
)

// Engine bundles the scorers built from one validated Profiles value.
// It holds no mutable state besides the random source.
type Engine struct {
	damage     *DamageScorer
	fraud      map[FraudProfile]*FraudScorer
	settlement *SettlementCalculator
	thresholds Thresholds
}

// NewEngine validates p and builds every scorer from it.
func NewEngine(p Profiles, rnd RandomSource, loc *time.Location) (*Engine, error) {
	if err := ValidateProfiles(p); err != nil {
		return nil, err
	}

	fraud := make(map[FraudProfile]*FraudScorer, len(p.Fraud.Profiles))
	for name := range p.Fraud.Profiles {
		fraud[name] = NewFraudScorer(name, p.Fraud, loc)
	}

	return &Engine{
		damage:     NewDamageScorer(p.Damage),
		fraud:      fraud,
		settlement: NewSettlementCalculator(p.Settlement, rnd),
		thresholds: p.Thresholds,
	}, nil
}

// NewDefaultEngine builds an engine from the embedded profiles.
func NewDefaultEngine(rnd RandomSource, loc *time.Location) (*Engine, error) {
	p, err := DefaultProfiles()
	if err != nil {
		return nil, err
	}
	return NewEngine(p, rnd, loc)
}

// Damage scores damage severity.
func (e *Engine) Damage(claimType models.ClaimType, description string) float64 {
	return e.damage.Score(claimType, description)
}

// Fraud scores in under the named profile.
func (e *Engine) Fraud(profile FraudProfile, in FraudInput) (FraudAssessment, error) {
	scorer, ok := e.fraud[profile]
	if !ok {
		return FraudAssessment{}, eris.Errorf("scoring: unknown fraud profile %q", profile)
	}
	return scorer.Score(in), nil
}

// Estimate is the assessment-pass settlement.
func (e *Engine) Estimate(damageScore float64, claimType models.ClaimType, vehicleMake string) int {
	return e.settlement.Estimate(damageScore, claimType, vehicleMake)
}

// Finalize draws the approval-path settlement.
func (e *Engine) Finalize(claimType models.ClaimType) int {
	return e.settlement.Finalize(claimType)
}

// Thresholds returns the routing thresholds.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// RiskLevel buckets a fraud score.
func (e *Engine) RiskLevel(fraudScore float64) string {
	switch {
	case fraudScore >= e.thresholds.HighRiskAtLeast:
		return models.RiskHigh
	case fraudScore >= e.thresholds.MediumRiskAtLeast:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// InputFromClaim assembles the fraud input for a stored claim.
func InputFromClaim(c *models.Claim, fileCount int) FraudInput {
	return FraudInput{
		Description:  c.Description,
		ClaimType:    c.ClaimType,
		IncidentDate: c.IncidentDate,
		SubmittedAt:  c.SubmittedAt(),
		Location:     c.IncidentLocation,
		FileCount:    fileCount,
	}
}
