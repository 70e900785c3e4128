// Package scoring implements the rule-based claim assessment engine: damage
// severity, fraud suspicion and settlement estimation. Everything here is
// pure; persistence and status routing live in the assessment service.
package scoring

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"insuro/internal/models"
)

//go:embed profiles.yaml
var defaultProfilesYAML []byte

// FraudProfile names a fraud weighting calibration.
type FraudProfile string

const (
	// ProfileAssessment is the lighter pass run at submission time.
	ProfileAssessment FraudProfile = "assessment"
	// ProfileVerification is the manual verification pass; it adds the
	// missing-documentation penalty.
	ProfileVerification FraudProfile = "verification"
	// ProfileReview is the post-hoc reviewer fraud sweep.
	ProfileReview FraudProfile = "review"
)

var requiredProfiles = []FraudProfile{ProfileAssessment, ProfileVerification, ProfileReview}

// Profiles is the complete, immutable tuning of one engine instance.
type Profiles struct {
	Damage     DamageConfig     `yaml:"damage"`
	Fraud      FraudConfig      `yaml:"fraud"`
	Settlement SettlementConfig `yaml:"settlement"`
	Thresholds Thresholds       `yaml:"thresholds"`
}

// DamageConfig tunes the damage scorer.
type DamageConfig struct {
	BaseScore     float64                      `yaml:"base_score"`
	Tiers         []SeverityTier               `yaml:"tiers"`
	TypeModifiers map[models.ClaimType]float64 `yaml:"type_modifiers"`
}

// SeverityTier is one keyword tier. Tiers are checked in order and only the
// first match contributes.
type SeverityTier struct {
	Name     string   `yaml:"name"`
	Bonus    float64  `yaml:"bonus"`
	Keywords []string `yaml:"keywords"`
}

// FraudConfig holds the fraud signals shared by every profile plus the
// per-profile weights.
type FraudConfig struct {
	Keywords            []string                      `yaml:"keywords"`
	SuspiciousLocations []string                      `yaml:"suspicious_locations"`
	BriefLength         int                           `yaml:"brief_length"`
	VerboseLength       int                           `yaml:"verbose_length"`
	UnusualHours        []int                         `yaml:"unusual_hours"`
	LateFilingDays      int                           `yaml:"late_filing_days"`
	Profiles            map[FraudProfile]FraudWeights `yaml:"profiles"`
}

// FraudWeights are the additive contributions of each fraud signal.
type FraudWeights struct {
	Keyword     float64 `yaml:"keyword"`
	Brief       float64 `yaml:"brief"`
	Verbose     float64 `yaml:"verbose"`
	UnusualHour float64 `yaml:"unusual_hour"`
	LateFiling  float64 `yaml:"late_filing"`
	MissingDocs float64 `yaml:"missing_docs"`
	Location    float64 `yaml:"location"`
}

// UnmarshalYAML merges profile weights field by field, so an override that
// names one weight keeps the others. Every other key replaces its value.
func (c *FraudConfig) UnmarshalYAML(node *yaml.Node) error {
	type plain FraudConfig

	base := make(map[FraudProfile]FraudWeights, len(c.Profiles))
	for name, w := range c.Profiles {
		base[name] = w
	}

	var raw struct {
		Profiles map[FraudProfile]yaml.Node `yaml:"profiles"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if err := node.Decode((*plain)(c)); err != nil {
		return err
	}
	if len(raw.Profiles) == 0 {
		return nil
	}

	if c.Profiles == nil {
		c.Profiles = make(map[FraudProfile]FraudWeights, len(raw.Profiles))
	}
	for name, n := range raw.Profiles {
		w := base[name]
		if err := n.Decode(&w); err != nil {
			return eris.Wrapf(err, "fraud profile %q", name)
		}
		c.Profiles[name] = w
	}
	return nil
}

// SettlementConfig tunes both settlement paths.
type SettlementConfig struct {
	DamageBands       []SettlementBand             `yaml:"damage_bands"`
	TypeMultipliers   map[models.ClaimType]float64 `yaml:"type_multipliers"`
	DefaultMultiplier float64                      `yaml:"default_multiplier"`
	LuxuryBrands      []string                     `yaml:"luxury_brands"`
	LuxuryMultiplier  float64                      `yaml:"luxury_multiplier"`
	FinalBase         map[models.ClaimType]int     `yaml:"final_base"`
	FinalDefault      int                          `yaml:"final_default"`
	VariationMin      float64                      `yaml:"variation_min"`
	VariationMax      float64                      `yaml:"variation_max"`
}

// SettlementBand maps damage scores at or above Min to Amount.
type SettlementBand struct {
	Min    float64 `yaml:"min"`
	Amount int     `yaml:"amount"`
}

// Thresholds drive status routing and risk levels.
type Thresholds struct {
	ManualReviewAbove  float64 `yaml:"manual_review_above"`
	AutoApproveAbove   float64 `yaml:"auto_approve_above"`
	VerifyApproveBelow float64 `yaml:"verify_approve_below"`
	HighRiskAtLeast    float64 `yaml:"high_risk_at_least"`
	MediumRiskAtLeast  float64 `yaml:"medium_risk_at_least"`
}

// DefaultProfiles returns a fresh copy of the built-in tuning.
func DefaultProfiles() (Profiles, error) {
	var p Profiles
	if err := yaml.Unmarshal(defaultProfilesYAML, &p); err != nil {
		return Profiles{}, eris.Wrap(err, "scoring: parse default profiles")
	}
	return p, nil
}

// LoadProfiles returns the defaults overlaid with the YAML file at path.
// An empty path yields the defaults.
func LoadProfiles(path string) (Profiles, error) {
	p, err := DefaultProfiles()
	if err != nil {
		return Profiles{}, err
	}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Profiles{}, eris.Wrapf(err, "scoring: read profiles %s", path)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profiles{}, eris.Wrapf(err, "scoring: parse profiles %s", path)
	}
	if err := ValidateProfiles(p); err != nil {
		return Profiles{}, err
	}
	return p, nil
}

// ValidateProfiles checks that a Profiles value is internally consistent.
func ValidateProfiles(p Profiles) error {
	var errs []string

	if !inUnit(p.Damage.BaseScore) {
		errs = append(errs, "damage.base_score must be within [0,1]")
	}
	if len(p.Damage.Tiers) == 0 {
		errs = append(errs, "damage.tiers must not be empty")
	}
	for _, tier := range p.Damage.Tiers {
		if len(tier.Keywords) == 0 {
			errs = append(errs, fmt.Sprintf("damage tier %q has no keywords", tier.Name))
		}
		if !inUnit(tier.Bonus) {
			errs = append(errs, fmt.Sprintf("damage tier %q bonus must be within [0,1]", tier.Name))
		}
	}

	if len(p.Fraud.Keywords) == 0 {
		errs = append(errs, "fraud.keywords must not be empty")
	}
	if p.Fraud.BriefLength < 0 || p.Fraud.VerboseLength <= p.Fraud.BriefLength {
		errs = append(errs, "fraud.verbose_length must exceed fraud.brief_length")
	}
	for _, h := range p.Fraud.UnusualHours {
		if h < 0 || h > 23 {
			errs = append(errs, fmt.Sprintf("fraud.unusual_hours contains %d", h))
		}
	}
	for _, name := range requiredProfiles {
		w, ok := p.Fraud.Profiles[name]
		if !ok {
			errs = append(errs, fmt.Sprintf("fraud profile %q is missing", name))
			continue
		}
		for field, v := range map[string]float64{
			"keyword":      w.Keyword,
			"brief":        w.Brief,
			"verbose":      w.Verbose,
			"unusual_hour": w.UnusualHour,
			"late_filing":  w.LateFiling,
			"missing_docs": w.MissingDocs,
			"location":     w.Location,
		} {
			if !inUnit(v) {
				errs = append(errs, fmt.Sprintf("fraud profile %q %s must be within [0,1]", name, field))
			}
		}
	}

	if len(p.Settlement.DamageBands) == 0 {
		errs = append(errs, "settlement.damage_bands must not be empty")
	} else {
		lowest := p.Settlement.DamageBands[0].Min
		for _, b := range p.Settlement.DamageBands {
			if b.Amount < 0 {
				errs = append(errs, "settlement band amounts must be >= 0")
			}
			if b.Min < lowest {
				lowest = b.Min
			}
		}
		if lowest > 0 {
			errs = append(errs, "settlement.damage_bands must cover a damage score of 0")
		}
	}
	if p.Settlement.DefaultMultiplier < 0 || p.Settlement.LuxuryMultiplier < 0 {
		errs = append(errs, "settlement multipliers must be >= 0")
	}
	if p.Settlement.FinalDefault < 0 {
		errs = append(errs, "settlement.final_default must be >= 0")
	}
	if p.Settlement.VariationMin < 0 || p.Settlement.VariationMax < p.Settlement.VariationMin {
		errs = append(errs, "settlement variation range is invalid")
	}

	t := p.Thresholds
	if t.MediumRiskAtLeast > t.HighRiskAtLeast {
		errs = append(errs, "thresholds.medium_risk_at_least must not exceed high_risk_at_least")
	}

	if len(errs) > 0 {
		return eris.Errorf("scoring: profile validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// sortedBands returns the bands ordered from the highest lower bound down.
func sortedBands(bands []SettlementBand) []SettlementBand {
	out := make([]SettlementBand, len(bands))
	copy(out, bands)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Min > out[j].Min })
	return out
}

func inUnit(v float64) bool {
	return v >= 0 && v <= 1
}
