package scoring

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"insuro/internal/models"
)

// Factor keys recorded in FraudAssessment.Factors.
const (
	FactorKeywordPrefix  = "keyword:"
	FactorBrief          = "brief_description"
	FactorVerbose        = "verbose_description"
	FactorUnusualHour    = "unusual_hours"
	FactorLateFiling     = "late_filing"
	FactorMissingDocs    = "missing_documentation"
	FactorSuspiciousSite = "suspicious_location"
)

// FraudInput is everything the fraud scorer looks at.
type FraudInput struct {
	Description  string
	ClaimType    models.ClaimType
	IncidentDate time.Time
	SubmittedAt  time.Time
	Location     string
	FileCount    int
}

// FraudAssessment is a fraud score plus the factors that produced it.
type FraudAssessment struct {
	Score   float64            `json:"score"`
	Factors map[string]float64 `json:"factors"`
	Reasons []string           `json:"reasons"`
}

// FraudScorer computes suspicion scores for one weighting profile.
type FraudScorer struct {
	profile   FraudProfile
	weights   FraudWeights
	keywords  []string
	locations []string
	brief     int
	verbose   int
	hours     map[int]struct{}
	lateAfter time.Duration
	loc       *time.Location
}

// NewFraudScorer builds a scorer for profile. Submission hours are read in
// loc; a nil loc means time.Local.
func NewFraudScorer(profile FraudProfile, cfg FraudConfig, loc *time.Location) *FraudScorer {
	if loc == nil {
		loc = time.Local
	}
	hours := make(map[int]struct{}, len(cfg.UnusualHours))
	for _, h := range cfg.UnusualHours {
		hours[h] = struct{}{}
	}
	return &FraudScorer{
		profile:   profile,
		weights:   cfg.Profiles[profile],
		keywords:  lowerAll(cfg.Keywords),
		locations: lowerAll(cfg.SuspiciousLocations),
		brief:     cfg.BriefLength,
		verbose:   cfg.VerboseLength,
		hours:     hours,
		lateAfter: time.Duration(cfg.LateFilingDays) * 24 * time.Hour,
		loc:       loc,
	}
}

// Profile returns the weighting profile this scorer applies.
func (s *FraudScorer) Profile() FraudProfile {
	return s.profile
}

// Score evaluates in. Factors with a zero weight are neither added nor reported.
func (s *FraudScorer) Score(in FraudInput) FraudAssessment {
	res := FraudAssessment{Factors: map[string]float64{}, Reasons: []string{}}
	total := 0.0

	add := func(key string, weight float64, reason string) {
		if weight <= 0 {
			return
		}
		total += weight
		res.Factors[key] = weight
		res.Reasons = append(res.Reasons, reason)
	}

	text := strings.ToLower(in.Description)
	for _, kw := range s.keywords {
		if kw != "" && strings.Contains(text, kw) {
			add(FactorKeywordPrefix+kw, s.weights.Keyword, fmt.Sprintf("Suspicious keyword %q in description", kw))
		}
	}

	length := utf8.RuneCountInString(in.Description)
	switch {
	case length < s.brief:
		add(FactorBrief, s.weights.Brief, "Description is unusually brief")
	case length > s.verbose:
		add(FactorVerbose, s.weights.Verbose, "Description is unusually long")
	}

	if !in.SubmittedAt.IsZero() {
		if _, ok := s.hours[in.SubmittedAt.In(s.loc).Hour()]; ok {
			add(FactorUnusualHour, s.weights.UnusualHour, "Submitted during unusual hours")
		}
		if !in.IncidentDate.IsZero() && absDuration(in.SubmittedAt.Sub(in.IncidentDate)) > s.lateAfter {
			add(FactorLateFiling, s.weights.LateFiling, "Long delay between incident and claim submission")
		}
	}

	if in.FileCount == 0 {
		add(FactorMissingDocs, s.weights.MissingDocs, "No supporting documents uploaded")
	}

	if site, ok := firstMatch(strings.ToLower(in.Location), s.locations); ok {
		add(FactorSuspiciousSite, s.weights.Location, fmt.Sprintf("Incident reported at a %s", site))
	}

	res.Score = clampScore(total)
	return res
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
