package scoring

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insuro/internal/models"
)

func newTestEngine(t *testing.T, rnd RandomSource) *Engine {
	t.Helper()
	e, err := NewDefaultEngine(rnd, time.UTC)
	require.NoError(t, err)
	return e
}

func daytime(day int) time.Time {
	return time.Date(2026, time.March, day, 10, 0, 0, 0, time.UTC)
}

func TestDefaultProfilesAreValid(t *testing.T) {
	p, err := DefaultProfiles()
	require.NoError(t, err)
	require.NoError(t, ValidateProfiles(p))

	assert.Len(t, p.Fraud.Keywords, 10)
	assert.Equal(t, 0.3, p.Fraud.Profiles[ProfileVerification].MissingDocs)
	assert.Zero(t, p.Fraud.Profiles[ProfileAssessment].MissingDocs)
	assert.Equal(t, 1.1, p.Settlement.TypeMultipliers[models.ClaimTypeUninsuredMotorist])
}

func TestValidateProfiles_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Profiles)
		want   string
	}{
		{
			name:   "missing profile",
			mutate: func(p *Profiles) { delete(p.Fraud.Profiles, ProfileReview) },
			want:   `fraud profile "review" is missing`,
		},
		{
			name: "weight out of range",
			mutate: func(p *Profiles) {
				w := p.Fraud.Profiles[ProfileAssessment]
				w.Keyword = 1.5
				p.Fraud.Profiles[ProfileAssessment] = w
			},
			want: "keyword must be within [0,1]",
		},
		{
			name:   "empty keywords",
			mutate: func(p *Profiles) { p.Fraud.Keywords = nil },
			want:   "fraud.keywords must not be empty",
		},
		{
			name:   "bands do not reach zero",
			mutate: func(p *Profiles) { p.Settlement.DamageBands = []SettlementBand{{Min: 0.5, Amount: 100}} },
			want:   "must cover a damage score of 0",
		},
		{
			name:   "bad hour",
			mutate: func(p *Profiles) { p.Fraud.UnusualHours = []int{24} },
			want:   "unusual_hours contains 24",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := DefaultProfiles()
			require.NoError(t, err)
			tt.mutate(&p)

			err = ValidateProfiles(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadProfiles(t *testing.T) {
	t.Run("empty path gives defaults", func(t *testing.T) {
		p, err := LoadProfiles("")
		require.NoError(t, err)
		assert.Equal(t, 0.7, p.Thresholds.ManualReviewAbove)
	})

	t.Run("override file replaces present keys only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		require.NoError(t, os.WriteFile(path, []byte("thresholds:\n  manual_review_above: 0.6\n"), 0o600))

		p, err := LoadProfiles(path)
		require.NoError(t, err)
		assert.Equal(t, 0.6, p.Thresholds.ManualReviewAbove)
		assert.Equal(t, 0.8, p.Thresholds.AutoApproveAbove)
		assert.Len(t, p.Fraud.Keywords, 10)
	})

	t.Run("profile weights merge per weight", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		body := "fraud:\n  profiles:\n    verification:\n      keyword: 0.25\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

		defaults, err := DefaultProfiles()
		require.NoError(t, err)
		p, err := LoadProfiles(path)
		require.NoError(t, err)

		want := defaults.Fraud.Profiles[ProfileVerification]
		want.Keyword = 0.25
		assert.Equal(t, want, p.Fraud.Profiles[ProfileVerification])
		assert.Equal(t, defaults.Fraud.Profiles[ProfileAssessment], p.Fraud.Profiles[ProfileAssessment])
		assert.Equal(t, defaults.Fraud.Keywords, p.Fraud.Keywords)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadProfiles(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid override is rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "profiles.yaml")
		require.NoError(t, os.WriteFile(path, []byte("damage:\n  base_score: 2\n"), 0o600))

		_, err := LoadProfiles(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base_score")
	})
}

func TestDamageScore(t *testing.T) {
	e := newTestEngine(t, FixedSource(0.5))

	tests := []struct {
		name        string
		claimType   models.ClaimType
		description string
		want        float64
	}{
		{"high tier with collision", models.ClaimTypeCollision, "Severe collision damage to front", 1.0},
		{"medium tier wins over low", models.ClaimTypeComprehensive, "Minor scratch on door", 0.85},
		{"low tier with liability", models.ClaimTypeLiability, "small cosmetic issue", 0.7},
		{"empty description keeps type modifier", models.ClaimTypeCollision, "", 0.7},
		{"free-form type has no modifier", models.ClaimTypeTheft, "", 0.5},
		{"type is matched case-insensitively", models.ClaimType("collision"), "Total loss", 1.0},
		{"no keywords", models.ClaimTypeUninsuredMotorist, "The car is fine", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Damage(tt.claimType, tt.description))
		})
	}
}

func TestDamageScore_Bounded(t *testing.T) {
	p, err := DefaultProfiles()
	require.NoError(t, err)
	p.Damage.TypeModifiers[models.ClaimTypeCollision] = 0.9

	s := NewDamageScorer(p.Damage)
	assert.Equal(t, 1.0, s.Score(models.ClaimTypeCollision, "destroyed"))
}

func TestFraudScore_CleanInputIsZero(t *testing.T) {
	e := newTestEngine(t, FixedSource(0.5))
	in := FraudInput{
		Description:  "Rear bumper hit while reversing at home",
		ClaimType:    models.ClaimTypeCollision,
		IncidentDate: daytime(1),
		SubmittedAt:  daytime(6),
		Location:     "Main Street",
		FileCount:    1,
	}

	for _, profile := range []FraudProfile{ProfileAssessment, ProfileVerification, ProfileReview} {
		t.Run(string(profile), func(t *testing.T) {
			res, err := e.Fraud(profile, in)
			require.NoError(t, err)
			assert.Zero(t, res.Score)
			assert.Empty(t, res.Factors)
			assert.Empty(t, res.Reasons)
		})
	}

	in.Location = "Mall Parking Lot"
	want := map[FraudProfile]float64{ProfileAssessment: 0.1, ProfileVerification: 0.1, ProfileReview: 0}
	for profile, score := range want {
		res, err := e.Fraud(profile, in)
		require.NoError(t, err)
		assert.Equal(t, score, res.Score, string(profile))
	}
}

func TestFraudScore_Signals(t *testing.T) {
	clean := "Rear bumper hit while reversing at home"
	long := strings.Repeat("a", 1001)

	tests := []struct {
		name    string
		profile FraudProfile
		input   FraudInput
		want    float64
		factor  string
	}{
		{
			name:    "each keyword counted once",
			profile: ProfileAssessment,
			input:   FraudInput{Description: "stolen, stolen again, STOLEN", SubmittedAt: daytime(2), IncidentDate: daytime(1), FileCount: 1},
			want:    0.2,
			factor:  FactorKeywordPrefix + "stolen",
		},
		{
			name:    "multi-word keyword",
			profile: ProfileReview,
			input:   FraudInput{Description: "I cannot find my car anywhere", SubmittedAt: daytime(2), IncidentDate: daytime(1), FileCount: 1},
			want:    0.15,
			factor:  FactorKeywordPrefix + "cannot find",
		},
		{
			name:    "brief description",
			profile: ProfileAssessment,
			input:   FraudInput{Description: "Dent found", SubmittedAt: daytime(2), IncidentDate: daytime(1), FileCount: 1},
			want:    0.1,
			factor:  FactorBrief,
		},
		{
			name:    "verbose description",
			profile: ProfileVerification,
			input:   FraudInput{Description: long, SubmittedAt: daytime(2), IncidentDate: daytime(1), FileCount: 1},
			want:    0.2,
			factor:  FactorVerbose,
		},
		{
			name:    "unusual hour",
			profile: ProfileAssessment,
			input:   FraudInput{Description: clean, SubmittedAt: time.Date(2026, 3, 2, 23, 30, 0, 0, time.UTC), IncidentDate: daytime(1), FileCount: 1},
			want:    0.1,
			factor:  FactorUnusualHour,
		},
		{
			name:    "early morning is unusual",
			profile: ProfileAssessment,
			input:   FraudInput{Description: clean, SubmittedAt: time.Date(2026, 3, 2, 5, 59, 0, 0, time.UTC), IncidentDate: daytime(1), FileCount: 1},
			want:    0.1,
			factor:  FactorUnusualHour,
		},
		{
			name:    "late filing",
			profile: ProfileAssessment,
			input:   FraudInput{Description: clean, SubmittedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC), IncidentDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), FileCount: 1},
			want:    0.2,
			factor:  FactorLateFiling,
		},
		{
			name:    "missing documents in verification",
			profile: ProfileVerification,
			input:   FraudInput{Description: clean, SubmittedAt: daytime(2), IncidentDate: daytime(1), FileCount: 0},
			want:    0.3,
			factor:  FactorMissingDocs,
		},
		{
			name:    "private property",
			profile: ProfileVerification,
			input:   FraudInput{Description: clean, SubmittedAt: daytime(2), IncidentDate: daytime(1), Location: "Private property, Elm Rd", FileCount: 1},
			want:    0.1,
			factor:  FactorSuspiciousSite,
		},
	}

	e := newTestEngine(t, FixedSource(0.5))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Fraud(tt.profile, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Score)
			assert.Contains(t, res.Factors, tt.factor)
			assert.Len(t, res.Reasons, len(res.Factors))
		})
	}
}

func TestFraudScore_Boundaries(t *testing.T) {
	// +12h keeps a midnight UTC submission out of the unusual-hours window.
	zone := time.FixedZone("NZST", 12*3600)
	e, err := NewDefaultEngine(FixedSource(0.5), zone)
	require.NoError(t, err)

	incident := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	base := FraudInput{
		Description:  strings.Repeat("b", 1000),
		IncidentDate: incident,
		SubmittedAt:  incident.Add(30 * 24 * time.Hour),
		FileCount:    1,
	}

	res, err := e.Fraud(ProfileVerification, base)
	require.NoError(t, err)
	assert.Zero(t, res.Score, "exactly 30 days and 1000 chars are not penalized")

	base.Description = strings.Repeat("b", 20)
	res, err = e.Fraud(ProfileVerification, base)
	require.NoError(t, err)
	assert.Zero(t, res.Score, "20 chars is not brief")

	base.SubmittedAt = time.Date(2026, 1, 5, 22, 59, 0, 0, zone)
	res, err = e.Fraud(ProfileVerification, base)
	require.NoError(t, err)
	assert.Zero(t, res.Score, "22:59 local is a normal hour")
}

func TestFraudScore_ZeroTimesSkipTimingChecks(t *testing.T) {
	e := newTestEngine(t, FixedSource(0.5))
	res, err := e.Fraud(ProfileAssessment, FraudInput{Description: "Rear bumper hit while reversing at home", FileCount: 1})
	require.NoError(t, err)
	assert.Zero(t, res.Score)
}

func TestFraudScore_Clamped(t *testing.T) {
	e := newTestEngine(t, FixedSource(0.5))
	in := FraudInput{
		Description:  "stolen theft missing vandalism mysterious unknown suddenly overnight disappeared cannot find",
		IncidentDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		SubmittedAt:  time.Date(2026, 1, 1, 2, 0, 0, 0, time.UTC),
		Location:     "parking lot",
	}
	res, err := e.Fraud(ProfileVerification, in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Score)
	assert.Len(t, res.Reasons, 14)
}

func TestFraudScore_Deterministic(t *testing.T) {
	e := newTestEngine(t, NewClockSource())
	in := FraudInput{
		Description:  "Car mysteriously disappeared overnight, theft suspected",
		IncidentDate: daytime(1),
		SubmittedAt:  daytime(3),
		FileCount:    0,
	}
	first, err := e.Fraud(ProfileVerification, in)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.Fraud(ProfileVerification, in)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestFraud_UnknownProfile(t *testing.T) {
	e := newTestEngine(t, FixedSource(0.5))
	_, err := e.Fraud(FraudProfile("bogus"), FraudInput{})
	assert.Error(t, err)
}

func TestEstimate(t *testing.T) {
	e := newTestEngine(t, FixedSource(0.5))

	tests := []struct {
		name   string
		damage float64
		ct     models.ClaimType
		make   string
		want   int
	}{
		{"lower bound of top band is inclusive", 0.8, models.ClaimTypeComprehensive, "", 8000},
		{"just below top band", 0.7999, models.ClaimTypeComprehensive, "", 5000},
		{"medium band", 0.6, models.ClaimTypeComprehensive, "Toyota", 5000},
		{"low band", 0.4, models.ClaimTypeComprehensive, "", 3000},
		{"floor band", 0.1, models.ClaimTypeComprehensive, "", 1500},
		{"collision multiplier", 1.0, models.ClaimTypeCollision, "", 9600},
		{"liability multiplier", 0.5, models.ClaimTypeLiability, "", 2400},
		{"uninsured motorist multiplier", 0.65, models.ClaimTypeUninsuredMotorist, "", 5500},
		{"free-form type uses default multiplier", 0.65, models.ClaimTypeTheft, "", 5000},
		{"luxury make", 0.8, models.ClaimTypeCollision, "bmw", 12480},
		{"luxury make with spaces", 0.2, models.ClaimTypeComprehensive, " Porsche ", 1950},
		{"negative damage is clamped", -1, models.ClaimTypeComprehensive, "", 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Estimate(tt.damage, tt.ct, tt.make))
		})
	}
}

func TestFinalize(t *testing.T) {
	tests := []struct {
		name string
		rnd  RandomSource
		ct   models.ClaimType
		want int
	}{
		{"collision at low end", FixedSource(0), models.ClaimTypeCollision, 4000},
		{"collision midpoint", FixedSource(0.5), models.ClaimTypeCollision, 5000},
		{"comprehensive midpoint", FixedSource(0.5), models.ClaimTypeComprehensive, 3000},
		{"liability midpoint", FixedSource(0.5), models.ClaimTypeLiability, 2000},
		{"uninsured motorist midpoint", FixedSource(0.5), models.ClaimTypeUninsuredMotorist, 4000},
		{"free-form type uses default base", FixedSource(0.5), models.ClaimTypeVandalism, 1500},
		{"liability top end", FixedSource(0.75), models.ClaimTypeLiability, 2200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, tt.rnd)
			assert.Equal(t, tt.want, e.Finalize(tt.ct))
		})
	}
}

func TestFinalize_WithinVariationRange(t *testing.T) {
	e := newTestEngine(t, NewSeededSource(7))
	for i := 0; i < 200; i++ {
		got := e.Finalize(models.ClaimTypeCollision)
		assert.GreaterOrEqual(t, got, 4000)
		assert.LessOrEqual(t, got, 6000)
	}
}

func TestSeededSource_Reproducible(t *testing.T) {
	a := NewSeededSource(42)
	b := NewSeededSource(42)
	for i := 0; i < 10; i++ {
		x := a.Float64()
		assert.Equal(t, x, b.Float64())
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}
}

func TestRiskLevel(t *testing.T) {
	e := newTestEngine(t, FixedSource(0.5))
	assert.Equal(t, models.RiskHigh, e.RiskLevel(0.7))
	assert.Equal(t, models.RiskMedium, e.RiskLevel(0.69))
	assert.Equal(t, models.RiskMedium, e.RiskLevel(0.4))
	assert.Equal(t, models.RiskLow, e.RiskLevel(0.39))
}

func TestInputFromClaim(t *testing.T) {
	created := daytime(4)
	c := &models.Claim{
		Description:      "desc",
		ClaimType:        models.ClaimTypeLiability,
		IncidentDate:     daytime(1),
		IncidentLocation: "parking lot",
		CreatedAt:        created,
	}
	in := InputFromClaim(c, 2)
	assert.Equal(t, created, in.SubmittedAt)
	assert.Equal(t, 2, in.FileCount)
	assert.Equal(t, "parking lot", in.Location)
}
