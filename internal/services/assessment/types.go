package assessment

import (
	"insuro/internal/models"
	"insuro/internal/services/scoring"
)

// Recommendation is the reviewer hint returned by the assessment pass.
type Recommendation string

const (
	RecommendManualReview   Recommendation = "Manual Review Required"
	RecommendApprove        Recommendation = "Approve"
	RecommendStandardReview Recommendation = "Standard Review"
)

// Verification reasons.
const (
	ReasonNoFraud        = "No fraud detected"
	ReasonPotentialFraud = "Potential fraud detected"
)

// ClaimFields are optional overrides applied to the stored claim before
// assessment. Empty values keep what is stored.
type ClaimFields struct {
	ClaimType        string `json:"claimType" validate:"omitempty,claimtype"`
	Description      string `json:"description" validate:"max=5000"`
	VehicleMake      string `json:"vehicleMake" validate:"max=64"`
	VehicleModel     string `json:"vehicleModel" validate:"max=64"`
	IncidentLocation string `json:"incidentLocation" validate:"max=255"`
}

func (f *ClaimFields) empty() bool {
	return f == nil || *f == ClaimFields{}
}

// Assessment is the result of the assessment pass.
type Assessment struct {
	ClaimID          string             `json:"claimId"`
	DamageScore      float64            `json:"damageScore"`
	FraudScore       float64            `json:"fraudScore"`
	SettlementAmount int                `json:"settlementAmount"`
	Status           models.ClaimStatus `json:"status"`
	Recommendation   Recommendation     `json:"recommendation"`
	FraudReasons     []string           `json:"fraudReasons"`
}

// Verdict is the result of the verification pass.
type Verdict struct {
	ClaimID          string             `json:"claimId"`
	Status           models.ClaimStatus `json:"status"`
	FraudScore       float64            `json:"fraudScore"`
	SettlementAmount int                `json:"settlementAmount"`
	Approved         bool               `json:"approved"`
	Reason           string             `json:"reason"`
}

// Route maps assessment scores onto a status and recommendation. Fraud is
// checked first so a suspicious claim is never auto-approved.
func Route(th scoring.Thresholds, damage, fraud float64) (models.ClaimStatus, Recommendation) {
	switch {
	case fraud > th.ManualReviewAbove:
		return models.ClaimStatusUnderReview, RecommendManualReview
	case damage > th.AutoApproveAbove:
		return models.ClaimStatusApproved, RecommendApprove
	default:
		return models.ClaimStatusPendingReview, RecommendStandardReview
	}
}

// VerdictFromClaim reports the decision already stored on claim.
func VerdictFromClaim(claim *models.Claim) *Verdict {
	approved := claim.Status == models.ClaimStatusApproved
	reason := claim.DecisionReason
	if reason == "" {
		reason = ReasonPotentialFraud
		if approved {
			reason = ReasonNoFraud
		}
	}
	return &Verdict{
		ClaimID:          claim.ID,
		Status:           claim.Status,
		FraudScore:       claim.FraudScore.Float64,
		SettlementAmount: claim.SettlementAmount.Int,
		Approved:         approved,
		Reason:           reason,
	}
}
