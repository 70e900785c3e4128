package models

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Claim is a vehicle-insurance claim together with its assessment results.
// Score and settlement fields stay null until the engine has assessed the claim.
type Claim struct {
	ID               string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID           string      `gorm:"type:varchar(64);index" json:"user_id"`
	PolicyNumber     string      `gorm:"type:varchar(64)" json:"policy_number,omitempty"`
	ClaimType        ClaimType   `gorm:"type:varchar(64);not null" json:"claim_type"`
	Description      string      `gorm:"type:text" json:"description"`
	IncidentDate     time.Time   `gorm:"type:date;not null" json:"incident_date"`
	IncidentTime     string      `gorm:"type:varchar(8)" json:"incident_time,omitempty"`
	IncidentLocation string      `gorm:"type:varchar(255)" json:"incident_location,omitempty"`
	VehicleMake      string      `gorm:"type:varchar(64)" json:"vehicle_make,omitempty"`
	VehicleModel     string      `gorm:"type:varchar(64)" json:"vehicle_model,omitempty"`
	Status           ClaimStatus `gorm:"type:varchar(32);not null;default:'Pending';index" json:"status"`

	DamageScore         nulls.Float64  `gorm:"type:double precision" json:"damage_score"`
	FraudScore          nulls.Float64  `gorm:"type:double precision" json:"fraud_score"`
	FraudFactors        JSON           `gorm:"type:jsonb" json:"fraud_factors,omitempty"`
	FraudReasons        pq.StringArray `gorm:"type:text[]" json:"fraud_reasons,omitempty"`
	RiskLevel           string         `gorm:"type:varchar(16)" json:"risk_level,omitempty"`
	EstimatedSettlement nulls.Int      `gorm:"type:integer" json:"estimated_settlement"`
	SettlementAmount    nulls.Int      `gorm:"type:integer" json:"settlement_amount"`
	SettlementFinalized bool           `gorm:"not null;default:false" json:"settlement_finalized"`
	AssessedAt          nulls.Time     `gorm:"type:timestamptz" json:"assessed_at"`
	VerifiedAt          nulls.Time     `gorm:"type:timestamptz" json:"verified_at"`
	ReviewedBy          string         `gorm:"type:varchar(64)" json:"reviewed_by,omitempty"`
	DecisionReason      string         `gorm:"type:text" json:"decision_reason,omitempty"`

	Files []ClaimFile `gorm:"foreignKey:ClaimID" json:"files,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an id and the initial status.
func (c *Claim) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = ClaimStatusPending
	}
	return nil
}

// SubmittedAt is the store-assigned creation timestamp.
func (c *Claim) SubmittedAt() time.Time {
	return c.CreatedAt
}

// Risk levels assigned by the fraud review.
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// ClaimSummary aggregates claim counts and amounts for reviewers.
type ClaimSummary struct {
	Total              int64                 `json:"total"`
	ByStatus           map[ClaimStatus]int64 `json:"by_status"`
	AverageFraudScore  float64               `json:"average_fraud_score"`
	ApprovedSettlement int64                 `json:"approved_settlement_total"`
	HighRisk           int64                 `json:"high_risk"`
}
