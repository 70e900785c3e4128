package claims

import (
	"insuro/internal/models"
	"insuro/internal/services/assessment"
)

// Caller identifies who is making a request.
type Caller struct {
	UserID   string
	Reviewer bool
}

// CallerFromToken builds a Caller from verified token claims.
func CallerFromToken(tc *models.TokenClaims) Caller {
	return Caller{UserID: tc.Identity(), Reviewer: tc.IsReviewer()}
}

type SubmitInput struct {
	PolicyNumber     string `json:"policyNumber" validate:"max=64"`
	ClaimType        string `json:"claimType" validate:"required,claimtype"`
	Description      string `json:"description" validate:"max=5000"`
	IncidentDate     string `json:"incidentDate" validate:"required,notfuture"`
	IncidentTime     string `json:"incidentTime" validate:"omitempty,datetime=15:04"`
	IncidentLocation string `json:"incidentLocation" validate:"max=255"`
	VehicleMake      string `json:"vehicleMake" validate:"max=64"`
	VehicleModel     string `json:"vehicleModel" validate:"max=64"`
}

// SubmitResult carries the stored claim and, when it ran, its assessment.
type SubmitResult struct {
	Claim      *models.Claim          `json:"claim"`
	Assessment *assessment.Assessment `json:"assessment,omitempty"`
}

type FileInput struct {
	FileURL  string `json:"fileUrl" validate:"required,url"`
	FileType string `json:"fileType" validate:"max=64"`
}

type ListQuery struct {
	Status string `validate:"omitempty,claimstatus"`
	Limit  int    `validate:"min=1,max=100"`
	Offset int    `validate:"min=0"`
}
