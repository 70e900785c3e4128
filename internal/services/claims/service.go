// Package claims handles claim intake and claimant-facing reads.
package claims

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "insuro/internal/errors"
	"insuro/internal/models"
	"insuro/internal/repositories"
	"insuro/internal/services/assessment"
	"insuro/internal/services/notification"
	"insuro/internal/validation"
)

// Assessor runs the assessment pass on a stored claim.
type Assessor interface {
	Assess(ctx context.Context, claimID string, fields *assessment.ClaimFields) (*assessment.Assessment, error)
}

type Service struct {
	repo      repositories.ClaimRepository
	assessor  Assessor
	notifier  notification.Notifier
	validator *validation.Validator
}

func NewService(repo repositories.ClaimRepository, assessor Assessor, notifier notification.Notifier, validator *validation.Validator) *Service {
	return &Service{
		repo:      repo,
		assessor:  assessor,
		notifier:  notifier,
		validator: validator,
	}
}

// Submit stores a new Pending claim and runs the assessment pass on it.
// An assessment failure leaves the claim Pending and is only logged.
func (s *Service) Submit(ctx context.Context, userID string, in SubmitInput) (*SubmitResult, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	claimType, _ := models.ParseClaimType(in.ClaimType)
	incident, err := time.Parse(validation.DateLayout, in.IncidentDate)
	if err != nil {
		return nil, apperrors.Validation("invalid incident date", err)
	}

	claim := &models.Claim{
		UserID:           userID,
		PolicyNumber:     in.PolicyNumber,
		ClaimType:        claimType,
		Description:      in.Description,
		IncidentDate:     incident,
		IncidentTime:     in.IncidentTime,
		IncidentLocation: in.IncidentLocation,
		VehicleMake:      in.VehicleMake,
		VehicleModel:     in.VehicleModel,
		Status:           models.ClaimStatusPending,
	}
	if err := s.repo.Create(ctx, claim); err != nil {
		return nil, err
	}
	zap.L().Info("claim submitted",
		zap.String("claim_id", claim.ID),
		zap.String("user_id", userID),
		zap.String("claim_type", string(claimType)),
	)

	if s.notifier != nil {
		event := notification.Event{
			Type:      notification.EventClaimSubmitted,
			ClaimID:   claim.ID,
			UserID:    userID,
			ClaimType: claimType,
			To:        claim.Status,
		}
		if err := s.notifier.Notify(ctx, event); err != nil {
			zap.L().Warn("submission notification failed", zap.String("claim_id", claim.ID), zap.Error(err))
		}
	}

	result := &SubmitResult{Claim: claim}
	a, err := s.assessor.Assess(ctx, claim.ID, nil)
	if err != nil {
		zap.L().Error("assessment after submission failed", zap.String("claim_id", claim.ID), zap.Error(err))
		return result, nil
	}
	result.Assessment = a

	if fresh, err := s.repo.FindByID(ctx, claim.ID); err == nil {
		result.Claim = fresh
	} else {
		claim.Status = a.Status
	}
	return result, nil
}

// AttachFile records a document reference on a claim the caller can see.
func (s *Service) AttachFile(ctx context.Context, caller Caller, claimID string, in FileInput) (*models.ClaimFile, error) {
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, caller, claimID); err != nil {
		return nil, err
	}

	file := &models.ClaimFile{
		ClaimID:  claimID,
		FileURL:  in.FileURL,
		FileType: in.FileType,
	}
	if err := s.repo.AddFile(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// Get returns a claim. Claimants only see their own claims; anything else
// is reported as not found.
func (s *Service) Get(ctx context.Context, caller Caller, claimID string) (*models.Claim, error) {
	claim, err := s.repo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !caller.Reviewer && claim.UserID != caller.UserID {
		return nil, apperrors.NotFound(claimID)
	}
	return claim, nil
}

// List pages through the caller's claims, or all claims for reviewers.
func (s *Service) List(ctx context.Context, caller Caller, q ListQuery) ([]models.Claim, int64, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, 0, err
	}
	filter := repositories.ClaimFilter{
		Status: models.ClaimStatus(q.Status),
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if !caller.Reviewer {
		filter.UserID = caller.UserID
	}
	return s.repo.List(ctx, filter)
}
