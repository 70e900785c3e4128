// Package assessment runs the scoring engine against stored claims, applies
// the resulting status transition and persists the outcome.
package assessment

import (
	"context"
	"time"

	"github.com/gobuffalo/nulls"
	"go.uber.org/zap"

	apperrors "insuro/internal/errors"
	"insuro/internal/models"
	"insuro/internal/repositories"
	"insuro/internal/services/notification"
	"insuro/internal/services/scoring"
	"insuro/internal/validation"
)

type Service struct {
	repo      repositories.ClaimRepository
	engine    *scoring.Engine
	notifier  notification.Notifier
	validator *validation.Validator
	now       func() time.Time
}

func NewService(repo repositories.ClaimRepository, engine *scoring.Engine, notifier notification.Notifier, validator *validation.Validator) *Service {
	return &Service{
		repo:      repo,
		engine:    engine,
		notifier:  notifier,
		validator: validator,
		now:       time.Now,
	}
}

// Assess runs the assessment pass on claimID. Non-empty fields overwrite
// the stored values first, which is only allowed while the claim is Pending.
// A claim that has left Pending is rescored in place: it keeps its status and
// settlement, and a different routing fails with InvalidTransition.
func (s *Service) Assess(ctx context.Context, claimID string, fields *ClaimFields) (*Assessment, error) {
	if fields != nil {
		if err := s.validator.Struct(fields); err != nil {
			return nil, err
		}
	}

	claim, err := s.repo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	from := claim.Status
	if !fields.empty() && from != models.ClaimStatusPending {
		return nil, apperrors.Locked(claim.ID, string(from))
	}
	overlay(claim, fields)

	claimType, ok := models.ParseClaimType(string(claim.ClaimType))
	if !ok {
		return nil, apperrors.Validation("claim type is required", nil)
	}
	claim.ClaimType = claimType

	damage := s.engine.Damage(claimType, claim.Description)
	fraud, err := s.engine.Fraud(scoring.ProfileAssessment, scoring.InputFromClaim(claim, len(claim.Files)))
	if err != nil {
		return nil, err
	}
	estimate := s.engine.Estimate(damage, claimType, claim.VehicleMake)
	status, recommendation := Route(s.engine.Thresholds(), damage, fraud.Score)

	if !models.CanAutoRoute(from, status) {
		return nil, apperrors.InvalidTransition(string(from), string(status))
	}

	claim.DamageScore = nulls.NewFloat64(damage)
	claim.FraudScore = nulls.NewFloat64(fraud.Score)
	claim.FraudFactors = models.FloatMap(fraud.Factors)
	claim.FraudReasons = fraud.Reasons
	claim.EstimatedSettlement = nulls.NewInt(estimate)
	if from == models.ClaimStatusPending {
		settlement := 0
		if status == models.ClaimStatusApproved {
			settlement = estimate
		}
		claim.SettlementAmount = nulls.NewInt(settlement)
	}
	claim.Status = status
	claim.AssessedAt = nulls.NewTime(s.now())

	applied, err := s.repo.SaveAssessment(ctx, claim, from)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.InvalidTransition(string(from), string(status))
	}

	zap.L().Info("claim assessed",
		zap.String("claim_id", claim.ID),
		zap.Float64("damage_score", damage),
		zap.Float64("fraud_score", fraud.Score),
		zap.String("status", string(status)),
	)
	s.notifyChange(ctx, claim, from)

	return &Assessment{
		ClaimID:          claim.ID,
		DamageScore:      damage,
		FraudScore:       fraud.Score,
		SettlementAmount: estimate,
		Status:           status,
		Recommendation:   recommendation,
		FraudReasons:     fraud.Reasons,
	}, nil
}

// Verify runs the verification pass. The randomized settlement is drawn at
// most once per claim; later calls return the stored verdict. A rejected
// claim is never re-decided.
func (s *Service) Verify(ctx context.Context, claimID string) (*Verdict, error) {
	claim, err := s.repo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.SettlementFinalized || claim.Status == models.ClaimStatusRejected {
		return VerdictFromClaim(claim), nil
	}

	files, err := s.repo.CountFiles(ctx, claimID)
	if err != nil {
		return nil, err
	}
	fraud, err := s.engine.Fraud(scoring.ProfileVerification, scoring.InputFromClaim(claim, int(files)))
	if err != nil {
		return nil, err
	}

	approved := fraud.Score < s.engine.Thresholds().VerifyApproveBelow
	to, reason := models.ClaimStatusRejected, ReasonPotentialFraud
	if approved {
		to, reason = models.ClaimStatusApproved, ReasonNoFraud
	}

	from := claim.Status
	if !models.CanTransition(from, to) {
		return nil, apperrors.InvalidTransition(string(from), string(to))
	}

	settlement := 0
	if approved {
		settlement = s.engine.Finalize(claim.ClaimType)
	}

	claim.FraudScore = nulls.NewFloat64(fraud.Score)
	claim.FraudFactors = models.FloatMap(fraud.Factors)
	claim.FraudReasons = fraud.Reasons
	claim.SettlementAmount = nulls.NewInt(settlement)
	claim.SettlementFinalized = approved
	claim.VerifiedAt = nulls.NewTime(s.now())
	claim.DecisionReason = reason
	claim.Status = to

	applied, err := s.repo.SaveDecision(ctx, claim, from)
	if err != nil {
		return nil, err
	}
	if !applied {
		// another decision landed first; report it instead of ours
		stored, err := s.repo.FindByID(ctx, claimID)
		if err != nil {
			return nil, err
		}
		zap.L().Info("verification superseded by concurrent decision",
			zap.String("claim_id", claimID),
			zap.String("status", string(stored.Status)),
		)
		return VerdictFromClaim(stored), nil
	}

	zap.L().Info("claim verified",
		zap.String("claim_id", claim.ID),
		zap.Float64("fraud_score", fraud.Score),
		zap.Bool("approved", approved),
		zap.Int("settlement", settlement),
	)
	s.notifyChange(ctx, claim, from)

	return VerdictFromClaim(claim), nil
}

func (s *Service) notifyChange(ctx context.Context, claim *models.Claim, from models.ClaimStatus) {
	if s.notifier == nil || from == claim.Status {
		return
	}
	if err := s.notifier.Notify(ctx, notification.StatusChanged(claim, from)); err != nil {
		zap.L().Warn("status notification failed", zap.String("claim_id", claim.ID), zap.Error(err))
	}
}

func overlay(claim *models.Claim, fields *ClaimFields) {
	if fields.empty() {
		return
	}
	if fields.ClaimType != "" {
		claim.ClaimType = models.ClaimType(fields.ClaimType)
	}
	if fields.Description != "" {
		claim.Description = fields.Description
	}
	if fields.VehicleMake != "" {
		claim.VehicleMake = fields.VehicleMake
	}
	if fields.VehicleModel != "" {
		claim.VehicleModel = fields.VehicleModel
	}
	if fields.IncidentLocation != "" {
		claim.IncidentLocation = fields.IncidentLocation
	}
}
