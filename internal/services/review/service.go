// Package review holds the reviewer-facing operations: manual approval or
// rejection and the batch fraud sweep.
package review

import (
	"context"
	"sync"
	"time"

	"github.com/gobuffalo/nulls"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "insuro/internal/errors"
	"insuro/internal/models"
	"insuro/internal/repositories"
	"insuro/internal/services/notification"
	"insuro/internal/services/scoring"
	"insuro/internal/validation"
)

const defaultApproveReason = "Approved by reviewer"

// Decision is a reviewer's disposition of one claim.
type Decision struct {
	ReviewerID string `json:"reviewerId" validate:"required"`
	Reason     string `json:"reason" validate:"max=1000"`
}

// Outcome is the per-claim result of a fraud review.
type Outcome struct {
	ClaimID    string             `json:"claimId"`
	FraudScore float64            `json:"fraudScore"`
	RiskLevel  string             `json:"riskLevel"`
	Reasons    []string           `json:"reasons"`
	Status     models.ClaimStatus `json:"status"`
	Moved      bool               `json:"moved"`
	Error      string             `json:"error,omitempty"`
}

// Report summarizes a fraud review batch.
type Report struct {
	Reviewed int       `json:"reviewed"`
	Failed   int       `json:"failed"`
	High     int       `json:"high"`
	Medium   int       `json:"medium"`
	Low      int       `json:"low"`
	Outcomes []Outcome `json:"outcomes"`
}

type Service struct {
	repo        repositories.ClaimRepository
	engine      *scoring.Engine
	notifier    notification.Notifier
	validator   *validation.Validator
	concurrency int
	now         func() time.Time
}

func NewService(repo repositories.ClaimRepository, engine *scoring.Engine, notifier notification.Notifier, validator *validation.Validator, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		repo:        repo,
		engine:      engine,
		notifier:    notifier,
		validator:   validator,
		concurrency: concurrency,
		now:         time.Now,
	}
}

// Approve finalizes the claim with a freshly drawn settlement.
func (s *Service) Approve(ctx context.Context, claimID string, d Decision) (*models.Claim, error) {
	return s.decide(ctx, claimID, d, models.ClaimStatusApproved)
}

// Reject closes the claim with a zero settlement.
func (s *Service) Reject(ctx context.Context, claimID string, d Decision) (*models.Claim, error) {
	return s.decide(ctx, claimID, d, models.ClaimStatusRejected)
}

func (s *Service) decide(ctx context.Context, claimID string, d Decision, to models.ClaimStatus) (*models.Claim, error) {
	if err := s.validator.Struct(d); err != nil {
		return nil, err
	}

	claim, err := s.repo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	from := claim.Status
	if !models.CanTransition(from, to) || claim.SettlementFinalized {
		return nil, apperrors.InvalidTransition(string(from), string(to))
	}

	claim.Status = to
	claim.ReviewedBy = d.ReviewerID
	claim.DecisionReason = d.Reason
	claim.VerifiedAt = nulls.NewTime(s.now())
	if to == models.ClaimStatusApproved {
		claim.SettlementAmount = nulls.NewInt(s.engine.Finalize(claim.ClaimType))
		claim.SettlementFinalized = true
		if claim.DecisionReason == "" {
			claim.DecisionReason = defaultApproveReason
		}
	} else {
		claim.SettlementAmount = nulls.NewInt(0)
		claim.SettlementFinalized = false
	}

	applied, err := s.repo.SaveDecision(ctx, claim, from)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperrors.InvalidTransition(string(from), string(to))
	}

	zap.L().Info("claim decided by reviewer",
		zap.String("claim_id", claim.ID),
		zap.String("reviewer", d.ReviewerID),
		zap.String("status", string(to)),
		zap.Int("settlement", claim.SettlementAmount.Int),
	)
	if from != to && s.notifier != nil {
		if err := s.notifier.Notify(ctx, notification.StatusChanged(claim, from)); err != nil {
			zap.L().Warn("status notification failed", zap.String("claim_id", claim.ID), zap.Error(err))
		}
	}
	return claim, nil
}

// RunFraudReview rescores claimIDs with the review profile, or every open
// claim when claimIDs is empty. Failures are reported per claim and do not
// stop the batch; only context cancellation aborts it.
func (s *Service) RunFraudReview(ctx context.Context, claimIDs []string) (*Report, error) {
	if len(claimIDs) > validation.MaxFraudReviewBatch {
		return nil, apperrors.Validation("too many claims in one fraud review", nil)
	}
	if len(claimIDs) == 0 {
		ids, err := s.repo.ListOpenIDs(ctx)
		if err != nil {
			return nil, err
		}
		claimIDs = ids
	}

	outcomes := make([]Outcome, len(claimIDs))
	var mu sync.Mutex
	report := &Report{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, id := range claimIDs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out := s.reviewOne(gctx, id)

			mu.Lock()
			outcomes[i] = out
			switch {
			case out.Error != "":
				report.Failed++
			case out.RiskLevel == models.RiskHigh:
				report.High++
			case out.RiskLevel == models.RiskMedium:
				report.Medium++
			default:
				report.Low++
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.Outcomes = outcomes
	report.Reviewed = len(outcomes) - report.Failed
	zap.L().Info("fraud review finished",
		zap.Int("reviewed", report.Reviewed),
		zap.Int("failed", report.Failed),
		zap.Int("high", report.High),
		zap.Int("medium", report.Medium),
	)
	return report, nil
}

func (s *Service) reviewOne(ctx context.Context, claimID string) Outcome {
	out := Outcome{ClaimID: claimID}
	fail := func(err error) Outcome {
		zap.L().Warn("fraud review failed", zap.String("claim_id", claimID), zap.Error(err))
		out.Error = err.Error()
		return out
	}

	claim, err := s.repo.FindByID(ctx, claimID)
	if err != nil {
		return fail(err)
	}
	files, err := s.repo.CountFiles(ctx, claimID)
	if err != nil {
		return fail(err)
	}
	fraud, err := s.engine.Fraud(scoring.ProfileReview, scoring.InputFromClaim(claim, int(files)))
	if err != nil {
		return fail(err)
	}

	risk := s.engine.RiskLevel(fraud.Score)
	from := claim.Status
	to := from
	switch risk {
	case models.RiskHigh:
		if models.CanTransition(from, models.ClaimStatusUnderReview) {
			to = models.ClaimStatusUnderReview
		}
	case models.RiskMedium:
		if models.CanTransition(from, models.ClaimStatusPendingReview) {
			to = models.ClaimStatusPendingReview
		}
	}

	claim.FraudScore = nulls.NewFloat64(fraud.Score)
	claim.FraudFactors = models.FloatMap(fraud.Factors)
	claim.FraudReasons = fraud.Reasons
	claim.RiskLevel = risk
	claim.Status = to

	applied, err := s.repo.SaveReview(ctx, claim, from)
	if err != nil {
		return fail(err)
	}
	if !applied {
		return fail(apperrors.InvalidTransition(string(from), string(to)))
	}

	if from != to && s.notifier != nil {
		if err := s.notifier.Notify(ctx, notification.StatusChanged(claim, from)); err != nil {
			zap.L().Warn("status notification failed", zap.String("claim_id", claimID), zap.Error(err))
		}
	}

	out.FraudScore = fraud.Score
	out.RiskLevel = risk
	out.Reasons = fraud.Reasons
	out.Status = to
	out.Moved = from != to
	return out
}
