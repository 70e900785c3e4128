// Package stats reports aggregate claim figures for reviewers.
package stats

import (
	"context"
	"math"

	"insuro/internal/models"
	"insuro/internal/repositories"
)

type Service interface {
	Summary(ctx context.Context) (*Summary, error)
}

// Summary extends the stored aggregates with derived rates.
type Summary struct {
	*models.ClaimSummary
	Open         int64   `json:"open"`
	ApprovalRate float64 `json:"approval_rate"`
}

type service struct {
	repo repositories.ClaimRepository
}

func NewService(repo repositories.ClaimRepository) Service {
	return &service{repo: repo}
}

func (s *service) Summary(ctx context.Context) (*Summary, error) {
	base, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	base.AverageFraudScore = round4(base.AverageFraudScore)

	out := &Summary{ClaimSummary: base}
	for status, n := range base.ByStatus {
		if status.AwaitsDisposition() {
			out.Open += n
		}
	}
	approved := base.ByStatus[models.ClaimStatusApproved]
	if decided := approved + base.ByStatus[models.ClaimStatusRejected]; decided > 0 {
		out.ApprovalRate = round4(float64(approved) / float64(decided))
	}
	return out, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
