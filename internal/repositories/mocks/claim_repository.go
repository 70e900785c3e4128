// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"insuro/internal/models"
	"insuro/internal/repositories"
)

type MockClaimRepository struct {
	mock.Mock
}

var _ repositories.ClaimRepository = (*MockClaimRepository)(nil)

func (m *MockClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

func (m *MockClaimRepository) FindByID(ctx context.Context, id string) (*models.Claim, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*models.Claim); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockClaimRepository) List(ctx context.Context, filter repositories.ClaimFilter) ([]models.Claim, int64, error) {
	args := m.Called(ctx, filter)
	claims, _ := args.Get(0).([]models.Claim)
	return claims, args.Get(1).(int64), args.Error(2)
}

func (m *MockClaimRepository) ListOpenIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockClaimRepository) CountFiles(ctx context.Context, claimID string) (int64, error) {
	args := m.Called(ctx, claimID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClaimRepository) AddFile(ctx context.Context, file *models.ClaimFile) error {
	args := m.Called(ctx, file)
	return args.Error(0)
}

func (m *MockClaimRepository) SaveAssessment(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	args := m.Called(ctx, claim, from)
	return args.Bool(0), args.Error(1)
}

func (m *MockClaimRepository) SaveDecision(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	args := m.Called(ctx, claim, from)
	return args.Bool(0), args.Error(1)
}

func (m *MockClaimRepository) SaveReview(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	args := m.Called(ctx, claim, from)
	return args.Bool(0), args.Error(1)
}

func (m *MockClaimRepository) Summary(ctx context.Context) (*models.ClaimSummary, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*models.ClaimSummary); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}
