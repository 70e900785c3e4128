package repositories

import (
	"context"
	"time"

	"go.uber.org/zap"

	"insuro/internal/models"
	"insuro/internal/repositories/cache"
)

const summaryTTL = 30 * time.Second

// cachedClaimRepository reads single claims and the summary through a cache
// and evicts them on every write. Cache failures are logged, never returned.
type cachedClaimRepository struct {
	ClaimRepository
	store cache.Store
}

// NewCachedClaimRepository fronts inner with store.
func NewCachedClaimRepository(inner ClaimRepository, store cache.Store) ClaimRepository {
	return &cachedClaimRepository{ClaimRepository: inner, store: store}
}

func (r *cachedClaimRepository) FindByID(ctx context.Context, id string) (*models.Claim, error) {
	key := cache.ClaimKey(id)

	var cached models.Claim
	found, err := r.store.Get(ctx, key, &cached)
	if err != nil {
		zap.L().Warn("claim cache read failed", zap.String("claim_id", id), zap.Error(err))
	}
	if found {
		return &cached, nil
	}

	claim, err := r.ClaimRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.store.Set(ctx, key, claim); err != nil {
		zap.L().Warn("claim cache write failed", zap.String("claim_id", id), zap.Error(err))
	}
	return claim, nil
}

func (r *cachedClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	if err := r.ClaimRepository.Create(ctx, claim); err != nil {
		return err
	}
	r.evict(ctx, cache.SummaryKey())
	return nil
}

func (r *cachedClaimRepository) AddFile(ctx context.Context, file *models.ClaimFile) error {
	err := r.ClaimRepository.AddFile(ctx, file)
	r.evict(ctx, cache.ClaimKey(file.ClaimID))
	return err
}

func (r *cachedClaimRepository) SaveAssessment(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	ok, err := r.ClaimRepository.SaveAssessment(ctx, claim, from)
	r.evict(ctx, cache.ClaimKey(claim.ID), cache.SummaryKey())
	return ok, err
}

func (r *cachedClaimRepository) SaveDecision(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	ok, err := r.ClaimRepository.SaveDecision(ctx, claim, from)
	r.evict(ctx, cache.ClaimKey(claim.ID), cache.SummaryKey())
	return ok, err
}

func (r *cachedClaimRepository) SaveReview(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	ok, err := r.ClaimRepository.SaveReview(ctx, claim, from)
	r.evict(ctx, cache.ClaimKey(claim.ID), cache.SummaryKey())
	return ok, err
}

func (r *cachedClaimRepository) Summary(ctx context.Context) (*models.ClaimSummary, error) {
	var cached models.ClaimSummary
	found, err := r.store.Get(ctx, cache.SummaryKey(), &cached)
	if err != nil {
		zap.L().Warn("summary cache read failed", zap.Error(err))
	}
	if found {
		return &cached, nil
	}

	summary, err := r.ClaimRepository.Summary(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.store.SetWithTTL(ctx, cache.SummaryKey(), summary, summaryTTL); err != nil {
		zap.L().Warn("summary cache write failed", zap.Error(err))
	}
	return summary, nil
}

func (r *cachedClaimRepository) evict(ctx context.Context, keys ...string) {
	if err := r.store.Delete(ctx, keys...); err != nil {
		zap.L().Warn("cache eviction failed", zap.Strings("keys", keys), zap.Error(err))
	}
}
