package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "insuro/internal/errors"
	"insuro/internal/models"
)

// ClaimFilter narrows a claim listing.
type ClaimFilter struct {
	UserID string
	Status models.ClaimStatus
	Limit  int
	Offset int
}

// ClaimRepository is the claim record store. Conditional writes report
// whether a row was changed; false means the claim moved on concurrently.
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	FindByID(ctx context.Context, id string) (*models.Claim, error)
	List(ctx context.Context, filter ClaimFilter) ([]models.Claim, int64, error)
	ListOpenIDs(ctx context.Context) ([]string, error)
	CountFiles(ctx context.Context, claimID string) (int64, error)
	AddFile(ctx context.Context, file *models.ClaimFile) error

	// SaveAssessment writes the assessment-pass columns if the claim is
	// still in status from.
	SaveAssessment(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error)
	// SaveDecision writes a verification or reviewer decision if the claim
	// is still in status from and its settlement is not yet finalized.
	SaveDecision(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error)
	// SaveReview writes fraud review results if the claim is still in status from.
	SaveReview(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error)

	Summary(ctx context.Context) (*models.ClaimSummary, error)
}

type claimRepository struct {
	db *gorm.DB
}

func NewClaimRepository(db *gorm.DB) ClaimRepository {
	return &claimRepository{db: db}
}

func (r *claimRepository) Create(ctx context.Context, claim *models.Claim) error {
	if err := r.db.WithContext(ctx).Create(claim).Error; err != nil {
		return apperrors.Persistence("create claim", err)
	}
	return nil
}

func (r *claimRepository) FindByID(ctx context.Context, id string) (*models.Claim, error) {
	var claim models.Claim
	err := r.db.WithContext(ctx).
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at ASC")
		}).
		First(&claim, "id = ?", id).Error
	if err != nil {
		return nil, mapError("find claim", id, err)
	}
	return &claim, nil
}

func (r *claimRepository) List(ctx context.Context, filter ClaimFilter) ([]models.Claim, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		db = db.Model(&models.Claim{})
		if filter.UserID != "" {
			db = db.Where("user_id = ?", filter.UserID)
		}
		if filter.Status != "" {
			db = db.Where("status = ?", filter.Status)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Persistence("count claims", err)
	}

	var claims []models.Claim
	q := r.db.WithContext(ctx).Scopes(scope).Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	if err := q.Find(&claims).Error; err != nil {
		return nil, 0, apperrors.Persistence("list claims", err)
	}
	return claims, total, nil
}

func (r *claimRepository) ListOpenIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Claim{}).
		Where("status IN ?", []models.ClaimStatus{
			models.ClaimStatusPending,
			models.ClaimStatusUnderReview,
			models.ClaimStatusPendingReview,
		}).
		Order("created_at ASC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.Persistence("list open claims", err)
	}
	return ids, nil
}

func (r *claimRepository) CountFiles(ctx context.Context, claimID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ClaimFile{}).
		Where("claim_id = ?", claimID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Persistence("count claim files", err)
	}
	return count, nil
}

func (r *claimRepository) AddFile(ctx context.Context, file *models.ClaimFile) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var exists int64
		if err := tx.Model(&models.Claim{}).Where("id = ?", file.ClaimID).Count(&exists).Error; err != nil {
			return apperrors.Persistence("check claim", err)
		}
		if exists == 0 {
			return apperrors.NotFound(file.ClaimID)
		}
		if err := tx.Create(file).Error; err != nil {
			return apperrors.Persistence("create claim file", err)
		}
		return nil
	})
}

func (r *claimRepository) SaveAssessment(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	claim.UpdatedAt = time.Now()
	columns := map[string]interface{}{
		"damage_score":         claim.DamageScore,
		"fraud_score":          claim.FraudScore,
		"fraud_factors":        claim.FraudFactors,
		"fraud_reasons":        claim.FraudReasons,
		"estimated_settlement": claim.EstimatedSettlement,
		"status":               claim.Status,
		"assessed_at":          claim.AssessedAt,
		"updated_at":           claim.UpdatedAt,
	}
	// claim fields and the settlement belong to a reviewer once the claim leaves Pending
	if from == models.ClaimStatusPending {
		columns["claim_type"] = claim.ClaimType
		columns["description"] = claim.Description
		columns["incident_location"] = claim.IncidentLocation
		columns["vehicle_make"] = claim.VehicleMake
		columns["vehicle_model"] = claim.VehicleModel
		columns["settlement_amount"] = claim.SettlementAmount
	}
	return r.conditionalUpdate(ctx, "save assessment", claim.ID,
		r.db.WithContext(ctx).Where("status = ?", from), columns)
}

func (r *claimRepository) SaveDecision(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	claim.UpdatedAt = time.Now()
	return r.conditionalUpdate(ctx, "save decision", claim.ID,
		r.db.WithContext(ctx).Where("status = ? AND settlement_finalized = ?", from, false),
		map[string]interface{}{
			"status":               claim.Status,
			"fraud_score":          claim.FraudScore,
			"fraud_factors":        claim.FraudFactors,
			"fraud_reasons":        claim.FraudReasons,
			"settlement_amount":    claim.SettlementAmount,
			"settlement_finalized": claim.SettlementFinalized,
			"verified_at":          claim.VerifiedAt,
			"reviewed_by":          claim.ReviewedBy,
			"decision_reason":      claim.DecisionReason,
			"updated_at":           claim.UpdatedAt,
		})
}

func (r *claimRepository) SaveReview(ctx context.Context, claim *models.Claim, from models.ClaimStatus) (bool, error) {
	claim.UpdatedAt = time.Now()
	return r.conditionalUpdate(ctx, "save fraud review", claim.ID,
		r.db.WithContext(ctx).Where("status = ?", from),
		map[string]interface{}{
			"fraud_score":   claim.FraudScore,
			"fraud_factors": claim.FraudFactors,
			"fraud_reasons": claim.FraudReasons,
			"risk_level":    claim.RiskLevel,
			"status":        claim.Status,
			"updated_at":    claim.UpdatedAt,
		})
}

func (r *claimRepository) conditionalUpdate(ctx context.Context, op, id string, scoped *gorm.DB, columns map[string]interface{}) (bool, error) {
	res := scoped.Model(&models.Claim{}).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return false, apperrors.Persistence(op, res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	// distinguish a lost race from a missing claim
	var exists int64
	if err := r.db.WithContext(ctx).Model(&models.Claim{}).Where("id = ?", id).Count(&exists).Error; err != nil {
		return false, apperrors.Persistence(op, err)
	}
	if exists == 0 {
		return false, apperrors.NotFound(id)
	}
	return false, nil
}

func (r *claimRepository) Summary(ctx context.Context) (*models.ClaimSummary, error) {
	var rows []struct {
		Status models.ClaimStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Claim{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Persistence("count claims by status", err)
	}

	summary := &models.ClaimSummary{ByStatus: make(map[models.ClaimStatus]int64, len(models.AllClaimStatuses))}
	for _, s := range models.AllClaimStatuses {
		summary.ByStatus[s] = 0
	}
	for _, row := range rows {
		summary.ByStatus[row.Status] = row.Count
		summary.Total += row.Count
	}

	var agg struct {
		AvgFraud      float64
		ApprovedTotal int64
		HighRisk      int64
	}
	err = r.db.WithContext(ctx).
		Model(&models.Claim{}).
		Select(
			"COALESCE(AVG(fraud_score), 0) AS avg_fraud, "+
				"COALESCE(SUM(CASE WHEN status = ? THEN settlement_amount ELSE 0 END), 0) AS approved_total, "+
				"COUNT(*) FILTER (WHERE risk_level = ?) AS high_risk",
			models.ClaimStatusApproved, models.RiskHigh,
		).
		Scan(&agg).Error
	if err != nil {
		return nil, apperrors.Persistence("aggregate claims", err)
	}

	summary.AverageFraudScore = agg.AvgFraud
	summary.ApprovedSettlement = agg.ApprovedTotal
	summary.HighRisk = agg.HighRisk
	return summary, nil
}

func mapError(op, id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(id)
	}
	return apperrors.Persistence(op, err)
}
