package repository

import (
	"context"
	"errors"

	"aurex/internal/cache"
	"aurex/internal/models"

	"gorm.io/gorm"
)

// ShareRepository defines persistence operations for plan shares.
type ShareRepository interface {
	Create(ctx context.Context, share *models.PlanShare) error
	GetByToken(ctx context.Context, token string) (*models.PlanShare, error)
	ListByPlan(ctx context.Context, planID uint) ([]models.PlanShare, error)
	IncrementViewCount(ctx context.Context, id uint) error
	Delete(ctx context.Context, id, planID uint) error
}

type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository creates a new share repository.
func NewShareRepository(db *gorm.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, share *models.PlanShare) error {
	if err := r.db.WithContext(ctx).Create(share).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *shareRepository) GetByToken(ctx context.Context, token string) (*models.PlanShare, error) {
	var share models.PlanShare
	err := r.db.WithContext(ctx).
		Where("share_token = ?", token).
		First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Shared plan")
		}
		return nil, models.NewInternalError(err)
	}
	return &share, nil
}

func (r *shareRepository) ListByPlan(ctx context.Context, planID uint) ([]models.PlanShare, error) {
	var shares []models.PlanShare
	err := r.db.WithContext(ctx).
		Where("career_plan_id = ?", planID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return shares, nil
}

// IncrementViewCount bumps the counter atomically in the database.
func (r *shareRepository) IncrementViewCount(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.PlanShare{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *shareRepository) Delete(ctx context.Context, id, planID uint) error {
	var share models.PlanShare
	err := r.db.WithContext(ctx).
		Where("id = ? AND career_plan_id = ?", id, planID).
		First(&share).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Share")
		}
		return models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Delete(&share).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateShare(ctx, share.ShareToken)
	return nil
}
