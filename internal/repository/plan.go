package repository

import (
	"context"
	"errors"

	"aurex/internal/cache"
	"aurex/internal/models"

	"gorm.io/gorm"
)

// PlanRepository defines persistence operations for career plans and their
// version history.
type PlanRepository interface {
	Create(ctx context.Context, plan *models.CareerPlan) error
	// GetOwned fetches a plan only if it belongs to userID. A plan owned by
	// someone else surfaces as not found.
	GetOwned(ctx context.Context, id, userID uint) (*models.CareerPlan, error)
	// GetByID fetches a plan regardless of owner. Used for share resolution.
	GetByID(ctx context.Context, id uint) (*models.CareerPlan, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.CareerPlan, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, plan *models.CareerPlan) error
	Delete(ctx context.Context, id, userID uint) error

	AddVersion(ctx context.Context, version *models.PlanVersion) error
	ListVersions(ctx context.Context, planID uint) ([]models.PlanVersion, error)
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new plan repository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *models.CareerPlan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.PlanListKey(plan.UserID))
	return nil
}

func (r *planRepository) GetOwned(ctx context.Context, id, userID uint) (*models.CareerPlan, error) {
	var plan models.CareerPlan
	err := r.db.WithContext(ctx).
		Preload("Milestones", func(db *gorm.DB) *gorm.DB {
			return db.Order("target_date ASC")
		}).
		Preload("Skills").
		Where("id = ? AND user_id = ?", id, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Career plan")
		}
		return nil, models.NewInternalError(err)
	}
	return &plan, nil
}

func (r *planRepository) GetByID(ctx context.Context, id uint) (*models.CareerPlan, error) {
	var plan models.CareerPlan
	key := cache.PlanKey(id)

	err := cache.CacheAside(ctx, key, &plan, cache.PlanTTL, func() error {
		fetchErr := r.db.WithContext(ctx).
			Preload("Milestones", func(db *gorm.DB) *gorm.DB {
				return db.Order("target_date ASC")
			}).
			Preload("Skills").
			First(&plan, id).Error
		if fetchErr != nil {
			if errors.Is(fetchErr, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Career plan")
			}
			return models.NewInternalError(fetchErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *planRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.CareerPlan, error) {
	var plans []models.CareerPlan
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	// A zero limit returns the full set.
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&plans).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *planRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CareerPlan{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *planRepository) Update(ctx context.Context, plan *models.CareerPlan) error {
	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePlan(ctx, plan.ID, plan.UserID)
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.CareerPlan{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Career plan")
	}
	cache.InvalidatePlan(ctx, id, userID)
	return nil
}

// AddVersion appends a changelog entry, assigning the next version number
// for the plan.
func (r *planRepository) AddVersion(ctx context.Context, version *models.PlanVersion) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var latest int
		row := tx.Model(&models.PlanVersion{}).
			Where("career_plan_id = ?", version.CareerPlanID).
			Select("COALESCE(MAX(version_number), 0)").
			Row()
		if scanErr := row.Scan(&latest); scanErr != nil {
			return scanErr
		}
		version.VersionNumber = latest + 1
		return tx.Create(version).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *planRepository) ListVersions(ctx context.Context, planID uint) ([]models.PlanVersion, error) {
	var versions []models.PlanVersion
	err := r.db.WithContext(ctx).
		Where("career_plan_id = ?", planID).
		Order("version_number DESC").
		Find(&versions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return versions, nil
}
