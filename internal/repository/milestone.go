package repository

import (
	"context"
	"errors"

	"aurex/internal/models"

	"gorm.io/gorm"
)

// MilestoneRepository defines persistence operations for plan milestones.
type MilestoneRepository interface {
	Create(ctx context.Context, milestone *models.Milestone) error
	// GetForPlan fetches a milestone only if it belongs to planID.
	GetForPlan(ctx context.Context, id, planID uint) (*models.Milestone, error)
	ListByPlan(ctx context.Context, planID uint) ([]models.Milestone, error)
	Update(ctx context.Context, milestone *models.Milestone) error
	Delete(ctx context.Context, id, planID uint) error
	MarkNotificationSent(ctx context.Context, id uint) error
}

type milestoneRepository struct {
	db *gorm.DB
}

// NewMilestoneRepository creates a new milestone repository.
func NewMilestoneRepository(db *gorm.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) Create(ctx context.Context, milestone *models.Milestone) error {
	if err := r.db.WithContext(ctx).Create(milestone).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *milestoneRepository) GetForPlan(ctx context.Context, id, planID uint) (*models.Milestone, error) {
	var milestone models.Milestone
	err := r.db.WithContext(ctx).
		Where("id = ? AND career_plan_id = ?", id, planID).
		First(&milestone).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Milestone")
		}
		return nil, models.NewInternalError(err)
	}
	return &milestone, nil
}

func (r *milestoneRepository) ListByPlan(ctx context.Context, planID uint) ([]models.Milestone, error) {
	var milestones []models.Milestone
	err := r.db.WithContext(ctx).
		Where("career_plan_id = ?", planID).
		Order("target_date ASC").
		Find(&milestones).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return milestones, nil
}

func (r *milestoneRepository) Update(ctx context.Context, milestone *models.Milestone) error {
	if err := r.db.WithContext(ctx).Save(milestone).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *milestoneRepository) Delete(ctx context.Context, id, planID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND career_plan_id = ?", id, planID).
		Delete(&models.Milestone{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Milestone")
	}
	return nil
}

func (r *milestoneRepository) MarkNotificationSent(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Milestone{}).
		Where("id = ?", id).
		Update("notification_sent", true).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
