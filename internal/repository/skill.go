package repository

import (
	"context"
	"errors"

	"aurex/internal/models"

	"gorm.io/gorm"
)

// SkillRepository defines persistence operations for plan skills.
type SkillRepository interface {
	Create(ctx context.Context, skill *models.Skill) error
	CreateBatch(ctx context.Context, skills []models.Skill) error
	// GetForPlan fetches a skill only if it belongs to planID.
	GetForPlan(ctx context.Context, id, planID uint) (*models.Skill, error)
	ListByPlan(ctx context.Context, planID uint) ([]models.Skill, error)
	Update(ctx context.Context, skill *models.Skill) error
	Delete(ctx context.Context, id, planID uint) error
}

type skillRepository struct {
	db *gorm.DB
}

// NewSkillRepository creates a new skill repository.
func NewSkillRepository(db *gorm.DB) SkillRepository {
	return &skillRepository{db: db}
}

func (r *skillRepository) Create(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Create(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) CreateBatch(ctx context.Context, skills []models.Skill) error {
	if len(skills) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&skills).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) GetForPlan(ctx context.Context, id, planID uint) (*models.Skill, error) {
	var skill models.Skill
	err := r.db.WithContext(ctx).
		Where("id = ? AND career_plan_id = ?", id, planID).
		First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Skill")
		}
		return nil, models.NewInternalError(err)
	}
	return &skill, nil
}

func (r *skillRepository) ListByPlan(ctx context.Context, planID uint) ([]models.Skill, error) {
	var skills []models.Skill
	err := r.db.WithContext(ctx).
		Where("career_plan_id = ?", planID).
		Order("importance ASC, skill_name ASC").
		Find(&skills).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return skills, nil
}

func (r *skillRepository) Update(ctx context.Context, skill *models.Skill) error {
	if err := r.db.WithContext(ctx).Save(skill).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *skillRepository) Delete(ctx context.Context, id, planID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND career_plan_id = ?", id, planID).
		Delete(&models.Skill{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Skill")
	}
	return nil
}
