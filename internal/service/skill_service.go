package service

import (
	"context"
	"strings"
	"time"

	"aurex/internal/models"
	"aurex/internal/repository"
)

// SkillService manages skills within a plan the caller owns.
type SkillService struct {
	skillRepo repository.SkillRepository
	planRepo  repository.PlanRepository
	now       func() time.Time
}

// AddSkillInput describes a manually added skill.
type AddSkillInput struct {
	PlanID           uint
	UserID           uint
	SkillName        string
	SkillType        models.SkillType
	ProficiencyLevel models.ProficiencyLevel
	Importance       models.SkillImportance
}

// NewSkillService creates a new skill service.
func NewSkillService(skillRepo repository.SkillRepository, planRepo repository.PlanRepository) *SkillService {
	return &SkillService{
		skillRepo: skillRepo,
		planRepo:  planRepo,
		now:       time.Now,
	}
}

// AddSkill attaches a skill to a plan the caller owns.
func (s *SkillService) AddSkill(ctx context.Context, in AddSkillInput) (*models.Skill, error) {
	if strings.TrimSpace(in.SkillName) == "" {
		return nil, models.NewValidationError("Skill name is required")
	}
	if in.SkillType != models.SkillTypeTechnical && in.SkillType != models.SkillTypeSoft {
		return nil, models.NewValidationError("Invalid skill type")
	}

	proficiency := in.ProficiencyLevel
	if proficiency == "" {
		proficiency = models.ProficiencyBeginner
	}
	switch proficiency {
	case models.ProficiencyBeginner, models.ProficiencyIntermediate, models.ProficiencyAdvanced, models.ProficiencyExpert:
	default:
		return nil, models.NewValidationError("Invalid proficiency level")
	}

	importance := in.Importance
	if importance == "" {
		importance = models.ImportanceImportant
	}
	switch importance {
	case models.ImportanceCritical, models.ImportanceImportant, models.ImportanceNiceToHave:
	default:
		return nil, models.NewValidationError("Invalid importance")
	}

	if _, err := s.planRepo.GetOwned(ctx, in.PlanID, in.UserID); err != nil {
		return nil, err
	}

	skill := &models.Skill{
		CareerPlanID:     in.PlanID,
		SkillName:        in.SkillName,
		SkillType:        in.SkillType,
		ProficiencyLevel: proficiency,
		Importance:       importance,
	}
	if err := s.skillRepo.Create(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// ListSkills returns a plan's skills.
func (s *SkillService) ListSkills(ctx context.Context, planID, userID uint) ([]models.Skill, error) {
	if _, err := s.planRepo.GetOwned(ctx, planID, userID); err != nil {
		return nil, err
	}
	return s.skillRepo.ListByPlan(ctx, planID)
}

// SetSkillCompletion toggles a skill's completion. Completing stamps
// CompletedAt; un-completing clears it.
func (s *SkillService) SetSkillCompletion(ctx context.Context, skillID, planID, userID uint, completed bool) (*models.Skill, error) {
	if _, err := s.planRepo.GetOwned(ctx, planID, userID); err != nil {
		return nil, err
	}
	skill, err := s.skillRepo.GetForPlan(ctx, skillID, planID)
	if err != nil {
		return nil, err
	}

	skill.IsCompleted = completed
	if completed {
		completedAt := s.now()
		skill.CompletedAt = &completedAt
	} else {
		skill.CompletedAt = nil
	}

	if err := s.skillRepo.Update(ctx, skill); err != nil {
		return nil, err
	}
	return skill, nil
}

// DeleteSkill removes a skill from a plan the caller owns.
func (s *SkillService) DeleteSkill(ctx context.Context, skillID, planID, userID uint) error {
	if _, err := s.planRepo.GetOwned(ctx, planID, userID); err != nil {
		return err
	}
	return s.skillRepo.Delete(ctx, skillID, planID)
}
