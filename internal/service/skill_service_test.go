package service

import (
	"context"
	"testing"

	"aurex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillService_AddSkill_AppliesDefaults(t *testing.T) {
	var created *models.Skill
	skillRepo := noopSkillRepo()
	skillRepo.createFn = func(_ context.Context, s *models.Skill) error {
		created = s
		return nil
	}
	svc := NewSkillService(skillRepo, noopPlanRepo())

	skill, err := svc.AddSkill(context.Background(), AddSkillInput{
		PlanID: 1, UserID: 1, SkillName: "Go", SkillType: models.SkillTypeTechnical,
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProficiencyBeginner, skill.ProficiencyLevel)
	assert.Equal(t, models.ImportanceImportant, skill.Importance)
	require.NotNil(t, created)
}

func TestSkillService_AddSkill_Validation(t *testing.T) {
	svc := NewSkillService(noopSkillRepo(), noopPlanRepo())

	tests := []struct {
		name  string
		input AddSkillInput
	}{
		{"Empty Name", AddSkillInput{PlanID: 1, UserID: 1, SkillType: models.SkillTypeTechnical}},
		{"Bad Type", AddSkillInput{PlanID: 1, UserID: 1, SkillName: "Go", SkillType: "psychic"}},
		{"Bad Proficiency", AddSkillInput{PlanID: 1, UserID: 1, SkillName: "Go", SkillType: models.SkillTypeSoft, ProficiencyLevel: "guru"}},
		{"Bad Importance", AddSkillInput{PlanID: 1, UserID: 1, SkillName: "Go", SkillType: models.SkillTypeSoft, Importance: "mandatory"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddSkill(context.Background(), tt.input)
			require.Error(t, err)

			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestSkillService_SetSkillCompletion_Toggle(t *testing.T) {
	svc := NewSkillService(noopSkillRepo(), noopPlanRepo())
	svc.now = fixedTime

	skill, err := svc.SetSkillCompletion(context.Background(), 1, 1, 1, true)
	require.NoError(t, err)
	assert.True(t, skill.IsCompleted)
	require.NotNil(t, skill.CompletedAt)
	assert.Equal(t, fixedTime(), *skill.CompletedAt)

	// Un-completing clears the timestamp.
	completedAt := fixedTime()
	skillRepo := noopSkillRepo()
	skillRepo.getForPlanFn = func(_ context.Context, id, planID uint) (*models.Skill, error) {
		return &models.Skill{ID: id, CareerPlanID: planID, IsCompleted: true, CompletedAt: &completedAt}, nil
	}
	svc = NewSkillService(skillRepo, noopPlanRepo())

	skill, err = svc.SetSkillCompletion(context.Background(), 1, 1, 1, false)
	require.NoError(t, err)
	assert.False(t, skill.IsCompleted)
	assert.Nil(t, skill.CompletedAt)
}

func TestSkillService_OwnershipGatesEverything(t *testing.T) {
	planRepo := noopPlanRepo()
	planRepo.getOwnedFn = func(_ context.Context, _, _ uint) (*models.CareerPlan, error) {
		return nil, models.NewNotFoundError("Career plan")
	}
	svc := NewSkillService(noopSkillRepo(), planRepo)

	_, err := svc.AddSkill(context.Background(), AddSkillInput{
		PlanID: 1, UserID: 2, SkillName: "Go", SkillType: models.SkillTypeTechnical,
	})
	assert.Error(t, err)

	_, err = svc.SetSkillCompletion(context.Background(), 1, 1, 2, true)
	assert.Error(t, err)

	err = svc.DeleteSkill(context.Background(), 1, 1, 2)
	assert.Error(t, err)
}
