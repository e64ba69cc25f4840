package repository

import (
	"testing"
	"time"

	"aurex/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkillRepository_CreateBatchAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	owner := seedUser(t, db, "owner@example.com")
	plan := seedPlan(t, db, owner.ID)

	skills := []models.Skill{
		{CareerPlanID: plan.ID, SkillName: "SQL", SkillType: models.SkillTypeTechnical, Importance: models.ImportanceCritical},
		{CareerPlanID: plan.ID, SkillName: "Communication", SkillType: models.SkillTypeSoft, Importance: models.ImportanceImportant},
	}
	require.NoError(t, repo.CreateBatch(testCtx, skills))

	got, err := repo.ListByPlan(testCtx, plan.ID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestSkillRepository_CreateBatch_EmptyIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillRepository(db)

	assert.NoError(t, repo.CreateBatch(testCtx, nil))
}

func TestSkillRepository_GetForPlan_WrongPlanIsNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	owner := seedUser(t, db, "owner@example.com")
	planA := seedPlan(t, db, owner.ID)
	planB := seedPlan(t, db, owner.ID)

	skill := &models.Skill{CareerPlanID: planA.ID, SkillName: "Go", SkillType: models.SkillTypeTechnical}
	require.NoError(t, repo.Create(testCtx, skill))

	_, err := repo.GetForPlan(testCtx, skill.ID, planB.ID)
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestSkillRepository_UpdateCompletion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	owner := seedUser(t, db, "owner@example.com")
	plan := seedPlan(t, db, owner.ID)

	skill := &models.Skill{CareerPlanID: plan.ID, SkillName: "Go", SkillType: models.SkillTypeTechnical}
	require.NoError(t, repo.Create(testCtx, skill))

	now := time.Now()
	skill.IsCompleted = true
	skill.CompletedAt = &now
	require.NoError(t, repo.Update(testCtx, skill))

	got, err := repo.GetForPlan(testCtx, skill.ID, plan.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	require.NotNil(t, got.CompletedAt)
}

func TestSkillRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSkillRepository(db)
	owner := seedUser(t, db, "owner@example.com")
	plan := seedPlan(t, db, owner.ID)

	skill := &models.Skill{CareerPlanID: plan.ID, SkillName: "Go", SkillType: models.SkillTypeTechnical}
	require.NoError(t, repo.Create(testCtx, skill))

	require.NoError(t, repo.Delete(testCtx, skill.ID, plan.ID))
	err := repo.Delete(testCtx, skill.ID, plan.ID)
	assert.Error(t, err)
}
