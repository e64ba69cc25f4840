package repository

import (
	"context"
	"testing"
	"time"

	"aurex/internal/database"
	"aurex/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Name:         "Test User",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedPlan(t *testing.T, db *gorm.DB, userID uint) *models.CareerPlan {
	t.Helper()
	plan := &models.CareerPlan{
		UserID:         userID,
		Title:          "Test User's Career Plan",
		EducationLevel: "bachelors",
		EducationField: "computer science",
		CareerGoals:    "become a backend engineer",
		AIAnalysis:     models.JSONMap{"summary": "ok"},
		Status:         models.PlanStatusActive,
	}
	require.NoError(t, db.Create(plan).Error)
	return plan
}

func seedMilestone(t *testing.T, db *gorm.DB, planID uint) *models.Milestone {
	t.Helper()
	milestone := &models.Milestone{
		CareerPlanID: planID,
		Title:        "Finish SQL course",
		TargetDate:   time.Now().AddDate(0, 1, 0),
		Category:     "education",
		Status:       models.MilestoneStatusPending,
	}
	require.NoError(t, db.Create(milestone).Error)
	return milestone
}

var testCtx = context.Background()
