// Package seed provides database seeding utilities for development and
// testing. Not intended for production use.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"aurex/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers          int  `yaml:"num_users"`
	PlansPerUser      int  `yaml:"plans_per_user"`
	MilestonesPerPlan int  `yaml:"milestones_per_plan"`
	SkillsPerPlan     int  `yaml:"skills_per_plan"`
	ShouldClean       bool `yaml:"clean"`
}

// DefaultOptions returns a small profile suitable for local development.
func DefaultOptions() Options {
	return Options{
		NumUsers:          10,
		PlansPerUser:      2,
		MilestonesPerPlan: 4,
		SkillsPerPlan:     5,
	}
}

// LoadProfile reads seeding options from a YAML profile file. Missing fields
// keep their defaults.
func LoadProfile(path string) (Options, error) {
	opts := DefaultOptions()

	raw, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("read seed profile: %w", err)
	}
	if err := yaml.Unmarshal(raw, &opts); err != nil {
		return opts, fmt.Errorf("parse seed profile: %w", err)
	}
	return opts, nil
}

var (
	careerGoals = []string{
		"Become a senior software engineer leading a platform team",
		"Transition from analysis into data engineering within two years",
		"Move into product management at a growth-stage startup",
		"Build expertise in cloud infrastructure and earn an architect role",
		"Grow from individual contributor into engineering management",
		"Specialize in machine learning and ship production models",
	}

	milestoneTitles = []string{
		"Complete an advanced course",
		"Ship a portfolio project",
		"Earn a professional certification",
		"Present at a local meetup",
		"Find a mentor in the target role",
		"Apply to five target positions",
	}

	skillNames = []string{
		"SQL", "Go", "Python", "System Design", "Kubernetes",
		"Communication", "Public Speaking", "Leadership", "Negotiation",
		"Data Modeling", "Cloud Architecture", "Project Management",
	}

	categories = []string{"education", "project", "networking", "certification"}
)

// Seed populates the database with generated career-plan data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database: %d users, %d plans each", opts.NumUsers, opts.PlansPerUser)

	gofakeit.Seed(time.Now().UnixNano())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	planCount := 0
	for i := range users {
		for p := 0; p < opts.PlansPerUser; p++ {
			plan, err := createPlan(db, &users[i], rng)
			if err != nil {
				return fmt.Errorf("failed to create plan for user %d: %w", users[i].ID, err)
			}
			planCount++

			if err := createMilestones(db, plan, opts.MilestonesPerPlan, rng); err != nil {
				return fmt.Errorf("failed to create milestones: %w", err)
			}
			if err := createSkills(db, plan, opts.SkillsPerPlan, rng); err != nil {
				return fmt.Errorf("failed to create skills: %w", err)
			}
		}

		prefs := models.DefaultNotificationPreference(users[i].ID)
		if err := db.Create(&prefs).Error; err != nil {
			return fmt.Errorf("failed to create preferences: %w", err)
		}
	}
	log.Printf("created %d plans", planCount)

	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents so FK constraints hold.
	tables := []any{
		&models.EmailNotification{},
		&models.NotificationPreference{},
		&models.Document{},
		&models.PlanShare{},
		&models.PlanVersion{},
		&models.Skill{},
		&models.Milestone{},
		&models.CareerPlan{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Unscoped().Where("1 = 1").Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One bcrypt hash shared across seed users; hashing is the slow part.
	hash, err := bcrypt.GenerateFromPassword([]byte("SeedPassw0rd!Dev"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		user := models.User{
			Name:         name,
			Email:        fmt.Sprintf("%s%d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), i),
			PasswordHash: string(hash),
			Role:         models.UserRoleUser,
			Theme:        models.UserThemeLight,
			LastSignedIn: time.Now().Add(-time.Duration(gofakeit.Number(0, 72)) * time.Hour),
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPlan(db *gorm.DB, user *models.User, rng *rand.Rand) (*models.CareerPlan, error) {
	goal := careerGoals[rng.Intn(len(careerGoals))]
	analysis := models.JSONMap{
		"careerRecommendations": []any{
			map[string]any{"title": gofakeit.JobTitle(), "description": gofakeit.Sentence(8)},
		},
		"careerProgression": []any{},
		"skillGaps":         []any{},
		"timelineMonths":    12 + rng.Intn(36),
		"summary":           gofakeit.Sentence(10),
	}

	plan := models.CareerPlan{
		UserID:         user.ID,
		Title:          fmt.Sprintf("%s's Career Plan", user.Name),
		EducationLevel: gofakeit.RandomString([]string{"high school", "bachelors", "masters", "phd"}),
		EducationField: gofakeit.RandomString([]string{"computer science", "business", "design", "engineering"}),
		CareerGoals:    goal,
		AIAnalysis:     analysis,
		Progress:       float64(rng.Intn(101)),
		Status:         models.PlanStatusActive,
	}
	if err := db.Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func createMilestones(db *gorm.DB, plan *models.CareerPlan, count int, rng *rand.Rand) error {
	for i := 0; i < count; i++ {
		status := models.MilestoneStatusPending
		var completedAt *time.Time
		if rng.Intn(3) == 0 {
			status = models.MilestoneStatusCompleted
			done := time.Now().AddDate(0, 0, -rng.Intn(60))
			completedAt = &done
		}

		milestone := models.Milestone{
			CareerPlanID: plan.ID,
			Title:        milestoneTitles[rng.Intn(len(milestoneTitles))],
			Description:  gofakeit.Sentence(12),
			TargetDate:   time.Now().AddDate(0, i+1, rng.Intn(28)),
			Category:     categories[rng.Intn(len(categories))],
			Status:       status,
			CompletedAt:  completedAt,
		}
		if err := db.Create(&milestone).Error; err != nil {
			return err
		}
	}
	return nil
}

func createSkills(db *gorm.DB, plan *models.CareerPlan, count int, rng *rand.Rand) error {
	names := append([]string(nil), skillNames...)
	rng.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	if count > len(names) {
		count = len(names)
	}

	types := []models.SkillType{models.SkillTypeTechnical, models.SkillTypeSoft}
	importances := []models.SkillImportance{
		models.ImportanceCritical, models.ImportanceImportant, models.ImportanceNiceToHave,
	}

	for i := 0; i < count; i++ {
		skill := models.Skill{
			CareerPlanID:     plan.ID,
			SkillName:        names[i],
			SkillType:        types[rng.Intn(len(types))],
			ProficiencyLevel: models.ProficiencyBeginner,
			Importance:       importances[rng.Intn(len(importances))],
			IsCompleted:      rng.Intn(4) == 0,
		}
		if err := db.Create(&skill).Error; err != nil {
			return err
		}
	}
	return nil
}
