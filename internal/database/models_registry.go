package database

import "aurex/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.CareerPlan{},
		&models.PlanVersion{},
		&models.PlanShare{},
		&models.Milestone{},
		&models.Skill{},
		&models.Document{},
		&models.EmailNotification{},
		&models.NotificationPreference{},
	}
}
