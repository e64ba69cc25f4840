package models

import "time"

// MilestoneStatus tracks completion of a plan milestone.
type MilestoneStatus string

const (
	MilestoneStatusPending    MilestoneStatus = "pending"
	MilestoneStatusInProgress MilestoneStatus = "in_progress"
	MilestoneStatusCompleted  MilestoneStatus = "completed"
)

// ValidMilestoneStatus reports whether s is a known milestone status.
func ValidMilestoneStatus(s MilestoneStatus) bool {
	switch s {
	case MilestoneStatusPending, MilestoneStatusInProgress, MilestoneStatusCompleted:
		return true
	}
	return false
}

// Milestone is a dated step within a career plan.
type Milestone struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	CareerPlanID     uint            `gorm:"not null;index" json:"career_plan_id"`
	Title            string          `gorm:"not null;size:255" json:"title"`
	Description      string          `gorm:"type:text" json:"description"`
	TargetDate       time.Time       `gorm:"not null" json:"target_date"`
	Category         string          `gorm:"not null;size:100" json:"category"`
	Status           MilestoneStatus `gorm:"type:varchar(16);default:pending;not null" json:"status"`
	CompletedAt      *time.Time      `json:"completed_at,omitempty"`
	NotificationSent bool            `gorm:"default:false;not null" json:"notification_sent"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
