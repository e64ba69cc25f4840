package models

import (
	"time"
)

// PlanStatus is the lifecycle state of a career plan. Any status may be set
// to any other; no transition graph is enforced.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "draft"
	PlanStatusActive    PlanStatus = "active"
	PlanStatusCompleted PlanStatus = "completed"
	PlanStatusArchived  PlanStatus = "archived"
)

// ValidPlanStatus reports whether s is one of the known plan statuses.
func ValidPlanStatus(s PlanStatus) bool {
	switch s {
	case PlanStatusDraft, PlanStatusActive, PlanStatusCompleted, PlanStatusArchived:
		return true
	}
	return false
}

// CareerPlan is a user's career-guidance record: profile input plus the
// AI-derived analysis and its rendered sub-resources.
type CareerPlan struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             uint       `gorm:"not null;index" json:"user_id"`
	User               User       `gorm:"foreignKey:UserID" json:"-"`
	Title              string     `gorm:"not null;size:255" json:"title"`
	EducationLevel     string     `gorm:"not null;size:100" json:"education_level"`
	EducationField     string     `gorm:"not null;size:255" json:"education_field"`
	CareerGoals        string     `gorm:"type:text;not null" json:"career_goals"`
	UserTimelineMonths *int       `json:"user_timeline_months,omitempty"`
	AIAnalysis         JSONMap    `gorm:"not null" json:"ai_analysis"`
	MindmapData        JSONMap    `json:"mindmap_data,omitempty"`
	TimelineData       JSONMap    `json:"timeline_data,omitempty"`
	SkillsData         JSONMap    `json:"skills_data,omitempty"`
	ResourcesData      JSONMap    `json:"resources_data,omitempty"`
	Progress           float64    `gorm:"type:decimal(5,2);default:0" json:"progress"`
	Status             PlanStatus `gorm:"type:varchar(16);default:draft;not null" json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`

	Milestones []Milestone `gorm:"foreignKey:CareerPlanID" json:"milestones,omitempty"`
	Skills     []Skill     `gorm:"foreignKey:CareerPlanID" json:"skills,omitempty"`
}

// PlanVersion is an append-only changelog entry for a plan.
type PlanVersion struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CareerPlanID  uint      `gorm:"not null;index" json:"career_plan_id"`
	VersionNumber int       `gorm:"not null" json:"version_number"`
	Changes       JSONMap   `json:"changes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ShareType is the channel a plan share was created for.
type ShareType string

const (
	ShareTypeLink   ShareType = "link"
	ShareTypeEmail  ShareType = "email"
	ShareTypeSocial ShareType = "social"
)

// ValidShareType reports whether t is one of the known share types.
func ValidShareType(t ShareType) bool {
	switch t {
	case ShareTypeLink, ShareTypeEmail, ShareTypeSocial:
		return true
	}
	return false
}

// PlanShare is a shareable token granting read access to a plan.
type PlanShare struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	CareerPlanID uint       `gorm:"not null;index" json:"career_plan_id"`
	ShareToken   string     `gorm:"uniqueIndex;not null;size:255" json:"share_token"`
	SharedBy     uint       `gorm:"not null" json:"shared_by"`
	ShareType    ShareType  `gorm:"type:varchar(16);default:link;not null" json:"share_type"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	ViewCount    int        `gorm:"default:0;not null" json:"view_count"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Expired reports whether the share can no longer be resolved.
func (s *PlanShare) Expired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
