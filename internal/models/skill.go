package models

import "time"

// SkillType distinguishes technical from soft skills.
type SkillType string

const (
	SkillTypeTechnical SkillType = "technical"
	SkillTypeSoft      SkillType = "soft"
)

// ProficiencyLevel is the user's current level for a skill.
type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "beginner"
	ProficiencyIntermediate ProficiencyLevel = "intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "advanced"
	ProficiencyExpert       ProficiencyLevel = "expert"
)

// SkillImportance is the tier assigned by the analysis.
type SkillImportance string

const (
	ImportanceCritical   SkillImportance = "critical"
	ImportanceImportant  SkillImportance = "important"
	ImportanceNiceToHave SkillImportance = "nice_to_have"
)

// Skill is a development target attached to a career plan, typically sourced
// from the analysis skill gaps.
type Skill struct {
	ID                uint             `gorm:"primaryKey" json:"id"`
	CareerPlanID      uint             `gorm:"not null;index" json:"career_plan_id"`
	SkillName         string           `gorm:"not null;size:255" json:"skill_name"`
	SkillType         SkillType        `gorm:"type:varchar(16);not null" json:"skill_type"`
	ProficiencyLevel  ProficiencyLevel `gorm:"type:varchar(16);default:beginner;not null" json:"proficiency_level"`
	Importance        SkillImportance  `gorm:"type:varchar(16);default:important;not null" json:"importance"`
	IsCompleted       bool             `gorm:"default:false;not null" json:"is_completed"`
	CompletedAt       *time.Time       `json:"completed_at,omitempty"`
	LearningResources JSONMap          `json:"learning_resources,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}
