package models

import "time"

// NotificationType identifies which composer produced a notification.
type NotificationType string

const (
	NotificationMilestoneReminder  NotificationType = "milestone_reminder"
	NotificationResourceSuggestion NotificationType = "resource_suggestion"
	NotificationProgressCheckIn    NotificationType = "progress_checkin"
)

// NotificationStatus is the delivery outcome recorded for a send attempt.
type NotificationStatus string

const (
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
	NotificationStatusPending NotificationStatus = "pending"
)

// EmailNotification is the log record for a notification send attempt.
type EmailNotification struct {
	ID               uint               `gorm:"primaryKey" json:"id"`
	UserID           uint               `gorm:"not null;index" json:"user_id"`
	CareerPlanID     uint               `gorm:"not null;index" json:"career_plan_id"`
	MilestoneID      *uint              `json:"milestone_id,omitempty"`
	NotificationType NotificationType   `gorm:"type:varchar(32);not null" json:"notification_type"`
	Subject          string             `gorm:"not null;size:255" json:"subject"`
	Content          string             `gorm:"type:text;not null" json:"content"`
	SentAt           time.Time          `gorm:"autoCreateTime" json:"sent_at"`
	Status           NotificationStatus `gorm:"type:varchar(16);default:pending;not null" json:"status"`
}

// ReminderFrequency is how often the user wants periodic reminders.
type ReminderFrequency string

const (
	FrequencyWeekly   ReminderFrequency = "weekly"
	FrequencyBiweekly ReminderFrequency = "biweekly"
	FrequencyMonthly  ReminderFrequency = "monthly"
)

// ValidReminderFrequency reports whether f is a known frequency.
func ValidReminderFrequency(f ReminderFrequency) bool {
	switch f {
	case FrequencyWeekly, FrequencyBiweekly, FrequencyMonthly:
		return true
	}
	return false
}

// NotificationPreference is the durable per-user notification settings row.
type NotificationPreference struct {
	ID                  uint              `gorm:"primaryKey" json:"-"`
	UserID              uint              `gorm:"uniqueIndex;not null" json:"-"`
	MilestoneReminders  bool              `gorm:"default:true;not null" json:"milestone_reminders"`
	ResourceSuggestions bool              `gorm:"default:true;not null" json:"resource_suggestions"`
	ProgressCheckIns    bool              `gorm:"default:true;not null" json:"progress_check_ins"`
	ReminderFrequency   ReminderFrequency `gorm:"type:varchar(16);default:weekly;not null" json:"reminder_frequency"`
	PreferredTime       string            `gorm:"size:5;default:'09:00';not null" json:"preferred_time"`
	CreatedAt           time.Time         `json:"-"`
	UpdatedAt           time.Time         `json:"-"`
}

// DefaultNotificationPreference returns the defaults applied before a user
// has saved any preferences.
func DefaultNotificationPreference(userID uint) NotificationPreference {
	return NotificationPreference{
		UserID:              userID,
		MilestoneReminders:  true,
		ResourceSuggestions: true,
		ProgressCheckIns:    true,
		ReminderFrequency:   FrequencyWeekly,
		PreferredTime:       "09:00",
	}
}
