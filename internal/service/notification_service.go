package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"aurex/internal/middleware"
	"aurex/internal/models"
	"aurex/internal/notify"
	"aurex/internal/observability"
	"aurex/internal/repository"
	"aurex/internal/validation"
)

var preferredTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NotificationService composes and delivers plan notifications and manages
// per-user preferences.
type NotificationService struct {
	notifRepo     repository.NotificationRepository
	planRepo      repository.PlanRepository
	milestoneRepo repository.MilestoneRepository
	userRepo      repository.UserRepository
	sender        notify.Sender
	now           func() time.Time
}

// MilestoneReminderInput describes a reminder about an upcoming milestone.
// MilestoneID is optional; when set, the milestone is marked as notified.
type MilestoneReminderInput struct {
	UserID               uint
	PlanID               uint
	MilestoneID          *uint
	MilestoneTitle       string
	MilestoneDescription string
	DaysUntilMilestone   int
}

// ResourceSuggestionInput describes a learning resource suggestion.
type ResourceSuggestionInput struct {
	UserID uint
	PlanID uint
	Skills []string
}

// ProgressCheckInInput describes a progress check-in notification.
type ProgressCheckInInput struct {
	UserID             uint
	PlanID             uint
	ProgressPercentage float64
	NextMilestone      string
}

// UpdatePreferencesInput carries preference changes. Nil pointers leave the
// stored value unchanged.
type UpdatePreferencesInput struct {
	UserID              uint
	MilestoneReminders  *bool
	ResourceSuggestions *bool
	ProgressCheckIns    *bool
	ReminderFrequency   *models.ReminderFrequency
	PreferredTime       *string
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	notifRepo repository.NotificationRepository,
	planRepo repository.PlanRepository,
	milestoneRepo repository.MilestoneRepository,
	userRepo repository.UserRepository,
	sender notify.Sender,
) *NotificationService {
	return &NotificationService{
		notifRepo:     notifRepo,
		planRepo:      planRepo,
		milestoneRepo: milestoneRepo,
		userRepo:      userRepo,
		sender:        sender,
		now:           time.Now,
	}
}

// SendMilestoneReminder delivers a reminder for a milestone on a plan the
// caller owns and returns the date the reminder describes.
func (s *NotificationService) SendMilestoneReminder(ctx context.Context, in MilestoneReminderInput) (time.Time, error) {
	if strings.TrimSpace(in.MilestoneTitle) == "" {
		return time.Time{}, models.NewValidationError("Milestone title is required")
	}
	if in.DaysUntilMilestone < 0 {
		return time.Time{}, models.NewValidationError("Days until milestone cannot be negative")
	}

	if _, err := s.planRepo.GetOwned(ctx, in.PlanID, in.UserID); err != nil {
		return time.Time{}, err
	}
	if in.MilestoneID != nil {
		if _, err := s.milestoneRepo.GetForPlan(ctx, *in.MilestoneID, in.PlanID); err != nil {
			return time.Time{}, err
		}
	}

	prefs, err := s.notifRepo.GetPreferences(ctx, in.UserID)
	if err != nil {
		return time.Time{}, err
	}
	if !prefs.MilestoneReminders {
		return time.Time{}, models.NewValidationError("Milestone reminders are disabled in notification preferences")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return time.Time{}, err
	}

	reminderDate := s.now().AddDate(0, 0, in.DaysUntilMilestone)
	msg := notify.Message{
		Title: fmt.Sprintf("Career Milestone Reminder: %s", in.MilestoneTitle),
		Content: fmt.Sprintf("User %s has a milestone coming up: %s. Estimated date: %s",
			user.Name, in.MilestoneDescription, reminderDate.Format("1/2/2006")),
	}

	if err := s.deliver(ctx, msg, models.NotificationMilestoneReminder, in.UserID, in.PlanID, in.MilestoneID); err != nil {
		return time.Time{}, err
	}
	if in.MilestoneID != nil {
		if markErr := s.milestoneRepo.MarkNotificationSent(ctx, *in.MilestoneID); markErr != nil {
			middleware.Logger.WarnContext(ctx, "Failed to mark milestone as notified",
				slog.Uint64("milestone_id", uint64(*in.MilestoneID)),
				slog.String("error", markErr.Error()),
			)
		}
	}
	return reminderDate, nil
}

// SendResourceSuggestions delivers a learning resource suggestion for a
// plan the caller owns. At most five skills are named.
func (s *NotificationService) SendResourceSuggestions(ctx context.Context, in ResourceSuggestionInput) error {
	if len(in.Skills) == 0 {
		return models.NewValidationError("At least one skill is required")
	}

	if _, err := s.planRepo.GetOwned(ctx, in.PlanID, in.UserID); err != nil {
		return err
	}

	prefs, err := s.notifRepo.GetPreferences(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !prefs.ResourceSuggestions {
		return models.NewValidationError("Resource suggestions are disabled in notification preferences")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	skills := in.Skills
	if len(skills) > 5 {
		skills = skills[:5]
	}
	msg := notify.Message{
		Title: "Learning Resources Suggested",
		Content: fmt.Sprintf("User %s has been recommended resources for skills: %s. "+
			"They should focus on these areas to achieve their career goal.",
			user.Name, strings.Join(skills, ", ")),
	}

	return s.deliver(ctx, msg, models.NotificationResourceSuggestion, in.UserID, in.PlanID, nil)
}

// SendProgressCheckIn delivers a progress check-in for a plan the caller
// owns.
func (s *NotificationService) SendProgressCheckIn(ctx context.Context, in ProgressCheckInInput) error {
	if err := validation.ValidateProgress(in.ProgressPercentage); err != nil {
		return models.NewValidationError(err.Error())
	}

	if _, err := s.planRepo.GetOwned(ctx, in.PlanID, in.UserID); err != nil {
		return err
	}

	prefs, err := s.notifRepo.GetPreferences(ctx, in.UserID)
	if err != nil {
		return err
	}
	if !prefs.ProgressCheckIns {
		return models.NewValidationError("Progress check-ins are disabled in notification preferences")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	msg := notify.Message{
		Title: "Career Progress Update",
		Content: fmt.Sprintf("User %s is %g%% through their career plan. Next milestone: %s. Keep them motivated!",
			user.Name, in.ProgressPercentage, in.NextMilestone),
	}

	return s.deliver(ctx, msg, models.NotificationProgressCheckIn, in.UserID, in.PlanID, nil)
}

// deliver sends the message and records the attempt in the send log.
func (s *NotificationService) deliver(
	ctx context.Context,
	msg notify.Message,
	notifType models.NotificationType,
	userID, planID uint,
	milestoneID *uint,
) error {
	sendErr := s.sender.Send(ctx, userID, msg)

	status := models.NotificationStatusSent
	if sendErr != nil {
		status = models.NotificationStatusFailed
	}
	observability.NotificationSends.WithLabelValues(string(notifType), string(status)).Inc()

	entry := &models.EmailNotification{
		UserID:           userID,
		CareerPlanID:     planID,
		MilestoneID:      milestoneID,
		NotificationType: notifType,
		Subject:          msg.Title,
		Content:          msg.Content,
		Status:           status,
	}
	if logErr := s.notifRepo.CreateLog(ctx, entry); logErr != nil {
		middleware.Logger.ErrorContext(ctx, "Failed to record notification log",
			slog.Uint64("user_id", uint64(userID)),
			slog.String("error", logErr.Error()),
		)
	}

	if sendErr != nil {
		return models.NewInternalError(sendErr)
	}
	return nil
}

// ListNotifications returns the caller's send log, newest first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID uint, limit, offset int) ([]models.EmailNotification, error) {
	return s.notifRepo.ListByUser(ctx, userID, limit, offset)
}

// GetPreferences returns stored preferences or the defaults.
func (s *NotificationService) GetPreferences(ctx context.Context, userID uint) (*models.NotificationPreference, error) {
	return s.notifRepo.GetPreferences(ctx, userID)
}

// UpdatePreferences merges the provided changes over the stored values.
func (s *NotificationService) UpdatePreferences(ctx context.Context, in UpdatePreferencesInput) (*models.NotificationPreference, error) {
	if in.ReminderFrequency != nil && !models.ValidReminderFrequency(*in.ReminderFrequency) {
		return nil, models.NewValidationError("Invalid reminder frequency")
	}
	if in.PreferredTime != nil && !preferredTimeRegex.MatchString(*in.PreferredTime) {
		return nil, models.NewValidationError("Preferred time must be HH:MM in 24-hour format")
	}

	prefs, err := s.notifRepo.GetPreferences(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.MilestoneReminders != nil {
		prefs.MilestoneReminders = *in.MilestoneReminders
	}
	if in.ResourceSuggestions != nil {
		prefs.ResourceSuggestions = *in.ResourceSuggestions
	}
	if in.ProgressCheckIns != nil {
		prefs.ProgressCheckIns = *in.ProgressCheckIns
	}
	if in.ReminderFrequency != nil {
		prefs.ReminderFrequency = *in.ReminderFrequency
	}
	if in.PreferredTime != nil {
		prefs.PreferredTime = *in.PreferredTime
	}

	if err := s.notifRepo.SavePreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}
