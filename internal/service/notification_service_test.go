package service

import (
	"context"
	"errors"
	"testing"

	"aurex/internal/models"
	"aurex/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotificationService(
	notifRepo *notificationRepoStub,
	planRepo *planRepoStub,
	milestoneRepo *milestoneRepoStub,
	sender *senderStub,
) *NotificationService {
	svc := NewNotificationService(notifRepo, planRepo, milestoneRepo, noopUserRepo(), sender)
	svc.now = fixedTime
	return svc
}

func TestNotificationService_SendMilestoneReminder(t *testing.T) {
	sender := &senderStub{}
	var logged *models.EmailNotification
	notifRepo := noopNotificationRepo()
	notifRepo.createLogFn = func(_ context.Context, entry *models.EmailNotification) error {
		logged = entry
		return nil
	}
	marked := false
	milestoneRepo := noopMilestoneRepo()
	milestoneRepo.markNotificationSentFn = func(_ context.Context, _ uint) error {
		marked = true
		return nil
	}
	svc := newNotificationService(notifRepo, noopPlanRepo(), milestoneRepo, sender)

	milestoneID := uint(3)
	reminderDate, err := svc.SendMilestoneReminder(context.Background(), MilestoneReminderInput{
		UserID:               1,
		PlanID:               1,
		MilestoneID:          &milestoneID,
		MilestoneTitle:       "Finish SQL course",
		MilestoneDescription: "Complete the advanced SQL course",
		DaysUntilMilestone:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, fixedTime().AddDate(0, 0, 7), reminderDate)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Career Milestone Reminder: Finish SQL course", sender.sent[0].Title)
	assert.Contains(t, sender.sent[0].Content, "User Ada has a milestone coming up: Complete the advanced SQL course")

	require.NotNil(t, logged)
	assert.Equal(t, models.NotificationMilestoneReminder, logged.NotificationType)
	assert.Equal(t, models.NotificationStatusSent, logged.Status)
	require.NotNil(t, logged.MilestoneID)
	assert.True(t, marked)
}

func TestNotificationService_SendMilestoneReminder_Validation(t *testing.T) {
	svc := newNotificationService(noopNotificationRepo(), noopPlanRepo(), noopMilestoneRepo(), &senderStub{})

	_, err := svc.SendMilestoneReminder(context.Background(), MilestoneReminderInput{
		UserID: 1, PlanID: 1, MilestoneTitle: " ",
	})
	require.Error(t, err)

	_, err = svc.SendMilestoneReminder(context.Background(), MilestoneReminderInput{
		UserID: 1, PlanID: 1, MilestoneTitle: "t", DaysUntilMilestone: -1,
	})
	require.Error(t, err)
}

func TestNotificationService_SendMilestoneReminder_DisabledByPreferences(t *testing.T) {
	sender := &senderStub{}
	notifRepo := noopNotificationRepo()
	notifRepo.getPreferencesFn = func(_ context.Context, userID uint) (*models.NotificationPreference, error) {
		prefs := models.DefaultNotificationPreference(userID)
		prefs.MilestoneReminders = false
		return &prefs, nil
	}
	svc := newNotificationService(notifRepo, noopPlanRepo(), noopMilestoneRepo(), sender)

	_, err := svc.SendMilestoneReminder(context.Background(), MilestoneReminderInput{
		UserID: 1, PlanID: 1, MilestoneTitle: "t", DaysUntilMilestone: 2,
	})
	require.Error(t, err)
	assert.Empty(t, sender.sent)
}

func TestNotificationService_SendMilestoneReminder_OwnershipGates(t *testing.T) {
	planRepo := noopPlanRepo()
	planRepo.getOwnedFn = func(_ context.Context, _, _ uint) (*models.CareerPlan, error) {
		return nil, models.NewNotFoundError("Career plan")
	}
	svc := newNotificationService(noopNotificationRepo(), planRepo, noopMilestoneRepo(), &senderStub{})

	_, err := svc.SendMilestoneReminder(context.Background(), MilestoneReminderInput{
		UserID: 2, PlanID: 1, MilestoneTitle: "t",
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestNotificationService_SendFailureIsLoggedAndInternal(t *testing.T) {
	sender := &senderStub{
		sendFn: func(_ context.Context, _ uint, _ notify.Message) error {
			return errors.New("webhook down")
		},
	}
	var logged *models.EmailNotification
	notifRepo := noopNotificationRepo()
	notifRepo.createLogFn = func(_ context.Context, entry *models.EmailNotification) error {
		logged = entry
		return nil
	}
	svc := newNotificationService(notifRepo, noopPlanRepo(), noopMilestoneRepo(), sender)

	_, err := svc.SendMilestoneReminder(context.Background(), MilestoneReminderInput{
		UserID: 1, PlanID: 1, MilestoneTitle: "t", DaysUntilMilestone: 1,
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)

	require.NotNil(t, logged)
	assert.Equal(t, models.NotificationStatusFailed, logged.Status)
}

func TestNotificationService_SendResourceSuggestions_TruncatesToFive(t *testing.T) {
	sender := &senderStub{}
	svc := newNotificationService(noopNotificationRepo(), noopPlanRepo(), noopMilestoneRepo(), sender)

	err := svc.SendResourceSuggestions(context.Background(), ResourceSuggestionInput{
		UserID: 1,
		PlanID: 1,
		Skills: []string{"SQL", "Go", "Kubernetes", "Terraform", "Kafka", "Spark", "Airflow"},
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Learning Resources Suggested", sender.sent[0].Title)
	assert.Contains(t, sender.sent[0].Content, "SQL, Go, Kubernetes, Terraform, Kafka")
	assert.NotContains(t, sender.sent[0].Content, "Spark")
}

func TestNotificationService_SendResourceSuggestions_RequiresSkills(t *testing.T) {
	svc := newNotificationService(noopNotificationRepo(), noopPlanRepo(), noopMilestoneRepo(), &senderStub{})

	err := svc.SendResourceSuggestions(context.Background(), ResourceSuggestionInput{UserID: 1, PlanID: 1})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestNotificationService_SendProgressCheckIn(t *testing.T) {
	sender := &senderStub{}
	svc := newNotificationService(noopNotificationRepo(), noopPlanRepo(), noopMilestoneRepo(), sender)

	err := svc.SendProgressCheckIn(context.Background(), ProgressCheckInInput{
		UserID:             1,
		PlanID:             1,
		ProgressPercentage: 40,
		NextMilestone:      "Finish SQL course",
	})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Career Progress Update", sender.sent[0].Title)
	assert.Contains(t, sender.sent[0].Content, "User Ada is 40% through their career plan")
	assert.Contains(t, sender.sent[0].Content, "Next milestone: Finish SQL course")
}

func TestNotificationService_SendProgressCheckIn_OutOfRange(t *testing.T) {
	svc := newNotificationService(noopNotificationRepo(), noopPlanRepo(), noopMilestoneRepo(), &senderStub{})

	for _, progress := range []float64{-5, 101} {
		err := svc.SendProgressCheckIn(context.Background(), ProgressCheckInInput{
			UserID: 1, PlanID: 1, ProgressPercentage: progress,
		})
		require.Error(t, err)

		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}
}

func TestNotificationService_UpdatePreferences_Merges(t *testing.T) {
	var saved *models.NotificationPreference
	notifRepo := noopNotificationRepo()
	notifRepo.savePreferencesFn = func(_ context.Context, prefs *models.NotificationPreference) error {
		saved = prefs
		return nil
	}
	svc := newNotificationService(notifRepo, noopPlanRepo(), noopMilestoneRepo(), &senderStub{})

	disabled := false
	monthly := models.FrequencyMonthly
	prefs, err := svc.UpdatePreferences(context.Background(), UpdatePreferencesInput{
		UserID:             1,
		MilestoneReminders: &disabled,
		ReminderFrequency:  &monthly,
	})
	require.NoError(t, err)

	assert.False(t, prefs.MilestoneReminders)
	assert.True(t, prefs.ResourceSuggestions, "untouched fields keep their stored values")
	assert.Equal(t, models.FrequencyMonthly, prefs.ReminderFrequency)
	assert.Equal(t, "09:00", prefs.PreferredTime)
	require.NotNil(t, saved)
}

func TestNotificationService_UpdatePreferences_Validation(t *testing.T) {
	svc := newNotificationService(noopNotificationRepo(), noopPlanRepo(), noopMilestoneRepo(), &senderStub{})

	daily := models.ReminderFrequency("daily")
	_, err := svc.UpdatePreferences(context.Background(), UpdatePreferencesInput{UserID: 1, ReminderFrequency: &daily})
	require.Error(t, err)

	for _, bad := range []string{"9:00", "25:00", "09:60", "morning"} {
		badTime := bad
		_, err := svc.UpdatePreferences(context.Background(), UpdatePreferencesInput{UserID: 1, PreferredTime: &badTime})
		require.Error(t, err, bad)
	}

	good := "18:30"
	_, err = svc.UpdatePreferences(context.Background(), UpdatePreferencesInput{UserID: 1, PreferredTime: &good})
	assert.NoError(t, err)
}
