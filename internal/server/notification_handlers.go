package server

import (
	"aurex/internal/models"
	"aurex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendMilestoneReminder handles POST /api/notifications/milestone-reminder
func (s *Server) SendMilestoneReminder(c *fiber.Ctx) error {
	var req struct {
		PlanID               uint   `json:"plan_id"`
		MilestoneID          *uint  `json:"milestone_id"`
		MilestoneTitle       string `json:"milestone_title"`
		MilestoneDescription string `json:"milestone_description"`
		DaysUntilMilestone   int    `json:"days_until_milestone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	reminderDate, err := s.notifySvc.SendMilestoneReminder(c.Context(), service.MilestoneReminderInput{
		UserID:               currentUserID(c),
		PlanID:               req.PlanID,
		MilestoneID:          req.MilestoneID,
		MilestoneTitle:       req.MilestoneTitle,
		MilestoneDescription: req.MilestoneDescription,
		DaysUntilMilestone:   req.DaysUntilMilestone,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"reminder_date": reminderDate,
	})
}

// SendResourceSuggestions handles POST /api/notifications/resource-suggestions
func (s *Server) SendResourceSuggestions(c *fiber.Ctx) error {
	var req struct {
		PlanID uint     `json:"plan_id"`
		Skills []string `json:"skills"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.notifySvc.SendResourceSuggestions(c.Context(), service.ResourceSuggestionInput{
		UserID: currentUserID(c),
		PlanID: req.PlanID,
		Skills: req.Skills,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// SendProgressCheckIn handles POST /api/notifications/progress-checkin
func (s *Server) SendProgressCheckIn(c *fiber.Ctx) error {
	var req struct {
		PlanID             uint    `json:"plan_id"`
		ProgressPercentage float64 `json:"progress_percentage"`
		NextMilestone      string  `json:"next_milestone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	err := s.notifySvc.SendProgressCheckIn(c.Context(), service.ProgressCheckInInput{
		UserID:             currentUserID(c),
		PlanID:             req.PlanID,
		ProgressPercentage: req.ProgressPercentage,
		NextMilestone:      req.NextMilestone,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListNotifications handles GET /api/notifications
func (s *Server) ListNotifications(c *fiber.Ctx) error {
	limit, offset := parsePagination(c, 20, 100)

	notifications, err := s.notifySvc.ListNotifications(c.Context(), currentUserID(c), limit, offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"notifications": notifications})
}

// GetNotificationPreferences handles GET /api/notifications/preferences
func (s *Server) GetNotificationPreferences(c *fiber.Ctx) error {
	prefs, err := s.notifySvc.GetPreferences(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(prefs)
}

// UpdateNotificationPreferences handles PUT /api/notifications/preferences
func (s *Server) UpdateNotificationPreferences(c *fiber.Ctx) error {
	var req struct {
		MilestoneReminders  *bool                     `json:"milestone_reminders"`
		ResourceSuggestions *bool                     `json:"resource_suggestions"`
		ProgressCheckIns    *bool                     `json:"progress_check_ins"`
		ReminderFrequency   *models.ReminderFrequency `json:"reminder_frequency"`
		PreferredTime       *string                   `json:"preferred_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prefs, err := s.notifySvc.UpdatePreferences(c.Context(), service.UpdatePreferencesInput{
		UserID:              currentUserID(c),
		MilestoneReminders:  req.MilestoneReminders,
		ResourceSuggestions: req.ResourceSuggestions,
		ProgressCheckIns:    req.ProgressCheckIns,
		ReminderFrequency:   req.ReminderFrequency,
		PreferredTime:       req.PreferredTime,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(prefs)
}
