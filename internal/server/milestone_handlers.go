package server

import (
	"time"

	"aurex/internal/models"
	"aurex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListMilestones handles GET /api/plans/:id/milestones
func (s *Server) ListMilestones(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	milestones, err := s.milestoneSvc.ListMilestones(c.Context(), planID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"milestones": milestones})
}

// CreateMilestone handles POST /api/plans/:id/milestones
func (s *Server) CreateMilestone(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		TargetDate  time.Time `json:"target_date"`
		Category    string    `json:"category"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	milestone, err := s.milestoneSvc.CreateMilestone(c.Context(), service.CreateMilestoneInput{
		PlanID:      planID,
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		Category:    req.Category,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(milestone)
}

// UpdateMilestoneStatus handles PATCH /api/plans/:id/milestones/:milestoneId/status
func (s *Server) UpdateMilestoneStatus(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	milestoneID, err := parseIDParam(c, "milestoneId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Status models.MilestoneStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	milestone, err := s.milestoneSvc.UpdateMilestone(c.Context(), service.UpdateMilestoneInput{
		MilestoneID: milestoneID,
		PlanID:      planID,
		UserID:      currentUserID(c),
		Status:      &req.Status,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(milestone)
}

// DeleteMilestone handles DELETE /api/plans/:id/milestones/:milestoneId
func (s *Server) DeleteMilestone(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	milestoneID, err := parseIDParam(c, "milestoneId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.milestoneSvc.DeleteMilestone(c.Context(), milestoneID, planID, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Milestone deleted"})
}
