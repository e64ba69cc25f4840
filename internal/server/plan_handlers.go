package server

import (
	"aurex/internal/models"
	"aurex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePlan handles POST /api/plans
func (s *Server) CreatePlan(c *fiber.Ctx) error {
	var req struct {
		Name           string `json:"name"`
		EducationLevel string `json:"education_level"`
		EducationField string `json:"education_field"`
		CareerGoals    string `json:"career_goals"`
		TimelineMonths *int   `json:"timeline_months"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	plan, err := s.planSvc.CreatePlan(c.Context(), service.CreatePlanInput{
		UserID:         currentUserID(c),
		Name:           req.Name,
		EducationLevel: req.EducationLevel,
		EducationField: req.EducationField,
		CareerGoals:    req.CareerGoals,
		TimelineMonths: req.TimelineMonths,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	// Creation acknowledges with a summary only. The analysis and derived
	// blobs are served by GetPlan.
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":     plan.ID,
		"title":  plan.Title,
		"status": plan.Status,
	})
}

// ListPlans handles GET /api/plans
func (s *Server) ListPlans(c *fiber.Ctx) error {
	// Unpaginated by default; limit/offset are opt-in.
	limit, offset := parsePagination(c, 0, 100)

	plans, total, err := s.planSvc.ListPlans(c.Context(), service.ListPlansInput{
		UserID: currentUserID(c),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"plans": plans,
		"total": total,
	})
}

// GetPlan handles GET /api/plans/:id
func (s *Server) GetPlan(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	plan, err := s.planSvc.GetPlan(c.Context(), planID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(plan)
}

// UpdatePlanStatus handles PATCH /api/plans/:id/status
func (s *Server) UpdatePlanStatus(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Status models.PlanStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	plan, err := s.planSvc.UpdateStatus(c.Context(), planID, currentUserID(c), req.Status)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(plan)
}

// UpdatePlanProgress handles PATCH /api/plans/:id/progress
func (s *Server) UpdatePlanProgress(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Progress float64 `json:"progress"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	plan, err := s.planSvc.UpdateProgress(c.Context(), planID, currentUserID(c), req.Progress)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(plan)
}

// DeletePlan handles DELETE /api/plans/:id
func (s *Server) DeletePlan(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.planSvc.DeletePlan(c.Context(), planID, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Plan deleted"})
}

// ListPlanVersions handles GET /api/plans/:id/versions
func (s *Server) ListPlanVersions(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	versions, err := s.planSvc.ListVersions(c.Context(), planID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"versions": versions})
}
