package server

import (
	"aurex/internal/models"
	"aurex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListSkills handles GET /api/plans/:id/skills
func (s *Server) ListSkills(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	skills, err := s.skillSvc.ListSkills(c.Context(), planID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"skills": skills})
}

// AddSkill handles POST /api/plans/:id/skills
func (s *Server) AddSkill(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		SkillName        string                  `json:"skill_name"`
		SkillType        models.SkillType        `json:"skill_type"`
		ProficiencyLevel models.ProficiencyLevel `json:"proficiency_level"`
		Importance       models.SkillImportance  `json:"importance"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillSvc.AddSkill(c.Context(), service.AddSkillInput{
		PlanID:           planID,
		UserID:           currentUserID(c),
		SkillName:        req.SkillName,
		SkillType:        req.SkillType,
		ProficiencyLevel: req.ProficiencyLevel,
		Importance:       req.Importance,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(skill)
}

// UpdateSkillCompletion handles PATCH /api/plans/:id/skills/:skillId/completion
func (s *Server) UpdateSkillCompletion(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	skillID, err := parseIDParam(c, "skillId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Completed bool `json:"completed"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	skill, err := s.skillSvc.SetSkillCompletion(c.Context(), skillID, planID, currentUserID(c), req.Completed)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(skill)
}

// DeleteSkill handles DELETE /api/plans/:id/skills/:skillId
func (s *Server) DeleteSkill(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	skillID, err := parseIDParam(c, "skillId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.skillSvc.DeleteSkill(c.Context(), skillID, planID, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Skill deleted"})
}
