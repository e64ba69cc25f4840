package server

import (
	"aurex/internal/models"
	"aurex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateShare handles POST /api/plans/:id/shares
func (s *Server) CreateShare(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		ShareType     models.ShareType `json:"share_type"`
		ExpiresInDays *int             `json:"expires_in_days"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	share, err := s.shareSvc.CreateShare(c.Context(), service.CreateShareInput{
		PlanID:        planID,
		UserID:        currentUserID(c),
		ShareType:     req.ShareType,
		ExpiresInDays: req.ExpiresInDays,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(share)
}

// ListShares handles GET /api/plans/:id/shares
func (s *Server) ListShares(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	shares, err := s.shareSvc.ListShares(c.Context(), planID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"shares": shares})
}

// RevokeShare handles DELETE /api/plans/:id/shares/:shareId
func (s *Server) RevokeShare(c *fiber.Ctx) error {
	planID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}
	shareID, err := parseIDParam(c, "shareId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.shareSvc.RevokeShare(c.Context(), shareID, planID, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Share revoked"})
}

// ResolveSharedPlan handles GET /api/shared/:token. No authentication; the
// token itself is the capability.
func (s *Server) ResolveSharedPlan(c *fiber.Ctx) error {
	view, err := s.shareSvc.ResolveShare(c.Context(), c.Params("token"))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(view)
}
