package server

import (
	"aurex/internal/models"
	"aurex/internal/repository"
	"aurex/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadDocument handles POST /api/documents
func (s *Server) UploadDocument(c *fiber.Ctx) error {
	var req struct {
		FileName     string              `json:"file_name"`
		FileType     models.DocumentType `json:"file_type"`
		FileData     string              `json:"file_data"`
		CareerPlanID *uint               `json:"career_plan_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	doc, err := s.documentSvc.Upload(c.Context(), service.UploadDocumentInput{
		UserID:       currentUserID(c),
		FileName:     req.FileName,
		FileType:     req.FileType,
		FileData:     req.FileData,
		CareerPlanID: req.CareerPlanID,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

// ListDocuments handles GET /api/documents. Optional query filters: type
// (document type) and plan_id.
func (s *Server) ListDocuments(c *fiber.Ctx) error {
	filter := repository.DocumentFilter{
		FileType: models.DocumentType(c.Query("type")),
	}
	if planID := c.QueryInt("plan_id", 0); planID > 0 {
		id := uint(planID)
		filter.CareerPlanID = &id
	}

	docs, err := s.documentSvc.ListDocuments(c.Context(), currentUserID(c), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"documents": docs})
}

// GetDownloadURL handles GET /api/documents/:id/download-url
func (s *Server) GetDownloadURL(c *fiber.Ctx) error {
	docID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	url, err := s.documentSvc.DownloadURL(c.Context(), docID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"url": url})
}

// DeleteDocument handles DELETE /api/documents/:id
func (s *Server) DeleteDocument(c *fiber.Ctx) error {
	docID, err := parseIDParam(c, "id")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.documentSvc.DeleteDocument(c.Context(), docID, currentUserID(c)); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Document deleted"})
}
