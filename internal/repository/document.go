package repository

import (
	"context"
	"errors"

	"aurex/internal/models"

	"gorm.io/gorm"
)

// DocumentFilter narrows document listings. Zero values mean no filter.
type DocumentFilter struct {
	FileType     models.DocumentType
	CareerPlanID *uint
}

// DocumentRepository defines persistence operations for document metadata.
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error
	// GetOwned fetches a document only if it belongs to userID.
	GetOwned(ctx context.Context, id, userID uint) (*models.Document, error)
	ListByUser(ctx context.Context, userID uint, filter DocumentFilter) ([]models.Document, error)
	Delete(ctx context.Context, id, userID uint) error
}

type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{db: db}
}

func (r *documentRepository) Create(ctx context.Context, doc *models.Document) error {
	if err := r.db.WithContext(ctx).Create(doc).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *documentRepository) GetOwned(ctx context.Context, id, userID uint) (*models.Document, error) {
	var doc models.Document
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Document")
		}
		return nil, models.NewInternalError(err)
	}
	return &doc, nil
}

func (r *documentRepository) ListByUser(ctx context.Context, userID uint, filter DocumentFilter) ([]models.Document, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.FileType != "" {
		q = q.Where("file_type = ?", filter.FileType)
	}
	if filter.CareerPlanID != nil {
		q = q.Where("career_plan_id = ?", *filter.CareerPlanID)
	}

	var docs []models.Document
	if err := q.Order("uploaded_at DESC").Find(&docs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return docs, nil
}

func (r *documentRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Document{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Document")
	}
	return nil
}
