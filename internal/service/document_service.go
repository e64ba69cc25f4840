package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"aurex/internal/models"
	"aurex/internal/observability"
	"aurex/internal/repository"
	"aurex/internal/storage"
)

// maxDocumentBytes caps the decoded upload size.
const maxDocumentBytes = 10 << 20 // 10 MiB

// DocumentService manages document metadata and the blob store behind it.
type DocumentService struct {
	docRepo repository.DocumentRepository
	store   storage.Client
	now     func() time.Time
}

// UploadDocumentInput carries a base64-encoded file and its metadata.
type UploadDocumentInput struct {
	UserID       uint
	FileName     string
	FileType     models.DocumentType
	FileData     string
	CareerPlanID *uint
}

// NewDocumentService creates a new document service.
func NewDocumentService(docRepo repository.DocumentRepository, store storage.Client) *DocumentService {
	return &DocumentService{
		docRepo: docRepo,
		store:   store,
		now:     time.Now,
	}
}

// contentTypeFor sniffs the MIME type from the file name's extension.
func contentTypeFor(fileName string) string {
	name := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "application/pdf"
	case strings.HasSuffix(name, ".doc"), strings.HasSuffix(name, ".docx"):
		return "application/msword"
	case strings.HasSuffix(name, ".jpg"), strings.HasSuffix(name, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(name, ".png"):
		return "image/png"
	default:
		return "application/octet-stream"
	}
}

// Upload decodes, stores, and records the document. A metadata write that
// fails after the blob was stored leaves the blob orphaned; it is never
// rolled back.
func (s *DocumentService) Upload(ctx context.Context, in UploadDocumentInput) (*models.Document, error) {
	if strings.TrimSpace(in.FileName) == "" {
		return nil, models.NewValidationError("File name is required")
	}
	if strings.Contains(in.FileName, "/") || strings.Contains(in.FileName, "\\") {
		return nil, models.NewValidationError("File name must not contain path separators")
	}
	if !models.ValidDocumentType(in.FileType) {
		return nil, models.NewValidationError("Invalid file type")
	}
	if in.FileData == "" {
		return nil, models.NewValidationError("File data is required")
	}

	data, err := base64.StdEncoding.DecodeString(in.FileData)
	if err != nil {
		return nil, models.NewValidationError("File data is not valid base64")
	}
	if len(data) == 0 {
		return nil, models.NewValidationError("File is empty")
	}
	if len(data) > maxDocumentBytes {
		return nil, models.NewValidationError("File exceeds the 10MB limit")
	}

	contentType := contentTypeFor(in.FileName)
	fileKey := fmt.Sprintf("%d/documents/%s/%d-%s", in.UserID, in.FileType, s.now().UnixMilli(), in.FileName)

	fileURL, err := s.store.Upload(ctx, fileKey, data, contentType)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.DocumentUploadBytes.Observe(float64(len(data)))

	doc := &models.Document{
		UserID:       in.UserID,
		CareerPlanID: in.CareerPlanID,
		FileName:     in.FileName,
		FileType:     in.FileType,
		FileKey:      fileKey,
		FileURL:      fileURL,
		FileSize:     len(data),
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments returns the caller's documents, optionally filtered.
func (s *DocumentService) ListDocuments(ctx context.Context, userID uint, filter repository.DocumentFilter) ([]models.Document, error) {
	return s.docRepo.ListByUser(ctx, userID, filter)
}

// DownloadURL returns a fresh presigned URL for a document the caller owns.
func (s *DocumentService) DownloadURL(ctx context.Context, documentID, userID uint) (string, error) {
	doc, err := s.docRepo.GetOwned(ctx, documentID, userID)
	if err != nil {
		return "", err
	}

	url, err := s.store.DownloadURL(ctx, doc.FileKey)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return url, nil
}

// DeleteDocument removes the metadata row. The stored blob is kept; only
// the database record is deleted.
func (s *DocumentService) DeleteDocument(ctx context.Context, documentID, userID uint) error {
	return s.docRepo.Delete(ctx, documentID, userID)
}
