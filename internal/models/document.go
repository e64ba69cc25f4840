package models

import "time"

// DocumentType is the declared purpose of an uploaded file.
type DocumentType string

const (
	DocumentTypeResume      DocumentType = "resume"
	DocumentTypeCertificate DocumentType = "certificate"
	DocumentTypePortfolio   DocumentType = "portfolio"
)

// ValidDocumentType reports whether t is a known document type.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeResume, DocumentTypeCertificate, DocumentTypePortfolio:
		return true
	}
	return false
}

// Document stores metadata for a file held in the blob store. The bytes
// themselves live behind FileKey; FileURL is the retrievable location the
// store returned at upload time.
type Document struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"not null;index" json:"user_id"`
	CareerPlanID *uint        `gorm:"index" json:"career_plan_id,omitempty"`
	FileName     string       `gorm:"not null;size:255" json:"file_name"`
	FileType     DocumentType `gorm:"type:varchar(16);not null" json:"file_type"`
	FileKey      string       `gorm:"not null;size:512" json:"file_key"`
	FileURL      string       `gorm:"type:text;not null" json:"file_url"`
	FileSize     int          `gorm:"not null" json:"file_size"`
	UploadedAt   time.Time    `gorm:"autoCreateTime" json:"uploaded_at"`
}
