package domain

import (
	"time"

	"github.com/google/uuid"
)

// DocumentType represents the category of an uploaded document
type DocumentType string

const (
	DocumentTypeID        DocumentType = "id"
	DocumentTypeKYC       DocumentType = "kyc"
	DocumentTypeFinancial DocumentType = "financial"
	DocumentTypeBusiness  DocumentType = "business"
)

// DocumentStatus represents the verification lifecycle state of a document
type DocumentStatus string

const (
	DocumentStatusPending    DocumentStatus = "pending"
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusVerified   DocumentStatus = "verified"
	DocumentStatusFlagged    DocumentStatus = "flagged"
	DocumentStatusRejected   DocumentStatus = "rejected"
)

// ValidDocumentType reports whether t is a known document type.
func ValidDocumentType(t DocumentType) bool {
	switch t {
	case DocumentTypeID, DocumentTypeKYC, DocumentTypeFinancial, DocumentTypeBusiness:
		return true
	}
	return false
}

// Document represents an uploaded compliance document
type Document struct {
	ID      uuid.UUID `json:"id" db:"id"`
	OwnerID uuid.UUID `json:"owner_id" db:"owner_id"`

	// File details
	FileName string `json:"file_name" db:"file_name"`
	FileType string `json:"file_type" db:"file_type"`
	FileURL  string `json:"file_url" db:"file_url"`

	// Classification
	DocumentType DocumentType   `json:"document_type" db:"document_type"`
	Status       DocumentStatus `json:"status" db:"status"`

	// Timestamps
	UploadDate time.Time `json:"upload_date" db:"upload_date"`
}

// IsTerminal returns true once verification has reached a final state
func (d *Document) IsTerminal() bool {
	return d.Status == DocumentStatusVerified ||
		d.Status == DocumentStatusFlagged ||
		d.Status == DocumentStatusRejected
}

// CreateDocumentRequest represents a request to register an uploaded document
type CreateDocumentRequest struct {
	OwnerID      uuid.UUID    `json:"owner_id" validate:"required"`
	FileName     string       `json:"file_name" validate:"required"`
	FileType     string       `json:"file_type" validate:"required"`
	FileURL      string       `json:"file_url" validate:"required"`
	DocumentType DocumentType `json:"document_type" validate:"required,oneof=id kyc financial business"`
}
