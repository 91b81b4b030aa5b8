// Package store defines the record store contract the core consumes.
// Implementations live in subpackages; the interfaces keep the hosted
// backend substitutable and the services testable.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
)

// DocumentStore persists uploaded documents.
type DocumentStore interface {
	// Insert creates a document record in pending status.
	Insert(ctx context.Context, req domain.CreateDocumentRequest) (*domain.Document, error)
	// Get returns a document by id.
	Get(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	// ListByOwner returns the owner's documents, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Document, error)
	// UpdateStatus moves a document through its verification lifecycle.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error
}

// VerificationStore persists verification results. Results are written once
// and never updated.
type VerificationStore interface {
	// Insert stores a result for a document.
	Insert(ctx context.Context, result *domain.VerificationResult) (*domain.VerificationResult, error)
	// GetByDocument returns the result owned by a document.
	GetByDocument(ctx context.Context, documentID uuid.UUID) (*domain.VerificationResult, error)
	// List returns all results, used by dashboard aggregation.
	List(ctx context.Context) ([]domain.VerificationResult, error)
}

// CaseStore persists investigation cases.
type CaseStore interface {
	// List returns all cases, newest first.
	List(ctx context.Context) ([]domain.Case, error)
	// Get returns a case by id.
	Get(ctx context.Context, id uuid.UUID) (*domain.Case, error)
	// Insert creates a case.
	Insert(ctx context.Context, c *domain.Case) (*domain.Case, error)
	// Update applies a partial update and advances UpdatedDate.
	Update(ctx context.Context, id uuid.UUID, req domain.UpdateCaseRequest) (*domain.Case, error)
}

// AlertStore persists compliance alerts.
type AlertStore interface {
	// List returns all alerts, newest first.
	List(ctx context.Context) ([]domain.Alert, error)
	// ListUnread returns unread alerts, newest first.
	ListUnread(ctx context.Context) ([]domain.Alert, error)
	// Insert raises an alert.
	Insert(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error)
	// MarkRead flips the read flag and returns the updated alert.
	MarkRead(ctx context.Context, id uuid.UUID) (*domain.Alert, error)
}

// AuditStore appends to and reads the audit trail. The contract deliberately
// exposes no update or delete: entries are immutable once written.
type AuditStore interface {
	// List returns up to limit entries, newest first.
	List(ctx context.Context, limit int) ([]domain.AuditEntry, error)
	// Insert appends an entry. The store generates the provenance stamp.
	Insert(ctx context.Context, actionType, entityType string, entityID *uuid.UUID, actorID uuid.UUID, details map[string]any) (*domain.AuditEntry, error)
}

// RecordStore bundles every aggregate store behind one dependency.
type RecordStore struct {
	Documents     DocumentStore
	Verifications VerificationStore
	Cases         CaseStore
	Alerts        AlertStore
	Audit         AuditStore
}
