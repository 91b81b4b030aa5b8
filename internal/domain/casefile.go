package domain

import (
	"time"

	"github.com/google/uuid"
)

// CaseType represents the kind of suspected fraud under investigation
type CaseType string

const (
	CaseTypeKYCFraud        CaseType = "kyc_fraud"
	CaseTypeAMLViolation    CaseType = "aml_violation"
	CaseTypeDocumentForgery CaseType = "document_forgery"
	CaseTypeIdentityTheft   CaseType = "identity_theft"
)

// CasePriority represents the urgency of a case
type CasePriority string

const (
	CasePriorityLow      CasePriority = "low"
	CasePriorityMedium   CasePriority = "medium"
	CasePriorityHigh     CasePriority = "high"
	CasePriorityCritical CasePriority = "critical"
)

// CaseStatus represents the lifecycle state of a case
type CaseStatus string

const (
	CaseStatusOpen          CaseStatus = "open"
	CaseStatusInvestigating CaseStatus = "investigating"
	CaseStatusResolved      CaseStatus = "resolved"
	CaseStatusClosed        CaseStatus = "closed"
)

// StatusBucket partitions case statuses into the two groups used by
// aggregation, filtering and presentation tinting
type StatusBucket string

const (
	BucketActive  StatusBucket = "active"  // open, investigating
	BucketSettled StatusBucket = "settled" // resolved, closed
)

// CaseStatusBucket is the single source for status bucketing. Aggregation
// and any coloring logic must go through it rather than re-deriving the split.
func CaseStatusBucket(s CaseStatus) StatusBucket {
	switch s {
	case CaseStatusResolved, CaseStatusClosed:
		return BucketSettled
	default:
		return BucketActive
	}
}

// IsActiveStatus reports whether a case is still being worked
func IsActiveStatus(s CaseStatus) bool {
	return CaseStatusBucket(s) == BucketActive
}

// ValidCaseStatus reports whether s is a known case status.
func ValidCaseStatus(s CaseStatus) bool {
	switch s {
	case CaseStatusOpen, CaseStatusInvestigating, CaseStatusResolved, CaseStatusClosed:
		return true
	}
	return false
}

// ValidCasePriority reports whether p is a known case priority.
func ValidCasePriority(p CasePriority) bool {
	switch p {
	case CasePriorityLow, CasePriorityMedium, CasePriorityHigh, CasePriorityCritical:
		return true
	}
	return false
}

// Case represents an investigation unit tracking a suspected fraud event
type Case struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CaseNumber string    `json:"case_number" db:"case_number"`

	// Subject
	CustomerName string `json:"customer_name" db:"customer_name"`
	CustomerID   string `json:"customer_id" db:"customer_id"`

	// Classification
	CaseType CaseType     `json:"case_type" db:"case_type"`
	Priority CasePriority `json:"priority" db:"priority"`
	Status   CaseStatus   `json:"status" db:"status"`

	// Assignment and resolution
	AssignedTo      *string `json:"assigned_to,omitempty" db:"assigned_to"`
	ResolutionNotes *string `json:"resolution_notes,omitempty" db:"resolution_notes"`

	// Timestamps
	CreatedDate time.Time `json:"created_date" db:"created_date"`
	UpdatedDate time.Time `json:"updated_date" db:"updated_date"`
}

// IsActive returns true while the case is open or investigating
func (c *Case) IsActive() bool {
	return IsActiveStatus(c.Status)
}

// CreateCaseRequest represents a request to open a case
type CreateCaseRequest struct {
	CustomerName string       `json:"customer_name" validate:"required"`
	CustomerID   string       `json:"customer_id" validate:"required"`
	CaseType     CaseType     `json:"case_type" validate:"required"`
	Priority     CasePriority `json:"priority" validate:"required,oneof=low medium high critical"`
}

// UpdateCaseRequest represents a partial case update. Nil fields are left
// untouched; any accepted update advances the case's UpdatedDate.
type UpdateCaseRequest struct {
	Status          *CaseStatus   `json:"status,omitempty"`
	Priority        *CasePriority `json:"priority,omitempty"`
	AssignedTo      *string       `json:"assigned_to,omitempty"`
	ResolutionNotes *string       `json:"resolution_notes,omitempty"`
}

// Empty reports whether the update carries no changes.
func (r *UpdateCaseRequest) Empty() bool {
	return r.Status == nil && r.Priority == nil && r.AssignedTo == nil && r.ResolutionNotes == nil
}
