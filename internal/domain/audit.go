package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit action types recorded by this service
const (
	ActionDocumentUploaded = "document_uploaded"
	ActionDocumentVerified = "document_verified"
	ActionCaseCreated      = "case_created"
	ActionCaseUpdated      = "case_updated"
	ActionAlertRead        = "alert_read"
)

// Audit entity types
const (
	EntityTypeDocument = "document"
	EntityTypeCase     = "case"
	EntityTypeAlert    = "alert"
)

// AuditEntry is the append-only record of a state-changing action.
// Entries carry an opaque provenance stamp generated by the store at insert
// time and are never mutated or deleted: no update or delete operation
// exists anywhere in the store contract.
type AuditEntry struct {
	ID uuid.UUID `json:"id" db:"id"`

	ActionType string     `json:"action_type" db:"action_type"`
	EntityType string     `json:"entity_type" db:"entity_type"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty" db:"entity_id"`
	ActorID    uuid.UUID  `json:"actor_id" db:"actor_id"`

	ActionDetails map[string]any `json:"action_details" db:"action_details"`

	// BlockchainHash is the provenance stamp. Opaque to this service.
	BlockchainHash string `json:"blockchain_hash" db:"blockchain_hash"`

	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
