package postgres

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
)

// AuditRepo implements store.AuditStore using PostgreSQL. It offers only
// Insert and List; no update or delete statement exists in this package for
// the audit_trail table.
type AuditRepo struct{ db *DB }

// NewAuditRepo constructs an audit trail repository.
func NewAuditRepo(db *DB) *AuditRepo { return &AuditRepo{db: db} }

// Insert appends an entry and generates its provenance stamp.
func (r *AuditRepo) Insert(ctx context.Context, actionType, entityType string, entityID *uuid.UUID, actorID uuid.UUID, details map[string]any) (*domain.AuditEntry, error) {
	if details == nil {
		details = map[string]any{}
	}
	entry := &domain.AuditEntry{
		ID:            uuid.New(),
		ActionType:    actionType,
		EntityType:    entityType,
		EntityID:      entityID,
		ActorID:       actorID,
		ActionDetails: details,
		Timestamp:     time.Now().UTC(),
	}
	entry.BlockchainHash = provenanceStamp(entry)

	detailsJSON, err := json.Marshal(entry.ActionDetails)
	if err != nil {
		return nil, errs.Store("encode action details", err)
	}

	const q = `INSERT INTO audit_trail (id, action_type, entity_type, entity_id, actor_id, action_details, blockchain_hash, timestamp)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := r.db.Pool.Exec(ctx, q,
		entry.ID, entry.ActionType, entry.EntityType, entry.EntityID,
		entry.ActorID, detailsJSON, entry.BlockchainHash, entry.Timestamp,
	); err != nil {
		return nil, errs.Store("insert audit entry", err)
	}
	return entry, nil
}

// List returns up to limit entries, newest first.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	const q = `SELECT id, action_type, entity_type, entity_id, actor_id, action_details, blockchain_hash, timestamp
FROM audit_trail ORDER BY timestamp DESC LIMIT $1`
	rows, err := r.db.Pool.Query(ctx, q, limit)
	if err != nil {
		return nil, errs.Store("list audit entries", err)
	}
	defer rows.Close()

	var out []domain.AuditEntry
	for rows.Next() {
		var (
			entry   domain.AuditEntry
			details []byte
		)
		if err := rows.Scan(&entry.ID, &entry.ActionType, &entry.EntityType,
			&entry.EntityID, &entry.ActorID, &details, &entry.BlockchainHash,
			&entry.Timestamp); err != nil {
			return nil, errs.Store("scan audit entry", err)
		}
		if err := json.Unmarshal(details, &entry.ActionDetails); err != nil {
			return nil, errs.Store("decode action details", err)
		}
		out = append(out, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("list audit entries", err)
	}
	return out, nil
}

// provenanceStamp derives the fixed-format opaque stamp stored with each
// entry: 0x + 64 hex chars over the entry's identity and action.
func provenanceStamp(entry *domain.AuditEntry) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%s|%d",
		entry.ID, entry.ActionType, entry.EntityType, entry.ActorID,
		entry.Timestamp.UnixNano())))
	return "0x" + hex.EncodeToString(sum[:])
}
