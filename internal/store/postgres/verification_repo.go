package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
)

// VerificationRepo implements store.VerificationStore using PostgreSQL.
// Results are insert-only; the one-row-per-document invariant is enforced by
// a unique constraint on document_id.
type VerificationRepo struct{ db *DB }

// NewVerificationRepo constructs a verification result repository.
func NewVerificationRepo(db *DB) *VerificationRepo { return &VerificationRepo{db: db} }

// Insert stores a result for a document.
func (r *VerificationRepo) Insert(ctx context.Context, result *domain.VerificationResult) (*domain.VerificationResult, error) {
	stored := *result
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.VerificationDate.IsZero() {
		stored.VerificationDate = time.Now().UTC()
	}

	indicators, err := json.Marshal(stored.FraudIndicators)
	if err != nil {
		return nil, errs.Store("encode fraud indicators", err)
	}
	heatmap, err := json.Marshal(stored.HeatmapData)
	if err != nil {
		return nil, errs.Store("encode heatmap", err)
	}

	const q = `INSERT INTO verification_results
(id, document_id, risk_score, is_fraudulent, confidence_level, fraud_indicators, heatmap_data, verification_date)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := r.db.Pool.Exec(ctx, q,
		stored.ID, stored.DocumentID, stored.RiskScore, stored.IsFraudulent,
		stored.ConfidenceLevel, indicators, heatmap, stored.VerificationDate,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, errs.Store("insert verification result", err)
	}
	return &stored, nil
}

// GetByDocument returns the result owned by a document.
func (r *VerificationRepo) GetByDocument(ctx context.Context, documentID uuid.UUID) (*domain.VerificationResult, error) {
	const q = `SELECT id, document_id, risk_score, is_fraudulent, confidence_level, fraud_indicators, heatmap_data, verification_date
FROM verification_results WHERE document_id=$1`
	result, err := scanVerification(r.db.Pool.QueryRow(ctx, q, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store("get verification result", err)
	}
	return result, nil
}

// List returns all results, used by dashboard aggregation.
func (r *VerificationRepo) List(ctx context.Context) ([]domain.VerificationResult, error) {
	const q = `SELECT id, document_id, risk_score, is_fraudulent, confidence_level, fraud_indicators, heatmap_data, verification_date
FROM verification_results ORDER BY verification_date DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, errs.Store("list verification results", err)
	}
	defer rows.Close()

	var out []domain.VerificationResult
	for rows.Next() {
		result, err := scanVerification(rows)
		if err != nil {
			return nil, errs.Store("scan verification result", err)
		}
		out = append(out, *result)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("list verification results", err)
	}
	return out, nil
}

func scanVerification(row pgx.Row) (*domain.VerificationResult, error) {
	var (
		result     domain.VerificationResult
		indicators []byte
		heatmap    []byte
	)
	if err := row.Scan(&result.ID, &result.DocumentID, &result.RiskScore,
		&result.IsFraudulent, &result.ConfidenceLevel, &indicators, &heatmap,
		&result.VerificationDate); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(indicators, &result.FraudIndicators); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(heatmap, &result.HeatmapData); err != nil {
		return nil, err
	}
	return &result, nil
}
