package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
)

// AlertRepo implements store.AlertStore using PostgreSQL.
type AlertRepo struct{ db *DB }

// NewAlertRepo constructs an alert repository.
func NewAlertRepo(db *DB) *AlertRepo { return &AlertRepo{db: db} }

const alertColumns = `id, alert_type, severity, entity_id, message, is_read, created_date`

// List returns all alerts, newest first.
func (r *AlertRepo) List(ctx context.Context) ([]domain.Alert, error) {
	const q = `SELECT ` + alertColumns + ` FROM alerts ORDER BY created_date DESC`
	return r.queryAlerts(ctx, q)
}

// ListUnread returns unread alerts, newest first.
func (r *AlertRepo) ListUnread(ctx context.Context) ([]domain.Alert, error) {
	const q = `SELECT ` + alertColumns + ` FROM alerts WHERE is_read=false ORDER BY created_date DESC`
	return r.queryAlerts(ctx, q)
}

func (r *AlertRepo) queryAlerts(ctx context.Context, q string, args ...any) ([]domain.Alert, error) {
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, errs.Store("list alerts", err)
	}
	defer rows.Close()

	var out []domain.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, errs.Store("scan alert", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("list alerts", err)
	}
	return out, nil
}

// Insert raises an alert. New alerts start unread.
func (r *AlertRepo) Insert(ctx context.Context, req domain.CreateAlertRequest) (*domain.Alert, error) {
	a := &domain.Alert{
		ID:          uuid.New(),
		AlertType:   req.AlertType,
		Severity:    req.Severity,
		EntityID:    req.EntityID,
		Message:     req.Message,
		IsRead:      false,
		CreatedDate: time.Now().UTC(),
	}

	const q = `INSERT INTO alerts (id, alert_type, severity, entity_id, message, is_read, created_date)
VALUES ($1,$2,$3,$4,$5,$6,$7)`
	if _, err := r.db.Pool.Exec(ctx, q,
		a.ID, string(a.AlertType), string(a.Severity), a.EntityID, a.Message, a.IsRead, a.CreatedDate,
	); err != nil {
		return nil, errs.Store("insert alert", err)
	}
	return a, nil
}

// MarkRead flips the read flag and returns the updated alert.
func (r *AlertRepo) MarkRead(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const q = `UPDATE alerts SET is_read=true WHERE id=$1 RETURNING ` + alertColumns
	a, err := scanAlert(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store("mark alert read", err)
	}
	return a, nil
}

func scanAlert(row pgx.Row) (*domain.Alert, error) {
	var (
		a         domain.Alert
		alertType string
		severity  string
	)
	if err := row.Scan(&a.ID, &alertType, &severity, &a.EntityID, &a.Message,
		&a.IsRead, &a.CreatedDate); err != nil {
		return nil, err
	}
	a.AlertType = domain.AlertType(alertType)
	a.Severity = domain.AlertSeverity(severity)
	return &a, nil
}
