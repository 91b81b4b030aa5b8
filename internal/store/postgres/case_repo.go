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

// CaseRepo implements store.CaseStore using PostgreSQL.
type CaseRepo struct{ db *DB }

// NewCaseRepo constructs a case repository.
func NewCaseRepo(db *DB) *CaseRepo { return &CaseRepo{db: db} }

const caseColumns = `id, case_number, customer_name, customer_id, case_type, priority, status, assigned_to, resolution_notes, created_date, updated_date`

// List returns all cases, newest first.
func (r *CaseRepo) List(ctx context.Context) ([]domain.Case, error) {
	const q = `SELECT ` + caseColumns + ` FROM cases ORDER BY created_date DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, errs.Store("list cases", err)
	}
	defer rows.Close()

	var out []domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, errs.Store("scan case", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("list cases", err)
	}
	return out, nil
}

// Get returns a case by id.
func (r *CaseRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	const q = `SELECT ` + caseColumns + ` FROM cases WHERE id=$1`
	c, err := scanCase(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store("get case", err)
	}
	return c, nil
}

// Insert creates a case.
func (r *CaseRepo) Insert(ctx context.Context, c *domain.Case) (*domain.Case, error) {
	stored := *c
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	now := time.Now().UTC()
	if stored.CreatedDate.IsZero() {
		stored.CreatedDate = now
	}
	stored.UpdatedDate = stored.CreatedDate

	const q = `INSERT INTO cases (id, case_number, customer_name, customer_id, case_type, priority, status, assigned_to, resolution_notes, created_date, updated_date)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`
	if _, err := r.db.Pool.Exec(ctx, q,
		stored.ID, stored.CaseNumber, stored.CustomerName, stored.CustomerID,
		string(stored.CaseType), string(stored.Priority), string(stored.Status),
		stored.AssignedTo, stored.ResolutionNotes, stored.CreatedDate, stored.UpdatedDate,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, errs.Store("insert case", err)
	}
	return &stored, nil
}

// Update applies a partial update inside a transaction and advances
// UpdatedDate. Concurrent updates are last-writer-wins.
func (r *CaseRepo) Update(ctx context.Context, id uuid.UUID, req domain.UpdateCaseRequest) (c *domain.Case, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, errs.Store("begin case update", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = errs.Store("commit case update", e)
			c = nil
		}
	}()

	const sel = `SELECT ` + caseColumns + ` FROM cases WHERE id=$1 FOR UPDATE`
	c, scanErr := scanCase(tx.QueryRow(ctx, sel, id))
	if scanErr != nil {
		if errors.Is(scanErr, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store("select case", scanErr)
	}

	if req.Status != nil {
		c.Status = *req.Status
	}
	if req.Priority != nil {
		c.Priority = *req.Priority
	}
	if req.AssignedTo != nil {
		c.AssignedTo = req.AssignedTo
	}
	if req.ResolutionNotes != nil {
		c.ResolutionNotes = req.ResolutionNotes
	}
	c.UpdatedDate = time.Now().UTC()

	const upd = `UPDATE cases SET priority=$2, status=$3, assigned_to=$4, resolution_notes=$5, updated_date=$6 WHERE id=$1`
	if _, err = tx.Exec(ctx, upd,
		c.ID, string(c.Priority), string(c.Status), c.AssignedTo, c.ResolutionNotes, c.UpdatedDate,
	); err != nil {
		return nil, errs.Store("update case", err)
	}
	return c, nil
}

func scanCase(row pgx.Row) (*domain.Case, error) {
	var (
		c        domain.Case
		caseType string
		priority string
		status   string
	)
	if err := row.Scan(&c.ID, &c.CaseNumber, &c.CustomerName, &c.CustomerID,
		&caseType, &priority, &status, &c.AssignedTo, &c.ResolutionNotes,
		&c.CreatedDate, &c.UpdatedDate); err != nil {
		return nil, err
	}
	c.CaseType = domain.CaseType(caseType)
	c.Priority = domain.CasePriority(priority)
	c.Status = domain.CaseStatus(status)
	return &c, nil
}
