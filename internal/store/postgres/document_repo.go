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

// DocumentRepo implements store.DocumentStore using PostgreSQL.
type DocumentRepo struct{ db *DB }

// NewDocumentRepo constructs a document repository.
func NewDocumentRepo(db *DB) *DocumentRepo { return &DocumentRepo{db: db} }

const documentColumns = `id, owner_id, file_name, file_type, file_url, document_type, status, upload_date`

// Insert creates a document record in pending status.
func (r *DocumentRepo) Insert(ctx context.Context, req domain.CreateDocumentRequest) (*domain.Document, error) {
	doc := &domain.Document{
		ID:           uuid.New(),
		OwnerID:      req.OwnerID,
		FileName:     req.FileName,
		FileType:     req.FileType,
		FileURL:      req.FileURL,
		DocumentType: req.DocumentType,
		Status:       domain.DocumentStatusPending,
		UploadDate:   time.Now().UTC(),
	}

	const q = `INSERT INTO documents (id, owner_id, file_name, file_type, file_url, document_type, status, upload_date)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	if _, err := r.db.Pool.Exec(ctx, q,
		doc.ID, doc.OwnerID, doc.FileName, doc.FileType, doc.FileURL,
		string(doc.DocumentType), string(doc.Status), doc.UploadDate,
	); err != nil {
		return nil, errs.Store("insert document", err)
	}
	return doc, nil
}

// Get returns a document by id.
func (r *DocumentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id=$1`
	doc, err := scanDocument(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store("get document", err)
	}
	return doc, nil
}

// ListByOwner returns the owner's documents, newest first.
func (r *DocumentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE owner_id=$1 ORDER BY upload_date DESC`
	rows, err := r.db.Pool.Query(ctx, q, ownerID)
	if err != nil {
		return nil, errs.Store("list documents", err)
	}
	defer rows.Close()

	var out []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, errs.Store("scan document", err)
		}
		out = append(out, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Store("list documents", err)
	}
	return out, nil
}

// UpdateStatus moves a document through its verification lifecycle.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.DocumentStatus) error {
	const q = `UPDATE documents SET status=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, string(status))
	if err != nil {
		return errs.Store("update document status", err)
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanDocument(row pgx.Row) (*domain.Document, error) {
	var (
		doc     domain.Document
		docType string
		status  string
	)
	if err := row.Scan(&doc.ID, &doc.OwnerID, &doc.FileName, &doc.FileType,
		&doc.FileURL, &docType, &status, &doc.UploadDate); err != nil {
		return nil, err
	}
	doc.DocumentType = domain.DocumentType(docType)
	doc.Status = domain.DocumentStatus(status)
	return &doc, nil
}
