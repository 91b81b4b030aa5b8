package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
)

func newDB(t *testing.T) (*DB, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return &DB{Pool: mock}, mock
}

func TestDocumentRepo_Insert_OK(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDocumentRepo(db)

	ownerID := uuid.New()
	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs(pgxmock.AnyArg(), ownerID, "passport.jpg", "image/jpeg",
			"http://localhost/files/passport.jpg", "id", "pending", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	doc, err := r.Insert(context.Background(), domain.CreateDocumentRequest{
		OwnerID:      ownerID,
		FileName:     "passport.jpg",
		FileType:     "image/jpeg",
		FileURL:      "http://localhost/files/passport.jpg",
		DocumentType: domain.DocumentTypeID,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, doc.ID)
	require.Equal(t, domain.DocumentStatusPending, doc.Status)
	require.False(t, doc.UploadDate.IsZero())
}

func TestDocumentRepo_Insert_ExecErr(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDocumentRepo(db)

	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(errors.New("boom"))

	_, err := r.Insert(context.Background(), domain.CreateDocumentRequest{OwnerID: uuid.New()})
	require.ErrorIs(t, err, errs.ErrStore)
}

func TestDocumentRepo_Get_OK_And_NotFound(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDocumentRepo(db)

	id := uuid.New()
	ownerID := uuid.New()
	ts := time.Now().UTC()

	mock.ExpectQuery(`SELECT id, owner_id, file_name, file_type, file_url, document_type, status, upload_date FROM documents WHERE id=\$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"id", "owner_id", "file_name", "file_type", "file_url", "document_type", "status", "upload_date"}).
			AddRow(id, ownerID, "bank.pdf", "application/pdf", "http://x/bank.pdf", "financial", "verified", ts))
	doc, err := r.Get(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, domain.DocumentTypeFinancial, doc.DocumentType)
	require.Equal(t, domain.DocumentStatusVerified, doc.Status)

	mock.ExpectQuery(`SELECT id, owner_id, file_name, file_type, file_url, document_type, status, upload_date FROM documents WHERE id=\$1`).
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
	_, err = r.Get(context.Background(), id)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDocumentRepo_ListByOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDocumentRepo(db)

	ownerID := uuid.New()
	ts := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "owner_id", "file_name", "file_type", "file_url", "document_type", "status", "upload_date"}).
		AddRow(uuid.New(), ownerID, "a.png", "image/png", "http://x/a.png", "kyc", "flagged", ts).
		AddRow(uuid.New(), ownerID, "b.pdf", "application/pdf", "http://x/b.pdf", "business", "pending", ts.Add(-time.Hour))

	mock.ExpectQuery(`SELECT .+ FROM documents WHERE owner_id=\$1 ORDER BY upload_date DESC`).
		WithArgs(ownerID).
		WillReturnRows(rows)

	out, err := r.ListByOwner(context.Background(), ownerID)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, domain.DocumentStatusFlagged, out[0].Status)
	require.Equal(t, "b.pdf", out[1].FileName)
}

func TestDocumentRepo_UpdateStatus(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewDocumentRepo(db)

	id := uuid.New()
	mock.ExpectExec(`UPDATE documents SET status=\$2 WHERE id=\$1`).
		WithArgs(id, "processing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.UpdateStatus(context.Background(), id, domain.DocumentStatusProcessing))

	mock.ExpectExec(`UPDATE documents SET status=\$2 WHERE id=\$1`).
		WithArgs(id, "verified").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	err := r.UpdateStatus(context.Background(), id, domain.DocumentStatusVerified)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
