package postgres

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
)

func TestAuditRepo_Insert_GeneratesProvenanceStamp(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAuditRepo(db)

	entityID := uuid.New()
	actorID := uuid.New()
	mock.ExpectExec(`INSERT INTO audit_trail`).
		WithArgs(pgxmock.AnyArg(), domain.ActionDocumentVerified, domain.EntityTypeDocument,
			&entityID, actorID, pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	entry, err := r.Insert(context.Background(), domain.ActionDocumentVerified,
		domain.EntityTypeDocument, &entityID, actorID, map[string]any{
			"file_name":     "passport.jpg",
			"risk_score":    92,
			"is_fraudulent": true,
		})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(entry.BlockchainHash, "0x"))
	require.Len(t, entry.BlockchainHash, 2+64)
	require.Equal(t, 92, entry.ActionDetails["risk_score"])
}

func TestAuditRepo_Insert_NilDetails(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAuditRepo(db)

	actorID := uuid.New()
	mock.ExpectExec(`INSERT INTO audit_trail`).
		WithArgs(pgxmock.AnyArg(), domain.ActionAlertRead, domain.EntityTypeAlert,
			(*uuid.UUID)(nil), actorID, []byte(`{}`), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	entry, err := r.Insert(context.Background(), domain.ActionAlertRead,
		domain.EntityTypeAlert, nil, actorID, nil)
	require.NoError(t, err)
	require.NotNil(t, entry.ActionDetails)
}

func TestAuditRepo_List(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAuditRepo(db)

	ts := time.Now().UTC()
	entityID := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "action_type", "entity_type", "entity_id",
		"actor_id", "action_details", "blockchain_hash", "timestamp"}).
		AddRow(uuid.New(), domain.ActionCaseCreated, domain.EntityTypeCase, &entityID,
			uuid.New(), []byte(`{"case_number":"CASE-1756700000000"}`),
			"0xabc", ts)

	mock.ExpectQuery(`SELECT .+ FROM audit_trail ORDER BY timestamp DESC LIMIT \$1`).
		WithArgs(25).
		WillReturnRows(rows)

	out, err := r.List(context.Background(), 25)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "CASE-1756700000000", out[0].ActionDetails["case_number"])
}

func TestAuditRepo_List_DefaultLimit(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewAuditRepo(db)

	mock.ExpectQuery(`SELECT .+ FROM audit_trail ORDER BY timestamp DESC LIMIT \$1`).
		WithArgs(50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "action_type", "entity_type", "entity_id",
			"actor_id", "action_details", "blockchain_hash", "timestamp"}))

	out, err := r.List(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, out)
}
