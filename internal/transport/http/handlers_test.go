package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Nishasathish105/ai-compliance-platform/internal/alerts"
	"github.com/Nishasathish105/ai-compliance-platform/internal/analytics"
	"github.com/Nishasathish105/ai-compliance-platform/internal/blob"
	"github.com/Nishasathish105/ai-compliance-platform/internal/cases"
	"github.com/Nishasathish105/ai-compliance-platform/internal/config"
	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/events"
	"github.com/Nishasathish105/ai-compliance-platform/internal/pkg/logger"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store/storetest"
	"github.com/Nishasathish105/ai-compliance-platform/internal/verification"
)

type testAPI struct {
	echo       *echo.Echo
	mem        *storetest.MemStore
	operatorID uuid.UUID
}

func newTestAPI(t *testing.T, assessor verification.RiskAssessor) *testAPI {
	t.Helper()

	mem := storetest.New()
	log, err := logger.New("test", "development", false)
	require.NoError(t, err)

	blobs, err := blob.NewFilesystemStore(t.TempDir(), "http://localhost:8086/files")
	require.NoError(t, err)

	storageCfg := &config.StorageConfig{MaxFileSize: 5 * 1024 * 1024}
	verifySvc := verification.NewService(mem.Records(), blobs, assessor,
		events.NopPublisher{}, nil, &config.VerificationConfig{AssessTimeout: time.Second}, log)

	h := NewHandler(
		mem.Records(),
		verifySvc,
		cases.NewService(mem.Records(), log),
		alerts.NewService(mem.Records(), nil, log),
		analytics.NewService(mem.Records(), log),
		storageCfg,
		50,
	)

	e := echo.New()
	h.Register(e, "")

	return &testAPI{echo: e, mem: mem, operatorID: uuid.New()}
}

func (a *testAPI) do(t *testing.T, method, path string, body []byte, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	req.Header.Set("X-Operator-ID", a.operatorID.String())
	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) doJSON(t *testing.T, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return a.do(t, method, path, body, echo.MIMEApplicationJSON)
}

func multipartUpload(t *testing.T, fileName, contentType string, data []byte, docType string) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, fileName))
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)

	require.NoError(t, w.WriteField("document_type", docType))
	require.NoError(t, w.Close())
	return buf.Bytes(), w.FormDataContentType()
}

func TestUploadDocument_FraudulentFlow(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 92})

	body, contentType := multipartUpload(t, "passport.jpg", "image/jpeg", []byte("img"), "id")
	rec := api.do(t, http.MethodPost, "/api/v1/documents", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)

	var out verification.UploadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, domain.DocumentStatusFlagged, out.Document.Status)
	require.NotNil(t, out.Alert)
	require.Equal(t, domain.AlertSeverityCritical, out.Alert.Severity)
	require.Len(t, api.mem.Alerts, 1)
}

func TestUploadDocument_RejectsUnsupportedType(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 10})

	body, contentType := multipartUpload(t, "malware.exe", "application/octet-stream", []byte("x"), "id")
	rec := api.do(t, http.MethodPost, "/api/v1/documents", body, contentType)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, api.mem.Documents)
}

func TestUploadDocument_RejectsOversizedFile(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 10})

	body, contentType := multipartUpload(t, "huge.pdf", "application/pdf",
		make([]byte, 5*1024*1024+1), "financial")
	rec := api.do(t, http.MethodPost, "/api/v1/documents", body, contentType)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadDocument_RejectsUnknownDocumentType(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 10})

	body, contentType := multipartUpload(t, "passport.jpg", "image/jpeg", []byte("img"), "passport")
	rec := api.do(t, http.MethodPost, "/api/v1/documents", body, contentType)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetDocument_NotFound(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 10})

	rec := api.do(t, http.MethodGet, "/api/v1/documents/"+uuid.NewString(), nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/documents/not-a-uuid", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCaseLifecycleOverHTTP(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 10})

	rec := api.doJSON(t, http.MethodPost, "/api/v1/cases", domain.CreateCaseRequest{
		CustomerName: "John Smith",
		CustomerID:   "CUST-001",
		CaseType:     domain.CaseTypeDocumentForgery,
		Priority:     domain.CasePriorityHigh,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Case
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, domain.CaseStatusOpen, created.Status)

	rec = api.doJSON(t, http.MethodPatch, "/api/v1/cases/"+created.ID.String(), map[string]string{
		"status": "investigating",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Case
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.Equal(t, domain.CaseStatusInvestigating, updated.Status)

	rec = api.do(t, http.MethodGet, "/api/v1/cases?q=smith&status=investigating", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var found []domain.Case
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Len(t, found, 1)

	// Contradicting status filter excludes the text match.
	rec = api.do(t, http.MethodGet, "/api/v1/cases?q=smith&status=resolved", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	found = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	require.Empty(t, found)

	rec = api.do(t, http.MethodGet, "/api/v1/cases?status=archived", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCase_EmptyBodyRejected(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 10})

	rec := api.doJSON(t, http.MethodPatch, "/api/v1/cases/"+uuid.NewString(), map[string]string{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAlertsOverHTTP(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 92})

	body, contentType := multipartUpload(t, "deed.pdf", "application/pdf", []byte("pdf"), "business")
	rec := api.do(t, http.MethodPost, "/api/v1/documents", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/alerts/unread", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var unread []domain.Alert
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unread))
	require.Len(t, unread, 1)

	rec = api.do(t, http.MethodPost, "/api/v1/alerts/"+unread[0].ID.String()+"/read", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/alerts/unread", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	unread = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unread))
	require.Empty(t, unread)

	rec = api.do(t, http.MethodPost, "/api/v1/alerts/"+uuid.NewString()+"/read", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuditOverHTTP(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 40})

	body, contentType := multipartUpload(t, "bank.pdf", "application/pdf", []byte("pdf"), "financial")
	rec := api.do(t, http.MethodPost, "/api/v1/documents", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/audit?limit=10", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var entries []domain.AuditEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	// Newest first.
	require.Equal(t, domain.ActionDocumentVerified, entries[0].ActionType)
	require.Equal(t, domain.ActionDocumentUploaded, entries[1].ActionType)

	rec = api.do(t, http.MethodGet, "/api/v1/audit?limit=bogus", nil, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatsOverHTTP(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 40})

	body, contentType := multipartUpload(t, "bank.pdf", "application/pdf", []byte("pdf"), "financial")
	rec := api.do(t, http.MethodPost, "/api/v1/documents", body, contentType)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, http.MethodGet, "/api/v1/stats/dashboard", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dash analytics.DashboardStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	require.Equal(t, 1, dash.TotalDocuments)
	require.Equal(t, 40, dash.RiskScore)

	rec = api.do(t, http.MethodGet, "/api/v1/stats/analytics", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var report analytics.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, 1, report.Documents.Total)
	require.Equal(t, 100, report.Documents.VerificationRate)
}

func TestUnauthenticatedRequestRejected(t *testing.T) {
	api := newTestAPI(t, verification.FixedAssessor{RiskScore: 10})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alerts", nil)
	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
