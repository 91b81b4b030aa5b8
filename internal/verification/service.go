package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Nishasathish105/ai-compliance-platform/internal/blob"
	"github.com/Nishasathish105/ai-compliance-platform/internal/config"
	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
	"github.com/Nishasathish105/ai-compliance-platform/internal/events"
	"github.com/Nishasathish105/ai-compliance-platform/internal/pkg/logger"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store"
)

// UploadRequest carries an uploaded file and its declared classification.
type UploadRequest struct {
	FileName     string
	ContentType  string
	DocumentType domain.DocumentType
	Data         []byte
}

// UploadResult is the outcome of the full upload-and-verify workflow.
type UploadResult struct {
	Document     *domain.Document           `json:"document"`
	Verification *domain.VerificationResult `json:"verification"`
	Alert        *domain.Alert              `json:"alert,omitempty"`
}

// AlertCache drops the cached unread-alert payload. The dashboard polls
// that list, so a freshly raised alert must not sit behind a stale entry
// until the TTL expires.
type AlertCache interface {
	Invalidate(ctx context.Context) error
}

// Service runs the document verification workflow: blob write, document
// record, assessment, result persistence, alerting and audit. The assessor
// is injected so the simulation can be replaced by a real pipeline.
type Service struct {
	records    *store.RecordStore
	blobs      blob.Store
	assessor   RiskAssessor
	events     events.Publisher
	alertCache AlertCache
	cfg        *config.VerificationConfig
	log        *logger.Logger
	tracer     trace.Tracer
}

// NewService wires the workflow dependencies. The alert cache may be nil
// when Redis is not configured.
func NewService(
	records *store.RecordStore,
	blobs blob.Store,
	assessor RiskAssessor,
	publisher events.Publisher,
	alertCache AlertCache,
	cfg *config.VerificationConfig,
	log *logger.Logger,
) *Service {
	return &Service{
		records:    records,
		blobs:      blobs,
		assessor:   assessor,
		events:     publisher,
		alertCache: alertCache,
		cfg:        cfg,
		log:        log.Named("verification"),
		tracer:     otel.Tracer("verification"),
	}
}

// UploadAndVerify executes the workflow for one document. Side effects run
// in a fixed order: blob write, document insert, upload audit entry,
// assessment, result insert, alert (fraudulent only), verification audit
// entry, final status. The first failing persistence step aborts the
// remainder and surfaces a single verification error; the store is not
// transactional across these calls, so earlier writes may survive a later
// failure. Event publishing is non-fatal.
func (s *Service) UploadAndVerify(ctx context.Context, ownerID uuid.UUID, req UploadRequest) (*UploadResult, error) {
	if ownerID == uuid.Nil {
		return nil, errs.Validation("missing owner id")
	}
	if req.FileName == "" || len(req.Data) == 0 {
		return nil, errs.Validation("empty upload")
	}
	if !domain.ValidDocumentType(req.DocumentType) {
		return nil, errs.Validation("unknown document type %q", req.DocumentType)
	}

	ctx, span := s.tracer.Start(ctx, "verification.upload_and_verify",
		trace.WithAttributes(attribute.String("owner_id", ownerID.String())))
	defer span.End()

	start := time.Now()

	key := fmt.Sprintf("%s/%d_%s", ownerID, start.UnixMilli(), req.FileName)
	fileURL, err := s.blobs.Put(ctx, key, req.Data, req.ContentType)
	if err != nil {
		return nil, fmt.Errorf("verification failed: store file: %w", err)
	}

	doc, err := s.records.Documents.Insert(ctx, domain.CreateDocumentRequest{
		OwnerID:      ownerID,
		FileName:     req.FileName,
		FileType:     req.ContentType,
		FileURL:      fileURL,
		DocumentType: req.DocumentType,
	})
	if err != nil {
		return nil, fmt.Errorf("verification failed: %w", err)
	}
	s.log.DocumentUploaded(doc.ID.String(), ownerID.String(), doc.FileName)

	if _, err := s.records.Audit.Insert(ctx, domain.ActionDocumentUploaded,
		domain.EntityTypeDocument, &doc.ID, ownerID, map[string]any{
			"file_name":     doc.FileName,
			"document_type": string(doc.DocumentType),
		}); err != nil {
		return nil, fmt.Errorf("verification failed: %w", err)
	}

	result, alert, err := s.verify(ctx, ownerID, doc)
	if err != nil {
		return nil, err
	}

	s.log.VerificationCompleted(doc.ID.String(), result.RiskScore,
		result.IsFraudulent, time.Since(start).Milliseconds())

	s.publishCompleted(ctx, ownerID, doc, result)

	doc.Status = domain.StatusForResult(result)
	return &UploadResult{Document: doc, Verification: result, Alert: alert}, nil
}

// verify runs assessment and the ordered persistence chain for a document
// already registered in the store.
func (s *Service) verify(ctx context.Context, ownerID uuid.UUID, doc *domain.Document) (*domain.VerificationResult, *domain.Alert, error) {
	s.log.VerificationStarted(doc.ID.String(), ownerID.String())

	if err := s.records.Documents.UpdateStatus(ctx, doc.ID, domain.DocumentStatusProcessing); err != nil {
		return nil, nil, fmt.Errorf("verification failed: %w", err)
	}

	assessCtx, cancel := context.WithTimeout(ctx, s.cfg.AssessTimeout)
	defer cancel()

	_, assessSpan := s.tracer.Start(assessCtx, "verification.assess")
	result, err := s.assessor.Assess(assessCtx, doc)
	assessSpan.End()
	if err != nil {
		return nil, nil, fmt.Errorf("verification failed: assess: %w", err)
	}

	result, err = s.records.Verifications.Insert(ctx, result)
	if err != nil {
		return nil, nil, fmt.Errorf("verification failed: %w", err)
	}

	var alert *domain.Alert
	if result.IsFraudulent {
		alert, err = s.records.Alerts.Insert(ctx, domain.CreateAlertRequest{
			AlertType: domain.AlertTypeHighRiskDocument,
			Severity:  domain.SeverityForRiskScore(result.RiskScore),
			EntityID:  &doc.ID,
			Message:   fmt.Sprintf("High-risk document detected: %s (Risk Score: %d%%)", doc.FileName, result.RiskScore),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("verification failed: %w", err)
		}
		s.log.AlertCreated(alert.ID.String(), string(alert.AlertType), string(alert.Severity), result.RiskScore)
		if s.alertCache != nil {
			if err := s.alertCache.Invalidate(ctx); err != nil {
				s.log.Warn("unread cache invalidate failed", logger.ErrorField(err))
			}
		}
		s.publishAlert(ctx, doc.ID, alert)
	}

	entry, err := s.records.Audit.Insert(ctx, domain.ActionDocumentVerified,
		domain.EntityTypeDocument, &doc.ID, ownerID, map[string]any{
			"file_name":     doc.FileName,
			"risk_score":    result.RiskScore,
			"is_fraudulent": result.IsFraudulent,
		})
	if err != nil {
		return nil, nil, fmt.Errorf("verification failed: %w", err)
	}
	s.log.AuditEntryAppended(entry.ID.String(), entry.ActionType, entry.EntityType)

	if err := s.records.Documents.UpdateStatus(ctx, doc.ID, domain.StatusForResult(result)); err != nil {
		return nil, nil, fmt.Errorf("verification failed: %w", err)
	}

	return result, alert, nil
}

func (s *Service) publishCompleted(ctx context.Context, ownerID uuid.UUID, doc *domain.Document, result *domain.VerificationResult) {
	ev := events.VerificationCompletedEvent{
		EventID:      uuid.New(),
		DocumentID:   doc.ID,
		OwnerID:      ownerID,
		RiskScore:    result.RiskScore,
		IsFraudulent: result.IsFraudulent,
		Timestamp:    time.Now().UTC(),
	}
	if err := s.events.PublishVerificationCompleted(ctx, ev); err != nil {
		s.log.EventPublishFailed("verifications", err)
	}
}

func (s *Service) publishAlert(ctx context.Context, documentID uuid.UUID, alert *domain.Alert) {
	ev := events.AlertRaisedEvent{
		EventID:    uuid.New(),
		AlertID:    alert.ID,
		AlertType:  string(alert.AlertType),
		Severity:   string(alert.Severity),
		DocumentID: documentID,
		Timestamp:  time.Now().UTC(),
	}
	if err := s.events.PublishAlertRaised(ctx, ev); err != nil {
		s.log.EventPublishFailed("alerts", err)
	}
}
