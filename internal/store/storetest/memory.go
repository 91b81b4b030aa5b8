// Package storetest provides an in-memory record store for service tests.
// Operations can be forced to fail by name to exercise error paths.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store"
)

// Operation names accepted by MemStore.FailWith.
const (
	OpDocumentInsert       = "documents.insert"
	OpDocumentGet          = "documents.get"
	OpDocumentList         = "documents.list"
	OpDocumentUpdateStatus = "documents.update_status"
	OpVerificationInsert   = "verifications.insert"
	OpVerificationGet      = "verifications.get"
	OpVerificationList     = "verifications.list"
	OpCaseList             = "cases.list"
	OpCaseGet              = "cases.get"
	OpCaseInsert           = "cases.insert"
	OpCaseUpdate           = "cases.update"
	OpAlertList            = "alerts.list"
	OpAlertListUnread      = "alerts.list_unread"
	OpAlertInsert          = "alerts.insert"
	OpAlertMarkRead        = "alerts.mark_read"
	OpAuditList            = "audit.list"
	OpAuditInsert          = "audit.insert"
)

// MemStore holds every collection in memory behind one mutex.
type MemStore struct {
	mu sync.Mutex

	Documents     []domain.Document
	Verifications []domain.VerificationResult
	Cases         []domain.Case
	Alerts        []domain.Alert
	AuditEntries  []domain.AuditEntry

	failures map[string]error
}

// New returns an empty in-memory store.
func New() *MemStore {
	return &MemStore{failures: map[string]error{}}
}

// Records exposes the store through the production interfaces.
func (m *MemStore) Records() *store.RecordStore {
	return &store.RecordStore{
		Documents:     memDocuments{m},
		Verifications: memVerifications{m},
		Cases:         memCases{m},
		Alerts:        memAlerts{m},
		Audit:         memAudit{m},
	}
}

// FailWith makes the named operation return err on every call.
func (m *MemStore) FailWith(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// AuditActions returns the action types recorded so far, in insert order.
func (m *MemStore) AuditActions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.AuditEntries))
	for i := range m.AuditEntries {
		out[i] = m.AuditEntries[i].ActionType
	}
	return out
}

func (m *MemStore) fail(op string) error {
	return m.failures[op]
}

type memDocuments struct{ m *MemStore }

func (s memDocuments) Insert(_ context.Context, req domain.CreateDocumentRequest) (*domain.Document, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpDocumentInsert); err != nil {
		return nil, err
	}
	doc := domain.Document{
		ID:           uuid.New(),
		OwnerID:      req.OwnerID,
		FileName:     req.FileName,
		FileType:     req.FileType,
		FileURL:      req.FileURL,
		DocumentType: req.DocumentType,
		Status:       domain.DocumentStatusPending,
		UploadDate:   time.Now().UTC(),
	}
	s.m.Documents = append(s.m.Documents, doc)
	return &doc, nil
}

func (s memDocuments) Get(_ context.Context, id uuid.UUID) (*domain.Document, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpDocumentGet); err != nil {
		return nil, err
	}
	for i := range s.m.Documents {
		if s.m.Documents[i].ID == id {
			doc := s.m.Documents[i]
			return &doc, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s memDocuments) ListByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Document, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpDocumentList); err != nil {
		return nil, err
	}
	var out []domain.Document
	for i := range s.m.Documents {
		if s.m.Documents[i].OwnerID == ownerID {
			out = append(out, s.m.Documents[i])
		}
	}
	return out, nil
}

func (s memDocuments) UpdateStatus(_ context.Context, id uuid.UUID, status domain.DocumentStatus) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpDocumentUpdateStatus); err != nil {
		return err
	}
	for i := range s.m.Documents {
		if s.m.Documents[i].ID == id {
			s.m.Documents[i].Status = status
			return nil
		}
	}
	return errs.ErrNotFound
}

type memVerifications struct{ m *MemStore }

func (s memVerifications) Insert(_ context.Context, result *domain.VerificationResult) (*domain.VerificationResult, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpVerificationInsert); err != nil {
		return nil, err
	}
	for i := range s.m.Verifications {
		if s.m.Verifications[i].DocumentID == result.DocumentID {
			return nil, errs.ErrAlreadyExists
		}
	}
	stored := *result
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.VerificationDate.IsZero() {
		stored.VerificationDate = time.Now().UTC()
	}
	s.m.Verifications = append(s.m.Verifications, stored)
	return &stored, nil
}

func (s memVerifications) GetByDocument(_ context.Context, documentID uuid.UUID) (*domain.VerificationResult, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpVerificationGet); err != nil {
		return nil, err
	}
	for i := range s.m.Verifications {
		if s.m.Verifications[i].DocumentID == documentID {
			result := s.m.Verifications[i]
			return &result, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s memVerifications) List(_ context.Context) ([]domain.VerificationResult, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpVerificationList); err != nil {
		return nil, err
	}
	return append([]domain.VerificationResult(nil), s.m.Verifications...), nil
}

type memCases struct{ m *MemStore }

func (s memCases) List(_ context.Context) ([]domain.Case, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpCaseList); err != nil {
		return nil, err
	}
	return append([]domain.Case(nil), s.m.Cases...), nil
}

func (s memCases) Get(_ context.Context, id uuid.UUID) (*domain.Case, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpCaseGet); err != nil {
		return nil, err
	}
	for i := range s.m.Cases {
		if s.m.Cases[i].ID == id {
			c := s.m.Cases[i]
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s memCases) Insert(_ context.Context, c *domain.Case) (*domain.Case, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpCaseInsert); err != nil {
		return nil, err
	}
	for i := range s.m.Cases {
		if s.m.Cases[i].CaseNumber == c.CaseNumber {
			return nil, errs.ErrAlreadyExists
		}
	}
	stored := *c
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedDate.IsZero() {
		stored.CreatedDate = time.Now().UTC()
	}
	stored.UpdatedDate = stored.CreatedDate
	s.m.Cases = append(s.m.Cases, stored)
	return &stored, nil
}

func (s memCases) Update(_ context.Context, id uuid.UUID, req domain.UpdateCaseRequest) (*domain.Case, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpCaseUpdate); err != nil {
		return nil, err
	}
	for i := range s.m.Cases {
		if s.m.Cases[i].ID != id {
			continue
		}
		c := &s.m.Cases[i]
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
		out := *c
		return &out, nil
	}
	return nil, errs.ErrNotFound
}

type memAlerts struct{ m *MemStore }

func (s memAlerts) List(_ context.Context) ([]domain.Alert, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpAlertList); err != nil {
		return nil, err
	}
	return append([]domain.Alert(nil), s.m.Alerts...), nil
}

func (s memAlerts) ListUnread(_ context.Context) ([]domain.Alert, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpAlertListUnread); err != nil {
		return nil, err
	}
	var out []domain.Alert
	for i := range s.m.Alerts {
		if !s.m.Alerts[i].IsRead {
			out = append(out, s.m.Alerts[i])
		}
	}
	return out, nil
}

func (s memAlerts) Insert(_ context.Context, req domain.CreateAlertRequest) (*domain.Alert, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpAlertInsert); err != nil {
		return nil, err
	}
	a := domain.Alert{
		ID:          uuid.New(),
		AlertType:   req.AlertType,
		Severity:    req.Severity,
		EntityID:    req.EntityID,
		Message:     req.Message,
		IsRead:      false,
		CreatedDate: time.Now().UTC(),
	}
	s.m.Alerts = append(s.m.Alerts, a)
	return &a, nil
}

func (s memAlerts) MarkRead(_ context.Context, id uuid.UUID) (*domain.Alert, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpAlertMarkRead); err != nil {
		return nil, err
	}
	for i := range s.m.Alerts {
		if s.m.Alerts[i].ID == id {
			s.m.Alerts[i].IsRead = true
			a := s.m.Alerts[i]
			return &a, nil
		}
	}
	return nil, errs.ErrNotFound
}

type memAudit struct{ m *MemStore }

func (s memAudit) List(_ context.Context, limit int) ([]domain.AuditEntry, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpAuditList); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > len(s.m.AuditEntries) {
		limit = len(s.m.AuditEntries)
	}
	out := make([]domain.AuditEntry, 0, limit)
	for i := len(s.m.AuditEntries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.m.AuditEntries[i])
	}
	return out, nil
}

func (s memAudit) Insert(_ context.Context, actionType, entityType string, entityID *uuid.UUID, actorID uuid.UUID, details map[string]any) (*domain.AuditEntry, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if err := s.m.fail(OpAuditInsert); err != nil {
		return nil, err
	}
	if details == nil {
		details = map[string]any{}
	}
	entry := domain.AuditEntry{
		ID:             uuid.New(),
		ActionType:     actionType,
		EntityType:     entityType,
		EntityID:       entityID,
		ActorID:        actorID,
		ActionDetails:  details,
		BlockchainHash: fmt.Sprintf("0x%064d", len(s.m.AuditEntries)),
		Timestamp:      time.Now().UTC(),
	}
	s.m.AuditEntries = append(s.m.AuditEntries, entry)
	return &entry, nil
}
