// Package cases holds the investigation case rules: search filtering, case
// number generation and the update path.
package cases

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
	"github.com/Nishasathish105/ai-compliance-platform/internal/pkg/logger"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store"
)

// Service manages investigation cases.
type Service struct {
	records *store.RecordStore
	numbers *NumberGenerator
	log     *logger.Logger
}

// NewService wires the case service.
func NewService(records *store.RecordStore, log *logger.Logger) *Service {
	return &Service{
		records: records,
		numbers: NewNumberGenerator(),
		log:     log.Named("cases"),
	}
}

// Search lists cases and applies the filter in memory. The collections
// involved are small operator worklists.
func (s *Service) Search(ctx context.Context, f Filter) ([]domain.Case, error) {
	if f.Status != "" && !domain.ValidCaseStatus(f.Status) {
		return nil, errs.Validation("unknown status %q", f.Status)
	}
	if f.Priority != "" && !domain.ValidCasePriority(f.Priority) {
		return nil, errs.Validation("unknown priority %q", f.Priority)
	}

	all, err := s.records.Cases.List(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

// Get returns a case by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Case, error) {
	return s.records.Cases.Get(ctx, id)
}

// Create opens a case with a generated case number and an audit entry.
func (s *Service) Create(ctx context.Context, actorID uuid.UUID, req domain.CreateCaseRequest) (*domain.Case, error) {
	if req.CustomerName == "" || req.CustomerID == "" {
		return nil, errs.Validation("missing customer details")
	}
	if !domain.ValidCasePriority(req.Priority) {
		return nil, errs.Validation("unknown priority %q", req.Priority)
	}

	c := &domain.Case{
		CaseNumber:   s.numbers.Next(),
		CustomerName: req.CustomerName,
		CustomerID:   req.CustomerID,
		CaseType:     req.CaseType,
		Priority:     req.Priority,
		Status:       domain.CaseStatusOpen,
	}

	created, err := s.records.Cases.Insert(ctx, c)
	if err != nil {
		return nil, err
	}
	s.log.CaseCreated(created.ID.String(), created.CaseNumber, created.CustomerID)

	if _, err := s.records.Audit.Insert(ctx, domain.ActionCaseCreated,
		domain.EntityTypeCase, &created.ID, actorID, map[string]any{
			"case_number": created.CaseNumber,
			"customer_id": created.CustomerID,
		}); err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies a partial update. UpdatedDate advances on every accepted
// mutation; concurrent edits are last-writer-wins with no conflict check.
func (s *Service) Update(ctx context.Context, actorID, id uuid.UUID, req domain.UpdateCaseRequest) (*domain.Case, error) {
	if req.Empty() {
		return nil, errs.Validation("empty update")
	}
	if req.Status != nil && !domain.ValidCaseStatus(*req.Status) {
		return nil, errs.Validation("unknown status %q", *req.Status)
	}
	if req.Priority != nil && !domain.ValidCasePriority(*req.Priority) {
		return nil, errs.Validation("unknown priority %q", *req.Priority)
	}

	updated, err := s.records.Cases.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.log.CaseUpdated(updated.ID.String(), updated.CaseNumber, string(updated.Status))

	details := map[string]any{"case_number": updated.CaseNumber}
	if req.Status != nil {
		details["status"] = string(*req.Status)
	}
	if req.Priority != nil {
		details["priority"] = string(*req.Priority)
	}
	if _, err := s.records.Audit.Insert(ctx, domain.ActionCaseUpdated,
		domain.EntityTypeCase, &updated.ID, actorID, details); err != nil {
		return nil, err
	}
	return updated, nil
}
