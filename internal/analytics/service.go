// Package analytics reduces record snapshots into the dashboard and
// analytics metrics. The computations are pure; the service only fetches
// snapshots and joins them.
package analytics

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/pkg/logger"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store"
)

// Report is the analytics-page payload: per-collection stats side by side.
type Report struct {
	Documents DocumentStats `json:"documents"`
	Cases     CaseStats     `json:"cases"`
}

// Service fetches record snapshots and aggregates them.
type Service struct {
	records *store.RecordStore
	log     *logger.Logger
}

// NewService wires the aggregation service.
func NewService(records *store.RecordStore, log *logger.Logger) *Service {
	return &Service{records: records, log: log.Named("analytics")}
}

// Dashboard fetches documents, cases and verifications concurrently, joins
// the snapshot and reduces it. Fetch ordering is irrelevant: the reduction
// is a pure function of the joined snapshot.
func (s *Service) Dashboard(ctx context.Context, ownerID uuid.UUID) (DashboardStats, error) {
	var (
		docs          []domain.Document
		cases         []domain.Case
		verifications []domain.VerificationResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		docs, err = s.records.Documents.ListByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		cases, err = s.records.Cases.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		verifications, err = s.records.Verifications.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, err
	}

	return ComputeDashboardStats(docs, cases, verifications)
}

// Analytics fetches documents and cases concurrently and reduces both.
func (s *Service) Analytics(ctx context.Context, ownerID uuid.UUID) (Report, error) {
	var (
		docs  []domain.Document
		cases []domain.Case
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		docs, err = s.records.Documents.ListByOwner(gctx, ownerID)
		return err
	})
	g.Go(func() (err error) {
		cases, err = s.records.Cases.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	docStats, err := ComputeDocumentStats(docs)
	if err != nil {
		return Report{}, err
	}
	caseStats, err := ComputeCaseStats(cases)
	if err != nil {
		return Report{}, err
	}
	return Report{Documents: docStats, Cases: caseStats}, nil
}
