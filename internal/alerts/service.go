// Package alerts fronts the alert store with a short-TTL cache for the
// unread list, which the dashboard polls on a fixed interval.
package alerts

import (
	"context"

	"github.com/google/uuid"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/pkg/logger"
	"github.com/Nishasathish105/ai-compliance-platform/internal/store"
)

// UnreadCache is the subset of the redis cache the service needs.
type UnreadCache interface {
	GetUnread(ctx context.Context) ([]domain.Alert, error)
	SetUnread(ctx context.Context, alerts []domain.Alert) error
	Invalidate(ctx context.Context) error
}

// Service reads and acknowledges alerts.
type Service struct {
	records *store.RecordStore
	cache   UnreadCache
	log     *logger.Logger
}

// NewService wires the alert service. Cache may be nil when Redis is not
// configured; reads then always hit the store.
func NewService(records *store.RecordStore, cache UnreadCache, log *logger.Logger) *Service {
	return &Service{records: records, cache: cache, log: log.Named("alerts")}
}

// List returns all alerts, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Alert, error) {
	return s.records.Alerts.List(ctx)
}

// ListUnread returns unread alerts through the cache. Cache failures fall
// back to the store; the payload is small and bounded.
func (s *Service) ListUnread(ctx context.Context) ([]domain.Alert, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetUnread(ctx); err == nil {
			return cached, nil
		}
	}

	alerts, err := s.records.Alerts.ListUnread(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetUnread(ctx, alerts); err != nil {
			s.log.Warn("unread cache refresh failed", logger.ErrorField(err))
		}
	}
	return alerts, nil
}

// MarkRead acknowledges an alert, invalidates the unread cache and records
// the acknowledgment in the audit trail.
func (s *Service) MarkRead(ctx context.Context, actorID, id uuid.UUID) (*domain.Alert, error) {
	alert, err := s.records.Alerts.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("unread cache invalidate failed", logger.ErrorField(err))
		}
	}

	if _, err := s.records.Audit.Insert(ctx, domain.ActionAlertRead,
		domain.EntityTypeAlert, &alert.ID, actorID, map[string]any{
			"alert_type": string(alert.AlertType),
			"severity":   string(alert.Severity),
		}); err != nil {
		return nil, err
	}
	return alert, nil
}
