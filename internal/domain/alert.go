package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertType represents the trigger class of a compliance alert
type AlertType string

const (
	AlertTypeHighRiskDocument  AlertType = "high_risk_document"
	AlertTypeSuspiciousPattern AlertType = "suspicious_pattern"
	AlertTypeAMLFlag           AlertType = "aml_flag"
	AlertTypeDuplicateIdentity AlertType = "duplicate_identity"
)

// AlertSeverity represents how urgent an alert is
type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// SeverityForRiskScore is the single severity rule for fraud alerts:
// critical above CriticalRiskThreshold, high otherwise.
func SeverityForRiskScore(riskScore int) AlertSeverity {
	if riskScore > CriticalRiskThreshold {
		return AlertSeverityCritical
	}
	return AlertSeverityHigh
}

// Alert represents a system-generated compliance alert. EntityID is a weak
// reference to the triggering document; the alert does not own it.
type Alert struct {
	ID uuid.UUID `json:"id" db:"id"`

	AlertType AlertType     `json:"alert_type" db:"alert_type"`
	Severity  AlertSeverity `json:"severity" db:"severity"`
	EntityID  *uuid.UUID    `json:"entity_id,omitempty" db:"entity_id"`
	Message   string        `json:"message" db:"message"`
	IsRead    bool          `json:"is_read" db:"is_read"`

	CreatedDate time.Time `json:"created_date" db:"created_date"`
}

// CreateAlertRequest represents a request to raise an alert
type CreateAlertRequest struct {
	AlertType AlertType     `json:"alert_type" validate:"required"`
	Severity  AlertSeverity `json:"severity" validate:"required,oneof=low medium high critical"`
	EntityID  *uuid.UUID    `json:"entity_id,omitempty"`
	Message   string        `json:"message" validate:"required"`
}
