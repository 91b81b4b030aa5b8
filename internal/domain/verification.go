package domain

import (
	"time"

	"github.com/google/uuid"
)

// FraudRiskThreshold is the risk score above which a document is fraudulent.
// Every verification result must satisfy IsFraudulent == (RiskScore > FraudRiskThreshold).
const FraudRiskThreshold = 70

// CriticalRiskThreshold is the risk score above which alerts become critical.
const CriticalRiskThreshold = 85

// VerificationResult represents the outcome of a document risk assessment.
// It is owned 1:1 by a document, created exactly once, and never mutated.
type VerificationResult struct {
	ID         uuid.UUID `json:"id" db:"id"`
	DocumentID uuid.UUID `json:"document_id" db:"document_id"`

	// Assessment
	RiskScore       int  `json:"risk_score" db:"risk_score"`             // 0-100
	IsFraudulent    bool `json:"is_fraudulent" db:"is_fraudulent"`       // RiskScore > FraudRiskThreshold
	ConfidenceLevel int  `json:"confidence_level" db:"confidence_level"` // 70-99 in the simulated model

	// Evidence (empty unless fraudulent)
	FraudIndicators []string       `json:"fraud_indicators" db:"fraud_indicators"`
	HeatmapData     []HeatmapPoint `json:"heatmap_data" db:"heatmap_data"`

	// Timestamps
	VerificationDate time.Time `json:"verification_date" db:"verification_date"`
}

// HeatmapPoint localizes suspected tampering on a document image
type HeatmapPoint struct {
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Intensity float64 `json:"intensity"` // 0.0 - 1.0
	Reason    string  `json:"reason"`
}

// ScoreIsFraudulent is the single fraud predicate used by the assessor and
// every rule that derives from a risk score.
func ScoreIsFraudulent(riskScore int) bool {
	return riskScore > FraudRiskThreshold
}

// Consistent reports whether the result honors its construction invariants:
// the fraud flag matches the score, and evidence is present iff fraudulent.
func (v *VerificationResult) Consistent() bool {
	if v.IsFraudulent != ScoreIsFraudulent(v.RiskScore) {
		return false
	}
	if v.IsFraudulent {
		return len(v.FraudIndicators) > 0 && len(v.HeatmapData) > 0
	}
	return len(v.FraudIndicators) == 0 && len(v.HeatmapData) == 0
}

// StatusForResult maps an assessment outcome to the document's final status
func StatusForResult(v *VerificationResult) DocumentStatus {
	if v.IsFraudulent {
		return DocumentStatusFlagged
	}
	return DocumentStatusVerified
}
