package verification

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
)

// RiskAssessor produces a risk assessment for an uploaded document. The
// simulated implementation below stands in for a forensic ML pipeline; a
// real model can be substituted here without touching the workflow.
type RiskAssessor interface {
	Assess(ctx context.Context, doc *domain.Document) (*domain.VerificationResult, error)
}

// Fixed descriptive evidence attached to fraudulent assessments.
var (
	fraudIndicators = []string{
		"Inconsistent font patterns detected",
		"Potential photo manipulation",
		"Signature mismatch probability: 78%",
		"Document metadata anomalies",
	}

	heatmapPoints = []domain.HeatmapPoint{
		{X: 120, Y: 80, Intensity: 0.9, Reason: "Font inconsistency"},
		{X: 200, Y: 150, Intensity: 0.7, Reason: "Photo manipulation"},
		{X: 180, Y: 220, Intensity: 0.85, Reason: "Signature anomaly"},
	}
)

// SimulatedAssessor draws a uniform risk score in [0,100] and a confidence
// level in [70,99]. Fraudulent results carry the fixed indicator and heatmap
// evidence; clean results carry none.
type SimulatedAssessor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedAssessor seeds the assessor from the clock.
func NewSimulatedAssessor() *SimulatedAssessor {
	return NewSimulatedAssessorWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewSimulatedAssessorWithSource accepts a source for deterministic tests.
func NewSimulatedAssessorWithSource(src rand.Source) *SimulatedAssessor {
	return &SimulatedAssessor{rng: rand.New(src)}
}

// Assess draws the simulated assessment for a document.
func (a *SimulatedAssessor) Assess(ctx context.Context, doc *domain.Document) (*domain.VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	riskScore := a.rng.Intn(101)
	confidence := 70 + a.rng.Intn(30)
	a.mu.Unlock()

	result := &domain.VerificationResult{
		DocumentID:       doc.ID,
		RiskScore:        riskScore,
		IsFraudulent:     domain.ScoreIsFraudulent(riskScore),
		ConfidenceLevel:  confidence,
		FraudIndicators:  []string{},
		HeatmapData:      []domain.HeatmapPoint{},
		VerificationDate: time.Now().UTC(),
	}
	if result.IsFraudulent {
		result.FraudIndicators = append([]string(nil), fraudIndicators...)
		result.HeatmapData = append([]domain.HeatmapPoint(nil), heatmapPoints...)
	}
	return result, nil
}

// FixedAssessor returns a predetermined score; used in tests and demos.
type FixedAssessor struct {
	RiskScore  int
	Confidence int
}

// Assess builds a result for the fixed score with evidence following the
// same rules as the simulated assessor.
func (a FixedAssessor) Assess(ctx context.Context, doc *domain.Document) (*domain.VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	confidence := a.Confidence
	if confidence == 0 {
		confidence = 90
	}
	result := &domain.VerificationResult{
		DocumentID:       doc.ID,
		RiskScore:        a.RiskScore,
		IsFraudulent:     domain.ScoreIsFraudulent(a.RiskScore),
		ConfidenceLevel:  confidence,
		FraudIndicators:  []string{},
		HeatmapData:      []domain.HeatmapPoint{},
		VerificationDate: time.Now().UTC(),
	}
	if result.IsFraudulent {
		result.FraudIndicators = append([]string(nil), fraudIndicators...)
		result.HeatmapData = append([]domain.HeatmapPoint(nil), heatmapPoints...)
	}
	return result, nil
}
