package verification

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
)

func TestSimulatedAssessor_ResultInvariants(t *testing.T) {
	a := NewSimulatedAssessorWithSource(rand.NewSource(1))
	doc := &domain.Document{ID: uuid.New()}

	sawFraudulent := false
	sawClean := false
	for i := 0; i < 500; i++ {
		result, err := a.Assess(context.Background(), doc)
		require.NoError(t, err)

		require.GreaterOrEqual(t, result.RiskScore, 0)
		require.LessOrEqual(t, result.RiskScore, 100)
		require.GreaterOrEqual(t, result.ConfidenceLevel, 70)
		require.LessOrEqual(t, result.ConfidenceLevel, 99)
		require.Equal(t, result.RiskScore > domain.FraudRiskThreshold, result.IsFraudulent)
		require.True(t, result.Consistent())
		require.Equal(t, doc.ID, result.DocumentID)

		if result.IsFraudulent {
			sawFraudulent = true
			require.Len(t, result.FraudIndicators, 4)
			require.Len(t, result.HeatmapData, 3)
		} else {
			sawClean = true
			require.Empty(t, result.FraudIndicators)
			require.Empty(t, result.HeatmapData)
		}
	}
	require.True(t, sawFraudulent)
	require.True(t, sawClean)
}

func TestSimulatedAssessor_CancelledContext(t *testing.T) {
	a := NewSimulatedAssessor()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Assess(ctx, &domain.Document{ID: uuid.New()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestFixedAssessor_BoundaryScore(t *testing.T) {
	doc := &domain.Document{ID: uuid.New()}

	// Exactly at the threshold is not fraudulent; one above is.
	atThreshold, err := FixedAssessor{RiskScore: domain.FraudRiskThreshold}.Assess(context.Background(), doc)
	require.NoError(t, err)
	require.False(t, atThreshold.IsFraudulent)
	require.True(t, atThreshold.Consistent())

	above, err := FixedAssessor{RiskScore: domain.FraudRiskThreshold + 1}.Assess(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, above.IsFraudulent)
	require.True(t, above.Consistent())
}

func TestFraudEvidenceContent(t *testing.T) {
	result, err := FixedAssessor{RiskScore: 95}.Assess(context.Background(), &domain.Document{ID: uuid.New()})
	require.NoError(t, err)

	reasons := make([]string, len(result.HeatmapData))
	intensities := make([]float64, len(result.HeatmapData))
	for i, p := range result.HeatmapData {
		reasons[i] = p.Reason
		intensities[i] = p.Intensity
	}
	require.Equal(t, []string{"Font inconsistency", "Photo manipulation", "Signature anomaly"}, reasons)
	require.Equal(t, []float64{0.9, 0.7, 0.85}, intensities)
}
