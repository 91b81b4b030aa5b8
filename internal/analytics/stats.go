package analytics

import (
	"math"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
	"github.com/Nishasathish105/ai-compliance-platform/internal/errs"
)

// DocumentStats summarizes a document snapshot. Rates are round-half-up
// integer percentages rendered directly as progress-bar widths, so a zero
// denominator must yield 0, never an error.
type DocumentStats struct {
	Total    int `json:"total"`
	Verified int `json:"verified"`
	Flagged  int `json:"flagged"`
	Pending  int `json:"pending"`

	VerificationRate int `json:"verification_rate"`
	FraudRate        int `json:"fraud_rate"`
}

// CaseStats summarizes a case snapshot using the shared status bucketing.
type CaseStats struct {
	Total   int `json:"total"`
	Active  int `json:"active"`  // open + investigating
	Settled int `json:"settled"` // resolved + closed

	ResolutionRate int `json:"resolution_rate"`
}

// DashboardStats is the headline view combining all three collections.
type DashboardStats struct {
	TotalDocuments   int `json:"total_documents"`
	FlaggedDocuments int `json:"flagged_documents"`
	ActiveCases      int `json:"active_cases"`
	RiskScore        int `json:"risk_score"` // rounded mean over all verifications
}

// Percent returns the round-half-up integer percentage of part in total.
// A total of zero yields 0. Negative inputs are malformed and rejected.
func Percent(part, total int) (int, error) {
	if part < 0 || total < 0 {
		return 0, errs.Aggregation("negative count (part=%d, total=%d)", part, total)
	}
	if total == 0 {
		return 0, nil
	}
	return int(math.Round(float64(part) / float64(total) * 100)), nil
}

// ComputeDocumentStats reduces a document snapshot to counts and rates.
func ComputeDocumentStats(docs []domain.Document) (DocumentStats, error) {
	stats := DocumentStats{Total: len(docs)}
	for i := range docs {
		switch docs[i].Status {
		case domain.DocumentStatusVerified:
			stats.Verified++
		case domain.DocumentStatusFlagged:
			stats.Flagged++
		case domain.DocumentStatusPending, domain.DocumentStatusProcessing:
			stats.Pending++
		}
	}

	var err error
	if stats.VerificationRate, err = Percent(stats.Verified, stats.Total); err != nil {
		return DocumentStats{}, err
	}
	if stats.FraudRate, err = Percent(stats.Flagged, stats.Total); err != nil {
		return DocumentStats{}, err
	}
	return stats, nil
}

// ComputeCaseStats reduces a case snapshot to bucket counts and the
// resolution rate. Bucketing goes through domain.CaseStatusBucket so this
// stays consistent with every other consumer of the split.
func ComputeCaseStats(cases []domain.Case) (CaseStats, error) {
	stats := CaseStats{Total: len(cases)}
	for i := range cases {
		if domain.CaseStatusBucket(cases[i].Status) == domain.BucketSettled {
			stats.Settled++
		} else {
			stats.Active++
		}
	}

	var err error
	if stats.ResolutionRate, err = Percent(stats.Settled, stats.Total); err != nil {
		return CaseStats{}, err
	}
	return stats, nil
}

// ComputeDashboardStats combines the three collections into the headline
// numbers. Risk scores outside [0,100] are malformed and rejected rather
// than clamped.
func ComputeDashboardStats(docs []domain.Document, cases []domain.Case, verifications []domain.VerificationResult) (DashboardStats, error) {
	stats := DashboardStats{TotalDocuments: len(docs)}

	for i := range docs {
		if docs[i].Status == domain.DocumentStatusFlagged {
			stats.FlaggedDocuments++
		}
	}
	for i := range cases {
		if domain.IsActiveStatus(cases[i].Status) {
			stats.ActiveCases++
		}
	}

	if len(verifications) > 0 {
		sum := 0
		for i := range verifications {
			score := verifications[i].RiskScore
			if score < 0 || score > 100 {
				return DashboardStats{}, errs.Aggregation("risk score %d out of range", score)
			}
			sum += score
		}
		stats.RiskScore = int(math.Round(float64(sum) / float64(len(verifications))))
	}

	return stats, nil
}
