package cases

import (
	"strings"

	"github.com/Nishasathish105/ai-compliance-platform/internal/domain"
)

// Filter describes a case search. Zero values mean "no filter" for that
// dimension. The three dimensions compose with logical AND, so applying
// them in any order yields the same result set.
type Filter struct {
	// Query matches case-insensitively as a substring of the case number,
	// customer name or customer id.
	Query string
	// Status, when set, must match exactly.
	Status domain.CaseStatus
	// Priority, when set, must match exactly.
	Priority domain.CasePriority
}

// Matches reports whether a single case passes every set dimension.
func (f Filter) Matches(c *domain.Case) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(c.CaseNumber), q) &&
			!strings.Contains(strings.ToLower(c.CustomerName), q) &&
			!strings.Contains(strings.ToLower(c.CustomerID), q) {
			return false
		}
	}
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	return true
}

// Apply filters a case slice, preserving order.
func (f Filter) Apply(cs []domain.Case) []domain.Case {
	out := make([]domain.Case, 0, len(cs))
	for i := range cs {
		if f.Matches(&cs[i]) {
			out = append(out, cs[i])
		}
	}
	return out
}
