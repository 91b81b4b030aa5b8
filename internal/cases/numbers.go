package cases

import (
	"fmt"
	"sync"
	"time"
)

const caseNumberPrefix = "CASE"

// NumberGenerator issues unique case numbers: a fixed prefix, a UTC
// timestamp and a process-wide sequence. The sequence guarantees uniqueness
// within a process even when the clock does not advance between calls; the
// database unique constraint backstops across processes.
type NumberGenerator struct {
	mu   sync.Mutex
	last int64
	seq  int
	now  func() time.Time
}

// NewNumberGenerator uses the wall clock.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{now: time.Now}
}

// Next returns a fresh case number.
func (g *NumberGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := g.now().UTC().UnixMilli()
	if ms == g.last {
		g.seq++
	} else {
		g.last = ms
		g.seq = 0
	}
	if g.seq == 0 {
		return fmt.Sprintf("%s-%d", caseNumberPrefix, ms)
	}
	return fmt.Sprintf("%s-%d-%d", caseNumberPrefix, ms, g.seq)
}
