package verify

import "sync"

// Cost units per external call. Web search dominates the bill; model
// judgments are cheaper but not free.
const (
	CostSearchQuery = 10
	CostLLMJudgment = 3
)

// CostMeter accumulates verification spend for one pipeline run.
// Safe for concurrent use by batch workers.
type CostMeter struct {
	mu    sync.Mutex
	total int
}

// Add records units of spend
func (m *CostMeter) Add(units int) {
	m.mu.Lock()
	m.total += units
	m.mu.Unlock()
}

// Total returns the accumulated spend
func (m *CostMeter) Total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total
}
