package model

import "time"

// Tier identifies which discovery tier produced the final role list
type Tier string

const (
	TierPrimary         Tier = "primary"          // Cross-validated metadata provider credits
	TierEscalated       Tier = "escalated"        // Expanded scrape + verification
	TierHailMary        Tier = "hail_mary"        // Broad web-search recovery
	TierGenericFallback Tier = "generic_fallback" // Placeholder roles, nothing found
)

// RunResult is the single artifact a pipeline run hands to the caller.
// Roles is never empty: total discovery failure yields placeholder roles
// under TierGenericFallback.
type RunResult struct {
	Subject   string          `json:"subject"`
	Roles     []CandidateRole `json:"roles"`
	Tier      Tier            `json:"tier"`
	CostUnits float64         `json:"cost_units"` // Verification spend, for observability
	RedFlags  *RedFlagReport  `json:"red_flags,omitempty"`
	StartedAt time.Time       `json:"started_at"`
	Duration  time.Duration   `json:"duration"`
}
