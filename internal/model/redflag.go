package model

// FlagType classifies a detected upstream-reliability problem
type FlagType string

const (
	FlagHallucinatedCharacter FlagType = "hallucinated_character" // Real titles, invented characters
	FlagHallucinatedTitle     FlagType = "hallucinated_title"     // Titles that do not exist
	FlagLowSuccessRate        FlagType = "low_success_rate"       // Verification mostly failing
	FlagRepeatedFakeTitles    FlagType = "repeated_fake_titles"   // Same fake title, different characters
)

// FlagSeverity indicates how strongly a flag argues for emergency recovery
type FlagSeverity string

const (
	SeverityLow    FlagSeverity = "LOW"
	SeverityMedium FlagSeverity = "MEDIUM"
	SeverityHigh   FlagSeverity = "HIGH"
)

// RedFlag is a run-scoped aggregate fact about verification outcomes,
// not attached to any single role
type RedFlag struct {
	Type        FlagType     `json:"type"`
	Severity    FlagSeverity `json:"severity"`
	Description string       `json:"description"`
}

// RedFlagReport is the output of one red-flag detection pass
type RedFlagReport struct {
	HasRedFlags      bool      `json:"has_red_flags"`
	TriggerEmergency bool      `json:"trigger_emergency"`
	Flags            []RedFlag `json:"flags,omitempty"`
}
