package model

// Confidence expresses how strongly the evidence supports a verdict
type Confidence string

const (
	ConfidenceHigh    Confidence = "HIGH"
	ConfidenceMedium  Confidence = "MEDIUM"
	ConfidenceLow     Confidence = "LOW"
	ConfidenceUnknown Confidence = "UNKNOWN"
)

// VerificationMethod records which strategy produced the result
type VerificationMethod string

const (
	MethodWebSearch VerificationMethod = "web_search"
	MethodLLM       VerificationMethod = "llm_judgment"
	MethodNone      VerificationMethod = "no_verification"
)

// Canonical rejection reasons. The red-flag detector matches on these
// strings, so verifier code must use the constants rather than freehand text.
const (
	ReasonCharacterMismatch = "celebrity in title but not this character"
	ReasonNoResults         = "no search results found"
)

// VerificationResult is attached 1:1 to a CandidateRole once verification
// runs; immutable after creation
type VerificationResult struct {
	IsValid    bool               `json:"is_valid"`
	Confidence Confidence         `json:"confidence"`
	Reason     string             `json:"reason,omitempty"`
	Method     VerificationMethod `json:"method,omitempty"`
}
