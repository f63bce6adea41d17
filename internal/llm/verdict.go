package llm

import (
	"strings"

	"rolescout/internal/model"
)

// Verdict is the parsed form of a model's CONFIDENCE|DECISION|REASON answer
type Verdict struct {
	Confidence model.Confidence
	Valid      bool
	Reason     string
}

// ParseVerdict parses a judgment response leniently. Only a clear NO at
// HIGH or MEDIUM confidence rejects a role; malformed output, missing
// fields and low-confidence negatives all default to valid/UNKNOWN so that
// a flaky model can never silently drain the candidate pool.
func ParseVerdict(raw string) Verdict {
	permissive := Verdict{
		Confidence: model.ConfidenceUnknown,
		Valid:      true,
		Reason:     "unparseable judgment, defaulting to valid",
	}

	line := verdictLine(raw)
	if line == "" {
		return permissive
	}

	parts := strings.SplitN(line, "|", 3)
	if len(parts) < 2 {
		return permissive
	}

	confidence := parseConfidence(strings.TrimSpace(parts[0]))
	decision := strings.ToUpper(strings.TrimSpace(parts[1]))

	reason := ""
	if len(parts) == 3 {
		reason = strings.TrimSpace(parts[2])
	}
	if reason == "" {
		reason = "model judgment"
	}

	if decision == "NO" && (confidence == model.ConfidenceHigh || confidence == model.ConfidenceMedium) {
		return Verdict{Confidence: confidence, Valid: false, Reason: reason}
	}

	return Verdict{Confidence: confidence, Valid: true, Reason: reason}
}

// verdictLine finds the first line that looks like a verdict triple
func verdictLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.Contains(line, "|") {
			return line
		}
	}
	return ""
}

func parseConfidence(s string) model.Confidence {
	switch strings.ToUpper(s) {
	case "HIGH":
		return model.ConfidenceHigh
	case "MEDIUM":
		return model.ConfidenceMedium
	case "LOW":
		return model.ConfidenceLow
	default:
		return model.ConfidenceUnknown
	}
}
