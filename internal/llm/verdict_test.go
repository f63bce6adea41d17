package llm

import (
	"testing"

	"rolescout/internal/model"
)

func TestParseVerdict_ClearNegative(t *testing.T) {
	v := ParseVerdict("HIGH|NO|That character was played by someone else.")

	if v.Valid {
		t.Error("Expected HIGH|NO to reject the role")
	}
	if v.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected HIGH confidence, got %s", v.Confidence)
	}
	if v.Reason != "That character was played by someone else." {
		t.Errorf("Unexpected reason: %q", v.Reason)
	}
}

func TestParseVerdict_MediumNegative(t *testing.T) {
	v := ParseVerdict("MEDIUM|NO|Probably a different actor.")

	if v.Valid {
		t.Error("Expected MEDIUM|NO to reject the role")
	}
}

func TestParseVerdict_LowConfidenceNegativeIsPermissive(t *testing.T) {
	// Only clear negatives at HIGH/MEDIUM reject; a LOW NO stays valid
	v := ParseVerdict("LOW|NO|Not sure about this one.")

	if !v.Valid {
		t.Error("Expected LOW|NO to remain valid")
	}
	if v.Confidence != model.ConfidenceLow {
		t.Errorf("Expected LOW confidence, got %s", v.Confidence)
	}
}

func TestParseVerdict_Positive(t *testing.T) {
	v := ParseVerdict("HIGH|YES|Well documented lead role.")

	if !v.Valid {
		t.Error("Expected HIGH|YES to be valid")
	}
	if v.Confidence != model.ConfidenceHigh {
		t.Errorf("Expected HIGH confidence, got %s", v.Confidence)
	}
}

func TestParseVerdict_Malformed(t *testing.T) {
	cases := []string{
		"",
		"I cannot answer that question.",
		"YES",
		"garbage with no separators at all",
	}

	for _, raw := range cases {
		v := ParseVerdict(raw)
		if !v.Valid {
			t.Errorf("ParseVerdict(%q) should default to valid", raw)
		}
		if v.Confidence != model.ConfidenceUnknown {
			t.Errorf("ParseVerdict(%q) confidence = %s, want UNKNOWN", raw, v.Confidence)
		}
	}
}

func TestParseVerdict_SkipsPreamble(t *testing.T) {
	raw := "Here is my answer:\nHIGH|NO|Played by a different actress."

	v := ParseVerdict(raw)
	if v.Valid {
		t.Error("Expected verdict line after preamble to be parsed")
	}
}

func TestParseVerdict_TwoFieldAnswer(t *testing.T) {
	v := ParseVerdict("HIGH|YES")

	if !v.Valid {
		t.Error("Expected two-field positive to be valid")
	}
	if v.Reason == "" {
		t.Error("Expected a default reason to be filled in")
	}
}
