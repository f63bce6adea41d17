// Package redflag analyzes the aggregate pattern of verification results
// to detect upstream hallucination. Pure statistics, no network access.
package redflag

import (
	"fmt"
	"strings"

	"rolescout/internal/model"
)

// Detection thresholds. Empirically tuned; kept as named constants so a
// change is a deliberate act.
const (
	// MinCharacterMismatches triggers hallucinated_character
	MinCharacterMismatches = 2

	// MinNoResultRejections triggers hallucinated_title
	MinNoResultRejections = 2

	// LowSuccessRate is the success ratio below which a run with at
	// least MinAttemptsForRate roles is flagged
	LowSuccessRate = 0.5

	// MinAttemptsForRate guards the rate check against tiny samples
	MinAttemptsForRate = 3

	// SmallFilmographyMax is the attempt count at or below which
	// MinSmallFilmographyRejects rejections already flag the run
	SmallFilmographyMax        = 3
	MinSmallFilmographyRejects = 2

	// MinRepeatedTitleRejects is how often a rejected title must recur
	// with different characters to count as fabricated
	MinRepeatedTitleRejects = 2
)

// Detect computes the red-flag report for one verification pass.
func Detect(verified, rejected []model.CandidateRole) model.RedFlagReport {
	var flags []model.RedFlag

	mismatches := 0
	noResults := 0
	for _, role := range rejected {
		if role.Verification == nil {
			continue
		}
		switch role.Verification.Reason {
		case model.ReasonCharacterMismatch:
			mismatches++
		case model.ReasonNoResults:
			noResults++
		}
	}

	if mismatches >= MinCharacterMismatches {
		flags = append(flags, model.RedFlag{
			Type:        model.FlagHallucinatedCharacter,
			Severity:    model.SeverityHigh,
			Description: fmt.Sprintf("%d roles place the subject in the work but not as the claimed character", mismatches),
		})
	}

	if noResults >= MinNoResultRejections {
		flags = append(flags, model.RedFlag{
			Type:        model.FlagHallucinatedTitle,
			Severity:    model.SeverityHigh,
			Description: fmt.Sprintf("%d claimed titles produced no search evidence at all", noResults),
		})
	}

	attempts := len(verified) + len(rejected)
	if attempts >= MinAttemptsForRate {
		rate := float64(len(verified)) / float64(attempts)
		if rate < LowSuccessRate {
			flags = append(flags, model.RedFlag{
				Type:        model.FlagLowSuccessRate,
				Severity:    model.SeverityHigh,
				Description: fmt.Sprintf("only %d of %d roles verified (%.0f%%)", len(verified), attempts, rate*100),
			})
		}
	}

	if attempts <= SmallFilmographyMax && len(rejected) >= MinSmallFilmographyRejects {
		flags = append(flags, model.RedFlag{
			Type:        model.FlagHallucinatedTitle,
			Severity:    model.SeverityHigh,
			Description: fmt.Sprintf("%d of only %d roles rejected, small filmographies should verify cleanly", len(rejected), attempts),
		})
	}

	if title, ok := repeatedFakeTitle(rejected); ok {
		flags = append(flags, model.RedFlag{
			Type:        model.FlagRepeatedFakeTitles,
			Severity:    model.SeverityHigh,
			Description: fmt.Sprintf("rejected title %q recurs with different characters", title),
		})
	}

	report := model.RedFlagReport{
		HasRedFlags: len(flags) > 0,
		Flags:       flags,
	}
	report.TriggerEmergency = triggerEmergency(flags)
	return report
}

// repeatedFakeTitle finds a rejected title that recurs with different
// character names, the signature of a generator inventing roles around
// one fabricated work.
func repeatedFakeTitle(rejected []model.CandidateRole) (string, bool) {
	characters := make(map[string]map[string]bool)
	display := make(map[string]string)

	for _, role := range rejected {
		key := strings.ToLower(strings.TrimSpace(role.Title))
		if key == "" {
			continue
		}
		if characters[key] == nil {
			characters[key] = make(map[string]bool)
			display[key] = role.Title
		}
		characters[key][strings.ToLower(strings.TrimSpace(role.Character))] = true
	}

	for key, chars := range characters {
		if len(chars) >= MinRepeatedTitleRejects {
			return display[key], true
		}
	}
	return "", false
}

// triggerEmergency is true on any HIGH-severity flag or two flags of any
// severity.
func triggerEmergency(flags []model.RedFlag) bool {
	if len(flags) >= 2 {
		return true
	}
	for _, flag := range flags {
		if flag.Severity == model.SeverityHigh {
			return true
		}
	}
	return false
}
