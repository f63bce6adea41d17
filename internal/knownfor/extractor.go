// Package knownfor extracts "best known for" titles from the lead section
// of an encyclopedic article. The output is a trust signal for
// cross-validation, never shown to end users.
package knownfor

import (
	"regexp"
	"strings"

	"rolescout/internal/textnorm"
)

// MaxTitles caps the extracted known-for list
const MaxTitles = 5

// rule is a single phrase-anchored extraction pattern. Rules run in order;
// every match contributes candidates, first-seen wins on duplicates.
type rule struct {
	name string
	re   *regexp.Regexp
}

var rules = []rule{
	{"best_known_for_playing", regexp.MustCompile(`(?i)best known for (?:playing|portraying|voicing) ([^.;]+)`)},
	{"known_for_role_as", regexp.MustCompile(`(?i)known for (?:his|her|their) (?:role|roles|work|performance) (?:as|in|on) ([^.;]+)`)},
	{"known_for_playing", regexp.MustCompile(`(?i)known for (?:playing|portraying|voicing) ([^.;]+)`)},
	{"best_known_for", regexp.MustCompile(`(?i)best known for ([^.;]+)`)},
	{"famous_for", regexp.MustCompile(`(?i)famous for (?:his|her|their)? ?(?:roles? (?:as|in|on) )?([^.;]+)`)},
	// Case-sensitive: the capture must start at a capitalized title word
	// and may only continue through capitalized words and connectors, or
	// it drags in the preceding clause.
	{"franchise", regexp.MustCompile(`(?:[Tt]he )?([A-Z][\w'-]*(?:\s+(?:of|the|and|a|an)\b|\s+[A-Z][\w'-]*)*) franchise`)},
	{"starred_in", regexp.MustCompile(`(?i)starred (?:in|as) ([^.;]+)`)},
}

// Extractor pulls known-for titles out of free text
type Extractor struct {
	rules []rule
}

// NewExtractor creates an extractor with the built-in rule set
func NewExtractor() *Extractor {
	return &Extractor{rules: rules}
}

// Extract returns up to MaxTitles known-for titles in first-seen order.
// Empty or anchor-free text yields an empty list; that is not an error,
// it only removes the cross-validation signal.
func (e *Extractor) Extract(articleText string) []string {
	if strings.TrimSpace(articleText) == "" {
		return nil
	}

	var titles []string
	seen := make(map[string]bool)

	for _, r := range e.rules {
		for _, m := range r.re.FindAllStringSubmatch(articleText, -1) {
			for _, cand := range splitCandidates(m[1]) {
				title := cleanCandidate(cand)
				if title == "" || !textnorm.ValidTitle(title) {
					continue
				}
				key := textnorm.Normalize(title)
				if seen[key] {
					continue
				}
				seen[key] = true
				titles = append(titles, title)
				if len(titles) >= MaxTitles {
					return titles
				}
			}
		}
	}

	return titles
}

// splitCandidates breaks a captured phrase into individual title candidates
func splitCandidates(phrase string) []string {
	phrase = strings.ReplaceAll(phrase, " as well as ", ", ")
	phrase = strings.ReplaceAll(phrase, " and ", ", ")
	parts := strings.Split(phrase, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var leadingRoleRe = regexp.MustCompile(`(?i)^(?:playing |portraying |voicing |the (?:role of|character) |the title (?:role|character) (?:in|of) |(?:his|her|their) (?:role|work) (?:as|in|on) )`)

// cleanCandidate strips role-phrasing prefixes and normalizes the remainder
func cleanCandidate(s string) string {
	s = leadingRoleRe.ReplaceAllString(strings.TrimSpace(s), "")
	// "X in the Y franchise" style tails
	s = strings.TrimSuffix(s, " franchise")
	return textnorm.CleanTitle(s)
}

var voiceIndicators = []string{
	"voice actor", "voice actress", "voice artist", "voice acting",
	"voice role", "voice roles", "voicing", "voice of", "voice work",
	"animated series", "animated film", "animation", "anime", "cartoon",
}

// HasVoiceIndicators reports whether the text suggests a voice-acting
// career, which routes discovery through the specialty community source.
func HasVoiceIndicators(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range voiceIndicators {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
