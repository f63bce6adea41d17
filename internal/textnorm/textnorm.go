// Package textnorm provides the shared text-cleaning primitives used by
// every discovery and verification component: title normalization, the
// title-validity rule chain, word-overlap comparison and sequel stripping.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	wsRe       = regexp.MustCompile(`\s+`)
	footnoteRe = regexp.MustCompile(`\[\d+\]`)
	parenRe    = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
)

// CleanTitle normalizes a raw extracted title: strips footnote markers,
// surrounding quotes and trailing parentheticals, collapses whitespace and
// applies title casing to all-lower input.
func CleanTitle(s string) string {
	s = footnoteRe.ReplaceAllString(s, "")
	s = strings.Trim(s, ` "'“”‘’`)
	s = parenRe.ReplaceAllString(s, "")
	s = wsRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if s != "" && s == strings.ToLower(s) {
		s = TitleCase(s)
	}
	return s
}

// smallWords stay lowercase in titles unless they lead
var smallWords = map[string]bool{
	"a": true, "an": true, "and": true, "as": true, "at": true, "but": true,
	"by": true, "for": true, "in": true, "of": true, "on": true, "or": true,
	"the": true, "to": true, "with": true,
}

// TitleCase capitalizes words, leaving articles and short prepositions
// lowercase except in first position.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		lower := strings.ToLower(w)
		if i > 0 && smallWords[lower] {
			words[i] = lower
			continue
		}
		r := []rune(lower)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Normalize lowercases and strips punctuation for comparison purposes
func Normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return wsRe.ReplaceAllString(strings.TrimSpace(b.String()), " ")
}

// WordOverlap returns the fraction of words in the shorter string that also
// appear in the longer one. Used by cross-validation's 60% overlap gate.
func WordOverlap(a, b string) float64 {
	wa := strings.Fields(Normalize(a))
	wb := strings.Fields(Normalize(b))
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}
	if len(wb) < len(wa) {
		wa, wb = wb, wa
	}
	set := make(map[string]bool, len(wb))
	for _, w := range wb {
		set[w] = true
	}
	shared := 0
	for _, w := range wa {
		if set[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(wa))
}

// Overlaps reports whether two strings match exactly, by substring, or by
// at least minRatio shared-word overlap after normalization.
func Overlaps(a, b string, minRatio float64) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return WordOverlap(na, nb) >= minRatio
}

var (
	romanNumeralRe = regexp.MustCompile(`\s+(?i:(?:ii|iii|iv|v|vi|vii|viii|ix|x))$`)
	trailingNumRe  = regexp.MustCompile(`\s+\d+$`)
)

// StripSequelMarkers reduces a title to its franchise base name: trailing
// roman numerals and numbers go, as does any subtitle after a colon or dash.
func StripSequelMarkers(title string) string {
	s := strings.TrimSpace(title)
	for _, sep := range []string{":", " - ", " – "} {
		if idx := strings.Index(s, sep); idx > 0 {
			s = s[:idx]
		}
	}
	s = romanNumeralRe.ReplaceAllString(s, "")
	s = trailingNumRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
