package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"rolescout/internal/model"
	"rolescout/internal/search"
	"rolescout/internal/textnorm"
)

// hailMaryVenues are the networks and outlets targeted by the broadest
// recovery queries. Voice and animation work is badly covered by the
// structured providers, so the last tier goes looking there directly.
var hailMaryVenues = []string{
	"Cartoon Network",
	"Nickelodeon",
	"Disney Channel",
	"Adult Swim",
	"anime English dub",
}

// maxHailMaryCandidates bounds how many recovery candidates enter
// lenient verification.
const maxHailMaryCandidates = 8

// hailMaryQueries builds the broad recovery query set for a subject
func hailMaryQueries(subject string) []string {
	queries := []string{
		fmt.Sprintf("%q filmography roles", subject),
		fmt.Sprintf("%q site:behindthevoiceactors.com", subject),
	}
	for _, venue := range hailMaryVenues {
		queries = append(queries, fmt.Sprintf("%q %s", subject, venue))
	}
	return queries
}

// roleMentionRe matches casting phrasings like "as Comet in Star Chasers"
// or "voices Comet on Galaxy Tales" in result titles and snippets.
// Title words after the first must be capitalized or a small connector,
// so the capture stops before trailing prose.
var roleMentionRe = regexp.MustCompile(`(?:\bas|\bvoices?|\bplays?|\bvoiced|\bplayed)\s+([A-Z][\w'-]*(?:\s+[A-Z][\w'-]*)*)\s+(?:in|on|from)\s+([A-Z][\w'&!-]*(?:\s+(?:of|the|and|a|an)\b|\s+[A-Z][\w'&!-]*)*)`)

// extractHailMaryCandidates mines search results for character/title
// pairs. Every survivor is tagged emergency_recovery so verification
// applies the lenient rules.
func extractHailMaryCandidates(subject string, results []search.Result) []model.CandidateRole {
	var candidates []model.CandidateRole
	seen := make(map[string]bool)

	for _, result := range results {
		text := result.Title + ". " + result.Snippet
		for _, match := range roleMentionRe.FindAllStringSubmatch(text, -1) {
			character := strings.TrimSpace(match[1])
			title := textnorm.CleanTitle(match[2])

			if !textnorm.ValidTitle(title) {
				continue
			}
			// A "role" that is just the subject's own name is the
			// mention pattern misfiring on a biography line.
			if textnorm.Overlaps(character, subject, 0.9) {
				continue
			}

			key := strings.ToLower(character + "|" + title)
			if seen[key] {
				continue
			}
			seen[key] = true

			candidates = append(candidates, model.CandidateRole{
				Character: character,
				Title:     title,
				Medium:    model.MediumUnknown,
				Source:    model.SourceEmergencyRecovery,
			})
			if len(candidates) >= maxHailMaryCandidates {
				return candidates
			}
		}
	}

	return candidates
}

// runHailMary issues the recovery queries and mines the results.
// Search failures yield an empty slice; the caller falls through to the
// generic placeholders.
func (p *Pipeline) runHailMary(ctx context.Context, subject string) []model.CandidateRole {
	if p.searcher == nil {
		return nil
	}

	var results []search.Result
	for i, query := range hailMaryQueries(subject) {
		if i > 0 && !sleep(ctx, p.config.Search.QueryDelay) {
			break
		}
		batch, err := p.searcher.Search(ctx, query, p.config.Search.MaxResults)
		if err != nil {
			p.logf("hail-mary query failed: %v", err)
			continue
		}
		results = append(results, batch...)
	}

	return extractHailMaryCandidates(subject, results)
}
