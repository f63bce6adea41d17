package discovery

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"rolescout/internal/model"
	"rolescout/internal/textnorm"
	"rolescout/internal/tmdb"
)

// talkShowBlocklist names programs whose credits are appearances, not
// roles. Matched as a lowercase substring of the credit title.
var talkShowBlocklist = []string{
	"tonight show",
	"late show",
	"late night",
	"late late show",
	"jimmy kimmel live",
	"conan",
	"the view",
	"the talk",
	"good morning america",
	"today",
	"live with kelly",
	"the ellen degeneres show",
	"ellen",
	"saturday night live",
	"academy awards",
	"golden globe",
	"emmy awards",
	"mtv movie",
	"kids' choice awards",
	"people's choice awards",
	"hollywood squares",
	"celebrity family feud",
	"whose line is it anyway",
	"entertainment tonight",
	"access hollywood",
	"extra",
	"inside edition",
}

// genericCharacters are character-field values that mean the subject
// appeared as themselves.
var genericCharacters = []string{
	"self",
	"himself",
	"herself",
	"themselves",
	"guest",
	"guest host",
	"host",
	"co-host",
	"presenter",
	"narrator (voice)",
	"various",
	"archive footage",
}

// Discoverer resolves a subject against the structured metadata provider
// and filters the credit list down to plausible acting roles.
type Discoverer struct {
	searcher     tmdb.Searcher
	minVoteCount int64
}

// New creates a Discoverer. minVoteCount is the popularity floor below
// which a credit needs a genuine character field to survive.
func New(searcher tmdb.Searcher, minVoteCount int64) *Discoverer {
	return &Discoverer{
		searcher:     searcher,
		minVoteCount: minVoteCount,
	}
}

// FetchPrimary resolves the subject to a person (first match only) and
// returns their top credits as candidate roles. A subject the provider
// does not know returns an empty list, nil error.
func (d *Discoverer) FetchPrimary(ctx context.Context, subject string, knownFor []string, maxResults int) ([]model.CandidateRole, error) {
	person, err := d.searcher.SearchPerson(ctx, subject)
	if err != nil {
		return nil, fmt.Errorf("search person: %w", err)
	}
	if person == nil {
		return nil, nil
	}

	credits, err := d.searcher.CombinedCredits(ctx, person.ID)
	if err != nil {
		return nil, fmt.Errorf("combined credits: %w", err)
	}

	var kept []tmdb.Credit
	for _, credit := range credits {
		if d.keepCredit(credit) {
			kept = append(kept, credit)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].VoteCount > kept[j].VoteCount
	})

	if maxResults > 0 && len(kept) > maxResults {
		kept = kept[:maxResults]
	}

	roles := make([]model.CandidateRole, 0, len(kept))
	for _, credit := range kept {
		roles = append(roles, model.CandidateRole{
			Character:  cleanCharacter(credit.Character),
			Title:      credit.DisplayTitle(),
			Medium:     creditMedium(credit),
			Year:       credit.Year(),
			Popularity: credit.Popularity,
			VoteCount:  int(credit.VoteCount),
			Source:     model.SourcePrimary,
			KnownFor:   matchesKnownFor(credit, knownFor),
		})
	}

	return roles, nil
}

// keepCredit filters out appearance noise: talk shows, awards shows, and
// self/guest credits. A credit survives with either enough votes or a
// genuine character name.
func (d *Discoverer) keepCredit(credit tmdb.Credit) bool {
	title := credit.DisplayTitle()
	if strings.TrimSpace(title) == "" {
		return false
	}

	lowerTitle := strings.ToLower(title)
	for _, blocked := range talkShowBlocklist {
		if strings.Contains(lowerTitle, blocked) {
			return false
		}
	}

	if isGenericCharacter(credit.Character) {
		return false
	}

	hasCharacter := strings.TrimSpace(credit.Character) != ""
	return credit.VoteCount >= d.minVoteCount || hasCharacter
}

// isGenericCharacter reports whether the character field is a self or
// guest appearance rather than a played part. Parenthetical qualifiers
// like "Self (archive footage)" count too.
func isGenericCharacter(character string) bool {
	lower := strings.ToLower(strings.TrimSpace(character))
	if lower == "" {
		return false
	}

	base := lower
	if idx := strings.Index(base, "("); idx > 0 {
		base = strings.TrimSpace(base[:idx])
	}

	for _, generic := range genericCharacters {
		if base == generic || lower == generic {
			return true
		}
	}
	return false
}

// cleanCharacter strips TMDB's voice/uncredited annotations from a
// character name.
func cleanCharacter(character string) string {
	character = strings.TrimSpace(character)
	for _, suffix := range []string{"(voice)", "(uncredited)", "(credit only)"} {
		character = strings.TrimSpace(strings.TrimSuffix(character, suffix))
	}
	return character
}

// creditMedium infers the medium from media type and the animation genre
func creditMedium(credit tmdb.Credit) model.Medium {
	switch credit.MediaType {
	case "movie":
		if credit.IsAnimation() {
			return model.MediumVoiceCartoon
		}
		return model.MediumLiveActionMovie
	case "tv":
		if credit.IsAnimation() {
			return model.MediumVoiceAnimeTV
		}
		return model.MediumLiveActionTV
	default:
		return model.MediumUnknown
	}
}

// matchesKnownFor reports whether the credit corresponds to one of the
// subject's known-for titles.
func matchesKnownFor(credit tmdb.Credit, knownFor []string) bool {
	for _, known := range knownFor {
		if textnorm.Overlaps(credit.DisplayTitle(), known, overlapThreshold) {
			return true
		}
		if credit.Character != "" && textnorm.Overlaps(credit.Character, known, overlapThreshold) {
			return true
		}
	}
	return false
}

// overlapThreshold is the shared-word ratio at which two titles are
// considered the same work.
const overlapThreshold = 0.6

// CrossValidate checks the primary pool against the known-for titles.
// It returns false only when the known-for list is non-empty and no
// candidate's title or character overlaps any entry, which means the
// provider almost certainly matched a different person with the same
// name. A false result discards the whole pool.
func CrossValidate(candidates []model.CandidateRole, knownFor []string) bool {
	if len(knownFor) == 0 {
		return true
	}

	for _, candidate := range candidates {
		for _, known := range knownFor {
			if textnorm.Overlaps(candidate.Title, known, overlapThreshold) {
				return true
			}
			if candidate.Character != "" && textnorm.Overlaps(candidate.Character, known, overlapThreshold) {
				return true
			}
		}
	}

	return false
}
