// Package franchise groups candidate roles by underlying intellectual
// property and caps how many entries per franchise survive into the
// final list, so one long-running series cannot crowd out the rest of a
// career.
package franchise

import (
	"sort"
	"strings"

	"rolescout/internal/model"
	"rolescout/internal/textnorm"
)

// Output shape constants
const (
	// MaxRoles is the size of the final curated list
	MaxRoles = 5

	// MinGroupSize is how many raw candidates a base key needs before it
	// counts as a franchise
	MinGroupSize = 3

	// FranchiseSlots is the normal per-franchise cap
	FranchiseSlots = 2

	// SmallFranchiseSlots applies to franchises with fewer than
	// SmallFranchiseCutoff raw members
	SmallFranchiseSlots  = 1
	SmallFranchiseCutoff = 5
)

// knownFranchises maps a title/character substring to a canonical
// franchise name. Long-running properties whose installment titles share
// no usable base name live here.
var knownFranchises = map[string]string{
	"star wars":                "Star Wars",
	"star trek":                "Star Trek",
	"harry potter":             "Harry Potter",
	"james bond":               "James Bond",
	"jurassic":                 "Jurassic Park",
	"avengers":                 "Marvel Cinematic Universe",
	"iron man":                 "Marvel Cinematic Universe",
	"captain america":          "Marvel Cinematic Universe",
	"thor":                     "Marvel Cinematic Universe",
	"guardians of the galaxy":  "Marvel Cinematic Universe",
	"x-men":                    "X-Men",
	"batman":                   "Batman",
	"superman":                 "Superman",
	"spider-man":               "Spider-Man",
	"lord of the rings":        "The Lord of the Rings",
	"the hobbit":               "The Lord of the Rings",
	"hunger games":             "The Hunger Games",
	"fast & furious":           "Fast & Furious",
	"fast and furious":         "Fast & Furious",
	"mission: impossible":      "Mission: Impossible",
	"pirates of the caribbean": "Pirates of the Caribbean",
	"sherlock holmes":          "Sherlock Holmes",
	"transformers":             "Transformers",
	"despicable me":            "Despicable Me",
	"shrek":                    "Shrek",
	"toy story":                "Toy Story",
	"ice age":                  "Ice Age",
	"kung fu panda":            "Kung Fu Panda",
	"madagascar":               "Madagascar",
	"scooby-doo":               "Scooby-Doo",
	"pokemon":                  "Pokemon",
	"pokémon":                  "Pokemon",
	"dragon ball":              "Dragon Ball",
	"naruto":                   "Naruto",
	"one piece":                "One Piece",
}

// Key derives the franchise grouping key for a role: the known-franchise
// table first, then the title stripped of sequel markers.
func Key(role model.CandidateRole) string {
	ltitle := strings.ToLower(role.Title)
	lcharacter := strings.ToLower(role.Character)

	for substr, canonical := range knownFranchises {
		if strings.Contains(ltitle, substr) || (lcharacter != "" && strings.Contains(lcharacter, substr)) {
			return canonical
		}
	}

	return stripBase(role.Title)
}

// Deduplicate applies franchise capping, ordering and truncation.
// Roles keep their identity fields; only Franchise is written, and only
// where a group actually formed.
func Deduplicate(roles []model.CandidateRole) []model.CandidateRole {
	if len(roles) == 0 {
		return nil
	}

	type group struct {
		key     string
		members []int // indexes into roles, insertion order
	}

	byKey := make(map[string]*group)
	var order []*group
	for i, role := range roles {
		key := Key(role)
		g := byKey[key]
		if g == nil {
			g = &group{key: key}
			byKey[key] = g
			order = append(order, g)
		}
		g.members = append(g.members, i)
	}

	var kept []model.CandidateRole
	for _, g := range order {
		if len(g.members) < MinGroupSize {
			// Standalone roles pass through unchanged
			for _, idx := range g.members {
				kept = append(kept, roles[idx])
			}
			continue
		}

		slots := FranchiseSlots
		if len(g.members) < SmallFranchiseCutoff {
			slots = SmallFranchiseSlots
		}

		// Prefer entries that name a genuine character over entries
		// that just repeat the work's title.
		members := make([]int, len(g.members))
		copy(members, g.members)
		sort.SliceStable(members, func(a, b int) bool {
			ra, rb := roles[members[a]], roles[members[b]]
			if ra.HasCharacter() != rb.HasCharacter() {
				return ra.HasCharacter()
			}
			return ra.VoteCount > rb.VoteCount
		})

		for _, idx := range members[:slots] {
			role := roles[idx]
			role.Franchise = g.key
			kept = append(kept, role)
		}
	}

	// Known-for roles lead; the rest rank by vote count
	sort.SliceStable(kept, func(a, b int) bool {
		if kept[a].KnownFor != kept[b].KnownFor {
			return kept[a].KnownFor
		}
		return kept[a].VoteCount > kept[b].VoteCount
	})

	if len(kept) > MaxRoles {
		kept = kept[:MaxRoles]
	}
	return kept
}

// stripBase reduces a title to its franchise base name
func stripBase(title string) string {
	base := textnorm.StripSequelMarkers(title)
	if base == "" {
		base = title
	}
	return strings.ToLower(strings.TrimSpace(base))
}
