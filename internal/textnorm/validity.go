package textnorm

import "strings"

// validityRule is a single named rejection rule. Rules run in order; the
// first rule that fires names the rejection.
type validityRule struct {
	name   string
	reject func(title, lower string, words []string) bool
}

var prepositions = map[string]bool{
	"in": true, "on": true, "at": true, "of": true, "by": true, "for": true,
	"with": true, "from": true, "as": true, "to": true, "and": true, "or": true,
}

var commonWords = map[string]bool{
	"movie": true, "movies": true, "show": true, "shows": true, "role": true,
	"roles": true, "character": true, "characters": true, "voice": true,
	"work": true, "works": true, "career": true, "appearance": true,
	"himself": true, "herself": true, "various": true, "other": true,
	"numerous": true, "several": true, "many": true,
}

var occupationNouns = map[string]bool{
	"actor": true, "actress": true, "comedian": true, "singer": true,
	"director": true, "producer": true, "writer": true, "musician": true,
	"host": true, "performer": true, "entertainer": true, "artist": true,
	"rapper": true, "dancer": true, "model": true,
}

var nationalityAdjectives = map[string]bool{
	"american": true, "british": true, "english": true, "canadian": true,
	"australian": true, "irish": true, "scottish": true, "french": true,
	"german": true, "japanese": true, "mexican": true, "indian": true,
}

var mediumNouns = map[string]bool{
	"film": true, "films": true, "series": true, "television": true,
	"tv": true, "sitcom": true, "drama": true, "anime": true,
	"cartoon": true, "franchise": true, "trilogy": true, "saga": true,
}

var networkNames = map[string]bool{
	"nbc": true, "abc": true, "cbs": true, "fox": true, "hbo": true,
	"netflix": true, "disney": true, "nickelodeon": true, "mtv": true,
	"comedy central": true, "cartoon network": true, "adult swim": true,
	"the cw": true, "pbs": true, "bbc": true,
}

var validityRules = []validityRule{
	{
		name: "empty",
		reject: func(title, lower string, words []string) bool {
			return len(words) == 0 || len(title) < 2
		},
	},
	{
		name: "preposition_fragment",
		reject: func(title, lower string, words []string) bool {
			return prepositions[words[0]]
		},
	},
	{
		name: "network_name",
		reject: func(title, lower string, words []string) bool {
			return networkNames[lower]
		},
	},
	{
		name: "single_common_word",
		reject: func(title, lower string, words []string) bool {
			if len(words) > 1 {
				return false
			}
			w := words[0]
			return commonWords[w] || mediumNouns[w] || len(w) < 3
		},
	},
	{
		name: "occupation_noun",
		reject: func(title, lower string, words []string) bool {
			return len(words) <= 2 && occupationNouns[words[len(words)-1]]
		},
	},
	{
		name: "nationality_adjective",
		reject: func(title, lower string, words []string) bool {
			return nationalityAdjectives[words[0]] && len(words) <= 2
		},
	},
	{
		name: "medium_noun",
		reject: func(title, lower string, words []string) bool {
			if len(words) != 2 {
				return false
			}
			article := words[0] == "the" || words[0] == "a" || words[0] == "an"
			return article && mediumNouns[words[1]]
		},
	},
	{
		name: "too_long",
		reject: func(title, lower string, words []string) bool {
			return len(words) > 10 || len(title) > 80
		},
	},
}

// CheckTitle runs the validity rule chain and returns the name of the first
// rule that rejected the title, or ok=true if every rule passed.
func CheckTitle(title string) (ok bool, rule string) {
	lower := strings.ToLower(strings.TrimSpace(title))
	words := strings.Fields(lower)
	for _, r := range validityRules {
		if r.reject(title, lower, words) {
			return false, r.name
		}
	}
	return true, ""
}

// ValidTitle reports whether a string plausibly names a real work.
func ValidTitle(title string) bool {
	ok, _ := CheckTitle(title)
	return ok
}
