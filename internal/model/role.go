package model

import "strings"

// Medium categorizes how the subject appeared in the work
type Medium string

const (
	MediumLiveActionMovie Medium = "live_action_movie"
	MediumLiveActionTV    Medium = "live_action_tv"
	MediumVoiceCartoon    Medium = "voice_cartoon"
	MediumVoiceAnimeTV    Medium = "voice_anime_tv"
	MediumUnknown         Medium = "unknown"
)

// SourceTag records which discovery tier produced a candidate role
type SourceTag string

const (
	SourcePrimary              SourceTag = "primary_source"        // Structured metadata provider
	SourceKnownFor             SourceTag = "known_for"             // Encyclopedia lead-section extraction
	SourceEncyclopediaExpanded SourceTag = "encyclopedia_expanded" // Filmography headings, tables, lists
	SourceSpecialtyCommunity   SourceTag = "specialty_community"   // Voice-acting community source
	SourceWebSearch            SourceTag = "web_search"            // Free-text web search
	SourceEmergencyRecovery    SourceTag = "emergency_recovery"    // Hail-mary recovery tier
)

// CandidateRole is a character/title pair attributed to the subject.
// Ownership passes linearly down the pipeline; components annotate
// (Franchise, Verification) but never rewrite identity fields.
type CandidateRole struct {
	Character    string              `json:"character,omitempty"`
	Title        string              `json:"title"`
	Medium       Medium              `json:"medium"`
	Year         int                 `json:"year,omitempty"`
	Popularity   float64             `json:"popularity,omitempty"`
	VoteCount    int                 `json:"vote_count,omitempty"`
	Source       SourceTag           `json:"source"`
	Franchise    string              `json:"franchise,omitempty"` // Assigned once, never reassigned within a run
	KnownFor     bool                `json:"known_for,omitempty"` // Matched an encyclopedia known-for title
	Verification *VerificationResult `json:"verification,omitempty"`
}

// HasCharacter reports whether the role names a genuine character rather
// than repeating the work's title.
func (r CandidateRole) HasCharacter() bool {
	if r.Character == "" {
		return false
	}
	return !strings.EqualFold(r.Character, r.Title)
}
