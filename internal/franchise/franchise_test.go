package franchise

import (
	"testing"

	"rolescout/internal/model"
)

func TestKey_KnownFranchise(t *testing.T) {
	cases := map[model.CandidateRole]string{
		{Title: "The Avengers"}:                        "Marvel Cinematic Universe",
		{Title: "Batman Begins"}:                       "Batman",
		{Title: "Some Anthology", Character: "Batman"}: "Batman",
		{Title: "Harry Potter and the Goblet of Fire"}: "Harry Potter",
	}
	for role, want := range cases {
		if got := Key(role); got != want {
			t.Errorf("Key(%q/%q) = %q, want %q", role.Title, role.Character, got, want)
		}
	}
}

func TestKey_SequelBase(t *testing.T) {
	a := Key(model.CandidateRole{Title: "Night Patrol II"})
	b := Key(model.CandidateRole{Title: "Night Patrol: Dawn Shift"})
	c := Key(model.CandidateRole{Title: "Night Patrol 3"})
	if a != b || b != c {
		t.Errorf("Expected shared base key, got %q, %q, %q", a, b, c)
	}
}

func TestDeduplicate_FranchiseCap(t *testing.T) {
	roles := []model.CandidateRole{
		{Title: "Caped Crusader", Character: "Commissioner Lane", VoteCount: 900},
		{Title: "Caped Crusader II", Character: "Commissioner Lane", VoteCount: 800},
		{Title: "Caped Crusader III", Character: "Commissioner Lane", VoteCount: 700},
		{Title: "Caped Crusader: Dark Dawn", Character: "Commissioner Lane", VoteCount: 600},
		{Title: "Caped Crusader 2", Character: "Commissioner Lane", VoteCount: 500},
		{Title: "Caped Crusader: Endgame", Character: "Commissioner Lane", VoteCount: 400},
	}

	out := Deduplicate(roles)
	if len(out) > FranchiseSlots {
		t.Fatalf("Expected at most %d franchise roles, got %d", FranchiseSlots, len(out))
	}
	for _, role := range out {
		if role.Franchise == "" {
			t.Errorf("Expected franchise name assigned, got %+v", role)
		}
	}
}

func TestDeduplicate_SmallFranchiseGetsOneSlot(t *testing.T) {
	roles := []model.CandidateRole{
		{Title: "Night Patrol", Character: "Sergeant Mills", VoteCount: 900},
		{Title: "Night Patrol 2", Character: "Sergeant Mills", VoteCount: 800},
		{Title: "Night Patrol 3", Character: "Sergeant Mills", VoteCount: 700},
	}

	out := Deduplicate(roles)
	if len(out) != SmallFranchiseSlots {
		t.Fatalf("Expected %d role from a 3-member franchise, got %d", SmallFranchiseSlots, len(out))
	}
}

func TestDeduplicate_PrefersGenuineCharacters(t *testing.T) {
	roles := []model.CandidateRole{
		{Title: "Caped Crusader", Character: "Caped Crusader", VoteCount: 9000},
		{Title: "Caped Crusader II", Character: "Commissioner Lane", VoteCount: 100},
		{Title: "Caped Crusader III", Character: "Caped Crusader III", VoteCount: 8000},
	}

	out := Deduplicate(roles)
	if len(out) != 1 {
		t.Fatalf("Expected 1 role, got %d", len(out))
	}
	if out[0].Character != "Commissioner Lane" {
		t.Errorf("Expected the genuine character preferred, got %+v", out[0])
	}
}

func TestDeduplicate_StandalonePassThrough(t *testing.T) {
	roles := []model.CandidateRole{
		{Title: "The Matrix", Character: "Trinity", VoteCount: 9000},
		{Title: "Sense8", Character: "Nomi", VoteCount: 3000},
	}

	out := Deduplicate(roles)
	if len(out) != 2 {
		t.Fatalf("Expected both standalone roles, got %d", len(out))
	}
	for _, role := range out {
		if role.Franchise != "" {
			t.Errorf("Standalone role must not get a franchise name: %+v", role)
		}
	}
}

func TestDeduplicate_OrderingAndTruncation(t *testing.T) {
	roles := []model.CandidateRole{
		{Title: "Big Hit", VoteCount: 9000},
		{Title: "Known Gem", VoteCount: 10, KnownFor: true},
		{Title: "Mid Movie", VoteCount: 5000},
		{Title: "Small Part", VoteCount: 100},
		{Title: "Other Film", VoteCount: 4000},
		{Title: "Sixth Credit", VoteCount: 50},
	}

	out := Deduplicate(roles)
	if len(out) != MaxRoles {
		t.Fatalf("Expected truncation to %d, got %d", MaxRoles, len(out))
	}
	if !out[0].KnownFor {
		t.Errorf("Expected known-for role first, got %+v", out[0])
	}
	if out[1].Title != "Big Hit" {
		t.Errorf("Expected vote-count ordering after known-for, got %q", out[1].Title)
	}
}

func TestDeduplicate_Empty(t *testing.T) {
	if out := Deduplicate(nil); out != nil {
		t.Errorf("Expected nil for empty input, got %v", out)
	}
}
