package knownfor

import (
	"strings"
	"testing"
)

func TestExtract_BestKnownFor(t *testing.T) {
	e := NewExtractor()

	text := "Jane Doe is an American actress. She is best known for playing " +
		"Ellen Ripley in Alien Resurrection and Dana Barrett in Ghostbusters."

	titles := e.Extract(text)
	if len(titles) == 0 {
		t.Fatal("Expected at least one known-for title")
	}

	found := false
	for _, title := range titles {
		if title == "Ellen Ripley in Alien Resurrection" || title == "Dana Barrett in Ghostbusters" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected role phrases among titles, got %v", titles)
	}
}

func TestExtract_KnownForRoleAs(t *testing.T) {
	e := NewExtractor()

	text := "John Smith is known for his role as Fox Mulder on The X-Files."

	titles := e.Extract(text)
	if len(titles) != 1 {
		t.Fatalf("Expected 1 title, got %d: %v", len(titles), titles)
	}
	if titles[0] != "Fox Mulder on The X-Files" {
		t.Errorf("Unexpected title: %q", titles[0])
	}
}

func TestExtract_FranchiseAnchor(t *testing.T) {
	e := NewExtractor()

	text := "He voiced several characters in the Despicable Me franchise."

	titles := e.Extract(text)
	if len(titles) == 0 {
		t.Fatal("Expected franchise title")
	}
	if titles[0] != "Despicable Me" {
		t.Errorf("Expected 'Despicable Me', got %q", titles[0])
	}

	// The capture must not reach back into the sentence before the title
	for _, title := range titles {
		if strings.Contains(title, "voiced") || strings.Contains(title, "characters") {
			t.Errorf("Franchise capture swallowed the preceding clause: %q", title)
		}
	}
}

func TestExtract_EmptyAndAnchorFree(t *testing.T) {
	e := NewExtractor()

	if titles := e.Extract(""); titles != nil {
		t.Errorf("Expected nil for empty text, got %v", titles)
	}

	if titles := e.Extract("Jane Doe was born in 1970 in Ohio."); len(titles) != 0 {
		t.Errorf("Expected no titles for anchor-free text, got %v", titles)
	}
}

func TestExtract_DedupeAndCap(t *testing.T) {
	e := NewExtractor()

	text := "She is best known for Gravity Falls, Steven Universe, Adventure Time, " +
		"Regular Show, Over the Garden Wall, Infinity Train. " +
		"She is also known for playing Gravity Falls."

	titles := e.Extract(text)
	if len(titles) > MaxTitles {
		t.Errorf("Expected at most %d titles, got %d", MaxTitles, len(titles))
	}

	seen := make(map[string]bool)
	for _, title := range titles {
		if seen[title] {
			t.Errorf("Duplicate title %q", title)
		}
		seen[title] = true
	}
}

func TestExtract_RejectsInvalidFragments(t *testing.T) {
	e := NewExtractor()

	// "television" is a medium noun, "in sitcoms" a prepositional fragment
	text := "He is best known for television. He is famous for in sitcoms."

	for _, title := range e.Extract(text) {
		if title == "television" || title == "in sitcoms" {
			t.Errorf("Validity filter should have rejected %q", title)
		}
	}
}

func TestHasVoiceIndicators(t *testing.T) {
	if !HasVoiceIndicators("She is a prolific voice actress in animated series.") {
		t.Error("Expected voice indicators to be detected")
	}

	if HasVoiceIndicators("He is a stage actor working in London theatre.") {
		t.Error("Expected no voice indicators")
	}
}
