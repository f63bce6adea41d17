package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rolescout/internal/model"
)

func TestBatchProcessor_OrderPreserved(t *testing.T) {
	discover := func(ctx context.Context, subject string) *model.RunResult {
		return &model.RunResult{
			Subject: subject,
			Roles:   []model.CandidateRole{{Title: subject + " - Portrait"}},
			Tier:    model.TierGenericFallback,
		}
	}

	subjects := []string{"Alice Adams", "Bob Briggs", "Cara Chen", "Dev Dutta"}
	processor := NewBatchProcessor(discover, 3)
	results := processor.Process(context.Background(), subjects)

	if len(results) != len(subjects) {
		t.Fatalf("Expected %d results, got %d", len(subjects), len(results))
	}
	for i, result := range results {
		if result == nil {
			t.Fatalf("Missing result at %d", i)
		}
		if result.Subject != subjects[i] {
			t.Errorf("Order not preserved at %d: %q", i, result.Subject)
		}
	}
}

func TestBatchProcessor_ManySubjects(t *testing.T) {
	discover := func(ctx context.Context, subject string) *model.RunResult {
		time.Sleep(2 * time.Millisecond)
		return &model.RunResult{Subject: subject, Tier: model.TierGenericFallback}
	}

	// Far more subjects than a 2-worker pool buffers between Submit and Wait
	subjects := make([]string, 20)
	for i := range subjects {
		subjects[i] = fmt.Sprintf("Subject %02d", i)
	}

	processor := NewBatchProcessor(discover, 2)

	done := make(chan []*model.RunResult)
	go func() { done <- processor.Process(context.Background(), subjects) }()

	select {
	case results := <-done:
		if len(results) != len(subjects) {
			t.Fatalf("Expected %d results, got %d", len(subjects), len(results))
		}
		for i, result := range results {
			if result == nil || result.Subject != subjects[i] {
				t.Errorf("Order not preserved at %d: %+v", i, result)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Process stalled on a subjects list larger than the pool buffers")
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	processor := NewBatchProcessor(func(ctx context.Context, subject string) *model.RunResult {
		t.Error("Discover called for empty batch")
		return nil
	}, 2)

	if results := processor.Process(context.Background(), nil); results != nil {
		t.Errorf("Expected nil results, got %v", results)
	}
}

func TestReadSubjectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subjects.txt")
	content := "# watchlist\nAlice Adams\n\n  Bob Briggs  \n# skip me\nCara Chen\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	subjects, err := ReadSubjectsFile(path)
	if err != nil {
		t.Fatalf("ReadSubjectsFile failed: %v", err)
	}

	want := []string{"Alice Adams", "Bob Briggs", "Cara Chen"}
	if len(subjects) != len(want) {
		t.Fatalf("Expected %v, got %v", want, subjects)
	}
	for i := range want {
		if subjects[i] != want[i] {
			t.Errorf("Expected %q at %d, got %q", want[i], i, subjects[i])
		}
	}
}

func TestReadSubjectsFile_Missing(t *testing.T) {
	if _, err := ReadSubjectsFile("/nonexistent/subjects.txt"); err == nil {
		t.Fatal("Expected error for missing file")
	}
}
