package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"rolescout/internal/model"
)

// DiscoverFunc runs role discovery for one subject
type DiscoverFunc func(ctx context.Context, subject string) *model.RunResult

// BatchProcessor runs discovery over many subjects with a bounded pool
type BatchProcessor struct {
	discover DiscoverFunc
	workers  int
}

// NewBatchProcessor creates a batch processor
func NewBatchProcessor(discover DiscoverFunc, workers int) *BatchProcessor {
	if workers <= 0 {
		workers = 1
	}
	return &BatchProcessor{
		discover: discover,
		workers:  workers,
	}
}

// Process runs discovery for every subject and returns results in input
// order. Discovery never errors, so neither does Process.
func (b *BatchProcessor) Process(ctx context.Context, subjects []string) []*model.RunResult {
	if len(subjects) == 0 {
		return nil
	}

	pool := NewPool(b.workers)
	pool.Start()

	for i, subject := range subjects {
		pool.Submit(&discoverJob{
			ctx:      ctx,
			discover: b.discover,
			index:    i,
			subject:  subject,
		})
	}

	out := make([]*model.RunResult, len(subjects))
	for _, result := range pool.Wait() {
		dr := result.(*discoverResult)
		out[dr.index] = dr.result
	}
	return out
}

// ProcessFile reads a subjects file (one display name per line, # for
// comments) and processes every entry.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*model.RunResult, error) {
	subjects, err := ReadSubjectsFile(path)
	if err != nil {
		return nil, err
	}
	return b.Process(ctx, subjects), nil
}

// ReadSubjectsFile parses a subjects list: one name per line, blank
// lines and lines starting with # skipped.
func ReadSubjectsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open subjects file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var subjects []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		subjects = append(subjects, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read subjects file: %w", err)
	}
	return subjects, nil
}

type discoverJob struct {
	ctx      context.Context
	discover DiscoverFunc
	index    int
	subject  string
}

func (j *discoverJob) Execute(_ context.Context) Result {
	return &discoverResult{
		index:  j.index,
		result: j.discover(j.ctx, j.subject),
	}
}

type discoverResult struct {
	index  int
	result *model.RunResult
}

func (r *discoverResult) GetError() error { return nil }
