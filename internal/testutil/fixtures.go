package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/zibox/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithDuration(min int) TaskOption {
	return func(t *domain.Task) { t.DurationMin = min }
}

func WithAfter(names ...string) TaskOption {
	return func(t *domain.Task) { t.DependsOn = append(t.DependsOn, names...) }
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) { t.Tags = append(t.Tags, tags...) }
}

func WithPriority(p domain.Priority) TaskOption {
	return func(t *domain.Task) { t.Priority = p }
}

func WithParams(params ...string) TaskOption {
	return func(t *domain.Task) { t.Params = append(t.Params, params...) }
}

// NewTestTask returns a 30 minute task at the default priority.
func NewTestTask(name string, opts ...TaskOption) domain.Task {
	t := domain.Task{Name: name, Priority: domain.DefaultPriority, DurationMin: 30}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestBlock stamps label onto every task.
func NewTestBlock(label string, tasks ...domain.Task) domain.Block {
	for i := range tasks {
		tasks[i].Block = label
	}
	return domain.Block{Label: label, Tasks: tasks}
}

func NewTestPlan(blocks ...domain.Block) *domain.Plan {
	return &domain.Plan{Blocks: blocks, Config: domain.DefaultPlanConfig()}
}

// WritePlanFile writes body to dir/name and returns the path.
func WritePlanFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}
	return path
}
