// Package optimizer implements the front-end optimization levels applied to a
// plan before it is scheduled. It reorders and deduplicates tasks inside their
// blocks only; the scheduler's dependency handling is unaffected.
package optimizer

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/zibox/internal/domain"
)

// Optimize returns a copy of plan transformed according to level:
//
//	0: unchanged
//	1: tasks sorted inside each block by priority (highest first), then duration (shortest first)
//	2: level 1, then exact duplicate tasks removed (first occurrence kept)
//
// The input plan is never modified.
func Optimize(plan *domain.Plan, level int) (*domain.Plan, error) {
	if level < 0 || level > domain.MaxOptLevel {
		return nil, fmt.Errorf("%w: optimization level %d (expected 0-%d)", domain.ErrInvalidConfig, level, domain.MaxOptLevel)
	}

	out := &domain.Plan{Config: plan.Config, Blocks: make([]domain.Block, len(plan.Blocks))}
	for i, b := range plan.Blocks {
		tasks := make([]domain.Task, len(b.Tasks))
		copy(tasks, b.Tasks)
		out.Blocks[i] = domain.Block{Label: b.Label, Tasks: tasks}
	}
	if level == 0 {
		return out, nil
	}

	for i := range out.Blocks {
		sortByPriority(out.Blocks[i].Tasks)
	}
	if level >= 2 {
		dedupe(out)
	}
	return out, nil
}

func sortByPriority(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.DurationMin < b.DurationMin
	})
}

// dedupe drops tasks identical to an earlier task anywhere in the plan.
// Tasks that share a name but differ in any attribute are kept so the
// scheduler can report them as duplicates.
func dedupe(plan *domain.Plan) {
	kept := make(map[string][]domain.Task)
	for i, b := range plan.Blocks {
		filtered := b.Tasks[:0]
		for _, t := range b.Tasks {
			if containsEqual(kept[t.Name], t) {
				continue
			}
			kept[t.Name] = append(kept[t.Name], t)
			filtered = append(filtered, t)
		}
		plan.Blocks[i].Tasks = filtered
	}
}

func containsEqual(tasks []domain.Task, t domain.Task) bool {
	for _, k := range tasks {
		if k.Equal(t) {
			return true
		}
	}
	return false
}
