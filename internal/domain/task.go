package domain

import "strings"

// Task is a single unit of planned work. Name is unique across the whole plan.
type Task struct {
	Name        string
	Params      []string
	DurationMin int
	Tags        []string
	Priority    Priority
	DependsOn   []string

	// Block is the label of the owning block. It is used for grouping and
	// tie-breaking only.
	Block string
}

// HasTag reports whether the task carries tag.
func (t Task) HasTag(tag string) bool {
	for _, tg := range t.Tags {
		if tg == tag {
			return true
		}
	}
	return false
}

// HasAnyTag reports whether the task carries at least one of tags.
func (t Task) HasAnyTag(tags []string) bool {
	for _, tg := range tags {
		if t.HasTag(tg) {
			return true
		}
	}
	return false
}

// DisplayName renders the task with its parameters, e.g. "write(report)".
func (t Task) DisplayName() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	return t.Name + "(" + strings.Join(t.Params, ", ") + ")"
}

// Equal reports whether two tasks are identical in every attribute, with tag
// and dependency order ignored.
func (t Task) Equal(o Task) bool {
	return t.Name == o.Name &&
		t.DurationMin == o.DurationMin &&
		t.Priority == o.Priority &&
		t.Block == o.Block &&
		sameStrings(t.Params, o.Params, true) &&
		sameStrings(t.Tags, o.Tags, false) &&
		sameStrings(t.DependsOn, o.DependsOn, false)
}

func sameStrings(a, b []string, ordered bool) bool {
	if len(a) != len(b) {
		return false
	}
	if ordered {
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}

// Block is a labelled, ordered group of tasks such as "morning".
type Block struct {
	Label string
	Tasks []Task
}
