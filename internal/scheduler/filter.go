package scheduler

import "github.com/alexanderramin/zibox/internal/contract"

// WorkingSet is the subset of a graph's tasks that will be scheduled. It is
// always closed under dependencies.
type WorkingSet struct {
	member []bool
	size   int
}

// FullWorkingSet includes every task of g.
func FullWorkingSet(g *Graph) WorkingSet {
	member := make([]bool, g.Len())
	for i := range member {
		member[i] = true
	}
	return WorkingSet{member: member, size: len(member)}
}

// Contains reports whether the task at declaration index i is included.
func (ws WorkingSet) Contains(i int) bool {
	return i >= 0 && i < len(ws.member) && ws.member[i]
}

// Len returns the number of included tasks.
func (ws WorkingSet) Len() int { return ws.size }

// Names returns the included task names in declaration order.
func (ws WorkingSet) Names(g *Graph) []string {
	out := make([]string, 0, ws.size)
	for i, in := range ws.member {
		if in {
			out = append(out, g.Task(i).Name)
		}
	}
	return out
}

// FilterByTags restricts g to the tasks carrying at least one focus tag plus
// the transitive closure of their dependencies. Every excluded task yields a
// Skipped diagnostic in declaration order. An empty focus list keeps everything.
func FilterByTags(g *Graph, focus []string) (WorkingSet, []contract.Diagnostic) {
	if len(focus) == 0 {
		return FullWorkingSet(g), nil
	}

	member := make([]bool, g.Len())
	var stack []int
	for i := 0; i < g.Len(); i++ {
		if g.Task(i).HasAnyTag(focus) {
			member[i] = true
			stack = append(stack, i)
		}
	}
	for len(stack) > 0 {
		u := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, dep := range g.incoming[u] {
			if !member[dep] {
				member[dep] = true
				stack = append(stack, dep)
			}
		}
	}

	ws := WorkingSet{member: member}
	var skipped Collector
	for i, in := range member {
		if in {
			ws.size++
			continue
		}
		skipped.Skipped(g.Task(i).Name)
	}
	return ws, skipped.Diagnostics()
}
