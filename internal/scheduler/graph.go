package scheduler

import (
	"sort"

	"github.com/alexanderramin/zibox/internal/domain"
)

// Edge points from a dependency to its dependent: "Y after:X" yields X -> Y.
type Edge struct {
	From string
	To   string
}

// Graph is the immutable dependency graph of one plan. Nodes are interned as
// indices in declaration order; names resolve to indices once, at build time.
type Graph struct {
	tasks    []domain.Task
	index    map[string]int
	outgoing [][]int // dependents, ascending
	incoming [][]int // dependencies, ascending
	edges    int
}

// BuildGraph resolves every after: reference in the plan. It fails on
// duplicate task names, unknown dependencies and cycles, in that order.
func BuildGraph(plan *domain.Plan) (*Graph, error) {
	tasks := plan.Tasks()
	index := make(map[string]int, len(tasks))
	for i, t := range tasks {
		if j, exists := index[t.Name]; exists {
			return nil, &DuplicateTaskError{Name: t.Name, Blocks: []string{tasks[j].Block, t.Block}}
		}
		index[t.Name] = i
	}

	g := &Graph{
		tasks:    tasks,
		index:    index,
		outgoing: make([][]int, len(tasks)),
		incoming: make([][]int, len(tasks)),
	}

	for to, t := range tasks {
		seen := make(map[int]bool, len(t.DependsOn))
		for _, dep := range t.DependsOn {
			from, ok := index[dep]
			if !ok {
				return nil, &UnknownDependencyError{Task: t.Name, Missing: dep}
			}
			if seen[from] {
				continue
			}
			seen[from] = true
			g.outgoing[from] = append(g.outgoing[from], to)
			g.incoming[to] = append(g.incoming[to], from)
			g.edges++
		}
	}
	for i := range tasks {
		sort.Ints(g.outgoing[i])
		sort.Ints(g.incoming[i])
	}

	if cycle := g.findCycle(); cycle != nil {
		return nil, &CyclicDependencyError{Cycle: cycle}
	}
	return g, nil
}

// Len returns the number of tasks.
func (g *Graph) Len() int { return len(g.tasks) }

// EdgeCount returns the number of distinct dependency edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Task returns the task at a declaration index.
func (g *Graph) Task(i int) domain.Task { return g.tasks[i] }

// Index resolves a task name to its declaration index.
func (g *Graph) Index(name string) (int, bool) {
	i, ok := g.index[name]
	return i, ok
}

// Dependencies returns the names the task waits on, in declaration order.
func (g *Graph) Dependencies(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.names(g.incoming[i])
}

// Dependents returns the names that wait on the task, in declaration order.
func (g *Graph) Dependents(name string) []string {
	i, ok := g.index[name]
	if !ok {
		return nil
	}
	return g.names(g.outgoing[i])
}

// Edges returns every edge ordered by (From, To) declaration index.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for from, tos := range g.outgoing {
		for _, to := range tos {
			out = append(out, Edge{From: g.tasks[from].Name, To: g.tasks[to].Name})
		}
	}
	return out
}

func (g *Graph) names(idx []int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = g.tasks[i].Name
	}
	return out
}

// findCycle runs a depth-first search in declaration order and returns the
// first cycle closed by a back-edge, rotated to start at its smallest name.
// It returns nil for an acyclic graph.
func (g *Graph) findCycle() []string {
	const (
		white = iota
		gray
		black
	)
	color := make([]int, len(g.tasks))
	var stack []int
	var cycle []int

	var visit func(u int) bool
	visit = func(u int) bool {
		color[u] = gray
		stack = append(stack, u)
		for _, v := range g.outgoing[u] {
			switch color[v] {
			case white:
				if visit(v) {
					return true
				}
			case gray:
				for k := len(stack) - 1; k >= 0; k-- {
					if stack[k] == v {
						cycle = append([]int(nil), stack[k:]...)
						break
					}
				}
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[u] = black
		return false
	}

	for u := range g.tasks {
		if color[u] == white && visit(u) {
			break
		}
	}
	if cycle == nil {
		return nil
	}

	names := g.names(cycle)
	start := 0
	for k, n := range names {
		if n < names[start] {
			start = k
		}
	}
	return append(names[start:], names[:start]...)
}
