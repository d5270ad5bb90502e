package scheduler

import (
	"cmp"
	"container/heap"

	"github.com/alexanderramin/zibox/internal/domain"
)

// Candidate is a ready task offered to a Strategy. Seq is its declaration
// index (block order, then in-block order).
type Candidate struct {
	Task domain.Task
	Seq  int
}

// Strategy compares two ready tasks: negative means a is emitted first.
// Strategies only break ties among ready tasks; dependency order is enforced
// by the sort itself.
type Strategy func(a, b Candidate) int

// NaiveStrategy keeps declaration order.
func NaiveStrategy(a, b Candidate) int {
	return cmp.Compare(a.Seq, b.Seq)
}

// EarlyBirdStrategy emits the shortest task first, then declaration order.
func EarlyBirdStrategy(a, b Candidate) int {
	if c := cmp.Compare(a.Task.DurationMin, b.Task.DurationMin); c != 0 {
		return c
	}
	return NaiveStrategy(a, b)
}

// DeepworkStrategy emits higher priority first; within a priority, tasks
// tagged deepworkTag come before the rest; then declaration order.
func DeepworkStrategy(deepworkTag string) Strategy {
	return func(a, b Candidate) int {
		if c := cmp.Compare(b.Task.Priority, a.Task.Priority); c != 0 {
			return c
		}
		ad, bd := a.Task.HasTag(deepworkTag), b.Task.HasTag(deepworkTag)
		if ad != bd {
			if ad {
				return -1
			}
			return 1
		}
		return NaiveStrategy(a, b)
	}
}

// StrategyFor returns the comparator registered for a mode. Unknown modes
// fall back to naive; configuration validation rejects them earlier.
func StrategyFor(mode domain.ScheduleMode, deepworkTag string) Strategy {
	switch mode {
	case domain.ModeEarlyBird:
		return EarlyBirdStrategy
	case domain.ModeDeepworkPriority:
		return DeepworkStrategy(deepworkTag)
	default:
		return NaiveStrategy
	}
}

// Order returns a topological order of the working set using the strategy
// registered for mode.
func Order(ws WorkingSet, g *Graph, mode domain.ScheduleMode, deepworkTag string) []string {
	return OrderWith(ws, g, StrategyFor(mode, deepworkTag))
}

// OrderWith runs Kahn's algorithm over the working set. All tasks whose
// in-set dependencies are already emitted form the ready set; the strategy
// picks which ready task is emitted next.
func OrderWith(ws WorkingSet, g *Graph, strategy Strategy) []string {
	indeg := make([]int, g.Len())
	for v := 0; v < g.Len(); v++ {
		if !ws.Contains(v) {
			continue
		}
		for _, u := range g.incoming[v] {
			if ws.Contains(u) {
				indeg[v]++
			}
		}
	}

	ready := &readyQueue{g: g, less: strategy}
	for v := 0; v < g.Len(); v++ {
		if ws.Contains(v) && indeg[v] == 0 {
			ready.items = append(ready.items, v)
		}
	}
	heap.Init(ready)

	out := make([]string, 0, ws.Len())
	for ready.Len() > 0 {
		u := heap.Pop(ready).(int)
		out = append(out, g.Task(u).Name)
		for _, v := range g.outgoing[u] {
			if !ws.Contains(v) {
				continue
			}
			indeg[v]--
			if indeg[v] == 0 {
				heap.Push(ready, v)
			}
		}
	}
	return out
}

// readyQueue is a min-heap of declaration indices ordered by a Strategy, with
// declaration order as the final tie-break so the order is total.
type readyQueue struct {
	g     *Graph
	less  Strategy
	items []int
}

func (q *readyQueue) Len() int { return len(q.items) }

func (q *readyQueue) Less(i, j int) bool {
	a := Candidate{Task: q.g.Task(q.items[i]), Seq: q.items[i]}
	b := Candidate{Task: q.g.Task(q.items[j]), Seq: q.items[j]}
	if c := q.less(a, b); c != 0 {
		return c < 0
	}
	return a.Seq < b.Seq
}

func (q *readyQueue) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }
func (q *readyQueue) Push(x any)   { q.items = append(q.items, x.(int)) }
func (q *readyQueue) Pop() any {
	old := q.items
	n := len(old)
	x := old[n-1]
	q.items = old[:n-1]
	return x
}
