package scheduler

import (
	"fmt"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
)

// SlotMinutes is the granularity start times are rounded up to.
const SlotMinutes = 15

// Allocate walks tasks in the given order and places each one on the lane
// that frees up first. A task starts at the later of that lane's free time
// and the end of its last dependency, rounded up to a quarter-hour. Tasks that
// end after workdayEnd are still placed and reported as overflows.
func Allocate(order []string, g *Graph, workdayStart, workdayEnd domain.Clock, maxParallel int) *contract.Schedule {
	if maxParallel < 1 {
		maxParallel = 1
	}

	free := make([]domain.Clock, maxParallel)
	for i := range free {
		free[i] = workdayStart
	}
	ends := make(map[int]domain.Clock, len(order))

	sched := &contract.Schedule{
		WorkdayStart: workdayStart,
		WorkdayEnd:   workdayEnd,
		Lanes:        maxParallel,
		Assignments:  make([]contract.Assignment, 0, len(order)),
	}
	var diags Collector

	for _, name := range order {
		idx, ok := g.Index(name)
		if !ok {
			panic(fmt.Sprintf("scheduler: ordered task %q is not in the graph", name))
		}
		task := g.Task(idx)

		earliest := workdayStart
		for _, dep := range g.incoming[idx] {
			if end, done := ends[dep]; done && end > earliest {
				earliest = end
			}
		}

		lane := earliestLane(free)
		start := max(free[lane], earliest).RoundUp(SlotMinutes)
		end := start.Add(task.DurationMin)
		if end < free[lane] {
			panic(fmt.Sprintf("scheduler: lane %d free time moved backwards (%s -> %s)", lane, free[lane], end))
		}
		free[lane] = end
		ends[idx] = end

		sched.Assignments = append(sched.Assignments, contract.Assignment{
			TaskName: name,
			Start:    start,
			End:      end,
			Lane:     lane,
		})

		if task.DurationMin == 0 {
			diags.ZeroDuration(name)
		}
		for _, tag := range repeatedTags(task.Tags) {
			diags.DuplicateTag(name, tag)
		}
		if end > workdayEnd {
			diags.Overflow(name, end)
		}
	}

	sched.Diagnostics = diags.Diagnostics()
	return sched
}

// earliestLane returns the lane with the smallest free time, lowest index on ties.
func earliestLane(free []domain.Clock) int {
	best := 0
	for i := 1; i < len(free); i++ {
		if free[i] < free[best] {
			best = i
		}
	}
	return best
}

// repeatedTags lists each tag that occurs more than once, in the order its
// first repeat is seen.
func repeatedTags(tags []string) []string {
	seen := make(map[string]int, len(tags))
	var out []string
	for _, t := range tags {
		seen[t]++
		if seen[t] == 2 {
			out = append(out, t)
		}
	}
	return out
}
