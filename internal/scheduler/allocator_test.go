package scheduler

import (
	"testing"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocateAll(t *testing.T, p *domain.Plan, maxParallel int) *contract.Schedule {
	t.Helper()
	g := mustGraph(t, p)
	order := Order(FullWorkingSet(g), g, domain.ModeNaive, "")
	return Allocate(order, g, clock("09:00"), clock("17:00"), maxParallel)
}

func TestAllocate_SequentialWithDependency(t *testing.T) {
	s := allocateAll(t, plan(block("b", task("A", dur(60)), task("B", dur(30), after("A")))), 1)

	assert.Equal(t, []contract.Assignment{
		{TaskName: "A", Start: clock("09:00"), End: clock("10:00"), Lane: 0},
		{TaskName: "B", Start: clock("10:00"), End: clock("10:30"), Lane: 0},
	}, s.Assignments)
	assert.Empty(t, s.Diagnostics)
	assert.Equal(t, 1, s.Lanes)
}

func TestAllocate_IndependentTasksShareStartAcrossLanes(t *testing.T) {
	s := allocateAll(t, plan(block("b", task("A", dur(60)), task("B", dur(30)))), 2)

	a, _ := s.Assignment("A")
	b, _ := s.Assignment("B")
	assert.Equal(t, clock("09:00"), a.Start)
	assert.Equal(t, clock("09:00"), b.Start)
	assert.Equal(t, 0, a.Lane)
	assert.Equal(t, 1, b.Lane)
}

func TestAllocate_DependencyDelaysStartOnFreeLane(t *testing.T) {
	s := allocateAll(t, plan(block("b",
		task("A", dur(60)),
		task("B", dur(30), after("A")),
	)), 2)

	b, ok := s.Assignment("B")
	require.True(t, ok)
	assert.Equal(t, 1, b.Lane, "lane 1 is free first")
	assert.Equal(t, clock("10:00"), b.Start, "but B still waits for A")
}

func TestAllocate_PicksEarliestFreeLane(t *testing.T) {
	s := allocateAll(t, plan(block("b",
		task("long", dur(120)),
		task("short", dur(30)),
		task("next", dur(30)),
	)), 2)

	next, _ := s.Assignment("next")
	assert.Equal(t, 1, next.Lane)
	assert.Equal(t, clock("09:30"), next.Start)
}

func TestAllocate_StartsRoundUpToQuarterHour(t *testing.T) {
	s := allocateAll(t, plan(block("b", task("A", dur(20)), task("B", dur(20)))), 1)

	b, _ := s.Assignment("B")
	assert.Equal(t, clock("09:30"), b.Start)
	assert.Equal(t, clock("09:50"), b.End, "duration is not rounded")
}

func TestAllocate_UnalignedWorkdayStartRoundsUp(t *testing.T) {
	g := mustGraph(t, plan(block("b", task("A", dur(30)))))
	s := Allocate([]string{"A"}, g, clock("09:10"), clock("17:00"), 1)

	assert.Equal(t, clock("09:15"), s.Assignments[0].Start)
}

func TestAllocate_OverflowIsScheduledAndReported(t *testing.T) {
	s := allocateAll(t, plan(block("b",
		task("day", dur(450)),
		task("late", dur(60)),
	)), 1)

	late, _ := s.Assignment("late")
	assert.Equal(t, clock("16:30"), late.Start)
	assert.Equal(t, clock("17:30"), late.End)

	require.Len(t, s.Diagnostics, 1)
	d := s.Diagnostics[0]
	assert.Equal(t, contract.DiagnosticOverflow, d.Code)
	assert.Equal(t, "late", d.TaskName)
	require.NotNil(t, d.EndTime)
	assert.Equal(t, clock("17:30"), *d.EndTime)
}

func TestAllocate_EndingExactlyAtWorkdayEndIsNotOverflow(t *testing.T) {
	s := allocateAll(t, plan(block("b", task("full", dur(480)))), 1)
	assert.Empty(t, s.Diagnostics)
}

func TestAllocate_ZeroDurationAndDuplicateTags(t *testing.T) {
	s := allocateAll(t, plan(block("b",
		task("ping", dur(0)),
		task("tagged", dur(15), tags("a", "b", "a", "b", "a")),
	)), 1)

	require.Len(t, s.Diagnostics, 3)
	assert.Equal(t, contract.DiagnosticZeroDuration, s.Diagnostics[0].Code)
	assert.Equal(t, "ping", s.Diagnostics[0].TaskName)
	assert.Equal(t, contract.Diagnostic{Code: contract.DiagnosticDuplicateTag, TaskName: "tagged", Tag: "a"}, s.Diagnostics[1])
	assert.Equal(t, "b", s.Diagnostics[2].Tag)

	ping, _ := s.Assignment("ping")
	assert.Equal(t, ping.Start, ping.End)
}

func TestAllocate_InvalidParallelismClampsToOneLane(t *testing.T) {
	s := allocateAll(t, plan(block("b", task("A"), task("B"))), 0)
	assert.Equal(t, 1, s.Lanes)
	for _, a := range s.Assignments {
		assert.Equal(t, 0, a.Lane)
	}
}

func TestAllocate_UnknownTaskPanics(t *testing.T) {
	g := mustGraph(t, plan(block("b", task("A"))))
	assert.Panics(t, func() {
		Allocate([]string{"nope"}, g, clock("09:00"), clock("17:00"), 1)
	})
}

func TestEarliestLane_LowestIndexOnTies(t *testing.T) {
	assert.Equal(t, 0, earliestLane([]domain.Clock{5, 5, 5}))
	assert.Equal(t, 2, earliestLane([]domain.Clock{9, 7, 3, 3}))
}
