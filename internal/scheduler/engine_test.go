package scheduler

import (
	"errors"
	"testing"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_SingleBlockSequential(t *testing.T) {
	p := plan(block("day", task("A", dur(60)), task("B", dur(30), after("A"))))

	s, err := Run(p)
	require.NoError(t, err)

	assert.Equal(t, domain.ModeNaive, s.Mode)
	assert.Equal(t, []contract.Assignment{
		{TaskName: "A", Start: clock("09:00"), End: clock("10:00"), Lane: 0},
		{TaskName: "B", Start: clock("10:00"), End: clock("10:30"), Lane: 0},
	}, s.Assignments)
	assert.Empty(t, s.Diagnostics)
}

func TestRun_TwoLanesNoDependency(t *testing.T) {
	p := plan(block("day", task("A", dur(60)), task("B", dur(30))))
	p.Config.MaxParallel = 2

	s, err := Run(p)
	require.NoError(t, err)

	assert.Equal(t, []contract.Assignment{
		{TaskName: "A", Start: clock("09:00"), End: clock("10:00"), Lane: 0},
		{TaskName: "B", Start: clock("09:00"), End: clock("09:30"), Lane: 1},
	}, s.Assignments)
}

func TestRun_FocusTagsPullDependencyAndSkipUnrelated(t *testing.T) {
	p := plan(block("day",
		task("D", dur(30)),
		task("C", dur(60), tags("deepwork"), after("D")),
		task("E", dur(30)),
	))
	p.Config.FocusTags = []string{"deepwork"}

	s, err := Run(p)
	require.NoError(t, err)

	_, hasD := s.Assignment("D")
	_, hasE := s.Assignment("E")
	assert.True(t, hasD)
	assert.False(t, hasE)

	skipped := s.DiagnosticsOf(contract.DiagnosticSkipped)
	require.Len(t, skipped, 1)
	assert.Equal(t, "E", skipped[0].TaskName)
}

func TestRun_SkippedDiagnosticsComeFirst(t *testing.T) {
	p := plan(block("day",
		task("focus", dur(0), tags("x")),
		task("other"),
	))
	p.Config.FocusTags = []string{"x"}

	s, err := Run(p)
	require.NoError(t, err)

	require.Len(t, s.Diagnostics, 2)
	assert.Equal(t, contract.DiagnosticSkipped, s.Diagnostics[0].Code)
	assert.Equal(t, contract.DiagnosticZeroDuration, s.Diagnostics[1].Code)
}

func TestRun_CycleYieldsNoSchedule(t *testing.T) {
	p := plan(block("day", task("A", after("B")), task("B", after("A"))))

	s, err := Run(p)
	assert.Nil(t, s)
	assert.True(t, errors.Is(err, ErrCyclicDependency))
}

func TestRun_UnknownDependencyNamesTheMissingTask(t *testing.T) {
	p := plan(block("day", task("A", after("nowhere"))))

	_, err := Run(p)

	var unknown *UnknownDependencyError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "nowhere", unknown.Missing)
}

func TestRun_InvalidConfigFailsBeforeGraph(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *domain.PlanConfig)
	}{
		{"end before start", func(c *domain.PlanConfig) { c.WorkdayEnd = clock("08:00") }},
		{"end equals start", func(c *domain.PlanConfig) { c.WorkdayEnd = c.WorkdayStart }},
		{"zero parallel", func(c *domain.PlanConfig) { c.MaxParallel = 0 }},
		{"unknown mode", func(c *domain.PlanConfig) { c.Mode = "chaotic" }},
		{"bad opt level", func(c *domain.PlanConfig) { c.OptimizationLevel = 7 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// The cycle would be reported if validation did not run first.
			p := plan(block("day", task("A", after("A"))))
			tt.mutate(&p.Config)

			_, err := Run(p)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig), "got %v", err)
			assert.False(t, errors.Is(err, ErrCyclicDependency))
		})
	}
}

func TestRun_ModeAliasesAreAccepted(t *testing.T) {
	p := plan(block("day", task("long", dur(60)), task("short", dur(15))))
	p.Config.Mode = "EarlyBird"

	s, err := Run(p)
	require.NoError(t, err)

	assert.Equal(t, domain.ModeEarlyBird, s.Mode)
	assert.Equal(t, "short", s.Assignments[0].TaskName)
}

func TestRun_DeepworkPriorityEndToEnd(t *testing.T) {
	p := plan(
		block("morning",
			task("review", dur(30), tags("admin"), prio(domain.PriorityHigh)),
			task("write", dur(120), tags("deepwork"), prio(domain.PriorityCritical)),
		),
		block("afternoon",
			task("meeting", dur(60), tags("collaboration")),
			task("code", dur(180), tags("deepwork"), prio(domain.PriorityHigh), after("meeting")),
		),
	)
	p.Config.Mode = domain.ModeDeepworkPriority

	s, err := Run(p)
	require.NoError(t, err)

	var order []string
	for _, a := range s.Assignments {
		order = append(order, a.TaskName)
	}
	assert.Equal(t, []string{"write", "review", "meeting", "code"}, order)

	code, _ := s.Assignment("code")
	assert.Equal(t, clock("12:30"), code.Start)
	assert.Equal(t, clock("15:30"), code.End)
}

func TestRun_DoesNotMutatePlan(t *testing.T) {
	p := plan(block("day", task("A", dur(60), tags("x")), task("B", after("A"))))
	p.Config.FocusTags = []string{"x"}
	before := *p
	beforeTasks := append([]domain.Task(nil), p.Blocks[0].Tasks...)

	_, err := Run(p)
	require.NoError(t, err)

	assert.Equal(t, before.Config, p.Config)
	assert.Equal(t, beforeTasks, p.Blocks[0].Tasks)
}
