package contract

import (
	"testing"

	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/stretchr/testify/assert"
)

func clock(s string) domain.Clock { return domain.MustParseClock(s) }

func TestSchedule_Queries(t *testing.T) {
	s := &Schedule{
		WorkdayStart: clock("09:00"),
		Lanes:        2,
		Assignments: []Assignment{
			{TaskName: "a", Start: clock("09:00"), End: clock("09:30"), Lane: 0},
			{TaskName: "b", Start: clock("09:00"), End: clock("10:15"), Lane: 1},
			{TaskName: "c", Start: clock("09:30"), End: clock("10:00"), Lane: 0},
		},
		Diagnostics: []Diagnostic{
			{Code: DiagnosticSkipped, TaskName: "x"},
			{Code: DiagnosticZeroDuration, TaskName: "y"},
			{Code: DiagnosticSkipped, TaskName: "z"},
		},
	}

	b, ok := s.Assignment("b")
	assert.True(t, ok)
	assert.Equal(t, 75, b.DurationMin())
	_, ok = s.Assignment("nope")
	assert.False(t, ok)

	assert.Len(t, s.Lane(0), 2)
	assert.Equal(t, clock("10:15"), s.End())
	assert.Len(t, s.DiagnosticsOf(DiagnosticSkipped), 2)

	assert.Equal(t, clock("08:00"), (&Schedule{WorkdayStart: clock("08:00")}).End())
}

func TestAssignment_Overlaps(t *testing.T) {
	a := Assignment{Start: clock("09:00"), End: clock("10:00")}
	assert.True(t, a.Overlaps(Assignment{Start: clock("09:30"), End: clock("10:30")}))
	assert.False(t, a.Overlaps(Assignment{Start: clock("10:00"), End: clock("10:30")}))
	assert.False(t, a.Overlaps(Assignment{Start: clock("09:30"), End: clock("09:30")}))
}

func TestDiagnostic_Message(t *testing.T) {
	end := clock("17:30")
	tests := []struct {
		d    Diagnostic
		want string
	}{
		{Diagnostic{Code: DiagnosticSkipped, TaskName: "a"}, `task "a" excluded by focus tags`},
		{Diagnostic{Code: DiagnosticOverflow, TaskName: "b", EndTime: &end}, `task "b" ends at 17:30, after the workday end`},
		{Diagnostic{Code: DiagnosticOverflow, TaskName: "b"}, `task "b" ends after the workday end`},
		{Diagnostic{Code: DiagnosticZeroDuration, TaskName: "c"}, `task "c" has no duration`},
		{Diagnostic{Code: DiagnosticDuplicateTag, TaskName: "d", Tag: "x"}, `task "d" repeats tag "x"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.d.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Message())
			assert.Equal(t, tt.want, tt.d.String())
		})
	}
}
