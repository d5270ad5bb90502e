package contract

import "github.com/alexanderramin/zibox/internal/domain"

// Assignment places one task on the timeline.
type Assignment struct {
	TaskName string       `json:"task"`
	Start    domain.Clock `json:"start"`
	End      domain.Clock `json:"end"`
	Lane     int          `json:"lane"`
}

// DurationMin is the length of the assignment in minutes.
func (a Assignment) DurationMin() int {
	return int(a.End - a.Start)
}

// Overlaps reports whether two assignments share any instant of time.
// Zero-length assignments never overlap anything.
func (a Assignment) Overlaps(b Assignment) bool {
	return a.Start < b.End && b.Start < a.End
}

// Schedule is the read-only result of one scheduling run. Assignments are in
// allocation order.
type Schedule struct {
	Mode         domain.ScheduleMode
	WorkdayStart domain.Clock
	WorkdayEnd   domain.Clock
	Lanes        int
	Assignments  []Assignment
	Diagnostics  []Diagnostic
}

// Assignment looks up the assignment for a task.
func (s *Schedule) Assignment(name string) (Assignment, bool) {
	for _, a := range s.Assignments {
		if a.TaskName == name {
			return a, true
		}
	}
	return Assignment{}, false
}

// Lane returns the assignments placed on lane, in allocation order.
func (s *Schedule) Lane(lane int) []Assignment {
	var out []Assignment
	for _, a := range s.Assignments {
		if a.Lane == lane {
			out = append(out, a)
		}
	}
	return out
}

// End returns the latest end time across all assignments, or the workday
// start for an empty schedule.
func (s *Schedule) End() domain.Clock {
	end := s.WorkdayStart
	for _, a := range s.Assignments {
		if a.End > end {
			end = a.End
		}
	}
	return end
}

// DiagnosticsOf returns the diagnostics with the given code.
func (s *Schedule) DiagnosticsOf(code DiagnosticCode) []Diagnostic {
	var out []Diagnostic
	for _, d := range s.Diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}
