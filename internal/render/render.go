// Package render projects a computed schedule into the supported output
// formats. Renderers are pure: they read the plan and schedule and never
// change them.
package render

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
)

// Document is everything a renderer needs. Day anchors clock times for
// formats that carry absolute timestamps.
type Document struct {
	Plan     *domain.Plan
	Schedule *contract.Schedule
	Day      time.Time
}

type renderFunc func(w io.Writer, doc Document) error

var renderers = map[domain.OutputFormat]renderFunc{
	domain.FormatMarkdown: renderMarkdown,
	domain.FormatJSON:     renderJSON,
	domain.FormatShell:    renderShell,
	domain.FormatCalendar: renderCalendar,
}

// Render writes the schedule in the given format.
func Render(w io.Writer, format domain.OutputFormat, plan *domain.Plan, sched *contract.Schedule, day time.Time) error {
	fn, ok := renderers[format]
	if !ok {
		return fmt.Errorf("render: unsupported output format %q", format)
	}
	return fn(w, Document{Plan: plan, Schedule: sched, Day: day})
}

// Chronological returns the assignments ordered by start time, then lane.
// The schedule is not modified.
func Chronological(sched *contract.Schedule) []contract.Assignment {
	out := make([]contract.Assignment, len(sched.Assignments))
	copy(out, sched.Assignments)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].Lane < out[j].Lane
	})
	return out
}
