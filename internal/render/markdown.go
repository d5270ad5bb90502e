package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/zibox/internal/domain"
)

func renderMarkdown(w io.Writer, doc Document) error {
	var b strings.Builder
	sched := doc.Schedule

	b.WriteString("# Zibox plan\n\n")
	fmt.Fprintf(&b, "- Mode: %s\n", sched.Mode)
	fmt.Fprintf(&b, "- Workday: %s - %s\n", sched.WorkdayStart, sched.WorkdayEnd)
	fmt.Fprintf(&b, "- Lanes: %d\n", sched.Lanes)
	if len(sched.Assignments) > 0 {
		fmt.Fprintf(&b, "- Ends: %s\n", sched.End())
	}

	for _, block := range doc.Plan.Blocks {
		fmt.Fprintf(&b, "\n## %s\n\n", block.Label)
		if len(block.Tasks) == 0 {
			b.WriteString("_No tasks._\n")
			continue
		}
		for _, t := range block.Tasks {
			b.WriteString(markdownTaskLine(t, doc))
			b.WriteByte('\n')
		}
	}

	if len(sched.Diagnostics) > 0 {
		b.WriteString("\n## Diagnostics\n\n")
		for _, d := range sched.Diagnostics {
			fmt.Fprintf(&b, "- %s: %s\n", d.Code, d.Message())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func markdownTaskLine(t domain.Task, doc Document) string {
	var b strings.Builder
	b.WriteString("- [ ] ")

	a, scheduled := doc.Schedule.Assignment(t.Name)
	if scheduled {
		fmt.Fprintf(&b, "%s - %s ", a.Start, a.End)
	}
	fmt.Fprintf(&b, "**%s** (%s)", t.DisplayName(), domain.FormatMinutes(t.DurationMin))
	for _, tag := range t.Tags {
		fmt.Fprintf(&b, " `#%s`", tag)
	}
	if t.Priority != domain.DefaultPriority {
		fmt.Fprintf(&b, " p:%s", t.Priority)
	}
	if len(t.DependsOn) > 0 {
		fmt.Fprintf(&b, " after: %s", strings.Join(t.DependsOn, ", "))
	}
	switch {
	case !scheduled:
		b.WriteString(" _(not scheduled)_")
	case doc.Schedule.Lanes > 1:
		fmt.Fprintf(&b, " _(lane %d)_", a.Lane+1)
	}
	return b.String()
}
