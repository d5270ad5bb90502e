package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/zibox/internal/domain"
)

func renderShell(w io.Writer, doc Document) error {
	var b strings.Builder
	sched := doc.Schedule

	b.WriteString("#!/usr/bin/env bash\n")
	fmt.Fprintf(&b, "# Generated by zibox. Mode %s, workday %s-%s, %d lane(s).\n",
		sched.Mode, sched.WorkdayStart, sched.WorkdayEnd, sched.Lanes)
	b.WriteString("set -euo pipefail\n")

	for _, a := range Chronological(sched) {
		t, ok := doc.Plan.Task(a.TaskName)
		if !ok {
			return fmt.Errorf("render: schedule names unknown task %q", a.TaskName)
		}
		fmt.Fprintf(&b, "\n# %s-%s lane %d\n", a.Start, a.End, a.Lane+1)
		line := fmt.Sprintf("[%s] %s (%s)", a.Start, t.DisplayName(), domain.FormatMinutes(t.DurationMin))
		fmt.Fprintf(&b, "echo %s\n", shellQuote(line))
	}

	for _, d := range sched.Diagnostics {
		fmt.Fprintf(&b, "\n# %s: %s", d.Code, d.Message())
	}
	if len(sched.Diagnostics) > 0 {
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// shellQuote wraps s in single quotes so bash prints it verbatim.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
