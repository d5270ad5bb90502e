package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
)

const timelineLabelWidth = 13 // "09:00-09:30  "

// RenderIR renders the resolved plan: its configuration followed by a tree
// of blocks and tasks.
func RenderIR(plan *domain.Plan) string {
	var b strings.Builder
	cfg := plan.Config

	b.WriteString(Header("Intermediate representation"))
	b.WriteString("\n")
	focus := "all"
	if len(cfg.FocusTags) > 0 {
		focus = strings.Join(cfg.FocusTags, ", ")
	}
	rows := [][]string{
		{"Mode", string(cfg.Mode)},
		{"Workday", fmt.Sprintf("%s - %s", cfg.WorkdayStart, cfg.WorkdayEnd)},
		{"Timezone", cfg.Timezone},
		{"Max parallel", fmt.Sprintf("%d", cfg.MaxParallel)},
		{"Optimization", fmt.Sprintf("O%d", cfg.OptimizationLevel)},
		{"Focus tags", focus},
		{"Deepwork tag", cfg.EffectiveDeepworkTag()},
		{"Total work", domain.FormatMinutes(plan.TotalDurationMin())},
	}
	b.WriteString(RenderTable([]string{"Setting", "Value"}, rows))
	b.WriteString("\n")

	var items []TreeItem
	for _, block := range plan.Blocks {
		items = append(items, TreeItem{
			Title:  Bold("@" + block.Label),
			Detail: fmt.Sprintf("%d tasks", len(block.Tasks)),
		})
		for i, t := range block.Tasks {
			items = append(items, TreeItem{
				Title:  PriorityStyle(t.Priority).Render(t.DisplayName()) + " " + TagList(t.Tags),
				Level:  1,
				IsLast: i == len(block.Tasks)-1,
				Detail: taskDetail(t),
			})
		}
	}
	b.WriteString(RenderTree(items))
	return b.String()
}

func taskDetail(t domain.Task) string {
	parts := []string{domain.FormatMinutes(t.DurationMin), t.Priority.String()}
	if len(t.DependsOn) > 0 {
		parts = append(parts, "after "+strings.Join(t.DependsOn, ","))
	}
	return strings.Join(parts, " · ")
}

// RenderTimeline draws each lane as rows of proportional bars across the
// schedule span, followed by the lane's load against the workday.
func RenderTimeline(plan *domain.Plan, sched *contract.Schedule, width int) string {
	var b strings.Builder
	b.WriteString(Header("Schedule"))
	b.WriteString("\n")

	if len(sched.Assignments) == 0 {
		b.WriteString(Dim("Nothing scheduled.") + "\n")
		return b.String()
	}

	span := int(max(sched.End(), sched.WorkdayEnd) - sched.WorkdayStart)
	barWidth := max(width-timelineLabelWidth-24, 10)
	workday := int(sched.WorkdayEnd - sched.WorkdayStart)

	for lane := 0; lane < sched.Lanes; lane++ {
		assignments := sched.Lane(lane)
		used := 0
		for _, a := range assignments {
			used += a.DurationMin()
		}
		fmt.Fprintf(&b, "%s  %s\n", Bold(fmt.Sprintf("Lane %d", lane+1)), RenderProgress(float64(used)/float64(workday), 20))

		for _, a := range assignments {
			offset := int(a.Start-sched.WorkdayStart) * barWidth / span
			length := max(a.DurationMin()*barWidth/span, 1)
			if a.DurationMin() == 0 {
				length = 0
			}
			name := a.TaskName
			style := StyleFg
			if t, ok := plan.Task(a.TaskName); ok {
				name = t.DisplayName()
				style = PriorityStyle(t.Priority)
			}
			if a.End > sched.WorkdayEnd {
				style = StyleRed
			}
			bar := strings.Repeat(" ", offset) + style.Render(strings.Repeat(filledBlock, length))
			fmt.Fprintf(&b, "  %s-%s  %s %s\n", a.Start, a.End, bar, name)
		}
	}
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("Workday %s - %s, last task ends %s", sched.WorkdayStart, sched.WorkdayEnd, sched.End())))
	return b.String()
}

// RenderDiagnostics lists diagnostics one per line, colored by code. It
// returns an empty string when there are none.
func RenderDiagnostics(diags []contract.Diagnostic) string {
	if len(diags) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header("Diagnostics"))
	b.WriteString("\n")
	for _, d := range diags {
		style := DiagnosticStyle(d.Code)
		fmt.Fprintf(&b, "%s %s\n", style.Render(fmt.Sprintf("%-13s", d.Code)), d.Message())
	}
	return b.String()
}
