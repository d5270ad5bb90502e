package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func clock(s string) domain.Clock { return domain.MustParseClock(s) }

func fixture() (*domain.Plan, *contract.Schedule) {
	cfg := domain.DefaultPlanConfig()
	cfg.Timezone = "UTC"
	plan := &domain.Plan{
		Config: cfg,
		Blocks: []domain.Block{
			{Label: "morning", Tasks: []domain.Task{
				{Name: "review", Params: []string{"inbox"}, DurationMin: 30, Tags: []string{"admin"}, Priority: domain.PriorityHigh, Block: "morning"},
				{Name: "write", DurationMin: 120, Tags: []string{"deepwork"}, Priority: domain.PriorityMedium, DependsOn: []string{"review"}, Block: "morning"},
			}},
			{Label: "evening", Tasks: []domain.Task{
				{Name: "read", Priority: domain.PriorityLow, Block: "evening"},
			}},
		},
	}
	sched := &contract.Schedule{
		Mode:         domain.ModeNaive,
		WorkdayStart: clock("09:00"),
		WorkdayEnd:   clock("17:00"),
		Lanes:        1,
		Assignments: []contract.Assignment{
			{TaskName: "review", Start: clock("09:00"), End: clock("09:30")},
			{TaskName: "write", Start: clock("09:30"), End: clock("11:30")},
		},
		Diagnostics: []contract.Diagnostic{{Code: contract.DiagnosticSkipped, TaskName: "read"}},
	}
	return plan, sched
}

func renderString(t *testing.T, format domain.OutputFormat, plan *domain.Plan, sched *contract.Schedule) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, format, plan, sched, testDay))
	return buf.String()
}

func TestRender_UnsupportedFormat(t *testing.T) {
	plan, sched := fixture()
	err := Render(&bytes.Buffer{}, domain.OutputFormat("pdf"), plan, sched, testDay)
	assert.ErrorContains(t, err, `unsupported output format "pdf"`)
}

func TestChronological_OrdersByStartThenLane(t *testing.T) {
	sched := &contract.Schedule{Assignments: []contract.Assignment{
		{TaskName: "c", Start: clock("10:00"), Lane: 0},
		{TaskName: "b", Start: clock("09:00"), Lane: 1},
		{TaskName: "a", Start: clock("09:00"), Lane: 0},
	}}
	got := Chronological(sched)
	names := []string{got[0].TaskName, got[1].TaskName, got[2].TaskName}
	assert.Equal(t, []string{"a", "b", "c"}, names)
	assert.Equal(t, "c", sched.Assignments[0].TaskName, "input is not reordered")
}

func TestRenderMarkdown(t *testing.T) {
	plan, sched := fixture()
	out := renderString(t, domain.FormatMarkdown, plan, sched)

	assert.True(t, strings.HasPrefix(out, "# Zibox plan\n"))
	for _, want := range []string{
		"- Mode: naive\n",
		"- Workday: 09:00 - 17:00\n",
		"- Ends: 11:30\n",
		"## morning\n",
		"- [ ] 09:00 - 09:30 **review(inbox)** (30m) `#admin` p:high\n",
		"- [ ] 09:30 - 11:30 **write** (2h) `#deepwork` after: review\n",
		"## evening\n",
		"- [ ] **read** (0m) p:low _(not scheduled)_\n",
		"## Diagnostics\n",
		`- SKIPPED: task "read" excluded by focus tags`,
	} {
		assert.Contains(t, out, want)
	}
	assert.Less(t, strings.Index(out, "## morning"), strings.Index(out, "## evening"))
}

func TestRenderMarkdown_ShowsLanesWhenParallel(t *testing.T) {
	plan, sched := fixture()
	sched.Lanes = 2
	sched.Assignments[1].Lane = 1
	out := renderString(t, domain.FormatMarkdown, plan, sched)
	assert.Contains(t, out, "**write** (2h) `#deepwork` after: review _(lane 2)_")
}

func TestRenderJSON(t *testing.T) {
	plan, sched := fixture()
	out := renderString(t, domain.FormatJSON, plan, sched)

	var doc struct {
		Mode         string `json:"mode"`
		WorkdayStart string `json:"workday_start"`
		Lanes        int    `json:"lanes"`
		Blocks       []struct {
			Label string `json:"label"`
			Tasks []struct {
				Name     string   `json:"name"`
				Priority string   `json:"priority"`
				After    []string `json:"after"`
				Start    *string  `json:"start"`
				End      *string  `json:"end"`
				Lane     *int     `json:"lane"`
			} `json:"tasks"`
		} `json:"blocks"`
		Diagnostics []struct {
			Code    string `json:"code"`
			Task    string `json:"task"`
			Message string `json:"message"`
		} `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "naive", doc.Mode)
	assert.Equal(t, "09:00", doc.WorkdayStart)
	require.Len(t, doc.Blocks, 2)

	write := doc.Blocks[0].Tasks[1]
	assert.Equal(t, "write", write.Name)
	assert.Equal(t, "medium", write.Priority)
	assert.Equal(t, []string{"review"}, write.After)
	require.NotNil(t, write.Start)
	assert.Equal(t, "09:30", *write.Start)
	assert.Equal(t, "11:30", *write.End)
	assert.Equal(t, 0, *write.Lane)

	read := doc.Blocks[1].Tasks[0]
	assert.Nil(t, read.Start, "unscheduled tasks carry no times")
	assert.Nil(t, read.Lane)

	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "SKIPPED", doc.Diagnostics[0].Code)
	assert.Equal(t, "read", doc.Diagnostics[0].Task)
	assert.Contains(t, doc.Diagnostics[0].Message, "excluded by focus tags")
}

func TestRenderJSON_EmptyDiagnosticsIsArray(t *testing.T) {
	plan, sched := fixture()
	sched.Diagnostics = nil
	out := renderString(t, domain.FormatJSON, plan, sched)
	assert.Contains(t, out, `"diagnostics": []`)
}

func TestRenderShell(t *testing.T) {
	plan, sched := fixture()
	out := renderString(t, domain.FormatShell, plan, sched)

	assert.True(t, strings.HasPrefix(out, "#!/usr/bin/env bash\n"))
	assert.Contains(t, out, "set -euo pipefail\n")
	assert.Contains(t, out, "# 09:00-09:30 lane 1\necho '[09:00] review(inbox) (30m)'\n")
	assert.Contains(t, out, "echo '[09:30] write (2h)'\n")
	assert.NotContains(t, out, "] read")
	assert.Contains(t, out, `# SKIPPED: task "read" excluded by focus tags`)
	assert.NotContains(t, out, "sleep")
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'plain'`, shellQuote("plain"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
	assert.Equal(t, `'$HOME'`, shellQuote("$HOME"))
}

func TestRenderCalendar(t *testing.T) {
	plan, sched := fixture()
	out := renderString(t, domain.FormatCalendar, plan, sched)

	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\nVERSION:2.0\r\n"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", ""), "\n", "every line ends with CRLF")

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "DTSTART:20261015T090000Z\r\nDTEND:20261015T093000Z\r\n")
	assert.Contains(t, out, "DTSTART:20261015T093000Z\r\nDTEND:20261015T113000Z\r\n")
	assert.Contains(t, out, "SUMMARY:review(inbox)\r\n")
	assert.Contains(t, out, "CATEGORIES:admin\r\n")
	assert.Contains(t, out, "PRIORITY:3\r\n")
	assert.Contains(t, out, `DESCRIPTION:Block morning\, lane 1\, 30m`)
	assert.Contains(t, out, "UID:"+EventUID(testDay, "review").String()+"@zibox\r\n")
	assert.NotContains(t, out, "SUMMARY:read")
}

func TestRenderCalendar_Deterministic(t *testing.T) {
	plan, sched := fixture()
	first := renderString(t, domain.FormatCalendar, plan, sched)
	second := renderString(t, domain.FormatCalendar, plan, sched)
	assert.Equal(t, first, second)
}

func TestEventUID(t *testing.T) {
	a := EventUID(testDay, "review")
	assert.Equal(t, a, EventUID(testDay, "review"))
	assert.NotEqual(t, a, EventUID(testDay, "write"))
	assert.NotEqual(t, a, EventUID(testDay.AddDate(0, 0, 1), "review"))
	assert.Equal(t, 5, int(a.Version()))
}

func TestRenderCalendar_BadTimezone(t *testing.T) {
	plan, sched := fixture()
	plan.Config.Timezone = "Nowhere/Special"
	err := Render(&bytes.Buffer{}, domain.FormatCalendar, plan, sched, testDay)
	assert.ErrorContains(t, err, `timezone "Nowhere/Special"`)
}

func TestICSEscape(t *testing.T) {
	assert.Equal(t, `a\, b\; c\\d\ne`, icsEscape("a, b; c\\d\ne"))
}

func TestRenderCalendar_DSTDayKeepsWallClock(t *testing.T) {
	plan, sched := fixture()
	plan.Config.Timezone = "America/New_York"
	springForward := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, domain.FormatCalendar, plan, sched, springForward))
	out := buf.String()

	// 09:00 EDT is 13:00 UTC; midnight that day is still EST.
	assert.Contains(t, out, "DTSTART:20260308T130000Z\r\nDTEND:20260308T133000Z\r\n")
	assert.Contains(t, out, "DTSTAMP:20260308T050000Z\r\n")
}

func TestRenderCalendar_FoldsLongLines(t *testing.T) {
	plan, sched := fixture()
	plan.Blocks[0].Tasks[0].Params = []string{strings.Repeat("quarterly-report-", 8)}
	out := renderString(t, domain.FormatCalendar, plan, sched)

	for _, line := range strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 75, line)
	}
	assert.Contains(t, out, "\r\n ")
	unfolded := strings.ReplaceAll(out, "\r\n ", "")
	assert.Contains(t, unfolded, "SUMMARY:review("+strings.Repeat("quarterly-report-", 8)+")\r\n")
}

func TestICSFold(t *testing.T) {
	assert.Equal(t, "short", icsFold("short"))

	exact := strings.Repeat("a", 75)
	assert.Equal(t, exact, icsFold(exact))

	folded := icsFold(strings.Repeat("a", 75) + strings.Repeat("b", 80))
	parts := strings.Split(folded, "\r\n")
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 75)
	assert.Equal(t, " "+strings.Repeat("b", 74), parts[1])
	assert.Equal(t, " "+strings.Repeat("b", 6), parts[2])

	// A two-byte rune straddling the limit moves whole to the next line.
	multi := icsFold(strings.Repeat("a", 74) + "é")
	assert.Equal(t, strings.Repeat("a", 74)+"\r\n é", multi)
}
