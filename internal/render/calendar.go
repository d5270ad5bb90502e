package render

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alexanderramin/zibox/internal/domain"
)

const icsTimeLayout = "20060102T150405Z"

// eventNamespace seeds event UIDs so re-rendering the same plan for the same
// day yields the same UIDs and calendar imports update instead of duplicating.
var eventNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://zibox.dev/events"))

func renderCalendar(w io.Writer, doc Document) error {
	loc, err := loadLocation(doc.Plan.Config.Timezone)
	if err != nil {
		return err
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//zibox//zibox//EN",
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
	}
	stamp := domain.Clock(0).On(doc.Day, loc).UTC().Format(icsTimeLayout)

	for _, a := range Chronological(doc.Schedule) {
		t, ok := doc.Plan.Task(a.TaskName)
		if !ok {
			return fmt.Errorf("render: schedule names unknown task %q", a.TaskName)
		}
		start := a.Start.On(doc.Day, loc)
		end := a.End.On(doc.Day, loc)

		lines = append(lines,
			"BEGIN:VEVENT",
			"UID:"+EventUID(doc.Day, t.Name).String()+"@zibox",
			"DTSTAMP:"+stamp,
			"DTSTART:"+start.UTC().Format(icsTimeLayout),
			"DTEND:"+end.UTC().Format(icsTimeLayout),
			"SUMMARY:"+icsEscape(t.DisplayName()),
			"DESCRIPTION:"+icsEscape(fmt.Sprintf("Block %s, lane %d, %s", t.Block, a.Lane+1, domain.FormatMinutes(t.DurationMin))),
			fmt.Sprintf("PRIORITY:%d", icsPriority(t.Priority)),
		)
		if len(t.Tags) > 0 {
			escaped := make([]string, len(t.Tags))
			for i, tag := range t.Tags {
				escaped[i] = icsEscape(tag)
			}
			lines = append(lines, "CATEGORIES:"+strings.Join(escaped, ","))
		}
		lines = append(lines, "END:VEVENT")
	}
	lines = append(lines, "END:VCALENDAR")

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(icsFold(line))
		b.WriteString("\r\n")
	}
	_, err = io.WriteString(w, b.String())
	return err
}

// EventUID derives the calendar UID of a task on a given day.
func EventUID(day time.Time, taskName string) uuid.UUID {
	return uuid.NewSHA1(eventNamespace, []byte(day.Format("2006-01-02")+"/"+taskName))
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || name == domain.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("render: timezone %q: %w", name, err)
	}
	return loc, nil
}

// icsPriority maps onto the RFC 5545 scale where 1 is highest and 9 lowest.
func icsPriority(p domain.Priority) int {
	switch p {
	case domain.PriorityCritical:
		return 1
	case domain.PriorityHigh:
		return 3
	case domain.PriorityLow:
		return 9
	default:
		return 5
	}
}

var icsEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

func icsEscape(s string) string {
	return icsEscaper.Replace(s)
}

// icsMaxLineOctets is the content line limit, excluding the CRLF.
const icsMaxLineOctets = 75

// icsFold breaks a content line into CRLF-plus-space continuations of at
// most 75 octets each. Multi-byte runes are never split.
func icsFold(line string) string {
	if len(line) <= icsMaxLineOctets {
		return line
	}
	var b strings.Builder
	limit := icsMaxLineOctets
	width := 0
	for _, r := range line {
		n := utf8.RuneLen(r)
		if width+n > limit {
			b.WriteString("\r\n ")
			limit = icsMaxLineOctets - 1
			width = 0
		}
		b.WriteRune(r)
		width += n
	}
	return b.String()
}
