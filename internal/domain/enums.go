package domain

import (
	"fmt"
	"strings"
)

// Priority is the ordered importance of a task. Higher values are more urgent.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// DefaultPriority is assigned to tasks that do not declare one.
const DefaultPriority = PriorityMedium

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityMedium:
		return "medium"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Valid reports whether p is one of the four defined levels.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

// ParsePriority accepts the level name or its numeric alias (1 = low ... 4 = critical).
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return PriorityLow, nil
	case "medium", "2":
		return PriorityMedium, nil
	case "high", "3":
		return PriorityHigh, nil
	case "critical", "4":
		return PriorityCritical, nil
	}
	return 0, fmt.Errorf("invalid priority %q", s)
}

// ScheduleMode selects the ordering strategy used by the scheduler.
type ScheduleMode string

const (
	ModeNaive            ScheduleMode = "naive"
	ModeEarlyBird        ScheduleMode = "early-bird"
	ModeDeepworkPriority ScheduleMode = "deepwork-priority"
)

// ScheduleModes lists the canonical mode names in display order.
var ScheduleModes = []ScheduleMode{ModeNaive, ModeEarlyBird, ModeDeepworkPriority}

var scheduleModeAliases = map[string]ScheduleMode{
	"naive":             ModeNaive,
	"early-bird":        ModeEarlyBird,
	"earlybird":         ModeEarlyBird,
	"deepwork-priority": ModeDeepworkPriority,
	"deepwork":          ModeDeepworkPriority,
	"deepwork-first":    ModeDeepworkPriority,
	"deepworkfirst":     ModeDeepworkPriority,
}

// ParseScheduleMode resolves a mode name or one of its aliases, case-insensitively.
func ParseScheduleMode(s string) (ScheduleMode, error) {
	if m, ok := scheduleModeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return m, nil
	}
	return "", fmt.Errorf("invalid schedule mode %q (expected naive, early-bird or deepwork-priority)", s)
}

// OutputFormat names a rendering target for a schedule.
type OutputFormat string

const (
	FormatShell    OutputFormat = "shell"
	FormatMarkdown OutputFormat = "markdown"
	FormatJSON     OutputFormat = "json"
	FormatCalendar OutputFormat = "calendar"
)

// OutputFormats lists the supported formats in display order.
var OutputFormats = []OutputFormat{FormatShell, FormatMarkdown, FormatJSON, FormatCalendar}

// Extension returns the conventional file extension for the format, without the dot.
func (f OutputFormat) Extension() string {
	switch f {
	case FormatShell:
		return "sh"
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	case FormatCalendar:
		return "ics"
	default:
		return "txt"
	}
}

// ParseOutputFormat resolves a format name. "md", "sh" and "ics" are accepted as aliases.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shell", "sh":
		return FormatShell, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	case "calendar", "ics":
		return FormatCalendar, nil
	}
	return "", fmt.Errorf("invalid output format %q", s)
}
