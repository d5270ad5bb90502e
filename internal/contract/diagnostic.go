package contract

import (
	"fmt"

	"github.com/alexanderramin/zibox/internal/domain"
)

// DiagnosticCode classifies a non-fatal scheduling observation.
type DiagnosticCode string

const (
	DiagnosticSkipped      DiagnosticCode = "SKIPPED"
	DiagnosticOverflow     DiagnosticCode = "OVERFLOW"
	DiagnosticZeroDuration DiagnosticCode = "ZERO_DURATION"
	DiagnosticDuplicateTag DiagnosticCode = "DUPLICATE_TAG"
)

// Diagnostic is an informational record attached to a successfully produced
// schedule. EndTime is set for overflows, Tag for duplicate tags.
type Diagnostic struct {
	Code     DiagnosticCode `json:"code"`
	TaskName string         `json:"task"`
	EndTime  *domain.Clock  `json:"end_time,omitempty"`
	Tag      string         `json:"tag,omitempty"`
}

// Message renders a human-readable description.
func (d Diagnostic) Message() string {
	switch d.Code {
	case DiagnosticSkipped:
		return fmt.Sprintf("task %q excluded by focus tags", d.TaskName)
	case DiagnosticOverflow:
		if d.EndTime != nil {
			return fmt.Sprintf("task %q ends at %s, after the workday end", d.TaskName, d.EndTime)
		}
		return fmt.Sprintf("task %q ends after the workday end", d.TaskName)
	case DiagnosticZeroDuration:
		return fmt.Sprintf("task %q has no duration", d.TaskName)
	case DiagnosticDuplicateTag:
		return fmt.Sprintf("task %q repeats tag %q", d.TaskName, d.Tag)
	default:
		return fmt.Sprintf("%s: %s", d.Code, d.TaskName)
	}
}

func (d Diagnostic) String() string { return d.Message() }
