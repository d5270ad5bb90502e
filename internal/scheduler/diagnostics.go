package scheduler

import (
	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
)

// Collector accumulates diagnostics in emission order. It never aborts a run.
type Collector struct {
	items []contract.Diagnostic
}

// Skipped records a task left out by the focus-tag filter.
func (c *Collector) Skipped(task string) {
	c.items = append(c.items, contract.Diagnostic{Code: contract.DiagnosticSkipped, TaskName: task})
}

// Overflow records a task that ends after the workday, at end.
func (c *Collector) Overflow(task string, end domain.Clock) {
	c.items = append(c.items, contract.Diagnostic{Code: contract.DiagnosticOverflow, TaskName: task, EndTime: &end})
}

// ZeroDuration records a task scheduled with no length.
func (c *Collector) ZeroDuration(task string) {
	c.items = append(c.items, contract.Diagnostic{Code: contract.DiagnosticZeroDuration, TaskName: task})
}

// DuplicateTag records a tag listed more than once on a task.
func (c *Collector) DuplicateTag(task, tag string) {
	c.items = append(c.items, contract.Diagnostic{Code: contract.DiagnosticDuplicateTag, TaskName: task, Tag: tag})
}

// Merge appends diagnostics produced elsewhere, preserving their order.
func (c *Collector) Merge(ds []contract.Diagnostic) {
	c.items = append(c.items, ds...)
}

// Len returns the number of collected diagnostics.
func (c *Collector) Len() int { return len(c.items) }

// Diagnostics returns a copy of everything collected so far.
func (c *Collector) Diagnostics() []contract.Diagnostic {
	if len(c.items) == 0 {
		return nil
	}
	out := make([]contract.Diagnostic, len(c.items))
	copy(out, c.items)
	return out
}
