package importer

import (
	"fmt"

	"github.com/alexanderramin/zibox/internal/domain"
)

// ValidatePlanImport checks the import schema for errors before conversion.
// Returns a slice of all validation errors found. Dependency references are
// not resolved here; the scheduler reports unknown and cyclic dependencies.
func ValidatePlanImport(schema *PlanImport) []error {
	var errs []error

	errs = append(errs, validateSettings(schema.Settings)...)
	errs = append(errs, validateDefaults(schema.Defaults)...)

	if len(schema.Blocks) == 0 {
		errs = append(errs, fmt.Errorf("blocks: at least one block is required"))
	}

	labels := make(map[string]bool)
	names := make(map[string]string)
	for i, b := range schema.Blocks {
		prefix := fmt.Sprintf("blocks[%d]", i)
		if b.Label == "" {
			errs = append(errs, fmt.Errorf("%s.label is required", prefix))
		} else if labels[b.Label] {
			errs = append(errs, fmt.Errorf("%s.label: duplicate label %q", prefix, b.Label))
		} else {
			labels[b.Label] = true
		}
		errs = append(errs, validateTasks(prefix, b.Tasks, names)...)
	}

	return errs
}

func validateSettings(s *SettingsImport) []error {
	if s == nil {
		return nil
	}
	var errs []error

	var start, end *domain.Clock
	if s.WorkdayStart != nil {
		if c, err := domain.ParseClock(*s.WorkdayStart); err != nil {
			errs = append(errs, fmt.Errorf("settings.workday_start: %w", err))
		} else {
			start = &c
		}
	}
	if s.WorkdayEnd != nil {
		if c, err := domain.ParseClock(*s.WorkdayEnd); err != nil {
			errs = append(errs, fmt.Errorf("settings.workday_end: %w", err))
		} else {
			end = &c
		}
	}
	if start != nil && end != nil && *end <= *start {
		errs = append(errs, fmt.Errorf("settings.workday_end %q must be after workday_start %q", *s.WorkdayEnd, *s.WorkdayStart))
	}
	if s.MaxParallel != nil && *s.MaxParallel < 1 {
		errs = append(errs, fmt.Errorf("settings.max_parallel must be at least 1"))
	}
	if s.ScheduleMode != nil {
		if _, err := domain.ParseScheduleMode(*s.ScheduleMode); err != nil {
			errs = append(errs, fmt.Errorf("settings.schedule_mode: %w", err))
		}
	}
	if s.OptimizationLevel != nil && (*s.OptimizationLevel < 0 || *s.OptimizationLevel > domain.MaxOptLevel) {
		errs = append(errs, fmt.Errorf("settings.optimization_level must be between 0 and %d", domain.MaxOptLevel))
	}
	for i, tag := range s.FocusTags {
		if tag == "" {
			errs = append(errs, fmt.Errorf("settings.focus_tags[%d] is empty", i))
		}
	}

	return errs
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error

	if d.Priority != "" {
		if _, err := domain.ParsePriority(d.Priority); err != nil {
			errs = append(errs, fmt.Errorf("defaults.priority: %w", err))
		}
	}
	if d.DurationMin != nil && *d.DurationMin < 0 {
		errs = append(errs, fmt.Errorf("defaults.duration_min must not be negative"))
	}

	return errs
}

func validateTasks(blockPrefix string, tasks []TaskImport, names map[string]string) []error {
	var errs []error

	for i, t := range tasks {
		prefix := fmt.Sprintf("%s.tasks[%d]", blockPrefix, i)

		if t.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if first, dup := names[t.Name]; dup {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q (first declared at %s)", prefix, t.Name, first))
		} else {
			names[t.Name] = prefix
		}

		if t.DurationMin != nil && *t.DurationMin < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_min must not be negative", prefix))
		}
		if t.Priority != "" {
			if _, err := domain.ParsePriority(t.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: %w", prefix, err))
			}
		}
		for j, tag := range t.Tags {
			if tag == "" {
				errs = append(errs, fmt.Errorf("%s.tags[%d] is empty", prefix, j))
			}
		}
		for j, dep := range t.After {
			if dep == "" {
				errs = append(errs, fmt.Errorf("%s.after[%d] is empty", prefix, j))
			}
		}
	}

	return errs
}
