package importer

import (
	"fmt"

	"github.com/alexanderramin/zibox/internal/domain"
)

// Convert transforms a validated PlanImport into domain blocks.
// Call ValidatePlanImport first; Convert assumes the schema is valid.
func Convert(schema *PlanImport) ([]domain.Block, error) {
	defaultPriority := domain.DefaultPriority
	if schema.Defaults != nil && schema.Defaults.Priority != "" {
		p, err := domain.ParsePriority(schema.Defaults.Priority)
		if err != nil {
			return nil, fmt.Errorf("parsing defaults.priority: %w", err)
		}
		defaultPriority = p
	}
	var defaultDuration *int
	if schema.Defaults != nil {
		defaultDuration = schema.Defaults.DurationMin
	}

	blocks := make([]domain.Block, 0, len(schema.Blocks))
	for _, b := range schema.Blocks {
		block := domain.Block{Label: b.Label, Tasks: make([]domain.Task, 0, len(b.Tasks))}
		for _, t := range b.Tasks {
			// Apply defaults cascade: task field > schema defaults > hardcoded
			priority := defaultPriority
			if t.Priority != "" {
				p, err := domain.ParsePriority(t.Priority)
				if err != nil {
					return nil, fmt.Errorf("parsing priority of task %q: %w", t.Name, err)
				}
				priority = p
			}

			block.Tasks = append(block.Tasks, domain.Task{
				Name:        t.Name,
				Params:      cloneStrings(t.Params),
				DurationMin: domain.IntFromPtrWithDefault(0, t.DurationMin, defaultDuration),
				Tags:        cloneStrings(t.Tags),
				Priority:    priority,
				DependsOn:   cloneStrings(t.After),
				Block:       b.Label,
			})
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// ApplySettings overlays the settings block onto cfg. Only fields present in
// the import are changed.
func ApplySettings(cfg *domain.PlanConfig, s *SettingsImport) error {
	if s == nil {
		return nil
	}
	if s.Timezone != nil {
		cfg.Timezone = *s.Timezone
	}
	if s.WorkdayStart != nil {
		c, err := domain.ParseClock(*s.WorkdayStart)
		if err != nil {
			return fmt.Errorf("settings.workday_start: %w", err)
		}
		cfg.WorkdayStart = c
	}
	if s.WorkdayEnd != nil {
		c, err := domain.ParseClock(*s.WorkdayEnd)
		if err != nil {
			return fmt.Errorf("settings.workday_end: %w", err)
		}
		cfg.WorkdayEnd = c
	}
	if s.FocusTags != nil {
		cfg.FocusTags = cloneStrings(s.FocusTags)
	}
	if s.MaxParallel != nil {
		cfg.MaxParallel = *s.MaxParallel
	}
	if s.ScheduleMode != nil {
		m, err := domain.ParseScheduleMode(*s.ScheduleMode)
		if err != nil {
			return fmt.Errorf("settings.schedule_mode: %w", err)
		}
		cfg.Mode = m
	}
	if s.OptimizationLevel != nil {
		cfg.OptimizationLevel = *s.OptimizationLevel
	}
	if s.DeepworkTag != nil {
		cfg.DeepworkTag = *s.DeepworkTag
	}
	return nil
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
