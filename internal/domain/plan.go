package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig marks configuration or plan-shape problems detected before scheduling.
var ErrInvalidConfig = errors.New("invalid plan configuration")

// Default configuration values.
const (
	DefaultWorkdayStart = Clock(9 * 60)
	DefaultWorkdayEnd   = Clock(17 * 60)
	DefaultMaxParallel  = 1
	DefaultOptLevel     = 1
	DefaultDeepworkTag  = "deepwork"
	DefaultTimezone     = "Local"
	MaxOptLevel         = 2
)

// PlanConfig carries the plan-level scheduling parameters.
type PlanConfig struct {
	Timezone          string
	WorkdayStart      Clock
	WorkdayEnd        Clock
	FocusTags         []string
	MaxParallel       int
	Mode              ScheduleMode
	OptimizationLevel int
	DeepworkTag       string
}

// DefaultPlanConfig returns the configuration used when nothing overrides it.
func DefaultPlanConfig() PlanConfig {
	return PlanConfig{
		Timezone:          DefaultTimezone,
		WorkdayStart:      DefaultWorkdayStart,
		WorkdayEnd:        DefaultWorkdayEnd,
		MaxParallel:       DefaultMaxParallel,
		Mode:              ModeNaive,
		OptimizationLevel: DefaultOptLevel,
		DeepworkTag:       DefaultDeepworkTag,
	}
}

// EffectiveDeepworkTag returns the configured deep-work tag or the default.
func (c PlanConfig) EffectiveDeepworkTag() string {
	return CoalesceStr(c.DeepworkTag, DefaultDeepworkTag)
}

// Validate reports every configuration problem, joined.
func (c PlanConfig) Validate() error {
	var errs []error
	if c.WorkdayEnd <= c.WorkdayStart {
		errs = append(errs, fmt.Errorf("%w: workday_end %s must be after workday_start %s",
			ErrInvalidConfig, c.WorkdayEnd, c.WorkdayStart))
	}
	if c.MaxParallel < 1 {
		errs = append(errs, fmt.Errorf("%w: max_parallel must be at least 1, got %d", ErrInvalidConfig, c.MaxParallel))
	}
	if _, err := ParseScheduleMode(string(c.Mode)); err != nil {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
	}
	if c.OptimizationLevel < 0 || c.OptimizationLevel > MaxOptLevel {
		errs = append(errs, fmt.Errorf("%w: optimization_level must be between 0 and %d, got %d",
			ErrInvalidConfig, MaxOptLevel, c.OptimizationLevel))
	}
	return errors.Join(errs...)
}

// Plan is the validated whole handed to the scheduler. It owns every task;
// everything else refers to tasks by name.
type Plan struct {
	Blocks []Block
	Config PlanConfig
}

// Tasks returns every task in declaration order (block order, then in-block order).
func (p *Plan) Tasks() []Task {
	var out []Task
	for _, b := range p.Blocks {
		out = append(out, b.Tasks...)
	}
	return out
}

// Task looks up a task by name.
func (p *Plan) Task(name string) (Task, bool) {
	for _, b := range p.Blocks {
		for _, t := range b.Tasks {
			if t.Name == name {
				return t, true
			}
		}
	}
	return Task{}, false
}

// TotalDurationMin sums the duration of every task.
func (p *Plan) TotalDurationMin() int {
	total := 0
	for _, b := range p.Blocks {
		for _, t := range b.Tasks {
			total += t.DurationMin
		}
	}
	return total
}

// Validate checks the configuration and the shape of every task. Referential
// problems (unknown dependencies, cycles, duplicate names) are left to the
// graph builder.
func (p *Plan) Validate() error {
	errs := []error{p.Config.Validate()}
	for _, b := range p.Blocks {
		for i, t := range b.Tasks {
			if t.Name == "" {
				errs = append(errs, fmt.Errorf("%w: block %q task %d has no name", ErrInvalidConfig, b.Label, i))
			}
			if t.DurationMin < 0 {
				errs = append(errs, fmt.Errorf("%w: task %q has negative duration %d", ErrInvalidConfig, t.Name, t.DurationMin))
			}
			if !t.Priority.Valid() {
				errs = append(errs, fmt.Errorf("%w: task %q has invalid %s", ErrInvalidConfig, t.Name, t.Priority))
			}
		}
	}
	return errors.Join(errs...)
}
