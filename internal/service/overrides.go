package service

import "github.com/alexanderramin/zibox/internal/domain"

// PlanOverrides carries values set explicitly on the command line. Nil
// fields leave the lower layers untouched.
type PlanOverrides struct {
	Timezone          *string
	WorkdayStart      *domain.Clock
	WorkdayEnd        *domain.Clock
	FocusTags         []string
	MaxParallel       *int
	Mode              *domain.ScheduleMode
	OptimizationLevel *int
	DeepworkTag       *string
}

// Apply overlays the set fields onto cfg.
func (o PlanOverrides) Apply(cfg *domain.PlanConfig) {
	if o.Timezone != nil {
		cfg.Timezone = *o.Timezone
	}
	if o.WorkdayStart != nil {
		cfg.WorkdayStart = *o.WorkdayStart
	}
	if o.WorkdayEnd != nil {
		cfg.WorkdayEnd = *o.WorkdayEnd
	}
	if o.FocusTags != nil {
		cfg.FocusTags = append([]string(nil), o.FocusTags...)
	}
	if o.MaxParallel != nil {
		cfg.MaxParallel = *o.MaxParallel
	}
	if o.Mode != nil {
		cfg.Mode = *o.Mode
	}
	if o.OptimizationLevel != nil {
		cfg.OptimizationLevel = *o.OptimizationLevel
	}
	if o.DeepworkTag != nil {
		cfg.DeepworkTag = *o.DeepworkTag
	}
}
