package scheduler

import (
	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
)

// Run computes the schedule for a plan. Configuration problems, duplicate
// names, unknown dependencies and cycles are returned as errors before any
// allocation happens; everything else is reported as diagnostics.
//
// Run is a pure function of the plan and holds no state between calls.
func Run(plan *domain.Plan) (*contract.Schedule, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	g, err := BuildGraph(plan)
	if err != nil {
		return nil, err
	}

	cfg := plan.Config
	ws, skipped := FilterByTags(g, cfg.FocusTags)

	mode, err := domain.ParseScheduleMode(string(cfg.Mode))
	if err != nil {
		return nil, err
	}
	order := Order(ws, g, mode, cfg.EffectiveDeepworkTag())
	sched := Allocate(order, g, cfg.WorkdayStart, cfg.WorkdayEnd, cfg.MaxParallel)
	sched.Mode = mode

	var diags Collector
	diags.Merge(skipped)
	diags.Merge(sched.Diagnostics)
	sched.Diagnostics = diags.Diagnostics()
	return sched, nil
}
