package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/alexanderramin/zibox/internal/optimizer"
	"github.com/alexanderramin/zibox/internal/render"
	"github.com/alexanderramin/zibox/internal/scheduler"
)

type compileService struct {
	now      func() time.Time
	observer UseCaseObserver
}

func NewCompileService(observers ...UseCaseObserver) CompileService {
	return &compileService{
		now:      time.Now,
		observer: combineObservers(observers),
	}
}

func (s *compileService) Compile(ctx context.Context, req CompileRequest) (result *CompileResult, err error) {
	startedAt := s.now().UTC()
	runID := uuid.NewString()
	fields := map[string]any{
		"run_id": runID,
		"path":   req.Path,
		"format": string(req.Format),
	}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "compile",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var plan *domain.Plan
	plan, err = LoadPlan(req.Path, req.Base, req.Overrides)
	if err != nil {
		return nil, err
	}
	fields["mode"] = string(plan.Config.Mode)
	fields["block_count"] = len(plan.Blocks)
	fields["task_count"] = len(plan.Tasks())

	if err = plan.Validate(); err != nil {
		return nil, err
	}
	plan, err = optimizer.Optimize(plan, plan.Config.OptimizationLevel)
	if err != nil {
		return nil, fmt.Errorf("optimizing plan: %w", err)
	}

	var sched *contract.Schedule
	sched, err = scheduler.Run(plan)
	if err != nil {
		return nil, err
	}
	fields["assignment_count"] = len(sched.Assignments)
	fields["diagnostic_count"] = len(sched.Diagnostics)

	day := req.Day
	if day.IsZero() {
		day = s.now()
	}
	var buf bytes.Buffer
	if err = render.Render(&buf, req.Format, plan, sched, day); err != nil {
		return nil, err
	}

	return &CompileResult{
		RunID:    runID,
		Plan:     plan,
		Schedule: sched,
		Output:   buf.Bytes(),
	}, nil
}
