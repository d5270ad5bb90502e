package service

import (
	"context"
	"time"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
)

// CompileRequest describes one compilation. Base holds the configuration
// from defaults, the rc file and the environment; plan-file settings are
// layered on top of it and Overrides on top of those.
type CompileRequest struct {
	Path      string
	Base      domain.PlanConfig
	Overrides PlanOverrides
	Format    domain.OutputFormat
	// Day anchors calendar output. Zero means today.
	Day time.Time
}

// CompileResult holds everything produced by a compilation. Plan is the
// optimized plan the schedule was computed from.
type CompileResult struct {
	RunID    string
	Plan     *domain.Plan
	Schedule *contract.Schedule
	Output   []byte
}

type CompileService interface {
	Compile(ctx context.Context, req CompileRequest) (*CompileResult, error)
}
