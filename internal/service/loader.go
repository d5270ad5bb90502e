package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/alexanderramin/zibox/internal/importer"
	"github.com/alexanderramin/zibox/internal/parser"
)

// LoadPlan reads a plan file and resolves its configuration. JSON files go
// through the importer and may carry a settings block; anything else is
// parsed as .zbx source. Overrides are applied last.
func LoadPlan(path string, base domain.PlanConfig, overrides PlanOverrides) (*domain.Plan, error) {
	cfg := base
	var blocks []domain.Block

	if strings.EqualFold(filepath.Ext(path), ".json") {
		schema, err := importer.LoadPlanImport(path)
		if err != nil {
			return nil, fmt.Errorf("loading plan file: %w", err)
		}
		if errs := importer.ValidatePlanImport(schema); len(errs) > 0 {
			return nil, formatValidationErrors(errs)
		}
		if err := importer.ApplySettings(&cfg, schema.Settings); err != nil {
			return nil, fmt.Errorf("applying plan settings: %w", err)
		}
		blocks, err = importer.Convert(schema)
		if err != nil {
			return nil, fmt.Errorf("converting plan file: %w", err)
		}
	} else {
		var err error
		blocks, err = parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
	}

	overrides.Apply(&cfg)
	return &domain.Plan{Blocks: blocks, Config: cfg}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("plan validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
