package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// PlanImport is the top-level JSON structure of a plan file.
type PlanImport struct {
	Settings *SettingsImport `json:"settings,omitempty"`
	Defaults *DefaultsImport `json:"defaults,omitempty"`
	Blocks   []BlockImport   `json:"blocks"`
}

// SettingsImport overrides plan configuration. Unset fields keep the value
// coming from the rc file and environment.
type SettingsImport struct {
	Timezone          *string  `json:"timezone,omitempty"`
	WorkdayStart      *string  `json:"workday_start,omitempty"`
	WorkdayEnd        *string  `json:"workday_end,omitempty"`
	FocusTags         []string `json:"focus_tags,omitempty"`
	MaxParallel       *int     `json:"max_parallel,omitempty"`
	ScheduleMode      *string  `json:"schedule_mode,omitempty"`
	OptimizationLevel *int     `json:"optimization_level,omitempty"`
	DeepworkTag       *string  `json:"deepwork_tag,omitempty"`
}

// DefaultsImport defines plan-wide task defaults that cascade to every task.
type DefaultsImport struct {
	Priority    string `json:"priority,omitempty"`
	DurationMin *int   `json:"duration_min,omitempty"`
}

// BlockImport defines a labelled group of tasks.
type BlockImport struct {
	Label string       `json:"label"`
	Tasks []TaskImport `json:"tasks"`
}

// TaskImport defines one task.
type TaskImport struct {
	Name        string   `json:"name"`
	Params      []string `json:"params,omitempty"`
	DurationMin *int     `json:"duration_min,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	After       []string `json:"after,omitempty"`
}

// LoadPlanImport reads and parses a JSON plan file.
func LoadPlanImport(path string) (*PlanImport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return DecodePlanImport(data)
}

// DecodePlanImport parses JSON plan data.
func DecodePlanImport(data []byte) (*PlanImport, error) {
	var schema PlanImport
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
