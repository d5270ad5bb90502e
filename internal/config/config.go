// Package config resolves zibox settings from built-in defaults, an optional
// .ziboxrc YAML file and ZIBOX_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/zibox/internal/domain"
)

// RCFileName is the name of the rc file looked up in the search paths.
const RCFileName = ".ziboxrc"

// EnvConfigPath names an explicit rc file and disables the search.
const EnvConfigPath = "ZIBOX_CONFIG"

// DefaultLogFile is the playback logbook written in the working directory.
const DefaultLogFile = "zibox.log"

// Config models .ziboxrc. Times, modes and formats stay strings until
// ToPlanConfig and Format parse them, so a bad value is reported with its key.
type Config struct {
	OutputFormat      string   `yaml:"output_format"`
	OutputFile        string   `yaml:"output_file,omitempty"`
	Timezone          string   `yaml:"timezone"`
	WorkdayStart      string   `yaml:"workday_start"`
	WorkdayEnd        string   `yaml:"workday_end"`
	ScheduleMode      string   `yaml:"schedule_mode"`
	OptimizationLevel int      `yaml:"optimization_level"`
	FocusTags         []string `yaml:"focus_tags,omitempty"`
	MaxParallel       int      `yaml:"max_parallel"`
	DeepworkTag       string   `yaml:"deepwork_tag"`
	DryRun            bool     `yaml:"dry_run"`
	ShowIR            bool     `yaml:"show_ir"`
	VisualizeSchedule bool     `yaml:"visualize_schedule"`
	LogFile           string   `yaml:"log_file"`

	// Source is the rc file that was read, empty when none was found.
	Source string `yaml:"-"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		OutputFormat:      string(domain.FormatMarkdown),
		Timezone:          domain.DefaultTimezone,
		WorkdayStart:      domain.DefaultWorkdayStart.String(),
		WorkdayEnd:        domain.DefaultWorkdayEnd.String(),
		ScheduleMode:      string(domain.ModeNaive),
		OptimizationLevel: domain.DefaultOptLevel,
		MaxParallel:       domain.DefaultMaxParallel,
		DeepworkTag:       domain.DefaultDeepworkTag,
		LogFile:           DefaultLogFile,
	}
}

// SearchPaths lists the rc locations in lookup order. The first existing
// file wins.
func SearchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "zibox", RCFileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, RCFileName))
	}
	return append(paths, RCFileName)
}

// Load resolves the configuration: defaults, then the rc file named by
// ZIBOX_CONFIG or the first one found in SearchPaths, then environment
// overrides.
func Load() (*Config, error) {
	if explicit := os.Getenv(EnvConfigPath); explicit != "" {
		cfg, err := LoadFile(explicit)
		if err != nil {
			return nil, err
		}
		applyEnv(cfg)
		return cfg, nil
	}
	return LoadFrom(SearchPaths())
}

// LoadFrom behaves like Load but searches the given paths. Missing files are
// skipped.
func LoadFrom(paths []string) (*Config, error) {
	for _, path := range paths {
		cfg, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		applyEnv(cfg)
		return cfg, nil
	}
	cfg := DefaultConfig()
	applyEnv(&cfg)
	return &cfg, nil
}

// LoadFile reads one rc file on top of the defaults. Keys absent from the
// file keep their default value.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Source = path
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ZIBOX_OUTPUT_FORMAT"); v != "" {
		cfg.OutputFormat = v
	}
	if v := os.Getenv("ZIBOX_OUTPUT_FILE"); v != "" {
		cfg.OutputFile = v
	}
	if v := os.Getenv("ZIBOX_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("ZIBOX_WORKDAY_START"); v != "" {
		cfg.WorkdayStart = v
	}
	if v := os.Getenv("ZIBOX_WORKDAY_END"); v != "" {
		cfg.WorkdayEnd = v
	}
	if v := os.Getenv("ZIBOX_SCHEDULE_MODE"); v != "" {
		cfg.ScheduleMode = v
	}
	if v := os.Getenv("ZIBOX_OPT_LEVEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OptimizationLevel = n
		}
	}
	if v := os.Getenv("ZIBOX_FOCUS_TAGS"); v != "" {
		cfg.FocusTags = splitList(v)
	}
	if v := os.Getenv("ZIBOX_MAX_PARALLEL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxParallel = n
		}
	}
	if v := os.Getenv("ZIBOX_DEEPWORK_TAG"); v != "" {
		cfg.DeepworkTag = v
	}
	if v := os.Getenv("ZIBOX_DRY_RUN"); v != "" {
		cfg.DryRun, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("ZIBOX_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ToPlanConfig parses the scheduling settings. It does not check cross-field
// rules; PlanConfig.Validate does that once every layer is applied.
func (c *Config) ToPlanConfig() (domain.PlanConfig, error) {
	start, err := domain.ParseClock(c.WorkdayStart)
	if err != nil {
		return domain.PlanConfig{}, fmt.Errorf("config: workday_start: %w", err)
	}
	end, err := domain.ParseClock(c.WorkdayEnd)
	if err != nil {
		return domain.PlanConfig{}, fmt.Errorf("config: workday_end: %w", err)
	}
	mode, err := domain.ParseScheduleMode(c.ScheduleMode)
	if err != nil {
		return domain.PlanConfig{}, fmt.Errorf("config: schedule_mode: %w", err)
	}
	var focus []string
	if len(c.FocusTags) > 0 {
		focus = append(focus, c.FocusTags...)
	}
	return domain.PlanConfig{
		Timezone:          domain.CoalesceStr(c.Timezone, domain.DefaultTimezone),
		WorkdayStart:      start,
		WorkdayEnd:        end,
		FocusTags:         focus,
		MaxParallel:       c.MaxParallel,
		Mode:              mode,
		OptimizationLevel: c.OptimizationLevel,
		DeepworkTag:       domain.CoalesceStr(c.DeepworkTag, domain.DefaultDeepworkTag),
	}, nil
}

// Format parses the configured output format.
func (c *Config) Format() (domain.OutputFormat, error) {
	f, err := domain.ParseOutputFormat(c.OutputFormat)
	if err != nil {
		return "", fmt.Errorf("config: output_format: %w", err)
	}
	return f, nil
}

// YAML renders the effective configuration in rc-file form.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
