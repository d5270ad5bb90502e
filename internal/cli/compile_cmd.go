package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alexanderramin/zibox/internal/cli/formatter"
	"github.com/alexanderramin/zibox/internal/config"
	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/alexanderramin/zibox/internal/player"
	"github.com/alexanderramin/zibox/internal/service"
	"github.com/spf13/cobra"
)

var errNoInput = errors.New("no input file specified (run 'zibox --help' for usage)")

const timelineWidth = 80

type compileOptions struct {
	format       formatValue
	outputFile   string
	workdayStart clockValue
	workdayEnd   clockValue
	mode         modeValue
	optLevel     int
	focusTags    []string
	maxParallel  int
	deepworkTag  string
	timezone     string
	date         string
	dryRun       bool
	showIR       bool
	visualize    bool
	run          bool
	verbose      bool
}

func (o *compileOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.VarP(&o.format, "output-format", "o", "Output format ("+formatNames()+")")
	f.StringVar(&o.outputFile, "output-file", "", "Write output to this file instead of stdout")
	f.Var(&o.workdayStart, "workday-start", "Workday start time (HH:MM)")
	f.Var(&o.workdayEnd, "workday-end", "Workday end time (HH:MM)")
	f.Var(&o.mode, "schedule-mode", "Schedule mode ("+modeNames()+")")
	f.IntVarP(&o.optLevel, "opt-level", "O", domain.DefaultOptLevel, "Optimization level (0-2)")
	f.StringArrayVar(&o.focusTags, "focus-tag", nil, "Only schedule tasks with this tag and their dependencies (repeatable)")
	f.IntVar(&o.maxParallel, "max-parallel", domain.DefaultMaxParallel, "Maximum number of tasks running at once")
	f.StringVar(&o.deepworkTag, "deepwork-tag", domain.DefaultDeepworkTag, "Tag that marks deep-work tasks")
	f.StringVar(&o.timezone, "timezone", "", "IANA timezone for calendar output (default from config)")
	f.StringVar(&o.date, "date", "", "Day for calendar output (YYYY-MM-DD, default today)")
	f.BoolVar(&o.dryRun, "dry-run", false, "With --run, complete tasks immediately instead of timing them")
	f.BoolVar(&o.showIR, "show-ir", false, "Print the resolved plan before the output")
	f.BoolVar(&o.visualize, "visualize-schedule", false, "Print a lane timeline of the schedule")
	f.BoolVar(&o.run, "run", false, "Play the schedule interactively after compiling")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Log compile telemetry to stderr")
}

// overrides collects the scheduling flags the user actually set.
func (o *compileOptions) overrides(cmd *cobra.Command) service.PlanOverrides {
	var ov service.PlanOverrides
	f := cmd.Flags()
	if f.Changed("workday-start") {
		c := domain.Clock(o.workdayStart)
		ov.WorkdayStart = &c
	}
	if f.Changed("workday-end") {
		c := domain.Clock(o.workdayEnd)
		ov.WorkdayEnd = &c
	}
	if f.Changed("schedule-mode") {
		m := domain.ScheduleMode(o.mode)
		ov.Mode = &m
	}
	if f.Changed("opt-level") {
		ov.OptimizationLevel = &o.optLevel
	}
	if f.Changed("focus-tag") {
		ov.FocusTags = o.focusTags
	}
	if f.Changed("max-parallel") {
		ov.MaxParallel = &o.maxParallel
	}
	if f.Changed("deepwork-tag") {
		ov.DeepworkTag = &o.deepworkTag
	}
	if f.Changed("timezone") {
		ov.Timezone = &o.timezone
	}
	return ov
}

func runCompile(cmd *cobra.Command, app *App, path string, opts *compileOptions) error {
	cfg, err := app.loadConfig()
	if err != nil {
		return err
	}
	base, err := cfg.ToPlanConfig()
	if err != nil {
		return err
	}
	format, err := cfg.Format()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("output-format") {
		format = domain.OutputFormat(opts.format)
	}
	var day time.Time
	if opts.date != "" {
		day, err = time.Parse(time.DateOnly, opts.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", opts.date)
		}
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var observer service.UseCaseObserver
	if opts.verbose {
		observer = service.NewLogUseCaseObserver(stderr)
	}

	res, err := service.NewCompileService(observer).Compile(cmd.Context(), service.CompileRequest{
		Path:      path,
		Base:      base,
		Overrides: opts.overrides(cmd),
		Format:    format,
		Day:       day,
	})
	if err != nil {
		return err
	}

	if opts.showIR || cfg.ShowIR {
		fmt.Fprintln(stdout, formatter.RenderIR(res.Plan))
	}
	if opts.visualize || cfg.VisualizeSchedule {
		fmt.Fprintln(stdout, formatter.RenderTimeline(res.Plan, res.Schedule, timelineWidth))
	}
	if diag := formatter.RenderDiagnostics(res.Schedule.Diagnostics); diag != "" {
		fmt.Fprintln(stderr, diag)
	}

	outputFile := opts.outputFile
	if outputFile == "" {
		outputFile = cfg.OutputFile
	}
	if err := writeOutput(stdout, outputFile, res.Output); err != nil {
		return err
	}

	if opts.run {
		return runPlayback(cmd, app, cfg, res, opts.dryRun || cfg.DryRun)
	}
	return nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	fmt.Fprintf(stdout, "Output written to %s\n", path)
	return nil
}

func runPlayback(cmd *cobra.Command, app *App, cfg *config.Config, res *service.CompileResult, dryRun bool) error {
	logbook, err := player.OpenLogbook(domain.CoalesceStr(cfg.LogFile, config.DefaultLogFile))
	if err != nil {
		return err
	}
	defer logbook.Close()

	model := player.New(res.Plan, res.Schedule, player.Options{DryRun: dryRun, Logbook: logbook})
	final, err := app.play(cmd.Context(), model, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	counts := final.Summary()
	summary := fmt.Sprintf("%d done, %d skipped, %d not started",
		counts[player.StatusDone], counts[player.StatusSkipped], counts[player.StatusPending]+counts[player.StatusRunning])
	title := "Playback finished"
	if final.Aborted() {
		title = "Playback aborted"
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderBox(title, summary))
	return nil
}
