// Package player walks through a computed schedule interactively, one task
// at a time, recording every transition in a logbook.
package player

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/zibox/internal/cli/formatter"
	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
)

// Status is the playback state of one step.
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusDone
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusDone:
		return "done"
	case StatusSkipped:
		return "skipped"
	default:
		return "pending"
	}
}

// Step is one scheduled task in playback order.
type Step struct {
	Assignment contract.Assignment
	Task       domain.Task
	Status     Status
	Elapsed    time.Duration
}

func (s Step) duration() time.Duration {
	return time.Duration(s.Task.DurationMin) * time.Minute
}

// Options configures a playback session.
type Options struct {
	// DryRun completes each task as soon as it is started.
	DryRun bool
	// Logbook receives one line per transition. Nil discards them.
	Logbook *Logbook
	// TickInterval is the simulated-time step. Zero means one second.
	TickInterval time.Duration
}

type tickMsg struct{ run int }

// Model is the bubbletea model driving playback.
type Model struct {
	steps   []Step
	current int
	blocks  int

	running bool
	run     int // incremented on every start so stale ticks are ignored
	tick    time.Duration

	dryRun   bool
	finished bool
	aborted  bool

	log      *Logbook
	keys     keyMap
	help     help.Model
	progress progress.Model
}

// New builds a playback model for sched. Steps follow the assignments
// ordered by start time, then lane.
func New(plan *domain.Plan, sched *contract.Schedule, opts Options) Model {
	assignments := make([]contract.Assignment, len(sched.Assignments))
	copy(assignments, sched.Assignments)
	sort.SliceStable(assignments, func(i, j int) bool {
		if assignments[i].Start != assignments[j].Start {
			return assignments[i].Start < assignments[j].Start
		}
		return assignments[i].Lane < assignments[j].Lane
	})

	steps := make([]Step, 0, len(assignments))
	for _, a := range assignments {
		t, ok := plan.Task(a.TaskName)
		if !ok {
			t = domain.Task{Name: a.TaskName, DurationMin: a.DurationMin()}
		}
		steps = append(steps, Step{Assignment: a, Task: t})
	}

	tick := opts.TickInterval
	if tick <= 0 {
		tick = time.Second
	}
	return Model{
		steps:    steps,
		finished: len(steps) == 0,
		blocks:   len(plan.Blocks),
		tick:     tick,
		dryRun:   opts.DryRun,
		log:      opts.Logbook,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m Model) Init() tea.Cmd {
	m.log.Printf("Starting execution with %d blocks and %d tasks", m.blocks, len(m.steps))
	if m.finished {
		return m.finish()
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		if w := msg.Width - 10; w > 10 && w < 80 {
			m.progress.Width = w
		}
		return m, nil

	case tickMsg:
		if !m.running || msg.run != m.run {
			return m, nil
		}
		step := &m.steps[m.current]
		step.Elapsed += time.Second
		if step.Elapsed >= step.duration() {
			return m.complete()
		}
		return m, m.scheduleTick()

	case tea.KeyMsg:
		if m.finished || m.aborted {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			m.running = false
			m.log.Printf("Execution aborted by user")
			return m, tea.Quit
		case key.Matches(msg, m.keys.Skip):
			return m.skip()
		case key.Matches(msg, m.keys.Start):
			if m.running {
				return m.complete()
			}
			return m.start()
		}
	}
	return m, nil
}

func (m Model) start() (tea.Model, tea.Cmd) {
	step := &m.steps[m.current]
	step.Status = StatusRunning
	m.log.Printf("Starting task: %s (%s)", step.Task.DisplayName(), domain.FormatMinutes(step.Task.DurationMin))

	if m.dryRun || step.Task.DurationMin == 0 {
		return m.complete()
	}
	m.running = true
	m.run++
	return m, m.scheduleTick()
}

func (m Model) complete() (tea.Model, tea.Cmd) {
	step := &m.steps[m.current]
	step.Status = StatusDone
	m.running = false
	m.log.Printf("Completed task: %s", step.Task.DisplayName())
	return m.advance()
}

func (m Model) skip() (tea.Model, tea.Cmd) {
	step := &m.steps[m.current]
	step.Status = StatusSkipped
	m.running = false
	m.log.Printf("Skipped task: %s", step.Task.DisplayName())
	return m.advance()
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	m.current++
	if m.current >= len(m.steps) {
		m.finished = true
		return m, m.finish()
	}
	return m, nil
}

func (m Model) finish() tea.Cmd {
	m.log.Printf("Execution completed")
	return tea.Quit
}

func (m Model) scheduleTick() tea.Cmd {
	run := m.run
	return tea.Tick(m.tick, func(time.Time) tea.Msg { return tickMsg{run: run} })
}

// Steps returns a copy of the playback steps with their current status.
func (m Model) Steps() []Step {
	out := make([]Step, len(m.steps))
	copy(out, m.steps)
	return out
}

// Finished reports whether every step was completed or skipped.
func (m Model) Finished() bool { return m.finished }

// Aborted reports whether the user quit before the end.
func (m Model) Aborted() bool { return m.aborted }

// Summary counts steps by status.
func (m Model) Summary() map[Status]int {
	counts := make(map[Status]int, 4)
	for _, s := range m.steps {
		counts[s.Status]++
	}
	return counts
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Zibox playback"))
	b.WriteString("\n\n")

	for i, s := range m.steps {
		marker := "  "
		if i == m.current && !m.finished && !m.aborted {
			marker = formatter.StyleHeader.Render("> ")
		}
		line := fmt.Sprintf("%s-%s  %s (%s)", s.Assignment.Start, s.Assignment.End,
			s.Task.DisplayName(), domain.FormatMinutes(s.Task.DurationMin))
		b.WriteString(marker + statusStyle(s.Status).Render(statusIcon(s.Status)+" "+line) + "\n")
	}
	b.WriteString("\n")

	switch {
	case m.aborted:
		b.WriteString(formatter.StyleRed.Render("Execution aborted") + "\n")
	case m.finished:
		b.WriteString(formatter.StyleGreen.Render("All tasks completed!") + "\n")
	case m.running:
		s := m.steps[m.current]
		pct := 0.0
		if d := s.duration(); d > 0 {
			pct = float64(s.Elapsed) / float64(d)
		}
		fmt.Fprintf(&b, "Working on %s\n%s\n", formatter.Bold(s.Task.DisplayName()), m.progress.ViewAs(pct))
	default:
		s := m.steps[m.current]
		label := "Next"
		if m.dryRun {
			label = "Next (dry run)"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, formatter.Bold(s.Task.DisplayName()))
	}

	if !m.finished && !m.aborted {
		b.WriteString("\n" + m.help.View(m.keys) + "\n")
	}
	return b.String()
}

func statusIcon(s Status) string {
	switch s {
	case StatusRunning:
		return "▶"
	case StatusDone:
		return "✓"
	case StatusSkipped:
		return "↷"
	default:
		return "·"
	}
}

func statusStyle(s Status) lipgloss.Style {
	switch s {
	case StatusRunning:
		return formatter.StyleYellow
	case StatusDone:
		return formatter.StyleGreen
	case StatusSkipped:
		return formatter.StyleDim
	default:
		return formatter.StyleFg
	}
}
