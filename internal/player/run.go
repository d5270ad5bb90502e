package player

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Run plays m on the given terminal streams until the schedule is finished
// or the user quits, and returns the final model.
func Run(ctx context.Context, m Model, in io.Reader, out io.Writer) (Model, error) {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithInput(in), tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		return m, fmt.Errorf("playback: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return m, fmt.Errorf("playback: unexpected model %T", final)
	}
	return fm, nil
}
