package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/zibox/internal/config"
	"github.com/alexanderramin/zibox/internal/player"
	"github.com/alexanderramin/zibox/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

const samplePlan = `@morning
  review(inbox) [30m] #admin p:high
  write(report) [1h] #deepwork
`

// testApp returns an App with default settings and a log file in a temp dir.
// Playback is driven synchronously by pressing enter until the model finishes.
func testApp(t *testing.T) *App {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "zibox.log")
	return &App{
		LoadConfig: func() (*config.Config, error) {
			cfg := config.DefaultConfig()
			cfg.Timezone = "UTC"
			cfg.LogFile = logFile
			return &cfg, nil
		},
		Play: func(_ context.Context, m player.Model, _ io.Reader, _ io.Writer) (player.Model, error) {
			m.Init()
			for !m.Finished() {
				next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
				m = next.(player.Model)
			}
			return m, nil
		},
	}
}

func executeCmd(t *testing.T, app *App, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd(app)
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	return testutil.WritePlanFile(t, dir, name, content)
}
