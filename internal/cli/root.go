package cli

import (
	"context"
	"io"
	"os"

	"github.com/alexanderramin/zibox/internal/config"
	"github.com/alexanderramin/zibox/internal/player"
	"github.com/spf13/cobra"
)

// App holds the collaborators CLI commands depend on. Zero fields fall back
// to the real implementations.
type App struct {
	// LoadConfig resolves rc-file and environment settings.
	LoadConfig func() (*config.Config, error)

	// IsInteractive reports whether prompts can be shown.
	IsInteractive func() bool

	// Play runs the playback TUI.
	Play func(ctx context.Context, m player.Model, in io.Reader, out io.Writer) (player.Model, error)

	Stdin io.Reader
}

func (a *App) loadConfig() (*config.Config, error) {
	if a.LoadConfig != nil {
		return a.LoadConfig()
	}
	return config.Load()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) play(ctx context.Context, m player.Model, out io.Writer) (player.Model, error) {
	in := a.Stdin
	if in == nil {
		in = os.Stdin
	}
	if a.Play != nil {
		return a.Play(ctx, m, in, out)
	}
	return player.Run(ctx, m, in, out)
}

// NewRootCmd creates the top-level "zibox" command. Given a FILE it compiles
// the plan; subcommands cover the rest.
func NewRootCmd(app *App) *cobra.Command {
	opts := &compileOptions{}
	root := &cobra.Command{
		Use:           "zibox [FILE]",
		Short:         "Compile task plans into schedules",
		Long:          "zibox turns structured plan files (.zbx or .json) into a time-blocked schedule and renders it as markdown, JSON, a shell script or an iCalendar file.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoInput
			}
			return runCompile(cmd, app, args[0], opts)
		},
	}
	opts.register(root)

	root.AddCommand(
		newFormatsCmd(),
		newNewCmd(app),
		newConfigCmd(app),
	)

	return root
}
