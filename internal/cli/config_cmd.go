package cli

import (
	"fmt"

	"github.com/alexanderramin/zibox/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long:  "Prints the configuration after applying defaults, the rc file and ZIBOX_* environment variables, as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}
			if _, err := cfg.ToPlanConfig(); err != nil {
				return err
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			source := cfg.Source
			if source == "" {
				source = "built-in defaults"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", formatter.Dim("# source: "+source))
			_, err = out.Write(data)
			return err
		},
	}
}
