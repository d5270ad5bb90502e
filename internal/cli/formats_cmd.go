package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/zibox/internal/cli/formatter"
	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/spf13/cobra"
)

var formatDescriptions = map[domain.OutputFormat]string{
	domain.FormatShell:    "Generates a shell script that can be executed to run your tasks.",
	domain.FormatMarkdown: "Generates a markdown document with your tasks formatted as a checklist.",
	domain.FormatJSON:     "Generates a JSON representation of your tasks for integration with other tools.",
	domain.FormatCalendar: "Generates an iCalendar file that can be imported into calendar applications.",
}

func newFormatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported output formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), renderFormats())
			return nil
		},
	}
}

func renderFormats() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Supported Output Formats"))
	b.WriteString("\n")
	for _, f := range domain.OutputFormats {
		ext := f.Extension()
		fmt.Fprintf(&b, "\n%s\n", formatter.StyleYellow.Bold(true).Render(fmt.Sprintf("%s (.%s)", f, ext)))
		fmt.Fprintf(&b, "  %s\n", formatDescriptions[f])
		fmt.Fprintf(&b, "  %s\n", formatter.Dim(fmt.Sprintf(
			"Example: zibox plan.zbx --output-format %s --output-file plan.%s", f, ext)))
	}
	return b.String()
}
