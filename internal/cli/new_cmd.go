package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/alexanderramin/zibox/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const planExtension = ".zbx"

const planTemplate = `@morning
  review(inbox) [30m] #admin p:high
  write(report) [2h] #deepwork p:critical

@afternoon
  meeting(team) [1h] #collaboration
  code(feature) [3h] #deepwork p:high after:meeting

@evening
  exercise(run) [45m] #health
  read(book) [30m] #learning
`

var errNameRequired = errors.New("a file name is required (usage: zibox new NAME)")

func newNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new [NAME]",
		Short: "Create a template .zbx plan",
		Long:  "Writes a starter plan to NAME.zbx in the current directory. The name is slugified; existing files are never overwritten.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				if !app.interactive() {
					return errNameRequired
				}
				if err := promptPlanName(cmd, &name); err != nil {
					return err
				}
			}

			path := planFileName(name)
			if err := createPlanFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created new .zbx file: %s\n", formatter.StyleGreen.Render(path))
			return nil
		},
	}
}

func promptPlanName(cmd *cobra.Command, name *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Plan name").
				Description("Saved as <slug>.zbx in the current directory").
				Placeholder("my day").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}).
				Value(name),
		),
	).WithTheme(ziboxHuhTheme()).WithShowHelp(false).WithOutput(cmd.ErrOrStderr())
	if err := form.RunWithContext(cmd.Context()); err != nil {
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

func createPlanFile(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file already exists: %s", path)
		}
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := f.WriteString(planTemplate); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// planFileName slugifies name and appends the .zbx extension. A trailing
// ".zbx" on the input is dropped first so "day.zbx" does not become "dayzbx.zbx".
func planFileName(name string) string {
	if strings.HasSuffix(strings.ToLower(name), planExtension) {
		name = name[:len(name)-len(planExtension)]
	}
	return slugify(name) + planExtension
}

// slugify lowercases letters and digits, collapses runs of whitespace,
// hyphens and underscores into one hyphen and drops everything else.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		case unicode.IsSpace(r) || r == '-' || r == '_':
			if !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "unnamed"
	}
	return slug
}
