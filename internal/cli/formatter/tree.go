package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem is one row of a tree display. Level 0 rows are roots.
type TreeItem struct {
	Title  string
	Level  int
	IsLast bool
	Detail string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders items as an indented tree with box-drawing connectors.
// Details are right-aligned in a badge column.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	contents := make([]string, len(items))
	widest := 0
	for i, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}
		contents[i] = StyleDim.Render(prefix) + item.Title
		widest = max(widest, lipgloss.Width(contents[i]))
	}

	var b strings.Builder
	for i, item := range items {
		b.WriteString(contents[i])
		if item.Detail != "" {
			pad := widest - lipgloss.Width(contents[i])
			b.WriteString(strings.Repeat(" ", pad) + "  " + StyleBlue.Render("[ "+item.Detail+" ]"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
