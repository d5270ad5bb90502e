package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/zibox/internal/contract"
	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityStyle returns the style used for a task of the given priority.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityCritical:
		return StyleRed
	case domain.PriorityHigh:
		return StyleYellow
	case domain.PriorityLow:
		return StyleDim
	default:
		return StyleFg
	}
}

// PriorityBadge returns a colored label such as "▲ critical".
func PriorityBadge(p domain.Priority) string {
	switch p {
	case domain.PriorityCritical:
		return StyleRed.Render("▲ critical")
	case domain.PriorityHigh:
		return StyleYellow.Render("△ high")
	case domain.PriorityLow:
		return StyleDim.Render("▽ low")
	default:
		return StyleFg.Render("· medium")
	}
}

// DiagnosticStyle colors a diagnostic by how much attention it needs.
func DiagnosticStyle(code contract.DiagnosticCode) lipgloss.Style {
	switch code {
	case contract.DiagnosticOverflow:
		return StyleRed
	case contract.DiagnosticZeroDuration, contract.DiagnosticDuplicateTag:
		return StyleYellow
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
