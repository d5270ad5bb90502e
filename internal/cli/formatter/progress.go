package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░] 45%.
// Green up to 100%, red when pct exceeds 1 (over capacity).
func RenderProgress(pct float64, width int) string {
	if pct < 0 {
		pct = 0
	}
	if width < 2 {
		width = 2
	}

	style := StyleGreen
	if pct > 1 {
		style = StyleRed
	}
	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
