package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, width = clampBar(pct, width)
	return fmt.Sprintf("[%s] %3.0f%%", barStyle(pct).Render(bar(pct, width)), pct*100)
}

// RenderCompactBar renders the bar alone, for tree rows. dim renders it in
// the muted colour without styling by percentage.
func RenderCompactBar(pct float64, width int, dim bool) string {
	pct, width = clampBar(pct, width)
	if dim {
		return StyleDim.Render(bar(pct, width))
	}
	return barStyle(pct).Render(bar(pct, width))
}

func clampBar(pct float64, width int) (float64, int) {
	pct = min(max(pct, 0), 1)
	return pct, max(width, 2)
}

func bar(pct float64, width int) string {
	filled := min(int(pct*float64(width)), width)
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

func barStyle(pct float64) lipgloss.Style {
	switch {
	case pct < 0.33:
		return StyleRed
	case pct < 0.66:
		return StyleYellow
	default:
		return StyleGreen
	}
}
