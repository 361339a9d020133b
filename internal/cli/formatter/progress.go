package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pulse/internal/numeric"
)

// RenderProgress draws pct (0..100) as [█████░░░░░]  50%. The bar is
// green from 66, yellow from 33 and red below.
func RenderProgress(pct float64, width int) string {
	pct = numeric.Clamp(pct, 0, 100)
	width = max(width, 2)

	filled := min(int(pct/100*float64(width)), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	style := StyleGreen
	switch {
	case pct < 33:
		style = StyleRed
	case pct < 66:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct)
}
