package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pulse/internal/executive"
	"github.com/alexanderramin/pulse/internal/metrics"
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

// StatusStyle colours a good/warning/bad grade.
func StatusStyle(s metrics.Status) lipgloss.Style {
	switch s {
	case metrics.StatusBad:
		return StyleRed
	case metrics.StatusWarning:
		return StyleYellow
	case metrics.StatusGood:
		return StyleGreen
	default:
		return StyleDim
	}
}

// StatusIndicator renders a grade as "● WARNING".
func StatusIndicator(s metrics.Status) string {
	label := strings.ToUpper(string(s))
	if label == "" {
		label = "UNKNOWN"
	}
	return StatusStyle(s).Render("● " + label)
}

// HealthStyle uses the health band's own colour.
func HealthStyle(s executive.HealthStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color())).Bold(true)
}

// HealthBadge renders "● AT RISK (64)".
func HealthBadge(h executive.HealthScore) string {
	return HealthStyle(h.Status).Render(fmt.Sprintf("● %s (%.0f)", strings.ToUpper(h.Status.Label()), h.Score))
}

// LevelStyle colours a risk impact or probability level.
func LevelStyle(l executive.Level) lipgloss.Style {
	switch l {
	case executive.LevelHigh:
		return StyleRed
	case executive.LevelMedium:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// FlagStyle colours an efficiency flag.
func FlagStyle(f metrics.EfficiencyFlag) lipgloss.Style {
	switch f {
	case metrics.FlagHighMetrics:
		return StyleRed
	case metrics.FlagWatch:
		return StyleYellow
	default:
		return StyleGreen
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
