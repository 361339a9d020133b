package formatter

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/pulse/internal/numeric"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDateFrom returns a human-friendly relative date string from a reference time.
func RelativeDateFrom(t time.Time, now time.Time) string {
	diff := t.Sub(now)
	days := int(math.Round(diff.Hours() / 24))

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days < 0 && days > -14:
		return fmt.Sprintf("%dd ago", -days)
	case days < 0 && days > -60:
		return fmt.Sprintf("%dw ago", -days/7)
	default:
		return fmt.Sprintf("%dmo ago", -days/30)
	}
}

// Date renders a calendar date, or "--" for nil.
func Date(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return t.Format("2006-01-02")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// Hours renders an hour figure with one decimal.
func Hours(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// Ratio renders an index such as SPI or CPI.
func Ratio(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

// Percent renders a 0..100 figure as a whole percentage.
func Percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// Signed renders v with an explicit sign and one decimal.
func Signed(v float64) string {
	return fmt.Sprintf("%+.1f", v)
}

// Money renders an amount as $1,234 in whole units. Negative amounts get a
// leading minus.
func Money(v float64) string {
	return numeric.FormatMoney(v)
}

// HoursByKey renders "a 10.0h, b 2.5h" in key order.
func HoursByKey(m map[string]float64) string {
	if len(m) == 0 {
		return "--"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s %sh", k, Hours(m[k]))
	}
	return strings.Join(parts, ", ")
}

// Warnings renders a warning list, one per line, or nothing.
func Warnings(ws []string) string {
	if len(ws) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	for _, w := range ws {
		b.WriteString(StyleYellow.Render("! "+w) + "\n")
	}
	return b.String()
}
