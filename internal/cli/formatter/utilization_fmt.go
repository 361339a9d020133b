package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/utilization"
)

var utilizationColumns = []Column{
	{Title: "EMPLOYEE"},
	{Title: "TASKS", Right: true},
	{Title: "CAPACITY", Right: true},
	{Title: "ASSIGNED", Right: true},
	{Title: "LOGGED", Right: true},
	{Title: "UTIL", Right: true},
	{Title: "PROJECTED", Right: true},
	{Title: "EFF", Right: true},
	{Title: "TREND EFF", Right: true},
}

// FormatUtilization renders one row per employee, then per-employee trend
// windows and any matching warnings.
func FormatUtilization(resp *contract.UtilizationResponse) string {
	var b strings.Builder
	b.WriteString(Header("Utilization") + "\n")
	b.WriteString(Dim("as of "+resp.AsOf.Format("2006-01-02")) + "\n\n")

	if len(resp.Results) == 0 {
		b.WriteString(Dim("No employees.") + "\n")
		b.WriteString(Warnings(resp.Warnings))
		return b.String()
	}

	rows := make([][]string, 0, len(resp.Results))
	for _, r := range resp.Results {
		rows = append(rows, []string{
			r.EmployeeName,
			strconv.Itoa(r.TaskCount),
			Hours(r.ProRatedCapacity),
			Hours(r.AssignedHours),
			Hours(r.ActualHoursLogged),
			utilizationCell(r.CurrentUtilization),
			utilizationCell(r.ProjectedUtilization),
			Percent(r.CurrentEfficiency),
			Percent(r.ProjectedEfficiency),
		})
	}
	b.WriteString(RenderColumns(utilizationColumns, rows))

	for _, r := range resp.Results {
		if len(r.Trend) == 0 {
			continue
		}
		b.WriteString("\n" + Bold(r.EmployeeName) + Dim(" trend") + "\n")
		b.WriteString(formatTrend(r.Trend))
	}

	b.WriteString(Warnings(resp.Warnings))
	return b.String()
}

func utilizationCell(v float64) string {
	text := Percent(v)
	switch {
	case v > 120:
		return StyleRed.Render(text)
	case v > 110:
		return StyleYellow.Render(text)
	default:
		return text
	}
}

func formatTrend(trend []utilization.PeriodEfficiency) string {
	cols := []Column{
		{Title: "WINDOW"},
		{Title: "PLANNED", Right: true},
		{Title: "ACTUAL", Right: true},
		{Title: "EFF", Right: true},
		{Title: "WEIGHT", Right: true},
	}
	rows := make([][]string, 0, len(trend))
	for _, p := range trend {
		rows = append(rows, []string{
			fmt.Sprintf("%s..%s", p.Start.Format("01-02"), p.End.Format("01-02")),
			Hours(p.PlannedHours),
			Hours(p.ActualHours),
			Percent(p.Efficiency),
			Ratio(p.Weight),
		})
	}
	return RenderColumns(cols, rows)
}
