package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/metrics"
)

// FormatMetrics renders whichever view the response carries.
func FormatMetrics(resp *contract.MetricsResponse) string {
	var b strings.Builder
	b.WriteString(Header(string(resp.View)+" metrics") + "\n")
	b.WriteString(Dim("as of "+resp.AsOf.Format("2006-01-02")) + "\n\n")

	switch resp.View {
	case contract.ViewTasks:
		b.WriteString(formatTaskMetrics(resp.Tasks))
	case contract.ViewProjects:
		b.WriteString(formatProjectMetrics(resp.Projects))
	case contract.ViewCounts:
		b.WriteString(formatCountMetrics(resp.Counts))
	case contract.ViewEfficiency:
		b.WriteString(formatEfficiency(resp.Efficiency))
	}
	return b.String()
}

func formatTaskMetrics(tasks []metrics.TaskMetrics) string {
	if len(tasks) == 0 {
		return Dim("No tasks.") + "\n"
	}
	cols := []Column{
		{Title: "ID"}, {Title: "TASK"},
		{Title: "BASELINE", Right: true}, {Title: "ACTUAL", Right: true}, {Title: "EARNED", Right: true},
		{Title: "EFF", Right: true}, {Title: "VAR H", Right: true}, {Title: "VAR", Right: true},
		{Title: "STATUS"},
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			TruncID(t.TaskID), t.TaskName,
			Hours(t.BaselineHours), Hours(t.ActualHours), Hours(t.EarnedHours),
			Percent(t.Efficiency), Signed(t.VarianceHours), Signed(t.VariancePct) + "%",
			StatusIndicator(t.Status),
		})
	}
	return RenderColumns(cols, rows)
}

func formatProjectMetrics(projects []metrics.ProjectMetricsSummary) string {
	if len(projects) == 0 {
		return Dim("No projects.") + "\n"
	}
	cols := []Column{
		{Title: "PROJECT"},
		{Title: "TASKS", Right: true}, {Title: "DONE", Right: true},
		{Title: "BASELINE", Right: true}, {Title: "ACTUAL", Right: true}, {Title: "REMAINING", Right: true},
		{Title: "EFF", Right: true}, {Title: "VAR", Right: true},
		{Title: "STATUS"}, {Title: "GRADES"},
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			p.ProjectName,
			strconv.Itoa(p.TaskCount), strconv.Itoa(p.CompletedCount),
			Hours(p.BaselineHours), Hours(p.ActualHours), Hours(p.RemainingHours),
			Percent(p.Efficiency), Signed(p.VariancePct) + "%",
			StatusIndicator(p.Status), statusCounts(p.StatusCounts),
		})
	}
	return RenderColumns(cols, rows)
}

func statusCounts(counts map[metrics.Status]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s %d", k, counts[metrics.Status(k)]))
	}
	return strings.Join(parts, ", ")
}

func formatCountMetrics(counts []metrics.CountMetricsAnalysis) string {
	if len(counts) == 0 {
		return Dim("No tasks.") + "\n"
	}
	cols := []Column{
		{Title: "TASK"},
		{Title: "COUNT", Right: true}, {Title: "SOURCE"},
		{Title: "METRIC", Right: true}, {Title: "DEFENSIBLE", Right: true}, {Title: "VARIANCE", Right: true},
		{Title: "STATUS"},
	}
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		name := c.TaskName
		if c.IsSubtask {
			name = "  " + name
		}
		rows = append(rows, []string{
			name,
			strconv.FormatFloat(c.Count, 'f', -1, 64), string(c.CountSource),
			Ratio(c.Metric), Ratio(c.Defensible), Signed(c.Variance),
			StatusIndicator(c.Status),
		})
	}
	return RenderColumns(cols, rows)
}

func formatEfficiency(rows []metrics.ProjectsEfficiencyMetrics) string {
	if len(rows) == 0 {
		return Dim("No projects.") + "\n"
	}
	cols := []Column{
		{Title: "PROJECT"},
		{Title: "TASKS", Right: true}, {Title: "EFF", Right: true},
		{Title: "PROGRESS", Right: true}, {Title: "EXPECTED", Right: true}, {Title: "RATIO", Right: true},
		{Title: "FLAG"},
	}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.ProjectName,
			strconv.Itoa(r.TaskCount), Percent(r.Efficiency),
			Percent(r.AvgTaskProgress), Percent(r.ExpectedProgress), Ratio(r.MetricsRatio),
			FlagStyle(r.Flag).Render(string(r.Flag)),
		})
	}
	return RenderColumns(cols, out)
}
