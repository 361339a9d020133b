package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/executive"
)

// FormatSummary renders the executive summary for one project or the whole
// scope.
func FormatSummary(resp *contract.SummaryResponse) string {
	s := resp.Summary
	m := s.Metrics
	var b strings.Builder

	b.WriteString(Header("Executive summary") + "\n")
	b.WriteString(Bold(resp.ProjectName) + "  " + HealthBadge(s.Health) + "\n")
	b.WriteString(Dim("as of "+s.AsOf.Format("2006-01-02")) + "\n\n")
	b.WriteString(s.KeyMessage + "\n\n")

	b.WriteString(Bold("Performance") + "\n")
	fmt.Fprintf(&b, "  SPI %s  CPI %s  IEAC %s  TCPI %s\n",
		Ratio(s.Indices.SPI.Value), Ratio(s.Indices.CPI.Value), Money(s.Indices.IEAC.Value), Ratio(s.Indices.TCPI.Value))
	fmt.Fprintf(&b, "  Progress %s\n", RenderProgress(m.PercentComplete, 20))
	fmt.Fprintf(&b, "  Tasks %d (%d done, %d critical)  team %d  QC %s  utilization %s\n",
		m.TotalTasks, m.CompletedTasks, m.CriticalTasks, m.TeamSize, Percent(m.QCPassRate), Percent(m.AvgUtilization))
	c := s.Health.Components
	fmt.Fprintf(&b, "  Health schedule %.0f  cost %.0f  progress %.0f  quality %.0f  utilization %.0f\n\n",
		c.Schedule, c.Cost, c.Progress, c.Quality, c.Utilization)

	b.WriteString(Bold("Budget") + "\n")
	fmt.Fprintf(&b, "  %s\n", s.Budget.Status)
	fmt.Fprintf(&b, "  BAC %s  EAC %s  ETC %s  VAC %s\n",
		Money(s.Budget.BudgetAtCompletion), Money(s.Budget.EAC), Money(s.Budget.ETC), Money(s.Budget.VarianceAtComplete))
	burn := StyleGreen.Render("on track")
	if !s.Budget.OnTrack {
		burn = StyleYellow.Render("off track")
	}
	fmt.Fprintf(&b, "  Burn %s/day planned, %s/day actual (%s)\n\n",
		Money(s.Budget.PlannedBurnRate), Money(s.Budget.ActualBurnRate), burn)

	b.WriteString(Bold("Schedule") + "\n")
	fmt.Fprintf(&b, "  %s\n", s.Schedule.Status)
	if s.Schedule.ProjectedEndDate != nil {
		fmt.Fprintf(&b, "  Projected end %s (%s)\n",
			Date(s.Schedule.ProjectedEndDate), RelativeDateFrom(*s.Schedule.ProjectedEndDate, s.AsOf))
	}

	b.WriteString(formatRisks(s.Risks))
	b.WriteString(formatWins(s.Wins))
	b.WriteString(formatActions(s.ActionItems))
	b.WriteString(formatForecasts(s.Forecasts))
	return b.String()
}

func formatRisks(risks []executive.Risk) string {
	if len(risks) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + Bold("Risks") + "\n")
	for _, r := range risks {
		fmt.Fprintf(&b, "  %s %s: %s\n", LevelStyle(r.Impact).Render("▲ "+strings.ToUpper(string(r.Impact))), r.Title, r.Description)
		fmt.Fprintf(&b, "    %s %s\n", Dim("mitigation"), r.Mitigation)
	}
	return b.String()
}

func formatWins(wins []executive.Win) string {
	if len(wins) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + Bold("Wins") + "\n")
	for _, w := range wins {
		fmt.Fprintf(&b, "  %s %s: %s\n", StyleGreen.Render("✔"), w.Title, w.Description)
	}
	return b.String()
}

func formatActions(items []executive.ActionItem) string {
	if len(items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n" + Bold("Actions") + "\n")
	for _, a := range items {
		fmt.Fprintf(&b, "  %s %s %s\n", LevelStyle(a.Priority).Render("["+string(a.Priority)+"]"), a.Title, Dim(string(a.Status)))
	}
	return b.String()
}

func formatForecasts(fs []executive.Forecast) string {
	if len(fs) == 0 {
		return ""
	}
	rows := make([][]string, 0, len(fs))
	for _, f := range fs {
		rows = append(rows, []string{
			string(f.Scenario), Percent(f.Probability),
			Ratio(f.SPI), Ratio(f.CPI), Date(f.CompletionDate), Money(f.FinalCost), Money(f.Variance),
		})
	}
	cols := []Column{
		{Title: "SCENARIO"}, {Title: "PROB", Right: true},
		{Title: "SPI", Right: true}, {Title: "CPI", Right: true}, {Title: "COMPLETION"},
		{Title: "FINAL COST", Right: true}, {Title: "VARIANCE", Right: true},
	}
	return "\n" + Bold("Forecasts") + "\n" + RenderColumns(cols, rows)
}
