package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/rollup"
)

var breakdownColumns = []Column{
	{Title: "NAME"},
	{Title: "TASKS", Right: true},
	{Title: "DONE", Right: true},
	{Title: "BASELINE", Right: true},
	{Title: "ACTUAL", Right: true},
	{Title: "EARNED", Right: true},
	{Title: "COMPLETE", Right: true},
	{Title: "SPI", Right: true},
	{Title: "CPI", Right: true},
	{Title: "VAR", Right: true},
}

// FormatPortfolio renders the breakdown table followed by the aggregate.
func FormatPortfolio(resp *contract.PortfolioResponse) string {
	var b strings.Builder

	b.WriteString(Header("Portfolio by "+string(resp.AggregateBy)) + "\n")
	b.WriteString(Dim(fmt.Sprintf("as of %s  scope %s", resp.AsOf.Format("2006-01-02"), resp.Aggregate.Scope)) + "\n\n")

	if len(resp.Breakdown) == 0 {
		b.WriteString(Dim("No rows.") + "\n")
	} else {
		rows := make([][]string, 0, len(resp.Breakdown))
		for _, item := range resp.Breakdown {
			rows = append(rows, breakdownRow(item))
		}
		b.WriteString(RenderColumns(breakdownColumns, rows))
	}

	b.WriteString("\n" + FormatAggregate(resp.Aggregate))
	return b.String()
}

func breakdownRow(item rollup.BreakdownItem) []string {
	return []string{
		item.Name,
		strconv.Itoa(item.TaskCount),
		strconv.Itoa(item.CompletedCount),
		Hours(item.BaselineHours),
		Hours(item.ActualHours),
		Hours(item.EarnedHours),
		Percent(item.PercentComplete),
		Ratio(item.SPI),
		Ratio(item.CPI),
		Signed(item.VariancePct) + "%",
	}
}

// FormatAggregate renders the portfolio totals and indices.
func FormatAggregate(agg rollup.PortfolioAggregate) string {
	var b strings.Builder
	b.WriteString(Bold("Totals") + "\n")
	fmt.Fprintf(&b, "  Tasks       %d (%d done) across %d rows\n", agg.TaskCount, agg.CompletedCount, agg.ItemCount)
	fmt.Fprintf(&b, "  Hours       baseline %s  actual %s  earned %s  remaining %s\n",
		Hours(agg.BaselineHours), Hours(agg.ActualHours), Hours(agg.EarnedHours), Hours(agg.RemainingHours))
	fmt.Fprintf(&b, "  Timesheets  %sh  %s\n", Hours(agg.TimesheetHours), Money(agg.TimesheetCost))
	fmt.Fprintf(&b, "  Charges     %s\n", HoursByKey(agg.ChargeTypes))
	fmt.Fprintf(&b, "  Progress    %s\n", RenderProgress(agg.PercentComplete, 20))
	fmt.Fprintf(&b, "  Indices     SPI %s  CPI %s  health %.0f  hours variance %s%%\n",
		Ratio(agg.SPI.Value), Ratio(agg.CPI.Value), agg.HealthScore.Value, Signed(agg.HoursVariance.Value))
	return b.String()
}
