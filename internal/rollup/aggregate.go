package rollup

import (
	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/numeric"
	"github.com/alexanderramin/pulse/internal/provenance"
)

// PortfolioAggregate sums a breakdown and carries library-computed indices.
type PortfolioAggregate struct {
	Scope           string             `json:"scope" yaml:"scope"`
	ItemCount       int                `json:"itemCount" yaml:"itemCount"`
	TaskCount       int                `json:"taskCount" yaml:"taskCount"`
	CompletedCount  int                `json:"completedCount" yaml:"completedCount"`
	BaselineHours   float64            `json:"baselineHours" yaml:"baselineHours"`
	ActualHours     float64            `json:"actualHours" yaml:"actualHours"`
	EarnedHours     float64            `json:"earnedHours" yaml:"earnedHours"`
	RemainingHours  float64            `json:"remainingHours" yaml:"remainingHours"`
	TimesheetHours  float64            `json:"timesheetHours" yaml:"timesheetHours"`
	TimesheetCost   float64            `json:"timesheetCost" yaml:"timesheetCost"`
	ChargeTypes     map[string]float64 `json:"chargeTypes" yaml:"chargeTypes"`
	PercentComplete float64            `json:"percentComplete" yaml:"percentComplete"`
	SPI             formula.Output     `json:"spi" yaml:"spi"`
	CPI             formula.Output     `json:"cpi" yaml:"cpi"`
	HealthScore     formula.Output     `json:"healthScore" yaml:"healthScore"`
	HoursVariance   formula.Output     `json:"hoursVariance" yaml:"hoursVariance"`
}

// BuildPortfolioAggregate totals the breakdown rows and evaluates SPI,
// CPI, health and hours variance on the totals through the formula
// library, so each portfolio figure carries provenance.
func BuildPortfolioAggregate(breakdown []BreakdownItem, scope string, opts ...provenance.Option) PortfolioAggregate {
	agg := PortfolioAggregate{
		Scope:       scope,
		ItemCount:   len(breakdown),
		ChargeTypes: map[string]float64{},
	}
	charges := map[string][]float64{}
	for _, item := range breakdown {
		agg.TaskCount += item.TaskCount
		agg.CompletedCount += item.CompletedCount
		for k, v := range item.ChargeTypes {
			charges[k] = append(charges[k], v)
		}
	}
	for k, vs := range charges {
		agg.ChargeTypes[k] = numeric.Round2(numeric.Sum(vs...))
	}

	agg.BaselineHours = total(breakdown, func(i BreakdownItem) float64 { return i.BaselineHours })
	agg.ActualHours = total(breakdown, func(i BreakdownItem) float64 { return i.ActualHours })
	agg.EarnedHours = total(breakdown, func(i BreakdownItem) float64 { return i.EarnedHours })
	agg.RemainingHours = total(breakdown, func(i BreakdownItem) float64 { return i.RemainingHours })
	agg.TimesheetHours = total(breakdown, func(i BreakdownItem) float64 { return i.TimesheetHours })
	agg.TimesheetCost = total(breakdown, func(i BreakdownItem) float64 { return i.TimesheetCost })
	agg.PercentComplete = numeric.Round2(numeric.SafeDivide(agg.EarnedHours, agg.BaselineHours, 0) * 100)

	metricOpts := append([]provenance.Option{
		provenance.WithScope(scope),
		provenance.WithDataSources("tasks", "hours", "projects"),
	}, opts...)

	agg.SPI = formula.SPI(agg.EarnedHours, agg.BaselineHours, metricOpts...)
	agg.CPI = formula.CPI(agg.EarnedHours, agg.ActualHours, metricOpts...)
	agg.HealthScore = formula.HealthScore(agg.SPI.Value, agg.CPI.Value, metricOpts...)
	agg.HoursVariance = formula.HoursVariancePct(agg.ActualHours, agg.BaselineHours, metricOpts...)
	return agg
}

// total sums one field across rows, skipping non-finite values, rounded to
// two decimals.
func total(rows []BreakdownItem, field func(BreakdownItem) float64) float64 {
	vals := make([]float64, len(rows))
	for i, r := range rows {
		vals[i] = field(r)
	}
	return numeric.Round2(numeric.Sum(vals...))
}
