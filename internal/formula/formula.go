// Package formula implements the named earned-value and schedule formulas.
//
// Every function rounds its operands before using them, computes, rounds
// the result, and records both in the provenance trace. Fallbacks are
// formula-specific and intentionally not shared.
package formula

import (
	"github.com/alexanderramin/pulse/internal/numeric"
	"github.com/alexanderramin/pulse/internal/provenance"
)

// Output is the result type of every formula.
type Output = provenance.MetricOutput[float64]

const version = "1"

var (
	defCPI = provenance.Definition{
		ID: "cpi", Version: version, Label: "CPI",
		Formula: "CPI = EV / AC",
	}
	defSPI = provenance.Definition{
		ID: "spi", Version: version, Label: "SPI",
		Formula: "SPI = EV / PV",
	}
	defHoursVariance = provenance.Definition{
		ID: "hours_variance_pct", Version: version, Label: "Hours Variance %",
		Formula: "Hours Variance % = ((Actual - Baseline) / Baseline) * 100",
	}
	defHealth = provenance.Definition{
		ID: "health_score", Version: version, Label: "Health Score",
		Formula: "Health = clamp(100 - penalty(SPI) - penalty(CPI), 0, 100); penalty: <0.85 -> 30, <0.95 -> 15, <1 -> 5",
	}
	defIEAC = provenance.Definition{
		ID: "ieac_cpi", Version: version, Label: "IEAC",
		Formula: "IEAC = BAC / CPI",
	}
	defTCPI = provenance.Definition{
		ID: "tcpi_bac", Version: version, Label: "TCPI",
		Formula: "TCPI = max(0, BAC - EV) / max(0, BAC - AC)",
	}
	defEfficiency = provenance.Definition{
		ID: "efficiency_pct", Version: version, Label: "Efficiency %",
		Formula: "Efficiency % = Actual / (Actual + Estimated Added) * 100",
	}
	defTaskEfficiency = provenance.Definition{
		ID: "task_efficiency_pct", Version: version, Label: "Task Efficiency %",
		Formula: "Task Efficiency % = Actual / Baseline * 100",
	}
)

// CPI is EV/AC. Zero actual cost is treated as on budget (1).
func CPI(ev, ac float64, opts ...provenance.Option) Output {
	ev, ac = numeric.Round2(ev), numeric.Round2(ac)
	b := provenance.NewBuilder(defCPI, opts...).
		Input("ev", "EV", ev).
		Input("ac", "AC", ac)
	if ac == 0 {
		b.Step("AC is 0, CPI defaults to 1")
		return b.Build(1)
	}
	value := numeric.Round2(numeric.SafeDivide(ev, ac, 1))
	b.Step("CPI = %s / %s", provenance.FormatNumber(ev), provenance.FormatNumber(ac))
	return b.Build(value)
}

// SPI is EV/PV. Zero planned value yields 1.
func SPI(ev, pv float64, opts ...provenance.Option) Output {
	ev, pv = numeric.Round2(ev), numeric.Round2(pv)
	b := provenance.NewBuilder(defSPI, opts...).
		Input("ev", "EV", ev).
		Input("pv", "PV", pv)
	if pv == 0 {
		b.Step("PV is 0, SPI defaults to 1")
		return b.Build(1)
	}
	value := numeric.Round2(numeric.SafeDivide(ev, pv, 1))
	b.Step("SPI = %s / %s", provenance.FormatNumber(ev), provenance.FormatNumber(pv))
	return b.Build(value)
}

// HoursVariancePct is the percentage overrun of actual against baseline
// hours. A non-positive baseline yields 0.
func HoursVariancePct(actual, baseline float64, opts ...provenance.Option) Output {
	actual, baseline = numeric.Round2(actual), numeric.Round2(baseline)
	b := provenance.NewBuilder(defHoursVariance, opts...).
		Input("actual", "Actual Hours", actual).
		Input("baseline", "Baseline Hours", baseline)
	if baseline <= 0 {
		b.Step("Baseline is not positive, variance defaults to 0")
		return b.Build(0)
	}
	diff := numeric.Round2(actual - baseline)
	b.Step("Actual - Baseline = %s", provenance.FormatNumber(diff))
	value := numeric.Round(numeric.SafeDivide(actual-baseline, baseline, 0)*100, 0)
	b.Step("(%s / %s) * 100", provenance.FormatNumber(diff), provenance.FormatNumber(baseline))
	return b.Build(value)
}

// HealthPenalty returns the tiered penalty for one performance index.
func HealthPenalty(index float64) float64 {
	switch {
	case index < 0.85:
		return 30
	case index < 0.95:
		return 15
	case index < 1:
		return 5
	default:
		return 0
	}
}

// HealthScore starts at 100 and subtracts one tiered penalty per index.
func HealthScore(spi, cpi float64, opts ...provenance.Option) Output {
	spi, cpi = numeric.Round2(spi), numeric.Round2(cpi)
	b := provenance.NewBuilder(defHealth, opts...).
		Input("spi", "SPI", spi).
		Input("cpi", "CPI", cpi)
	spiPenalty := HealthPenalty(spi)
	cpiPenalty := HealthPenalty(cpi)
	b.Step("SPI penalty = %s", provenance.FormatNumber(spiPenalty))
	b.Step("CPI penalty = %s", provenance.FormatNumber(cpiPenalty))
	value := numeric.Round(numeric.Clamp(100-spiPenalty-cpiPenalty, 0, 100), 0)
	b.Step("100 - %s - %s", provenance.FormatNumber(spiPenalty), provenance.FormatNumber(cpiPenalty))
	return b.Build(value)
}

// IEACCpi is the independent estimate at completion, BAC/CPI. A zero CPI
// passes BAC through.
func IEACCpi(bac, cpi float64, opts ...provenance.Option) Output {
	bac, cpi = numeric.Round2(bac), numeric.Round2(cpi)
	b := provenance.NewBuilder(defIEAC, opts...).
		Input("bac", "BAC", bac).
		Input("cpi", "CPI", cpi)
	if cpi == 0 {
		b.Step("CPI is 0, IEAC falls back to BAC")
		return b.Build(bac)
	}
	value := numeric.Round2(numeric.SafeDivide(bac, cpi, bac))
	b.Step("IEAC = %s / %s", provenance.FormatNumber(bac), provenance.FormatNumber(cpi))
	return b.Build(value)
}

// TCPIToBAC is the efficiency required on remaining work to finish on
// budget. A zero remaining budget yields 0.
func TCPIToBAC(bac, ev, ac float64, opts ...provenance.Option) Output {
	bac, ev, ac = numeric.Round2(bac), numeric.Round2(ev), numeric.Round2(ac)
	b := provenance.NewBuilder(defTCPI, opts...).
		Input("bac", "BAC", bac).
		Input("ev", "EV", ev).
		Input("ac", "AC", ac)
	work := numeric.Round2(numeric.NonNegative(bac - ev))
	funds := numeric.Round2(numeric.NonNegative(bac - ac))
	b.Step("Remaining work = %s", provenance.FormatNumber(work))
	b.Step("Remaining funds = %s", provenance.FormatNumber(funds))
	if funds == 0 {
		b.Step("Remaining funds are 0, TCPI defaults to 0")
		return b.Build(0)
	}
	value := numeric.Round2(numeric.SafeDivide(work, funds, 0))
	b.Step("TCPI = %s / %s", provenance.FormatNumber(work), provenance.FormatNumber(funds))
	return b.Build(value)
}

// EfficiencyPct is the share of total effort already spent. A non-positive
// total yields 0.
func EfficiencyPct(actual, estimatedAdded float64, opts ...provenance.Option) Output {
	actual, estimatedAdded = numeric.Round2(actual), numeric.Round2(estimatedAdded)
	b := provenance.NewBuilder(defEfficiency, opts...).
		Input("actual", "Actual Hours", actual).
		Input("estimated_added", "Estimated Added Hours", estimatedAdded)
	total := numeric.Round2(actual + estimatedAdded)
	b.Step("Total = %s", provenance.FormatNumber(total))
	if total <= 0 {
		b.Step("Total is not positive, efficiency defaults to 0")
		return b.Build(0)
	}
	value := numeric.Round(numeric.SafeDivide(actual, total, 0)*100, 0)
	b.Step("(%s / %s) * 100", provenance.FormatNumber(actual), provenance.FormatNumber(total))
	return b.Build(value)
}

// TaskEfficiencyPct is actual hours as a percentage of baseline. A
// non-positive baseline yields 0.
func TaskEfficiencyPct(actual, baseline float64, opts ...provenance.Option) Output {
	actual, baseline = numeric.Round2(actual), numeric.Round2(baseline)
	b := provenance.NewBuilder(defTaskEfficiency, opts...).
		Input("actual", "Actual Hours", actual).
		Input("baseline", "Baseline Hours", baseline)
	if baseline <= 0 {
		b.Step("Baseline is not positive, task efficiency defaults to 0")
		return b.Build(0)
	}
	value := numeric.Round(numeric.SafeDivide(actual, baseline, 0)*100, 0)
	b.Step("(%s / %s) * 100", provenance.FormatNumber(actual), provenance.FormatNumber(baseline))
	return b.Build(value)
}
