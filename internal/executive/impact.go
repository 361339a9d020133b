package executive

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/numeric"
)

// burnTolerance is the share of the planned burn rate within which actual
// burn counts as on track.
const burnTolerance = 0.05

type BudgetImpact struct {
	BudgetAtCompletion float64 `json:"budgetAtCompletion" yaml:"budgetAtCompletion"`
	Variance           float64 `json:"variance" yaml:"variance"`
	VariancePct        float64 `json:"variancePct" yaml:"variancePct"`
	EAC                float64 `json:"eac" yaml:"eac"`
	ETC                float64 `json:"etc" yaml:"etc"`
	VarianceAtComplete float64 `json:"varianceAtComplete" yaml:"varianceAtComplete"`
	PlannedBurnRate    float64 `json:"plannedBurnRate" yaml:"plannedBurnRate"`
	ActualBurnRate     float64 `json:"actualBurnRate" yaml:"actualBurnRate"`
	OnTrack            bool    `json:"onTrack" yaml:"onTrack"`
	Status             string  `json:"status" yaml:"status"`
}

// CalculateBudgetImpact compares planned value with actual cost and
// projects the cost at completion through IEAC.
func CalculateBudgetImpact(m ProjectMetrics) BudgetImpact {
	bac := numeric.NonNegative(m.BudgetAtCompletion)
	variance := m.PlannedValue - m.ActualCost
	eac := formula.IEACCpi(bac, m.CPI).Value

	planned := numeric.SafeDivide(bac, m.PlannedDuration, 0)
	actual := numeric.SafeDivide(m.ActualCost, math.Max(m.ActualDuration, 1), 0)

	b := BudgetImpact{
		BudgetAtCompletion: bac,
		Variance:           numeric.Round2(variance),
		VariancePct:        numeric.Round2(numeric.SafeDivide(variance, m.PlannedValue, 0) * 100),
		EAC:                numeric.Round2(eac),
		ETC:                numeric.Round2(numeric.NonNegative(eac - m.ActualCost)),
		VarianceAtComplete: numeric.Round2(bac - eac),
		PlannedBurnRate:    numeric.Round2(planned),
		ActualBurnRate:     numeric.Round2(actual),
		OnTrack:            math.Abs(actual-planned) < burnTolerance*planned || (planned == 0 && actual == 0),
	}
	switch {
	case b.Variance > 0:
		b.Status = "Under budget by " + numeric.FormatMoney(b.Variance)
	case b.Variance < 0:
		b.Status = "Over budget by " + numeric.FormatMoney(-b.Variance)
	default:
		b.Status = "On budget"
	}
	return b
}

type ScheduleImpact struct {
	PlannedDuration  float64    `json:"plannedDuration" yaml:"plannedDuration"`
	VarianceDays     int        `json:"varianceDays" yaml:"varianceDays"`
	Status           string     `json:"status" yaml:"status"`
	ProjectedEndDate *time.Time `json:"projectedEndDate,omitempty" yaml:"projectedEndDate,omitempty"`
}

// CalculateScheduleImpact converts SPI into days. VarianceDays is negative
// when the project is behind.
func CalculateScheduleImpact(m ProjectMetrics) ScheduleImpact {
	planned := numeric.NonNegative(m.PlannedDuration)
	s := ScheduleImpact{
		PlannedDuration: planned,
		VarianceDays:    int(numeric.Round((m.SPI-1)*planned, 0)),
	}
	s.Status = scheduleText(s.VarianceDays)
	if m.StartDate != nil && planned > 0 {
		s.ProjectedEndDate = addDays(*m.StartDate, planned, m.SPI)
	}
	return s
}

// addDays returns start + round(duration / index) days. A non-positive
// index keeps the planned duration.
func addDays(start time.Time, duration, index float64) *time.Time {
	d := int(numeric.Round(numeric.SafeDivide(duration, index, duration), 0))
	if index <= 0 {
		d = int(numeric.Round(duration, 0))
	}
	end := start.AddDate(0, 0, d)
	return &end
}

func scheduleText(varianceDays int) string {
	n := varianceDays
	dir := "ahead"
	if n < 0 {
		n = -n
		dir = "behind"
	}
	switch {
	case n < 2:
		return "On schedule"
	case n < 7:
		return fmt.Sprintf("%d days %s", n, dir)
	}
	weeks := int(math.Round(float64(n) / 7))
	if weeks == 1 {
		return "1 week " + dir
	}
	return fmt.Sprintf("%d weeks %s", weeks, dir)
}
