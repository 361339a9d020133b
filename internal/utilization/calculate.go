package utilization

import (
	"math"
	"time"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/numeric"
)

const daysPerYear = 365.0

// PeriodEfficiency is one trailing trend window with logged hours.
type PeriodEfficiency struct {
	Index        int       `json:"index" yaml:"index"`
	Start        time.Time `json:"start" yaml:"start"`
	End          time.Time `json:"end" yaml:"end"`
	PlannedHours float64   `json:"plannedHours" yaml:"plannedHours"`
	ActualHours  float64   `json:"actualHours" yaml:"actualHours"`
	Efficiency   float64   `json:"efficiency" yaml:"efficiency"`
	Weight       float64   `json:"weight" yaml:"weight"`
}

type UtilizationResult struct {
	EmployeeID           string             `json:"employeeId" yaml:"employeeId"`
	EmployeeName         string             `json:"employeeName" yaml:"employeeName"`
	JobTitle             string             `json:"jobTitle,omitempty" yaml:"jobTitle,omitempty"`
	TaskCount            int                `json:"taskCount" yaml:"taskCount"`
	AnnualCapacity       float64            `json:"annualCapacity" yaml:"annualCapacity"`
	ProRatedCapacity     float64            `json:"proRatedCapacity" yaml:"proRatedCapacity"`
	AssignedHours        float64            `json:"assignedHours" yaml:"assignedHours"`
	ActualHoursLogged    float64            `json:"actualHoursLogged" yaml:"actualHoursLogged"`
	ProjectedUtilization float64            `json:"projectedUtilization" yaml:"projectedUtilization"`
	CurrentUtilization   float64            `json:"currentUtilization" yaml:"currentUtilization"`
	CurrentEfficiency    float64            `json:"currentEfficiency" yaml:"currentEfficiency"`
	ProjectedEfficiency  float64            `json:"projectedEfficiency" yaml:"projectedEfficiency"`
	Trend                []PeriodEfficiency `json:"trend" yaml:"trend"`
	Warnings             []string           `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// ProRatedCapacity is the share of annual capacity available by asOf.
func (e *Engine) ProRatedCapacity(asOf time.Time) float64 {
	return e.cfg.AnnualCapacity * float64(asOf.YearDay()) / daysPerYear
}

// Calculate returns one result per employee, in input order.
func (e *Engine) Calculate(data Data, asOf time.Time) []UtilizationResult {
	idx := buildAliasIndex(data.Employees)
	warnings := idx.sharedNameWarnings(data.Employees)

	tasksByEmp := make([][]*domain.Task, len(data.Employees))
	for i := range data.Tasks {
		t := &data.Tasks[i]
		for _, ei := range idx.match([]string{t.EmployeeID, t.ResourceID}, []string{t.AssignedResource}) {
			tasksByEmp[ei] = append(tasksByEmp[ei], t)
		}
	}
	hoursByEmp := make([][]*domain.HourEntry, len(data.Employees))
	for i := range data.Hours {
		h := &data.Hours[i]
		for _, ei := range idx.match([]string{h.EmployeeID}, []string{h.EmployeeName}) {
			hoursByEmp[ei] = append(hoursByEmp[ei], h)
		}
	}

	capacity := e.cfg.AnnualCapacity
	proRated := e.ProRatedCapacity(asOf)

	out := make([]UtilizationResult, 0, len(data.Employees))
	for i, emp := range data.Employees {
		tasks, hours := tasksByEmp[i], hoursByEmp[i]

		var assigned, logged float64
		for _, t := range tasks {
			assigned += numeric.NonNegative(t.PlannedHours())
		}
		for _, h := range hours {
			logged += numeric.NonNegative(h.Hours)
		}

		current := currentEfficiency(tasks)
		trend := e.trend(tasks, hours, asOf)
		projected := current
		if len(trend) > 0 {
			projected = weightedEfficiency(trend)
		}

		out = append(out, UtilizationResult{
			EmployeeID:           emp.ID,
			EmployeeName:         emp.Name,
			JobTitle:             emp.JobTitle,
			TaskCount:            len(tasks),
			AnnualCapacity:       capacity,
			ProRatedCapacity:     numeric.Round2(proRated),
			AssignedHours:        numeric.Round2(assigned),
			ActualHoursLogged:    numeric.Round2(logged),
			ProjectedUtilization: numeric.Round2(numeric.SafeDivide(assigned, capacity, 0) * 100),
			CurrentUtilization:   numeric.Round2(numeric.SafeDivide(logged, proRated, 0) * 100),
			CurrentEfficiency:    numeric.Round2(current),
			ProjectedEfficiency:  numeric.Round2(projected),
			Trend:                trend,
			Warnings:             warnings[i],
		})
	}
	return out
}

// currentEfficiency is Σearned / Σactual over started work, or 100 when
// there is none or nothing has been logged against it.
func currentEfficiency(tasks []*domain.Task) float64 {
	var earned, actual float64
	relevant := 0
	for _, t := range tasks {
		pct := numeric.Clamp(t.PercentComplete, 0, 100)
		if !t.IsCompleted() && !t.Status.IsInProgress() && pct <= 0 {
			continue
		}
		relevant++
		earned += t.EarnedHours()
		actual += numeric.NonNegative(t.ActualHours)
	}
	if relevant == 0 || actual <= 0 {
		return 100
	}
	return earned / actual * 100
}

// trend builds up to TrendPeriods windows of PeriodLengthDays ending at
// asOf, most recent first, keeping only windows with at least one entry.
// Window i covers (asOf - (i+1)*period, asOf - i*period].
func (e *Engine) trend(tasks []*domain.Task, hours []*domain.HourEntry, asOf time.Time) []PeriodEfficiency {
	period := time.Duration(e.cfg.PeriodLengthDays) * 24 * time.Hour
	periodDays := float64(e.cfg.PeriodLengthDays)

	var out []PeriodEfficiency
	for i := 0; i < e.cfg.TrendPeriods; i++ {
		end := asOf.Add(-time.Duration(i) * period)
		start := end.Add(-period)

		var actual float64
		entries := 0
		for _, h := range hours {
			if h.Date.After(start) && !h.Date.After(end) {
				entries++
				actual += numeric.NonNegative(h.Hours)
			}
		}
		if entries == 0 {
			continue
		}

		var planned float64
		for _, t := range tasks {
			if t.StartDate == nil || t.EndDate == nil {
				continue
			}
			if t.StartDate.After(end) || !t.EndDate.After(start) {
				continue
			}
			taskDays := math.Max(1, t.EndDate.Sub(*t.StartDate).Hours()/24)
			planned += numeric.NonNegative(t.BaselineHours) * math.Min(periodDays/taskDays, 1)
		}

		eff := 100.0
		if actual > 0 {
			eff = planned / actual * 100
		}
		out = append(out, PeriodEfficiency{
			Index:        i,
			Start:        start,
			End:          end,
			PlannedHours: numeric.Round2(planned),
			ActualHours:  numeric.Round2(actual),
			Efficiency:   numeric.Round2(eff),
			Weight:       e.cfg.TrendWeights[i],
		})
	}
	return out
}

// weightedEfficiency blends kept windows by their configured weight,
// renormalised over the windows present. All-zero weights average evenly.
func weightedEfficiency(trend []PeriodEfficiency) float64 {
	var sum, weights float64
	for _, p := range trend {
		sum += p.Efficiency * p.Weight
		weights += p.Weight
	}
	if weights == 0 {
		for _, p := range trend {
			sum += p.Efficiency
		}
		return sum / float64(len(trend))
	}
	return sum / weights
}
