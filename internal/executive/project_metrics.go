// Package executive turns a project's delivery indices into business
// impact: health, budget and schedule effect, risks, wins, action items and
// forecast scenarios.
package executive

import (
	"math"
	"time"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/numeric"
)

// Config holds the reducer defaults.
type Config struct {
	BlendedHourlyRate  float64 `yaml:"blended_hourly_rate" json:"blendedHourlyRate"`
	DefaultQCPassRate  float64 `yaml:"default_qc_pass_rate" json:"defaultQcPassRate"`
	DefaultUtilization float64 `yaml:"default_utilization" json:"defaultUtilization"`
}

func DefaultConfig() Config {
	return Config{BlendedHourlyRate: 100, DefaultQCPassRate: 90, DefaultUtilization: 80}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BlendedHourlyRate <= 0 || !numeric.Finite(c.BlendedHourlyRate) {
		c.BlendedHourlyRate = def.BlendedHourlyRate
	}
	if c.DefaultQCPassRate <= 0 || !numeric.Finite(c.DefaultQCPassRate) {
		c.DefaultQCPassRate = def.DefaultQCPassRate
	}
	if c.DefaultUtilization <= 0 || !numeric.Finite(c.DefaultUtilization) {
		c.DefaultUtilization = def.DefaultUtilization
	}
	return c
}

// ProjectMetrics is the scalar snapshot the summary is generated from.
// Durations are in days; money is in the blended-rate currency.
type ProjectMetrics struct {
	AsOf      time.Time  `json:"asOf" yaml:"asOf"`
	StartDate *time.Time `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty" yaml:"endDate,omitempty"`

	PlannedDuration   float64 `json:"plannedDuration" yaml:"plannedDuration"`
	ActualDuration    float64 `json:"actualDuration" yaml:"actualDuration"`
	RemainingDuration float64 `json:"remainingDuration" yaml:"remainingDuration"`
	SPI               float64 `json:"spi" yaml:"spi"`

	BudgetAtCompletion float64 `json:"budgetAtCompletion" yaml:"budgetAtCompletion"`
	PlannedValue       float64 `json:"plannedValue" yaml:"plannedValue"`
	EarnedValue        float64 `json:"earnedValue" yaml:"earnedValue"`
	ActualCost         float64 `json:"actualCost" yaml:"actualCost"`
	CPI                float64 `json:"cpi" yaml:"cpi"`

	PercentComplete float64 `json:"percentComplete" yaml:"percentComplete"`
	TotalTasks      int     `json:"totalTasks" yaml:"totalTasks"`
	CompletedTasks  int     `json:"completedTasks" yaml:"completedTasks"`
	CriticalTasks   int     `json:"criticalTasks" yaml:"criticalTasks"`
	QCPassRate      float64 `json:"qcPassRate" yaml:"qcPassRate"`
	TeamSize        int     `json:"teamSize" yaml:"teamSize"`
	AvgUtilization  float64 `json:"avgUtilization" yaml:"avgUtilization"`
}

// CriticalShare is critical tasks as a fraction of all tasks.
func (m *ProjectMetrics) CriticalShare() float64 {
	return numeric.SafeDivide(float64(m.CriticalTasks), float64(m.TotalTasks), 0)
}

func days(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

// CalculateProjectMetrics reduces raw tasks and employees to ProjectMetrics.
//
// Money is hours times the blended rate. Percent complete is weighted by
// baseline hours. The planned window spans the earliest task start to the
// latest task end; without it planned value equals earned value. QC pass
// rate and utilization fall back to the configured defaults when no task
// carries a QC status or no employee carries a utilization.
func CalculateProjectMetrics(tasks []domain.Task, employees []domain.Employee, asOf time.Time, cfg Config) ProjectMetrics {
	cfg = cfg.withDefaults()
	m := ProjectMetrics{AsOf: asOf, TotalTasks: len(tasks)}

	var baseline, actual, earned float64
	var qcTagged, qcPassed int
	team := map[string]bool{}
	for i := range tasks {
		t := &tasks[i]
		baseline += numeric.NonNegative(t.BaselineHours)
		actual += numeric.NonNegative(t.ActualHours)
		earned += t.EarnedHours()

		if t.IsCompleted() {
			m.CompletedTasks++
		}
		if t.IsCritical {
			m.CriticalTasks++
		}
		if t.QCStatus.IsSet() {
			qcTagged++
			if t.QCStatus.IsPass() {
				qcPassed++
			}
		}
		if who := domain.CoalesceStr(t.EmployeeID, t.ResourceID, domain.NormalizeName(t.AssignedResource)); who != "" {
			team[who] = true
		}
		if t.StartDate != nil && (m.StartDate == nil || t.StartDate.Before(*m.StartDate)) {
			s := *t.StartDate
			m.StartDate = &s
		}
		if t.EndDate != nil && (m.EndDate == nil || t.EndDate.After(*m.EndDate)) {
			e := *t.EndDate
			m.EndDate = &e
		}
	}

	m.PercentComplete = numeric.Round2(numeric.SafeDivide(earned, baseline, 0) * 100)
	m.BudgetAtCompletion = numeric.Round2(baseline * cfg.BlendedHourlyRate)
	m.ActualCost = numeric.Round2(actual * cfg.BlendedHourlyRate)
	m.EarnedValue = numeric.Round2(m.BudgetAtCompletion * m.PercentComplete / 100)

	m.PlannedValue = m.EarnedValue
	if m.StartDate != nil && m.EndDate != nil {
		m.PlannedDuration = math.Max(1, math.Round(days(*m.StartDate, *m.EndDate)))
		m.ActualDuration = math.Max(0, math.Round(days(*m.StartDate, asOf)))
		m.RemainingDuration = math.Max(0, m.PlannedDuration-m.ActualDuration)
		elapsed := numeric.Clamp(m.ActualDuration/m.PlannedDuration, 0, 1)
		m.PlannedValue = numeric.Round2(m.BudgetAtCompletion * elapsed)
	}

	m.SPI = formula.SPI(m.EarnedValue, m.PlannedValue).Value
	m.CPI = formula.CPI(m.EarnedValue, m.ActualCost).Value

	m.QCPassRate = cfg.DefaultQCPassRate
	if qcTagged > 0 {
		m.QCPassRate = numeric.Round2(float64(qcPassed) / float64(qcTagged) * 100)
	}

	m.TeamSize = len(team)
	if m.TeamSize == 0 {
		m.TeamSize = len(employees)
	}

	var util float64
	withUtil := 0
	for _, e := range employees {
		if numeric.Finite(e.Utilization) && e.Utilization > 0 {
			util += e.Utilization
			withUtil++
		}
	}
	m.AvgUtilization = cfg.DefaultUtilization
	if withUtil > 0 {
		m.AvgUtilization = numeric.Round2(util / float64(withUtil))
	}
	return m
}
