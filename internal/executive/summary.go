package executive

import (
	"fmt"
	"time"

	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/provenance"
)

// Indices carries the formula outputs behind the summary for drill-down.
type Indices struct {
	SPI  formula.Output `json:"spi" yaml:"spi"`
	CPI  formula.Output `json:"cpi" yaml:"cpi"`
	IEAC formula.Output `json:"ieac" yaml:"ieac"`
	TCPI formula.Output `json:"tcpi" yaml:"tcpi"`
}

type ExecutiveSummary struct {
	AsOf        time.Time      `json:"asOf" yaml:"asOf"`
	KeyMessage  string         `json:"keyMessage" yaml:"keyMessage"`
	Metrics     ProjectMetrics `json:"metrics" yaml:"metrics"`
	Health      HealthScore    `json:"health" yaml:"health"`
	Budget      BudgetImpact   `json:"budget" yaml:"budget"`
	Schedule    ScheduleImpact `json:"schedule" yaml:"schedule"`
	Risks       []Risk         `json:"risks" yaml:"risks"`
	Wins        []Win          `json:"wins" yaml:"wins"`
	ActionItems []ActionItem   `json:"actionItems" yaml:"actionItems"`
	Forecasts   []Forecast     `json:"forecasts" yaml:"forecasts"`
	Indices     Indices        `json:"indices" yaml:"indices"`
}

// Generate builds the full summary. Forecasts start from the metrics'
// start date.
func Generate(m ProjectMetrics, opts ...provenance.Option) ExecutiveSummary {
	opts = append([]provenance.Option{provenance.WithDataSources("tasks", "employees")}, opts...)

	risks := IdentifyRisks(m)
	s := ExecutiveSummary{
		AsOf:        m.AsOf,
		Metrics:     m,
		Health:      CalculateHealthScore(m),
		Budget:      CalculateBudgetImpact(m),
		Schedule:    CalculateScheduleImpact(m),
		Risks:       risks,
		Wins:        IdentifyWins(m),
		ActionItems: GenerateActionItems(m, risks),
		Indices: Indices{
			SPI:  formula.SPI(m.EarnedValue, m.PlannedValue, opts...),
			CPI:  formula.CPI(m.EarnedValue, m.ActualCost, opts...),
			IEAC: formula.IEACCpi(m.BudgetAtCompletion, m.CPI, opts...),
			TCPI: formula.TCPIToBAC(m.BudgetAtCompletion, m.EarnedValue, m.ActualCost, opts...),
		},
	}
	var start time.Time
	if m.StartDate != nil {
		start = *m.StartDate
	}
	s.Forecasts = GenerateForecasts(m, start)
	s.KeyMessage = KeyMessage(s)
	return s
}

// KeyMessage is the one-line headline: health, then budget and schedule.
func KeyMessage(s ExecutiveSummary) string {
	return fmt.Sprintf("%s (health %.0f): %s; %s.",
		s.Health.Status.Label(), s.Health.Score, lowerFirst(s.Budget.Status), lowerFirst(s.Schedule.Status))
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'A' && b[0] <= 'Z' {
		b[0] += 'a' - 'A'
	}
	return string(b)
}
