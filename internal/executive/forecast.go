package executive

import (
	"math"
	"time"

	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/numeric"
)

type Scenario string

const (
	ScenarioBest     Scenario = "best"
	ScenarioExpected Scenario = "expected"
	ScenarioWorst    Scenario = "worst"
)

// Scenario multipliers and bounds applied to the current SPI and CPI.
const (
	bestMultiplier  = 1.1
	bestCap         = 1.2
	worstMultiplier = 0.85
	worstFloor      = 0.6
)

type Forecast struct {
	Scenario       Scenario   `json:"scenario" yaml:"scenario"`
	Probability    float64    `json:"probability" yaml:"probability"`
	SPI            float64    `json:"spi" yaml:"spi"`
	CPI            float64    `json:"cpi" yaml:"cpi"`
	CompletionDate *time.Time `json:"completionDate,omitempty" yaml:"completionDate,omitempty"`
	FinalCost      float64    `json:"finalCost" yaml:"finalCost"`
	Variance       float64    `json:"variance" yaml:"variance"`
}

// GenerateForecasts projects best, expected and worst outcomes from start.
// A zero start leaves CompletionDate unset.
func GenerateForecasts(m ProjectMetrics, start time.Time) []Forecast {
	best := func(x float64) float64 { return math.Min(x*bestMultiplier, bestCap) }
	same := func(x float64) float64 { return x }
	worst := func(x float64) float64 { return math.Max(x*worstMultiplier, worstFloor) }

	scenarios := []struct {
		name  Scenario
		prob  float64
		shift func(float64) float64
	}{
		{ScenarioBest, 20, best},
		{ScenarioExpected, 60, same},
		{ScenarioWorst, 20, worst},
	}

	bac := numeric.NonNegative(m.BudgetAtCompletion)
	out := make([]Forecast, 0, len(scenarios))
	for _, s := range scenarios {
		spi := numeric.Round2(s.shift(m.SPI))
		cpi := numeric.Round2(s.shift(m.CPI))
		cost := formula.IEACCpi(bac, cpi).Value
		f := Forecast{
			Scenario:    s.name,
			Probability: s.prob,
			SPI:         spi,
			CPI:         cpi,
			FinalCost:   cost,
			Variance:    numeric.Round2(bac - cost),
		}
		if !start.IsZero() && m.PlannedDuration > 0 {
			f.CompletionDate = addDays(start, m.PlannedDuration, spi)
		}
		out = append(out, f)
	}
	return out
}
