// Package utilization projects employee capacity use and efficiency from
// assigned tasks and logged hours.
package utilization

import (
	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/numeric"
)

// Config holds capacity and trend parameters. TrendWeights[0] applies to
// the most recent window.
type Config struct {
	AnnualCapacity   float64   `yaml:"annual_capacity" json:"annualCapacity"`
	TrendPeriods     int       `yaml:"trend_periods" json:"trendPeriods"`
	PeriodLengthDays int       `yaml:"period_length_days" json:"periodLengthDays"`
	TrendWeights     []float64 `yaml:"trend_weights" json:"trendWeights"`
}

func DefaultConfig() Config {
	return Config{
		AnnualCapacity:   2080,
		TrendPeriods:     4,
		PeriodLengthDays: 30,
		TrendWeights:     []float64{0.4, 0.3, 0.2, 0.1},
	}
}

// NormalizeWeights returns n weights summing to 1. Missing or invalid
// entries count as 0; if nothing positive remains every period weighs the
// same.
func NormalizeWeights(weights []float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	var sum float64
	for i := 0; i < n && i < len(weights); i++ {
		out[i] = numeric.NonNegative(weights[i])
		sum += out[i]
	}
	if sum == 0 {
		for i := range out {
			out[i] = 1 / float64(n)
		}
		return out
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Data is the record set the engine reads.
type Data struct {
	Employees []domain.Employee
	Tasks     []domain.Task
	Hours     []domain.HourEntry
}

// Engine holds an immutable, normalised configuration.
type Engine struct {
	cfg Config
}

// NewEngine fills non-positive fields with defaults and normalises the
// trend weights to TrendPeriods entries.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.AnnualCapacity <= 0 || !numeric.Finite(cfg.AnnualCapacity) {
		cfg.AnnualCapacity = def.AnnualCapacity
	}
	if cfg.TrendPeriods <= 0 {
		cfg.TrendPeriods = def.TrendPeriods
	}
	if cfg.PeriodLengthDays <= 0 {
		cfg.PeriodLengthDays = def.PeriodLengthDays
	}
	if cfg.TrendWeights == nil {
		cfg.TrendWeights = def.TrendWeights
	}
	cfg.TrendWeights = NormalizeWeights(cfg.TrendWeights, cfg.TrendPeriods)
	return &Engine{cfg: cfg}
}

// Config returns a copy of the effective configuration.
func (e *Engine) Config() Config {
	cfg := e.cfg
	cfg.TrendWeights = append([]float64(nil), e.cfg.TrendWeights...)
	return cfg
}
