// Package metrics analyses task and project variance against earned hours
// and against a per-unit hours benchmark.
package metrics

import (
	"math"

	"github.com/alexanderramin/pulse/internal/domain"
	"github.com/alexanderramin/pulse/internal/numeric"
)

// Config holds the engine thresholds. Thresholds are fractions of the
// reference value (0.10 = 10%).
type Config struct {
	WarningThreshold      float64 `yaml:"warning_threshold" json:"warningThreshold"`
	BadThreshold          float64 `yaml:"bad_threshold" json:"badThreshold"`
	HoursPerUnitBenchmark float64 `yaml:"hours_per_unit_benchmark" json:"hoursPerUnitBenchmark"`
	MinActiveHours        float64 `yaml:"min_active_hours" json:"minActiveHours"`
}

func DefaultConfig() Config {
	return Config{
		WarningThreshold:      0.10,
		BadThreshold:          0.25,
		HoursPerUnitBenchmark: 2.5,
		MinActiveHours:        8,
	}
}

// Status grades a variance.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusBad     Status = "bad"
)

// Data is the record set the engine reads.
type Data struct {
	Tasks    []domain.Task
	QCTasks  []domain.QCTask
	Projects []domain.Project
}

// Engine is stateless apart from its configuration.
type Engine struct {
	cfg Config
}

// NewEngine returns an engine; non-positive config fields take defaults.
func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.WarningThreshold <= 0 || !numeric.Finite(cfg.WarningThreshold) {
		cfg.WarningThreshold = def.WarningThreshold
	}
	if cfg.BadThreshold <= 0 || !numeric.Finite(cfg.BadThreshold) {
		cfg.BadThreshold = def.BadThreshold
	}
	if cfg.HoursPerUnitBenchmark <= 0 || !numeric.Finite(cfg.HoursPerUnitBenchmark) {
		cfg.HoursPerUnitBenchmark = def.HoursPerUnitBenchmark
	}
	if cfg.MinActiveHours <= 0 || !numeric.Finite(cfg.MinActiveHours) {
		cfg.MinActiveHours = def.MinActiveHours
	}
	return &Engine{cfg: cfg}
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// classify grades |variance| / reference against the thresholds.
func (e *Engine) classify(variance, reference float64) Status {
	ratio := numeric.SafeDivide(math.Abs(variance), reference, 0)
	switch {
	case ratio > e.cfg.BadThreshold:
		return StatusBad
	case ratio > e.cfg.WarningThreshold:
		return StatusWarning
	default:
		return StatusGood
	}
}
