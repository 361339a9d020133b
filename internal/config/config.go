// Package config resolves runtime settings: defaults, then an optional
// YAML file, then PULSE_* environment variables. Command-line flags are
// applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/pulse/internal/executive"
	"github.com/alexanderramin/pulse/internal/metrics"
	"github.com/alexanderramin/pulse/internal/utilization"
	"gopkg.in/yaml.v3"
)

type Config struct {
	DBPath      string             `yaml:"db_path"`
	LogUseCases bool               `yaml:"log_use_cases"`
	Metrics     metrics.Config     `yaml:"metrics"`
	Utilization utilization.Config `yaml:"utilization"`
	Executive   executive.Config   `yaml:"executive"`
}

// DefaultConfig returns the engine defaults with the store under ~/.pulse.
func DefaultConfig() Config {
	return Config{
		DBPath:      DefaultDBPath(),
		Metrics:     metrics.DefaultConfig(),
		Utilization: utilization.DefaultConfig(),
		Executive:   executive.DefaultConfig(),
	}
}

// DefaultDBPath is ~/.pulse/pulse.db, or pulse.db in the working
// directory when the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "pulse.db"
	}
	return filepath.Join(home, ".pulse", "pulse.db")
}

// LoadConfig builds the effective configuration. path overrides
// PULSE_CONFIG; with neither set no file is read. Invalid environment
// values are ignored and the previous value is kept.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = os.Getenv("PULSE_CONFIG")
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PULSE_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("PULSE_LOG_USE_CASES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}

	applyFloatEnv(&cfg.Metrics.WarningThreshold, "PULSE_WARNING_THRESHOLD")
	applyFloatEnv(&cfg.Metrics.BadThreshold, "PULSE_BAD_THRESHOLD")
	applyFloatEnv(&cfg.Metrics.HoursPerUnitBenchmark, "PULSE_HOURS_PER_UNIT")
	applyFloatEnv(&cfg.Metrics.MinActiveHours, "PULSE_MIN_ACTIVE_HOURS")

	applyFloatEnv(&cfg.Utilization.AnnualCapacity, "PULSE_ANNUAL_CAPACITY")
	applyIntEnv(&cfg.Utilization.TrendPeriods, "PULSE_TREND_PERIODS")
	applyIntEnv(&cfg.Utilization.PeriodLengthDays, "PULSE_PERIOD_LENGTH_DAYS")
	if v := os.Getenv("PULSE_TREND_WEIGHTS"); v != "" {
		if w, ok := parseWeights(v); ok {
			cfg.Utilization.TrendWeights = w
		}
	}

	applyFloatEnv(&cfg.Executive.BlendedHourlyRate, "PULSE_BLENDED_RATE")
}

func applyFloatEnv(dst *float64, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return
	}
	*dst = f
}

func applyIntEnv(dst *int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}

// parseWeights reads a comma-separated weight list such as "0.4,0.3,0.2,0.1".
func parseWeights(s string) ([]float64, bool) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}

// Validate rejects settings the engines cannot run with and normalises the
// trend weights to one weight per period summing to 1.
func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path must not be empty"))
	}
	if c.Metrics.WarningThreshold <= 0 {
		errs = append(errs, fmt.Errorf("metrics.warning_threshold must be positive, got %v", c.Metrics.WarningThreshold))
	}
	if c.Metrics.BadThreshold < c.Metrics.WarningThreshold {
		errs = append(errs, fmt.Errorf("metrics.bad_threshold %v is below warning_threshold %v", c.Metrics.BadThreshold, c.Metrics.WarningThreshold))
	}
	if c.Metrics.HoursPerUnitBenchmark <= 0 {
		errs = append(errs, fmt.Errorf("metrics.hours_per_unit_benchmark must be positive, got %v", c.Metrics.HoursPerUnitBenchmark))
	}
	if c.Utilization.AnnualCapacity <= 0 {
		errs = append(errs, fmt.Errorf("utilization.annual_capacity must be positive, got %v", c.Utilization.AnnualCapacity))
	}
	if c.Utilization.TrendPeriods <= 0 {
		errs = append(errs, fmt.Errorf("utilization.trend_periods must be positive, got %d", c.Utilization.TrendPeriods))
	}
	if c.Utilization.PeriodLengthDays <= 0 {
		errs = append(errs, fmt.Errorf("utilization.period_length_days must be positive, got %d", c.Utilization.PeriodLengthDays))
	}
	if c.Executive.BlendedHourlyRate <= 0 {
		errs = append(errs, fmt.Errorf("executive.blended_hourly_rate must be positive, got %v", c.Executive.BlendedHourlyRate))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}

	c.Utilization.TrendWeights = utilization.NormalizeWeights(c.Utilization.TrendWeights, c.Utilization.TrendPeriods)
	return nil
}
