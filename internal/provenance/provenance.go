// Package provenance defines the audit record attached to every library
// metric: what went in, which formula ran, and each step it took.
package provenance

import (
	"fmt"
	"strconv"
	"time"
)

// Input is one named operand of a metric.
type Input struct {
	Key   string  `json:"key" yaml:"key"`
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"`
}

// Trace records how a value was derived. Steps reproduce the rounded
// operands and the rounded result, in formula order.
type Trace struct {
	Formula    string    `json:"formula" yaml:"formula"`
	Steps      []string  `json:"steps" yaml:"steps"`
	ComputedAt time.Time `json:"computedAt" yaml:"computedAt"`
}

// TimeWindow bounds the data a metric was computed over. Both ends are
// optional.
type TimeWindow struct {
	Start *time.Time `json:"start,omitempty" yaml:"start,omitempty"`
	End   *time.Time `json:"end,omitempty" yaml:"end,omitempty"`
}

// MetricProvenance is the drill-down record for one computed value.
type MetricProvenance struct {
	ID          string     `json:"id" yaml:"id"`
	Version     string     `json:"version" yaml:"version"`
	Label       string     `json:"label" yaml:"label"`
	DataSources []string   `json:"dataSources" yaml:"dataSources"`
	Scope       string     `json:"scope" yaml:"scope"`
	TimeWindow  TimeWindow `json:"timeWindow" yaml:"timeWindow"`
	Inputs      []Input    `json:"inputs" yaml:"inputs"`
	Trace       Trace      `json:"trace" yaml:"trace"`
}

// MetricOutput pairs a value with its provenance. Outputs are built fresh
// per call and never shared.
type MetricOutput[T any] struct {
	Value      T                `json:"value" yaml:"value"`
	Provenance MetricProvenance `json:"provenance" yaml:"provenance"`
}

// Options carries the caller-supplied context of a metric.
type Options struct {
	Scope       string
	DataSources []string
	TimeWindow  TimeWindow
	Now         func() time.Time
}

// Option mutates Options.
type Option func(*Options)

// WithScope names what the metric covers, e.g. "portfolio" or "project:P1".
func WithScope(scope string) Option {
	return func(o *Options) {
		o.Scope = scope
	}
}

// WithDataSources lists the record sets the inputs came from.
func WithDataSources(sources ...string) Option {
	return func(o *Options) {
		o.DataSources = append([]string(nil), sources...)
	}
}

// WithTimeWindow sets the window the inputs cover.
func WithTimeWindow(start, end *time.Time) Option {
	return func(o *Options) {
		o.TimeWindow = TimeWindow{Start: start, End: end}
	}
}

// WithClock overrides the time source used for Trace.ComputedAt.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		if now != nil {
			o.Now = now
		}
	}
}

// ApplyOptions folds opts over the defaults.
func ApplyOptions(opts []Option) Options {
	o := Options{
		Scope:       "unscoped",
		DataSources: []string{},
		Now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// Definition is the static part of a metric's provenance.
type Definition struct {
	ID      string
	Version string
	Label   string
	Formula string
}

// Builder accumulates inputs and steps for one metric evaluation.
type Builder struct {
	def    Definition
	opts   Options
	inputs []Input
	steps  []string
}

// NewBuilder starts a provenance record for def.
func NewBuilder(def Definition, opts ...Option) *Builder {
	return &Builder{def: def, opts: ApplyOptions(opts)}
}

// Input records an operand and adds a "label = value" step for it.
func (b *Builder) Input(key, label string, value float64) *Builder {
	b.inputs = append(b.inputs, Input{Key: key, Label: label, Value: value})
	b.steps = append(b.steps, fmt.Sprintf("%s = %s", label, FormatNumber(value)))
	return b
}

// Step appends a free-form step.
func (b *Builder) Step(format string, args ...any) *Builder {
	b.steps = append(b.steps, fmt.Sprintf(format, args...))
	return b
}

// Build seals the record around value.
func (b *Builder) Build(value float64) MetricOutput[float64] {
	inputs := b.inputs
	if inputs == nil {
		inputs = []Input{}
	}
	steps := append([]string(nil), b.steps...)
	steps = append(steps, fmt.Sprintf("%s = %s", b.def.Label, FormatNumber(value)))
	return MetricOutput[float64]{
		Value: value,
		Provenance: MetricProvenance{
			ID:          b.def.ID,
			Version:     b.def.Version,
			Label:       b.def.Label,
			DataSources: b.opts.DataSources,
			Scope:       b.opts.Scope,
			TimeWindow:  b.opts.TimeWindow,
			Inputs:      inputs,
			Trace: Trace{
				Formula:    b.def.Formula,
				Steps:      steps,
				ComputedAt: b.opts.Now(),
			},
		},
	}
}

// FormatNumber prints v with the shortest representation that round-trips,
// so steps show exactly the operand that was used.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
