package formula

import (
	"sort"

	"github.com/alexanderramin/pulse/internal/provenance"
)

// Spec describes a formula by name for callers that pick one at runtime.
type Spec struct {
	Name string
	Args []string
	eval func(args []float64, opts ...provenance.Option) Output
}

// Eval runs the formula. Missing arguments are treated as 0.
func (s Spec) Eval(args []float64, opts ...provenance.Option) Output {
	padded := make([]float64, len(s.Args))
	copy(padded, args)
	return s.eval(padded, opts...)
}

var specs = map[string]Spec{
	"cpi": {Name: "cpi", Args: []string{"ev", "ac"}, eval: func(a []float64, o ...provenance.Option) Output {
		return CPI(a[0], a[1], o...)
	}},
	"spi": {Name: "spi", Args: []string{"ev", "pv"}, eval: func(a []float64, o ...provenance.Option) Output {
		return SPI(a[0], a[1], o...)
	}},
	"hours-variance": {Name: "hours-variance", Args: []string{"actual", "baseline"}, eval: func(a []float64, o ...provenance.Option) Output {
		return HoursVariancePct(a[0], a[1], o...)
	}},
	"health": {Name: "health", Args: []string{"spi", "cpi"}, eval: func(a []float64, o ...provenance.Option) Output {
		return HealthScore(a[0], a[1], o...)
	}},
	"ieac": {Name: "ieac", Args: []string{"bac", "cpi"}, eval: func(a []float64, o ...provenance.Option) Output {
		return IEACCpi(a[0], a[1], o...)
	}},
	"tcpi": {Name: "tcpi", Args: []string{"bac", "ev", "ac"}, eval: func(a []float64, o ...provenance.Option) Output {
		return TCPIToBAC(a[0], a[1], a[2], o...)
	}},
	"efficiency": {Name: "efficiency", Args: []string{"actual", "estimated-added"}, eval: func(a []float64, o ...provenance.Option) Output {
		return EfficiencyPct(a[0], a[1], o...)
	}},
	"task-efficiency": {Name: "task-efficiency", Args: []string{"actual", "baseline"}, eval: func(a []float64, o ...provenance.Option) Output {
		return TaskEfficiencyPct(a[0], a[1], o...)
	}},
}

// Lookup returns the formula registered under name.
func Lookup(name string) (Spec, bool) {
	s, ok := specs[name]
	return s, ok
}

// Names lists registered formula names in sorted order.
func Names() []string {
	names := make([]string, 0, len(specs))
	for n := range specs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
