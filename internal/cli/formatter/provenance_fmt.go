package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/alexanderramin/pulse/internal/provenance"
)

// FormatProvenance renders the drill-down of one computed value.
func FormatProvenance(out formula.Output) string {
	p := out.Provenance
	var b strings.Builder

	fmt.Fprintf(&b, "%s = %s\n", Bold(p.Label), provenance.FormatNumber(out.Value))
	fmt.Fprintf(&b, "  %s %s %s\n", Dim("formula"), p.Trace.Formula, Dim("("+p.ID+" "+p.Version+")"))
	if p.Scope != "" {
		fmt.Fprintf(&b, "  %s %s\n", Dim("scope"), p.Scope)
	}
	if len(p.DataSources) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", Dim("sources"), strings.Join(p.DataSources, ", "))
	}
	if p.TimeWindow.Start != nil || p.TimeWindow.End != nil {
		fmt.Fprintf(&b, "  %s %s..%s\n", Dim("window"), Date(p.TimeWindow.Start), Date(p.TimeWindow.End))
	}
	for _, in := range p.Inputs {
		fmt.Fprintf(&b, "  %s %s (%s) = %s\n", Dim("input"), in.Key, in.Label, provenance.FormatNumber(in.Value))
	}
	for i, step := range p.Trace.Steps {
		fmt.Fprintf(&b, "  %s %d. %s\n", Dim("step"), i+1, step)
	}
	return b.String()
}

// FormatFormula renders an ad-hoc formula evaluation.
func FormatFormula(resp *contract.FormulaResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s(%s)\n\n", Bold(resp.Name), strings.Join(resp.Args, ", "))
	b.WriteString(FormatProvenance(resp.Output))
	return b.String()
}
