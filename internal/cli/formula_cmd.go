package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/pulse/internal/cli/formatter"
	"github.com/alexanderramin/pulse/internal/contract"
	"github.com/alexanderramin/pulse/internal/formula"
	"github.com/spf13/cobra"
)

func newFormulaCmd(app *App) *cobra.Command {
	var a, b, c float64

	cmd := &cobra.Command{
		Use:   "formula [name] [values...]",
		Short: "Evaluate one formula and show its provenance trace",
		Long: "Evaluate one formula and show its provenance trace.\n\n" +
			"Operands are given positionally or with --a, --b and --c. " +
			"Run without a name to list formulas and their operands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprint(cmd.OutOrStdout(), formulaList())
				return err
			}

			values := []float64{a, b, c}
			for i, raw := range args[1:] {
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return fmt.Errorf("operand %d: %q is not a number", i+1, raw)
				}
				if i < len(values) {
					values[i] = v
				} else {
					values = append(values, v)
				}
			}

			resp, err := app.Analytics.Evaluate(cmd.Context(), contract.FormulaRequest{Name: args[0], Args: values})
			if err != nil {
				return err
			}
			return app.render(cmd.OutOrStdout(), resp, func() string { return formatter.FormatFormula(resp) })
		},
	}

	cmd.Flags().Float64Var(&a, "a", 0, "First operand")
	cmd.Flags().Float64Var(&b, "b", 0, "Second operand")
	cmd.Flags().Float64Var(&c, "c", 0, "Third operand")
	return cmd
}

func formulaList() string {
	rows := make([][]string, 0, len(formula.Names()))
	for _, name := range formula.Names() {
		spec, _ := formula.Lookup(name)
		rows = append(rows, []string{name, strings.Join(spec.Args, ", ")})
	}
	return formatter.RenderTable([]string{"FORMULA", "OPERANDS"}, rows)
}
