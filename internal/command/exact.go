package command

import (
	"github.com/spf13/cobra"

	"github.com/edp1096/toy-xfmr/pkg/analysis"
	"github.com/edp1096/toy-xfmr/pkg/report"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

func (a *app) exactCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exact",
		Short: "Solve the full T-network and compare with the approximation",
		Long: `Solve the equivalent circuit with the excitation branch between the two
winding halves, source held at the rated low voltage.

Example:
  xfmr exact --va 8000 --pf 0.7 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			spec, err := a.loadSpec(m)
			if err != nil {
				return err
			}

			r := report.ForModel(m, a.openCircuit)
			summary, err := report.Summarize(transformer.NewLoadAnalyzer(m, spec))
			if err != nil {
				return err
			}
			r.Load = &summary

			exact, err := analysis.Solve(m, spec)
			if err != nil {
				return err
			}
			r.Exact = &exact
			return a.emit(cmd.OutOrStdout(), r)
		},
	}
	a.addLoadFlags(cmd)
	return cmd
}
