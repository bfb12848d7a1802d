package command

import (
	"github.com/spf13/cobra"

	"github.com/edp1096/toy-xfmr/pkg/report"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

func (a *app) loadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Voltage regulation and efficiency at one load",
		Long: `Evaluate the approximate equivalent circuit at one load.

Example:
  xfmr load --va 8000 --pf 0.7 --type lagging`,
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
			return a.emit(cmd.OutOrStdout(), r)
		},
	}
	a.addLoadFlags(cmd)
	return cmd
}
