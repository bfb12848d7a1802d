package command

import (
	"github.com/spf13/cobra"

	"github.com/edp1096/toy-xfmr/pkg/report"
)

func (a *app) estimateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "estimate",
		Short: "Derive the equivalent circuit from test readings",
		Long: `Derive Rc, Xm, Req and Xeq from the open-circuit and short-circuit tests,
with the winding split and excitation branch.

Example:
  xfmr estimate --oc-voltage 240 --oc-current 0.2 --oc-power 35 \
    --sc-voltage 528 --sc-current 0.757 --sc-power 120 --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), report.ForModel(m, a.openCircuit))
		},
	}
}
