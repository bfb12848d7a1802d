package command

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-xfmr/pkg/report"
	"github.com/edp1096/toy-xfmr/pkg/sizing"
)

func (a *app) sizeCommand() *cobra.Command {
	d := sizing.Design{}
	lam := sizing.LaminationOptions{}

	cmd := &cobra.Command{
		Use:   "size",
		Short: "First-pass core and winding design",
		Long: `Size the core, turns and wire gauges of a small transformer from its
rating, then lay out an E-I lamination core for it. Uses the global
--frequency. The lamination design covers 50 and 60 Hz up to 3 kVA; outside
that only the first section is printed.

Example:
  xfmr size --power 300 --primary-voltage 120 --secondary-voltage 220 --frequency 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			d.Frequency = a.frequency()
			res, err := sizing.Size(d)
			if err != nil {
				return err
			}
			r := &report.Report{Sizing: &res}

			l, err := sizing.Lamination(d, lam)
			if err != nil {
				slog.Warn("Lamination design skipped", "error", err)
			} else {
				r.Lamination = &l
			}
			return a.emit(cmd.OutOrStdout(), r)
		},
	}

	siVar(cmd.Flags(), &d.ApparentPower, "power", 300, "Rated apparent power (VA)")
	siVar(cmd.Flags(), &d.PrimaryVoltage, "primary-voltage", 120, "Primary winding voltage (V)")
	siVar(cmd.Flags(), &d.SecondaryVoltage, "secondary-voltage", 220, "Secondary winding voltage (V)")
	siVar(cmd.Flags(), &d.FluxDensity, "flux", sizing.DefaultFluxDensity, "Peak core flux density (T)")
	siVar(cmd.Flags(), &d.CurrentDensity, "current-density", sizing.DefaultCurrentDensity, "Wire current density (A/mm²)")
	cmd.Flags().BoolVar(&lam.StandardLaminations, "standard-laminations", false, "Use the 7.5·√(W1/f) magnetic section rule")
	cmd.Flags().IntVar(&lam.PrimaryCircuits, "primary-circuits", 1, "Primary winding circuits, 1 or 2")
	cmd.Flags().IntVar(&lam.SecondaryCircuits, "secondary-circuits", 1, "Secondary winding circuits, 1 or 2")
	return cmd
}
