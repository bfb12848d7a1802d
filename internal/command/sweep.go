package command

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-xfmr/pkg/analysis"
	"github.com/edp1096/toy-xfmr/pkg/report"
)

func (a *app) sweepCommand() *cobra.Command {
	var (
		start, stop float64
		points      int
		spacing     string
		workers     int
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Regulation and efficiency over a range of loads",
		Long: `Evaluate the approximate equivalent circuit at evenly spaced loads for one
power factor. --stop 0 sweeps up to the model's reference power.

Example:
  xfmr sweep --start 1000 --stop 10000 --points 10 --pf 0.8 --xlsx sweep.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			if stop == 0 {
				stop = m.ReferenceVA
			}
			// The sweep sets its own loads; this only keeps loadSpec from falling back.
			a.load.va = stop
			spec, err := a.loadSpec(m)
			if err != nil {
				return err
			}

			sw := analysis.NewSweep(start, stop, points, strings.ToUpper(spacing), spec.PowerFactor, spec.Type)
			if workers == 0 {
				workers = a.cfg.Workers
			}
			sw.SetWorkers(workers)
			if err := sw.Setup(m); err != nil {
				return err
			}
			if err := sw.Execute(); err != nil {
				return err
			}

			r := report.ForModel(m, a.openCircuit)
			r.Sweep = sw.GetResults()
			return a.emit(cmd.OutOrStdout(), r)
		},
	}

	a.addPowerFactorFlags(cmd)
	siVar(cmd.Flags(), &start, "start", 0, "First load in VA")
	siVar(cmd.Flags(), &stop, "stop", 0, "Last load in VA (0 uses the model's reference power)")
	cmd.Flags().IntVar(&points, "points", 11, "Number of load points")
	cmd.Flags().StringVar(&spacing, "spacing", "LIN", "Point spacing: LIN or DEC")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent points (overrides XFMR_WORKERS)")
	return cmd
}
