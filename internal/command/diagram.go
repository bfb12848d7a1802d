package command

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-xfmr/pkg/diagram"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

func (a *app) diagramCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "diagram",
		Short: "Write regulation and excitation phasor diagrams as HTML",
		Long: `Draw the voltage regulation phasor diagram for one load and the
excitation branch diagram from the open-circuit test, on one HTML page.

Example:
  xfmr diagram --va 8000 --pf 0.7 --out phasors.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.model()
			if err != nil {
				return err
			}
			spec, err := a.loadSpec(m)
			if err != nil {
				return err
			}

			reg, err := diagram.Regulation(transformer.NewLoadAnalyzer(m, spec))
			if err != nil {
				return err
			}
			exc := diagram.Excitation(transformer.ExcitationBranch(m, a.openCircuit))

			path := a.outputPath(out)
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			defer f.Close()

			if err := diagram.Render(f, append(reg.Charts(), exc.Charts()...)...); err != nil {
				return fmt.Errorf("rendering diagrams: %w", err)
			}
			slog.Debug("Diagrams rendered", "path", path)

			w := cmd.OutOrStdout()
			if a.jsonOutput {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]string{"path": path})
			}
			fmt.Fprintf(w, "Wrote %s\n", path)
			return nil
		},
	}

	a.addLoadFlags(cmd)
	cmd.Flags().StringVar(&out, "out", "phasors.html", "HTML file to write (relative to XFMR_OUTPUT_DIR)")
	return cmd
}
