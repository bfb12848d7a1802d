// Package command wires the xfmr subcommands.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edp1096/toy-xfmr/internal/config"
	"github.com/edp1096/toy-xfmr/internal/logger"
	"github.com/edp1096/toy-xfmr/pkg/report"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

type loadFlags struct {
	va       float64
	pf       float64
	loadType string
}

// app holds the state shared by every subcommand of one root.
type app struct {
	cfg        *config.Config
	jsonOutput bool
	logLevel   string
	logFormat  string
	xlsxPath   string

	openCircuit  transformer.TestMeasurement
	shortCircuit transformer.TestMeasurement
	ratings      transformer.NominalRatings
	load         loadFlags
}

// NewRootCommand builds a fresh command tree. Flag defaults are the sample
// 13.2 kV / 240 V distribution transformer.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "xfmr",
		Short: "Single-phase transformer equivalent-circuit calculator",
		Long: `xfmr derives a transformer's equivalent circuit from open-circuit and
short-circuit test readings, then evaluates regulation and efficiency.

The open-circuit test is taken on the low-voltage side, the short-circuit test
on the high-voltage side.

Numeric flags accept SI prefixes and unit names: 13.2k, 757mA, 8kVA, 60Hz.

Environment Variables:
  XFMR_LOG_LEVEL   debug, info, warn, error (default: info)
  XFMR_LOG_FORMAT  text, json (default: text)
  XFMR_FREQUENCY   rated frequency in Hz (default: 60)
  XFMR_OUTPUT_DIR  directory for xlsx and html files (default: .)
  XFMR_WORKERS     concurrent sweep points (default: number of CPUs)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = a.logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.LogFormat = a.logFormat
			}
			logger.Init(cfg.LogLevel, cfg.LogFormat)
			a.cfg = cfg
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&a.jsonOutput, "json", false, "Output JSON instead of human-readable text")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level (overrides XFMR_LOG_LEVEL)")
	pf.StringVar(&a.logFormat, "log-format", "", "Log format (overrides XFMR_LOG_FORMAT)")
	pf.StringVar(&a.xlsxPath, "xlsx", "", "Also write an Excel workbook to this file")

	siVar(pf, &a.openCircuit.Voltage, "oc-voltage", 240, "Open-circuit test voltage, low side (V)")
	siVar(pf, &a.openCircuit.Current, "oc-current", 0.2, "Open-circuit test current (A)")
	siVar(pf, &a.openCircuit.Power, "oc-power", 35, "Open-circuit test power (W)")
	siVar(pf, &a.shortCircuit.Voltage, "sc-voltage", 528, "Short-circuit test voltage, high side (V)")
	siVar(pf, &a.shortCircuit.Current, "sc-current", 0.757, "Short-circuit test current (A)")
	siVar(pf, &a.shortCircuit.Power, "sc-power", 120, "Short-circuit test power (W)")
	siVar(pf, &a.ratings.LowVoltage, "low-voltage", 240, "Rated low-side voltage (V)")
	siVar(pf, &a.ratings.HighVoltage, "high-voltage", 13200, "Rated high-side voltage (V)")
	siVar(pf, &a.ratings.Frequency, "frequency", 0, "Rated frequency in Hz (overrides XFMR_FREQUENCY)")

	root.AddCommand(
		a.estimateCommand(),
		a.loadCommand(),
		a.sweepCommand(),
		a.exactCommand(),
		a.diagramCommand(),
		a.sizeCommand(),
	)
	return root
}

// Execute runs the root command
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) addLoadFlags(cmd *cobra.Command) {
	siVar(cmd.Flags(), &a.load.va, "va", 0, "Load apparent power in VA (0 uses the model's reference power)")
	a.addPowerFactorFlags(cmd)
}

// addPowerFactorFlags registers --pf and --type without --va, for commands
// that pick their own load levels.
func (a *app) addPowerFactorFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&a.load.pf, "pf", 0.7, "Load power factor, -1..1")
	cmd.Flags().StringVar(&a.load.loadType, "type", "lagging", "Load type: lagging or leading")
}

func (a *app) frequency() float64 {
	if a.ratings.Frequency > 0 {
		return a.ratings.Frequency
	}
	return a.cfg.Frequency
}

func (a *app) model() (transformer.EquivalentCircuit, error) {
	ratings := a.ratings
	ratings.Frequency = a.frequency()
	return transformer.Derive(a.openCircuit, a.shortCircuit, ratings, transformer.WithLogger(slog.Default()))
}

func (a *app) loadSpec(m transformer.EquivalentCircuit) (transformer.LoadSpecification, error) {
	lt, err := transformer.ParseLoadType(a.load.loadType)
	if err != nil {
		return transformer.LoadSpecification{}, err
	}
	va := a.load.va
	if va == 0 {
		va = m.ReferenceVA
		slog.Info("No load given, using reference power", "load_va", va)
	}
	return transformer.LoadSpecification{ApparentPower: va, PowerFactor: a.load.pf, Type: lt}, nil
}

// outputPath places relative names under XFMR_OUTPUT_DIR.
func (a *app) outputPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.cfg.OutputDir, name)
}

func (a *app) emit(w io.Writer, r *report.Report) error {
	if a.xlsxPath != "" {
		path := a.outputPath(a.xlsxPath)
		if err := r.SaveXLSX(path); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		slog.Info("Workbook written", "path", path)
	}
	if a.jsonOutput {
		return r.WriteJSON(w)
	}
	return r.WriteText(w)
}
