package report

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/edp1096/toy-xfmr/pkg/sizing"
	"github.com/edp1096/toy-xfmr/pkg/util"
)

var (
	Primary = lipgloss.Color("#7C3AED")
	Warning = lipgloss.Color("#F59E0B")
	Muted   = lipgloss.Color("#6B7280")

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Label = lipgloss.NewStyle().
		Foreground(Muted).
		Width(30)

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	Warn = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)
)

type row struct{ label, value string }

func section(title string, rows []row) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, Title.Render(title))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, Label.Render(r.label), r.value))
	}
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func ohms(v float64) string { return util.FormatValueFactor(v, "Ω") }
func volts(v float64) string { return util.FormatValueFactor(v, "V") }
func amps(v float64) string { return util.FormatValueFactor(v, "A") }
func watts(v float64) string { return util.FormatValueFactor(v, "W") }

func gaugeName(g *sizing.Gauge) string {
	if g == nil {
		return "out of table"
	}
	return g.Name
}

// WriteText renders every non-nil section as a styled panel.
func (r *Report) WriteText(w io.Writer) error {
	var blocks []string

	if m := r.Model; m != nil {
		blocks = append(blocks, section("Equivalent circuit", []row{
			{"Core resistance Rc (LV)", ohms(m.CoreResistanceLow)},
			{"Magnetizing reactance Xm (LV)", m.MagnetizingReactanceLow.String()},
			{"Core resistance Rc (HV)", ohms(m.CoreResistanceHigh())},
			{"Magnetizing reactance Xm (HV)", m.MagnetizingReactanceHigh().String()},
			{"Series resistance Req (HV)", ohms(m.SeriesResistanceHigh)},
			{"Series reactance Xeq (HV)", ohms(m.SeriesReactanceHigh)},
			{"Turns ratio a", util.FormatFixed(m.TurnsRatio, "")},
			{"Reference power", util.FormatApparentPower(m.ReferenceVA)},
			{"Frequency", util.FormatFrequency(m.Ratings.Frequency)},
			{"Core loss", watts(m.CoreLoss())},
		}))
		if m.Clamped() {
			notes := make([]string, 0, len(m.Diagnostics))
			for _, d := range m.Diagnostics {
				notes = append(notes, Warn.Render("! "+d.String()))
			}
			blocks = append(blocks, strings.Join(notes, "\n"))
		}
	}

	if wd := r.Windings; wd != nil {
		blocks = append(blocks, section("Winding split", []row{
			{"Primary resistance Rp (HV)", ohms(wd.PrimaryResistanceHigh)},
			{"Primary reactance Xp (HV)", ohms(wd.PrimaryReactanceHigh)},
			{"Secondary resistance Rs (LV)", ohms(wd.SecondaryResistanceLow)},
			{"Secondary reactance Xs (LV)", ohms(wd.SecondaryReactanceLow)},
		}))
	}

	if ex := r.Excitation; ex != nil {
		blocks = append(blocks, section("Excitation branch", []row{
			{"Test voltage", volts(ex.Voltage.Mag())},
			{"Excitation impedance |Zφ|", ex.ImpedanceMagnitude.String()},
			{"Core current Ic", amps(ex.CoreCurrent)},
			{"Magnetizing current Im", amps(ex.MagnetizingCurrent)},
			{"Excitation current Iφ", ex.Measured.String() + " A"},
		}))
	}

	if l := r.Load; l != nil {
		blocks = append(blocks, section("Load "+util.FormatApparentPower(l.Load.ApparentPower)+
			fmt.Sprintf(" pf %.2f %s", l.Load.PowerFactor, l.Load.Type), []row{
			{"Secondary current I2", l.SecondaryCurrent.String() + " A"},
			{"No-load voltage V0", l.NoLoadVoltage.String() + " V"},
			{"Resistive drop", l.ResistiveDrop.String() + " V"},
			{"Reactive drop", l.ReactiveDrop.String() + " V"},
			{"Output power", watts(l.OutputPower)},
			{"Copper loss", watts(l.CopperLoss)},
			{"Core loss", watts(l.CoreLoss)},
			{"Voltage regulation", util.FormatPercent(l.RegulationPercent)},
			{"Efficiency", util.FormatPercent(l.EfficiencyPercent)},
		}))
	}

	if e := r.Exact; e != nil {
		blocks = append(blocks, section("Exact T-network", []row{
			{"Terminal voltage V2", e.TerminalVoltage.String() + " V"},
			{"Primary current I1", e.PrimaryCurrent.String() + " A"},
			{"Load current I2", e.LoadCurrent.String() + " A"},
			{"Excitation current Iφ", e.ExcitationCurrent.String() + " A"},
			{"Input power", watts(e.InputPower)},
			{"Output power", watts(e.OutputPower)},
			{"Copper loss", watts(e.CopperLoss)},
			{"Core loss", watts(e.CoreLoss)},
			{"Voltage regulation", util.FormatPercent(e.RegulationPercent)},
			{"Efficiency", util.FormatPercent(e.EfficiencyPercent)},
		}))
	}

	if s := r.Sizing; s != nil {
		blocks = append(blocks, section("Core and winding sizing", []row{
			{"Core area", util.FormatFixed(s.CoreArea, "cm²")},
			{"Turns per volt", util.FormatFixed(s.TurnsPerVolt, "")},
			{"Primary turns", fmt.Sprint(s.PrimaryTurns)},
			{"Secondary turns", fmt.Sprint(s.SecondaryTurns)},
			{"Primary current", amps(s.PrimaryCurrent)},
			{"Secondary current", amps(s.SecondaryCurrent)},
			{"Primary wire", util.FormatFixed(s.PrimarySection, "mm²") + "  " + gaugeName(s.PrimaryGauge)},
			{"Secondary wire", util.FormatFixed(s.SecondarySection, "mm²") + "  " + gaugeName(s.SecondaryGauge)},
		}))
	}

	if l := r.Lamination; l != nil {
		rows := []row{
			{"Primary power W1", watts(l.PrimaryPower)},
			{"Current density", util.FormatFixed(l.CurrentDensity, "A/mm²")},
			{"Primary wire", util.FormatFixed(l.PrimarySection, "mm²") + "  " + gaugeName(l.PrimaryGauge)},
			{"Secondary wire", util.FormatFixed(l.SecondarySection, "mm²") + "  " + gaugeName(l.SecondaryGauge)},
			{"Magnetic section", util.FormatFixed(l.MagneticSection, "cm²")},
			{"Geometric section", util.FormatFixed(l.GeometricSection, "cm²")},
			{"Tongue a × stack b", fmt.Sprintf("%.1f × %.1f cm", l.TongueWidth, l.StackLength)},
			{"Core magnetic section", util.FormatFixed(l.CoreMagneticSection, "cm²")},
			{"Primary turns", fmt.Sprint(l.PrimaryTurns)},
			{"Secondary turns", fmt.Sprint(l.SecondaryTurns)},
			{"Iron weight", util.FormatFixed(l.IronWeight, "kg")},
			{"Copper section", util.FormatFixed(l.CopperSection, "mm²")},
			{"Mean turn length", util.FormatFixed(l.MeanTurnLength, "cm")},
			{"Copper weight", util.FormatFixed(l.CopperWeight, "kg")},
		}
		if c := l.Core; c != nil {
			rows = append(rows,
				row{"Core W × H × L", fmt.Sprintf("%.1f × %.1f × %.1f cm", c.Width, c.Height, c.Length)},
				row{"Window section", util.FormatFixed(c.WindowSection, "mm²")},
				row{"Core volume", util.FormatFixed(c.Volume, "cm³")},
			)
		} else {
			rows = append(rows, row{"Laminations", "standard sizes"})
		}
		blocks = append(blocks, section("Lamination core", rows))
	}

	if len(r.Sweep) > 0 {
		blocks = append(blocks, sweepTable(r.Sweep))
	}

	_, err := fmt.Fprintln(w, lipgloss.JoinVertical(lipgloss.Left, blocks...))
	return err
}

// SweepColumns is the column order shared by the console table and the
// workbook.
var SweepColumns = []string{"LOAD_VA", "I2_MAG", "I2_PHASE", "V0_MAG", "V0_PHASE", "REG", "EFF"}

func sweepKeys(results map[string][]float64) []string {
	keys := make([]string, 0, len(results))
	for _, k := range SweepColumns {
		if _, ok := results[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range results {
		if !slices.Contains(SweepColumns, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func sweepTable(results map[string][]float64) string {
	keys := sweepKeys(results)
	cell := lipgloss.NewStyle().Width(12).Align(lipgloss.Right)

	header := make([]string, len(keys))
	for i, k := range keys {
		header[i] = Title.Inherit(cell).Render(k)
	}
	lines := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	n := 0
	if len(keys) > 0 {
		n = len(results[keys[0]])
	}
	for i := range n {
		cols := make([]string, len(keys))
		for j, k := range keys {
			v := 0.0
			if i < len(results[k]) {
				v = results[k][i]
			}
			cols[j] = cell.Render(fmt.Sprintf("%.4g", v))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
