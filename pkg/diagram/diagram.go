// Package diagram draws phasor diagrams and sweep curves as standalone HTML
// pages.
package diagram

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/edp1096/toy-xfmr/pkg/phasor"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

// Vector is one arrow in a phasor diagram, drawn From → To.
type Vector struct {
	Name string
	From phasor.Phasor
	To   phasor.Phasor
}

// Diagram groups the arrows of one operating condition. Voltages and
// currents get separate charts because their scales differ.
type Diagram struct {
	Title    string
	Voltages []Vector
	Currents []Vector
}

// Regulation draws V2, the resistive and reactive drops chained from its tip,
// the resulting V0, and I2.
func Regulation(la *transformer.LoadAnalyzer) (*Diagram, error) {
	i2, err := la.SecondaryCurrent()
	if err != nil {
		return nil, err
	}
	v0, err := la.NoLoadVoltage()
	if err != nil {
		return nil, err
	}
	r, x, err := la.Drops()
	if err != nil {
		return nil, err
	}

	v2 := phasor.Phasor(complex(la.Model().Ratings.LowVoltage, 0))
	load := la.Load()
	return &Diagram{
		Title: fmt.Sprintf("Voltage regulation, %.0f VA pf %.2f %s", load.ApparentPower, load.PowerFactor, load.Type),
		Voltages: []Vector{
			{Name: "V2", To: v2},
			{Name: "Req·I2", From: v2, To: v2 + r},
			{Name: "jXeq·I2", From: v2 + r, To: v2 + r + x},
			{Name: "V0", To: v0},
		},
		Currents: []Vector{
			{Name: "I2", To: i2},
		},
	}, nil
}

// Excitation draws the open-circuit currents against the test voltage. The
// voltage arrow is shrunk to the length of Iφ so it fits the current axes.
func Excitation(ex transformer.Excitation) *Diagram {
	ref := ex.Measured.Mag()
	if ref == 0 {
		ref = 1
	}
	return &Diagram{
		Title: "Excitation branch",
		Currents: []Vector{
			{Name: "V (ref)", To: phasor.Polar(ref, ex.Voltage.Phase())},
			{Name: "Ic", To: ex.CorePhasor},
			{Name: "Im", From: ex.CorePhasor, To: ex.CorePhasor + ex.MagnetizingPhasor},
			{Name: "Iφ", To: ex.Measured},
		},
	}
}

func extent(vectors []Vector) float64 {
	m := 0.0
	for _, v := range vectors {
		for _, p := range []phasor.Phasor{v.From, v.To} {
			m = math.Max(m, math.Max(math.Abs(p.Real()), math.Abs(p.Imag())))
		}
	}
	if m == 0 {
		return 1
	}
	return m * 1.1
}

func vectorChart(title, subtitle string, vectors []Vector) *charts.Line {
	lim := extent(vectors)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithLegendOpts(opts.Legend{
			Type:   "scroll",
			Orient: "vertical",
			Right:  "10",
			Top:    "20",
			Bottom: "20",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: "Re",
			Min:  -lim,
			Max:  lim,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: "Im",
			Min:  -lim,
			Max:  lim,
		}),
	)

	for _, v := range vectors {
		line.AddSeries(v.Name, []opts.LineData{
			{Value: []float64{v.From.Real(), v.From.Imag()}, Symbol: "none"},
			{Value: []float64{v.To.Real(), v.To.Imag()}, Symbol: "arrow", Name: v.To.String()},
		}, charts.WithLineChartOpts(opts.LineChart{
			ShowSymbol: opts.Bool(true),
		}))
	}
	return line
}

// Charts returns one chart per non-empty vector group.
func (d *Diagram) Charts() []components.Charter {
	var out []components.Charter
	if len(d.Voltages) > 0 {
		out = append(out, vectorChart(d.Title, "Voltages (V)", d.Voltages))
	}
	if len(d.Currents) > 0 {
		out = append(out, vectorChart(d.Title, "Currents (A)", d.Currents))
	}
	return out
}

// Sweep plots regulation and efficiency against load.
func Sweep(results map[string][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Load sweep",
			Subtitle: "Regulation and efficiency (%) against load (VA)",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{
			Scale: opts.Bool(true),
		}),
	)

	loads := results["LOAD_VA"]
	x := make([]string, len(loads))
	for i, va := range loads {
		x[i] = fmt.Sprintf("%.0f", va)
	}
	line.SetXAxis(x)

	for _, key := range []string{"REG", "EFF"} {
		items := make([]opts.LineData, len(results[key]))
		for i, v := range results[key] {
			items[i] = opts.LineData{Value: v}
		}
		line.AddSeries(key, items)
	}
	return line
}

// Render writes every chart to a single HTML page.
func Render(w io.Writer, chs ...components.Charter) error {
	page := components.NewPage()
	page.AddCharts(chs...)
	return page.Render(w)
}
