package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/edp1096/toy-xfmr/pkg/sizing"
)

type xlsxRow struct {
	name  string
	value any
	unit  string
}

func writeRows(f *excelize.File, sheet string, rows []xlsxRow) error {
	header := []any{"Quantity", "Value", "Unit"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{r.name, r.value, r.unit}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// reactanceCell writes a finite reactance as a number and an unbounded one
// as text.
func reactanceCell(ohms float64, finite bool) any {
	if !finite {
		return "unbounded"
	}
	return ohms
}

func (r *Report) modelRows() []xlsxRow {
	m := r.Model
	xmLow, okLow := m.MagnetizingReactanceLow.Ohms()
	xmHigh, okHigh := m.MagnetizingReactanceHigh().Ohms()
	rows := []xlsxRow{
		{"Rc (LV)", m.CoreResistanceLow, "Ω"},
		{"Xm (LV)", reactanceCell(xmLow, okLow), "Ω"},
		{"Rc (HV)", m.CoreResistanceHigh(), "Ω"},
		{"Xm (HV)", reactanceCell(xmHigh, okHigh), "Ω"},
		{"Req (HV)", m.SeriesResistanceHigh, "Ω"},
		{"Xeq (HV)", m.SeriesReactanceHigh, "Ω"},
		{"Turns ratio", m.TurnsRatio, ""},
		{"Reference power", m.ReferenceVA, "VA"},
		{"Core loss", m.CoreLoss(), "W"},
	}
	if w := r.Windings; w != nil {
		rows = append(rows,
			xlsxRow{"Rp (HV)", w.PrimaryResistanceHigh, "Ω"},
			xlsxRow{"Xp (HV)", w.PrimaryReactanceHigh, "Ω"},
			xlsxRow{"Rs (LV)", w.SecondaryResistanceLow, "Ω"},
			xlsxRow{"Xs (LV)", w.SecondaryReactanceLow, "Ω"},
		)
	}
	for _, d := range m.Diagnostics {
		rows = append(rows, xlsxRow{string(d.Code), d.Radicand, "radicand"})
	}
	return rows
}

func (r *Report) loadRows() []xlsxRow {
	var rows []xlsxRow
	if l := r.Load; l != nil {
		rows = append(rows,
			xlsxRow{"Load", l.Load.ApparentPower, "VA"},
			xlsxRow{"Power factor", l.Load.PowerFactor, l.Load.Type.String()},
			xlsxRow{"|I2|", l.SecondaryCurrent.Mag(), "A"},
			xlsxRow{"∠I2", l.SecondaryCurrent.Degrees(), "deg"},
			xlsxRow{"|V0|", l.NoLoadVoltage.Mag(), "V"},
			xlsxRow{"∠V0", l.NoLoadVoltage.Degrees(), "deg"},
			xlsxRow{"Output power", l.OutputPower, "W"},
			xlsxRow{"Copper loss", l.CopperLoss, "W"},
			xlsxRow{"Core loss", l.CoreLoss, "W"},
			xlsxRow{"Regulation", l.RegulationPercent, "%"},
			xlsxRow{"Efficiency", l.EfficiencyPercent, "%"},
		)
	}
	if e := r.Exact; e != nil {
		rows = append(rows,
			xlsxRow{"Exact |V2|", e.TerminalVoltage.Mag(), "V"},
			xlsxRow{"Exact |I1|", e.PrimaryCurrent.Mag(), "A"},
			xlsxRow{"Exact |Iφ|", e.ExcitationCurrent.Mag(), "A"},
			xlsxRow{"Exact input power", e.InputPower, "W"},
			xlsxRow{"Exact regulation", e.RegulationPercent, "%"},
			xlsxRow{"Exact efficiency", e.EfficiencyPercent, "%"},
		)
	}
	return rows
}

func sizingRows(s *sizing.Result) []xlsxRow {
	return []xlsxRow{
		{"Core area", s.CoreArea, "cm²"},
		{"Turns per volt", s.TurnsPerVolt, ""},
		{"Primary turns", s.PrimaryTurns, ""},
		{"Secondary turns", s.SecondaryTurns, ""},
		{"Primary current", s.PrimaryCurrent, "A"},
		{"Secondary current", s.SecondaryCurrent, "A"},
		{"Primary section", s.PrimarySection, "mm²"},
		{"Primary gauge", gaugeName(s.PrimaryGauge), ""},
		{"Secondary section", s.SecondarySection, "mm²"},
		{"Secondary gauge", gaugeName(s.SecondaryGauge), ""},
	}
}

func laminationRows(l *sizing.LaminationResult) []xlsxRow {
	rows := []xlsxRow{
		{"Primary power", l.PrimaryPower, "VA"},
		{"Current density", l.CurrentDensity, "A/mm²"},
		{"Primary section", l.PrimarySection, "mm²"},
		{"Primary gauge", gaugeName(l.PrimaryGauge), ""},
		{"Secondary section", l.SecondarySection, "mm²"},
		{"Secondary gauge", gaugeName(l.SecondaryGauge), ""},
		{"Magnetic section", l.MagneticSection, "cm²"},
		{"Geometric section", l.GeometricSection, "cm²"},
		{"Tongue width a", l.TongueWidth, "cm"},
		{"Stack length b", l.StackLength, "cm"},
		{"Core magnetic section", l.CoreMagneticSection, "cm²"},
		{"Primary turns", l.PrimaryTurns, ""},
		{"Secondary turns", l.SecondaryTurns, ""},
		{"Iron weight", l.IronWeight, "kg"},
		{"Copper section", l.CopperSection, "mm²"},
		{"Mean turn length", l.MeanTurnLength, "cm"},
		{"Copper weight", l.CopperWeight, "kg"},
	}
	if c := l.Core; c != nil {
		rows = append(rows,
			xlsxRow{"Core width", c.Width, "cm"},
			xlsxRow{"Core height", c.Height, "cm"},
			xlsxRow{"Core length", c.Length, "cm"},
			xlsxRow{"Window section", c.WindowSection, "mm²"},
			xlsxRow{"Core volume", c.Volume, "cm³"},
		)
	}
	return rows
}

func (r *Report) writeSweep(f *excelize.File, sheet string) error {
	keys := sweepKeys(r.Sweep)
	for col, k := range keys {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, k); err != nil {
			return err
		}
		for i, v := range r.Sweep[k] {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Report) workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	first := true

	addSheet := func(name string) error {
		if first {
			first = false
			return f.SetSheetName("Sheet1", name)
		}
		_, err := f.NewSheet(name)
		return err
	}

	if r.Model != nil {
		if err := addSheet("Model"); err != nil {
			return f, err
		}
		if err := writeRows(f, "Model", r.modelRows()); err != nil {
			return f, fmt.Errorf("model sheet: %w", err)
		}
	}
	if r.Load != nil || r.Exact != nil {
		if err := addSheet("Load"); err != nil {
			return f, err
		}
		if err := writeRows(f, "Load", r.loadRows()); err != nil {
			return f, fmt.Errorf("load sheet: %w", err)
		}
	}
	if s := r.Sizing; s != nil {
		if err := addSheet("Sizing"); err != nil {
			return f, err
		}
		if err := writeRows(f, "Sizing", sizingRows(s)); err != nil {
			return f, fmt.Errorf("sizing sheet: %w", err)
		}
	}
	if l := r.Lamination; l != nil {
		if err := addSheet("Lamination"); err != nil {
			return f, err
		}
		if err := writeRows(f, "Lamination", laminationRows(l)); err != nil {
			return f, fmt.Errorf("lamination sheet: %w", err)
		}
	}
	if len(r.Sweep) > 0 {
		if err := addSheet("Sweep"); err != nil {
			return f, err
		}
		if err := r.writeSweep(f, "Sweep"); err != nil {
			return f, fmt.Errorf("sweep sheet: %w", err)
		}
	}
	return f, nil
}

// WriteXLSX writes the Model, Load, Sizing, Lamination and Sweep sheets that
// have data.
func (r *Report) WriteXLSX(w io.Writer) error {
	f, err := r.workbook()
	defer f.Close()
	if err != nil {
		return err
	}
	return f.Write(w)
}

func (r *Report) SaveXLSX(filename string) error {
	f, err := r.workbook()
	defer f.Close()
	if err != nil {
		return err
	}
	return f.SaveAs(filename)
}
