package diagram

import (
	"bytes"
	"strings"
	"testing"

	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

var sampleOpenCircuit = transformer.TestMeasurement{Voltage: 240, Current: 0.2, Power: 35}

func sampleModel(t *testing.T) transformer.EquivalentCircuit {
	t.Helper()
	m, err := transformer.Derive(
		sampleOpenCircuit,
		transformer.TestMeasurement{Voltage: 528, Current: 0.757, Power: 120},
		transformer.NominalRatings{LowVoltage: 240, HighVoltage: 13200},
	)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	return m
}

func TestRegulation_VectorsCloseOnV0(t *testing.T) {
	la := transformer.NewLoadAnalyzer(sampleModel(t),
		transformer.LoadSpecification{ApparentPower: 8000, PowerFactor: 0.7, Type: transformer.Lagging})

	d, err := Regulation(la)
	if err != nil {
		t.Fatalf("Regulation failed: %v", err)
	}
	if len(d.Voltages) != 4 || len(d.Currents) != 1 {
		t.Fatalf("expected 4 voltage and 1 current arrows, got %d and %d", len(d.Voltages), len(d.Currents))
	}

	chainEnd := d.Voltages[2].To
	v0 := d.Voltages[3].To
	if (chainEnd - v0).Mag() > 1e-9 {
		t.Errorf("expected the drop chain to end on V0, got %v vs %v", chainEnd, v0)
	}
	if d.Voltages[1].From != d.Voltages[0].To {
		t.Error("expected the resistive drop to start at the tip of V2")
	}
}

func TestRegulation_InvalidPowerFactor(t *testing.T) {
	la := transformer.NewLoadAnalyzer(sampleModel(t), transformer.LoadSpecification{ApparentPower: 1, PowerFactor: -1.2})
	if _, err := Regulation(la); err == nil {
		t.Error("expected an error for pf -1.2")
	}
}

func TestExcitation_CurrentsCloseOnMeasured(t *testing.T) {
	m := sampleModel(t)
	d := Excitation(transformer.ExcitationBranch(m, sampleOpenCircuit))

	if len(d.Voltages) != 0 || len(d.Currents) != 4 {
		t.Fatalf("expected 4 current arrows only, got %d/%d", len(d.Voltages), len(d.Currents))
	}
	if got := d.Currents[0].To.Mag(); got < 0.1999 || got > 0.2001 {
		t.Errorf("expected the reference arrow scaled to |Iφ| = 0.2, got %g", got)
	}
	if (d.Currents[2].To - d.Currents[3].To).Mag() > 1e-9 {
		t.Errorf("expected Ic + Im = Iφ, got %v vs %v", d.Currents[2].To, d.Currents[3].To)
	}
	if got := len(d.Charts()); got != 1 {
		t.Errorf("expected a single chart, got %d", got)
	}
}

func TestRender_HTML(t *testing.T) {
	la := transformer.NewLoadAnalyzer(sampleModel(t),
		transformer.LoadSpecification{ApparentPower: 8000, PowerFactor: 0.7, Type: transformer.Lagging})
	d, err := Regulation(la)
	if err != nil {
		t.Fatalf("Regulation failed: %v", err)
	}

	chs := d.Charts()
	chs = append(chs, Sweep(map[string][]float64{
		"LOAD_VA": {1000, 2000},
		"REG":     {0.3, 0.7},
		"EFF":     {96, 97},
	}))

	var buf bytes.Buffer
	if err := Render(&buf, chs...); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	html := buf.String()
	for _, want := range []string{"<html", `"V2"`, `"V0"`, `"I2"`, `"REG"`, `"EFF"`, "arrow", "Load sweep"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %s in rendered page", want)
		}
	}
}
