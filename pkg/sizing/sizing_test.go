package sizing

import (
	"errors"
	"math"
	"testing"
)

func TestSize_SmallTransformer(t *testing.T) {
	r, err := Size(Design{
		ApparentPower:    300,
		PrimaryVoltage:   120,
		SecondaryVoltage: 220,
		Frequency:        50,
		FluxDensity:      DefaultFluxDensity,
		CurrentDensity:   DefaultCurrentDensity,
	})
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}

	if math.Abs(r.CoreArea-17.3205) > 1e-4 {
		t.Errorf("expected core area ≈ 17.32 cm², got %g", r.CoreArea)
	}
	if math.Abs(r.TurnsPerVolt-2.16723) > 1e-5 {
		t.Errorf("expected ≈ 2.167 turns/V, got %g", r.TurnsPerVolt)
	}
	if r.PrimaryTurns != 260 || r.SecondaryTurns != 477 {
		t.Errorf("expected 260/477 turns, got %d/%d", r.PrimaryTurns, r.SecondaryTurns)
	}
	if r.PrimaryCurrent != 2.5 || math.Abs(r.SecondaryCurrent-1.363636) > 1e-6 {
		t.Errorf("expected currents 2.5 A / 1.364 A, got %g / %g", r.PrimaryCurrent, r.SecondaryCurrent)
	}
	if r.PrimaryGauge == nil || r.PrimaryGauge.Name != "fio 17" {
		t.Errorf("expected fio 17 for the primary, got %+v", r.PrimaryGauge)
	}
	if r.SecondaryGauge == nil || r.SecondaryGauge.Name != "fio 19" {
		t.Errorf("expected fio 19 for the secondary, got %+v", r.SecondaryGauge)
	}
}

func TestSize_InvalidDesign(t *testing.T) {
	base := Design{300, 120, 220, 50, 1.2, 2.5}
	tests := []struct {
		name   string
		mutate func(*Design)
	}{
		{"zero power", func(d *Design) { d.ApparentPower = 0 }},
		{"negative voltage", func(d *Design) { d.PrimaryVoltage = -120 }},
		{"zero secondary", func(d *Design) { d.SecondaryVoltage = 0 }},
		{"NaN frequency", func(d *Design) { d.Frequency = math.NaN() }},
		{"infinite flux", func(d *Design) { d.FluxDensity = math.Inf(1) }},
		{"zero current density", func(d *Design) { d.CurrentDensity = 0 }},
	}
	for _, tt := range tests {
		d := base
		tt.mutate(&d)
		if _, err := Size(d); !errors.Is(err, ErrInvalidDesign) {
			t.Errorf("%s: expected ErrInvalidDesign, got %v", tt.name, err)
		}
	}
}

func TestLookupGauge(t *testing.T) {
	tests := []struct {
		section float64
		want    string
		ok      bool
	}{
		{53.476, "fio 0", true},
		{42.409, "fio 1", true},
		{42.41, "fio 0", true},
		{1.0, "fio 17", true},
		{0.412, "fio 20", true},
		{0.411, "", false},
		{60, "", false},
	}
	for _, tt := range tests {
		g, ok := LookupGauge(tt.section)
		if ok != tt.ok || g.Name != tt.want {
			t.Errorf("section %g: expected (%q, %v), got (%q, %v)", tt.section, tt.want, tt.ok, g.Name, ok)
		}
	}
}

func TestGauges_Contiguous(t *testing.T) {
	table := Gauges()
	for i := 1; i < len(table); i++ {
		if table[i].Section != table[i-1].Lower {
			t.Errorf("%s does not start where %s ends", table[i].Name, table[i-1].Name)
		}
	}
}
