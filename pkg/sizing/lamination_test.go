package sizing

import (
	"errors"
	"math"
	"testing"
)

func near(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func TestLamination(t *testing.T) {
	tests := []struct {
		name   string
		design Design
		opt    LaminationOptions

		j, sm, a, b, ms    float64
		n1, n2             int
		iron, scu, lm, wcu float64
		gauge1, gauge2     string
		core               *CoreDimensions
	}{
		{
			name:   "300 VA long laminations 50 Hz",
			design: Design{ApparentPower: 300, PrimaryVoltage: 120, SecondaryVoltage: 220, Frequency: 50},
			j: 3, sm: 16.6988, a: 4, b: 4.6, ms: 16.7,
			n1: 287, n2: 580,
			iron: 4.6, scu: 526.7197, lm: 23.4832, wcu: 1.11322,
			gauge1: "fio 17", gauge2: "fio 20",
		},
		{
			name:   "1 kVA standard laminations split primary 60 Hz",
			design: Design{ApparentPower: 1000, PrimaryVoltage: 220, SecondaryVoltage: 110, Frequency: 60},
			opt:    LaminationOptions{StandardLaminations: true, PrimaryCircuits: 2},
			j: 2.5, sm: 35.9035, a: 5, b: 7.9, ms: 35.9,
			n1: 205, n2: 113,
			iron: 12.482, scu: 820.9091, lm: 33.6540, wcu: 2.48642,
			gauge1: "fio 14", gauge2: "fio 11",
			core: &CoreDimensions{Width: 15, Height: 20, Length: 7.9, WindowSection: 1875, Volume: 1599.75},
		},
		{
			name:   "2 kVA long laminations split windings 60 Hz",
			design: Design{ApparentPower: 2000, PrimaryVoltage: 220, SecondaryVoltage: 220, Frequency: 60},
			opt:    LaminationOptions{PrimaryCircuits: 2, SecondaryCircuits: 2},
			j: 2, sm: 44.4972, a: 5, b: 9.8, ms: 44.5,
			n1: 166, n2: 182,
			iron: 15.484, scu: 1657.2727, lm: 37.4540, wcu: 5.58643,
			gauge1: "fio 10", gauge2: "fio 10",
			core: &CoreDimensions{Width: 15, Height: 20, Length: 9.8, WindowSection: 1875, Volume: 1984.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Lamination(tt.design, tt.opt)
			if err != nil {
				t.Fatalf("Lamination failed: %v", err)
			}

			if !near(r.PrimaryPower, 1.1*tt.design.ApparentPower, 1e-9) {
				t.Errorf("expected W1 = %g, got %g", 1.1*tt.design.ApparentPower, r.PrimaryPower)
			}
			if r.CurrentDensity != tt.j {
				t.Errorf("expected %g A/mm², got %g", tt.j, r.CurrentDensity)
			}
			if !near(r.MagneticSection, tt.sm, 1e-3) || !near(r.GeometricSection, tt.sm*1.1, 2e-3) {
				t.Errorf("expected Sm ≈ %g cm², got %g (Sg %g)", tt.sm, r.MagneticSection, r.GeometricSection)
			}
			if r.TongueWidth != tt.a || !near(r.StackLength, tt.b, 1e-9) || !near(r.CoreMagneticSection, tt.ms, 1e-9) {
				t.Errorf("expected a=%g b=%g Sm=%g, got a=%g b=%g Sm=%g",
					tt.a, tt.b, tt.ms, r.TongueWidth, r.StackLength, r.CoreMagneticSection)
			}
			if r.PrimaryTurns != tt.n1 || r.SecondaryTurns != tt.n2 {
				t.Errorf("expected %d/%d turns, got %d/%d", tt.n1, tt.n2, r.PrimaryTurns, r.SecondaryTurns)
			}
			if !near(r.IronWeight, tt.iron, 1e-9) {
				t.Errorf("expected %g kg of iron, got %g", tt.iron, r.IronWeight)
			}
			if !near(r.CopperSection, tt.scu, 1e-3) || !near(r.MeanTurnLength, tt.lm, 1e-3) || !near(r.CopperWeight, tt.wcu, 1e-4) {
				t.Errorf("expected Scu=%g lm=%g Wcu=%g, got %g %g %g",
					tt.scu, tt.lm, tt.wcu, r.CopperSection, r.MeanTurnLength, r.CopperWeight)
			}
			if r.PrimaryGauge == nil || r.PrimaryGauge.Name != tt.gauge1 {
				t.Errorf("expected primary %s, got %+v", tt.gauge1, r.PrimaryGauge)
			}
			if r.SecondaryGauge == nil || r.SecondaryGauge.Name != tt.gauge2 {
				t.Errorf("expected secondary %s, got %+v", tt.gauge2, r.SecondaryGauge)
			}

			if tt.core == nil {
				if !r.StandardSizes || r.Core != nil {
					t.Errorf("expected standard sizes without core outline, got %v %+v", r.StandardSizes, r.Core)
				}
				return
			}
			if r.StandardSizes || r.Core == nil {
				t.Fatalf("expected a core outline above 800 VA, got %+v", r.Core)
			}
			c := r.Core
			if c.Width != tt.core.Width || c.Height != tt.core.Height || !near(c.Length, tt.core.Length, 1e-9) ||
				!near(c.WindowSection, tt.core.WindowSection, 1e-9) || !near(c.Volume, tt.core.Volume, 1e-6) {
				t.Errorf("expected core %+v, got %+v", *tt.core, *c)
			}
		})
	}
}

func TestLamination_Invalid(t *testing.T) {
	base := Design{ApparentPower: 300, PrimaryVoltage: 120, SecondaryVoltage: 220, Frequency: 60}
	tests := []struct {
		name   string
		mutate func(*Design)
		opt    LaminationOptions
	}{
		{"zero power", func(d *Design) { d.ApparentPower = 0 }, LaminationOptions{}},
		{"NaN voltage", func(d *Design) { d.PrimaryVoltage = math.NaN() }, LaminationOptions{}},
		{"above range", func(d *Design) { d.ApparentPower = 3500 }, LaminationOptions{}},
		{"400 Hz", func(d *Design) { d.Frequency = 400 }, LaminationOptions{}},
		{"split secondary only", func(d *Design) {}, LaminationOptions{SecondaryCircuits: 2}},
		{"three circuits", func(d *Design) {}, LaminationOptions{PrimaryCircuits: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base
			tt.mutate(&d)
			if _, err := Lamination(d, tt.opt); !errors.Is(err, ErrInvalidDesign) {
				t.Errorf("expected ErrInvalidDesign, got %v", err)
			}
		})
	}
}

func TestLamination_BandEdges(t *testing.T) {
	for _, tt := range []struct {
		va, j float64
	}{
		{500, 3}, {501, 2.5}, {1000, 2.5}, {1001, 2}, {3000, 2},
	} {
		r, err := Lamination(Design{ApparentPower: tt.va, PrimaryVoltage: 220, SecondaryVoltage: 110, Frequency: 50}, LaminationOptions{})
		if err != nil {
			t.Fatalf("%g VA: %v", tt.va, err)
		}
		if r.CurrentDensity != tt.j {
			t.Errorf("%g VA: expected %g A/mm², got %g", tt.va, tt.j, r.CurrentDensity)
		}
	}
}
