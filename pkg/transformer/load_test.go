package transformer

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestSecondaryCurrent_SampleLoad(t *testing.T) {
	la := NewLoadAnalyzer(sampleModel(t), LoadSpecification{ApparentPower: 8000, PowerFactor: 0.7, Type: Lagging})

	i2, err := la.SecondaryCurrent()
	if err != nil {
		t.Fatalf("SecondaryCurrent failed: %v", err)
	}
	if !approx(i2.Mag(), 33.333, 0.001) {
		t.Errorf("expected |I2| ≈ 33.333 A, got %g", i2.Mag())
	}
	if !approx(i2.Degrees(), -45.573, 0.001) {
		t.Errorf("expected angle ≈ -45.573°, got %g", i2.Degrees())
	}
}

func TestSecondaryCurrent_MagnitudeIndependentOfSign(t *testing.T) {
	m := sampleModel(t)
	want := 5000.0 / 240

	for _, pf := range []float64{-0.95, -0.5, 0, 0.3, 0.7, 0.99} {
		lag, err := NewLoadAnalyzer(m, LoadSpecification{5000, pf, Lagging}).SecondaryCurrent()
		if err != nil {
			t.Fatalf("pf %g lagging: %v", pf, err)
		}
		lead, err := NewLoadAnalyzer(m, LoadSpecification{5000, pf, Leading}).SecondaryCurrent()
		if err != nil {
			t.Fatalf("pf %g leading: %v", pf, err)
		}
		if !approx(lag.Mag(), want, 1e-9) || !approx(lead.Mag(), want, 1e-9) {
			t.Errorf("pf %g: expected |I2| = %g, got %g and %g", pf, want, lag.Mag(), lead.Mag())
		}
		if pf > -1 && pf < 1 && !approx(lag.Degrees(), -lead.Degrees(), 1e-9) {
			t.Errorf("pf %g: expected mirrored angles, got %g and %g", pf, lag.Degrees(), lead.Degrees())
		}
	}
}

func TestSecondaryCurrent_BoundaryPowerFactor(t *testing.T) {
	m := sampleModel(t)

	unity, err := NewLoadAnalyzer(m, LoadSpecification{2400, 1.0, Lagging}).SecondaryCurrent()
	if err != nil {
		t.Fatalf("pf 1.0 rejected: %v", err)
	}
	if !approx(unity.Degrees(), 0, 1e-9) {
		t.Errorf("expected 0° at pf 1, got %g", unity.Degrees())
	}

	for _, lt := range []LoadType{Lagging, Leading} {
		reverse, err := NewLoadAnalyzer(m, LoadSpecification{2400, -1.0, lt}).SecondaryCurrent()
		if err != nil {
			t.Fatalf("pf -1.0 rejected: %v", err)
		}
		if !approx(math.Abs(reverse.Degrees()), 180, 1e-9) {
			t.Errorf("%v: expected 180° at pf -1, got %g", lt, reverse.Degrees())
		}
		if !approx(reverse.Real(), -10, 1e-9) {
			t.Errorf("%v: expected real part -10 A, got %g", lt, reverse.Real())
		}
	}
}

func TestLoadAnalyzer_InvalidPowerFactor(t *testing.T) {
	m := sampleModel(t)

	for _, pf := range []float64{1.0001, -1.5, 2, math.NaN()} {
		la := NewLoadAnalyzer(m, LoadSpecification{8000, pf, Lagging})

		if _, err := la.SecondaryCurrent(); !errors.Is(err, ErrInvalidPowerFactor) {
			t.Errorf("pf %g SecondaryCurrent: expected ErrInvalidPowerFactor, got %v", pf, err)
		}
		if _, err := la.NoLoadVoltage(); !errors.Is(err, ErrInvalidPowerFactor) {
			t.Errorf("pf %g NoLoadVoltage: expected ErrInvalidPowerFactor, got %v", pf, err)
		}
		if _, err := la.VoltageRegulationPercent(); !errors.Is(err, ErrInvalidPowerFactor) {
			t.Errorf("pf %g VoltageRegulationPercent: expected ErrInvalidPowerFactor, got %v", pf, err)
		}
		if _, err := la.EfficiencyPercent(); !errors.Is(err, ErrInvalidPowerFactor) {
			t.Errorf("pf %g EfficiencyPercent: expected ErrInvalidPowerFactor, got %v", pf, err)
		}
		if _, _, err := la.Drops(); !errors.Is(err, ErrInvalidPowerFactor) {
			t.Errorf("pf %g Drops: expected ErrInvalidPowerFactor, got %v", pf, err)
		}
	}
}

func TestRegulationAndEfficiency_SampleLoad(t *testing.T) {
	la := NewLoadAnalyzer(sampleModel(t), LoadSpecification{8000, 0.7, Lagging})

	reg, err := la.VoltageRegulationPercent()
	if err != nil {
		t.Fatalf("VoltageRegulationPercent failed: %v", err)
	}
	if !approx(reg, 2.8648, 0.001) {
		t.Errorf("expected regulation ≈ 2.865%%, got %g", reg)
	}

	eff, err := la.EfficiencyPercent()
	if err != nil {
		t.Fatalf("EfficiencyPercent failed: %v", err)
	}
	if !approx(eff, 98.0406, 0.001) {
		t.Errorf("expected efficiency ≈ 98.04%%, got %g", eff)
	}

	copper, core, err := la.Losses()
	if err != nil {
		t.Fatalf("Losses failed: %v", err)
	}
	if !approx(copper, 76.917, 0.001) || !approx(core, 35, 1e-9) {
		t.Errorf("expected losses 76.917 W / 35 W, got %g / %g", copper, core)
	}
}

func TestNoLoadVoltage_DropsSumToSeriesDrop(t *testing.T) {
	la := NewLoadAnalyzer(sampleModel(t), LoadSpecification{8000, 0.7, Lagging})

	v0, err := la.NoLoadVoltage()
	if err != nil {
		t.Fatalf("NoLoadVoltage failed: %v", err)
	}
	r, x, err := la.Drops()
	if err != nil {
		t.Fatalf("Drops failed: %v", err)
	}
	sum := 240 + r + x
	if !approx(real(sum), v0.Real(), 1e-9) || !approx(imag(sum), v0.Imag(), 1e-9) {
		t.Errorf("expected V2 + drops = V0, got %v vs %v", sum, v0)
	}
}

func TestLeadingLoad_NegativeRegulation(t *testing.T) {
	la := NewLoadAnalyzer(sampleModel(t), LoadSpecification{8000, 0.2, Leading})

	reg, err := la.VoltageRegulationPercent()
	if err != nil {
		t.Fatalf("VoltageRegulationPercent failed: %v", err)
	}
	if reg >= 0 {
		t.Errorf("expected negative regulation for a strongly leading load, got %g", reg)
	}
}

func TestZeroSeriesImpedance(t *testing.T) {
	m := sampleModel(t)
	m.SeriesResistanceHigh = 0
	m.SeriesReactanceHigh = 0

	for _, lt := range []LoadType{Lagging, Leading} {
		la := NewLoadAnalyzer(m, LoadSpecification{8000, 0.7, lt})
		v0, err := la.NoLoadVoltage()
		if err != nil {
			t.Fatalf("NoLoadVoltage failed: %v", err)
		}
		if v0.Real() != 240 || v0.Imag() != 0 {
			t.Errorf("%v: expected V0 = 240+0j exactly, got %v", lt, v0.Complex())
		}
		reg, err := la.VoltageRegulationPercent()
		if err != nil {
			t.Fatalf("VoltageRegulationPercent failed: %v", err)
		}
		if reg != 0 {
			t.Errorf("%v: expected zero regulation, got %g", lt, reg)
		}
	}
}

func TestEfficiency_MonotonicInSeriesResistance(t *testing.T) {
	m := sampleModel(t)
	prev := math.Inf(1)

	for _, req := range []float64{0, 50, 100, 209.4, 400, 1000, 5000} {
		m.SeriesResistanceHigh = req
		eff, err := NewLoadAnalyzer(m, LoadSpecification{8000, 0.8, Lagging}).EfficiencyPercent()
		if err != nil {
			t.Fatalf("EfficiencyPercent failed: %v", err)
		}
		if eff > prev {
			t.Errorf("Req %g: efficiency rose from %g to %g", req, prev, eff)
		}
		prev = eff
	}
}

func TestEfficiency_ZeroInputPower(t *testing.T) {
	m := sampleModel(t)
	m.CoreResistanceLow = 0

	// A nil handler option keeps the default Info level.
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	eff, err := NewLoadAnalyzer(m, LoadSpecification{0, 0.9, Lagging}, WithLogger(logger)).EfficiencyPercent()
	if err != nil {
		t.Fatalf("EfficiencyPercent failed: %v", err)
	}
	if eff != 0 {
		t.Errorf("expected 0%% efficiency with zero input power, got %g", eff)
	}
	if out := buf.String(); !strings.Contains(out, "level=INFO") || !strings.Contains(out, "Zero input power") {
		t.Errorf("expected an info-level zero input power line, got %q", out)
	}
}

func TestLoadAnalyzer_InvalidLoad(t *testing.T) {
	m := sampleModel(t)

	tests := []struct {
		name string
		load LoadSpecification
	}{
		{"negative power", LoadSpecification{-8000, 0.7, Lagging}},
		{"NaN power", LoadSpecification{math.NaN(), 0.7, Lagging}},
		{"+Inf power", LoadSpecification{math.Inf(1), 0.7, Lagging}},
		{"-Inf power", LoadSpecification{math.Inf(-1), 0.7, Leading}},
		{"unknown type", LoadSpecification{8000, 0.7, LoadType(7)}},
		{"negative type", LoadSpecification{8000, 0.7, LoadType(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			la := NewLoadAnalyzer(m, tt.load)

			if _, err := la.SecondaryCurrent(); !errors.Is(err, ErrInvalidLoad) {
				t.Errorf("SecondaryCurrent: expected ErrInvalidLoad, got %v", err)
			}
			if _, err := la.NoLoadVoltage(); !errors.Is(err, ErrInvalidLoad) {
				t.Errorf("NoLoadVoltage: expected ErrInvalidLoad, got %v", err)
			}
			if _, err := la.VoltageRegulationPercent(); !errors.Is(err, ErrInvalidLoad) {
				t.Errorf("VoltageRegulationPercent: expected ErrInvalidLoad, got %v", err)
			}
			if _, err := la.OutputPower(); !errors.Is(err, ErrInvalidLoad) {
				t.Errorf("OutputPower: expected ErrInvalidLoad, got %v", err)
			}
			if _, err := la.EfficiencyPercent(); !errors.Is(err, ErrInvalidLoad) {
				t.Errorf("EfficiencyPercent: expected ErrInvalidLoad, got %v", err)
			}
		})
	}
}

func TestLoadAnalyzer_ZeroPowerIsValid(t *testing.T) {
	i2, err := NewLoadAnalyzer(sampleModel(t), LoadSpecification{0, 0.7, Leading}).SecondaryCurrent()
	if err != nil {
		t.Fatalf("SecondaryCurrent failed: %v", err)
	}
	if i2.Mag() != 0 {
		t.Errorf("expected zero current, got %v", i2)
	}
}

func TestParseLoadType(t *testing.T) {
	tests := []struct {
		in      string
		want    LoadType
		wantErr bool
	}{
		{"lagging", Lagging, false},
		{"Inductive", Lagging, false},
		{" leading ", Leading, false},
		{"capacitive", Leading, false},
		{"resistive", Lagging, true},
	}
	for _, tt := range tests {
		got, err := ParseLoadType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error state %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestLoadType_Text(t *testing.T) {
	b, err := Leading.MarshalText()
	if err != nil || string(b) != "leading" {
		t.Fatalf("expected leading, got %q (%v)", b, err)
	}
	var lt LoadType
	if err := lt.UnmarshalText([]byte("inductive")); err != nil || lt != Lagging {
		t.Errorf("expected Lagging, got %v (%v)", lt, err)
	}
	if err := lt.UnmarshalText([]byte("resistive")); err == nil {
		t.Error("expected an error for an unknown load type")
	}
}
