package sizing

import (
	"fmt"
	"math"
)

const (
	// StandardLaminationLimit is the largest output power served by the
	// catalogue E-I laminations.
	StandardLaminationLimit = 800.0 // VA
	MaxLaminationPower      = 3000.0

	primaryUplift  = 1.1 // W1 = 1.1 × W2
	stackingFactor = 1.1 // geometric / magnetic section
	copperDensity  = 9.0 // g/cm³
)

// LaminationOptions selects the magnetic-section rule. The zero value is long
// laminations with a single primary and a single secondary circuit.
type LaminationOptions struct {
	StandardLaminations bool `json:"standard_laminations"` // 7.5·√(W1/f) instead of the long-lamination coefficient
	PrimaryCircuits     int  `json:"primary_circuits"`     // 1 or 2, 0 means 1
	SecondaryCircuits   int  `json:"secondary_circuits"`   // 1 or 2, 0 means 1
}

// CoreDimensions is the outline of a core built from cut laminations.
type CoreDimensions struct {
	Width         float64 `json:"width"`          // cm, 3a
	Height        float64 `json:"height"`         // cm, 4a
	Length        float64 `json:"length"`         // cm, stack b
	WindowSection float64 `json:"window_section"` // mm²
	Volume        float64 `json:"volume"`         // cm³
}

type LaminationResult struct {
	Options          LaminationOptions `json:"options"`
	PrimaryPower     float64           `json:"primary_power"` // W1, VA
	PrimaryCurrent   float64           `json:"primary_current"`
	SecondaryCurrent float64           `json:"secondary_current"`
	CurrentDensity   float64           `json:"current_density"` // A/mm², by power band
	PrimarySection   float64           `json:"primary_section"` // mm²
	SecondarySection float64           `json:"secondary_section"`
	PrimaryGauge     *Gauge            `json:"primary_gauge,omitempty"`
	SecondaryGauge   *Gauge            `json:"secondary_gauge,omitempty"`

	MagneticSection      float64 `json:"magnetic_section"`       // cm², required
	GeometricSection     float64 `json:"geometric_section"`      // cm², required
	TongueWidth          float64 `json:"tongue_width"`           // a, cm
	StackLength          float64 `json:"stack_length"`           // b, cm
	CoreGeometricSection float64 `json:"core_geometric_section"` // a·b, cm²
	CoreMagneticSection  float64 `json:"core_magnetic_section"`  // a·b/1.1, cm²

	PrimaryTurns   int     `json:"primary_turns"`
	SecondaryTurns int     `json:"secondary_turns"`
	IronWeight     float64 `json:"iron_weight"`      // kg
	CopperSection  float64 `json:"copper_section"`   // N1·s1 + N2·s2, mm²
	MeanTurnLength float64 `json:"mean_turn_length"` // cm
	CopperWeight   float64 `json:"copper_weight"`    // kg

	StandardSizes bool            `json:"standard_sizes"` // W2 ≤ 800 VA
	Core          *CoreDimensions `json:"core,omitempty"` // only above 800 VA
}

// round1 keeps one decimal, as lamination stacks are specified.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// bandCurrentDensity picks the wire current density from the output power.
func bandCurrentDensity(w2 float64) (float64, error) {
	switch {
	case w2 <= 500:
		return 3, nil
	case w2 <= 1000:
		return 2.5, nil
	case w2 <= MaxLaminationPower:
		return 2, nil
	}
	return 0, fmt.Errorf("%w: %g VA is above the %g VA lamination range", ErrInvalidDesign, w2, MaxLaminationPower)
}

// sectionRule returns the power multiplier and the √(P/f) coefficient.
func (o LaminationOptions) sectionRule() (multiplier, coefficient float64, err error) {
	pc, sc := o.PrimaryCircuits, o.SecondaryCircuits
	if pc == 0 {
		pc = 1
	}
	if sc == 0 {
		sc = 1
	}

	switch {
	case pc == 1 && sc == 1:
		multiplier, coefficient = 1, 6.5
	case pc == 2 && sc == 1:
		multiplier, coefficient = 1.25, 6
	case pc == 2 && sc == 2:
		multiplier, coefficient = 1.5, 6
	default:
		return 0, 0, fmt.Errorf("%w: %d primary and %d secondary circuits", ErrInvalidDesign, pc, sc)
	}
	if o.StandardLaminations {
		coefficient = 7.5
	}
	return multiplier, coefficient, nil
}

// turnsConstant is N/V·Sm for silicon steel laminations.
func turnsConstant(f float64) (float64, error) {
	switch f {
	case 50:
		return 40, nil
	case 60:
		return 33.5, nil
	}
	return 0, fmt.Errorf("%w: lamination turns are tabulated for 50 and 60 Hz, got %g Hz", ErrInvalidDesign, f)
}

// Lamination designs an E-I lamination core for the rated output power
// d.ApparentPower. Flux and current densities in d are not used; the current
// density comes from the power band.
func Lamination(d Design, opt LaminationOptions) (LaminationResult, error) {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"apparent power", d.ApparentPower},
		{"primary voltage", d.PrimaryVoltage},
		{"secondary voltage", d.SecondaryVoltage},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return LaminationResult{}, fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidDesign, f.name, f.value)
		}
	}
	kTurns, err := turnsConstant(d.Frequency)
	if err != nil {
		return LaminationResult{}, err
	}
	mult, coeff, err := opt.sectionRule()
	if err != nil {
		return LaminationResult{}, err
	}
	j, err := bandCurrentDensity(d.ApparentPower)
	if err != nil {
		return LaminationResult{}, err
	}

	r := LaminationResult{Options: opt, CurrentDensity: j}
	r.PrimaryPower = primaryUplift * d.ApparentPower
	r.PrimaryCurrent = r.PrimaryPower / d.PrimaryVoltage
	r.SecondaryCurrent = d.ApparentPower / d.SecondaryVoltage
	r.PrimarySection = r.PrimaryCurrent / j
	r.SecondarySection = r.SecondaryCurrent / j
	if g, ok := LookupGauge(r.PrimarySection); ok {
		r.PrimaryGauge = &g
	}
	if g, ok := LookupGauge(r.SecondarySection); ok {
		r.SecondaryGauge = &g
	}

	r.MagneticSection = coeff * math.Sqrt(mult*r.PrimaryPower/d.Frequency)
	r.GeometricSection = r.MagneticSection * stackingFactor

	a := 4.0
	if r.GeometricSection > 25 {
		a = 5
	}
	r.TongueWidth = a
	r.StackLength = round1(r.GeometricSection / a)
	r.CoreGeometricSection = a * r.StackLength
	r.CoreMagneticSection = round1(r.CoreGeometricSection / stackingFactor)

	// The secondary gets 10 % extra turns for the load drop.
	r.PrimaryTurns = int(math.Round(d.PrimaryVoltage * kTurns / r.CoreMagneticSection))
	r.SecondaryTurns = int(math.Round(d.SecondaryVoltage * kTurns / r.CoreMagneticSection * primaryUplift))

	ironPerCm := 1.0 // kg per cm of stack
	if r.CoreGeometricSection > 25 {
		ironPerCm = 1.58
	}
	r.IronWeight = ironPerCm * r.StackLength

	r.CopperSection = float64(r.PrimaryTurns)*r.PrimarySection + float64(r.SecondaryTurns)*r.SecondarySection
	r.MeanTurnLength = 2*a + 2*r.StackLength + 0.5*math.Pi*a
	r.CopperWeight = r.CopperSection / 100 * r.MeanTurnLength * copperDensity / 1000

	r.StandardSizes = d.ApparentPower <= StandardLaminationLimit
	if !r.StandardSizes {
		r.Core = &CoreDimensions{
			Width:         3 * a,
			Height:        4 * a,
			Length:        r.StackLength,
			WindowSection: 0.5 * a * 1.5 * a * 100,
			Volume:        (3*a*4*a - 0.5*a*3*a*2) * r.StackLength * 0.9,
		}
	}
	return r, nil
}
