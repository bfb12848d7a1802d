// Package sizing gives a first-pass core and winding design for a small
// single-phase transformer from its rating.
package sizing

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidDesign = errors.New("invalid design")

const (
	DefaultFluxDensity    = 1.2 // T, silicon steel
	DefaultCurrentDensity = 2.5 // A/mm²
)

type Design struct {
	ApparentPower    float64 `json:"apparent_power"`    // VA
	PrimaryVoltage   float64 `json:"primary_voltage"`   // V
	SecondaryVoltage float64 `json:"secondary_voltage"` // V
	Frequency        float64 `json:"frequency"`         // Hz
	FluxDensity      float64 `json:"flux_density"`      // T, peak
	CurrentDensity   float64 `json:"current_density"`   // A/mm²
}

type Result struct {
	CoreArea         float64 `json:"core_area"`      // cm²
	TurnsPerVolt     float64 `json:"turns_per_volt"` // e
	PrimaryTurns     int     `json:"primary_turns"`
	SecondaryTurns   int     `json:"secondary_turns"`
	PrimaryCurrent   float64 `json:"primary_current"`
	SecondaryCurrent float64 `json:"secondary_current"`
	PrimarySection   float64 `json:"primary_section"`   // mm²
	SecondarySection float64 `json:"secondary_section"` // mm²
	PrimaryGauge     *Gauge  `json:"primary_gauge,omitempty"`
	SecondaryGauge   *Gauge  `json:"secondary_gauge,omitempty"`
}

func (d Design) validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"apparent power", d.ApparentPower},
		{"primary voltage", d.PrimaryVoltage},
		{"secondary voltage", d.SecondaryVoltage},
		{"frequency", d.Frequency},
		{"flux density", d.FluxDensity},
		{"current density", d.CurrentDensity},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive and finite, got %g", ErrInvalidDesign, f.name, f.value)
		}
	}
	return nil
}

// Size applies the classic rules: A = √S, e = 10⁴/(4.44·f·B·A), N = round(e·V),
// I = S/V and wire section I/J.
func Size(d Design) (Result, error) {
	if err := d.validate(); err != nil {
		return Result{}, err
	}

	var r Result
	r.CoreArea = math.Sqrt(d.ApparentPower)
	r.TurnsPerVolt = 1e4 / (4.44 * d.Frequency * d.FluxDensity * r.CoreArea)
	r.PrimaryTurns = int(math.Round(r.TurnsPerVolt * d.PrimaryVoltage))
	r.SecondaryTurns = int(math.Round(r.TurnsPerVolt * d.SecondaryVoltage))

	r.PrimaryCurrent = d.ApparentPower / d.PrimaryVoltage
	r.SecondaryCurrent = d.ApparentPower / d.SecondaryVoltage
	r.PrimarySection = r.PrimaryCurrent / d.CurrentDensity
	r.SecondarySection = r.SecondaryCurrent / d.CurrentDensity

	if g, ok := LookupGauge(r.PrimarySection); ok {
		r.PrimaryGauge = &g
	}
	if g, ok := LookupGauge(r.SecondarySection); ok {
		r.SecondaryGauge = &g
	}
	return r, nil
}
