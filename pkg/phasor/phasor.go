// Package phasor holds the sinusoidal steady-state quantity used across the
// transformer calculations. A Phasor is a plain complex128, so the usual
// arithmetic operators apply directly.
package phasor

import (
	"encoding/json"
	"math"
	"math/cmplx"
	"strings"

	"github.com/edp1096/toy-xfmr/internal/consts"
	"github.com/edp1096/toy-xfmr/pkg/util"
)

type Phasor complex128

// Polar builds a phasor from magnitude and angle in radians.
func Polar(mag, rad float64) Phasor {
	return Phasor(cmplx.Rect(mag, rad))
}

// PolarDeg builds a phasor from magnitude and angle in degrees.
func PolarDeg(mag, deg float64) Phasor {
	return Polar(mag, deg/consts.RadToDeg)
}

func (p Phasor) Real() float64 { return real(p) }
func (p Phasor) Imag() float64 { return imag(p) }
func (p Phasor) Complex() complex128 { return complex128(p) }
func (p Phasor) Mag() float64 { return cmplx.Abs(complex128(p)) }
func (p Phasor) Phase() float64 { return cmplx.Phase(complex128(p)) }
func (p Phasor) Degrees() float64 { return p.Phase() * consts.RadToDeg }
func (p Phasor) Scale(k float64) Phasor { return p * Phasor(complex(k, 0)) }

// IsFinite reports whether both components are finite numbers.
func (p Phasor) IsFinite() bool {
	return !math.IsNaN(real(p)) && !math.IsInf(real(p), 0) &&
		!math.IsNaN(imag(p)) && !math.IsInf(imag(p), 0)
}

func (p Phasor) String() string {
	return strings.TrimSpace(util.FormatMagnitude(p.Mag())) + "<" +
		strings.TrimSpace(util.FormatPhase(p.Degrees())) + "deg"
}

type polarJSON struct {
	Real      float64 `json:"real"`
	Imag      float64 `json:"imag"`
	Magnitude float64 `json:"magnitude"`
	Degrees   float64 `json:"degrees"`
}

// MarshalJSON writes both rectangular and polar forms.
func (p Phasor) MarshalJSON() ([]byte, error) {
	return json.Marshal(polarJSON{p.Real(), p.Imag(), p.Mag(), p.Degrees()})
}

func (p *Phasor) UnmarshalJSON(data []byte) error {
	var v polarJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*p = Phasor(complex(v.Real, v.Imag))
	return nil
}
