package transformer

import (
	"encoding/json"

	"github.com/edp1096/toy-xfmr/internal/consts"
	"github.com/edp1096/toy-xfmr/pkg/util"
)

// Reactance is either a finite value in ohms or unbounded. An unbounded
// magnetizing reactance means no magnetizing current flows. It is kept as a
// tag rather than +Inf so that it never reaches arithmetic unnoticed.
type Reactance struct {
	ohms      float64
	unbounded bool
}

func FiniteReactance(ohms float64) Reactance { return Reactance{ohms: ohms} }

func UnboundedReactance() Reactance { return Reactance{unbounded: true} }

// ReactanceFromSusceptance inverts b, going unbounded when b is ~0.
func ReactanceFromSusceptance(b float64) Reactance {
	if b < consts.Epsilon {
		return UnboundedReactance()
	}
	return FiniteReactance(1 / b)
}

// Ohms returns the value and false when the reactance is unbounded.
func (x Reactance) Ohms() (float64, bool) {
	if x.unbounded {
		return 0, false
	}
	return x.ohms, true
}

func (x Reactance) IsUnbounded() bool { return x.unbounded }

// Susceptance is 1/X, and 0 for an unbounded reactance.
func (x Reactance) Susceptance() float64 {
	if x.unbounded || x.ohms == 0 {
		return 0
	}
	return 1 / x.ohms
}

// Scale multiplies a finite reactance by k; unbounded stays unbounded.
func (x Reactance) Scale(k float64) Reactance {
	if x.unbounded {
		return x
	}
	return FiniteReactance(x.ohms * k)
}

func (x Reactance) String() string {
	if x.unbounded {
		return "unbounded"
	}
	return util.FormatValueFactor(x.ohms, "Ω")
}

// MarshalJSON writes a number, or the string "unbounded".
func (x Reactance) MarshalJSON() ([]byte, error) {
	if x.unbounded {
		return json.Marshal("unbounded")
	}
	return json.Marshal(x.ohms)
}
