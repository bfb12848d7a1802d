package transformer

import (
	"math"

	"github.com/edp1096/toy-xfmr/internal/consts"
	"github.com/edp1096/toy-xfmr/pkg/phasor"
)

// Windings splits the series impedance evenly between the two windings.
type Windings struct {
	PrimaryResistanceHigh  float64 `json:"primary_resistance_high"`  // Rp
	PrimaryReactanceHigh   float64 `json:"primary_reactance_high"`   // Xp
	SecondaryResistanceLow float64 `json:"secondary_resistance_low"` // Rs
	SecondaryReactanceLow  float64 `json:"secondary_reactance_low"`  // Xs
}

// WindingSplit assumes R1 = R2' and X1 = X2'.
func WindingSplit(m EquivalentCircuit) Windings {
	a2 := m.TurnsRatio * m.TurnsRatio
	return Windings{
		PrimaryResistanceHigh:  m.SeriesResistanceHigh / 2,
		PrimaryReactanceHigh:   m.SeriesReactanceHigh / 2,
		SecondaryResistanceLow: m.SeriesResistanceHigh / 2 / a2,
		SecondaryReactanceLow:  m.SeriesReactanceHigh / 2 / a2,
	}
}

// Excitation holds the open-circuit quantities on the low side, and the
// phasors drawn in the excitation diagram.
type Excitation struct {
	ImpedanceMagnitude Reactance     `json:"impedance_magnitude"` // |Zφ| = V/I
	CoreCurrent        float64       `json:"core_current"`        // Ic, A
	MagnetizingCurrent float64       `json:"magnetizing_current"` // Im, A
	Voltage            phasor.Phasor `json:"voltage"`             // V∠0 reference
	CorePhasor         phasor.Phasor `json:"core_phasor"`         // Ic, in phase
	MagnetizingPhasor  phasor.Phasor `json:"magnetizing_phasor"`  // Im at −90°
	Measured           phasor.Phasor `json:"measured"`            // Iφ at −arccos(pf_oc)
}

// ExcitationBranch evaluates the excitation branch at the open-circuit test
// voltage.
func ExcitationBranch(m EquivalentCircuit, openCircuit TestMeasurement) Excitation {
	v := openCircuit.Voltage
	ex := Excitation{
		ImpedanceMagnitude: UnboundedReactance(),
		Voltage:            phasor.Phasor(complex(v, 0)),
	}
	if openCircuit.Current > consts.Epsilon {
		ex.ImpedanceMagnitude = FiniteReactance(v / openCircuit.Current)
	}
	if m.CoreResistanceLow > 0 {
		ex.CoreCurrent = v / m.CoreResistanceLow
	}
	ex.MagnetizingCurrent = v * m.MagnetizingReactanceLow.Susceptance()

	ex.CorePhasor = phasor.Phasor(complex(ex.CoreCurrent, 0))
	ex.MagnetizingPhasor = phasor.Phasor(complex(0, -ex.MagnetizingCurrent))

	pf := openCircuit.PowerFactor()
	ex.Measured = phasor.Polar(openCircuit.Current, -math.Acos(pf))
	return ex
}
