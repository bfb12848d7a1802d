package transformer

import "fmt"

// DiagnosticCode names a tolerated numeric degeneracy.
type DiagnosticCode string

const (
	// The open-circuit active power exceeded the apparent power bound.
	MagnetizingRadicandClamped DiagnosticCode = "magnetizing_radicand_clamped"
	// The short-circuit resistance exceeded the impedance magnitude.
	SeriesReactanceRadicandClamped DiagnosticCode = "series_reactance_radicand_clamped"
)

// Diagnostic records a negative radicand that was clamped to zero.
type Diagnostic struct {
	Code     DiagnosticCode `json:"code"`
	Radicand float64        `json:"radicand"`
	Message  string         `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s (radicand %.4g)", d.Code, d.Message, d.Radicand)
}

// EquivalentCircuit is the two-port model derived from the open-circuit and
// short-circuit tests. Excitation-branch values are referred to the low side,
// series values to the high side. Consumers take it by value.
type EquivalentCircuit struct {
	CoreResistanceLow       float64        `json:"core_resistance_low"`       // Rc, Ω
	MagnetizingReactanceLow Reactance      `json:"magnetizing_reactance_low"` // Xm, Ω
	SeriesResistanceHigh    float64        `json:"series_resistance_high"`    // Req, Ω
	SeriesReactanceHigh     float64        `json:"series_reactance_high"`     // Xeq, Ω
	TurnsRatio              float64        `json:"turns_ratio"`               // a = V_high / V_low
	Ratings                 NominalRatings `json:"ratings"`

	// ReferenceVA is V_high × I_sc. It is the apparent power of the
	// short-circuit test, a proxy for the rating and not the nameplate
	// capacity. Callers that know the true rating must supply it themselves.
	ReferenceVA float64 `json:"reference_va"`

	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// SeriesImpedanceHigh is Req + jXeq on the high side.
func (m EquivalentCircuit) SeriesImpedanceHigh() complex128 {
	return complex(m.SeriesResistanceHigh, m.SeriesReactanceHigh)
}

// SeriesImpedanceLow is the series impedance referred to the low side (÷a²).
func (m EquivalentCircuit) SeriesImpedanceLow() complex128 {
	a2 := m.TurnsRatio * m.TurnsRatio
	return m.SeriesImpedanceHigh() / complex(a2, 0)
}

// CoreResistanceHigh is Rc referred to the high side (×a²).
func (m EquivalentCircuit) CoreResistanceHigh() float64 {
	return m.CoreResistanceLow * m.TurnsRatio * m.TurnsRatio
}

// MagnetizingReactanceHigh is Xm referred to the high side (×a²).
func (m EquivalentCircuit) MagnetizingReactanceHigh() Reactance {
	return m.MagnetizingReactanceLow.Scale(m.TurnsRatio * m.TurnsRatio)
}

// CoreLoss is V_low² / Rc, independent of load.
func (m EquivalentCircuit) CoreLoss() float64 {
	if m.CoreResistanceLow == 0 {
		return 0
	}
	v := m.Ratings.LowVoltage
	return v * v / m.CoreResistanceLow
}

// Clamped reports whether any radicand was clamped while deriving the model.
func (m EquivalentCircuit) Clamped() bool {
	return len(m.Diagnostics) > 0
}
