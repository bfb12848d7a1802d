package transformer

import (
	"math"

	"github.com/edp1096/toy-xfmr/pkg/phasor"
)

// LoadAnalyzer evaluates one load scenario against a derived model. All
// queries are pure reads and may be called in any order; the load is
// re-checked on every call.
type LoadAnalyzer struct {
	model EquivalentCircuit
	load  LoadSpecification
	opts  options
}

func NewLoadAnalyzer(model EquivalentCircuit, load LoadSpecification, opts ...Option) *LoadAnalyzer {
	return &LoadAnalyzer{model: model, load: load, opts: buildOptions(opts)}
}

func (la *LoadAnalyzer) Model() EquivalentCircuit { return la.model }

func (la *LoadAnalyzer) Load() LoadSpecification { return la.load }

// SecondaryCurrent is I2 = S/V_low at ±arccos(pf): negative for a lagging
// load, positive for a leading one.
func (la *LoadAnalyzer) SecondaryCurrent() (phasor.Phasor, error) {
	if err := la.load.validate(); err != nil {
		return 0, err
	}
	mag := la.load.ApparentPower / la.model.Ratings.LowVoltage
	angle := math.Acos(la.load.PowerFactor)
	if la.load.Type == Lagging {
		angle = -angle
	}
	return phasor.Polar(mag, angle), nil
}

// NoLoadVoltage is V_low∠0 plus the low-side series drop Zeq'·I2.
func (la *LoadAnalyzer) NoLoadVoltage() (phasor.Phasor, error) {
	i2, err := la.SecondaryCurrent()
	if err != nil {
		return 0, err
	}
	v2 := phasor.Phasor(complex(la.model.Ratings.LowVoltage, 0))
	return v2 + phasor.Phasor(la.model.SeriesImpedanceLow())*i2, nil
}

// Drops splits the series drop into its resistive (Req'·I2) and reactive
// (jXeq'·I2) parts, low side.
func (la *LoadAnalyzer) Drops() (resistive, reactive phasor.Phasor, err error) {
	i2, err := la.SecondaryCurrent()
	if err != nil {
		return 0, 0, err
	}
	z := la.model.SeriesImpedanceLow()
	resistive = phasor.Phasor(complex(real(z), 0)) * i2
	reactive = phasor.Phasor(complex(0, imag(z))) * i2
	return resistive, reactive, nil
}

// VoltageRegulationPercent is (|V0| − V_low)/V_low × 100. Leading loads can
// give a negative value.
func (la *LoadAnalyzer) VoltageRegulationPercent() (float64, error) {
	v0, err := la.NoLoadVoltage()
	if err != nil {
		return 0, err
	}
	vn := la.model.Ratings.LowVoltage
	return (v0.Mag() - vn) / vn * 100, nil
}

// Losses returns the copper loss at this load and the constant core loss.
func (la *LoadAnalyzer) Losses() (copper, core float64, err error) {
	i2, err := la.SecondaryCurrent()
	if err != nil {
		return 0, 0, err
	}
	mag := i2.Mag()
	copper = real(la.model.SeriesImpedanceLow()) * mag * mag
	return copper, la.model.CoreLoss(), nil
}

// OutputPower is S × pf.
func (la *LoadAnalyzer) OutputPower() (float64, error) {
	if err := la.load.validate(); err != nil {
		return 0, err
	}
	return la.load.ApparentPower * la.load.PowerFactor, nil
}

// EfficiencyPercent is P_out/(P_out + P_cu + P_core) × 100, and 0 when the
// input power is exactly zero.
func (la *LoadAnalyzer) EfficiencyPercent() (float64, error) {
	out, err := la.OutputPower()
	if err != nil {
		return 0, err
	}
	copper, core, err := la.Losses()
	if err != nil {
		return 0, err
	}
	in := out + copper + core
	if in == 0 {
		la.opts.log().Info("Zero input power, efficiency reported as 0",
			"load_va", la.load.ApparentPower, "power_factor", la.load.PowerFactor)
		return 0, nil
	}
	return out / in * 100, nil
}
