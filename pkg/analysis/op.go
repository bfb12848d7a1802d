package analysis

import (
	"fmt"
	"math/cmplx"

	"github.com/edp1096/toy-xfmr/internal/consts"
	"github.com/edp1096/toy-xfmr/pkg/circuit"
	"github.com/edp1096/toy-xfmr/pkg/phasor"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

// ExactResult is the T-network solution referred to the low side.
type ExactResult struct {
	SourceVoltage     phasor.Phasor `json:"source_voltage"`
	TerminalVoltage   phasor.Phasor `json:"terminal_voltage"`   // V2
	PrimaryCurrent    phasor.Phasor `json:"primary_current"`    // I1, delivered by the source
	LoadCurrent       phasor.Phasor `json:"load_current"`       // I2
	ExcitationCurrent phasor.Phasor `json:"excitation_current"` // Iφ

	InputPower        float64 `json:"input_power"`
	OutputPower       float64 `json:"output_power"`
	CopperLoss        float64 `json:"copper_loss"`
	CoreLoss          float64 `json:"core_loss"`
	EfficiencyPercent float64 `json:"efficiency_percent"`
	RegulationPercent float64 `json:"regulation_percent"`
}

// OperatingPoint solves the full T-network instead of the cantilever
// approximation: the excitation branch sits between the two winding halves and
// the source is held at the nominal low voltage.
type OperatingPoint struct {
	BaseAnalysis
	Circuit *circuit.Circuit
	load    transformer.LoadSpecification
	result  ExactResult
}

func NewOP(load transformer.LoadSpecification) *OperatingPoint {
	return &OperatingPoint{
		BaseAnalysis: *NewBaseAnalysis(),
		load:         load,
	}
}

// Elements lays out the network: source at "src", magnetizing node "mag",
// secondary terminal "out".
func Elements(model transformer.EquivalentCircuit, load transformer.LoadSpecification) ([]circuit.Element, error) {
	la := transformer.NewLoadAnalyzer(model, load)
	i2, err := la.SecondaryCurrent()
	if err != nil {
		return nil, err
	}

	vl := model.Ratings.LowVoltage
	a2 := model.TurnsRatio * model.TurnsRatio
	w := transformer.WindingSplit(model)

	var shunt complex128
	if model.CoreResistanceLow > 0 {
		shunt += complex(1/model.CoreResistanceLow, 0)
	}
	shunt -= complex(0, model.MagnetizingReactanceLow.Susceptance())

	return []circuit.Element{
		{Type: "V", Name: "Vs", Nodes: []string{"src", "0"}, Value: complex(vl, 0)},
		{Type: "Z", Name: "Z1", Nodes: []string{"src", "mag"}, Value: complex(w.PrimaryResistanceHigh/a2, w.PrimaryReactanceHigh/a2)},
		{Type: "Y", Name: "Yphi", Nodes: []string{"mag", "0"}, Value: shunt},
		{Type: "Z", Name: "Z2", Nodes: []string{"mag", "out"}, Value: complex(w.SecondaryResistanceLow, w.SecondaryReactanceLow)},
		{Type: "Y", Name: "YL", Nodes: []string{"out", "0"}, Value: i2.Complex() / complex(vl, 0)},
	}, nil
}

func (op *OperatingPoint) Setup(model transformer.EquivalentCircuit) error {
	op.Model = model

	elements, err := Elements(model, op.load)
	if err != nil {
		return err
	}

	ckt, err := circuit.Build("xfmr", elements)
	if err != nil {
		return fmt.Errorf("building network: %w", err)
	}
	op.Circuit = ckt
	return nil
}

func (op *OperatingPoint) Execute() error {
	if op.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}
	if err := op.Circuit.Solve(); err != nil {
		return fmt.Errorf("solving network: %w", err)
	}

	sol := op.Circuit.GetSolution()
	vs := sol["V(src)"]
	vm := sol["V(mag)"]
	v2 := sol["V(out)"]
	i1 := sol["I(Vs)"]
	iz2 := sol["I(Z2)"]
	i2 := sol["I(YL)"]

	if cmplx.Abs(v2) < consts.Epsilon {
		return fmt.Errorf("terminal voltage collapsed to %v", v2)
	}

	w := transformer.WindingSplit(op.Model)
	a2 := op.Model.TurnsRatio * op.Model.TurnsRatio
	i1Mag := cmplx.Abs(sol["I(Z1)"])
	iz2Mag := cmplx.Abs(iz2)

	r := ExactResult{
		SourceVoltage:     phasor.Phasor(vs),
		TerminalVoltage:   phasor.Phasor(v2),
		PrimaryCurrent:    phasor.Phasor(i1),
		LoadCurrent:       phasor.Phasor(i2),
		ExcitationCurrent: phasor.Phasor(sol["I(Yphi)"]),
		InputPower:        real(vs * cmplx.Conj(i1)),
		OutputPower:       real(v2 * cmplx.Conj(i2)),
		CopperLoss:        i1Mag*i1Mag*w.PrimaryResistanceHigh/a2 + iz2Mag*iz2Mag*w.SecondaryResistanceLow,
	}
	if op.Model.CoreResistanceLow > 0 {
		vmMag := cmplx.Abs(vm)
		r.CoreLoss = vmMag * vmMag / op.Model.CoreResistanceLow
	}
	if r.InputPower != 0 {
		r.EfficiencyPercent = r.OutputPower / r.InputPower * 100
	}
	r.RegulationPercent = (cmplx.Abs(vs) - cmplx.Abs(v2)) / cmplx.Abs(v2) * 100
	op.result = r

	op.StorePhasorResult(map[string]phasor.Phasor{
		"V2":   r.TerminalVoltage,
		"I1":   r.PrimaryCurrent,
		"I2":   r.LoadCurrent,
		"IPHI": r.ExcitationCurrent,
	})
	op.StoreResult(map[string]float64{
		"PIN":  r.InputPower,
		"POUT": r.OutputPower,
		"PCU":  r.CopperLoss,
		"PFE":  r.CoreLoss,
		"EFF":  r.EfficiencyPercent,
		"REG":  r.RegulationPercent,
	})

	op.log().Debug("Exact operating point solved",
		"v2", r.TerminalVoltage.String(), "efficiency", r.EfficiencyPercent, "regulation", r.RegulationPercent)
	return nil
}

func (op *OperatingPoint) Result() ExactResult {
	return op.result
}

// Destroy releases the sparse matrix behind the network.
func (op *OperatingPoint) Destroy() {
	if op.Circuit != nil {
		op.Circuit.Destroy()
	}
}

// Solve runs Setup and Execute once and frees the matrix.
func Solve(model transformer.EquivalentCircuit, load transformer.LoadSpecification) (ExactResult, error) {
	op := NewOP(load)
	if err := op.Setup(model); err != nil {
		return ExactResult{}, err
	}
	defer op.Destroy()
	if err := op.Execute(); err != nil {
		return ExactResult{}, err
	}
	return op.Result(), nil
}
