// Package report renders derived models and load results for people (styled
// console text) and for tools (JSON, XLSX).
package report

import (
	"encoding/json"
	"io"

	"github.com/edp1096/toy-xfmr/pkg/analysis"
	"github.com/edp1096/toy-xfmr/pkg/phasor"
	"github.com/edp1096/toy-xfmr/pkg/sizing"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

// LoadSummary collects every LoadAnalyzer query for one load.
type LoadSummary struct {
	Load              transformer.LoadSpecification `json:"load"`
	SecondaryCurrent  phasor.Phasor                 `json:"secondary_current"`
	NoLoadVoltage     phasor.Phasor                 `json:"no_load_voltage"`
	ResistiveDrop     phasor.Phasor                 `json:"resistive_drop"`
	ReactiveDrop      phasor.Phasor                 `json:"reactive_drop"`
	OutputPower       float64                       `json:"output_power"`
	CopperLoss        float64                       `json:"copper_loss"`
	CoreLoss          float64                       `json:"core_loss"`
	RegulationPercent float64                       `json:"regulation_percent"`
	EfficiencyPercent float64                       `json:"efficiency_percent"`
}

func Summarize(la *transformer.LoadAnalyzer) (LoadSummary, error) {
	s := LoadSummary{Load: la.Load()}
	var err error

	if s.SecondaryCurrent, err = la.SecondaryCurrent(); err != nil {
		return s, err
	}
	if s.NoLoadVoltage, err = la.NoLoadVoltage(); err != nil {
		return s, err
	}
	if s.ResistiveDrop, s.ReactiveDrop, err = la.Drops(); err != nil {
		return s, err
	}
	if s.OutputPower, err = la.OutputPower(); err != nil {
		return s, err
	}
	if s.CopperLoss, s.CoreLoss, err = la.Losses(); err != nil {
		return s, err
	}
	if s.RegulationPercent, err = la.VoltageRegulationPercent(); err != nil {
		return s, err
	}
	if s.EfficiencyPercent, err = la.EfficiencyPercent(); err != nil {
		return s, err
	}
	return s, nil
}

// Report is whatever a command produced; nil sections are left out.
type Report struct {
	Model      *transformer.EquivalentCircuit `json:"model,omitempty"`
	Windings   *transformer.Windings          `json:"windings,omitempty"`
	Excitation *transformer.Excitation        `json:"excitation,omitempty"`
	Load       *LoadSummary                   `json:"load,omitempty"`
	Exact      *analysis.ExactResult          `json:"exact,omitempty"`
	Sizing     *sizing.Result                 `json:"sizing,omitempty"`
	Lamination *sizing.LaminationResult       `json:"lamination,omitempty"`
	Sweep      map[string][]float64           `json:"sweep,omitempty"`
}

// ForModel fills the model, winding split and excitation sections.
func ForModel(m transformer.EquivalentCircuit, openCircuit transformer.TestMeasurement) *Report {
	w := transformer.WindingSplit(m)
	ex := transformer.ExcitationBranch(m, openCircuit)
	return &Report{Model: &m, Windings: &w, Excitation: &ex}
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
