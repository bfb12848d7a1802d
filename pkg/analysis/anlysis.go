package analysis

import (
	"errors"
	"log/slog"

	"github.com/edp1096/toy-xfmr/pkg/phasor"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

var ErrInvalidSweep = errors.New("invalid sweep")

type Analysis interface {
	Setup(model transformer.EquivalentCircuit) error
	Execute() error
	GetResults() map[string][]float64
}

type BaseAnalysis struct {
	Model   transformer.EquivalentCircuit
	Logger  *slog.Logger
	results map[string][]float64 // key: series name, value: one entry per point
}

func NewBaseAnalysis() *BaseAnalysis {
	return &BaseAnalysis{results: make(map[string][]float64)}
}

func (a *BaseAnalysis) log() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *BaseAnalysis) StoreResult(solution map[string]float64) {
	for name, value := range solution {
		if _, exists := a.results[name]; !exists {
			a.results[name] = make([]float64, 0)
		}
		a.results[name] = append(a.results[name], value)
	}
}

// StorePhasorResult appends NAME_MAG and NAME_PHASE (degrees) for each phasor.
func (a *BaseAnalysis) StorePhasorResult(solution map[string]phasor.Phasor) {
	flat := make(map[string]float64, 2*len(solution))
	for name, value := range solution {
		flat[name+"_MAG"] = value.Mag()
		flat[name+"_PHASE"] = value.Degrees()
	}
	a.StoreResult(flat)
}

func (a *BaseAnalysis) GetResults() map[string][]float64 {
	return a.results
}
