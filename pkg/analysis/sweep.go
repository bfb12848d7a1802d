package analysis

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/edp1096/toy-xfmr/pkg/phasor"
	"github.com/edp1096/toy-xfmr/pkg/transformer"
)

// Sweep evaluates one power factor and load type at a range of apparent
// powers.
type Sweep struct {
	BaseAnalysis
	startVA     float64
	stopVA      float64
	numPoints   int
	pointsType  string // "LIN", "DEC"
	powerFactor float64
	loadType    transformer.LoadType
	workers     int
	loads       []float64
}

type sweepPoint struct {
	current    phasor.Phasor
	noLoad     phasor.Phasor
	regulation float64
	efficiency float64
}

func NewSweep(startVA, stopVA float64, nPoints int, pType string, pf float64, lt transformer.LoadType) *Sweep {
	return &Sweep{
		BaseAnalysis: *NewBaseAnalysis(),
		startVA:      startVA,
		stopVA:       stopVA,
		numPoints:    nPoints,
		pointsType:   pType,
		powerFactor:  pf,
		loadType:     lt,
		workers:      runtime.NumCPU(),
	}
}

// SetWorkers bounds the number of points evaluated at once; n < 1 is ignored.
func (s *Sweep) SetWorkers(n int) {
	if n >= 1 {
		s.workers = n
	}
}

func (s *Sweep) Setup(model transformer.EquivalentCircuit) error {
	s.Model = model

	if s.numPoints < 1 {
		return fmt.Errorf("%w: need at least 1 point, got %d", ErrInvalidSweep, s.numPoints)
	}
	if s.startVA < 0 || s.stopVA < s.startVA {
		return fmt.Errorf("%w: range %g..%g VA", ErrInvalidSweep, s.startVA, s.stopVA)
	}

	return s.generateLoadPoints()
}

func (s *Sweep) generateLoadPoints() error {
	s.loads = make([]float64, s.numPoints)
	if s.numPoints == 1 {
		s.loads[0] = s.startVA
		return nil
	}

	switch s.pointsType {
	case "LIN":
		floats.Span(s.loads, s.startVA, s.stopVA)
	case "DEC":
		if s.startVA <= 0 {
			return fmt.Errorf("%w: DEC spacing needs a positive start, got %g", ErrInvalidSweep, s.startVA)
		}
		floats.LogSpan(s.loads, s.startVA, s.stopVA)
	default:
		return fmt.Errorf("%w: unknown spacing %q", ErrInvalidSweep, s.pointsType)
	}
	return nil
}

func (s *Sweep) LoadPoints() []float64 {
	return s.loads
}

func (s *Sweep) evaluate(va float64) (sweepPoint, error) {
	la := transformer.NewLoadAnalyzer(s.Model,
		transformer.LoadSpecification{ApparentPower: va, PowerFactor: s.powerFactor, Type: s.loadType},
		transformer.WithLogger(s.log()))

	var p sweepPoint
	var err error

	if p.current, err = la.SecondaryCurrent(); err != nil {
		return p, err
	}
	if p.noLoad, err = la.NoLoadVoltage(); err != nil {
		return p, err
	}
	if p.regulation, err = la.VoltageRegulationPercent(); err != nil {
		return p, err
	}
	if p.efficiency, err = la.EfficiencyPercent(); err != nil {
		return p, err
	}
	return p, nil
}

func (s *Sweep) Execute() error {
	if s.loads == nil {
		return fmt.Errorf("sweep not set up")
	}

	points := make([]sweepPoint, len(s.loads))

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, va := range s.loads {
		g.Go(func() error {
			p, err := s.evaluate(va)
			if err != nil {
				return fmt.Errorf("load %g VA: %w", va, err)
			}
			points[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, p := range points {
		s.StoreResult(map[string]float64{
			"LOAD_VA": s.loads[i],
			"REG":     p.regulation,
			"EFF":     p.efficiency,
		})
		s.StorePhasorResult(map[string]phasor.Phasor{
			"I2": p.current,
			"V0": p.noLoad,
		})
	}

	s.log().Debug("Sweep complete", "points", len(points), "spacing", s.pointsType)
	return nil
}
