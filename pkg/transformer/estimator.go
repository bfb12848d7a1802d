package transformer

import (
	"fmt"
	"log/slog"
	"math"
)

type options struct {
	logger *slog.Logger
}

// Option configures an Estimator or a LoadAnalyzer.
type Option func(*options)

// WithLogger routes diagnostics to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.Default()
}

// Estimator derives an EquivalentCircuit from open-circuit and short-circuit
// test data. The open-circuit test is taken on the low side, the
// short-circuit test on the high side.
type Estimator struct {
	openCircuit  TestMeasurement
	shortCircuit TestMeasurement
	ratings      NominalRatings
	opts         options
}

func NewEstimator(openCircuit, shortCircuit TestMeasurement, ratings NominalRatings, opts ...Option) (*Estimator, error) {
	e := &Estimator{
		openCircuit:  openCircuit,
		shortCircuit: shortCircuit,
		ratings:      ratings,
		opts:         buildOptions(opts),
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Derive is shorthand for NewEstimator followed by Derive.
func Derive(openCircuit, shortCircuit TestMeasurement, ratings NominalRatings, opts ...Option) (EquivalentCircuit, error) {
	e, err := NewEstimator(openCircuit, shortCircuit, ratings, opts...)
	if err != nil {
		return EquivalentCircuit{}, err
	}
	return e.Derive()
}

func (e *Estimator) validate() error {
	if err := e.openCircuit.validate("open-circuit"); err != nil {
		return err
	}
	if err := e.shortCircuit.validate("short-circuit"); err != nil {
		return err
	}
	// Rc = V²/P and Req = P/I² need non-zero divisors.
	if e.openCircuit.Power == 0 {
		return fmt.Errorf("open-circuit test: power must be > 0 to size the core-loss resistance: %w", ErrInvalidMeasurement)
	}
	if e.shortCircuit.Current == 0 {
		return fmt.Errorf("short-circuit test: current must be > 0: %w", ErrInvalidMeasurement)
	}
	return e.ratings.validate()
}

// OpenCircuit returns the open-circuit reading the estimator was built with.
func (e *Estimator) OpenCircuit() TestMeasurement { return e.openCircuit }

// ShortCircuit returns the short-circuit reading the estimator was built with.
func (e *Estimator) ShortCircuit() TestMeasurement { return e.shortCircuit }

// Derive computes the model. It is a pure function of the estimator inputs:
// repeated calls return identical values. A negative radicand under either
// square root is clamped to zero and reported as a Diagnostic and a warning.
func (e *Estimator) Derive() (EquivalentCircuit, error) {
	if err := e.validate(); err != nil {
		return EquivalentCircuit{}, err
	}
	oc, sc := e.openCircuit, e.shortCircuit
	ratings := e.ratings.withDefaults()
	var diags []Diagnostic

	// Excitation branch, low side.
	rc := oc.Voltage * oc.Voltage / oc.Power
	y := oc.Current / oc.Voltage
	g := 1 / rc
	radicand := y*y - g*g
	if radicand < 0 {
		diags = append(diags, e.clamp(MagnetizingRadicandClamped, radicand,
			"open-circuit active power exceeds the apparent power bound, magnetizing reactance set unbounded"))
		radicand = 0
	}
	xm := ReactanceFromSusceptance(math.Sqrt(radicand))

	// Series branch, high side.
	req := sc.Power / (sc.Current * sc.Current)
	zsc := sc.Voltage / sc.Current
	radicand = zsc*zsc - req*req
	if radicand < 0 {
		diags = append(diags, e.clamp(SeriesReactanceRadicandClamped, radicand,
			"short-circuit resistance exceeds the impedance magnitude, series reactance set to zero"))
		radicand = 0
	}
	xeq := math.Sqrt(radicand)

	return EquivalentCircuit{
		CoreResistanceLow:       rc,
		MagnetizingReactanceLow: xm,
		SeriesResistanceHigh:    req,
		SeriesReactanceHigh:     xeq,
		TurnsRatio:              ratings.TurnsRatio(),
		Ratings:                 ratings,
		ReferenceVA:             ratings.HighVoltage * sc.Current,
		Diagnostics:             diags,
	}, nil
}

func (e *Estimator) clamp(code DiagnosticCode, radicand float64, msg string) Diagnostic {
	e.opts.log().Warn("Clamped negative radicand", "code", string(code), "radicand", radicand)
	return Diagnostic{Code: code, Radicand: radicand, Message: msg}
}
