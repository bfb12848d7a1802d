package transformer

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/toy-xfmr/internal/consts"
)

var (
	ErrInvalidMeasurement = errors.New("invalid measurement")
	ErrInvalidPowerFactor = errors.New("invalid power factor")
	ErrInvalidRatings     = errors.New("invalid ratings")
	ErrInvalidLoad        = errors.New("invalid load")
)

// TestMeasurement is one instrument reading: voltage (V), current (A) and
// active power (W). The same shape serves the open-circuit and the
// short-circuit test.
type TestMeasurement struct {
	Voltage float64 `json:"voltage"`
	Current float64 `json:"current"`
	Power   float64 `json:"power"`
}

func (m TestMeasurement) validate(test string) error {
	switch {
	case !finite(m.Voltage) || !finite(m.Current) || !finite(m.Power):
		return fmt.Errorf("%s test: non-finite reading: %w", test, ErrInvalidMeasurement)
	case m.Voltage <= 0:
		return fmt.Errorf("%s test: voltage %g V must be > 0: %w", test, m.Voltage, ErrInvalidMeasurement)
	case m.Current < 0:
		return fmt.Errorf("%s test: current %g A must be >= 0: %w", test, m.Current, ErrInvalidMeasurement)
	case m.Power < 0:
		return fmt.Errorf("%s test: power %g W must be >= 0: %w", test, m.Power, ErrInvalidMeasurement)
	}
	return nil
}

// PowerFactor is P/(V·I) clamped to [-1, 1]; 0 when nothing flowed.
func (m TestMeasurement) PowerFactor() float64 {
	s := m.Voltage * m.Current
	if s <= 0 {
		return 0
	}
	return math.Max(-1, math.Min(1, m.Power/s))
}

// NominalRatings fixes both winding voltages and the system frequency.
type NominalRatings struct {
	LowVoltage  float64 `json:"low_voltage"`
	HighVoltage float64 `json:"high_voltage"`
	Frequency   float64 `json:"frequency"`
}

func (r NominalRatings) validate() error {
	if !finite(r.LowVoltage) || r.LowVoltage <= 0 {
		return fmt.Errorf("low-side voltage %g V must be > 0: %w", r.LowVoltage, ErrInvalidRatings)
	}
	if !finite(r.HighVoltage) || r.HighVoltage <= 0 {
		return fmt.Errorf("high-side voltage %g V must be > 0: %w", r.HighVoltage, ErrInvalidRatings)
	}
	if !finite(r.Frequency) || r.Frequency < 0 {
		return fmt.Errorf("frequency %g Hz must be >= 0: %w", r.Frequency, ErrInvalidRatings)
	}
	return nil
}

// TurnsRatio is a = V_high / V_low.
func (r NominalRatings) TurnsRatio() float64 {
	return r.HighVoltage / r.LowVoltage
}

func (r NominalRatings) withDefaults() NominalRatings {
	if r.Frequency == 0 {
		r.Frequency = consts.DefaultFrequency
	}
	return r
}

// LoadType tells which way the load current is shifted from the voltage.
type LoadType int

const (
	Lagging LoadType = iota // inductive, current lags voltage
	Leading                 // capacitive, current leads voltage
)

func (t LoadType) String() string {
	switch t {
	case Lagging:
		return "lagging"
	case Leading:
		return "leading"
	default:
		return fmt.Sprintf("LoadType(%d)", int(t))
	}
}

// ParseLoadType accepts lagging/inductive and leading/capacitive.
func ParseLoadType(s string) (LoadType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lagging", "lag", "inductive":
		return Lagging, nil
	case "leading", "lead", "capacitive":
		return Leading, nil
	}
	return Lagging, fmt.Errorf("unknown load type %q (want lagging or leading)", s)
}

func (t LoadType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *LoadType) UnmarshalText(text []byte) error {
	lt, err := ParseLoadType(string(text))
	if err != nil {
		return err
	}
	*t = lt
	return nil
}

// LoadSpecification describes one load scenario at the low-side terminals.
type LoadSpecification struct {
	ApparentPower float64  `json:"apparent_power"` // VA
	PowerFactor   float64  `json:"power_factor"`   // [-1, 1]
	Type          LoadType `json:"type"`
}

func (s LoadSpecification) checkPowerFactor() error {
	if math.IsNaN(s.PowerFactor) || s.PowerFactor < -1 || s.PowerFactor > 1 {
		return fmt.Errorf("power factor %g outside [-1, 1]: %w", s.PowerFactor, ErrInvalidPowerFactor)
	}
	return nil
}

// validate runs on every LoadAnalyzer query, so a specification changed after
// construction is still caught.
func (s LoadSpecification) validate() error {
	if err := s.checkPowerFactor(); err != nil {
		return err
	}
	if s.Type != Lagging && s.Type != Leading {
		return fmt.Errorf("load type %v: %w", s.Type, ErrInvalidLoad)
	}
	if !finite(s.ApparentPower) || s.ApparentPower < 0 {
		return fmt.Errorf("apparent power %g VA must be finite and >= 0: %w", s.ApparentPower, ErrInvalidLoad)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
