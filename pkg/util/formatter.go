package util

import (
	"fmt"
	"math"
)

// FormatValueFactor prints value with an SI prefix chosen from its magnitude,
// e.g. 1645.7 "Ω" -> "1.646 kΩ", 0.2 "A" -> "200.000 mA".
func FormatValueFactor(value float64, unit string) string {
	absValue := math.Abs(value)
	switch {
	case math.IsInf(value, 0) || math.IsNaN(value):
		return fmt.Sprintf("%v %s", value, unit)
	case absValue == 0:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e6:
		return fmt.Sprintf("%.3f M%s", value/1e6, unit)
	case absValue >= 1e3:
		return fmt.Sprintf("%.3f k%s", value/1e3, unit)
	case absValue >= 1:
		return fmt.Sprintf("%.3f %s", value, unit)
	case absValue >= 1e-3:
		return fmt.Sprintf("%.3f m%s", value*1e3, unit)
	case absValue >= 1e-6:
		return fmt.Sprintf("%.3f u%s", value*1e6, unit)
	default:
		return fmt.Sprintf("%.3e %s", value, unit)
	}
}

// FormatFixed prints value with two decimals and no prefix scaling.
func FormatFixed(value float64, unit string) string {
	return fmt.Sprintf("%.2f %s", value, unit)
}

func FormatFrequency(freq float64) string {
	switch {
	case freq >= 1e6:
		return fmt.Sprintf("%.3f MHz", freq/1e6)
	case freq >= 1e3:
		return fmt.Sprintf("%.3f kHz", freq/1e3)
	default:
		return fmt.Sprintf("%.3f Hz", freq)
	}
}

func FormatPercent(value float64) string {
	return fmt.Sprintf("%.2f %%", value)
}

// FormatApparentPower reports VA at kilo scale, the way nameplates do.
func FormatApparentPower(va float64) string {
	return fmt.Sprintf("%.2f kVA", va/1e3)
}

func FormatMagnitudePhase(name string, value, phase float64) string {
	return fmt.Sprintf("%s=%s<%sdeg", name, FormatMagnitude(value), FormatPhase(phase))
}

func FormatMagnitude(value float64) string {
	if value >= 1000 || (value < 0.001 && value != 0) {
		return fmt.Sprintf("%8.2e", value) // "1.00e+03" or "5.43e-05"
	}
	return fmt.Sprintf("%8.3g", value) // "  732.5 "
}

func FormatPhase(value float64) string {
	return fmt.Sprintf("%6.1f", value) // "  90.0"
}
