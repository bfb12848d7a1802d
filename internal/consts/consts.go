package consts

import "math"

const (
	DefaultFrequency = 60.0 // Hz, used when ratings leave frequency unset
	Epsilon          = 1e-9 // below this a susceptance or current is treated as zero
	RadToDeg         = 180.0 / math.Pi
)
