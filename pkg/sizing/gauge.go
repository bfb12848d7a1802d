package sizing

// Gauge is one row of the wire table. A section s fits the gauge when
// Lower < s ≤ Section.
type Gauge struct {
	Name    string  `json:"name"`
	Section float64 `json:"section"` // mm², upper bound
	Lower   float64 `json:"lower"`   // mm², exclusive
}

var gauges = []Gauge{
	{"fio 0", 53.476, 42.409},
	{"fio 1", 42.409, 33.362},
	{"fio 2", 33.362, 26.271},
	{"fio 3", 26.271, 21.152},
	{"fio 4", 21.152, 16.774},
	{"fio 5", 16.774, 13.303},
	{"fio 6", 13.303, 10.549},
	{"fio 7", 10.549, 8.366},
	{"fio 8", 8.366, 6.635},
	{"fio 9", 6.635, 5.262},
	{"fio 10", 5.262, 4.173},
	{"fio 11", 4.173, 3.309},
	{"fio 12", 3.309, 2.624},
	{"fio 13", 2.624, 2.081},
	{"fio 14", 2.081, 1.650},
	{"fio 15", 1.650, 1.309},
	{"fio 16", 1.309, 1.038},
	{"fio 17", 1.038, 0.823},
	{"fio 18", 0.823, 0.653},
	{"fio 19", 0.653, 0.518},
	{"fio 20", 0.518, 0.411},
}

// LookupGauge returns the wire whose section range holds s. Sections outside
// 0.411..53.476 mm² have no entry.
func LookupGauge(s float64) (Gauge, bool) {
	for _, g := range gauges {
		if g.Lower < s && s <= g.Section {
			return g, true
		}
	}
	return Gauge{}, false
}

// Gauges returns a copy of the table, thickest wire first.
func Gauges() []Gauge {
	out := make([]Gauge, len(gauges))
	copy(out, gauges)
	return out
}
