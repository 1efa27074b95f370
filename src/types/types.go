// Package types holds the benchmark data model shared by loader, views and renderers.
package types

// Series names used for the two benchmark tables.
const (
	StandardName = "standard"
	StrassenName = "strassen"
)

// Observation is one benchmark sample: elapsed milliseconds for an n x n multiply.
type Observation struct {
	Size   int     `json:"size"`
	TimeMs float64 `json:"time_ms"`
}

// Series is the ordered sample list of one algorithm, kept in stored row order.
type Series struct {
	Name   string        `json:"name"`
	Points []Observation `json:"points"`
}

func (s Series) Len() int { return len(s.Points) }

// Sizes returns matrix sizes as float64 for plotting.
func (s Series) Sizes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = float64(p.Size)
	}
	return out
}

// Times returns elapsed times in milliseconds.
func (s Series) Times() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.TimeMs
	}
	return out
}

// Pair is the standard and Strassen series, aligned by index (not joined on size).
type Pair struct {
	Standard Series `json:"standard"`
	Strassen Series `json:"strassen"`
}

// Len returns the number of rows both series share.
func (p Pair) Len() int {
	n := p.Standard.Len()
	if m := p.Strassen.Len(); m < n {
		n = m
	}
	return n
}

// Trimmed returns the pair cut to the common prefix length.
func (p Pair) Trimmed() Pair {
	n := p.Len()
	return Pair{
		Standard: Series{Name: p.Standard.Name, Points: p.Standard.Points[:n]},
		Strassen: Series{Name: p.Strassen.Name, Points: p.Strassen.Points[:n]},
	}
}
