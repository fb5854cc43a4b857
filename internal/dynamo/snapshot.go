package dynamo

// Snapshot is a read-only copy of one frame. The loop hands out a fresh
// snapshot per frame so renderers never alias the live body buffer.
type Snapshot struct {
	Frame   int
	Time    float64
	Dt      float64
	Bodies  []Body
	// Bounds is the box in force for this frame, nil when unbounded.
	Bounds  *Bounds
	Metrics map[string]float64
}

// Metric returns the named derived scalar, or 0.
func (s Snapshot) Metric(name string) float64 {
	if s.Metrics == nil {
		return 0
	}
	return s.Metrics[name]
}
