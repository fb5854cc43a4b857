// Package field samples gravitational and electric vector fields by
// superposition over a source list. Sampling is a pure function of the
// query point and the sources.
package field

import (
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/forces"
	"github.com/san-kum/simcore/internal/vmath"
)

// Kind selects the source quantity and force law.
type Kind int

const (
	Electric Kind = iota
	Gravitational
)

func (k Kind) String() string {
	switch k {
	case Gravitational:
		return "gravitational"
	default:
		return "electric"
	}
}

// Sampler evaluates a field with coupling constant K (k_e or G).
type Sampler struct {
	Kind Kind
	K    float64
}

// At returns the unnormalized field at p. Electric sources use Body.Charge,
// gravitational sources use Body.Mass. An empty source list gives zero.
func (s Sampler) At(p vmath.Vec, sources []dynamo.Body) vmath.Vec {
	if len(sources) == 0 {
		return vmath.Zero
	}
	if s.Kind == Gravitational {
		return forces.GravityField(p, sources, s.K)
	}
	charges := make([]dynamo.Charge, len(sources))
	for i := range sources {
		charges[i] = sources[i].AsCharge()
	}
	return forces.CoulombField(p, charges, s.K)
}

// Sample is a field value with its display direction.
type Sample struct {
	Point     vmath.Vec
	Field     vmath.Vec
	Unit      vmath.Vec
	Magnitude float64
}

// Sample evaluates the field at p with its unit direction.
func (s Sampler) Sample(p vmath.Vec, sources []dynamo.Body) Sample {
	f := s.At(p, sources)
	return Sample{Point: p, Field: f, Unit: vmath.Unit(f), Magnitude: vmath.Norm(f)}
}

// Grid samples nx·ny cell centres of bounds, row-major from the bottom row.
func (s Sampler) Grid(bounds dynamo.Bounds, nx, ny int, sources []dynamo.Body) []Sample {
	if nx <= 0 || ny <= 0 {
		return nil
	}
	out := make([]Sample, 0, nx*ny)
	cw := bounds.Width() / float64(nx)
	ch := bounds.Height() / float64(ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			p := vmath.Vec{
				X: bounds.Min.X + (float64(i)+0.5)*cw,
				Y: bounds.Min.Y + (float64(j)+0.5)*ch,
			}
			out = append(out, s.Sample(p, sources))
		}
	}
	return out
}

// Trace follows the field direction from start in fixed steps, stopping
// when the field vanishes or the line comes within step of a source.
// A negative step traces against the field.
func (s Sampler) Trace(start vmath.Vec, sources []dynamo.Body, step float64, maxSteps int) []vmath.Vec {
	line := []vmath.Vec{start}
	if step == 0 {
		return line
	}
	stop := step
	if stop < 0 {
		stop = -stop
	}
	p := start
	for i := 0; i < maxSteps; i++ {
		dir := vmath.Unit(s.At(p, sources))
		if dir == vmath.Zero {
			break
		}
		p = p.Add(dir.Scale(step))
		line = append(line, p)
		if nearSource(p, sources, stop) {
			break
		}
	}
	return line
}

func nearSource(p vmath.Vec, sources []dynamo.Body, d float64) bool {
	for i := range sources {
		if vmath.Dist(p, sources[i].Pos) < d {
			return true
		}
	}
	return false
}
