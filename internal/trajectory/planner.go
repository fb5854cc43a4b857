// Package trajectory precomputes the flight of a single projectile until it
// reaches the ground.
package trajectory

import (
	"math"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/forces"
	"github.com/san-kum/simcore/internal/integrators"
	"github.com/san-kum/simcore/internal/vmath"
)

const (
	DefaultDt         = 0.005
	DefaultMaxSamples = 100000
)

// Launch describes the initial conditions. Angle is in degrees above +X.
type Launch struct {
	Speed   float64 `json:"speed"`
	Angle   float64 `json:"angle"`
	Height  float64 `json:"height"`
	Gravity float64 `json:"gravity"`
	Drag    float64 `json:"drag"`
}

// Velocity decomposes speed and angle into a velocity vector.
func (l Launch) Velocity() vmath.Vec {
	return vmath.FromPolar(l.Speed, l.Angle*math.Pi/180)
}

// Point is one trajectory sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	T float64 `json:"t"`
}

// Result is a complete, immutable flight.
type Result struct {
	Points     []Point
	MaxHeight  float64
	Range      float64
	FlightTime float64
	// Landed is false when the sample bound stopped the flight early.
	Landed bool
}

type phase int

const (
	integrating phase = iota
	terminated
)

// Planner integrates at a fixed internal dt, independent of any frame rate.
type Planner struct {
	Dt         float64
	MaxSamples int
}

func New() *Planner {
	return &Planner{Dt: DefaultDt, MaxSamples: DefaultMaxSamples}
}

// Plan integrates gravity and drag until the projectile crosses y=0, then
// interpolates the final sample onto the ground. It always returns.
func (p *Planner) Plan(l Launch) Result {
	dt := p.Dt
	if !(dt > 0) {
		dt = DefaultDt
	}
	maxSamples := p.MaxSamples
	if maxSamples < 2 {
		maxSamples = DefaultMaxSamples
	}

	model := forces.Model{Uniform: true, Drag: l.Drag > 0}
	params := dynamo.Params{Gravity: l.Gravity, Drag: l.Drag}
	integ := integrators.NewSemiImplicitEuler()

	body := []dynamo.Body{{
		Pos:  vmath.Vec{Y: math.Max(l.Height, 0)},
		Vel:  l.Velocity(),
		Mass: 1,
	}}

	res := Result{
		Points:    make([]Point, 0, estimateSamples(l, dt, maxSamples)),
		MaxHeight: body[0].Pos.Y,
	}
	res.Points = append(res.Points, Point{X: body[0].Pos.X, Y: body[0].Pos.Y})

	t := 0.0
	state := integrating
	for state == integrating {
		if len(res.Points) >= maxSamples {
			state = terminated
			continue
		}

		prev := res.Points[len(res.Points)-1]
		integ.Step(&body[0], model.Acceleration(0, body, params), dt)
		t += dt
		pos := body[0].Pos

		if pos.Y < 0 {
			frac := prev.Y / (prev.Y - pos.Y)
			res.Points = append(res.Points, Point{
				X: prev.X + (pos.X-prev.X)*frac,
				Y: 0,
				T: prev.T + dt*frac,
			})
			res.Landed = true
			state = terminated
			continue
		}

		res.Points = append(res.Points, Point{X: pos.X, Y: pos.Y, T: t})
		if pos.Y > res.MaxHeight {
			res.MaxHeight = pos.Y
		}
	}

	last := res.Points[len(res.Points)-1]
	res.Range = last.X - res.Points[0].X
	res.FlightTime = last.T
	return res
}

func estimateSamples(l Launch, dt float64, limit int) int {
	a := Analytic(l)
	n := int(a.FlightTime/dt) + 2
	if n < 16 || n > limit || a.FlightTime == 0 {
		return 16
	}
	return n
}

// Summary holds closed-form drag-free flight values.
type Summary struct {
	MaxHeight  float64
	Range      float64
	FlightTime float64
}

// Analytic returns the vacuum solution, ignoring Drag. With non-positive
// gravity the projectile never lands and the zero Summary is returned.
func Analytic(l Launch) Summary {
	if l.Gravity <= 0 {
		return Summary{}
	}
	v := l.Velocity()
	h0 := math.Max(l.Height, 0)
	g := l.Gravity
	tFlight := (v.Y + math.Sqrt(v.Y*v.Y+2*g*h0)) / g
	peak := h0
	if v.Y > 0 {
		peak += v.Y * v.Y / (2 * g)
	}
	return Summary{
		MaxHeight:  peak,
		Range:      v.X * tFlight,
		FlightTime: tFlight,
	}
}
