package collision

import (
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/vmath"
)

// coincidentEpsilon is the centre distance below which the contact normal
// is undefined and XAxis is used instead.
const coincidentEpsilon = 1e-12

// ResolvePair applies an impulse to a and b along their contact normal and
// pushes them apart. Bodies already separating are left untouched. It
// reports whether an impulse was applied.
func ResolvePair(a, b *dynamo.Body, e float64) bool {
	invA, invB := a.InverseMass(), b.InverseMass()
	invSum := invA + invB
	if invSum == 0 {
		return false
	}

	delta := b.Pos.Sub(a.Pos)
	dist := vmath.Norm(delta)
	normal := vmath.XAxis
	if dist > coincidentEpsilon {
		normal = delta.Scale(1 / dist)
	}

	relVel := b.Vel.Sub(a.Vel)
	velAlongNormal := relVel.Dot(normal)
	if velAlongNormal > 0 {
		return false
	}

	j := -(1 + e) * velAlongNormal / invSum
	impulse := normal.Scale(j)
	a.Vel = a.Vel.Sub(impulse.Scale(invA))
	b.Vel = b.Vel.Add(impulse.Scale(invB))

	separate(a, b, normal, dist)
	return true
}

// separate moves a and b apart along normal until they touch, half the
// penetration depth each. A fixed body stays put and the other takes the
// whole correction.
func separate(a, b *dynamo.Body, normal vmath.Vec, dist float64) {
	penetration := a.Radius + b.Radius - dist
	if penetration <= 0 {
		return
	}
	shareA, shareB := 0.5, 0.5
	switch {
	case a.Fixed:
		shareA, shareB = 0, 1
	case b.Fixed:
		shareA, shareB = 1, 0
	}
	a.Pos = a.Pos.Sub(normal.Scale(penetration * shareA))
	b.Pos = b.Pos.Add(normal.Scale(penetration * shareB))
}

// ResolveWall reflects the velocity component along each violated axis when
// it points into the wall, scales it by e and clamps the body back inside
// bounds. A component already heading away is kept as is. It returns the
// magnitude of the momentum change, used for pressure estimates.
func ResolveWall(b *dynamo.Body, bounds dynamo.Bounds, sides dynamo.Side, e float64) float64 {
	if b.Fixed || sides == dynamo.NoSide {
		return 0
	}
	before := b.Vel

	lo, hi := bounds.Min.X+b.Radius, bounds.Max.X-b.Radius
	if lo > hi {
		b.Pos.X = (bounds.Min.X + bounds.Max.X) / 2
	} else if sides.Has(dynamo.Left) {
		b.Pos.X = lo
		b.Vel.X = reflect(b.Vel.X, 1, e)
	} else if sides.Has(dynamo.Right) {
		b.Pos.X = hi
		b.Vel.X = reflect(b.Vel.X, -1, e)
	}

	lo, hi = bounds.Min.Y+b.Radius, bounds.Max.Y-b.Radius
	if lo > hi {
		b.Pos.Y = (bounds.Min.Y + bounds.Max.Y) / 2
	} else if sides.Has(dynamo.Bottom) {
		b.Pos.Y = lo
		b.Vel.Y = reflect(b.Vel.Y, 1, e)
	} else if sides.Has(dynamo.Top) {
		b.Pos.Y = hi
		b.Vel.Y = reflect(b.Vel.Y, -1, e)
	}

	return b.EffectiveMass() * vmath.Norm(b.Vel.Sub(before))
}

// reflect turns v around, scaled by e, when it opposes the wall's inward
// direction.
func reflect(v, inward, e float64) float64 {
	if v*inward >= 0 {
		return v
	}
	return -v * e
}

// Stats counts the contacts handled in one Resolve call.
type Stats struct {
	Pairs       int
	Impulses    int
	Walls       int
	WallImpulse float64
}

// Resolver runs detection and resolution over a body set, reusing its pair
// buffer between frames.
type Resolver struct {
	pairs []Pair
}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve handles pairwise contacts, then wall contacts when bounds is not
// nil. Pairs are resolved in detection order.
func (r *Resolver) Resolve(bodies []dynamo.Body, bounds *dynamo.Bounds, e float64) Stats {
	var st Stats
	r.pairs = AppendOverlaps(r.pairs[:0], bodies)
	st.Pairs = len(r.pairs)
	for _, p := range r.pairs {
		if ResolvePair(&bodies[p.I], &bodies[p.J], e) {
			st.Impulses++
		}
	}

	if bounds == nil {
		return st
	}
	for i := range bodies {
		sides := FindWallOverlaps(&bodies[i], *bounds)
		if sides == dynamo.NoSide {
			continue
		}
		st.Walls++
		st.WallImpulse += ResolveWall(&bodies[i], *bounds, sides, e)
	}
	return st
}
