package collision

import (
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/vmath"
)

// Pair indexes two overlapping bodies, I < J.
type Pair struct {
	I, J int
}

// Overlaps reports whether a and b penetrate.
func Overlaps(a, b *dynamo.Body) bool {
	r := a.Radius + b.Radius
	return vmath.Norm2(b.Pos.Sub(a.Pos)) < r*r
}

// FindOverlaps returns every unordered pair whose centre distance is below
// the sum of radii, in lexicographic order. Pairs of fixed bodies are
// reported too; ResolvePair leaves them alone.
func FindOverlaps(bodies []dynamo.Body) []Pair {
	return AppendOverlaps(nil, bodies)
}

// AppendOverlaps is FindOverlaps appending to dst.
func AppendOverlaps(dst []Pair, bodies []dynamo.Body) []Pair {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if Overlaps(&bodies[i], &bodies[j]) {
				dst = append(dst, Pair{I: i, J: j})
			}
		}
	}
	return dst
}

// FindWallOverlaps returns the walls of bounds that b penetrates.
func FindWallOverlaps(b *dynamo.Body, bounds dynamo.Bounds) dynamo.Side {
	side := dynamo.NoSide
	if b.Pos.X-b.Radius < bounds.Min.X {
		side |= dynamo.Left
	}
	if b.Pos.X+b.Radius > bounds.Max.X {
		side |= dynamo.Right
	}
	if b.Pos.Y-b.Radius < bounds.Min.Y {
		side |= dynamo.Bottom
	}
	if b.Pos.Y+b.Radius > bounds.Max.Y {
		side |= dynamo.Top
	}
	return side
}
