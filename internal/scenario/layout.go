package scenario

import (
	"math"
	"math/rand"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/vmath"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// gridCells splits bounds into at least n near-square cells and returns the
// cell size.
func gridCells(n int, b dynamo.Bounds) (cols, rows int, cell vmath.Vec) {
	if n <= 0 {
		return 0, 0, vmath.Zero
	}
	aspect := b.Width() / b.Height()
	if !(aspect > 0) || math.IsInf(aspect, 0) {
		aspect = 1
	}
	cols = int(math.Ceil(math.Sqrt(float64(n) * aspect)))
	if cols < 1 {
		cols = 1
	}
	rows = (n + cols - 1) / cols
	return cols, rows, vmath.Vec{X: b.Width() / float64(cols), Y: b.Height() / float64(rows)}
}

// scatter places n centres on a jittered grid so that circles of radius r no
// larger than maxRadius never start overlapping each other or the walls.
func scatter(rng *rand.Rand, n int, b dynamo.Bounds, maxRadius float64) []vmath.Vec {
	cols, _, cell := gridCells(n, b)
	slack := vmath.Vec{
		X: math.Max(0, cell.X/2-maxRadius),
		Y: math.Max(0, cell.Y/2-maxRadius),
	}
	out := make([]vmath.Vec, n)
	for i := range out {
		c := vmath.Vec{
			X: b.Min.X + (float64(i%cols)+0.5)*cell.X,
			Y: b.Min.Y + (float64(i/cols)+0.5)*cell.Y,
		}
		out[i] = c.Add(vmath.Vec{
			X: (2*rng.Float64() - 1) * slack.X,
			Y: (2*rng.Float64() - 1) * slack.Y,
		})
	}
	return out
}

// cellRadius caps a body radius so that n bodies fit the grid.
func cellRadius(n int, b dynamo.Bounds, want float64) float64 {
	_, _, cell := gridCells(n, b)
	limit := 0.45 * math.Min(cell.X, cell.Y)
	if n == 0 || want < limit {
		return want
	}
	return limit
}

func randomVelocity(rng *rand.Rand, speed float64) vmath.Vec {
	return vmath.FromPolar(speed, rng.Float64()*2*math.Pi)
}

func boxFor(st dynamo.Structure) *dynamo.Bounds {
	b := dynamo.NewBounds(st.Width, st.Height)
	return &b
}

func bodyCount(st dynamo.Structure) int {
	if st.BodyCount < 0 {
		return 0
	}
	return st.BodyCount
}
