package collision_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simcore/internal/collision"
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/vmath"
)

func momentum(bodies ...*dynamo.Body) vmath.Vec {
	p := vmath.Zero
	for _, b := range bodies {
		p = p.Add(b.Vel.Scale(b.Mass))
	}
	return p
}

func kinetic(bodies ...*dynamo.Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * vmath.Norm2(b.Vel)
	}
	return ke
}

var _ = Describe("FindOverlaps", func() {
	It("returns nothing for separated bodies", func() {
		bodies := []dynamo.Body{
			{Pos: vmath.Vec{X: 0}, Radius: 1},
			{Pos: vmath.Vec{X: 3}, Radius: 1},
		}
		Expect(collision.FindOverlaps(bodies)).To(BeEmpty())
	})

	It("does not report bodies exactly touching", func() {
		bodies := []dynamo.Body{
			{Pos: vmath.Vec{X: 0}, Radius: 1},
			{Pos: vmath.Vec{X: 2}, Radius: 1},
		}
		Expect(collision.FindOverlaps(bodies)).To(BeEmpty())
	})

	It("reports every overlapping unordered pair in order", func() {
		bodies := []dynamo.Body{
			{Pos: vmath.Vec{X: 0}, Radius: 1},
			{Pos: vmath.Vec{X: 1}, Radius: 1},
			{Pos: vmath.Vec{X: 1.5}, Radius: 1},
			{Pos: vmath.Vec{X: 50}, Radius: 1},
		}
		Expect(collision.FindOverlaps(bodies)).To(Equal([]collision.Pair{
			{I: 0, J: 1}, {I: 0, J: 2}, {I: 1, J: 2},
		}))
	})

	It("reports overlapping fixed bodies but never moves them", func() {
		bodies := []dynamo.Body{
			{Radius: 1, Mass: 1, Fixed: true},
			{Pos: vmath.Vec{X: 0.5}, Radius: 1, Mass: 1, Fixed: true},
		}
		Expect(collision.FindOverlaps(bodies)).To(Equal([]collision.Pair{{I: 0, J: 1}}))

		st := collision.NewResolver().Resolve(bodies, nil, 1)
		Expect(st.Pairs).To(Equal(1))
		Expect(st.Impulses).To(BeZero())
		Expect(bodies[0].Pos).To(Equal(vmath.Zero))
		Expect(bodies[1].Pos).To(Equal(vmath.Vec{X: 0.5}))
	})
})

var _ = Describe("FindWallOverlaps", func() {
	bounds := dynamo.NewBounds(10, 10)

	DescribeTable("penetrated sides",
		func(pos vmath.Vec, expected dynamo.Side) {
			b := dynamo.Body{Pos: pos, Radius: 1}
			Expect(collision.FindWallOverlaps(&b, bounds)).To(Equal(expected))
		},
		Entry("inside", vmath.Vec{X: 5, Y: 5}, dynamo.NoSide),
		Entry("left", vmath.Vec{X: 0.5, Y: 5}, dynamo.Left),
		Entry("right", vmath.Vec{X: 9.5, Y: 5}, dynamo.Right),
		Entry("bottom", vmath.Vec{X: 5, Y: 0.2}, dynamo.Bottom),
		Entry("top-right corner", vmath.Vec{X: 9.9, Y: 9.9}, dynamo.Right|dynamo.Top),
	)
})

var _ = Describe("ResolvePair", func() {
	It("swaps velocities of equal masses in a head-on elastic collision", func() {
		a := dynamo.Body{Pos: vmath.Vec{X: -0.9}, Vel: vmath.Vec{X: 5}, Mass: 10, Radius: 1}
		b := dynamo.Body{Pos: vmath.Vec{X: 0.9}, Vel: vmath.Vec{X: -5}, Mass: 10, Radius: 1}

		Expect(collision.ResolvePair(&a, &b, 1)).To(BeTrue())
		Expect(a.Vel.X).To(BeNumerically("~", -5, 1e-9))
		Expect(b.Vel.X).To(BeNumerically("~", 5, 1e-9))
		Expect(a.Vel.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("conserves momentum and kinetic energy at e=1 for unequal masses", func() {
		a := dynamo.Body{Pos: vmath.Vec{X: 0, Y: 0}, Vel: vmath.Vec{X: 3, Y: 1}, Mass: 2, Radius: 1}
		b := dynamo.Body{Pos: vmath.Vec{X: 1.2, Y: 0.8}, Vel: vmath.Vec{X: -1, Y: -2}, Mass: 7, Radius: 0.5}

		p0, ke0 := momentum(&a, &b), kinetic(&a, &b)
		Expect(collision.ResolvePair(&a, &b, 1)).To(BeTrue())
		p1, ke1 := momentum(&a, &b), kinetic(&a, &b)

		Expect(p1.X).To(BeNumerically("~", p0.X, 1e-6*math.Abs(p0.X)+1e-12))
		Expect(p1.Y).To(BeNumerically("~", p0.Y, 1e-6*math.Abs(p0.Y)+1e-12))
		Expect(ke1).To(BeNumerically("~", ke0, 1e-6*ke0))
	})

	DescribeTable("conserves momentum for any restitution",
		func(a, b dynamo.Body, e float64) {
			p0 := momentum(&a, &b)
			Expect(collision.ResolvePair(&a, &b, e)).To(BeTrue())
			p1 := momentum(&a, &b)
			Expect(p1.X).To(BeNumerically("~", p0.X, 1e-9))
			Expect(p1.Y).To(BeNumerically("~", p0.Y, 1e-9))
		},
		Entry("e=0 unequal masses",
			dynamo.Body{Vel: vmath.Vec{X: 3, Y: 1}, Mass: 2, Radius: 1},
			dynamo.Body{Pos: vmath.Vec{X: 1.2, Y: 0.8}, Vel: vmath.Vec{X: -1, Y: -2}, Mass: 7, Radius: 0.5}, 0.0),
		Entry("e=0.5 unequal masses",
			dynamo.Body{Vel: vmath.Vec{X: 3, Y: 1}, Mass: 2, Radius: 1},
			dynamo.Body{Pos: vmath.Vec{X: 1.2, Y: 0.8}, Vel: vmath.Vec{X: -1, Y: -2}, Mass: 7, Radius: 0.5}, 0.5),
		Entry("e=0.5 glancing",
			dynamo.Body{Vel: vmath.Vec{X: 0.2, Y: 4}, Mass: 0.3, Radius: 1},
			dynamo.Body{Pos: vmath.Vec{X: -0.4, Y: 1.5}, Vel: vmath.Vec{X: 1}, Mass: 12, Radius: 1}, 0.5),
		Entry("e=1 unequal masses",
			dynamo.Body{Vel: vmath.Vec{X: 3, Y: 1}, Mass: 2, Radius: 1},
			dynamo.Body{Pos: vmath.Vec{X: 1.2, Y: 0.8}, Vel: vmath.Vec{X: -1, Y: -2}, Mass: 7, Radius: 0.5}, 1.0),
		Entry("coincident centres e=0",
			dynamo.Body{Pos: vmath.Vec{X: 2, Y: 2}, Vel: vmath.Vec{X: 1, Y: 1}, Mass: 4, Radius: 1},
			dynamo.Body{Pos: vmath.Vec{X: 2, Y: 2}, Vel: vmath.Vec{X: -3}, Mass: 1, Radius: 1}, 0.0),
		Entry("coincident centres e=0.5",
			dynamo.Body{Pos: vmath.Vec{X: 2, Y: 2}, Vel: vmath.Vec{X: 1, Y: 1}, Mass: 4, Radius: 1},
			dynamo.Body{Pos: vmath.Vec{X: 2, Y: 2}, Vel: vmath.Vec{X: -3}, Mass: 1, Radius: 1}, 0.5),
	)

	It("leaves zero normal relative velocity at e=0", func() {
		a := dynamo.Body{Vel: vmath.Vec{X: 4, Y: 2}, Mass: 1, Radius: 1}
		b := dynamo.Body{Pos: vmath.Vec{X: 1, Y: 1}, Vel: vmath.Vec{X: -2}, Mass: 3, Radius: 1}
		normal := vmath.Unit(b.Pos.Sub(a.Pos))

		p0 := momentum(&a, &b)
		Expect(collision.ResolvePair(&a, &b, 0)).To(BeTrue())

		Expect(b.Vel.Sub(a.Vel).Dot(normal)).To(BeNumerically("~", 0, 1e-12))
		p1 := momentum(&a, &b)
		Expect(p1.X).To(BeNumerically("~", p0.X, 1e-9))
		Expect(p1.Y).To(BeNumerically("~", p0.Y, 1e-9))
	})

	It("ignores separating bodies", func() {
		a := dynamo.Body{Vel: vmath.Vec{X: -1}, Mass: 1, Radius: 1}
		b := dynamo.Body{Pos: vmath.Vec{X: 1}, Vel: vmath.Vec{X: 1}, Mass: 1, Radius: 1}

		Expect(collision.ResolvePair(&a, &b, 1)).To(BeFalse())
		Expect(a.Vel.X).To(Equal(-1.0))
		Expect(b.Vel.X).To(Equal(1.0))
		Expect(a.Pos.X).To(Equal(0.0))
	})

	It("separates bodies by half the penetration each", func() {
		a := dynamo.Body{Vel: vmath.Vec{X: 1}, Mass: 1, Radius: 1}
		b := dynamo.Body{Pos: vmath.Vec{X: 1}, Mass: 5, Radius: 1}

		collision.ResolvePair(&a, &b, 0.5)
		Expect(a.Pos.X).To(BeNumerically("~", -0.5, 1e-12))
		Expect(b.Pos.X).To(BeNumerically("~", 1.5, 1e-12))
		Expect(vmath.Dist(a.Pos, b.Pos)).To(BeNumerically("~", 2, 1e-12))
	})

	It("picks a stable normal for coincident centres", func() {
		a := dynamo.Body{Vel: vmath.Vec{X: 1}, Mass: 1, Radius: 1}
		b := dynamo.Body{Vel: vmath.Vec{X: -1}, Mass: 1, Radius: 1}

		Expect(collision.ResolvePair(&a, &b, 1)).To(BeTrue())
		Expect(vmath.Finite(a.Vel) && vmath.Finite(b.Vel)).To(BeTrue())
		Expect(vmath.Finite(a.Pos) && vmath.Finite(b.Pos)).To(BeTrue())
		Expect(a.Vel.X).To(BeNumerically("~", -1, 1e-12))
		Expect(b.Pos.X - a.Pos.X).To(BeNumerically("~", 2, 1e-12))
	})

	It("treats a fixed body as immovable", func() {
		wall := dynamo.Body{Mass: 1, Radius: 1, Fixed: true}
		ball := dynamo.Body{Pos: vmath.Vec{X: 1.5}, Vel: vmath.Vec{X: -2}, Mass: 1, Radius: 1}

		Expect(collision.ResolvePair(&wall, &ball, 1)).To(BeTrue())
		Expect(wall.Pos).To(Equal(vmath.Zero))
		Expect(wall.Vel).To(Equal(vmath.Zero))
		Expect(ball.Vel.X).To(BeNumerically("~", 2, 1e-12))
		Expect(ball.Pos.X).To(BeNumerically("~", 2, 1e-12))
	})
})

var _ = Describe("ResolveWall", func() {
	bounds := dynamo.NewBounds(10, 10)

	It("reflects and damps the violated component", func() {
		b := dynamo.Body{Pos: vmath.Vec{X: 0.5, Y: 5}, Vel: vmath.Vec{X: -4, Y: 1}, Mass: 2, Radius: 1}
		sides := collision.FindWallOverlaps(&b, bounds)

		impulse := collision.ResolveWall(&b, bounds, sides, 0.5)
		Expect(b.Pos.X).To(Equal(1.0))
		Expect(b.Vel.X).To(Equal(2.0))
		Expect(b.Vel.Y).To(Equal(1.0))
		Expect(impulse).To(BeNumerically("~", 12, 1e-12))
	})

	It("does not flip a body already moving away from the wall", func() {
		b := dynamo.Body{Pos: vmath.Vec{X: 9.8, Y: 5}, Vel: vmath.Vec{X: -3}, Mass: 1, Radius: 1}
		collision.ResolveWall(&b, bounds, dynamo.Right, 1)
		Expect(b.Vel.X).To(Equal(-3.0))
		Expect(b.Pos.X).To(Equal(9.0))
	})

	It("keeps the speed of an overlapping body moving away at e<1", func() {
		b := dynamo.Body{Pos: vmath.Vec{X: 0.5, Y: 5}, Vel: vmath.Vec{X: 3, Y: -1}, Mass: 1, Radius: 1}
		impulse := collision.ResolveWall(&b, bounds, dynamo.Left, 0.5)
		Expect(b.Pos.X).To(Equal(1.0))
		Expect(b.Vel).To(Equal(vmath.Vec{X: 3, Y: -1}))
		Expect(impulse).To(BeZero())
	})

	It("damps only the component heading into a corner", func() {
		b := dynamo.Body{Pos: vmath.Vec{X: 9.5, Y: 9.5}, Vel: vmath.Vec{X: 2, Y: -4}, Mass: 1, Radius: 1}
		collision.ResolveWall(&b, bounds, dynamo.Right|dynamo.Top, 0.5)
		Expect(b.Vel.X).To(Equal(-1.0))
		Expect(b.Vel.Y).To(Equal(-4.0))
	})

	It("centres a body too large for the box", func() {
		narrow := dynamo.NewBounds(1, 10)
		b := dynamo.Body{Pos: vmath.Vec{X: 0.1, Y: 5}, Vel: vmath.Vec{X: -1}, Mass: 1, Radius: 2}
		collision.ResolveWall(&b, narrow, collision.FindWallOverlaps(&b, narrow), 1)
		Expect(b.Pos.X).To(Equal(0.5))
	})
})

var _ = Describe("Resolver", func() {
	It("keeps every body inside the box over many steps", func() {
		bounds := dynamo.NewBounds(20, 10)
		bodies := []dynamo.Body{
			{Pos: vmath.Vec{X: 5, Y: 5}, Vel: vmath.Vec{X: 30, Y: 17}, Mass: 1, Radius: 0.5},
			{Pos: vmath.Vec{X: 15, Y: 5}, Vel: vmath.Vec{X: -25, Y: 40}, Mass: 3, Radius: 1},
			{Pos: vmath.Vec{X: 10, Y: 2}, Vel: vmath.Vec{X: 8, Y: -60}, Mass: 2, Radius: 0.8},
		}
		r := collision.NewResolver()
		dt := 0.05
		for step := 0; step < 2000; step++ {
			for i := range bodies {
				bodies[i].Pos = bodies[i].Pos.Add(bodies[i].Vel.Scale(dt))
			}
			r.Resolve(bodies, &bounds, 0.9)
			for i := range bodies {
				Expect(bounds.Contains(bodies[i].Pos, bodies[i].Radius-1e-9)).To(BeTrue(),
					"body %d escaped at step %d: %v", i, step, bodies[i].Pos)
			}
		}
	})

	It("skips wall handling in unbounded scenarios", func() {
		bodies := []dynamo.Body{{Pos: vmath.Vec{X: -100}, Mass: 1, Radius: 1}}
		st := collision.NewResolver().Resolve(bodies, nil, 1)
		Expect(st.Walls).To(BeZero())
		Expect(bodies[0].Pos.X).To(Equal(-100.0))
	})
})
