package sim_test

import (
	"context"
	"math"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/field"
	"github.com/san-kum/simcore/internal/forces"
	"github.com/san-kum/simcore/internal/metrics"
	"github.com/san-kum/simcore/internal/sim"
	"github.com/san-kum/simcore/internal/vmath"
)

// drift moves BodyCount unit-mass bodies at (1, 0) with no forces.
type drift struct {
	bounded bool
	model   forces.Model
}

func (d drift) Name() string { return "drift" }

func (d drift) Bodies(s dynamo.Settings) []dynamo.Body {
	rng := rand.New(rand.NewSource(s.Seed))
	bodies := make([]dynamo.Body, s.Structure.BodyCount)
	for i := range bodies {
		bodies[i] = dynamo.Body{
			Pos:    vmath.Vec{X: 1 + rng.Float64(), Y: 1 + 2*float64(i)},
			Vel:    vmath.Vec{X: 1},
			Mass:   1,
			Radius: 0.25,
		}
	}
	return bodies
}

func (d drift) Forces() forces.Model { return d.model }

func (d drift) Bounds(st dynamo.Structure) *dynamo.Bounds {
	if !d.bounded {
		return nil
	}
	b := dynamo.NewBounds(st.Width, st.Height)
	return &b
}

func (d drift) Metrics(bodies []dynamo.Body, env sim.Env) map[string]float64 {
	return map[string]float64{"kinetic_energy": metrics.KineticEnergy(bodies)}
}

type charged struct{ drift }

func (charged) FieldKind() field.Kind { return field.Electric }

func (charged) Bodies(dynamo.Settings) []dynamo.Body {
	return []dynamo.Body{{Charge: 1, Fixed: true}}
}

func settings(n int) dynamo.Settings {
	return dynamo.Settings{
		Params:    dynamo.DefaultParams(),
		Structure: dynamo.Structure{BodyCount: n, Width: 10, Height: 10},
		Seed:      7,
	}
}

var t0 = time.Unix(1000, 0)

func at(seconds float64) time.Time {
	return t0.Add(time.Duration(math.Round(seconds * float64(time.Second))))
}

var _ = Describe("Loop", func() {
	var (
		loop    *sim.Loop
		initial []dynamo.Body
	)

	BeforeEach(func() {
		loop = sim.New(drift{}, settings(2))
		initial = loop.Snapshot().Bodies
	})

	It("starts paused with a generated body set", func() {
		Expect(loop.State()).To(Equal(sim.Paused))
		Expect(initial).To(HaveLen(2))
		Expect(loop.Frame(at(0))).To(BeTrue())
		Expect(loop.Frame(at(1))).To(BeTrue())
		Expect(loop.Snapshot().Bodies).To(Equal(initial))
	})

	It("measures delta time from the previous frame timestamp", func() {
		loop.Start()
		loop.Frame(at(0))
		loop.Frame(at(0.1))
		loop.Frame(at(0.35))

		snap := loop.Snapshot()
		Expect(snap.Dt).To(BeNumerically("~", 0.25, 1e-9))
		Expect(snap.Time).To(BeNumerically("~", 0.35, 1e-9))
		Expect(snap.Bodies[0].Pos.X).To(BeNumerically("~", initial[0].Pos.X+0.35, 1e-9))
	})

	It("treats the first frame after start as zero delta", func() {
		loop.Start()
		loop.Frame(at(5))
		Expect(loop.Snapshot().Dt).To(BeZero())
		Expect(loop.Snapshot().Bodies).To(Equal(initial))
	})

	It("keeps the delta-time baseline current while paused", func() {
		loop.Start()
		loop.Frame(at(0))
		loop.Frame(at(0.1))
		loop.Pause()
		Expect(loop.State()).To(Equal(sim.Paused))

		loop.Frame(at(1))
		loop.Frame(at(2))
		Expect(loop.Snapshot().Bodies[0].Pos.X).To(BeNumerically("~", initial[0].Pos.X+0.1, 1e-9))

		loop.Resume()
		loop.Frame(at(2.05))
		Expect(loop.Snapshot().Dt).To(BeNumerically("~", 0.05, 1e-9))
		Expect(loop.Snapshot().Bodies[0].Pos.X).To(BeNumerically("~", initial[0].Pos.X+0.15, 1e-9))
	})

	It("scales delta time by the time scale", func() {
		s := settings(2)
		s.Params.TimeScale = 3
		Expect(loop.Configure(s)).To(Succeed())
		Expect(loop.State()).To(Equal(sim.Paused))

		loop.Start()
		loop.Frame(at(0))
		loop.Frame(at(0.1))
		Expect(loop.Snapshot().Dt).To(BeNumerically("~", 0.3, 1e-9))
	})

	It("clamps a non-positive time scale to real time", func() {
		s := settings(2)
		s.Params.TimeScale = -4
		Expect(loop.Configure(s)).To(Succeed())
		Expect(loop.Params().TimeScale).To(Equal(1.0))
	})

	It("ignores timestamps that go backwards", func() {
		loop.Start()
		loop.Frame(at(1))
		loop.Frame(at(0.5))
		Expect(loop.Snapshot().Dt).To(BeZero())
		Expect(loop.Snapshot().Bodies).To(Equal(initial))
	})

	It("regenerates the body set on reset and runs", func() {
		loop.Start()
		loop.Frame(at(0))
		loop.Frame(at(1))
		Expect(loop.Snapshot().Bodies).NotTo(Equal(initial))

		loop.Pause()
		loop.Reset()
		Expect(loop.State()).To(Equal(sim.ResetPending))

		loop.Frame(at(1.1))
		Expect(loop.State()).To(Equal(sim.Running))
		Expect(loop.Snapshot().Bodies).To(Equal(initial))
		Expect(loop.Snapshot().Frame).To(BeZero())
	})

	It("applies continuous parameters without regenerating", func() {
		loop.Start()
		loop.Frame(at(0))
		loop.Frame(at(1))
		moved := loop.Snapshot().Bodies

		s := settings(2)
		s.Params.Restitution = 0.5
		Expect(loop.Configure(s)).To(Succeed())
		Expect(loop.State()).To(Equal(sim.Running))
		Expect(loop.Params().Restitution).To(Equal(0.5))
		Expect(loop.Snapshot().Bodies).To(Equal(moved))
	})

	It("schedules a reset when the structure changes", func() {
		loop.Start()
		Expect(loop.Configure(settings(5))).To(Succeed())
		Expect(loop.State()).To(Equal(sim.ResetPending))

		loop.Frame(at(0))
		Expect(loop.State()).To(Equal(sim.Running))
		Expect(loop.Snapshot().Bodies).To(HaveLen(5))
	})

	It("stops cooperatively", func() {
		calls := 0
		loop.OnFrame(func(dynamo.Snapshot) { calls++ })
		loop.Start()
		Expect(loop.Frame(at(0))).To(BeTrue())
		Expect(calls).To(Equal(1))

		loop.Stop()
		Expect(loop.Frame(at(1))).To(BeFalse())
		Expect(calls).To(Equal(1))
		Expect(loop.Configure(settings(3))).To(MatchError(dynamo.ErrStopped))

		loop.Start()
		loop.Reset()
		Expect(loop.State()).To(Equal(sim.Stopped))
	})

	It("stops from inside a frame callback before later observers run", func() {
		second := 0
		loop.OnFrame(func(dynamo.Snapshot) { loop.Stop() })
		loop.OnFrame(func(dynamo.Snapshot) { second++ })
		loop.Start()
		Expect(loop.Frame(at(0))).To(BeFalse())
		Expect(second).To(BeZero())
	})

	It("hands out snapshots that do not alias the body buffer", func() {
		var got dynamo.Snapshot
		loop.OnFrame(func(s dynamo.Snapshot) { got = s })
		loop.Start()
		loop.Frame(at(0))

		got.Bodies[0].Pos = vmath.Vec{X: 99, Y: 99}
		loop.Frame(at(0.1))
		Expect(loop.Snapshot().Bodies[0].Pos.X).To(BeNumerically("<", 10))
	})

	It("writes queued moves back before the next frame", func() {
		loop.Start()
		loop.Frame(at(0))
		loop.Move(1, vmath.Vec{X: 4, Y: 4})
		loop.Move(9, vmath.Vec{X: 4, Y: 4})
		Expect(loop.Snapshot().Bodies[1].Pos).NotTo(Equal(vmath.Vec{X: 4, Y: 4}))

		loop.Frame(at(0.5))
		b := loop.Snapshot().Bodies[1]
		Expect(b.Pos).To(Equal(vmath.Vec{X: 4, Y: 4}))
		Expect(b.Vel).To(Equal(vmath.Zero))
	})

	It("publishes moves while paused without advancing", func() {
		loop.Move(0, vmath.Vec{X: 3, Y: 3})
		loop.Frame(at(0))
		Expect(loop.Snapshot().Bodies[0].Pos).To(Equal(vmath.Vec{X: 3, Y: 3}))
		Expect(loop.Snapshot().Bodies[1]).To(Equal(initial[1]))
	})

	It("publishes scenario and accumulating metrics", func() {
		l := sim.New(drift{}, settings(3), sim.WithMetric(metrics.NewEnergyDrift("kinetic_energy")))
		l.Start()
		l.Frame(at(0))
		l.Frame(at(0.1))
		snap := l.Snapshot()
		Expect(snap.Metric("kinetic_energy")).To(BeNumerically("~", 1.5, 1e-12))
		Expect(snap.Metrics).To(HaveKeyWithValue("energy_drift", 0.0))
	})

	It("samples no field for a scenario without sources", func() {
		Expect(loop.SampleField(vmath.Vec{X: 1})).To(Equal(vmath.Zero))
		_, ok := loop.FieldSampler()
		Expect(ok).To(BeFalse())
	})

	It("samples the field of a source scenario", func() {
		l := sim.New(charged{}, settings(1))
		f := l.SampleField(vmath.Vec{X: 2})
		Expect(f.X).To(BeNumerically("~", 0.5, 1e-12))
		Expect(f.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("keeps bodies inside a bounded box", func() {
		l := sim.New(drift{bounded: true, model: forces.Model{Uniform: true}}, settings(4))
		l.Start()
		for i := 0; i <= 2000; i++ {
			l.Frame(at(float64(i) / 60))
		}
		b := dynamo.NewBounds(10, 10)
		for _, body := range l.Snapshot().Bodies {
			Expect(b.Contains(body.Pos, -body.Radius)).To(BeTrue(), "body escaped: %v", body.Pos)
		}
	})

	It("runs from a tick channel until the context is cancelled", func() {
		ticks := make(chan time.Time)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- loop.Run(ctx, ticks) }()

		ticks <- at(0)
		ticks <- at(0.5)
		cancel()
		Eventually(done).Should(Receive(MatchError(context.Canceled)))
		Expect(loop.State()).To(Equal(sim.Stopped))
		Expect(loop.Snapshot().Time).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("returns when the tick channel closes", func() {
		ticks := make(chan time.Time, 2)
		ticks <- at(0)
		ticks <- at(0.25)
		close(ticks)
		Expect(loop.Run(context.Background(), ticks)).To(Succeed())
		Expect(loop.Snapshot().Frame).To(Equal(2))
	})
})

var _ = Describe("Ensemble", func() {
	It("runs one loop per seed deterministically", func() {
		e := sim.NewEnsemble(drift{}, 3, 10, nil)
		a, err := e.Run(context.Background(), settings(2), 30, time.Second/60)
		Expect(err).NotTo(HaveOccurred())
		b, err := e.Run(context.Background(), settings(2), 30, time.Second/60)
		Expect(err).NotTo(HaveOccurred())

		Expect(a).To(HaveLen(3))
		Expect(a).To(Equal(b))
		Expect(a[0].Bodies).NotTo(Equal(a[1].Bodies))
		Expect(a[0].Frame).To(Equal(30))
		Expect(a[0].Time).To(BeNumerically("~", 0.5, 1e-6))
	})

	It("honours cancellation", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sim.NewEnsemble(drift{}, 2, 0, nil).Run(ctx, settings(1), 10, time.Millisecond)
		Expect(err).To(MatchError(context.Canceled))
	})
})
