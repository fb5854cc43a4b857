package sim

import (
	"context"
	"log/slog"
	"time"

	"github.com/san-kum/simcore/internal/collision"
	"github.com/san-kum/simcore/internal/dynamo"
	"github.com/san-kum/simcore/internal/field"
	"github.com/san-kum/simcore/internal/forces"
	"github.com/san-kum/simcore/internal/integrators"
	"github.com/san-kum/simcore/internal/vmath"
)

// State is the lifecycle state of a Loop.
type State int

const (
	Paused State = iota
	Running
	ResetPending
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case ResetPending:
		return "reset-pending"
	case Stopped:
		return "stopped"
	default:
		return "paused"
	}
}

type move struct {
	index int
	pos   vmath.Vec
}

// Loop advances one scenario frame by frame. It is single-threaded: the
// host calls Frame once per display refresh from the same goroutine that
// calls every other method.
type Loop struct {
	scn      Scenario
	settings dynamo.Settings
	params   dynamo.Params
	model    forces.Model
	bounds   *dynamo.Bounds

	bodies   []dynamo.Body
	acc      []vmath.Vec
	integ    *integrators.SemiImplicitEuler
	resolver *collision.Resolver

	state   State
	last    time.Time
	hasLast bool
	frame   int
	time    float64
	moves   []move
	latest  dynamo.Snapshot

	metrics   []dynamo.Metric
	observers []func(dynamo.Snapshot)
	log       *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMetric adds an accumulating metric. Its value is published in every
// snapshot under its name and reset with the body set.
func WithMetric(m dynamo.Metric) Option {
	return func(l *Loop) { l.metrics = append(l.metrics, m) }
}

// New builds the initial body set. The loop starts Paused; call Start.
func New(scn Scenario, settings dynamo.Settings, opts ...Option) *Loop {
	l := &Loop{
		scn:      scn,
		model:    scn.Forces(),
		integ:    integrators.NewSemiImplicitEuler(),
		resolver: collision.NewResolver(),
		log:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.log = l.log.With("scenario", scn.Name())
	l.apply(settings)
	l.regenerate()
	return l
}

func (l *Loop) State() State { return l.state }

func (l *Loop) Settings() dynamo.Settings { return l.settings }

// Params returns the sanitized parameters in effect.
func (l *Loop) Params() dynamo.Params { return l.params }

func (l *Loop) Bounds() *dynamo.Bounds { return l.bounds }

// Snapshot returns the most recently published frame.
func (l *Loop) Snapshot() dynamo.Snapshot { return l.latest }

// OnFrame registers fn to receive every published snapshot.
func (l *Loop) OnFrame(fn func(dynamo.Snapshot)) {
	l.observers = append(l.observers, fn)
}

// Start begins running with a fresh delta-time baseline.
func (l *Loop) Start() {
	if l.state == Stopped {
		return
	}
	l.hasLast = false
	if l.state != ResetPending {
		l.state = Running
	}
	l.log.Debug("loop started")
}

// Pause halts state mutation. Frames keep arriving and keep the delta-time
// baseline current.
func (l *Loop) Pause() {
	if l.state != Running {
		return
	}
	l.state = Paused
	l.log.Debug("loop paused", "frame", l.frame)
}

func (l *Loop) Resume() {
	if l.state != Paused {
		return
	}
	l.state = Running
	l.log.Debug("loop resumed", "frame", l.frame)
}

// Reset regenerates the body set on the next frame and then runs.
func (l *Loop) Reset() {
	if l.state == Stopped {
		return
	}
	l.state = ResetPending
	l.log.Debug("reset requested")
}

// Stop ends the loop. Every later Frame returns false without work.
func (l *Loop) Stop() {
	if l.state == Stopped {
		return
	}
	l.state = Stopped
	l.moves = nil
	l.log.Debug("loop stopped", "frame", l.frame, "time", l.time)
}

// Configure applies continuous parameters to the live body set. A change to
// the structure or seed schedules a reset instead.
func (l *Loop) Configure(settings dynamo.Settings) error {
	if l.state == Stopped {
		return dynamo.ErrStopped
	}
	structural := l.settings.StructureChanged(settings)
	l.apply(settings)
	if structural {
		l.state = ResetPending
		l.log.Debug("structure changed", "body_count", settings.Structure.BodyCount)
	}
	return nil
}

func (l *Loop) apply(settings dynamo.Settings) {
	params, clamped := settings.Params.Sanitize()
	if len(clamped) > 0 {
		l.log.Warn("clamped degenerate parameters", "fields", clamped)
	}
	l.settings = settings
	l.params = params
}

// Move queues a direct position write for body i, applied at the top of the
// next frame. A dragged body loses its velocity.
func (l *Loop) Move(i int, pos vmath.Vec) {
	if l.state == Stopped {
		return
	}
	l.moves = append(l.moves, move{index: i, pos: pos})
}

// SampleField evaluates the scenario's field at p, or returns zero when the
// scenario has no field sources.
func (l *Loop) SampleField(p vmath.Vec) vmath.Vec {
	fs, ok := l.scn.(FieldSource)
	if !ok {
		return vmath.Zero
	}
	return l.sampler(fs.FieldKind()).At(p, l.bodies)
}

// FieldSampler returns the sampler SampleField uses and reports whether the
// scenario has field sources.
func (l *Loop) FieldSampler() (field.Sampler, bool) {
	fs, ok := l.scn.(FieldSource)
	if !ok {
		return field.Sampler{}, false
	}
	return l.sampler(fs.FieldKind()), true
}

// Sources returns a copy of the live body set.
func (l *Loop) Sources() []dynamo.Body {
	return dynamo.CloneBodies(l.bodies)
}

func (l *Loop) sampler(kind field.Kind) field.Sampler {
	k := l.params.Coulomb
	if kind == field.Gravitational {
		k = l.params.G
	}
	return field.Sampler{Kind: kind, K: k}
}

// Frame is the host callback. Delta time is measured from the previous
// call's timestamp. It returns false once the loop is stopped.
func (l *Loop) Frame(ts time.Time) bool {
	if l.state == Stopped {
		return false
	}

	var dt float64
	if l.hasLast {
		dt = ts.Sub(l.last).Seconds()
	}
	l.last = ts
	l.hasLast = true

	moved := l.applyMoves()

	switch l.state {
	case ResetPending:
		l.regenerate()
		l.state = Running
		l.log.Debug("body set regenerated", "bodies", len(l.bodies))
	case Paused:
		if moved {
			l.publish(0, collision.Stats{})
		}
	case Running:
		l.advance(dt)
	}
	return l.state != Stopped
}

func (l *Loop) applyMoves() bool {
	if len(l.moves) == 0 {
		return false
	}
	for _, m := range l.moves {
		if m.index < 0 || m.index >= len(l.bodies) || !vmath.Finite(m.pos) {
			continue
		}
		l.bodies[m.index].Pos = m.pos
		l.bodies[m.index].Vel = vmath.Zero
	}
	l.moves = l.moves[:0]
	return true
}

func (l *Loop) advance(wallDt float64) {
	dt := integrators.EffectiveDt(wallDt, l.params.TimeScale)
	var stats collision.Stats
	if dt > 0 {
		l.acc = l.model.Accelerations(l.bodies, l.params, l.acc)
		l.integ.StepAll(l.bodies, l.acc, dt)
		stats = l.resolver.Resolve(l.bodies, l.bounds, l.params.Restitution)
	}
	l.time += dt
	l.frame++
	l.publish(dt, stats)
}

func (l *Loop) regenerate() {
	l.bounds = l.scn.Bounds(l.settings.Structure)
	l.bodies = l.scn.Bodies(l.settings)
	l.acc = l.acc[:0]
	l.moves = l.moves[:0]
	l.frame = 0
	l.time = 0
	for _, m := range l.metrics {
		m.Reset()
	}
	l.publish(0, collision.Stats{})
}

func (l *Loop) publish(dt float64, stats collision.Stats) {
	snap := dynamo.Snapshot{
		Frame:  l.frame,
		Time:   l.time,
		Dt:     dt,
		Bodies: dynamo.CloneBodies(l.bodies),
		Metrics: l.scn.Metrics(l.bodies, Env{
			Params:     l.params,
			Bounds:     l.bounds,
			Collisions: stats,
			Dt:         dt,
		}),
	}
	if l.bounds != nil {
		b := *l.bounds
		snap.Bounds = &b
	}
	if snap.Metrics == nil {
		snap.Metrics = make(map[string]float64)
	}
	for _, m := range l.metrics {
		m.Observe(&snap)
		snap.Metrics[m.Name()] = m.Value()
	}
	l.latest = snap
	for _, fn := range l.observers {
		if l.state == Stopped {
			return
		}
		fn(snap)
	}
}

// Run drives the loop from ticks until ctx is done, the channel closes or
// the loop is stopped. The loop is stopped on return.
func (l *Loop) Run(ctx context.Context, ticks <-chan time.Time) error {
	l.Start()
	defer l.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts, ok := <-ticks:
			if !ok || !l.Frame(ts) {
				return nil
			}
		}
	}
}

// Step advances a running loop by exactly dt seconds of wall time, for
// headless drivers that own their clock.
func (l *Loop) Step(dt time.Duration) bool {
	if !l.hasLast {
		l.last = time.Time{}
		l.hasLast = true
	}
	return l.Frame(l.last.Add(dt))
}
