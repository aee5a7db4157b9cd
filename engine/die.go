package engine

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/dice-tray/calibration"
	"github.com/lixenwraith/dice-tray/event"
	"github.com/lixenwraith/dice-tray/physics"
	"github.com/lixenwraith/dice-tray/settle"
	"github.com/lixenwraith/dice-tray/status"
	"github.com/lixenwraith/dice-tray/throw"
	"github.com/lixenwraith/dice-tray/vmath"
)

var (
	// ErrNoIntegrator is a setup failure: no physics collaborator
	ErrNoIntegrator = errors.New("physics integrator unavailable")
	// ErrNoResolver is a setup failure: no calibration
	ErrNoResolver = errors.New("face resolver unavailable")
	// ErrInvalidTray is a setup failure: the body does not fit the tray
	ErrInvalidTray = errors.New("die does not fit tray")
	// ErrRollInFlight is returned by Roll while a drag or roll is active
	ErrRollInFlight = errors.New("roll already in flight")
	// ErrDestroyed is returned by Roll after Destroy
	ErrDestroyed = errors.New("die destroyed")
)

// Options wires a die to its collaborators
// Zero-valued tuning fields fall back to defaults
type Options struct {
	Integrator physics.Integrator
	Resolver   *calibration.Resolver
	Thrower    *throw.Controller
	Radius     float64

	Params Params
	Settle settle.Params

	Clock  TimeProvider
	Bus    *event.Bus
	Status *status.Registry

	// Device size for pointer projection
	ViewWidth, ViewHeight float64
}

// Die owns the body, the active session and every pending timer of one die instance
// All methods must be called from the frame loop goroutine
type Die struct {
	body       *physics.Body
	integrator physics.Integrator
	resolver   *calibration.Resolver
	thrower    *throw.Controller
	detector   *settle.Detector
	params     Params

	clock     TimeProvider
	bus       *event.Bus
	scheduler *Scheduler
	view      View

	phase       Phase
	session     *Session
	lastSession SessionID
	present     *presentation

	sampler      VelocitySampler
	dragX, dragZ float64

	lastFrame   time.Time
	accumulator time.Duration
	frame       int64
	destroyed   bool

	statStarted   *atomic.Int64
	statCompleted *atomic.Int64
	statAborted   *atomic.Int64
	statCeiling   *atomic.Int64
	statFrames    *atomic.Int64
	statFace      *status.Label
	statReason    *status.Label
	statPhase     *status.Label
}

// New validates collaborators and builds an idle die resting at the tray center
func New(opts Options) (*Die, error) {
	if opts.Integrator == nil {
		return nil, ErrNoIntegrator
	}
	if opts.Resolver == nil {
		return nil, ErrNoResolver
	}

	radius := opts.Radius
	bounds := opts.Integrator.Bounds()
	if radius <= 0 || 2*radius >= 2*bounds.HalfWidth || 2*radius >= 2*bounds.HalfDepth {
		return nil, fmt.Errorf("%w: radius %.3f in %.3fx%.3f", ErrInvalidTray, radius, 2*bounds.HalfWidth, 2*bounds.HalfDepth)
	}

	params := opts.Params
	if params == (Params{}) {
		params = DefaultParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	settleParams := opts.Settle
	if settleParams == (settle.Params{}) {
		settleParams = settle.DefaultParams(radius)
	}
	detector, err := settle.NewDetector(settleParams)
	if err != nil {
		return nil, err
	}

	thrower := opts.Thrower
	if thrower == nil {
		thrower, err = throw.NewController(throw.DefaultParams(), rand.New(rand.NewSource(time.Now().UnixNano())))
		if err != nil {
			return nil, err
		}
	}

	clock := opts.Clock
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	reg := opts.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	d := &Die{
		body:       physics.NewBody(radius),
		integrator: opts.Integrator,
		resolver:   opts.Resolver,
		thrower:    thrower,
		detector:   detector,
		params:     params,
		clock:      clock,
		bus:        bus,
		scheduler:  NewScheduler(),
		view:       NewView(opts.ViewWidth, opts.ViewHeight, bounds),
		sampler:    NewVelocitySampler(params.SampleWindow, params.SampleStale),

		statStarted:   reg.Counter(status.RollsStarted),
		statCompleted: reg.Counter(status.RollsCompleted),
		statAborted:   reg.Counter(status.RollsAborted),
		statCeiling:   reg.Counter(status.RollsCeiling),
		statFrames:    reg.Counter(status.Frames),
		statFace:      reg.Label(status.LastFace),
		statReason:    reg.Label(status.LastReason),
		statPhase:     reg.Label(status.Phase),
	}
	d.setPhase(PhaseIdle)
	return d, nil
}

// === Accessors ===

// Bus returns the event bus roll events are published on
func (d *Die) Bus() *event.Bus { return d.bus }

// Phase returns the state machine value
func (d *Die) Phase() Phase { return d.phase }

// Pose returns the body pose for renderers
func (d *Die) Pose() physics.Pose { return d.body.Pose() }

// Radius returns the body radius
func (d *Die) Radius() float64 { return d.body.Radius }

// Faces returns the face count of the calibration
func (d *Die) Faces() int { return d.resolver.Table().Faces() }

// View returns the device projection
func (d *Die) View() View { return d.view }

// Destroyed reports whether Destroy was called
func (d *Die) Destroyed() bool { return d.destroyed }

// Session returns the active session id, zero when none
func (d *Die) Session() SessionID {
	if d.session == nil {
		return 0
	}
	return d.session.ID
}

// CurrentTopFace resolves the current orientation; valid at any time
func (d *Die) CurrentTopFace() (int, float64) {
	return d.resolver.Resolve(d.body.Orientation)
}

// Resize updates the device size used for pointer projection
func (d *Die) Resize(width, height float64) {
	d.view = NewView(width, height, d.integrator.Bounds())
}

// OnRollComplete registers fn for every completed roll; returns the unsubscribe func
func (d *Die) OnRollComplete(fn func(face int)) func() {
	sub := d.bus.Subscribe(func(ev event.Event) {
		if p, ok := ev.Payload.(*event.RollResolvedPayload); ok {
			fn(p.Face)
		}
	}, event.EventRollResolved)
	return func() { d.bus.Unsubscribe(sub) }
}

// === Frame loop ===

// Frame advances the die to the clock's current time
// Physics runs in fixed steps; settle checks follow each step; timers run last
func (d *Die) Frame() {
	if d.destroyed {
		return
	}
	now := d.clock.Now()
	if d.lastFrame.IsZero() {
		d.lastFrame = now
	}
	elapsed := now.Sub(d.lastFrame)
	d.lastFrame = now
	if elapsed > 0 {
		d.accumulator += elapsed
	}

	steps := 0
	for d.accumulator >= d.params.Step && steps < d.params.MaxStepsPerFrame {
		d.step(now)
		d.accumulator -= d.params.Step
		steps++
		if d.destroyed {
			return
		}
	}
	// Drop the backlog after a stall instead of spiraling
	if d.accumulator >= d.params.Step {
		d.accumulator = 0
	}

	if d.phase == PhasePresenting && d.present != nil {
		pos, orient, _ := d.present.poseAt(now)
		d.body.Position = pos
		d.body.Orientation = orient
	}

	d.scheduler.RunDue(now)
	d.frame++
	d.statFrames.Add(1)
}

func (d *Die) step(now time.Time) {
	res := d.integrator.Step(d.body, d.params.Step.Seconds())

	switch d.phase {
	case PhaseDragging:
		d.pin()
	case PhaseFlying:
		if res.Impacts > 0 {
			d.publish(event.EventBodyImpact, &event.BodyImpactPayload{Speed: res.ImpactSpeed, Count: res.Impacts})
		}
		reading := settle.Reading{
			LinearSpeed:  d.body.Speed(),
			AngularSpeed: d.body.AngularSpeed(),
			Height:       d.body.Position.Y,
		}
		if reason := d.detector.Check(reading, d.params.Step); reason != settle.ReasonNone {
			d.settle(reason, now)
		}
	}
}

// === Pointer input ===

// PointerDown starts a drag when the device point hits the body
// A hit during a roll aborts that roll without delivering its result
func (d *Die) PointerDown(x, y float64) bool {
	if d.destroyed || !d.view.Valid() {
		return false
	}
	tx, tz := d.view.ToTray(x, y)
	if math.Hypot(tx-d.body.Position.X, tz-d.body.Position.Z) > d.body.Radius*d.params.HitSlop {
		return false
	}

	d.abort(event.AbortNewDrag)

	d.body.Mode = physics.ModeDynamic
	d.body.ZeroVelocity()
	d.dragTo(tx, tz)
	d.sampler.Begin(x, y, d.clock.Now())
	d.setPhase(PhaseDragging)
	return true
}

// PointerMove drags the body; ignored unless dragging
func (d *Die) PointerMove(x, y float64) {
	if d.destroyed || d.phase != PhaseDragging {
		return
	}
	tx, tz := d.view.ToTray(x, y)
	d.dragTo(tx, tz)
	d.sampler.Move(x, y, d.clock.Now())
}

// PointerUp releases the body with the gesture's velocity
func (d *Die) PointerUp(x, y float64) {
	if d.destroyed || d.phase != PhaseDragging {
		return
	}
	now := d.clock.Now()
	// A pointer that rested before release throws with a zero sample
	sample := d.sampler.Release(now)
	tx, tz := d.view.ToTray(x, y)
	d.dragTo(tx, tz)

	d.begin(event.SourceGesture, d.thrower.Compute(sample), now)
}

func (d *Die) dragTo(tx, tz float64) {
	d.dragX, d.dragZ = d.integrator.Bounds().Clamp(tx, tz, d.body.Radius)
	d.pin()
}

// pin holds the dragged body at the pointer
func (d *Die) pin() {
	d.body.Position = vmath.Vec3F{X: d.dragX, Y: d.params.DragHeight, Z: d.dragZ}
	d.body.ZeroVelocity()
}

// === Roll lifecycle ===

// Roll drops the body from a random point with a random throw
// The future completes with the face unless the roll is aborted or the die destroyed
func (d *Die) Roll() (*Future, error) {
	if d.destroyed {
		return nil, ErrDestroyed
	}
	if d.phase != PhaseIdle || d.session != nil {
		return nil, ErrRollInFlight
	}

	rng := d.thrower.Rand()
	b := d.integrator.Bounds()
	r := d.body.Radius
	spread := d.params.DropSpread
	d.body.Mode = physics.ModeDynamic
	d.body.Position = vmath.Vec3F{
		X: (rng.Float64()*2 - 1) * spread * (b.HalfWidth - r),
		Y: d.params.DropHeight,
		Z: (rng.Float64()*2 - 1) * spread * (b.HalfDepth - r),
	}
	d.body.Orientation = vmath.RandomOrientation(rng)

	now := d.clock.Now()
	s := d.begin(event.SourceRequest, d.thrower.Random(), now)

	f := newFuture(s.ID)
	s.future = f
	s.futureSub = d.bus.Subscribe(func(ev event.Event) {
		if SessionID(ev.Session) != f.session {
			return
		}
		if p, ok := ev.Payload.(*event.RollResolvedPayload); ok {
			f.resolve(p.Face)
			d.bus.Unsubscribe(s.futureSub)
		}
	}, event.EventRollResolved)
	return f, nil
}

// begin opens a session and hands the body to the integrator
func (d *Die) begin(source event.Source, t throw.Throw, now time.Time) *Session {
	d.lastSession++
	d.session = &Session{ID: d.lastSession, Source: source, StartedAt: now}
	d.detector.Reset()

	d.body.Mode = physics.ModeDynamic
	d.body.Linear = t.Linear
	d.body.Angular = t.Angular
	d.setPhase(PhaseFlying)
	d.statStarted.Add(1)

	d.publish(event.EventRollStarted, &event.RollStartedPayload{
		Source:    source,
		StartedAt: now,
		Speed:     vmath.V3FMag(t.Linear),
	})
	return d.session
}

// settle stops the body, snaps partway to the nearest face and starts the presentation
func (d *Die) settle(reason settle.Reason, now time.Time) {
	d.body.ZeroVelocity()
	nearest, _ := d.resolver.Nearest(d.body.Orientation)
	d.body.Orientation = d.body.Orientation.Lerp(nearest.Reference, d.params.SnapBlend)
	d.setPhase(PhaseSettling)

	face, dist := d.resolver.Resolve(d.body.Orientation)
	s := d.session
	s.Reason, s.Face, s.Distance = reason, face, dist
	if reason == settle.ReasonCeiling {
		d.statCeiling.Add(1)
	}
	d.publish(event.EventRollSettled, &event.RollSettledPayload{Reason: reason, Face: face})

	d.startPresentation(face, now)
}

// startPresentation freezes the body and schedules completion for this session
func (d *Die) startPresentation(face int, now time.Time) {
	target, _ := d.resolver.Table().Reference(face)
	r := d.body.Radius

	d.body.Mode = physics.ModeKinematic
	d.present = newPresentation(now, d.params.PresentDuration,
		d.body.Position,
		vmath.Vec3F{Y: math.Max(d.params.PresentLift, r)},
		vmath.Vec3F{Y: r},
		d.body.Orientation, target,
	)
	d.setPhase(PhasePresenting)

	id := d.session.ID
	d.scheduler.Schedule(id, d.present.end(), func(now time.Time) {
		d.finish(id, now)
	})
}

// finish completes the presentation, ends the session, then publishes the result
func (d *Die) finish(id SessionID, now time.Time) {
	s := d.session
	if s == nil || s.ID != id || d.phase != PhasePresenting {
		return
	}
	pos, orient, _ := d.present.poseAt(d.present.end())
	d.body.Position = pos
	d.body.Orientation = orient
	d.body.ZeroVelocity()
	d.body.Mode = physics.ModeDynamic

	d.session = nil
	d.present = nil
	d.setPhase(PhaseIdle)

	d.statCompleted.Add(1)
	d.statFace.Store(strconv.Itoa(s.Face))
	d.statReason.Store(s.Reason.String())

	d.bus.Publish(event.Event{
		Type:    event.EventRollResolved,
		Session: uint64(s.ID),
		Frame:   d.frame,
		Payload: &event.RollResolvedPayload{
			Face:       s.Face,
			Faces:      d.Faces(),
			Distance:   s.Distance,
			Source:     s.Source,
			Reason:     s.Reason,
			StartedAt:  s.StartedAt,
			ResolvedAt: now,
		},
	})
}

// abort discards the active session; its pending result is dropped, never delivered
func (d *Die) abort(cause event.AbortCause) {
	s := d.session
	if s == nil {
		return
	}
	phase := d.phase
	d.scheduler.CancelSession(s.ID)
	if s.future != nil {
		d.bus.Unsubscribe(s.futureSub)
	}
	d.session = nil
	d.present = nil
	d.statAborted.Add(1)

	d.bus.Publish(event.Event{
		Type:    event.EventRollAborted,
		Session: uint64(s.ID),
		Frame:   d.frame,
		Payload: &event.RollAbortedPayload{Cause: cause, Phase: phase.String()},
	})
}

// Destroy cancels every timer and the active session; later calls are no-ops
// The body is left exactly where it was
func (d *Die) Destroy() {
	if d.destroyed {
		return
	}
	d.abort(event.AbortDestroyed)
	d.scheduler.CancelAll()
	d.destroyed = true
	d.setPhase(PhaseIdle)
}

func (d *Die) setPhase(p Phase) {
	d.phase = p
	d.statPhase.Store(p.String())
}

func (d *Die) publish(t event.EventType, payload any) {
	var id uint64
	if d.session != nil {
		id = uint64(d.session.ID)
	}
	d.bus.Publish(event.Event{Type: t, Session: id, Frame: d.frame, Payload: payload})
}
