package glome

import (
	"iter"
	"log/slog"
	"time"

	"github.com/oliverbestmann/glome/gm"
)

// World is one self contained physics simulation. It owns all bodies,
// static colliders and the tick's event buffer; external code interacts
// through handles and the query surface only.
//
// A World must be driven from a single goroutine. There is no internal
// locking, every call either has not started or has fully completed.
type World struct {
	_ noCopy

	config   Config
	registry registry

	accumulator float32
	tick        uint64

	events   []Event
	triggers triggerState

	stats StepStats

	lastAnomalyLog time.Time
}

// NewWorld creates a world from the given configuration. Zero valued config
// fields fall back to their defaults.
func NewWorld(config Config) *World {
	w := &World{config: config.sanitized()}
	w.triggers.previous = map[triggerPair]struct{}{}

	slog.Debug("physics world created",
		slog.Float64("fixed_step", float64(w.config.FixedStep)),
		slog.Float64("gravity", float64(w.config.Gravity)))

	return w
}

// Config returns the configuration the world runs with.
func (w *World) Config() Config {
	return w.config
}

// Tick returns the number of fixed steps executed so far.
func (w *World) Tick() uint64 {
	return w.tick
}

// AddBody stores the body and returns a handle to it. Zero valued material
// and filter fields are replaced by the defaults.
func (w *World) AddBody(body Body) Handle {
	if body.Material == (Material{}) {
		body.Material = DefaultMaterial
	}
	if body.Filter == (Filter{}) {
		body.Filter = DefaultFilter
	}
	if body.Rotation == (gm.Rotor{}) {
		body.Rotation = gm.RotorIdentity()
	}
	return w.registry.add(body)
}

// RemoveBody removes the body behind h and returns it. A stale handle is a
// routine condition, not an error: the call reports false and changes
// nothing.
func (w *World) RemoveBody(h Handle) (Body, bool) {
	return w.registry.remove(h)
}

// Body returns the body behind h. The pointer stays valid until the body is
// removed; callers must not hold it across a removal. Stale handles return
// (nil, false).
func (w *World) Body(h Handle) (*Body, bool) {
	body := w.registry.get(h)
	return body, body != nil
}

// SetVelocity overwrites the velocity of the body behind h. No-op on a
// stale handle.
func (w *World) SetVelocity(h Handle, velocity gm.Vec4) {
	if body := w.registry.get(h); body != nil {
		body.Velocity = velocity
	}
}

// ApplyImpulse adds impulse/mass to the velocity of the body behind h.
// No-op on stale handles and on kinematic, static or infinite mass bodies.
func (w *World) ApplyImpulse(h Handle, impulse gm.Vec4) {
	body := w.registry.get(h)
	if body == nil {
		return
	}

	if invMass := body.InverseMass(); invMass > 0 {
		body.Velocity = body.Velocity.Add(impulse.Mul(invMass))
	}
}

// AddStaticCollider stores immovable world geometry. Zero valued material
// and filter fields are replaced by the defaults.
func (w *World) AddStaticCollider(collider StaticCollider) StaticIndex {
	if collider.Material == (Material{}) {
		collider.Material = DefaultMaterial
	}
	if collider.Filter == (Filter{}) {
		collider.Filter = DefaultFilter
	}
	return w.registry.addStatic(collider)
}

// Static returns the static collider at idx, or (nil, false) if idx is out
// of range.
func (w *World) Static(idx StaticIndex) (*StaticCollider, bool) {
	s := w.registry.static(idx)
	return s, s != nil
}

// Bodies iterates over all live bodies.
func (w *World) Bodies() iter.Seq2[Handle, *Body] {
	return w.registry.bodies()
}

// Statics iterates over all static colliders.
func (w *World) Statics() iter.Seq2[StaticIndex, *StaticCollider] {
	return func(yield func(StaticIndex, *StaticCollider) bool) {
		for idx := range w.registry.statics {
			if !yield(StaticIndex(idx), &w.registry.statics[idx]) {
				return
			}
		}
	}
}

// BodyCount returns the number of live bodies.
func (w *World) BodyCount() int {
	return w.registry.liveBody
}

// DrainEvents hands the events accumulated since the last drain to the
// caller and empties the buffer. The returned slice is owned by the caller.
func (w *World) DrainEvents() []Event {
	events := w.events
	w.events = nil
	return events
}

// Stats returns the per phase step timings.
func (w *World) Stats() StepStats {
	return w.stats
}

// Update advances the simulation by the given wall clock delta time in
// seconds. Time accumulates until at least one fixed step fits; each full
// step consumes exactly Config.FixedStep, decoupling the trajectory from the
// caller's frame rate. At most Config.MaxStepsPerUpdate steps run per call.
func (w *World) Update(dt float32) {
	if dt < 0 || !isFinite32(dt) {
		return
	}

	w.accumulator += dt

	steps := 0
	for w.accumulator >= w.config.FixedStep {
		if steps >= w.config.MaxStepsPerUpdate {
			// spiral of death guard: drop time we cannot catch up on
			w.accumulator = 0
			break
		}

		w.step(w.config.FixedStep)
		w.accumulator -= w.config.FixedStep
		steps++
	}
}

// step runs one fixed tick. Phases execute in strict order: gravity,
// integration, body vs static response, body vs body response, trigger
// detection, event accumulation.
func (w *World) step(dt float32) {
	w.tick++

	total := w.stats.measure(&w.stats.Total)
	defer total.stop()

	integrate := w.stats.measure(&w.stats.Integrate)
	w.integrate(dt)
	integrate.stop()

	collide := w.stats.measure(&w.stats.Collide)
	w.collideBodiesVsStatics()
	w.collideBodiesVsBodies()
	collide.stop()

	triggers := w.stats.measure(&w.stats.Triggers)
	w.detectTriggers()
	triggers.stop()
}

func (w *World) integrate(dt float32) {
	gravity := gm.Vec4{Y: -w.config.Gravity * dt}

	for _, body := range w.registry.bodies() {
		if body.Type == BodyStatic {
			continue
		}

		if body.Type == BodyDynamic && body.GravityEnabled {
			body.Velocity = body.Velocity.Add(gravity)
		}

		w.sanitizeBody(body)

		// semi implicit euler: velocity first, position from the new
		// velocity
		body.Position = body.Position.Add(body.Velocity.Mul(dt))

		if body.AngularVelocity != (gm.Bivector{}) {
			spin := gm.RotorPlane(body.AngularVelocity, body.AngularVelocity.Length()*dt)
			body.Rotation = spin.Compose(body.Rotation).Normalized()
		}
	}
}

func (w *World) collideBodiesVsStatics() {
	for handle, body := range w.registry.bodies() {
		if body.Type == BodyStatic || body.Trigger {
			continue
		}

		for idx := range w.registry.statics {
			static := &w.registry.statics[idx]
			if static.Trigger || !body.Filter.MutuallyCollides(static.Filter) {
				continue
			}

			contact, ok := Collide(body.Shape, body.Position, static.Shape, static.Position)
			if !ok {
				continue
			}

			w.resolveContact(contact, bodyParticipant(body), staticParticipant(static))

			w.events = append(w.events, Event{
				Kind:        EventBodyVsStatic,
				A:           handle,
				Static:      StaticIndex(idx),
				Point:       contact.Point,
				Normal:      contact.Normal,
				Penetration: contact.Penetration,
			})
		}
	}
}

func (w *World) collideBodiesVsBodies() {
	for ha, a := range w.registry.bodies() {
		if a.Trigger {
			continue
		}

		for hb, b := range w.registry.bodies() {
			// visit each unordered pair once
			if hb.index <= ha.index {
				continue
			}
			if b.Trigger {
				continue
			}

			// skip pairs where neither side can move
			if a.Type != BodyDynamic && b.Type != BodyDynamic {
				continue
			}
			if !a.Filter.MutuallyCollides(b.Filter) {
				continue
			}

			contact, ok := Collide(a.Shape, a.Position, b.Shape, b.Position)
			if !ok {
				continue
			}

			w.resolveContact(contact, bodyParticipant(a), bodyParticipant(b))

			w.events = append(w.events, Event{
				Kind:        EventBodyVsBody,
				A:           ha,
				B:           hb,
				Point:       contact.Point,
				Normal:      contact.Normal,
				Penetration: contact.Penetration,
			})
		}
	}
}

// sanitizeBody clamps runaway numeric state before it can propagate into
// the next tick.
func (w *World) sanitizeBody(body *Body) {
	if !body.Velocity.IsFinite() {
		w.logAnomaly("velocity was NaN or Inf, reset to zero")
		body.Velocity = gm.Vec4{}
	}

	if speed := body.Velocity.Length(); speed > w.config.MaxSpeed {
		w.logAnomaly("velocity clamped to max speed")
		body.Velocity = body.Velocity.Mul(w.config.MaxSpeed / speed)
	}

	if !body.Position.IsFinite() {
		w.logAnomaly("position was NaN or Inf, reset to origin")
		body.Position = gm.Vec4{}
		body.Velocity = gm.Vec4{}
	}

	if !body.Rotation.IsFinite() {
		body.Rotation = gm.RotorIdentity()
	}
}

// logAnomaly warns about numeric clamps, rate limited so a persistently
// broken body cannot flood the log from the hot loop.
func (w *World) logAnomaly(msg string) {
	now := time.Now()
	if now.Sub(w.lastAnomalyLog) < time.Second {
		return
	}
	w.lastAnomalyLog = now

	slog.Warn("physics anomaly", slog.String("cause", msg), slog.Uint64("tick", w.tick))
}

func isFinite32(f float32) bool {
	return f == f && f <= 3.4e38 && f >= -3.4e38
}
