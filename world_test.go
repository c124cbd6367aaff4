package glome

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"

	"github.com/oliverbestmann/glome/gm"
)

func TestWorld_BounceRestitution(t *testing.T) {
	config := DefaultConfig()
	config.Gravity = 0

	w := NewWorld(config)

	w.AddStaticCollider(StaticCollider{
		Shape: NewPlane(gm.Vec4{Y: 1}, 0),
	})

	// dropped so one step carries it into the floor
	ball := w.AddBody(Body{
		Position: gm.Vec4{Y: 0.49},
		Velocity: gm.Vec4{Y: -10},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Material: Material{Friction: 0.5, Restitution: 0.5},
		Type:     BodyDynamic,
	})

	w.Update(config.FixedStep)

	body, ok := w.Body(ball)
	require.True(t, ok)

	// restitution combine is max(0.5, 0); rebound speed is half the impact
	// speed
	require.InDelta(t, 5, body.Velocity.Y, 1e-3)
	require.InDelta(t, 0.5, body.Velocity.Y/10, 1e-4)

	// positional correction pushed the ball back out of the floor
	require.GreaterOrEqual(t, body.Position.Y, float32(0.5)-1e-4)

	events := eventsOfKind(w.DrainEvents(), EventBodyVsStatic)
	require.Len(t, events, 1)
	require.Equal(t, ball, events[0].A)
	requireVec(t, gm.Vec4{Y: 1}, events[0].Normal)
}

func TestWorld_BounceUnderGravity(t *testing.T) {
	config := DefaultConfig()
	w := NewWorld(config)

	w.AddStaticCollider(StaticCollider{
		Shape:    NewPlane(gm.Vec4{Y: 1}, 0),
		Material: Material{Restitution: 0.5},
	})

	ball := w.AddBody(Body{
		Position:       gm.Vec4{Y: 5},
		Shape:          NewSphere(0.5),
		Mass:           1,
		Type:           BodyDynamic,
		GravityEnabled: true,
	})

	// fall until the first tick that flips the velocity upward
	var impact, rebound float32
	for range 512 {
		body, _ := w.Body(ball)
		before := body.Velocity.Y

		w.Update(config.FixedStep)

		if body.Velocity.Y > 0 {
			impact = -before
			rebound = body.Velocity.Y
			break
		}
	}

	require.Greater(t, impact, float32(5))
	require.InDelta(t, 0.5, rebound/impact, 0.05)
}

func TestWorld_DisjointFiltersPassThrough(t *testing.T) {
	config := DefaultConfig()
	config.Gravity = 0
	w := NewWorld(config)

	a := w.AddBody(Body{
		Position: gm.Vec4{X: -0.4},
		Velocity: gm.Vec4{X: 2},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
		Filter:   Filter{Membership: 0b01, Mask: 0b01},
	})
	b := w.AddBody(Body{
		Position: gm.Vec4{X: 0.4},
		Velocity: gm.Vec4{X: -2},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
		Filter:   Filter{Membership: 0b10, Mask: 0b10},
	})

	for range 30 {
		w.Update(config.FixedStep)
	}

	require.Empty(t, w.DrainEvents())

	bodyA, _ := w.Body(a)
	bodyB, _ := w.Body(b)
	requireVec(t, gm.Vec4{X: 2}, bodyA.Velocity)
	requireVec(t, gm.Vec4{X: -2}, bodyB.Velocity)

	// they crossed each other without interacting
	require.Greater(t, bodyA.Position.X, bodyB.Position.X)
}

func TestWorld_DisjointFiltersSkipStatics(t *testing.T) {
	config := DefaultConfig()
	config.Gravity = 0
	w := NewWorld(config)

	w.AddStaticCollider(StaticCollider{
		Shape:  NewBox(gm.Vec4Of(1, 1, 1, 1)),
		Filter: Filter{Membership: 0b10, Mask: 0b10},
	})

	ghost := w.AddBody(Body{
		Velocity: gm.Vec4{X: 1},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
		Filter:   Filter{Membership: 0b01, Mask: 0b01},
	})

	for range 10 {
		w.Update(config.FixedStep)
	}

	require.Empty(t, w.DrainEvents())

	body, _ := w.Body(ghost)
	requireVec(t, gm.Vec4{X: 1}, body.Velocity)
}

func TestWorld_HeadOnCollisionConservesMomentum(t *testing.T) {
	config := DefaultConfig()
	config.Gravity = 0
	w := NewWorld(config)

	a := w.AddBody(Body{
		Position: gm.Vec4{X: -0.45},
		Velocity: gm.Vec4{X: 1},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
	})
	b := w.AddBody(Body{
		Position: gm.Vec4{X: 0.45},
		Velocity: gm.Vec4{X: -1},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
	})

	w.Update(config.FixedStep)

	bodyA, _ := w.Body(a)
	bodyB, _ := w.Body(b)

	momentum := bodyA.Velocity.Add(bodyB.Velocity)
	requireVec(t, gm.Vec4{}, momentum)

	// zero restitution: equal masses meet and stop
	require.InDelta(t, 0, bodyA.Velocity.X, 1e-4)
	require.InDelta(t, 0, bodyB.Velocity.X, 1e-4)

	events := eventsOfKind(w.DrainEvents(), EventBodyVsBody)
	require.Len(t, events, 1)
	require.Equal(t, a, events[0].A)
	require.Equal(t, b, events[0].B)
}

func TestWorld_FixedStepIsFrameRateIndependent(t *testing.T) {
	spawn := func(w *World) Handle {
		return w.AddBody(Body{
			Position:       gm.Vec4{Y: 100},
			Shape:          NewSphere(0.5),
			Mass:           1,
			Type:           BodyDynamic,
			GravityEnabled: true,
		})
	}

	config := DefaultConfig()
	coarse := NewWorld(config)
	fine := NewWorld(config)
	hc := spawn(coarse)
	hf := spawn(fine)

	// one second of fall, fed in chunks of different size that both divide
	// evenly into fixed steps
	for range 16 {
		coarse.Update(4 * config.FixedStep)
	}
	for range 64 {
		fine.Update(config.FixedStep)
	}

	require.Equal(t, coarse.Tick(), fine.Tick())

	bc, _ := coarse.Body(hc)
	bf, _ := fine.Body(hf)
	require.Equal(t, bc.Position, bf.Position)
	require.Equal(t, bc.Velocity, bf.Velocity)
}

func TestWorld_UpdateCapsStepsAndDropsSurplus(t *testing.T) {
	config := DefaultConfig()
	w := NewWorld(config)

	w.Update(10 * config.FixedStep)
	require.EqualValues(t, config.MaxStepsPerUpdate, w.Tick())

	// the surplus was dropped, a tiny follow up delta does not tick
	w.Update(config.FixedStep / 2)
	require.EqualValues(t, config.MaxStepsPerUpdate, w.Tick())

	w.Update(config.FixedStep)
	require.EqualValues(t, config.MaxStepsPerUpdate+1, w.Tick())
}

func TestWorld_UpdateIgnoresBadDeltas(t *testing.T) {
	w := NewWorld(DefaultConfig())

	w.Update(-1)
	w.Update(math32.NaN())
	w.Update(math32.Inf(1))

	require.Zero(t, w.Tick())
}

func TestWorld_StaticAndKinematicAreImmovable(t *testing.T) {
	config := DefaultConfig()
	config.Gravity = 0
	w := NewWorld(config)

	anchor := w.AddBody(Body{
		Shape: NewSphere(1),
		Type:  BodyKinematic,
	})
	intruder := w.AddBody(Body{
		Position: gm.Vec4{X: 0.5},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
	})

	for range 10 {
		w.Update(config.FixedStep)
	}

	anchorBody, _ := w.Body(anchor)
	requireVec(t, gm.Vec4{}, anchorBody.Position)
	requireVec(t, gm.Vec4{}, anchorBody.Velocity)

	// the dynamic body takes the whole correction
	intruderBody, _ := w.Body(intruder)
	require.Greater(t, intruderBody.Position.X, float32(0.5))
}

func TestWorld_GravityPullsAlongNegativeY(t *testing.T) {
	config := DefaultConfig()
	w := NewWorld(config)

	falling := w.AddBody(Body{
		Shape:          NewSphere(0.5),
		Mass:           1,
		Type:           BodyDynamic,
		GravityEnabled: true,
	})
	floating := w.AddBody(Body{
		Position: gm.Vec4{X: 5},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
	})

	w.Update(config.FixedStep)

	fallingBody, _ := w.Body(falling)
	require.InDelta(t, -config.Gravity*config.FixedStep, fallingBody.Velocity.Y, 1e-5)
	require.Zero(t, fallingBody.Velocity.X)
	require.Zero(t, fallingBody.Velocity.W)

	floatingBody, _ := w.Body(floating)
	requireVec(t, gm.Vec4{}, floatingBody.Velocity)
}

func TestWorld_ApplyImpulse(t *testing.T) {
	w := NewWorld(DefaultConfig())

	dynamic := w.AddBody(Body{Shape: NewSphere(1), Mass: 2, Type: BodyDynamic})
	kinematic := w.AddBody(Body{Shape: NewSphere(1), Type: BodyKinematic})
	massless := w.AddBody(Body{Shape: NewSphere(1), Type: BodyDynamic})

	w.ApplyImpulse(dynamic, gm.Vec4{X: 4})
	w.ApplyImpulse(kinematic, gm.Vec4{X: 4})
	w.ApplyImpulse(massless, gm.Vec4{X: 4})

	body, _ := w.Body(dynamic)
	requireVec(t, gm.Vec4{X: 2}, body.Velocity)

	body, _ = w.Body(kinematic)
	requireVec(t, gm.Vec4{}, body.Velocity)

	body, _ = w.Body(massless)
	requireVec(t, gm.Vec4{}, body.Velocity)

	// stale handles are a no-op, not a panic
	w.RemoveBody(dynamic)
	w.ApplyImpulse(dynamic, gm.Vec4{X: 4})
	w.SetVelocity(dynamic, gm.Vec4{X: 4})

	_, ok := w.Body(dynamic)
	require.False(t, ok)
}

func TestWorld_DrainEventsEmptiesTheBuffer(t *testing.T) {
	config := DefaultConfig()
	config.Gravity = 0
	w := NewWorld(config)

	w.AddStaticCollider(StaticCollider{Shape: NewPlane(gm.Vec4{Y: 1}, 0)})
	w.AddBody(Body{
		Position: gm.Vec4{Y: 0.25},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
	})

	w.Update(config.FixedStep)

	require.NotEmpty(t, w.DrainEvents())
	require.Empty(t, w.DrainEvents())
}

func TestWorld_SanitizeClampsRunawayState(t *testing.T) {
	config := DefaultConfig()
	config.Gravity = 0
	w := NewWorld(config)

	broken := w.AddBody(Body{
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
		Velocity: gm.Vec4{X: math32.NaN()},
	})
	fast := w.AddBody(Body{
		Position: gm.Vec4{Z: 50},
		Shape:    NewSphere(0.5),
		Mass:     1,
		Type:     BodyDynamic,
		Velocity: gm.Vec4{X: 10 * config.MaxSpeed},
	})

	w.Update(config.FixedStep)

	body, _ := w.Body(broken)
	require.True(t, body.Velocity.IsFinite())
	require.True(t, body.Position.IsFinite())
	requireVec(t, gm.Vec4{}, body.Velocity)

	body, _ = w.Body(fast)
	require.InDelta(t, config.MaxSpeed, body.Velocity.Length(), 1e-2)
}

func TestWorld_RotationIntegration(t *testing.T) {
	config := DefaultConfig()
	config.Gravity = 0
	w := NewWorld(config)

	// spin rate chosen so a single tick turns a quarter circle in xy
	h := w.AddBody(Body{
		Shape:           NewSphere(0.5),
		Mass:            1,
		Type:            BodyDynamic,
		AngularVelocity: gm.Bivector{XY: (math32.Pi / 2) / config.FixedStep},
	})

	w.Update(config.FixedStep)

	body, _ := w.Body(h)
	rotated := body.Rotation.Rotate(gm.Vec4{X: 1})
	requireVec(t, gm.Vec4{Y: 1}, rotated)
	require.InDelta(t, 1, rotated.Length(), 1e-5)
}

func TestWorld_StatsCountTicks(t *testing.T) {
	w := NewWorld(DefaultConfig())
	w.AddBody(Body{Shape: NewSphere(0.5), Mass: 1, Type: BodyDynamic})

	for range 8 {
		w.Update(w.Config().FixedStep)
	}

	stats := w.Stats()
	require.Equal(t, 8, stats.Total.Count)
	require.Equal(t, 8, stats.Integrate.Count)
	require.Equal(t, 8, stats.Collide.Count)
	require.Equal(t, 8, stats.Triggers.Count)
	require.GreaterOrEqual(t, stats.Total.Max, stats.Total.Min)
}

func TestWorld_FrictionSlowsTangentialSlide(t *testing.T) {
	config := DefaultConfig()
	w := NewWorld(config)

	w.AddStaticCollider(StaticCollider{
		Shape:    NewPlane(gm.Vec4{Y: 1}, 0),
		Material: Material{Friction: 0.8},
	})

	slider := w.AddBody(Body{
		Position:       gm.Vec4{Y: 0.45},
		Velocity:       gm.Vec4{X: 5},
		Shape:          NewSphere(0.5),
		Mass:           1,
		Material:       Material{Friction: 0.8},
		Type:           BodyDynamic,
		GravityEnabled: true,
	})

	for range 32 {
		w.Update(config.FixedStep)
	}

	body, _ := w.Body(slider)
	require.Less(t, body.Velocity.X, float32(5))
	require.Greater(t, body.Velocity.X, float32(0)-1e-3)
}
