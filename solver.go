package glome

import (
	"github.com/oliverbestmann/glome/gm"
)

// participant is one side of a contact as seen by the solver. A static
// collider participates with a nil velocity and zero inverse mass.
type participant struct {
	position *gm.Vec4
	velocity *gm.Vec4
	invMass  float32
	material Material
}

func bodyParticipant(b *Body) participant {
	return participant{
		position: &b.Position,
		velocity: &b.Velocity,
		invMass:  b.InverseMass(),
		material: b.Material,
	}
}

func staticParticipant(s *StaticCollider) participant {
	return participant{
		position: &s.Position,
		invMass:  0,
		material: s.Material,
	}
}

// resolveContact applies positional correction and a single normal impulse
// plus friction damping for one contact. This is a one pass approximate
// solver: deep interpenetration may take several ticks to fully separate,
// which is fine at the step rates this engine runs at.
//
// The contact normal must point from b towards a.
func (w *World) resolveContact(c Contact, a, b participant) {
	invSum := a.invMass + b.invMass
	if invSum == 0 {
		return
	}

	// positional correction split in proportion to inverse mass, capped so
	// a huge penetration cannot teleport a body within one tick
	correction := min(c.Penetration, w.config.MaxCorrection)
	if correction > 0 {
		*a.position = a.position.Add(c.Normal.Mul(correction * a.invMass / invSum))
		*b.position = b.position.Sub(c.Normal.Mul(correction * b.invMass / invSum))
	}

	relVel := relativeVelocity(a, b)
	velAlongNormal := relVel.Dot(c.Normal)
	if velAlongNormal > 0 {
		// already separating
		return
	}

	restitution := w.config.RestitutionCombine.combine(a.material.Restitution, b.material.Restitution)
	j := -(1 + restitution) * velAlongNormal / invSum
	impulse := c.Normal.Mul(j)

	if a.velocity != nil {
		*a.velocity = a.velocity.Add(impulse.Mul(a.invMass))
	}
	if b.velocity != nil {
		*b.velocity = b.velocity.Sub(impulse.Mul(b.invMass))
	}

	// friction damps the velocity tangential to the contact, scaled by the
	// normal impulse and clamped so it can slow the slide down to zero but
	// never reverse it
	relVel = relativeVelocity(a, b)
	tangent := relVel.Sub(c.Normal.Mul(relVel.Dot(c.Normal)))
	tangentSpeed := tangent.Length()
	if tangentSpeed <= 1e-6 {
		return
	}

	friction := w.config.FrictionCombine.combine(a.material.Friction, b.material.Friction)
	jt := min(friction*j, tangentSpeed/invSum)

	frictionImpulse := tangent.Mul(-jt / tangentSpeed)
	if a.velocity != nil {
		*a.velocity = a.velocity.Add(frictionImpulse.Mul(a.invMass))
	}
	if b.velocity != nil {
		*b.velocity = b.velocity.Sub(frictionImpulse.Mul(b.invMass))
	}
}

func relativeVelocity(a, b participant) gm.Vec4 {
	var va, vb gm.Vec4
	if a.velocity != nil {
		va = *a.velocity
	}
	if b.velocity != nil {
		vb = *b.velocity
	}
	return va.Sub(vb)
}
