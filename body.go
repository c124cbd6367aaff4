package glome

import (
	"github.com/oliverbestmann/glome/gm"
)

// BodyType selects how a body participates in the simulation.
type BodyType uint8

const (
	// BodyDynamic bodies are fully simulated: gravity, integration and
	// collision response all apply.
	BodyDynamic BodyType = iota

	// BodyKinematic bodies move by their velocity but are never pushed by
	// collisions or affected by gravity. Useful for player controllers and
	// moving platforms.
	BodyKinematic

	// BodyStatic bodies never move at all.
	BodyStatic
)

func (t BodyType) String() string {
	switch t {
	case BodyDynamic:
		return "dynamic"
	case BodyKinematic:
		return "kinematic"
	default:
		return "static"
	}
}

// Body is a rigid body in the simulation. Bodies are owned by the world and
// referenced through Handles, external code never holds a *Body across a
// removal.
type Body struct {
	Position gm.Vec4
	Velocity gm.Vec4

	// Rotation is the body's orientation. It is integrated from
	// AngularVelocity each tick and read back by the presentation layer;
	// the collider shapes themselves are rotation invariant.
	Rotation        gm.Rotor
	AngularVelocity gm.Bivector

	// Mass in arbitrary units. Zero or negative means infinite mass: the
	// body behaves like a static participant in collision response.
	Mass float32

	Shape    Shape
	Material Material
	Filter   Filter

	Type           BodyType
	GravityEnabled bool

	// Trigger bodies take part in the trigger pass instead of collision
	// response: they detect overlap but are never pushed and never push.
	Trigger bool
}

// InverseMass returns 1/Mass for dynamic bodies with finite mass and 0 for
// everything else.
func (b *Body) InverseMass() float32 {
	if b.Type != BodyDynamic || b.Mass <= 0 {
		return 0
	}
	return 1 / b.Mass
}

// StaticCollider is immovable world geometry. Stored separately from bodies
// so the hot loops iterate a plain slice without touching velocity state.
type StaticCollider struct {
	Shape    Shape
	Material Material
	Filter   Filter

	// Position places the shape. For planes the position is ignored, the
	// plane's normal and distance already define it in world space.
	Position gm.Vec4

	// Trigger marks the collider as a trigger volume: it emits
	// enter/stay/exit events instead of collision response.
	Trigger bool
}
