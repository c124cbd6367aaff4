package glome

import (
	"github.com/chewxy/math32"

	"github.com/oliverbestmann/glome/gm"
)

// MinShapeExtent is the smallest radius or half extent a shape can have.
// Constructors clamp degenerate inputs to this value instead of rejecting
// them, so the step function never has to deal with zero sized geometry.
const MinShapeExtent = 1e-4

// ShapeKind discriminates the closed set of collider shapes.
type ShapeKind uint8

const (
	// ShapeSphere is a 4d sphere (a glome) given by its radius.
	ShapeSphere ShapeKind = iota

	// ShapeBox is an axis aligned box given by its half extents.
	ShapeBox

	// ShapePlane is a hyperplane given by its unit normal and its signed
	// distance from the origin along that normal. Planes are one sided,
	// everything behind the normal counts as solid.
	ShapePlane
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeSphere:
		return "sphere"
	case ShapeBox:
		return "box"
	case ShapePlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Shape is a tagged variant over the closed set of collider shapes. Only the
// fields belonging to Kind are meaningful. The shape set is small and fixed
// and every narrow phase test needs exhaustive pairwise coverage anyway, so
// a variant beats an interface hierarchy here.
type Shape struct {
	Kind ShapeKind

	// Radius of a ShapeSphere.
	Radius float32

	// HalfExtents of a ShapeBox.
	HalfExtents gm.Vec4

	// Normal and Distance of a ShapePlane.
	Normal   gm.Vec4
	Distance float32
}

// NewSphere returns a sphere shape. A non positive radius is clamped to
// MinShapeExtent.
func NewSphere(radius float32) Shape {
	if !(radius > MinShapeExtent) {
		radius = MinShapeExtent
	}
	return Shape{Kind: ShapeSphere, Radius: radius}
}

// NewBox returns an axis aligned box shape. Negative or zero half extents
// are clamped per axis to MinShapeExtent.
func NewBox(halfExtents gm.Vec4) Shape {
	he := halfExtents.Abs().Max(gm.Splat(MinShapeExtent))
	return Shape{Kind: ShapeBox, HalfExtents: he}
}

// NewPlane returns a hyperplane shape. The normal is normalized, a zero
// normal degenerates to the positive y axis.
func NewPlane(normal gm.Vec4, distance float32) Shape {
	if normal.LengthSq() == 0 {
		normal = gm.Vec4{Y: 1}
	}
	return Shape{Kind: ShapePlane, Normal: normal.Normalized(), Distance: distance}
}

// Centroid returns the representative center of the shape placed at
// position. Spheres and boxes are centered on their position, a plane
// reports its closest point to the origin.
func (s Shape) Centroid(position gm.Vec4) gm.Vec4 {
	if s.Kind == ShapePlane {
		return s.Normal.Mul(s.Distance)
	}
	return position
}

// Material describes the surface behavior of a collider.
type Material struct {
	Friction    float32 `yaml:"friction"`
	Restitution float32 `yaml:"restitution"`
}

// DefaultMaterial is used when a body is added with a zero material.
var DefaultMaterial = Material{Friction: 0.5, Restitution: 0}

// CombineMode selects how the material values of two touching colliders are
// merged into one.
type CombineMode uint8

const (
	// CombineGeometricMean uses sqrt(a*b), the default for friction.
	CombineGeometricMean CombineMode = iota

	// CombineMax uses the larger value, the default for restitution: the
	// bouncier surface dominates the bounce.
	CombineMax

	// CombineMin uses the smaller value.
	CombineMin

	// CombineAverage uses the arithmetic mean.
	CombineAverage
)

func (m CombineMode) combine(a, b float32) float32 {
	switch m {
	case CombineMax:
		return max(a, b)
	case CombineMin:
		return min(a, b)
	case CombineAverage:
		return (a + b) / 2
	default:
		return math32.Sqrt(a * b)
	}
}

// Layer is a bitmask of collision groups.
type Layer uint64

// LayerAll matches every group.
const LayerAll = ^Layer(0)

// Filter decides which colliders interact. Membership declares the groups
// the collider belongs to, Mask declares the groups it wants to interact
// with.
type Filter struct {
	Membership Layer `yaml:"membership"`
	Mask       Layer `yaml:"mask"`
}

// DefaultFilter collides with everything.
var DefaultFilter = Filter{Membership: 1, Mask: LayerAll}

// MutuallyCollides is the symmetric check used for physical collision: each
// side's mask must intersect the other side's membership.
func (f Filter) MutuallyCollides(other Filter) bool {
	return f.Mask&other.Membership != 0 && other.Mask&f.Membership != 0
}

// Senses is the asymmetric check used by triggers: only the trigger's own
// mask is tested against the target's membership. The target's mask is
// deliberately ignored, otherwise a target that does not list the trigger's
// layer would silently disable the trigger.
func (f Filter) Senses(target Filter) bool {
	return f.Mask&target.Membership != 0
}
