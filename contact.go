package glome

import (
	"github.com/chewxy/math32"

	"github.com/oliverbestmann/glome/gm"
)

// Contact describes one point of overlap between two colliders. The normal
// points from the second collider towards the first one; swapping the
// arguments of Collide negates the normal but keeps the verdict and the
// penetration depth.
type Contact struct {
	Point       gm.Vec4
	Normal      gm.Vec4
	Penetration float32
}

// coincidentNormal is reported when two centers coincide exactly and no
// direction can be derived from the geometry. Arbitrary but deterministic.
var coincidentNormal = gm.Vec4{X: 1}

// Collide runs the narrow phase test for the shape pair at the given
// positions. It covers every unordered pair of the shape variants; the only
// pair without a test is plane vs plane, which reports no contact.
func Collide(a Shape, pa gm.Vec4, b Shape, pb gm.Vec4) (Contact, bool) {
	switch {
	case a.Kind == ShapeSphere && b.Kind == ShapeSphere:
		return collideSphereSphere(a, pa, b, pb)

	case a.Kind == ShapeSphere && b.Kind == ShapeBox:
		return collideSphereBox(a, pa, b, pb)

	case a.Kind == ShapeBox && b.Kind == ShapeSphere:
		return flip(collideSphereBox(b, pb, a, pa))

	case a.Kind == ShapeSphere && b.Kind == ShapePlane:
		return collideSpherePlane(a, pa, b)

	case a.Kind == ShapePlane && b.Kind == ShapeSphere:
		return flip(collideSpherePlane(b, pb, a))

	case a.Kind == ShapeBox && b.Kind == ShapeBox:
		return collideBoxBox(a, pa, b, pb)

	case a.Kind == ShapeBox && b.Kind == ShapePlane:
		return collideBoxPlane(a, pa, b)

	case a.Kind == ShapePlane && b.Kind == ShapeBox:
		return flip(collideBoxPlane(b, pb, a))

	default:
		return Contact{}, false
	}
}

func flip(c Contact, ok bool) (Contact, bool) {
	c.Normal = c.Normal.Neg()
	return c, ok
}

func collideSphereSphere(a Shape, pa gm.Vec4, b Shape, pb gm.Vec4) (Contact, bool) {
	diff := pa.Sub(pb)
	dist := diff.Length()
	sum := a.Radius + b.Radius

	if dist >= sum {
		return Contact{}, false
	}

	normal := coincidentNormal
	if dist > 0 {
		normal = diff.Mul(1 / dist)
	}

	pen := sum - dist
	return Contact{
		Point:       pb.Add(normal.Mul(b.Radius - pen/2)),
		Normal:      normal,
		Penetration: pen,
	}, true
}

func collideSphereBox(sphere Shape, pa gm.Vec4, box Shape, pb gm.Vec4) (Contact, bool) {
	// closest point on the box to the sphere center, clamped per axis
	rel := pa.Sub(pb)
	var closest gm.Vec4
	inside := true
	for axis := range 4 {
		he := box.HalfExtents.Axis(axis)
		c := rel.Axis(axis)
		clamped := gm.Clamp(c, -he, he)
		if clamped != c {
			inside = false
		}
		closest = closest.WithAxis(axis, clamped)
	}

	if inside {
		// center is within the box, push out through the nearest face
		bestAxis, bestDepth := 0, float32(math32.MaxFloat32)
		for axis := range 4 {
			depth := box.HalfExtents.Axis(axis) - math32.Abs(rel.Axis(axis))
			if depth < bestDepth {
				bestAxis, bestDepth = axis, depth
			}
		}

		dir := float32(1)
		if rel.Axis(bestAxis) < 0 {
			dir = -1
		}
		normal := gm.Vec4{}.WithAxis(bestAxis, dir)
		return Contact{
			Point:       pa,
			Normal:      normal,
			Penetration: bestDepth + sphere.Radius,
		}, true
	}

	diff := rel.Sub(closest)
	dist := diff.Length()
	if dist >= sphere.Radius {
		return Contact{}, false
	}

	normal := coincidentNormal
	if dist > 0 {
		normal = diff.Mul(1 / dist)
	}

	return Contact{
		Point:       pb.Add(closest),
		Normal:      normal,
		Penetration: sphere.Radius - dist,
	}, true
}

func collideSpherePlane(sphere Shape, pa gm.Vec4, plane Shape) (Contact, bool) {
	// signed distance of the center above the plane; the plane is a solid
	// half space, so a sphere far behind it is still in contact
	signed := pa.Dot(plane.Normal) - plane.Distance
	if signed >= sphere.Radius {
		return Contact{}, false
	}

	return Contact{
		Point:       pa.Sub(plane.Normal.Mul(signed)),
		Normal:      plane.Normal,
		Penetration: sphere.Radius - signed,
	}, true
}

func collideBoxBox(a Shape, pa gm.Vec4, b Shape, pb gm.Vec4) (Contact, bool) {
	// separating axis over the four coordinate axes; keep the axis of
	// least overlap as the contact normal
	diff := pa.Sub(pb)
	bestAxis, bestOverlap := 0, float32(math32.MaxFloat32)
	for axis := range 4 {
		overlap := a.HalfExtents.Axis(axis) + b.HalfExtents.Axis(axis) - math32.Abs(diff.Axis(axis))
		if overlap <= 0 {
			return Contact{}, false
		}
		if overlap < bestOverlap {
			bestAxis, bestOverlap = axis, overlap
		}
	}

	dir := float32(1)
	if diff.Axis(bestAxis) < 0 {
		dir = -1
	}
	normal := gm.Vec4{}.WithAxis(bestAxis, dir)

	// center of the overlap region
	var point gm.Vec4
	for axis := range 4 {
		lo := max(pa.Axis(axis)-a.HalfExtents.Axis(axis), pb.Axis(axis)-b.HalfExtents.Axis(axis))
		hi := min(pa.Axis(axis)+a.HalfExtents.Axis(axis), pb.Axis(axis)+b.HalfExtents.Axis(axis))
		point = point.WithAxis(axis, (lo+hi)/2)
	}

	return Contact{
		Point:       point,
		Normal:      normal,
		Penetration: bestOverlap,
	}, true
}

func collideBoxPlane(box Shape, pa gm.Vec4, plane Shape) (Contact, bool) {
	// projection radius of the box onto the plane normal
	var radius float32
	for axis := range 4 {
		radius += box.HalfExtents.Axis(axis) * math32.Abs(plane.Normal.Axis(axis))
	}

	signed := pa.Dot(plane.Normal) - plane.Distance
	if signed >= radius {
		return Contact{}, false
	}

	// deepest corner of the box along the plane normal
	point := pa
	for axis := range 4 {
		he := box.HalfExtents.Axis(axis)
		if plane.Normal.Axis(axis) > 0 {
			he = -he
		}
		point = point.WithAxis(axis, point.Axis(axis)+he)
	}

	return Contact{
		Point:       point,
		Normal:      plane.Normal,
		Penetration: radius - signed,
	}, true
}

// Overlaps reports whether the two placed shapes overlap, without computing
// contact details. Used by the trigger pass and the spatial queries.
func Overlaps(a Shape, pa gm.Vec4, b Shape, pb gm.Vec4) bool {
	_, ok := Collide(a, pa, b, pb)
	return ok
}
