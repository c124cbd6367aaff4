package glome

import (
	"slices"

	"github.com/chewxy/math32"

	"github.com/oliverbestmann/glome/gm"
)

// rayEpsilon guards the slab and plane tests against division by a near
// zero direction component.
const rayEpsilon = 1e-7

// Ray is a half line through 4d space.
type Ray struct {
	Origin gm.Vec4
	Dir    gm.Vec4
}

// NewRay builds a ray with a normalized direction.
func NewRay(origin, dir gm.Vec4) Ray {
	return Ray{Origin: origin, Dir: dir.Normalized()}
}

// At returns the point at the given distance along the ray.
func (r Ray) At(distance float32) gm.Vec4 {
	return r.Origin.Add(r.Dir.Mul(distance))
}

// RayHit is one intersection of a ray with a shape.
type RayHit struct {
	Point    gm.Vec4
	Normal   gm.Vec4
	Distance float32
}

// RaycastShape intersects the ray with a single placed shape.
func RaycastShape(ray Ray, shape Shape, position gm.Vec4) (RayHit, bool) {
	switch shape.Kind {
	case ShapeSphere:
		return raycastSphere(ray, shape, position)
	case ShapeBox:
		return raycastBox(ray, shape, position)
	case ShapePlane:
		return raycastPlane(ray, shape)
	default:
		return RayHit{}, false
	}
}

func raycastSphere(ray Ray, sphere Shape, center gm.Vec4) (RayHit, bool) {
	oc := ray.Origin.Sub(center)

	// quadratic in t; the direction is normalized, so a == 1
	b := 2 * oc.Dot(ray.Dir)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return RayHit{}, false
	}

	sqrtD := math32.Sqrt(discriminant)

	// smallest non negative root; if the origin is inside the sphere the
	// near root lies behind the origin and the forward exit wins
	t := (-b - sqrtD) / 2
	if t < 0 {
		t = (-b + sqrtD) / 2
	}
	if t < 0 {
		return RayHit{}, false
	}

	point := ray.At(t)
	return RayHit{
		Point:    point,
		Normal:   point.Sub(center).Normalized(),
		Distance: t,
	}, true
}

func raycastBox(ray Ray, box Shape, center gm.Vec4) (RayHit, bool) {
	lo := center.Sub(box.HalfExtents)
	hi := center.Add(box.HalfExtents)

	tmin := math32.Inf(-1)
	tmax := math32.Inf(1)
	entryAxis := -1
	entryDir := float32(1)

	for axis := range 4 {
		d := ray.Dir.Axis(axis)
		o := ray.Origin.Axis(axis)

		if math32.Abs(d) < rayEpsilon {
			// ray runs parallel to this slab; outside means a miss
			if o < lo.Axis(axis) || o > hi.Axis(axis) {
				return RayHit{}, false
			}
			continue
		}

		t1 := (lo.Axis(axis) - o) / d
		t2 := (hi.Axis(axis) - o) / d
		dir := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			dir = 1
		}

		if t1 > tmin {
			tmin = t1
			entryAxis = axis
			entryDir = dir
		}
		tmax = min(tmax, t2)

		if tmin > tmax {
			return RayHit{}, false
		}
	}

	if tmax < 0 {
		return RayHit{}, false
	}

	if tmin < 0 {
		// origin is inside the box
		return RayHit{
			Point:    ray.Origin,
			Normal:   ray.Dir.Neg(),
			Distance: 0,
		}, true
	}

	normal := coincidentNormal
	if entryAxis >= 0 {
		normal = gm.Vec4{}.WithAxis(entryAxis, entryDir)
	}

	return RayHit{
		Point:    ray.At(tmin),
		Normal:   normal,
		Distance: tmin,
	}, true
}

func raycastPlane(ray Ray, plane Shape) (RayHit, bool) {
	denom := ray.Dir.Dot(plane.Normal)
	if math32.Abs(denom) < rayEpsilon {
		// near parallel
		return RayHit{}, false
	}

	t := (plane.Distance - ray.Origin.Dot(plane.Normal)) / denom
	if t < 0 {
		return RayHit{}, false
	}

	return RayHit{
		Point:    ray.At(t),
		Normal:   plane.Normal,
		Distance: t,
	}, true
}

// WorldRayHit is one ray intersection found by a world level query. Exactly
// one of Body and Static identifies the hit collider.
type WorldRayHit struct {
	RayHit

	// Body is the hit body, or NoHandle if a static collider was hit.
	Body Handle

	// Static is the hit static collider, or negative if a body was hit.
	Static StaticIndex
}

// RaycastAll collects every body and static collider the ray hits within
// maxDistance whose membership intersects mask, sorted ascending by
// distance. The scan is linear over all colliders, acceptable at the scales
// this engine targets.
func (w *World) RaycastAll(ray Ray, maxDistance float32, mask Layer) []WorldRayHit {
	var hits []WorldRayHit

	for handle, body := range w.registry.bodies() {
		if mask&body.Filter.Membership == 0 {
			continue
		}

		hit, ok := RaycastShape(ray, body.Shape, body.Position)
		if !ok || hit.Distance > maxDistance {
			continue
		}

		hits = append(hits, WorldRayHit{RayHit: hit, Body: handle, Static: -1})
	}

	for idx := range w.registry.statics {
		static := &w.registry.statics[idx]
		if mask&static.Filter.Membership == 0 {
			continue
		}

		hit, ok := RaycastShape(ray, static.Shape, static.Position)
		if !ok || hit.Distance > maxDistance {
			continue
		}

		hits = append(hits, WorldRayHit{RayHit: hit, Static: StaticIndex(idx)})
	}

	slices.SortFunc(hits, func(a, b WorldRayHit) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})

	return hits
}

// RaycastNearest returns the closest hit within maxDistance, if any.
func (w *World) RaycastNearest(ray Ray, maxDistance float32, mask Layer) (WorldRayHit, bool) {
	hits := w.RaycastAll(ray, maxDistance, mask)
	if len(hits) == 0 {
		return WorldRayHit{}, false
	}
	return hits[0], true
}
