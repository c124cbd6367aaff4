package glome

import (
	"github.com/oliverbestmann/glome/gm"
)

// SphereHit is one body found by QuerySphere.
type SphereHit struct {
	Body     Handle
	Position gm.Vec4
	Distance float32
}

// QuerySphere returns every body whose position lies within the 4d
// euclidean distance radius of center and whose membership intersects mask.
// The test is centroid based, not shape aware. Pass LayerAll to skip the
// layer filter.
func (w *World) QuerySphere(center gm.Vec4, radius float32, mask Layer) []SphereHit {
	var hits []SphereHit

	for handle, body := range w.registry.bodies() {
		if mask&body.Filter.Membership == 0 {
			continue
		}

		distance := body.Position.DistanceTo(center)
		if distance > radius {
			continue
		}

		hits = append(hits, SphereHit{
			Body:     handle,
			Position: body.Position,
			Distance: distance,
		})
	}

	return hits
}

// AreaHit is one body affected by an area effect query.
type AreaHit struct {
	Body     Handle
	Position gm.Vec4
	Distance float32

	// Falloff is 1 at the center and fades linearly to 0 at the radius.
	Falloff float32

	// Direction is the normalized direction from the center towards the
	// body, for knockback. A body exactly at the center gets up.
	Direction gm.Vec4
}

// AreaEffectOptions tune QueryAreaEffect.
type AreaEffectOptions struct {
	// RequireLineOfSight excludes bodies occluded by a static collider on
	// one of the BlockingMask layers strictly between center and body.
	RequireLineOfSight bool
	BlockingMask       Layer
}

// QueryAreaEffect is the explosion/aura query: every body within radius is
// reported with a linear falloff weight and a knockback direction. The line
// of sight check delegates to raycasting against static colliders.
func (w *World) QueryAreaEffect(center gm.Vec4, radius float32, mask Layer, opts AreaEffectOptions) []AreaHit {
	if radius <= 0 {
		return nil
	}

	var hits []AreaHit

	for _, hit := range w.QuerySphere(center, radius, mask) {
		if opts.RequireLineOfSight && w.lineOfSightBlocked(center, hit.Position, opts.BlockingMask) {
			continue
		}

		direction := hit.Position.Sub(center)
		if direction.LengthSq() == 0 {
			direction = gm.Vec4{Y: 1}
		}

		hits = append(hits, AreaHit{
			Body:      hit.Body,
			Position:  hit.Position,
			Distance:  hit.Distance,
			Falloff:   1 - hit.Distance/radius,
			Direction: direction.Normalized(),
		})
	}

	return hits
}

// lineOfSightBlocked reports whether a blocking static collider lies
// strictly between from and to.
func (w *World) lineOfSightBlocked(from, to gm.Vec4, blocking Layer) bool {
	distance := from.DistanceTo(to)
	if distance == 0 {
		return false
	}

	ray := NewRay(from, to.Sub(from))

	for idx := range w.registry.statics {
		static := &w.registry.statics[idx]
		if blocking&static.Filter.Membership == 0 {
			continue
		}

		hit, ok := RaycastShape(ray, static.Shape, static.Position)
		if ok && hit.Distance > 0 && hit.Distance < distance-MinShapeExtent {
			return true
		}
	}

	return false
}
