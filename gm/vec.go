package gm

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Vec4 is a point or direction in 4d space. All methods are value methods
// and return a modified copy, the receiver is never changed.
type Vec4 struct {
	X, Y, Z, W float32
}

var Vec4One = Vec4{X: 1, Y: 1, Z: 1, W: 1}

func Vec4Of(x, y, z, w float32) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Splat returns a vector with all four components set to s.
func Splat(s float32) Vec4 {
	return Vec4{X: s, Y: s, Z: s, W: s}
}

func (v Vec4) Add(other Vec4) Vec4 {
	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	v.W += other.W
	return v
}

func (v Vec4) Sub(other Vec4) Vec4 {
	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
	v.W -= other.W
	return v
}

func (v Vec4) Mul(scalar float32) Vec4 {
	v.X *= scalar
	v.Y *= scalar
	v.Z *= scalar
	v.W *= scalar
	return v
}

func (v Vec4) MulEach(other Vec4) Vec4 {
	v.X *= other.X
	v.Y *= other.Y
	v.Z *= other.Z
	v.W *= other.W
	return v
}

func (v Vec4) Neg() Vec4 {
	return Vec4{X: -v.X, Y: -v.Y, Z: -v.Z, W: -v.W}
}

func (v Vec4) Dot(other Vec4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

func (v Vec4) Length() float32 {
	return math32.Sqrt(v.Dot(v))
}

func (v Vec4) LengthSq() float32 {
	return v.Dot(v)
}

func (v Vec4) DistanceTo(other Vec4) float32 {
	return v.Sub(other).Length()
}

// Normalized returns the vector scaled to unit length. The zero vector is
// returned unchanged instead of producing NaN components.
func (v Vec4) Normalized() Vec4 {
	length := v.Length()
	if length == 0 {
		return v
	}
	return v.Mul(1 / length)
}

func (v Vec4) Lerp(other Vec4, t float32) Vec4 {
	return v.Add(other.Sub(v).Mul(t))
}

func (v Vec4) Abs() Vec4 {
	return Vec4{
		X: math32.Abs(v.X),
		Y: math32.Abs(v.Y),
		Z: math32.Abs(v.Z),
		W: math32.Abs(v.W),
	}
}

func (v Vec4) Min(other Vec4) Vec4 {
	return Vec4{
		X: min(v.X, other.X),
		Y: min(v.Y, other.Y),
		Z: min(v.Z, other.Z),
		W: min(v.W, other.W),
	}
}

func (v Vec4) Max(other Vec4) Vec4 {
	return Vec4{
		X: max(v.X, other.X),
		Y: max(v.Y, other.Y),
		Z: max(v.Z, other.Z),
		W: max(v.W, other.W),
	}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec4) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) && isFinite(v.W)
}

func (v Vec4) String() string {
	return fmt.Sprintf("vec4(x=%v, y=%v, z=%v, w=%v)", v.X, v.Y, v.Z, v.W)
}

// Axis returns the idx-th component, idx must be in [0, 3].
func (v Vec4) Axis(idx int) float32 {
	switch idx {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	default:
		return v.W
	}
}

// WithAxis returns a copy with the idx-th component set to value.
func (v Vec4) WithAxis(idx int, value float32) Vec4 {
	switch idx {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	case 2:
		v.Z = value
	default:
		v.W = value
	}
	return v
}

func isFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Clamp limits v to the interval [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
