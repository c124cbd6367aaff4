package gm

import (
	"github.com/chewxy/math32"
)

// Bivector is an oriented plane magnitude in 4d space. It has one component
// per coordinate plane and is used both as the generator of rotations and as
// an angular velocity.
type Bivector struct {
	XY, XZ, XW, YZ, YW, ZW float32
}

func (b Bivector) Add(other Bivector) Bivector {
	b.XY += other.XY
	b.XZ += other.XZ
	b.XW += other.XW
	b.YZ += other.YZ
	b.YW += other.YW
	b.ZW += other.ZW
	return b
}

func (b Bivector) Mul(scalar float32) Bivector {
	b.XY *= scalar
	b.XZ *= scalar
	b.XW *= scalar
	b.YZ *= scalar
	b.YW *= scalar
	b.ZW *= scalar
	return b
}

func (b Bivector) Length() float32 {
	return math32.Sqrt(b.XY*b.XY + b.XZ*b.XZ + b.XW*b.XW + b.YZ*b.YZ + b.YW*b.YW + b.ZW*b.ZW)
}

// Rotor describes an orientation or rotation in 4d space. It is an element
// of the even subalgebra of the geometric algebra over R4: a scalar part S,
// a bivector part B and a pseudoscalar part P, eight components in total.
//
// Composition of rotors accumulates floating point drift, so every
// composition in this package goes through Normalized afterwards.
type Rotor struct {
	S float32
	B Bivector
	P float32
}

// RotorIdentity returns the rotor that rotates nothing.
func RotorIdentity() Rotor {
	return Rotor{S: 1}
}

// RotorPlane returns the rotor rotating by angle (in radians) within the
// given plane. The plane must be simple (a single plane of rotation, e.g.
// any one coordinate plane) but does not need to be normalized. For the
// plane Bivector{XY: 1} a positive angle rotates the x axis towards the y
// axis. Double rotations are built by composing two independent rotors.
func RotorPlane(plane Bivector, angle float32) Rotor {
	length := plane.Length()
	if length == 0 {
		return RotorIdentity()
	}

	sin := math32.Sin(angle / 2)
	return Rotor{
		S: math32.Cos(angle / 2),
		B: plane.Mul(-sin / length),
	}
}

// Reverse returns the inverse rotation for a normalized rotor.
func (r Rotor) Reverse() Rotor {
	r.B = r.B.Mul(-1)
	return r
}

// Compose returns the rotor equivalent to rotating by other first and by r
// second. This is the geometric product of the two rotors. Compose is
// associative but not commutative unless the planes of rotation are fully
// independent.
func (r Rotor) Compose(other Rotor) Rotor {
	a, p := r.S, r.B
	b, q := other.S, other.B

	return Rotor{
		S: a*b -
			p.XY*q.XY - p.XZ*q.XZ - p.XW*q.XW -
			p.YZ*q.YZ - p.YW*q.YW - p.ZW*q.ZW +
			r.P*other.P,

		B: Bivector{
			XY: a*q.XY + p.XY*b - p.XZ*q.YZ + p.YZ*q.XZ - p.XW*q.YW + p.YW*q.XW - p.ZW*other.P - r.P*q.ZW,
			XZ: a*q.XZ + p.XZ*b + p.XY*q.YZ - p.YZ*q.XY - p.XW*q.ZW + p.ZW*q.XW + p.YW*other.P + r.P*q.YW,
			XW: a*q.XW + p.XW*b + p.XY*q.YW - p.YW*q.XY + p.XZ*q.ZW - p.ZW*q.XZ - p.YZ*other.P - r.P*q.YZ,
			YZ: a*q.YZ + p.YZ*b - p.XY*q.XZ + p.XZ*q.XY - p.YW*q.ZW + p.ZW*q.YW - p.XW*other.P - r.P*q.XW,
			YW: a*q.YW + p.YW*b - p.XY*q.XW + p.XW*q.XY + p.YZ*q.ZW - p.ZW*q.YZ + p.XZ*other.P + r.P*q.XZ,
			ZW: a*q.ZW + p.ZW*b - p.XZ*q.XW + p.XW*q.XZ - p.YZ*q.YW + p.YW*q.YZ - p.XY*other.P - r.P*q.XY,
		},

		P: a*other.P + r.P*b +
			p.XY*q.ZW + p.ZW*q.XY -
			p.XZ*q.YW - p.YW*q.XZ +
			p.XW*q.YZ + p.YZ*q.XW,
	}
}

// Normalized rescales the rotor to unit magnitude. The zero rotor is mapped
// to the identity so that downstream math never sees NaN.
func (r Rotor) Normalized() Rotor {
	sq := r.S*r.S + r.P*r.P +
		r.B.XY*r.B.XY + r.B.XZ*r.B.XZ + r.B.XW*r.B.XW +
		r.B.YZ*r.B.YZ + r.B.YW*r.B.YW + r.B.ZW*r.B.ZW

	if sq == 0 || !isFinite(sq) {
		return RotorIdentity()
	}

	inv := 1 / math32.Sqrt(sq)
	r.S *= inv
	r.P *= inv
	r.B = r.B.Mul(inv)
	return r
}

// Rotate applies the rotor to a vector via the sandwich product r v r~ and
// returns the grade-1 part.
func (r Rotor) Rotate(v Vec4) Vec4 {
	a, p := r.S, r.B

	// m = r * v, an odd element of the algebra with a vector part m1..m4
	// and a trivector part t123..t234 (indices 1..4 = x..w).
	m1 := a*v.X + p.XY*v.Y + p.XZ*v.Z + p.XW*v.W
	m2 := a*v.Y - p.XY*v.X + p.YZ*v.Z + p.YW*v.W
	m3 := a*v.Z - p.XZ*v.X - p.YZ*v.Y + p.ZW*v.W
	m4 := a*v.W - p.XW*v.X - p.YW*v.Y - p.ZW*v.Z

	t123 := p.XY*v.Z - p.XZ*v.Y + p.YZ*v.X + r.P*v.W
	t124 := p.XY*v.W - p.XW*v.Y + p.YW*v.X - r.P*v.Z
	t134 := p.XZ*v.W - p.XW*v.Z + p.ZW*v.X + r.P*v.Y
	t234 := p.YZ*v.W - p.YW*v.Z + p.ZW*v.Y - r.P*v.X

	// result = m * reverse(r), keeping only the vector part.
	rr := r.Reverse()
	b, q := rr.S, rr.B

	return Vec4{
		X: m1*b - m2*q.XY - m3*q.XZ - m4*q.XW - t123*q.YZ - t124*q.YW - t134*q.ZW + t234*rr.P,
		Y: m2*b + m1*q.XY - m3*q.YZ - m4*q.YW + t123*q.XZ + t124*q.XW - t234*q.ZW - t134*rr.P,
		Z: m3*b + m1*q.XZ + m2*q.YZ - m4*q.ZW - t123*q.XY + t134*q.XW + t234*q.YW + t124*rr.P,
		W: m4*b + m1*q.XW + m2*q.YW + m3*q.ZW - t124*q.XY - t134*q.XZ - t234*q.YZ - t123*rr.P,
	}
}

// IsFinite reports whether no component is NaN or infinite.
func (r Rotor) IsFinite() bool {
	return isFinite(r.S) && isFinite(r.P) &&
		isFinite(r.B.XY) && isFinite(r.B.XZ) && isFinite(r.B.XW) &&
		isFinite(r.B.YZ) && isFinite(r.B.YW) && isFinite(r.B.ZW)
}
