package gm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func requireVecInDelta(t *testing.T, expected, actual Vec4, delta float64) {
	t.Helper()
	require.InDelta(t, expected.X, actual.X, delta)
	require.InDelta(t, expected.Y, actual.Y, delta)
	require.InDelta(t, expected.Z, actual.Z, delta)
	require.InDelta(t, expected.W, actual.W, delta)
}

func TestRotor_Identity(t *testing.T) {
	v := Vec4Of(1, 2, 3, 4)
	require.Equal(t, v, RotorIdentity().Rotate(v))
}

func TestRotor_QuarterTurns(t *testing.T) {
	t.Run("xy plane", func(t *testing.T) {
		r := RotorPlane(Bivector{XY: 1}, math.Pi/2)

		requireVecInDelta(t, Vec4{Y: 1}, r.Rotate(Vec4{X: 1}), 1e-6)
		requireVecInDelta(t, Vec4{X: -1}, r.Rotate(Vec4{Y: 1}), 1e-6)

		// axes outside the plane are untouched
		requireVecInDelta(t, Vec4{Z: 1}, r.Rotate(Vec4{Z: 1}), 1e-6)
		requireVecInDelta(t, Vec4{W: 1}, r.Rotate(Vec4{W: 1}), 1e-6)
	})

	t.Run("zw plane", func(t *testing.T) {
		r := RotorPlane(Bivector{ZW: 1}, math.Pi/2)

		requireVecInDelta(t, Vec4{W: 1}, r.Rotate(Vec4{Z: 1}), 1e-6)
		requireVecInDelta(t, Vec4{Z: -1}, r.Rotate(Vec4{W: 1}), 1e-6)
		requireVecInDelta(t, Vec4{X: 1}, r.Rotate(Vec4{X: 1}), 1e-6)
	})

	t.Run("xw plane", func(t *testing.T) {
		r := RotorPlane(Bivector{XW: 1}, math.Pi/2)

		requireVecInDelta(t, Vec4{W: 1}, r.Rotate(Vec4{X: 1}), 1e-6)
		requireVecInDelta(t, Vec4{X: -1}, r.Rotate(Vec4{W: 1}), 1e-6)
	})
}

func TestRotor_Compose(t *testing.T) {
	quarter := RotorPlane(Bivector{XY: 1}, math.Pi/2)
	half := RotorPlane(Bivector{XY: 1}, math.Pi)

	composed := quarter.Compose(quarter).Normalized()
	requireVecInDelta(t, half.Rotate(Vec4{X: 1}), composed.Rotate(Vec4{X: 1}), 1e-6)
	requireVecInDelta(t, Vec4{X: -1}, composed.Rotate(Vec4{X: 1}), 1e-6)
}

func TestRotor_ComposeAssociative(t *testing.T) {
	a := RotorPlane(Bivector{XY: 1}, 0.3)
	b := RotorPlane(Bivector{YZ: 1}, 0.7)
	c := RotorPlane(Bivector{XW: 1}, 1.1)

	v := Vec4Of(1, 2, 3, 4)
	left := a.Compose(b).Compose(c).Normalized()
	right := a.Compose(b.Compose(c)).Normalized()

	requireVecInDelta(t, left.Rotate(v), right.Rotate(v), 1e-5)
}

func TestRotor_IndependentPlanesCommute(t *testing.T) {
	// a rotation in xy and one in zw share no axis, so they commute;
	// the resulting double rotation exists in 4d only
	xy := RotorPlane(Bivector{XY: 1}, 0.8)
	zw := RotorPlane(Bivector{ZW: 1}, 1.3)

	v := Vec4Of(1, 2, 3, 4)
	requireVecInDelta(t,
		xy.Compose(zw).Normalized().Rotate(v),
		zw.Compose(xy).Normalized().Rotate(v), 1e-5)
}

func TestRotor_PreservesLength(t *testing.T) {
	// a double rotation built from two independent simple rotations
	r := RotorPlane(Bivector{XZ: 1}, 1.2).Compose(RotorPlane(Bivector{YW: 1}, 0.5)).Normalized()
	v := Vec4Of(1, -2, 3, -4)

	require.InDelta(t, float64(v.Length()), float64(r.Rotate(v).Length()), 1e-5)
}

func TestRotor_Reverse(t *testing.T) {
	r := RotorPlane(Bivector{XY: 1}, 0.9).Compose(RotorPlane(Bivector{ZW: 1}, 0.4)).Normalized()
	v := Vec4Of(1, 2, 3, 4)

	requireVecInDelta(t, v, r.Reverse().Rotate(r.Rotate(v)), 1e-5)

	// reverse composes to the identity
	identity := r.Compose(r.Reverse()).Normalized()
	requireVecInDelta(t, v, identity.Rotate(v), 1e-5)
}

func TestRotor_Normalized(t *testing.T) {
	r := Rotor{S: 3, B: Bivector{XY: 4}}
	n := r.Normalized()
	require.InDelta(t, 1, float64(n.S*n.S+n.B.XY*n.B.XY), 1e-6)

	// the zero rotor degenerates to the identity instead of NaN
	require.Equal(t, RotorIdentity(), Rotor{}.Normalized())
}

func TestRotor_PlaneOfZeroLength(t *testing.T) {
	require.Equal(t, RotorIdentity(), RotorPlane(Bivector{}, 1.5))
}
