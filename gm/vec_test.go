package gm

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/require"
)

func TestVec4_Arithmetic(t *testing.T) {
	a := Vec4Of(1, 2, 3, 4)
	b := Vec4Of(4, 3, 2, 1)

	require.Equal(t, Vec4Of(5, 5, 5, 5), a.Add(b))
	require.Equal(t, Vec4Of(-3, -1, 1, 3), a.Sub(b))
	require.Equal(t, Vec4Of(2, 4, 6, 8), a.Mul(2))
	require.Equal(t, Vec4Of(4, 6, 6, 4), a.MulEach(b))
	require.Equal(t, Vec4Of(-1, -2, -3, -4), a.Neg())

	// the receiver is never modified
	require.Equal(t, Vec4Of(1, 2, 3, 4), a)
}

func TestVec4_Dot(t *testing.T) {
	a := Vec4Of(1, 2, 3, 4)
	b := Vec4Of(4, 3, 2, 1)
	require.EqualValues(t, 20, a.Dot(b))

	// orthogonal axes
	require.Zero(t, Vec4{X: 1}.Dot(Vec4{W: 1}))
}

func TestVec4_Length(t *testing.T) {
	require.EqualValues(t, 2, Vec4One.Length())
	require.EqualValues(t, 4, Vec4One.LengthSq())
	require.EqualValues(t, 5, Vec4Of(3, 0, 0, 4).Length())
	require.EqualValues(t, 2, Vec4{X: 1}.DistanceTo(Vec4{X: 3}))
}

func TestVec4_Normalized(t *testing.T) {
	n := Vec4Of(2, 0, 0, 0).Normalized()
	require.Equal(t, Vec4{X: 1}, n)

	require.InDelta(t, 1, Vec4Of(1, -2, 3, -4).Normalized().Length(), 1e-6)

	// the zero vector stays zero instead of going NaN
	zero := Vec4{}.Normalized()
	require.True(t, zero.IsFinite())
	require.Equal(t, Vec4{}, zero)
}

func TestVec4_Lerp(t *testing.T) {
	a := Vec4Of(0, 0, 0, 0)
	b := Vec4Of(2, 4, 6, 8)
	require.Equal(t, Vec4Of(1, 2, 3, 4), a.Lerp(b, 0.5))
	require.Equal(t, a, a.Lerp(b, 0))
	require.Equal(t, b, a.Lerp(b, 1))
}

func TestVec4_MinMaxAbs(t *testing.T) {
	a := Vec4Of(-1, 2, -3, 4)
	b := Vec4Of(1, -2, 3, -4)

	require.Equal(t, Vec4Of(-1, -2, -3, -4), a.Min(b))
	require.Equal(t, Vec4Of(1, 2, 3, 4), a.Max(b))
	require.Equal(t, Vec4Of(1, 2, 3, 4), a.Abs())
}

func TestVec4_Axis(t *testing.T) {
	v := Vec4Of(1, 2, 3, 4)
	for idx := range 4 {
		require.EqualValues(t, idx+1, v.Axis(idx))
	}

	require.Equal(t, Vec4Of(1, 2, 9, 4), v.WithAxis(2, 9))
}

func TestVec4_IsFinite(t *testing.T) {
	require.True(t, Vec4One.IsFinite())
	require.False(t, Vec4{X: math32.NaN()}.IsFinite())
	require.False(t, Vec4{W: math32.Inf(1)}.IsFinite())
}
