package vecmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeDecomposeRoundTrip(t *testing.T) {
	pos := Vector3{1.5, -2.25, 3.0}
	rot := FromEuler(Vector3{30, 45, 60}, OrderXYZ).Normalize()
	scale := Vector3{2, 0.5, 1}

	m := Compose(pos, rot, scale)
	gotPos, gotRot, gotScale := Decompose(m)

	assert.True(t, pos.Equal(gotPos, 1e-9))
	assert.True(t, scale.Equal(gotScale, 1e-9))

	m2 := Compose(gotPos, gotRot, gotScale)
	assert.True(t, m.Equal(m2, 1e-9))
}

func TestDecomposeNegativeScaleFoldedIntoX(t *testing.T) {
	pos := Vector3{}
	rot := Identity()
	scale := Vector3{-1, 1, 1}

	m := Compose(pos, rot, scale)
	_, _, gotScale := Decompose(m)
	assert.True(t, gotScale.X < 0)

	m2 := Compose(pos, rot, gotScale)
	assert.True(t, m.Equal(m2, 1e-9))
}

func TestMultiplyIdentity(t *testing.T) {
	m := Translation4(Vector3{1, 2, 3})
	got := m.Multiply(Identity4())
	assert.True(t, got.Equal(m, 1e-12))
}

func TestInvertRoundTrip(t *testing.T) {
	m := Compose(Vector3{4, 5, 6}, FromEuler(Vector3{10, 20, 30}, OrderZYX), Vector3{1, 1, 1})
	inv, ok := m.Invert()
	assert.True(t, ok)
	got := m.Multiply(inv)
	assert.True(t, got.Equal(Identity4(), 1e-9))
}

func TestEulerOrderAffectsResult(t *testing.T) {
	e := Vector3{20, 30, 40}
	xyz := FromEuler(e, OrderXYZ)
	zyx := FromEuler(e, OrderZYX)
	assert.False(t, xyz.X == zyx.X && xyz.Y == zyx.Y && xyz.Z == zyx.Z && xyz.W == zyx.W)
}

func TestTransposeSwapsRowsAndColumns(t *testing.T) {
	m := Matrix4{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	}
	got := m.Transpose()
	want := Matrix4{
		1, 5, 9, 13,
		2, 6, 10, 14,
		3, 7, 11, 15,
		4, 8, 12, 16,
	}
	assert.Equal(t, want, got)
	assert.True(t, got.Transpose().Equal(m, 1e-12))
}

func TestSlerpEndpoints(t *testing.T) {
	a := Identity()
	b := FromEuler(Vector3{0, 90, 0}, OrderXYZ)
	assert.Equal(t, a, a.Slerp(b, 0))
	assert.Equal(t, b, a.Slerp(b, 1))
}
