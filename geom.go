package fbx

import "github.com/g3n/fbx/vecmath"

// Vector3, Quaternion and Matrix4 are re-exported from vecmath so callers
// of this package never need to import the satellite package directly.
type (
	Vector3    = vecmath.Vector3
	Quaternion = vecmath.Quaternion
	Matrix4    = vecmath.Matrix4
)

// RotationOrder re-exports vecmath's Euler axis order enumeration.
type RotationOrder = vecmath.RotationOrder

const (
	OrderXYZ        = vecmath.OrderXYZ
	OrderXZY        = vecmath.OrderXZY
	OrderYZX        = vecmath.OrderYZX
	OrderYXZ        = vecmath.OrderYXZ
	OrderZXY        = vecmath.OrderZXY
	OrderZYX        = vecmath.OrderZYX
	OrderSphericXYZ = vecmath.OrderSphericXYZ
)

// Axis names one signed coordinate axis (e.g. up-axis = +Y).
type Axis struct {
	Index int // 0=X, 1=Y, 2=Z
	Sign  int // +1 or -1
}

// AxisSystem names a coordinate convention: which axis is up, which is
// front, and the handedness implied by the remaining (coord) axis (spec
// §4.7 GlobalSettings up-axis/front-axis/coord-axis).
type AxisSystem struct {
	Up    Axis
	Front Axis
	Coord Axis
}

// DefaultAxisSystem is FBX's own default (+Y up, +Z front/forward, +X
// coord), matching an un-adjusted GlobalSettings block.
func DefaultAxisSystem() AxisSystem {
	return AxisSystem{
		Up:    Axis{Index: 1, Sign: 1},
		Front: Axis{Index: 2, Sign: 1},
		Coord: Axis{Index: 0, Sign: 1},
	}
}

// Identity4 re-exports vecmath's identity matrix constructor.
func Identity4() Matrix4 {
	return vecmath.Identity4()
}

// Translation4, Scaling4, RotationFromQuaternion4, Compose and Decompose4
// re-export the vecmath matrix builders transform.go composes the pivot
// chain from.
func Translation4(t Vector3) Matrix4 { return vecmath.Translation4(t) }
func Scaling4(s Vector3) Matrix4     { return vecmath.Scaling4(s) }
func RotationFromQuaternion4(q Quaternion) Matrix4 {
	return vecmath.RotationFromQuaternion4(q)
}
func Compose(position Vector3, rotation Quaternion, scale Vector3) Matrix4 {
	return vecmath.Compose(position, rotation, scale)
}
func Decompose4(m Matrix4) (position Vector3, rotation Quaternion, scale Vector3) {
	return vecmath.Decompose(m)
}

// fromEulerDeg re-exports vecmath.FromEuler under the name transform.go
// uses locally.
func fromEulerDeg(eulerDeg Vector3, order RotationOrder) Quaternion {
	return vecmath.FromEuler(eulerDeg, order)
}
