// Package vecmath implements the float64 vector, quaternion and matrix math
// the L7 transform evaluator and L8 space converter need. It mirrors the
// method shapes of g3n's float32 math32 package (Compose/Decompose,
// MultiplyMatrices, SetFromRotationMatrix) but is double precision
// throughout: the transform chain's pivot composition
// (T * Roff * Rp * Rpre * R * Rpost^-1 * Rp^-1 * Soff * Sp * S * Sp^-1)
// accumulates enough matrix multiplications that float32 loses the
// precision the numeric round-trip properties require.
package vecmath

import "math"

// Vector3 is a 3-component double precision vector.
type Vector3 struct {
	X, Y, Z float64
}

// NewVector3 builds a Vector3 from components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{X: x, Y: y, Z: z}
}

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v scaled componentwise by other.
func (v Vector3) Scale(other Vector3) Vector3 {
	return Vector3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// MultiplyScalar returns v scaled uniformly by s.
func (v Vector3) MultiplyScalar(s float64) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and other.
func (v Vector3) Dot(other Vector3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns v x other.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Negate returns -v, elementwise.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Equal reports whether v and other are equal within tol on every axis.
func (v Vector3) Equal(other Vector3, tol float64) bool {
	return math.Abs(v.X-other.X) <= tol && math.Abs(v.Y-other.Y) <= tol && math.Abs(v.Z-other.Z) <= tol
}

// DegToRad converts degrees to radians (FBX stores Euler angles in degrees).
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
