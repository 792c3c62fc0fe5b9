package vecmath

import "math"

// Matrix4 is a 4x4 double precision matrix stored column-major (the same
// element layout math32.Matrix4 uses), so m[4*col+row].
type Matrix4 [16]float64

// Identity4 returns the identity matrix.
func Identity4() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation4 returns a pure translation matrix.
func Translation4(t Vector3) Matrix4 {
	m := Identity4()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Scaling4 returns a pure scale matrix.
func Scaling4(s Vector3) Matrix4 {
	return Matrix4{
		s.X, 0, 0, 0,
		0, s.Y, 0, 0,
		0, 0, s.Z, 0,
		0, 0, 0, 1,
	}
}

// RotationFromQuaternion4 returns the rotation matrix equivalent to q.
func RotationFromQuaternion4(q Quaternion) Matrix4 {
	x, y, z, w := q.X, q.Y, q.Z, q.W
	x2, y2, z2 := x+x, y+y, z+z
	xx, xy, xz := x*x2, x*y2, x*z2
	yy, yz, zz := y*y2, y*z2, z*z2
	wx, wy, wz := w*x2, w*y2, w*z2

	m := Identity4()
	m[0] = 1 - (yy + zz)
	m[4] = xy - wz
	m[8] = xz + wy

	m[1] = xy + wz
	m[5] = 1 - (xx + zz)
	m[9] = yz - wx

	m[2] = xz - wy
	m[6] = yz + wx
	m[10] = 1 - (xx + yy)
	return m
}

// SetPosition overwrites m's translation column in place and returns m.
func (m Matrix4) SetPosition(t Vector3) Matrix4 {
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Scale post-multiplies m's basis vectors by s componentwise (equivalent to
// m * Scaling4(s) but computed directly, matching math32.Matrix4.Scale).
func (m Matrix4) Scale(s Vector3) Matrix4 {
	m[0] *= s.X
	m[1] *= s.X
	m[2] *= s.X
	m[4] *= s.Y
	m[5] *= s.Y
	m[6] *= s.Y
	m[8] *= s.Z
	m[9] *= s.Z
	m[10] *= s.Z
	return m
}

// Multiply returns m * other.
func (m Matrix4) Multiply(other Matrix4) Matrix4 {
	return MultiplyMatrices4(m, other)
}

// MultiplyMatrices4 returns a * b.
func MultiplyMatrices4(a, b Matrix4) Matrix4 {
	var r Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += a[4*k+row] * b[4*col+k]
			}
			r[4*col+row] = sum
		}
	}
	return r
}

// Determinant returns the determinant of m.
func (m Matrix4) Determinant() float64 {
	n11, n12, n13, n14 := m[0], m[4], m[8], m[12]
	n21, n22, n23, n24 := m[1], m[5], m[9], m[13]
	n31, n32, n33, n34 := m[2], m[6], m[10], m[14]
	n41, n42, n43, n44 := m[3], m[7], m[11], m[15]

	return n41*(+n14*n23*n32-
		n13*n24*n32-
		n14*n22*n33+
		n12*n24*n33+
		n13*n22*n34-
		n12*n23*n34) +
		n42*(+n11*n23*n34-
			n11*n24*n33+
			n14*n21*n33-
			n13*n21*n34+
			n13*n24*n31-
			n14*n23*n31) +
		n43*(+n11*n24*n32-
			n11*n22*n34-
			n14*n21*n32+
			n12*n21*n34+
			n14*n22*n31-
			n12*n24*n31) +
		n44*(-n13*n22*n31-
			n11*n23*n32+
			n11*n22*n33+
			n13*n21*n32-
			n12*n21*n33+
			n12*n23*n31)
}

// Invert returns the inverse of m, and false if m is singular. Used for the
// Rpost^-1, Rp^-1 and Sp^-1 pivot-chain terms (spec §4.9's pivot math, see
// composeLocalTransform in transform.go).
func (m Matrix4) Invert() (Matrix4, bool) {
	n11, n21, n31, n41 := m[0], m[1], m[2], m[3]
	n12, n22, n32, n42 := m[4], m[5], m[6], m[7]
	n13, n23, n33, n43 := m[8], m[9], m[10], m[11]
	n14, n24, n34, n44 := m[12], m[13], m[14], m[15]

	t11 := n23*n34*n42 - n24*n33*n42 + n24*n32*n43 - n22*n34*n43 - n23*n32*n44 + n22*n33*n44
	t12 := n14*n33*n42 - n13*n34*n42 - n14*n32*n43 + n12*n34*n43 + n13*n32*n44 - n12*n33*n44
	t13 := n13*n24*n42 - n14*n23*n42 + n14*n22*n43 - n12*n24*n43 - n13*n22*n44 + n12*n23*n44
	t14 := n14*n23*n32 - n13*n24*n32 - n14*n22*n33 + n12*n24*n33 + n13*n22*n34 - n12*n23*n34

	det := n11*t11 + n21*t12 + n31*t13 + n41*t14
	if det == 0 {
		return Identity4(), false
	}
	invDet := 1 / det

	var r Matrix4
	r[0] = t11 * invDet
	r[1] = (n24*n33*n41 - n23*n34*n41 - n24*n31*n43 + n21*n34*n43 + n23*n31*n44 - n21*n33*n44) * invDet
	r[2] = (n22*n34*n41 - n24*n32*n41 + n24*n31*n42 - n21*n34*n42 - n22*n31*n44 + n21*n32*n44) * invDet
	r[3] = (n23*n32*n41 - n22*n33*n41 - n23*n31*n42 + n21*n33*n42 + n22*n31*n43 - n21*n32*n43) * invDet

	r[4] = t12 * invDet
	r[5] = (n13*n34*n41 - n14*n33*n41 + n14*n31*n43 - n11*n34*n43 - n13*n31*n44 + n11*n33*n44) * invDet
	r[6] = (n14*n32*n41 - n12*n34*n41 - n14*n31*n42 + n11*n34*n42 + n12*n31*n44 - n11*n32*n44) * invDet
	r[7] = (n12*n33*n41 - n13*n32*n41 + n13*n31*n42 - n11*n33*n42 - n12*n31*n43 + n11*n32*n43) * invDet

	r[8] = t13 * invDet
	r[9] = (n14*n23*n41 - n13*n24*n41 - n14*n21*n43 + n11*n24*n43 + n13*n21*n44 - n11*n23*n44) * invDet
	r[10] = (n12*n24*n41 - n14*n22*n41 + n14*n21*n42 - n11*n24*n42 - n12*n21*n44 + n11*n22*n44) * invDet
	r[11] = (n13*n22*n41 - n12*n23*n41 - n13*n21*n42 + n11*n23*n42 + n12*n21*n43 - n11*n22*n43) * invDet

	r[12] = t14 * invDet
	r[13] = (n13*n24*n31 - n14*n23*n31 + n14*n21*n33 - n11*n24*n33 - n13*n21*n34 + n11*n23*n34) * invDet
	r[14] = (n14*n22*n31 - n12*n24*n31 - n14*n21*n32 + n11*n24*n32 + n12*n21*n34 - n11*n22*n34) * invDet
	r[15] = (n12*n23*n31 - n13*n22*n31 + n13*n21*n32 - n11*n23*n32 - n12*n21*n33 + n11*n22*n33) * invDet

	return r, true
}

// Compose builds a transform matrix from position, rotation and scale:
// T * R * S. Callers composing the full FBX pivot chain apply this for the
// non-pivot terms and chain the pivot matrices (Translation4/Invert)
// around it themselves; see transform.go's composeLocalTransform.
func Compose(position Vector3, rotation Quaternion, scale Vector3) Matrix4 {
	m := RotationFromQuaternion4(rotation)
	m = m.Scale(scale)
	return m.SetPosition(position)
}

// Decompose extracts position, rotation and scale from m. A negative
// determinant indicates a mirrored (odd number of negative-scale axes)
// transform; following math32.Matrix4.Decompose (and ufbx's own
// convention), the sign is folded entirely into the X scale axis rather
// than split across axes, so that re-composing reproduces the same matrix.
func Decompose(m Matrix4) (position Vector3, rotation Quaternion, scale Vector3) {
	position = Vector3{m[12], m[13], m[14]}

	sx := Vector3{m[0], m[1], m[2]}.Length()
	sy := Vector3{m[4], m[5], m[6]}.Length()
	sz := Vector3{m[8], m[9], m[10]}.Length()

	if m.Determinant() < 0 {
		sx = -sx
	}
	scale = Vector3{sx, sy, sz}

	rm := m
	invSX, invSY, invSZ := 1/sx, 1/sy, 1/sz
	if sx == 0 {
		invSX = 0
	}
	if sy == 0 {
		invSY = 0
	}
	if sz == 0 {
		invSZ = 0
	}
	rm[0] *= invSX
	rm[1] *= invSX
	rm[2] *= invSX
	rm[4] *= invSY
	rm[5] *= invSY
	rm[6] *= invSY
	rm[8] *= invSZ
	rm[9] *= invSZ
	rm[10] *= invSZ

	rotation = FromRotationMatrix(rm)
	return
}

// Transpose returns m with rows and columns swapped.
func (m Matrix4) Transpose() Matrix4 {
	return Matrix4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Equal reports whether m and other are equal within tol on every element.
func (m Matrix4) Equal(other Matrix4, tol float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}
