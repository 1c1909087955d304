package vmath

import (
	"math"
)

// Mat4 is a row-major 4x4 matrix operating on column vectors: v' = M * v
type Mat4 [16]float64

// Identity4 returns the identity matrix
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective builds an OpenGL-style projection, fovY in radians
// Clip z maps near → -1 and far → +1
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovY/2)
	nf := 1.0 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// LookAt builds a view matrix for a camera at eye facing target
// Falls back to +Z as up when up is parallel to the view direction
func LookAt(eye, target, up Vec3F) Mat4 {
	zAxis := V3FNormalize(V3FSub(eye, target))
	if V3FMagSq(zAxis) == 0 {
		zAxis = Vec3F{0, 0, 1}
	}
	xAxis := V3FCross(up, zAxis)
	if V3FMagSq(xAxis) < 1e-12 {
		xAxis = V3FCross(Vec3F{0, 0, 1}, zAxis)
	}
	xAxis = V3FNormalize(xAxis)
	yAxis := V3FCross(zAxis, xAxis)

	return Mat4{
		xAxis.X, xAxis.Y, xAxis.Z, -V3FDot(xAxis, eye),
		yAxis.X, yAxis.Y, yAxis.Z, -V3FDot(yAxis, eye),
		zAxis.X, zAxis.Y, zAxis.Z, -V3FDot(zAxis, eye),
		0, 0, 0, 1,
	}
}

// M4Mul returns a * b
func M4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r*4+c] = a[r*4+0]*b[0*4+c] +
				a[r*4+1]*b[1*4+c] +
				a[r*4+2]*b[2*4+c] +
				a[r*4+3]*b[3*4+c]
		}
	}
	return out
}

// M4Transform multiplies (v, 1) and returns xyz plus w without division
func M4Transform(m Mat4, v Vec3F) (Vec3F, float64) {
	return Vec3F{
			m[0]*v.X + m[1]*v.Y + m[2]*v.Z + m[3],
			m[4]*v.X + m[5]*v.Y + m[6]*v.Z + m[7],
			m[8]*v.X + m[9]*v.Y + m[10]*v.Z + m[11],
		},
		m[12]*v.X + m[13]*v.Y + m[14]*v.Z + m[15]
}

// M4Project transforms v and applies the perspective divide
// Returns false when w is zero
func M4Project(m Mat4, v Vec3F) (Vec3F, bool) {
	p, w := M4Transform(m, v)
	if w == 0 {
		return Vec3F{}, false
	}
	inv := 1.0 / w
	return Vec3F{p.X * inv, p.Y * inv, p.Z * inv}, true
}

// M4Invert returns the inverse of m, false if m is singular
// Cofactor expansion; valid for either storage order
func M4Invert(m Mat4) (Mat4, bool) {
	var inv Mat4

	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] + m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] - m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] + m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] - m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] - m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] + m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] - m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] + m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] + m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] - m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] + m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] - m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] - m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] + m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] - m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] + m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if det == 0 {
		return Mat4{}, false
	}

	invDet := 1.0 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return inv, true
}
