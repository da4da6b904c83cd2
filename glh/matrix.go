// SPDX-License-Identifier: GPL-2.0-or-later

package glh

import (
	"fmt"
	"math"
)

// Matrix is a 4x4 matrix in row major order.
type Matrix struct {
	m [16]float32
}

func (m *Matrix) Print() {
	fmt.Printf("Matrix:\n%v %v %v %v\n%v %v %v %v\n%v %v %v %v\n%v %v %v %v\n",
		m.m[0], m.m[1], m.m[2], m.m[3],
		m.m[4], m.m[5], m.m[6], m.m[7],
		m.m[8], m.m[9], m.m[10], m.m[11],
		m.m[12], m.m[13], m.m[14], m.m[15],
	)
}

func deg2rad(deg float32) float64 {
	return (float64(deg) / 180) * math.Pi
}

func sincos(t float64) (float32, float32) {
	s, c := math.Sincos(t)
	return float32(s), float32(c)
}

func Identity() *Matrix {
	return &Matrix{
		m: [16]float32{
			1, 0, 0, 0, // 0 - 3
			0, 1, 0, 0, // 4 - 7
			0, 0, 1, 0, // 8 - 11
			0, 0, 0, 1, // 12 - 15
		},
	}
}

// Frustum returns the off-axis perspective frustum matrix in the exact
// element placement of the Mesa3D reference implementation. The stock
// driver variant was unreliable on some GPUs of the era, and the water
// reflection texture matrix depends on this exact form.
func Frustum(left, right, bottom, top, nearval, farval float32) *Matrix {
	x := (2 * nearval) / (right - left)
	y := (2 * nearval) / (top - bottom)
	a := (right + left) / (right - left)
	b := (top + bottom) / (top - bottom)
	c := -(farval + nearval) / (farval - nearval)
	d := -(2 * farval * nearval) / (farval - nearval)

	return &Matrix{
		m: [16]float32{
			x, 0, a, 0,
			0, y, b, 0,
			0, 0, c, d,
			0, 0, -1, 0,
		},
	}
}

// Perspective returns the projection for a vertical field of view given in
// degrees. It expands fovy/aspect into the edges of the near plane and
// defers to Frustum.
func Perspective(fovy, aspect, znear, zfar float32) *Matrix {
	ymax := znear * float32(math.Tan(float64(fovy)*math.Pi/360))
	ymin := -ymax
	xmin := ymin * aspect
	xmax := ymax * aspect
	return Frustum(xmin, xmax, ymin, ymax, znear, zfar)
}

// Ortho returns an orthographic projection matrix.
func Ortho(left, right, bottom, top, nearval, farval float32) *Matrix {
	return &Matrix{
		m: [16]float32{
			2 / (right - left), 0, 0, -(right + left) / (right - left),
			0, 2 / (top - bottom), 0, -(top + bottom) / (top - bottom),
			0, 0, -2 / (farval - nearval), -(farval + nearval) / (farval - nearval),
			0, 0, 0, 1,
		},
	}
}

func (m *Matrix) Copy() *Matrix {
	nm := &Matrix{}
	copy(nm.m[:], m.m[:])
	return nm
}

// ColumnMajor returns the matrix elements the way glLoadMatrix expects them.
func (m *Matrix) ColumnMajor() [16]float32 {
	return [16]float32{
		m.m[0], m.m[4], m.m[8], m.m[12],
		m.m[1], m.m[5], m.m[9], m.m[13],
		m.m[2], m.m[6], m.m[10], m.m[14],
		m.m[3], m.m[7], m.m[11], m.m[15],
	}
}

// Mul computes m = m*o, matching the multiplication order of the GL
// matrix stack.
func (m *Matrix) Mul(o *Matrix) {
	var n [16]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m.m[row*4+k] * o.m[k*4+col]
			}
			n[row*4+col] = s
		}
	}
	m.m = n
}

func (m *Matrix) Translate(x, y, z float32) {
	// 1, 0, 0, x
	// 0, 1, 0, y
	// 0, 0, 1, z
	// 0, 0, 0, 1
	// compute m*t
	n := [16]float32{
		m.m[0], m.m[1], m.m[2], x*m.m[0] + y*m.m[1] + z*m.m[2] + m.m[3],
		m.m[4], m.m[5], m.m[6], x*m.m[4] + y*m.m[5] + z*m.m[6] + m.m[7],
		m.m[8], m.m[9], m.m[10], x*m.m[8] + y*m.m[9] + z*m.m[10] + m.m[11],
		m.m[12], m.m[13], m.m[14], x*m.m[12] + y*m.m[13] + z*m.m[14] + m.m[15],
	}
	m.m = n
}

func (m *Matrix) RotateX(degree float32) {
	sin, cos := sincos(deg2rad(degree))
	// 1, 0, 0, 0
	// 0, cos, -sin, 0
	// 0, sin, cos 0
	// 0, 0, 0, 1
	// compute m*t
	n := [16]float32{
		m.m[0], cos*m.m[1] + sin*m.m[2], -sin*m.m[1] + cos*m.m[2], m.m[3],
		m.m[4], cos*m.m[5] + sin*m.m[6], -sin*m.m[5] + cos*m.m[6], m.m[7],
		m.m[8], cos*m.m[9] + sin*m.m[10], -sin*m.m[9] + cos*m.m[10], m.m[11],
		m.m[12], cos*m.m[13] + sin*m.m[14], -sin*m.m[13] + cos*m.m[14], m.m[15],
	}
	m.m = n
}

func (m *Matrix) RotateY(degree float32) {
	sin, cos := sincos(deg2rad(degree))
	// cos, 0, sin, 0
	// 0, 1, 0, 0
	// -sin, 0, cos, 0
	// 0, 0, 0, 1
	// compute m*t
	n := [16]float32{
		cos*m.m[0] - sin*m.m[2], m.m[1], sin*m.m[0] + cos*m.m[2], m.m[3],
		cos*m.m[4] - sin*m.m[6], m.m[5], sin*m.m[4] + cos*m.m[6], m.m[7],
		cos*m.m[8] - sin*m.m[10], m.m[9], sin*m.m[8] + cos*m.m[10], m.m[11],
		cos*m.m[12] - sin*m.m[14], m.m[13], sin*m.m[12] + cos*m.m[14], m.m[15],
	}
	m.m = n
}

func (m *Matrix) RotateZ(degree float32) {
	sin, cos := sincos(deg2rad(degree))
	// cos, -sin, 0, 0
	// sin, cos, 0, 0
	// 0, 0, 1, 0
	// 0, 0, 0, 1
	// compute m*t
	n := [16]float32{
		cos*m.m[0] + sin*m.m[1], -sin*m.m[0] + cos*m.m[1], m.m[2], m.m[3],
		cos*m.m[4] + sin*m.m[5], -sin*m.m[4] + cos*m.m[5], m.m[6], m.m[7],
		cos*m.m[8] + sin*m.m[9], -sin*m.m[8] + cos*m.m[9], m.m[10], m.m[11],
		cos*m.m[12] + sin*m.m[13], -sin*m.m[12] + cos*m.m[13], m.m[14], m.m[15],
	}
	m.m = n
}

func (m *Matrix) Scale(x, y, z float32) {
	// x, 0, 0, 0
	// 0, y, 0, 0
	// 0, 0, z, 0
	// 0, 0, 0, 1
	// compute m*t
	n := [16]float32{
		x * m.m[0], y * m.m[1], z * m.m[2], m.m[3],
		x * m.m[4], y * m.m[5], z * m.m[6], m.m[7],
		x * m.m[8], y * m.m[9], z * m.m[10], m.m[11],
		x * m.m[12], y * m.m[13], z * m.m[14], m.m[15],
	}
	m.m = n
}

// Transform applies the matrix to a point (w assumed 1) and returns the
// perspective divided result.
func (m *Matrix) Transform(x, y, z float32) (float32, float32, float32) {
	tx := m.m[0]*x + m.m[1]*y + m.m[2]*z + m.m[3]
	ty := m.m[4]*x + m.m[5]*y + m.m[6]*z + m.m[7]
	tz := m.m[8]*x + m.m[9]*y + m.m[10]*z + m.m[11]
	tw := m.m[12]*x + m.m[13]*y + m.m[14]*z + m.m[15]
	if tw != 0 && tw != 1 {
		return tx / tw, ty / tw, tz / tw
	}
	return tx, ty, tz
}
