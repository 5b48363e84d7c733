package geom

import (
	"math"

	"github.com/gogpu/gg"
	"golang.org/x/image/math/f64"
)

// Matrix is a 4x4 transformation matrix in row-major order.
//
//	| m0  m1  m2  m3  |
//	| m4  m5  m6  m7  |
//	| m8  m9  m10 m11 |
//	| m12 m13 m14 m15 |
//
// Points are column vectors, so x' = m0*x + m1*y + m2*z + m3. The bottom
// row carries perspective; it is (0, 0, 0, 1) for affine matrices.
//
// The zero value is not the identity; use Identity.
type Matrix struct {
	m f64.Mat4
}

// Identity returns the identity matrix.
func Identity() Matrix {
	return Matrix{m: f64.Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// FromMat4 wraps a row-major 4x4 matrix.
func FromMat4(m f64.Mat4) Matrix {
	return Matrix{m: m}
}

// FromAffine converts a gg 2D affine matrix.
func FromAffine(a gg.Matrix) Matrix {
	return Matrix{m: f64.Mat4{
		a.A, a.B, 0, a.C,
		a.D, a.E, 0, a.F,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// FromAff3 converts an x/image affine matrix.
func FromAff3(a f64.Aff3) Matrix {
	return Matrix{m: f64.Mat4{
		a[0], a[1], 0, a[2],
		a[3], a[4], 0, a[5],
		0, 0, 1, 0,
		0, 0, 0, 1,
	}}
}

// Translation returns a translation matrix.
func Translation(dx, dy float64) Matrix {
	m := Identity()
	m.m[3] = dx
	m.m[7] = dy
	return m
}

// Scaling returns a scale matrix.
func Scaling(sx, sy float64) Matrix {
	m := Identity()
	m.m[0] = sx
	m.m[5] = sy
	return m
}

// Rotation returns a rotation matrix about the origin (angle in radians).
func Rotation(angle float64) Matrix {
	cos, sin := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m.m[0], m.m[1] = cos, -sin
	m.m[4], m.m[5] = sin, cos
	return m
}

// Perspective returns a matrix that divides by 1 + px*x + py*y.
func Perspective(px, py float64) Matrix {
	m := Identity()
	m.m[12] = px
	m.m[13] = py
	return m
}

// Mat4 returns the row-major values.
func (m Matrix) Mat4() f64.Mat4 {
	return m.m
}

// At returns the value at row r, column c.
func (m Matrix) At(r, c int) float64 {
	return m.m[r*4+c]
}

// Concat returns m * o: o is applied to points first, then m.
func (m Matrix) Concat(o Matrix) Matrix {
	var out f64.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out[r*4+c] = m.m[r*4+0]*o.m[0*4+c] +
				m.m[r*4+1]*o.m[1*4+c] +
				m.m[r*4+2]*o.m[2*4+c] +
				m.m[r*4+3]*o.m[3*4+c]
		}
	}
	return Matrix{m: out}
}

// PreTranslate returns m * Translation(dx, dy).
func (m Matrix) PreTranslate(dx, dy float64) Matrix {
	out := m
	for r := 0; r < 4; r++ {
		out.m[r*4+3] += m.m[r*4+0]*dx + m.m[r*4+1]*dy
	}
	return out
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool {
	return m.m == Identity().m
}

// HasPerspective reports whether the bottom row differs from (0, 0, 0, 1).
func (m Matrix) HasPerspective() bool {
	return m.m[12] != 0 || m.m[13] != 0 || m.m[14] != 0 || m.m[15] != 1
}

// IsAffine reports whether m can be represented by a 2D affine matrix
// without losing information.
func (m Matrix) IsAffine() bool {
	return !m.HasPerspective() &&
		m.m[2] == 0 && m.m[6] == 0 &&
		m.m[8] == 0 && m.m[9] == 0 && m.m[10] == 1 && m.m[11] == 0
}

// RectStaysRect reports whether m maps axis-aligned rectangles to
// axis-aligned rectangles.
func (m Matrix) RectStaysRect() bool {
	if m.HasPerspective() {
		return false
	}
	scaleOnly := m.m[1] == 0 && m.m[4] == 0 && m.m[0] != 0 && m.m[5] != 0
	swapOnly := m.m[0] == 0 && m.m[5] == 0 && m.m[1] != 0 && m.m[4] != 0
	return scaleOnly || swapOnly
}

// Translation returns the x and y translation components.
func (m Matrix) Translation() (tx, ty float64) {
	return m.m[3], m.m[7]
}

// Affine returns the 2D affine part of m as a gg matrix. Perspective and z
// terms are dropped.
func (m Matrix) Affine() gg.Matrix {
	return gg.Matrix{
		A: m.m[0], B: m.m[1], C: m.m[3],
		D: m.m[4], E: m.m[5], F: m.m[7],
	}
}

// Aff3 returns the 2D affine part of m as an x/image affine matrix.
func (m Matrix) Aff3() f64.Aff3 {
	return f64.Aff3{m.m[0], m.m[1], m.m[3], m.m[4], m.m[5], m.m[7]}
}

// determinant2D returns the determinant of the homogeneous 2D part
// (rows and columns 0, 1 and 3).
func (m Matrix) determinant2D() float64 {
	a, b, c := m.m[0], m.m[1], m.m[3]
	d, e, f := m.m[4], m.m[5], m.m[7]
	g, h, i := m.m[12], m.m[13], m.m[15]
	return a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
}

// IsInvertible reports whether m is invertible as a 2D transform.
func (m Matrix) IsInvertible() bool {
	det := m.determinant2D()
	return det != 0 && isFinite(det)
}

// Invert returns the inverse of the 2D part of m. The z row and column of
// the result are those of the identity. The second result is false when m
// is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.determinant2D()
	if det == 0 || !isFinite(det) {
		return Identity(), false
	}
	a, b, c := m.m[0], m.m[1], m.m[3]
	d, e, f := m.m[4], m.m[5], m.m[7]
	g, h, i := m.m[12], m.m[13], m.m[15]
	inv := 1 / det

	out := Identity()
	out.m[0] = (e*i - f*h) * inv
	out.m[1] = (c*h - b*i) * inv
	out.m[3] = (b*f - c*e) * inv
	out.m[4] = (f*g - d*i) * inv
	out.m[5] = (a*i - c*g) * inv
	out.m[7] = (c*d - a*f) * inv
	out.m[12] = (d*h - e*g) * inv
	out.m[13] = (b*g - a*h) * inv
	out.m[15] = (a*e - b*d) * inv
	return out, true
}

// MapPoint transforms the point (x, y, 0) and divides by w.
func (m Matrix) MapPoint(x, y float64) (float64, float64) {
	px := m.m[0]*x + m.m[1]*y + m.m[3]
	py := m.m[4]*x + m.m[5]*y + m.m[7]
	w := m.m[12]*x + m.m[13]*y + m.m[15]
	if w != 1 && w != 0 {
		px /= w
		py /= w
	}
	return px, py
}

// MapRect returns the bounds of r's four corners under m. When perspective
// places a corner behind the viewer the result is GiantRect.
func (m Matrix) MapRect(r Rect) Rect {
	if r.IsEmpty() {
		return EmptyRect()
	}
	if m.HasPerspective() {
		for _, c := range [4][2]float64{{r.Left, r.Top}, {r.Right, r.Top}, {r.Right, r.Bottom}, {r.Left, r.Bottom}} {
			if m.m[12]*c[0]+m.m[13]*c[1]+m.m[15] <= 0 {
				return GiantRect()
			}
		}
	}
	x0, y0 := m.MapPoint(r.Left, r.Top)
	x1, y1 := m.MapPoint(r.Right, r.Top)
	x2, y2 := m.MapPoint(r.Right, r.Bottom)
	x3, y3 := m.MapPoint(r.Left, r.Bottom)
	return Rect{
		Left:   math.Min(math.Min(x0, x1), math.Min(x2, x3)),
		Top:    math.Min(math.Min(y0, y1), math.Min(y2, y3)),
		Right:  math.Max(math.Max(x0, x1), math.Max(x2, x3)),
		Bottom: math.Max(math.Max(y0, y1), math.Max(y2, y3)),
	}
}

// Integral returns m with its translation rounded to whole pixels. Snapping
// only applies to scale/translate matrices; the second result is false when
// m is not eligible or is already integral.
func (m Matrix) Integral() (Matrix, bool) {
	if m.m[1] != 0 || m.m[2] != 0 {
		return m, false
	}
	if m.m[4] != 0 || m.m[6] != 0 {
		return m, false
	}
	if m.HasPerspective() {
		return m, false
	}
	tx, ty := m.m[3], m.m[7]
	rx, ry := math.Round(tx), math.Round(ty)
	if rx == tx && ry == ty {
		return m, false
	}
	out := m
	out.m[3] = rx
	out.m[7] = ry
	return out, true
}

// Equal reports whether m and o hold identical values.
func (m Matrix) Equal(o Matrix) bool {
	return m.m == o.m
}
