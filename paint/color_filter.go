package paint

import (
	"image"
	"math"

	"github.com/gogpu/gg"
)

// ColorFilter transforms pixel colors independently of their neighbours.
//
// Filters are immutable once created and may be shared between layers and
// stack entries.
type ColorFilter interface {
	// FilterImage rewrites the pixels of img in place.
	FilterImage(img *image.RGBA)

	// FilterColor returns the filtered version of a single color.
	FilterColor(c gg.RGBA) gg.RGBA
}

// MatrixColorFilter applies a 4x5 row-major color matrix to RGBA in
// [0, 1]. The fifth column is a constant offset:
//
//	R' = m0*R + m1*G + m2*B + m3*A + m4
//	G' = m5*R + ...
type MatrixColorFilter struct {
	m [20]float64
}

// NewMatrixColorFilter creates a filter from a 4x5 row-major matrix.
func NewMatrixColorFilter(m [20]float64) *MatrixColorFilter {
	return &MatrixColorFilter{m: m}
}

// Grayscale returns a filter that maps colors to Rec. 709 luminance.
func Grayscale() *MatrixColorFilter {
	const r, g, b = 0.2126, 0.7152, 0.0722
	return NewMatrixColorFilter([20]float64{
		r, g, b, 0, 0,
		r, g, b, 0, 0,
		r, g, b, 0, 0,
		0, 0, 0, 1, 0,
	})
}

// Invert returns a filter that inverts color channels and keeps alpha.
func Invert() *MatrixColorFilter {
	return NewMatrixColorFilter([20]float64{
		-1, 0, 0, 0, 1,
		0, -1, 0, 0, 1,
		0, 0, -1, 0, 1,
		0, 0, 0, 1, 0,
	})
}

// Modulate returns a filter that multiplies each channel by c.
func Modulate(c gg.RGBA) *MatrixColorFilter {
	return NewMatrixColorFilter([20]float64{
		c.R, 0, 0, 0, 0,
		0, c.G, 0, 0, 0,
		0, 0, c.B, 0, 0,
		0, 0, 0, c.A, 0,
	})
}

// Matrix returns the filter's coefficients.
func (f *MatrixColorFilter) Matrix() [20]float64 {
	return f.m
}

// FilterColor implements ColorFilter.
func (f *MatrixColorFilter) FilterColor(c gg.RGBA) gg.RGBA {
	m := &f.m
	return gg.RGBA{
		R: clamp01(m[0]*c.R + m[1]*c.G + m[2]*c.B + m[3]*c.A + m[4]),
		G: clamp01(m[5]*c.R + m[6]*c.G + m[7]*c.B + m[8]*c.A + m[9]),
		B: clamp01(m[10]*c.R + m[11]*c.G + m[12]*c.B + m[13]*c.A + m[14]),
		A: clamp01(m[15]*c.R + m[16]*c.G + m[17]*c.B + m[18]*c.A + m[19]),
	}
}

// FilterImage implements ColorFilter. Fully transparent pixels stay
// transparent so the filter does not bleed outside drawn content.
func (f *MatrixColorFilter) FilterImage(img *image.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for i := 0; i+3 < len(row); i += 4 {
			if row[i+3] == 0 {
				continue
			}
			c := f.FilterColor(gg.RGBA{
				R: float64(row[i]) / 255,
				G: float64(row[i+1]) / 255,
				B: float64(row[i+2]) / 255,
				A: float64(row[i+3]) / 255,
			})
			row[i] = to8(c.R)
			row[i+1] = to8(c.G)
			row[i+2] = to8(c.B)
			row[i+3] = to8(c.A)
		}
	}
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
