package paint

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/geom"
)

func TestNewPaint(t *testing.T) {
	p := New()
	if !p.IsOpaque() {
		t.Error("New() is not opaque")
	}
	if p.HasFilters() {
		t.Error("New() has filters")
	}
	var nilPaint *Paint
	if got := nilPaint.ClampedOpacity(); got != 1 {
		t.Errorf("nil ClampedOpacity() = %v, want 1", got)
	}
}

func TestClampedOpacity(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0}, {0, 0}, {0.25, 0.25}, {1, 1}, {3, 1},
	}
	for _, tt := range tests {
		p := Paint{Opacity: tt.in}
		if got := p.ClampedOpacity(); got != tt.want {
			t.Errorf("ClampedOpacity(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMatrixColorFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter ColorFilter
		in     gg.RGBA
		want   gg.RGBA
	}{
		{"invert", Invert(), gg.RGBA{R: 1, G: 0.25, B: 0, A: 1}, gg.RGBA{R: 0, G: 0.75, B: 1, A: 1}},
		{"grayscale white", Grayscale(), gg.RGBA{R: 1, G: 1, B: 1, A: 0.5}, gg.RGBA{R: 1, G: 1, B: 1, A: 0.5}},
		{"modulate", Modulate(gg.RGBA{R: 0.5, G: 1, B: 0, A: 1}), gg.RGBA{R: 1, G: 1, B: 1, A: 1}, gg.RGBA{R: 0.5, G: 1, B: 0, A: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.FilterColor(tt.in)
			if !colorNearly(got, tt.want) {
				t.Errorf("FilterColor(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatrixColorFilterImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	Invert().FilterImage(img)

	if got := img.RGBAAt(0, 0); got != (color.RGBA{G: 255, B: 255, A: 255}) {
		t.Errorf("pixel (0,0) = %v, want cyan", got)
	}
	if got := img.RGBAAt(1, 0); got != (color.RGBA{}) {
		t.Errorf("transparent pixel = %v, want untouched", got)
	}
}

func TestOffsetFilter(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	dst := Offset(2, 1).FilterImage(src)

	if got := dst.RGBAAt(2, 1); got.R != 255 {
		t.Errorf("shifted pixel = %v, want red", got)
	}
	if got := dst.RGBAAt(0, 0); got.A != 0 {
		t.Errorf("origin pixel = %v, want transparent", got)
	}
	if got, want := Offset(2, 1).MapBounds(geom.LTRB(0, 0, 4, 4)), geom.LTRB(2, 1, 6, 5); got != want {
		t.Errorf("MapBounds() = %v, want %v", got, want)
	}
}

func TestBlurFilter(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for x := 0; x < 8; x++ {
		for y := 0; y < 16; y++ {
			src.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
		}
	}
	dst := Blur(4, 4).FilterImage(src)
	if dst.Bounds() != src.Bounds() {
		t.Fatalf("Bounds() = %v, want %v", dst.Bounds(), src.Bounds())
	}
	// The hard edge between columns 7 and 8 must soften.
	edge := dst.RGBAAt(8, 8).A
	if edge == 0 || edge == 255 {
		t.Errorf("edge alpha = %d, want partial coverage", edge)
	}

	if got, want := Blur(2, 1).MapBounds(geom.LTRB(0, 0, 10, 10)), geom.LTRB(-6, -3, 16, 13); got != want {
		t.Errorf("MapBounds() = %v, want %v", got, want)
	}
}

func TestBlurZeroSigmaCopies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})
	dst := Blur(0, 0).FilterImage(src)
	if dst == src {
		t.Fatal("FilterImage() returned its input")
	}
	if dst.RGBAAt(1, 1) != src.RGBAAt(1, 1) {
		t.Errorf("pixel = %v, want %v", dst.RGBAAt(1, 1), src.RGBAAt(1, 1))
	}
}

func TestCompose(t *testing.T) {
	if got := Compose(nil, nil); got != nil {
		t.Errorf("Compose(nil, nil) = %v, want nil", got)
	}
	off := Offset(1, 0)
	if got := Compose(off, nil); got != off {
		t.Errorf("Compose(off, nil) = %v, want %v", got, off)
	}
	c := Compose(Offset(1, 0), Blur(1, 1))
	if got, want := c.MapBounds(geom.LTRB(0, 0, 10, 10)), geom.LTRB(-2, -3, 14, 13); got != want {
		t.Errorf("MapBounds() = %v, want %v", got, want)
	}
}

func colorNearly(a, b gg.RGBA) bool {
	const eps = 1e-9
	d := func(x, y float64) bool { return x-y < eps && y-x < eps }
	return d(a.R, b.R) && d(a.G, b.G) && d(a.B, b.B) && d(a.A, b.A)
}
