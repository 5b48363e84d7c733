package paint

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/flow/geom"
)

// ImageFilter transforms a whole rendered group, possibly moving pixels or
// sampling neighbours. Filter parameters are in device pixels.
//
// Filters are immutable once created and may be shared between layers and
// stack entries.
type ImageFilter interface {
	// FilterImage returns a filtered copy of src with the same bounds.
	FilterImage(src *image.RGBA) *image.RGBA

	// MapBounds returns the area touched by the filter output when the
	// input covers r.
	MapBounds(r geom.Rect) geom.Rect
}

// BlurFilter approximates a gaussian blur by resampling through a reduced
// image.
type BlurFilter struct {
	SigmaX, SigmaY float64
}

// Blur creates a blur filter.
func Blur(sigmaX, sigmaY float64) *BlurFilter {
	return &BlurFilter{SigmaX: sigmaX, SigmaY: sigmaY}
}

// MapBounds implements ImageFilter. The reach is three sigmas.
func (f *BlurFilter) MapBounds(r geom.Rect) geom.Rect {
	if r.IsEmpty() {
		return r
	}
	return geom.Rect{
		Left:   r.Left - 3*f.SigmaX,
		Top:    r.Top - 3*f.SigmaY,
		Right:  r.Right + 3*f.SigmaX,
		Bottom: r.Bottom + 3*f.SigmaY,
	}
}

// FilterImage implements ImageFilter.
func (f *BlurFilter) FilterImage(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	if b.Empty() || (f.SigmaX <= 0 && f.SigmaY <= 0) {
		return cloneRGBA(src)
	}
	sw := reducedSize(b.Dx(), f.SigmaX)
	sh := reducedSize(b.Dy(), f.SigmaY)
	small := image.NewRGBA(image.Rect(0, 0, sw, sh))
	draw.ApproxBiLinear.Scale(small, small.Bounds(), src, b, draw.Src, nil)
	dst := image.NewRGBA(b)
	draw.BiLinear.Scale(dst, b, small, small.Bounds(), draw.Src, nil)
	return dst
}

func reducedSize(n int, sigma float64) int {
	if sigma <= 1 {
		return n
	}
	return max(1, int(math.Ceil(float64(n)/sigma)))
}

// OffsetFilter shifts the group by a whole number of pixels.
type OffsetFilter struct {
	DX, DY float64
}

// Offset creates an offset filter.
func Offset(dx, dy float64) *OffsetFilter {
	return &OffsetFilter{DX: dx, DY: dy}
}

// MapBounds implements ImageFilter.
func (f *OffsetFilter) MapBounds(r geom.Rect) geom.Rect {
	return r.Offset(f.DX, f.DY)
}

// FilterImage implements ImageFilter.
func (f *OffsetFilter) FilterImage(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	d := image.Pt(int(math.Round(f.DX)), int(math.Round(f.DY)))
	draw.Draw(dst, b.Add(d), src, b.Min, draw.Src)
	return dst
}

// ColorFilterImage adapts a ColorFilter to the ImageFilter interface.
type ColorFilterImage struct {
	Filter ColorFilter
}

// FromColorFilter wraps cf as an image filter.
func FromColorFilter(cf ColorFilter) *ColorFilterImage {
	return &ColorFilterImage{Filter: cf}
}

// MapBounds implements ImageFilter.
func (f *ColorFilterImage) MapBounds(r geom.Rect) geom.Rect {
	return r
}

// FilterImage implements ImageFilter.
func (f *ColorFilterImage) FilterImage(src *image.RGBA) *image.RGBA {
	dst := cloneRGBA(src)
	if f.Filter != nil {
		f.Filter.FilterImage(dst)
	}
	return dst
}

// ComposeFilter runs Inner and then Outer.
type ComposeFilter struct {
	Outer, Inner ImageFilter
}

// Compose returns a filter equivalent to outer(inner(src)). Nil arguments
// are skipped.
func Compose(outer, inner ImageFilter) ImageFilter {
	switch {
	case outer == nil:
		return inner
	case inner == nil:
		return outer
	}
	return &ComposeFilter{Outer: outer, Inner: inner}
}

// MapBounds implements ImageFilter.
func (f *ComposeFilter) MapBounds(r geom.Rect) geom.Rect {
	return f.Outer.MapBounds(f.Inner.MapBounds(r))
}

// FilterImage implements ImageFilter.
func (f *ComposeFilter) FilterImage(src *image.RGBA) *image.RGBA {
	return f.Outer.FilterImage(f.Inner.FilterImage(src))
}

func cloneRGBA(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}
