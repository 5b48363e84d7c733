package geom

import (
	"fmt"
	"image"
	"math"
)

// GiantDimension bounds the rectangle returned by GiantRect. It is large
// enough to stand for "unbounded" while staying finite through matrix
// mapping.
const GiantDimension = 1e9

// Rect is an axis-aligned rectangle stored as its edges.
// A Rect is empty when Left >= Right or Top >= Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// LTRB creates a rectangle from its edges.
func LTRB(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// XYWH creates a rectangle from its origin and size.
func XYWH(x, y, w, h float64) Rect {
	return Rect{Left: x, Top: y, Right: x + w, Bottom: y + h}
}

// EmptyRect returns the canonical empty rectangle.
func EmptyRect() Rect {
	return Rect{}
}

// GiantRect returns the rectangle used for an unbounded cull region.
func GiantRect() Rect {
	return Rect{
		Left: -GiantDimension, Top: -GiantDimension,
		Right: GiantDimension, Bottom: GiantDimension,
	}
}

// FromImageRect converts an integer rectangle.
func FromImageRect(r image.Rectangle) Rect {
	return Rect{
		Left: float64(r.Min.X), Top: float64(r.Min.Y),
		Right: float64(r.Max.X), Bottom: float64(r.Max.Y),
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the height of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// IsEmpty reports whether the rectangle encloses no area.
// NaN edges are treated as empty.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// IsFinite reports whether all edges are finite numbers.
func (r Rect) IsFinite() bool {
	return isFinite(r.Left) && isFinite(r.Top) && isFinite(r.Right) && isFinite(r.Bottom)
}

// IsGiant reports whether r covers the whole GiantRect.
func (r Rect) IsGiant() bool {
	return r.Contains(GiantRect())
}

// Intersect returns the overlap of r and o. The second result is false and
// the rectangle empty when they do not overlap.
func (r Rect) Intersect(o Rect) (Rect, bool) {
	out := Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if out.IsEmpty() {
		return EmptyRect(), false
	}
	return out, true
}

// Intersects reports whether r and o share a region of non-zero area.
// Rectangles touching only along an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Left < o.Right && o.Left < r.Right &&
		r.Top < o.Bottom && o.Top < r.Bottom
}

// Contains reports whether o lies entirely within r.
// An empty o is never contained.
func (r Rect) Contains(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.Left <= o.Left && r.Top <= o.Top &&
		r.Right >= o.Right && r.Bottom >= o.Bottom
}

// Union returns the smallest rectangle containing r and o.
// Empty operands are ignored.
func (r Rect) Union(o Rect) Rect {
	if o.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return o
	}
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Outset returns r grown by d on every side. A negative d shrinks it.
func (r Rect) Outset(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// RoundOut returns the smallest rectangle with integer edges containing r.
func (r Rect) RoundOut() Rect {
	return Rect{
		Left:   math.Floor(r.Left),
		Top:    math.Floor(r.Top),
		Right:  math.Ceil(r.Right),
		Bottom: math.Ceil(r.Bottom),
	}
}

// RoundIn returns the largest rectangle with integer edges inside r.
func (r Rect) RoundIn() Rect {
	return Rect{
		Left:   math.Ceil(r.Left),
		Top:    math.Ceil(r.Top),
		Right:  math.Floor(r.Right),
		Bottom: math.Floor(r.Bottom),
	}
}

// ImageRect returns the rounded-out integer rectangle.
func (r Rect) ImageRect() image.Rectangle {
	o := r.RoundOut()
	return image.Rect(int(o.Left), int(o.Top), int(o.Right), int(o.Bottom))
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g, %g, %g, %g)", r.Left, r.Top, r.Right, r.Bottom)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
