package geom

// RRect is a rectangle with uniformly rounded corners.
type RRect struct {
	Rect   Rect
	Radius float64
}

// RRectOf creates a rounded rectangle. A non-positive radius yields a plain
// rectangle.
func RRectOf(r Rect, radius float64) RRect {
	if radius < 0 {
		radius = 0
	}
	return RRect{Rect: r, Radius: radius}
}

// IsEmpty reports whether the bounds are empty.
func (rr RRect) IsEmpty() bool {
	return rr.Rect.IsEmpty()
}

// IsRect reports whether the rounded rectangle has square corners, in which
// case it covers exactly Rect.
func (rr RRect) IsRect() bool {
	return rr.Radius <= 0 && !rr.Rect.IsEmpty()
}

// Bounds returns the bounding rectangle.
func (rr RRect) Bounds() Rect {
	return rr.Rect
}

// EffectiveRadius returns the corner radius clamped to half the shorter side.
func (rr RRect) EffectiveRadius() float64 {
	r := rr.Radius
	if half := rr.Rect.Width() / 2; r > half {
		r = half
	}
	if half := rr.Rect.Height() / 2; r > half {
		r = half
	}
	if r < 0 {
		return 0
	}
	return r
}
