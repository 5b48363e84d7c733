package geom

import (
	"math"

	"github.com/gogpu/gg"
)

// Path is a vector outline used for clipping. It wraps a gg.Path so the
// same geometry can be handed to a gg.Context unchanged.
type Path struct {
	p *gg.Path
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{p: gg.NewPath()}
}

// PathFrom wraps an existing gg path. The path is shared, not copied.
func PathFrom(p *gg.Path) *Path {
	if p == nil {
		p = gg.NewPath()
	}
	return &Path{p: p}
}

// RectPath returns a closed path tracing r clockwise.
func RectPath(r Rect) *Path {
	p := NewPath()
	p.p.Rectangle(r.Left, r.Top, r.Width(), r.Height())
	return p
}

// RRectPath returns a closed path tracing rr.
func RRectPath(rr RRect) *Path {
	if rr.IsRect() || rr.EffectiveRadius() == 0 {
		return RectPath(rr.Rect)
	}
	p := NewPath()
	r := rr.Rect
	p.p.RoundedRectangle(r.Left, r.Top, r.Width(), r.Height(), rr.EffectiveRadius())
	return p
}

// GG returns the underlying gg path.
func (p *Path) GG() *gg.Path {
	return p.p
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) { p.p.MoveTo(x, y) }

// LineTo adds a line segment.
func (p *Path) LineTo(x, y float64) { p.p.LineTo(x, y) }

// QuadTo adds a quadratic curve.
func (p *Path) QuadTo(cx, cy, x, y float64) { p.p.QuadraticTo(cx, cy, x, y) }

// CubicTo adds a cubic curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) { p.p.CubicTo(c1x, c1y, c2x, c2y, x, y) }

// Close closes the current subpath.
func (p *Path) Close() { p.p.Close() }

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || p.p == nil || len(p.p.Elements()) == 0
}

// Bounds returns the bounds of all points and control points. This is
// conservative: curves never leave their control hull.
func (p *Path) Bounds() Rect {
	if p.IsEmpty() {
		return EmptyRect()
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	add := func(pt gg.Point) {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	for _, el := range p.p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			add(e.Point)
		case gg.LineTo:
			add(e.Point)
		case gg.QuadTo:
			add(e.Control)
			add(e.Point)
		case gg.CubicTo:
			add(e.Control1)
			add(e.Control2)
			add(e.Point)
		}
	}
	if minX > maxX || minY > maxY {
		return EmptyRect()
	}
	return Rect{Left: minX, Top: minY, Right: maxX, Bottom: maxY}
}

// IsRect reports whether the path is a single axis-aligned rectangle and
// returns it. Only straight-line outlines with four corners qualify.
func (p *Path) IsRect() (Rect, bool) {
	if p.IsEmpty() {
		return EmptyRect(), false
	}
	var pts []gg.Point
	for i, el := range p.p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			if i != 0 {
				return EmptyRect(), false
			}
			pts = append(pts, e.Point)
		case gg.LineTo:
			pts = append(pts, e.Point)
		case gg.Close:
			if i != len(p.p.Elements())-1 {
				return EmptyRect(), false
			}
		default:
			return EmptyRect(), false
		}
	}
	// A trailing point equal to the start is an explicit close.
	if len(pts) == 5 && pts[4] == pts[0] {
		pts = pts[:4]
	}
	if len(pts) != 4 {
		return EmptyRect(), false
	}
	for i := 0; i < 4; i++ {
		a, b := pts[i], pts[(i+1)%4]
		if a.X != b.X && a.Y != b.Y {
			return EmptyRect(), false
		}
	}
	r := p.Bounds()
	if r.IsEmpty() {
		return EmptyRect(), false
	}
	for _, pt := range pts {
		onX := pt.X == r.Left || pt.X == r.Right
		onY := pt.Y == r.Top || pt.Y == r.Bottom
		if !onX || !onY {
			return EmptyRect(), false
		}
	}
	return r, true
}

// Transform returns a copy of the path mapped through the affine part of m.
func (p *Path) Transform(m Matrix) *Path {
	if p.IsEmpty() {
		return NewPath()
	}
	return &Path{p: p.p.Transform(m.Affine())}
}

// SignedArea returns the shoelace area of the polygon formed by the path's
// on-curve points. Positive means clockwise in a y-down space.
func (p *Path) SignedArea() float64 {
	if p.IsEmpty() {
		return 0
	}
	var area float64
	var start, prev gg.Point
	open := false
	closeSub := func() {
		if open {
			area += prev.X*start.Y - start.X*prev.Y
		}
		open = false
	}
	step := func(pt gg.Point) {
		area += prev.X*pt.Y - pt.X*prev.Y
		prev = pt
	}
	for _, el := range p.p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			closeSub()
			start, prev, open = e.Point, e.Point, true
		case gg.LineTo:
			step(e.Point)
		case gg.QuadTo:
			step(e.Point)
		case gg.CubicTo:
			step(e.Point)
		case gg.Close:
			closeSub()
		}
	}
	closeSub()
	return area / 2
}

// Reversed returns a copy of the path with every subpath traced in the
// opposite direction. Under the non-zero rule a reversed subpath cancels
// the winding of its original.
func (p *Path) Reversed() *Path {
	out := NewPath()
	if p.IsEmpty() {
		return out
	}

	type segment struct {
		el   gg.PathElement
		from gg.Point
	}
	var (
		segs   []segment
		start  gg.Point
		cur    gg.Point
		closed bool
		active bool
	)
	flush := func() {
		if !active {
			return
		}
		out.p.MoveTo(cur.X, cur.Y)
		for i := len(segs) - 1; i >= 0; i-- {
			s := segs[i]
			switch e := s.el.(type) {
			case gg.LineTo:
				out.p.LineTo(s.from.X, s.from.Y)
			case gg.QuadTo:
				out.p.QuadraticTo(e.Control.X, e.Control.Y, s.from.X, s.from.Y)
			case gg.CubicTo:
				out.p.CubicTo(e.Control2.X, e.Control2.Y, e.Control1.X, e.Control1.Y, s.from.X, s.from.Y)
			}
		}
		if closed {
			out.p.Close()
		}
		segs = segs[:0]
		closed, active = false, false
	}
	for _, el := range p.p.Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			flush()
			start, cur, active = e.Point, e.Point, true
		case gg.LineTo:
			segs = append(segs, segment{el: e, from: cur})
			cur = e.Point
		case gg.QuadTo:
			segs = append(segs, segment{el: e, from: cur})
			cur = e.Point
		case gg.CubicTo:
			segs = append(segs, segment{el: e, from: cur})
			cur = e.Point
		case gg.Close:
			if cur != start {
				segs = append(segs, segment{el: gg.LineTo{Point: start}, from: cur})
				cur = start
			}
			closed = true
			flush()
		}
	}
	flush()
	return out
}
