package canvas

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/geom"
)

// ClipRect clips to r. gg clips rectangles on pixel edges, so isAA only
// matters when the matrix rotates r into a path clip.
func (c *Canvas) ClipRect(r geom.Rect, op geom.ClipOp, isAA bool) {
	if op == geom.ClipDifference {
		c.clipOut(geom.RectPath(r))
		return
	}
	c.clipRect(r)
}

// ClipRRect clips to rr.
func (c *Canvas) ClipRRect(rr geom.RRect, op geom.ClipOp, isAA bool) {
	if rr.IsRect() {
		c.ClipRect(rr.Rect, op, isAA)
		return
	}
	if op == geom.ClipDifference {
		c.clipOut(geom.RRectPath(rr))
		return
	}
	c.clipPath(geom.RRectPath(rr))
}

// ClipPath clips to p using the non-zero rule.
func (c *Canvas) ClipPath(p *geom.Path, op geom.ClipOp, isAA bool) {
	if op == geom.ClipDifference {
		c.clipOut(p)
		return
	}
	c.clipPath(p)
}

func (c *Canvas) clipRect(r geom.Rect) {
	m := c.dc.GetTransform()
	axisAligned := (m.B == 0 && m.D == 0) || (m.A == 0 && m.E == 0)
	if axisAligned {
		c.dc.ClipRect(r.Left, r.Top, r.Width(), r.Height())
		return
	}
	c.clipPath(geom.RectPath(r))
}

func (c *Canvas) clipPath(p *geom.Path) {
	c.dc.ClearPath()
	c.appendPath(p)
	c.dc.Clip()
}

// clipOut clips to everything outside p. gg only intersects clips, so the
// outside is built as the surface rect with p wound the other way.
func (c *Canvas) clipOut(p *geom.Path) {
	if p.IsEmpty() {
		return
	}
	outer := geom.RectPath(c.Bounds())
	inner := p.Transform(c.Matrix())
	if (inner.SignedArea() > 0) == (outer.SignedArea() > 0) {
		inner = inner.Reversed()
	}

	m := c.dc.GetTransform()
	c.dc.Identity()
	c.dc.ClearPath()
	c.appendPath(outer)
	c.appendPath(inner)
	c.dc.Clip()
	c.dc.SetTransform(m)
}

// appendPath adds p to the context path through the current matrix.
func (c *Canvas) appendPath(p *geom.Path) {
	if p.IsEmpty() {
		return
	}
	for _, el := range p.GG().Elements() {
		switch e := el.(type) {
		case gg.MoveTo:
			c.dc.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			c.dc.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			c.dc.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			c.dc.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			c.dc.ClosePath()
		}
	}
}
