package state

import "github.com/gogpu/flow/geom"

// adjustCull narrows the device cull rect for a clip with the given local
// shape bounds. The result is conservative: it may be larger than the true
// visible area, never smaller.
func (s *LayerStateStack) adjustCull(shape geom.Rect, op geom.ClipOp, isAA bool) {
	if s.cull.IsEmpty() || s.matrix.HasPerspective() {
		return
	}
	if !shape.IsFinite() {
		return
	}
	switch op {
	case geom.ClipIntersect:
		s.intersectCull(shape, isAA)
	case geom.ClipDifference:
		s.differenceCull(shape, isAA)
	}
}

func (s *LayerStateStack) intersectCull(shape geom.Rect, isAA bool) {
	if shape.IsEmpty() {
		s.cull = geom.EmptyRect()
		return
	}
	dev := s.matrix.MapRect(shape)
	if isAA {
		dev = dev.RoundOut()
	}
	if r, ok := s.cull.Intersect(dev); ok {
		s.cull = r
	} else {
		s.cull = geom.EmptyRect()
	}
}

// differenceCull only narrows when the removed rect slices a whole edge
// off the cull rect. Every other shape, including one that misses the cull
// rect, leaves it alone. Edges only ever move inward.
func (s *LayerStateStack) differenceCull(shape geom.Rect, isAA bool) {
	if shape.IsEmpty() || !s.matrix.RectStaysRect() {
		return
	}
	r := s.matrix.MapRect(shape)
	if isAA {
		r = r.RoundIn()
		if r.IsEmpty() {
			return
		}
	}

	c := s.cull
	if !r.Intersects(c) {
		return
	}
	switch {
	case r.Left <= c.Left && r.Right >= c.Right:
		top, bottom := c.Top, c.Bottom
		if r.Top <= top {
			top = max(top, r.Bottom)
		}
		if r.Bottom >= bottom {
			bottom = min(bottom, r.Top)
		}
		if top < bottom {
			c.Top, c.Bottom = top, bottom
		} else {
			c = geom.EmptyRect()
		}
	case r.Top <= c.Top && r.Bottom >= c.Bottom:
		left, right := c.Left, c.Right
		if r.Left <= left {
			left = max(left, r.Right)
		}
		if r.Right >= right {
			right = min(right, r.Left)
		}
		if left < right {
			c.Left, c.Right = left, right
		} else {
			c = geom.EmptyRect()
		}
	}
	s.cull = c
}
