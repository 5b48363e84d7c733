package layer

import (
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/state"
)

// ContainerLayer groups children. Children paint in insertion order.
type ContainerLayer struct {
	base
	children    []Layer
	childBounds geom.Rect
	childFlags  state.Flags
}

// NewContainerLayer creates an empty container.
func NewContainerLayer() *ContainerLayer {
	return &ContainerLayer{base: newBase(), childBounds: geom.EmptyRect()}
}

// Add appends a child.
func (c *ContainerLayer) Add(l Layer) {
	c.children = append(c.children, l)
}

// Children returns the children.
func (c *ContainerLayer) Children() []Layer {
	return c.children
}

// ChildPaintBounds returns the union of the children's paint bounds.
func (c *ContainerLayer) ChildPaintBounds() geom.Rect {
	return c.childBounds
}

// ChildrenCanApply returns the attributes all children can absorb
// together, as computed by the last Preroll.
func (c *ContainerLayer) ChildrenCanApply() state.Flags {
	return c.childFlags
}

// Preroll implements Layer.
func (c *ContainerLayer) Preroll(ctx *PrerollContext) {
	c.setPaintBounds(c.prerollChildren(ctx))
}

// Paint implements Layer.
func (c *ContainerLayer) Paint(ctx *PaintContext) {
	c.paintChildren(ctx)
}

// prerollChildren prerolls every child and returns the union of their
// bounds. Children that overlap can not absorb attributes one by one, so
// the combined flags are cleared in that case.
func (c *ContainerLayer) prerollChildren(ctx *PrerollContext) geom.Rect {
	bounds := geom.EmptyRect()
	flags := state.CallerCanApplyAnything
	overlap := false
	for _, child := range c.children {
		ctx.RenderableStateFlags = 0
		child.Preroll(ctx)
		cb := child.PaintBounds()
		if bounds.Intersects(cb) {
			overlap = true
		}
		bounds = bounds.Union(cb)
		flags &= ctx.RenderableStateFlags
	}
	if overlap {
		flags = 0
	}
	c.childBounds = bounds
	c.childFlags = flags
	ctx.RenderableStateFlags = flags
	return bounds
}

func (c *ContainerLayer) paintChildren(ctx *PaintContext) {
	for _, child := range c.children {
		if child.NeedsPainting(ctx) {
			child.Paint(ctx)
		}
	}
}
