package layer

import (
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/state"
)

// Clip selects how a clip layer clips its children.
type Clip uint8

const (
	// ClipNone does not clip.
	ClipNone Clip = iota
	// ClipHardEdge clips without anti-aliasing.
	ClipHardEdge
	// ClipAntiAlias clips with anti-aliasing.
	ClipAntiAlias
	// ClipAntiAliasWithSaveLayer clips with anti-aliasing and isolates the
	// children in their own group.
	ClipAntiAliasWithSaveLayer
)

func (c Clip) String() string {
	switch c {
	case ClipNone:
		return "None"
	case ClipHardEdge:
		return "HardEdge"
	case ClipAntiAlias:
		return "AntiAlias"
	case ClipAntiAliasWithSaveLayer:
		return "AntiAliasWithSaveLayer"
	default:
		return "Unknown"
	}
}

func (c Clip) isAA() bool {
	return c == ClipAntiAlias || c == ClipAntiAliasWithSaveLayer
}

// clipShape is the part that differs between the clip layers.
type clipShape interface {
	bounds() geom.Rect
	apply(mc *state.MutatorContext, isAA bool)
}

// clipLayer is the shared implementation of the clip layers.
type clipLayer struct {
	ContainerLayer
	Behavior Clip
	shape    clipShape
}

func (l *clipLayer) Preroll(ctx *PrerollContext) {
	if l.Behavior == ClipNone {
		l.setPaintBounds(l.prerollChildren(ctx))
		return
	}
	clipBounds := l.shape.bounds()
	mc := ctx.State.Save()
	defer mc.Restore()
	if ctx.State.ContentCulled(clipBounds) {
		ctx.RenderableStateFlags = 0
		l.setPaintBounds(geom.EmptyRect())
		return
	}
	l.shape.apply(mc, l.Behavior.isAA())
	child := l.prerollChildren(ctx)
	bounds, ok := child.Intersect(clipBounds)
	if !ok {
		bounds = geom.EmptyRect()
	}
	l.setPaintBounds(bounds)
	if l.Behavior == ClipAntiAliasWithSaveLayer {
		mc.SaveLayer(bounds)
		ctx.RenderableStateFlags = state.CallerCanApplyOpacity
	}
}

func (l *clipLayer) Paint(ctx *PaintContext) {
	if l.Behavior == ClipNone {
		l.paintChildren(ctx)
		return
	}
	mc := ctx.State.Save()
	defer mc.Restore()
	l.shape.apply(mc, l.Behavior.isAA())
	if l.Behavior == ClipAntiAliasWithSaveLayer {
		mc.SaveLayer(l.paintBounds)
	}
	l.paintChildren(ctx)
}

// ClipRectLayer clips its children to a rectangle.
type ClipRectLayer struct {
	clipLayer
	Rect geom.Rect
}

// NewClipRectLayer creates a rectangle clip layer.
func NewClipRectLayer(r geom.Rect, behavior Clip) *ClipRectLayer {
	l := &ClipRectLayer{clipLayer: clipLayer{ContainerLayer: *NewContainerLayer(), Behavior: behavior}, Rect: r}
	l.shape = rectShape{l}
	return l
}

type rectShape struct{ l *ClipRectLayer }

func (s rectShape) bounds() geom.Rect { return s.l.Rect }

func (s rectShape) apply(mc *state.MutatorContext, isAA bool) { mc.ClipRect(s.l.Rect, isAA) }

// ClipRRectLayer clips its children to a rounded rectangle.
type ClipRRectLayer struct {
	clipLayer
	RRect geom.RRect
}

// NewClipRRectLayer creates a rounded rectangle clip layer.
func NewClipRRectLayer(rr geom.RRect, behavior Clip) *ClipRRectLayer {
	l := &ClipRRectLayer{clipLayer: clipLayer{ContainerLayer: *NewContainerLayer(), Behavior: behavior}, RRect: rr}
	l.shape = rrectShape{l}
	return l
}

type rrectShape struct{ l *ClipRRectLayer }

func (s rrectShape) bounds() geom.Rect { return s.l.RRect.Bounds() }

func (s rrectShape) apply(mc *state.MutatorContext, isAA bool) { mc.ClipRRect(s.l.RRect, isAA) }

// ClipPathLayer clips its children to a path.
type ClipPathLayer struct {
	clipLayer
	Path *geom.Path
}

// NewClipPathLayer creates a path clip layer.
func NewClipPathLayer(p *geom.Path, behavior Clip) *ClipPathLayer {
	l := &ClipPathLayer{clipLayer: clipLayer{ContainerLayer: *NewContainerLayer(), Behavior: behavior}, Path: p}
	l.shape = pathShape{l}
	return l
}

type pathShape struct{ l *ClipPathLayer }

func (s pathShape) bounds() geom.Rect { return s.l.Path.Bounds() }

func (s pathShape) apply(mc *state.MutatorContext, isAA bool) { mc.ClipPath(s.l.Path, isAA) }
