package layer

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
	"github.com/gogpu/flow/rastercache"
	"github.com/gogpu/flow/state"
)

// OpacityLayer fades its children, drawn at an offset.
type OpacityLayer struct {
	ContainerLayer
	Alpha  float64
	Offset gg.Point

	children childrenContent
}

// NewOpacityLayer creates an opacity layer.
func NewOpacityLayer(alpha float64, offset gg.Point) *OpacityLayer {
	l := &OpacityLayer{ContainerLayer: *NewContainerLayer(), Alpha: alpha, Offset: offset}
	l.children = childrenContent{container: &l.ContainerLayer}
	return l
}

func (l *OpacityLayer) childrenCanAcceptOpacity() bool {
	return l.childFlags&state.CallerCanApplyOpacity != 0
}

// Preroll implements Layer.
func (l *OpacityLayer) Preroll(ctx *PrerollContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.Translate(l.Offset.X, l.Offset.Y)
	if ctx.RasterCache != nil {
		mc.IntegralTransform()
	}
	child := l.prerollChildren(ctx)
	mc.ApplyOpacity(child, l.Alpha)

	if !l.childrenCanAcceptOpacity() && !ctx.State.ContentCulled(child) {
		cached := false
		if ctx.RasterCache != nil {
			_, cached = ctx.RasterCache.Prepare(l.children, ctx.State.Matrix())
		}
		if !cached {
			mc.SaveLayer(child)
		}
	} else if ctx.RasterCache != nil {
		ctx.RasterCache.Touch(l.children.CacheID(), ctx.State.Matrix())
	}

	l.setPaintBounds(child.Offset(l.Offset.X, l.Offset.Y))
	ctx.RenderableStateFlags = state.CallerCanApplyOpacity
}

// NeedsPainting implements Layer. A fully transparent layer paints
// nothing.
func (l *OpacityLayer) NeedsPainting(ctx *PaintContext) bool {
	return l.Alpha > 0 && l.base.NeedsPainting(ctx)
}

// Paint implements Layer.
func (l *OpacityLayer) Paint(ctx *PaintContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.Translate(l.Offset.X, l.Offset.Y)
	if ctx.RasterCache != nil {
		mc.IntegralTransform()
	}
	mc.ApplyOpacity(l.childBounds, l.Alpha)

	if !l.childrenCanAcceptOpacity() {
		if ctx.RasterCache != nil {
			p := paint.New()
			ctx.State.Fill(&p)
			if ctx.RasterCache.Draw(l.children.CacheID(), ctx.State.Matrix(), ctx.Canvas, &p) {
				return
			}
		}
		mc.SaveLayer(l.childBounds)
	}
	l.paintChildren(ctx)
}

// childrenContent lets the raster cache rasterize a container's children
// as one image.
type childrenContent struct {
	container *ContainerLayer
}

var _ rastercache.Content = childrenContent{}

func (c childrenContent) CacheID() rastercache.KeyID {
	return rastercache.KeyID{Kind: rastercache.KindLayerChildren, ID: c.container.UniqueID()}
}

func (c childrenContent) Bounds() geom.Rect { return c.container.childBounds }

func (c childrenContent) OpCount() int { return len(c.container.children) }

// IsComplex reports true: a group that needed its own layer is worth an
// image once it has been stable for the access threshold.
func (c childrenContent) IsComplex() bool { return true }

func (c childrenContent) WillChange() bool { return false }

// Draw paints the children onto an offscreen canvas through a private
// state stack. Nested layers do not use the raster cache here.
func (c childrenContent) Draw(cv *canvas.Canvas) {
	st := state.NewLayerStateStack()
	st.SetCanvasDelegate(cv)
	c.container.paintChildren(&PaintContext{State: st, Canvas: cv})
	st.ClearDelegate()
}
