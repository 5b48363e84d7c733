package layer

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/paint"
	"github.com/gogpu/flow/state"
)

// ColorFilterLayer applies a color filter to its children as a group.
type ColorFilterLayer struct {
	ContainerLayer
	Filter paint.ColorFilter
}

// NewColorFilterLayer creates a color filter layer.
func NewColorFilterLayer(f paint.ColorFilter) *ColorFilterLayer {
	return &ColorFilterLayer{ContainerLayer: *NewContainerLayer(), Filter: f}
}

// Preroll implements Layer.
func (l *ColorFilterLayer) Preroll(ctx *PrerollContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	child := l.prerollChildren(ctx)
	l.setPaintBounds(child)
	mc.ApplyColorFilter(child, l.Filter)
	if l.childFlags&state.CallerCanApplyColorFilter == 0 {
		mc.SaveLayer(child)
	}
	ctx.RenderableStateFlags = state.CallerCanApplyOpacity
}

// Paint implements Layer.
func (l *ColorFilterLayer) Paint(ctx *PaintContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.ApplyColorFilter(l.paintBounds, l.Filter)
	if l.childFlags&state.CallerCanApplyColorFilter == 0 {
		mc.SaveLayer(l.paintBounds)
	}
	l.paintChildren(ctx)
}

// ImageFilterLayer applies an image filter to its children, drawn at an
// offset.
type ImageFilterLayer struct {
	ContainerLayer
	Filter paint.ImageFilter
	Offset gg.Point
}

// NewImageFilterLayer creates an image filter layer.
func NewImageFilterLayer(f paint.ImageFilter, offset gg.Point) *ImageFilterLayer {
	return &ImageFilterLayer{ContainerLayer: *NewContainerLayer(), Filter: f, Offset: offset}
}

// Preroll implements Layer.
func (l *ImageFilterLayer) Preroll(ctx *PrerollContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.Translate(l.Offset.X, l.Offset.Y)
	child := l.prerollChildren(ctx)
	if l.Filter != nil {
		child = l.Filter.MapBounds(child)
		mc.ApplyImageFilter(child, l.Filter)
		if l.childFlags&state.CallerCanApplyImageFilter == 0 {
			mc.SaveLayer(child)
		}
	}
	l.setPaintBounds(child.Offset(l.Offset.X, l.Offset.Y))
	ctx.RenderableStateFlags = state.CallerCanApplyOpacity
}

// Paint implements Layer.
func (l *ImageFilterLayer) Paint(ctx *PaintContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.Translate(l.Offset.X, l.Offset.Y)
	if l.Filter == nil {
		l.paintChildren(ctx)
		return
	}
	filtered := l.Filter.MapBounds(l.childBounds)
	mc.ApplyImageFilter(filtered, l.Filter)
	if l.childFlags&state.CallerCanApplyImageFilter == 0 {
		mc.SaveLayer(filtered)
	}
	l.paintChildren(ctx)
}

// BackdropFilterLayer filters whatever was painted beneath it before its
// children draw on top.
type BackdropFilterLayer struct {
	ContainerLayer
	Filter    paint.ImageFilter
	BlendMode paint.BlendMode
}

// NewBackdropFilterLayer creates a backdrop filter layer.
func NewBackdropFilterLayer(f paint.ImageFilter, blend paint.BlendMode) *BackdropFilterLayer {
	return &BackdropFilterLayer{ContainerLayer: *NewContainerLayer(), Filter: f, BlendMode: blend}
}

// Preroll implements Layer. The layer affects everything visible beneath
// it, so its bounds are the local cull rect.
func (l *BackdropFilterLayer) Preroll(ctx *PrerollContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	child := l.prerollChildren(ctx)
	l.setPaintBounds(child.Union(ctx.State.LocalCullRect()))
	mc.ApplyBackdropFilter(l.paintBounds, l.Filter, l.BlendMode, int64(l.id))
	ctx.RenderableStateFlags = state.CallerCanApplyOpacity
}

// Paint implements Layer.
func (l *BackdropFilterLayer) Paint(ctx *PaintContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.ApplyBackdropFilter(l.paintBounds, l.Filter, l.BlendMode, int64(l.id))
	l.paintChildren(ctx)
}
