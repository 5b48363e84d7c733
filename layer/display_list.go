package layer

import (
	"github.com/gogpu/gg"

	"github.com/gogpu/flow/dl"
	"github.com/gogpu/flow/paint"
	"github.com/gogpu/flow/rastercache"
	"github.com/gogpu/flow/state"
)

// DisplayListLayer draws a recorded display list at an offset. It is the
// leaf that uses the raster cache.
type DisplayListLayer struct {
	base
	Offset      gg.Point
	DisplayList *dl.DisplayList
	IsComplex   bool
	WillChange  bool

	cached bool
}

// NewDisplayListLayer creates a display list layer.
func NewDisplayListLayer(offset gg.Point, d *dl.DisplayList) *DisplayListLayer {
	return &DisplayListLayer{base: newBase(), Offset: offset, DisplayList: d}
}

func (l *DisplayListLayer) content() rastercache.PictureContent {
	return rastercache.NewPictureContent(l.DisplayList, l.IsComplex, l.WillChange)
}

// Preroll implements Layer.
func (l *DisplayListLayer) Preroll(ctx *PrerollContext) {
	bounds := l.DisplayList.Bounds()
	l.setPaintBounds(bounds.Offset(l.Offset.X, l.Offset.Y))
	l.cached = false

	mc := ctx.State.Save()
	defer mc.Restore()
	mc.Translate(l.Offset.X, l.Offset.Y)
	if ctx.RasterCache != nil {
		mc.IntegralTransform()
		content := l.content()
		if ctx.State.ContentCulled(bounds) {
			ctx.RasterCache.Touch(content.CacheID(), ctx.State.Matrix())
		} else {
			_, l.cached = ctx.RasterCache.Prepare(content, ctx.State.Matrix())
		}
	}
	if !l.cached {
		ar := ctx.State.ApplyState(bounds, l.playbackFlags())
		ar.Restore()
	}

	if l.cached {
		ctx.RenderableStateFlags = state.CallerCanApplyAnything
	} else {
		ctx.RenderableStateFlags = l.playbackFlags()
	}
}

// playbackFlags returns what a direct playback of the display list can
// apply.
func (l *DisplayListLayer) playbackFlags() state.Flags {
	if l.DisplayList.CanApplyOpacity() {
		return state.CallerCanApplyOpacity
	}
	return 0
}

// Paint implements Layer.
func (l *DisplayListLayer) Paint(ctx *PaintContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.Translate(l.Offset.X, l.Offset.Y)

	if ctx.RasterCache != nil {
		mc.IntegralTransform()
		p := paint.New()
		ctx.State.Fill(&p)
		if ctx.RasterCache.Draw(l.content().CacheID(), ctx.State.Matrix(), ctx.Canvas, &p) {
			return
		}
	}

	ar := ctx.State.ApplyState(l.DisplayList.Bounds(), l.playbackFlags())
	defer ar.Restore()
	l.DisplayList.PlaybackWithOpacity(ctx.Canvas, ctx.State.OutstandingOpacity())
}
