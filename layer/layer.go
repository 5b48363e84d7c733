package layer

import (
	"sync/atomic"

	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/rastercache"
	"github.com/gogpu/flow/state"
)

// Layer is a node of the layer tree.
type Layer interface {
	// Preroll computes the paint bounds and prepares caching. It must
	// leave ctx.RenderableStateFlags set to what the layer can absorb.
	Preroll(ctx *PrerollContext)
	// Paint draws the layer. It is only called when NeedsPainting is true.
	Paint(ctx *PaintContext)
	// PaintBounds returns the bounds computed by the last Preroll, in the
	// parent's coordinates.
	PaintBounds() geom.Rect
	// NeedsPainting reports whether Paint would draw anything visible.
	NeedsPainting(ctx *PaintContext) bool
	// UniqueID returns the layer identity used for raster cache keys.
	UniqueID() uint64
}

// PrerollContext is shared by all layers during Preroll.
type PrerollContext struct {
	State       *state.LayerStateStack
	RasterCache *rastercache.RasterCache

	// RenderableStateFlags is written by each layer's Preroll and read by
	// its parent: the attributes the layer can apply while painting.
	RenderableStateFlags state.Flags
}

// PaintContext is shared by all layers during Paint.
type PaintContext struct {
	State       *state.LayerStateStack
	Canvas      *canvas.Canvas
	RasterCache *rastercache.RasterCache
}

var layerIDs atomic.Uint64

func nextLayerID() uint64 {
	return layerIDs.Add(1)
}

// base carries the identity and bounds every layer has.
type base struct {
	id          uint64
	paintBounds geom.Rect
}

func newBase() base {
	return base{id: nextLayerID(), paintBounds: geom.EmptyRect()}
}

// UniqueID implements Layer.
func (b *base) UniqueID() uint64 {
	return b.id
}

// PaintBounds implements Layer.
func (b *base) PaintBounds() geom.Rect {
	return b.paintBounds
}

// NeedsPainting implements Layer.
func (b *base) NeedsPainting(ctx *PaintContext) bool {
	if b.paintBounds.IsEmpty() || ctx.State.PaintingIsNop() {
		return false
	}
	return !ctx.State.ContentCulled(b.paintBounds)
}

func (b *base) setPaintBounds(r geom.Rect) {
	b.paintBounds = r
}
