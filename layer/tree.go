package layer

import (
	"fmt"
	"image"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/rastercache"
	"github.com/gogpu/flow/state"
)

// FrameStats describes the offscreen work the preroll pass found.
type FrameStats struct {
	// SaveLayers is the number of groups opened explicitly by layers.
	SaveLayers int
	// OffscreenBounds is the device-space union of those groups.
	OffscreenBounds geom.Rect
}

// LayerTree renders a layer tree frame by frame.
type LayerTree struct {
	root   Layer
	width  int
	height int
	opts   treeOptions
}

// NewLayerTree creates a tree rendering root into frames of the given
// device size.
func NewLayerTree(root Layer, width, height int, opts ...Option) *LayerTree {
	o := defaultTreeOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &LayerTree{root: root, width: width, height: height, opts: o}
}

// Root returns the root layer.
func (t *LayerTree) Root() Layer {
	return t.root
}

// RasterCache returns the cache, or nil.
func (t *LayerTree) RasterCache() *rastercache.RasterCache {
	return t.opts.cache
}

// FrameBounds returns the device rectangle of a frame.
func (t *LayerTree) FrameBounds() geom.Rect {
	return geom.XYWH(0, 0, float64(t.width), float64(t.height))
}

func (t *LayerTree) scale(mc *state.MutatorContext) {
	if t.opts.dpr != 1 {
		mc.Transform(geom.Scaling(t.opts.dpr, t.opts.dpr))
	}
}

// Preroll runs the bounds pass.
func (t *LayerTree) Preroll() FrameStats {
	st := state.NewLayerStateStack()
	pd := st.SetPrerollDelegate(t.FrameBounds(), geom.Identity())
	mc := st.Save()
	t.scale(mc)
	t.root.Preroll(&PrerollContext{State: st, RasterCache: t.opts.cache})
	mc.Restore()
	st.ClearDelegate()
	return FrameStats{SaveLayers: pd.SaveLayerCount(), OffscreenBounds: pd.OffscreenBounds()}
}

// Paint runs the paint pass onto c. Preroll must have run first.
func (t *LayerTree) Paint(c *canvas.Canvas) {
	st := state.NewLayerStateStack()
	st.SetCanvasDelegate(c)
	mc := st.Save()
	t.scale(mc)
	ctx := &PaintContext{State: st, Canvas: c, RasterCache: t.opts.cache}
	if t.root.NeedsPainting(ctx) {
		t.root.Paint(ctx)
	}
	mc.Restore()
	st.ClearDelegate()
}

// EndFrame sweeps the raster cache.
func (t *LayerTree) EndFrame() {
	if t.opts.cache == nil {
		return
	}
	evicted := t.opts.cache.SweepAfterFrame()
	flow.Logger().Debug("layer: frame done", "evicted", evicted, "cached", t.opts.cache.Len())
}

// Render runs a whole frame onto a new offscreen canvas and returns the
// pixels.
func (t *LayerTree) Render() (*image.RGBA, error) {
	c := canvas.NewOffscreen(t.width, t.height)
	t.Preroll()
	t.Paint(c)
	t.EndFrame()
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("layer: render: %w", err)
	}
	return c.Snapshot(), nil
}
