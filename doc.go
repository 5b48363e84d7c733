// Package flow provides the layer rendering state machinery for a
// retained-mode layer tree drawn with gg.
//
// # Overview
//
// A layer tree is rendered once per frame in two passes: a preroll pass
// that computes bounds and caching decisions, and a paint pass that issues
// drawing commands. Both passes thread the same bookkeeping through the
// tree:
//
//   - state: a stack of transforms, clips and deferred paint attributes
//     (opacity, color filter, image filter, backdrop filter) that emits the
//     fewest possible offscreen compositions (saveLayer) to its delegate.
//   - rastercache: a per-(content, transform) cache of rasterized images
//     with frame-count promotion and per-frame sweep eviction.
//
// # Quick Start
//
//	dc := gg.NewContext(800, 600)
//	c := canvas.New(dc)
//
//	stack := state.NewLayerStateStack()
//	stack.SetCanvasDelegate(c)
//
//	mc := stack.Save()
//	mc.Translate(10, 10)
//	mc.ClipRect(geom.XYWH(0, 0, 100, 100), false)
//	mc.ApplyOpacity(geom.XYWH(0, 0, 100, 100), 0.5)
//	// ... paint children ...
//	mc.Restore()
//
// # Packages
//
//   - geom: Rect, RRect, Path, 4x4 Matrix
//   - paint: Paint, BlendMode, color and image filters
//   - dl: display-list builder and playback
//   - canvas: immediate-mode delegate over *gg.Context
//   - state: LayerStateStack, MutatorContext, delegates
//   - rastercache: RasterCache
//   - layer: scene-graph layers and LayerTree
//
// # Threading
//
// Nothing in flow is safe for concurrent use except SetLogger and Logger.
// A frame's preroll and paint passes must run in order on one goroutine.
package flow
