// Package layer implements a retained layer tree on top of the layer state
// stack and the raster cache.
//
// Each frame runs two passes over the same tree. Preroll computes paint
// bounds, decides which attributes children can absorb and prepares raster
// cache entries. Paint draws onto a canvas. Both passes thread state through
// a state.LayerStateStack; a layer opens at most one MutatorContext per
// pass:
//
//	root := layer.NewContainerLayer()
//	fade := layer.NewOpacityLayer(0.5, gg.Pt(20, 20))
//	fade.Add(layer.NewDisplayListLayer(gg.Pt(0, 0), picture))
//	root.Add(fade)
//
//	tree := layer.NewLayerTree(root, 800, 600, layer.WithRasterCache(rastercache.New()))
//	img, err := tree.Render()
package layer
