package layer

import "github.com/gogpu/flow/rastercache"

// Option configures a LayerTree during creation.
//
// Example:
//
//	tree := layer.NewLayerTree(root, 800, 600,
//		layer.WithRasterCache(rastercache.New()),
//		layer.WithDevicePixelRatio(2),
//	)
type Option func(*treeOptions)

type treeOptions struct {
	cache *rastercache.RasterCache
	dpr   float64
}

func defaultTreeOptions() treeOptions {
	return treeOptions{dpr: 1}
}

// WithRasterCache enables raster caching with c. The cache is swept at the
// end of every frame.
func WithRasterCache(c *rastercache.RasterCache) Option {
	return func(o *treeOptions) {
		o.cache = c
	}
}

// WithDevicePixelRatio scales the whole tree. Non-positive values are
// ignored.
func WithDevicePixelRatio(dpr float64) Option {
	return func(o *treeOptions) {
		if dpr > 0 {
			o.dpr = dpr
		}
	}
}
