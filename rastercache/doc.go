// Package rastercache caches rasterized content across frames.
//
// Content is identified by a KeyID (a generation counter assigned at
// creation, never a pointer) and cached per exact transform. An entry is
// rasterized only after it has been prepared in AccessThreshold frames, and
// it is evicted by the first SweepAfterFrame that finds it unused:
//
//	cache := rastercache.New(rastercache.WithAccessThreshold(3))
//	for frame := range frames {
//		if img, ok := cache.Prepare(content, matrix); ok {
//			_ = img // drawn by cache.Draw during paint
//		}
//		...
//		cache.SweepAfterFrame()
//	}
//
// A RasterCache belongs to one raster goroutine and is not safe for
// concurrent use.
package rastercache
