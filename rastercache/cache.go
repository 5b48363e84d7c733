package rastercache

import (
	"errors"
	"sync/atomic"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// Entry is the per-key cache state.
type Entry struct {
	accessCount   int
	usedThisFrame bool
	image         *Image
	failed        bool
}

// AccessCount returns the number of frames the entry was prepared in,
// clamped to the access threshold.
func (e *Entry) AccessCount() int { return e.accessCount }

// UsedThisFrame reports whether the entry was touched since the last sweep.
func (e *Entry) UsedThisFrame() bool { return e.usedThisFrame }

// Image returns the rasterized image, or nil before promotion.
func (e *Entry) Image() *Image { return e.image }

// RasterCache caches rasterized content per (content, matrix) key.
//
// RasterCache is not safe for concurrent use.
type RasterCache struct {
	opts    options
	entries map[Key]*Entry

	rasterizedThisFrame int

	// Statistics (atomic for zero-allocation reads)
	hits       atomic.Uint64
	misses     atomic.Uint64
	evictions  atomic.Uint64
	rasterized atomic.Uint64
}

// Stats contains cache statistics for monitoring.
type Stats struct {
	// Entries is the number of live entries.
	Entries int
	// Images is the number of entries holding an image.
	Images int
	// Bytes is the pixel memory held by all images.
	Bytes int64
	// Hits is the number of Prepare calls that returned an image.
	Hits uint64
	// Misses is the number of eligible Prepare calls that did not.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0.
	HitRate float64
	// Evictions is the number of entries dropped by sweeps and clears.
	Evictions uint64
	// Rasterized is the number of images produced.
	Rasterized uint64
}

// New creates a raster cache.
func New(opts ...Option) *RasterCache {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &RasterCache{
		opts:    o,
		entries: make(map[Key]*Entry),
	}
}

// AccessThreshold returns the promotion threshold.
func (c *RasterCache) AccessThreshold() int {
	return c.opts.accessThreshold
}

// Eligible reports whether content drawn under m is worth caching.
func (c *RasterCache) Eligible(content Content, m geom.Matrix) bool {
	b := content.Bounds()
	if b.IsEmpty() || !b.IsFinite() {
		return false
	}
	if content.WillChange() {
		return false
	}
	if !content.IsComplex() && content.OpCount() <= c.opts.minComplexity {
		return false
	}
	return m.IsInvertible()
}

// Prepare records that content is drawn under m this frame and returns its
// image once the entry has been promoted. Ineligible content is never
// inserted.
func (c *RasterCache) Prepare(content Content, m geom.Matrix) (*Image, bool) {
	if !c.Eligible(content, m) {
		return nil, false
	}
	key := MakeKey(content.CacheID(), m)
	e, ok := c.entries[key]
	if !ok {
		e = &Entry{}
		c.entries[key] = e
	}
	e.accessCount = min(e.accessCount+1, c.opts.accessThreshold)
	e.usedThisFrame = true

	if e.image == nil && !e.failed && e.accessCount >= c.opts.accessThreshold {
		c.rasterizeEntry(e, content, m)
	}
	if e.image == nil {
		c.misses.Add(1)
		return nil, false
	}
	c.hits.Add(1)
	return e.image, true
}

func (c *RasterCache) rasterizeEntry(e *Entry, content Content, m geom.Matrix) {
	if c.opts.perFrameLimit > 0 && c.rasterizedThisFrame >= c.opts.perFrameLimit {
		return
	}
	img, err := Rasterize(content, m, c.opts.checkerboard, c.opts.maxSurfaceSize)
	if err != nil {
		e.failed = true
		if errors.Is(err, ErrSurfaceTooLarge) {
			flow.Logger().Warn("rastercache: not caching", "id", content.CacheID().String(), "err", err)
		} else {
			flow.Logger().Debug("rastercache: not caching", "id", content.CacheID().String(), "err", err)
		}
		return
	}
	c.rasterizedThisFrame++
	c.rasterized.Add(1)
	e.image = img
}

// Get returns the image for id under m without touching the entry.
func (c *RasterCache) Get(id KeyID, m geom.Matrix) (*Image, bool) {
	e, ok := c.entries[MakeKey(id, m)]
	if !ok || e.image == nil {
		return nil, false
	}
	return e.image, true
}

// Lookup returns the entry for id under m.
func (c *RasterCache) Lookup(id KeyID, m geom.Matrix) (*Entry, bool) {
	e, ok := c.entries[MakeKey(id, m)]
	return e, ok
}

// Touch keeps an existing entry alive through the next sweep without
// counting an access. It is used for content that is culled this frame.
func (c *RasterCache) Touch(id KeyID, m geom.Matrix) {
	if e, ok := c.entries[MakeKey(id, m)]; ok {
		e.usedThisFrame = true
	}
}

// Draw paints the cached image for id under m onto cv at its device
// position and reports whether there was one. p may carry opacity, filters
// and a blend mode.
func (c *RasterCache) Draw(id KeyID, m geom.Matrix, cv *canvas.Canvas, p *paint.Paint) bool {
	img, ok := c.Get(id, m)
	if !ok {
		return false
	}
	cv.Save()
	cv.SetTransform(geom.Identity())
	cv.DrawImage(img.pixels, geom.FromImageRect(img.device), p)
	cv.Restore()
	return true
}

// SweepAfterFrame evicts every entry not used since the previous sweep and
// clears the used flag on the rest. It returns the number evicted.
func (c *RasterCache) SweepAfterFrame() int {
	evicted := 0
	for k, e := range c.entries {
		if !e.usedThisFrame {
			delete(c.entries, k)
			evicted++
			continue
		}
		e.usedThisFrame = false
	}
	c.rasterizedThisFrame = 0
	if evicted > 0 {
		c.evictions.Add(uint64(evicted))
		flow.Logger().Debug("rastercache: sweep", "evicted", evicted, "live", len(c.entries))
	}
	return evicted
}

// Clear drops every entry.
func (c *RasterCache) Clear() {
	c.evictions.Add(uint64(len(c.entries)))
	clear(c.entries)
	c.rasterizedThisFrame = 0
}

// CheckerboardCacheImages reports whether new images get a checkerboard.
func (c *RasterCache) CheckerboardCacheImages() bool {
	return c.opts.checkerboard
}

// SetCheckerboardCacheImages toggles the checkerboard overlay. Changing it
// clears the cache since existing images were baked with the old setting.
func (c *RasterCache) SetCheckerboardCacheImages(enabled bool) {
	if c.opts.checkerboard == enabled {
		return
	}
	c.opts.checkerboard = enabled
	c.Clear()
}

// Len returns the number of live entries.
func (c *RasterCache) Len() int {
	return len(c.entries)
}

// EstimateByteSize returns the pixel memory held by all images.
func (c *RasterCache) EstimateByteSize() int64 {
	var n int64
	for _, e := range c.entries {
		n += e.image.ByteSize()
	}
	return n
}

// Stats returns current statistics.
func (c *RasterCache) Stats() Stats {
	s := Stats{
		Entries:    len(c.entries),
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
		Evictions:  c.evictions.Load(),
		Rasterized: c.rasterized.Load(),
	}
	for _, e := range c.entries {
		if e.image != nil {
			s.Images++
			s.Bytes += e.image.ByteSize()
		}
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// ResetStats clears the hit, miss, eviction and rasterization counters.
func (c *RasterCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
	c.rasterized.Store(0)
}
