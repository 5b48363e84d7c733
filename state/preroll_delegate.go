package state

import (
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// PrerollDelegate is a bounds-only delegate for the preroll pass. It
// mirrors the matrix and counts the offscreen groups the paint pass would
// open without drawing anything.
type PrerollDelegate struct {
	base   geom.Matrix
	matrix geom.Matrix
	saves  []geom.Matrix

	saveLayers int
	offscreen  geom.Rect
}

var _ Delegate = (*PrerollDelegate)(nil)

// NewPrerollDelegate creates a delegate whose base matrix is m.
func NewPrerollDelegate(m geom.Matrix) *PrerollDelegate {
	return &PrerollDelegate{
		base:      m,
		matrix:    m,
		offscreen: geom.EmptyRect(),
	}
}

// Matrix returns the mirrored matrix.
func (p *PrerollDelegate) Matrix() geom.Matrix {
	return p.matrix
}

// SaveLayerCount returns the number of groups opened so far.
func (p *PrerollDelegate) SaveLayerCount() int {
	return p.saveLayers
}

// OffscreenBounds returns the device-space union of all bounded groups.
// Groups opened without bounds are counted but not included.
func (p *PrerollDelegate) OffscreenBounds() geom.Rect {
	return p.offscreen
}

// Save implements Delegate.
func (p *PrerollDelegate) Save() {
	p.saves = append(p.saves, p.matrix)
}

// SaveLayer implements Delegate.
func (p *PrerollDelegate) SaveLayer(bounds *geom.Rect, _ *paint.Paint, backdrop paint.ImageFilter) {
	p.Save()
	p.saveLayers++
	if bounds == nil {
		return
	}
	dev := p.matrix.MapRect(*bounds)
	if backdrop != nil {
		dev = backdrop.MapBounds(dev)
	}
	p.offscreen = p.offscreen.Union(dev)
}

// Restore implements Delegate.
func (p *PrerollDelegate) Restore() {
	n := len(p.saves)
	if n == 0 {
		return
	}
	p.matrix = p.saves[n-1]
	p.saves = p.saves[:n-1]
}

// Translate implements Delegate.
func (p *PrerollDelegate) Translate(dx, dy float64) {
	p.matrix = p.matrix.PreTranslate(dx, dy)
}

// Transform implements Delegate.
func (p *PrerollDelegate) Transform(m geom.Matrix) {
	p.matrix = p.matrix.Concat(m)
}

// SetTransform implements Delegate.
func (p *PrerollDelegate) SetTransform(m geom.Matrix) {
	p.matrix = m
}

// ClipRect implements Delegate. Clips are tracked by the stack's cull
// rect.
func (p *PrerollDelegate) ClipRect(geom.Rect, geom.ClipOp, bool) {}

// ClipRRect implements Delegate.
func (p *PrerollDelegate) ClipRRect(geom.RRect, geom.ClipOp, bool) {}

// ClipPath implements Delegate.
func (p *PrerollDelegate) ClipPath(*geom.Path, geom.ClipOp, bool) {}

// Decommission implements Delegate. It drops every open save; the counters
// are kept for inspection.
func (p *PrerollDelegate) Decommission() {
	p.saves = p.saves[:0]
	p.matrix = p.base
}
