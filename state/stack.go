package state

import (
	"fmt"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/dl"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// LayerStateStack tracks the cumulative matrix, device cull rect and
// deferred rendering attributes of a layer traversal.
type LayerStateStack struct {
	entries     []stateEntry
	outstanding RenderingAttributes
	matrix      geom.Matrix
	cull        geom.Rect

	initialMatrix geom.Matrix
	initialCull   geom.Rect

	delegate Delegate
}

// NewLayerStateStack creates an empty stack with an identity matrix, an
// unbounded cull rect and no delegate.
func NewLayerStateStack() *LayerStateStack {
	s := &LayerStateStack{
		entries: make([]stateEntry, 0, 32),
	}
	s.SetInitialState(geom.GiantRect(), geom.Identity())
	return s
}

// SetInitialState seeds the base cull rect and matrix. The stack must be
// empty.
func (s *LayerStateStack) SetInitialState(cull geom.Rect, matrix geom.Matrix) {
	if len(s.entries) != 0 {
		panic(fmt.Sprintf("state: SetInitialState on a stack holding %d entries", len(s.entries)))
	}
	s.initialCull, s.initialMatrix = cull, matrix
	s.cull, s.matrix = cull, matrix
	s.outstanding = defaultAttributes()
}

// Depth returns the number of live entries.
func (s *LayerStateStack) Depth() int {
	return len(s.entries)
}

// Delegate returns the attached delegate, or nil.
func (s *LayerStateStack) Delegate() Delegate {
	return s.delegate
}

// Save opens a nesting level. The returned context restores the stack to
// its current depth.
func (s *LayerStateStack) Save() *MutatorContext {
	mc := &MutatorContext{stack: s, depth: len(s.entries)}
	s.push(&saveEntry{})
	return mc
}

// ApplyState issues a protective saveLayer over bounds when the
// outstanding attributes include something the caller can not apply
// according to flags. The returned guard undoes it.
func (s *LayerStateStack) ApplyState(bounds geom.Rect, flags Flags) *AutoRestore {
	ar := &AutoRestore{stack: s, depth: len(s.entries)}
	if s.NeedsSaveLayer(flags) {
		s.saveLayer(bounds)
	}
	return ar
}

// NeedsSaveLayer reports whether the outstanding attributes exceed what
// the caller can apply.
func (s *LayerStateStack) NeedsSaveLayer(flags Flags) bool {
	a := &s.outstanding
	return (a.Opacity < 1 && flags&CallerCanApplyOpacity == 0) ||
		(a.ImageFilter != nil && flags&CallerCanApplyImageFilter == 0) ||
		(a.ColorFilter != nil && flags&CallerCanApplyColorFilter == 0)
}

// Fill writes the outstanding opacity and filters into p for a one-shot
// draw and reports whether anything was written.
func (s *LayerStateStack) Fill(p *paint.Paint) bool {
	return s.outstanding.fill(p)
}

// OutstandingAttributes returns the deferred attributes.
func (s *LayerStateStack) OutstandingAttributes() RenderingAttributes {
	return s.outstanding
}

// OutstandingOpacity returns the deferred group alpha.
func (s *LayerStateStack) OutstandingOpacity() float64 {
	return s.outstanding.Opacity
}

// OutstandingColorFilter returns the deferred color filter, or nil.
func (s *LayerStateStack) OutstandingColorFilter() paint.ColorFilter {
	return s.outstanding.ColorFilter
}

// OutstandingImageFilter returns the deferred image filter, or nil.
func (s *LayerStateStack) OutstandingImageFilter() paint.ImageFilter {
	return s.outstanding.ImageFilter
}

// OutstandingBounds returns the bounds a flush would use for its
// saveLayer.
func (s *LayerStateStack) OutstandingBounds() geom.Rect {
	return s.outstanding.SaveLayerBounds
}

// Matrix returns the cumulative matrix.
func (s *LayerStateStack) Matrix() geom.Matrix {
	return s.matrix
}

// DeviceCullRect returns the conservative device-space visible area.
func (s *LayerStateStack) DeviceCullRect() geom.Rect {
	return s.cull
}

// LocalCullRect returns the cull rect in the current local coordinates.
// It is unbounded when the matrix is singular or has perspective.
func (s *LayerStateStack) LocalCullRect() geom.Rect {
	if s.cull.IsEmpty() {
		return geom.EmptyRect()
	}
	if s.cull.IsGiant() || s.matrix.HasPerspective() {
		return geom.GiantRect()
	}
	inv, ok := s.matrix.Invert()
	if !ok {
		return geom.GiantRect()
	}
	return inv.MapRect(s.cull)
}

// PaintingIsNop reports whether anything drawn now would be invisible.
func (s *LayerStateStack) PaintingIsNop() bool {
	return s.outstanding.Opacity <= 0
}

// ContentCulled reports whether content with the given local bounds lies
// entirely outside the cull rect. Culling is disabled under perspective.
func (s *LayerStateStack) ContentCulled(bounds geom.Rect) bool {
	if s.cull.IsEmpty() || bounds.IsEmpty() {
		return true
	}
	if s.matrix.HasPerspective() {
		return false
	}
	return !s.matrix.MapRect(bounds).Intersects(s.cull)
}

// SetDelegate detaches the current delegate, decommissioning it, and
// replays every live entry onto d. A nil d only detaches.
func (s *LayerStateStack) SetDelegate(d Delegate) {
	if s.delegate == d {
		return
	}
	if s.delegate != nil {
		s.delegate.Decommission()
	}
	s.delegate = d
	if d != nil {
		flow.Logger().Debug("state: delegate attached",
			"delegate", fmt.Sprintf("%T", d), "entries", len(s.entries))
		s.reapplyAll()
	}
}

// ClearDelegate detaches and decommissions the current delegate.
func (s *LayerStateStack) ClearDelegate() {
	s.SetDelegate(nil)
}

// SetCanvasDelegate attaches c. On an empty stack the canvas bounds and
// matrix become the initial state.
func (s *LayerStateStack) SetCanvasDelegate(c *canvas.Canvas) {
	if c == nil {
		s.ClearDelegate()
		return
	}
	if len(s.entries) == 0 {
		s.SetInitialState(c.Bounds(), c.Matrix())
	}
	s.SetDelegate(c)
}

// SetBuilderDelegate attaches b. On an empty stack the builder's cull rect
// and matrix become the initial state.
func (s *LayerStateStack) SetBuilderDelegate(b *dl.Builder) {
	if b == nil {
		s.ClearDelegate()
		return
	}
	if len(s.entries) == 0 {
		s.SetInitialState(b.CullRect(), b.Matrix())
	}
	s.SetDelegate(b)
}

// SetPrerollDelegate attaches a new PrerollDelegate and returns it. On an
// empty stack cull and matrix become the initial state.
func (s *LayerStateStack) SetPrerollDelegate(cull geom.Rect, matrix geom.Matrix) *PrerollDelegate {
	if len(s.entries) == 0 {
		s.SetInitialState(cull, matrix)
	}
	p := NewPrerollDelegate(s.initialMatrix)
	s.SetDelegate(p)
	return p
}

// reapplyAll rebuilds the running state from the initial state while
// replaying every entry onto the new delegate. The result matches the
// state before the swap.
func (s *LayerStateStack) reapplyAll() {
	s.outstanding = defaultAttributes()
	s.matrix = s.initialMatrix
	s.cull = s.initialCull
	for _, e := range s.entries {
		s.reapply(e)
	}
}

func (s *LayerStateStack) push(e stateEntry) {
	s.entries = append(s.entries, e)
	s.apply(e)
}

// restoreToDepth pops and restores entries until depth remain.
func (s *LayerStateStack) restoreToDepth(depth int) {
	if depth > len(s.entries) {
		panic(fmt.Sprintf("state: restore to depth %d but stack depth is %d", depth, len(s.entries)))
	}
	for len(s.entries) > depth {
		last := len(s.entries) - 1
		s.restore(s.entries[last])
		s.entries[last] = nil
		s.entries = s.entries[:last]
	}
}

// saveLayer flushes the outstanding attributes into a real saveLayer.
func (s *LayerStateStack) saveLayer(bounds geom.Rect) {
	s.push(&saveLayerEntry{bounds: bounds, blend: paint.BlendNormal})
}

// flush realizes the outstanding attributes with their own bounds.
func (s *LayerStateStack) flush() {
	s.saveLayer(s.outstanding.SaveLayerBounds)
}

// maybeSaveLayerForTransform protects an outstanding image filter, which
// must see content in the coordinate space it was applied in.
func (s *LayerStateStack) maybeSaveLayerForTransform() {
	if s.outstanding.ImageFilter != nil {
		s.flush()
	}
}

// maybeSaveLayerForClip protects an outstanding image filter, whose output
// may reach beyond a clip applied later.
func (s *LayerStateStack) maybeSaveLayerForClip() {
	if s.outstanding.ImageFilter != nil {
		s.flush()
	}
}

func (s *LayerStateStack) pushOpacity(bounds geom.Rect, opacity float64) {
	s.push(&opacityEntry{bounds: bounds, opacity: opacity})
}

// pushColorFilter never composes filters: any outstanding filter is
// flushed first.
func (s *LayerStateStack) pushColorFilter(bounds geom.Rect, f paint.ColorFilter) {
	if s.outstanding.ColorFilter != nil || s.outstanding.ImageFilter != nil {
		s.flush()
	}
	s.push(&colorFilterEntry{bounds: bounds, filter: f})
}

func (s *LayerStateStack) pushImageFilter(bounds geom.Rect, f paint.ImageFilter) {
	if s.outstanding.ImageFilter != nil {
		s.flush()
	}
	s.push(&imageFilterEntry{bounds: bounds, filter: f})
}

func (s *LayerStateStack) pushBackdrop(bounds geom.Rect, f paint.ImageFilter, blend paint.BlendMode, id int64) {
	s.push(&backdropEntry{bounds: bounds, filter: f, blend: blend, id: id})
}

func (s *LayerStateStack) pushTranslate(dx, dy float64) {
	s.maybeSaveLayerForTransform()
	s.push(&translateEntry{dx: dx, dy: dy})
}

func (s *LayerStateStack) pushTransform(m geom.Matrix) {
	if isTranslateOnly(m) {
		tx, ty := m.Translation()
		s.pushTranslate(tx, ty)
		return
	}
	s.maybeSaveLayerForTransform()
	if m.IsAffine() {
		s.push(&transformMatrixEntry{m: m})
		return
	}
	s.push(&transformM44Entry{m: m})
}

func (s *LayerStateStack) pushIntegralTransform() {
	s.maybeSaveLayerForTransform()
	s.push(&integralTransformEntry{})
}

func (s *LayerStateStack) pushClipRect(r geom.Rect, op geom.ClipOp, isAA bool) {
	s.maybeSaveLayerForClip()
	s.push(&clipRectEntry{rect: r, op: op, isAA: isAA})
}

func (s *LayerStateStack) pushClipRRect(rr geom.RRect, op geom.ClipOp, isAA bool) {
	s.maybeSaveLayerForClip()
	s.push(&clipRRectEntry{rrect: rr, op: op, isAA: isAA})
}

func (s *LayerStateStack) pushClipPath(p *geom.Path, op geom.ClipOp, isAA bool) {
	s.maybeSaveLayerForClip()
	s.push(&clipPathEntry{path: p, op: op, isAA: isAA})
}

func isTranslateOnly(m geom.Matrix) bool {
	v := m.Mat4()
	return m.IsAffine() && v[0] == 1 && v[1] == 0 && v[4] == 0 && v[5] == 1
}
