package state

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// MutatorContext is a scoped handle returned by LayerStateStack.Save.
// Everything pushed through it is undone by a single Restore.
type MutatorContext struct {
	stack    *LayerStateStack
	depth    int
	restored bool
}

// Depth returns the stack depth the context restores to.
func (mc *MutatorContext) Depth() int {
	return mc.depth
}

// Restore pops every entry pushed since the context was opened. It panics
// when called twice or when an outer context was restored first.
func (mc *MutatorContext) Restore() {
	if mc.restored {
		panic("state: MutatorContext restored twice")
	}
	mc.stack.restoreToDepth(mc.depth)
	mc.restored = true
}

func (mc *MutatorContext) check(op string) {
	if mc.restored {
		panic(fmt.Sprintf("state: %s on a restored MutatorContext", op))
	}
}

// SaveLayer starts a group, realizing the outstanding attributes.
func (mc *MutatorContext) SaveLayer(bounds geom.Rect) {
	mc.check("SaveLayer")
	mc.stack.saveLayer(bounds)
}

// ApplyOpacity folds alpha into the outstanding opacity. Opaque values are
// ignored.
func (mc *MutatorContext) ApplyOpacity(bounds geom.Rect, opacity float64) {
	mc.check("ApplyOpacity")
	if opacity < 1 {
		mc.stack.pushOpacity(bounds, opacity)
	}
}

// ApplyColorFilter sets the outstanding color filter. A nil filter is
// ignored.
func (mc *MutatorContext) ApplyColorFilter(bounds geom.Rect, f paint.ColorFilter) {
	mc.check("ApplyColorFilter")
	if f != nil {
		mc.stack.pushColorFilter(bounds, f)
	}
}

// ApplyImageFilter sets the outstanding image filter. A nil filter is
// ignored.
func (mc *MutatorContext) ApplyImageFilter(bounds geom.Rect, f paint.ImageFilter) {
	mc.check("ApplyImageFilter")
	if f != nil {
		mc.stack.pushImageFilter(bounds, f)
	}
}

// ApplyBackdropFilter opens a group whose initial contents are the filtered
// pixels already drawn beneath bounds. The id tags the backdrop for
// embedders and may be zero.
func (mc *MutatorContext) ApplyBackdropFilter(bounds geom.Rect, f paint.ImageFilter, blend paint.BlendMode, id int64) {
	mc.check("ApplyBackdropFilter")
	mc.stack.pushBackdrop(bounds, f, blend, id)
}

// Translate moves the origin.
func (mc *MutatorContext) Translate(dx, dy float64) {
	mc.check("Translate")
	if dx != 0 || dy != 0 {
		mc.stack.pushTranslate(dx, dy)
	}
}

// Transform concatenates m. Identity matrices are ignored.
func (mc *MutatorContext) Transform(m geom.Matrix) {
	mc.check("Transform")
	if !m.IsIdentity() {
		mc.stack.pushTransform(m)
	}
}

// TransformAffine concatenates a gg affine matrix.
func (mc *MutatorContext) TransformAffine(m gg.Matrix) {
	mc.Transform(geom.FromAffine(m))
}

// IntegralTransform snaps the translation of the current matrix to whole
// pixels when the matrix is scale/translate only.
func (mc *MutatorContext) IntegralTransform() {
	mc.check("IntegralTransform")
	mc.stack.pushIntegralTransform()
}

// ClipRect intersects the clip with r.
func (mc *MutatorContext) ClipRect(r geom.Rect, isAA bool) {
	mc.check("ClipRect")
	mc.stack.pushClipRect(r, geom.ClipIntersect, isAA)
}

// ClipRRect intersects the clip with rr.
func (mc *MutatorContext) ClipRRect(rr geom.RRect, isAA bool) {
	mc.check("ClipRRect")
	mc.stack.pushClipRRect(rr, geom.ClipIntersect, isAA)
}

// ClipPath intersects the clip with p.
func (mc *MutatorContext) ClipPath(p *geom.Path, isAA bool) {
	mc.check("ClipPath")
	mc.stack.pushClipPath(p, geom.ClipIntersect, isAA)
}

// DiffClipRect removes r from the clip.
func (mc *MutatorContext) DiffClipRect(r geom.Rect, isAA bool) {
	mc.check("DiffClipRect")
	mc.stack.pushClipRect(r, geom.ClipDifference, isAA)
}

// DiffClipRRect removes rr from the clip.
func (mc *MutatorContext) DiffClipRRect(rr geom.RRect, isAA bool) {
	mc.check("DiffClipRRect")
	mc.stack.pushClipRRect(rr, geom.ClipDifference, isAA)
}

// DiffClipPath removes p from the clip.
func (mc *MutatorContext) DiffClipPath(p *geom.Path, isAA bool) {
	mc.check("DiffClipPath")
	mc.stack.pushClipPath(p, geom.ClipDifference, isAA)
}

// AutoRestore undoes a protective saveLayer issued by ApplyState.
type AutoRestore struct {
	stack    *LayerStateStack
	depth    int
	restored bool
}

// Restore pops the protective layer, if one was pushed. Calling it twice is
// a no-op.
func (ar *AutoRestore) Restore() {
	if ar.restored {
		return
	}
	ar.restored = true
	ar.stack.restoreToDepth(ar.depth)
}
