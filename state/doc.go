// Package state implements the layer state stack: a save/restore machine
// that tracks the cumulative matrix, a conservative device cull rect and
// the deferred paint attributes (opacity, color filter, image filter) of a
// layer tree traversal.
//
// Layers open a MutatorContext with LayerStateStack.Save, apply zero or
// more transforms, clips and attributes through it, visit their children
// and restore it, usually with defer:
//
//	mc := stack.Save()
//	defer mc.Restore()
//	mc.Translate(offset.X, offset.Y)
//	mc.ApplyOpacity(bounds, alpha)
//	for _, child := range children {
//		child.Paint(ctx)
//	}
//
// Attributes are deferred as long as possible and coalesced into a single
// offscreen group (saveLayer) on the attached Delegate only when an
// incompatible state change, or a caller that can not apply them itself,
// forces it. The delegate may be an immediate canvas, a display list
// builder, a bounds-only PrerollDelegate or nothing at all; the stack keeps
// tracking state in every case.
//
// A LayerStateStack is not safe for concurrent use.
package state
