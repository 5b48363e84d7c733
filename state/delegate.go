package state

import (
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// Delegate receives the state changes the stack decides to realize. The
// stack keeps its own copy of the matrix and cull rect; delegates only
// mirror them.
//
// It is implemented by *canvas.Canvas, *dl.Builder and *PrerollDelegate.
type Delegate interface {
	Save()
	// SaveLayer starts an offscreen group. Bounds and p may be nil.
	SaveLayer(bounds *geom.Rect, p *paint.Paint, backdrop paint.ImageFilter)
	Restore()

	Translate(dx, dy float64)
	Transform(m geom.Matrix)
	SetTransform(m geom.Matrix)

	ClipRect(r geom.Rect, op geom.ClipOp, isAA bool)
	ClipRRect(rr geom.RRect, op geom.ClipOp, isAA bool)
	ClipPath(p *geom.Path, op geom.ClipOp, isAA bool)

	// Decommission unwinds everything the stack pushed onto the delegate.
	// It is called when the delegate is detached.
	Decommission()
}
