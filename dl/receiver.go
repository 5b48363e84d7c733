package dl

import (
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// Receiver consumes replayed commands. It is implemented by the immediate
// canvas and by Builder itself, which lets one display list be nested
// into another.
type Receiver interface {
	Save()
	SaveLayer(bounds *geom.Rect, p *paint.Paint, backdrop paint.ImageFilter)
	Restore()

	Translate(dx, dy float64)
	Transform(m geom.Matrix)
	SetTransform(m geom.Matrix)
	// Matrix returns the receiver's current matrix.
	Matrix() geom.Matrix

	ClipRect(r geom.Rect, op geom.ClipOp, isAA bool)
	ClipRRect(rr geom.RRect, op geom.ClipOp, isAA bool)
	ClipPath(p *geom.Path, op geom.ClipOp, isAA bool)

	DrawRect(r geom.Rect, c gg.RGBA)
	DrawPath(p *geom.Path, c gg.RGBA)
	DrawImage(img *image.RGBA, dst geom.Rect, p *paint.Paint)
}
