package layer

import (
	"github.com/gogpu/flow/geom"
)

// TransformLayer applies a matrix to its children.
type TransformLayer struct {
	ContainerLayer
	Matrix geom.Matrix
}

// NewTransformLayer creates a transform layer.
func NewTransformLayer(m geom.Matrix) *TransformLayer {
	return &TransformLayer{ContainerLayer: *NewContainerLayer(), Matrix: m}
}

// Preroll implements Layer.
func (l *TransformLayer) Preroll(ctx *PrerollContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.Transform(l.Matrix)
	child := l.prerollChildren(ctx)
	l.setPaintBounds(l.Matrix.MapRect(child))
}

// Paint implements Layer.
func (l *TransformLayer) Paint(ctx *PaintContext) {
	mc := ctx.State.Save()
	defer mc.Restore()
	mc.Transform(l.Matrix)
	l.paintChildren(ctx)
}
