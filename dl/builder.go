package dl

import (
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// maxOverlapChecks bounds the pairwise overlap test used to decide whether
// a display list can take group opacity on its own.
const maxOverlapChecks = 64

// builderState is the state captured by Save and SaveLayer.
type builderState struct {
	matrix geom.Matrix
	clip   geom.Rect

	// Set for SaveLayer only.
	layer       bool
	outerBounds geom.Rect
	layerBounds *geom.Rect
	filter      paint.ImageFilter
	backdrop    bool
}

// Builder records commands into a DisplayList while tracking the matrix,
// a conservative clip and the bounds of everything drawn.
//
// Builder is not safe for concurrent use.
type Builder struct {
	commands []Command
	cull     geom.Rect

	matrix geom.Matrix
	clip   geom.Rect
	saves  []builderState

	bounds     geom.Rect
	drawBounds []geom.Rect
	hasLayers  bool
}

// NewBuilder creates a builder with an unbounded cull rect.
func NewBuilder() *Builder {
	return NewBuilderWithCull(geom.GiantRect())
}

// NewBuilderWithCull creates a builder whose drawing is limited to cull.
func NewBuilderWithCull(cull geom.Rect) *Builder {
	b := &Builder{cull: cull}
	b.reset()
	return b
}

func (b *Builder) reset() {
	b.commands = make([]Command, 0, 32)
	b.matrix = geom.Identity()
	b.clip = b.cull
	b.saves = b.saves[:0]
	b.bounds = geom.EmptyRect()
	b.drawBounds = b.drawBounds[:0]
	b.hasLayers = false
}

// CullRect returns the cull rect the builder was created with.
func (b *Builder) CullRect() geom.Rect {
	return b.cull
}

// Commands returns the commands recorded so far.
func (b *Builder) Commands() []Command {
	return b.commands
}

// SaveCount returns the number of outstanding Save and SaveLayer calls.
func (b *Builder) SaveCount() int {
	return len(b.saves)
}

// Matrix implements Receiver.
func (b *Builder) Matrix() geom.Matrix {
	return b.matrix
}

// Save implements Receiver.
func (b *Builder) Save() {
	b.saves = append(b.saves, builderState{matrix: b.matrix, clip: b.clip})
	b.commands = append(b.commands, SaveCommand{})
}

// SaveLayer implements Receiver. The bounds and paint are copied.
func (b *Builder) SaveLayer(bounds *geom.Rect, p *paint.Paint, backdrop paint.ImageFilter) {
	st := builderState{
		matrix:      b.matrix,
		clip:        b.clip,
		layer:       true,
		outerBounds: b.bounds,
		backdrop:    backdrop != nil,
	}
	cmd := SaveLayerCommand{Backdrop: backdrop}
	if bounds != nil {
		r := *bounds
		cmd.Bounds = &r
		st.layerBounds = &r
	}
	if p != nil {
		cp := *p
		cmd.Paint = &cp
		st.filter = cp.ImageFilter
	}
	b.saves = append(b.saves, st)
	b.commands = append(b.commands, cmd)
	b.bounds = geom.EmptyRect()
	b.hasLayers = true
}

// Restore implements Receiver. Restoring with nothing saved is a no-op.
func (b *Builder) Restore() {
	if len(b.saves) == 0 {
		return
	}
	st := b.saves[len(b.saves)-1]
	b.saves = b.saves[:len(b.saves)-1]

	if st.layer {
		inner := b.bounds
		if st.backdrop {
			area := st.clip
			if st.layerBounds != nil {
				area = st.matrix.MapRect(*st.layerBounds)
			}
			inner = inner.Union(area)
		}
		if st.filter != nil {
			inner = st.filter.MapBounds(inner)
		}
		if clipped, ok := inner.Intersect(st.clip); ok {
			b.bounds = st.outerBounds.Union(clipped)
		} else {
			b.bounds = st.outerBounds
		}
	}

	b.matrix = st.matrix
	b.clip = st.clip
	b.commands = append(b.commands, RestoreCommand{})
}

// RestoreToCount restores until SaveCount equals count.
func (b *Builder) RestoreToCount(count int) {
	for len(b.saves) > count && len(b.saves) > 0 {
		b.Restore()
	}
}

// Decommission unwinds every outstanding save so the recording stays
// balanced when the builder is detached mid-frame.
func (b *Builder) Decommission() {
	b.RestoreToCount(0)
}

// Translate implements Receiver.
func (b *Builder) Translate(dx, dy float64) {
	b.matrix = b.matrix.PreTranslate(dx, dy)
	b.commands = append(b.commands, TranslateCommand{DX: dx, DY: dy})
}

// Transform implements Receiver.
func (b *Builder) Transform(m geom.Matrix) {
	b.matrix = b.matrix.Concat(m)
	b.commands = append(b.commands, TransformCommand{Matrix: m})
}

// SetTransform implements Receiver.
func (b *Builder) SetTransform(m geom.Matrix) {
	b.matrix = m
	b.commands = append(b.commands, SetTransformCommand{Matrix: m})
}

// ClipRect implements Receiver.
func (b *Builder) ClipRect(r geom.Rect, op geom.ClipOp, isAA bool) {
	b.narrowClip(r, op)
	b.commands = append(b.commands, ClipRectCommand{Rect: r, Op: op, AA: isAA})
}

// ClipRRect implements Receiver.
func (b *Builder) ClipRRect(rr geom.RRect, op geom.ClipOp, isAA bool) {
	b.narrowClip(rr.Bounds(), op)
	b.commands = append(b.commands, ClipRRectCommand{RRect: rr, Op: op, AA: isAA})
}

// ClipPath implements Receiver.
func (b *Builder) ClipPath(p *geom.Path, op geom.ClipOp, isAA bool) {
	b.narrowClip(p.Bounds(), op)
	b.commands = append(b.commands, ClipPathCommand{Path: p, Op: op, AA: isAA})
}

// narrowClip tracks intersect clips only; difference clips never grow the
// drawable area so ignoring them keeps the bounds conservative.
func (b *Builder) narrowClip(r geom.Rect, op geom.ClipOp) {
	if op != geom.ClipIntersect || b.matrix.HasPerspective() {
		return
	}
	if clipped, ok := b.clip.Intersect(b.matrix.MapRect(r)); ok {
		b.clip = clipped
	} else {
		b.clip = geom.EmptyRect()
	}
}

// DrawRect implements Receiver.
func (b *Builder) DrawRect(r geom.Rect, c gg.RGBA) {
	b.accumulate(r)
	b.commands = append(b.commands, DrawRectCommand{Rect: r, Color: c})
}

// DrawPath implements Receiver.
func (b *Builder) DrawPath(p *geom.Path, c gg.RGBA) {
	b.accumulate(p.Bounds())
	b.commands = append(b.commands, DrawPathCommand{Path: p, Color: c})
}

// DrawImage implements Receiver.
func (b *Builder) DrawImage(img *image.RGBA, dst geom.Rect, p *paint.Paint) {
	cmd := DrawImageCommand{Image: img, Dst: dst}
	if p != nil {
		cp := *p
		cmd.Paint = &cp
		if cp.ImageFilter != nil {
			dst = cp.ImageFilter.MapBounds(dst)
		}
	}
	b.accumulate(dst)
	b.commands = append(b.commands, cmd)
}

func (b *Builder) accumulate(local geom.Rect) {
	dev, ok := b.matrix.MapRect(local).Intersect(b.clip)
	if !ok {
		return
	}
	b.bounds = b.bounds.Union(dev)
	b.drawBounds = append(b.drawBounds, dev)
}

// Build balances any outstanding saves, returns the finished display list
// and resets the builder for reuse.
func (b *Builder) Build() *DisplayList {
	b.RestoreToCount(0)
	d := &DisplayList{
		id:              nextID(),
		commands:        b.commands,
		bounds:          b.bounds,
		canApplyOpacity: !b.hasLayers && disjoint(b.drawBounds),
	}
	b.reset()
	return d
}

// disjoint reports whether no two rects overlap. Long lists are treated as
// overlapping.
func disjoint(rects []geom.Rect) bool {
	if len(rects) > maxOverlapChecks {
		return false
	}
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			if rects[i].Intersects(rects[j]) {
				return false
			}
		}
	}
	return true
}
