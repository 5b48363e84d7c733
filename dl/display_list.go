package dl

import (
	"sync/atomic"

	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

var lastID atomic.Uint64

// nextID returns a process-unique display list identity. Ids are never
// reused, so a recreated list can not alias a cached one.
func nextID() uint64 {
	return lastID.Add(1)
}

// DisplayList is an immutable recording produced by Builder.Build.
type DisplayList struct {
	id              uint64
	commands        []Command
	bounds          geom.Rect
	canApplyOpacity bool
}

// UniqueID returns the identity assigned when the list was built.
func (d *DisplayList) UniqueID() uint64 {
	return d.id
}

// Commands returns the recorded commands.
func (d *DisplayList) Commands() []Command {
	return d.commands
}

// Bounds returns the area touched by drawing, in the list's coordinate
// space.
func (d *DisplayList) Bounds() geom.Rect {
	return d.bounds
}

// OpCount returns the number of recorded commands.
func (d *DisplayList) OpCount() int {
	return len(d.commands)
}

// CanApplyOpacity reports whether group opacity can be folded into each
// drawing command instead of needing an offscreen group. That holds when
// no two drawings overlap and the list has no layers of its own.
func (d *DisplayList) CanApplyOpacity() bool {
	return d.canApplyOpacity
}

// Playback replays the list onto r. The receiver's state is saved before
// and restored after, and SetTransform commands are interpreted relative to
// the receiver's matrix at the start of playback.
func (d *DisplayList) Playback(r Receiver) {
	d.PlaybackWithOpacity(r, 1)
}

// PlaybackWithOpacity replays the list with every drawing's alpha scaled
// by opacity. The result only matches an offscreen group when
// CanApplyOpacity is true.
func (d *DisplayList) PlaybackWithOpacity(r Receiver, opacity float64) {
	if opacity <= 0 {
		return
	}
	base := r.Matrix()
	r.Save()
	defer r.Restore()

	for _, cmd := range d.commands {
		switch c := cmd.(type) {
		case SaveCommand:
			r.Save()
		case SaveLayerCommand:
			r.SaveLayer(c.Bounds, c.Paint, c.Backdrop)
		case RestoreCommand:
			r.Restore()
		case TranslateCommand:
			r.Translate(c.DX, c.DY)
		case TransformCommand:
			r.Transform(c.Matrix)
		case SetTransformCommand:
			r.SetTransform(base.Concat(c.Matrix))
		case ClipRectCommand:
			r.ClipRect(c.Rect, c.Op, c.AA)
		case ClipRRectCommand:
			r.ClipRRect(c.RRect, c.Op, c.AA)
		case ClipPathCommand:
			r.ClipPath(c.Path, c.Op, c.AA)
		case DrawRectCommand:
			col := c.Color
			col.A *= opacity
			r.DrawRect(c.Rect, col)
		case DrawPathCommand:
			col := c.Color
			col.A *= opacity
			r.DrawPath(c.Path, col)
		case DrawImageCommand:
			r.DrawImage(c.Image, c.Dst, scaledPaint(c.Paint, opacity))
		}
	}
}

func scaledPaint(p *paint.Paint, opacity float64) *paint.Paint {
	if opacity >= 1 {
		return p
	}
	out := paint.New()
	if p != nil {
		out = *p
	}
	out.Opacity *= opacity
	return &out
}
