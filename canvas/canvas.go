// Package canvas adapts a gg.Context to the immediate-mode drawing surface
// used by the layer state stack and by display list playback.
//
// gg keeps a single affine matrix, so perspective components of matrices
// passed to a Canvas are dropped. Offscreen groups map onto gg layers;
// color and image filters are applied to the layer pixels when the group
// is restored.
package canvas

import (
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// frame records what a Save or SaveLayer pushed so Restore can undo it.
type frame struct {
	layer bool
	paint *paint.Paint
}

// Canvas draws into a gg.Context.
//
// Canvas is not safe for concurrent use.
type Canvas struct {
	dc     *gg.Context
	frames []frame
	err    error
}

// New wraps dc. The context's current matrix and clip become the canvas
// base state.
func New(dc *gg.Context) *Canvas {
	return &Canvas{dc: dc}
}

// NewOffscreen creates a canvas over a new transparent context of the given
// size.
func NewOffscreen(width, height int) *Canvas {
	return New(gg.NewContext(width, height))
}

// Context returns the wrapped context.
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

// Bounds returns the device rect of the drawing surface.
func (c *Canvas) Bounds() geom.Rect {
	return geom.XYWH(0, 0, float64(c.dc.Width()), float64(c.dc.Height()))
}

// Err returns the first error reported by gg while filling.
func (c *Canvas) Err() error {
	return c.err
}

func (c *Canvas) record(err error) {
	if err != nil && c.err == nil {
		c.err = err
	}
}

// Snapshot returns a copy of the current drawing target's pixels.
func (c *Canvas) Snapshot() *image.RGBA {
	src := c.dc.Image()
	if img, ok := src.(*image.RGBA); ok {
		return img
	}
	b := src.Bounds()
	img := image.NewRGBA(b)
	draw.Draw(img, b, src, b.Min, draw.Src)
	return img
}

// SaveCount returns the number of outstanding Save and SaveLayer calls.
func (c *Canvas) SaveCount() int {
	return len(c.frames)
}

// RestoreToCount restores until SaveCount equals count.
func (c *Canvas) RestoreToCount(count int) {
	for len(c.frames) > count {
		c.Restore()
	}
}

// Decommission unwinds every save made through this canvas, leaving the
// context as it was when the canvas was created.
func (c *Canvas) Decommission() {
	c.RestoreToCount(0)
}

// Matrix returns the context's current matrix.
func (c *Canvas) Matrix() geom.Matrix {
	return geom.FromAffine(c.dc.GetTransform())
}

// Save pushes the matrix and clip.
func (c *Canvas) Save() {
	c.dc.Push()
	c.frames = append(c.frames, frame{})
}

// SaveLayer starts an offscreen group. Bounds, when set, clip the group.
// A backdrop filter samples the current target, filters it and seeds the
// group with the result.
func (c *Canvas) SaveLayer(bounds *geom.Rect, p *paint.Paint, backdrop paint.ImageFilter) {
	var under *image.RGBA
	if backdrop != nil {
		under = c.Snapshot()
	}

	c.dc.Push()
	area := c.Bounds().ImageRect()
	if bounds != nil {
		c.clipRect(*bounds)
		area = c.Matrix().MapRect(*bounds).RoundOut().ImageRect().Intersect(area)
	}

	f := frame{layer: true}
	blend := paint.BlendNormal
	if p != nil {
		cp := *p
		f.paint = &cp
		blend = cp.BlendMode
	}
	c.dc.PushLayer(blend, p.ClampedOpacity())

	if under != nil && !area.Empty() {
		c.drawDevice(backdrop.FilterImage(under), area)
	}
	c.frames = append(c.frames, f)
}

// Restore pops the last Save or SaveLayer. A layer is filtered and then
// composited into its parent. Restoring with nothing saved is a no-op.
func (c *Canvas) Restore() {
	if len(c.frames) == 0 {
		return
	}
	f := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]

	if f.layer {
		if f.paint.HasFilters() {
			c.filterLayer(f.paint)
		}
		c.dc.PopLayer()
	}
	c.dc.Pop()
}

func (c *Canvas) filterLayer(p *paint.Paint) {
	img := c.Snapshot()
	if p.ColorFilter != nil {
		p.ColorFilter.FilterImage(img)
	}
	if p.ImageFilter != nil {
		img = p.ImageFilter.FilterImage(img)
	}
	c.dc.Clear()
	c.drawDevice(img, img.Bounds())
}

// drawDevice copies the area of img onto the target at the same device
// position, ignoring the matrix and clip.
func (c *Canvas) drawDevice(img *image.RGBA, area image.Rectangle) {
	m := c.dc.GetTransform()
	c.dc.Identity()
	c.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             float64(area.Min.X),
		Y:             float64(area.Min.Y),
		SrcRect:       &area,
		Interpolation: gg.InterpNearest,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
	c.dc.SetTransform(m)
}

// Translate pre-translates the matrix.
func (c *Canvas) Translate(dx, dy float64) {
	c.dc.Translate(dx, dy)
}

// Transform pre-concatenates the affine part of m.
func (c *Canvas) Transform(m geom.Matrix) {
	c.dc.Transform(m.Affine())
}

// SetTransform replaces the matrix with the affine part of m.
func (c *Canvas) SetTransform(m geom.Matrix) {
	c.dc.SetTransform(m.Affine())
}
