package canvas

import (
	"image"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"

	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// DrawRect fills r with col.
func (c *Canvas) DrawRect(r geom.Rect, col gg.RGBA) {
	if r.IsEmpty() || col.A <= 0 {
		return
	}
	c.dc.ClearPath()
	c.dc.DrawRectangle(r.Left, r.Top, r.Width(), r.Height())
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	c.record(c.dc.Fill())
}

// DrawPath fills p with col.
func (c *Canvas) DrawPath(p *geom.Path, col gg.RGBA) {
	if p.IsEmpty() || col.A <= 0 {
		return
	}
	c.dc.ClearPath()
	c.appendPath(p)
	c.dc.SetRGBA(col.R, col.G, col.B, col.A)
	c.record(c.dc.Fill())
}

// DrawImage draws img scaled into dst. The paint's filters run on a copy
// of the image; its opacity and blend mode apply while compositing.
func (c *Canvas) DrawImage(img *image.RGBA, dst geom.Rect, p *paint.Paint) {
	if img == nil || dst.IsEmpty() {
		return
	}
	opacity := p.ClampedOpacity()
	if opacity <= 0 {
		return
	}
	blend := paint.BlendNormal
	if p != nil {
		blend = p.BlendMode
	}
	if p.HasFilters() {
		img = filtered(img, p)
	}
	c.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             dst.Left,
		Y:             dst.Top,
		DstWidth:      dst.Width(),
		DstHeight:     dst.Height(),
		Interpolation: gg.InterpBilinear,
		Opacity:       opacity,
		BlendMode:     blend,
	})
}

func filtered(img *image.RGBA, p *paint.Paint) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	if p.ColorFilter != nil {
		p.ColorFilter.FilterImage(out)
	}
	if p.ImageFilter != nil {
		out = p.ImageFilter.FilterImage(out)
	}
	return out
}
