package canvas

import (
	"image"
	"testing"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/dl"
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

var _ dl.Receiver = (*Canvas)(nil)

var red = gg.RGBA{R: 1, A: 1}

func pixel(t *testing.T, c *Canvas, x, y int) (r, g, b, a uint8) {
	t.Helper()
	img := c.Snapshot()
	p := img.RGBAAt(x, y)
	return p.R, p.G, p.B, p.A
}

func TestNewOffscreenBounds(t *testing.T) {
	c := NewOffscreen(64, 32)
	if got, want := c.Bounds(), geom.XYWH(0, 0, 64, 32); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if !c.Matrix().IsIdentity() {
		t.Error("Matrix() of a new canvas is not identity")
	}
}

func TestSaveRestoreMatrix(t *testing.T) {
	c := NewOffscreen(10, 10)
	c.Save()
	c.Translate(3, 4)
	c.Transform(geom.Scaling(2, 2))
	if tx, ty := c.Matrix().Translation(); tx != 3 || ty != 4 {
		t.Errorf("Translation() = (%v, %v), want (3, 4)", tx, ty)
	}
	c.Restore()
	if !c.Matrix().IsIdentity() {
		t.Error("Restore() did not reset the matrix")
	}
	if c.SaveCount() != 0 {
		t.Errorf("SaveCount() = %d, want 0", c.SaveCount())
	}
}

func TestDecommissionUnwinds(t *testing.T) {
	c := NewOffscreen(10, 10)
	c.Save()
	c.SaveLayer(nil, nil, nil)
	c.Save()
	c.Translate(1, 1)
	if c.SaveCount() != 3 {
		t.Fatalf("SaveCount() = %d, want 3", c.SaveCount())
	}
	c.Decommission()
	if c.SaveCount() != 0 {
		t.Errorf("SaveCount() = %d, want 0", c.SaveCount())
	}
	if !c.Matrix().IsIdentity() {
		t.Error("Decommission() did not restore the matrix")
	}
	c.Restore() // extra restore is a no-op
}

func TestDrawRect(t *testing.T) {
	c := NewOffscreen(20, 20)
	c.DrawRect(geom.XYWH(0, 0, 10, 10), red)
	if err := c.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	if r, _, _, a := pixel(t, c, 5, 5); r < 200 || a < 200 {
		t.Errorf("inside pixel = (%d, a=%d), want opaque red", r, a)
	}
	if _, _, _, a := pixel(t, c, 15, 15); a != 0 {
		t.Errorf("outside pixel alpha = %d, want 0", a)
	}
}

func TestSaveLayerOpacity(t *testing.T) {
	c := NewOffscreen(20, 20)
	p := paint.New()
	p.Opacity = 0.5
	c.SaveLayer(nil, &p, nil)
	c.DrawRect(geom.XYWH(0, 0, 20, 20), red)
	c.Restore()

	if _, _, _, a := pixel(t, c, 10, 10); a < 100 || a > 160 {
		t.Errorf("alpha = %d, want about half", a)
	}
}

func TestSaveLayerColorFilter(t *testing.T) {
	c := NewOffscreen(20, 20)
	p := paint.New()
	p.ColorFilter = paint.Invert()
	c.SaveLayer(nil, &p, nil)
	c.DrawRect(geom.XYWH(0, 0, 20, 20), red)
	c.Restore()

	r, g, b, a := pixel(t, c, 10, 10)
	if r > 50 || g < 200 || b < 200 || a < 200 {
		t.Errorf("pixel = (%d, %d, %d, %d), want cyan", r, g, b, a)
	}
}

func TestSaveLayerBackdrop(t *testing.T) {
	c := NewOffscreen(20, 20)
	c.DrawRect(geom.XYWH(0, 0, 20, 20), red)

	bounds := geom.XYWH(0, 0, 10, 20)
	c.SaveLayer(&bounds, nil, paint.FromColorFilter(paint.Invert()))
	c.Restore()

	if r, g, _, _ := pixel(t, c, 5, 10); r > 50 || g < 200 {
		t.Errorf("backdrop pixel = (r=%d, g=%d), want inverted", r, g)
	}
	if r, g, _, _ := pixel(t, c, 15, 10); r < 200 || g > 50 {
		t.Errorf("outside pixel = (r=%d, g=%d), want untouched red", r, g)
	}
}

func TestDrawImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i+2] = 255
		img.Pix[i+3] = 255
	}
	c := NewOffscreen(20, 20)
	c.DrawImage(img, geom.XYWH(8, 8, 4, 4), nil)
	if _, _, b, a := pixel(t, c, 9, 9); b < 200 || a < 200 {
		t.Errorf("pixel = (b=%d, a=%d), want opaque blue", b, a)
	}

	zero := paint.Paint{Opacity: 0}
	c2 := NewOffscreen(20, 20)
	c2.DrawImage(img, geom.XYWH(0, 0, 4, 4), &zero)
	if _, _, _, a := pixel(t, c2, 1, 1); a != 0 {
		t.Errorf("zero opacity drew alpha %d", a)
	}
}

func TestPlaybackOntoCanvas(t *testing.T) {
	b := dl.NewBuilder()
	b.Translate(10, 0)
	b.DrawRect(geom.XYWH(0, 0, 5, 5), red)
	list := b.Build()

	c := NewOffscreen(20, 20)
	list.Playback(c)
	if r, _, _, _ := pixel(t, c, 12, 2); r < 200 {
		t.Errorf("played back pixel r = %d, want red", r)
	}
	if c.SaveCount() != 0 || !c.Matrix().IsIdentity() {
		t.Error("Playback() leaked state onto the canvas")
	}
}
