package rastercache

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/gogpu/flow"
	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/geom"
)

// Rasterization errors.
var (
	// ErrSingularMatrix is returned for transforms that collapse content to
	// zero area.
	ErrSingularMatrix = errors.New("rastercache: singular matrix")
	// ErrEmptyBounds is returned for content without a drawable area.
	ErrEmptyBounds = errors.New("rastercache: empty bounds")
	// ErrSurfaceTooLarge is returned when the device bounds exceed the
	// maximum surface size.
	ErrSurfaceTooLarge = errors.New("rastercache: surface too large")
)

const checkerSize = 12

var checkerColors = [2]color.NRGBA{
	{R: 0xDD, G: 0x00, B: 0xDD, A: 0x64},
	{R: 0x00, G: 0xDD, B: 0x00, A: 0x64},
}

// DeviceBounds returns the integer device rectangle covering bounds under m.
func DeviceBounds(bounds geom.Rect, m geom.Matrix) image.Rectangle {
	return m.MapRect(bounds).RoundOut().ImageRect()
}

// Rasterize draws content under m into a new image sized to its device
// bounds. maxSize limits both sides of the surface.
func Rasterize(content Content, m geom.Matrix, checkerboard bool, maxSize int) (*Image, error) {
	if !m.IsInvertible() {
		return nil, ErrSingularMatrix
	}
	logical := content.Bounds()
	if logical.IsEmpty() || !logical.IsFinite() {
		return nil, ErrEmptyBounds
	}
	dev := DeviceBounds(logical, m)
	if dev.Empty() {
		return nil, ErrEmptyBounds
	}
	if dev.Dx() > maxSize || dev.Dy() > maxSize {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrSurfaceTooLarge, dev.Dx(), dev.Dy(), maxSize)
	}

	c := canvas.NewOffscreen(dev.Dx(), dev.Dy())
	c.Translate(-float64(dev.Min.X), -float64(dev.Min.Y))
	c.Transform(m)
	content.Draw(c)
	c.Decommission()
	if err := c.Err(); err != nil {
		return nil, fmt.Errorf("rastercache: draw %v: %w", content.CacheID(), err)
	}

	pixels := c.Snapshot()
	if checkerboard {
		drawCheckerboard(pixels)
	}
	flow.Logger().Debug("rastercache: rasterized",
		"id", content.CacheID().String(), "width", dev.Dx(), "height", dev.Dy())
	return &Image{pixels: pixels, logical: logical, device: dev}, nil
}

// drawCheckerboard blends translucent squares over img.
func drawCheckerboard(img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += checkerSize {
		for x := b.Min.X; x < b.Max.X; x += checkerSize {
			cell := image.Rect(x, y, x+checkerSize, y+checkerSize).Intersect(b)
			col := checkerColors[((x-b.Min.X)/checkerSize+(y-b.Min.Y)/checkerSize)%2]
			draw.Draw(img, cell, image.NewUniform(col), image.Point{}, draw.Over)
		}
	}
}
