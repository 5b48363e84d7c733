package rastercache

import (
	"image"

	"github.com/gogpu/flow/geom"
)

// Image is a rasterized entry. It is immutable once created.
type Image struct {
	pixels  *image.RGBA
	logical geom.Rect
	device  image.Rectangle
}

// RGBA returns the pixels. Callers must not modify them.
func (img *Image) RGBA() *image.RGBA {
	return img.pixels
}

// Bounds returns the logical bounds the image was rasterized from.
func (img *Image) Bounds() geom.Rect {
	return img.logical
}

// DeviceBounds returns where the image belongs in device space.
func (img *Image) DeviceBounds() image.Rectangle {
	return img.device
}

// ByteSize returns the pixel memory held by the image.
func (img *Image) ByteSize() int64 {
	if img == nil || img.pixels == nil {
		return 0
	}
	return int64(len(img.pixels.Pix))
}
