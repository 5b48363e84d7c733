package rastercache

import (
	"github.com/gogpu/flow/canvas"
	"github.com/gogpu/flow/dl"
	"github.com/gogpu/flow/geom"
)

// Content is something the cache can rasterize.
type Content interface {
	// CacheID returns the content identity.
	CacheID() KeyID
	// Bounds returns the logical bounds of everything Draw paints.
	Bounds() geom.Rect
	// OpCount estimates the cost of drawing the content.
	OpCount() int
	// IsComplex reports that the content is worth caching regardless of
	// OpCount.
	IsComplex() bool
	// WillChange reports that the content is expected to differ next
	// frame.
	WillChange() bool
	// Draw paints the content in its logical coordinates.
	Draw(c *canvas.Canvas)
}

// PictureContent adapts a display list.
type PictureContent struct {
	DisplayList *dl.DisplayList
	Complex     bool
	Changing    bool
}

var _ Content = PictureContent{}

// NewPictureContent wraps d with the given hints.
func NewPictureContent(d *dl.DisplayList, isComplex, willChange bool) PictureContent {
	return PictureContent{DisplayList: d, Complex: isComplex, Changing: willChange}
}

// CacheID implements Content.
func (p PictureContent) CacheID() KeyID {
	return KeyID{Kind: KindPicture, ID: p.DisplayList.UniqueID()}
}

// Bounds implements Content.
func (p PictureContent) Bounds() geom.Rect {
	return p.DisplayList.Bounds()
}

// OpCount implements Content.
func (p PictureContent) OpCount() int {
	return p.DisplayList.OpCount()
}

// IsComplex implements Content.
func (p PictureContent) IsComplex() bool {
	return p.Complex
}

// WillChange implements Content.
func (p PictureContent) WillChange() bool {
	return p.Changing
}

// Draw implements Content.
func (p PictureContent) Draw(c *canvas.Canvas) {
	p.DisplayList.Playback(c)
}
