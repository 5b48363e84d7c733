package paint

import (
	"fmt"

	"github.com/gogpu/gg"
)

// BlendMode is the compositing mode used when a layer is merged into its
// parent. It is gg's blend mode.
type BlendMode = gg.BlendMode

// Blend modes.
const (
	BlendNormal   = gg.BlendNormal
	BlendMultiply = gg.BlendMultiply
	BlendScreen   = gg.BlendScreen
	BlendOverlay  = gg.BlendOverlay
)

// Paint carries the attributes applied when content is composited.
//
// The zero Paint is fully transparent; use New for an opaque paint.
type Paint struct {
	// Opacity is the group alpha in [0, 1].
	Opacity float64

	// ColorFilter, when set, is applied to every pixel before compositing.
	ColorFilter ColorFilter

	// ImageFilter, when set, is applied to the whole group after the
	// color filter.
	ImageFilter ImageFilter

	// BlendMode selects how the result merges with what is underneath.
	BlendMode BlendMode
}

// New returns an opaque paint with no filters and normal blending.
func New() Paint {
	return Paint{Opacity: 1, BlendMode: BlendNormal}
}

// IsOpaque reports whether the paint leaves alpha untouched.
func (p *Paint) IsOpaque() bool {
	return p == nil || p.Opacity >= 1
}

// HasFilters reports whether a color or image filter is set.
func (p *Paint) HasFilters() bool {
	return p != nil && (p.ColorFilter != nil || p.ImageFilter != nil)
}

// ClampedOpacity returns the opacity limited to [0, 1]. A nil paint is
// opaque.
func (p *Paint) ClampedOpacity() float64 {
	if p == nil {
		return 1
	}
	switch {
	case p.Opacity < 0:
		return 0
	case p.Opacity > 1:
		return 1
	}
	return p.Opacity
}

// String returns a short description of the paint for logs.
func (p *Paint) String() string {
	if p == nil {
		return "Paint{nil}"
	}
	return fmt.Sprintf("Paint{opacity=%.3g cf=%v if=%v blend=%d}",
		p.Opacity, p.ColorFilter != nil, p.ImageFilter != nil, p.BlendMode)
}
