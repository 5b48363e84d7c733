package state

import (
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// Flags describe which outstanding attributes a caller can apply on its
// own when it draws.
type Flags uint8

const (
	// CallerCanApplyOpacity means the caller folds opacity into its
	// drawing.
	CallerCanApplyOpacity Flags = 1 << iota
	// CallerCanApplyColorFilter means the caller sets the color filter on
	// its own paint.
	CallerCanApplyColorFilter
	// CallerCanApplyImageFilter means the caller sets the image filter on
	// its own paint.
	CallerCanApplyImageFilter

	// CallerCanApplyAnything combines all capabilities.
	CallerCanApplyAnything = CallerCanApplyOpacity | CallerCanApplyColorFilter | CallerCanApplyImageFilter
)

// RenderingAttributes are the deferred attributes waiting to be realized
// by a saveLayer or by a caller's paint.
type RenderingAttributes struct {
	// SaveLayerBounds is the bounds given with the most recent attribute.
	SaveLayerBounds geom.Rect
	// Opacity is the accumulated group alpha.
	Opacity float64
	// ColorFilter is the outstanding color filter, if any.
	ColorFilter paint.ColorFilter
	// ImageFilter is the outstanding image filter, if any.
	ImageFilter paint.ImageFilter
}

// defaultAttributes returns the attributes of a freshly flushed state.
func defaultAttributes() RenderingAttributes {
	return RenderingAttributes{
		SaveLayerBounds: geom.EmptyRect(),
		Opacity:         1,
	}
}

// IsDefault reports whether nothing is outstanding.
func (a RenderingAttributes) IsDefault() bool {
	return a.Opacity >= 1 && a.ColorFilter == nil && a.ImageFilter == nil
}

// fill copies the attributes into p and reports whether anything was set.
func (a RenderingAttributes) fill(p *paint.Paint) bool {
	set := false
	if a.Opacity < 1 {
		p.Opacity = a.Opacity
		set = true
	}
	if a.ColorFilter != nil {
		p.ColorFilter = a.ColorFilter
		set = true
	}
	if a.ImageFilter != nil {
		p.ImageFilter = a.ImageFilter
		set = true
	}
	return set
}

// layerPaint returns the paint for a saveLayer realizing a, or nil when
// the layer needs none.
func (a RenderingAttributes) layerPaint(blend paint.BlendMode) *paint.Paint {
	p := paint.New()
	p.BlendMode = blend
	if !a.fill(&p) && blend == paint.BlendNormal {
		return nil
	}
	return &p
}
