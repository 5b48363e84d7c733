package state

import (
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// entryKind tags the closed set of stack entries.
type entryKind uint8

const (
	kindSave entryKind = iota
	kindSaveLayer
	kindBackdrop
	kindOpacity
	kindImageFilter
	kindColorFilter
	kindTranslate
	kindTransformMatrix
	kindTransformM44
	kindIntegralTransform
	kindClipRect
	kindClipRRect
	kindClipPath
)

var entryKindNames = [...]string{
	kindSave:              "Save",
	kindSaveLayer:         "SaveLayer",
	kindBackdrop:          "Backdrop",
	kindOpacity:           "Opacity",
	kindImageFilter:       "ImageFilter",
	kindColorFilter:       "ColorFilter",
	kindTranslate:         "Translate",
	kindTransformMatrix:   "TransformMatrix",
	kindTransformM44:      "TransformM44",
	kindIntegralTransform: "IntegralTransform",
	kindClipRect:          "ClipRect",
	kindClipRRect:         "ClipRRect",
	kindClipPath:          "ClipPath",
}

func (k entryKind) String() string {
	if int(k) < len(entryKindNames) {
		return entryKindNames[k]
	}
	return "Unknown"
}

// stateEntry is one pushed state change. Entries record whatever they
// overwrite when applied so restore can put it back bit for bit.
type stateEntry interface {
	kind() entryKind
}

type saveEntry struct{}

type saveLayerEntry struct {
	bounds geom.Rect
	blend  paint.BlendMode
	old    RenderingAttributes
}

type backdropEntry struct {
	bounds geom.Rect
	filter paint.ImageFilter
	blend  paint.BlendMode
	id     int64
	old    RenderingAttributes
}

type opacityEntry struct {
	bounds     geom.Rect
	opacity    float64
	oldBounds  geom.Rect
	oldOpacity float64
}

type imageFilterEntry struct {
	bounds    geom.Rect
	filter    paint.ImageFilter
	oldBounds geom.Rect
	oldFilter paint.ImageFilter
}

type colorFilterEntry struct {
	bounds    geom.Rect
	filter    paint.ColorFilter
	oldBounds geom.Rect
	oldFilter paint.ColorFilter
}

type translateEntry struct {
	dx, dy float64
	old    geom.Matrix
}

type transformMatrixEntry struct {
	m   geom.Matrix
	old geom.Matrix
}

type transformM44Entry struct {
	m   geom.Matrix
	old geom.Matrix
}

type integralTransformEntry struct {
	old     geom.Matrix
	snapped geom.Matrix
	changed bool
}

type clipRectEntry struct {
	rect    geom.Rect
	op      geom.ClipOp
	isAA    bool
	oldCull geom.Rect
}

type clipRRectEntry struct {
	rrect   geom.RRect
	op      geom.ClipOp
	isAA    bool
	oldCull geom.Rect
}

type clipPathEntry struct {
	path    *geom.Path
	op      geom.ClipOp
	isAA    bool
	oldCull geom.Rect
}

func (*saveEntry) kind() entryKind { return kindSave }
func (*saveLayerEntry) kind() entryKind { return kindSaveLayer }
func (*backdropEntry) kind() entryKind { return kindBackdrop }
func (*opacityEntry) kind() entryKind { return kindOpacity }
func (*imageFilterEntry) kind() entryKind { return kindImageFilter }
func (*colorFilterEntry) kind() entryKind { return kindColorFilter }
func (*translateEntry) kind() entryKind { return kindTranslate }
func (*transformMatrixEntry) kind() entryKind { return kindTransformMatrix }
func (*transformM44Entry) kind() entryKind { return kindTransformM44 }
func (*integralTransformEntry) kind() entryKind { return kindIntegralTransform }
func (*clipRectEntry) kind() entryKind { return kindClipRect }
func (*clipRRectEntry) kind() entryKind { return kindClipRRect }
func (*clipPathEntry) kind() entryKind { return kindClipPath }

// boundsPtr returns nil for an empty rect so delegates treat it as
// unbounded.
func boundsPtr(r geom.Rect) *geom.Rect {
	if r.IsEmpty() {
		return nil
	}
	return &r
}

// apply realizes e on the stack's running state and forwards it to the
// delegate, if any.
func (s *LayerStateStack) apply(e stateEntry) {
	d := s.delegate
	switch e := e.(type) {
	case *saveEntry:
		if d != nil {
			d.Save()
		}

	case *saveLayerEntry:
		e.old = s.outstanding
		if d != nil {
			d.SaveLayer(boundsPtr(e.bounds), s.outstanding.layerPaint(e.blend), nil)
		}
		s.outstanding = defaultAttributes()

	case *backdropEntry:
		e.old = s.outstanding
		if d != nil {
			d.SaveLayer(boundsPtr(e.bounds), s.outstanding.layerPaint(e.blend), e.filter)
		}
		s.outstanding = defaultAttributes()

	case *opacityEntry:
		e.oldBounds, e.oldOpacity = s.outstanding.SaveLayerBounds, s.outstanding.Opacity
		s.outstanding.SaveLayerBounds = e.bounds
		s.outstanding.Opacity *= e.opacity

	case *imageFilterEntry:
		e.oldBounds, e.oldFilter = s.outstanding.SaveLayerBounds, s.outstanding.ImageFilter
		s.outstanding.SaveLayerBounds = e.bounds
		s.outstanding.ImageFilter = e.filter

	case *colorFilterEntry:
		e.oldBounds, e.oldFilter = s.outstanding.SaveLayerBounds, s.outstanding.ColorFilter
		s.outstanding.SaveLayerBounds = e.bounds
		s.outstanding.ColorFilter = e.filter

	case *translateEntry:
		e.old = s.matrix
		s.matrix = s.matrix.PreTranslate(e.dx, e.dy)
		if d != nil {
			d.Translate(e.dx, e.dy)
		}

	case *transformMatrixEntry:
		e.old = s.matrix
		s.matrix = s.matrix.Concat(e.m)
		if d != nil {
			d.Transform(e.m)
		}

	case *transformM44Entry:
		e.old = s.matrix
		s.matrix = s.matrix.Concat(e.m)
		if d != nil {
			d.Transform(e.m)
		}

	case *integralTransformEntry:
		e.old = s.matrix
		e.snapped, e.changed = s.matrix.Integral()
		if e.changed {
			s.matrix = e.snapped
			if d != nil {
				d.SetTransform(e.snapped)
			}
		}

	case *clipRectEntry:
		e.oldCull = s.cull
		s.adjustCull(e.rect, e.op, e.isAA)
		if d != nil {
			d.ClipRect(e.rect, e.op, e.isAA)
		}

	case *clipRRectEntry:
		e.oldCull = s.cull
		switch {
		case e.op == geom.ClipIntersect:
			s.adjustCull(e.rrect.Bounds(), e.op, e.isAA)
		case e.rrect.IsRect():
			s.adjustCull(e.rrect.Rect, e.op, e.isAA)
		}
		if d != nil {
			d.ClipRRect(e.rrect, e.op, e.isAA)
		}

	case *clipPathEntry:
		e.oldCull = s.cull
		if e.op == geom.ClipIntersect {
			s.adjustCull(e.path.Bounds(), e.op, e.isAA)
		} else if r, ok := e.path.IsRect(); ok {
			s.adjustCull(r, e.op, e.isAA)
		}
		if d != nil {
			d.ClipPath(e.path, e.op, e.isAA)
		}

	default:
		panic("state: unknown entry " + e.kind().String())
	}
}

// restore undoes apply. Delegate matrix and clip changes are undone by the
// Save or SaveLayer entry beneath them, so only layer entries talk to the
// delegate here.
func (s *LayerStateStack) restore(e stateEntry) {
	d := s.delegate
	switch e := e.(type) {
	case *saveEntry:
		if d != nil {
			d.Restore()
		}

	case *saveLayerEntry:
		if d != nil {
			d.Restore()
		}
		s.outstanding = e.old

	case *backdropEntry:
		if d != nil {
			d.Restore()
		}
		s.outstanding = e.old

	case *opacityEntry:
		s.outstanding.SaveLayerBounds = e.oldBounds
		s.outstanding.Opacity = e.oldOpacity

	case *imageFilterEntry:
		s.outstanding.SaveLayerBounds = e.oldBounds
		s.outstanding.ImageFilter = e.oldFilter

	case *colorFilterEntry:
		s.outstanding.SaveLayerBounds = e.oldBounds
		s.outstanding.ColorFilter = e.oldFilter

	case *translateEntry:
		s.matrix = e.old
	case *transformMatrixEntry:
		s.matrix = e.old
	case *transformM44Entry:
		s.matrix = e.old
	case *integralTransformEntry:
		s.matrix = e.old

	case *clipRectEntry:
		s.cull = e.oldCull
	case *clipRRectEntry:
		s.cull = e.oldCull
	case *clipPathEntry:
		s.cull = e.oldCull

	default:
		panic("state: unknown entry " + e.kind().String())
	}
}

// reapply replays e onto a newly attached delegate. A backdrop only makes
// sense against the pixels of the delegate it was first applied to, so on
// a new delegate it becomes a plain group. The group still realizes the
// attributes that were outstanding and still pairs with its restore.
func (s *LayerStateStack) reapply(e stateEntry) {
	if b, ok := e.(*backdropEntry); ok {
		b.old = s.outstanding
		if s.delegate != nil {
			s.delegate.SaveLayer(boundsPtr(b.bounds), s.outstanding.layerPaint(b.blend), nil)
		}
		s.outstanding = defaultAttributes()
		return
	}
	s.apply(e)
}
