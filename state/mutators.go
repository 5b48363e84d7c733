package state

import (
	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// MutatorType identifies a Mutator.
type MutatorType uint8

const (
	MutatorClipRect MutatorType = iota
	MutatorClipRRect
	MutatorClipPath
	MutatorTransform
	MutatorOpacity
	MutatorBackdropFilter
)

var mutatorTypeNames = [...]string{
	MutatorClipRect:       "ClipRect",
	MutatorClipRRect:      "ClipRRect",
	MutatorClipPath:       "ClipPath",
	MutatorTransform:      "Transform",
	MutatorOpacity:        "Opacity",
	MutatorBackdropFilter: "BackdropFilter",
}

func (t MutatorType) String() string {
	if int(t) < len(mutatorTypeNames) {
		return mutatorTypeNames[t]
	}
	return "Unknown"
}

// Mutator is one flattened state change, as needed by an embedder that
// composites content outside the stack. Only the fields matching Type are
// set.
type Mutator struct {
	Type    MutatorType
	Op      geom.ClipOp
	Rect    geom.Rect
	RRect   geom.RRect
	Path    *geom.Path
	Matrix  geom.Matrix
	Opacity float64
	Filter  paint.ImageFilter
	Bounds  geom.Rect
}

// MutatorsStack is an ordered list of mutators, outermost first.
type MutatorsStack struct {
	items []Mutator
}

// PushClipRect appends a rect clip.
func (ms *MutatorsStack) PushClipRect(r geom.Rect, op geom.ClipOp) {
	ms.items = append(ms.items, Mutator{Type: MutatorClipRect, Rect: r, Op: op})
}

// PushClipRRect appends a rounded rect clip.
func (ms *MutatorsStack) PushClipRRect(rr geom.RRect, op geom.ClipOp) {
	ms.items = append(ms.items, Mutator{Type: MutatorClipRRect, RRect: rr, Op: op})
}

// PushClipPath appends a path clip.
func (ms *MutatorsStack) PushClipPath(p *geom.Path, op geom.ClipOp) {
	ms.items = append(ms.items, Mutator{Type: MutatorClipPath, Path: p, Op: op})
}

// PushTransform appends a transform.
func (ms *MutatorsStack) PushTransform(m geom.Matrix) {
	ms.items = append(ms.items, Mutator{Type: MutatorTransform, Matrix: m})
}

// PushOpacity appends a group alpha.
func (ms *MutatorsStack) PushOpacity(alpha float64) {
	ms.items = append(ms.items, Mutator{Type: MutatorOpacity, Opacity: alpha})
}

// PushBackdropFilter appends a backdrop filter over bounds.
func (ms *MutatorsStack) PushBackdropFilter(f paint.ImageFilter, bounds geom.Rect) {
	ms.items = append(ms.items, Mutator{Type: MutatorBackdropFilter, Filter: f, Bounds: bounds})
}

// Pop removes the innermost mutator. It is a no-op on an empty stack.
func (ms *MutatorsStack) Pop() {
	if n := len(ms.items); n > 0 {
		ms.items = ms.items[:n-1]
	}
}

// Len returns the number of mutators.
func (ms *MutatorsStack) Len() int {
	return len(ms.items)
}

// Top returns the innermost mutator.
func (ms *MutatorsStack) Top() (Mutator, bool) {
	if len(ms.items) == 0 {
		return Mutator{}, false
	}
	return ms.items[len(ms.items)-1], true
}

// Each calls fn for every mutator, outermost first.
func (ms *MutatorsStack) Each(fn func(Mutator)) {
	for _, m := range ms.items {
		fn(m)
	}
}

// TotalOpacity returns the product of all opacity mutators.
func (ms *MutatorsStack) TotalOpacity() float64 {
	alpha := 1.0
	for _, m := range ms.items {
		if m.Type == MutatorOpacity {
			alpha *= m.Opacity
		}
	}
	return alpha
}

// TotalMatrix returns the concatenation of all transform mutators.
func (ms *MutatorsStack) TotalMatrix() geom.Matrix {
	total := geom.Identity()
	for _, m := range ms.items {
		if m.Type == MutatorTransform {
			total = total.Concat(m.Matrix)
		}
	}
	return total
}

// FillMutators appends the live entries of s to ms as mutators, in push
// order. Saves, layers and deferred filters have no mutator form and are
// skipped; deferred opacity is reported as it is pushed.
func (s *LayerStateStack) FillMutators(ms *MutatorsStack) {
	for _, e := range s.entries {
		switch e := e.(type) {
		case *translateEntry:
			ms.PushTransform(geom.Translation(e.dx, e.dy))
		case *transformMatrixEntry:
			ms.PushTransform(e.m)
		case *transformM44Entry:
			ms.PushTransform(e.m)
		case *integralTransformEntry:
			if !e.changed {
				continue
			}
			ox, oy := e.old.Translation()
			sx, sy := e.snapped.Translation()
			ms.PushTransform(geom.Translation((sx-ox)/e.old.At(0, 0), (sy-oy)/e.old.At(1, 1)))
		case *clipRectEntry:
			ms.PushClipRect(e.rect, e.op)
		case *clipRRectEntry:
			ms.PushClipRRect(e.rrect, e.op)
		case *clipPathEntry:
			ms.PushClipPath(e.path, e.op)
		case *opacityEntry:
			ms.PushOpacity(e.opacity)
		case *backdropEntry:
			ms.PushBackdropFilter(e.filter, e.bounds)
		}
	}
}
