package rastercache

import (
	"fmt"

	"golang.org/x/image/math/f64"

	"github.com/gogpu/flow/geom"
)

// KeyKind tells apart content types that draw from the same id space.
type KeyKind uint8

const (
	// KindPicture is a display list.
	KindPicture KeyKind = iota
	// KindLayer is a whole layer, including its own effects.
	KindLayer
	// KindLayerChildren is the children of a layer without its effects.
	KindLayerChildren
)

var keyKindNames = [...]string{
	KindPicture:       "Picture",
	KindLayer:         "Layer",
	KindLayerChildren: "LayerChildren",
}

func (k KeyKind) String() string {
	if int(k) < len(keyKindNames) {
		return keyKindNames[k]
	}
	return "Unknown"
}

// KeyID identifies cacheable content independent of its transform.
type KeyID struct {
	Kind KeyKind
	ID   uint64
}

func (id KeyID) String() string {
	return fmt.Sprintf("%v#%d", id.Kind, id.ID)
}

// Key is a cache key. Two keys are equal only when the content and every
// matrix element match exactly, so any change of transform, sub-pixel
// translation included, is a different entry.
type Key struct {
	ID     KeyID
	Matrix f64.Mat4
}

// MakeKey builds the key for id drawn under m.
func MakeKey(id KeyID, m geom.Matrix) Key {
	return Key{ID: id, Matrix: m.Mat4()}
}
