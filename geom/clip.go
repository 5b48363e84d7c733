package geom

// ClipOp selects how a clip shape combines with the current clip.
type ClipOp uint8

const (
	// ClipIntersect keeps only the area inside the shape.
	ClipIntersect ClipOp = iota

	// ClipDifference removes the area inside the shape.
	ClipDifference
)

// String returns a human-readable name for the clip op.
func (op ClipOp) String() string {
	switch op {
	case ClipIntersect:
		return "Intersect"
	case ClipDifference:
		return "Difference"
	default:
		return "Unknown"
	}
}
