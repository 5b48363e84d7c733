// Package dl records drawing and state operations into immutable display
// lists that can be replayed onto any Receiver.
//
// The recording is a flat slice of typed command structs, inspectable in
// tests and cheap to replay. A Builder also satisfies the layer state
// stack's delegate contract, so a layer tree can be captured into a
// display list instead of being drawn immediately.
//
// # Example
//
//	b := dl.NewBuilder()
//	b.Save()
//	b.Translate(10, 10)
//	b.DrawRect(geom.XYWH(0, 0, 50, 50), gg.RGB(1, 0, 0))
//	b.Restore()
//	list := b.Build()
//
//	list.Playback(canvas)
package dl

import (
	"image"

	"github.com/gogpu/gg"

	"github.com/gogpu/flow/geom"
	"github.com/gogpu/flow/paint"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave         CommandType = iota // Save current state
	CmdSaveLayer                       // Save state and start an offscreen group
	CmdRestore                         // Restore previous state
	CmdTranslate                       // Pre-translate the matrix
	CmdTransform                       // Pre-concatenate the matrix
	CmdSetTransform                    // Replace the matrix
	CmdClipRect                        // Clip to a rectangle
	CmdClipRRect                       // Clip to a rounded rectangle
	CmdClipPath                        // Clip to a path

	// Drawing commands
	CmdDrawRect  // Fill a rectangle
	CmdDrawPath  // Fill a path
	CmdDrawImage // Draw an image
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdSave:         "Save",
	CmdSaveLayer:    "SaveLayer",
	CmdRestore:      "Restore",
	CmdTranslate:    "Translate",
	CmdTransform:    "Transform",
	CmdSetTransform: "SetTransform",
	CmdClipRect:     "ClipRect",
	CmdClipRRect:    "ClipRRect",
	CmdClipPath:     "ClipPath",
	CmdDrawRect:     "DrawRect",
	CmdDrawPath:     "DrawPath",
	CmdDrawImage:    "DrawImage",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsDraw reports whether the command produces pixels.
func (c CommandType) IsDraw() bool {
	return c >= CmdDrawRect && c <= CmdDrawImage
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// SaveCommand saves the matrix and clip.
type SaveCommand struct{}

// Type implements Command.
func (SaveCommand) Type() CommandType { return CmdSave }

// SaveLayerCommand saves state and redirects drawing into an offscreen
// group that is composited with Paint on the matching restore.
type SaveLayerCommand struct {
	// Bounds limits the group. Nil means unbounded.
	Bounds *geom.Rect
	// Paint is applied when the group is composited. Nil means opaque.
	Paint *paint.Paint
	// Backdrop, when set, filters the parent's pixels into the group
	// before anything is drawn.
	Backdrop paint.ImageFilter
}

// Type implements Command.
func (SaveLayerCommand) Type() CommandType { return CmdSaveLayer }

// RestoreCommand restores the previously saved state.
type RestoreCommand struct{}

// Type implements Command.
func (RestoreCommand) Type() CommandType { return CmdRestore }

// TranslateCommand pre-translates the matrix.
type TranslateCommand struct {
	DX, DY float64
}

// Type implements Command.
func (TranslateCommand) Type() CommandType { return CmdTranslate }

// TransformCommand pre-concatenates Matrix onto the current matrix.
type TransformCommand struct {
	Matrix geom.Matrix
}

// Type implements Command.
func (TransformCommand) Type() CommandType { return CmdTransform }

// SetTransformCommand replaces the matrix. The matrix is relative to the
// display list origin.
type SetTransformCommand struct {
	Matrix geom.Matrix
}

// Type implements Command.
func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

// ClipRectCommand clips to a rectangle.
type ClipRectCommand struct {
	Rect geom.Rect
	Op   geom.ClipOp
	AA   bool
}

// Type implements Command.
func (ClipRectCommand) Type() CommandType { return CmdClipRect }

// ClipRRectCommand clips to a rounded rectangle.
type ClipRRectCommand struct {
	RRect geom.RRect
	Op    geom.ClipOp
	AA    bool
}

// Type implements Command.
func (ClipRRectCommand) Type() CommandType { return CmdClipRRect }

// ClipPathCommand clips to a path.
type ClipPathCommand struct {
	Path *geom.Path
	Op   geom.ClipOp
	AA   bool
}

// Type implements Command.
func (ClipPathCommand) Type() CommandType { return CmdClipPath }

// DrawRectCommand fills a rectangle with a solid color.
type DrawRectCommand struct {
	Rect  geom.Rect
	Color gg.RGBA
}

// Type implements Command.
func (DrawRectCommand) Type() CommandType { return CmdDrawRect }

// DrawPathCommand fills a path with a solid color.
type DrawPathCommand struct {
	Path  *geom.Path
	Color gg.RGBA
}

// Type implements Command.
func (DrawPathCommand) Type() CommandType { return CmdDrawPath }

// DrawImageCommand draws an image scaled into Dst.
type DrawImageCommand struct {
	Image *image.RGBA
	Dst   geom.Rect
	Paint *paint.Paint
}

// Type implements Command.
func (DrawImageCommand) Type() CommandType { return CmdDrawImage }
