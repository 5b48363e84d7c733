// Package paint holds the deferred rendering attributes carried through a
// layer tree: group opacity, blend mode, color filters and image filters.
//
// Filters operate on *image.RGBA snapshots of gg surfaces. Pixels are
// treated as non-premultiplied, matching gg pixmaps.
package paint
