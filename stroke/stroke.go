// Package stroke defines the drawable document primitives held by the
// stroke store: freehand brush strokes, geometric shapes, text and images.
//
// The set of variants is closed. Every stroke has a computable axis-aligned
// bounding box and a set of finer-grained hitbox rectangles used for cheap
// collision pre-filtering before exact geometry tests.
package stroke

import (
	"image/color"

	"github.com/gogpu/ink/geom"
)

// Stroke is the tagged union over the drawable primitives:
// BrushStroke, ShapeStroke, TextStroke, VectorImage, BitmapImage.
type Stroke interface {
	isStroke()

	// Bounds returns the axis-aligned bounding box of the stroke.
	Bounds() geom.Rect
	// Hitboxes returns fine-grained collision boxes covering the stroke.
	Hitboxes() []geom.Rect
	// Transformed returns a copy of the stroke mapped through an affine
	// transform. The receiver is not modified.
	Transformed(tf geom.Transform) Stroke
	// Clone returns a deep copy. History snapshots rely on clones never
	// aliasing mutable state with the live store.
	Clone() Stroke
}

// Style holds the visual parameters shared by brush and shape strokes.
type Style struct {
	Color             color.RGBA
	Width             float64
	PressureSensitive bool
}

// DefaultStyle returns a black 2pt pressure-sensitive style.
func DefaultStyle() Style {
	return Style{
		Color:             color.RGBA{A: 255},
		Width:             2,
		PressureSensitive: true,
	}
}
