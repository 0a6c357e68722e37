package stroke

import (
	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
)

// BrushStroke is a freehand path stroke built incrementally by a pen-path
// builder. The path may still grow while the stroke is already inserted in
// the store (in-progress rendering).
type BrushStroke struct {
	Path  penpath.PenPath
	Style Style
}

// NewBrushStroke creates a brush stroke seeded with initial segments.
func NewBrushStroke(style Style, segments ...penpath.Segment) *BrushStroke {
	return &BrushStroke{Path: penpath.PenPath(segments), Style: style}
}

func (*BrushStroke) isStroke() {}

// ExtendWithSegments appends builder output to the in-flight path.
func (b *BrushStroke) ExtendWithSegments(segments ...penpath.Segment) {
	b.Path = append(b.Path, segments...)
}

// SegmentCount returns the number of path segments.
func (b *BrushStroke) SegmentCount() int {
	return len(b.Path)
}

func (b *BrushStroke) Bounds() geom.Rect {
	bbox, ok := b.Path.Bounds(b.Style.Width)
	if !ok {
		return geom.Rect{}
	}
	return bbox
}

func (b *BrushStroke) Hitboxes() []geom.Rect {
	return b.Path.Hitboxes(b.Style.Width)
}

func (b *BrushStroke) Transformed(tf geom.Transform) Stroke {
	out := &BrushStroke{
		Path:  b.Path.Transformed(tf),
		Style: b.Style,
	}
	out.Style.Width *= tf.ScaleFactor()
	return out
}

func (b *BrushStroke) Clone() Stroke {
	return &BrushStroke{Path: b.Path.Clone(), Style: b.Style}
}

// SegmentHitboxes returns the hitboxes of a single path segment, used by
// the eraser split to locate per-segment collisions.
func (b *BrushStroke) SegmentHitboxes(i int) []geom.Rect {
	return b.Path[i].Hitboxes(b.Style.Width)
}
