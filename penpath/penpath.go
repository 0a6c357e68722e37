package penpath

import "github.com/gogpu/ink/geom"

// PenPath is an ordered sequence of self-contained segments forming one
// stroke. Consecutive segments chain: segment i ends where segment i+1
// starts.
type PenPath []Segment

// Bounds returns the bounding box of the whole path for the given stroke
// width, or false when the path is empty.
func (p PenPath) Bounds(width float64) (geom.Rect, bool) {
	if len(p) == 0 {
		return geom.Rect{}, false
	}
	bbox := p[0].Bounds(width)
	for _, seg := range p[1:] {
		bbox = bbox.Union(seg.Bounds(width))
	}
	return bbox, true
}

// Hitboxes returns the fine-grained collision boxes of all segments.
func (p PenPath) Hitboxes(width float64) []geom.Rect {
	boxes := make([]geom.Rect, 0, len(p))
	for _, seg := range p {
		boxes = append(boxes, seg.Hitboxes(width)...)
	}
	return boxes
}

// Transformed returns a new path with every segment mapped through tf.
func (p PenPath) Transformed(tf geom.Transform) PenPath {
	out := make(PenPath, len(p))
	for i, seg := range p {
		out[i] = seg.Transformed(tf)
	}
	return out
}

// Clone returns a copy of the path. Segments are values, so a shallow
// slice copy is a full copy.
func (p PenPath) Clone() PenPath {
	out := make(PenPath, len(p))
	copy(out, p)
	return out
}
