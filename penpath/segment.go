package penpath

import (
	"math"

	"github.com/gogpu/ink/geom"
)

// maxHitboxLength is the target length of one hitbox chunk in document
// units. Long segments are subdivided so collision pre-filtering stays
// fine-grained enough for small erasers.
const maxHitboxLength = 20.0

// maxHitboxChunks bounds subdivision for pathologically long segments.
const maxHitboxChunks = 16

// Segment is one piece of a pen path. The set of variants is closed:
// Dot, LineTo, QuadBezTo, CubicBezTo. Every segment is self-contained
// (it carries its own start element), so a path can be partitioned at any
// segment boundary without recomputing geometry.
type Segment interface {
	isSegment()

	// StartEl returns the element at the start of the segment.
	StartEl() Element
	// EndEl returns the element at the end of the segment.
	EndEl() Element
	// Bounds returns the axis-aligned bounding box of the segment,
	// inflated by the pressure-weighted half stroke width.
	Bounds(width float64) geom.Rect
	// Hitboxes returns fine-grained collision boxes along the segment.
	Hitboxes(width float64) []geom.Rect
	// Transformed returns the segment mapped through an affine transform.
	Transformed(tf geom.Transform) Segment
}

// Dot is a degenerate segment for a stroke made of a single tap.
type Dot struct {
	At Element
}

// LineTo is a straight segment between two elements.
type LineTo struct {
	Start, End Element
}

// QuadBezTo is a quadratic Bezier segment between two elements.
type QuadBezTo struct {
	Start Element
	Ctrl  geom.Point
	End   Element
}

// CubicBezTo is a cubic Bezier segment between two elements.
type CubicBezTo struct {
	Start        Element
	Ctrl1, Ctrl2 geom.Point
	End          Element
}

func (Dot) isSegment()        {}
func (LineTo) isSegment()     {}
func (QuadBezTo) isSegment()  {}
func (CubicBezTo) isSegment() {}

func (s Dot) StartEl() Element { return s.At }
func (s Dot) EndEl() Element   { return s.At }

func (s LineTo) StartEl() Element { return s.Start }
func (s LineTo) EndEl() Element   { return s.End }

func (s QuadBezTo) StartEl() Element { return s.Start }
func (s QuadBezTo) EndEl() Element   { return s.End }

func (s CubicBezTo) StartEl() Element { return s.Start }
func (s CubicBezTo) EndEl() Element   { return s.End }

// padding returns the bounding-box inflation for a segment drawn with the
// given stroke width, weighted by the higher of the endpoint pressures.
func padding(width float64, a, b Element) float64 {
	p := math.Max(a.Pressure, b.Pressure)
	if p <= 0 {
		p = 1
	}
	d := width * p / 2
	if d < 0.5 {
		d = 0.5
	}
	return d
}

func (s Dot) Bounds(width float64) geom.Rect {
	return geom.RectFromPoint(s.At.Pos).Expand(padding(width, s.At, s.At))
}

func (s Dot) Hitboxes(width float64) []geom.Rect {
	return []geom.Rect{s.Bounds(width)}
}

func (s Dot) Transformed(tf geom.Transform) Segment {
	s.At.Pos = tf.Apply(s.At.Pos)
	return s
}

func (s LineTo) line() geom.Line {
	return geom.Line{P0: s.Start.Pos, P1: s.End.Pos}
}

func (s LineTo) Bounds(width float64) geom.Rect {
	return s.line().BoundingBox().Expand(padding(width, s.Start, s.End))
}

func (s LineTo) Hitboxes(width float64) []geom.Rect {
	l := s.line()
	n := hitboxChunks(l.Length())
	pad := padding(width, s.Start, s.End)
	boxes := make([]geom.Rect, 0, n)
	for i := 0; i < n; i++ {
		sub := l.Subsegment(float64(i)/float64(n), float64(i+1)/float64(n))
		boxes = append(boxes, sub.BoundingBox().Expand(pad))
	}
	return boxes
}

func (s LineTo) Transformed(tf geom.Transform) Segment {
	s.Start.Pos = tf.Apply(s.Start.Pos)
	s.End.Pos = tf.Apply(s.End.Pos)
	return s
}

func (s QuadBezTo) quad() geom.QuadBez {
	return geom.QuadBez{P0: s.Start.Pos, P1: s.Ctrl, P2: s.End.Pos}
}

func (s QuadBezTo) Bounds(width float64) geom.Rect {
	return safeBounds(s.quad().BoundingBox(), s.Start, s.End, width)
}

func (s QuadBezTo) Hitboxes(width float64) []geom.Rect {
	q := s.quad()
	n := hitboxChunks(q.Length())
	pad := padding(width, s.Start, s.End)
	boxes := make([]geom.Rect, 0, n)
	for i := 0; i < n; i++ {
		sub := q.Subsegment(float64(i)/float64(n), float64(i+1)/float64(n))
		boxes = append(boxes, sub.BoundingBox().Expand(pad))
	}
	return boxes
}

func (s QuadBezTo) Transformed(tf geom.Transform) Segment {
	s.Start.Pos = tf.Apply(s.Start.Pos)
	s.Ctrl = tf.Apply(s.Ctrl)
	s.End.Pos = tf.Apply(s.End.Pos)
	return s
}

func (s CubicBezTo) cubic() geom.CubicBez {
	return geom.CubicBez{P0: s.Start.Pos, P1: s.Ctrl1, P2: s.Ctrl2, P3: s.End.Pos}
}

func (s CubicBezTo) Bounds(width float64) geom.Rect {
	return safeBounds(s.cubic().BoundingBox(), s.Start, s.End, width)
}

func (s CubicBezTo) Hitboxes(width float64) []geom.Rect {
	c := s.cubic()
	n := hitboxChunks(c.Length())
	pad := padding(width, s.Start, s.End)
	boxes := make([]geom.Rect, 0, n)
	for i := 0; i < n; i++ {
		sub := c.Subsegment(float64(i)/float64(n), float64(i+1)/float64(n))
		boxes = append(boxes, sub.BoundingBox().Expand(pad))
	}
	return boxes
}

func (s CubicBezTo) Transformed(tf geom.Transform) Segment {
	s.Start.Pos = tf.Apply(s.Start.Pos)
	s.Ctrl1 = tf.Apply(s.Ctrl1)
	s.Ctrl2 = tf.Apply(s.Ctrl2)
	s.End.Pos = tf.Apply(s.End.Pos)
	return s
}

// hitboxChunks returns how many pieces a segment of the given length is
// subdivided into for hitbox generation.
func hitboxChunks(length float64) int {
	n := int(math.Ceil(length / maxHitboxLength))
	if n < 1 {
		n = 1
	}
	if n > maxHitboxChunks {
		n = maxHitboxChunks
	}
	return n
}

// safeBounds guards against numerically invalid curve bounding boxes by
// falling back to the endpoint rect.
func safeBounds(bbox geom.Rect, a, b Element, width float64) geom.Rect {
	pad := padding(width, a, b)
	if !bbox.IsFinite() {
		return geom.NewRect(a.Pos, b.Pos).Expand(pad)
	}
	return bbox.Expand(pad)
}
