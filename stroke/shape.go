package stroke

import (
	"math"

	"github.com/gogpu/ink/geom"
)

// Shape is the closed union of geometric shapes a ShapeStroke can carry:
// ShapeLine, ShapeRect, ShapeEllipse.
type Shape interface {
	isShape()

	Bounds(width float64) geom.Rect
	Hitboxes(width float64) []geom.Rect
	Transformed(tf geom.Transform) Shape
}

// ShapeLine is a straight line shape.
type ShapeLine struct {
	Start, End geom.Point
}

// ShapeRect is an axis-aligned rectangle outline.
type ShapeRect struct {
	Rect geom.Rect
}

// ShapeEllipse is an axis-aligned ellipse outline.
type ShapeEllipse struct {
	Center           geom.Point
	RadiusX, RadiusY float64
}

func (ShapeLine) isShape()    {}
func (ShapeRect) isShape()    {}
func (ShapeEllipse) isShape() {}

func (s ShapeLine) Bounds(width float64) geom.Rect {
	return geom.NewRect(s.Start, s.End).Expand(width / 2)
}

func (s ShapeLine) Hitboxes(width float64) []geom.Rect {
	l := geom.Line{P0: s.Start, P1: s.End}
	n := chunkCount(l.Length())
	boxes := make([]geom.Rect, 0, n)
	for i := 0; i < n; i++ {
		sub := l.Subsegment(float64(i)/float64(n), float64(i+1)/float64(n))
		boxes = append(boxes, sub.BoundingBox().Expand(width/2))
	}
	return boxes
}

func (s ShapeLine) Transformed(tf geom.Transform) Shape {
	return ShapeLine{Start: tf.Apply(s.Start), End: tf.Apply(s.End)}
}

func (s ShapeRect) Bounds(width float64) geom.Rect {
	return s.Rect.Expand(width / 2)
}

// Hitboxes covers only the outline edges, so erasing through the hollow
// interior of a drawn rectangle does not hit it.
func (s ShapeRect) Hitboxes(width float64) []geom.Rect {
	r := s.Rect
	edges := []geom.Line{
		{P0: r.Min, P1: geom.Pt(r.Max.X, r.Min.Y)},
		{P0: geom.Pt(r.Max.X, r.Min.Y), P1: r.Max},
		{P0: r.Max, P1: geom.Pt(r.Min.X, r.Max.Y)},
		{P0: geom.Pt(r.Min.X, r.Max.Y), P1: r.Min},
	}
	var boxes []geom.Rect
	for _, e := range edges {
		boxes = append(boxes, ShapeLine{Start: e.P0, End: e.P1}.Hitboxes(width)...)
	}
	return boxes
}

func (s ShapeRect) Transformed(tf geom.Transform) Shape {
	return ShapeRect{Rect: tf.ApplyRect(s.Rect)}
}

func (s ShapeEllipse) Bounds(width float64) geom.Rect {
	r := geom.NewRect(
		geom.Pt(s.Center.X-s.RadiusX, s.Center.Y-s.RadiusY),
		geom.Pt(s.Center.X+s.RadiusX, s.Center.Y+s.RadiusY),
	)
	return r.Expand(width / 2)
}

// Hitboxes approximates the ellipse perimeter with boxes over sampled arcs.
func (s ShapeEllipse) Hitboxes(width float64) []geom.Rect {
	const samples = 12
	boxes := make([]geom.Rect, 0, samples)
	prev := s.perimeterPoint(0)
	for i := 1; i <= samples; i++ {
		p := s.perimeterPoint(2 * math.Pi * float64(i) / samples)
		boxes = append(boxes, geom.NewRect(prev, p).Expand(width/2))
		prev = p
	}
	return boxes
}

func (s ShapeEllipse) perimeterPoint(angle float64) geom.Point {
	return geom.Pt(
		s.Center.X+s.RadiusX*math.Cos(angle),
		s.Center.Y+s.RadiusY*math.Sin(angle),
	)
}

func (s ShapeEllipse) Transformed(tf geom.Transform) Shape {
	bbox := tf.ApplyRect(s.Bounds(0))
	return ShapeEllipse{
		Center:  bbox.Center(),
		RadiusX: bbox.Width() / 2,
		RadiusY: bbox.Height() / 2,
	}
}

// chunkCount mirrors the hitbox subdivision used for pen paths.
func chunkCount(length float64) int {
	n := int(math.Ceil(length / 20))
	if n < 1 {
		n = 1
	}
	if n > 16 {
		n = 16
	}
	return n
}

// ShapeStroke is a stroke carrying a geometric shape outline.
type ShapeStroke struct {
	Shape Shape
	Style Style
}

// NewShapeStroke creates a shape stroke.
func NewShapeStroke(shape Shape, style Style) *ShapeStroke {
	return &ShapeStroke{Shape: shape, Style: style}
}

func (*ShapeStroke) isStroke() {}

func (s *ShapeStroke) Bounds() geom.Rect {
	return s.Shape.Bounds(s.Style.Width)
}

func (s *ShapeStroke) Hitboxes() []geom.Rect {
	return s.Shape.Hitboxes(s.Style.Width)
}

func (s *ShapeStroke) Transformed(tf geom.Transform) Stroke {
	out := &ShapeStroke{Shape: s.Shape.Transformed(tf), Style: s.Style}
	out.Style.Width *= tf.ScaleFactor()
	return out
}

func (s *ShapeStroke) Clone() Stroke {
	// Shapes are immutable values.
	return &ShapeStroke{Shape: s.Shape, Style: s.Style}
}
