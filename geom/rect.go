package geom

import "math"

// Rect represents an axis-aligned rectangle.
// Min is the top-left corner, Max the bottom-right corner.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max on both axes.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// RectFromPoint returns the degenerate rectangle containing only p.
func RectFromPoint(p Point) Rect {
	return Rect{Min: p, Max: p}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Area returns the area of the rectangle.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle (inclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// ContainsRect returns true if other lies entirely within r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Min.X >= r.Min.X && other.Max.X <= r.Max.X &&
		other.Min.Y >= r.Min.Y && other.Max.Y <= r.Max.Y
}

// Intersects returns true if the two rectangles overlap (touching counts).
func (r Rect) Intersects(other Rect) bool {
	return r.Min.X <= other.Max.X && r.Max.X >= other.Min.X &&
		r.Min.Y <= other.Max.Y && r.Max.Y >= other.Min.Y
}

// Expand returns the rectangle grown by d on every side.
// A negative d shrinks it; the result is normalized if it inverts.
func (r Rect) Expand(d float64) Rect {
	return NewRect(
		Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Point{X: r.Max.X + d, Y: r.Max.Y + d},
	)
}

// Translate returns the rectangle shifted by the vector v.
func (r Rect) Translate(v Point) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}

// IsFinite reports whether all four coordinates are finite.
// Degenerate geometry can produce NaN bounds; callers fall back to a
// point rect rather than propagating the failure.
func (r Rect) IsFinite() bool {
	return r.Min.IsFinite() && r.Max.IsFinite()
}
