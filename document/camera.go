package document

import "github.com/gogpu/ink/geom"

// Zoom limits matching comfortable handwriting scales.
const (
	MinZoom = 0.1
	MaxZoom = 8.0
)

// Camera maps between document coordinates and surface (screen) pixels.
// Offset is the document coordinate visible at the surface's top-left
// corner; Size is the surface size in pixels.
type Camera struct {
	Offset geom.Point
	Zoom   float64
	Size   geom.Point
}

// NewCamera creates a camera at the document origin with zoom 1.
func NewCamera(surfaceW, surfaceH float64) *Camera {
	return &Camera{Zoom: 1, Size: geom.Pt(surfaceW, surfaceH)}
}

// SetZoom clamps and applies a new zoom level, keeping the top-left
// document coordinate fixed.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = geom.Clamp(zoom, MinZoom, MaxZoom)
}

// ZoomAt zooms while keeping the document point under the given surface
// position stationary on screen.
func (c *Camera) ZoomAt(zoom float64, surfacePos geom.Point) {
	anchor := c.SurfaceToDoc(surfacePos)
	c.SetZoom(zoom)
	after := c.SurfaceToDoc(surfacePos)
	c.Offset = c.Offset.Add(anchor.Sub(after))
}

// Viewport returns the visible document-space rectangle.
func (c *Camera) Viewport() geom.Rect {
	z := c.Zoom
	if z <= 0 {
		z = 1
	}
	return geom.NewRect(c.Offset, c.Offset.Add(c.Size.Mul(1/z)))
}

// Transform returns the document-to-surface affine transform.
func (c *Camera) Transform() geom.Transform {
	return geom.Scaling(c.Zoom, c.Zoom).Mul(geom.Translation(c.Offset.Mul(-1)))
}

// SurfaceToDoc maps a surface pixel position to document coordinates.
func (c *Camera) SurfaceToDoc(p geom.Point) geom.Point {
	z := c.Zoom
	if z <= 0 {
		z = 1
	}
	return c.Offset.Add(p.Mul(1 / z))
}

// DocToSurface maps a document coordinate to surface pixels.
func (c *Camera) DocToSurface(p geom.Point) geom.Point {
	return p.Sub(c.Offset).Mul(c.Zoom)
}
