// Package document holds the drawing surface model: the document sheet
// with its page format and autoresize behavior, and the camera mapping
// between document and surface coordinates.
package document

import "github.com/gogpu/ink/geom"

// Format is the page format of a document in document units.
type Format struct {
	Width  float64
	Height float64
}

// A4Format is the default page format, A4 portrait at ~96 dpi.
func A4Format() Format {
	return Format{Width: 794, Height: 1123}
}

// autoresizeMargin keeps a breathing band between the outermost content
// and the document edge when autoresizing.
const autoresizeMargin = 32.0

// Document is the drawing sheet. Bounds grow with content but never
// shrink automatically; the format seeds the initial bounds and the page
// granularity for vertical growth.
type Document struct {
	Bounds geom.Rect
	Format Format
}

// NewDocument creates a one-page document of the given format, origin at
// the top-left.
func NewDocument(format Format) *Document {
	if format.Width <= 0 || format.Height <= 0 {
		format = A4Format()
	}
	return &Document{
		Bounds: geom.NewRect(geom.Pt(0, 0), geom.Pt(format.Width, format.Height)),
		Format: format,
	}
}

// ExpandAutoresize grows the document bounds to contain the content rect
// plus a margin, with vertical growth snapped to whole pages. Reports
// whether the bounds changed.
func (d *Document) ExpandAutoresize(content geom.Rect) bool {
	if content == (geom.Rect{}) {
		return false
	}
	want := d.Bounds.Union(content.Expand(autoresizeMargin))
	if want == d.Bounds {
		return false
	}
	// Snap downward growth to page multiples so the sheet keeps its
	// paginated look while scrolling.
	if want.Max.Y > d.Bounds.Max.Y && d.Format.Height > 0 {
		overflow := want.Max.Y - d.Bounds.Max.Y
		pages := int(overflow/d.Format.Height) + 1
		want.Max.Y = d.Bounds.Max.Y + float64(pages)*d.Format.Height
	}
	d.Bounds = want
	return true
}

// Contains reports whether a point lies on the sheet.
func (d *Document) Contains(p geom.Point) bool {
	return d.Bounds.Contains(p)
}
