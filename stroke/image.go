package stroke

import (
	"image"

	"github.com/gogpu/ink/geom"
)

// VectorImage is an imported SVG placed in the document. The core treats
// the SVG data as opaque bytes; decoding is the renderer's concern.
type VectorImage struct {
	SVGData []byte
	Rect    geom.Rect
}

// BitmapImage is an imported raster image placed in the document.
// The pixel data is treated as immutable once inserted.
type BitmapImage struct {
	Image image.Image
	Rect  geom.Rect
}

func (*VectorImage) isStroke() {}
func (*BitmapImage) isStroke() {}

func (v *VectorImage) Bounds() geom.Rect {
	return v.Rect
}

// Hitboxes returns the placement rect. Images are exempt from eraser
// collision; this is used for selection only.
func (v *VectorImage) Hitboxes() []geom.Rect {
	return []geom.Rect{v.Rect}
}

func (v *VectorImage) Transformed(tf geom.Transform) Stroke {
	return &VectorImage{SVGData: v.SVGData, Rect: tf.ApplyRect(v.Rect)}
}

func (v *VectorImage) Clone() Stroke {
	data := make([]byte, len(v.SVGData))
	copy(data, v.SVGData)
	return &VectorImage{SVGData: data, Rect: v.Rect}
}

func (b *BitmapImage) Bounds() geom.Rect {
	return b.Rect
}

func (b *BitmapImage) Hitboxes() []geom.Rect {
	return []geom.Rect{b.Rect}
}

func (b *BitmapImage) Transformed(tf geom.Transform) Stroke {
	return &BitmapImage{Image: b.Image, Rect: tf.ApplyRect(b.Rect)}
}

func (b *BitmapImage) Clone() Stroke {
	// Pixel data is immutable by convention; sharing it is safe.
	return &BitmapImage{Image: b.Image, Rect: b.Rect}
}
