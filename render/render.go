// Package render holds the boundary between the stroke core and the
// external renderer: the job pool that offloads per-stroke rasterization
// to worker goroutines, the completion results it reports back, and the
// cached image type stored in the render component.
//
// The core never rasterizes anything itself. Rendering backends are
// external collaborators behind the Renderer interface.
package render

import (
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/stroke"
)

// Image is one cached rendered image of a stroke: pixel data plus the
// document-space rect it covers and the scale it was rendered at.
type Image struct {
	Pixels image.Image
	Rect   geom.Rect
	Scale  float64
}

// Rescaled returns a copy of the image resampled for a new scale.
// Cheaper than re-rendering when the camera zooms; quality degrades
// gracefully until the renderer catches up.
func (im *Image) Rescaled(scale float64) *Image {
	if im.Pixels == nil || scale <= 0 || scale == im.Scale {
		return im
	}
	src := im.Pixels.Bounds()
	factor := scale / im.Scale
	w := int(float64(src.Dx()) * factor)
	h := int(float64(src.Dy()) * factor)
	if w < 1 || h < 1 {
		return im
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), im.Pixels, src, draw.Over, nil)
	return &Image{Pixels: dst, Rect: im.Rect, Scale: scale}
}

// Renderer rasterizes a single stroke snapshot into an image. Implemented
// by the external rendering backend; nil disables rendering entirely.
//
// GenImage is called from worker goroutines and must be safe for
// concurrent use. The stroke passed in is a clone owned by the job.
type Renderer interface {
	GenImage(s stroke.Stroke, viewport geom.Rect, scale float64) (*Image, error)
}
