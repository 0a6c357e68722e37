package ink

import (
	"golang.org/x/image/font"

	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/store"
	"github.com/gogpu/ink/stroke"
)

// config holds engine construction parameters.
type config struct {
	historyCapacity int
	format          document.Format
	surfaceW        float64
	surfaceH        float64
	renderer        render.Renderer
	renderWorkers   int
}

func defaultConfig() config {
	return config{
		historyCapacity: store.DefaultHistoryCapacity,
		format:          document.A4Format(),
		surfaceW:        800,
		surfaceH:        600,
	}
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithHistoryCapacity bounds the undo stack depth.
func WithHistoryCapacity(capacity int) Option {
	return func(c *config) { c.historyCapacity = capacity }
}

// WithDocumentFormat sets the page format of the new document.
func WithDocumentFormat(format document.Format) Option {
	return func(c *config) { c.format = format }
}

// WithSurfaceSize sets the initial camera surface size in pixels.
func WithSurfaceSize(w, h float64) Option {
	return func(c *config) {
		c.surfaceW = w
		c.surfaceH = h
	}
}

// WithRenderer attaches the external rendering backend. Without one the
// engine performs no rendering and the render cache stays untouched.
func WithRenderer(r render.Renderer) Option {
	return func(c *config) { c.renderer = r }
}

// WithRenderWorkers sets the render pool size. Zero means GOMAXPROCS.
// Only meaningful together with WithRenderer.
func WithRenderWorkers(n int) Option {
	return func(c *config) { c.renderWorkers = n }
}

// WithLayoutFace sets the font face used to measure text stroke bounds.
// The face is shared process-wide by all text strokes.
func WithLayoutFace(face font.Face) Option {
	return func(*config) { stroke.SetLayoutFace(face) }
}
