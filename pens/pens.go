// Package pens implements the pen behaviors: per-style state machines
// that translate pen events into stroke store operations. A pen never
// owns strokes; it drives the store and reports what the UI must refresh
// through widget flags.
package pens

import (
	"time"

	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/store"
)

// PenStyle identifies a pen behavior.
type PenStyle int

const (
	// PenBrush draws freehand strokes.
	PenBrush PenStyle = iota
	// PenShaper drags out geometric shapes.
	PenShaper
	// PenEraser trashes or splits strokes under the pen.
	PenEraser
	// PenSelector selects, moves and duplicates strokes.
	PenSelector
	// PenTools hosts auxiliary tools (camera drag, vertical space).
	PenTools
)

// String returns the style name for logging.
func (s PenStyle) String() string {
	switch s {
	case PenBrush:
		return "brush"
	case PenShaper:
		return "shaper"
	case PenEraser:
		return "eraser"
	case PenSelector:
		return "selector"
	case PenTools:
		return "tools"
	default:
		return "unknown"
	}
}

// EngineView bundles the mutable engine state a pen operates on. Pens
// receive it per event instead of holding references, so the engine stays
// free to swap documents or stores between gestures.
type EngineView struct {
	Store  *store.StrokeStore
	Doc    *document.Document
	Camera *document.Camera
}

// Pen is the behavior contract. Event positions are in document
// coordinates; the engine maps surface input through the camera first.
//
// A Cancel event must always leave the pen idle and the store consistent.
type Pen interface {
	Style() PenStyle
	HandleEvent(view EngineView, event penpath.PenEvent, now time.Time) store.WidgetFlags
}

// autoresizeAfter grows the document to the bounds of the given strokes
// and merges the resize flag.
func autoresizeAfter(view EngineView, flags *store.WidgetFlags, keys ...store.StrokeKey) {
	bounds, ok := view.Store.StrokesBounds(keys)
	if !ok {
		return
	}
	if view.Doc.ExpandAutoresize(bounds) {
		flags.ResizeDoc = true
	}
}
