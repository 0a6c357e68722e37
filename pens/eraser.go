package pens

import (
	"time"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/store"
)

// EraserMode selects how the eraser removes stroke material.
type EraserMode int

const (
	// EraserTrashColliding trashes whole colliding strokes.
	EraserTrashColliding EraserMode = iota
	// EraserSplitColliding cuts colliding segments out of brush strokes,
	// splitting them into surviving parts.
	EraserSplitColliding
)

// DefaultEraserWidth is the eraser footprint in document units.
const DefaultEraserWidth = 12.0

// EraserPen removes stroke material under the pen. One continuous drag is
// one undo step: history is recorded at the first collision of the drag
// and never again until pen-up.
type EraserPen struct {
	Mode  EraserMode
	Width float64

	active   bool
	recorded bool
}

// NewEraserPen creates a whole-stroke eraser with the default width.
func NewEraserPen() *EraserPen {
	return &EraserPen{Mode: EraserTrashColliding, Width: DefaultEraserWidth}
}

func (p *EraserPen) Style() PenStyle { return PenEraser }

func (p *EraserPen) HandleEvent(view EngineView, event penpath.PenEvent, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags

	switch ev := event.(type) {
	case penpath.Down:
		p.active = true
		p.recorded = false
		flags.Merge(p.erase(view, ev.El.Pos, now))
	case penpath.Motion:
		if p.active {
			flags.Merge(p.erase(view, ev.El.Pos, now))
		}
	case penpath.Up:
		if p.active {
			flags.Merge(p.erase(view, ev.El.Pos, now))
		}
		p.active = false
		p.recorded = false
	case penpath.Cancel:
		p.active = false
		p.recorded = false
	}
	return flags
}

func (p *EraserPen) erase(view EngineView, pos geom.Point, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags
	w := p.Width
	if w <= 0 {
		w = DefaultEraserWidth
	}
	bounds := geom.RectFromPoint(pos).Expand(w / 2)
	viewport := view.Camera.Viewport()

	switch p.Mode {
	case EraserSplitColliding:
		_, f := view.Store.SplitCollidingStrokes(bounds, viewport, now, !p.recorded)
		flags.Merge(f)
	default:
		flags.Merge(view.Store.TrashCollidingStrokes(bounds, viewport, now, !p.recorded))
	}
	if flags.StoreModified {
		p.recorded = true
	}
	return flags
}
