package pens

import (
	"time"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/store"
)

// ToolKind selects the active auxiliary tool.
type ToolKind int

const (
	// ToolOffsetCamera drags the camera across the document.
	ToolOffsetCamera ToolKind = iota
	// ToolVerticalSpace inserts or removes vertical space: all strokes
	// below the start line follow the drag.
	ToolVerticalSpace
)

// ToolsPen hosts the auxiliary tools that manipulate the view or the
// document layout rather than drawing.
type ToolsPen struct {
	Kind ToolKind

	active bool
	start  geom.Point
	last   geom.Point
	below  []store.StrokeKey
}

// NewToolsPen creates a tools pen with the camera-drag tool active.
func NewToolsPen() *ToolsPen {
	return &ToolsPen{Kind: ToolOffsetCamera}
}

func (p *ToolsPen) Style() PenStyle { return PenTools }

func (p *ToolsPen) HandleEvent(view EngineView, event penpath.PenEvent, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags

	switch ev := event.(type) {
	case penpath.Down:
		p.active = true
		p.start = ev.El.Pos
		p.last = ev.El.Pos
		if p.Kind == ToolVerticalSpace {
			p.below = p.strokesBelow(view, ev.El.Pos.Y)
		}

	case penpath.Motion:
		if !p.active {
			return flags
		}
		switch p.Kind {
		case ToolOffsetCamera:
			// Event positions are document coordinates, which shift as the
			// camera moves; measuring against the fixed start point keeps
			// the drag stable.
			view.Camera.Offset = view.Camera.Offset.Sub(ev.El.Pos.Sub(p.start))
			flags.RedrawScene = true
		case ToolVerticalSpace:
			dy := ev.El.Pos.Y - p.last.Y
			p.last = ev.El.Pos
			flags.Merge(view.Store.TranslateStrokes(p.below, geom.Pt(0, dy)))
		}

	case penpath.Up:
		if p.active && p.Kind == ToolVerticalSpace {
			dy := ev.El.Pos.Y - p.last.Y
			flags.Merge(view.Store.TranslateStrokes(p.below, geom.Pt(0, dy)))
			flags.Merge(view.Store.Record(now))
			autoresizeAfter(view, &flags, p.below...)
		}
		p.reset()

	case penpath.Cancel:
		if p.active && p.Kind == ToolVerticalSpace {
			// The applied displacement stays, as one undo step.
			flags.Merge(view.Store.Record(now))
		}
		p.reset()
	}
	return flags
}

func (p *ToolsPen) reset() {
	p.active = false
	p.below = nil
}

// strokesBelow returns the non-trashed strokes whose bounds start at or
// below the given document line.
func (p *ToolsPen) strokesBelow(view EngineView, y float64) []store.StrokeKey {
	var keys []store.StrokeKey
	for _, key := range view.Store.KeysSortedChrono() {
		if b, ok := view.Store.Bounds(key); ok && b.Min.Y >= y {
			keys = append(keys, key)
		}
	}
	return keys
}
