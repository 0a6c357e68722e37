package pens

import (
	"time"

	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/store"
	"github.com/gogpu/ink/stroke"
)

type brushState int

const (
	brushIdle brushState = iota
	brushDrawing
)

// BrushPen draws freehand strokes. The stroke is inserted into the store
// on pen-down as an empty placeholder and extended with builder output
// while drawing, so in-progress strokes render without special casing.
type BrushPen struct {
	// StrokeStyle is applied to new strokes.
	StrokeStyle stroke.Style
	// Builder selects the path builder variant for new strokes.
	Builder penpath.BuilderKind

	state   brushState
	builder penpath.Builder
	current store.StrokeKey
}

// NewBrushPen creates a brush pen with the default style and the curved
// builder.
func NewBrushPen() *BrushPen {
	return &BrushPen{
		StrokeStyle: stroke.DefaultStyle(),
		Builder:     penpath.BuilderCurved,
	}
}

func (p *BrushPen) Style() PenStyle { return PenBrush }

func (p *BrushPen) HandleEvent(view EngineView, event penpath.PenEvent, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags

	switch p.state {
	case brushIdle:
		down, ok := event.(penpath.Down)
		if !ok {
			return flags
		}
		p.builder = penpath.NewBuilder(p.Builder, down.El, now)
		p.current = view.Store.InsertStroke(stroke.NewBrushStroke(p.StrokeStyle))
		p.state = brushDrawing
		flags.RedrawScene = true
		return flags

	case brushDrawing:
		if down, ok := event.(penpath.Down); ok {
			// Spurious second down mid-gesture, treat as motion.
			event = penpath.Motion{El: down.El}
		}
		switch progress := p.builder.HandleEvent(event, now).(type) {
		case penpath.InProgress:
		case penpath.EmitContinue:
			flags.Merge(view.Store.ExtendStroke(p.current, progress.Segments...))
		case penpath.Finished:
			flags.Merge(view.Store.ExtendStroke(p.current, progress.Segments...))
			flags.Merge(p.finish(view, now))
		}
		return flags
	}
	return flags
}

// finish commits or discards the in-flight stroke. A stroke that never
// received any segments (cancelled before the builder emitted) is removed
// instead of recorded; everything committed stays, as one undo step.
func (p *BrushPen) finish(view EngineView, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags
	defer func() {
		p.state = brushIdle
		p.builder = nil
		p.current = store.StrokeKey{}
	}()

	st, ok := view.Store.Stroke(p.current)
	if !ok {
		return flags
	}
	if b, isBrush := st.(*stroke.BrushStroke); isBrush && b.SegmentCount() == 0 {
		view.Store.RemoveStroke(p.current)
		flags.RedrawScene = true
		return flags
	}

	flags.Merge(view.Store.Record(now))
	autoresizeAfter(view, &flags, p.current)
	flags.RedrawScene = true
	return flags
}
