package pens

import (
	"math"
	"time"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/store"
	"github.com/gogpu/ink/stroke"
)

// ShaperKind selects the shape the shaper pen drags out.
type ShaperKind int

const (
	// ShaperLine drags a straight line.
	ShaperLine ShaperKind = iota
	// ShaperRect drags a rectangle outline.
	ShaperRect
	// ShaperEllipse drags an ellipse outline.
	ShaperEllipse
)

// ShaperPen drags geometric shapes onto the document. The shape is
// inserted on pen-down and replaced in the store on every motion, so the
// in-progress shape renders like any other stroke.
type ShaperPen struct {
	StrokeStyle stroke.Style
	Kind        ShaperKind
	// AspectLock constrains the drag to equal extents: squares, circles
	// and 45-degree lines.
	AspectLock bool

	building bool
	start    geom.Point
	current  store.StrokeKey
}

// NewShaperPen creates a shaper pen producing rectangles.
func NewShaperPen() *ShaperPen {
	return &ShaperPen{
		StrokeStyle: stroke.DefaultStyle(),
		Kind:        ShaperRect,
	}
}

func (p *ShaperPen) Style() PenStyle { return PenShaper }

func (p *ShaperPen) HandleEvent(view EngineView, event penpath.PenEvent, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags

	if !p.building {
		down, ok := event.(penpath.Down)
		if !ok {
			return flags
		}
		p.start = down.El.Pos
		p.current = view.Store.InsertStroke(p.shapeStroke(p.start))
		p.building = true
		flags.RedrawScene = true
		return flags
	}

	switch ev := event.(type) {
	case penpath.Motion:
		flags.Merge(view.Store.ReplaceStroke(p.current, p.shapeStroke(ev.El.Pos)))
	case penpath.Up:
		flags.Merge(view.Store.ReplaceStroke(p.current, p.shapeStroke(ev.El.Pos)))
		flags.Merge(p.commit(view, ev.El.Pos, now))
	case penpath.Cancel:
		// Keep whatever was dragged out so far; only a zero-extent shape
		// is discarded.
		flags.Merge(p.commit(view, p.lastExtent(view), now))
	}
	return flags
}

func (p *ShaperPen) commit(view EngineView, end geom.Point, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags
	defer func() {
		p.building = false
		p.current = store.StrokeKey{}
	}()

	if end == p.start {
		view.Store.RemoveStroke(p.current)
		flags.RedrawScene = true
		return flags
	}
	flags.Merge(view.Store.Record(now))
	autoresizeAfter(view, &flags, p.current)
	return flags
}

// lastExtent recovers the drag endpoint from the stroke in the store, for
// cancel handling where no event position is available.
func (p *ShaperPen) lastExtent(view EngineView) geom.Point {
	st, ok := view.Store.Stroke(p.current)
	if !ok {
		return p.start
	}
	b := st.Bounds()
	if b.Width() <= p.StrokeStyle.Width && b.Height() <= p.StrokeStyle.Width {
		return p.start
	}
	return b.Max
}

func (p *ShaperPen) shapeStroke(end geom.Point) *stroke.ShapeStroke {
	if p.AspectLock {
		end = lockAspect(p.start, end)
	}
	var shape stroke.Shape
	switch p.Kind {
	case ShaperLine:
		shape = stroke.ShapeLine{Start: p.start, End: end}
	case ShaperEllipse:
		shape = stroke.ShapeEllipse{
			Center:  p.start.Lerp(end, 0.5),
			RadiusX: math.Abs(end.X-p.start.X) / 2,
			RadiusY: math.Abs(end.Y-p.start.Y) / 2,
		}
	default:
		shape = stroke.ShapeRect{Rect: geom.NewRect(p.start, end)}
	}
	return stroke.NewShapeStroke(shape, p.StrokeStyle)
}

// lockAspect clamps the drag vector to equal absolute extents.
func lockAspect(start, end geom.Point) geom.Point {
	d := end.Sub(start)
	m := math.Max(math.Abs(d.X), math.Abs(d.Y))
	return geom.Pt(
		start.X+math.Copysign(m, d.X),
		start.Y+math.Copysign(m, d.Y),
	)
}
