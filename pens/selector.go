package pens

import (
	"time"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/store"
)

type selectorState int

const (
	selectorIdle selectorState = iota
	selectorSelecting
	selectorTranslating
)

// tapExtent is the maximum drag size still treated as a tap.
const tapExtent = 4.0

// duplicateOffset displaces duplicated strokes so the copy is visible.
var duplicateOffset = geom.Pt(16, 16)

// SelectorPen selects strokes with a rubber-band rectangle, drags the
// current selection around and duplicates it. A drag starting inside the
// selection bounds moves the selection; anywhere else it starts a new
// rubber band.
type SelectorPen struct {
	state selectorState
	start geom.Point
	last  geom.Point
}

// NewSelectorPen creates a selector pen.
func NewSelectorPen() *SelectorPen {
	return &SelectorPen{}
}

func (p *SelectorPen) Style() PenStyle { return PenSelector }

// SelectionRect returns the in-progress rubber-band rectangle for the UI
// overlay. Returns false while not selecting.
func (p *SelectorPen) SelectionRect() (geom.Rect, bool) {
	if p.state != selectorSelecting {
		return geom.Rect{}, false
	}
	return geom.NewRect(p.start, p.last), true
}

func (p *SelectorPen) HandleEvent(view EngineView, event penpath.PenEvent, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags

	switch ev := event.(type) {
	case penpath.Down:
		p.start = ev.El.Pos
		p.last = ev.El.Pos
		if p.pointOnSelection(view, ev.El.Pos) {
			p.state = selectorTranslating
		} else {
			p.state = selectorSelecting
		}
		flags.RedrawScene = true

	case penpath.Motion:
		switch p.state {
		case selectorSelecting:
			p.last = ev.El.Pos
			flags.RedrawScene = true
		case selectorTranslating:
			delta := ev.El.Pos.Sub(p.last)
			p.last = ev.El.Pos
			flags.Merge(view.Store.TranslateStrokes(view.Store.SelectionKeysAsRendered(), delta))
		}

	case penpath.Up:
		switch p.state {
		case selectorSelecting:
			p.last = ev.El.Pos
			flags.Merge(p.commitSelection(view, now))
		case selectorTranslating:
			delta := ev.El.Pos.Sub(p.last)
			flags.Merge(view.Store.TranslateStrokes(view.Store.SelectionKeysAsRendered(), delta))
			flags.Merge(view.Store.Record(now))
			autoresizeAfter(view, &flags, view.Store.SelectionKeysAsRendered()...)
		}
		p.state = selectorIdle

	case penpath.Cancel:
		if p.state == selectorTranslating {
			// The already-applied translation stays, as one undo step.
			flags.Merge(view.Store.Record(now))
		}
		p.state = selectorIdle
		flags.RedrawScene = true
	}
	return flags
}

// commitSelection resolves a finished rubber band: a tap on empty space
// deselects everything, a tap on a stroke selects the topmost one, a
// dragged rectangle selects every intersecting stroke.
func (p *SelectorPen) commitSelection(view EngineView, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags
	band := geom.NewRect(p.start, p.last)

	if band.Width() <= tapExtent && band.Height() <= tapExtent {
		probe := geom.RectFromPoint(p.last).Expand(tapExtent / 2)
		hits := view.Store.KeysSortedChronoIntersectingBounds(probe)
		if len(hits) == 0 {
			flags.Merge(view.Store.DeselectAll())
		} else {
			flags.Merge(view.Store.SetSelected(hits[len(hits)-1], true))
		}
	} else {
		for _, key := range view.Store.KeysSortedChronoIntersectingBounds(band) {
			flags.Merge(view.Store.SetSelected(key, true))
		}
	}
	flags.Merge(view.Store.Record(now))
	return flags
}

// DuplicateSelection clones the current selection with a small offset.
// The duplicates become the new selection, recorded as one undo step.
func (p *SelectorPen) DuplicateSelection(view EngineView, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags
	keys := view.Store.SelectionKeysAsRendered()
	if len(keys) == 0 {
		return flags
	}
	dups := view.Store.DuplicateStrokes(keys, duplicateOffset)
	flags.Merge(view.Store.Record(now))
	autoresizeAfter(view, &flags, dups...)
	flags.RedrawScene = true
	flags.RefreshUI = true
	return flags
}

func (p *SelectorPen) pointOnSelection(view EngineView, pos geom.Point) bool {
	keys := view.Store.SelectionKeysAsRendered()
	if len(keys) == 0 {
		return false
	}
	bounds, ok := view.Store.StrokesBounds(keys)
	return ok && bounds.Contains(pos)
}
