package penpath

import (
	"time"

	"github.com/gogpu/ink/geom"
)

// simpleBuilder buffers one element at a time and emits a straight line
// segment from the previous point for every new sample. Minimal latency,
// no smoothing.
type simpleBuilder struct {
	prev     Element
	emitted  bool
	finished bool
}

func newSimpleBuilder(start Element) *simpleBuilder {
	return &simpleBuilder{prev: start}
}

func (b *simpleBuilder) HandleEvent(event PenEvent, _ time.Time) Progress {
	if b.finished {
		return Finished{}
	}
	switch ev := event.(type) {
	case Down, Motion:
		el := eventElement(event)
		if el.Pos == b.prev.Pos {
			return InProgress{}
		}
		seg := LineTo{Start: b.prev, End: el}
		b.prev = el
		b.emitted = true
		return EmitContinue{Segments: []Segment{seg}}

	case Up:
		b.finished = true
		if ev.El.Pos != b.prev.Pos {
			return Finished{Segments: []Segment{LineTo{Start: b.prev, End: ev.El}}}
		}
		if !b.emitted {
			// A tap without movement still leaves a mark.
			return Finished{Segments: []Segment{Dot{At: b.prev}}}
		}
		return Finished{}

	case Cancel:
		b.finished = true
		return Finished{}
	}
	return InProgress{}
}

func (b *simpleBuilder) Bounds(width, zoom float64) (geom.Rect, bool) {
	if b.finished {
		return geom.Rect{}, false
	}
	return geom.RectFromPoint(b.prev.Pos).Expand(damagePad(width, zoom)), true
}

// eventElement extracts the element carried by a positioned event.
func eventElement(event PenEvent) Element {
	switch ev := event.(type) {
	case Down:
		return ev.El
	case Motion:
		return ev.El
	case Up:
		return ev.El
	}
	return Element{}
}
