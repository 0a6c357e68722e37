package penpath

import (
	"time"

	"github.com/gogpu/ink/geom"
)

// modeledBuilder feeds raw samples into the stroke modeler and chains the
// smoothed output points into line segments. The final raw position is
// appended at pointer-up so the stroke ends exactly where the pen lifted.
type modeledBuilder struct {
	modeler  *strokeModeler
	prev     Element
	emitted  bool
	finished bool
}

func newModeledBuilder(start Element, now time.Time) *modeledBuilder {
	m := newStrokeModeler(DefaultModelerParams())
	m.Reset(start, now)
	return &modeledBuilder{modeler: m, prev: start}
}

func (b *modeledBuilder) HandleEvent(event PenEvent, now time.Time) Progress {
	if b.finished {
		return Finished{}
	}
	switch event.(type) {
	case Down, Motion:
		out := b.modeler.Update(eventElement(event), now)
		if segs := b.chain(out); len(segs) > 0 {
			return EmitContinue{Segments: segs}
		}
		return InProgress{}

	case Up:
		el := eventElement(event)
		segs := b.chain(b.modeler.Update(el, now))
		if el.Pos != b.prev.Pos {
			segs = append(segs, LineTo{Start: b.prev, End: el})
			b.prev = el
			b.emitted = true
		}
		b.finished = true
		if !b.emitted {
			segs = append(segs, Dot{At: b.prev})
		}
		return Finished{Segments: segs}

	case Cancel:
		b.finished = true
		return Finished{}
	}
	return InProgress{}
}

// chain converts smoothed output points into contiguous line segments.
func (b *modeledBuilder) chain(out []Element) []Segment {
	var segs []Segment
	for _, el := range out {
		if el.Pos == b.prev.Pos {
			continue
		}
		segs = append(segs, LineTo{Start: b.prev, End: el})
		b.prev = el
		b.emitted = true
	}
	return segs
}

func (b *modeledBuilder) Bounds(width, zoom float64) (geom.Rect, bool) {
	if b.finished {
		return geom.Rect{}, false
	}
	bbox := geom.NewRect(b.prev.Pos, b.modeler.Latest().Pos)
	return bbox.Expand(damagePad(width, zoom)), true
}
