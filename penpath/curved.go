package penpath

import (
	"time"

	"github.com/gogpu/ink/geom"
)

// curvedBuilder maintains a sliding window over the input elements and
// fits a Catmull-Rom interpolated cubic Bezier through the middle two
// points of each four-element window, using the outer two as tangent
// guides. Emission lags the input by one sample: segment buffer[i] ->
// buffer[i+1] is emitted once buffer[i+2] is known. The trailing partial
// window is flushed at pointer-up with progressively simpler fallbacks
// (dot for one element, lines for two or three).
type curvedBuilder struct {
	buffer   []Element
	next     int // index of the start element of the next segment to emit
	finished bool
}

func newCurvedBuilder(start Element) *curvedBuilder {
	return &curvedBuilder{buffer: []Element{start}}
}

func (b *curvedBuilder) HandleEvent(event PenEvent, _ time.Time) Progress {
	if b.finished {
		return Finished{}
	}
	switch event.(type) {
	case Down, Motion:
		el := eventElement(event)
		if el.Pos == b.buffer[len(b.buffer)-1].Pos {
			return InProgress{}
		}
		b.buffer = append(b.buffer, el)
		if segs := b.buildReady(); len(segs) > 0 {
			return EmitContinue{Segments: segs}
		}
		return InProgress{}

	case Up:
		el := eventElement(event)
		if el.Pos != b.buffer[len(b.buffer)-1].Pos {
			b.buffer = append(b.buffer, el)
		}
		b.finished = true
		return Finished{Segments: b.flush()}

	case Cancel:
		b.finished = true
		return Finished{}
	}
	return InProgress{}
}

// buildReady emits every segment whose forward tangent guide is available,
// i.e. all i with i+2 < len(buffer).
func (b *curvedBuilder) buildReady() []Segment {
	var segs []Segment
	for b.next+2 < len(b.buffer) {
		segs = append(segs, b.fitSegment(b.next))
		b.next++
	}
	return segs
}

// flush emits the trailing partial window after the final element arrived.
func (b *curvedBuilder) flush() []Segment {
	if len(b.buffer) == 1 {
		return []Segment{Dot{At: b.buffer[0]}}
	}
	var segs []Segment
	for b.next+1 < len(b.buffer) {
		segs = append(segs, b.fitSegment(b.next))
		b.next++
	}
	return segs
}

// fitSegment builds the segment from buffer[i] to buffer[i+1]. Outer
// window elements are clamped at the path ends, which degrades the fit to
// shorter tangents rather than failing.
func (b *curvedBuilder) fitSegment(i int) Segment {
	p1 := b.buffer[i]
	p2 := b.buffer[i+1]
	p0 := b.buffer[max(i-1, 0)]
	p3 := b.buffer[min(i+2, len(b.buffer)-1)]

	cb := geom.CatmullRomToCubic(p0.Pos, p1.Pos, p2.Pos, p3.Pos)
	if cb.IsDegenerate() || !cb.BoundingBox().IsFinite() {
		return LineTo{Start: p1, End: p2}
	}
	return CubicBezTo{Start: p1, Ctrl1: cb.P1, Ctrl2: cb.P2, End: p2}
}

func (b *curvedBuilder) Bounds(width, zoom float64) (geom.Rect, bool) {
	if b.finished || b.next >= len(b.buffer) {
		return geom.Rect{}, false
	}
	bbox := geom.RectFromPoint(b.buffer[b.next].Pos)
	for _, el := range b.buffer[b.next:] {
		bbox = bbox.Union(geom.RectFromPoint(el.Pos))
	}
	return bbox.Expand(damagePad(width, zoom)), true
}
