package penpath

import (
	"testing"
	"time"
)

// collectSegments drives a builder with motion events for the given
// elements followed by an Up at the last element, gathering all emitted
// segments.
func collectSegments(t *testing.T, kind BuilderKind, els []Element) []Segment {
	t.Helper()
	now := time.Unix(0, 0)
	b := NewBuilder(kind, els[0], now)

	var segs []Segment
	for _, el := range els[1:] {
		now = now.Add(8 * time.Millisecond)
		switch p := b.HandleEvent(Motion{El: el}, now).(type) {
		case EmitContinue:
			segs = append(segs, p.Segments...)
		case Finished:
			t.Fatalf("builder finished early")
		}
	}
	now = now.Add(8 * time.Millisecond)
	p, ok := b.HandleEvent(Up{El: els[len(els)-1]}, now).(Finished)
	if !ok {
		t.Fatalf("Up did not finish the builder, got %T", p)
	}
	return append(segs, p.Segments...)
}

// checkContinuity asserts that every segment's end chains to the next
// segment's start with no gaps.
func checkContinuity(t *testing.T, segs []Segment) {
	t.Helper()
	for i := 0; i+1 < len(segs); i++ {
		end := segs[i].EndEl().Pos
		start := segs[i+1].StartEl().Pos
		if end != start {
			t.Errorf("segment %d ends at %v but segment %d starts at %v", i, end, i+1, start)
		}
	}
}

func collinearElements(n int) []Element {
	els := make([]Element, n)
	for i := range els {
		els[i] = El(float64(i)*5, float64(i)*5, 0.5)
	}
	return els
}

func TestCurvedBuilder_CollinearContinuity(t *testing.T) {
	els := collinearElements(12)
	segs := collectSegments(t, BuilderCurved, els)

	if len(segs) != len(els)-1 {
		t.Fatalf("segment count = %d, want %d", len(segs), len(els)-1)
	}
	checkContinuity(t, segs)
	if segs[0].StartEl().Pos != els[0].Pos {
		t.Errorf("path starts at %v, want %v", segs[0].StartEl().Pos, els[0].Pos)
	}
	if segs[len(segs)-1].EndEl().Pos != els[len(els)-1].Pos {
		t.Errorf("path ends at %v, want %v", segs[len(segs)-1].EndEl().Pos, els[len(els)-1].Pos)
	}
}

func TestCurvedBuilder_TrailingFlush(t *testing.T) {
	tests := []struct {
		name     string
		els      []Element
		wantSegs int
	}{
		{"single tap emits dot", collinearElements(1), 1},
		{"two elements emit one segment", collinearElements(2), 1},
		{"three elements emit two segments", collinearElements(3), 2},
		{"four elements emit three segments", collinearElements(4), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := collectSegments(t, BuilderCurved, tt.els)
			if len(segs) != tt.wantSegs {
				t.Fatalf("segment count = %d, want %d", len(segs), tt.wantSegs)
			}
			checkContinuity(t, segs)
			if len(tt.els) == 1 {
				if _, ok := segs[0].(Dot); !ok {
					t.Errorf("single element flushed as %T, want Dot", segs[0])
				}
			}
		})
	}
}

func TestCurvedBuilder_DuplicatePositionsDropped(t *testing.T) {
	now := time.Unix(0, 0)
	b := NewBuilder(BuilderCurved, El(0, 0, 0.5), now)
	if _, ok := b.HandleEvent(Motion{El: El(0, 0, 0.9)}, now).(InProgress); !ok {
		t.Errorf("duplicate position was not silently buffered away")
	}
}

func TestSimpleBuilder_LinePerSample(t *testing.T) {
	els := []Element{El(0, 0, 0.5), El(3, 0, 0.5), El(3, 4, 0.7)}
	segs := collectSegments(t, BuilderSimple, els)

	if len(segs) != 2 {
		t.Fatalf("segment count = %d, want 2", len(segs))
	}
	checkContinuity(t, segs)
	for i, seg := range segs {
		if _, ok := seg.(LineTo); !ok {
			t.Errorf("segment %d is %T, want LineTo", i, seg)
		}
	}
}

func TestSimpleBuilder_TapEmitsDot(t *testing.T) {
	now := time.Unix(0, 0)
	b := NewBuilder(BuilderSimple, El(1, 2, 0.5), now)
	p, ok := b.HandleEvent(Up{El: El(1, 2, 0.5)}, now).(Finished)
	if !ok {
		t.Fatalf("Up did not finish the builder")
	}
	if len(p.Segments) != 1 {
		t.Fatalf("segment count = %d, want 1", len(p.Segments))
	}
	if _, ok := p.Segments[0].(Dot); !ok {
		t.Errorf("tap emitted %T, want Dot", p.Segments[0])
	}
}

func TestModeledBuilder_Continuity(t *testing.T) {
	els := collinearElements(10)
	segs := collectSegments(t, BuilderModeled, els)
	if len(segs) == 0 {
		t.Fatal("modeled builder emitted nothing")
	}
	checkContinuity(t, segs)
	last := segs[len(segs)-1].EndEl().Pos
	if last != els[len(els)-1].Pos {
		t.Errorf("stroke ends at %v, want raw final position %v", last, els[len(els)-1].Pos)
	}
}

func TestBuilders_CancelFinishesEmpty(t *testing.T) {
	kinds := []BuilderKind{BuilderSimple, BuilderCurved, BuilderModeled}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			now := time.Unix(0, 0)
			b := NewBuilder(kind, El(0, 0, 0.5), now)
			b.HandleEvent(Motion{El: El(5, 5, 0.5)}, now.Add(8*time.Millisecond))
			p, ok := b.HandleEvent(Cancel{}, now.Add(16*time.Millisecond)).(Finished)
			if !ok {
				t.Fatalf("Cancel did not finish the builder")
			}
			if len(p.Segments) != 0 {
				t.Errorf("Cancel flushed %d segments, want 0", len(p.Segments))
			}
		})
	}
}

func TestBuilders_BoundsWhileBuffering(t *testing.T) {
	now := time.Unix(0, 0)
	b := NewBuilder(BuilderCurved, El(0, 0, 0.5), now)
	b.HandleEvent(Motion{El: El(10, 10, 0.5)}, now)

	bbox, ok := b.Bounds(2, 1)
	if !ok {
		t.Fatal("Bounds returned false with buffered input")
	}
	if !bbox.Contains(El(10, 10, 0).Pos) || !bbox.Contains(El(0, 0, 0).Pos) {
		t.Errorf("bounds %v do not cover buffered input", bbox)
	}
}
