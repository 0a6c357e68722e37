package penpath

import (
	"time"

	"github.com/gogpu/ink/geom"
)

// Progress is the result of feeding one event to a builder. The set of
// variants is closed: InProgress, EmitContinue, Finished.
type Progress interface {
	isProgress()
}

// InProgress means the builder buffered the event and has nothing to emit.
type InProgress struct{}

// EmitContinue carries segments to append to the in-flight stroke.
// The stroke is not finished.
type EmitContinue struct {
	Segments []Segment
}

// Finished means the stroke is complete. Segments holds any final flush
// output and may be empty.
type Finished struct {
	Segments []Segment
}

func (InProgress) isProgress()   {}
func (EmitContinue) isProgress() {}
func (Finished) isProgress()     {}

// Builder is the common contract of the incremental path builders.
//
// A builder is created with the first element of a gesture via NewBuilder
// and then fed the remaining events of that gesture in order. After a
// Finished result the builder must not be used again.
type Builder interface {
	// HandleEvent advances the builder state machine by one input event.
	HandleEvent(event PenEvent, now time.Time) Progress

	// Bounds returns the bounding box of buffered-but-unemitted input for
	// damage tracking, inflated for the given stroke width and camera zoom.
	// Returns false when nothing is buffered.
	Bounds(width, zoom float64) (geom.Rect, bool)
}

// BuilderKind selects a builder variant.
type BuilderKind int

const (
	// BuilderSimple emits a straight line per input sample.
	BuilderSimple BuilderKind = iota
	// BuilderCurved fits Catmull-Rom interpolated cubic Beziers over a
	// four-element sliding window.
	BuilderCurved
	// BuilderModeled smooths input through a spring-damper stroke model.
	BuilderModeled
)

// String returns the kind name for logging.
func (k BuilderKind) String() string {
	switch k {
	case BuilderSimple:
		return "simple"
	case BuilderCurved:
		return "curved"
	case BuilderModeled:
		return "modeled"
	default:
		return "unknown"
	}
}

// NewBuilder creates a builder of the given kind seeded with the first
// element of a gesture.
func NewBuilder(kind BuilderKind, start Element, now time.Time) Builder {
	switch kind {
	case BuilderCurved:
		return newCurvedBuilder(start)
	case BuilderModeled:
		return newModeledBuilder(start, now)
	default:
		return newSimpleBuilder(start)
	}
}

// damagePad returns the damage-region inflation for a given stroke width
// at a given zoom: half the stroke width plus one screen pixel expressed
// in document units.
func damagePad(width, zoom float64) float64 {
	if zoom <= 0 {
		zoom = 1
	}
	return width/2 + 1/zoom
}
