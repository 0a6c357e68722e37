// Package penpath turns raw pointer/stylus input into stroke path geometry.
//
// An Element is one input sample. Builders are incremental state machines
// that consume a stream of elements and emit path segments without waiting
// for the stroke to finish, so callers can render in-progress strokes.
// Three interchangeable builder variants share one contract: Simple (a line
// per sample, minimal latency), Curved (Catmull-Rom fitted cubic Beziers
// over a sliding window) and Modeled (spring-damper smoothing resampled at
// a minimum output rate).
package penpath

import "github.com/gogpu/ink/geom"

// Element is one pressure-weighted input sample from a pointer or stylus.
// Pressure is in [0, 1]; devices without pressure report 0.5.
type Element struct {
	Pos      geom.Point
	Pressure float64
}

// El is a convenience function to create an Element.
func El(x, y, pressure float64) Element {
	return Element{Pos: geom.Pt(x, y), Pressure: pressure}
}

// Lerp interpolates position and pressure between two elements.
func (e Element) Lerp(o Element, t float64) Element {
	return Element{
		Pos:      e.Pos.Lerp(o.Pos, t),
		Pressure: geom.Lerp(e.Pressure, o.Pressure, t),
	}
}

// PenEvent is the input event union consumed by builders and pen behaviors.
// The set of events is closed: Down, Motion, Up, Cancel.
type PenEvent interface {
	isPenEvent()
}

// Down signals the pen touching the surface.
type Down struct {
	El Element
}

// Motion signals pen movement while touching the surface.
type Motion struct {
	El Element
}

// Up signals the pen leaving the surface.
type Up struct {
	El Element
}

// Cancel aborts the current gesture (focus loss, palm rejection, etc).
type Cancel struct{}

func (Down) isPenEvent()   {}
func (Motion) isPenEvent() {}
func (Up) isPenEvent()     {}
func (Cancel) isPenEvent() {}
