package penpath

import (
	"math"
	"time"

	"github.com/gogpu/ink/geom"
)

// ModelerParams tunes the stroke smoothing model.
type ModelerParams struct {
	// MinOutputRate is the minimum rate of smoothed output samples in Hz.
	// Sparse input is upsampled to at least this rate.
	MinOutputRate float64
	// MaxOutputsPerCall caps how many synthetic samples one input event may
	// backfill. A wall-clock stall that would exceed the cap resets the
	// model from the current input instead of producing a catch-up burst.
	MaxOutputsPerCall int
	// SpringFrequency is the natural frequency of the critically damped
	// spring pulling the modeled position toward the raw input, in Hz.
	SpringFrequency float64
}

// DefaultModelerParams returns the tuning used by the modeled builder.
func DefaultModelerParams() ModelerParams {
	return ModelerParams{
		MinOutputRate:     180,
		MaxOutputsPerCall: 20,
		SpringFrequency:   12,
	}
}

// strokeModeler is a physically-inspired input smoother: the modeled
// position is a particle attached to the raw input by a critically damped
// spring, integrated at a fixed resample rate. Output positions trail the
// input slightly but remove sensor jitter.
type strokeModeler struct {
	params ModelerParams

	pos      geom.Point
	vel      geom.Point
	pressure float64

	lastInput Element
	lastTime  time.Time
	primed    bool
}

func newStrokeModeler(params ModelerParams) *strokeModeler {
	if params.MinOutputRate <= 0 {
		params.MinOutputRate = DefaultModelerParams().MinOutputRate
	}
	if params.MaxOutputsPerCall <= 0 {
		params.MaxOutputsPerCall = DefaultModelerParams().MaxOutputsPerCall
	}
	if params.SpringFrequency <= 0 {
		params.SpringFrequency = DefaultModelerParams().SpringFrequency
	}
	return &strokeModeler{params: params}
}

// Reset restarts the model from the given sample. The next output begins
// exactly at el with zero velocity.
func (m *strokeModeler) Reset(el Element, now time.Time) {
	m.pos = el.Pos
	m.vel = geom.Point{}
	m.pressure = el.Pressure
	m.lastInput = el
	m.lastTime = now
	m.primed = true
}

// Update feeds one raw sample and returns the smoothed output samples.
// Duplicate consecutive positions are dropped (the model does not accept
// zero-displacement input). A stall longer than the backfill cap resets
// the model, trading a small visual discontinuity for bounded latency.
func (m *strokeModeler) Update(el Element, now time.Time) []Element {
	if !m.primed {
		m.Reset(el, now)
		return []Element{el}
	}
	if el.Pos == m.lastInput.Pos {
		return nil
	}

	dt := now.Sub(m.lastTime).Seconds()
	if dt <= 0 {
		dt = 1 / m.params.MinOutputRate
	}
	n := int(dt*m.params.MinOutputRate) + 1
	if n > m.params.MaxOutputsPerCall {
		m.Reset(el, now)
		return []Element{el}
	}

	omega := 2 * math.Pi * m.params.SpringFrequency
	step := dt / float64(n)
	prevPressure := m.pressure
	out := make([]Element, 0, n)
	for i := 1; i <= n; i++ {
		// Critically damped spring: a = w^2 (target - x) - 2 w v.
		accel := el.Pos.Sub(m.pos).Mul(omega * omega).Sub(m.vel.Mul(2 * omega))
		m.vel = m.vel.Add(accel.Mul(step))
		m.pos = m.pos.Add(m.vel.Mul(step))
		pressure := geom.Lerp(prevPressure, el.Pressure, float64(i)/float64(n))
		out = append(out, Element{Pos: m.pos, Pressure: pressure})
	}
	m.pressure = el.Pressure
	m.lastInput = el
	m.lastTime = now
	return out
}

// Latest returns the current modeled position as an element.
func (m *strokeModeler) Latest() Element {
	return Element{Pos: m.pos, Pressure: m.pressure}
}
