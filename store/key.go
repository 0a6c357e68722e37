// Package store implements the stroke store: the sole owner of all
// drawing primitives and their per-stroke components (chronology, trash,
// selection, render cache), with an R-tree spatial index and transactional
// undo/redo over copy-on-record history snapshots.
//
// The store is an ECS-style structure: strokes live in a generational slot
// map, components live in side-tables keyed by StrokeKey and are created
// and removed atomically with their stroke.
//
// Concurrency: the store is single-writer. Queries may fan out across
// goroutines internally, but callers must not mutate the store while a
// query is running.
package store

import "github.com/gogpu/ink/stroke"

// StrokeKey is an opaque, generationally-safe handle into the store.
// The zero value is invalid. A removed key never again resolves to a
// different, later-inserted stroke.
type StrokeKey struct {
	Idx uint32
	Gen uint32
}

// IsValid reports whether the key could have been issued by a store.
// It does not check liveness; use StrokeStore lookups for that.
func (k StrokeKey) IsValid() bool {
	return k.Gen != 0
}

// slotMap is a generational arena: a dense slot array plus a free list,
// with a monotonic per-slot generation counter. The generation counter is
// never rewound, not even by history restores, so keys issued after an
// undo can never alias keys issued before it.
type slotMap struct {
	slots []slot
	gens  []uint32
	free  []uint32
}

type slot struct {
	key      StrokeKey
	stroke   stroke.Stroke
	occupied bool
}

func (m *slotMap) insert(s stroke.Stroke) StrokeKey {
	var idx uint32
	if n := len(m.free); n > 0 {
		idx = m.free[n-1]
		m.free = m.free[:n-1]
	} else {
		idx = uint32(len(m.slots))
		m.slots = append(m.slots, slot{})
		m.gens = append(m.gens, 0)
	}
	m.gens[idx]++
	key := StrokeKey{Idx: idx, Gen: m.gens[idx]}
	m.slots[idx] = slot{key: key, stroke: s, occupied: true}
	return key
}

func (m *slotMap) get(k StrokeKey) (stroke.Stroke, bool) {
	if int(k.Idx) >= len(m.slots) {
		return nil, false
	}
	sl := m.slots[k.Idx]
	if !sl.occupied || sl.key != k {
		return nil, false
	}
	return sl.stroke, true
}

func (m *slotMap) set(k StrokeKey, s stroke.Stroke) bool {
	if _, ok := m.get(k); !ok {
		return false
	}
	m.slots[k.Idx].stroke = s
	return true
}

func (m *slotMap) remove(k StrokeKey) (stroke.Stroke, bool) {
	s, ok := m.get(k)
	if !ok {
		return nil, false
	}
	m.slots[k.Idx] = slot{}
	m.free = append(m.free, k.Idx)
	return s, true
}

func (m *slotMap) len() int {
	return len(m.slots) - len(m.free)
}

// keys returns all live keys in slot order.
func (m *slotMap) keys() []StrokeKey {
	out := make([]StrokeKey, 0, m.len())
	for _, sl := range m.slots {
		if sl.occupied {
			out = append(out, sl.key)
		}
	}
	return out
}

// snapshot returns deep clones of all live strokes keyed by their keys.
func (m *slotMap) snapshot() map[StrokeKey]stroke.Stroke {
	out := make(map[StrokeKey]stroke.Stroke, m.len())
	for _, sl := range m.slots {
		if sl.occupied {
			out[sl.key] = sl.stroke.Clone()
		}
	}
	return out
}

// restore rebuilds occupancy from a historical stroke map. Generation
// counters stay monotonic: a slot's counter only ever moves forward, so
// later inserts cannot collide with restored keys.
func (m *slotMap) restore(strokes map[StrokeKey]stroke.Stroke) {
	maxIdx := -1
	for k := range strokes {
		if int(k.Idx) > maxIdx {
			maxIdx = int(k.Idx)
		}
	}
	if maxIdx >= len(m.slots) {
		grow := maxIdx + 1 - len(m.slots)
		m.slots = append(m.slots, make([]slot, grow)...)
		m.gens = append(m.gens, make([]uint32, grow)...)
	}
	for i := range m.slots {
		m.slots[i] = slot{}
	}
	for k, s := range strokes {
		m.slots[k.Idx] = slot{key: k, stroke: s.Clone(), occupied: true}
		if m.gens[k.Idx] < k.Gen {
			m.gens[k.Idx] = k.Gen
		}
	}
	m.free = m.free[:0]
	for i := range m.slots {
		if !m.slots[i].occupied {
			m.free = append(m.free, uint32(i))
		}
	}
}
