package store

import (
	"runtime"
	"sort"
	"sync"

	"github.com/gogpu/ink/geom"
)

// parallelThreshold is the store size above which query filtering fans
// out across goroutines. Below it the goroutine overhead dominates.
const parallelThreshold = 2048

// Queries are read-only, side-effect-free views over the component maps
// and the spatial index. They operate on the store as a consistent
// snapshot: callers must not mutate the store concurrently.

// KeysSortedChrono returns all non-trashed keys sorted by ascending
// chronological order (bottom of the z-order first).
func (s *StrokeStore) KeysSortedChrono() []StrokeKey {
	keys := s.filterKeys(s.strokes.keys(), func(k StrokeKey) bool {
		return !s.trash[k]
	})
	s.sortChrono(keys)
	return keys
}

// KeysSortedChronoIntersectingBounds returns the non-trashed keys whose
// bounds intersect the query rectangle, in chronological order.
func (s *StrokeStore) KeysSortedChronoIntersectingBounds(bounds geom.Rect) []StrokeKey {
	keys := s.filterKeys(s.index.intersecting(bounds), func(k StrokeKey) bool {
		return !s.trash[k]
	})
	s.sortChrono(keys)
	return keys
}

// SelectionKeysAsRendered returns the selected, non-trashed keys in
// chronological order.
func (s *StrokeStore) SelectionKeysAsRendered() []StrokeKey {
	keys := s.filterKeys(s.strokes.keys(), func(k StrokeKey) bool {
		return s.selection[k] && !s.trash[k]
	})
	s.sortChrono(keys)
	return keys
}

// TrashedKeysUnordered returns the trashed keys in arbitrary order.
func (s *StrokeStore) TrashedKeysUnordered() []StrokeKey {
	return s.filterKeys(s.strokes.keys(), func(k StrokeKey) bool {
		return s.trash[k]
	})
}

// StrokesBounds returns the union of the bounds of the given keys.
func (s *StrokeStore) StrokesBounds(keys []StrokeKey) (geom.Rect, bool) {
	var bbox geom.Rect
	found := false
	for _, key := range keys {
		b, ok := s.Bounds(key)
		if !ok {
			continue
		}
		if !found {
			bbox = b
			found = true
		} else {
			bbox = bbox.Union(b)
		}
	}
	return bbox, found
}

// sortChrono orders keys by their chronology value. InsertStrokeAt can
// assign the same value to several strokes (split partitions share the
// original's layer), so ties break on the key to keep the order total.
func (s *StrokeStore) sortChrono(keys []StrokeKey) {
	sort.Slice(keys, func(i, j int) bool {
		ti, tj := s.chrono[keys[i]], s.chrono[keys[j]]
		if ti != tj {
			return ti < tj
		}
		if keys[i].Idx != keys[j].Idx {
			return keys[i].Idx < keys[j].Idx
		}
		return keys[i].Gen < keys[j].Gen
	})
}

// filterKeys applies a predicate, fanning out across goroutines for large
// stores. Pure function over shared immutable state at call time.
func (s *StrokeStore) filterKeys(keys []StrokeKey, keep func(StrokeKey) bool) []StrokeKey {
	if len(keys) < parallelThreshold {
		out := make([]StrokeKey, 0, len(keys))
		for _, k := range keys {
			if keep(k) {
				out = append(out, k)
			}
		}
		return out
	}

	workers := runtime.GOMAXPROCS(0)
	chunk := (len(keys) + workers - 1) / workers
	parts := make([][]StrokeKey, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(keys) {
			break
		}
		hi := min(lo+chunk, len(keys))
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			part := make([]StrokeKey, 0, hi-lo)
			for _, k := range keys[lo:hi] {
				if keep(k) {
					part = append(part, k)
				}
			}
			parts[w] = part
		}(w, lo, hi)
	}
	wg.Wait()

	out := make([]StrokeKey, 0, len(keys))
	for _, part := range parts {
		out = append(out, part...)
	}
	return out
}
