package store

import (
	"io"
	"log/slog"
	"maps"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/stroke"
)

// DefaultHistoryCapacity bounds the undo stack. Oldest entries are
// evicted beyond this.
const DefaultHistoryCapacity = 100

// revisions are cheap identity stamps for the undo-relevant component
// maps. Every mutation bumps the owning map's revision; Record compares
// revisions instead of deep-comparing maps.
type revisions struct {
	Strokes   uint64
	Chrono    uint64
	Trash     uint64
	Selection uint64
}

// StrokeStore owns all strokes and their components.
type StrokeStore struct {
	strokes slotMap

	chrono        map[StrokeKey]uint64
	trash         map[StrokeKey]bool
	selection     map[StrokeKey]bool
	chronoCounter uint64

	revs revisions

	index spatialIndex

	// Render cache; derived state, excluded from history.
	renderCache map[StrokeKey]*renderComponent

	history   []*historyEntry
	liveIndex int
	capacity  int

	logger *slog.Logger
}

// NewStrokeStore creates an empty store with the default history capacity.
func NewStrokeStore() *StrokeStore {
	return NewStrokeStoreWithCapacity(DefaultHistoryCapacity)
}

// NewStrokeStoreWithCapacity creates an empty store with a custom history
// capacity (minimum 2: one live entry plus one undo step).
func NewStrokeStoreWithCapacity(capacity int) *StrokeStore {
	if capacity < 2 {
		capacity = 2
	}
	s := &StrokeStore{
		chrono:      make(map[StrokeKey]uint64),
		trash:       make(map[StrokeKey]bool),
		selection:   make(map[StrokeKey]bool),
		renderCache: make(map[StrokeKey]*renderComponent),
		capacity:    capacity,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.index.init()
	// The initial empty state is the bottom of the history stack.
	s.history = []*historyEntry{s.snapshotEntry()}
	s.liveIndex = 0
	return s
}

// SetLogger configures the store's logger. Nil restores silence.
func (s *StrokeStore) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s.logger = l
}

// Len returns the number of strokes in the store, trashed included.
func (s *StrokeStore) Len() int {
	return s.strokes.len()
}

// InsertStroke inserts a stroke, assigns it the next chronological order
// value, indexes its bounds and creates default components (not trashed,
// not selected). Always succeeds.
func (s *StrokeStore) InsertStroke(st stroke.Stroke) StrokeKey {
	return s.InsertStrokeAt(st, s.nextChrono())
}

// InsertStrokeAt inserts a stroke at an explicit chronological layer
// instead of the top of the z-order. Splitting a stroke uses this so the
// trailing partitions stay at the original's layer rather than jumping
// above strokes drawn later. The counter is never rewound, so layers
// assigned afterwards still stack on top.
func (s *StrokeStore) InsertStrokeAt(st stroke.Stroke, t uint64) StrokeKey {
	key := s.strokes.insert(st)
	s.chrono[key] = t
	if t >= s.chronoCounter {
		s.chronoCounter = t + 1
	}
	s.trash[key] = false
	s.selection[key] = false
	s.index.insert(key, st.Bounds())
	s.renderCache[key] = newRenderComponent()

	s.revs.Strokes++
	s.revs.Chrono++
	s.revs.Trash++
	s.revs.Selection++
	return key
}

// RemoveStroke removes a stroke and all its components. Returns the
// removed stroke, or false if the key does not resolve (already removed
// or never existed) — a normal query result, not an error.
func (s *StrokeStore) RemoveStroke(key StrokeKey) (stroke.Stroke, bool) {
	st, ok := s.strokes.remove(key)
	if !ok {
		s.logger.Debug("remove on invalid key", "idx", key.Idx, "gen", key.Gen)
		return nil, false
	}
	delete(s.chrono, key)
	delete(s.trash, key)
	delete(s.selection, key)
	delete(s.renderCache, key)
	s.index.remove(key)

	s.revs.Strokes++
	s.revs.Chrono++
	s.revs.Trash++
	s.revs.Selection++
	return st, true
}

// Stroke returns the stroke for a key, or false for a stale key.
func (s *StrokeStore) Stroke(key StrokeKey) (stroke.Stroke, bool) {
	return s.strokes.get(key)
}

// Bounds returns the bounds of the stroke under key.
func (s *StrokeStore) Bounds(key StrokeKey) (geom.Rect, bool) {
	st, ok := s.strokes.get(key)
	if !ok {
		return geom.Rect{}, false
	}
	return st.Bounds(), true
}

// nextChrono returns a fresh, unique chronology value.
func (s *StrokeStore) nextChrono() uint64 {
	t := s.chronoCounter
	s.chronoCounter++
	return t
}

// touch bumps a stroke's chronology value to the top of the z-order.
func (s *StrokeStore) touch(key StrokeKey) {
	if _, ok := s.strokes.get(key); !ok {
		return
	}
	s.chrono[key] = s.nextChrono()
	s.revs.Chrono++
}

// ChronoT returns the chronology value of a stroke.
func (s *StrokeStore) ChronoT(key StrokeKey) (uint64, bool) {
	t, ok := s.chrono[key]
	return t, ok
}

// ExtendStroke appends builder segments to an in-flight brush stroke and
// refreshes its spatial index entry. A no-op for non-brush strokes.
func (s *StrokeStore) ExtendStroke(key StrokeKey, segments ...penpath.Segment) WidgetFlags {
	var flags WidgetFlags
	st, ok := s.strokes.get(key)
	if !ok || len(segments) == 0 {
		return flags
	}
	brush, ok := st.(*stroke.BrushStroke)
	if !ok {
		return flags
	}
	brush.ExtendWithSegments(segments...)
	s.revs.Strokes++
	s.index.update(key, brush.Bounds())
	s.markGeometryChanged(key)

	flags.RedrawScene = true
	return flags
}

// ReplaceStroke swaps the stroke under key for a new value, keeping all
// components. Used by the shaper pen while dragging out a shape.
func (s *StrokeStore) ReplaceStroke(key StrokeKey, st stroke.Stroke) WidgetFlags {
	var flags WidgetFlags
	if !s.strokes.set(key, st) {
		s.logger.Debug("replace on invalid key", "idx", key.Idx, "gen", key.Gen)
		return flags
	}
	s.revs.Strokes++
	s.index.update(key, st.Bounds())
	s.markGeometryChanged(key)

	flags.RedrawScene = true
	return flags
}

// SetTrashed flips the trash flag. Trashing or restoring a stroke is a
// touch: it moves the stroke to the top of the chronological order.
func (s *StrokeStore) SetTrashed(key StrokeKey, trashed bool) WidgetFlags {
	var flags WidgetFlags
	if _, ok := s.strokes.get(key); !ok {
		s.logger.Debug("trash on invalid key", "idx", key.Idx, "gen", key.Gen)
		return flags
	}
	if s.trash[key] == trashed {
		return flags
	}
	s.trash[key] = trashed
	s.revs.Trash++
	s.touch(key)

	flags.RedrawScene = true
	flags.StoreModified = true
	return flags
}

// PurgeTrashedStrokes permanently destroys all trashed strokes. The only
// path to real stroke destruction besides RemoveStroke; called when the
// trash is no longer needed for undo (snapshot save, explicit cleanup).
func (s *StrokeStore) PurgeTrashedStrokes() WidgetFlags {
	var flags WidgetFlags
	for _, key := range s.TrashedKeysUnordered() {
		if _, ok := s.RemoveStroke(key); ok {
			flags.StoreModified = true
		}
	}
	return flags
}

// Trashed reports the trash flag of a stroke.
func (s *StrokeStore) Trashed(key StrokeKey) bool {
	return s.trash[key]
}

// SetSelected flips the selection flag. Selecting is a touch.
func (s *StrokeStore) SetSelected(key StrokeKey, selected bool) WidgetFlags {
	var flags WidgetFlags
	if _, ok := s.strokes.get(key); !ok {
		s.logger.Debug("select on invalid key", "idx", key.Idx, "gen", key.Gen)
		return flags
	}
	if s.selection[key] == selected {
		return flags
	}
	s.selection[key] = selected
	s.revs.Selection++
	s.touch(key)

	flags.RedrawScene = true
	flags.RefreshUI = true
	return flags
}

// Selected reports the selection flag of a stroke.
func (s *StrokeStore) Selected(key StrokeKey) bool {
	return s.selection[key]
}

// DeselectAll clears the selection flag on every stroke. Unlike a
// single SetSelected toggle this is not a touch: bumping every stroke
// in map iteration order would scramble their relative z-order.
func (s *StrokeStore) DeselectAll() WidgetFlags {
	var flags WidgetFlags
	for key, sel := range s.selection {
		if sel {
			s.selection[key] = false
			flags.RedrawScene = true
			flags.RefreshUI = true
		}
	}
	if flags.RedrawScene {
		s.revs.Selection++
	}
	return flags
}

// TranslateStrokes moves the given strokes by offset, updating spatial
// index entries and invalidating render caches.
func (s *StrokeStore) TranslateStrokes(keys []StrokeKey, offset geom.Point) WidgetFlags {
	return s.TransformStrokes(keys, geom.Translation(offset))
}

// TransformStrokes maps the given strokes through an affine transform.
func (s *StrokeStore) TransformStrokes(keys []StrokeKey, tf geom.Transform) WidgetFlags {
	var flags WidgetFlags
	if tf.IsIdentity() {
		return flags
	}
	for _, key := range keys {
		st, ok := s.strokes.get(key)
		if !ok {
			continue
		}
		moved := st.Transformed(tf)
		s.strokes.set(key, moved)
		s.index.update(key, moved.Bounds())
		s.markGeometryChanged(key)
		flags.RedrawScene = true
		flags.StoreModified = true
	}
	if flags.StoreModified {
		s.revs.Strokes++
	}
	return flags
}

// DuplicateStrokes clones the given strokes offset by a small delta and
// returns the new keys. The duplicates are selected, the originals
// deselected, matching paste-on-top behavior.
func (s *StrokeStore) DuplicateStrokes(keys []StrokeKey, offset geom.Point) []StrokeKey {
	tf := geom.Translation(offset)
	newKeys := make([]StrokeKey, 0, len(keys))
	for _, key := range keys {
		st, ok := s.strokes.get(key)
		if !ok {
			continue
		}
		s.SetSelected(key, false)
		dup := s.InsertStroke(st.Transformed(tf))
		s.SetSelected(dup, true)
		newKeys = append(newKeys, dup)
	}
	return newKeys
}

// snapshotEntry captures the undo-relevant state: the four component maps
// plus the chronology counter. Render cache and spatial index are derived
// and deliberately excluded.
func (s *StrokeStore) snapshotEntry() *historyEntry {
	return &historyEntry{
		strokes:       s.strokes.snapshot(),
		chrono:        maps.Clone(s.chrono),
		trash:         maps.Clone(s.trash),
		selection:     maps.Clone(s.selection),
		chronoCounter: s.chronoCounter,
		revs:          s.revs,
	}
}
