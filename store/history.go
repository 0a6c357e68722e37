package store

import (
	"maps"
	"time"

	"github.com/gogpu/ink/stroke"
)

// historyEntry is an immutable snapshot of the undo-relevant state: the
// four component maps plus the chronology counter. Entries never alias
// mutable state with the live store (strokes are deep-cloned on capture
// and on restore), so recording a new state cannot retroactively alter an
// older entry.
type historyEntry struct {
	strokes       map[StrokeKey]stroke.Stroke
	chrono        map[StrokeKey]uint64
	trash         map[StrokeKey]bool
	selection     map[StrokeKey]bool
	chronoCounter uint64
	revs          revisions
	taken         time.Time
}

// unrecorded reports whether the live state has diverged from the entry
// at the live index, by revision identity rather than deep equality.
func (s *StrokeStore) unrecorded() bool {
	return s.revs != s.history[s.liveIndex].revs
}

// Record captures the current state as a new history entry if it changed
// since the last recorded state. Unchanged state (by revision identity)
// makes Record a no-op, so callers record once around a batch of related
// mutations — one user-visible gesture, one undo step.
//
// Recording truncates any redo future and evicts the oldest entries
// beyond the capacity bound, adjusting the live index.
func (s *StrokeStore) Record(now time.Time) WidgetFlags {
	var flags WidgetFlags
	if !s.unrecorded() {
		return flags
	}

	entry := s.snapshotEntry()
	entry.taken = now
	s.history = append(s.history[:s.liveIndex+1], entry)
	s.liveIndex++
	s.evictOverflow()

	flags.StoreModified = true
	flags.HideUndo = TriFalse
	flags.HideRedo = TriTrue
	return flags
}

// evictOverflow drops the oldest entries beyond capacity.
func (s *StrokeStore) evictOverflow() {
	over := len(s.history) - s.capacity
	if over <= 0 {
		return
	}
	s.history = append(s.history[:0:0], s.history[over:]...)
	s.liveIndex -= over
	if s.liveIndex < 0 {
		s.liveIndex = 0
	}
}

// CanUndo reports whether an undo step is available.
func (s *StrokeStore) CanUndo() bool {
	return s.liveIndex > 0 || s.unrecorded()
}

// CanRedo reports whether a redo step is available.
func (s *StrokeStore) CanRedo() bool {
	return !s.unrecorded() && s.liveIndex+1 < len(s.history)
}

// Undo steps back one history entry. Unrecorded changes are captured
// first so they become the redo target instead of being lost. At the
// bottom of the stack Undo is a no-op, not an error.
func (s *StrokeStore) Undo(now time.Time) WidgetFlags {
	var flags WidgetFlags
	if s.unrecorded() {
		flags.Merge(s.Record(now))
	}
	if s.liveIndex == 0 {
		flags.HideUndo = TriTrue
		return flags
	}
	s.liveIndex--
	s.restore(s.history[s.liveIndex])

	flags.RedrawScene = true
	flags.ResizeDoc = true
	flags.StoreModified = true
	flags.HideRedo = TriFalse
	if s.liveIndex == 0 {
		flags.HideUndo = TriTrue
	}
	return flags
}

// Redo steps forward one history entry if a future exists. Unrecorded
// changes truncate the future, making Redo a no-op.
func (s *StrokeStore) Redo(now time.Time) WidgetFlags {
	var flags WidgetFlags
	if s.unrecorded() {
		flags.Merge(s.Record(now))
		flags.HideRedo = TriTrue
		return flags
	}
	if s.liveIndex+1 >= len(s.history) {
		flags.HideRedo = TriTrue
		return flags
	}
	s.liveIndex++
	s.restore(s.history[s.liveIndex])

	flags.RedrawScene = true
	flags.ResizeDoc = true
	flags.StoreModified = true
	flags.HideUndo = TriFalse
	if s.liveIndex+1 >= len(s.history) {
		flags.HideRedo = TriTrue
	}
	return flags
}

// restore replaces the live component maps wholesale from a history
// entry, rebuilds the spatial index (not stored in history) and
// reconciles the render cache.
func (s *StrokeStore) restore(entry *historyEntry) {
	s.strokes.restore(entry.strokes)
	s.chrono = maps.Clone(entry.chrono)
	s.trash = maps.Clone(entry.trash)
	s.selection = maps.Clone(entry.selection)
	s.chronoCounter = entry.chronoCounter
	s.revs = entry.revs

	s.index.rebuild(&s.strokes)
	s.reconcileRenderCache()
}

// HistoryLen returns the current depth of the history stack.
func (s *StrokeStore) HistoryLen() int {
	return len(s.history)
}
