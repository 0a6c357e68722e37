package store

import (
	"time"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/stroke"
)

// hitTestStroke reports whether any of the stroke's fine-grained hitboxes
// intersects the eraser bounds. Cheaper than exact geometry intersection.
func hitTestStroke(st stroke.Stroke, eraserBounds geom.Rect) bool {
	if !st.Bounds().Intersects(eraserBounds) {
		return false
	}
	for _, hb := range st.Hitboxes() {
		if hb.Intersects(eraserBounds) {
			return true
		}
	}
	return false
}

// eraseCandidates returns the non-trashed keys whose indexed bounds touch
// both the viewport (performance pre-filter) and the eraser bounds.
func (s *StrokeStore) eraseCandidates(eraserBounds, viewport geom.Rect) []StrokeKey {
	var keys []StrokeKey
	for _, key := range s.index.intersecting(eraserBounds) {
		if s.trash[key] {
			continue
		}
		if b, ok := s.Bounds(key); ok && b.Intersects(viewport) {
			keys = append(keys, key)
		}
	}
	return keys
}

// eraserExempt reports whether a stroke kind is exempt from eraser
// collision. Erasing is stroke-only: text and images must be removed
// through selection, never by sweeping an eraser across them.
func eraserExempt(st stroke.Stroke) bool {
	switch st.(type) {
	case *stroke.TextStroke, *stroke.VectorImage, *stroke.BitmapImage:
		return true
	}
	return false
}

// TrashCollidingStrokes trashes every whole stroke whose hitboxes collide
// with the eraser bounds. When record is true, history is recorded before
// the first mutation; the eraser pen passes record only once per drag so
// one continuous erase gesture stays one undo step.
func (s *StrokeStore) TrashCollidingStrokes(eraserBounds, viewport geom.Rect, now time.Time, record bool) WidgetFlags {
	var flags WidgetFlags
	recorded := !record
	for _, key := range s.eraseCandidates(eraserBounds, viewport) {
		st, ok := s.strokes.get(key)
		if !ok || eraserExempt(st) {
			continue
		}
		if !hitTestStroke(st, eraserBounds) {
			continue
		}
		if !recorded {
			flags.Merge(s.Record(now))
			recorded = true
		}
		flags.Merge(s.SetTrashed(key, true))
	}
	return flags
}

// SplitCollidingStrokes partitions brush strokes at the eraser collision
// boundary: the segments inside the eraser region are destroyed, the
// leading run of surviving segments keeps the original key (or the whole
// stroke is trashed if nothing survives before the first hit) and every
// trailing run becomes a brand-new stroke with the same style, inserted
// at the original's chronological layer. Non-path
// strokes with a colliding hitbox are trashed whole; text and images are
// exempt.
//
// Returns every created or modified key so the caller can trigger
// re-rendering, plus the widget flags.
func (s *StrokeStore) SplitCollidingStrokes(eraserBounds, viewport geom.Rect, now time.Time, record bool) ([]StrokeKey, WidgetFlags) {
	var flags WidgetFlags
	var affected []StrokeKey
	recorded := !record

	recordOnce := func() {
		if !recorded {
			flags.Merge(s.Record(now))
			recorded = true
		}
	}

	for _, key := range s.eraseCandidates(eraserBounds, viewport) {
		st, ok := s.strokes.get(key)
		if !ok || eraserExempt(st) {
			continue
		}

		brush, isBrush := st.(*stroke.BrushStroke)
		if !isBrush {
			if hitTestStroke(st, eraserBounds) {
				recordOnce()
				flags.Merge(s.SetTrashed(key, true))
				affected = append(affected, key)
			}
			continue
		}

		runs, hitAny := survivingRuns(brush, eraserBounds)
		if !hitAny {
			continue
		}
		recordOnce()
		affected = append(affected, key)
		origT := s.chrono[key]

		if len(runs) == 0 || runs[0].start != 0 {
			// Nothing survives before the first hit: the original is
			// trashed entirely and every run becomes a new stroke.
			flags.Merge(s.SetTrashed(key, true))
		} else {
			lead := runs[0]
			truncated := &stroke.BrushStroke{
				Path:  brush.Path[lead.start:lead.end].Clone(),
				Style: brush.Style,
			}
			flags.Merge(s.ReplaceStroke(key, truncated))
			s.touch(key)
			runs = runs[1:]
		}

		// Trailing partitions keep the layer the original occupied
		// before the split, so fragments of a bottom stroke never rise
		// above strokes drawn later. Only the original itself is
		// touched.
		for _, run := range runs {
			part := &stroke.BrushStroke{
				Path:  brush.Path[run.start:run.end].Clone(),
				Style: brush.Style,
			}
			newKey := s.InsertStrokeAt(part, origT)
			affected = append(affected, newKey)
			flags.RedrawScene = true
			flags.StoreModified = true
		}
	}
	return affected, flags
}

// segmentRun is a half-open range [start, end) of surviving segments.
type segmentRun struct {
	start, end int
}

// survivingRuns computes the maximal runs of path segments that do not
// collide with the eraser bounds. hitAny is false when the eraser missed
// every segment.
func survivingRuns(brush *stroke.BrushStroke, eraserBounds geom.Rect) (runs []segmentRun, hitAny bool) {
	n := brush.SegmentCount()
	runStart := -1
	for i := 0; i < n; i++ {
		hit := false
		for _, hb := range brush.SegmentHitboxes(i) {
			if hb.Intersects(eraserBounds) {
				hit = true
				break
			}
		}
		if hit {
			hitAny = true
			if runStart >= 0 {
				runs = append(runs, segmentRun{start: runStart, end: i})
				runStart = -1
			}
			continue
		}
		if runStart < 0 {
			runStart = i
		}
	}
	if runStart >= 0 {
		runs = append(runs, segmentRun{start: runStart, end: n})
	}
	return runs, hitAny
}
