package store

import (
	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/render"
)

// renderComponent caches the rendered image of one stroke. Derived state:
// excluded from history snapshots and rebuilt after undo/redo.
//
// The token guards against stale worker results: it is bumped on every
// geometry change, and a completed render job is discarded unless it
// carries the token that was current when the job was dispatched.
type renderComponent struct {
	image *render.Image
	dirty bool
	token uint64
}

func newRenderComponent() *renderComponent {
	return &renderComponent{dirty: true}
}

// markGeometryChanged invalidates the cached image of a stroke after its
// geometry changed, bumping the staleness token.
func (s *StrokeStore) markGeometryChanged(key StrokeKey) {
	rc, ok := s.renderCache[key]
	if !ok {
		return
	}
	rc.dirty = true
	rc.token++
}

// RenderDirty reports whether a stroke needs re-rendering.
func (s *StrokeStore) RenderDirty(key StrokeKey) bool {
	rc, ok := s.renderCache[key]
	return ok && rc.dirty
}

// RenderToken returns the current staleness token for a stroke. A render
// job dispatched now must hand the token back with its result.
func (s *StrokeStore) RenderToken(key StrokeKey) (uint64, bool) {
	rc, ok := s.renderCache[key]
	if !ok {
		return 0, false
	}
	return rc.token, true
}

// SetRenderedImage applies a completed render result. The result is
// discarded when the stroke no longer exists or its geometry changed
// since the job was dispatched; both are normal outcomes, logged at
// debug level.
func (s *StrokeStore) SetRenderedImage(key StrokeKey, token uint64, img *render.Image) bool {
	rc, ok := s.renderCache[key]
	if !ok {
		s.logger.Debug("render result for removed stroke", "idx", key.Idx, "gen", key.Gen)
		return false
	}
	if rc.token != token {
		s.logger.Debug("stale render result discarded", "idx", key.Idx, "gen", key.Gen)
		return false
	}
	rc.image = img
	rc.dirty = false
	return true
}

// RenderedImage returns the cached image for a stroke, if any.
func (s *StrokeStore) RenderedImage(key StrokeKey) (*render.Image, bool) {
	rc, ok := s.renderCache[key]
	if !ok || rc.image == nil {
		return nil, false
	}
	return rc.image, true
}

// DirtyKeys returns all non-trashed strokes whose render cache is stale,
// optionally restricted to a viewport (zero rect means everywhere).
func (s *StrokeStore) DirtyKeys(viewport geom.Rect) []StrokeKey {
	limited := viewport != geom.Rect{}
	var keys []StrokeKey
	for _, key := range s.strokes.keys() {
		rc := s.renderCache[key]
		if rc == nil || !rc.dirty || s.trash[key] {
			continue
		}
		if limited {
			if b, ok := s.Bounds(key); ok && !b.Intersects(viewport) {
				continue
			}
		}
		keys = append(keys, key)
	}
	return keys
}

// RescaleRenderedImages resamples every cached image for a new camera
// zoom and marks all strokes dirty. The rescaled approximations keep
// serving until crisp re-renders arrive; bumping the tokens discards any
// in-flight results rendered at the old zoom.
func (s *StrokeStore) RescaleRenderedImages(scale float64) {
	for _, rc := range s.renderCache {
		if rc.image != nil {
			rc.image = rc.image.Rescaled(scale)
		}
		rc.dirty = true
		rc.token++
	}
}

// reconcileRenderCache is called after a wholesale state replacement.
// Cache entries for surviving keys are preserved (avoiding redundant
// re-rendering of unchanged pixels) but marked dirty so the renderer
// refreshes them; entries for vanished keys are dropped.
func (s *StrokeStore) reconcileRenderCache() {
	live := make(map[StrokeKey]bool, s.strokes.len())
	for _, key := range s.strokes.keys() {
		live[key] = true
	}
	for key, rc := range s.renderCache {
		if !live[key] {
			delete(s.renderCache, key)
			continue
		}
		rc.dirty = true
		rc.token++
	}
	for key := range live {
		if _, ok := s.renderCache[key]; !ok {
			s.renderCache[key] = newRenderComponent()
		}
	}
}
