package store

import (
	"github.com/tidwall/rtree"

	"github.com/gogpu/ink/geom"
)

// spatialIndex maps stroke keys to their current bounds in an R-tree.
// It must always reflect the bounds of the primary stroke map: every
// geometry change is followed by an update before the next spatial query.
type spatialIndex struct {
	tree   rtree.RTreeG[StrokeKey]
	bounds map[StrokeKey]geom.Rect
}

func (ix *spatialIndex) init() {
	ix.tree = rtree.RTreeG[StrokeKey]{}
	ix.bounds = make(map[StrokeKey]geom.Rect)
}

func rectToMinMax(r geom.Rect) (min, max [2]float64) {
	return [2]float64{r.Min.X, r.Min.Y}, [2]float64{r.Max.X, r.Max.Y}
}

func (ix *spatialIndex) insert(key StrokeKey, bounds geom.Rect) {
	min, max := rectToMinMax(bounds)
	ix.tree.Insert(min, max, key)
	ix.bounds[key] = bounds
}

func (ix *spatialIndex) remove(key StrokeKey) {
	old, ok := ix.bounds[key]
	if !ok {
		return
	}
	min, max := rectToMinMax(old)
	ix.tree.Delete(min, max, key)
	delete(ix.bounds, key)
}

// update refreshes the indexed bounds of a key after a geometry change.
func (ix *spatialIndex) update(key StrokeKey, bounds geom.Rect) {
	ix.remove(key)
	ix.insert(key, bounds)
}

// intersecting returns all keys whose indexed bounds intersect the query
// rectangle, in arbitrary order.
func (ix *spatialIndex) intersecting(query geom.Rect) []StrokeKey {
	min, max := rectToMinMax(query)
	var keys []StrokeKey
	ix.tree.Search(min, max, func(_, _ [2]float64, key StrokeKey) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// rebuild reindexes the whole store after a wholesale state replacement
// (snapshot import, undo/redo). The index is not part of history.
func (ix *spatialIndex) rebuild(m *slotMap) {
	ix.init()
	for _, sl := range m.slots {
		if sl.occupied {
			ix.insert(sl.key, sl.stroke.Bounds())
		}
	}
}
