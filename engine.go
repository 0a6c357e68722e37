package ink

import (
	"fmt"
	"io"
	"time"

	"github.com/gogpu/ink/document"
	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/pens"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/store"
	"github.com/gogpu/ink/stroke"
)

// Engine is the facade over the drawing core: the stroke store, the
// document sheet, the camera and the pen behaviors, plus asynchronous
// stroke rendering through an optional external renderer.
//
// The engine is single-writer: all mutating calls must come from one
// goroutine (typically the UI thread). Render jobs run on the pool and
// report back through a channel that the UI thread drains with
// ApplyRenderResults.
type Engine struct {
	Store  *store.StrokeStore
	Doc    *document.Document
	Camera *document.Camera
	Pens   *pens.PenHolder

	renderer render.Renderer
	pool     *render.Pool
	results  chan renderResult
}

// renderResult is one completed render job.
type renderResult struct {
	key   store.StrokeKey
	token uint64
	image *render.Image
	err   error
}

// resultsBuffer bounds in-flight render completions.
const resultsBuffer = 256

// NewEngine creates an engine with an empty document.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		Store:    store.NewStrokeStoreWithCapacity(cfg.historyCapacity),
		Doc:      document.NewDocument(cfg.format),
		Camera:   document.NewCamera(cfg.surfaceW, cfg.surfaceH),
		Pens:     pens.NewPenHolder(),
		renderer: cfg.renderer,
	}
	e.Store.SetLogger(Logger())
	if e.renderer != nil {
		e.pool = render.NewPool(cfg.renderWorkers)
		e.results = make(chan renderResult, resultsBuffer)
	}
	return e
}

// Close stops the render pool, waiting for in-flight jobs.
func (e *Engine) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

func (e *Engine) view() pens.EngineView {
	return pens.EngineView{Store: e.Store, Doc: e.Doc, Camera: e.Camera}
}

// HandlePenEvent feeds one surface-space pen event to the active pen.
// Positions are mapped through the camera into document coordinates
// before dispatch.
func (e *Engine) HandlePenEvent(event penpath.PenEvent, now time.Time) store.WidgetFlags {
	return e.Pens.HandleEvent(e.view(), e.toDocEvent(event), now)
}

// toDocEvent maps an event's position from surface to document space.
func (e *Engine) toDocEvent(event penpath.PenEvent) penpath.PenEvent {
	mapEl := func(el penpath.Element) penpath.Element {
		el.Pos = e.Camera.SurfaceToDoc(el.Pos)
		return el
	}
	switch ev := event.(type) {
	case penpath.Down:
		ev.El = mapEl(ev.El)
		return ev
	case penpath.Motion:
		ev.El = mapEl(ev.El)
		return ev
	case penpath.Up:
		ev.El = mapEl(ev.El)
		return ev
	default:
		return event
	}
}

// ChangePenStyle switches the active pen style, cancelling any in-flight
// gesture.
func (e *Engine) ChangePenStyle(style pens.PenStyle, now time.Time) store.WidgetFlags {
	return e.Pens.ChangeStyle(e.view(), style, now)
}

// Undo steps the store back one history entry and re-grows the document
// to the restored content.
func (e *Engine) Undo(now time.Time) store.WidgetFlags {
	flags := e.Store.Undo(now)
	e.resizeToContent(&flags)
	return flags
}

// Redo steps the store forward one history entry.
func (e *Engine) Redo(now time.Time) store.WidgetFlags {
	flags := e.Store.Redo(now)
	e.resizeToContent(&flags)
	return flags
}

// SetZoom changes the camera zoom, keeping the top-left document
// coordinate fixed. Cached stroke images are resampled to the new zoom
// so the scene stays presentable; the strokes are marked dirty and the
// next render cycle replaces the approximations with crisp images.
func (e *Engine) SetZoom(zoom float64) store.WidgetFlags {
	old := e.Camera.Zoom
	e.Camera.SetZoom(zoom)
	return e.rescaleAfterZoom(old)
}

// ZoomAt zooms while keeping the document point under the given surface
// position stationary on screen.
func (e *Engine) ZoomAt(zoom float64, surfacePos geom.Point) store.WidgetFlags {
	old := e.Camera.Zoom
	e.Camera.ZoomAt(zoom, surfacePos)
	return e.rescaleAfterZoom(old)
}

func (e *Engine) rescaleAfterZoom(oldZoom float64) store.WidgetFlags {
	var flags store.WidgetFlags
	if e.Camera.Zoom == oldZoom {
		return flags
	}
	e.Store.RescaleRenderedImages(e.Camera.Zoom)
	flags.RedrawScene = true
	return flags
}

// DocExpandAutoresize grows the document to the current content bounds.
func (e *Engine) DocExpandAutoresize() store.WidgetFlags {
	var flags store.WidgetFlags
	e.resizeToContent(&flags)
	return flags
}

func (e *Engine) resizeToContent(flags *store.WidgetFlags) {
	bounds, ok := e.Store.StrokesBounds(e.Store.KeysSortedChrono())
	if !ok {
		return
	}
	if e.Doc.ExpandAutoresize(bounds) {
		flags.ResizeDoc = true
	}
}

// InsertTextStroke places a text stroke at a document position and
// records it as one undo step.
func (e *Engine) InsertTextStroke(text string, pos geom.Point, size float64, now time.Time) (store.StrokeKey, store.WidgetFlags) {
	key := e.Store.InsertStroke(stroke.NewTextStroke(text, pos, size))
	flags := e.Store.Record(now)
	flags.RedrawScene = true
	e.resizeToContent(&flags)
	return key, flags
}

// DispatchRenderStrokes submits render jobs for the given strokes and
// returns how many were accepted. Without a renderer this is a no-op.
//
// Each job renders a clone of the stroke at the current camera viewport
// and zoom, tagged with the stroke's staleness token; results arriving
// after the geometry changed again are discarded on apply.
func (e *Engine) DispatchRenderStrokes(keys []store.StrokeKey) int {
	if e.renderer == nil {
		return 0
	}
	viewport := e.Camera.Viewport()
	scale := e.Camera.Zoom

	dispatched := 0
	for _, key := range keys {
		st, ok := e.Store.Stroke(key)
		if !ok {
			continue
		}
		token, ok := e.Store.RenderToken(key)
		if !ok {
			continue
		}
		clone := st.Clone()
		accepted := e.pool.Submit(func() {
			img, err := e.renderer.GenImage(clone, viewport, scale)
			select {
			case e.results <- renderResult{key: key, token: token, image: img, err: err}:
			default:
				Logger().Warn("render result dropped, apply loop behind",
					"idx", key.Idx, "gen", key.Gen)
			}
		})
		if !accepted {
			Logger().Warn("render pool saturated, job skipped",
				"idx", key.Idx, "gen", key.Gen)
			continue
		}
		dispatched++
	}
	return dispatched
}

// DispatchDirtyStrokes renders every stale stroke in the viewport.
func (e *Engine) DispatchDirtyStrokes() int {
	return e.DispatchRenderStrokes(e.Store.DirtyKeys(e.Camera.Viewport()))
}

// ApplyRenderResults drains completed render jobs without blocking and
// stores the images that are still current. Returns flags requesting a
// redraw when anything was applied.
func (e *Engine) ApplyRenderResults() store.WidgetFlags {
	var flags store.WidgetFlags
	if e.results == nil {
		return flags
	}
	for {
		select {
		case res := <-e.results:
			if res.err != nil {
				Logger().Warn("stroke render failed",
					"idx", res.key.Idx, "gen", res.key.Gen, "err", res.err)
				continue
			}
			if e.Store.SetRenderedImage(res.key, res.token, res.image) {
				flags.RedrawScene = true
			}
		default:
			return flags
		}
	}
}

// SaveSnapshot serializes the current document content to w.
func (e *Engine) SaveSnapshot(w io.Writer, method store.SerializeMethod, compression store.Compression) error {
	snap, err := e.Store.TakeSnapshot()
	if err != nil {
		return fmt.Errorf("taking snapshot: %w", err)
	}
	return store.EncodeSnapshot(w, snap, method, compression)
}

// LoadSnapshot replaces the document content from a serialized snapshot.
// The document re-grows to the imported content.
func (e *Engine) LoadSnapshot(r io.Reader) (store.WidgetFlags, error) {
	snap, err := store.DecodeSnapshot(r)
	if err != nil {
		return store.WidgetFlags{}, err
	}
	flags, err := e.Store.ImportSnapshot(snap)
	if err != nil {
		return flags, err
	}
	e.resizeToContent(&flags)
	return flags, nil
}
