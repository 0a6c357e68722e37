package ink

import (
	"bytes"
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/pens"
	"github.com/gogpu/ink/render"
	"github.com/gogpu/ink/store"
	"github.com/gogpu/ink/stroke"
)

// fakeRenderer counts GenImage calls and returns small solid images.
type fakeRenderer struct {
	calls atomic.Int64
	fail  bool
}

func (r *fakeRenderer) GenImage(s stroke.Stroke, viewport geom.Rect, scale float64) (*render.Image, error) {
	r.calls.Add(1)
	if r.fail {
		return nil, errors.New("backend down")
	}
	return &render.Image{
		Pixels: image.NewRGBA(image.Rect(0, 0, 8, 8)),
		Rect:   s.Bounds(),
		Scale:  scale,
	}, nil
}

func testNow() time.Time {
	return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
}

func down(x, y float64) penpath.PenEvent   { return penpath.Down{El: penpath.El(x, y, 0.5)} }
func motion(x, y float64) penpath.PenEvent { return penpath.Motion{El: penpath.El(x, y, 0.5)} }
func up(x, y float64) penpath.PenEvent     { return penpath.Up{El: penpath.El(x, y, 0.5)} }

// drawLine feeds a brush gesture through the engine.
func drawLine(e *Engine, now time.Time, x0, y0, x1, y1 float64) {
	e.HandlePenEvent(down(x0, y0), now)
	e.HandlePenEvent(motion((x0+x1)/2, (y0+y1)/2), now)
	e.HandlePenEvent(up(x1, y1), now)
}

func TestEngineDrawUndoRedo(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	now := testNow()

	drawLine(e, now, 100, 100, 200, 150)
	if e.Store.Len() != 1 {
		t.Fatalf("Len() = %d after gesture, want 1", e.Store.Len())
	}

	flags := e.Undo(now)
	if e.Store.Len() != 0 {
		t.Errorf("Len() = %d after undo, want 0", e.Store.Len())
	}
	if flags.HideUndo != store.TriTrue {
		t.Errorf("HideUndo = %v at bottom, want TriTrue", flags.HideUndo)
	}

	e.Redo(now)
	if e.Store.Len() != 1 {
		t.Errorf("Len() = %d after redo, want 1", e.Store.Len())
	}
}

func TestEngineMapsSurfaceToDoc(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	now := testNow()

	e.Camera.Offset = geom.Pt(1000, 1000)
	drawLine(e, now, 10, 10, 50, 10)

	key := e.Store.KeysSortedChrono()[0]
	b, _ := e.Store.Bounds(key)
	if b.Min.X < 1000 || b.Min.Y < 1000 {
		t.Errorf("stroke bounds = %v, want in document space past the offset", b)
	}
}

func TestEngineChangePenStyle(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	now := testNow()

	e.HandlePenEvent(down(10, 10), now)
	e.ChangePenStyle(pens.PenSelector, now)
	if e.Store.Len() != 0 {
		t.Errorf("Len() = %d, want in-flight stroke cancelled", e.Store.Len())
	}
	if e.Pens.Style() != pens.PenSelector {
		t.Errorf("Style() = %v, want PenSelector", e.Pens.Style())
	}
}

func TestEngineRenderRoundTrip(t *testing.T) {
	r := &fakeRenderer{}
	e := NewEngine(WithRenderer(r), WithRenderWorkers(2))
	defer e.Close()
	now := testNow()

	drawLine(e, now, 100, 100, 200, 100)
	key := e.Store.KeysSortedChrono()[0]
	if !e.Store.RenderDirty(key) {
		t.Fatal("fresh stroke not dirty")
	}

	if n := e.DispatchDirtyStrokes(); n != 1 {
		t.Fatalf("DispatchDirtyStrokes() = %d, want 1", n)
	}

	// The pool runs asynchronously; poll for the result.
	deadline := time.Now().Add(2 * time.Second)
	for e.Store.RenderDirty(key) {
		if time.Now().After(deadline) {
			t.Fatal("render result never applied")
		}
		e.ApplyRenderResults()
		time.Sleep(time.Millisecond)
	}

	img, ok := e.Store.RenderedImage(key)
	if !ok || img == nil {
		t.Fatal("RenderedImage() missing after apply")
	}
	if r.calls.Load() != 1 {
		t.Errorf("renderer calls = %d, want 1", r.calls.Load())
	}
}

func TestEngineRenderStaleDiscard(t *testing.T) {
	r := &fakeRenderer{}
	e := NewEngine(WithRenderer(r))
	now := testNow()

	drawLine(e, now, 100, 100, 200, 100)
	key := e.Store.KeysSortedChrono()[0]

	e.DispatchDirtyStrokes()
	e.Close() // waits for the job to land in the results channel

	// Geometry changes after the job completed but before apply.
	e.Store.ExtendStroke(key, penpath.LineTo{
		Start: penpath.El(200, 100, 1), End: penpath.El(300, 100, 1),
	})
	e.ApplyRenderResults()
	if !e.Store.RenderDirty(key) {
		t.Error("stale render result was applied")
	}
	if _, ok := e.Store.RenderedImage(key); ok {
		t.Error("stale image stored")
	}
}

func TestEngineZoomRescalesCachedImages(t *testing.T) {
	r := &fakeRenderer{}
	e := NewEngine(WithRenderer(r))
	now := testNow()

	drawLine(e, now, 100, 100, 200, 100)
	key := e.Store.KeysSortedChrono()[0]
	e.DispatchDirtyStrokes()
	e.Close()
	e.ApplyRenderResults()
	if e.Store.RenderDirty(key) {
		t.Fatal("render result not applied")
	}

	flags := e.SetZoom(2)
	if !flags.RedrawScene {
		t.Error("SetZoom() did not request a redraw")
	}
	img, ok := e.Store.RenderedImage(key)
	if !ok {
		t.Fatal("cached image dropped on zoom change")
	}
	if img.Scale != 2 {
		t.Errorf("cached image Scale = %v after zoom, want 2", img.Scale)
	}
	if got := img.Pixels.Bounds().Dx(); got != 16 {
		t.Errorf("rescaled width = %d, want 16", got)
	}
	if !e.Store.RenderDirty(key) {
		t.Error("zoomed stroke not queued for a crisp re-render")
	}
}

func TestEngineZoomUnchangedIsNoop(t *testing.T) {
	e := NewEngine()
	defer e.Close()

	if flags := e.SetZoom(e.Camera.Zoom); flags.RedrawScene {
		t.Error("SetZoom() with the current zoom requested a redraw")
	}
}

func TestEngineRenderErrorKeepsDirty(t *testing.T) {
	r := &fakeRenderer{fail: true}
	e := NewEngine(WithRenderer(r))
	now := testNow()

	drawLine(e, now, 100, 100, 200, 100)
	key := e.Store.KeysSortedChrono()[0]
	e.DispatchDirtyStrokes()
	e.Close()

	e.ApplyRenderResults()
	if !e.Store.RenderDirty(key) {
		t.Error("failed render cleared dirtiness")
	}
}

func TestEngineWithoutRendererSkipsDispatch(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	now := testNow()

	drawLine(e, now, 100, 100, 200, 100)
	if n := e.DispatchDirtyStrokes(); n != 0 {
		t.Errorf("DispatchDirtyStrokes() = %d without renderer, want 0", n)
	}
	if flags := e.ApplyRenderResults(); flags.RedrawScene {
		t.Error("ApplyRenderResults() requested redraw without renderer")
	}
}

func TestEngineSnapshotSaveLoad(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	now := testNow()

	drawLine(e, now, 100, 100, 200, 150)
	e.InsertTextStroke("hello", geom.Pt(50, 300), 16, now)

	var buf bytes.Buffer
	if err := e.SaveSnapshot(&buf, store.MethodCBOR, store.CompressionZstd); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}

	loaded := NewEngine()
	defer loaded.Close()
	flags, err := loaded.LoadSnapshot(&buf)
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if !flags.RedrawScene {
		t.Error("LoadSnapshot() did not request a redraw")
	}
	if loaded.Store.Len() != e.Store.Len() {
		t.Errorf("loaded Len() = %d, want %d", loaded.Store.Len(), e.Store.Len())
	}
	if loaded.Store.CanUndo() {
		t.Error("loaded engine carries history")
	}
}

func TestEngineDocAutoresizeOnLoad(t *testing.T) {
	e := NewEngine()
	defer e.Close()
	now := testNow()
	drawLine(e, now, 100, 100, 2000, 2000)

	var buf bytes.Buffer
	if err := e.SaveSnapshot(&buf, store.MethodJSON, store.CompressionNone); err != nil {
		t.Fatalf("SaveSnapshot() error: %v", err)
	}

	loaded := NewEngine()
	defer loaded.Close()
	if _, err := loaded.LoadSnapshot(&buf); err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	if loaded.Doc.Bounds.Max.X < 2000 || loaded.Doc.Bounds.Max.Y < 2000 {
		t.Errorf("Doc.Bounds = %v, want grown to imported content", loaded.Doc.Bounds)
	}
}
