// Package ink is the document core of a freehand drawing application:
// stroke storage with undo/redo history, spatial indexing, incremental
// pen-path building and the pen behaviors driving them.
//
// The engine owns no rendering backend. Strokes are rasterized by an
// external collaborator behind the render.Renderer interface; the core
// schedules jobs, caches the resulting images and discards results that
// went stale while in flight.
//
// # Architecture
//
// The root package is a thin facade. The work happens in the
// sub-packages:
//
//   - geom: 2D geometry value types (points, rects, Bezier curves,
//     affine transforms)
//   - penpath: input samples, path segments and the incremental stroke
//     builders (simple, curved, modeled)
//   - stroke: the drawable primitives (brush strokes, shapes, text,
//     images)
//   - store: the ECS-style stroke store with components, R-tree spatial
//     index, history and snapshot serialization
//   - pens: the pen behavior state machines and the pen holder
//   - document: the sheet model and the camera
//   - render: the render worker pool and the renderer boundary
//
// # Concurrency
//
// The engine and the store are single-writer: all mutations must come
// from one goroutine. Rendering fans out across the worker pool; results
// come back through ApplyRenderResults on the writer goroutine.
//
// # Basic usage
//
//	e := ink.NewEngine()
//	defer e.Close()
//
//	now := time.Now()
//	e.HandlePenEvent(penpath.Down{El: penpath.El(100, 100, 0.5)}, now)
//	e.HandlePenEvent(penpath.Motion{El: penpath.El(120, 110, 0.6)}, now)
//	e.HandlePenEvent(penpath.Up{El: penpath.El(140, 115, 0.4)}, now)
//
//	e.Undo(time.Now())
package ink
