package store

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"sort"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/stroke"
)

// Snapshot is a serializable projection of the store: the strokes with
// their chronological order plus the chronology counter. Trash and
// selection state are rebuilt fresh on import, the render cache and
// spatial index are derived and never serialized.
type Snapshot struct {
	ID            string           `json:"id" cbor:"1,keyasint"`
	ChronoCounter uint64           `json:"chrono_counter" cbor:"2,keyasint"`
	Strokes       []SnapshotStroke `json:"strokes" cbor:"3,keyasint"`
}

// SnapshotStroke is one stroke in portable form, tagged by kind.
type SnapshotStroke struct {
	Kind string `json:"kind" cbor:"1,keyasint"`
	T    uint64 `json:"t" cbor:"2,keyasint"`

	Brush  *brushRecord  `json:"brush,omitempty" cbor:"3,keyasint,omitempty"`
	Shape  *shapeRecord  `json:"shape,omitempty" cbor:"4,keyasint,omitempty"`
	Text   *textRecord   `json:"text,omitempty" cbor:"5,keyasint,omitempty"`
	Vector *vectorRecord `json:"vector,omitempty" cbor:"6,keyasint,omitempty"`
	Bitmap *bitmapRecord `json:"bitmap,omitempty" cbor:"7,keyasint,omitempty"`
}

const (
	kindBrush  = "brush"
	kindShape  = "shape"
	kindText   = "text"
	kindVector = "vector"
	kindBitmap = "bitmap"
)

type styleRecord struct {
	R, G, B, A        uint8
	Width             float64
	PressureSensitive bool
}

type segmentRecord struct {
	Kind         string // "dot", "line", "quad", "cubic"
	Start, End   penpath.Element
	Ctrl1, Ctrl2 geom.Point
}

type brushRecord struct {
	Segments []segmentRecord
	Style    styleRecord
}

type shapeRecord struct {
	Kind             string // "line", "rect", "ellipse"
	Start, End       geom.Point
	Rect             geom.Rect
	Center           geom.Point
	RadiusX, RadiusY float64
	Style            styleRecord
}

type textRecord struct {
	Text string
	Pos  geom.Point
	Size float64
}

type vectorRecord struct {
	SVGData []byte
	Rect    geom.Rect
}

type bitmapRecord struct {
	// PNG-encoded pixel data; PNG is lossless, so bitmaps round-trip.
	PNGData []byte
	Rect    geom.Rect
}

// TakeSnapshot captures the current store contents, trashed strokes
// excluded (trash is transient state pending purge, not document
// content). Strokes appear in chronological order.
func (s *StrokeStore) TakeSnapshot() (*Snapshot, error) {
	snap := &Snapshot{
		ID:            uuid.NewString(),
		ChronoCounter: s.chronoCounter,
	}
	for _, key := range s.KeysSortedChrono() {
		st, ok := s.strokes.get(key)
		if !ok {
			continue
		}
		rec, err := strokeToRecord(st)
		if err != nil {
			return nil, fmt.Errorf("snapshot stroke: %w", err)
		}
		rec.T = s.chrono[key]
		snap.Strokes = append(snap.Strokes, rec)
	}
	return snap, nil
}

// ImportSnapshot wholesale-replaces the store contents and rebuilds all
// derived indexes. Trash and selection start fresh; the history stack is
// reset with the imported state at its bottom.
func (s *StrokeStore) ImportSnapshot(snap *Snapshot) (WidgetFlags, error) {
	var flags WidgetFlags

	strokes := make([]stroke.Stroke, len(snap.Strokes))
	ts := make([]uint64, len(snap.Strokes))
	for i, rec := range snap.Strokes {
		st, err := recordToStroke(rec)
		if err != nil {
			return flags, fmt.Errorf("import stroke %d: %w", i, err)
		}
		strokes[i] = st
		ts[i] = rec.T
	}

	// Valid input from here on: replace wholesale. Clearing through
	// restore keeps slot generations monotonic, so keys held from before
	// the import can never resolve to imported strokes.
	s.strokes.restore(nil)
	s.chrono = make(map[StrokeKey]uint64, len(strokes))
	s.trash = make(map[StrokeKey]bool, len(strokes))
	s.selection = make(map[StrokeKey]bool, len(strokes))
	s.renderCache = make(map[StrokeKey]*renderComponent, len(strokes))
	s.chronoCounter = 0

	order := make([]int, len(strokes))
	for i := range order {
		order[i] = i
	}
	// Stable: split partitions can share a T value, and the snapshot
	// lists them in render order.
	sort.SliceStable(order, func(a, b int) bool { return ts[order[a]] < ts[order[b]] })
	for _, i := range order {
		s.InsertStroke(strokes[i])
	}
	if snap.ChronoCounter > s.chronoCounter {
		s.chronoCounter = snap.ChronoCounter
	}
	s.index.rebuild(&s.strokes)

	s.history = []*historyEntry{s.snapshotEntry()}
	s.liveIndex = 0

	flags.RedrawScene = true
	flags.ResizeDoc = true
	flags.RefreshUI = true
	flags.HideUndo = TriTrue
	flags.HideRedo = TriTrue
	return flags, nil
}

func styleToRecord(st stroke.Style) styleRecord {
	return styleRecord{
		R: st.Color.R, G: st.Color.G, B: st.Color.B, A: st.Color.A,
		Width:             st.Width,
		PressureSensitive: st.PressureSensitive,
	}
}

func recordToStyle(r styleRecord) stroke.Style {
	s := stroke.Style{Width: r.Width, PressureSensitive: r.PressureSensitive}
	s.Color.R, s.Color.G, s.Color.B, s.Color.A = r.R, r.G, r.B, r.A
	return s
}

func strokeToRecord(st stroke.Stroke) (SnapshotStroke, error) {
	switch v := st.(type) {
	case *stroke.BrushStroke:
		segs := make([]segmentRecord, len(v.Path))
		for i, seg := range v.Path {
			segs[i] = segmentToRecord(seg)
		}
		return SnapshotStroke{
			Kind:  kindBrush,
			Brush: &brushRecord{Segments: segs, Style: styleToRecord(v.Style)},
		}, nil

	case *stroke.ShapeStroke:
		rec := &shapeRecord{Style: styleToRecord(v.Style)}
		switch sh := v.Shape.(type) {
		case stroke.ShapeLine:
			rec.Kind, rec.Start, rec.End = "line", sh.Start, sh.End
		case stroke.ShapeRect:
			rec.Kind, rec.Rect = "rect", sh.Rect
		case stroke.ShapeEllipse:
			rec.Kind, rec.Center = "ellipse", sh.Center
			rec.RadiusX, rec.RadiusY = sh.RadiusX, sh.RadiusY
		default:
			return SnapshotStroke{}, fmt.Errorf("unknown shape %T", sh)
		}
		return SnapshotStroke{Kind: kindShape, Shape: rec}, nil

	case *stroke.TextStroke:
		return SnapshotStroke{
			Kind: kindText,
			Text: &textRecord{Text: v.Text, Pos: v.Pos, Size: v.Size},
		}, nil

	case *stroke.VectorImage:
		return SnapshotStroke{
			Kind:   kindVector,
			Vector: &vectorRecord{SVGData: v.SVGData, Rect: v.Rect},
		}, nil

	case *stroke.BitmapImage:
		var buf bytes.Buffer
		if err := png.Encode(&buf, v.Image); err != nil {
			return SnapshotStroke{}, fmt.Errorf("encoding bitmap: %w", err)
		}
		return SnapshotStroke{
			Kind:   kindBitmap,
			Bitmap: &bitmapRecord{PNGData: buf.Bytes(), Rect: v.Rect},
		}, nil
	}
	return SnapshotStroke{}, fmt.Errorf("unknown stroke %T", st)
}

func recordToStroke(rec SnapshotStroke) (stroke.Stroke, error) {
	switch rec.Kind {
	case kindBrush:
		if rec.Brush == nil {
			return nil, errors.New("brush record missing payload")
		}
		path := make(penpath.PenPath, len(rec.Brush.Segments))
		for i, sr := range rec.Brush.Segments {
			seg, err := recordToSegment(sr)
			if err != nil {
				return nil, err
			}
			path[i] = seg
		}
		return &stroke.BrushStroke{Path: path, Style: recordToStyle(rec.Brush.Style)}, nil

	case kindShape:
		if rec.Shape == nil {
			return nil, errors.New("shape record missing payload")
		}
		var shape stroke.Shape
		switch rec.Shape.Kind {
		case "line":
			shape = stroke.ShapeLine{Start: rec.Shape.Start, End: rec.Shape.End}
		case "rect":
			shape = stroke.ShapeRect{Rect: rec.Shape.Rect}
		case "ellipse":
			shape = stroke.ShapeEllipse{
				Center:  rec.Shape.Center,
				RadiusX: rec.Shape.RadiusX,
				RadiusY: rec.Shape.RadiusY,
			}
		default:
			return nil, fmt.Errorf("unknown shape kind %q", rec.Shape.Kind)
		}
		return stroke.NewShapeStroke(shape, recordToStyle(rec.Shape.Style)), nil

	case kindText:
		if rec.Text == nil {
			return nil, errors.New("text record missing payload")
		}
		return stroke.NewTextStroke(rec.Text.Text, rec.Text.Pos, rec.Text.Size), nil

	case kindVector:
		if rec.Vector == nil {
			return nil, errors.New("vector record missing payload")
		}
		return &stroke.VectorImage{SVGData: rec.Vector.SVGData, Rect: rec.Vector.Rect}, nil

	case kindBitmap:
		if rec.Bitmap == nil {
			return nil, errors.New("bitmap record missing payload")
		}
		img, err := png.Decode(bytes.NewReader(rec.Bitmap.PNGData))
		if err != nil {
			return nil, fmt.Errorf("decoding bitmap: %w", err)
		}
		return &stroke.BitmapImage{Image: img, Rect: rec.Bitmap.Rect}, nil
	}
	return nil, fmt.Errorf("unknown stroke kind %q", rec.Kind)
}

func segmentToRecord(seg penpath.Segment) segmentRecord {
	switch v := seg.(type) {
	case penpath.Dot:
		return segmentRecord{Kind: "dot", Start: v.At, End: v.At}
	case penpath.LineTo:
		return segmentRecord{Kind: "line", Start: v.Start, End: v.End}
	case penpath.QuadBezTo:
		return segmentRecord{Kind: "quad", Start: v.Start, End: v.End, Ctrl1: v.Ctrl}
	case penpath.CubicBezTo:
		return segmentRecord{Kind: "cubic", Start: v.Start, End: v.End, Ctrl1: v.Ctrl1, Ctrl2: v.Ctrl2}
	}
	return segmentRecord{Kind: "dot"}
}

func recordToSegment(sr segmentRecord) (penpath.Segment, error) {
	switch sr.Kind {
	case "dot":
		return penpath.Dot{At: sr.Start}, nil
	case "line":
		return penpath.LineTo{Start: sr.Start, End: sr.End}, nil
	case "quad":
		return penpath.QuadBezTo{Start: sr.Start, Ctrl: sr.Ctrl1, End: sr.End}, nil
	case "cubic":
		return penpath.CubicBezTo{Start: sr.Start, Ctrl1: sr.Ctrl1, Ctrl2: sr.Ctrl2, End: sr.End}, nil
	}
	return nil, fmt.Errorf("unknown segment kind %q", sr.Kind)
}

// -------------------------------------------------------------------
// Serialized container
// -------------------------------------------------------------------

// SerializeMethod selects the snapshot payload encoding.
type SerializeMethod byte

const (
	// MethodJSON is the human-readable encoding.
	MethodJSON SerializeMethod = iota
	// MethodCBOR is the binary-compact encoding.
	MethodCBOR
)

// Compression selects the payload compression.
type Compression byte

const (
	// CompressionNone stores the payload uncompressed.
	CompressionNone Compression = iota
	// CompressionGzip compresses with gzip.
	CompressionGzip
	// CompressionZstd compresses with zstd.
	CompressionZstd
)

// snapshotMagic makes a serialized snapshot self-describing: the header
// records how to decode the payload.
var snapshotMagic = []byte("INKSNAP1")

// EncodeSnapshot writes a snapshot with the chosen method and compression.
// The two are independently selectable and recorded in the header, so the
// file describes its own decoding.
func EncodeSnapshot(w io.Writer, snap *Snapshot, method SerializeMethod, compression Compression) error {
	var payload []byte
	var err error
	switch method {
	case MethodJSON:
		payload, err = json.Marshal(snap)
	case MethodCBOR:
		payload, err = cbor.Marshal(snap)
	default:
		return fmt.Errorf("unknown serialize method %d", method)
	}
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	header := append(append([]byte{}, snapshotMagic...), byte(method), byte(compression))
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}

	switch compression {
	case CompressionNone:
		_, err = w.Write(payload)
	case CompressionGzip:
		zw := gzip.NewWriter(w)
		if _, err = zw.Write(payload); err == nil {
			err = zw.Close()
		}
	case CompressionZstd:
		var zw *zstd.Encoder
		zw, err = zstd.NewWriter(w)
		if err == nil {
			if _, err = zw.Write(payload); err == nil {
				err = zw.Close()
			}
		}
	default:
		return fmt.Errorf("unknown compression %d", compression)
	}
	if err != nil {
		return fmt.Errorf("writing snapshot payload: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot. Corrupt
// input is a hard failure surfaced as an explicit error for the I/O layer
// to present to the user.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	header := make([]byte, len(snapshotMagic)+2)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading snapshot header: %w", err)
	}
	if !bytes.Equal(header[:len(snapshotMagic)], snapshotMagic) {
		return nil, errors.New("not an ink snapshot")
	}
	method := SerializeMethod(header[len(snapshotMagic)])
	compression := Compression(header[len(snapshotMagic)+1])

	var payload []byte
	var err error
	switch compression {
	case CompressionNone:
		payload, err = io.ReadAll(r)
	case CompressionGzip:
		var zr *gzip.Reader
		zr, err = gzip.NewReader(r)
		if err == nil {
			payload, err = io.ReadAll(zr)
			zr.Close()
		}
	case CompressionZstd:
		var zr *zstd.Decoder
		zr, err = zstd.NewReader(r)
		if err == nil {
			payload, err = io.ReadAll(zr)
			zr.Close()
		}
	default:
		return nil, fmt.Errorf("unknown compression %d", compression)
	}
	if err != nil {
		return nil, fmt.Errorf("reading snapshot payload: %w", err)
	}

	snap := &Snapshot{}
	switch method {
	case MethodJSON:
		err = json.Unmarshal(payload, snap)
	case MethodCBOR:
		err = cbor.Unmarshal(payload, snap)
	default:
		return nil, fmt.Errorf("unknown serialize method %d", method)
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return snap, nil
}
