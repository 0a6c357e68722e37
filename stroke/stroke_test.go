package stroke

import (
	"math"
	"testing"

	"github.com/gogpu/ink/geom"
	"github.com/gogpu/ink/penpath"
)

func line(x0, y0, x1, y1 float64) penpath.Segment {
	return penpath.LineTo{
		Start: penpath.El(x0, y0, 0.5),
		End:   penpath.El(x1, y1, 0.5),
	}
}

func TestBrushStroke_BoundsCoverPath(t *testing.T) {
	b := NewBrushStroke(DefaultStyle(), line(0, 0, 10, 0), line(10, 0, 10, 10))
	bbox := b.Bounds()
	for _, p := range []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10)} {
		if !bbox.Contains(p) {
			t.Errorf("bounds %v do not contain path point %v", bbox, p)
		}
	}
	if bbox.Min.X >= 0 || bbox.Max.X <= 10 {
		t.Errorf("bounds %v not inflated by stroke width", bbox)
	}
}

func TestBrushStroke_ExtendGrowsBounds(t *testing.T) {
	b := NewBrushStroke(DefaultStyle(), line(0, 0, 5, 0))
	before := b.Bounds()
	b.ExtendWithSegments(line(5, 0, 50, 50))
	after := b.Bounds()
	if !after.ContainsRect(before) {
		t.Errorf("extended bounds %v do not contain original %v", after, before)
	}
	if after.Max.X < 50 {
		t.Errorf("extended bounds %v ignore appended segment", after)
	}
}

func TestBrushStroke_CloneIsDeep(t *testing.T) {
	b := NewBrushStroke(DefaultStyle(), line(0, 0, 5, 0))
	c := b.Clone().(*BrushStroke)
	b.ExtendWithSegments(line(5, 0, 10, 0))
	if c.SegmentCount() != 1 {
		t.Errorf("clone segment count = %d after mutating original, want 1", c.SegmentCount())
	}
}

func TestBrushStroke_TransformedScalesWidth(t *testing.T) {
	b := NewBrushStroke(DefaultStyle(), line(0, 0, 10, 0))
	tr := b.Transformed(geom.Scaling(2, 2)).(*BrushStroke)
	if math.Abs(tr.Style.Width-2*b.Style.Width) > 1e-9 {
		t.Errorf("transformed width = %v, want %v", tr.Style.Width, 2*b.Style.Width)
	}
	if got := tr.Path[0].EndEl().Pos; got != geom.Pt(20, 0) {
		t.Errorf("transformed endpoint = %v, want (20,0)", got)
	}
	// Original untouched.
	if b.Path[0].EndEl().Pos != geom.Pt(10, 0) {
		t.Errorf("original stroke mutated by Transformed")
	}
}

func TestShapeRect_HitboxesSkipInterior(t *testing.T) {
	s := NewShapeStroke(ShapeRect{Rect: geom.NewRect(geom.Pt(0, 0), geom.Pt(100, 100))}, DefaultStyle())
	center := geom.NewRect(geom.Pt(45, 45), geom.Pt(55, 55))
	for _, hb := range s.Hitboxes() {
		if hb.Intersects(center) {
			t.Fatalf("hitbox %v covers the hollow interior", hb)
		}
	}
	edge := geom.NewRect(geom.Pt(-1, 40), geom.Pt(1, 60))
	hit := false
	for _, hb := range s.Hitboxes() {
		if hb.Intersects(edge) {
			hit = true
			break
		}
	}
	if !hit {
		t.Error("no hitbox covers the left edge")
	}
}

func TestShapeEllipse_Bounds(t *testing.T) {
	s := ShapeEllipse{Center: geom.Pt(10, 10), RadiusX: 5, RadiusY: 3}
	bbox := s.Bounds(0)
	want := geom.NewRect(geom.Pt(5, 7), geom.Pt(15, 13))
	if bbox != want {
		t.Errorf("bounds = %v, want %v", bbox, want)
	}
}

func TestTextStroke_MeasuredBounds(t *testing.T) {
	ts := NewTextStroke("hello", geom.Pt(100, 50), 16)
	bbox := ts.Bounds()
	if bbox.Width() <= 0 || bbox.Height() <= 0 {
		t.Fatalf("degenerate text bounds %v", bbox)
	}
	if bbox.Min.X != 100 {
		t.Errorf("bounds start at x=%v, want 100", bbox.Min.X)
	}
	longer := NewTextStroke("hello hello hello", geom.Pt(100, 50), 16)
	if longer.Bounds().Width() <= bbox.Width() {
		t.Errorf("longer text not wider: %v vs %v", longer.Bounds(), bbox)
	}
}

func TestTextStroke_MultilineGrowsHeight(t *testing.T) {
	one := NewTextStroke("a", geom.Pt(0, 0), 16)
	two := NewTextStroke("a\nb", geom.Pt(0, 0), 16)
	if two.Bounds().Height() <= one.Bounds().Height() {
		t.Errorf("two lines not taller: %v vs %v", two.Bounds(), one.Bounds())
	}
}

func TestTextStroke_NormalizesNFC(t *testing.T) {
	// "e" + combining acute vs precomposed "é" must store identically.
	decomposed := NewTextStroke("e\u0301", geom.Pt(0, 0), 16)
	precomposed := NewTextStroke("\u00e9", geom.Pt(0, 0), 16)
	if decomposed.Text != precomposed.Text {
		t.Errorf("NFC normalization missing: %q vs %q", decomposed.Text, precomposed.Text)
	}
}

func TestVectorImage_TransformedMovesRect(t *testing.T) {
	v := &VectorImage{SVGData: []byte("<svg/>"), Rect: geom.NewRect(geom.Pt(0, 0), geom.Pt(10, 10))}
	moved := v.Transformed(geom.Translation(geom.Pt(5, 5))).(*VectorImage)
	if moved.Rect.Min != geom.Pt(5, 5) {
		t.Errorf("moved rect = %v", moved.Rect)
	}
	if v.Rect.Min != geom.Pt(0, 0) {
		t.Error("original mutated by Transformed")
	}
}
