package geom

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func pointsEqual(p1, p2 Point, eps float64) bool {
	return math.Abs(p1.X-p2.X) < eps && math.Abs(p1.Y-p2.Y) < eps
}

// -------------------------------------------------------------------
// Rect tests
// -------------------------------------------------------------------

func TestNewRect_Normalizes(t *testing.T) {
	tests := []struct {
		name      string
		p1, p2    Point
		expectMin Point
		expectMax Point
	}{
		{
			name: "normal order",
			p1:   Pt(0, 0), p2: Pt(10, 10),
			expectMin: Pt(0, 0), expectMax: Pt(10, 10),
		},
		{
			name: "reversed order",
			p1:   Pt(10, 10), p2: Pt(0, 0),
			expectMin: Pt(0, 0), expectMax: Pt(10, 10),
		},
		{
			name: "mixed axes",
			p1:   Pt(5, 0), p2: Pt(0, 5),
			expectMin: Pt(0, 0), expectMax: Pt(5, 5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRect(tt.p1, tt.p2)
			if !pointsEqual(r.Min, tt.expectMin, epsilon) {
				t.Errorf("Min = %v, want %v", r.Min, tt.expectMin)
			}
			if !pointsEqual(r.Max, tt.expectMax, epsilon) {
				t.Errorf("Max = %v, want %v", r.Max, tt.expectMax)
			}
		})
	}
}

func TestRect_Intersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlapping", NewRect(Pt(0, 0), Pt(10, 10)), NewRect(Pt(5, 5), Pt(15, 15)), true},
		{"disjoint", NewRect(Pt(0, 0), Pt(10, 10)), NewRect(Pt(20, 20), Pt(30, 30)), false},
		{"touching edge", NewRect(Pt(0, 0), Pt(10, 10)), NewRect(Pt(10, 0), Pt(20, 10)), true},
		{"contained", NewRect(Pt(0, 0), Pt(10, 10)), NewRect(Pt(2, 2), Pt(3, 3)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("Intersects = %v, want %v", got, tt.want)
			}
			if got := tt.b.Intersects(tt.a); got != tt.want {
				t.Errorf("Intersects (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRect_ExpandTranslate(t *testing.T) {
	r := NewRect(Pt(2, 2), Pt(4, 4)).Expand(1)
	if !pointsEqual(r.Min, Pt(1, 1), epsilon) || !pointsEqual(r.Max, Pt(5, 5), epsilon) {
		t.Errorf("Expand = %v", r)
	}
	r = r.Translate(Pt(10, 0))
	if !pointsEqual(r.Min, Pt(11, 1), epsilon) {
		t.Errorf("Translate Min = %v, want (11,1)", r.Min)
	}
}

// -------------------------------------------------------------------
// Curve tests
// -------------------------------------------------------------------

func TestCubicBez_EvalEndpoints(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(1, 2), P2: Pt(3, 2), P3: Pt(4, 0)}
	if !pointsEqual(c.Eval(0), c.P0, epsilon) {
		t.Errorf("Eval(0) = %v, want %v", c.Eval(0), c.P0)
	}
	if !pointsEqual(c.Eval(1), c.P3, epsilon) {
		t.Errorf("Eval(1) = %v, want %v", c.Eval(1), c.P3)
	}
}

func TestCubicBez_SubsegmentEndpoints(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(10, 20), P2: Pt(30, 20), P3: Pt(40, 0)}
	sub := c.Subsegment(0.25, 0.75)
	if !pointsEqual(sub.P0, c.Eval(0.25), 1e-6) {
		t.Errorf("Subsegment start = %v, want %v", sub.P0, c.Eval(0.25))
	}
	if !pointsEqual(sub.P3, c.Eval(0.75), 1e-6) {
		t.Errorf("Subsegment end = %v, want %v", sub.P3, c.Eval(0.75))
	}
	// Interior of the subsegment must track the original curve.
	if !pointsEqual(sub.Eval(0.5), c.Eval(0.5), 1e-6) {
		t.Errorf("Subsegment midpoint = %v, want %v", sub.Eval(0.5), c.Eval(0.5))
	}
}

func TestCubicBez_BoundingBoxCoversExtrema(t *testing.T) {
	// An arch: the apex lies above both endpoints.
	c := CubicBez{P0: Pt(0, 10), P1: Pt(5, 0), P2: Pt(15, 0), P3: Pt(20, 10)}
	bbox := c.BoundingBox()
	apex := c.Eval(0.5)
	if !bbox.Contains(apex) {
		t.Errorf("bounding box %v does not contain apex %v", bbox, apex)
	}
	if bbox.Min.Y >= 10 {
		t.Errorf("bounding box ignores y extremum: %v", bbox)
	}
}

func TestCatmullRomToCubic_Interpolates(t *testing.T) {
	p0, p1, p2, p3 := Pt(0, 0), Pt(10, 0), Pt(20, 10), Pt(30, 10)
	c := CatmullRomToCubic(p0, p1, p2, p3)
	if !pointsEqual(c.P0, p1, epsilon) {
		t.Errorf("curve start = %v, want %v", c.P0, p1)
	}
	if !pointsEqual(c.P3, p2, epsilon) {
		t.Errorf("curve end = %v, want %v", c.P3, p2)
	}
}

func TestCatmullRomToCubic_CollinearStaysCollinear(t *testing.T) {
	c := CatmullRomToCubic(Pt(0, 0), Pt(1, 1), Pt(2, 2), Pt(3, 3))
	for _, tv := range []float64{0.25, 0.5, 0.75} {
		p := c.Eval(tv)
		if math.Abs(p.X-p.Y) > epsilon {
			t.Errorf("Eval(%v) = %v left the line y=x", tv, p)
		}
	}
}

func TestSolveQuadratic(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c float64
		want    []float64
	}{
		{"two roots", 1, -3, 2, []float64{1, 2}},
		{"one root", 1, -2, 1, []float64{1}},
		{"no real roots", 1, 0, 1, nil},
		{"linear", 0, 2, -4, []float64{2}},
		{"degenerate", 0, 0, 5, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveQuadratic(tt.a, tt.b, tt.c)
			if len(got) != len(tt.want) {
				t.Fatalf("roots = %v, want %v", got, tt.want)
			}
			for i := range got {
				if math.Abs(got[i]-tt.want[i]) > epsilon {
					t.Errorf("root[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

// -------------------------------------------------------------------
// Transform tests
// -------------------------------------------------------------------

func TestTransform_Compose(t *testing.T) {
	tr := Translation(Pt(10, 5)).Mul(Scaling(2, 2))
	got := tr.Apply(Pt(1, 1))
	if !pointsEqual(got, Pt(12, 7), epsilon) {
		t.Errorf("Apply = %v, want (12,7)", got)
	}
}

func TestTransform_ScalingAbout(t *testing.T) {
	tr := ScalingAbout(2, 2, Pt(5, 5))
	if got := tr.Apply(Pt(5, 5)); !pointsEqual(got, Pt(5, 5), epsilon) {
		t.Errorf("pivot moved to %v", got)
	}
	if got := tr.Apply(Pt(6, 5)); !pointsEqual(got, Pt(7, 5), epsilon) {
		t.Errorf("Apply = %v, want (7,5)", got)
	}
}

func TestTransform_ApplyRectRotation(t *testing.T) {
	r := NewRect(Pt(-1, -1), Pt(1, 1))
	got := Rotation(math.Pi / 4).ApplyRect(r)
	want := math.Sqrt2
	if math.Abs(got.Max.X-want) > 1e-9 || math.Abs(got.Min.X+want) > 1e-9 {
		t.Errorf("rotated bbox = %v, want +-sqrt2", got)
	}
}
