package stroke

import (
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/ink/geom"
)

// TextStroke is a block of text anchored at a document position. The core
// measures metrics-level bounds only; shaping and glyph rendering are the
// renderer's concern.
type TextStroke struct {
	Text string
	// Pos is the baseline origin of the first line.
	Pos  geom.Point
	Size float64

	// Measured extent, cached at creation and after transforms.
	width, height float64
}

// layoutFace measures text for TextStroke bounds. Defaults to Go Regular;
// replace via SetLayoutFace when the application uses a different UI font.
var (
	layoutFaceMu sync.Mutex
	layoutFace   font.Face
)

// SetLayoutFace overrides the font face used to measure TextStroke bounds.
// Pass nil to restore the built-in default.
func SetLayoutFace(face font.Face) {
	layoutFaceMu.Lock()
	layoutFace = face
	layoutFaceMu.Unlock()
}

func defaultFace() font.Face {
	layoutFaceMu.Lock()
	defer layoutFaceMu.Unlock()
	if layoutFace == nil {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			// goregular.TTF is a compile-time constant asset; a parse
			// failure means a broken toolchain, not bad user input.
			panic("stroke: parsing embedded goregular: " + err.Error())
		}
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size: 16, DPI: 72, Hinting: font.HintingNone,
		})
		if err != nil {
			panic("stroke: building goregular face: " + err.Error())
		}
		layoutFace = face
	}
	return layoutFace
}

// NewTextStroke creates a text stroke and measures its bounds with the
// layout face. Text is normalized to NFC so equal-looking strings measure
// and serialize identically.
func NewTextStroke(text string, pos geom.Point, size float64) *TextStroke {
	t := &TextStroke{
		Text: norm.NFC.String(text),
		Pos:  pos,
		Size: size,
	}
	t.measure()
	return t
}

func (*TextStroke) isStroke() {}

// measure computes the text extent line by line using font metrics, scaled
// from the layout face's nominal size to the stroke's size.
func (t *TextStroke) measure() {
	face := defaultFace()
	metrics := face.Metrics()
	lineHeight := fixedToFloat(metrics.Height)
	ascent := fixedToFloat(metrics.Ascent)
	nominal := ascent + fixedToFloat(metrics.Descent)
	if nominal <= 0 {
		nominal = 16
	}
	scale := t.Size / nominal

	var maxWidth float64
	lines := strings.Split(t.Text, "\n")
	for _, line := range lines {
		w := fixedToFloat(font.MeasureString(face, line))
		if w > maxWidth {
			maxWidth = w
		}
	}
	t.width = maxWidth * scale
	t.height = lineHeight * float64(len(lines)) * scale
	if t.width <= 0 {
		t.width = t.Size / 2
	}
	if t.height <= 0 {
		t.height = t.Size
	}
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func (t *TextStroke) Bounds() geom.Rect {
	// Pos is the baseline of the first line: the box extends one ascent
	// (approximated by Size) above it.
	top := geom.Pt(t.Pos.X, t.Pos.Y-t.Size)
	return geom.NewRect(top, top.Add(geom.Pt(t.width, t.height)))
}

// Hitboxes returns the whole text box. Text is exempt from eraser
// collision; this is used for selection only.
func (t *TextStroke) Hitboxes() []geom.Rect {
	return []geom.Rect{t.Bounds()}
}

func (t *TextStroke) Transformed(tf geom.Transform) Stroke {
	out := *t
	out.Pos = tf.Apply(t.Pos)
	scale := tf.ScaleFactor()
	out.Size *= scale
	out.width *= scale
	out.height *= scale
	return &out
}

func (t *TextStroke) Clone() Stroke {
	out := *t
	return &out
}
