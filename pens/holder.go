package pens

import (
	"time"

	"github.com/gogpu/ink/penpath"
	"github.com/gogpu/ink/store"
)

// PenHolder owns one pen instance per style and dispatches events to the
// active one. A temporary style override (stylus button, keyboard
// shortcut held) shadows the selected style without forgetting it.
type PenHolder struct {
	style       PenStyle
	override    PenStyle
	hasOverride bool
	pens        map[PenStyle]Pen
}

// NewPenHolder creates a holder with default-configured pens, brush
// selected.
func NewPenHolder() *PenHolder {
	return &PenHolder{
		style: PenBrush,
		pens: map[PenStyle]Pen{
			PenBrush:    NewBrushPen(),
			PenShaper:   NewShaperPen(),
			PenEraser:   NewEraserPen(),
			PenSelector: NewSelectorPen(),
			PenTools:    NewToolsPen(),
		},
	}
}

// Style returns the active style, override included.
func (h *PenHolder) Style() PenStyle {
	if h.hasOverride {
		return h.override
	}
	return h.style
}

// Pen returns the pen instance for a style, for configuration.
func (h *PenHolder) Pen(style PenStyle) Pen {
	return h.pens[style]
}

// Current returns the active pen instance.
func (h *PenHolder) Current() Pen {
	return h.pens[h.Style()]
}

// ChangeStyle switches the selected style. An in-flight gesture on the
// previously active pen is cancelled first, never silently dropped.
func (h *PenHolder) ChangeStyle(view EngineView, style PenStyle, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags
	if style == h.style && !h.hasOverride {
		return flags
	}
	flags.Merge(h.cancelActive(view, now))
	h.style = style
	h.hasOverride = false
	flags.RefreshUI = true
	return flags
}

// SetStyleOverride activates a temporary style on top of the selected one.
func (h *PenHolder) SetStyleOverride(view EngineView, style PenStyle, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags
	if h.hasOverride && h.override == style {
		return flags
	}
	flags.Merge(h.cancelActive(view, now))
	h.override = style
	h.hasOverride = true
	flags.RefreshUI = true
	return flags
}

// ClearStyleOverride drops the override, restoring the selected style.
func (h *PenHolder) ClearStyleOverride(view EngineView, now time.Time) store.WidgetFlags {
	var flags store.WidgetFlags
	if !h.hasOverride {
		return flags
	}
	flags.Merge(h.cancelActive(view, now))
	h.hasOverride = false
	flags.RefreshUI = true
	return flags
}

// HandleEvent forwards the event to the active pen.
func (h *PenHolder) HandleEvent(view EngineView, event penpath.PenEvent, now time.Time) store.WidgetFlags {
	return h.Current().HandleEvent(view, event, now)
}

func (h *PenHolder) cancelActive(view EngineView, now time.Time) store.WidgetFlags {
	return h.Current().HandleEvent(view, penpath.Cancel{}, now)
}
