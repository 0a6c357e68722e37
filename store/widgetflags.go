package store

// TriState is an optional boolean for UI flags: unset means "leave the
// widget as it is".
type TriState int8

const (
	// TriUnset leaves the widget state untouched.
	TriUnset TriState = iota
	// TriFalse sets the widget state to false.
	TriFalse
	// TriTrue sets the widget state to true.
	TriTrue
)

// WidgetFlags describes what the UI must refresh after a store operation.
// Every mutating operation returns one, so the UI never polls store state
// to decide what changed.
type WidgetFlags struct {
	// RedrawScene requests a canvas redraw.
	RedrawScene bool
	// ResizeDoc signals the document bounds changed.
	ResizeDoc bool
	// RefreshUI requests a refresh of pen/selection dependent widgets.
	RefreshUI bool
	// StoreModified signals unsaved changes.
	StoreModified bool
	// HideUndo controls the undo button (TriTrue = hide/disable).
	HideUndo TriState
	// HideRedo controls the redo button (TriTrue = hide/disable).
	HideRedo TriState
}

// Merge folds other into f. Booleans OR together; tri-states take the
// later non-unset value.
func (f *WidgetFlags) Merge(other WidgetFlags) {
	f.RedrawScene = f.RedrawScene || other.RedrawScene
	f.ResizeDoc = f.ResizeDoc || other.ResizeDoc
	f.RefreshUI = f.RefreshUI || other.RefreshUI
	f.StoreModified = f.StoreModified || other.StoreModified
	if other.HideUndo != TriUnset {
		f.HideUndo = other.HideUndo
	}
	if other.HideRedo != TriUnset {
		f.HideRedo = other.HideRedo
	}
}
