// internal/dispatch/context.go
package dispatch

// DockControl cycles the tab headers of a side-dock pane.
type DockControl interface {
	NextTab()
	PrevTab()
}

// PropertyEditor is the metadata/property panel of the active document.
type PropertyEditor interface {
	HasFocusedProperty() bool
	DeleteFocusedProperties()
}

// SectionToggle collapses or expands a foldable section heading.
type SectionToggle interface {
	Collapsed() bool
	SetCollapsed(collapsed bool)
}

// Context is the ambient focus state consulted for one key event. It is
// read fresh from the host on every keystroke and never cached beyond
// the event that produced it.
type Context struct {
	// View describes the active pane. Kind KindNone means no active
	// pane, which forces pass-through.
	View View

	// PromptFocused marks a prompt/search input having focus, enabling
	// the configured up/down aliases.
	PromptFocused bool
	// TextInputFocused marks any text-editing surface having focus:
	// the editor area, an input field, a property value, a rename box.
	TextInputFocused bool
	// RenameInProgress marks an in-flight rename control.
	RenameInProgress bool

	// Dock is non-nil while a side-dock pane is active.
	Dock DockControl
	// Properties is non-nil while a metadata editor is present.
	Properties PropertyEditor
	// PropertyHeading is non-nil while a properties-section heading
	// element has focus.
	PropertyHeading SectionToggle
}
