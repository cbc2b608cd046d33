// internal/event/event.go
package event

import (
	"github.com/gdamore/tcell/v2"
	"github.com/inkwell-editor/inkwell/internal/types"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Core Editor Events
	TypeBufferModified // Fired when buffer content changes (insert/delete/replace)
	TypeBufferLoaded   // Fired after a buffer is successfully loaded
	TypeBufferSaved    // Fired after a buffer is successfully saved
	TypeCursorMoved    // Fired when the cursor position changes

	// Input Events (useful for plugins reacting to raw keys)
	TypeKeyPressed // Raw key press event forwarded

	// Workspace Events
	TypeViewFocusChanged // Fired when a different pane/view kind takes focus
	TypeFileCreated      // Fired after the workspace registers a new file
	TypeFileTrashed      // Fired after a file is moved to trash

	// Application Lifecycle Events
	TypeAppReady // Fired when the application is fully initialized
	TypeAppQuit  // Fired just before application termination begins

	TypeThemeChanged // Fired when the theme is changed
)

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// --- Specific Event Data Structures ---

// BufferModifiedData contains info about buffer changes, including EditInfo.
type BufferModifiedData struct {
	Edit types.EditInfo // Information about the change for incremental parsing
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ViewFocusChangedData names the view kind that took focus.
type ViewFocusChangedData struct {
	ViewKind string
}

// FileCreatedData carries the path registered by the workspace.
type FileCreatedData struct {
	Path   string
	Folder bool
}

// FileTrashedData carries the path that was trashed.
type FileTrashedData struct {
	Path string
}

// ThemeChangedData names the newly active theme.
type ThemeChangedData struct {
	ThemeName string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
