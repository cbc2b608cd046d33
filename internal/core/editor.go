// internal/core/editor.go
package core

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/core/clipboard"
	"github.com/inkwell-editor/inkwell/internal/core/find"
	"github.com/inkwell-editor/inkwell/internal/core/history"
	"github.com/inkwell-editor/inkwell/internal/event"
	hl "github.com/inkwell-editor/inkwell/internal/highlighter"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/types"
)

// Editor owns the buffer, cursor, selection and viewport state, and wires
// the per-concern managers (history, find, clipboard) together.
type Editor struct {
	buffer       buffer.Buffer
	eventManager *event.Manager

	cursor     types.Position
	viewportY  int // Top visible line index (0-based)
	viewportX  int // Leftmost visible rune index (horizontal scroll)
	viewWidth  int
	viewHeight int
	scrollOff  int
	tabWidth   int

	// Selection state. An inactive selection means the cursor is a caret.
	selecting      bool
	selectionStart types.Position // Anchor point
	selectionEnd   types.Position // Follows the cursor while selecting

	historyManager   *history.Manager
	findManager      *find.Manager
	clipboardManager *clipboard.Manager

	// Syntax highlighting state
	syntaxHighlights hl.HighlightResult
	syntaxTree       *sitter.Tree
	highlightMutex   sync.RWMutex
}

// NewEditor creates a new Editor instance with a given buffer.
func NewEditor(buf buffer.Buffer) *Editor {
	e := &Editor{
		buffer:           buf,
		cursor:           types.Position{Line: 0, Col: 0},
		scrollOff:        config.DefaultScrollOff,
		tabWidth:         config.DefaultTabWidth,
		selecting:        false,
		selectionStart:   types.Position{Line: -1, Col: -1}, // Invalid position means no anchor
		selectionEnd:     types.Position{Line: -1, Col: -1},
		syntaxHighlights: make(hl.HighlightResult),
	}
	e.historyManager = history.NewManager(e, 0)
	e.findManager = find.NewManager(e)
	e.clipboardManager = clipboard.NewManager(e)
	return e
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

// GetEventManager returns the event manager (may be nil).
func (e *Editor) GetEventManager() *event.Manager {
	return e.eventManager
}

// GetBuffer returns the editor's buffer.
func (e *Editor) GetBuffer() buffer.Buffer {
	return e.buffer
}

// GetHistoryManager returns the undo/redo manager.
func (e *Editor) GetHistoryManager() *history.Manager {
	return e.historyManager
}

// GetFindManager returns the find/replace manager.
func (e *Editor) GetFindManager() *find.Manager {
	return e.findManager
}

// GetClipboardManager returns the clipboard manager.
func (e *Editor) GetClipboardManager() *clipboard.Manager {
	return e.clipboardManager
}

// --- Cursor & viewport ---

// GetCursor returns the current cursor position.
func (e *Editor) GetCursor() types.Position {
	return e.cursor
}

// SetCursor sets the cursor, clamped into the buffer, and scrolls to it.
func (e *Editor) SetCursor(pos types.Position) {
	clamped := e.clampPosition(pos)
	moved := clamped != e.cursor
	e.cursor = clamped
	e.ScrollToCursor()
	if moved && e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeCursorMoved, event.CursorMovedData{NewPosition: e.cursor})
	}
}

// clampPosition snaps a position into the buffer's valid range.
func (e *Editor) clampPosition(pos types.Position) types.Position {
	lineCount := e.buffer.LineCount()
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= lineCount {
		pos.Line = lineCount - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if lineLen, ok := e.lineRuneCount(pos.Line); ok && pos.Col > lineLen {
		pos.Col = lineLen
	}
	return pos
}

// MoveCursor moves the cursor by the given delta, clamping at edges.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	e.SetCursor(types.Position{
		Line: e.cursor.Line + deltaLine,
		Col:  e.cursor.Col + deltaCol,
	})
	if e.selecting {
		e.selectionEnd = e.cursor
	}
}

// PageMove moves the cursor by whole view heights.
func (e *Editor) PageMove(deltaPages int) {
	if e.viewHeight <= 0 {
		return
	}
	e.MoveCursor(deltaPages*e.viewHeight, 0)
}

// Home moves the cursor to the start of the current line.
func (e *Editor) Home() {
	e.SetCursor(types.Position{Line: e.cursor.Line, Col: 0})
	if e.selecting {
		e.selectionEnd = e.cursor
	}
}

// End moves the cursor to the end of the current line.
func (e *Editor) End() {
	if lineLen, ok := e.lineRuneCount(e.cursor.Line); ok {
		e.SetCursor(types.Position{Line: e.cursor.Line, Col: lineLen})
		if e.selecting {
			e.selectionEnd = e.cursor
		}
	}
}

// SetViewSize updates the cached view dimensions. Called on resize.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	statusHeight := config.Get().Editor.StatusBarHeight
	if height > statusHeight {
		e.viewHeight = height - statusHeight
	} else {
		e.viewHeight = 0
	}

	// Scrolloff can't exceed half the view height
	if e.scrollOff*2 >= e.viewHeight && e.viewHeight > 0 {
		e.scrollOff = (e.viewHeight - 1) / 2
	} else if e.viewHeight <= 0 {
		e.scrollOff = 0
	}

	e.ScrollToCursor()
}

// GetViewport returns the top visible line and leftmost visible column.
func (e *Editor) GetViewport() (int, int) {
	return e.viewportY, e.viewportX
}

// ScrollToCursor adjusts the viewport so the cursor stays visible with
// scrolloff context.
func (e *Editor) ScrollToCursor() {
	if e.viewHeight <= 0 {
		return
	}
	if e.cursor.Line < e.viewportY+e.scrollOff {
		e.viewportY = e.cursor.Line - e.scrollOff
		if e.viewportY < 0 {
			e.viewportY = 0
		}
	} else if e.cursor.Line >= e.viewportY+e.viewHeight-e.scrollOff {
		e.viewportY = e.cursor.Line - e.viewHeight + e.scrollOff + 1
		if e.viewportY < 0 {
			e.viewportY = 0
		}
	}

	if e.viewWidth > 0 {
		if e.cursor.Col < e.viewportX {
			e.viewportX = e.cursor.Col
		} else if e.cursor.Col >= e.viewportX+e.viewWidth {
			e.viewportX = e.cursor.Col - e.viewWidth + 1
		}
	}
}

// --- Selection ---

// HasSelection returns true if there is an active, non-empty selection.
func (e *Editor) HasSelection() bool {
	return e.selecting && e.selectionStart != e.selectionEnd
}

// GetSelection returns the normalized selection range (start <= end).
func (e *Editor) GetSelection() (start types.Position, end types.Position, ok bool) {
	if !e.HasSelection() {
		return types.Position{Line: -1, Col: -1}, types.Position{Line: -1, Col: -1}, false
	}
	start = e.selectionStart
	end = e.selectionEnd
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// CurrentSelection returns the selection as a value: a caret at the cursor
// when no selection is active, the normalized range otherwise.
func (e *Editor) CurrentSelection() types.Selection {
	if start, end, ok := e.GetSelection(); ok {
		return types.Selection{Range: types.Range{From: start, To: end}}
	}
	return types.Caret(e.cursor)
}

// SetSelection activates a selection spanning the given range and places
// the cursor at its end.
func (e *Editor) SetSelection(r types.Range) {
	e.selecting = true
	e.selectionStart = r.From
	e.selectionEnd = r.To
	e.SetCursor(r.To)
}

// ClearSelection resets the selection state.
func (e *Editor) ClearSelection() {
	e.selecting = false
	e.selectionStart = types.Position{Line: -1, Col: -1}
	e.selectionEnd = types.Position{Line: -1, Col: -1}
}

// StartOrUpdateSelection manages selection state during movement.
// Called when a Shift + movement key is pressed.
func (e *Editor) StartOrUpdateSelection() {
	if !e.selecting {
		// Anchor at the current cursor position before movement
		e.selectionStart = e.cursor
		e.selecting = true
		logger.Debugf("Editor: Selection started at %v", e.selectionStart)
	}
	e.selectionEnd = e.cursor
}

// --- Persistence ---

// SaveBuffer saves the buffer, accepting an optional override path.
func (e *Editor) SaveBuffer(filePath ...string) error {
	savePath := ""
	if len(filePath) > 0 {
		savePath = filePath[0]
	}
	if err := e.buffer.Save(savePath); err != nil {
		return err
	}
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: e.buffer.FilePath()})
	}
	return nil
}

// --- Syntax highlighting state ---

// GetSyntaxHighlightsForLine returns the computed styles for a line.
func (e *Editor) GetSyntaxHighlightsForLine(lineNum int) []types.StyledRange {
	e.highlightMutex.RLock()
	defer e.highlightMutex.RUnlock()
	if styles, ok := e.syntaxHighlights[lineNum]; ok {
		return styles
	}
	return nil
}

// UpdateSyntaxHighlights replaces highlight state and the syntax tree.
func (e *Editor) UpdateSyntaxHighlights(newHighlights hl.HighlightResult, newTree *sitter.Tree) {
	e.highlightMutex.Lock()
	defer e.highlightMutex.Unlock()
	if e.syntaxTree != nil {
		e.syntaxTree.Close()
	}
	e.syntaxHighlights = newHighlights
	e.syntaxTree = newTree
}

// GetCurrentTree safely gets the current tree (needed for incremental parse).
func (e *Editor) GetCurrentTree() *sitter.Tree {
	e.highlightMutex.RLock()
	defer e.highlightMutex.RUnlock()
	return e.syntaxTree
}
