// Package clipboard implements yank and paste, with optional system
// clipboard integration.
package clipboard

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	sysclip "github.com/atotto/clipboard"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/core/history"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/types"
	"github.com/inkwell-editor/inkwell/internal/utils"
)

// EditorInterface defines methods needed from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(pos types.Position)
	GetSelection() (start types.Position, end types.Position, ok bool)
	ClearSelection()
	GetEventManager() *event.Manager
	ScrollToCursor()
	MoveCursor(deltaLine, deltaCol int)
	GetHistoryManager() *history.Manager
}

// Manager handles clipboard operations. Yanked text lands in an internal
// register; when system clipboard use is enabled it is mirrored to the OS
// clipboard and pastes prefer the OS clipboard content.
type Manager struct {
	editor    EditorInterface
	register  []byte
	useSystem bool
}

// NewManager creates a new clipboard manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// SetSystemClipboard toggles mirroring to the OS clipboard.
func (m *Manager) SetSystemClipboard(enabled bool) {
	if enabled && sysclip.Unsupported {
		logger.Warnf("ClipboardManager: system clipboard not available on this platform")
		return
	}
	m.useSystem = enabled
}

// WriteString places arbitrary text in the register (and OS clipboard when
// enabled) without touching the buffer. Used for yanking file paths.
func (m *Manager) WriteString(text string) error {
	m.register = []byte(text)
	if m.useSystem {
		if err := sysclip.WriteAll(text); err != nil {
			return fmt.Errorf("system clipboard write failed: %w", err)
		}
	}
	return nil
}

// YankSelection copies selected text to the clipboard.
func (m *Manager) YankSelection() (bool, error) {
	start, end, ok := m.editor.GetSelection()
	if !ok {
		return false, nil // Nothing selected, not an error
	}

	content, err := m.extractTextFromRange(start, end)
	if err != nil {
		return false, fmt.Errorf("failed to extract selected text for yank: %w", err)
	}

	m.register = content
	if m.useSystem {
		if err := sysclip.WriteAll(string(content)); err != nil {
			logger.Warnf("ClipboardManager: system clipboard write failed: %v", err)
		}
	}
	logger.Debugf("ClipboardManager: yanked %d bytes", len(m.register))

	m.editor.ClearSelection()
	return true, nil
}

// extractTextFromRange extracts text from a given range in the buffer.
func (m *Manager) extractTextFromRange(start, end types.Position) ([]byte, error) {
	var content bytes.Buffer
	buf := m.editor.GetBuffer()

	if start.Line == end.Line {
		lineBytes, err := buf.Line(start.Line)
		if err != nil {
			return nil, fmt.Errorf("cannot get line %d: %w", start.Line, err)
		}
		startByte := utils.RuneIndexToByteOffset(lineBytes, start.Col)
		endByte := utils.RuneIndexToByteOffset(lineBytes, end.Col)
		if startByte < 0 || endByte < 0 || startByte > endByte || endByte > len(lineBytes) {
			return nil, fmt.Errorf("invalid byte offsets (%d, %d) for line %d, cols %d-%d",
				startByte, endByte, start.Line, start.Col, end.Col)
		}
		content.Write(lineBytes[startByte:endByte])
		return content.Bytes(), nil
	}

	for lineIdx := start.Line; lineIdx <= end.Line; lineIdx++ {
		lineBytes, err := buf.Line(lineIdx)
		if err != nil {
			return nil, fmt.Errorf("cannot get line %d: %w", lineIdx, err)
		}
		switch lineIdx {
		case start.Line:
			startByte := utils.RuneIndexToByteOffset(lineBytes, start.Col)
			if startByte < 0 || startByte > len(lineBytes) {
				return nil, fmt.Errorf("invalid start byte offset %d for line %d, col %d",
					startByte, start.Line, start.Col)
			}
			content.Write(lineBytes[startByte:])
			content.WriteByte('\n')
		case end.Line:
			endByte := utils.RuneIndexToByteOffset(lineBytes, end.Col)
			if endByte < 0 || endByte > len(lineBytes) {
				return nil, fmt.Errorf("invalid end byte offset %d for line %d, col %d",
					endByte, end.Line, end.Col)
			}
			content.Write(lineBytes[:endByte])
		default:
			content.Write(lineBytes)
			content.WriteByte('\n')
		}
	}
	return content.Bytes(), nil
}

// pasteContent returns what Paste should insert, preferring the OS
// clipboard when enabled so text copied in other programs pastes here.
func (m *Manager) pasteContent() []byte {
	if m.useSystem {
		if text, err := sysclip.ReadAll(); err == nil && text != "" {
			return []byte(text)
		}
	}
	return m.register
}

// Paste inserts clipboard content at the cursor, replacing any active
// selection.
func (m *Manager) Paste() (bool, error) {
	content := m.pasteContent()
	if len(content) == 0 {
		return false, nil
	}

	buf := m.editor.GetBuffer()
	eventMgr := m.editor.GetEventManager()
	histMgr := m.editor.GetHistoryManager()
	cursorBefore := m.editor.GetCursor()
	var pastePos types.Position

	if start, end, ok := m.editor.GetSelection(); ok {
		selectedText, err := m.extractTextFromRange(start, end)
		if err != nil {
			return false, fmt.Errorf("failed to extract selected text: %w", err)
		}

		m.editor.ClearSelection()
		editInfo, err := buf.Delete(start, end)
		if err != nil {
			return false, fmt.Errorf("failed to delete selection before paste: %w", err)
		}

		if histMgr != nil && len(selectedText) > 0 {
			histMgr.RecordChange(history.Change{
				Type:          history.DeleteAction,
				Text:          selectedText,
				StartPosition: start,
				EndPosition:   end,
				CursorBefore:  cursorBefore,
			})
		}

		m.editor.SetCursor(start)
		pastePos = start

		if eventMgr != nil {
			eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
		}
	} else {
		pastePos = m.editor.GetCursor()
	}

	editInfo, err := buf.Insert(pastePos, content)
	if err != nil {
		return false, fmt.Errorf("buffer insert failed during paste: %w", err)
	}

	// Place cursor at the end of the pasted content
	numLines := bytes.Count(content, []byte("\n"))
	lastLine := content
	if numLines > 0 {
		lastLine = content[bytes.LastIndexByte(content, '\n')+1:]
	}
	newPos := types.Position{Line: pastePos.Line + numLines}
	if numLines > 0 {
		newPos.Col = utf8.RuneCount(lastLine)
	} else {
		newPos.Col = pastePos.Col + utf8.RuneCount(lastLine)
	}

	if histMgr != nil {
		histMgr.RecordChange(history.Change{
			Type:          history.InsertAction,
			Text:          content,
			StartPosition: pastePos,
			EndPosition:   newPos,
			CursorBefore:  cursorBefore,
		})
	}

	m.editor.SetCursor(newPos)
	m.editor.ScrollToCursor()

	logger.Debugf("ClipboardManager: pasted %d bytes", len(content))
	if eventMgr != nil {
		eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
	}
	return true, nil
}
