// internal/core/text.go
package core

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/internal/core/history"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/types"
	"github.com/inkwell-editor/inkwell/internal/utils"
)

// lineRuneCount returns the rune length of a line.
func (e *Editor) lineRuneCount(line int) (int, bool) {
	lineBytes, err := e.buffer.Line(line)
	if err != nil {
		return 0, false
	}
	return utf8.RuneCount(lineBytes), true
}

// LineText returns the content of a line as a string.
func (e *Editor) LineText(line int) (string, error) {
	lineBytes, err := e.buffer.Line(line)
	if err != nil {
		return "", fmt.Errorf("cannot get line %d: %w", line, err)
	}
	return string(lineBytes), nil
}

// WordRangeAt returns the range of the word containing pos, if any.
func (e *Editor) WordRangeAt(pos types.Position) (types.Range, bool) {
	lineBytes, err := e.buffer.Line(pos.Line)
	if err != nil {
		return types.Range{}, false
	}
	start, end, ok := utils.WordRangeAt(lineBytes, pos.Col)
	if !ok {
		return types.Range{}, false
	}
	return types.Range{
		From: types.Position{Line: pos.Line, Col: start},
		To:   types.Position{Line: pos.Line, Col: end},
	}, true
}

// ExtractRange returns the buffer content covered by r. Line breaks inside
// the range come back as '\n'.
func (e *Editor) ExtractRange(r types.Range) (string, error) {
	r = types.NewRange(r.From, r.To)
	var sb strings.Builder
	for lineIdx := r.From.Line; lineIdx <= r.To.Line; lineIdx++ {
		lineBytes, err := e.buffer.Line(lineIdx)
		if err != nil {
			return "", fmt.Errorf("cannot get line %d: %w", lineIdx, err)
		}
		startCol := 0
		endCol := utf8.RuneCount(lineBytes)
		if lineIdx == r.From.Line {
			startCol = r.From.Col
		}
		if lineIdx == r.To.Line {
			endCol = r.To.Col
		}
		startByte := utils.RuneIndexToByteOffset(lineBytes, startCol)
		endByte := utils.RuneIndexToByteOffset(lineBytes, endCol)
		if startByte < 0 || endByte < 0 || startByte > endByte || endByte > len(lineBytes) {
			return "", fmt.Errorf("range %v out of bounds on line %d", r, lineIdx)
		}
		if lineIdx > r.From.Line {
			sb.WriteByte('\n')
		}
		sb.Write(lineBytes[startByte:endByte])
	}
	return sb.String(), nil
}

// InsertText inserts text at pos without moving through the cursor first.
// Records the change and returns the position just past the inserted text.
func (e *Editor) InsertText(pos types.Position, text string) (types.Position, error) {
	if text == "" {
		return pos, nil
	}
	cursorBefore := e.cursor
	textBytes := []byte(text)

	editInfo, err := e.buffer.Insert(pos, textBytes)
	if err != nil {
		return pos, fmt.Errorf("buffer insert failed: %w", err)
	}

	endPos := endOfInsertedText(pos, textBytes)
	e.historyManager.RecordChange(history.Change{
		Type:          history.InsertAction,
		Text:          textBytes,
		StartPosition: pos,
		EndPosition:   endPos,
		CursorBefore:  cursorBefore,
	})
	e.dispatchModified(editInfo)
	return endPos, nil
}

// ReplaceRange replaces the content covered by r with text. Returns the
// position just past the inserted text. The deleted and inserted halves are
// both recorded so a single undo restores the original content.
func (e *Editor) ReplaceRange(r types.Range, text string) (types.Position, error) {
	r = types.NewRange(r.From, r.To)
	cursorBefore := e.cursor

	var deleted string
	if !r.IsEmpty() {
		var err error
		deleted, err = e.ExtractRange(r)
		if err != nil {
			return r.From, err
		}
		editInfo, err := e.buffer.Delete(r.From, r.To)
		if err != nil {
			return r.From, fmt.Errorf("buffer delete failed: %w", err)
		}
		e.historyManager.RecordChange(history.Change{
			Type:          history.DeleteAction,
			Text:          []byte(deleted),
			StartPosition: r.From,
			EndPosition:   r.To,
			CursorBefore:  cursorBefore,
		})
		e.dispatchModified(editInfo)
	}

	if text == "" {
		return r.From, nil
	}
	return e.InsertText(r.From, text)
}

// --- Cursor-relative editing ---

// InsertRune inserts a single rune at the cursor, replacing any selection.
func (e *Editor) InsertRune(r rune) error {
	return e.insertAtCursor(string(r))
}

// InsertNewLine inserts a line break at the cursor.
func (e *Editor) InsertNewLine() error {
	return e.insertAtCursor("\n")
}

// InsertTab inserts spaces up to the configured tab width.
func (e *Editor) InsertTab() error {
	width := e.tabWidth
	if width <= 0 {
		width = 4
	}
	return e.insertAtCursor(strings.Repeat(" ", width))
}

// SetTabWidth sets the width InsertTab expands to.
func (e *Editor) SetTabWidth(width int) {
	e.tabWidth = width
}

func (e *Editor) insertAtCursor(text string) error {
	if e.HasSelection() {
		if err := e.deleteSelection(); err != nil {
			return err
		}
	}
	endPos, err := e.InsertText(e.cursor, text)
	if err != nil {
		return err
	}
	e.SetCursor(endPos)
	return nil
}

// DeleteBackward deletes the rune before the cursor, or the selection.
func (e *Editor) DeleteBackward() error {
	if e.HasSelection() {
		return e.deleteSelection()
	}
	cur := e.cursor
	if cur.Line == 0 && cur.Col == 0 {
		return nil // Top of buffer
	}
	var start types.Position
	if cur.Col > 0 {
		start = types.Position{Line: cur.Line, Col: cur.Col - 1}
	} else {
		// Join with previous line
		prevLen, ok := e.lineRuneCount(cur.Line - 1)
		if !ok {
			return fmt.Errorf("cannot read line %d", cur.Line-1)
		}
		start = types.Position{Line: cur.Line - 1, Col: prevLen}
	}
	return e.deleteRange(start, cur, start)
}

// DeleteForward deletes the rune after the cursor, or the selection.
func (e *Editor) DeleteForward() error {
	if e.HasSelection() {
		return e.deleteSelection()
	}
	cur := e.cursor
	lineLen, ok := e.lineRuneCount(cur.Line)
	if !ok {
		return fmt.Errorf("cannot read line %d", cur.Line)
	}
	var end types.Position
	if cur.Col < lineLen {
		end = types.Position{Line: cur.Line, Col: cur.Col + 1}
	} else if cur.Line < e.buffer.LineCount()-1 {
		end = types.Position{Line: cur.Line + 1, Col: 0}
	} else {
		return nil // End of buffer
	}
	return e.deleteRange(cur, end, cur)
}

// deleteSelection removes the active selection and collapses the cursor to
// its start.
func (e *Editor) deleteSelection() error {
	start, end, ok := e.GetSelection()
	if !ok {
		return nil
	}
	e.ClearSelection()
	return e.deleteRange(start, end, start)
}

// deleteRange deletes [start, end), records it, and places the cursor.
func (e *Editor) deleteRange(start, end, cursorAfter types.Position) error {
	cursorBefore := e.cursor
	deleted, err := e.ExtractRange(types.Range{From: start, To: end})
	if err != nil {
		return err
	}
	editInfo, err := e.buffer.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}
	e.historyManager.RecordChange(history.Change{
		Type:          history.DeleteAction,
		Text:          []byte(deleted),
		StartPosition: start,
		EndPosition:   end,
		CursorBefore:  cursorBefore,
	})
	e.dispatchModified(editInfo)
	e.SetCursor(cursorAfter)
	return nil
}

func (e *Editor) dispatchModified(editInfo types.EditInfo) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
	}
}

// endOfInsertedText computes where the cursor lands after inserting text
// at pos.
func endOfInsertedText(pos types.Position, text []byte) types.Position {
	numLines := 0
	lastLineStart := 0
	for i, b := range text {
		if b == '\n' {
			numLines++
			lastLineStart = i + 1
		}
	}
	if numLines == 0 {
		return types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCount(text)}
	}
	return types.Position{
		Line: pos.Line + numLines,
		Col:  utf8.RuneCount(text[lastLineStart:]),
	}
}
