// internal/core/markdown.go
package core

import (
	"strings"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/internal/types"
)

// InsertLink inserts markdown link syntax at the cursor. A non-empty
// selection becomes the link label and the cursor lands inside the empty
// URL parens; with no selection an empty link is inserted and the cursor
// lands inside the brackets.
func (e *Editor) InsertLink() error {
	sel := e.CurrentSelection()
	if sel.IsCaret() {
		caret := sel.Range.From
		end, err := e.ReplaceRange(types.Range{From: caret, To: caret}, "[]()")
		if err != nil {
			return err
		}
		e.SetCursor(types.Position{Line: end.Line, Col: caret.Col + 1})
		return nil
	}

	label, err := e.ExtractRange(sel.Range)
	if err != nil {
		return err
	}
	end, err := e.ReplaceRange(sel.Range, "["+label+"]()")
	if err != nil {
		return err
	}
	e.ClearSelection()
	e.SetCursor(types.Position{Line: end.Line, Col: end.Col - 1})
	return nil
}

// ApplyHeading sets the ATX heading level of a line. Level 0 strips any
// existing heading prefix; levels 1-6 replace it. The cursor keeps its
// position in the line content.
func (e *Editor) ApplyHeading(line, level int) error {
	if level < 0 || level > 6 {
		return nil
	}
	text, err := e.LineText(line)
	if err != nil {
		return err
	}

	oldPrefix := headingPrefixLen(text)
	newPrefix := ""
	if level > 0 {
		newPrefix = strings.Repeat("#", level) + " "
	}

	r := types.Range{
		From: types.Position{Line: line, Col: 0},
		To:   types.Position{Line: line, Col: oldPrefix},
	}
	if _, err := e.ReplaceRange(r, newPrefix); err != nil {
		return err
	}

	cursor := e.GetCursor()
	if cursor.Line == line {
		col := cursor.Col - oldPrefix + utf8.RuneCountInString(newPrefix)
		if col < 0 {
			col = 0
		}
		e.SetCursor(types.Position{Line: line, Col: col})
	}
	return nil
}

// headingPrefixLen returns the length in runes of an ATX heading prefix
// ("#"s plus the following space), or 0 when the line is not a heading.
func headingPrefixLen(line string) int {
	hashes := 0
	for hashes < len(line) && line[hashes] == '#' {
		hashes++
	}
	if hashes == 0 || hashes > 6 || hashes >= len(line) || line[hashes] != ' ' {
		return 0
	}
	return hashes + 1
}
