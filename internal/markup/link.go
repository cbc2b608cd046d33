// internal/markup/link.go
package markup

import (
	"regexp"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/internal/types"
	"github.com/inkwell-editor/inkwell/internal/utils"
)

var (
	markdownLinkRE = regexp.MustCompile(`\[([^\[\]]*)\]\(([^()]*)\)`)
	wikiLinkRE     = regexp.MustCompile(`\[\[([^\]|]*)(?:\|([^\]]*))?\]\]`)
)

// ToggleLink collapses a markdown or wiki link enclosing the caret to its
// label text. When the caret is not inside any link, the word under the
// caret is selected and the host's native link insertion takes over; the
// engine never re-wraps plain text into link syntax itself.
func (e *Engine) ToggleLink() error {
	sel := e.host.CurrentSelection()
	if sel.IsCaret() {
		caret := sel.Range.From
		line, err := e.host.LineText(caret.Line)
		if err != nil {
			return err
		}
		if done, err := e.collapseLink(line, caret); done || err != nil {
			return err
		}
		// Not inside a link: select the word so the host inserts around it
		if wr, ok := e.host.WordRangeAt(caret); ok {
			e.host.SetSelection(wr)
		}
	}
	if e.links == nil {
		return nil
	}
	return e.links.InsertLink()
}

// collapseLink scans the line for a markdown link, then a wiki link,
// containing the caret. Returns true when a collapse happened.
func (e *Engine) collapseLink(line string, caret types.Position) (bool, error) {
	lineBytes := []byte(line)

	for _, m := range markdownLinkRE.FindAllSubmatchIndex(lineBytes, -1) {
		startCol := utils.ByteOffsetToRuneIndex(lineBytes, m[0])
		endCol := utils.ByteOffsetToRuneIndex(lineBytes, m[1])
		if caret.Col < startCol || caret.Col > endCol {
			continue
		}
		label := line[m[2]:m[3]]
		// One leading '[' was removed: a caret strictly past it shifts
		// left by one, a caret on it snaps to the match start.
		offset := caret.Col - startCol
		if offset > 0 {
			offset--
		}
		return true, e.replaceLink(caret.Line, startCol, endCol, label, offset)
	}

	for _, m := range wikiLinkRE.FindAllSubmatchIndex(lineBytes, -1) {
		startCol := utils.ByteOffsetToRuneIndex(lineBytes, m[0])
		endCol := utils.ByteOffsetToRuneIndex(lineBytes, m[1])
		if caret.Col < startCol || caret.Col > endCol {
			continue
		}
		// Prefer the alias half of [[target|alias]]
		label := line[m[2]:m[3]]
		if m[4] >= 0 {
			label = line[m[4]:m[5]]
		}
		// Two leading '[[' runes were removed
		offset := caret.Col - startCol - 2
		if offset < 0 {
			offset = 0
		}
		return true, e.replaceLink(caret.Line, startCol, endCol, label, offset)
	}

	return false, nil
}

// replaceLink swaps [startCol, endCol) on a line for label and clamps the
// caret inside the remaining text.
func (e *Engine) replaceLink(line, startCol, endCol int, label string, offset int) error {
	if labelLen := utf8.RuneCountInString(label); offset > labelLen {
		offset = labelLen
	}
	r := types.Range{
		From: types.Position{Line: line, Col: startCol},
		To:   types.Position{Line: line, Col: endCol},
	}
	if _, err := e.host.ReplaceRange(r, label); err != nil {
		return err
	}
	e.host.SetCursor(types.Position{Line: line, Col: startCol + offset})
	return nil
}
