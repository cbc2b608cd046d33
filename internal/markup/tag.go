// internal/markup/tag.go
package markup

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/internal/types"
	"github.com/inkwell-editor/inkwell/internal/utils"
)

var (
	tagRegexMu    sync.Mutex
	tagRegexCache = map[string]*regexp.Regexp{}
)

// tagRegex returns a compiled pattern matching <tag ...>content</tag> with
// non-greedy content. Compiled once per tag name.
func tagRegex(tag string) *regexp.Regexp {
	tagRegexMu.Lock()
	defer tagRegexMu.Unlock()
	if re, ok := tagRegexCache[tag]; ok {
		return re
	}
	quoted := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(`<` + quoted + `(?:\s[^>]*)?>(.*?)</` + quoted + `>`)
	tagRegexCache[tag] = re
	return re
}

// ToggleTag collapses an enclosing <tag>...</tag> pair on the current
// line, or wraps the selection/word in the tag. Tags are detected by
// literal line scan because the renderer does not expose synthetic HTML
// tags as styled spans. A lone opening or closing tag is never a
// collapse; only a complete pair containing the caret qualifies.
func (e *Engine) ToggleTag(tag string) error {
	pair := DelimiterPair{Prefix: fmt.Sprintf("<%s>", tag), Suffix: fmt.Sprintf("</%s>", tag)}

	sel := e.host.CurrentSelection()
	if !sel.IsCaret() {
		return e.wrapRange(sel.Range, pair)
	}

	caret := sel.Range.From
	line, err := e.host.LineText(caret.Line)
	if err != nil {
		return err
	}

	lineBytes := []byte(line)
	for _, m := range tagRegex(tag).FindAllSubmatchIndex(lineBytes, -1) {
		startCol := utils.ByteOffsetToRuneIndex(lineBytes, m[0])
		endCol := utils.ByteOffsetToRuneIndex(lineBytes, m[1])
		// Caret at the trailing boundary still counts as inside
		if caret.Col < startCol || caret.Col > endCol {
			continue
		}
		content := line[m[2]:m[3]]
		contentStartCol := utils.ByteOffsetToRuneIndex(lineBytes, m[2])

		offset := caret.Col - contentStartCol
		if offset < 0 {
			offset = 0
		}
		if contentLen := utf8.RuneCountInString(content); offset > contentLen {
			offset = contentLen
		}

		full := types.Range{
			From: types.Position{Line: caret.Line, Col: startCol},
			To:   types.Position{Line: caret.Line, Col: endCol},
		}
		if _, err := e.host.ReplaceRange(full, content); err != nil {
			return err
		}
		e.host.SetCursor(types.Position{Line: caret.Line, Col: startCol + offset})
		return nil
	}

	return e.wrapWordOrCaret(caret, pair)
}
