// internal/spans/index.go
package spans

import (
	"github.com/inkwell-editor/inkwell/internal/markup"
	"github.com/inkwell-editor/inkwell/internal/types"
	"github.com/inkwell-editor/inkwell/internal/utils"
)

// LineSource provides line content. Satisfied by *core.Editor.
type LineSource interface {
	LineText(line int) (string, error)
}

// Index answers enclosing-construct queries against the rendered inline
// constructs of the document. Nothing is cached: every query rescans the
// queried line so the answer always reflects the live buffer.
type Index struct {
	source LineSource
}

// NewIndex creates a span index over a line source.
func NewIndex(source LineSource) *Index {
	if source == nil {
		panic("spans: Index requires a LineSource")
	}
	return &Index{source: source}
}

// FindEnclosingConstruct reports the innermost construct of the given
// style containing pos. The trailing boundary counts as inside.
func (ix *Index) FindEnclosingConstruct(pos types.Position, style string) (markup.Construct, bool) {
	line, err := ix.source.LineText(pos.Line)
	if err != nil {
		return markup.Construct{}, false
	}
	lineBytes := []byte(line)

	var best *construct
	for _, c := range scanLine(line) {
		if c.style != style {
			continue
		}
		startCol := utils.ByteOffsetToRuneIndex(lineBytes, c.start)
		endCol := utils.ByteOffsetToRuneIndex(lineBytes, c.end)
		if pos.Col < startCol || pos.Col > endCol {
			continue
		}
		// Innermost wins when identical styles nest
		if best == nil || c.start >= best.start {
			cc := c
			best = &cc
		}
	}
	if best == nil {
		return markup.Construct{}, false
	}
	return markup.Construct{
		Kind: best.kind,
		Range: types.Range{
			From: types.Position{Line: pos.Line, Col: utils.ByteOffsetToRuneIndex(lineBytes, best.start)},
			To:   types.Position{Line: pos.Line, Col: utils.ByteOffsetToRuneIndex(lineBytes, best.end)},
		},
		Content: types.Range{
			From: types.Position{Line: pos.Line, Col: utils.ByteOffsetToRuneIndex(lineBytes, best.cStart)},
			To:   types.Position{Line: pos.Line, Col: utils.ByteOffsetToRuneIndex(lineBytes, best.cEnd)},
		},
	}, true
}

// StyledSpans returns the rendered spans of a line: one content span plus
// its two formatting sub-spans per construct, in source order.
func (ix *Index) StyledSpans(lineNum int) []types.StyledSpan {
	line, err := ix.source.LineText(lineNum)
	if err != nil {
		return nil
	}
	lineBytes := []byte(line)

	var out []types.StyledSpan
	for _, c := range scanLine(line) {
		startCol := utils.ByteOffsetToRuneIndex(lineBytes, c.start)
		cStartCol := utils.ByteOffsetToRuneIndex(lineBytes, c.cStart)
		cEndCol := utils.ByteOffsetToRuneIndex(lineBytes, c.cEnd)
		endCol := utils.ByteOffsetToRuneIndex(lineBytes, c.end)
		out = append(out,
			types.StyledSpan{Style: c.style, Role: types.RoleFormatting, Line: lineNum, StartCol: startCol, EndCol: cStartCol},
			types.StyledSpan{Style: c.style, Role: types.RoleContent, Line: lineNum, StartCol: cStartCol, EndCol: cEndCol},
			types.StyledSpan{Style: c.style, Role: types.RoleFormatting, Line: lineNum, StartCol: cEndCol, EndCol: endCol},
		)
	}
	return out
}
