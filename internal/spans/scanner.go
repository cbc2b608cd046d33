// Package spans maintains a per-line index of rendered inline markdown
// constructs. It answers enclosing-construct queries for the markup engine
// and hands styled spans to the renderer.
package spans

import (
	"strings"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/internal/markup"
)

// construct is one detected inline construct in byte offsets.
type construct struct {
	style        string
	kind         markup.ConstructKind
	start, end   int // full extent, delimiters included
	cStart, cEnd int // content extent
}

// marker definitions in priority order. Longer markers come first so that
// "**" is never misread as two "*" runs. Comment and code content is
// opaque and never rescanned.
var markers = []struct {
	style  string
	open   string
	close  string
	kind   markup.ConstructKind
	opaque bool
}{
	{markup.StyleComment, "<!--", "-->", markup.KindComment, true},
	{markup.StyleStrong, "**", "**", markup.KindSpan, false},
	{markup.StyleStrikethrough, "~~", "~~", markup.KindSpan, false},
	{markup.StyleHighlight, "==", "==", markup.KindSpan, false},
	{markup.StyleCode, "`", "`", markup.KindSpan, true},
	{markup.StyleEm, "*", "*", markup.KindSpan, false},
}

// scanLine finds all inline constructs on a line, including constructs
// nested inside non-opaque content. Offsets are byte offsets into line.
// Each opener pairs with the nearest close marker, so overlapping runs
// like "*a **b** c*" resolve the outer em against the first "*" of the
// strong delimiter and the strong run is not indexed.
func scanLine(line string) []construct {
	return scanSegment(line, 0)
}

func scanSegment(segment string, base int) []construct {
	var found []construct
	i := 0
	for i < len(segment) {
		matched := false
		for _, m := range markers {
			if !strings.HasPrefix(segment[i:], m.open) {
				continue
			}
			contentStart := i + len(m.open)
			rel := strings.Index(segment[contentStart:], m.close)
			if rel < 0 {
				continue
			}
			contentEnd := contentStart + rel
			end := contentEnd + len(m.close)
			found = append(found, construct{
				style:  m.style,
				kind:   m.kind,
				start:  base + i,
				end:    base + end,
				cStart: base + contentStart,
				cEnd:   base + contentEnd,
			})
			if !m.opaque {
				found = append(found, scanSegment(segment[contentStart:contentEnd], base+contentStart)...)
			}
			i = end
			matched = true
			break
		}
		if !matched {
			_, size := utf8.DecodeRuneInString(segment[i:])
			i += size
		}
	}
	return found
}
