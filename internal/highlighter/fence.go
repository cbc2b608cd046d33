package highlighter

import (
	"bytes"
	"strings"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/highlighter/lang"
)

// fencedBlock is one ``` or ~~~ code block with a recognized language.
// contentStart and contentEnd bound the content lines, fence lines
// excluded; contentEnd is exclusive.
type fencedBlock struct {
	lang         *lang.Language
	contentStart int
	contentEnd   int
}

// scanFences finds the fenced code blocks in a markdown buffer. Blocks
// whose info string names no registered language are skipped; an
// unterminated fence runs to the end of the buffer.
func scanFences(buf buffer.Buffer) []fencedBlock {
	var blocks []fencedBlock
	lineCount := buf.LineCount()

	for i := 0; i < lineCount; i++ {
		trimmed, ok := fenceLine(buf, i)
		if !ok {
			continue
		}
		marker := trimmed[:3]
		info := strings.TrimSpace(trimmed[3:])

		// Find the matching closing fence
		end := lineCount
		for j := i + 1; j < lineCount; j++ {
			if t, ok := fenceLine(buf, j); ok && strings.HasPrefix(t, marker) {
				end = j
				break
			}
		}

		if l := lang.GetForFence(info); l != nil && end > i+1 {
			blocks = append(blocks, fencedBlock{lang: l, contentStart: i + 1, contentEnd: end})
		}
		i = end // skip past the closing fence
	}
	return blocks
}

// fenceLine reports whether line i opens or closes a fence, returning
// the line with leading indentation stripped. Markdown allows up to
// three spaces of indentation before a fence.
func fenceLine(buf buffer.Buffer, i int) (string, bool) {
	line, err := buf.Line(i)
	if err != nil {
		return "", false
	}
	s := string(line)
	indent := 0
	for indent < len(s) && indent < 3 && s[indent] == ' ' {
		indent++
	}
	s = s[indent:]
	if strings.HasPrefix(s, "```") || strings.HasPrefix(s, "~~~") {
		return s, true
	}
	return "", false
}

// blockSource joins the content lines of a block for parsing.
func blockSource(buf buffer.Buffer, block fencedBlock) []byte {
	var out bytes.Buffer
	for i := block.contentStart; i < block.contentEnd; i++ {
		line, err := buf.Line(i)
		if err != nil {
			break
		}
		if i > block.contentStart {
			out.WriteByte('\n')
		}
		out.Write(line)
	}
	return out.Bytes()
}
