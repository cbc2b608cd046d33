// internal/buffer/slice_buffer.go
package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/inkwell-editor/inkwell/internal/types"
)

// SliceBuffer stores the document as a slice of line byte slices.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool // Track if buffer has unsaved changes
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		// Start with a single empty line, common for new files
		lines:    [][]byte{[]byte("")},
		modified: false,
	}
}

// Load reads a file into the buffer. Replaces existing content.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{[]byte("")}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	newLines := [][]byte{}
	for scanner.Scan() {
		line := scanner.Bytes()
		lineCopy := make([]byte, len(line))
		copy(lineCopy, line)
		newLines = append(newLines, lineCopy)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(newLines) == 0 {
		newLines = append(newLines, []byte(""))
	}
	sb.lines = newLines
	sb.filePath = filePath
	return nil
}

// Lines returns the underlying line slices.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the bytes of a single line.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins all lines with newlines.
func (sb *SliceBuffer) Bytes() []byte {
	var buffer bytes.Buffer
	for i, line := range sb.lines {
		buffer.Write(line)
		if i < len(sb.lines)-1 {
			buffer.WriteByte('\n')
		}
	}
	return buffer.Bytes()
}

// Save writes the buffer content to the stored filePath.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" { // Allow overriding path during save
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	content := sb.Bytes()
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// FilePath returns the associated file path, if any.
func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// --- Buffer Modification Methods ---

// byteIndexOf computes the absolute byte offset of a (line, byte-in-line) pair.
func (sb *SliceBuffer) byteIndexOf(line, byteOffset int) uint32 {
	total := 0
	for i := 0; i < line && i < len(sb.lines); i++ {
		total += len(sb.lines[i]) + 1 // +1 for the newline
	}
	return uint32(total + byteOffset)
}

// validatePositionOnLine returns the clamped column and byte offset for a
// column on a specific line.
func (sb *SliceBuffer) validatePositionOnLine(col int, lineIndex int) (validCol int, byteOffset int, err error) {
	if lineIndex < 0 || lineIndex >= len(sb.lines) {
		return 0, 0, fmt.Errorf("line index %d out of bounds", lineIndex)
	}
	currentLine := sb.lines[lineIndex]
	byteOff := 0
	runeCount := 0
	for i := 0; i < len(currentLine); {
		if runeCount == col {
			break
		}
		_, size := utf8.DecodeRune(currentLine[i:])
		byteOff += size
		runeCount++
		i += size
	}
	if runeCount < col {
		col = runeCount
		byteOff = len(currentLine)
	}
	return col, byteOff, nil
}

// validatePosition clamps a position into the buffer and returns the byte
// offset within its line.
func (sb *SliceBuffer) validatePosition(pos types.Position) (validPos types.Position, byteOffset int, err error) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
		if pos.Line < 0 { // Buffer was empty
			sb.lines = append(sb.lines, []byte(""))
			pos.Line = 0
		}
	}

	validLine := pos.Line
	var validCol int
	validCol, byteOffset, err = sb.validatePositionOnLine(pos.Col, validLine)
	if err != nil {
		return types.Position{}, 0, err
	}

	return types.Position{Line: validLine, Col: validCol}, byteOffset, nil
}

// Insert inserts text at a given position. Handles single/multiple lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.EditInfo, error) {
	var edit types.EditInfo
	if len(text) == 0 {
		return edit, nil
	}

	validPos, byteOffset, err := sb.validatePosition(pos)
	if err != nil {
		return edit, fmt.Errorf("invalid insert position: %w", err)
	}

	startIndex := sb.byteIndexOf(validPos.Line, byteOffset)
	edit.StartIndex = startIndex
	edit.OldEndIndex = startIndex
	edit.NewEndIndex = startIndex + uint32(len(text))
	edit.StartPosition = sitter.Point{Row: uint32(validPos.Line), Column: uint32(byteOffset)}
	edit.OldEndPosition = edit.StartPosition

	sb.modified = true

	currentLine := sb.lines[validPos.Line]
	insertLines := bytes.Split(text, []byte("\n"))

	tail := make([]byte, len(currentLine[byteOffset:]))
	copy(tail, currentLine[byteOffset:])

	sb.lines[validPos.Line] = append(currentLine[:byteOffset], insertLines[0]...)

	if len(insertLines) > 1 {
		newLines := make([][]byte, len(insertLines)-1)
		for i := 1; i < len(insertLines); i++ {
			lineCopy := make([]byte, len(insertLines[i]))
			copy(lineCopy, insertLines[i])
			newLines[i-1] = lineCopy
		}
		lastNew := newLines[len(newLines)-1]
		edit.NewEndPosition = sitter.Point{
			Row:    uint32(validPos.Line + len(newLines)),
			Column: uint32(len(lastNew)),
		}
		newLines[len(newLines)-1] = append(lastNew, tail...)
		if validPos.Line+1 > len(sb.lines) {
			sb.lines = append(sb.lines, newLines...)
		} else {
			sb.lines = append(sb.lines[:validPos.Line+1], append(newLines, sb.lines[validPos.Line+1:]...)...)
		}
	} else {
		edit.NewEndPosition = sitter.Point{
			Row:    uint32(validPos.Line),
			Column: uint32(byteOffset + len(insertLines[0])),
		}
		sb.lines[validPos.Line] = append(sb.lines[validPos.Line], tail...)
	}

	return edit, nil
}

// Delete removes text within a given range (start inclusive, end exclusive).
func (sb *SliceBuffer) Delete(start, end types.Position) (types.EditInfo, error) {
	var edit types.EditInfo
	if start == end {
		return edit, nil // Nothing to delete
	}

	// Normalize order
	if start.Line > end.Line || (start.Line == end.Line && start.Col > end.Col) {
		start, end = end, start
	}

	vStart, startOffset, err := sb.validatePosition(start)
	if err != nil {
		return edit, fmt.Errorf("invalid delete range: %w", err)
	}
	vEnd, endOffset, err := sb.validatePosition(end)
	if err != nil {
		return edit, fmt.Errorf("invalid delete range: %w", err)
	}
	if vStart.Line == vEnd.Line && startOffset > endOffset {
		startOffset = endOffset
	}
	if vStart == vEnd && startOffset == endOffset {
		return edit, nil // Clamping collapsed the range
	}

	startIndex := sb.byteIndexOf(vStart.Line, startOffset)
	oldEndIndex := sb.byteIndexOf(vEnd.Line, endOffset)
	edit.StartIndex = startIndex
	edit.OldEndIndex = oldEndIndex
	edit.NewEndIndex = startIndex
	edit.StartPosition = sitter.Point{Row: uint32(vStart.Line), Column: uint32(startOffset)}
	edit.OldEndPosition = sitter.Point{Row: uint32(vEnd.Line), Column: uint32(endOffset)}
	edit.NewEndPosition = edit.StartPosition

	sb.modified = true

	startLineBytes := sb.lines[vStart.Line]

	if vStart.Line == vEnd.Line {
		// Deletion within a single line
		if endOffset > len(startLineBytes) {
			endOffset = len(startLineBytes)
		}
		if startOffset > endOffset {
			startOffset = endOffset
		}
		sb.lines[vStart.Line] = append(startLineBytes[:startOffset], startLineBytes[endOffset:]...)
	} else {
		// Deletion spans multiple lines
		endLineBytes := sb.lines[vEnd.Line]
		startPart := startLineBytes[:startOffset]
		endPart := endLineBytes[endOffset:]
		sb.lines[vStart.Line] = append(startPart, endPart...)

		firstLineToRemove := vStart.Line + 1
		lastLineToRemove := vEnd.Line
		if firstLineToRemove <= lastLineToRemove && lastLineToRemove < len(sb.lines) {
			if lastLineToRemove+1 >= len(sb.lines) {
				sb.lines = sb.lines[:firstLineToRemove]
			} else {
				sb.lines = append(sb.lines[:firstLineToRemove], sb.lines[lastLineToRemove+1:]...)
			}
		}
	}

	// Buffer always has at least one line
	if len(sb.lines) == 0 {
		sb.lines = [][]byte{[]byte("")}
	}

	return edit, nil
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
