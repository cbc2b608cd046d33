// internal/types/position.go
package types

// Position represents a cursor or text position within the buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
// Using Rune index is important for Unicode handling.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p comes before other in document order.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// Range is an ordered pair of positions. From <= To in document order;
// use NewRange to guarantee the ordering.
type Range struct {
	From Position
	To   Position
}

// NewRange builds a Range, swapping the endpoints if needed.
func NewRange(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{From: a, To: b}
}

// IsEmpty reports whether the range is a caret (zero-width).
func (r Range) IsEmpty() bool {
	return r.From == r.To
}

// Contains reports whether pos lies inside the range, start inclusive,
// end exclusive.
func (r Range) Contains(pos Position) bool {
	return !pos.Before(r.From) && pos.Before(r.To)
}

// Selection is either a caret (empty range) or a non-empty range.
// The two cases stay distinct throughout the editor: a caret triggers
// construct detection, an explicit range never does.
type Selection struct {
	Range
}

// Caret returns a selection collapsed to a single position.
func Caret(pos Position) Selection {
	return Selection{Range{From: pos, To: pos}}
}

// IsCaret reports whether the selection is an empty range.
func (s Selection) IsCaret() bool {
	return s.IsEmpty()
}
