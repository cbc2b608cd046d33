// internal/types/span.go
package types

// StyledRange is a single-line run of styled text, used by syntax
// highlighting. Columns are rune indices within the line.
type StyledRange struct {
	StartCol  int
	EndCol    int // Exclusive
	StyleName string
}

// HighlightType identifies why a region is highlighted.
type HighlightType int

const (
	HighlightSearch HighlightType = iota
	HighlightSelection
)

// HighlightRegion marks a buffer region for emphasis during drawing.
type HighlightRegion struct {
	Start Position
	End   Position
	Type  HighlightType
}

// SpanRole distinguishes a construct's content from the delimiter
// characters around it. The `**` runs flanking bold text are separate
// formatting spans, siblings of the content span.
type SpanRole int

const (
	RoleContent SpanRole = iota
	RoleFormatting
)

// StyledSpan is a node of the rendered-output index: a text extent on one
// line carrying a semantic style tag ("strong", "em", "code", "comment",
// "link", "url", ...). Spans are read-only to consumers; the index that
// produced them owns their lifetime.
type StyledSpan struct {
	Style    string
	Role     SpanRole
	Line     int
	StartCol int // Rune index, inclusive
	EndCol   int // Rune index, exclusive
}

// RuneRange returns the span's extent as a Range on its line.
func (s StyledSpan) RuneRange() Range {
	return Range{
		From: Position{Line: s.Line, Col: s.StartCol},
		To:   Position{Line: s.Line, Col: s.EndCol},
	}
}

// ContainsCol reports whether the rune column lies inside the span.
// The trailing boundary counts as inside so a caret sitting just after
// the last character still resolves to the span.
func (s StyledSpan) ContainsCol(col int) bool {
	return col >= s.StartCol && col <= s.EndCol
}
