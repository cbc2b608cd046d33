// internal/markup/engine.go
package markup

import (
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/internal/types"
)

// Host provides the document-editing primitives the engine needs. All
// column values are rune indices.
type Host interface {
	CurrentSelection() types.Selection
	LineText(line int) (string, error)
	ExtractRange(r types.Range) (string, error)
	ReplaceRange(r types.Range, text string) (types.Position, error)
	SetCursor(pos types.Position)
	SetSelection(r types.Range)
	WordRangeAt(pos types.Position) (types.Range, bool)
}

// ConstructKind distinguishes how a detected construct was delimited.
type ConstructKind int

const (
	// KindSpan is a construct detected via rendered spans with distinct
	// formatting sub-spans around a content span.
	KindSpan ConstructKind = iota
	// KindComment is a construct rendered as one opaque span whose
	// delimiters were stripped by literal marker match.
	KindComment
)

// Construct describes an inline construct enclosing a position: its full
// extent including delimiters and the extent of the inner content.
type Construct struct {
	Kind    ConstructKind
	Range   types.Range // formatting start through formatting end
	Content types.Range // inner content only
}

// SpanSource answers "is this position inside construct X" against the
// rendered output. Implementations may back this with a live span index or
// a fresh scan; the engine only depends on this lookup.
type SpanSource interface {
	FindEnclosingConstruct(pos types.Position, style string) (Construct, bool)
}

// LinkInserter is the host's native link-insertion action, invoked when
// the caret is not inside an existing link.
type LinkInserter interface {
	InsertLink() error
}

// HeadingApplier applies a heading level to a line. Level 0 removes any
// heading prefix.
type HeadingApplier interface {
	ApplyHeading(line, level int) error
}

// Engine toggles inline markup constructs at the cursor or selection.
type Engine struct {
	host     Host
	spans    SpanSource
	links    LinkInserter
	headings HeadingApplier
}

// Config bundles the dependencies for New.
type Config struct {
	Host     Host
	Spans    SpanSource
	Links    LinkInserter
	Headings HeadingApplier
}

// New creates a markup engine. Host and Spans are required.
func New(cfg Config) *Engine {
	if cfg.Host == nil {
		panic("markup: Engine requires a Host")
	}
	if cfg.Spans == nil {
		panic("markup: Engine requires a SpanSource")
	}
	return &Engine{
		host:     cfg.Host,
		spans:    cfg.Spans,
		links:    cfg.Links,
		headings: cfg.Headings,
	}
}

// ToggleInlineStyle collapses the construct for style enclosing the caret,
// or wraps the selection/word under the caret in the style's delimiters.
//
// An explicit non-empty selection is always wrapped; existing markup
// detection only runs for a caret.
func (e *Engine) ToggleInlineStyle(style string) error {
	pair, ok := Delimiters(style)
	if !ok {
		return nil
	}

	sel := e.host.CurrentSelection()
	if !sel.IsCaret() {
		return e.wrapRange(sel.Range, pair)
	}

	caret := sel.Range.From
	if construct, found := e.spans.FindEnclosingConstruct(caret, style); found {
		return e.collapse(construct, caret)
	}
	return e.wrapWordOrCaret(caret, pair)
}

// collapse replaces a construct's full extent with its inner content,
// keeping the caret at the same offset relative to the content start.
func (e *Engine) collapse(construct Construct, caret types.Position) error {
	content, err := e.host.ExtractRange(construct.Content)
	if err != nil {
		return err
	}

	// Offset inside the content, not the line: the removed delimiter
	// lengths must not drag the caret with them.
	offset := 0
	if construct.Content.From.Before(caret) || caret == construct.Content.To {
		if caret.Line == construct.Content.From.Line {
			offset = caret.Col - construct.Content.From.Col
		} else {
			offset = caret.Col
		}
	}
	contentLen := utf8.RuneCountInString(content)
	if offset > contentLen {
		offset = contentLen
	}
	if offset < 0 {
		offset = 0
	}

	if _, err := e.host.ReplaceRange(construct.Range, content); err != nil {
		return err
	}
	e.host.SetCursor(types.Position{
		Line: construct.Range.From.Line,
		Col:  construct.Range.From.Col + offset,
	})
	return nil
}

// wrapRange surrounds the exact selected text with the delimiter pair.
func (e *Engine) wrapRange(r types.Range, pair DelimiterPair) error {
	text, err := e.host.ExtractRange(r)
	if err != nil {
		return err
	}
	end, err := e.host.ReplaceRange(r, pair.Prefix+text+pair.Suffix)
	if err != nil {
		return err
	}
	e.host.SetCursor(end)
	return nil
}

// wrapWordOrCaret wraps the word under the caret, or inserts an empty
// delimiter pair when no word exists. Either way the caret keeps its
// semantic position: shifted right by exactly the prefix length.
func (e *Engine) wrapWordOrCaret(caret types.Position, pair DelimiterPair) error {
	target := types.Range{From: caret, To: caret}
	text := ""
	if wr, ok := e.host.WordRangeAt(caret); ok {
		var err error
		text, err = e.host.ExtractRange(wr)
		if err != nil {
			return err
		}
		target = wr
	}
	if _, err := e.host.ReplaceRange(target, pair.Prefix+text+pair.Suffix); err != nil {
		return err
	}
	e.host.SetCursor(types.Position{
		Line: caret.Line,
		Col:  caret.Col + utf8.RuneCountInString(pair.Prefix),
	})
	return nil
}

// ToggleHeading reads the current line and asks the host to set a heading
// level: 0 when no level was given or the line already carries the
// requested level, the requested level otherwise.
func (e *Engine) ToggleHeading(level int) error {
	if e.headings == nil {
		return nil
	}
	caret := e.host.CurrentSelection().Range.From
	if level <= 0 {
		return e.headings.ApplyHeading(caret.Line, 0)
	}
	line, err := e.host.LineText(caret.Line)
	if err != nil {
		return err
	}
	if hasHeadingPrefix(line, level) {
		return e.headings.ApplyHeading(caret.Line, 0)
	}
	return e.headings.ApplyHeading(caret.Line, level)
}

// hasHeadingPrefix reports whether line starts with exactly level '#'
// runes followed by a space.
func hasHeadingPrefix(line string, level int) bool {
	if len(line) <= level {
		return false
	}
	for i := 0; i < level; i++ {
		if line[i] != '#' {
			return false
		}
	}
	return line[level] == ' '
}
