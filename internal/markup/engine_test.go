package markup_test

import (
	"testing"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/core"
	"github.com/inkwell-editor/inkwell/internal/markup"
	"github.com/inkwell-editor/inkwell/internal/spans"
	"github.com/inkwell-editor/inkwell/internal/types"
)

type linkRecorder struct {
	calls int
}

func (r *linkRecorder) InsertLink() error {
	r.calls++
	return nil
}

type headingRecorder struct {
	line  int
	level int
	calls int
}

func (r *headingRecorder) ApplyHeading(line, level int) error {
	r.line = line
	r.level = level
	r.calls++
	return nil
}

type fixture struct {
	editor   *core.Editor
	engine   *markup.Engine
	links    *linkRecorder
	headings *headingRecorder
}

func newFixture(t *testing.T, content string) *fixture {
	t.Helper()
	buf := buffer.NewSliceBuffer()
	if content != "" {
		if _, err := buf.Insert(types.Position{Line: 0, Col: 0}, []byte(content)); err != nil {
			t.Fatalf("seeding buffer: %v", err)
		}
	}
	editor := core.NewEditor(buf)
	links := &linkRecorder{}
	headings := &headingRecorder{}
	engine := markup.New(markup.Config{
		Host:     editor,
		Spans:    spans.NewIndex(editor),
		Links:    links,
		Headings: headings,
	})
	return &fixture{editor: editor, engine: engine, links: links, headings: headings}
}

func (f *fixture) line(t *testing.T, n int) string {
	t.Helper()
	text, err := f.editor.LineText(n)
	if err != nil {
		t.Fatalf("LineText(%d): %v", n, err)
	}
	return text
}

func TestToggleInlineStyleCollapse(t *testing.T) {
	f := newFixture(t, "a **bold** b")
	f.editor.SetCursor(types.Position{Line: 0, Col: 5}) // on 'o'

	if err := f.engine.ToggleInlineStyle(markup.StyleStrong); err != nil {
		t.Fatalf("ToggleInlineStyle: %v", err)
	}
	if got := f.line(t, 0); got != "a bold b" {
		t.Errorf("line = %q, want %q", got, "a bold b")
	}
	// Offset relative to the content start is preserved: 'o' is one rune
	// past "bold"'s start in both versions.
	if got := f.editor.GetCursor(); got != (types.Position{Line: 0, Col: 3}) {
		t.Errorf("cursor = %v, want {0 3}", got)
	}
}

func TestToggleInlineStyleRoundTrip(t *testing.T) {
	f := newFixture(t, "hello world")
	f.editor.SetCursor(types.Position{Line: 0, Col: 2})

	if err := f.engine.ToggleInlineStyle(markup.StyleStrong); err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if got := f.line(t, 0); got != "**hello** world" {
		t.Fatalf("after wrap = %q, want %q", got, "**hello** world")
	}
	if got := f.editor.GetCursor(); got != (types.Position{Line: 0, Col: 4}) {
		t.Errorf("cursor after wrap = %v, want {0 4}", got)
	}

	if err := f.engine.ToggleInlineStyle(markup.StyleStrong); err != nil {
		t.Fatalf("collapse: %v", err)
	}
	if got := f.line(t, 0); got != "hello world" {
		t.Errorf("after collapse = %q, want original %q", got, "hello world")
	}
	if got := f.editor.GetCursor(); got != (types.Position{Line: 0, Col: 2}) {
		t.Errorf("cursor after collapse = %v, want {0 2}", got)
	}
}

func TestToggleInlineStyleEmptyCaretNoWord(t *testing.T) {
	f := newFixture(t, "")
	f.editor.SetCursor(types.Position{Line: 0, Col: 0})

	if err := f.engine.ToggleInlineStyle(markup.StyleEm); err != nil {
		t.Fatalf("ToggleInlineStyle: %v", err)
	}
	if got := f.line(t, 0); got != "**" {
		t.Errorf("line = %q, want empty delimiter pair %q", got, "**")
	}
	if got := f.editor.GetCursor(); got != (types.Position{Line: 0, Col: 1}) {
		t.Errorf("cursor = %v, want between the delimiters at {0 1}", got)
	}
}

func TestToggleInlineStyleSelectionAlwaysWraps(t *testing.T) {
	// An explicit selection over literal "**x**" must double-wrap, never
	// collapse: detection only runs for carets.
	f := newFixture(t, "**x**")
	f.editor.SetSelection(types.Range{
		From: types.Position{Line: 0, Col: 0},
		To:   types.Position{Line: 0, Col: 5},
	})

	if err := f.engine.ToggleInlineStyle(markup.StyleStrong); err != nil {
		t.Fatalf("ToggleInlineStyle: %v", err)
	}
	if got := f.line(t, 0); got != "****x****" {
		t.Errorf("line = %q, want double-wrapped %q", got, "****x****")
	}
}

func TestToggleInlineStyleCommentCollapse(t *testing.T) {
	f := newFixture(t, "x <!--note--> y")
	f.editor.SetCursor(types.Position{Line: 0, Col: 7})

	if err := f.engine.ToggleInlineStyle(markup.StyleComment); err != nil {
		t.Fatalf("ToggleInlineStyle: %v", err)
	}
	if got := f.line(t, 0); got != "x note y" {
		t.Errorf("line = %q, want %q", got, "x note y")
	}
	if got := f.editor.GetCursor(); got != (types.Position{Line: 0, Col: 3}) {
		t.Errorf("cursor = %v, want {0 3}", got)
	}
}

func TestToggleTagCollapseCaretPlacement(t *testing.T) {
	// Caret anywhere on the construct, trailing boundary included,
	// collapses with the caret clamped into the remaining content.
	const content = "a <b>bold</b> c" // construct spans cols 2..13, content 5..8

	tests := []struct {
		name    string
		caret   int
		wantCol int
	}{
		{"on opening angle", 2, 2},
		{"inside opening tag", 4, 2},
		{"content start", 5, 2},
		{"inside content", 7, 4},
		{"content end", 9, 6},
		{"inside closing tag", 11, 6},
		{"trailing boundary", 13, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, content)
			f.editor.SetCursor(types.Position{Line: 0, Col: tt.caret})

			if err := f.engine.ToggleTag("b"); err != nil {
				t.Fatalf("ToggleTag: %v", err)
			}
			if got := f.line(t, 0); got != "a bold c" {
				t.Errorf("line = %q, want %q", got, "a bold c")
			}
			if got := f.editor.GetCursor(); got != (types.Position{Line: 0, Col: tt.wantCol}) {
				t.Errorf("cursor = %v, want {0 %d}", got, tt.wantCol)
			}
		})
	}
}

func TestToggleTagPastConstructWraps(t *testing.T) {
	f := newFixture(t, "a <b>bold</b> c")
	f.editor.SetCursor(types.Position{Line: 0, Col: 14}) // on 'c', past the pair

	if err := f.engine.ToggleTag("b"); err != nil {
		t.Fatalf("ToggleTag: %v", err)
	}
	if got := f.line(t, 0); got != "a <b>bold</b> <b>c</b>" {
		t.Errorf("line = %q, want %q", got, "a <b>bold</b> <b>c</b>")
	}
}

func TestToggleTagSingleSidedIsNotACollapse(t *testing.T) {
	// A lone opening tag must fall through to wrap.
	f := newFixture(t, "<b>bold")
	f.editor.SetCursor(types.Position{Line: 0, Col: 4})

	if err := f.engine.ToggleTag("b"); err != nil {
		t.Fatalf("ToggleTag: %v", err)
	}
	if got := f.line(t, 0); got != "<b><b>bold</b>" {
		t.Errorf("line = %q, want wrapped word %q", got, "<b><b>bold</b>")
	}
}

func TestToggleLinkCollapseThenInsertPath(t *testing.T) {
	f := newFixture(t, "[label](http://x)")
	f.editor.SetCursor(types.Position{Line: 0, Col: 3}) // on 'b'

	if err := f.engine.ToggleLink(); err != nil {
		t.Fatalf("first ToggleLink: %v", err)
	}
	if got := f.line(t, 0); got != "label" {
		t.Fatalf("line = %q, want %q", got, "label")
	}
	if got := f.editor.GetCursor(); got != (types.Position{Line: 0, Col: 2}) {
		t.Errorf("cursor = %v, want {0 2}", got)
	}
	if f.links.calls != 0 {
		t.Errorf("InsertLink called %d times during collapse, want 0", f.links.calls)
	}

	// Caret now sits in plain text: the engine selects the word and
	// hands off to the host instead of re-wrapping.
	if err := f.engine.ToggleLink(); err != nil {
		t.Fatalf("second ToggleLink: %v", err)
	}
	if got := f.line(t, 0); got != "label" {
		t.Errorf("line mutated to %q on insert path, want untouched %q", got, "label")
	}
	if f.links.calls != 1 {
		t.Errorf("InsertLink calls = %d, want 1", f.links.calls)
	}
	start, end, ok := f.editor.GetSelection()
	if !ok {
		t.Fatal("expected word selection before host insert")
	}
	if start != (types.Position{Line: 0, Col: 0}) || end != (types.Position{Line: 0, Col: 5}) {
		t.Errorf("selection = %v..%v, want {0 0}..{0 5}", start, end)
	}
}

func TestToggleLinkWiki(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		caret    int
		wantLine string
		wantCol  int
	}{
		{"plain target", "[[target]]", 4, "target", 2},
		{"alias preferred", "[[target|alias]]", 10, "alias", 5},
		{"caret on brackets", "[[target]]", 1, "target", 0},
		{"trailing boundary", "[[target]]", 10, "target", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.content)
			f.editor.SetCursor(types.Position{Line: 0, Col: tt.caret})

			if err := f.engine.ToggleLink(); err != nil {
				t.Fatalf("ToggleLink: %v", err)
			}
			if got := f.line(t, 0); got != tt.wantLine {
				t.Errorf("line = %q, want %q", got, tt.wantLine)
			}
			if got := f.editor.GetCursor(); got != (types.Position{Line: 0, Col: tt.wantCol}) {
				t.Errorf("cursor = %v, want {0 %d}", got, tt.wantCol)
			}
		})
	}
}

func TestToggleHeading(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		level     int
		wantLevel int
	}{
		{"set new level", "title", 2, 2},
		{"same level unsets", "## title", 2, 0},
		{"different level switches", "## title", 3, 3},
		{"deeper prefix is a different level", "### title", 2, 2},
		{"zero always unsets", "## title", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.content)
			f.editor.SetCursor(types.Position{Line: 0, Col: 0})

			if err := f.engine.ToggleHeading(tt.level); err != nil {
				t.Fatalf("ToggleHeading: %v", err)
			}
			if f.headings.calls != 1 {
				t.Fatalf("ApplyHeading calls = %d, want 1", f.headings.calls)
			}
			if f.headings.level != tt.wantLevel {
				t.Errorf("requested level = %d, want %d", f.headings.level, tt.wantLevel)
			}
		})
	}
}

func TestToggleInlineStyleUnknownStyleIsNoop(t *testing.T) {
	f := newFixture(t, "text")
	f.editor.SetCursor(types.Position{Line: 0, Col: 1})

	if err := f.engine.ToggleInlineStyle("no-such-style"); err != nil {
		t.Fatalf("ToggleInlineStyle: %v", err)
	}
	if got := f.line(t, 0); got != "text" {
		t.Errorf("line = %q, want untouched %q", got, "text")
	}
}
