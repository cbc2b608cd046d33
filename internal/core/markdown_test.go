package core

import (
	"testing"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/types"
)

func newTestEditor(t *testing.T, content string) *Editor {
	t.Helper()
	buf := buffer.NewSliceBuffer()
	if content != "" {
		if _, err := buf.Insert(types.Position{Line: 0, Col: 0}, []byte(content)); err != nil {
			t.Fatalf("seed buffer: %v", err)
		}
	}
	return NewEditor(buf)
}

func lineText(t *testing.T, e *Editor, line int) string {
	t.Helper()
	text, err := e.LineText(line)
	if err != nil {
		t.Fatalf("LineText(%d): %v", line, err)
	}
	return text
}

func TestInsertLinkAtCaret(t *testing.T) {
	e := newTestEditor(t, "see  here")
	e.SetCursor(types.Position{Line: 0, Col: 4})

	if err := e.InsertLink(); err != nil {
		t.Fatalf("InsertLink: %v", err)
	}

	if got := lineText(t, e, 0); got != "see []() here" {
		t.Errorf("line = %q, want %q", got, "see []() here")
	}
	// Cursor inside the brackets, ready for the label
	if cur := e.GetCursor(); cur.Col != 5 {
		t.Errorf("cursor col = %d, want 5", cur.Col)
	}
}

func TestInsertLinkWrapsSelection(t *testing.T) {
	e := newTestEditor(t, "read the docs now")
	e.SetSelection(types.Range{
		From: types.Position{Line: 0, Col: 5},
		To:   types.Position{Line: 0, Col: 13},
	})

	if err := e.InsertLink(); err != nil {
		t.Fatalf("InsertLink: %v", err)
	}

	if got := lineText(t, e, 0); got != "read [the docs]() now" {
		t.Errorf("line = %q, want %q", got, "read [the docs]() now")
	}
	// Cursor inside the empty parens, ready for the URL
	if cur := e.GetCursor(); cur.Col != 16 {
		t.Errorf("cursor col = %d, want 16", cur.Col)
	}
	if _, _, ok := e.GetSelection(); ok {
		t.Error("selection should be cleared after wrapping")
	}
}

func TestApplyHeading(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		level int
		want  string
	}{
		{"add level two", "Title", 2, "## Title"},
		{"replace level", "# Title", 3, "### Title"},
		{"strip heading", "## Title", 0, "Title"},
		{"same level rewritten", "## Title", 2, "## Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(t, tt.line)
			if err := e.ApplyHeading(0, tt.level); err != nil {
				t.Fatalf("ApplyHeading: %v", err)
			}
			if got := lineText(t, e, 0); got != tt.want {
				t.Errorf("line = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestApplyHeadingKeepsCursorInContent(t *testing.T) {
	e := newTestEditor(t, "# Title")
	e.SetCursor(types.Position{Line: 0, Col: 4}) // On the middle of Title

	if err := e.ApplyHeading(0, 3); err != nil {
		t.Fatalf("ApplyHeading: %v", err)
	}

	if got := lineText(t, e, 0); got != "### Title" {
		t.Fatalf("line = %q, want %q", got, "### Title")
	}
	// Prefix grew by two columns; the cursor follows its character
	if cur := e.GetCursor(); cur.Col != 6 {
		t.Errorf("cursor col = %d, want 6", cur.Col)
	}
}

func TestApplyHeadingRejectsBadLevel(t *testing.T) {
	e := newTestEditor(t, "Title")
	if err := e.ApplyHeading(0, 7); err != nil {
		t.Fatalf("ApplyHeading(7) should be a no-op, got %v", err)
	}
	if got := lineText(t, e, 0); got != "Title" {
		t.Errorf("line = %q, want unchanged", got)
	}
}

func TestHeadingPrefixLen(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"# x", 2},
		{"###### x", 7},
		{"####### x", 0}, // Seven hashes is not a heading
		{"#x", 0},
		{"x # y", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := headingPrefixLen(tt.line); got != tt.want {
			t.Errorf("headingPrefixLen(%q) = %d, want %d", tt.line, got, tt.want)
		}
	}
}
