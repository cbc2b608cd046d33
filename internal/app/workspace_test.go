package app

import (
	"testing"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/core"
	"github.com/inkwell-editor/inkwell/internal/dispatch"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/input"
	"github.com/inkwell-editor/inkwell/internal/markup"
	"github.com/inkwell-editor/inkwell/internal/modehandler"
	"github.com/inkwell-editor/inkwell/internal/spans"
	"github.com/inkwell-editor/inkwell/internal/statusbar"
)

// newFocusTestApp builds just enough of an App to exercise focus and
// dispatch-context logic without a terminal.
func newFocusTestApp(t *testing.T, filePath string) *App {
	t.Helper()
	editor := core.NewEditor(buffer.NewSliceBuffer())
	engine := markup.New(markup.Config{
		Host:     editor,
		Spans:    spans.NewIndex(editor),
		Links:    editor,
		Headings: editor,
	})
	quit := make(chan struct{}, 1)
	mh := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   event.NewManager(),
		StatusBar:      statusbar.New(statusbar.DefaultConfig()),
		Markup:         engine,
		QuitSignal:     quit,
	})
	return &App{editor: editor, modeHandler: mh, focus: startPane(filePath)}
}

func TestStartPane(t *testing.T) {
	if got := startPane(""); got != PaneWelcome {
		t.Errorf("startPane(\"\") = %v, want welcome", got)
	}
	if got := startPane("notes.md"); got != PaneEditor {
		t.Errorf("startPane(\"notes.md\") = %v, want editor", got)
	}
}

func TestWelcomeFocusExposesShortcuts(t *testing.T) {
	a := newFocusTestApp(t, "")
	ctx := a.dispatchContext()
	if ctx.View.Kind != dispatch.KindEmpty {
		t.Errorf("view kind = %v, want empty", ctx.View.Kind)
	}
	if ctx.TextInputFocused {
		t.Error("welcome screen reported a focused text input")
	}
}

func TestFocusedEditorAlwaysReceivesTyping(t *testing.T) {
	// Even over an unnamed, untouched buffer a focused editor is a text
	// input: the first keystroke must insert, never run a shortcut.
	a := newFocusTestApp(t, "")
	a.focus = PaneEditor
	ctx := a.dispatchContext()
	if ctx.View.Kind != dispatch.KindNone {
		t.Errorf("view kind = %v, want none", ctx.View.Kind)
	}
	if !ctx.TextInputFocused {
		t.Error("focused editor not reported as a text input")
	}
}

func TestDismissWelcome(t *testing.T) {
	a := newFocusTestApp(t, "")
	a.dismissWelcome()
	if a.focus != PaneEditor {
		t.Errorf("focus after dismiss = %v, want editor", a.focus)
	}

	a.focus = PaneTree
	a.dismissWelcome()
	if a.focus != PaneTree {
		t.Errorf("dismiss moved focus off the tree: %v", a.focus)
	}
}
