package dispatch

import (
	"math"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/event"
)

func testKeys() config.KeysConfig {
	return config.KeysConfig{
		PromptUp:      "ctrl+p",
		PromptDown:    "ctrl+n",
		DockNextTab:   "]",
		DockPrevTab:   "[",
		CanvasPanStep: 40,
	}
}

func newTestDispatcher() *Dispatcher {
	return New(Config{Keys: testKeys()})
}

func TestPassThroughInvariant(t *testing.T) {
	// Whatever view is active, a focused text input, a missing pane, an
	// in-flight rename, or a held modifier must leave the event alone.
	tree := &fakeTree{focused: &fakeItem{path: "/notes/a.md", leaf: true}}
	scroller := &fakeScroller{}

	tests := []struct {
		name string
		ev   *tcell.EventKey
		ctx  Context
	}{
		{"text input in tree view", key('j'), Context{View: TreeView(tree), TextInputFocused: true}},
		{"text input in preview", key('g'), Context{View: PreviewView(scroller, PreviewMarkdown), TextInputFocused: true}},
		{"rename in progress", key('d'), Context{View: TreeView(tree), RenameInProgress: true}},
		{"no active pane", key('j'), Context{}},
		{"ctrl held", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModCtrl), Context{View: TreeView(tree)}},
		{"alt held", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModAlt), Context{View: TreeView(tree)}},
		{"meta held", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModMeta), Context{View: TreeView(tree)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDispatcher()
			if consumed := d.HandleKey(tt.ev, tt.ctx); consumed {
				t.Errorf("HandleKey consumed the event, want pass-through")
			}
			if len(tree.calls) != 0 {
				t.Errorf("tree mutated during pass-through: %v", tree.calls)
			}
			if len(scroller.calls) != 0 {
				t.Errorf("scroller mutated during pass-through: %v", scroller.calls)
			}
		})
	}
}

func TestPromptAliasesRedispatchArrows(t *testing.T) {
	var sent []tcell.Key
	d := New(Config{
		Keys: testKeys(),
		Redispatch: func(ev *tcell.EventKey) {
			sent = append(sent, ev.Key())
		},
	})
	ctx := Context{PromptFocused: true, TextInputFocused: true}

	if !d.HandleKey(tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl), ctx) {
		t.Error("prompt-up alias not consumed")
	}
	if !d.HandleKey(tcell.NewEventKey(tcell.KeyCtrlN, 0, tcell.ModCtrl), ctx) {
		t.Error("prompt-down alias not consumed")
	}
	if len(sent) != 2 || sent[0] != tcell.KeyUp || sent[1] != tcell.KeyDown {
		t.Errorf("redispatched keys = %v, want [Up Down]", sent)
	}
}

func TestDockTabAliases(t *testing.T) {
	dock := &fakeDock{}
	d := newTestDispatcher()
	ctx := Context{View: EmptyView(), Dock: dock}

	if !d.HandleKey(key(']'), ctx) || !d.HandleKey(key('['), ctx) {
		t.Fatal("dock aliases not consumed")
	}
	if len(dock.calls) != 2 || dock.calls[0] != "next" || dock.calls[1] != "prev" {
		t.Errorf("dock calls = %v, want [next prev]", dock.calls)
	}
}

func TestDockAliasesDoNotShadowTreeScroll(t *testing.T) {
	// With the shipped defaults, J/K in a docked tree must reach the
	// tree branch's scroll bindings, not the tab-cycle aliases.
	dock := &fakeDock{}
	tree := &fakeTree{}
	d := New(Config{Keys: config.NewDefaultConfig().Keys})
	ctx := Context{View: TreeView(tree), Dock: dock}

	if !d.HandleKey(key('J'), ctx) || !d.HandleKey(key('K'), ctx) {
		t.Fatal("tree scroll keys not consumed")
	}
	if len(dock.calls) != 0 {
		t.Errorf("dock cycled on tree scroll keys: %v", dock.calls)
	}
	if len(tree.calls) != 2 || tree.calls[0] != "scrollBy" || tree.calls[1] != "scrollBy" {
		t.Errorf("tree calls = %v, want [scrollBy scrollBy]", tree.calls)
	}
}

func TestCopyFocusedPathShortcut(t *testing.T) {
	clip := &fakeClipboard{}
	tree := &fakeTree{focused: &fakeItem{path: "/notes/a.md", leaf: true}}
	d := New(Config{Keys: testKeys(), Clipboard: clip})

	// The shortcut wins even while a text input has focus.
	ctx := Context{View: TreeView(tree), TextInputFocused: true}
	if !d.HandleKey(tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl), ctx) {
		t.Fatal("shortcut not consumed")
	}
	if len(clip.texts) != 1 || clip.texts[0] != "/notes/a.md" {
		t.Errorf("clipboard = %v, want [/notes/a.md]", clip.texts)
	}
}

func TestPropertyGuards(t *testing.T) {
	props := &fakeProperties{focused: true}
	d := newTestDispatcher()
	ctx := Context{View: EmptyView(), Properties: props}

	if !d.HandleKey(key('d'), ctx) {
		t.Error("delete-properties key not consumed")
	}
	if props.deleted != 1 {
		t.Errorf("deleted = %d, want 1", props.deleted)
	}
	// Any other key bypasses the view switch entirely.
	if d.HandleKey(key('n'), ctx) {
		t.Error("non-delete key consumed while a property is focused")
	}

	heading := &fakeHeading{}
	ctx = Context{View: EmptyView(), PropertyHeading: heading}
	if !d.HandleKey(key('h'), ctx) {
		t.Error("collapse key not consumed on heading")
	}
	if !heading.collapsed {
		t.Error("heading not collapsed")
	}
	if !d.HandleKey(key('l'), ctx) {
		t.Error("expand key not consumed on heading")
	}
	if heading.collapsed {
		t.Error("heading not expanded")
	}
}

func TestTreeNavigationBoundary(t *testing.T) {
	tree := &fakeTree{}
	d := newTestDispatcher()
	ctx := Context{View: TreeView(tree)}

	if !d.HandleKey(key('g'), ctx) || !d.HandleKey(key('G'), ctx) {
		t.Fatal("g/G not consumed")
	}
	want := []string{"first", "scrollTop", "last", "scrollBottom"}
	if len(tree.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", tree.calls, want)
	}
	for i, call := range want {
		if tree.calls[i] != call {
			t.Errorf("calls[%d] = %q, want %q", i, tree.calls[i], call)
		}
	}
}

func TestTreeCollapseOrParent(t *testing.T) {
	d := newTestDispatcher()

	expanded := &fakeItem{path: "/notes", leaf: false, collapsed: false}
	tree := &fakeTree{focused: expanded}
	d.HandleKey(key('h'), Context{View: TreeView(tree)})
	if !expanded.collapsed {
		t.Error("expanded folder not collapsed by h")
	}

	leaf := &fakeItem{path: "/notes/a.md", leaf: true}
	tree = &fakeTree{focused: leaf}
	d.HandleKey(key('h'), Context{View: TreeView(tree)})
	if len(tree.calls) != 1 || tree.calls[0] != "parent" {
		t.Errorf("calls = %v, want [parent]", tree.calls)
	}
}

func TestTreeOpenLeafClosesExplorerSidebar(t *testing.T) {
	d := newTestDispatcher()

	leaf := &fakeItem{path: "/notes/a.md", leaf: true}
	tree := &fakeTree{focused: leaf, explorer: true}
	d.HandleKey(key('l'), Context{View: TreeView(tree)})
	want := []string{"open:/notes/a.md", "closeSidebar"}
	if len(tree.calls) != 2 || tree.calls[0] != want[0] || tree.calls[1] != want[1] {
		t.Errorf("calls = %v, want %v", tree.calls, want)
	}

	// An outline pane keeps its sidebar.
	tree = &fakeTree{focused: &fakeItem{path: "/notes/a.md", leaf: true}}
	d.HandleKey(key('l'), Context{View: TreeView(tree)})
	if len(tree.calls) != 1 || tree.calls[0] != "open:/notes/a.md" {
		t.Errorf("calls = %v, want [open:/notes/a.md]", tree.calls)
	}
}

func TestTreeUnboundKeyStillConsumed(t *testing.T) {
	// The tree branch prevents default on entry, bound or not.
	tree := &fakeTree{}
	d := newTestDispatcher()
	if !d.HandleKey(key('x'), Context{View: TreeView(tree)}) {
		t.Error("unbound key in tree view not consumed")
	}
}

func TestCreateThenRenameWithCompletionSignal(t *testing.T) {
	registered := make(chan struct{})
	close(registered)
	tree := &fakeTree{
		focused:     &fakeItem{path: "/notes", leaf: false},
		createdPath: "/notes/Untitled.md",
		registered:  registered,
		knownPaths:  map[string]bool{"/notes/Untitled.md": true},
	}
	d := newTestDispatcher()

	d.HandleKey(key('a'), Context{View: TreeView(tree)})
	if len(tree.renamedPaths) != 1 || tree.renamedPaths[0] != "/notes/Untitled.md" {
		t.Errorf("renamed = %v, want the newly created file", tree.renamedPaths)
	}
}

func TestCreateThenRenamePollFallback(t *testing.T) {
	// No completion channel: the dispatcher polls until the path shows
	// up in the view index.
	tree := &fakeTree{
		focused:     &fakeItem{path: "/notes/a.md", leaf: true},
		createdPath: "/notes/Untitled.md",
		knownPaths:  map[string]bool{},
	}
	d := New(Config{Keys: testKeys(), WaitTimeout: 500 * time.Millisecond, WaitInterval: 5 * time.Millisecond})

	go func() {
		time.Sleep(20 * time.Millisecond)
		tree.registerPath("/notes/Untitled.md")
	}()
	d.HandleKey(key('A'), Context{View: TreeView(tree)})

	if tree.calls[0] != "createFolder:/notes" {
		t.Errorf("first call = %q, want createFolder in the leaf's parent", tree.calls[0])
	}
	if len(tree.renamedPaths) != 1 {
		t.Fatalf("renamed = %v, want exactly one rename after registration", tree.renamedPaths)
	}
}

func TestCreateThenRenameTimeout(t *testing.T) {
	tree := &fakeTree{
		focused:     &fakeItem{path: "/notes", leaf: false},
		createdPath: "/notes/Untitled.md",
		knownPaths:  map[string]bool{}, // never registers
	}
	d := New(Config{Keys: testKeys(), WaitTimeout: 30 * time.Millisecond, WaitInterval: 5 * time.Millisecond})

	d.HandleKey(key('a'), Context{View: TreeView(tree)})
	if len(tree.renamedPaths) != 0 {
		t.Errorf("renamed = %v, want none after timeout", tree.renamedPaths)
	}
}

func TestCanvasPanIdempotence(t *testing.T) {
	canvas := &fakeCanvas{transform: "translate(120.5,-34.25) scale(0.75)"}
	d := newTestDispatcher()
	ctx := Context{View: CanvasView(canvas)}

	for i := 0; i < 4; i++ {
		d.HandleKey(key('J'), ctx)
	}
	for i := 0; i < 4; i++ {
		d.HandleKey(key('K'), ctx)
	}

	_, y, scale, err := ParseTransform(canvas.transform)
	if err != nil {
		t.Fatalf("ParseTransform: %v", err)
	}
	if math.Abs(y-(-34.25)) > 1e-9 {
		t.Errorf("vertical component = %v, want -34.25 after symmetric pans", y)
	}
	if math.Abs(scale-0.75) > 1e-9 {
		t.Errorf("scale = %v, want untouched 0.75", scale)
	}
}

func TestCanvasAutoSelectBeforeMove(t *testing.T) {
	canvas := &fakeCanvas{transform: "translate(0,0) scale(1)"}
	d := newTestDispatcher()
	ctx := Context{View: CanvasView(canvas)}

	d.HandleKey(key('j'), ctx)
	if len(canvas.calls) != 1 || canvas.calls[0] != "selectNearest" {
		t.Fatalf("calls = %v, want [selectNearest]", canvas.calls)
	}
	d.HandleKey(key('j'), ctx)
	if canvas.calls[1] != "move" {
		t.Errorf("second key = %q, want move once selected", canvas.calls[1])
	}
}

func TestPreviewKeys(t *testing.T) {
	tests := []struct {
		name         string
		key          rune
		mode         PreviewMode
		wantConsumed bool
		wantCall     string
	}{
		{"scroll down", 'j', PreviewMarkdown, true, "scrollBy"},
		{"page down", 'f', PreviewPDF, true, "pageDown"},
		{"to top", 'g', PreviewKanban, true, "top"},
		{"to bottom", 'G', PreviewTable, true, "bottom"},
		{"edit mode on markdown", 'q', PreviewMarkdown, true, "editMode"},
		{"edit mode refused on pdf", 'q', PreviewPDF, false, ""},
		{"zoom on pdf", '+', PreviewPDF, true, "zoomIn"},
		{"zoom refused on markdown", '+', PreviewMarkdown, false, ""},
		{"history back", '[', PreviewMarkdown, true, "back"},
		{"unbound key passes", 'x', PreviewMarkdown, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scroller := &fakeScroller{}
			d := newTestDispatcher()
			consumed := d.HandleKey(key(tt.key), Context{View: PreviewView(scroller, tt.mode)})
			if consumed != tt.wantConsumed {
				t.Errorf("consumed = %v, want %v", consumed, tt.wantConsumed)
			}
			if tt.wantCall == "" {
				if len(scroller.calls) != 0 {
					t.Errorf("calls = %v, want none", scroller.calls)
				}
				return
			}
			if len(scroller.calls) != 1 || scroller.calls[0] != tt.wantCall {
				t.Errorf("calls = %v, want [%s]", scroller.calls, tt.wantCall)
			}
		})
	}
}

func TestEmptyViewCommands(t *testing.T) {
	commander := &fakeCommander{}
	d := New(Config{Keys: testKeys(), Commander: commander})
	ctx := Context{View: EmptyView()}

	if !d.HandleKey(key('n'), ctx) {
		t.Error("bound empty-view key not consumed")
	}
	if d.HandleKey(key('x'), ctx) {
		t.Error("unbound empty-view key consumed")
	}
	if len(commander.ids) != 1 || commander.ids[0] != "file:new" {
		t.Errorf("commands = %v, want [file:new]", commander.ids)
	}
}

func TestSubscriptionLifecycle(t *testing.T) {
	tree := &fakeTree{}
	events := event.NewManager()
	d := newTestDispatcher()

	sub := d.Start(events, func() Context {
		return Context{View: TreeView(tree)}
	})

	events.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: key('j')})
	if len(tree.calls) != 1 {
		t.Fatalf("calls after dispatch = %v, want one navigation", tree.calls)
	}

	sub.Stop()
	events.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: key('j')})
	if len(tree.calls) != 1 {
		t.Errorf("calls after Stop = %v, want no new navigation", tree.calls)
	}
}
