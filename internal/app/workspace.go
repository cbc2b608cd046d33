// internal/app/workspace.go
package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/dispatch"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/modehandler"
	"github.com/inkwell-editor/inkwell/internal/types"
	"github.com/inkwell-editor/inkwell/internal/views/canvas"
	"github.com/inkwell-editor/inkwell/internal/views/filetree"
	"github.com/inkwell-editor/inkwell/internal/views/outline"
	"github.com/inkwell-editor/inkwell/internal/views/preview"
)

// Pane identifies the workspace surface holding keyboard focus.
type Pane int

const (
	PaneEditor Pane = iota
	PaneTree
	PaneOutline
	PaneCanvas
	PanePreview
	// PaneWelcome is the start screen shown for an unnamed, untouched
	// buffer. Its single-key shortcuts are live only while it holds
	// focus; a focused editor always receives typing.
	PaneWelcome
)

func (p Pane) String() string {
	switch p {
	case PaneTree:
		return "tree"
	case PaneOutline:
		return "outline"
	case PaneCanvas:
		return "canvas"
	case PanePreview:
		return "preview"
	case PaneWelcome:
		return "welcome"
	default:
		return "editor"
	}
}

// startPane picks the initial focus: the welcome screen when the app
// opens without a file, otherwise the editor.
func startPane(filePath string) Pane {
	if filePath == "" {
		return PaneWelcome
	}
	return PaneEditor
}

// dismissWelcome hands focus to the editor once the scratch buffer is
// actually being typed into.
func (a *App) dismissWelcome() {
	if a.focus == PaneWelcome {
		a.focus = PaneEditor
	}
}

// initWorkspace creates the secondary pane models.
func (a *App) initWorkspace() error {
	tree, err := filetree.New(filetree.Config{
		Root:         a.workspaceRoot,
		EventManager: a.eventManager,
		OpenFile:     a.openFile,
		StartRename:  a.startRename,
		OnClose:      a.closeSidebar,
	})
	if err != nil {
		return fmt.Errorf("file tree init failed: %w", err)
	}
	a.fileTree = tree

	a.outline = outline.New(outline.Config{
		Source: a.editor,
		OnOpen: a.jumpToLine,
		OnClose: a.closeSidebar,
	})

	a.canvas = canvas.New(canvas.Config{
		OnEdit: func(node *canvas.Node) {
			a.statusBar.SetTemporaryMessage("Editing node %q", node.Text)
		},
		OnSearch: func() {
			a.statusBar.SetTemporaryMessage("Canvas search not available")
		},
	})

	a.preview = preview.New(preview.Config{
		EventManager: a.eventManager,
		OnToggleEdit: func() { a.focusPane(PaneEditor) },
		OnSearch:     func() { a.statusBar.SetTemporaryMessage("Preview search not available") },
		OpenPath:     a.loadPreview,
	})

	return nil
}

// initDispatcher creates the key dispatcher and attaches it to the bus.
// It runs before the mode handler's own key handling: a keystroke the
// dispatcher consumes never reaches the editor.
func (a *App) initDispatcher() {
	a.dispatcher = dispatch.New(dispatch.Config{
		Keys:      config.Get().Keys,
		Clipboard: a.editor.GetClipboardManager(),
		Commander: commanderFunc(a.runCommand),
		Redispatch: func(ev *tcell.EventKey) {
			if err := a.tuiManager.GetScreen().PostEvent(ev); err != nil {
				logger.Warnf("App: redispatch failed: %v", err)
			}
		},
		Notify: func(format string, args ...interface{}) {
			a.statusBar.SetTemporaryMessage(format, args...)
			a.requestRedraw()
		},
	})
	a.dispatcherSub = a.dispatcher.Start(a.eventManager, a.dispatchContext)
}

// commanderFunc adapts a func to dispatch.Commander.
type commanderFunc func(id string) error

func (f commanderFunc) RunCommand(id string) error { return f(id) }

// runCommand executes a registered named command from a dispatcher
// shortcut. The identifier's first field is the command name, the rest
// are arguments.
func (a *App) runCommand(id string) error {
	fields := strings.Fields(id)
	if len(fields) == 0 {
		return fmt.Errorf("empty command")
	}
	return a.modeHandler.RunCommand(fields[0], fields[1:])
}

// dispatchContext reads the ambient focus state for one keystroke.
func (a *App) dispatchContext() dispatch.Context {
	mode := a.modeHandler.GetCurrentMode()
	ctx := dispatch.Context{
		PromptFocused:    mode == modehandler.ModeCommand || mode == modehandler.ModeFind,
		TextInputFocused: a.focus == PaneEditor || mode != modehandler.ModeNormal,
		RenameInProgress: a.renamePending != "",
	}

	switch a.focus {
	case PaneTree:
		ctx.View = dispatch.TreeView(a.fileTree)
		ctx.Dock = a
	case PaneOutline:
		ctx.View = dispatch.TreeView(a.outline)
		ctx.Dock = a
	case PaneCanvas:
		ctx.View = dispatch.CanvasView(a.canvas)
	case PanePreview:
		ctx.View = dispatch.PreviewView(a.preview, dispatch.PreviewMarkdown)
	case PaneWelcome:
		ctx.View = dispatch.EmptyView()
	}
	return ctx
}

// --- dispatch.DockControl (sidebar tabs: tree <-> outline) ---

func (a *App) NextTab() { a.cycleSidebarTab() }
func (a *App) PrevTab() { a.cycleSidebarTab() }

func (a *App) cycleSidebarTab() {
	if a.sidebarTab == PaneTree {
		a.sidebarTab = PaneOutline
	} else {
		a.sidebarTab = PaneTree
	}
	if a.focus == PaneTree || a.focus == PaneOutline {
		a.focusPane(a.sidebarTab)
	}
	a.requestRedraw()
}

// focusPane moves keyboard focus to a pane, refreshing its model.
func (a *App) focusPane(p Pane) {
	if p == PaneTree || p == PaneOutline {
		a.sidebarVisible = true
		a.sidebarTab = p
		if p == PaneTree {
			if err := a.fileTree.Refresh(); err != nil {
				logger.Warnf("App: tree refresh failed: %v", err)
			}
		} else {
			a.outline.Refresh(a.editor.GetBuffer().FilePath())
		}
	}
	if p == PanePreview {
		a.renderPreview()
	}
	a.focus = p
	a.eventManager.Dispatch(event.TypeViewFocusChanged, event.ViewFocusChangedData{ViewKind: p.String()})
	a.requestRedraw()
}

// closeSidebar hides the sidebar and returns focus to the editor.
func (a *App) closeSidebar() {
	a.sidebarVisible = false
	a.focusPane(PaneEditor)
}

// toggleTree shows the file tree, or hides the sidebar when it is
// already focused.
func (a *App) toggleTree() {
	if a.sidebarVisible && a.focus == PaneTree {
		a.closeSidebar()
		return
	}
	a.focusPane(PaneTree)
}

// openFile loads a file into the editor pane. newTab is accepted for
// interface compatibility; a single-buffer editor opens in place.
func (a *App) openFile(path string, newTab bool) error {
	if a.editor.GetBuffer().IsModified() {
		a.statusBar.SetTemporaryMessage("Unsaved changes; save before opening another file")
		return nil
	}
	if err := a.editor.GetBuffer().Load(path); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	a.filePath = path
	a.editor.SetCursor(types.Position{Line: 0, Col: 0})
	a.editor.ClearSelection()
	a.eventManager.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	a.focusPane(PaneEditor)
	return nil
}

// startRename records a rename in flight. While set, the dispatcher
// passes all keys through so typing the new name reaches the host.
func (a *App) startRename(path string) error {
	a.renamePending = path
	a.statusBar.SetTemporaryMessage("Rename %s: use :rename <newname>", path)
	return nil
}

// jumpToLine moves the editor cursor to a line and focuses the editor.
func (a *App) jumpToLine(line int) error {
	a.editor.SetCursor(types.Position{Line: line, Col: 0})
	a.focusPane(PaneEditor)
	return nil
}

// renderPreview mirrors the current buffer into the preview pane.
func (a *App) renderPreview() {
	buf := a.editor.GetBuffer()
	lines := make([]string, 0, buf.LineCount())
	for i := 0; i < buf.LineCount(); i++ {
		lineBytes, err := buf.Line(i)
		if err != nil {
			break
		}
		lines = append(lines, string(lineBytes))
	}
	a.preview.SetContent(buf.FilePath(), lines)
	w, h := a.tuiManager.Size()
	a.preview.SetViewSize(w, h-config.Get().Editor.StatusBarHeight)
}

// loadPreview loads a document from disk into the preview (history
// navigation lands here for paths other than the open buffer).
func (a *App) loadPreview(path string) error {
	if path == a.editor.GetBuffer().FilePath() {
		a.renderPreview()
		return nil
	}
	lines, err := readLines(path)
	if err != nil {
		return err
	}
	a.preview.SetContent(path, lines)
	return nil
}

// readLines reads a file into lines for the preview pane.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n"), nil
}
