// internal/app/ui.go
package app

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/modehandler"
	"github.com/inkwell-editor/inkwell/internal/render"
	"github.com/inkwell-editor/inkwell/internal/views/canvas"
)

// sidebarWidth is the column width of the tree/outline dock.
const sidebarWidth = 32

// editorWidth returns the columns left for the editor pane.
func (a *App) editorWidth(screenWidth int) int {
	if a.sidebarVisible && screenWidth > sidebarWidth*2 {
		return screenWidth - sidebarWidth
	}
	return screenWidth
}

// draw repaints the whole screen: main pane, sidebar, status bar.
func (a *App) draw() {
	a.updateStatusBarContent()

	activeTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	a.tuiManager.Clear()

	switch a.focus {
	case PaneCanvas:
		a.drawCanvas(screen, width, height, activeTheme.GetStyle("Default"), activeTheme.GetStyle("Selection"))
	case PanePreview:
		a.drawPreview(screen, width, height, activeTheme.GetStyle("Default"))
	case PaneWelcome:
		a.drawWelcome(screen, width, height, activeTheme.GetStyle("Default"))
	default:
		render.Buffer(a.tuiManager, a.editor, a.spanIndex, activeTheme)
		render.Cursor(a.tuiManager, a.editor)
	}

	if a.sidebarVisible && width > sidebarWidth*2 {
		a.drawSidebar(screen, width-sidebarWidth, width, height, activeTheme.GetStyle("Default"), activeTheme.GetStyle("Selection"))
	}

	a.statusBar.Draw(screen, width, height, activeTheme)
	a.tuiManager.Show()
}

// drawSidebar renders the tree or outline dock on the right edge.
func (a *App) drawSidebar(screen tcell.Screen, x0, x1, height int, base, focused tcell.Style) {
	viewHeight := height - config.Get().Editor.StatusBarHeight

	var rows []sidebarRow
	if a.sidebarTab == PaneTree {
		focusPath := ""
		if item, ok := a.fileTree.Focused(); ok {
			focusPath = item.Path()
		}
		for _, n := range a.fileTree.Visible() {
			marker := "  "
			if !n.IsLeaf() {
				marker = "- "
				if n.Collapsed() {
					marker = "+ "
				}
			}
			rows = append(rows, sidebarRow{
				text:    marker + n.Name(),
				focused: n.Path() == focusPath,
			})
		}
	} else {
		focusPath := ""
		if item, ok := a.outline.Focused(); ok {
			focusPath = item.Path()
		}
		for _, it := range a.outline.Visible() {
			rows = append(rows, sidebarRow{
				text:    strings.Repeat("  ", it.Depth()) + it.Name(),
				focused: it.Path() == focusPath,
			})
		}
	}

	scroll := a.sidebarScroll()
	for y := 0; y < viewHeight; y++ {
		idx := y + scroll
		text := ""
		style := base
		if idx >= 0 && idx < len(rows) {
			text = rows[idx].text
			if rows[idx].focused {
				style = focused
			}
		}
		drawClipped(screen, x0, y, x1, text, style)
	}
}

type sidebarRow struct {
	text    string
	focused bool
}

func (a *App) sidebarScroll() int {
	if a.sidebarTab == PaneTree {
		return a.fileTree.ScrollOffset()
	}
	return a.outline.ScrollOffset()
}

// drawPreview renders the read-only preview pane.
func (a *App) drawPreview(screen tcell.Screen, width, height int, base tcell.Style) {
	viewHeight := height - config.Get().Editor.StatusBarHeight
	offsetY, offsetX := a.preview.Viewport()
	lines := a.preview.Lines()

	for y := 0; y < viewHeight; y++ {
		idx := y + offsetY
		text := ""
		if idx >= 0 && idx < len(lines) {
			line := lines[idx]
			if offsetX < len(line) {
				text = line[offsetX:]
			}
		}
		drawClipped(screen, 0, y, width, text, base)
	}
}

// drawWelcome renders the start screen shortcut list.
func (a *App) drawWelcome(screen tcell.Screen, width, height int, base tcell.Style) {
	lines := []string{
		"inkwell",
		"",
		"n  new file        o  open workspace",
		"/  search          t  file tree",
		"?  help            Alt+0  start typing",
	}
	viewHeight := height - config.Get().Editor.StatusBarHeight
	top := viewHeight/2 - len(lines)/2
	if top < 0 {
		top = 0
	}
	for y := 0; y < viewHeight; y++ {
		text := ""
		idx := y - top
		if idx >= 0 && idx < len(lines) {
			line := lines[idx]
			pad := (width - len(line)) / 2
			if pad > 0 {
				text = strings.Repeat(" ", pad) + line
			} else {
				text = line
			}
		}
		drawClipped(screen, 0, y, width, text, base)
	}
}

// drawCanvas renders the node canvas as a plain node listing with the
// active transform in the header. Spatial rendering is out of scope for
// a character grid; selection and transform state stay visible.
func (a *App) drawCanvas(screen tcell.Screen, width, height int, base, focused tcell.Style) {
	viewHeight := height - config.Get().Editor.StatusBarHeight
	drawClipped(screen, 0, 0, width, "Canvas  "+a.canvas.Transform(), base.Bold(true))

	selected, hasSelection := a.canvas.Selected()
	for i, node := range a.canvas.Nodes() {
		y := i + 2
		if y >= viewHeight {
			break
		}
		style := base
		prefix := "  "
		if hasSelection && node == selected {
			style = focused
			prefix = "> "
		}
		text := fmt.Sprintf("%s%s (%.0f, %.0f)", prefix, nodeLabel(node), node.X, node.Y)
		drawClipped(screen, 0, y, width, text, style)
	}
}

func nodeLabel(n *canvas.Node) string {
	if n.Path != "" {
		return n.Path
	}
	if n.Text != "" {
		return n.Text
	}
	return fmt.Sprintf("node %d", n.ID)
}

// drawClipped writes text on one row, clipped to [x0, x1) and padded
// with the style's background.
func drawClipped(screen tcell.Screen, x0, y, x1 int, text string, style tcell.Style) {
	x := x0
	for _, r := range text {
		if x >= x1 {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	for ; x < x1; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// updateStatusBarContent pushes current editor state to the status bar.
func (a *App) updateStatusBarContent() {
	buf := a.editor.GetBuffer()
	a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	a.statusBar.SetCursorInfo(a.editor.GetCursor())

	mode := a.modeHandler.GetCurrentModeString()
	if a.focus != PaneEditor {
		mode = strings.ToUpper(a.focus.String())
	}
	a.statusBar.SetEditorMode(mode)

	switch a.modeHandler.GetCurrentMode() {
	case modehandler.ModeCommand:
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	case modehandler.ModeFind:
		a.statusBar.SetTemporaryMessage("/%s", a.modeHandler.GetFindBuffer())
	}
}
