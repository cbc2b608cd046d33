package core

import "github.com/inkwell-editor/inkwell/internal/types"

// Convenience forwarding onto the per-concern managers, so callers that
// only hold an *Editor do not need to reach into them.

func (e *Editor) YankSelection() (bool, error) {
	return e.clipboardManager.YankSelection()
}

func (e *Editor) Paste() (bool, error) {
	return e.clipboardManager.Paste()
}

func (e *Editor) Undo() (bool, error) {
	return e.historyManager.Undo()
}

func (e *Editor) Redo() (bool, error) {
	return e.historyManager.Redo()
}

func (e *Editor) HighlightMatches(term string) error {
	return e.findManager.HighlightMatches(term)
}

func (e *Editor) ClearHighlights() {
	e.findManager.ClearHighlights()
}

func (e *Editor) HasHighlights() bool {
	return e.findManager.HasHighlights()
}

func (e *Editor) GetHighlights() []types.HighlightRegion {
	return e.findManager.GetHighlights()
}

func (e *Editor) Replace(pattern, replacement string, global bool) (int, error) {
	return e.findManager.Replace(pattern, replacement, global)
}

func (e *Editor) LineCount() int {
	return e.buffer.LineCount()
}
