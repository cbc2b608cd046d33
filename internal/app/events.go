// internal/app/events.go
package app

import (
	"context"

	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
)

// handleCursorMovedForStatus updates the status bar cursor readout.
func (a *App) handleCursorMovedForStatus(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false // Not consumed
}

// handleBufferModified feeds edits to the highlighter and keeps the
// status bar and outline current.
func (a *App) handleBufferModified(e event.Event) bool {
	a.dismissWelcome()
	a.updateStatusBarContent()
	if data, ok := e.Data.(event.BufferModifiedData); ok {
		a.highlightManager.AccumulateEdit(data.Edit)
	} else {
		logger.Warnf("App: BufferModified event with unexpected data type: %T", e.Data)
	}
	if a.sidebarVisible && a.sidebarTab == PaneOutline {
		a.outline.Refresh(a.editor.GetBuffer().FilePath())
	}
	return false // Not consumed
}

// handleBufferSavedForStatus updates the modified indicator.
func (a *App) handleBufferSavedForStatus(e event.Event) bool {
	a.updateStatusBarContent()
	return false // Not consumed
}

// handleBufferLoaded re-highlights and rebuilds the outline for the
// newly loaded document.
func (a *App) handleBufferLoaded(e event.Event) bool {
	a.updateStatusBarContent()
	a.highlightManager.HighlightNow(context.Background())
	a.outline.Refresh(a.editor.GetBuffer().FilePath())
	a.requestRedraw()
	return false // Not consumed
}

// handleFileCreated focuses the new entry once the tree registers it.
func (a *App) handleFileCreated(e event.Event) bool {
	data, ok := e.Data.(event.FileCreatedData)
	if !ok {
		return false
	}
	if a.fileTree.FocusPath(data.Path) {
		a.requestRedraw()
	}
	return false // Not consumed
}

// handleThemeChanged repaints with the new theme.
func (a *App) handleThemeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ThemeChangedData); ok {
		logger.Debugf("App: theme changed to %q", data.ThemeName)
	}
	a.requestRedraw()
	return false // Not consumed
}
