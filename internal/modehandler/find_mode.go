package modehandler

import (
	"github.com/inkwell-editor/inkwell/internal/input"
	"github.com/inkwell-editor/inkwell/internal/logger"
)

// handleActionFind handles actions when in ModeFind.
func (mh *ModeHandler) handleActionFind(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false // Track if status bar text needs update

	switch actionEvent.Action {
	case input.ActionInsertRune: // Append to find buffer
		mh.findBuffer += string(actionEvent.Rune)
		needsUpdate = true

	case input.ActionDeleteCharBackward: // Backspace in find buffer
		if len(mh.findBuffer) > 0 {
			runes := []rune(mh.findBuffer)
			mh.findBuffer = string(runes[:len(runes)-1])
			needsUpdate = true
		} else {
			// Backspace on empty find buffer returns to Normal mode
			mh.cancelFindMode()
		}

	case input.ActionInsertNewLine: // Enter key: Execute search
		if mh.findBuffer != "" {
			mh.lastSearchTerm = mh.findBuffer // Store for find next/previous
			mh.lastSearchForward = true       // Initial search is forward
			mh.executeFind(true, false)
		} else {
			mh.statusBar.SetTemporaryMessage("") // Clear "/" if nothing typed
			mh.editor.ClearHighlights()
		}
		mh.currentMode = ModeNormal // Return to normal mode AFTER search attempt
		mh.findBuffer = ""

	case input.ActionQuit: // Escape key: Cancel find
		mh.cancelFindMode()

	default:
		// Ignore other actions like movement keys in find mode
		actionProcessed = false
	}

	// Update status bar display if buffer changed
	if needsUpdate && mh.currentMode == ModeFind {
		mh.statusBar.SetTemporaryMessage("/%s", mh.findBuffer)
	}

	return actionProcessed
}

// cancelFindMode centralizes logic for exiting Find mode without executing search
func (mh *ModeHandler) cancelFindMode() {
	mh.currentMode = ModeNormal
	mh.findBuffer = ""
	mh.editor.ClearHighlights() // Always clear highlights when canceling
	mh.statusBar.SetTemporaryMessage("")
	logger.Debugf("ModeHandler: Canceled Find Mode")
}

// executeFind performs the search using the findManager.
func (mh *ModeHandler) executeFind(forward bool, isSubsequent bool) {
	if mh.lastSearchTerm == "" {
		mh.statusBar.SetTemporaryMessage("No search term")
		return
	}

	// For the initial search, highlight all matches first
	if !isSubsequent {
		if err := mh.editor.HighlightMatches(mh.lastSearchTerm); err != nil {
			mh.statusBar.SetTemporaryMessage("Invalid pattern: %s", err)
			return
		}
	}

	findManager := mh.editor.GetFindManager()
	if findManager == nil {
		mh.statusBar.SetTemporaryMessage("Find error: find manager not initialized")
		return
	}

	foundPos, found := findManager.FindNext(forward)
	if found {
		mh.editor.SetCursor(foundPos)
		mh.editor.ScrollToCursor()
		mh.lastMatchPos = &foundPos
		mh.lastSearchForward = forward // Remember direction for repetition
		mh.statusBar.SetTemporaryMessage("Found: '%s'", mh.lastSearchTerm)
		logger.Debugf("ModeHandler: Found '%s' at %v", mh.lastSearchTerm, foundPos)
	} else {
		mh.statusBar.SetTemporaryMessage("Pattern not found: %s", mh.lastSearchTerm)
		logger.Debugf("ModeHandler: Pattern not found: '%s'", mh.lastSearchTerm)
	}
}
