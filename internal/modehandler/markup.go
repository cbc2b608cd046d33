package modehandler

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/input"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/markup"
)

// executeMarkupAction runs toggle actions against the markup engine.
func (mh *ModeHandler) executeMarkupAction(actionEvent input.ActionEvent) bool {
	var err error
	switch actionEvent.Action {
	case input.ActionToggleStrong:
		err = mh.markup.ToggleInlineStyle(markup.StyleStrong)
	case input.ActionToggleEmphasis:
		err = mh.markup.ToggleInlineStyle(markup.StyleEm)
	case input.ActionToggleCode:
		err = mh.markup.ToggleInlineStyle(markup.StyleCode)
	case input.ActionToggleStrikethrough:
		err = mh.markup.ToggleInlineStyle(markup.StyleStrikethrough)
	case input.ActionToggleHighlight:
		err = mh.markup.ToggleInlineStyle(markup.StyleHighlight)
	case input.ActionToggleComment:
		err = mh.markup.ToggleInlineStyle(markup.StyleComment)
	case input.ActionToggleLink:
		err = mh.markup.ToggleLink()
	case input.ActionHeadingChord:
		mh.startHeadingChord()
		return true
	case input.ActionSetHeading:
		err = mh.markup.ToggleHeading(actionEvent.Level)
	default:
		return false
	}

	if err != nil {
		mh.statusBar.SetTemporaryMessage("Markup: %v", err)
		logger.Debugf("Markup action failed: %v", err)
		return false
	}
	return true
}

// startHeadingChord arms the chord: the next digit picks the heading
// level, anything else (or the timeout) cancels.
func (mh *ModeHandler) startHeadingChord() {
	mh.chordPending = true
	mh.statusBar.SetTemporaryMessage("Heading: 1-6 sets level, 0 clears")
	mh.stopChordTimer()
	mh.chordTimer = time.AfterFunc(headingChordTimeout, func() {
		mh.resetChordState()
	})
}

// handleHeadingChord consumes the key following the chord starter.
func (mh *ModeHandler) handleHeadingChord(ev *tcell.EventKey) bool {
	mh.resetChordState()

	r := ev.Rune()
	if ev.Key() != tcell.KeyRune || r < '0' || r > '6' {
		mh.statusBar.SetTemporaryMessage("")
		return false
	}
	return mh.executeMarkupAction(input.ActionEvent{
		Action: input.ActionSetHeading,
		Level:  int(r - '0'),
	})
}

// stopChordTimer safely stops the timer.
func (mh *ModeHandler) stopChordTimer() {
	if mh.chordTimer != nil {
		mh.chordTimer.Stop()
		mh.chordTimer = nil
	}
}

// resetChordState clears the waiting state and timer.
func (mh *ModeHandler) resetChordState() {
	if mh.chordPending {
		logger.Debugf("Resetting heading chord state")
		mh.chordPending = false
	}
	mh.stopChordTimer()
}
