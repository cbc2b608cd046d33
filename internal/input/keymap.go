// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps special keys (Enter, Arrows, Ctrl chords) to actions.
type Keymap map[tcell.Key]Action

// RuneKeymap maps Alt+rune chords to actions.
type RuneKeymap map[rune]Action

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap    Keymap
	altKeymap RuneKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:    make(Keymap),
		altKeymap: make(RuneKeymap),
	}
	p.loadDefaultBindings()
	return p
}

// loadDefaultBindings sets up the initial key mappings.
func (p *InputProcessor) loadDefaultBindings() {
	// --- Navigation ---
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd

	// --- Editing ---
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward

	// --- Meta ---
	p.keymap[tcell.KeyEscape] = ActionQuit // Checks modified state first
	p.keymap[tcell.KeyCtrlQ] = ActionForceQuit
	p.keymap[tcell.KeyCtrlS] = ActionSave

	// --- Clipboard / history ---
	p.keymap[tcell.KeyCtrlC] = ActionYank
	p.keymap[tcell.KeyCtrlV] = ActionPaste
	p.keymap[tcell.KeyCtrlZ] = ActionUndo
	p.keymap[tcell.KeyCtrlR] = ActionRedo

	// --- Modes ---
	p.keymap[tcell.KeyCtrlP] = ActionEnterCommandMode
	p.keymap[tcell.KeyCtrlF] = ActionEnterFindMode
	p.keymap[tcell.KeyCtrlG] = ActionFindNext
	p.altKeymap['g'] = ActionFindPrevious

	// --- Markup ---
	// Ctrl+I arrives as Tab in terminals, so emphasis sits on Ctrl+E.
	p.keymap[tcell.KeyCtrlB] = ActionToggleStrong
	p.keymap[tcell.KeyCtrlE] = ActionToggleEmphasis
	p.keymap[tcell.KeyCtrlT] = ActionToggleCode
	p.keymap[tcell.KeyCtrlD] = ActionToggleStrikethrough
	p.keymap[tcell.KeyCtrlK] = ActionToggleLink
	p.keymap[tcell.KeyCtrlUnderscore] = ActionToggleComment // Ctrl+/ on most terminals
	p.altKeymap['m'] = ActionToggleHighlight
	p.altKeymap['h'] = ActionHeadingChord
}

// ProcessEvent takes a tcell key event and returns the corresponding
// ActionEvent. Mode-specific interpretation (command line vs buffer) is
// left to the caller.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	runeVal := ev.Rune()

	// Alt+rune chords
	if key == tcell.KeyRune && mod&tcell.ModAlt != 0 {
		if action, ok := p.altKeymap[runeVal]; ok {
			return ActionEvent{Action: action, Rune: runeVal}
		}
		return ActionEvent{Action: ActionUnknown}
	}

	// Special keys, including Ctrl chords. tcell reports Ctrl chords as
	// dedicated Key values with ModCtrl set, so the modifier needs no
	// separate lookup.
	if action, ok := p.keymap[key]; ok {
		return ActionEvent{Action: action}
	}

	// Plain runes become insertions. Shift is fine (capitals); anything
	// else with Ctrl held is not an insertion.
	if key == tcell.KeyRune && mod&^tcell.ModShift == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: runeVal}
	}

	if key == tcell.KeyEnter {
		return ActionEvent{Action: ActionInsertNewLine}
	}

	return ActionEvent{Action: ActionUnknown}
}
