// internal/input/action.go
package input

// Action represents a command or operation to be performed by the editor.
type Action int

// Define the set of possible editor actions.
const (
	// --- Meta Actions ---
	ActionUnknown Action = iota // Default/invalid action
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	// --- Cursor Movement ---
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line

	// --- Text Manipulation ---
	ActionInsertRune    // Requires Rune argument
	ActionInsertNewLine // Specific action for Enter
	ActionInsertTab
	ActionDeleteCharForward  // Delete key
	ActionDeleteCharBackward // Backspace key

	// --- Clipboard ---
	ActionYank
	ActionPaste

	// --- History ---
	ActionUndo
	ActionRedo

	// --- Editor Mode ---
	ActionEnterCommandMode
	ActionEnterFindMode
	ActionFindNext
	ActionFindPrevious

	// --- Markup ---
	ActionToggleStrong
	ActionToggleEmphasis
	ActionToggleCode
	ActionToggleStrikethrough
	ActionToggleHighlight
	ActionToggleComment
	ActionToggleLink
	ActionHeadingChord // Starts the heading chord; a digit follows
	ActionSetHeading   // Requires Level argument
)

// ActionEvent represents a decoded input event resulting in an action.
// It carries payload data needed for the action.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
	Level  int  // Used for ActionSetHeading
}
