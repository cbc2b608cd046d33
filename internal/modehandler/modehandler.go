// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/core"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/input"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/markup"
	"github.com/inkwell-editor/inkwell/internal/plugin"
	"github.com/inkwell-editor/inkwell/internal/statusbar"
	"github.com/inkwell-editor/inkwell/internal/types"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
	ModeFind
)

// headingChordTimeout bounds how long the heading chord waits for its
// digit.
const headingChordTimeout = 800 * time.Millisecond

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	// Dependencies (references to components managed by App)
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	markup         *markup.Engine
	quitSignal     chan<- struct{} // Channel to signal app termination

	// Internal State
	currentMode      InputMode
	cmdBuffer        string
	findBuffer       string
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool

	// Find state for n/N style repetition
	lastSearchTerm    string
	lastSearchForward bool
	lastMatchPos      *types.Position

	// Heading chord state
	chordPending bool
	chordTimer   *time.Timer
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Markup         *markup.Engine
	QuitSignal     chan<- struct{} // Write-only channel to signal quit
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil ||
		cfg.StatusBar == nil || cfg.Markup == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		markup:         cfg.Markup,
		quitSignal:     cfg.QuitSignal,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	// The raw key goes out on the bus first. A focused pane's dispatcher
	// consumes it there, in which case the editor never sees it.
	if mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev}) {
		return true
	}

	if mh.chordPending {
		return mh.handleHeadingChord(ev)
	}

	actionEvent := mh.inputProcessor.ProcessEvent(ev)

	switch mh.currentMode {
	case ModeNormal:
		return mh.executeAction(actionEvent, ev)
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	case ModeFind:
		return mh.handleActionFind(actionEvent)
	default:
		logger.Debugf("ModeHandler: unknown input mode %v", mh.currentMode)
		return false
	}
}

// RunCommand executes a registered command by name, as if typed in
// command mode.
func (mh *ModeHandler) RunCommand(name string, args []string) error {
	cmdFunc, exists := mh.commands[name]
	if !exists {
		return fmt.Errorf("unknown command: %s", name)
	}
	return cmdFunc(args)
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the current command buffer content (e.g., for display).
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}

// GetFindBuffer returns the current find buffer content (e.g., for display).
func (mh *ModeHandler) GetFindBuffer() string {
	if mh.currentMode == ModeFind {
		return mh.findBuffer
	}
	return ""
}

// GetCurrentModeString returns a displayable name for the active mode.
func (mh *ModeHandler) GetCurrentModeString() string {
	switch mh.currentMode {
	case ModeCommand:
		return "COMMAND"
	case ModeFind:
		return "FIND"
	default:
		return "NORMAL"
	}
}
