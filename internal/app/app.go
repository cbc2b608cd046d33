// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/core"
	"github.com/inkwell-editor/inkwell/internal/dispatch"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/highlight"
	"github.com/inkwell-editor/inkwell/internal/highlighter"
	"github.com/inkwell-editor/inkwell/internal/input"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/markup"
	"github.com/inkwell-editor/inkwell/internal/modehandler"
	"github.com/inkwell-editor/inkwell/internal/plugin"
	"github.com/inkwell-editor/inkwell/internal/spans"
	"github.com/inkwell-editor/inkwell/internal/statusbar"
	"github.com/inkwell-editor/inkwell/internal/theme"
	"github.com/inkwell-editor/inkwell/internal/tui"
	"github.com/inkwell-editor/inkwell/internal/views/canvas"
	"github.com/inkwell-editor/inkwell/internal/views/filetree"
	"github.com/inkwell-editor/inkwell/internal/views/outline"
	"github.com/inkwell-editor/inkwell/internal/views/preview"
)

// App wires the editor core, the workspace panes and the key routing
// together and runs the main loop.
type App struct {
	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     plugin.EditorAPI

	highlighter      *highlighter.Highlighter
	highlightManager *highlight.Manager
	markupEngine     *markup.Engine
	spanIndex        *spans.Index

	dispatcher   *dispatch.Dispatcher
	dispatcherSub *dispatch.Subscription

	// Workspace panes
	fileTree *filetree.Model
	outline  *outline.Model
	canvas   *canvas.Model
	preview  *preview.Model

	focus          Pane
	sidebarVisible bool
	sidebarTab     Pane // PaneTree or PaneOutline
	renamePending  string

	workspaceRoot string
	filePath      string

	quit          chan struct{}
	redrawRequest chan struct{}
}

// NewApp creates and initializes a new application instance.
func NewApp(filePath string) (*App, error) {
	tuiManager, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	buf := buffer.NewSliceBuffer()
	if err := buf.Load(filePath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("App: error loading file '%s': %v", filePath, err)
	}

	editor := core.NewEditor(buf)
	editor.GetClipboardManager().SetSystemClipboard(config.Get().Editor.SystemClipboard)

	eventManager := event.NewManager()
	editor.SetEventManager(eventManager)

	statusBar := statusbar.New(statusbar.DefaultConfig())
	pluginManager := plugin.NewManager()
	themeManager := theme.NewManager()
	if err := themeManager.LoadThemesFromDir(); err != nil {
		logger.Debugf("App: no user themes loaded: %v", err)
	}

	quitChan := make(chan struct{})

	// Markup engine over the live buffer. The editor is both the text
	// host and the link/heading applier; the span index answers
	// enclosing-construct queries.
	spanIndex := spans.NewIndex(editor)
	markupEngine := markup.New(markup.Config{
		Host:     editor,
		Spans:    spanIndex,
		Links:    editor,
		Headings: editor,
	})

	modeHandler := modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      statusBar,
		Markup:         markupEngine,
		QuitSignal:     quitChan,
	})

	highlighterSvc := highlighter.NewHighlighter()

	a := &App{
		tuiManager:    tuiManager,
		editor:        editor,
		statusBar:     statusBar,
		eventManager:  eventManager,
		pluginManager: pluginManager,
		modeHandler:   modeHandler,
		themeManager:  themeManager,
		highlighter:   highlighterSvc,
		markupEngine:  markupEngine,
		spanIndex:     spanIndex,
		focus:         startPane(filePath),
		sidebarTab:    PaneTree,
		workspaceRoot: workspaceRootFor(filePath),
		filePath:      filePath,
		quit:          quitChan,
		redrawRequest: make(chan struct{}, 1),
	}

	a.highlightManager = highlight.NewManager(editor, highlighterSvc, a.requestRedraw)

	if err := a.initWorkspace(); err != nil {
		tuiManager.Close()
		return nil, err
	}
	a.initDispatcher()

	editorAPI := newEditorAPI(a)
	a.editorAPI = editorAPI

	eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMovedForStatus)
	eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSavedForStatus)
	eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	eventManager.Subscribe(event.TypeFileCreated, a.handleFileCreated)
	eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)

	registerAppCommands(a)
	if err := registerPlugins(pluginManager); err != nil {
		logger.Warnf("App: plugin registration: %v", err)
	}
	pluginManager.InitializePlugins(editorAPI)

	width, height := tuiManager.Size()
	editor.SetViewSize(width, height-config.Get().Editor.StatusBarHeight)

	a.highlightManager.HighlightNow(context.Background())
	a.outline.Refresh(buf.FilePath())

	return a, nil
}

// workspaceRootFor picks the workspace root: the file's directory, or
// the working directory when no file was given.
func workspaceRootFor(filePath string) string {
	if filePath != "" {
		if abs, err := filepath.Abs(filePath); err == nil {
			return filepath.Dir(abs)
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// Run starts the application's main event and drawing loops.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()
	defer a.highlightManager.Shutdown()
	defer a.dispatcherSub.Stop()

	go a.eventLoop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage("inkwell - Ctrl+S save | Esc quit | Alt+1..4 panes")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.GetBuffer().IsModified() {
				logger.Warnf("App: exited with unsaved changes")
			}
			logger.Infof("App: exiting")
			return nil
		case <-a.redrawRequest:
			w, h := a.tuiManager.Size()
			a.editor.SetViewSize(a.editorWidth(w), h-config.Get().Editor.StatusBarHeight)
			a.draw()
		}
	}
}

// eventLoop routes TUI events. Pane-focus chords are handled here so
// the focus state the dispatcher reads is always host-owned; every
// other key goes through the mode handler (which offers it to the
// dispatcher first).
func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch eventData := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.GetScreen().Sync()
			needsRedraw = true
		case *tcell.EventKey:
			if a.handleFocusChord(eventData) {
				needsRedraw = true
				break
			}
			needsRedraw = a.modeHandler.HandleKeyEvent(eventData)
		}

		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// handleFocusChord switches the focused pane on Alt+digit.
func (a *App) handleFocusChord(ev *tcell.EventKey) bool {
	if ev.Key() != tcell.KeyRune || ev.Modifiers()&tcell.ModAlt == 0 {
		return false
	}
	switch ev.Rune() {
	case '0':
		a.focusPane(PaneEditor)
	case '1':
		a.focusPane(PaneTree)
	case '2':
		a.focusPane(PaneOutline)
	case '3':
		a.focusPane(PaneCanvas)
	case '4':
		a.focusPane(PanePreview)
	default:
		return false
	}
	return true
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

// GetModeHandler allows the API adapter to access the mode handler for
// command registration.
func (a *App) GetModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}

// GetThemeManager returns the theme manager.
func (a *App) GetThemeManager() *theme.Manager {
	return a.themeManager
}

// GetTheme returns the active theme.
func (a *App) GetTheme() *theme.Theme {
	return a.themeManager.Current()
}

// SetTheme changes the active theme by name and triggers a redraw.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{ThemeName: name})
	a.requestRedraw()
	return nil
}
