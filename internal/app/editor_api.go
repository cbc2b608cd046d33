// internal/app/editor_api.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/commands"
	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/plugin"
	"github.com/inkwell-editor/inkwell/internal/theme"
	"github.com/inkwell-editor/inkwell/internal/types"
)

// Ensure appEditorAPI implements the consumer-side interfaces.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)
var _ theme.ThemeAPI = (*appEditorAPI)(nil)
var _ commands.ThemeAPI = (*appEditorAPI)(nil)

// appEditorAPI provides the concrete implementation of the EditorAPI
// interface handed to plugins.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Buffer Access ---

func (api *appEditorAPI) GetBufferLines(startLine, endLine int) ([][]byte, error) {
	all := api.app.editor.GetBuffer().Lines()
	if startLine < 0 || startLine > endLine || endLine >= len(all) {
		return nil, fmt.Errorf("line range [%d, %d] out of bounds (0-%d)", startLine, endLine, len(all)-1)
	}
	return all[startLine : endLine+1], nil
}

func (api *appEditorAPI) GetBufferLine(line int) ([]byte, error) {
	return api.app.editor.GetBuffer().Line(line)
}

func (api *appEditorAPI) GetBufferLineCount() int {
	return api.app.editor.GetBuffer().LineCount()
}

func (api *appEditorAPI) GetBufferFilePath() string {
	return api.app.editor.GetBuffer().FilePath()
}

func (api *appEditorAPI) IsBufferModified() bool {
	return api.app.editor.GetBuffer().IsModified()
}

func (api *appEditorAPI) GetBufferBytes() []byte {
	return api.app.editor.GetBuffer().Bytes()
}

// --- Buffer Modification ---

func (api *appEditorAPI) InsertText(pos types.Position, text []byte) error {
	editInfo, err := api.app.editor.GetBuffer().Insert(pos, text)
	if err == nil {
		api.app.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
		api.app.requestRedraw()
	}
	return err
}

func (api *appEditorAPI) DeleteRange(start, end types.Position) error {
	editInfo, err := api.app.editor.GetBuffer().Delete(start, end)
	if err == nil {
		api.app.eventManager.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: editInfo})
		api.app.requestRedraw()
	}
	return err
}

// Replace runs a line-local regex substitution for the :s command.
func (api *appEditorAPI) Replace(pattern, replacement string, global bool) (int, error) {
	return api.app.editor.Replace(pattern, replacement, global)
}

// --- Cursor & Viewport ---

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.editor.GetCursor()
}

func (api *appEditorAPI) SetCursor(pos types.Position) {
	api.app.editor.SetCursor(pos)
	api.app.requestRedraw()
}

func (api *appEditorAPI) GetViewport() (int, int) {
	return api.app.editor.GetViewport()
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// RegisterThemeCommand implements the theme.ThemeAPI interface.
func (api *appEditorAPI) RegisterThemeCommand(name string, cmdFunc theme.CommandFunc) error {
	return api.app.GetModeHandler().RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.statusBar.SetTemporaryMessage(format, args...)
	api.app.requestRedraw()
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.GetTheme().GetStyle(styleName)
}

func (api *appEditorAPI) SetTheme(name string) error {
	return api.app.SetTheme(name)
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.GetTheme()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.GetThemeManager().ListThemes()
}

// --- File & Lifecycle ---

func (api *appEditorAPI) SaveBuffer(filePath ...string) error {
	return api.app.editor.SaveBuffer(filePath...)
}

func (api *appEditorAPI) RequestQuit(force bool) {
	if force {
		logger.Debugf("API: Force quit requested.")
		close(api.app.quit)
		return
	}
	if api.app.editor.GetBuffer().IsModified() {
		logger.Debugf("API: Quit requested, but buffer modified.")
		api.SetStatusMessage("No write since last change (use :q! or force quit key)")
		return
	}
	close(api.app.quit)
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	table, ok := config.Get().Plugins[pluginName]
	if !ok {
		return nil, false
	}
	value, ok := table[key]
	return value, ok
}
