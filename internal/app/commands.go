// internal/app/commands.go
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/inkwell-editor/inkwell/internal/commands"
	"github.com/inkwell-editor/inkwell/internal/core/find"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/markup"
)

// registerAppCommands registers the built-in named commands. The same
// registry serves command mode (:name args) and the dispatcher's fixed
// shortcuts in the empty view.
func registerAppCommands(a *App) {
	register := func(name string, fn func(args []string) error) {
		if err := a.modeHandler.RegisterCommand(name, fn); err != nil {
			logger.Warnf("App: failed to register ':%s': %v", name, err)
		}
	}

	// --- Markup toggles ---
	toggles := map[string]string{
		"toggle-bold":          markup.StyleStrong,
		"toggle-italic":        markup.StyleEm,
		"toggle-code":          markup.StyleCode,
		"toggle-strikethrough": markup.StyleStrikethrough,
		"toggle-highlight":     markup.StyleHighlight,
		"toggle-comment":       markup.StyleComment,
	}
	for name, style := range toggles {
		style := style
		register(name, func(args []string) error {
			return a.markupEngine.ToggleInlineStyle(style)
		})
	}
	register("toggle-link", func(args []string) error {
		return a.markupEngine.ToggleLink()
	})
	register("toggle-tag", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: toggle-tag <name>")
		}
		return a.markupEngine.ToggleTag(args[0])
	})
	register("heading", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: heading <0-6>")
		}
		level, err := strconv.Atoi(args[0])
		if err != nil || level < 0 || level > 6 {
			return fmt.Errorf("heading level must be 0-6")
		}
		return a.markupEngine.ToggleHeading(level)
	})

	// --- Workspace / empty-view shortcuts ---
	register("file:new", func(args []string) error {
		path, registered, err := a.fileTree.CreateFile(a.workspaceRoot)
		if err != nil {
			return err
		}
		if registered != nil {
			<-registered
		}
		a.eventManager.Dispatch(event.TypeFileCreated, event.FileCreatedData{Path: path})
		return a.openFile(path, false)
	})
	register("workspace:open", func(args []string) error {
		if len(args) == 0 {
			a.focusPane(PaneTree)
			return nil
		}
		return a.openFile(args[0], false)
	})
	register("search:open", func(args []string) error {
		a.focusPane(PaneEditor)
		a.statusBar.SetTemporaryMessage("Press Ctrl+F to search")
		return nil
	})
	register("tree:toggle", func(args []string) error {
		a.toggleTree()
		return nil
	})
	register("help:show", func(args []string) error {
		a.statusBar.SetTemporaryMessage("n new | o open | / search | t tree | Alt+1..4 panes")
		return nil
	})

	// --- File commands ---
	register("w", func(args []string) error {
		return a.editor.SaveBuffer(args...)
	})
	register("q", func(args []string) error {
		a.editorAPI.RequestQuit(false)
		return nil
	})
	register("q!", func(args []string) error {
		a.editorAPI.RequestQuit(true)
		return nil
	})
	register("rename", func(args []string) error {
		return a.finishRename(args)
	})

	// --- Substitution (:s/pattern/replacement/[g]) ---
	register("s", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: s/pattern/replacement/[g]")
		}
		pattern, replacement, global, err := find.ParseSubstituteCommand(args[0])
		if err != nil {
			return err
		}
		count, err := a.editor.Replace(pattern, replacement, global)
		if err != nil {
			return err
		}
		a.statusBar.SetTemporaryMessage("%d substitution(s)", count)
		return nil
	})

	// --- Themes (:theme, :themes) ---
	commands.RegisterAppCommands(a.editorAPI, a.editorAPI)
}

// finishRename completes a rename started from the file tree.
func (a *App) finishRename(args []string) error {
	if a.renamePending == "" {
		return fmt.Errorf("no rename in progress")
	}
	if len(args) == 0 {
		a.renamePending = ""
		return fmt.Errorf("usage: rename <newname>")
	}
	oldPath := a.renamePending
	newPath := filepath.Join(filepath.Dir(oldPath), args[0])
	a.renamePending = ""
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	if err := a.fileTree.Refresh(); err != nil {
		logger.Warnf("App: tree refresh after rename: %v", err)
	}
	a.fileTree.FocusPath(newPath)
	a.statusBar.SetTemporaryMessage("Renamed to %s", filepath.Base(newPath))
	return nil
}
