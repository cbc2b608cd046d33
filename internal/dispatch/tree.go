// internal/dispatch/tree.go
package dispatch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/utils"
)

// handleTreeKey dispatches a key inside a tree-like view. The whole
// branch consumes: any key landing here stops host handling, bound or
// not.
func (d *Dispatcher) handleTreeKey(r rune, nav TreeNavigator) bool {
	if nav == nil {
		return true
	}
	switch r {
	case 'h':
		// Collapse an expanded folder, otherwise climb to the parent
		if item, ok := nav.Focused(); ok && !item.IsLeaf() && !item.Collapsed() {
			nav.SetCollapsed(item, true)
		} else {
			nav.FocusParent()
		}
	case 'j':
		nav.FocusNext()
	case 'k':
		nav.FocusPrev()
	case 'l', 'o':
		d.openFocused(nav, false, false)
	case 'L':
		d.openFocused(nav, false, true)
	case 'O':
		d.openFocused(nav, true, false)
	case 'J':
		nav.ScrollBy(1)
	case 'K':
		nav.ScrollBy(-1)
	case 'd':
		if item, ok := nav.Focused(); ok {
			if err := nav.Delete(item); err != nil {
				logger.Warnf("Dispatcher: delete %q failed: %v", item.Path(), err)
			}
		}
	case 'r':
		if item, ok := nav.Focused(); ok {
			if err := nav.Rename(item); err != nil {
				logger.Warnf("Dispatcher: rename %q failed: %v", item.Path(), err)
			}
		}
	case 'a':
		d.createAndRename(nav, false)
	case 'A':
		d.createAndRename(nav, true)
	case 'y':
		if item, ok := nav.Focused(); ok {
			d.writeClipboard(item.Path())
			d.notifyf("Path copied")
		}
	case 'Y':
		if item, ok := nav.Focused(); ok {
			d.writeClipboard(item.Name())
			d.notifyf("Name copied")
		}
	case 'g':
		nav.FocusFirst()
		nav.ScrollToTop()
	case 'G':
		nav.FocusLast()
		nav.ScrollToBottom()
	case 'q':
		nav.CloseSidebar()
	case 'S':
		nav.Sort()
	case '/':
		nav.Search()
	case '{':
		nav.CollapseAll()
	case '}':
		nav.ExpandAll()
	}
	return true
}

// openFocused opens the focused item: folders toggle collapse (or expand
// the whole subtree), leaves open as files. Opening a leaf from the file
// explorer also puts the sidebar away.
func (d *Dispatcher) openFocused(nav TreeNavigator, newTab, expandAll bool) {
	item, ok := nav.Focused()
	if !ok {
		return
	}
	if !item.IsLeaf() {
		if expandAll {
			nav.SetCollapsed(item, false)
			nav.ExpandRecursively(item)
		} else {
			nav.SetCollapsed(item, !item.Collapsed())
		}
		return
	}
	if err := nav.Open(item, newTab); err != nil {
		logger.Warnf("Dispatcher: open %q failed: %v", item.Path(), err)
		return
	}
	if nav.IsFileExplorer() {
		nav.CloseSidebar()
	}
}

// createAndRename creates a file or folder next to the focused item and
// immediately starts a rename on it. The new entry must first register
// in the view's index, an asynchronous host-side step: the returned
// completion channel is preferred, with a bounded poll on FocusPath as
// fallback when the host offers no signal. On timeout the rename is
// skipped; the user renames manually.
func (d *Dispatcher) createAndRename(nav TreeNavigator, folder bool) {
	dir := ""
	if item, ok := nav.Focused(); ok {
		if item.IsLeaf() {
			dir = filepath.Dir(item.Path())
		} else {
			dir = item.Path()
		}
	}

	var (
		path       string
		registered <-chan struct{}
		err        error
	)
	if folder {
		path, registered, err = nav.CreateFolder(dir)
	} else {
		path, registered, err = nav.CreateFile(dir)
	}
	if err != nil {
		logger.Warnf("Dispatcher: create in %q failed: %v", dir, err)
		return
	}

	if err := d.awaitRegistration(nav, path, registered); err != nil {
		logger.Warnf("Dispatcher: %q never registered: %v", path, err)
		d.notifyf("Created %s", filepath.Base(path))
		return
	}
	if !nav.FocusPath(path) {
		return
	}
	if item, ok := nav.Focused(); ok {
		if err := nav.Rename(item); err != nil {
			logger.Warnf("Dispatcher: rename %q failed: %v", path, err)
		}
	}
}

func (d *Dispatcher) awaitRegistration(nav TreeNavigator, path string, registered <-chan struct{}) error {
	if registered != nil {
		select {
		case <-registered:
			return nil
		case <-time.After(d.waitTimeout):
			return fmt.Errorf("waiting for %s: %w", path, utils.ErrWaitTimeout)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	return utils.WaitFor(ctx, func() bool {
		return nav.FocusPath(path)
	}, d.waitTimeout, d.waitInterval)
}
