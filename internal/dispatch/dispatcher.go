// internal/dispatch/dispatcher.go
package dispatch

import (
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/utils"
)

// ClipboardWriter receives yanked paths and names.
type ClipboardWriter interface {
	WriteString(text string) error
}

// Commander runs a host action by identifier.
type Commander interface {
	RunCommand(id string) error
}

// Dispatcher routes raw key events to view actions. One instance serves
// all views; all per-keystroke state arrives in the Context argument.
type Dispatcher struct {
	keys       config.KeysConfig
	clipboard  ClipboardWriter
	commander  Commander
	redispatch func(*tcell.EventKey)
	notify     func(format string, args ...interface{})

	panStep      int
	waitTimeout  time.Duration
	waitInterval time.Duration
}

// Config bundles the dependencies for New. Clipboard, Commander,
// Redispatch and Notify may be nil; the corresponding actions become
// no-ops.
type Config struct {
	Keys       config.KeysConfig
	Clipboard  ClipboardWriter
	Commander  Commander
	Redispatch func(*tcell.EventKey)
	Notify     func(format string, args ...interface{})

	// WaitTimeout/WaitInterval bound the poll fallback for host-side
	// registration of newly created files. Zero values select the
	// defaults (2s / 20ms).
	WaitTimeout  time.Duration
	WaitInterval time.Duration
}

// New creates a key dispatcher.
func New(cfg Config) *Dispatcher {
	d := &Dispatcher{
		keys:         cfg.Keys,
		clipboard:    cfg.Clipboard,
		commander:    cfg.Commander,
		redispatch:   cfg.Redispatch,
		notify:       cfg.Notify,
		panStep:      cfg.Keys.CanvasPanStep,
		waitTimeout:  cfg.WaitTimeout,
		waitInterval: cfg.WaitInterval,
	}
	if d.panStep <= 0 {
		d.panStep = config.DefaultCanvasPanStep
	}
	if d.waitTimeout <= 0 {
		d.waitTimeout = utils.DefaultWaitTimeout
	}
	if d.waitInterval <= 0 {
		d.waitInterval = utils.DefaultWaitInterval
	}
	return d
}

// HandleKey runs the guard chain and the per-view dispatch for one key
// event. It returns true when the event was consumed; false means the
// host's own handling proceeds untouched.
func (d *Dispatcher) HandleKey(ev *tcell.EventKey, ctx Context) bool {
	// 1. Fixed modifier shortcut: copy path of the focused tree item.
	// Checked before every other guard.
	if ev.Key() == tcell.KeyCtrlY {
		d.copyFocusedPath(ctx)
		return true
	}

	name := keyName(ev)

	// 2. Prompt up/down aliases become synthetic arrow keys.
	if ctx.PromptFocused {
		switch name {
		case d.keys.PromptUp:
			d.sendKey(tcell.KeyUp)
			return true
		case d.keys.PromptDown:
			d.sendKey(tcell.KeyDown)
			return true
		}
	}

	// 3. Side-dock tab cycling.
	if ctx.Dock != nil {
		switch name {
		case d.keys.DockNextTab:
			ctx.Dock.NextTab()
			return true
		case d.keys.DockPrevTab:
			ctx.Dock.PrevTab()
			return true
		}
	}

	// 4. Pass-through. The dispatcher must never intercept typing: any
	// text-editing surface, a missing pane, an in-flight rename, or a
	// held modifier all defer to the host, whatever the key is.
	if ctx.TextInputFocused || ctx.RenameInProgress || ctx.View.Kind == KindNone {
		return false
	}
	if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
		return false
	}

	// 5. Focus-sensitive special cases, bypassing the view switch.
	if ctx.Properties != nil && ctx.Properties.HasFocusedProperty() {
		if name == "d" {
			ctx.Properties.DeleteFocusedProperties()
			return true
		}
		return false
	}
	if ctx.PropertyHeading != nil {
		switch name {
		case "h":
			ctx.PropertyHeading.SetCollapsed(true)
			return true
		case "l":
			ctx.PropertyHeading.SetCollapsed(false)
			return true
		}
		return false
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}
	r := ev.Rune()

	switch ctx.View.Kind {
	case KindTree:
		return d.handleTreeKey(r, ctx.View.Tree)
	case KindCanvas:
		return d.handleCanvasKey(r, ctx.View.Canvas)
	case KindPreview:
		return d.handlePreviewKey(r, ctx.View.Scroll, ctx.View.PreviewMode)
	case KindEmpty:
		return d.handleEmptyKey(r)
	}
	return false
}

func (d *Dispatcher) copyFocusedPath(ctx Context) {
	if ctx.View.Kind != KindTree || ctx.View.Tree == nil {
		return
	}
	item, ok := ctx.View.Tree.Focused()
	if !ok {
		return
	}
	d.writeClipboard(item.Path())
	d.notifyf("Path copied")
}

func (d *Dispatcher) writeClipboard(text string) {
	if d.clipboard == nil {
		return
	}
	if err := d.clipboard.WriteString(text); err != nil {
		logger.Warnf("Dispatcher: clipboard write failed: %v", err)
	}
}

func (d *Dispatcher) runCommand(id string) bool {
	if d.commander == nil {
		return false
	}
	if err := d.commander.RunCommand(id); err != nil {
		logger.Warnf("Dispatcher: command %q failed: %v", id, err)
	}
	return true
}

func (d *Dispatcher) notifyf(format string, args ...interface{}) {
	if d.notify != nil {
		d.notify(format, args...)
	}
}

func (d *Dispatcher) sendKey(key tcell.Key) {
	if d.redispatch != nil {
		d.redispatch(tcell.NewEventKey(key, 0, tcell.ModNone))
	}
}

// keyName renders an event as a config-matchable name: a literal rune
// (case preserved), or "ctrl+x" / "alt+x" for modified keys.
func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		name := string(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			name = "alt+" + name
		}
		return name
	}
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		return "ctrl+" + string(rune('a'+ev.Key()-tcell.KeyCtrlA))
	}
	return strings.ToLower(tcell.KeyNames[ev.Key()])
}
