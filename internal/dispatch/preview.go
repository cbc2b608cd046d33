// internal/dispatch/preview.go
package dispatch

import "github.com/inkwell-editor/inkwell/internal/config"

// handlePreviewKey dispatches a key inside a preview-like view. Unlike
// the tree and canvas branches, unbound keys are not consumed here; only
// a resolved action stops host handling.
func (d *Dispatcher) handlePreviewKey(r rune, scroll Scroller, mode PreviewMode) bool {
	if scroll == nil {
		return false
	}
	switch r {
	case 'j':
		scroll.ScrollBy(config.DefaultScrollStep)
	case 'k':
		scroll.ScrollBy(-config.DefaultScrollStep)
	case 'd':
		scroll.ScrollBy(config.DefaultScrollPage)
	case 'u':
		scroll.ScrollBy(-config.DefaultScrollPage)
	case 'f':
		scroll.PageDown()
	case 'b':
		scroll.PageUp()
	case 'g':
		scroll.ScrollToTop()
	case 'G':
		scroll.ScrollToBottom()
	case 'h':
		scroll.ScrollHorizontal(-config.DefaultScrollStep)
	case 'l':
		scroll.ScrollHorizontal(config.DefaultScrollStep)
	case 'H':
		scroll.PageLeft()
	case 'L':
		scroll.PageRight()
	case 'q', 'i':
		if mode != PreviewMarkdown {
			return false
		}
		scroll.ToggleEditMode()
	case '[':
		scroll.HistoryBack()
	case ']':
		scroll.HistoryForward()
	case '/':
		scroll.OpenSearch()
	case '+':
		if mode != PreviewPDF {
			return false
		}
		scroll.ZoomIn()
	case '-':
		if mode != PreviewPDF {
			return false
		}
		scroll.ZoomOut()
	default:
		return false
	}
	return true
}
