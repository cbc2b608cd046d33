// Package preview implements the read-only rendered view of a document:
// a scrollable viewport over rendered lines, with a history of visited
// documents. It backs the preview branch of the key dispatcher.
package preview

import (
	"github.com/inkwell-editor/inkwell/internal/dispatch"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
)

// Config bundles the dependencies for New.
type Config struct {
	EventManager *event.Manager
	// OnToggleEdit switches the pane back to the editable source.
	OnToggleEdit func()
	// OnSearch opens the in-preview search input.
	OnSearch func()
	// OpenPath loads a document into the preview (used by history).
	OpenPath func(path string) error
}

// Model is the preview state. It satisfies dispatch.Scroller.
type Model struct {
	cfg Config

	lines      []string
	offsetY    int
	offsetX    int
	viewHeight int
	viewWidth  int
	maxWidth   int
	zoom       int

	history []string
	histPos int
}

var _ dispatch.Scroller = (*Model)(nil)

// New creates an empty preview model.
func New(cfg Config) *Model {
	return &Model{cfg: cfg, histPos: -1, zoom: 0}
}

// SetContent replaces the rendered lines and resets the viewport.
func (m *Model) SetContent(path string, lines []string) {
	m.lines = lines
	m.offsetY = 0
	m.offsetX = 0
	m.maxWidth = 0
	for _, line := range lines {
		if len(line) > m.maxWidth {
			m.maxWidth = len(line)
		}
	}
	if path != "" {
		m.pushHistory(path)
	}
}

func (m *Model) pushHistory(path string) {
	if m.histPos >= 0 && m.history[m.histPos] == path {
		return
	}
	m.history = append(m.history[:m.histPos+1], path)
	m.histPos = len(m.history) - 1
}

// SetViewSize updates the viewport dimensions.
func (m *Model) SetViewSize(width, height int) {
	m.viewWidth = width
	m.viewHeight = height
	m.clamp()
}

// Viewport returns the scroll offsets for drawing.
func (m *Model) Viewport() (offsetY, offsetX int) {
	return m.offsetY, m.offsetX
}

// Lines exposes the rendered content for drawing.
func (m *Model) Lines() []string { return m.lines }

// Zoom returns the current zoom step, positive meaning enlarged.
func (m *Model) Zoom() int { return m.zoom }

func (m *Model) clamp() {
	maxY := len(m.lines) - m.viewHeight
	if maxY < 0 {
		maxY = 0
	}
	if m.offsetY > maxY {
		m.offsetY = maxY
	}
	if m.offsetY < 0 {
		m.offsetY = 0
	}
	maxX := m.maxWidth - m.viewWidth
	if maxX < 0 {
		maxX = 0
	}
	if m.offsetX > maxX {
		m.offsetX = maxX
	}
	if m.offsetX < 0 {
		m.offsetX = 0
	}
}

// --- dispatch.Scroller ---

func (m *Model) ScrollBy(lines int) {
	m.offsetY += lines
	m.clamp()
}

func (m *Model) PageDown() {
	m.ScrollBy(m.viewHeight)
}

func (m *Model) PageUp() {
	m.ScrollBy(-m.viewHeight)
}

func (m *Model) ScrollToTop() {
	m.offsetY = 0
}

func (m *Model) ScrollToBottom() {
	m.offsetY = len(m.lines)
	m.clamp()
}

func (m *Model) ScrollHorizontal(cols int) {
	m.offsetX += cols
	m.clamp()
}

func (m *Model) PageLeft() {
	m.ScrollHorizontal(-m.viewWidth)
}

func (m *Model) PageRight() {
	m.ScrollHorizontal(m.viewWidth)
}

func (m *Model) ToggleEditMode() {
	if m.cfg.OnToggleEdit != nil {
		m.cfg.OnToggleEdit()
	}
	if m.cfg.EventManager != nil {
		m.cfg.EventManager.Dispatch(event.TypeViewFocusChanged, event.ViewFocusChangedData{ViewKind: "editor"})
	}
}

func (m *Model) HistoryBack() {
	if m.histPos <= 0 {
		return
	}
	m.histPos--
	m.openCurrent()
}

func (m *Model) HistoryForward() {
	if m.histPos+1 >= len(m.history) {
		return
	}
	m.histPos++
	m.openCurrent()
}

func (m *Model) openCurrent() {
	if m.cfg.OpenPath == nil {
		return
	}
	if err := m.cfg.OpenPath(m.history[m.histPos]); err != nil {
		logger.Warnf("preview: reopening %s: %v", m.history[m.histPos], err)
	}
}

func (m *Model) OpenSearch() {
	if m.cfg.OnSearch != nil {
		m.cfg.OnSearch()
	}
}

func (m *Model) ZoomIn()  { m.zoom++ }
func (m *Model) ZoomOut() { m.zoom-- }
