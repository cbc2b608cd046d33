// internal/views/outline/outline.go

// Package outline presents the ATX headings of a document as a
// navigable tree. It speaks the same navigation interface as the file
// explorer, so the key dispatcher drives both without knowing which one
// is focused.
package outline

import (
	"fmt"
	"strings"

	"github.com/inkwell-editor/inkwell/internal/dispatch"
)

// Item is one heading in the outline.
type Item struct {
	text      string
	level     int
	line      int // zero-based buffer line
	path      string
	collapsed bool
	parent    *Item
	children  []*Item
}

func (it *Item) Path() string    { return it.path }
func (it *Item) Name() string    { return it.text }
func (it *Item) IsLeaf() bool    { return len(it.children) == 0 }
func (it *Item) Collapsed() bool { return it.collapsed }

// Line returns the buffer line the heading sits on.
func (it *Item) Line() int { return it.line }

// Depth counts the item's ancestors, for indentation.
func (it *Item) Depth() int {
	depth := 0
	for p := it.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// LineSource provides document lines. Satisfied by *core.Editor.
type LineSource interface {
	LineText(line int) (string, error)
	LineCount() int
}

// Config bundles the dependencies for New.
type Config struct {
	Source LineSource
	// OnOpen jumps the editor to the heading's line.
	OnOpen func(line int) error
	// OnClose collapses the sidebar the outline lives in.
	OnClose func()
}

// Model is the outline over one document. Refresh rebuilds it from the
// source; focus and collapse state survive a rebuild when the heading
// text still matches.
type Model struct {
	source  LineSource
	onOpen  func(line int) error
	onClose func()

	docPath string
	roots   []*Item
	focus   string // path of the focused item
	scrollY int
}

// New creates an outline model.
func New(cfg Config) *Model {
	if cfg.Source == nil {
		panic("outline: Model requires a LineSource")
	}
	return &Model{
		source:  cfg.Source,
		onOpen:  cfg.OnOpen,
		onClose: cfg.OnClose,
	}
}

// Refresh rescans the document for headings. docPath namespaces item
// paths so outlines of different documents never collide.
func (m *Model) Refresh(docPath string) {
	collapsed := map[string]bool{}
	m.walk(func(it *Item) {
		if it.collapsed {
			collapsed[it.path] = true
		}
	})

	m.docPath = docPath
	m.roots = nil

	var stack []*Item
	for line := 0; line < m.source.LineCount(); line++ {
		text, err := m.source.LineText(line)
		if err != nil {
			continue
		}
		level, title := parseHeading(text)
		if level == 0 {
			continue
		}
		item := &Item{
			text:  title,
			level: level,
			line:  line,
			path:  fmt.Sprintf("%s#%d:%s", docPath, line, title),
		}
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			m.roots = append(m.roots, item)
		} else {
			parent := stack[len(stack)-1]
			item.parent = parent
			parent.children = append(parent.children, item)
		}
		stack = append(stack, item)
	}

	m.walk(func(it *Item) {
		if collapsed[it.path] {
			it.collapsed = true
		}
	})
}

// parseHeading returns the ATX level (1-6) and title of a heading line,
// or level 0 for any other line.
func parseHeading(line string) (int, string) {
	hashes := 0
	for hashes < len(line) && line[hashes] == '#' {
		hashes++
	}
	if hashes == 0 || hashes > 6 || hashes >= len(line) || line[hashes] != ' ' {
		return 0, ""
	}
	return hashes, strings.TrimSpace(line[hashes+1:])
}

func (m *Model) walk(fn func(*Item)) {
	var rec func(items []*Item)
	rec = func(items []*Item) {
		for _, it := range items {
			fn(it)
			rec(it.children)
		}
	}
	rec(m.roots)
}

// visible returns the items in document order, skipping the subtrees of
// collapsed headings.
func (m *Model) visible() []*Item {
	var out []*Item
	var rec func(items []*Item)
	rec = func(items []*Item) {
		for _, it := range items {
			out = append(out, it)
			if !it.collapsed {
				rec(it.children)
			}
		}
	}
	rec(m.roots)
	return out
}

// Visible returns the currently visible items in display order.
func (m *Model) Visible() []*Item { return m.visible() }

// ScrollOffset returns the current scroll position in visible rows.
func (m *Model) ScrollOffset() int { return m.scrollY }

// --- dispatch.TreeNavigator ---

var _ dispatch.TreeNavigator = (*Model)(nil)

func (m *Model) Focused() (dispatch.TreeItem, bool) {
	idx, items := m.focusIndex()
	if idx < 0 {
		return nil, false
	}
	return items[idx], true
}

func (m *Model) focusIndex() (int, []*Item) {
	items := m.visible()
	for i, it := range items {
		if it.path == m.focus {
			return i, items
		}
	}
	return -1, items
}

func (m *Model) FocusNext() {
	idx, items := m.focusIndex()
	if len(items) == 0 {
		return
	}
	if idx < 0 || idx == len(items)-1 {
		m.focus = items[len(items)-1].path
		return
	}
	m.focus = items[idx+1].path
}

func (m *Model) FocusPrev() {
	idx, items := m.focusIndex()
	if len(items) == 0 {
		return
	}
	if idx <= 0 {
		m.focus = items[0].path
		return
	}
	m.focus = items[idx-1].path
}

func (m *Model) FocusParent() {
	idx, items := m.focusIndex()
	if idx < 0 {
		return
	}
	if parent := items[idx].parent; parent != nil {
		m.focus = parent.path
	}
}

func (m *Model) FocusFirst() {
	if items := m.visible(); len(items) > 0 {
		m.focus = items[0].path
	}
}

func (m *Model) FocusLast() {
	if items := m.visible(); len(items) > 0 {
		m.focus = items[len(items)-1].path
	}
}

func (m *Model) FocusPath(path string) bool {
	var found *Item
	m.walk(func(it *Item) {
		if it.path == path {
			found = it
		}
	})
	if found == nil {
		return false
	}
	for p := found.parent; p != nil; p = p.parent {
		p.collapsed = false
	}
	m.focus = path
	return true
}

func (m *Model) ScrollToTop()    { m.scrollY = 0 }
func (m *Model) ScrollToBottom() { m.scrollY = len(m.visible()) }
func (m *Model) ScrollBy(lines int) {
	m.scrollY += lines
	if m.scrollY < 0 {
		m.scrollY = 0
	}
	if max := len(m.visible()); m.scrollY > max {
		m.scrollY = max
	}
}

func (m *Model) SetCollapsed(item dispatch.TreeItem, collapsed bool) {
	if it, ok := item.(*Item); ok {
		it.collapsed = collapsed
	}
}

func (m *Model) CollapseAll() {
	m.walk(func(it *Item) {
		if len(it.children) > 0 {
			it.collapsed = true
		}
	})
}

func (m *Model) ExpandAll() {
	m.walk(func(it *Item) { it.collapsed = false })
}

func (m *Model) ExpandRecursively(item dispatch.TreeItem) {
	root, ok := item.(*Item)
	if !ok {
		return
	}
	var rec func(it *Item)
	rec = func(it *Item) {
		it.collapsed = false
		for _, c := range it.children {
			rec(c)
		}
	}
	rec(root)
}

// Open jumps the editor to the heading. Outlines have no tab concept,
// so newTab is ignored.
func (m *Model) Open(item dispatch.TreeItem, newTab bool) error {
	it, ok := item.(*Item)
	if !ok || m.onOpen == nil {
		return nil
	}
	return m.onOpen(it.line)
}

// Headings are not files; structural edits happen in the editor.
func (m *Model) Rename(item dispatch.TreeItem) error {
	return fmt.Errorf("outline items cannot be renamed")
}

func (m *Model) Delete(item dispatch.TreeItem) error {
	return fmt.Errorf("outline items cannot be deleted")
}

func (m *Model) CreateFile(dir string) (string, <-chan struct{}, error) {
	return "", nil, fmt.Errorf("outline cannot create files")
}

func (m *Model) CreateFolder(dir string) (string, <-chan struct{}, error) {
	return "", nil, fmt.Errorf("outline cannot create folders")
}

// Sort is a no-op: the outline always follows document order.
func (m *Model) Sort() {}

// Search is not wired for outlines yet.
func (m *Model) Search() {}

func (m *Model) CloseSidebar() {
	if m.onClose != nil {
		m.onClose()
	}
}

func (m *Model) IsFileExplorer() bool { return false }
