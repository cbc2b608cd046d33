package dispatch

import (
	"path/filepath"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// key builds a plain rune event.
func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

type fakeItem struct {
	path      string
	leaf      bool
	collapsed bool
}

func (i *fakeItem) Path() string    { return i.path }
func (i *fakeItem) Name() string    { return filepath.Base(i.path) }
func (i *fakeItem) IsLeaf() bool    { return i.leaf }
func (i *fakeItem) Collapsed() bool { return i.collapsed }

// fakeTree records every navigator call by name.
type fakeTree struct {
	focused      *fakeItem
	explorer     bool
	calls        []string
	createdPath  string
	registered   chan struct{}
	createErr    error
	mu           sync.Mutex
	knownPaths   map[string]bool
	renamedPaths []string
}

// registerPath marks a path as present in the view index, as the host
// would after its asynchronous registration step.
func (t *fakeTree) registerPath(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.knownPaths == nil {
		t.knownPaths = map[string]bool{}
	}
	t.knownPaths[path] = true
}

func (t *fakeTree) record(s string) { t.calls = append(t.calls, s) }

func (t *fakeTree) Focused() (TreeItem, bool) {
	if t.focused == nil {
		return nil, false
	}
	return t.focused, true
}
func (t *fakeTree) FocusNext()   { t.record("next") }
func (t *fakeTree) FocusPrev()   { t.record("prev") }
func (t *fakeTree) FocusParent() { t.record("parent") }
func (t *fakeTree) FocusFirst()  { t.record("first") }
func (t *fakeTree) FocusLast()   { t.record("last") }
func (t *fakeTree) FocusPath(path string) bool {
	t.mu.Lock()
	known := t.knownPaths[path]
	t.mu.Unlock()
	if !known {
		return false
	}
	t.focused = &fakeItem{path: path, leaf: true}
	return true
}
func (t *fakeTree) ScrollToTop()       { t.record("scrollTop") }
func (t *fakeTree) ScrollToBottom()    { t.record("scrollBottom") }
func (t *fakeTree) ScrollBy(lines int) { t.record("scrollBy") }

func (t *fakeTree) SetCollapsed(item TreeItem, collapsed bool) {
	item.(*fakeItem).collapsed = collapsed
	if collapsed {
		t.record("collapse")
	} else {
		t.record("expand")
	}
}
func (t *fakeTree) CollapseAll()                    { t.record("collapseAll") }
func (t *fakeTree) ExpandAll()                      { t.record("expandAll") }
func (t *fakeTree) ExpandRecursively(item TreeItem) { t.record("expandRec") }

func (t *fakeTree) Open(item TreeItem, newTab bool) error {
	if newTab {
		t.record("openTab:" + item.Path())
	} else {
		t.record("open:" + item.Path())
	}
	return nil
}
func (t *fakeTree) Rename(item TreeItem) error {
	t.record("rename:" + item.Path())
	t.renamedPaths = append(t.renamedPaths, item.Path())
	return nil
}
func (t *fakeTree) Delete(item TreeItem) error {
	t.record("delete:" + item.Path())
	return nil
}
func (t *fakeTree) CreateFile(dir string) (string, <-chan struct{}, error) {
	t.record("createFile:" + dir)
	return t.createdPath, t.registered, t.createErr
}
func (t *fakeTree) CreateFolder(dir string) (string, <-chan struct{}, error) {
	t.record("createFolder:" + dir)
	return t.createdPath, t.registered, t.createErr
}

func (t *fakeTree) Sort()                { t.record("sort") }
func (t *fakeTree) Search()              { t.record("search") }
func (t *fakeTree) CloseSidebar()        { t.record("closeSidebar") }
func (t *fakeTree) IsFileExplorer() bool { return t.explorer }

// fakeCanvas keeps a live transform string.
type fakeCanvas struct {
	selected  bool
	transform string
	calls     []string
}

func (c *fakeCanvas) record(s string) { c.calls = append(c.calls, s) }

func (c *fakeCanvas) HasSelection() bool { return c.selected }
func (c *fakeCanvas) SelectNearest() {
	c.selected = true
	c.record("selectNearest")
}
func (c *fakeCanvas) MoveSelection(dx, dy int)      { c.record("move") }
func (c *fakeCanvas) CreateNode(kind NodeKind)      { c.record("create") }
func (c *fakeCanvas) DeleteSelection()              { c.record("deleteSel") }
func (c *fakeCanvas) EditSelection()                { c.record("editSel") }
func (c *fakeCanvas) ZoomToSelection()              { c.record("zoomSel") }
func (c *fakeCanvas) OpenSearch()                   { c.record("search") }
func (c *fakeCanvas) Transform() string             { return c.transform }
func (c *fakeCanvas) SetTransform(transform string) { c.transform = transform }

// fakeScroller records scroll operations.
type fakeScroller struct {
	offset int
	calls  []string
}

func (s *fakeScroller) record(v string) { s.calls = append(s.calls, v) }

func (s *fakeScroller) ScrollBy(lines int) {
	s.offset += lines
	s.record("scrollBy")
}
func (s *fakeScroller) PageDown()                 { s.record("pageDown") }
func (s *fakeScroller) PageUp()                   { s.record("pageUp") }
func (s *fakeScroller) ScrollToTop()              { s.record("top") }
func (s *fakeScroller) ScrollToBottom()           { s.record("bottom") }
func (s *fakeScroller) ScrollHorizontal(cols int) { s.record("horizontal") }
func (s *fakeScroller) PageLeft()                 { s.record("pageLeft") }
func (s *fakeScroller) PageRight()                { s.record("pageRight") }
func (s *fakeScroller) ToggleEditMode()           { s.record("editMode") }
func (s *fakeScroller) HistoryBack()              { s.record("back") }
func (s *fakeScroller) HistoryForward()           { s.record("forward") }
func (s *fakeScroller) OpenSearch()               { s.record("search") }
func (s *fakeScroller) ZoomIn()                   { s.record("zoomIn") }
func (s *fakeScroller) ZoomOut()                  { s.record("zoomOut") }

type fakeClipboard struct {
	texts []string
}

func (c *fakeClipboard) WriteString(text string) error {
	c.texts = append(c.texts, text)
	return nil
}

type fakeCommander struct {
	ids []string
}

func (c *fakeCommander) RunCommand(id string) error {
	c.ids = append(c.ids, id)
	return nil
}

type fakeDock struct {
	calls []string
}

func (d *fakeDock) NextTab() { d.calls = append(d.calls, "next") }
func (d *fakeDock) PrevTab() { d.calls = append(d.calls, "prev") }

type fakeProperties struct {
	focused bool
	deleted int
}

func (p *fakeProperties) HasFocusedProperty() bool { return p.focused }
func (p *fakeProperties) DeleteFocusedProperties() { p.deleted++ }

type fakeHeading struct {
	collapsed bool
}

func (h *fakeHeading) Collapsed() bool             { return h.collapsed }
func (h *fakeHeading) SetCollapsed(collapsed bool) { h.collapsed = collapsed }
