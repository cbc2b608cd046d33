// Package filetree implements the file explorer model: a collapsible
// tree over a workspace directory with a single focused item. It backs
// the tree-navigation branch of the key dispatcher.
package filetree

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inkwell-editor/inkwell/internal/dispatch"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
)

// Node is one entry in the tree.
type Node struct {
	path      string
	dir       bool
	collapsed bool
	parent    *Node
	children  []*Node
}

func (n *Node) Path() string    { return n.path }
func (n *Node) Name() string    { return filepath.Base(n.path) }
func (n *Node) IsLeaf() bool    { return !n.dir }
func (n *Node) Collapsed() bool { return n.collapsed }

// Config bundles the dependencies for New.
type Config struct {
	Root         string
	EventManager *event.Manager
	// OpenFile is called when a leaf is opened. newTab requests a
	// separate tab.
	OpenFile func(path string, newTab bool) error
	// StartRename is called to begin an interactive rename; the actual
	// renaming UI is owned by the host.
	StartRename func(path string) error
	// OnClose collapses the sidebar the tree lives in.
	OnClose func()
}

// Model is the file explorer state. It satisfies dispatch.TreeNavigator.
type Model struct {
	cfg     Config
	root    *Node
	focused *Node
	scrollY int
	// sortByName toggles between name and modtime ordering
	sortByName bool
	searchTerm string
}

var _ dispatch.TreeNavigator = (*Model)(nil)

// New builds a model over the given root directory.
func New(cfg Config) (*Model, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("filetree: root directory required")
	}
	m := &Model{cfg: cfg, sortByName: true}
	if err := m.Refresh(); err != nil {
		return nil, err
	}
	return m, nil
}

// Refresh rereads the workspace from disk, keeping collapse and focus
// state for paths that still exist.
func (m *Model) Refresh() error {
	collapsed := map[string]bool{}
	var focusedPath string
	if m.root != nil {
		m.walk(m.root, func(n *Node) {
			if n.dir {
				collapsed[n.path] = n.collapsed
			}
		})
	}
	if m.focused != nil {
		focusedPath = m.focused.path
	}

	root, err := m.readDir(m.cfg.Root, nil)
	if err != nil {
		return fmt.Errorf("filetree: reading %s: %w", m.cfg.Root, err)
	}
	m.root = root
	m.walk(m.root, func(n *Node) {
		if was, ok := collapsed[n.path]; ok {
			n.collapsed = was
		}
	})
	m.focused = nil
	if focusedPath != "" {
		m.FocusPath(focusedPath)
	}
	if m.focused == nil {
		if visible := m.visible(); len(visible) > 0 {
			m.focused = visible[0]
		}
	}
	return nil
}

func (m *Model) readDir(path string, parent *Node) (*Node, error) {
	node := &Node{path: path, dir: true, parent: parent, collapsed: parent != nil}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		childPath := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			child, err := m.readDir(childPath, node)
			if err != nil {
				logger.Warnf("filetree: skipping %s: %v", childPath, err)
				continue
			}
			node.children = append(node.children, child)
		} else {
			node.children = append(node.children, &Node{path: childPath, parent: node})
		}
	}
	m.sortChildren(node)
	return node, nil
}

func (m *Model) sortChildren(node *Node) {
	sort.SliceStable(node.children, func(i, j int) bool {
		a, b := node.children[i], node.children[j]
		// Folders first, then the configured order
		if a.dir != b.dir {
			return a.dir
		}
		if m.sortByName {
			return a.Name() < b.Name()
		}
		return a.Name() > b.Name()
	})
}

func (m *Model) walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		m.walk(c, fn)
	}
}

// visible returns the depth-first list of nodes under expanded folders.
// The root itself is not listed.
func (m *Model) visible() []*Node {
	var out []*Node
	var rec func(n *Node)
	rec = func(n *Node) {
		for _, c := range n.children {
			if m.searchTerm != "" && !c.matchesSearch(m.searchTerm) {
				continue
			}
			out = append(out, c)
			if c.dir && !c.collapsed {
				rec(c)
			}
		}
	}
	if m.root != nil {
		rec(m.root)
	}
	return out
}

func (n *Node) matchesSearch(term string) bool {
	if strings.Contains(strings.ToLower(n.Name()), strings.ToLower(term)) {
		return true
	}
	for _, c := range n.children {
		if c.matchesSearch(term) {
			return true
		}
	}
	return false
}

// Visible exposes the rendered node list for drawing.
func (m *Model) Visible() []*Node { return m.visible() }

// ScrollOffset returns the current scroll position for drawing.
func (m *Model) ScrollOffset() int { return m.scrollY }

// --- dispatch.TreeNavigator ---

func (m *Model) Focused() (dispatch.TreeItem, bool) {
	if m.focused == nil {
		return nil, false
	}
	return m.focused, true
}

func (m *Model) focusIndex() (int, []*Node) {
	visible := m.visible()
	for i, n := range visible {
		if n == m.focused {
			return i, visible
		}
	}
	return -1, visible
}

func (m *Model) FocusNext() {
	i, visible := m.focusIndex()
	if i < 0 && len(visible) > 0 {
		m.focused = visible[0]
		return
	}
	if i+1 < len(visible) {
		m.focused = visible[i+1]
	}
}

func (m *Model) FocusPrev() {
	i, visible := m.focusIndex()
	if i < 0 && len(visible) > 0 {
		m.focused = visible[0]
		return
	}
	if i > 0 {
		m.focused = visible[i-1]
	}
}

func (m *Model) FocusParent() {
	if m.focused == nil || m.focused.parent == nil || m.focused.parent == m.root {
		return
	}
	m.focused = m.focused.parent
}

func (m *Model) FocusFirst() {
	if visible := m.visible(); len(visible) > 0 {
		m.focused = visible[0]
	}
}

func (m *Model) FocusLast() {
	if visible := m.visible(); len(visible) > 0 {
		m.focused = visible[len(visible)-1]
	}
}

func (m *Model) FocusPath(path string) bool {
	var found *Node
	if m.root == nil {
		return false
	}
	m.walk(m.root, func(n *Node) {
		if n.path == path {
			found = n
		}
	})
	if found == nil {
		return false
	}
	// Expand ancestors so the item is actually reachable
	for p := found.parent; p != nil; p = p.parent {
		p.collapsed = false
	}
	m.focused = found
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
	if n, ok := item.(*Node); ok && n.dir {
		n.collapsed = collapsed
	}
}

func (m *Model) CollapseAll() {
	m.walk(m.root, func(n *Node) {
		if n.dir && n != m.root {
			n.collapsed = true
		}
	})
}

func (m *Model) ExpandAll() {
	m.walk(m.root, func(n *Node) {
		n.collapsed = false
	})
}

func (m *Model) ExpandRecursively(item dispatch.TreeItem) {
	n, ok := item.(*Node)
	if !ok {
		return
	}
	m.walk(n, func(c *Node) {
		c.collapsed = false
	})
}

func (m *Model) Open(item dispatch.TreeItem, newTab bool) error {
	if m.cfg.OpenFile == nil {
		return nil
	}
	return m.cfg.OpenFile(item.Path(), newTab)
}

func (m *Model) Rename(item dispatch.TreeItem) error {
	if m.cfg.StartRename == nil {
		return nil
	}
	return m.cfg.StartRename(item.Path())
}

// Delete moves the item into a .trash directory under the workspace root
// rather than unlinking it.
func (m *Model) Delete(item dispatch.TreeItem) error {
	trashDir := filepath.Join(m.cfg.Root, ".trash")
	if err := os.MkdirAll(trashDir, 0o755); err != nil {
		return fmt.Errorf("filetree: preparing trash: %w", err)
	}
	target := filepath.Join(trashDir, filepath.Base(item.Path()))
	target = uniquePath(target)
	if err := os.Rename(item.Path(), target); err != nil {
		return fmt.Errorf("filetree: trashing %s: %w", item.Path(), err)
	}
	if m.cfg.EventManager != nil {
		m.cfg.EventManager.Dispatch(event.TypeFileTrashed, event.FileTrashedData{Path: item.Path()})
	}
	return m.Refresh()
}

// CreateFile creates an untitled file inside dir. The returned channel is
// already closed: registration is synchronous here because the model
// refreshes its index before returning.
func (m *Model) CreateFile(dir string) (string, <-chan struct{}, error) {
	return m.create(dir, false)
}

// CreateFolder creates an untitled folder inside dir.
func (m *Model) CreateFolder(dir string) (string, <-chan struct{}, error) {
	return m.create(dir, true)
}

func (m *Model) create(dir string, folder bool) (string, <-chan struct{}, error) {
	if dir == "" {
		dir = m.cfg.Root
	}
	name := "Untitled.md"
	if folder {
		name = "Untitled"
	}
	path := uniquePath(filepath.Join(dir, name))

	if folder {
		if err := os.Mkdir(path, 0o755); err != nil {
			return "", nil, fmt.Errorf("filetree: creating folder: %w", err)
		}
	} else {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			return "", nil, fmt.Errorf("filetree: creating file: %w", err)
		}
		f.Close()
	}

	if err := m.Refresh(); err != nil {
		return "", nil, err
	}
	if m.cfg.EventManager != nil {
		m.cfg.EventManager.Dispatch(event.TypeFileCreated, event.FileCreatedData{Path: path, Folder: folder})
	}
	registered := make(chan struct{})
	close(registered)
	return path, registered, nil
}

func (m *Model) Sort() {
	m.sortByName = !m.sortByName
	m.walk(m.root, m.sortChildren)
}

// Search sets a name filter; an empty focused search clears it. The
// interactive input is host-owned, so this just toggles filter state.
func (m *Model) Search() {
	m.searchTerm = ""
}

// SetSearchTerm applies a name filter to the visible list.
func (m *Model) SetSearchTerm(term string) {
	m.searchTerm = term
}

func (m *Model) CloseSidebar() {
	if m.cfg.OnClose != nil {
		m.cfg.OnClose()
	}
}

func (m *Model) IsFileExplorer() bool { return true }

// uniquePath appends a counter until the path does not exist.
func uniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s %d%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
