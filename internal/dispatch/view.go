// Package dispatch implements the context-sensitive key layer: a single
// keydown entry point that routes raw key events to navigation and
// structural actions depending on the kind of view that has focus.
package dispatch

// ViewKind tags the active pane's view. The dispatcher matches on the
// tag; each kind carries exactly the capability interface its branch
// needs.
type ViewKind int

const (
	// KindNone means no pane is active. Everything passes through.
	KindNone ViewKind = iota
	// KindTree covers hierarchical list views: file explorer, outline.
	KindTree
	// KindCanvas is a freeform node/edge canvas.
	KindCanvas
	// KindPreview covers read-only scrollable views: markdown preview,
	// PDF, kanban, tabular.
	KindPreview
	// KindEmpty is an empty pane offering single-key shortcuts.
	KindEmpty
)

// PreviewMode distinguishes preview subtypes where key bindings differ.
type PreviewMode int

const (
	PreviewMarkdown PreviewMode = iota
	PreviewPDF
	PreviewKanban
	PreviewTable
)

// View is the tagged union handed to the dispatcher. Exactly the field
// matching Kind is set; the rest stay nil.
type View struct {
	Kind        ViewKind
	Tree        TreeNavigator
	Canvas      CanvasEditor
	Scroll      Scroller
	PreviewMode PreviewMode
}

// TreeView wraps a tree navigator. isExplorer marks the file explorer,
// whose open-leaf behavior additionally closes the sidebar.
func TreeView(nav TreeNavigator) View {
	return View{Kind: KindTree, Tree: nav}
}

// CanvasView wraps a canvas editor.
func CanvasView(canvas CanvasEditor) View {
	return View{Kind: KindCanvas, Canvas: canvas}
}

// PreviewView wraps a scroll handle plus the preview subtype.
func PreviewView(scroll Scroller, mode PreviewMode) View {
	return View{Kind: KindPreview, Scroll: scroll, PreviewMode: mode}
}

// EmptyView tags an empty pane.
func EmptyView() View {
	return View{Kind: KindEmpty}
}

// TreeItem is one host-owned node in a navigation tree.
type TreeItem interface {
	Path() string
	Name() string
	IsLeaf() bool
	Collapsed() bool
}

// TreeNavigator is the capability interface of tree-like views. The
// dispatcher reads and mutates focus/collapse state; the host owns the
// tree's lifecycle and rendering.
type TreeNavigator interface {
	Focused() (TreeItem, bool)
	FocusNext()
	FocusPrev()
	FocusParent()
	// FocusFirst/FocusLast address the first/last realized item; in a
	// virtualized tree that is the first/last rendered one.
	FocusFirst()
	FocusLast()
	// FocusPath focuses the item registered under path, reporting
	// whether the item exists in the view's index yet.
	FocusPath(path string) bool
	ScrollToTop()
	ScrollToBottom()
	ScrollBy(lines int)

	SetCollapsed(item TreeItem, collapsed bool)
	CollapseAll()
	ExpandAll()
	// ExpandRecursively fully expands the subtree under item.
	ExpandRecursively(item TreeItem)

	// Open opens a leaf item. newTab requests a separate tab.
	Open(item TreeItem, newTab bool) error
	Rename(item TreeItem) error
	// Delete trashes the item; any confirmation dialog is host-owned.
	Delete(item TreeItem) error
	// CreateFile/CreateFolder create an entry inside dir and return its
	// path plus a completion channel that closes once the new item has
	// registered in the view's index. A nil channel means the host
	// offers no completion signal and the caller must poll FocusPath.
	CreateFile(dir string) (path string, registered <-chan struct{}, err error)
	CreateFolder(dir string) (path string, registered <-chan struct{}, err error)

	Sort()
	Search()
	// CloseSidebar collapses the sidebar this pane lives in.
	CloseSidebar()
	// IsFileExplorer reports the file-explorer subtype, whose leaf-open
	// also closes the sidebar.
	IsFileExplorer() bool
}

// NodeKind selects what a canvas create action produces.
type NodeKind int

const (
	NodeText NodeKind = iota
	NodeFile
)

// CanvasEditor is the capability interface of canvas views. Panning goes
// through the transform string so the dispatcher and host share one
// source of truth for the viewport.
type CanvasEditor interface {
	HasSelection() bool
	// SelectNearest picks the node closest to the viewport center.
	SelectNearest()
	MoveSelection(dx, dy int)
	CreateNode(kind NodeKind)
	DeleteSelection()
	EditSelection()
	ZoomToSelection()
	OpenSearch()
	Transform() string
	SetTransform(transform string)
}

// Scroller is the capability interface of preview-like views.
type Scroller interface {
	ScrollBy(lines int)
	PageDown()
	PageUp()
	ScrollToTop()
	ScrollToBottom()
	ScrollHorizontal(cols int)
	PageLeft()
	PageRight()
	// ToggleEditMode switches back to the editable source. Only wired
	// for the markdown preview.
	ToggleEditMode()
	HistoryBack()
	HistoryForward()
	OpenSearch()
	// ZoomIn/ZoomOut apply to the PDF preview only.
	ZoomIn()
	ZoomOut()
}
