// Package canvas implements a freeform node canvas: text or file nodes
// placed on an infinite plane, with one selected node and a pan/zoom
// transform. It backs the canvas branch of the key dispatcher.
package canvas

import (
	"fmt"
	"math"

	"github.com/inkwell-editor/inkwell/internal/dispatch"
	"github.com/inkwell-editor/inkwell/internal/logger"
)

// Node is one element on the canvas.
type Node struct {
	ID   int
	Kind dispatch.NodeKind
	X, Y float64
	Text string
	// Path is set for file nodes.
	Path string
}

// Config bundles the dependencies for New.
type Config struct {
	// OnEdit is called when the user begins editing the selected node.
	OnEdit func(node *Node)
	// OnSearch opens the canvas search input.
	OnSearch func()
}

// Model is the canvas state. It satisfies dispatch.CanvasEditor.
type Model struct {
	cfg       Config
	nodes     []*Node
	selected  *Node
	nextID    int
	transform string
}

var _ dispatch.CanvasEditor = (*Model)(nil)

// New creates an empty canvas with an identity transform.
func New(cfg Config) *Model {
	return &Model{
		cfg:       cfg,
		nextID:    1,
		transform: "translate(0,0) scale(1)",
	}
}

// Nodes exposes the node list for drawing.
func (m *Model) Nodes() []*Node { return m.nodes }

// Selected returns the selected node, if any.
func (m *Model) Selected() (*Node, bool) {
	return m.selected, m.selected != nil
}

func (m *Model) HasSelection() bool { return m.selected != nil }

// SelectNearest selects the node closest to the viewport center, which
// is the negated translate component of the transform.
func (m *Model) SelectNearest() {
	if len(m.nodes) == 0 {
		return
	}
	cx, cy := 0.0, 0.0
	if x, y, _, err := dispatch.ParseTransform(m.transform); err == nil {
		cx, cy = -x, -y
	}
	var best *Node
	bestDist := math.Inf(1)
	for _, n := range m.nodes {
		d := math.Hypot(n.X-cx, n.Y-cy)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	m.selected = best
}

// MoveSelection moves the selection to the nearest node in the given
// direction. Nothing happens when no node lies that way.
func (m *Model) MoveSelection(dx, dy int) {
	if m.selected == nil {
		return
	}
	var best *Node
	bestDist := math.Inf(1)
	for _, n := range m.nodes {
		if n == m.selected {
			continue
		}
		vx, vy := n.X-m.selected.X, n.Y-m.selected.Y
		// The candidate must lie in the requested half-plane
		if dx != 0 && vx*float64(dx) <= 0 {
			continue
		}
		if dy != 0 && vy*float64(dy) <= 0 {
			continue
		}
		d := math.Hypot(vx, vy)
		if d < bestDist {
			best, bestDist = n, d
		}
	}
	if best != nil {
		m.selected = best
	}
}

// CreateNode places a new node at the viewport center and selects it.
func (m *Model) CreateNode(kind dispatch.NodeKind) {
	cx, cy := 0.0, 0.0
	if x, y, _, err := dispatch.ParseTransform(m.transform); err == nil {
		cx, cy = -x, -y
	}
	node := &Node{ID: m.nextID, Kind: kind, X: cx, Y: cy}
	m.nextID++
	m.nodes = append(m.nodes, node)
	m.selected = node
	logger.Debugf("canvas: created node %d", node.ID)
}

func (m *Model) DeleteSelection() {
	if m.selected == nil {
		return
	}
	for i, n := range m.nodes {
		if n == m.selected {
			m.nodes = append(m.nodes[:i], m.nodes[i+1:]...)
			break
		}
	}
	m.selected = nil
}

func (m *Model) EditSelection() {
	if m.selected == nil || m.cfg.OnEdit == nil {
		return
	}
	m.cfg.OnEdit(m.selected)
}

// ZoomToSelection centers the viewport on the selected node at unit
// scale.
func (m *Model) ZoomToSelection() {
	if m.selected == nil {
		return
	}
	m.transform = fmt.Sprintf("translate(%g,%g) scale(1)", -m.selected.X, -m.selected.Y)
}

func (m *Model) OpenSearch() {
	if m.cfg.OnSearch != nil {
		m.cfg.OnSearch()
	}
}

func (m *Model) Transform() string             { return m.transform }
func (m *Model) SetTransform(transform string) { m.transform = transform }
