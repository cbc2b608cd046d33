package canvas

import (
	"testing"

	"github.com/inkwell-editor/inkwell/internal/dispatch"
)

func newTestCanvas() *Model {
	m := New(Config{})
	// A small cross of nodes around the origin.
	m.nodes = []*Node{
		{ID: 1, X: 0, Y: 0, Text: "center"},
		{ID: 2, X: 100, Y: 0, Text: "right"},
		{ID: 3, X: -100, Y: 0, Text: "left"},
		{ID: 4, X: 0, Y: 100, Text: "below"},
		{ID: 5, X: 300, Y: 10, Text: "far right"},
	}
	m.nextID = 6
	return m
}

func selectedID(t *testing.T, m *Model) int {
	t.Helper()
	n, ok := m.Selected()
	if !ok {
		t.Fatal("no selection")
	}
	return n.ID
}

func TestSelectNearestPicksViewportCenter(t *testing.T) {
	m := newTestCanvas()

	m.SelectNearest()
	if got := selectedID(t, m); got != 1 {
		t.Errorf("selected %d, want center node 1", got)
	}

	// Pan so the viewport centers near the far-right node.
	m.SetTransform("translate(-290,-5) scale(1)")
	m.SelectNearest()
	if got := selectedID(t, m); got != 5 {
		t.Errorf("after pan: selected %d, want 5", got)
	}
}

func TestMoveSelectionDirectional(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		want   int
	}{
		{"right picks nearest in half-plane", 1, 0, 2},
		{"left", -1, 0, 3},
		{"down", 0, 1, 4},
		{"up with nothing above stays", 0, -1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestCanvas()
			m.SelectNearest()
			m.MoveSelection(tt.dx, tt.dy)
			if got := selectedID(t, m); got != tt.want {
				t.Errorf("selected %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMoveSelectionSkipsFartherNode(t *testing.T) {
	m := newTestCanvas()
	m.SelectNearest()
	// Two nodes lie to the right; the nearer one wins.
	m.MoveSelection(1, 0)
	if got := selectedID(t, m); got != 2 {
		t.Fatalf("first move selected %d, want 2", got)
	}
	m.MoveSelection(1, 0)
	if got := selectedID(t, m); got != 5 {
		t.Errorf("second move selected %d, want 5", got)
	}
}

func TestCreateNodeAtCenterSelectsIt(t *testing.T) {
	m := New(Config{})
	m.SetTransform("translate(-40,-60) scale(1)")
	m.CreateNode(dispatch.NodeText)

	n, ok := m.Selected()
	if !ok {
		t.Fatal("created node not selected")
	}
	if n.X != 40 || n.Y != 60 {
		t.Errorf("node at (%g,%g), want (40,60)", n.X, n.Y)
	}
	if len(m.Nodes()) != 1 {
		t.Errorf("node count = %d, want 1", len(m.Nodes()))
	}
}

func TestDeleteSelectionClearsIt(t *testing.T) {
	m := newTestCanvas()
	m.SelectNearest()
	m.DeleteSelection()
	if m.HasSelection() {
		t.Error("selection survived delete")
	}
	if len(m.Nodes()) != 4 {
		t.Errorf("node count = %d, want 4", len(m.Nodes()))
	}
	// Deleting again with no selection is a no-op.
	m.DeleteSelection()
	if len(m.Nodes()) != 4 {
		t.Error("no-selection delete removed a node")
	}
}

func TestZoomToSelectionCentersTransform(t *testing.T) {
	m := newTestCanvas()
	m.SetTransform("translate(-290,-5) scale(0.5)")
	m.SelectNearest() // far right node at (300,10)
	m.ZoomToSelection()

	x, y, scale, err := dispatch.ParseTransform(m.Transform())
	if err != nil {
		t.Fatalf("ParseTransform: %v", err)
	}
	if x != -300 || y != -10 {
		t.Errorf("translate = (%g,%g), want (-300,-10)", x, y)
	}
	if scale != 1 {
		t.Errorf("scale = %g, want 1", scale)
	}
}

func TestEditSelectionCallsHost(t *testing.T) {
	var edited *Node
	m := New(Config{OnEdit: func(n *Node) { edited = n }})
	m.CreateNode(dispatch.NodeFile)
	m.EditSelection()
	if edited == nil {
		t.Fatal("OnEdit not called")
	}
	if sel, _ := m.Selected(); edited != sel {
		t.Error("OnEdit received a different node")
	}
}
