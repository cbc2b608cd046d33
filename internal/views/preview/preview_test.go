package preview

import (
	"fmt"
	"testing"
)

func lines(n, width int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%0*d", width, i)
	}
	return out
}

func TestScrollClamping(t *testing.T) {
	m := New(Config{})
	m.SetContent("", lines(50, 120))
	m.SetViewSize(80, 20)

	m.ScrollBy(10)
	if y, _ := m.Viewport(); y != 10 {
		t.Errorf("offsetY = %d, want 10", y)
	}
	m.ScrollBy(1000)
	if y, _ := m.Viewport(); y != 30 {
		t.Errorf("offsetY past end = %d, want 30", y)
	}
	m.ScrollBy(-1000)
	if y, _ := m.Viewport(); y != 0 {
		t.Errorf("offsetY past top = %d, want 0", y)
	}

	m.ScrollHorizontal(1000)
	if _, x := m.Viewport(); x != 40 {
		t.Errorf("offsetX past right = %d, want 40", x)
	}
	m.PageLeft()
	if _, x := m.Viewport(); x != 0 {
		t.Errorf("offsetX after page left = %d, want 0", x)
	}
}

func TestPageAndJumpKeys(t *testing.T) {
	m := New(Config{})
	m.SetContent("", lines(100, 10))
	m.SetViewSize(80, 20)

	m.PageDown()
	if y, _ := m.Viewport(); y != 20 {
		t.Errorf("after PageDown: %d, want 20", y)
	}
	m.ScrollToBottom()
	if y, _ := m.Viewport(); y != 80 {
		t.Errorf("after ScrollToBottom: %d, want 80", y)
	}
	m.PageUp()
	if y, _ := m.Viewport(); y != 60 {
		t.Errorf("after PageUp: %d, want 60", y)
	}
	m.ScrollToTop()
	if y, _ := m.Viewport(); y != 0 {
		t.Errorf("after ScrollToTop: %d, want 0", y)
	}
}

func TestShortDocumentNeverScrolls(t *testing.T) {
	m := New(Config{})
	m.SetContent("", lines(5, 10))
	m.SetViewSize(80, 20)

	m.PageDown()
	m.ScrollToBottom()
	if y, x := m.Viewport(); y != 0 || x != 0 {
		t.Errorf("viewport = (%d,%d), want (0,0)", y, x)
	}
}

func TestSetContentResetsViewport(t *testing.T) {
	m := New(Config{})
	m.SetContent("", lines(50, 120))
	m.SetViewSize(80, 20)
	m.ScrollBy(15)
	m.ScrollHorizontal(10)

	m.SetContent("", lines(50, 120))
	if y, x := m.Viewport(); y != 0 || x != 0 {
		t.Errorf("viewport after SetContent = (%d,%d), want (0,0)", y, x)
	}
}

func TestHistoryNavigation(t *testing.T) {
	opened := []string{}
	m := New(Config{})
	m.cfg.OpenPath = func(path string) error {
		opened = append(opened, path)
		m.SetContent(path, lines(3, 10))
		return nil
	}

	m.SetContent("/a.md", nil)
	m.SetContent("/b.md", nil)
	m.SetContent("/c.md", nil)

	m.HistoryBack()
	m.HistoryBack()
	if want := []string{"/b.md", "/a.md"}; !equal(opened, want) {
		t.Fatalf("opened = %v, want %v", opened, want)
	}
	// At the start, back is a no-op.
	m.HistoryBack()
	if len(opened) != 2 {
		t.Errorf("back at start reopened: %v", opened)
	}

	m.HistoryForward()
	if opened[len(opened)-1] != "/b.md" {
		t.Errorf("forward opened %q, want /b.md", opened[len(opened)-1])
	}

	// Visiting a new document truncates the forward entries.
	m.SetContent("/d.md", nil)
	m.HistoryForward()
	if opened[len(opened)-1] != "/b.md" {
		t.Errorf("forward after branch opened %q, want no reopen", opened[len(opened)-1])
	}
}

func TestToggleEditModeCallsHost(t *testing.T) {
	toggled := false
	m := New(Config{OnToggleEdit: func() { toggled = true }})
	m.ToggleEditMode()
	if !toggled {
		t.Error("OnToggleEdit not called")
	}
}

func TestZoomSteps(t *testing.T) {
	m := New(Config{})
	m.ZoomIn()
	m.ZoomIn()
	m.ZoomOut()
	if m.Zoom() != 1 {
		t.Errorf("zoom = %d, want 1", m.Zoom())
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
