package outline

import (
	"testing"
)

type docSource []string

func (d docSource) LineText(line int) (string, error) { return d[line], nil }
func (d docSource) LineCount() int                    { return len(d) }

func newTestOutline(t *testing.T) *Model {
	t.Helper()
	doc := docSource{
		"# Intro",
		"some text",
		"## Setup",
		"## Usage",
		"### Flags",
		"more text",
		"# Appendix",
	}
	m := New(Config{Source: doc})
	m.Refresh("/doc.md")
	return m
}

func visibleNames(m *Model) []string {
	var names []string
	for _, it := range m.Visible() {
		names = append(names, it.Name())
	}
	return names
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

func TestRefreshBuildsHierarchy(t *testing.T) {
	m := newTestOutline(t)

	want := []string{"Intro", "Setup", "Usage", "Flags", "Appendix"}
	if got := visibleNames(m); !equal(got, want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}

	items := m.Visible()
	if items[3].parent == nil || items[3].parent.Name() != "Usage" {
		t.Errorf("Flags parent = %v, want Usage", items[3].parent)
	}
	if items[4].Line() != 6 {
		t.Errorf("Appendix line = %d, want 6", items[4].Line())
	}
}

func TestCollapseHidesSubtree(t *testing.T) {
	m := newTestOutline(t)
	m.FocusFirst() // Intro

	item, _ := m.Focused()
	m.SetCollapsed(item, true)

	want := []string{"Intro", "Appendix"}
	if got := visibleNames(m); !equal(got, want) {
		t.Errorf("visible after collapse = %v, want %v", got, want)
	}
}

func TestFocusNavigation(t *testing.T) {
	m := newTestOutline(t)

	m.FocusFirst()
	m.FocusNext()
	m.FocusNext()
	if item, ok := m.Focused(); !ok || item.Name() != "Usage" {
		t.Fatalf("focus = %v, want Usage", item)
	}

	m.FocusNext() // Flags
	m.FocusParent()
	if item, ok := m.Focused(); !ok || item.Name() != "Usage" {
		t.Errorf("focus after FocusParent = %v, want Usage", item)
	}

	m.FocusLast()
	if item, ok := m.Focused(); !ok || item.Name() != "Appendix" {
		t.Errorf("focus after FocusLast = %v, want Appendix", item)
	}
}

func TestFocusPathExpandsAncestors(t *testing.T) {
	m := newTestOutline(t)
	m.CollapseAll()

	items := m.Visible() // only top-level headings visible
	var flagsPath string
	m.walk(func(it *Item) {
		if it.Name() == "Flags" {
			flagsPath = it.Path()
		}
	})
	if len(items) != 2 || flagsPath == "" {
		t.Fatalf("collapse-all setup failed: visible=%v", visibleNames(m))
	}

	if !m.FocusPath(flagsPath) {
		t.Fatal("FocusPath returned false for existing heading")
	}
	item, ok := m.Focused()
	if !ok || item.Name() != "Flags" {
		t.Errorf("focus = %v, want Flags", item)
	}
}

func TestOpenJumpsToHeadingLine(t *testing.T) {
	opened := -1
	doc := docSource{"# One", "", "## Two"}
	m := New(Config{
		Source: doc,
		OnOpen: func(line int) error { opened = line; return nil },
	})
	m.Refresh("/doc.md")

	m.FocusLast()
	item, _ := m.Focused()
	if err := m.Open(item, false); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if opened != 2 {
		t.Errorf("opened line = %d, want 2", opened)
	}
}

func TestRefreshPreservesCollapseState(t *testing.T) {
	m := newTestOutline(t)
	m.FocusFirst()
	item, _ := m.Focused()
	m.SetCollapsed(item, true)

	m.Refresh("/doc.md")

	want := []string{"Intro", "Appendix"}
	if got := visibleNames(m); !equal(got, want) {
		t.Errorf("visible after refresh = %v, want %v", got, want)
	}
}

func TestStructuralEditsRejected(t *testing.T) {
	m := newTestOutline(t)
	m.FocusFirst()
	item, _ := m.Focused()

	if err := m.Rename(item); err == nil {
		t.Error("Rename should fail for outline items")
	}
	if err := m.Delete(item); err == nil {
		t.Error("Delete should fail for outline items")
	}
	if _, _, err := m.CreateFile("/"); err == nil {
		t.Error("CreateFile should fail for outlines")
	}
}
