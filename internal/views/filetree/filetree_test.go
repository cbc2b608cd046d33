package filetree

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestTree(t *testing.T) (*Model, string) {
	t.Helper()
	root := t.TempDir()
	mustMkdir(t, filepath.Join(root, "notes"))
	mustWrite(t, filepath.Join(root, "notes", "a.md"))
	mustWrite(t, filepath.Join(root, "notes", "b.md"))
	mustWrite(t, filepath.Join(root, "todo.md"))

	m, err := New(Config{Root: root})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return m, root
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func mustWrite(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestVisibleRespectsCollapse(t *testing.T) {
	m, _ := newTestTree(t)

	// Folders start collapsed: only the top level shows.
	names := visibleNames(m)
	want := []string{"notes", "todo.md"}
	if !equal(names, want) {
		t.Fatalf("visible = %v, want %v", names, want)
	}

	item, _ := m.Focused()
	m.SetCollapsed(item, false)
	names = visibleNames(m)
	want = []string{"notes", "a.md", "b.md", "todo.md"}
	if !equal(names, want) {
		t.Errorf("visible after expand = %v, want %v", names, want)
	}
}

func TestFocusNavigation(t *testing.T) {
	m, _ := newTestTree(t)
	item, _ := m.Focused()
	m.SetCollapsed(item, false) // expand "notes"

	m.FocusNext()
	if got, _ := m.Focused(); got.Name() != "a.md" {
		t.Errorf("after next: %q, want a.md", got.Name())
	}
	m.FocusParent()
	if got, _ := m.Focused(); got.Name() != "notes" {
		t.Errorf("after parent: %q, want notes", got.Name())
	}
	m.FocusLast()
	if got, _ := m.Focused(); got.Name() != "todo.md" {
		t.Errorf("after last: %q, want todo.md", got.Name())
	}
	m.FocusFirst()
	if got, _ := m.Focused(); got.Name() != "notes" {
		t.Errorf("after first: %q, want notes", got.Name())
	}
	// Prev at the top stays put
	m.FocusPrev()
	if got, _ := m.Focused(); got.Name() != "notes" {
		t.Errorf("prev at top moved to %q", got.Name())
	}
}

func TestFocusPathExpandsAncestors(t *testing.T) {
	m, root := newTestTree(t)

	path := filepath.Join(root, "notes", "b.md")
	if !m.FocusPath(path) {
		t.Fatal("FocusPath returned false for existing file")
	}
	got, _ := m.Focused()
	if got.Path() != path {
		t.Errorf("focused = %q, want %q", got.Path(), path)
	}
	// The parent folder must now be expanded so the item is reachable
	names := visibleNames(m)
	if !contains(names, "b.md") {
		t.Errorf("visible = %v, want b.md reachable", names)
	}

	if m.FocusPath(filepath.Join(root, "missing.md")) {
		t.Error("FocusPath returned true for missing file")
	}
}

func TestCreateFileRegistersSynchronously(t *testing.T) {
	m, root := newTestTree(t)

	path, registered, err := m.CreateFile(filepath.Join(root, "notes"))
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	select {
	case <-registered:
	default:
		t.Error("completion channel not closed after synchronous registration")
	}
	if !m.FocusPath(path) {
		t.Errorf("created file %q not present in index", path)
	}

	// A second create in the same folder must not collide.
	path2, _, err := m.CreateFile(filepath.Join(root, "notes"))
	if err != nil {
		t.Fatalf("second CreateFile: %v", err)
	}
	if path2 == path {
		t.Errorf("second create reused path %q", path)
	}
}

func TestDeleteMovesToTrash(t *testing.T) {
	m, root := newTestTree(t)

	target := filepath.Join(root, "todo.md")
	if !m.FocusPath(target) {
		t.Fatal("cannot focus todo.md")
	}
	item, _ := m.Focused()
	if err := m.Delete(item); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("deleted file still present at original path")
	}
	if _, err := os.Stat(filepath.Join(root, ".trash", "todo.md")); err != nil {
		t.Errorf("trashed copy missing: %v", err)
	}
	if m.FocusPath(target) {
		t.Error("trashed file still present in index")
	}
}

func visibleNames(m *Model) []string {
	var out []string
	for _, n := range m.Visible() {
		out = append(out, n.Name())
	}
	return out
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

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
