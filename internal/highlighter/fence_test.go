package highlighter

import (
	"strings"
	"testing"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/types"
)

func docBuffer(t *testing.T, text string) buffer.Buffer {
	t.Helper()
	buf := buffer.NewSliceBuffer()
	if _, err := buf.Insert(types.Position{Line: 0, Col: 0}, []byte(text)); err != nil {
		t.Fatalf("seeding buffer: %v", err)
	}
	return buf
}

func TestScanFences(t *testing.T) {
	RegisterLanguages()

	doc := strings.Join([]string{
		"# Title",         // 0
		"```go",           // 1
		"func main() {}",  // 2
		"```",             // 3
		"text",            // 4
		"~~~python",       // 5
		"print(1)",        // 6
		"print(2)",        // 7
		"~~~",             // 8
		"```mystery",      // 9
		"???",             // 10
		"```",             // 11
		"   ```js",        // 12 indented fence
		"console.log(1)",  // 13
		"```",             // 14
	}, "\n")

	blocks := scanFences(docBuffer(t, doc))
	if len(blocks) != 3 {
		t.Fatalf("found %d blocks, want 3: %+v", len(blocks), blocks)
	}

	want := []struct {
		name       string
		start, end int
	}{
		{"Go", 2, 3},
		{"Python", 6, 8},
		{"JavaScript", 13, 14},
	}
	for i, w := range want {
		b := blocks[i]
		if b.lang.Name != w.name || b.contentStart != w.start || b.contentEnd != w.end {
			t.Errorf("block %d = %s [%d,%d), want %s [%d,%d)",
				i, b.lang.Name, b.contentStart, b.contentEnd, w.name, w.start, w.end)
		}
	}
}

func TestScanFencesUnterminated(t *testing.T) {
	RegisterLanguages()

	doc := "start\n```go\nfunc f() {}\nvar x int"
	blocks := scanFences(docBuffer(t, doc))
	if len(blocks) != 1 {
		t.Fatalf("found %d blocks, want 1", len(blocks))
	}
	if blocks[0].contentStart != 2 || blocks[0].contentEnd != 4 {
		t.Errorf("block = [%d,%d), want [2,4)", blocks[0].contentStart, blocks[0].contentEnd)
	}
}

func TestScanFencesEmptyBlockSkipped(t *testing.T) {
	RegisterLanguages()

	doc := "```go\n```\nafter"
	if blocks := scanFences(docBuffer(t, doc)); len(blocks) != 0 {
		t.Errorf("empty block produced %d entries", len(blocks))
	}
}

func TestBlockSource(t *testing.T) {
	RegisterLanguages()

	doc := "```go\nline a\nline b\n```"
	blocks := scanFences(docBuffer(t, doc))
	if len(blocks) != 1 {
		t.Fatalf("found %d blocks, want 1", len(blocks))
	}
	got := string(blockSource(docBuffer(t, doc), blocks[0]))
	if got != "line a\nline b" {
		t.Errorf("blockSource = %q", got)
	}
}
