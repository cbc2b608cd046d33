package spans

import (
	"testing"

	"github.com/inkwell-editor/inkwell/internal/markup"
	"github.com/inkwell-editor/inkwell/internal/types"
)

type fakeSource map[int]string

func (s fakeSource) LineText(line int) (string, error) {
	return s[line], nil
}

func TestFindEnclosingConstruct(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		col         int
		style       string
		wantFound   bool
		wantRange   types.Range
		wantContent types.Range
	}{
		{
			name:      "strong around caret",
			line:      "a **bold** b",
			col:       5,
			style:     markup.StyleStrong,
			wantFound: true,
			wantRange: types.Range{
				From: types.Position{Line: 0, Col: 2},
				To:   types.Position{Line: 0, Col: 10},
			},
			wantContent: types.Range{
				From: types.Position{Line: 0, Col: 4},
				To:   types.Position{Line: 0, Col: 8},
			},
		},
		{
			name:      "trailing boundary counts as inside",
			line:      "**x**",
			col:       5,
			style:     markup.StyleStrong,
			wantFound: true,
			wantRange: types.Range{
				From: types.Position{Line: 0, Col: 0},
				To:   types.Position{Line: 0, Col: 5},
			},
			wantContent: types.Range{
				From: types.Position{Line: 0, Col: 2},
				To:   types.Position{Line: 0, Col: 3},
			},
		},
		{
			name:      "caret past construct",
			line:      "**x** y",
			col:       6,
			style:     markup.StyleStrong,
			wantFound: false,
		},
		{
			name:      "style mismatch",
			line:      "a **bold** b",
			col:       5,
			style:     markup.StyleEm,
			wantFound: false,
		},
		{
			name:      "em nested in strong",
			line:      "**a *b* c**",
			col:       5,
			style:     markup.StyleEm,
			wantFound: true,
			wantRange: types.Range{
				From: types.Position{Line: 0, Col: 4},
				To:   types.Position{Line: 0, Col: 7},
			},
			wantContent: types.Range{
				From: types.Position{Line: 0, Col: 5},
				To:   types.Position{Line: 0, Col: 6},
			},
		},
		{
			name:      "code content is opaque",
			line:      "`**x**`",
			col:       3,
			style:     markup.StyleStrong,
			wantFound: false,
		},
		{
			name:      "comment construct",
			line:      "<!--hidden-->",
			col:       6,
			style:     markup.StyleComment,
			wantFound: true,
			wantRange: types.Range{
				From: types.Position{Line: 0, Col: 0},
				To:   types.Position{Line: 0, Col: 13},
			},
			wantContent: types.Range{
				From: types.Position{Line: 0, Col: 4},
				To:   types.Position{Line: 0, Col: 10},
			},
		},
		{
			// The scanner pairs each opener with the nearest close
			// marker, so a strong run overlapping an outer em is never
			// indexed; the toggle wraps instead of collapsing here.
			name:      "strong overlapping outer em is not indexed",
			line:      "*a **b** c*",
			col:       5,
			style:     markup.StyleStrong,
			wantFound: false,
		},
		{
			name:      "unicode content keeps rune columns",
			line:      "**héllo**",
			col:       4,
			style:     markup.StyleStrong,
			wantFound: true,
			wantRange: types.Range{
				From: types.Position{Line: 0, Col: 0},
				To:   types.Position{Line: 0, Col: 9},
			},
			wantContent: types.Range{
				From: types.Position{Line: 0, Col: 2},
				To:   types.Position{Line: 0, Col: 7},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ix := NewIndex(fakeSource{0: tt.line})
			got, found := ix.FindEnclosingConstruct(types.Position{Line: 0, Col: tt.col}, tt.style)
			if found != tt.wantFound {
				t.Fatalf("found = %v, want %v", found, tt.wantFound)
			}
			if !found {
				return
			}
			if got.Range != tt.wantRange {
				t.Errorf("Range = %v, want %v", got.Range, tt.wantRange)
			}
			if got.Content != tt.wantContent {
				t.Errorf("Content = %v, want %v", got.Content, tt.wantContent)
			}
		})
	}
}

func TestStyledSpansRoles(t *testing.T) {
	ix := NewIndex(fakeSource{0: "a **b** c"})
	got := ix.StyledSpans(0)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 spans (formatting, content, formatting)", len(got))
	}
	if got[0].Role != types.RoleFormatting || got[1].Role != types.RoleContent || got[2].Role != types.RoleFormatting {
		t.Errorf("roles = %v/%v/%v, want formatting/content/formatting", got[0].Role, got[1].Role, got[2].Role)
	}
	if got[1].StartCol != 4 || got[1].EndCol != 5 {
		t.Errorf("content cols = %d..%d, want 4..5", got[1].StartCol, got[1].EndCol)
	}
}
