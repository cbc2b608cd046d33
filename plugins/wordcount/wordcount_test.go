package wordcount

import "testing"

func TestMarkdownStats(t *testing.T) {
	doc := []byte(`# Title

Some text with a [link](https://example.com) and a [[wiki page]].

## Section

####### not a heading
#nor this
`)
	headings, links := markdownStats(doc)
	if headings != 2 {
		t.Errorf("headings = %d, want 2", headings)
	}
	if links != 2 {
		t.Errorf("links = %d, want 2", links)
	}
}

func TestMarkdownStatsEmpty(t *testing.T) {
	headings, links := markdownStats(nil)
	if headings != 0 || links != 0 {
		t.Errorf("stats = (%d, %d), want (0, 0)", headings, links)
	}
}
