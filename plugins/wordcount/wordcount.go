// plugins/wordcount/wordcount.go

// Package wordcount adds a :wc command reporting document statistics:
// lines, words, bytes, plus the markdown heading and link counts.
package wordcount

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/inkwell-editor/inkwell/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

var linkRE = regexp.MustCompile(`\[[^\[\]]*\]\([^()]*\)|\[\[[^\]]*\]\]`)

// WordCount counts lines, words, bytes and markdown structure.
type WordCount struct {
	api plugin.EditorAPI
}

// New creates a new instance of the WordCount plugin.
func New() plugin.Plugin {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the :wc command.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	return nil
}

// Shutdown performs cleanup (nothing needed for this plugin).
func (p *WordCount) Shutdown() error {
	return nil
}

// executeWordCount runs when :wc is typed.
func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized")
	}

	content := p.api.GetBufferBytes()
	lineCount := p.api.GetBufferLineCount()
	wordCount := len(bytes.Fields(content))
	headings, links := markdownStats(content)

	p.api.SetStatusMessage("Lines: %d  Words: %d  Bytes: %d  Headings: %d  Links: %d",
		lineCount, wordCount, len(content), headings, links)
	return nil
}

// markdownStats counts ATX headings and links in the document.
func markdownStats(content []byte) (headings, links int) {
	for _, line := range bytes.Split(content, []byte("\n")) {
		hashes := 0
		for hashes < len(line) && line[hashes] == '#' {
			hashes++
		}
		if hashes >= 1 && hashes <= 6 && hashes < len(line) && line[hashes] == ' ' {
			headings++
		}
		links += len(linkRE.FindAll(line, -1))
	}
	return headings, links
}
