// Package highlighter computes syntax highlights with tree-sitter. For
// markdown documents it highlights the fenced code blocks; directly
// opened source files are parsed whole.
package highlighter

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/highlighter/lang"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/types"
	"github.com/inkwell-editor/inkwell/internal/utils"
	sitter "github.com/smacker/go-tree-sitter"
)

// HighlightResult holds computed highlights for efficient lookup during
// drawing. Maps line number -> styled ranges on that line.
type HighlightResult map[int][]types.StyledRange

// Highlighter manages parsing and querying syntax trees.
type Highlighter struct {
	mu     sync.Mutex
	parser *sitter.Parser

	queryMu sync.Mutex
	queries map[string]*sitter.Query
}

// NewHighlighter creates a new highlighter instance.
func NewHighlighter() *Highlighter {
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[string]*sitter.Query),
	}
}

// HighlightDocument computes highlights for the buffer. Source files
// with a registered grammar are parsed whole, reusing oldTree for an
// incremental parse; everything else is treated as markdown and only
// its fenced code blocks are highlighted. The returned tree is non-nil
// only for the whole-file case.
func (h *Highlighter) HighlightDocument(ctx context.Context, buf buffer.Buffer, filePath string, oldTree *sitter.Tree) (HighlightResult, *sitter.Tree, error) {
	if l := lang.GetForFile(filePath); l != nil {
		return h.highlightSource(ctx, buf, l, oldTree)
	}
	highlights, err := h.highlightFences(ctx, buf)
	return highlights, nil, err
}

func (h *Highlighter) highlightSource(ctx context.Context, buf buffer.Buffer, l *lang.Language, oldTree *sitter.Tree) (HighlightResult, *sitter.Tree, error) {
	query, err := h.queryFor(l)
	if err != nil {
		return nil, nil, err
	}

	h.mu.Lock()
	h.parser.SetLanguage(l.TreeSitterLang)
	tree, err := h.parser.ParseCtx(ctx, oldTree, buf.Bytes())
	h.mu.Unlock()
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", l.Name, err)
	}

	highlights := make(HighlightResult)
	h.collectCaptures(query, tree, buf, 0, highlights)
	logger.DebugTagf("highlight", "Highlighter: %s parse found highlights on %d lines", l.Name, len(highlights))
	return highlights, tree, nil
}

func (h *Highlighter) highlightFences(ctx context.Context, buf buffer.Buffer) (HighlightResult, error) {
	highlights := make(HighlightResult)
	for _, block := range scanFences(buf) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		query, err := h.queryFor(block.lang)
		if err != nil {
			logger.Warnf("Highlighter: skipping %s block: %v", block.lang.Name, err)
			continue
		}

		source := blockSource(buf, block)
		h.mu.Lock()
		h.parser.SetLanguage(block.lang.TreeSitterLang)
		tree, err := h.parser.ParseCtx(ctx, nil, source)
		h.mu.Unlock()
		if err != nil {
			return nil, fmt.Errorf("parsing %s block at line %d: %w", block.lang.Name, block.contentStart, err)
		}
		h.collectCaptures(query, tree, buf, block.contentStart, highlights)
		tree.Close()
	}
	logger.DebugTagf("highlight", "Highlighter: fence scan found highlights on %d lines", len(highlights))
	return highlights, nil
}

// collectCaptures runs the query over the tree and appends styled ranges
// to result. Rows in the tree are offset by rowOffset to map block-local
// coordinates back onto buffer lines; multi-line captures emit one range
// per covered line.
func (h *Highlighter) collectCaptures(query *sitter.Query, tree *sitter.Tree, buf buffer.Buffer, rowOffset int, result HighlightResult) {
	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	for {
		match, exists := qc.NextMatch()
		if !exists {
			break
		}
		for _, capture := range match.Captures {
			styleName := captureStyleName(query.CaptureNameForId(capture.Index))
			start := capture.Node.StartPoint()
			end := capture.Node.EndPoint()

			for row := int(start.Row); row <= int(end.Row); row++ {
				lineNum := row + rowOffset
				line, err := buf.Line(lineNum)
				if err != nil {
					logger.Warnf("Highlighter: cannot get line %d: %v", lineNum, err)
					continue
				}
				startCol := 0
				if row == int(start.Row) {
					startCol = utils.ByteOffsetToRuneIndex(line, int(start.Column))
				}
				endCol := utf8.RuneCount(line)
				if row == int(end.Row) {
					endCol = utils.ByteOffsetToRuneIndex(line, int(end.Column))
				}
				if endCol <= startCol {
					continue
				}
				result[lineNum] = append(result[lineNum], types.StyledRange{
					StartCol:  startCol,
					EndCol:    endCol,
					StyleName: styleName,
				})
			}
		}
	}
}

// queryFor compiles (and caches) the highlight query for a language.
func (h *Highlighter) queryFor(l *lang.Language) (*sitter.Query, error) {
	h.queryMu.Lock()
	defer h.queryMu.Unlock()

	if q, ok := h.queries[l.Name]; ok {
		return q, nil
	}
	src := l.GetQuery()
	if src == nil {
		return nil, fmt.Errorf("no highlight query for %s", l.Name)
	}
	q, err := sitter.NewQuery(src, l.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("compiling %s query: %w", l.Name, err)
	}
	h.queries[l.Name] = q
	return q, nil
}

// captureStyleName maps a tree-sitter capture name to a theme style
// name. The theme resolves dotted names hierarchically, so the full
// capture name is kept.
func captureStyleName(captureName string) string {
	if len(captureName) > 0 && captureName[0] == '@' {
		captureName = captureName[1:]
	}
	return captureName
}
