package lang

import (
	"fmt"
	"io/fs"

	"github.com/inkwell-editor/inkwell/internal/logger"
	sitter "github.com/smacker/go-tree-sitter"
)

// QueryFS is the filesystem the highlight queries are loaded from. It is
// set once at registration time from the embedded query files.
var QueryFS fs.FS

// Language ties a tree-sitter grammar to the file extensions and fenced
// code block info strings it handles.
type Language struct {
	// Name is the display name of the language
	Name string

	// TreeSitterLang is the tree-sitter grammar instance
	TreeSitterLang *sitter.Language

	// Extensions maps file extensions to this language
	Extensions []string

	// Fences lists the code fence info strings (```go, ```py, ...) that
	// select this language inside a markdown document
	Fences []string

	// QueryPath is the directory under queries/ holding highlights.scm
	QueryPath string
}

// GetQuery loads the highlight query source for this language.
func (l *Language) GetQuery() []byte {
	if QueryFS == nil {
		logger.Warnf("QueryFS not set - cannot load queries")
		return nil
	}
	if l.QueryPath == "" {
		logger.Warnf("No query path defined for language %s", l.Name)
		return nil
	}

	queryPath := fmt.Sprintf("queries/%s/highlights.scm", l.QueryPath)
	query, err := fs.ReadFile(QueryFS, queryPath)
	if err != nil {
		logger.Warnf("Failed to load query for language %s: %v", l.Name, err)
		return nil
	}
	logger.Debugf("Loaded query from %s for %s (%d bytes)", queryPath, l.Name, len(query))
	return query
}
