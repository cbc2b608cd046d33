package highlighter

import (
	"embed"
	"sync"

	"github.com/inkwell-editor/inkwell/internal/highlighter/lang"
	"github.com/inkwell-editor/inkwell/internal/logger"

	gosrc "github.com/smacker/go-tree-sitter/golang"
	jssrc "github.com/smacker/go-tree-sitter/javascript"
	pythonsrc "github.com/smacker/go-tree-sitter/python"
	rustsrc "github.com/smacker/go-tree-sitter/rust"
)

//go:embed queries/*/*.scm
var embeddedQueries embed.FS

var registerOnce sync.Once

// RegisterLanguages installs the grammars available for fenced code
// blocks and for directly opened source files. Safe to call more than
// once.
func RegisterLanguages() {
	registerOnce.Do(registerAll)
}

func registerAll() {
	if lang.QueryFS == nil {
		lang.QueryFS = embeddedQueries
	}

	lang.Register(&lang.Language{
		Name:           "Go",
		TreeSitterLang: gosrc.GetLanguage(),
		Extensions:     []string{".go"},
		Fences:         []string{"go", "golang"},
		QueryPath:      "go",
	})

	lang.Register(&lang.Language{
		Name:           "Python",
		TreeSitterLang: pythonsrc.GetLanguage(),
		Extensions:     []string{".py", ".pyw"},
		Fences:         []string{"python", "py"},
		QueryPath:      "python",
	})

	// The JavaScript grammar also covers JSON fences; JSON is a subset
	// and highlights acceptably as JS.
	lang.Register(&lang.Language{
		Name:           "JavaScript",
		TreeSitterLang: jssrc.GetLanguage(),
		Extensions:     []string{".js", ".mjs", ".cjs", ".json"},
		Fences:         []string{"javascript", "js", "json"},
		QueryPath:      "javascript",
	})

	lang.Register(&lang.Language{
		Name:           "Rust",
		TreeSitterLang: rustsrc.GetLanguage(),
		Extensions:     []string{".rs"},
		Fences:         []string{"rust", "rs"},
		QueryPath:      "rust",
	})

	logger.Debugf("Registration complete. Registered %d languages.", len(lang.GetAll()))
}
