package lang

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/inkwell-editor/inkwell/internal/logger"
)

var (
	// Global language registry
	registry struct {
		sync.RWMutex
		languages     []*Language
		extToLanguage map[string]*Language
		fenceToLang   map[string]*Language
	}

	initOnce sync.Once
)

// Initialize ensures the registry is ready for use
func Initialize() {
	initOnce.Do(func() {
		registry.extToLanguage = make(map[string]*Language)
		registry.fenceToLang = make(map[string]*Language)
		registry.languages = make([]*Language, 0)
		logger.Debugf("Language registry initialized")
	})
}

// Register adds a language to the registry
func Register(lang *Language) {
	Initialize()

	registry.Lock()
	defer registry.Unlock()

	registry.languages = append(registry.languages, lang)

	for _, ext := range lang.Extensions {
		lowerExt := strings.ToLower(ext)
		if existing, ok := registry.extToLanguage[lowerExt]; ok {
			logger.Warnf("Extension %s already registered to %s, overriding with %s",
				lowerExt, existing.Name, lang.Name)
		}
		registry.extToLanguage[lowerExt] = lang
	}
	for _, fence := range lang.Fences {
		registry.fenceToLang[strings.ToLower(fence)] = lang
	}

	logger.Debugf("Registered language: %s (extensions %v, fences %v)",
		lang.Name, lang.Extensions, lang.Fences)
}

// GetForFile returns the language for a given file path, or nil.
func GetForFile(filePath string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	ext := strings.ToLower(filepath.Ext(filePath))
	return registry.extToLanguage[ext]
}

// GetForFence returns the language for a fenced code block info string,
// or nil. Only the first word of the info string counts; the rest is
// renderer metadata.
func GetForFence(info string) *Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	fields := strings.Fields(info)
	if len(fields) == 0 {
		return nil
	}
	return registry.fenceToLang[strings.ToLower(fields[0])]
}

// GetAll returns all registered languages
func GetAll() []*Language {
	Initialize()

	registry.RLock()
	defer registry.RUnlock()

	result := make([]*Language, len(registry.languages))
	copy(result, registry.languages)
	return result
}
