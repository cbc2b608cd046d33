package find

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/event"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/types"
	"github.com/inkwell-editor/inkwell/internal/utils"
)

// EditorInterface defines methods the find manager needs from the editor.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCursor() types.Position
	SetCursor(types.Position)
	GetEventManager() *event.Manager
	ScrollToCursor()
}

// Manager handles find, replace, and search highlighting logic.
type Manager struct {
	editor            EditorInterface
	mutex             sync.RWMutex // Protects internal state
	searchHighlights  []types.HighlightRegion
	lastSearchTerm    string
	lastSearchRegex   *regexp.Regexp // Cache compiled regex
	lastMatchPos      *types.Position
	lastSearchForward bool
}

// NewManager creates a find manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{
		editor:            editor,
		searchHighlights:  make([]types.HighlightRegion, 0),
		lastSearchForward: true,
	}
}

// FindNext finds the next occurrence and moves the cursor to it.
func (m *Manager) FindNext(forward bool) (types.Position, bool) {
	m.mutex.Lock()
	re := m.lastSearchRegex
	lastPos := m.lastMatchPos
	m.mutex.Unlock()

	if re == nil {
		return types.Position{}, false
	}

	startPos := m.editor.GetCursor()
	// Continue from the previous match so repeated presses advance
	if lastPos != nil {
		startPos = *lastPos
		if forward {
			startPos.Col++
		}
	}

	foundPos, found := m.findInternal(re, startPos, forward)
	if found {
		m.mutex.Lock()
		m.lastMatchPos = &foundPos
		m.lastSearchForward = forward
		m.mutex.Unlock()
		return foundPos, true
	}
	return types.Position{}, false
}

// findInternal scans the buffer line by line from startPos.
func (m *Manager) findInternal(re *regexp.Regexp, startPos types.Position, forward bool) (types.Position, bool) {
	buf := m.editor.GetBuffer()
	lineCount := buf.LineCount()

	if forward {
		for lineIdx := startPos.Line; lineIdx < lineCount; lineIdx++ {
			lineBytes, err := buf.Line(lineIdx)
			if err != nil {
				continue
			}
			searchStart := 0
			if lineIdx == startPos.Line {
				searchStart = utils.RuneIndexToByteOffset(lineBytes, startPos.Col)
				if searchStart < 0 || searchStart > len(lineBytes) {
					searchStart = len(lineBytes)
				}
			}
			if loc := re.FindIndex(lineBytes[searchStart:]); loc != nil {
				col := utils.ByteOffsetToRuneIndex(lineBytes, searchStart+loc[0])
				return types.Position{Line: lineIdx, Col: col}, true
			}
		}
	} else {
		for lineIdx := startPos.Line; lineIdx >= 0; lineIdx-- {
			lineBytes, err := buf.Line(lineIdx)
			if err != nil {
				continue
			}
			searchEnd := len(lineBytes)
			if lineIdx == startPos.Line {
				searchEnd = utils.RuneIndexToByteOffset(lineBytes, startPos.Col)
				if searchEnd < 0 || searchEnd > len(lineBytes) {
					searchEnd = len(lineBytes)
				}
			}
			// Last match before the cursor is the closest one
			locs := re.FindAllIndex(lineBytes[:searchEnd], -1)
			if len(locs) > 0 {
				col := utils.ByteOffsetToRuneIndex(lineBytes, locs[len(locs)-1][0])
				return types.Position{Line: lineIdx, Col: col}, true
			}
		}
	}
	return types.Position{}, false
}

// HighlightMatches finds and stores all occurrences for highlighting.
func (m *Manager) HighlightMatches(term string) error {
	m.ClearHighlights()

	if term == "" {
		m.mutex.Lock()
		m.lastSearchTerm = ""
		m.lastSearchRegex = nil
		m.lastMatchPos = nil
		m.mutex.Unlock()
		return nil
	}

	re, err := regexp.Compile(term)
	if err != nil {
		m.mutex.Lock()
		m.lastSearchTerm = term
		m.lastSearchRegex = nil
		m.lastMatchPos = nil
		m.mutex.Unlock()
		logger.Warnf("HighlightMatches: Invalid regex '%s': %v", term, err)
		return fmt.Errorf("invalid search pattern: %w", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.lastSearchTerm = term
	m.lastSearchRegex = re
	m.lastMatchPos = nil

	buf := m.editor.GetBuffer()
	lineCount := buf.LineCount()
	newHighlights := make([]types.HighlightRegion, 0)

	for lineIdx := 0; lineIdx < lineCount; lineIdx++ {
		lineBytes, err := buf.Line(lineIdx)
		if err != nil {
			continue
		}
		for _, loc := range re.FindAllIndex(lineBytes, -1) {
			newHighlights = append(newHighlights, types.HighlightRegion{
				Start: types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[0])},
				End:   types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[1])},
				Type:  types.HighlightSearch,
			})
		}
	}
	m.searchHighlights = newHighlights
	logger.Debugf("FindManager: %d search highlights for '%s'", len(m.searchHighlights), term)
	return nil
}

// ClearHighlights removes search highlight regions.
func (m *Manager) ClearHighlights() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if len(m.searchHighlights) > 0 {
		m.searchHighlights = m.searchHighlights[:0]
	}
}

// HasHighlights checks if there are any search highlights.
func (m *Manager) HasHighlights() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.searchHighlights) > 0
}

// GetHighlights returns a copy of the current search highlight regions.
func (m *Manager) GetHighlights() []types.HighlightRegion {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	highlights := make([]types.HighlightRegion, len(m.searchHighlights))
	copy(highlights, m.searchHighlights)
	return highlights
}

// --- Replace Logic ---

// ParseSubstituteCommand parses the :s/pattern/replacement/[g] command string.
func ParseSubstituteCommand(cmdStr string) (pattern, replacement string, global bool, err error) {
	// Does not handle escaped delimiters
	parts := strings.SplitN(cmdStr, "/", 4)
	if len(parts) < 3 || parts[0] != "" { // Must start with '/'
		err = fmt.Errorf("invalid format: use /pattern/replacement/[g]")
		return
	}

	pattern = parts[1]
	replacement = parts[2]

	if pattern == "" {
		err = fmt.Errorf("search pattern cannot be empty")
		return
	}

	if len(parts) > 3 && strings.Contains(parts[3], "g") {
		global = true
	}
	return
}

// Replace replaces occurrences of a pattern on the current line. With
// global set, every match on the line is replaced, otherwise only the
// first. Returns the number of replacements made.
func (m *Manager) Replace(patternStr, replacement string, global bool) (int, error) {
	if patternStr == "" {
		return 0, fmt.Errorf("search pattern cannot be empty")
	}

	re, err := regexp.Compile(patternStr)
	if err != nil {
		return 0, fmt.Errorf("invalid search pattern: %w", err)
	}

	buf := m.editor.GetBuffer()
	cursor := m.editor.GetCursor()
	lineIdx := cursor.Line
	eventMgr := m.editor.GetEventManager()

	lineBytes, err := buf.Line(lineIdx)
	if err != nil {
		return 0, fmt.Errorf("cannot get current line %d: %w", lineIdx, err)
	}

	matches := re.FindAllIndex(lineBytes, -1)
	if len(matches) == 0 {
		return 0, nil
	}
	if !global {
		matches = matches[:1]
	}

	replacementBytes := []byte(replacement)
	replaceCount := 0
	var firstStart types.Position

	// Replace back to front so earlier byte offsets stay valid
	for i := len(matches) - 1; i >= 0; i-- {
		loc := matches[i]
		startPos := types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[0])}
		endPos := types.Position{Line: lineIdx, Col: utils.ByteOffsetToRuneIndex(lineBytes, loc[1])}

		editInfoDel, errDel := buf.Delete(startPos, endPos)
		if errDel != nil {
			return replaceCount, fmt.Errorf("replace failed during delete: %w", errDel)
		}
		editInfoIns, errIns := buf.Insert(startPos, replacementBytes)
		if errIns != nil {
			return replaceCount, fmt.Errorf("replace failed during insert: %w", errIns)
		}
		replaceCount++
		firstStart = startPos

		// Dispatch the net change so highlighting reparses correctly
		netEditInfo := types.EditInfo{
			StartIndex:     editInfoDel.StartIndex,
			StartPosition:  editInfoDel.StartPosition,
			OldEndIndex:    editInfoDel.OldEndIndex,
			OldEndPosition: editInfoDel.OldEndPosition,
			NewEndIndex:    editInfoDel.StartIndex + uint32(len(replacementBytes)),
			NewEndPosition: editInfoIns.NewEndPosition,
		}
		if eventMgr != nil {
			eventMgr.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: netEditInfo})
		}
	}

	m.editor.SetCursor(firstStart)
	m.editor.ScrollToCursor()

	logger.Debugf("Replace: replaced %d occurrence(s) on line %d", replaceCount, lineIdx)
	return replaceCount, nil
}
