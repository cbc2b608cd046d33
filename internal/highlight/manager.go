// Package highlight runs syntax highlighting off the UI goroutine,
// debouncing bursts of edits into a single reparse.
package highlight

import (
	"context"
	"sync"
	"time"

	"github.com/inkwell-editor/inkwell/internal/buffer"
	"github.com/inkwell-editor/inkwell/internal/highlighter"
	"github.com/inkwell-editor/inkwell/internal/logger"
	"github.com/inkwell-editor/inkwell/internal/types"
	sitter "github.com/smacker/go-tree-sitter"
)

// EditorInterface defines methods needed from editor
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	GetCurrentTree() *sitter.Tree
	UpdateSyntaxHighlights(highlights highlighter.HighlightResult, tree *sitter.Tree)
}

// DebounceHighlightDuration is how long a burst of edits settles before
// a reparse starts.
const DebounceHighlightDuration = 65 * time.Millisecond

// Manager handles debounced asynchronous syntax highlighting.
type Manager struct {
	editor      EditorInterface
	highlighter *highlighter.Highlighter
	appRedraw   func()

	mu           sync.Mutex // Protects timer and pending state
	timer        *time.Timer
	pendingCtx   context.Context
	cancelFunc   context.CancelFunc
	isRunning    bool
	pendingEdits []types.EditInfo
}

// NewManager creates a new highlighting manager
func NewManager(editor EditorInterface, hl *highlighter.Highlighter, redrawFunc func()) *Manager {
	return &Manager{
		editor:       editor,
		highlighter:  hl,
		appRedraw:    redrawFunc,
		pendingEdits: make([]types.EditInfo, 0, 5),
	}
}

// AccumulateEdit adds an edit to the pending list and resets the
// debounce timer.
func (m *Manager) AccumulateEdit(edit types.EditInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.pendingEdits = append(m.pendingEdits, edit)
	logger.DebugTagf("highlight", "highlight.Manager: accumulated edit: %+v", edit)

	if m.timer != nil {
		m.timer.Reset(DebounceHighlightDuration)
		return
	}
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.pendingCtx, m.cancelFunc = context.WithCancel(context.Background())
	m.timer = time.AfterFunc(DebounceHighlightDuration, m.runHighlightUpdate)
}

// HighlightNow runs a synchronous full highlight, used when a document
// is first loaded so it does not flash unstyled.
func (m *Manager) HighlightNow(ctx context.Context) {
	buf := m.editor.GetBuffer()
	highlights, tree, err := m.highlighter.HighlightDocument(ctx, buf, bufferPath(buf), nil)
	if err != nil {
		logger.Warnf("highlight.Manager: initial highlight failed: %v", err)
		m.editor.UpdateSyntaxHighlights(make(highlighter.HighlightResult), nil)
		return
	}
	m.editor.UpdateSyntaxHighlights(highlights, tree)
}

// runHighlightUpdate applies pending edits and starts the background
// reparse.
func (m *Manager) runHighlightUpdate() {
	m.mu.Lock()
	m.timer = nil // Timer fired

	if m.isRunning {
		logger.DebugTagf("highlight", "highlight.Manager: update skipped, task already running")
		m.mu.Unlock()
		return
	}
	if len(m.pendingEdits) == 0 {
		m.mu.Unlock()
		return
	}

	m.isRunning = true
	ctx := m.pendingCtx
	m.pendingCtx = nil
	m.cancelFunc = nil

	editsToProcess := make([]types.EditInfo, len(m.pendingEdits))
	copy(editsToProcess, m.pendingEdits)
	m.pendingEdits = m.pendingEdits[:0]

	currentBuffer := m.editor.GetBuffer()
	m.mu.Unlock()

	go func(buf buffer.Buffer, edits []types.EditInfo, taskCtx context.Context) {
		defer func() {
			m.mu.Lock()
			m.isRunning = false
			m.mu.Unlock()
		}()

		// The previous tree, advanced past the pending edits, seeds an
		// incremental parse. Markdown documents have no stored tree and
		// get a full fence rescan instead.
		oldTree := m.editor.GetCurrentTree()
		if oldTree != nil {
			for _, edit := range edits {
				oldTree.Edit(sitter.EditInput{
					StartIndex:  edit.StartIndex,
					OldEndIndex: edit.OldEndIndex,
					NewEndIndex: edit.NewEndIndex,
					StartPoint:  edit.StartPosition,
					OldEndPoint: edit.OldEndPosition,
					NewEndPoint: edit.NewEndPosition,
				})
			}
		}

		newHighlights, newTree, err := m.highlighter.HighlightDocument(taskCtx, buf, bufferPath(buf), oldTree)
		if err != nil {
			if taskCtx.Err() == context.Canceled {
				logger.DebugTagf("highlight", "highlight.Manager: task cancelled")
			} else {
				logger.Warnf("highlight.Manager: background highlighting failed: %v", err)
				m.editor.UpdateSyntaxHighlights(make(highlighter.HighlightResult), nil)
			}
			m.appRedraw()
			return
		}

		logger.DebugTagf("highlight", "highlight.Manager: task produced %d highlighted lines", len(newHighlights))
		m.editor.UpdateSyntaxHighlights(newHighlights, newTree)
		m.appRedraw()
	}(currentBuffer, editsToProcess, ctx)
}

// Shutdown cancels any pending or running task.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancelFunc != nil {
		m.cancelFunc()
		m.cancelFunc = nil
	}
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func bufferPath(buf buffer.Buffer) string {
	if withPath, ok := buf.(interface{ FilePath() string }); ok {
		return withPath.FilePath()
	}
	return ""
}
