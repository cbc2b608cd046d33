// internal/buffer/buffer.go
package buffer

import "github.com/inkwell-editor/inkwell/internal/types"

// Buffer defines the interface for text buffer operations.
// Mutating methods return EditInfo describing the change in the byte/point
// coordinates incremental parsing needs.
type Buffer interface {
	Load(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	Save(filePath string) error
	Bytes() []byte
	FilePath() string
	IsModified() bool
}
