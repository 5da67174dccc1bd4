// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/jsonpad/internal/types"
)

// ErrNoPath is returned by Save when neither an argument nor a loaded path is
// available.
var ErrNoPath = errors.New("no file path specified for saving")

// Buffer defines the text buffer operations the editor session relies on.
// Offsets are byte offsets into Bytes().
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Reset(content []byte)
	SetContent(content []byte)
	Insert(offset int, text []byte) (types.EditInfo, error)
	Delete(start, end int) (types.EditInfo, []byte, error)
	Bytes() []byte
	String() string
	Len() int
	FilePath() string
	IsModified() bool
}
