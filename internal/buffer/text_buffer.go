// internal/buffer/text_buffer.go
package buffer

import (
	"errors"
	"fmt"
	"os"

	"github.com/bethropolis/jsonpad/internal/types"
)

// TextBuffer keeps the whole document as one byte slice. JSON documents are
// re-tokenized in full on every edit, so a flat slice is the natural shape.
type TextBuffer struct {
	content  []byte
	filePath string
	modified bool
}

// NewTextBuffer creates an empty TextBuffer.
func NewTextBuffer() *TextBuffer {
	return &TextBuffer{}
}

// Load reads a file into the buffer, replacing existing content. A missing
// file yields an empty buffer bound to that path.
func (tb *TextBuffer) Load(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			tb.content = nil
			tb.filePath = filePath
			tb.modified = false
			return nil
		}
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}
	tb.content = data
	tb.filePath = filePath
	tb.modified = false
	return nil
}

// Save writes the buffer to filePath, or to the loaded path when filePath is
// empty.
func (tb *TextBuffer) Save(filePath string) error {
	path := tb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(path, tb.content, 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	tb.filePath = path
	tb.modified = false
	return nil
}

// Reset replaces the content and forgets the file binding, leaving the buffer
// unmodified.
func (tb *TextBuffer) Reset(content []byte) {
	tb.content = append([]byte(nil), content...)
	tb.filePath = ""
	tb.modified = false
}

// SetContent replaces the whole buffer and marks it modified.
func (tb *TextBuffer) SetContent(content []byte) {
	tb.content = append([]byte(nil), content...)
	tb.modified = true
}

// Insert inserts text at offset.
func (tb *TextBuffer) Insert(offset int, text []byte) (types.EditInfo, error) {
	if offset < 0 || offset > len(tb.content) {
		return types.EditInfo{}, fmt.Errorf("insert offset %d out of bounds (0-%d)", offset, len(tb.content))
	}
	if len(text) == 0 {
		return types.EditInfo{Start: offset, OldEnd: offset, NewEnd: offset}, nil
	}

	content := make([]byte, 0, len(tb.content)+len(text))
	content = append(content, tb.content[:offset]...)
	content = append(content, text...)
	content = append(content, tb.content[offset:]...)
	tb.content = content
	tb.modified = true

	return types.EditInfo{Start: offset, OldEnd: offset, NewEnd: offset + len(text)}, nil
}

// Delete removes the bytes in [start, end) and returns them. The range is
// normalized so start <= end.
func (tb *TextBuffer) Delete(start, end int) (types.EditInfo, []byte, error) {
	if start > end {
		start, end = end, start
	}
	if start < 0 || end > len(tb.content) {
		return types.EditInfo{}, nil, fmt.Errorf("delete range [%d,%d) out of bounds (0-%d)", start, end, len(tb.content))
	}
	if start == end {
		return types.EditInfo{Start: start, OldEnd: start, NewEnd: start}, nil, nil
	}

	removed := append([]byte(nil), tb.content[start:end]...)
	tb.content = append(tb.content[:start:start], tb.content[end:]...)
	tb.modified = true

	return types.EditInfo{Start: start, OldEnd: end, NewEnd: start}, removed, nil
}

// Bytes returns the buffer content. Callers must not modify it.
func (tb *TextBuffer) Bytes() []byte {
	return tb.content
}

func (tb *TextBuffer) String() string {
	return string(tb.content)
}

// Len returns the content length in bytes.
func (tb *TextBuffer) Len() int {
	return len(tb.content)
}

func (tb *TextBuffer) FilePath() string {
	return tb.filePath
}

// IsModified returns true if the buffer has unsaved changes.
func (tb *TextBuffer) IsModified() bool {
	return tb.modified
}

var _ Buffer = (*TextBuffer)(nil)
