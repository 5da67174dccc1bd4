package session

import (
	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/history"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/textpos"
	"github.com/bethropolis/jsonpad/internal/types"
)

// Insert inserts text at the cursor and moves the cursor past it.
func (s *Session) Insert(text string) error {
	if text == "" {
		return nil
	}
	before := s.cursor
	if err := s.ApplyInsert(s.cursor, []byte(text)); err != nil {
		return err
	}
	s.history.RecordChange(history.Change{
		Type:         history.InsertAction,
		Text:         []byte(text),
		Offset:       before,
		CursorBefore: before,
	})
	s.SetCursor(before + len(text))
	return nil
}

// InsertNewline breaks the line at the cursor, carrying over the current
// line's indentation.
func (s *Session) InsertNewline() error {
	text := s.snap.Text
	start := textpos.LineStart(text, s.cursor)
	end := start
	for end < s.cursor && (text[end] == ' ' || text[end] == '\t') {
		end++
	}
	return s.Insert("\n" + text[start:end])
}

// Backspace deletes the grapheme cluster before the cursor.
func (s *Session) Backspace() error {
	if s.cursor == 0 {
		return nil
	}
	return s.deleteRange(textpos.PrevBoundary(s.snap.Text, s.cursor), s.cursor)
}

// DeleteForward deletes the grapheme cluster at the cursor.
func (s *Session) DeleteForward() error {
	if s.cursor >= len(s.snap.Text) {
		return nil
	}
	return s.deleteRange(s.cursor, textpos.NextBoundary(s.snap.Text, s.cursor))
}

func (s *Session) deleteRange(start, end int) error {
	before := s.cursor
	removed := []byte(s.snap.Text[start:end])
	if err := s.ApplyDelete(start, end); err != nil {
		return err
	}
	s.history.RecordChange(history.Change{
		Type:         history.DeleteAction,
		Text:         removed,
		Offset:       start,
		CursorBefore: before,
	})
	s.SetCursor(start)
	return nil
}

// Replace swaps the whole document for text as one undoable step. The cursor
// is kept where possible.
func (s *Session) Replace(text string) error {
	old := s.snap.Text
	if old == text {
		return nil
	}
	before := s.cursor
	s.replaceAll([]byte(text))
	s.history.RecordChange(history.Change{
		Type:         history.ReplaceAction,
		Text:         []byte(text),
		Old:          []byte(old),
		Offset:       0,
		CursorBefore: before,
	})
	s.SetCursor(min(before, len(text)))
	return nil
}

// Clear empties the document.
func (s *Session) Clear() error {
	return s.Replace("")
}

// Undo reverts the last change. It reports false when there was nothing to
// undo.
func (s *Session) Undo() (bool, error) {
	return s.history.Undo()
}

// Redo reapplies the last undone change.
func (s *Session) Redo() (bool, error) {
	return s.history.Redo()
}

// ApplyInsert inserts without recording history.
func (s *Session) ApplyInsert(offset int, text []byte) error {
	edit, err := s.buf.Insert(offset, text)
	if err != nil {
		return err
	}
	s.modified(edit)
	return nil
}

// ApplyDelete deletes [start, end) without recording history.
func (s *Session) ApplyDelete(start, end int) error {
	edit, _, err := s.buf.Delete(start, end)
	if err != nil {
		return err
	}
	s.modified(edit)
	return nil
}

func (s *Session) replaceAll(text []byte) {
	oldLen := s.buf.Len()
	s.buf.SetContent(text)
	s.modified(types.EditInfo{Start: 0, OldEnd: oldLen, NewEnd: len(text)})
}

// modified keeps the cursor inside the buffer, rebuilds the snapshot and
// announces the edit.
func (s *Session) modified(edit types.EditInfo) {
	if s.cursor > s.buf.Len() {
		s.cursor = s.buf.Len()
	}
	s.refresh(true)
	logger.DebugTagf("session", "edit %+v, %d bytes, %v", edit, s.buf.Len(), s.snap.Status)
	s.events.Dispatch(event.TypeBufferModified, event.BufferModifiedData{Edit: edit})
}
