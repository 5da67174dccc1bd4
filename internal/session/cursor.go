package session

import (
	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/textpos"
)

// Direction is a cursor movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineHome
	LineEnd
	DocStart
	DocEnd
)

// SetCursor moves the cursor to offset, clamped to the buffer, and refreshes
// the bracket match.
func (s *Session) SetCursor(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.snap.Text) {
		offset = len(s.snap.Text)
	}
	s.wantCol = 0
	s.moveTo(offset)
}

func (s *Session) moveTo(offset int) {
	if offset == s.cursor && s.snap.Cursor == offset {
		return
	}
	s.cursor = offset
	s.refresh(false)
	s.events.Dispatch(event.TypeCursorMoved, event.CursorMovedData{Offset: offset})
}

// Position returns the cursor's line and column.
func (s *Session) Position() textpos.Position {
	return textpos.FromOffset(s.snap.Text, s.cursor)
}

// MoveCursor moves the cursor one step in dir.
func (s *Session) MoveCursor(dir Direction) {
	s.MoveCursorBy(dir, 1)
}

// MoveCursorBy moves the cursor n steps in dir; for Up and Down a step is a
// line, which makes page movement MoveCursorBy(Down, height).
func (s *Session) MoveCursorBy(dir Direction, n int) {
	text := s.snap.Text
	switch dir {
	case Up, Down:
		s.moveVertical(dir, n)
		return
	case Left:
		offset := s.cursor
		for i := 0; i < n; i++ {
			offset = textpos.PrevBoundary(text, offset)
		}
		s.SetCursor(offset)
	case Right:
		offset := s.cursor
		for i := 0; i < n; i++ {
			offset = textpos.NextBoundary(text, offset)
		}
		s.SetCursor(offset)
	case LineHome:
		s.SetCursor(textpos.LineStart(text, s.cursor))
	case LineEnd:
		end := textpos.LineEnd(text, s.cursor)
		if end > 0 && end < len(text) && text[end-1] == '\r' {
			end--
		}
		s.SetCursor(end)
	case DocStart:
		s.SetCursor(0)
	case DocEnd:
		s.SetCursor(len(text))
	}
}

// moveVertical keeps the preferred column across short lines.
func (s *Session) moveVertical(dir Direction, n int) {
	text := s.snap.Text
	pos := textpos.FromOffset(text, s.cursor)
	col := s.wantCol
	if col == 0 {
		col = pos.Column
	}

	line := pos.Line + n
	if dir == Up {
		line = pos.Line - n
	}
	var offset int
	switch {
	case line < 1:
		offset = 0
	case line > textpos.LineCount(text):
		offset = len(text)
	default:
		offset = textpos.ToOffset(text, textpos.Position{Line: line, Column: col})
	}
	s.moveTo(offset)
	s.wantCol = col
}

// Scroll returns the first visible row (0-based) and the horizontal scroll in
// cells.
func (s *Session) Scroll() (row, col int) {
	return s.scrollRow, s.scrollCol
}

// View describes the visible text area.
type View struct {
	Height    int
	Width     int
	ScrollOff int
	TabWidth  int
}

// ScrollToCursor adjusts the scroll position so the cursor stays visible with
// ScrollOff lines of context.
func (s *Session) ScrollToCursor(v View) {
	if v.Height <= 0 || v.Width <= 0 {
		return
	}
	text := s.snap.Text
	row := textpos.LineAt(text, s.cursor) - 1

	off := v.ScrollOff
	if off > (v.Height-1)/2 {
		off = (v.Height - 1) / 2
	}
	if row < s.scrollRow+off {
		s.scrollRow = max(row-off, 0)
	}
	if row >= s.scrollRow+v.Height-off {
		s.scrollRow = row - v.Height + off + 1
	}

	start := textpos.LineStart(text, s.cursor)
	col := textpos.VisualWidth(text[start:s.cursor], v.TabWidth)
	if col < s.scrollCol {
		s.scrollCol = col
	}
	if col >= s.scrollCol+v.Width {
		s.scrollCol = col - v.Width + 1
	}
}
