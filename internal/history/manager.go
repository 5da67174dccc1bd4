package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/jsonpad/internal/logger"
)

const DefaultMaxHistory = 100

// Target is what the history manager replays changes onto.
type Target interface {
	ApplyInsert(offset int, text []byte) error
	ApplyDelete(start, end int) error
	SetCursor(offset int)
}

// Manager handles the undo/redo stack.
type Manager struct {
	target       Target
	changes      []Change
	currentIndex int // Index of the next change to Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(target Target, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		target:     target,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a new change, clearing any redo history. Consecutive
// single-run typing is merged into one change.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	change.Text = append([]byte(nil), change.Text...)
	change.Old = append([]byte(nil), change.Old...)
	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}

	if n := len(m.changes); n > 0 && mergeable(m.changes[n-1], change) {
		last := &m.changes[n-1]
		last.Text = append(last.Text, change.Text...)
		logger.DebugTagf("history", "merged insert, now %q", last.Text)
		return
	}

	m.changes = append(m.changes, change)
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)

	logger.DebugTagf("history", "recorded %v at %d. Index: %d, Count: %d", change.Type, change.Offset, m.currentIndex, len(m.changes))
}

// mergeable reports whether next continues a typing run ending at prev.
// Newlines and structural characters start a new undo step.
func mergeable(prev, next Change) bool {
	if prev.Type != InsertAction || next.Type != InsertAction {
		return false
	}
	if next.Offset != prev.End() || len(next.Text) != 1 {
		return false
	}
	switch next.Text[0] {
	case '\n', ',', ':', '{', '}', '[', ']':
		return false
	}
	return true
}

// Undo reverts the last recorded change.
func (m *Manager) Undo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		logger.DebugTagf("history", "nothing to undo")
		return false, nil
	}

	change := m.changes[m.currentIndex-1]
	var err error
	switch change.Type {
	case InsertAction:
		err = m.target.ApplyDelete(change.Offset, change.End())
	case DeleteAction:
		err = m.target.ApplyInsert(change.Offset, change.Text)
	case ReplaceAction:
		err = m.replace(change.Offset, len(change.Text), change.Old)
	}
	if err != nil {
		logger.Errorf("History: undo of %v failed: %v", change.Type, err)
		return false, fmt.Errorf("undo failed: %w", err)
	}

	m.currentIndex--
	m.target.SetCursor(change.CursorBefore)
	logger.DebugTagf("history", "undid change %d (%v)", m.currentIndex, change.Type)
	return true, nil
}

// Redo reapplies the last undone change.
func (m *Manager) Redo() (bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.changes) {
		logger.DebugTagf("history", "nothing to redo")
		return false, nil
	}

	change := m.changes[m.currentIndex]
	var err error
	var cursor int
	switch change.Type {
	case InsertAction:
		err = m.target.ApplyInsert(change.Offset, change.Text)
		cursor = change.End()
	case DeleteAction:
		err = m.target.ApplyDelete(change.Offset, change.End())
		cursor = change.Offset
	case ReplaceAction:
		err = m.replace(change.Offset, len(change.Old), change.Text)
		cursor = change.End()
	}
	if err != nil {
		logger.Errorf("History: redo of %v failed: %v", change.Type, err)
		return false, fmt.Errorf("redo failed: %w", err)
	}

	m.currentIndex++
	m.target.SetCursor(cursor)
	logger.DebugTagf("history", "redid change, index now %d", m.currentIndex)
	return true, nil
}

// replace swaps n bytes at offset for text.
func (m *Manager) replace(offset, n int, text []byte) error {
	if err := m.target.ApplyDelete(offset, offset+n); err != nil {
		return err
	}
	return m.target.ApplyInsert(offset, text)
}

// Clear resets the history stack. Call this on load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0]
	m.currentIndex = 0
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
