// Package clipboard copies text to the system clipboard, keeping an internal
// register as a fallback when no system clipboard is available.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/jsonpad/internal/logger"
)

// System is the system clipboard backend.
type System interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

type atottoSystem struct{}

func (atottoSystem) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (atottoSystem) ReadAll() (string, error)   { return clipboard.ReadAll() }

// Manager handles clipboard operations.
type Manager struct {
	mu       sync.Mutex
	system   System
	register []byte
}

// NewManager creates a clipboard manager. With useSystem false, or when the
// platform has no clipboard utility, only the internal register is used.
func NewManager(useSystem bool) *Manager {
	m := &Manager{}
	if useSystem && !clipboard.Unsupported {
		m.system = atottoSystem{}
	}
	return m
}

// NewManagerWith creates a manager backed by sys, which may be nil.
func NewManagerWith(sys System) *Manager {
	return &Manager{system: sys}
}

// Copy stores text in the register and, when available, the system
// clipboard. A system clipboard failure is returned but the register is
// still updated.
func (m *Manager) Copy(text []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.register = append(m.register[:0], text...)
	logger.DebugTagf("clipboard", "copied %d bytes", len(text))
	if m.system == nil {
		return nil
	}
	if err := m.system.WriteAll(string(text)); err != nil {
		return fmt.Errorf("system clipboard: %w", err)
	}
	return nil
}

// Paste returns the system clipboard content, falling back to the register.
func (m *Manager) Paste() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.system != nil {
		text, err := m.system.ReadAll()
		if err == nil {
			return []byte(text)
		}
		logger.Warnf("Clipboard: system read failed, using register: %v", err)
	}
	return append([]byte(nil), m.register...)
}

// HasSystem reports whether a system clipboard backend is in use.
func (m *Manager) HasSystem() bool {
	return m.system != nil
}
