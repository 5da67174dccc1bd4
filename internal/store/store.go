// Package store persists small key/value session state to a single msgpack
// file.
//
// Keys ending in ":content" hold user documents. They are only written while
// session save is enabled; turning it off removes them from disk but leaves
// the caller's in-memory state alone.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bethropolis/jsonpad/internal/logger"
)

// Current schema version - increment when the file format changes.
const schemaVersion uint16 = 1

// ContentKey is where the editor document is stored.
const ContentKey = "json:content"

const fileName = "session.mp"

// payload is the on-disk format.
type payload struct {
	Schema      uint16
	SessionSave bool
	Values      map[string]string
}

// Store is a file-backed key/value store. It is safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	path string
	data payload
}

// DefaultDir returns $XDG_STATE_HOME/app, or ~/.local/state/app.
func DefaultDir(app string) (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, app), nil
}

// Open loads the store in dir, creating the directory if needed. A missing or
// outdated file yields an empty store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	s := &Store{
		path: filepath.Join(dir, fileName),
		data: payload{Schema: schemaVersion, Values: map[string]string{}},
	}

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}
	defer f.Close()

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		logger.Warnf("Store: discarding unreadable %s: %v", s.path, err)
		return s, nil
	}
	if p.Schema != schemaVersion {
		logger.Infof("Store: schema %d is outdated, starting empty", p.Schema)
		return s, nil
	}
	if p.Values == nil {
		p.Values = map[string]string{}
	}
	s.data = p
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// IsContentKey reports whether key holds document content.
func IsContentKey(key string) bool {
	return strings.HasSuffix(key, ":content")
}

// SessionSave reports whether content keys are persisted.
func (s *Store) SessionSave() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.SessionSave
}

// SetSessionSave toggles content persistence. Disabling it drops every
// content key from disk.
func (s *Store) SetSessionSave(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.SessionSave = enabled
	if !enabled {
		for key := range s.data.Values {
			if IsContentKey(key) {
				delete(s.data.Values, key)
			}
		}
	}
	return s.flush()
}

// Get returns the stored value for key. Content keys are hidden while session
// save is disabled.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if IsContentKey(key) && !s.data.SessionSave {
		return "", false
	}
	v, ok := s.data.Values[key]
	return v, ok
}

// Put stores value under key and writes the file. For a content key with
// session save disabled the key is removed instead.
func (s *Store) Put(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if IsContentKey(key) && !s.data.SessionSave {
		if _, ok := s.data.Values[key]; !ok {
			return nil
		}
		delete(s.data.Values, key)
		return s.flush()
	}
	s.data.Values[key] = value
	return s.flush()
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data.Values[key]; !ok {
		return nil
	}
	delete(s.data.Values, key)
	return s.flush()
}

// flush writes the payload atomically. Callers hold mu.
func (s *Store) flush() error {
	dir := filepath.Dir(s.path)
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	tmp := f.Name()

	if err := msgpack.NewEncoder(f).Encode(&s.data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("store: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("store: %w", err)
	}
	logger.DebugTagf("store", "wrote %d keys to %s", len(s.data.Values), s.path)
	return nil
}
