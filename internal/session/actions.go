package session

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/store"
	"github.com/bethropolis/jsonpad/internal/token"
)

// Format returns text re-indented with indent spaces per level, or compacted
// when indent is 0. text must already be valid JSON; values are kept
// byte-for-byte.
func Format(text string, indent int) string {
	if indent <= 0 {
		return string(pretty.Ugly([]byte(text)))
	}
	out := pretty.PrettyOptions([]byte(text), &pretty.Options{
		Indent: strings.Repeat(" ", indent),
	})
	return string(bytes.TrimSuffix(out, []byte("\n")))
}

// checkParses returns an error wrapping ErrInvalidJSON when the document does
// not parse, and ErrEmptyBuffer when there is nothing to parse.
func (s *Session) checkParses() error {
	if token.IsBlank(s.snap.Text) {
		return ErrEmptyBuffer
	}
	if err := s.parser.Parse(s.snap.Text); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

// Beautify re-indents the document. On a parse failure the buffer is left
// unchanged and the error is returned.
func (s *Session) Beautify(indent int) error {
	if err := s.checkParses(); err != nil {
		return err
	}
	logger.DebugTagf("session", "beautify with indent %d", indent)
	return s.Replace(Format(s.snap.Text, indent))
}

// Minify removes all insignificant whitespace from the document.
func (s *Session) Minify() error {
	return s.Beautify(0)
}

// Copy puts the whole document on the clipboard.
func (s *Session) Copy() error {
	if s.snap.Text == "" {
		return ErrEmptyBuffer
	}
	return s.clipboard.Copy([]byte(s.snap.Text))
}

// Paste inserts the clipboard content at the cursor.
func (s *Session) Paste() error {
	return s.Insert(string(s.clipboard.Paste()))
}

// Query evaluates a gjson path against the document.
func (s *Session) Query(path string) (gjson.Result, error) {
	if s.snap.Status != StatusValid {
		if s.snap.Status == StatusEmpty {
			return gjson.Result{}, ErrEmptyBuffer
		}
		return gjson.Result{}, fmt.Errorf("%w: %v", ErrInvalidJSON, s.snap.Err)
	}
	return gjson.Get(s.snap.Text, path), nil
}

// Load replaces the document with the file at path. A missing file starts an
// empty document bound to path.
func (s *Session) Load(path string) error {
	if err := s.buf.Load(path); err != nil {
		return err
	}
	s.reset()
	s.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: path})
	return nil
}

// Restore loads the document saved in the session store. It reports false
// when there is no store or nothing stored.
func (s *Session) Restore() bool {
	if s.store == nil {
		return false
	}
	content, ok := s.store.Get(store.ContentKey)
	if !ok {
		return false
	}
	s.buf.Reset([]byte(content))
	s.reset()
	s.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{})
	logger.Infof("Session: restored %d bytes from %s", len(content), s.store.Path())
	return true
}

func (s *Session) reset() {
	s.history.Clear()
	s.cursor = 0
	s.wantCol = 0
	s.scrollRow, s.scrollCol = 0, 0
	s.refresh(true)
}

// Save writes the document to path, or to the loaded path when path is "".
func (s *Session) Save(path string) error {
	if err := s.buf.Save(path); err != nil {
		return err
	}
	s.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: s.buf.FilePath()})
	return nil
}

// Persist writes the document to the session store. Without a store, or with
// session save disabled, nothing is kept.
func (s *Session) Persist() error {
	if s.store == nil {
		return nil
	}
	return s.store.Put(store.ContentKey, s.snap.Text)
}
