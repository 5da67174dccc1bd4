// Package session owns the editor document: its buffer, cursor and scroll
// position, and the derived highlight state.
//
// Every mutation or cursor move re-runs the pipeline synchronously (tokenize,
// validate, locate the error, match the bracket at the cursor, render) and
// replaces the current Snapshot wholesale. Snapshots are never mutated.
package session

import (
	"errors"

	"github.com/bethropolis/jsonpad/internal/bracket"
	"github.com/bethropolis/jsonpad/internal/buffer"
	"github.com/bethropolis/jsonpad/internal/clipboard"
	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/history"
	"github.com/bethropolis/jsonpad/internal/locate"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/markup"
	"github.com/bethropolis/jsonpad/internal/store"
	"github.com/bethropolis/jsonpad/internal/token"
)

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrEmptyBuffer = errors.New("buffer is empty")
	ErrNoPath      = buffer.ErrNoPath
)

// Status is the validity of the document.
type Status int

const (
	StatusEmpty Status = iota // Only whitespace; nothing to validate
	StatusValid
	StatusInvalid
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusInvalid:
		return "invalid"
	}
	return "empty"
}

// Snapshot is the derived state of the document at one point in time.
type Snapshot struct {
	Text   string
	Tokens []token.Token
	Cursor int

	Status   Status
	Err      error            // Parser error when invalid
	ErrorPos *locate.Position // Located error position, if any

	Pair   *bracket.Pair // Bracket pair at the cursor, if any
	Markup string
}

// ErrorLine returns the 1-based error line, or 0.
func (s *Snapshot) ErrorLine() int {
	if s.ErrorPos == nil {
		return 0
	}
	return s.ErrorPos.Line
}

// Message returns the parser message, or "".
func (s *Snapshot) Message() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Options configures a Session. Zero values select defaults.
type Options struct {
	// Parser validates the document. Errors implementing
	// locate.OffsetError are positioned exactly.
	Parser locate.Parser
	// Locators are tried in order on errors without an exact offset.
	Locators []locate.Locator

	Events     *event.Manager
	Clipboard  *clipboard.Manager
	Store      *store.Store
	MaxHistory int
}

// Session is a single-document editor controller. It is not safe for
// concurrent use; the UI event loop drives it.
type Session struct {
	buf       *buffer.TextBuffer
	cursor    int
	wantCol   int // Preferred column for vertical moves, 0 when unset
	scrollRow int
	scrollCol int

	parser    locate.Parser
	locators  []locate.Locator
	events    *event.Manager
	clipboard *clipboard.Manager
	store     *store.Store
	history   *history.Manager

	snap Snapshot
}

// New creates a session over an empty buffer.
func New(opts Options) *Session {
	s := &Session{
		buf:       buffer.NewTextBuffer(),
		parser:    opts.Parser,
		locators:  opts.Locators,
		events:    opts.Events,
		clipboard: opts.Clipboard,
		store:     opts.Store,
	}
	if s.parser == nil {
		s.parser = locate.JSONParser{Exact: true}
	}
	if s.locators == nil {
		s.locators = []locate.Locator{locate.NewCascade(nil)}
	}
	if s.events == nil {
		s.events = event.NewManager()
	}
	if s.clipboard == nil {
		s.clipboard = clipboard.NewManager(false)
	}
	s.history = history.NewManager(s, opts.MaxHistory)
	s.refresh(true)
	return s
}

// Events returns the session's event manager.
func (s *Session) Events() *event.Manager {
	return s.events
}

// Snapshot returns the current derived state.
func (s *Session) Snapshot() *Snapshot {
	return &s.snap
}

// Text returns the document.
func (s *Session) Text() string {
	return s.snap.Text
}

// Cursor returns the cursor byte offset.
func (s *Session) Cursor() int {
	return s.cursor
}

// FilePath returns the file the buffer is bound to, if any.
func (s *Session) FilePath() string {
	return s.buf.FilePath()
}

// IsModified reports unsaved changes.
func (s *Session) IsModified() bool {
	return s.buf.IsModified()
}

// Refresh re-runs the whole pipeline and returns the new snapshot.
func (s *Session) Refresh() *Snapshot {
	s.refresh(true)
	return &s.snap
}

// refresh rebuilds the snapshot. Token and validity work is skipped when
// only the cursor moved.
func (s *Session) refresh(contentChanged bool) {
	prev := s.snap
	next := Snapshot{Cursor: s.cursor}

	if contentChanged {
		next.Text = s.buf.String()
		next.Tokens = token.Tokenize(next.Text)
		s.validate(&next)
	} else {
		next.Text = prev.Text
		next.Tokens = prev.Tokens
		next.Status = prev.Status
		next.Err = prev.Err
		next.ErrorPos = prev.ErrorPos
	}

	if pair, ok := bracket.Find(next.Text, s.cursor); ok {
		next.Pair = &pair
	}
	next.Markup = markup.Render(next.Tokens, next.Pair, next.ErrorLine())
	s.snap = next

	if contentChanged && (prev.Status != next.Status || prev.Message() != next.Message()) {
		s.events.Dispatch(event.TypeValidityChanged, event.ValidityChangedData{
			Valid:    next.Status != StatusInvalid,
			Message:  next.Message(),
			Position: next.ErrorPos,
		})
	}
}

func (s *Session) validate(snap *Snapshot) {
	if token.IsBlank(snap.Text) {
		snap.Status = StatusEmpty
		return
	}
	err := s.parser.Parse(snap.Text)
	if err == nil {
		snap.Status = StatusValid
		return
	}
	snap.Status = StatusInvalid
	snap.Err = err
	if pos, ok := locate.Resolve(err, snap.Text, s.locators...); ok {
		snap.ErrorPos = &pos
		logger.DebugTagf("session", "error at %d:%d: %v", pos.Line, pos.Column, err)
	} else {
		logger.DebugTagf("session", "error without position: %v", err)
	}
}
