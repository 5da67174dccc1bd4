// internal/modehandler/modehandler.go
package modehandler

import (
	"errors"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/input"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/session"
	"github.com/bethropolis/jsonpad/internal/statusbar"
	"github.com/bethropolis/jsonpad/internal/theme"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "EDIT"
}

// CommandFunc runs a command-line command with its arguments.
type CommandFunc func(args []string) error

// ModeHandler manages input modes, command execution, and related state.
type ModeHandler struct {
	session        *session.Session
	inputProcessor *input.InputProcessor
	statusBar      *statusbar.StatusBar
	themes         *theme.Manager
	quitSignal     chan<- struct{}
	pageSize       func() int

	indent           int
	currentMode      InputMode
	cmdBuffer        string
	commands         map[string]CommandFunc
	forceQuitPending bool
	quitting         bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Session        *session.Session
	InputProcessor *input.InputProcessor
	StatusBar      *statusbar.StatusBar
	Themes         *theme.Manager
	QuitSignal     chan<- struct{} // Closed once to signal quit
	PageSize       func() int      // Rows moved by PageUp/PageDown
	Indent         int             // Spaces per level for Beautify and Tab
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Session == nil || cfg.InputProcessor == nil || cfg.StatusBar == nil || cfg.Themes == nil || cfg.QuitSignal == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	pageSize := cfg.PageSize
	if pageSize == nil {
		pageSize = func() int { return 20 }
	}
	return &ModeHandler{
		session:        cfg.Session,
		inputProcessor: cfg.InputProcessor,
		statusBar:      cfg.StatusBar,
		themes:         cfg.Themes,
		quitSignal:     cfg.QuitSignal,
		pageSize:       pageSize,
		indent:         cfg.Indent,
		currentMode:    ModeNormal,
		commands:       make(map[string]CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on current mode and key event.
// Returns true if the event requires a redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	logger.DebugTagf("input", "%v key %v -> %v", mh.currentMode, ev.Name(), actionEvent.Action)

	switch mh.currentMode {
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		return mh.handleActionNormal(actionEvent)
	}
}

// handleActionNormal runs an editing action against the session.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	s := mh.session
	actionProcessed := true

	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = ""
		mh.statusBar.SetTemporaryMessage(":")
		logger.Debugf("ModeHandler: Entering Command Mode")

	case input.ActionQuit:
		if s.IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.Quit()
		return false
	case input.ActionForceQuit:
		mh.Quit()
		return false

	case input.ActionSave:
		mh.Save("")

	case input.ActionMoveUp:
		s.MoveCursor(session.Up)
	case input.ActionMoveDown:
		s.MoveCursor(session.Down)
	case input.ActionMoveLeft:
		s.MoveCursor(session.Left)
	case input.ActionMoveRight:
		s.MoveCursor(session.Right)
	case input.ActionMovePageUp:
		s.MoveCursorBy(session.Up, mh.pageSize())
	case input.ActionMovePageDown:
		s.MoveCursorBy(session.Down, mh.pageSize())
	case input.ActionMoveHome:
		s.MoveCursor(session.LineHome)
	case input.ActionMoveEnd:
		s.MoveCursor(session.LineEnd)
	case input.ActionMoveDocStart:
		s.MoveCursor(session.DocStart)
	case input.ActionMoveDocEnd:
		s.MoveCursor(session.DocEnd)

	case input.ActionInsertRune:
		actionProcessed = mh.check("Insert", s.Insert(string(actionEvent.Rune)))
	case input.ActionInsertNewLine:
		actionProcessed = mh.check("Newline", s.InsertNewline())
	case input.ActionInsertTab:
		tab := "\t"
		if mh.indent > 0 {
			tab = strings.Repeat(" ", mh.indent)
		}
		actionProcessed = mh.check("Tab", s.Insert(tab))
	case input.ActionDeleteCharBackward:
		actionProcessed = mh.check("Backspace", s.Backspace())
	case input.ActionDeleteCharForward:
		actionProcessed = mh.check("Delete", s.DeleteForward())

	case input.ActionUndo:
		ok, err := s.Undo()
		if err == nil && !ok {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
		mh.check("Undo", err)
	case input.ActionRedo:
		ok, err := s.Redo()
		if err == nil && !ok {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}
		mh.check("Redo", err)

	case input.ActionBeautify:
		mh.Beautify()
	case input.ActionMinify:
		if mh.check("Minify", s.Minify()) {
			mh.statusBar.SetTemporaryMessage("Minified")
		}
	case input.ActionCopy:
		if mh.check("Copy", s.Copy()) {
			mh.statusBar.SetTemporaryMessage("Copied %d bytes", len(s.Text()))
		}
	case input.ActionPaste:
		actionProcessed = mh.check("Paste", s.Paste())
	case input.ActionClear:
		mh.check("Clear", s.Clear())

	case input.ActionNextTheme:
		t := mh.themes.Next()
		s.Events().Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: t.Name})
		mh.statusBar.SetTemporaryMessage("Theme: %s", t.Name)

	default:
		actionProcessed = false
	}

	if actionProcessed {
		mh.forceQuitPending = false
	}
	return actionProcessed
}

// check reports err on the status bar and returns whether the action
// succeeded.
func (mh *ModeHandler) check(action string, err error) bool {
	if err == nil {
		return true
	}
	switch {
	case errors.Is(err, session.ErrEmptyBuffer):
		mh.statusBar.SetTemporaryMessage("%s: nothing to do, the document is empty", action)
	case errors.Is(err, session.ErrInvalidJSON):
		msg := "%s failed: fix the JSON error first"
		if line := mh.session.Snapshot().ErrorLine(); line > 0 {
			mh.statusBar.SetTemporaryMessage(msg+" (line %d)", action, line)
			break
		}
		mh.statusBar.SetTemporaryMessage(msg, action)
	default:
		mh.statusBar.SetTemporaryMessage("%s failed: %v", action, err)
	}
	logger.Debugf("ModeHandler: %s: %v", action, err)
	return false
}

// Beautify re-indents the document with the current indent.
func (mh *ModeHandler) Beautify() {
	if mh.check("Beautify", mh.session.Beautify(mh.indent)) {
		mh.statusBar.SetTemporaryMessage("Beautified with indent %d", mh.indent)
	}
}

// Save writes the document to path, or to its file when path is empty.
func (mh *ModeHandler) Save(path string) bool {
	err := mh.session.Save(path)
	if errors.Is(err, session.ErrNoPath) {
		mh.statusBar.SetTemporaryMessage("No file name. Use :w <path>")
		return false
	}
	if !mh.check("Save", err) {
		return false
	}
	mh.statusBar.SetTemporaryMessage("Saved %s", mh.session.FilePath())
	return true
}

// Quit signals the application to exit. Later calls do nothing.
func (mh *ModeHandler) Quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}

// Indent returns the spaces per level used by Beautify.
func (mh *ModeHandler) Indent() int {
	return mh.indent
}

// SetIndent changes the spaces per level used by Beautify.
func (mh *ModeHandler) SetIndent(n int) {
	mh.indent = n
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command line being typed.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return mh.cmdBuffer
	}
	return ""
}
