package modehandler

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/input"
	"github.com/bethropolis/jsonpad/internal/session"
	"github.com/bethropolis/jsonpad/internal/statusbar"
	"github.com/bethropolis/jsonpad/internal/theme"
)

type fixture struct {
	mh   *ModeHandler
	s    *session.Session
	sb   *statusbar.StatusBar
	quit chan struct{}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		s:    session.New(session.Options{}),
		sb:   statusbar.New(statusbar.DefaultConfig()),
		quit: make(chan struct{}),
	}
	f.mh = New(Config{
		Session:        f.s,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      f.sb,
		Themes:         theme.NewManager(""),
		QuitSignal:     f.quit,
		Indent:         2,
	})
	return f
}

func (f *fixture) typeText(text string) {
	for _, r := range text {
		f.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func (f *fixture) key(k tcell.Key, mod tcell.ModMask) bool {
	return f.mh.HandleKeyEvent(tcell.NewEventKey(k, 0, mod))
}

func (f *fixture) status() string {
	segments, _ := f.sb.Segments()
	return segments[0].Text
}

func (f *fixture) quitClosed() bool {
	select {
	case <-f.quit:
		return true
	default:
		return false
	}
}

func TestTypeBeautifyUndo(t *testing.T) {
	f := newFixture(t)
	f.typeText(`{"a":1}`)
	if f.s.Text() != `{"a":1}` {
		t.Fatalf("text = %q", f.s.Text())
	}

	f.key(tcell.KeyCtrlB, tcell.ModCtrl)
	if f.s.Text() != "{\n  \"a\": 1\n}" {
		t.Errorf("beautified = %q", f.s.Text())
	}
	if !strings.Contains(f.status(), "indent 2") {
		t.Errorf("status = %q", f.status())
	}

	f.key(tcell.KeyCtrlZ, tcell.ModCtrl)
	if f.s.Text() != `{"a":1}` {
		t.Errorf("after undo = %q", f.s.Text())
	}
}

func TestBeautifyInvalidReportsLine(t *testing.T) {
	f := newFixture(t)
	f.typeText("[1")
	f.key(tcell.KeyEnter, tcell.ModNone)
	f.typeText("2]")
	f.key(tcell.KeyCtrlB, tcell.ModCtrl)
	if f.s.Text() != "[1\n2]" {
		t.Errorf("text changed to %q", f.s.Text())
	}
	if got := f.status(); !strings.Contains(got, "Beautify failed") || !strings.Contains(got, "line 2") {
		t.Errorf("status = %q", got)
	}
}

func TestTabUsesIndent(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyTab, tcell.ModNone)
	f.mh.SetIndent(0)
	f.key(tcell.KeyTab, tcell.ModNone)
	if f.s.Text() != "  \t" {
		t.Errorf("text = %q", f.s.Text())
	}
}

func TestQuitAsksOnceWhenModified(t *testing.T) {
	f := newFixture(t)
	f.typeText("[]")

	if !f.key(tcell.KeyEscape, tcell.ModNone) {
		t.Error("first Esc should redraw the warning")
	}
	if f.quitClosed() {
		t.Fatal("quit with unsaved changes on first Esc")
	}
	if !strings.Contains(f.status(), "Unsaved changes") {
		t.Errorf("status = %q", f.status())
	}

	f.key(tcell.KeyEscape, tcell.ModNone)
	if !f.quitClosed() {
		t.Fatal("second Esc did not quit")
	}
	// A further quit must not close the channel twice.
	f.key(tcell.KeyCtrlQ, tcell.ModCtrl)
}

func TestQuitPendingResetByEdit(t *testing.T) {
	f := newFixture(t)
	f.typeText("1")
	f.key(tcell.KeyEscape, tcell.ModNone)
	f.typeText("2")
	f.key(tcell.KeyEscape, tcell.ModNone)
	if f.quitClosed() {
		t.Error("quit after an edit reset the warning")
	}
}

func TestSave(t *testing.T) {
	f := newFixture(t)
	f.typeText("[]")
	f.key(tcell.KeyCtrlS, tcell.ModCtrl)
	if !strings.Contains(f.status(), "No file name") {
		t.Errorf("status = %q", f.status())
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if !f.mh.Save(path) {
		t.Fatalf("Save failed: %s", f.status())
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "[]" {
		t.Errorf("file = %q, %v", data, err)
	}
}

func TestCommandMode(t *testing.T) {
	f := newFixture(t)
	var got []string
	if err := f.mh.RegisterCommand("echo", func(args []string) error {
		got = args
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := f.mh.RegisterCommand("echo", nil); err == nil {
		t.Error("duplicate command registered")
	}

	f.key(tcell.KeyCtrlP, tcell.ModCtrl)
	if f.mh.GetCurrentMode() != ModeCommand {
		t.Fatal("not in command mode")
	}
	f.typeText("echo a bé")
	f.key(tcell.KeyBackspace2, tcell.ModNone)
	if f.mh.GetCommandBuffer() != "echo a b" || f.status() != ":echo a b" {
		t.Errorf("buffer %q status %q", f.mh.GetCommandBuffer(), f.status())
	}
	f.key(tcell.KeyEnter, tcell.ModNone)
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("args = %v", got)
	}
	if f.mh.GetCurrentMode() != ModeNormal || f.s.Text() != "" {
		t.Errorf("mode %v text %q after command", f.mh.GetCurrentMode(), f.s.Text())
	}

	f.key(tcell.KeyCtrlP, tcell.ModCtrl)
	f.typeText("nope")
	f.key(tcell.KeyEnter, tcell.ModNone)
	if f.status() != "Unknown command: nope" {
		t.Errorf("status = %q", f.status())
	}

	f.key(tcell.KeyCtrlP, tcell.ModCtrl)
	f.key(tcell.KeyBackspace2, tcell.ModNone)
	if f.mh.GetCurrentMode() != ModeNormal {
		t.Error("Backspace on an empty command line did not leave command mode")
	}
}

func TestNextTheme(t *testing.T) {
	f := newFixture(t)
	var changed string
	f.s.Events().Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		changed = e.Data.(event.ThemeChangedData).Name
		return false
	})
	f.key(tcell.KeyCtrlT, tcell.ModCtrl)
	if changed != "Paper Light" || f.mh.themes.Current().Name != "Paper Light" {
		t.Errorf("theme changed to %q", changed)
	}
}

func TestCopyPasteAndEmpty(t *testing.T) {
	f := newFixture(t)
	f.key(tcell.KeyCtrlC, tcell.ModCtrl)
	if !strings.Contains(f.status(), "empty") {
		t.Errorf("status = %q", f.status())
	}
	f.typeText("[1]")
	f.key(tcell.KeyCtrlC, tcell.ModCtrl)
	f.key(tcell.KeyCtrlL, tcell.ModCtrl)
	if f.s.Text() != "" {
		t.Fatalf("after clear = %q", f.s.Text())
	}
	f.key(tcell.KeyCtrlV, tcell.ModCtrl)
	if f.s.Text() != "[1]" {
		t.Errorf("after paste = %q", f.s.Text())
	}
}
