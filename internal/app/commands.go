package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/jsonpad/internal/config"
	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/modehandler"
	"github.com/bethropolis/jsonpad/internal/textpos"
)

var errUnsaved = errors.New("unsaved changes (add ! to discard)")

// registerAppCommands registers the built-in command-line commands.
func registerAppCommands(a *App) {
	mh := a.modeHandler
	s := a.session
	commands := map[string]modehandler.CommandFunc{
		"theme": func(args []string) error {
			if len(args) == 0 {
				a.statusBar.SetTemporaryMessage("Current theme: %s", a.themeManager.Current().Name)
				return nil
			}
			name := strings.Join(args, " ")
			if err := a.themeManager.SetTheme(name); err != nil {
				return fmt.Errorf("%w. Available: %s", err, strings.Join(a.themeManager.ListThemes(), ", "))
			}
			a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: a.themeManager.Current().Name})
			a.statusBar.SetTemporaryMessage("Theme set to: %s", a.themeManager.Current().Name)
			return nil
		},
		"themes": func([]string) error {
			a.statusBar.SetTemporaryMessage("Available themes: %s", strings.Join(a.themeManager.ListThemes(), ", "))
			return nil
		},
		"w": func(args []string) error {
			mh.Save(strings.Join(args, " "))
			return nil
		},
		"wq": func(args []string) error {
			if mh.Save(strings.Join(args, " ")) {
				mh.Quit()
			}
			return nil
		},
		"q": func([]string) error {
			if s.IsModified() {
				return errUnsaved
			}
			mh.Quit()
			return nil
		},
		"q!": func([]string) error {
			mh.Quit()
			return nil
		},
		"e": func(args []string) error {
			return a.edit(args, false)
		},
		"e!": func(args []string) error {
			return a.edit(args, true)
		},
		"query": func(args []string) error {
			if len(args) == 0 {
				return errors.New("usage: query <path>")
			}
			path := strings.Join(args, " ")
			res, err := s.Query(path)
			if err != nil {
				return err
			}
			if !res.Exists() {
				a.statusBar.SetTemporaryMessage("%s: no match", path)
				return nil
			}
			a.statusBar.SetTemporaryMessage("%s = %s", path, res.Raw)
			return nil
		},
		"indent": func(args []string) error {
			if len(args) == 0 {
				a.statusBar.SetTemporaryMessage("Indent: %d", mh.Indent())
				return nil
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 0 || n > config.MaxIndent {
				return fmt.Errorf("indent must be a number from 0 to %d", config.MaxIndent)
			}
			mh.SetIndent(n)
			a.statusBar.SetTemporaryMessage("Indent set to %d", n)
			return nil
		},
		"beautify": func([]string) error {
			mh.Beautify()
			return nil
		},
		"goto": func(args []string) error {
			if len(args) == 0 {
				return errors.New("usage: goto <line>[:<column>]")
			}
			pos, err := parsePosition(args[0])
			if err != nil {
				return err
			}
			s.SetCursor(textpos.ToOffset(s.Text(), pos))
			return nil
		},
		"error": func([]string) error {
			snap := s.Snapshot()
			if snap.ErrorPos == nil {
				a.statusBar.SetTemporaryMessage("No located error")
				return nil
			}
			s.SetCursor(textpos.ToOffset(snap.Text, *snap.ErrorPos))
			a.statusBar.SetTemporaryMessage("%s", snap.Message())
			return nil
		},
		"session": func(args []string) error {
			if a.store == nil {
				return errors.New("session store unavailable")
			}
			if len(args) == 0 {
				a.statusBar.SetTemporaryMessage("Session save: %v", a.store.SessionSave())
				return nil
			}
			var enabled bool
			switch args[0] {
			case "on":
				enabled = true
			case "off":
			default:
				return errors.New("usage: session on|off")
			}
			if err := a.store.SetSessionSave(enabled); err != nil {
				return err
			}
			if enabled {
				a.persistSession()
			}
			a.statusBar.SetTemporaryMessage("Session save: %v", enabled)
			return nil
		},
		"help": func([]string) error {
			a.statusBar.SetTemporaryMessage("Commands: %s", strings.Join(mh.Commands(), " "))
			return nil
		},
	}

	for name, fn := range commands {
		if err := mh.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

func (a *App) edit(args []string, force bool) error {
	if len(args) == 0 {
		return errors.New("usage: e <path>")
	}
	if a.session.IsModified() && !force {
		return errUnsaved
	}
	path := strings.Join(args, " ")
	if err := a.session.Load(path); err != nil {
		return err
	}
	a.statusBar.SetTemporaryMessage("Opened %s", path)
	return nil
}

// parsePosition parses "line" or "line:column", both 1-based.
func parsePosition(s string) (textpos.Position, error) {
	lineStr, colStr, hasCol := strings.Cut(s, ":")
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return textpos.Position{}, fmt.Errorf("invalid line %q", lineStr)
	}
	col := 1
	if hasCol {
		if col, err = strconv.Atoi(colStr); err != nil || col < 1 {
			return textpos.Position{}, fmt.Errorf("invalid column %q", colStr)
		}
	}
	return textpos.Position{Line: line, Column: col}, nil
}
