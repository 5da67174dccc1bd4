// internal/input/action.go
package input

// Action represents an operation the editor performs in response to a key.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit // Quit without checking modified status
	ActionSave

	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line
	ActionMoveDocStart
	ActionMoveDocEnd

	ActionInsertRune // Requires Rune
	ActionInsertNewLine
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward

	ActionUndo
	ActionRedo

	ActionBeautify
	ActionMinify
	ActionCopy
	ActionPaste
	ActionClear
	ActionNextTheme

	ActionEnterCommandMode
)

var actionNames = map[Action]string{
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionSave:               "save",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "line-home",
	ActionMoveEnd:            "line-end",
	ActionMoveDocStart:       "doc-start",
	ActionMoveDocEnd:         "doc-end",
	ActionInsertRune:         "insert",
	ActionInsertNewLine:      "newline",
	ActionInsertTab:          "tab",
	ActionDeleteCharForward:  "delete",
	ActionDeleteCharBackward: "backspace",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionBeautify:           "beautify",
	ActionMinify:             "minify",
	ActionCopy:               "copy",
	ActionPaste:              "paste",
	ActionClear:              "clear",
	ActionNextTheme:          "next-theme",
	ActionEnterCommandMode:   "command",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key event.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
}
