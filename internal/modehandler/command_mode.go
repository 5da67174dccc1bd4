package modehandler

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/jsonpad/internal/input"
	"github.com/bethropolis/jsonpad/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	actionProcessed := true
	needsUpdate := false

	switch actionEvent.Action {
	case input.ActionInsertRune:
		mh.cmdBuffer += string(actionEvent.Rune)
		needsUpdate = true

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) > 0 {
			_, size := utf8.DecodeLastRuneInString(mh.cmdBuffer)
			mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-size]
			needsUpdate = true
		} else {
			mh.currentMode = ModeNormal
			mh.statusBar.ResetTemporaryMessage()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
		}

	case input.ActionInsertNewLine:
		mh.currentMode = ModeNormal
		mh.executeCommand()

	case input.ActionQuit:
		mh.currentMode = ModeNormal
		mh.cmdBuffer = ""
		mh.statusBar.ResetTemporaryMessage()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")

	default:
		actionProcessed = false
	}

	if needsUpdate && mh.currentMode == ModeCommand {
		mh.statusBar.SetTemporaryMessage(":%s", mh.cmdBuffer)
	}

	return actionProcessed
}

// executeCommand parses and runs the command in cmdBuffer.
func (mh *ModeHandler) executeCommand() {
	cmdStr := mh.cmdBuffer
	mh.cmdBuffer = ""

	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		mh.statusBar.ResetTemporaryMessage()
		return
	}
	cmdName, args := parts[0], parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
	}
}

// RegisterCommand adds a command to the registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands returns the registered command names, sorted.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
