package app

import (
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/modehandler"
	"github.com/bethropolis/jsonpad/internal/session"
	"github.com/bethropolis/jsonpad/internal/textpos"
	"github.com/bethropolis/jsonpad/internal/tui"
)

// layout returns the text area for the current screen size.
func (a *App) layout() tui.Layout {
	width, height := a.tuiManager.Size()
	return tui.Layout{
		Width:    width,
		Height:   height - a.cfg.Editor.StatusBarHeight,
		TabWidth: a.cfg.Editor.TabWidth,
	}
}

// drawEditor clears screen and redraws all components.
func (a *App) drawEditor() {
	a.updateStatusBarContent()

	currentTheme := a.themeManager.Current()
	screen := a.tuiManager.GetScreen()
	width, height := a.tuiManager.Size()

	l := a.layout()
	snap := a.session.Snapshot()
	a.session.ScrollToCursor(session.View{
		Height:    l.Height,
		Width:     l.TextWidth(textpos.LineCount(snap.Text)),
		ScrollOff: a.cfg.Editor.ScrollOff,
		TabWidth:  l.TabWidth,
	})
	l.ScrollRow, l.ScrollCol = a.session.Scroll()

	logger.DebugTagf("draw", "drawEditor: Screen Size (%d x %d), ViewHeight: %d, Scroll: %d,%d",
		width, height, l.Height, l.ScrollRow, l.ScrollCol)

	a.tuiManager.Clear()
	tui.DrawDocument(a.tuiManager, snap, l, currentTheme)
	a.statusBar.Draw(screen, width, height, currentTheme)
	tui.DrawCursor(a.tuiManager, snap, l)
	a.tuiManager.Show()
}

// updateStatusBarContent pushes current session state to the status bar.
func (a *App) updateStatusBarContent() {
	snap := a.session.Snapshot()
	a.statusBar.SetFileInfo(a.session.FilePath(), a.session.IsModified())
	a.statusBar.SetCursorInfo(a.session.Position())
	a.statusBar.SetValidity(snap.Status, snap.Message(), snap.ErrorPos)
	a.statusBar.SetThemeName(a.themeManager.Current().Name)

	if a.modeHandler != nil && a.modeHandler.GetCurrentMode() == modehandler.ModeCommand {
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	}
}
