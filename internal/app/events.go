package app

import (
	"github.com/bethropolis/jsonpad/internal/config"
	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/theme"
)

func (a *App) handleCursorMoved(e event.Event) bool {
	a.statusBar.SetCursorInfo(a.session.Position())
	return false
}

// handleBufferModified schedules a session save once typing pauses.
func (a *App) handleBufferModified(e event.Event) bool {
	if data, ok := e.Data.(event.BufferModifiedData); ok {
		logger.DebugTagf("app", "buffer modified: %+v", data.Edit)
	}
	a.statusBar.SetFileInfo(a.session.FilePath(), a.session.IsModified())
	if a.store != nil {
		a.persist.Debounce(config.SessionSaveDelay, a.requestPersist)
	}
	return false
}

func (a *App) handleValidityChanged(e event.Event) bool {
	data, ok := e.Data.(event.ValidityChangedData)
	if !ok {
		logger.Warnf("App: ValidityChanged event with unexpected data type: %T", e.Data)
		return false
	}
	if !data.Valid {
		logger.DebugTagf("app", "document invalid: %s", data.Message)
	}
	snap := a.session.Snapshot()
	a.statusBar.SetValidity(snap.Status, data.Message, data.Position)
	return false
}

func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		logger.Infof("App: saved %s", data.FilePath)
	}
	a.statusBar.SetFileInfo(a.session.FilePath(), a.session.IsModified())
	return false
}

func (a *App) handleBufferLoaded(e event.Event) bool {
	a.updateStatusBarContent()
	a.requestRedraw()
	return false
}

func (a *App) handleThemeChanged(e event.Event) bool {
	current := a.themeManager.Current()
	a.tuiManager.SetStyle(current.GetStyle(theme.StyleDefault))
	a.statusBar.SetThemeName(current.Name)
	a.requestRedraw()
	return false
}
