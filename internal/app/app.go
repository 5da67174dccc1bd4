// internal/app/app.go
package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/jsonpad/internal/clipboard"
	"github.com/bethropolis/jsonpad/internal/config"
	"github.com/bethropolis/jsonpad/internal/event"
	"github.com/bethropolis/jsonpad/internal/input"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/modehandler"
	"github.com/bethropolis/jsonpad/internal/session"
	"github.com/bethropolis/jsonpad/internal/statusbar"
	"github.com/bethropolis/jsonpad/internal/store"
	"github.com/bethropolis/jsonpad/internal/syntaxtree"
	"github.com/bethropolis/jsonpad/internal/theme"
	"github.com/bethropolis/jsonpad/internal/tui"
	"github.com/bethropolis/jsonpad/internal/utils"
)

// App encapsulates the core components and main loop of the editor.
type App struct {
	cfg          *config.Config
	tuiManager   *tui.TUI
	session      *session.Session
	statusBar    *statusbar.StatusBar
	eventManager *event.Manager
	modeHandler  *modehandler.ModeHandler
	themeManager *theme.Manager
	store        *store.Store

	persist utils.Debouncer

	quit           chan struct{}
	redrawRequest  chan struct{}
	persistRequest chan struct{}
}

// Options configures NewApp.
type Options struct {
	FilePath string
	// Screen replaces the terminal, for example with a simulation screen.
	Screen tcell.Screen
}

// NewApp creates and initializes a new application instance.
func NewApp(cfg *config.Config, opts Options) (*App, error) {
	themesDir, err := config.ThemesDir()
	if err != nil {
		logger.Warnf("App: no themes directory: %v", err)
	}
	themeManager := theme.NewManager(themesDir)
	if err := themeManager.SetTheme(cfg.Editor.Theme); err != nil {
		logger.Warnf("App: %v, using %s", err, themeManager.Current().Name)
	}

	st := openStore(cfg)
	eventManager := event.NewManager()
	sess := session.New(session.Options{
		Locators:  syntaxtree.Locators(cfg.Locate.Structural),
		Events:    eventManager,
		Clipboard: clipboard.NewManager(cfg.Editor.SystemClipboard),
		Store:     st,
	})

	if opts.FilePath != "" {
		if err := sess.Load(opts.FilePath); err != nil {
			return nil, fmt.Errorf("failed to load '%s': %w", opts.FilePath, err)
		}
	} else if sess.Restore() {
		logger.Debugf("App: restored previous session")
	}

	defStyle := themeManager.Current().GetStyle(theme.StyleDefault)
	var tuiManager *tui.TUI
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, defStyle)
	} else {
		tuiManager, err = tui.New(defStyle)
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	statusBar := statusbar.New(statusbar.Config{MessageTimeout: config.MessageTimeout})
	quitChan := make(chan struct{})

	a := &App{
		cfg:            cfg,
		tuiManager:     tuiManager,
		session:        sess,
		statusBar:      statusBar,
		eventManager:   eventManager,
		themeManager:   themeManager,
		store:          st,
		quit:           quitChan,
		redrawRequest:  make(chan struct{}, 1),
		persistRequest: make(chan struct{}, 1),
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Session:        sess,
		InputProcessor: input.NewInputProcessor(),
		StatusBar:      statusBar,
		Themes:         themeManager,
		QuitSignal:     quitChan,
		PageSize:       func() int { return max(a.layout().Height-1, 1) },
		Indent:         cfg.Editor.Indent,
	})
	registerAppCommands(a)

	eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMoved)
	eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	eventManager.Subscribe(event.TypeValidityChanged, a.handleValidityChanged)
	eventManager.Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	eventManager.Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
	eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)

	a.updateStatusBarContent()
	return a, nil
}

// openStore opens the session store, or returns nil when it is unavailable.
func openStore(cfg *config.Config) *store.Store {
	dir := cfg.Session.Dir
	if dir == "" {
		var err error
		if dir, err = store.DefaultDir(config.AppName); err != nil {
			logger.Warnf("App: session store disabled: %v", err)
			return nil
		}
	}
	st, err := store.Open(dir)
	if err != nil {
		logger.Warnf("App: session store disabled: %v", err)
		return nil
	}
	if st.SessionSave() != cfg.Session.Save {
		if err := st.SetSessionSave(cfg.Session.Save); err != nil {
			logger.Warnf("App: failed to update session save: %v", err)
		}
	}
	return st
}

// Run starts the event and drawing loop. It returns when the user quits.
func (a *App) Run() error {
	defer a.tuiManager.Close()

	events := make(chan tcell.Event)
	go a.pollEvents(events)

	a.statusBar.SetTemporaryMessage("jsonpad - Ctrl+B Beautify | Ctrl+P Command | ESC Quit")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.shutdown()
			return nil
		case ev := <-events:
			if a.handleEvent(ev) {
				a.requestRedraw()
			}
		case <-a.persistRequest:
			a.persistSession()
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

// pollEvents forwards terminal events until the screen is finalized.
func (a *App) pollEvents(events chan<- tcell.Event) {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-a.quit:
			return
		}
	}
}

func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		return a.modeHandler.HandleKeyEvent(ev)
	}
	return false
}

func (a *App) shutdown() {
	a.eventManager.Dispatch(event.TypeAppQuit, nil)
	if a.persist.Flush() {
		a.persistSession()
	}
	if a.session.IsModified() {
		logger.Warnf("App: exited with unsaved changes")
	}
	logger.Infof("Exiting application.")
}

func (a *App) persistSession() {
	if err := a.session.Persist(); err != nil {
		logger.Warnf("App: failed to persist session: %v", err)
	}
}

// requestRedraw sends a redraw signal non-blockingly.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

func (a *App) requestPersist() {
	select {
	case a.persistRequest <- struct{}{}:
	default:
	}
}

// Session returns the edited document.
func (a *App) Session() *session.Session {
	return a.session
}
