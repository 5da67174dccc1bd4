// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/bethropolis/jsonpad/internal/session"
	"github.com/bethropolis/jsonpad/internal/textpos"
	"github.com/bethropolis/jsonpad/internal/theme"
)

// Config defines the behavior of the status bar.
type Config struct {
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		MessageTimeout: 4 * time.Second,
	}
}

// Segment is a run of status bar text drawn in one theme style.
type Segment struct {
	Text  string
	Style string
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex
	now    func() time.Time

	filePath   string
	isModified bool
	cursorPos  textpos.Position
	status     session.Status
	message    string
	errorPos   *textpos.Position
	themeName  string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config:    config,
		now:       time.Now,
		cursorPos: textpos.Position{Line: 1, Column: 1},
	}
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos textpos.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetValidity updates the document status and, when invalid, the parser
// message and located error position.
func (sb *StatusBar) SetValidity(status session.Status, message string, pos *textpos.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.status = status
	sb.message = message
	sb.errorPos = pos
}

// SetThemeName updates the theme shown on the right.
func (sb *StatusBar) SetThemeName(name string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.themeName = name
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Segments returns the left-hand segments and the right-hand text for the
// current state. Expired temporary messages are cleared.
func (sb *StatusBar) Segments() ([]Segment, string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	right := fmt.Sprintf("Ln %d, Col %d", sb.cursorPos.Line, sb.cursorPos.Column)
	if sb.themeName != "" {
		right += " | " + sb.themeName
	}

	if !sb.tempMessageTime.IsZero() {
		if sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout {
			return []Segment{{Text: sb.tempMessage, Style: theme.StyleStatusBarMessage}}, right
		}
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	name := sb.filePath
	if name == "" {
		name = "[No Name]"
	}
	segments := []Segment{{Text: name, Style: theme.StyleStatusBar}}
	if sb.isModified {
		segments = append(segments, Segment{Text: " [+]", Style: theme.StyleStatusBarModified})
	}

	switch sb.status {
	case session.StatusValid:
		segments = append(segments, Segment{Text: "  ✓ valid JSON", Style: theme.StyleStatusBarValid})
	case session.StatusInvalid:
		text := "  ✗ " + sb.message
		if sb.errorPos != nil {
			text += fmt.Sprintf(" (line %d, col %d)", sb.errorPos.Line, sb.errorPos.Column)
		}
		segments = append(segments, Segment{Text: text, Style: theme.StyleStatusBarError})
	default:
		segments = append(segments, Segment{Text: "  empty", Style: theme.StyleStatusBar})
	}
	return segments, right
}

// Draw renders the status bar on the last screen row.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, activeTheme *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1
	base := activeTheme.GetStyle(theme.StyleStatusBar)
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, base)
	}

	segments, right := sb.Segments()
	rightWidth := runewidth.StringWidth(right)
	leftWidth := width
	if rightWidth+2 <= width {
		leftWidth = width - rightWidth - 1
		drawText(screen, width-rightWidth, y, right, base)
	}

	x := 0
	for _, seg := range segments {
		avail := leftWidth - x
		if avail <= 0 {
			break
		}
		text := runewidth.Truncate(seg.Text, avail, "…")
		x = drawText(screen, x, y, text, activeTheme.GetStyle(seg.Style))
	}
}

// drawText draws s from x and returns the column after it.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		screen.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
