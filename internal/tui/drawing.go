// internal/tui/drawing.go
package tui

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/jsonpad/internal/session"
	"github.com/bethropolis/jsonpad/internal/textpos"
	"github.com/bethropolis/jsonpad/internal/theme"
	"github.com/bethropolis/jsonpad/internal/token"
)

const lineNumberPadding = 1 // Space between number and text

// Layout is the screen area the document occupies.
type Layout struct {
	Width     int // Including the gutter
	Height    int // Text rows, excluding the status bar
	ScrollRow int // First visible line, 0-based
	ScrollCol int // Horizontal scroll in cells
	TabWidth  int
}

// GutterWidth returns the line number gutter width for a document of
// lineCount lines, or 0 when the screen is too narrow for one.
func GutterWidth(lineCount, width int) int {
	digits := len(fmt.Sprint(max(lineCount, 1)))
	gutter := digits + lineNumberPadding
	if gutter >= width {
		return 0
	}
	return gutter
}

// TextWidth returns the cells left for text once the gutter is drawn.
func (l Layout) TextWidth(lineCount int) int {
	return l.Width - GutterWidth(lineCount, l.Width)
}

// styler resolves the style of each byte offset from the snapshot tokens.
type styler struct {
	tokens    []token.Token
	pair      *matchPair
	theme     *theme.Theme
	match     tcell.Style
	errorBg   tcell.Color
	errorLine bool
}

type matchPair struct{ open, close int }

func (s *styler) at(offset int) tcell.Style {
	if s.pair != nil && (offset == s.pair.open || offset == s.pair.close) {
		return s.withLine(s.match)
	}
	i := sort.Search(len(s.tokens), func(i int) bool { return s.tokens[i].End() > offset })
	name := theme.StyleDefault
	if i < len(s.tokens) {
		name = s.tokens[i].Kind.StyleName()
	}
	return s.withLine(s.theme.GetStyle(name))
}

func (s *styler) withLine(style tcell.Style) tcell.Style {
	if s.errorLine {
		return style.Background(s.errorBg)
	}
	return style
}

// DrawDocument draws the visible lines of snap with line numbers, token
// colors, the matched bracket pair and the error line.
func DrawDocument(t *TUI, snap *session.Snapshot, l Layout, activeTheme *theme.Theme) {
	if l.Height <= 0 || l.Width <= 0 {
		return
	}
	if activeTheme == nil {
		activeTheme = &theme.DevComfortDark
	}

	defaultStyle := activeTheme.GetStyle(theme.StyleDefault)
	lineNumberStyle := activeTheme.GetStyle(theme.StyleLineNumber)
	lineNumberErrorStyle := activeTheme.GetStyle(theme.StyleLineNumberError)
	_, errorBg, _ := activeTheme.GetStyle(theme.StyleErrorLine).Decompose()

	text := snap.Text
	lineCount := textpos.LineCount(text)
	gutterWidth := GutterWidth(lineCount, l.Width)
	maxDigits := gutterWidth - lineNumberPadding
	textAreaWidth := l.Width - gutterWidth
	errorLine := snap.ErrorLine()
	cursorLine := textpos.LineAt(text, snap.Cursor)

	st := &styler{
		tokens:  snap.Tokens,
		theme:   activeTheme,
		match:   activeTheme.GetStyle(theme.StyleBracketMatch),
		errorBg: errorBg,
	}
	if snap.Pair != nil {
		st.pair = &matchPair{open: snap.Pair.Open, close: snap.Pair.Close}
	}

	start := textpos.ToOffset(text, textpos.Position{Line: l.ScrollRow + 1, Column: 1})
	for screenY := 0; screenY < l.Height; screenY++ {
		line := l.ScrollRow + screenY + 1
		st.errorLine = line == errorLine

		rowStyle := defaultStyle
		if st.errorLine {
			rowStyle = defaultStyle.Background(errorBg)
		}
		for x := 0; x < l.Width; x++ {
			style := rowStyle
			if x < gutterWidth {
				style = defaultStyle
			}
			t.screen.SetContent(x, screenY, ' ', nil, style)
		}
		if line > lineCount {
			continue
		}

		if gutterWidth > 0 {
			numStyle := lineNumberStyle
			switch {
			case line == errorLine:
				numStyle = lineNumberErrorStyle
			case line == cursorLine:
				numStyle = lineNumberStyle.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, line) {
				t.screen.SetContent(i, screenY, r, nil, numStyle)
			}
		}

		end := textpos.LineEnd(text, start)
		drawLine(t.screen, screenY, text, start, end, gutterWidth, textAreaWidth, l, st)
		start = end + 1
	}
}

func drawLine(screen tcell.Screen, y int, text string, start, end, gutterWidth, textAreaWidth int, l Layout, st *styler) {
	tabWidth := max(l.TabWidth, 1)
	visualX := 0
	offset := start
	rest := text[start:end]
	state := -1

	for rest != "" && visualX < l.ScrollCol+textAreaWidth {
		var cluster string
		var width int
		cluster, rest, width, state = uniseg.FirstGraphemeClusterInString(rest, state)
		clusterOffset := offset
		offset += len(cluster)

		if cluster == "\t" {
			width = tabWidth - visualX%tabWidth
		}
		if width == 0 {
			continue // Control characters such as the CR of a CRLF
		}

		style := st.at(clusterOffset)
		screenX := visualX - l.ScrollCol + gutterWidth
		if visualX >= l.ScrollCol && visualX+width <= l.ScrollCol+textAreaWidth {
			runes := []rune(cluster)
			mainRune, combining := runes[0], runes[1:]
			if cluster == "\t" {
				mainRune, combining = ' ', nil
			}
			screen.SetContent(screenX, y, mainRune, combining, style)
			for cw := 1; cw < width; cw++ {
				screen.SetContent(screenX+cw, y, ' ', nil, style)
			}
		}
		visualX += width
	}
}

// DrawCursor positions the terminal cursor, hiding it when it is scrolled out
// of view.
func DrawCursor(t *TUI, snap *session.Snapshot, l Layout) {
	text := snap.Text
	pos := textpos.FromOffset(text, snap.Cursor)
	gutterWidth := GutterWidth(textpos.LineCount(text), l.Width)

	lineStart := textpos.LineStart(text, snap.Cursor)
	visualCol := textpos.VisualWidth(text[lineStart:snap.Cursor], l.TabWidth)

	screenX := visualCol - l.ScrollCol + gutterWidth
	screenY := pos.Line - 1 - l.ScrollRow
	if screenX < gutterWidth || screenX >= l.Width || screenY < 0 || screenY >= l.Height {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, screenY)
}
