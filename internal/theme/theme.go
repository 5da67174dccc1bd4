// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/jsonpad/internal/logger"
)

// Style names used by the editor UI in addition to the token style names.
const (
	StyleDefault           = "Default"
	StyleBracketMatch      = "BracketMatch"
	StyleErrorLine         = "ErrorLine"
	StyleLineNumber        = "LineNumber"
	StyleLineNumberError   = "LineNumberError"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarValid    = "StatusBarValid"
	StyleStatusBarError    = "StatusBarError"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name: the exact name, then its base name (part before the
// first dot), then "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dotIndex := strings.Index(name, "."); dotIndex != -1 {
		baseName := name[:dotIndex]
		if style, ok := t.Styles[baseName]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// --- Built-in themes ---

var DevComfortDark = func() Theme {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	blue := tcell.NewHexColor(0x61afef)
	red := tcell.NewHexColor(0xe06c75)
	errorBg := tcell.NewHexColor(0x3b2a2e)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	bar := tcell.StyleDefault.Background(background).Foreground(foreground)

	return Theme{
		Name:   "DevComfort Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleBracketMatch:      base.Foreground(yellow).Bold(true).Underline(true),
			StyleErrorLine:         base.Background(errorBg),
			StyleLineNumber:        base.Foreground(muted),
			StyleLineNumberError:   base.Foreground(red).Bold(true),
			StyleStatusBar:         bar,
			StyleStatusBarModified: bar.Foreground(yellow),
			StyleStatusBarMessage:  bar.Bold(true),
			StyleStatusBarValid:    bar.Foreground(green),
			StyleStatusBarError:    bar.Foreground(red).Bold(true),

			"json.key":              base.Foreground(blue),
			"string":                base.Foreground(green),
			"number":                base.Foreground(orange),
			"constant":              base.Foreground(orange).Italic(true),
			"punctuation":           base.Foreground(muted),
			"punctuation.bracket":   base.Foreground(foreground).Bold(true),
			"punctuation.delimiter": base.Foreground(muted),
			"error":                 base.Foreground(red).Underline(true),
		},
	}
}()

var PaperLight = func() Theme {
	foreground := tcell.NewHexColor(0x383a42)
	muted := tcell.NewHexColor(0xa0a1a7)
	orange := tcell.NewHexColor(0x986801)
	green := tcell.NewHexColor(0x50a14f)
	blue := tcell.NewHexColor(0x4078f2)
	red := tcell.NewHexColor(0xe45649)
	barBg := tcell.NewHexColor(0xe5e5e6)
	errorBg := tcell.NewHexColor(0xfbe3e4)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	bar := tcell.StyleDefault.Background(barBg).Foreground(foreground)

	return Theme{
		Name:   "Paper Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleBracketMatch:      base.Bold(true).Reverse(true),
			StyleErrorLine:         base.Background(errorBg),
			StyleLineNumber:        base.Foreground(muted),
			StyleLineNumberError:   base.Foreground(red).Bold(true),
			StyleStatusBar:         bar,
			StyleStatusBarModified: bar.Foreground(orange),
			StyleStatusBarMessage:  bar.Bold(true),
			StyleStatusBarValid:    bar.Foreground(green),
			StyleStatusBarError:    bar.Foreground(red).Bold(true),

			"json.key":              base.Foreground(red),
			"string":                base.Foreground(green),
			"number":                base.Foreground(orange),
			"constant":              base.Foreground(blue),
			"punctuation":           base.Foreground(muted),
			"punctuation.delimiter": base.Foreground(muted),
			"error":                 base.Foreground(red).Underline(true),
		},
	}
}()
