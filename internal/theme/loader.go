package theme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/token"
)

// styleDef is one style in a theme file. Unset fields inherit from the
// theme's text style.
type styleDef struct {
	Fg        *string `toml:"fg"`
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// themeFile is the layout of a theme file:
//
//	name = "Solarized"
//	base = "paper light"
//	[editor]
//	text = { fg = "#657b83", bg = "#fdf6e3" }
//	match = { reverse = true }
//	[tokens]
//	key = { fg = "#268bd2", bold = true }
//	[status]
//	error = { fg = "red" }
type themeFile struct {
	Name   string              `toml:"name"`
	Base   string              `toml:"base"`
	IsDark *bool               `toml:"is_dark"`
	Editor map[string]styleDef `toml:"editor"`
	Tokens map[string]styleDef `toml:"tokens"`
	Status map[string]styleDef `toml:"status"`
}

var editorKeys = map[string]string{
	"text":              StyleDefault,
	"match":             StyleBracketMatch,
	"error_line":        StyleErrorLine,
	"line_number":       StyleLineNumber,
	"line_number_error": StyleLineNumberError,
}

var statusKeys = map[string]string{
	"bar":      StyleStatusBar,
	"modified": StyleStatusBarModified,
	"message":  StyleStatusBarMessage,
	"valid":    StyleStatusBarValid,
	"error":    StyleStatusBarError,
}

// tokenKeys maps [tokens] keys to the style names token kinds are painted
// with. Booleans and null share "literal".
var tokenKeys = map[string]string{
	token.Key.String():         token.Key.StyleName(),
	token.String.String():      token.String.StyleName(),
	token.Number.String():      token.Number.StyleName(),
	"literal":                  token.Boolean.StyleName(),
	token.Bracket.String():     token.Bracket.StyleName(),
	token.Punctuation.String(): token.Punctuation.StyleName(),
	token.Unknown.String():     token.Unknown.StyleName(),
}

// LoadThemeFromFile reads a TOML theme. Styles start from the built-in theme
// named by base, if any; a missing name falls back to the file name.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	var file themeFile
	metadata, err := toml.DecodeFile(filePath, &file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse theme file '%s': %w", filePath, err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme file '%s': unrecognized keys: %v", filePath, undecoded)
	}

	name := file.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	}
	theme := &Theme{Name: name, Styles: make(map[string]tcell.Style)}

	if file.Base != "" {
		base, ok := builtin(file.Base)
		if !ok {
			return nil, fmt.Errorf("theme '%s': unknown base theme '%s'", name, file.Base)
		}
		for k, v := range base.Styles {
			theme.Styles[k] = v
		}
		theme.IsDark = base.IsDark
	}
	if file.IsDark != nil {
		theme.IsDark = *file.IsDark
	}

	text := theme.Styles[StyleDefault]
	if def, ok := file.Editor["text"]; ok {
		if text, err = def.apply(text); err != nil {
			return nil, fmt.Errorf("theme '%s': editor.text: %w", name, err)
		}
	}
	theme.Styles[StyleDefault] = text

	sections := []struct {
		table string
		defs  map[string]styleDef
		keys  map[string]string
	}{
		{"editor", file.Editor, editorKeys},
		{"tokens", file.Tokens, tokenKeys},
		{"status", file.Status, statusKeys},
	}
	for _, sec := range sections {
		for key, def := range sec.defs {
			styleName, ok := sec.keys[key]
			if !ok {
				logger.Warnf("Theme '%s': unknown style '%s.%s'", name, sec.table, key)
				continue
			}
			if styleName == StyleDefault {
				continue
			}
			style, err := def.apply(text)
			if err != nil {
				logger.Warnf("Theme '%s': skipping style '%s.%s': %v", name, sec.table, key, err)
				continue
			}
			theme.Styles[styleName] = style
		}
	}

	logger.Debugf("Loaded theme '%s' from '%s'", theme.Name, filePath)
	return theme, nil
}

// builtin returns the built-in theme with the given case-insensitive name.
func builtin(name string) (*Theme, bool) {
	for _, t := range []*Theme{&DevComfortDark, &PaperLight} {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return nil, false
}

// apply returns base with the attributes set in d.
func (d styleDef) apply(base tcell.Style) (tcell.Style, error) {
	style := base
	if d.Fg != nil {
		c, err := parseColor(*d.Fg)
		if err != nil {
			return base, fmt.Errorf("fg: %w", err)
		}
		style = style.Foreground(c)
	}
	if d.Bg != nil {
		c, err := parseColor(*d.Bg)
		if err != nil {
			return base, fmt.Errorf("bg: %w", err)
		}
		style = style.Background(c)
	}
	if d.Bold != nil {
		style = style.Bold(*d.Bold)
	}
	if d.Italic != nil {
		style = style.Italic(*d.Italic)
	}
	if d.Underline != nil {
		style = style.Underline(*d.Underline)
	}
	if d.Reverse != nil {
		style = style.Reverse(*d.Reverse)
	}
	return style, nil
}

// parseColor accepts "#rrggbb", "#rgb", a color name, "default" and "reset".
func parseColor(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "default":
		return tcell.ColorDefault, nil
	case "reset":
		return tcell.ColorReset, nil
	}
	if strings.HasPrefix(s, "#") {
		if len(s) == 4 {
			s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
		}
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color %q", s)
		}
	}
	if c := tcell.GetColor(s); c != tcell.ColorDefault {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color %q", s)
}
