package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bethropolis/jsonpad/internal/bracket"
	"github.com/bethropolis/jsonpad/internal/check"
	"github.com/bethropolis/jsonpad/internal/token"
)

// palette holds the terminal colors for CLI output.
type palette struct {
	kinds map[token.Kind]*color.Color
	match *color.Color
	ok    *color.Color
	bad   *color.Color
	dim   *color.Color
}

func newPalette(enabled bool) *palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return &palette{
		kinds: map[token.Kind]*color.Color{
			token.Key:         mk(color.FgBlue, color.Bold),
			token.String:      mk(color.FgGreen),
			token.Number:      mk(color.FgCyan),
			token.Boolean:     mk(color.FgYellow),
			token.Null:        mk(color.FgMagenta),
			token.Bracket:     mk(color.Bold),
			token.Punctuation: mk(color.Bold),
			token.Unknown:     mk(color.FgRed, color.Underline),
		},
		match: mk(color.ReverseVideo, color.Bold),
		ok:    mk(color.FgGreen),
		bad:   mk(color.FgRed, color.Bold),
		dim:   mk(color.Faint),
	}
}

func paletteFor(cmd *cobra.Command) *palette {
	return newPalette(useColor(cmd))
}

// writeTokens writes tokens to w with ANSI colors. Whitespace is written as is.
func (p *palette) writeTokens(w io.Writer, tokens []token.Token, pair *bracket.Pair) error {
	for _, tok := range tokens {
		c, ok := p.kinds[tok.Kind]
		if tok.Kind == token.Bracket && pair != nil && (tok.Offset == pair.Open || tok.Offset == pair.Close) {
			c, ok = p.match, true
		}
		var err error
		if ok {
			_, err = c.Fprint(w, tok.Text)
		} else {
			_, err = io.WriteString(w, tok.Text)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// diagnostic formats a failed result as "path:line:col: message".
func (p *palette) diagnostic(r check.Result) string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %s", r.Path, p.bad.Sprint(r.Err))
	}
	if r.Position == nil {
		return fmt.Sprintf("%s: %s", r.Path, p.bad.Sprint(r.Message))
	}
	return fmt.Sprintf("%s:%d:%d: %s", r.Path, r.Position.Line, r.Position.Column, p.bad.Sprint(r.Message))
}

// readInput returns the document named by args, or standard input when args
// is empty or "-".
func readInput(cmd *cobra.Command, args []string) (name, text string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("read standard input: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(data), nil
}

// requireValid returns an error naming the first syntax error in text.
// Empty documents are rejected too.
func (c *cli) requireValid(name, text string) error {
	r := check.Text(name, text, c.checkOptions())
	switch {
	case r.Empty:
		return fmt.Errorf("%s: empty document", name)
	case !r.Valid:
		return errors.New(newPalette(false).diagnostic(r))
	}
	return nil
}
