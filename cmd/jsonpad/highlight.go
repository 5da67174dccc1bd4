package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/jsonpad/internal/bracket"
	"github.com/bethropolis/jsonpad/internal/check"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/markup"
	"github.com/bethropolis/jsonpad/internal/textpos"
	"github.com/bethropolis/jsonpad/internal/token"
)

func newHighlightCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight [file|-]",
		Short: "Print highlight markup for a document",
		Long: `Highlight tokenizes the document and prints it as markup with one span
per token. The bracket pair at --cursor is marked and the line holding the
first syntax error is wrapped in the error decoration. With --format ansi the
document is printed with terminal colors instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runHighlight,
	}
	cmd.Flags().Int("cursor", -1, "byte offset of the cursor, for bracket matching")
	cmd.Flags().String("format", "html", "output format (html|ansi)")
	cmd.Flags().Bool("verify", false, "parse the markup back and compare it with the input")
	return cmd
}

func (c *cli) runHighlight(cmd *cobra.Command, args []string) error {
	cursor, _ := cmd.Flags().GetInt("cursor")
	format, _ := cmd.Flags().GetString("format")
	verify, _ := cmd.Flags().GetBool("verify")

	name, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	tokens := token.Tokenize(text)
	var pair *bracket.Pair
	if cursor >= 0 {
		if p, ok := bracket.Find(text, cursor); ok {
			pair = &p
		}
	}
	res := check.Text(name, text, c.checkOptions())
	errorLine := 0
	if res.Position != nil {
		errorLine = res.Position.Line
	}
	logger.DebugTagf("cli", "highlight %s: %d tokens, pair=%v, error line %d", name, len(tokens), pair, errorLine)

	w := cmd.OutOrStdout()
	switch format {
	case "html":
		out := markup.Render(tokens, pair, errorLine)
		if verify {
			if err := verifyMarkup(out, text, pair, errorLine); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case "ansi":
		p := paletteFor(cmd)
		if err := p.writeTokens(w, tokens, pair); err != nil {
			return err
		}
		_, err = fmt.Fprintln(w)
		if !res.Valid {
			fmt.Fprintln(cmd.ErrOrStderr(), p.diagnostic(res))
		}
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// verifyMarkup checks that markup carries the same lines and decorations as
// the document it was rendered from.
func verifyMarkup(out, text string, pair *bracket.Pair, errorLine int) error {
	rep, err := markup.Inspect(out)
	if err != nil {
		return err
	}
	if want := textpos.LineCount(text); rep.Lines != want {
		return fmt.Errorf("markup has %d lines, document has %d", rep.Lines, want)
	}
	wantMatches := 0
	if pair != nil {
		wantMatches = 2
	}
	if rep.Matches != wantMatches {
		return fmt.Errorf("markup marks %d brackets, want %d", rep.Matches, wantMatches)
	}
	if errorLine > 0 && (len(rep.ErrorLines) != 1 || rep.ErrorLines[0] != errorLine) {
		return fmt.Errorf("markup decorates lines %v, want [%d]", rep.ErrorLines, errorLine)
	}
	if rep.Text != text {
		logger.Debugf("highlight: markup text differs from input (carriage returns or NUL bytes)")
	}
	return nil
}
