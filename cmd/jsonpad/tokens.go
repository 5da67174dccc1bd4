package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/jsonpad/internal/token"
)

func newTokensCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [flags] [file|-]",
		Short: "List the tokens of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runTokens,
	}
	cmd.Flags().Bool("whitespace", false, "include whitespace tokens")
	return cmd
}

func (c *cli) runTokens(cmd *cobra.Command, args []string) error {
	whitespace, _ := cmd.Flags().GetBool("whitespace")

	_, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	p := paletteFor(cmd)
	w := cmd.OutOrStdout()
	for _, tok := range token.Tokenize(text) {
		if tok.Kind == token.Whitespace && !whitespace {
			continue
		}
		kind := fmt.Sprintf("%-11s", tok.Kind)
		if col, ok := p.kinds[tok.Kind]; ok {
			kind = col.Sprint(kind)
		}
		if _, err := fmt.Fprintf(w, "%6d  %s %q\n", tok.Offset, kind, tok.Text); err != nil {
			return err
		}
	}
	return nil
}
