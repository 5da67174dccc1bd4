package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bethropolis/jsonpad/internal/locate"
	"github.com/bethropolis/jsonpad/internal/syntaxtree"
	"github.com/bethropolis/jsonpad/internal/textpos"
)

func newLocateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locate [flags] [file|-]",
		Short: "Map a parser error message to a line and column",
		Long: `Locate prints the line:column a parser error points at. Without --message
the document is parsed and its own error is located exactly, and the byte
offset is printed too.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runLocate,
	}
	cmd.Flags().StringP("message", "m", "", "error message to locate")
	return cmd
}

func (c *cli) runLocate(cmd *cobra.Command, args []string) error {
	message, _ := cmd.Flags().GetString("message")

	_, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	var parseErr error
	if message != "" {
		parseErr = errors.New(message)
	} else if parseErr = (locate.JSONParser{Exact: true}).Parse(text); parseErr == nil {
		fmt.Fprintln(cmd.OutOrStdout(), "valid")
		return nil
	}

	w := cmd.OutOrStdout()
	if pos, ok := locate.FromError(parseErr, text); ok {
		fmt.Fprintf(w, "%d:%d (offset %d)\n", pos.Line, pos.Column, textpos.ToOffset(text, pos))
		return nil
	}
	// Heuristic positions do not always name a real column, so no offset.
	pos, ok := locate.Resolve(parseErr, text, syntaxtree.Locators(c.cfg.Locate.Structural)...)
	if !ok {
		return fmt.Errorf("no position found for %q", parseErr.Error())
	}
	fmt.Fprintf(w, "%d:%d\n", pos.Line, pos.Column)
	return nil
}
