package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bethropolis/jsonpad/internal/config"
	"github.com/bethropolis/jsonpad/internal/session"
)

func newFormatCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [flags] [file|-]",
		Short: "Re-indent a document",
		Long: `Format prints the document re-indented with --indent spaces per level.
Values are kept byte for byte. Invalid documents are reported with the
position of their first error and left untouched.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormat(cmd, args, c.cfg.Editor.Indent)
		},
	}
	cmd.Flags().BoolP("write", "w", false, "write the result back to the file")
	return cmd
}

func newMinifyCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minify [flags] [file|-]",
		Short: "Remove all insignificant whitespace from a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormat(cmd, args, 0)
		},
	}
	cmd.Flags().BoolP("write", "w", false, "write the result back to the file")
	return cmd
}

func (c *cli) runFormat(cmd *cobra.Command, args []string, indent int) error {
	write, _ := cmd.Flags().GetBool("write")

	name, text, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if err := c.requireValid(name, text); err != nil {
		return err
	}
	if indent > config.MaxIndent {
		indent = config.MaxIndent
	}
	out := session.Format(text, indent)

	if write {
		if len(args) == 0 || args[0] == "-" {
			return fmt.Errorf("--write needs a file argument")
		}
		return os.WriteFile(args[0], []byte(out), 0644)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
