package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

func newQueryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [flags] path [file|-]",
		Short: "Print the value at a gjson path",
		Long: `Query prints the raw JSON value at path, using gjson path syntax
(for example "users.0.name" or "users.#.name").`,
		Args: cobra.RangeArgs(1, 2),
		RunE: c.runQuery,
	}
	cmd.Flags().BoolP("raw", "r", false, "print strings without quotes")
	return cmd
}

func (c *cli) runQuery(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")

	name, text, err := readInput(cmd, args[1:])
	if err != nil {
		return err
	}
	if err := c.requireValid(name, text); err != nil {
		return err
	}

	res := gjson.Get(text, args[0])
	if !res.Exists() {
		return fmt.Errorf("%s: no match", args[0])
	}
	out := res.Raw
	if raw && res.Type == gjson.String {
		out = res.Str
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}
