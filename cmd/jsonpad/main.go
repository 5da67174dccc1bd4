package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bethropolis/jsonpad/internal/app"
	"github.com/bethropolis/jsonpad/internal/check"
	"github.com/bethropolis/jsonpad/internal/config"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/syntaxtree"
)

const flagColor = "color"

// cli carries the configuration loaded before any subcommand runs.
type cli struct {
	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	rootCmd := &cobra.Command{
		Use:   "jsonpad [file]",
		Short: "JSON editor with live highlighting and error location",
		Long: `jsonpad edits JSON in the terminal. It highlights tokens, matches the
bracket at the cursor and points at the first syntax error while you type.
The subcommands run the same pipeline without the editor.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		RunE:              c.runEdit,
	}

	fs := rootCmd.PersistentFlags()
	config.DefineFlags(fs)
	fs.String(flagColor, "auto", "colorize output (auto|on|off)")

	rootCmd.AddCommand(
		newEditCmd(c),
		newHighlightCmd(c),
		newCheckCmd(c),
		newLocateCmd(c),
		newFormatCmd(c),
		newMinifyCmd(c),
		newQueryCmd(c),
		newTokensCmd(c),
	)
	return rootCmd
}

// main runs the root command. Any error exits with status 1.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	_ = logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration and starts the logger.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	fs := cmd.Flags()
	switch mode, _ := fs.GetString(flagColor); mode {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid --%s %q (want auto, on or off)", flagColor, mode)
	}

	path, _ := fs.GetString(config.FlagConfig)
	cfg, err := config.Load(path, fs)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logger); err != nil {
		return err
	}
	for _, w := range config.Warnings() {
		logger.Warnf("%s", w)
	}
	logger.Debugf("Running '%s' with config %q", cmd.Name(), path)
	c.cfg = cfg
	return nil
}

func newEditCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [file]",
		Short: "Open the editor (the default command)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runEdit,
	}
}

func (c *cli) runEdit(_ *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	}
	logger.Infof("Starting %s...", config.AppName)
	if path != "" {
		logger.Debugf("File path specified: %s", path)
	}

	a, err := app.NewApp(c.cfg, app.Options{FilePath: path})
	if err != nil {
		return fmt.Errorf("error initializing application: %w", err)
	}
	if err := a.Run(); err != nil {
		return fmt.Errorf("application exited with error: %w", err)
	}
	logger.Infof("%s finished.", config.AppName)
	return nil
}

// checkOptions builds the validation pipeline from the configuration.
func (c *cli) checkOptions() check.Options {
	return check.Options{Locators: syntaxtree.Locators(c.cfg.Locate.Structural)}
}

// useColor resolves --color against the command's output stream.
func useColor(cmd *cobra.Command) bool {
	mode, _ := cmd.Flags().GetString(flagColor)
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && isTerminal(f)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
