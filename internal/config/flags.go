// internal/config/flags.go
package config

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bethropolis/jsonpad/internal/logger"
)

// Flag names shared by DefineFlags and ApplyOverrides.
const (
	FlagConfig          = "config"
	FlagLogLevel        = "loglevel"
	FlagLogFile         = "logfile"
	FlagLogTags         = "log-tags"
	FlagLogDisableTags  = "log-disable-tags"
	FlagLogPackages     = "log-packages"
	FlagLogDisablePkgs  = "log-disable-packages"
	FlagLogFiles        = "log-files"
	FlagLogDisableFiles = "log-disable-files"
	FlagTabWidth        = "tabwidth"
	FlagScrollOff       = "scrolloff"
	FlagSystemClipboard = "system-clipboard"
	FlagIndent          = "indent"
	FlagTheme           = "theme"
	FlagSessionSave     = "session-save"
	FlagStructural      = "structural"
)

// DefineFlags registers the configuration flags on fs. Values are read back
// through ApplyOverrides, which only honors flags that were set.
func DefineFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", fmt.Sprintf("path to TOML configuration file (default <user config dir>/%s/%s)", AppName, DefaultConfigFileName))
	fs.String(FlagLogLevel, "", "log level (debug, info, warn, error)")
	fs.String(FlagLogFile, "", "log file path ('-' for stderr)")
	fs.StringSlice(FlagLogTags, nil, "only log these tags")
	fs.StringSlice(FlagLogDisableTags, nil, "never log these tags")
	fs.StringSlice(FlagLogPackages, nil, "only log these packages")
	fs.StringSlice(FlagLogDisablePkgs, nil, "never log these packages")
	fs.StringSlice(FlagLogFiles, nil, "only log these source files")
	fs.StringSlice(FlagLogDisableFiles, nil, "never log these source files")
	fs.Int(FlagTabWidth, DefaultTabWidth, "number of cells per tab")
	fs.Int(FlagScrollOff, DefaultScrollOff, "lines of context above/below the cursor")
	fs.Bool(FlagSystemClipboard, SystemClipboard, "copy to the system clipboard")
	fs.Int(FlagIndent, DefaultIndent, "spaces per level when beautifying")
	fs.String(FlagTheme, "", "theme name")
	fs.Bool(FlagSessionSave, false, "persist the editor document between runs")
	fs.Bool(FlagStructural, true, "use the syntax tree when error messages carry no position")
}

// ApplyOverrides updates cfg with the flags that were explicitly set.
func ApplyOverrides(fs *pflag.FlagSet, cfg *Config) {
	fs.Visit(func(fl *pflag.Flag) {
		var err error
		switch fl.Name {
		case FlagLogLevel:
			cfg.Logger.LogLevel, err = fs.GetString(fl.Name)
		case FlagLogFile:
			cfg.Logger.LogFilePath, err = fs.GetString(fl.Name)
		case FlagLogTags:
			cfg.Logger.EnabledTags, err = fs.GetStringSlice(fl.Name)
		case FlagLogDisableTags:
			cfg.Logger.DisabledTags, err = fs.GetStringSlice(fl.Name)
		case FlagLogPackages:
			cfg.Logger.EnabledPackages, err = fs.GetStringSlice(fl.Name)
		case FlagLogDisablePkgs:
			cfg.Logger.DisabledPackages, err = fs.GetStringSlice(fl.Name)
		case FlagLogFiles:
			cfg.Logger.EnabledFiles, err = fs.GetStringSlice(fl.Name)
		case FlagLogDisableFiles:
			cfg.Logger.DisabledFiles, err = fs.GetStringSlice(fl.Name)
		case FlagTabWidth:
			cfg.Editor.TabWidth, err = fs.GetInt(fl.Name)
		case FlagScrollOff:
			cfg.Editor.ScrollOff, err = fs.GetInt(fl.Name)
		case FlagSystemClipboard:
			cfg.Editor.SystemClipboard, err = fs.GetBool(fl.Name)
		case FlagIndent:
			cfg.Editor.Indent, err = fs.GetInt(fl.Name)
		case FlagTheme:
			cfg.Editor.Theme, err = fs.GetString(fl.Name)
		case FlagSessionSave:
			cfg.Session.Save, err = fs.GetBool(fl.Name)
		case FlagStructural:
			cfg.Locate.Structural, err = fs.GetBool(fl.Name)
		default:
			return
		}
		if err != nil {
			loadWarnings = append(loadWarnings, fmt.Sprintf("flag --%s: %v", fl.Name, err))
			return
		}
		logger.DebugTagf("config", "applied flag override --%s=%s", fl.Name, fl.Value.String())
	})
}
