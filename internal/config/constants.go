package config

import "time"

// Base application details
const AppName = "jsonpad"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "jsonpad.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Session persistence is debounced while typing.
const SessionSaveDelay = 750 * time.Millisecond

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const DefaultIndent = 2
const MaxIndent = 8
const SystemClipboard = true
const DefaultTheme = "DevComfort Dark"
