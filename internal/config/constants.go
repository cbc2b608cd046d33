package config

import "time"

// Base application details
const AppName = "inkwell"
const ConfigDirName = "inkwell"
const ThemesDirName = "themes"
const DefaultThemeFileName = "theme.toml"   // Active theme file
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "inkwell.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Navigation behavior
const DefaultCanvasPanStep = 40  // Pixels per pan keystroke
const DefaultScrollStep = 2     // Lines per small scroll keystroke
const DefaultScrollPage = 10    // Lines per half-page scroll keystroke
const DefaultRegisterWait = 2 * time.Second
const DefaultRegisterPoll = 20 * time.Millisecond

// Editor defaults; could move into NewDefaultConfig(), keeping here for now
const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true
