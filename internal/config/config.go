// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/inkwell-editor/inkwell/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger  logger.Config                     `toml:"logger"`  // Logger config under [logger] table
	Editor  EditorConfig                      `toml:"editor"`  // Editor-specific settings
	Keys    KeysConfig                        `toml:"keys"`    // Navigation key aliases
	Plugins map[string]map[string]interface{} `toml:"plugins"` // Per-plugin config tables
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
	StatusBarHeight int  `toml:"status_bar_height"`
}

// KeysConfig holds the configurable aliases the key dispatcher consults.
type KeysConfig struct {
	// PromptUp/PromptDown are translated into arrow keys while a prompt
	// or search input has focus.
	PromptUp   string `toml:"prompt_up"`
	PromptDown string `toml:"prompt_down"`
	// DockNextTab/DockPrevTab cycle side-dock tabs.
	DockNextTab string `toml:"dock_next_tab"`
	DockPrevTab string `toml:"dock_prev_tab"`
	// CanvasPanStep is the pixel distance of one J/K/H/L canvas pan.
	CanvasPanStep int `toml:"canvas_pan_step"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // Empty means default path logic in logger.Init applies
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
		Keys: KeysConfig{
			PromptUp:      "ctrl+p",
			PromptDown:    "ctrl+n",
			// Bracket keys so the aliases never shadow the tree
			// branch's J/K scroll bindings.
			DockNextTab:   "]",
			DockPrevTab:   "[",
			CanvasPanStep: DefaultCanvasPanStep,
		},
	}
}

// loadFromFile attempts to load configuration from a TOML file.
// File not found is not an error.
func loadFromFile(filePath string, verbose bool) (*Config, error) {
	cfg := &Config{} // Start empty, merged later
	_, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		if verbose {
			logger.Debugf("Config file not found: %s", filePath)
		}
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	if verbose {
		logger.Debugf("Attempting to load configuration from: %s", filePath)
	}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	if len(metadata.Undecoded()) > 0 && verbose {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", filePath, metadata.Undecoded())
	}
	if verbose {
		logger.Infof("Successfully loaded configuration from: %s", filePath)
	}
	return cfg, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Keys.PromptUp == "" {
		c.Keys.PromptUp = defaults.Keys.PromptUp
	}
	if c.Keys.PromptDown == "" {
		c.Keys.PromptDown = defaults.Keys.PromptDown
	}
	if c.Keys.DockNextTab == "" {
		c.Keys.DockNextTab = defaults.Keys.DockNextTab
	}
	if c.Keys.DockPrevTab == "" {
		c.Keys.DockPrevTab = defaults.Keys.DockPrevTab
	}
	if c.Keys.CanvasPanStep <= 0 {
		c.Keys.CanvasPanStep = defaults.Keys.CanvasPanStep
	}
}

// LoadConfig orchestrates loading defaults, file, applying flags, and validation.
// It should be called only once, typically from main.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		// During initial load, avoid logging as logger isn't initialized yet
		verbose := false

		cfg := NewDefaultConfig()

		// Determine effective config file path
		effectivePath := configFilePath
		if effectivePath == "" { // If flag not set, try default location
			configDir, err := os.UserConfigDir()
			if err == nil {
				effectivePath = filepath.Join(configDir, ConfigDirName, DefaultConfigFileName)
			} else {
				effectivePath = "" // Cannot determine default path
			}
		}

		if effectivePath != "" {
			fileCfg, err := loadFromFile(effectivePath, verbose)
			if err != nil {
				loadErr = err
			} else if fileCfg != nil {
				// Merge file config settings that are set
				if fileCfg.Logger.LogLevel != "" {
					cfg.Logger = fileCfg.Logger
				}
				if fileCfg.Editor.TabWidth > 0 {
					cfg.Editor.TabWidth = fileCfg.Editor.TabWidth
				}
				if fileCfg.Editor.ScrollOff >= 0 {
					cfg.Editor.ScrollOff = fileCfg.Editor.ScrollOff
				}
				cfg.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
				if fileCfg.Keys.PromptUp != "" {
					cfg.Keys.PromptUp = fileCfg.Keys.PromptUp
				}
				if fileCfg.Keys.PromptDown != "" {
					cfg.Keys.PromptDown = fileCfg.Keys.PromptDown
				}
				if fileCfg.Keys.DockNextTab != "" {
					cfg.Keys.DockNextTab = fileCfg.Keys.DockNextTab
				}
				if fileCfg.Keys.DockPrevTab != "" {
					cfg.Keys.DockPrevTab = fileCfg.Keys.DockPrevTab
				}
				if fileCfg.Keys.CanvasPanStep > 0 {
					cfg.Keys.CanvasPanStep = fileCfg.Keys.CanvasPanStep
				}
				if fileCfg.Plugins != nil {
					cfg.Plugins = fileCfg.Plugins
				}
			}
		}

		// Apply flag overrides (if flags were parsed)
		if flags != nil {
			flags.ApplyOverrides(cfg, verbose)
		}

		cfg.validate()

		loadedConfig = cfg
	})

	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		// Programming error - LoadConfig should be called in main.
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
