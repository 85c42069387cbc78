// Package config loads and watches the kiosk configuration.
//
// Configuration comes from three layers, lowest priority first: built-in
// defaults, the TOML config file, and BOOTH_* environment variables.
package config

import (
	"path/filepath"
	"time"
)

// Config is the full kiosk configuration. Plugins receive it read-only
// through the dispatch context.
type Config struct {
	General General `toml:"general"`
	Window  Window  `toml:"window"`
	Picture Picture `toml:"picture"`
	Control Control `toml:"controls"`
	Printer Printer `toml:"printer"`
	Flash   Flash   `toml:"flash"`

	// dir is the configuration directory the file was loaded from.
	dir string
}

// General holds application-wide settings.
type General struct {
	// Debug enables verbose logging and disables the failsafe state so
	// plugin failures surface immediately.
	Debug bool `toml:"debug"`
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `toml:"log_level"`
	// Directory is where final pictures are saved.
	Directory string `toml:"directory"`
	// Plugins lists Lua plugin files to load.
	Plugins []string `toml:"plugins"`
	// PluginsDisabled lists plugin names to skip.
	PluginsDisabled []string `toml:"plugins_disabled"`
}

// Window holds presentation settings.
type Window struct {
	// Fullscreen requests the whole display surface.
	Fullscreen bool `toml:"fullscreen"`
	// Background and TextColor are #RRGGBB values.
	Background string `toml:"background"`
	TextColor  string `toml:"text_color"`
	// ChosenDelaySec is how long the chosen layout is displayed; zero
	// skips the chosen state entirely.
	ChosenDelaySec float64 `toml:"chosen_delay"`
	// ChooseTimeoutSec returns the kiosk to the wait screen when nobody
	// picks an option.
	ChooseTimeoutSec float64 `toml:"choose_timeout"`
	// FailsafeDelaySec is how long the failure screen is displayed.
	FailsafeDelaySec float64 `toml:"failsafe_delay"`
}

// Picture holds capture-sequence settings.
type Picture struct {
	// Captures lists the selectable numbers of captures per sequence.
	// Valid values are 1 to 4.
	Captures []int `toml:"captures"`
}

// Control holds physical control-board settings.
type Control struct {
	LeftBtnPin   int     `toml:"left_btn_pin"`
	CenterBtnPin int     `toml:"center_btn_pin"`
	RightBtnPin  int     `toml:"right_btn_pin"`
	DebounceSec  float64 `toml:"debounce_delay"`
}

// Printer holds print settings.
type Printer struct {
	Name string `toml:"printer_name"`
	// DelaySec is how long the print screen is displayed; zero disables
	// printing.
	DelaySec float64 `toml:"printer_delay"`
	// MaxPages limits total prints; negative means unlimited.
	MaxPages int `toml:"max_pages"`
	// MaxDuplicates limits reprints of the same picture.
	MaxDuplicates int `toml:"max_duplicates"`
}

// Flash holds flash LED settings.
type Flash struct {
	Enable bool `toml:"enable"`
	Pin    int  `toml:"pin"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		General: General{
			Debug:     false,
			LogLevel:  "info",
			Directory: "pictures",
		},
		Window: Window{
			Fullscreen:       true,
			Background:       "#000000",
			TextColor:        "#ffffff",
			ChosenDelaySec:   4,
			ChooseTimeoutSec: 30,
			FailsafeDelaySec: 2,
		},
		Picture: Picture{
			Captures: []int{1, 2, 4},
		},
		Control: Control{
			LeftBtnPin:   11,
			CenterBtnPin: 13,
			RightBtnPin:  15,
			DebounceSec:  0.3,
		},
		Printer: Printer{
			Name:          "default",
			DelaySec:      10,
			MaxPages:      -1,
			MaxDuplicates: 3,
		},
		Flash: Flash{
			Enable: false,
			Pin:    26,
		},
	}
}

// Reload re-reads the configuration from the directory this one was
// loaded from.
func (c *Config) Reload() (*Config, error) {
	return Load(c.dir)
}

// Dir returns the configuration directory.
func (c *Config) Dir() string {
	return c.dir
}

// JoinPath returns a path inside the configuration directory.
func (c *Config) JoinPath(name string) string {
	return filepath.Join(c.dir, name)
}

// ChosenDelay returns the chosen-screen delay as a duration.
func (c *Config) ChosenDelay() time.Duration {
	return secs(c.Window.ChosenDelaySec)
}

// ChooseTimeout returns the choose-screen timeout as a duration.
func (c *Config) ChooseTimeout() time.Duration {
	return secs(c.Window.ChooseTimeoutSec)
}

// FailsafeDelay returns the failure-screen delay as a duration.
func (c *Config) FailsafeDelay() time.Duration {
	return secs(c.Window.FailsafeDelaySec)
}

// PrinterDelay returns the print-screen delay as a duration.
func (c *Config) PrinterDelay() time.Duration {
	return secs(c.Printer.DelaySec)
}

// ValidCaptures returns the configured capture choices, falling back to
// the defaults when any value is out of range.
func (c *Config) ValidCaptures() []int {
	fallback := Default().Picture.Captures
	if len(c.Picture.Captures) == 0 {
		return fallback
	}
	for _, n := range c.Picture.Captures {
		if n < 1 || n > 4 {
			return fallback
		}
	}
	return c.Picture.Captures
}

func secs(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
