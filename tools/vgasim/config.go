package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"

	"kterm/device/video/console"
)

// DisplayOptions control how the terminals are rendered.
type DisplayOptions struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Banner     string `toml:"banner"`
}

// CursorOptions control how the emulated hardware cursor is drawn.
type CursorOptions struct {
	Blink bool `toml:"blink"`
}

// LogOptions control the simulator log file.
type LogOptions struct {
	Path  string `toml:"path"`
	Debug bool   `toml:"debug"`
}

// Config is the simulator configuration loaded from vgasim.toml.
type Config struct {
	Display DisplayOptions `toml:"display"`
	Cursor  CursorOptions  `toml:"cursor"`
	Log     LogOptions     `toml:"log"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Display: DisplayOptions{
			Foreground: console.White.String(),
			Background: console.Black.String(),
			Banner:     "vgasim: F1-F4 switch terminals, Esc quits",
		},
		Cursor: CursorOptions{
			Blink: true,
		},
		Log: LogOptions{
			Path:  "vgasim.log",
			Debug: false,
		},
	}
}

// LoadConfig reads the configuration at path on top of the defaults. A
// missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	if _, _, err := cfg.Colors(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

// Colors resolves the configured color names.
func (c Config) Colors() (fg, bg console.Color, err error) {
	var ok bool
	if fg, ok = console.ColorByName(c.Display.Foreground); !ok {
		return fg, bg, fmt.Errorf("unknown foreground color %q", c.Display.Foreground)
	}
	if bg, ok = console.ColorByName(c.Display.Background); !ok {
		return fg, bg, fmt.Errorf("unknown background color %q", c.Display.Background)
	}
	return fg, bg, nil
}
