package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config represents the application configuration
type Config struct {
	Board   BoardConfig   `toml:"board"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
	Httpd   HttpdConfig   `toml:"httpd"`
}

// BoardConfig contains the initial widget settings
type BoardConfig struct {
	Columns      int `toml:"columns"`
	Spacing      int `toml:"spacing"`
	CornerRadius int `toml:"corner_radius"`
}

type StorageConfig struct {
	File string `toml:"file"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type HttpdConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the default configuration. The board defaults are
// tighter than the widget defaults, which are sized for roomy layouts.
func DefaultConfig() *Config {
	return &Config{
		Board: BoardConfig{
			Columns:      DefaultColumnCount,
			Spacing:      1,
			CornerRadius: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
		Httpd: HttpdConfig{
			Addr: "127.0.0.1:7676",
		},
	}
}

// Validate checks the values a board cannot be built from.
func (c *Config) Validate() error {
	if c.Board.Columns <= 0 {
		return fmt.Errorf("board.columns = %d: %w", c.Board.Columns, ErrInvalidColumnCount)
	}
	if c.Board.Spacing < 0 {
		return fmt.Errorf("board.spacing = %d: %w", c.Board.Spacing, ErrInvalidSpacing)
	}
	if c.Board.CornerRadius < 0 {
		return fmt.Errorf("board.corner_radius = %d: %w", c.Board.CornerRadius, ErrInvalidCornerRadius)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured level name.
func (c *Config) LogLevel() (log.Level, error) {
	if strings.TrimSpace(c.Log.Level) == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// UserConfigPath returns the configuration file location, honoring
// REORGBOARD_CONFIG.
func UserConfigPath() (string, error) {
	if path := os.Getenv("REORGBOARD_CONFIG"); path != "" {
		return filepath.Clean(path), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "reorgboard", "config.toml"), nil
}

// LoadConfig loads configuration from path, or from UserConfigPath when path
// is empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	if path == "" {
		p, err := UserConfigPath()
		if err != nil {
			return config, nil // Return default config if can't get home dir
		}
		path = p
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return config, nil
	}

	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return config, nil
}

const defaultConfigContent = `# reorgboard configuration file

[board]
# Number of columns the board starts with
columns = 3
# Gap between columns and between cards, in cells
spacing = 1
# Any positive value draws rounded column corners
corner_radius = 1

[storage]
# Board file (JSON Lines). Empty means ~/reorgboard.jsonl
file = ""

[log]
# debug, info, warn or error
level = "info"
# Empty means ~/.local/state/reorgboard/reorgboard.log
file = ""

[httpd]
addr = "127.0.0.1:7676"
`

// SaveDefaultConfig writes a commented default config to path unless a file
// already exists there. It reports whether a file was written.
func SaveDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, err
	}

	if err := os.WriteFile(path, []byte(defaultConfigContent), 0644); err != nil {
		return false, err
	}
	return true, nil
}
