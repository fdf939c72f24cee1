// Package config loads ism's optional configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"codeberg.org/miketth/ism/pkg/xkblayouts"
)

const (
	BackendAuto     = "auto"
	BackendTIS      = "tis"
	BackendHyprland = "hyprland"
	BackendFcitx    = "fcitx"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config is read once per invocation and never written back.
type Config struct {
	// Backend selects the input source service: auto, tis, hyprland or fcitx.
	Backend string `toml:"backend" yaml:"backend"`

	// Cycle is the default list for the cycle command.
	Cycle []string `toml:"cycle" yaml:"cycle"`

	Hyprland HyprlandConfig `toml:"hyprland" yaml:"hyprland"`
	History  HistoryConfig  `toml:"history" yaml:"history"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
}

type HyprlandConfig struct {
	// Keyboard is the device whose layouts are used. Empty means the main keyboard.
	Keyboard     string `toml:"keyboard" yaml:"keyboard"`
	EvdevXMLPath string `toml:"evdev_xml_path" yaml:"evdev_xml_path"`
}

type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
	// Limit is how many entries the history command prints.
	Limit int `toml:"limit" yaml:"limit"`
}

type LoggingConfig struct {
	Level   string `toml:"level" yaml:"level"`
	Journal bool   `toml:"journal" yaml:"journal"`
}

func DefaultConfig() Config {
	return Config{
		Backend: BackendAuto,
		Hyprland: HyprlandConfig{
			EvdevXMLPath: xkblayouts.DefaultEvdevXMLPath,
		},
		History: HistoryConfig{
			Path:  filepath.Join(xdg.DataHome, "ism", "history.db"),
			Limit: 20,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// FindConfigFile returns the first ism config file in the XDG config
// directories, or "" if there is none.
func FindConfigFile() string {
	for _, name := range []string{"config.toml", "config.yaml", "config.yml"} {
		if path, err := xdg.SearchConfigFile(filepath.Join("ism", name)); err == nil {
			return path
		}
	}

	return ""
}

// Load reads path on top of the defaults. An empty path means defaults only.
// ISM_BACKEND overrides the configured backend.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode toml config %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode yaml config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: unsupported config format %q", ErrInvalidConfig, ext)
	}

	return nil
}

func (c *Config) ApplyEnvOverrides() {
	if backend := os.Getenv("ISM_BACKEND"); backend != "" {
		c.Backend = backend
	}
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendAuto, BackendTIS, BackendHyprland, BackendFcitx:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	}

	for i, id := range c.Cycle {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("%w: cycle entry %d is empty", ErrInvalidConfig, i)
		}
	}

	if c.History.Limit < 0 {
		return fmt.Errorf("%w: history limit must not be negative", ErrInvalidConfig)
	}

	if _, err := c.Logging.ZapLevel(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

func (l LoggingConfig) ZapLevel() (zapcore.Level, error) {
	if l.Level == "" {
		return zapcore.WarnLevel, nil
	}

	return zapcore.ParseLevel(l.Level)
}
