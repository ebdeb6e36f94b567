// Package config resolves the startup configuration once: defaults, then the
// JSON config file, then environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"launchpad/internal/content"
)

// Environment variables consulted by Resolve.
const (
	EnvMode     = "LAUNCHPAD_ENV"
	EnvModeNode = "NODE_ENV"
	EnvDevURL   = "LAUNCHPAD_DEV_URL"
)

// Config holds every startup setting.
type Config struct {
	Title        string `json:"title"`
	Mode         string `json:"mode"`
	DevServerURL string `json:"devServerUrl"`
	LogLevel     string `json:"logLevel"`
	WindowWidth  int    `json:"windowWidth"`
	WindowHeight int    `json:"windowHeight"`
	// QuitOnAllClosed nil = platform default (quit everywhere but macOS).
	QuitOnAllClosed             *bool `json:"quitOnAllClosed"`
	DisableHardwareAcceleration *bool `json:"disableHardwareAcceleration"` // nil = true
	NodeIntegration             *bool `json:"nodeIntegration"`             // nil = true
	ContextIsolation            bool  `json:"contextIsolation"`
}

// Default returns config with default values.
func Default() *Config {
	return &Config{
		Title:        "Launchpad",
		Mode:         content.ModePackaged.String(),
		DevServerURL: content.DevServerURL,
		LogLevel:     "error",
		WindowWidth:  800,
		WindowHeight: 600,
	}
}

// ContentMode returns the parsed content mode.
func (c *Config) ContentMode() content.Mode {
	return content.ParseMode(c.Mode)
}

// ShouldQuitOnAllClosed returns the window-close policy for goos.
func (c *Config) ShouldQuitOnAllClosed(goos string) bool {
	if c.QuitOnAllClosed != nil {
		return *c.QuitOnAllClosed
	}
	return goos != "darwin"
}

// IsHardwareAccelerationDisabled defaults to true.
func (c *Config) IsHardwareAccelerationDisabled() bool {
	return c.DisableHardwareAcceleration == nil || *c.DisableHardwareAcceleration
}

// IsNodeIntegration defaults to true.
func (c *Config) IsNodeIntegration() bool {
	return c.NodeIntegration == nil || *c.NodeIntegration
}

// DataDir returns ~/.launchpad, falling back to the executable directory.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if exe, err2 := os.Executable(); err2 == nil {
			return filepath.Dir(exe)
		}
		return "."
	}
	return filepath.Join(home, ".launchpad")
}

// DefaultPath returns the config file path inside DataDir.
func DefaultPath() string {
	return filepath.Join(DataDir(), "config.json")
}

// Load reads the config file at path over the defaults. A missing file is
// not an error. The file is never written back.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}

	// Ensure window size has valid defaults
	if cfg.WindowWidth <= 0 {
		cfg.WindowWidth = 800
	}
	if cfg.WindowHeight <= 0 {
		cfg.WindowHeight = 600
	}
	if cfg.DevServerURL == "" {
		cfg.DevServerURL = content.DevServerURL
	}
	return cfg, nil
}

// ApplyEnv overrides cfg from the environment via getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv(EnvMode); v != "" {
		c.Mode = v
	} else if v := getenv(EnvModeNode); v != "" {
		c.Mode = v
	}
	if v := getenv(EnvDevURL); v != "" {
		c.DevServerURL = v
	}
}

// Resolve loads path and applies the process environment.
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	cfg.ApplyEnv(os.Getenv)
	return cfg, err
}
