package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sidepanel/internal/geometry"
)

// Config holds all application configuration
type Config struct {
	// Window settings for the single panel window
	Window WindowConfig `json:"window" yaml:"window"`

	// Hotkey is the global accelerator that toggles the panel
	Hotkey string `json:"hotkey" yaml:"hotkey"`

	// FallbackMonitor is used when the monitor under the window cannot be queried
	FallbackMonitor MonitorConfig `json:"fallback_monitor" yaml:"fallback_monitor"`

	// LogLevel is one of trace, debug, info, warning, error
	LogLevel string `json:"log_level" yaml:"log_level"`

	// Assistant backend settings
	Assistant AssistantConfig `json:"assistant" yaml:"assistant"`
}

// WindowConfig holds panel window settings
type WindowConfig struct {
	Title       string `json:"title" yaml:"title"`
	Width       int    `json:"width" yaml:"width"`   // Expanded width
	Height      int    `json:"height" yaml:"height"` // Expanded height
	AlwaysOnTop bool   `json:"always_on_top" yaml:"always_on_top"`
	Frameless   bool   `json:"frameless" yaml:"frameless"`
}

// MonitorConfig is a monitor rectangle in pixels
type MonitorConfig struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// AssistantConfig holds the local assistant backend settings
type AssistantConfig struct {
	Enabled      bool   `json:"enabled" yaml:"enabled"`
	BaseURL      string `json:"base_url" yaml:"base_url"`
	PollInterval int    `json:"poll_interval" yaml:"poll_interval"` // PC info poll interval in seconds

	// History keeps a local record of chat exchanges in HistoryPath
	History     bool   `json:"history" yaml:"history"`
	HistoryPath string `json:"history_path" yaml:"history_path"` // Empty means ~/.sidepanel/history.db
}

// Service manages configuration persistence
type Service struct {
	mu       sync.RWMutex
	config   *Config
	filePath string
}

// DefaultPath returns ~/.sidepanel/config.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".sidepanel", "config.json"), nil
}

// DefaultHistoryPath returns ~/.sidepanel/history.db
func DefaultHistoryPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".sidepanel", "history.db"), nil
}

// New creates a config service backed by the default path
func New() (*Service, error) {
	configPath, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewAt(configPath)
}

// NewAt creates a config service backed by configPath. A missing file yields
// the defaults; nothing is written until Save is called.
func NewAt(configPath string) (*Service, error) {
	service := &Service{
		filePath: configPath,
		config:   getDefaultConfig(),
	}

	if _, err := os.Stat(configPath); err == nil {
		if err := service.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	return service, nil
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:       "main",
			Width:       320,
			Height:      1000,
			AlwaysOnTop: true,
			Frameless:   true,
		},
		Hotkey: "ctrl+shift+alt+o",
		FallbackMonitor: MonitorConfig{
			X:      geometry.DefaultMonitor.X,
			Y:      geometry.DefaultMonitor.Y,
			Width:  geometry.DefaultMonitor.Width,
			Height: geometry.DefaultMonitor.Height,
		},
		LogLevel: "info",
		Assistant: AssistantConfig{
			Enabled:      true,
			BaseURL:      "http://localhost:8000",
			PollInterval: 5,
			History:      true,
		},
	}
}

// Get returns the current configuration. The returned value is replaced,
// never mutated, when the file is reloaded.
func (s *Service) Get() *Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Set updates the configuration
func (s *Service) Set(config *Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}

// Load loads configuration from file over the defaults
func (s *Service) Load() error {
	cfg, err := loadFile(s.filePath)
	if err != nil {
		return err
	}
	s.Set(cfg)
	return nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := getDefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to file
func (s *Service) Save() error {
	data, err := json.MarshalIndent(s.Get(), "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(s.filePath, data, 0644)
}

// Path returns the full path to the configuration file
func (s *Service) Path() string {
	return s.filePath
}

// Validate rejects values the panel cannot work with
func (c *Config) Validate() error {
	if c.Window.Title == "" {
		return fmt.Errorf("window.title must not be empty")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Hotkey == "" {
		return fmt.Errorf("hotkey must not be empty")
	}
	if c.Assistant.Enabled && c.Assistant.BaseURL == "" {
		return fmt.Errorf("assistant.base_url must be set when the assistant is enabled")
	}
	return nil
}

// ExpandedSize returns the window size used in the expanded state
func (c *Config) ExpandedSize() geometry.Size {
	return geometry.Size{Width: c.Window.Width, Height: c.Window.Height}
}

// Fallback returns the monitor rectangle to use when no monitor can be read
func (c *Config) Fallback() geometry.Rect {
	m := c.FallbackMonitor
	r := geometry.Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height}
	if r.Empty() {
		return geometry.DefaultMonitor
	}
	return r
}

// HistoryFile returns the chat history database path
func (c *Config) HistoryFile() (string, error) {
	if c.Assistant.HistoryPath != "" {
		return c.Assistant.HistoryPath, nil
	}
	return DefaultHistoryPath()
}
