// Package config loads and persists QueBar configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that (un)marshals as a human-readable
// string ("2s", "100ms") in YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config represents the application configuration
type Config struct {
	// Endpoint is the window manager IPC websocket URL.
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// RetryInterval is the fixed delay between reconnect attempts.
	RetryInterval Duration `json:"retry_interval" yaml:"retry_interval"`

	// BatteryInterval is how often the battery charge is sampled.
	BatteryInterval Duration `json:"battery_interval" yaml:"battery_interval"`

	// RepaintInterval is the repaint coalescer's poll interval; it bounds
	// worst-case latency between new data and a redraw.
	RepaintInterval Duration `json:"repaint_interval" yaml:"repaint_interval"`

	// ServerPort is the status API port. Zero disables the API server.
	ServerPort int `json:"server_port" yaml:"server_port"`

	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Manager handles configuration
type Manager struct {
	configPath string
	config     *Config
	mu         sync.RWMutex
}

// NewManager creates a new configuration manager. With an empty
// configFile the default path $HOME/.config/quebar/config.yaml is used.
func NewManager(configFile string) (*Manager, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "quebar")
	actualConfigPath := filepath.Join(configDir, "config.yaml")
	if configFile != "" {
		actualConfigPath = configFile
	} else if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	m := &Manager{configPath: actualConfigPath}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

func defaults() *Config {
	return &Config{
		Endpoint:        "ws://localhost:6123",
		RetryInterval:   Duration(2 * time.Second),
		BatteryInterval: Duration(60 * time.Second),
		RepaintInterval: Duration(100 * time.Millisecond),
		ServerPort:      0,
		LogLevel:        "info",
	}
}

func (m *Manager) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = defaults()

	data, err := os.ReadFile(m.configPath)
	if os.IsNotExist(err) {
		// First run: defaults apply, file is created on Save.
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, m.config); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return *m.config
}

// GetConfigPath returns the config file path.
func (m *Manager) GetConfigPath() string {
	return m.configPath
}

// Save writes the current configuration to disk.
func (m *Manager) Save() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetEndpoint overrides the window manager endpoint.
func (m *Manager) SetEndpoint(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.Endpoint = url
}

// SetServerPort overrides the status API port.
func (m *Manager) SetServerPort(port int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.ServerPort = port
}

// SetLogLevel overrides the log level.
func (m *Manager) SetLogLevel(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.config.LogLevel = level
}
