// Package config handles configuration for detox-adapter.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/detox-adapter/pkg/core"
)

// Config represents the adapter configuration (detox-adapter.yaml).
// Values are read once at startup and never change during a run.
type Config struct {
	// Backend profile selection
	DefaultProfile string             `yaml:"defaultProfile"`
	Profiles       map[string]Profile `yaml:"profiles"`

	// RelaunchBeforeEach chooses a full app relaunch before every test
	// instead of an in-place bundle reload.
	RelaunchBeforeEach bool `yaml:"relaunchBeforeEach"`

	// ReuseSession keeps the backend session alive across the suite,
	// skipping cleanup in the after-suite hook.
	ReuseSession bool `yaml:"reuseSession"`

	// LogLevel is the logrus level name (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`
}

// Profile names one backend configuration.
type Profile struct {
	Server    string `yaml:"server"`    // Automation server URL, e.g. ws://localhost:8099
	SessionID string `yaml:"sessionId"` // Server session identifier
	Platform  string `yaml:"platform"`  // ios or android
	App       string `yaml:"app"`       // App binary path (.app, .apk)
	Device    string `yaml:"device"`    // Device or simulator name
}

// Load loads configuration from a file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, core.ErrInvalidConfig.WithCause(err)
	}

	return &cfg, nil
}

// LoadFromDir looks for detox-adapter.yaml or detox-adapter.yml in the
// directory.
func LoadFromDir(dir string) (*Config, error) {
	configPath := filepath.Join(dir, "detox-adapter.yaml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	configPath = filepath.Join(dir, "detox-adapter.yml")
	if _, err := os.Stat(configPath); err == nil {
		return Load(configPath)
	}

	// No config file found, return empty config
	return &Config{}, nil
}

// Profile returns the named profile, falling back to the default when
// name is empty.
func (c *Config) Profile(name string) (Profile, error) {
	if name == "" {
		name = c.DefaultProfile
	}
	if name == "" && len(c.Profiles) == 1 {
		for only := range c.Profiles {
			name = only
		}
	}
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, core.ErrUnknownProfile.
			WithMessage(fmt.Sprintf("profile %q not defined", name))
	}
	return p, nil
}
