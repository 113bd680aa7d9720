// Package config handles the ~/.recruit directory: the YAML client
// configuration and the log location. Environment variables (optionally via
// a .env file) override the file so deployments can point the client at a
// different backend without editing YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// RecruitDir is the per-user directory the client owns.
	RecruitDir = ".recruit"

	defaultBaseURL        = "https://ai-recruiting.onrender.com"
	defaultTimeoutSeconds = 15
	defaultLogLevel       = "info"

	envBaseURL  = "RECRUIT_API_URL"
	envTimeout  = "RECRUIT_API_TIMEOUT_SECONDS"
	envLogLevel = "RECRUIT_LOG_LEVEL"
)

const defaultConfigYAML = `# recruit client configuration
version: 1

api:
  base_url: https://ai-recruiting.onrender.com
  timeout_seconds: 15

log:
  level: info

# Preselected side of the auth screen: recruiter or candidate.
default_role: candidate
`

// APIConfig points the client at the recruiting backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LogConfig controls logbook verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// FileConfig models ~/.recruit/config.yaml.
type FileConfig struct {
	Version     int       `yaml:"version"`
	API         APIConfig `yaml:"api"`
	Log         LogConfig `yaml:"log"`
	DefaultRole string    `yaml:"default_role"`
}

// Config holds the runtime configuration for the client.
type Config struct {
	// Dir is ~/.recruit (or $RECRUIT_HOME when set, mainly for tests).
	Dir  string
	File FileConfig
}

// Load reads the configuration, creating the directory and a default file
// on first run. A .env file in the working directory is honored before env
// overrides apply.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dir := os.Getenv("RECRUIT_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve home dir: %w", err)
		}
		dir = filepath.Join(home, RecruitDir)
	}
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return nil, fmt.Errorf("config: ensure recruit dir: %w", err)
	}

	cfg := &Config{Dir: dir, File: defaultFileConfig()}
	if err := cfg.loadFile(); err != nil {
		return nil, err
	}
	cfg.applyEnvOverrides()
	cfg.File.applyDefaults()
	cfg.File.normalize()
	if err := cfg.File.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Path returns the on-disk location of the config file.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, "config.yaml")
}

// LogPath returns the logbook file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, "logs", "recruit.log")
}

// SetDefaultRole records which side of the auth screen to preselect and
// persists the value back to config.yaml.
func (c *Config) SetDefaultRole(role string) error {
	role = strings.ToLower(strings.TrimSpace(role))
	if role != "recruiter" && role != "candidate" {
		return fmt.Errorf("config: role must be recruiter or candidate")
	}
	c.File.DefaultRole = role
	return c.save()
}

func (c *Config) loadFile() error {
	path := c.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	c.File = parsed
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv(envBaseURL)); v != "" {
		c.File.API.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(envTimeout)); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			c.File.API.TimeoutSeconds = seconds
		}
	}
	if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
		c.File.Log.Level = v
	}
}

func (c *Config) save() error {
	c.File.applyDefaults()
	c.File.normalize()
	if err := c.File.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	data, err := yaml.Marshal(c.File)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.Path(), data, 0o644); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version: 1,
		API: APIConfig{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Log:         LogConfig{Level: defaultLogLevel},
		DefaultRole: "candidate",
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	if fc.API.BaseURL == "" {
		fc.API.BaseURL = defaultBaseURL
	}
	if fc.API.TimeoutSeconds <= 0 {
		fc.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	if fc.Log.Level == "" {
		fc.Log.Level = defaultLogLevel
	}
	if fc.DefaultRole == "" {
		fc.DefaultRole = "candidate"
	}
}

func (fc *FileConfig) normalize() {
	fc.API.BaseURL = strings.TrimSuffix(strings.TrimSpace(fc.API.BaseURL), "/")
	fc.Log.Level = strings.ToLower(strings.TrimSpace(fc.Log.Level))
	fc.DefaultRole = strings.ToLower(strings.TrimSpace(fc.DefaultRole))
}

func (fc FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("version must be >= 1")
	}
	if fc.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if fc.DefaultRole != "recruiter" && fc.DefaultRole != "candidate" {
		return fmt.Errorf("default_role must be recruiter or candidate")
	}
	return nil
}
