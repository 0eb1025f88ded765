package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/wricardo/dragons-aside/logging"
)

// DefaultFileName is looked up in CONFIG_DIR when no path is given
const DefaultFileName = "dragons.yaml"

var (
	ErrConfigNotFound = errors.New("configuration not found")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// Config is the application configuration
type Config struct {
	// Seed deals every new session from this seed. 0 picks a random seed per session.
	Seed     int64          `yaml:"seed"`
	Logging  logging.Config `yaml:"logging"`
	Sessions SessionsConfig `yaml:"sessions"`
	MCP      MCPConfig      `yaml:"mcp"`
}

// SessionsConfig bounds session resources
type SessionsConfig struct {
	EventLimit      int           `yaml:"event_limit"`
	MaxIdle         time.Duration `yaml:"max_idle"`
	CleanupInterval time.Duration `yaml:"cleanup_interval"`
}

// MCPConfig configures the MCP stdio server
type MCPConfig struct {
	Name string `yaml:"name"`
	// DefaultSession creates a session at startup so tools work without new_session
	DefaultSession bool `yaml:"default_session"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Logging: logging.DefaultConfig(),
		Sessions: SessionsConfig{
			EventLimit:      256,
			MaxIdle:         2 * time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		MCP: MCPConfig{
			Name:           "dragons-aside",
			DefaultSession: true,
		},
	}
}

// LoadDotEnv loads environment variables from .env files, ignoring missing ones
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// Load reads the YAML file at path over the defaults, then applies environment
// overrides and validates the result. With an empty path, DefaultFileName in
// CONFIG_DIR (or the working directory) is used if it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = filepath.Join(os.Getenv("CONFIG_DIR"), DefaultFileName)
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with environment variables
func (c *Config) applyEnv() error {
	if seed := os.Getenv("DRAGONS_SEED"); seed != "" {
		v, err := strconv.ParseInt(seed, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: DRAGONS_SEED=%q", ErrInvalidConfig, seed)
		}
		c.Seed = v
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if file := os.Getenv("LOG_FILE"); file != "" {
		c.Logging.FileEnabled = true
		c.Logging.FilePath = file
	}
	return nil
}

// Validate checks the configuration for values the program cannot run with
func (c *Config) Validate() error {
	var problems []string

	if _, err := logrus.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil {
		problems = append(problems, fmt.Sprintf("logging.level %q", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q", c.Logging.Format))
	}
	if c.Logging.FileEnabled && c.Logging.FilePath == "" {
		problems = append(problems, "logging.file_path is required when file logging is enabled")
	}
	if c.Logging.FileMaxSizeMB < 0 || c.Logging.FileMaxBackups < 0 || c.Logging.FileMaxAgeDays < 0 {
		problems = append(problems, "logging file rotation limits must not be negative")
	}
	if c.Sessions.EventLimit < 0 {
		problems = append(problems, "sessions.event_limit must not be negative")
	}
	if c.Sessions.MaxIdle < 0 || c.Sessions.CleanupInterval < 0 {
		problems = append(problems, "sessions durations must not be negative")
	}
	if c.MCP.Name == "" {
		problems = append(problems, "mcp.name is required")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
