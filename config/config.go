package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable holding the default config path.
const EnvPath = "AMI_CONFIG"

// Config holds the complete tool configuration
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Scripts ScriptsConfig `toml:"scripts" yaml:"scripts"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// File, when set, receives a JSON copy of every record
	File string `toml:"file" yaml:"file"`
}

// ScriptsConfig says where scripts are loaded from
type ScriptsConfig struct {
	Dir       string `toml:"dir" yaml:"dir"`
	Extension string `toml:"extension" yaml:"extension"`
}

// StoreConfig selects the database backing the script store
type StoreConfig struct {
	Driver string `toml:"driver" yaml:"driver"`
	DSN    string `toml:"dsn" yaml:"dsn"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Scripts: ScriptsConfig{
			Dir:       "scripts",
			Extension: ".ami",
		},
		Store: StoreConfig{
			Driver: "sqlite3",
			DSN:    "ami.db",
		},
	}
}

// Load reads a TOML or YAML file, chosen by extension, on top of Default.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case ".toml", "":
		if _, err := toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads the file named by AMI_CONFIG, or the first default
// location that exists. Without either it returns Default.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		defaultPaths := []string{
			"./ami.toml",
			"./ami.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/ami/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// applyDefaults fills fields a file left empty
func (c *Config) applyDefaults() {
	d := Default()
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Scripts.Dir == "" {
		c.Scripts.Dir = d.Scripts.Dir
	}
	if c.Scripts.Extension == "" {
		c.Scripts.Extension = d.Scripts.Extension
	}
	if !strings.HasPrefix(c.Scripts.Extension, ".") {
		c.Scripts.Extension = "." + c.Scripts.Extension
	}
	if c.Store.Driver == "" {
		c.Store.Driver = d.Store.Driver
	}
	if c.Store.DSN == "" {
		c.Store.DSN = d.Store.DSN
	}
}

func (c *Config) expandEnvVars() {
	c.Store.DSN = os.ExpandEnv(c.Store.DSN)
	c.Scripts.Dir = os.ExpandEnv(c.Scripts.Dir)
	c.Log.File = os.ExpandEnv(c.Log.File)
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level '%s'", c.Log.Level)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format '%s'", c.Log.Format)
	}

	switch c.Store.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("invalid store driver '%s'", c.Store.Driver)
	}

	return nil
}
