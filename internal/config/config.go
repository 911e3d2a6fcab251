// Package config handles crlsearch configuration. Settings come from a YAML
// file layered under environment variables; either source alone is enough to
// run with defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	// DBPath is the SQLite database file.
	DBPath string `yaml:"db_path,omitempty"`

	// Ollama holds embedding and generation backend settings.
	Ollama OllamaConfig `yaml:"ollama,omitempty"`

	// Quota holds the answer-synthesis usage budget. Zero values mean
	// unlimited.
	Quota QuotaConfig `yaml:"quota,omitempty"`
}

// OllamaConfig holds Ollama backend settings.
type OllamaConfig struct {
	URL            string        `yaml:"url,omitempty"`
	EmbedModel     string        `yaml:"embed_model,omitempty"`
	EmbedDims      int           `yaml:"embed_dims,omitempty"`
	ChatModel      string        `yaml:"chat_model,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
}

// QuotaConfig holds the ask-command usage budget.
type QuotaConfig struct {
	AsksPerMinute float64 `yaml:"asks_per_minute,omitempty"`
	Burst         int     `yaml:"burst,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "crlsearch"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"

	// DefaultDBFile is the database file name under the config directory.
	DefaultDBFile = "crls.db"
)

// ConfigPath returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/crlsearch/config.yml.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// defaultDBPath returns the database path beside the config file.
func defaultDBPath() string {
	path := ConfigPath()
	if path == "" {
		return DefaultDBFile
	}
	return filepath.Join(filepath.Dir(path), DefaultDBFile)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath: defaultDBPath(),
		Ollama: OllamaConfig{
			URL:            "http://localhost:11434",
			EmbedModel:     "all-minilm:l6-v2",
			EmbedDims:      384,
			ChatModel:      "llama3.2",
			RequestTimeout: 30 * time.Second,
		},
	}
}

// Load reads the config file if it exists, then applies environment
// overrides. A missing file is not an error.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Environment variable names. Each overrides the corresponding file setting.
const (
	EnvDBPath        = "CRLSEARCH_DB"
	EnvOllamaURL     = "CRLSEARCH_OLLAMA_URL"
	EnvEmbedModel    = "CRLSEARCH_EMBED_MODEL"
	EnvChatModel     = "CRLSEARCH_CHAT_MODEL"
	EnvAsksPerMinute = "CRLSEARCH_ASKS_PER_MINUTE"
)

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvOllamaURL); v != "" {
		cfg.Ollama.URL = v
	}
	if v := os.Getenv(EnvEmbedModel); v != "" {
		cfg.Ollama.EmbedModel = v
	}
	if v := os.Getenv(EnvChatModel); v != "" {
		cfg.Ollama.ChatModel = v
	}
	if v := os.Getenv(EnvAsksPerMinute); v != "" {
		// A typo here must not silently leave the budget unlimited.
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvAsksPerMinute, v, err)
		}
		cfg.Quota.AsksPerMinute = f
		if cfg.Quota.Burst == 0 {
			cfg.Quota.Burst = 1
		}
	}
	return nil
}

// Validate checks settings that would otherwise fail obscurely later.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.Ollama.EmbedDims <= 0 {
		return fmt.Errorf("embed_dims must be positive, got %d", c.Ollama.EmbedDims)
	}
	if c.Quota.AsksPerMinute < 0 {
		return fmt.Errorf("asks_per_minute must not be negative")
	}
	if c.Quota.AsksPerMinute > 0 && c.Quota.Burst <= 0 {
		return fmt.Errorf("burst must be positive when asks_per_minute is set")
	}
	return nil
}

// Save writes the configuration to the config file, creating the directory
// if needed.
func (c *Config) Save() error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
