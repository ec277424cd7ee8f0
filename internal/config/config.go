package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/hadithview/internal/domain/hadith"
)

// Config holds the hadith client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Stub    StubConfig    `yaml:"stub"`
}

// APIConfig holds the backend connection settings.
type APIConfig struct {
	BaseURL   string `yaml:"base_url"` // includes the API prefix, e.g. http://localhost:8000/api/v1
	APIKey    string `yaml:"api_key"`
	UserAgent string `yaml:"user_agent"`
}

// DisplayConfig holds rendering settings.
type DisplayConfig struct {
	Language       string `yaml:"language"`        // en, ar, bn, ur (default: en)
	TruncateLength int    `yaml:"truncate_length"` // graphemes; 0 disables truncation
	SearchLimit    int    `yaml:"search_limit"`
	PageSize       int    `yaml:"page_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// MetricsConfig holds client metrics settings.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// StubConfig holds the local fixture backend settings.
type StubConfig struct {
	Port            int      `yaml:"port"`
	Fixtures        string   `yaml:"fixtures"`
	APIKeys         []string `yaml:"api_keys"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Display.Language == "" {
		c.Display.Language = string(hadith.LangEnglish)
	}
	if c.Display.SearchLimit <= 0 {
		c.Display.SearchLimit = hadith.DefaultLimit
	}
	if c.Display.PageSize <= 0 {
		c.Display.PageSize = 20
	}
	if c.Stub.Port <= 0 {
		c.Stub.Port = 8000
	}
	if c.Stub.Fixtures == "" {
		c.Stub.Fixtures = "config/fixtures.yaml"
	}
	if c.Stub.ReadTimeoutSec <= 0 {
		c.Stub.ReadTimeoutSec = 10
	}
	if c.Stub.WriteTimeoutSec <= 0 {
		c.Stub.WriteTimeoutSec = 10
	}
	if c.Stub.ShutdownSec <= 0 {
		c.Stub.ShutdownSec = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an absolute http(s) url, got %q", c.API.BaseURL)
	}
	if _, err := hadith.ParseLang(c.Display.Language); err != nil {
		return fmt.Errorf("display.language: %w", err)
	}
	if c.Display.TruncateLength < 0 {
		return fmt.Errorf("display.truncate_length must be >= 0, got %d", c.Display.TruncateLength)
	}
	if c.Display.SearchLimit > hadith.MaxLimit {
		return fmt.Errorf("display.search_limit must be between 1 and %d, got %d", hadith.MaxLimit, c.Display.SearchLimit)
	}
	if c.Display.PageSize > hadith.MaxLimit {
		return fmt.Errorf("display.page_size must be between 1 and %d, got %d", hadith.MaxLimit, c.Display.PageSize)
	}
	if c.Stub.Port > 65535 {
		return fmt.Errorf("stub.port must be between 1 and 65535, got %d", c.Stub.Port)
	}
	return nil
}

// Language returns the configured display language.
func (c *Config) Language() hadith.Lang {
	return hadith.Lang(c.Display.Language)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
