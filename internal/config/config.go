// Package config loads the calculator's settings from a TOML or YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/currency"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "CALC_CONFIG"

// Config holds the complete application configuration
type Config struct {
	Display  DisplayConfig  `toml:"display" yaml:"display"`
	Currency CurrencyConfig `toml:"currency" yaml:"currency"`
	History  HistoryConfig  `toml:"history" yaml:"history"`
	Log      LogConfig      `toml:"log" yaml:"log"`
}

// DisplayConfig holds interface settings
type DisplayConfig struct {
	Theme  string `toml:"theme" yaml:"theme"`
	Places int    `toml:"places" yaml:"places"`
	Panel  string `toml:"panel" yaml:"panel"`
}

// CurrencyConfig holds rate service settings
type CurrencyConfig struct {
	BaseURL  string   `toml:"base_url" yaml:"base_url"`
	Timeout  Duration `toml:"timeout" yaml:"timeout"`
	CacheTTL Duration `toml:"cache_ttl" yaml:"cache_ttl"`
	From     string   `toml:"from" yaml:"from"`
	To       string   `toml:"to" yaml:"to"`
}

// HistoryConfig holds calculation history settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled" yaml:"enabled"`
	Path    string `toml:"path" yaml:"path"`
}

// LogConfig holds logging settings. An empty File logs to stderr.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Duration wraps time.Duration for text parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string like "10s"
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := Config{
		Display: DisplayConfig{Places: calc.DefaultPlaces},
		History: HistoryConfig{Enabled: true},
	}
	cfg.applyDefaults()
	return &cfg
}

// Load loads configuration from a file. Files ending in .yaml or .yml are
// YAML; anything else is TOML. Settings missing from the file keep their
// defaults.
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
	switch detectFormat(path) {
	case "yaml":
		err = yaml.Unmarshal(content, cfg)
	default:
		_, err = toml.Decode(string(content), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the file named by CALC_CONFIG, or from
// the first default location that exists. With no file, it returns the
// defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	for _, p := range DefaultPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}
	return Default(), nil
}

// DefaultPaths lists the locations searched for a config file.
func DefaultPaths() []string {
	paths := []string{"./calc.toml", "./calc.yaml"}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths,
			filepath.Join(dir, "calc", "calc.toml"),
			filepath.Join(dir, "calc", "calc.yaml"),
		)
	}
	return paths
}

// detectFormat determines the configuration format from file extension
func detectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "toml"
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Display.Theme == "" {
		c.Display.Theme = "dark"
	}
	if c.Display.Panel == "" {
		c.Display.Panel = "standard"
	}

	if c.Currency.BaseURL == "" {
		c.Currency.BaseURL = currency.DefaultBaseURL
	}
	if c.Currency.Timeout.Duration == 0 {
		c.Currency.Timeout.Duration = 10 * time.Second
	}
	if c.Currency.CacheTTL.Duration == 0 {
		c.Currency.CacheTTL.Duration = 10 * time.Minute
	}
	if c.Currency.From == "" {
		c.Currency.From = "USD"
	}
	if c.Currency.To == "" {
		c.Currency.To = "INR"
	}

	if c.History.Path == "" {
		c.History.Path = defaultHistoryPath()
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func defaultHistoryPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "calc", "history.db")
	}
	return "./calc-history.db"
}

func (c *Config) expandEnvVars() {
	c.History.Path = os.ExpandEnv(c.History.Path)
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.Currency.BaseURL = os.ExpandEnv(c.Currency.BaseURL)
}

// Validate checks settings that have a fixed set of valid values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Display.Theme) {
	case "dark", "light":
	default:
		return fmt.Errorf("display.theme must be dark or light, not %q", c.Display.Theme)
	}
	if c.Display.Places < 0 || c.Display.Places > 30 {
		return fmt.Errorf("display.places must be between 0 and 30, not %d", c.Display.Places)
	}
	switch strings.ToLower(c.Display.Panel) {
	case "standard", "scientific", "bmi", "age", "currency":
	default:
		return fmt.Errorf("display.panel %q is not a calculator panel", c.Display.Panel)
	}
	if c.Currency.Timeout.Duration < 0 || c.Currency.CacheTTL.Duration < 0 {
		return fmt.Errorf("currency durations must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level %q is not a log level", c.Log.Level)
	}
	return nil
}

// Save writes the configuration as TOML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return f.Close()
}
