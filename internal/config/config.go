// Package config loads grompt's settings from defaults, an optional YAML file,
// and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Yates-Labs/grompt/internal/provider"
	"github.com/Yates-Labs/grompt/internal/rephrase"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DefaultTemperature = 0.5
	DefaultMaxTokens   = 1024
	DefaultServerAddr  = ":8080"
	DefaultLogLevel    = "info"

	// fileName is the config file searched for when no explicit path is given.
	fileName = "grompt"
)

type Config struct {
	Model       string       `mapstructure:"model"`
	Temperature float64      `mapstructure:"temperature"`
	MaxTokens   int          `mapstructure:"max_tokens"`
	APIKey      string       `mapstructure:"api_key"`
	BaseURL     string       `mapstructure:"base_url"`
	LogLevel    string       `mapstructure:"log_level"`
	Server      ServerConfig `mapstructure:"server"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// env lists the environment variables bound to each key. The first match wins.
var env = map[string][]string{
	"model":       {"GROMPT_DEFAULT_MODEL"},
	"temperature": {"GROMPT_DEFAULT_TEMPERATURE"},
	"max_tokens":  {"GROMPT_DEFAULT_MAX_TOKENS"},
	"api_key":     {"GROQ_API_KEY", "GROMPT_API_KEY"},
	"base_url":    {"GROMPT_BASE_URL"},
	"log_level":   {"GROMPT_LOG_LEVEL"},
	"server.addr": {"GROMPT_SERVER_ADDR"},
}

// Load reads the configuration. If path is empty, grompt.yaml is looked up in
// the working directory and $HOME/.config/grompt, and its absence is not an
// error. An explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("model", provider.DefaultModel)
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("max_tokens", DefaultMaxTokens)
	v.SetDefault("base_url", provider.GroqBaseURL)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("server.addr", DefaultServerAddr)

	for key, vars := range env {
		if err := v.BindEnv(append([]string{key}, vars...)...); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: reading config file: %w", ErrInvalidConfig, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// findConfigFile returns the first grompt.yaml or grompt.yml in the working
// directory or $HOME/.config/grompt, or "" if there is none. Only names with a
// YAML extension match, so a grompt binary next to the user is never read.
func findConfigFile() string {
	dirs := []string{"."}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "grompt"))
	}

	for _, dir := range dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			candidate := filepath.Join(dir, fileName+ext)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate
			}
		}
	}
	return ""
}

// Validate checks the default generation parameters and log level.
// A missing API key is not a configuration error; it surfaces per call.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Params returns the default generation parameters.
func (c *Config) Params() rephrase.Params {
	return rephrase.Params{
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
	}
}

// Client returns the rephrase client configuration.
func (c *Config) Client() rephrase.Config {
	return rephrase.Config{
		APIKey: c.APIKey,
		Params: c.Params(),
	}
}

// LogValue reports the configuration without the credential.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("model", c.Model),
		slog.Float64("temperature", c.Temperature),
		slog.Int("max_tokens", c.MaxTokens),
		slog.String("base_url", c.BaseURL),
		slog.Bool("api_key_set", c.APIKey != ""),
		slog.String("file", c.File),
	)
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch name {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}
