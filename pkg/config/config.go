package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultModel             = "gemini-3-pro-preview"
	DefaultTemperature       = 0.3
	DefaultAPITimeoutSeconds = 120
	DefaultMaxAttachmentMB   = 10
)

// Environment variables that override values from the config file.
const (
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvAPIKey       = "API_KEY"
	EnvModel        = "URCLOUD_MODEL"
)

// Config represents the application configuration
type Config struct {
	APIKey            string  `json:"api_key"`
	Model             string  `json:"model"`
	Temperature       float64 `json:"temperature"`
	APITimeoutSeconds int     `json:"api_timeout_seconds"`
	SearchGrounding   bool    `json:"search_grounding"`
	MaxAttachmentMB   int     `json:"max_attachment_mb"`
	LogLevel          string  `json:"log_level"`
	LogFile           string  `json:"log_file"`
	LogFormat         string  `json:"log_format"`
}

// Default returns a configuration with default values
func Default() Config {
	return Config{
		APIKey:            "",
		Model:             DefaultModel,
		Temperature:       DefaultTemperature,
		APITimeoutSeconds: DefaultAPITimeoutSeconds,
		SearchGrounding:   true,
		MaxAttachmentMB:   DefaultMaxAttachmentMB,
		LogLevel:          "info",
		LogFile:           "",
		LogFormat:         "json",
	}
}

// Load loads configuration from the specified path.
// If the file doesn't exist, creates one with default values.
// Environment overrides are applied after the file is read.
func Load(configPath string) (Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return Config{}, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(configPath, cfg); err != nil {
				return Config{}, fmt.Errorf("failed to create default config: %w", err)
			}
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	// Start from defaults so fields missing in older files keep sane values.
	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}

	return applyEnv(cfg), nil
}

// Save saves the configuration to the specified path
func Save(configPath string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func applyEnv(cfg Config) Config {
	if key := strings.TrimSpace(os.Getenv(EnvGeminiAPIKey)); key != "" {
		cfg.APIKey = key
	} else if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		cfg.APIKey = key
	}
	if model := strings.TrimSpace(os.Getenv(EnvModel)); model != "" {
		cfg.Model = model
	}
	return cfg
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("Gemini API key is required (set api_key in config file or %s)", EnvGeminiAPIKey)
	}

	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("model is required")
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got: %f", c.Temperature)
	}

	if c.APITimeoutSeconds <= 0 {
		return fmt.Errorf("api_timeout_seconds must be positive, got: %d", c.APITimeoutSeconds)
	}

	if c.MaxAttachmentMB <= 0 || c.MaxAttachmentMB > DefaultMaxAttachmentMB {
		return fmt.Errorf("max_attachment_mb must be between 1 and %d, got: %d", DefaultMaxAttachmentMB, c.MaxAttachmentMB)
	}

	return nil
}

// MaxAttachmentBytes returns the attachment cap in bytes.
func (c Config) MaxAttachmentBytes() int64 {
	return int64(c.MaxAttachmentMB) * 1024 * 1024
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".urcloud_chat/config.json"
	}
	return filepath.Join(homeDir, ".urcloud_chat", "config.json")
}
