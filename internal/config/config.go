package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iammorganparry/logoflow/internal/models"
)

type Config struct {
	Port     int    `yaml:"port"`
	LogLevel string `yaml:"log_level"`
	// Providers
	GoogleAPIKey string `yaml:"google_api_key"`
	HFAPIToken   string `yaml:"hf_api_token"`
	HFBaseURL    string `yaml:"hf_base_url"`
	// Models
	NameModels       []string `yaml:"name_models"`
	DefaultNameModel string   `yaml:"default_name_model"`
	LogoModel        string   `yaml:"logo_model"`
	// History
	DBPath         string `yaml:"db_path"`
	HistoryEnabled bool   `yaml:"history_enabled"`
	// Terminal client
	BackendURL    string `yaml:"backend_url"`
	LogoOutputDir string `yaml:"logo_output_dir"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:             5000,
		LogLevel:         "info",
		HFBaseURL:        "https://router.huggingface.co/hf-inference",
		NameModels:       slices.Clone(models.NameModels),
		DefaultNameModel: models.DefaultNameModel,
		LogoModel:        models.DefaultLogoModel,
		DBPath:           defaultDBPath(),
		HistoryEnabled:   true,
		BackendURL:       "http://localhost:5000",
		LogoOutputDir:    ".",
	}
}

// Load builds the config from defaults, the optional YAML file named by
// LOGOFLOW_CONFIG, and environment variables, in that order.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("LOGOFLOW_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.Port = envInt("PORT", cfg.Port)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	cfg.GoogleAPIKey = envStr("GOOGLE_API_KEY", cfg.GoogleAPIKey)
	cfg.HFAPIToken = envStr("HF_API_TOKEN", cfg.HFAPIToken)
	cfg.HFBaseURL = envStr("HF_BASE_URL", cfg.HFBaseURL)
	cfg.NameModels = envList("NAME_MODELS", cfg.NameModels)
	cfg.DefaultNameModel = envStr("DEFAULT_NAME_MODEL", cfg.DefaultNameModel)
	cfg.LogoModel = envStr("LOGO_MODEL", cfg.LogoModel)
	cfg.DBPath = envStr("LOGOFLOW_DB_PATH", cfg.DBPath)
	cfg.HistoryEnabled = envBool("HISTORY_ENABLED", cfg.HistoryEnabled)
	cfg.BackendURL = envStr("LOGOFLOW_BACKEND_URL", cfg.BackendURL)
	cfg.LogoOutputDir = envStr("LOGO_OUTPUT_DIR", cfg.LogoOutputDir)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if len(c.NameModels) == 0 {
		return fmt.Errorf("NAME_MODELS must list at least one model")
	}
	if c.DefaultNameModel == "" {
		return fmt.Errorf("DEFAULT_NAME_MODEL must not be empty")
	}
	if c.LogoModel == "" {
		return fmt.Errorf("LOGO_MODEL must not be empty")
	}
	if c.HFBaseURL == "" {
		return fmt.Errorf("HF_BASE_URL must not be empty")
	}
	if c.HistoryEnabled && c.DBPath == "" {
		return fmt.Errorf("LOGOFLOW_DB_PATH must not be empty when history is enabled")
	}
	if c.BackendURL == "" {
		return fmt.Errorf("LOGOFLOW_BACKEND_URL must not be empty")
	}
	return nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		var items []string
		for _, p := range strings.Split(v, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				items = append(items, p)
			}
		}
		if len(items) > 0 {
			return items
		}
	}
	return fallback
}

// defaultDBPath returns ~/.logoflow/history.db, or a relative path when the
// home directory is unknown.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".logoflow", "history.db")
	}
	return filepath.Join(home, ".logoflow", "history.db")
}
