package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Engine  EngineConfig  `yaml:"engine" validate:"required"`
	Insight InsightConfig `yaml:"insight" validate:"required"`
	Limits  Limits        `yaml:"limits" validate:"required"`
}

type EngineConfig struct {
	DefaultCategory string `yaml:"default_category" validate:"required,oneof=database backend frontend"`
	DefaultQuality  string `yaml:"default_quality" validate:"required,oneof=basic standard enterprise production"`
}

type InsightConfig struct {
	BaseURL  string `yaml:"base_url" validate:"required,url"`
	Enabled  bool   `yaml:"enabled"`
	CacheDir string `yaml:"cache_dir"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configPath := getConfigPath()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		cfg := Default()
		if vErr := cfg.validate(); vErr != nil {
			return nil, fmt.Errorf("validating default config: %w", vErr)
		}
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Environment overrides for deploy-time knobs.
	if url := os.Getenv("CODEINTEL_INSIGHT_URL"); url != "" {
		cfg.Insight.BaseURL = url
	}
	if dir := os.Getenv("CODEINTEL_CACHE_DIR"); dir != "" {
		cfg.Insight.CacheDir = dir
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Default returns a config that passes validation without any file on
// disk; the insight broker stays disabled until configured.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			DefaultCategory: "backend",
			DefaultQuality:  "standard",
		},
		Insight: InsightConfig{
			BaseURL:  "http://localhost:8700",
			Enabled:  false,
			CacheDir: defaultCacheDir(),
		},
		Limits: DefaultLimits(),
	}
}

func getConfigPath() string {
	if path := os.Getenv("CODEINTEL_CONFIG"); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "codeintel", "config.yaml")
	}

	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "codeintel", "config.yaml")
}

func defaultCacheDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "codeintel", "cache")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "codeintel", "cache")
}

// expandTilde expands a leading ~ to the user's home directory.
func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c *Config) validate() error {
	if c.Insight.CacheDir != "" {
		c.Insight.CacheDir = expandTilde(c.Insight.CacheDir)
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	return nil
}
