package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	History   HistoryConfig   `yaml:"history"`
	Cache     CacheConfig     `yaml:"cache"`
}

type ArtifactsConfig struct {
	ColumnsPath string `yaml:"columns_path"`
	ModelPath   string `yaml:"model_path"`
	ModelType   string `yaml:"model_type"`
	Watch       bool   `yaml:"watch"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port"`
	Timeout        time.Duration `yaml:"timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// HistoryConfig controls the estimate log. An empty Path disables it.
type HistoryConfig struct {
	Path        string `yaml:"path"`
	RecentLimit int    `yaml:"recent_limit"`
}

type CacheConfig struct {
	Size int `yaml:"size"`
}

func Default() Config {
	return Config{
		Artifacts: ArtifactsConfig{
			ColumnsPath: "artifacts/columns.json",
			ModelPath:   "artifacts/pune_home_prices_model.json",
			ModelType:   "linear_regression",
		},
		HTTP: HTTPConfig{
			Port:           8080,
			Timeout:        30 * time.Second,
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   1 << 16,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		History: HistoryConfig{
			RecentLimit: 20,
		},
		Cache: CacheConfig{
			Size: 1024,
		},
	}
}

// Load decodes the YAML file at path over the defaults. Relative file
// paths in the config are resolved against the config file's directory.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	base := filepath.Dir(path)
	config.Artifacts.ColumnsPath = resolve(base, config.Artifacts.ColumnsPath)
	config.Artifacts.ModelPath = resolve(base, config.Artifacts.ModelPath)
	config.History.Path = resolve(base, config.History.Path)
	config.Log.File = resolve(base, config.Log.File)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &config, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Artifacts.ColumnsPath == "" {
		errs = append(errs, errors.New("artifacts.columns_path is required"))
	}
	if c.Artifacts.ModelPath == "" {
		errs = append(errs, errors.New("artifacts.model_path is required"))
	}
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = append(errs, fmt.Errorf("http.port %d out of range", c.HTTP.Port))
	}
	if c.HTTP.Timeout <= 0 {
		errs = append(errs, errors.New("http.timeout must be positive"))
	}
	if c.Cache.Size < 0 {
		errs = append(errs, errors.New("cache.size must not be negative"))
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be json or console", c.Log.Format))
	}
	return errors.Join(errs...)
}

func resolve(base, path string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
