package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/sheldcoop/aoi-app/domain/panel"
	"github.com/sheldcoop/aoi-app/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Panel    panel.Geometry `yaml:"panel"`
	Database DatabaseConfig `yaml:"database"`
	Paths    PathConfig     `yaml:"paths"`
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig holds snapshot-store connection settings. Persistence is
// optional: an empty URL disables it.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// PathConfig holds file system paths
type PathConfig struct {
	ReportDir string `yaml:"report_dir"`
}

// Default panel geometry matching the inspection line's standard layout.
const (
	DefaultRows = 7
	DefaultCols = 7
	DefaultGap  = 1
)

// Load builds the configuration from defaults, an optional YAML file, and
// environment variable overrides, in that precedence order.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{Port: "8080"},
		Panel:  panel.Geometry{Rows: DefaultRows, Cols: DefaultCols, Gap: DefaultGap},
		Paths:  PathConfig{ReportDir: filepath.Join(xdg.DataHome, "aoi-app", "reports")},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	applyEnv(cfg)

	if err := cfg.Panel.Validate(); err != nil {
		return nil, err
	}
	if cfg.Server.Port == "" {
		return nil, errors.ConfigInvalid("server port cannot be empty")
	}
	return cfg, nil
}

// applyEnv overrides config values from the environment.
func applyEnv(cfg *Config) {
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.Database.URL = url
	}
	if dir := os.Getenv("REPORT_DIR"); dir != "" {
		cfg.Paths.ReportDir = dir
	}
	if rows, ok := envInt("PANEL_ROWS"); ok {
		cfg.Panel.Rows = rows
	}
	if cols, ok := envInt("PANEL_COLS"); ok {
		cfg.Panel.Cols = cols
	}
	if gap, ok := envInt("GAP_SIZE"); ok {
		cfg.Panel.Gap = gap
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
