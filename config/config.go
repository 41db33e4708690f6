// config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type SnapshotsConfig struct {
	Dir     string   `yaml:"dir"`
	Exclude []string `yaml:"exclude"` // glob patterns matched against base filenames
}

type OutputConfig struct {
	Path string `yaml:"path"`
}

type CleanConfig struct {
	// DerivedColumns enables the age and temperature columns.
	// A pointer so that an explicit false in the file survives defaulting.
	DerivedColumns *bool `yaml:"derived_columns"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"` // "mysql", "sqlite" or empty to disable the table sink
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	Path     string `yaml:"path"` // sqlite only
}

type Config struct {
	Snapshots SnapshotsConfig `yaml:"snapshots"`
	Output    OutputConfig    `yaml:"output"`
	Clean     CleanConfig     `yaml:"clean"`
	Database  DatabaseConfig  `yaml:"database"`
}

const (
	DefaultSnapshotDir = "data"
	DefaultOutputPath  = "data/clean.csv"
)

// DefaultExclude names the control entries that live next to snapshot files
// and are never parsed as data.
var DefaultExclude = []string{".*", "_*", "README*"}

var AppConfig Config

// DerivedColumnsEnabled reports whether age and temperature are computed.
func (c *Config) DerivedColumnsEnabled() bool {
	return c.Clean.DerivedColumns == nil || *c.Clean.DerivedColumns
}

// SinkEnabled reports whether cleaned rows are also loaded into a SQL table.
func (c *Config) SinkEnabled() bool {
	return c.Database.Driver != ""
}

// LoadConfig reads configuration into AppConfig.
func LoadConfig(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	AppConfig = *cfg
	return nil
}

// Load reads configuration from a yaml file, then applies .env and
// TRENDING_* environment overrides and fills defaults.
// An empty configPath searches the usual locations; finding nothing there
// is not an error and yields the defaults.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	if configPath == "" {
		potentialPaths := []string{
			"config.yaml",
			"config/config.yaml",
		}
		for _, p := range potentialPaths {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
		if configPath == "" {
			log.Println("Config: no config.yaml found, using defaults")
		}
	}

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	applyEnv(cfg)

	if cfg.Snapshots.Dir == "" {
		cfg.Snapshots.Dir = DefaultSnapshotDir
	}
	if cfg.Snapshots.Exclude == nil {
		cfg.Snapshots.Exclude = append([]string(nil), DefaultExclude...)
	}
	if cfg.Output.Path == "" {
		cfg.Output.Path = DefaultOutputPath
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Output.Path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for cleaned CSV: %w", err)
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRENDING_DATA_DIR"); v != "" {
		cfg.Snapshots.Dir = v
	}
	if v := os.Getenv("TRENDING_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
	if v := os.Getenv("TRENDING_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("TRENDING_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
}

func validate(cfg *Config) error {
	for _, pattern := range cfg.Snapshots.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	switch cfg.Database.Driver {
	case "", "mysql":
	case "sqlite":
		if cfg.Database.Path == "" {
			return fmt.Errorf("database.path is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	return nil
}
