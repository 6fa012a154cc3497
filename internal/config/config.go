package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration makes time.Duration round-trip through YAML in the usual
// "10s" / "1h" notation.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("config: invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the application configuration, loaded from a YAML file with
// environment-variable overrides for deployment.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Connector ConnectorConfig `yaml:"connector"`
}

// ServerConfig holds the listen addresses.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MetricsAddr string `yaml:"metrics_addr"`
}

// DatabaseConfig holds the storage engine settings.
type DatabaseConfig struct {
	Driver          string   `yaml:"driver"` // sqlite3 or postgres
	DSN             string   `yaml:"dsn"`
	MaxIdleConns    int      `yaml:"max_idle_conns"`
	MaxOpenConns    int      `yaml:"max_open_conns"`
	ConnMaxLifetime Duration `yaml:"conn_max_lifetime"`
	LogSQL          bool     `yaml:"log_sql"`
}

// AuthConfig holds the session-token settings.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// ConnectorConfig holds the recipe-site scraping settings. The image
// attribute chain lives here so markup changes need only a config edit.
type ConnectorConfig struct {
	BaseURL    string   `yaml:"base_url"`
	SearchPath string   `yaml:"search_path"`
	PathPrefix string   `yaml:"path_prefix"`
	UserAgent  string   `yaml:"user_agent"`
	Timeout    Duration `yaml:"timeout"`
	ImageAttrs []string `yaml:"image_attrs"`
}

// Default returns the configuration used when no file or overrides are
// present: local sqlite storage and the kurashiru search page.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			MetricsAddr: ":9090",
		},
		Database: DatabaseConfig{
			Driver:          "sqlite3",
			DSN:             "larder.db",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: Duration(time.Hour),
		},
		Connector: ConnectorConfig{
			BaseURL:    "https://www.kurashiru.com",
			SearchPath: "/search",
			PathPrefix: "/recipes/",
			Timeout:    Duration(10 * time.Second),
			ImageAttrs: []string{"src", "data-src", "srcset", "data-srcset"},
		},
	}
}

// Load reads the configuration file at path (missing file means defaults)
// and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LARDER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LARDER_METRICS_ADDR"); v != "" {
		cfg.Server.MetricsAddr = v
	}
	if v := os.Getenv("LARDER_DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("LARDER_DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("LARDER_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
}
