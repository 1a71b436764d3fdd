// Package config loads settings for the prodattr executables: a .env file,
// then an optional YAML file with ${VAR} expansion, then PRODATTR_*
// environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-prodattr/pkg/dataloader"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "PRODATTR_"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Catalog CatalogConfig `yaml:"catalog"`
	Labels  LabelsConfig  `yaml:"labels"`
	Theme   ThemeConfig   `yaml:"theme"`
	Logging LoggingConfig `yaml:"logging"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type ServerConfig struct {
	Addr     string `yaml:"addr"`
	BasePath string `yaml:"base_path"`
}

// BackendConfig points the HTTP loader at a products.d endpoint.
type BackendConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
	MaxLoads  int           `yaml:"max_loads"`
}

// CatalogConfig selects the store served by the reference backend. Database
// wins over File when both are set.
type CatalogConfig struct {
	File     string `yaml:"file"`
	Database string `yaml:"database"`
}

type LabelsConfig struct {
	File string `yaml:"file"`
}

type ThemeConfig struct {
	Name        string            `yaml:"name"`
	Variant     string            `yaml:"variant"`
	AssetPrefix string            `yaml:"asset_prefix"`
	Partials    map[string]string `yaml:"partials"`
}

type LoggingConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Backend: BackendConfig{
			Timeout: 10 * time.Second,
			Burst:   1,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadDotEnv loads .env style files into the process environment. Missing
// files are ignored; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// Load reads path (optional) over the defaults and applies environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := decode(bytes.NewReader(raw), &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults without consulting the
// environment beyond ${VAR} expansion.
func Parse(r io.Reader) (Config, error) {
	cfg := Defaults()
	if err := decode(r, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("config: read: %w", err)
	}
	expanded := os.ExpandEnv(string(raw))
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode yaml: %w", err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("ADDR", &c.Server.Addr)
	str("BASE_PATH", &c.Server.BasePath)
	str("BACKEND_ENDPOINT", &c.Backend.Endpoint)
	str("CATALOG_FILE", &c.Catalog.File)
	str("CATALOG_DB", &c.Catalog.Database)
	str("LABELS_FILE", &c.Labels.File)
	str("THEME", &c.Theme.Name)
	str("THEME_VARIANT", &c.Theme.Variant)
	str("ASSET_PREFIX", &c.Theme.AssetPrefix)
	str("LOG_LEVEL", &c.Logging.Level)
	str("SENTRY_DSN", &c.Sentry.DSN)
	str("SENTRY_ENVIRONMENT", &c.Sentry.Environment)

	if v, ok := lookup(EnvPrefix + "BACKEND_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: %sBACKEND_TIMEOUT: %w", EnvPrefix, err)
		}
		c.Backend.Timeout = d
	}
	if v, ok := lookup(EnvPrefix + "MAX_LOADS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sMAX_LOADS: %w", EnvPrefix, err)
		}
		c.Backend.MaxLoads = n
	}
	if v, ok := lookup(EnvPrefix + "RATE_LIMIT"); ok && v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %sRATE_LIMIT: %w", EnvPrefix, err)
		}
		c.Backend.RateLimit = rate
	}
	if v, ok := lookup(EnvPrefix + "LOG_DEV"); ok && v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %sLOG_DEV: %w", EnvPrefix, err)
		}
		c.Logging.Development = dev
	}
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr is required")
	}
	if c.Backend.Timeout < 0 {
		return errors.New("config: backend.timeout must not be negative")
	}
	if c.Backend.RateLimit < 0 {
		return errors.New("config: backend.rate_limit must not be negative")
	}
	if c.Backend.MaxLoads < 0 {
		return errors.New("config: backend.max_loads must not be negative")
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: logging.level: %w", err)
	}
	return nil
}

// LoaderOptions converts the backend settings into HTTP loader options.
func (b BackendConfig) LoaderOptions(logger *zap.Logger) []dataloader.LoaderOption {
	opts := []dataloader.LoaderOption{
		dataloader.WithEndpoint(b.Endpoint),
		dataloader.WithLogger(logger),
	}
	if b.Timeout > 0 {
		opts = append(opts, dataloader.WithRequestTimeout(b.Timeout))
	}
	if b.RateLimit > 0 {
		opts = append(opts, dataloader.WithRateLimit(b.RateLimit, b.Burst))
	}
	return opts
}

// RendererConfig returns the go-theme config for widget rendering, or nil
// when no theme is configured. Assets resolve to <asset_prefix>/<name>.svg.
func (t ThemeConfig) RendererConfig() *theme.RendererConfig {
	if strings.TrimSpace(t.Name) == "" && len(t.Partials) == 0 && t.AssetPrefix == "" {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:    t.Name,
		Variant:  t.Variant,
		Partials: make(map[string]string, len(t.Partials)),
	}
	for k, v := range t.Partials {
		cfg.Partials[k] = v
	}
	if prefix := strings.TrimRight(strings.TrimSpace(t.AssetPrefix), "/"); prefix != "" {
		cfg.AssetURL = func(name string) string {
			return prefix + "/" + name + ".svg"
		}
	}
	return cfg
}

// NewLogger builds a zap logger for the configured level.
func (l LoggingConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		return nil, fmt.Errorf("config: logging.level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("config: build logger: %w", err)
	}
	return logger, nil
}
