package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config/config.yaml"

	GeocoderOpenMeteo = "open-meteo"
	GeocoderNominatim = "nominatim"

	BoundaryDedupe = "dedupe"
	BoundaryKeep   = "keep"
)

type Config struct {
	App       AppConfig       `yaml:"app" envconfig:"APP"`
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Weather   WeatherConfig   `yaml:"weather" envconfig:"WEATHER"`
	Geocoding GeocodingConfig `yaml:"geocoding" envconfig:"GEOCODING"`
	Storage   StorageConfig   `yaml:"storage" envconfig:"STORAGE"`
	Refresh   RefreshConfig   `yaml:"refresh" envconfig:"REFRESH"`
	Log       LogConfig       `yaml:"log" envconfig:"LOG"`
	Sentry    SentryConfig    `yaml:"sentry" envconfig:"SENTRY"`
}

type AppConfig struct {
	Name    string `yaml:"name" envconfig:"NAME" validate:"required"`
	Version string `yaml:"version" envconfig:"VERSION" validate:"required"`
	Env     string `yaml:"env" envconfig:"ENV" validate:"required"`
}

type ServerConfig struct {
	Port         string `yaml:"port" envconfig:"PORT" validate:"required,numeric"`
	ReadTimeout  int    `yaml:"read_timeout" envconfig:"READ_TIMEOUT" validate:"gte=0"`
	WriteTimeout int    `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" validate:"gte=0"`
	IdleTimeout  int    `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" validate:"gte=0"`
}

type WeatherConfig struct {
	ForecastURL string `yaml:"forecast_url" envconfig:"FORECAST_URL" validate:"required,url"`
	ArchiveURL  string `yaml:"archive_url" envconfig:"ARCHIVE_URL" validate:"required,url"`
	// Timeout is the per request limit in seconds.
	Timeout       int    `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	MaxRangeDays  int    `yaml:"max_range_days" envconfig:"MAX_RANGE_DAYS" validate:"gt=0"`
	RangeBoundary string `yaml:"range_boundary" envconfig:"RANGE_BOUNDARY" validate:"oneof=dedupe keep"`
}

type GeocodingConfig struct {
	// Providers is the ordered fallback chain tried after coordinate parsing.
	Providers    []string `yaml:"providers" envconfig:"PROVIDERS" validate:"dive,oneof=open-meteo nominatim"`
	OpenMeteoURL string   `yaml:"open_meteo_url" envconfig:"OPEN_METEO_URL" validate:"required,url"`
	NominatimURL string   `yaml:"nominatim_url" envconfig:"NOMINATIM_URL" validate:"required,url"`
	UserAgent    string   `yaml:"user_agent" envconfig:"USER_AGENT" validate:"required"`
	Timeout      int      `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" envconfig:"DRIVER" validate:"oneof=sqlite postgres"`
	DSN    string `yaml:"dsn" envconfig:"DSN" validate:"required"`
}

type RefreshConfig struct {
	Enabled  bool          `yaml:"enabled" envconfig:"ENABLED"`
	Interval time.Duration `yaml:"interval" envconfig:"INTERVAL" validate:"required_if=Enabled true"`
	Limit    int           `yaml:"limit" envconfig:"LIMIT" validate:"gte=0"`
}

type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
}

type SentryConfig struct {
	DSN   string `yaml:"dsn" envconfig:"DSN"`
	Debug bool   `yaml:"debug" envconfig:"DEBUG"`
}

// ConfigProvider loads and checks a Config.
type ConfigProvider interface {
	Load() (*Config, error)
	Validate(config *Config) error
}

// FileConfigProvider layers defaults, a YAML file, a .env file and the
// process environment, in that order.
type FileConfigProvider struct {
	path     string
	validate *validator.Validate
}

func NewFileConfigProvider(path string) *FileConfigProvider {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &FileConfigProvider{
		path:     path,
		validate: v,
	}
}

func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "weather-history",
			Version: "1.0.0",
			Env:     "development",
		},
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  120,
		},
		Weather: WeatherConfig{
			ForecastURL:   "https://api.open-meteo.com/v1/forecast",
			ArchiveURL:    "https://archive-api.open-meteo.com/v1/era5",
			Timeout:       8,
			MaxRangeDays:  31,
			RangeBoundary: BoundaryDedupe,
		},
		Geocoding: GeocodingConfig{
			Providers:    []string{GeocoderOpenMeteo, GeocoderNominatim},
			OpenMeteoURL: "https://geocoding-api.open-meteo.com/v1/search",
			NominatimURL: "https://nominatim.openstreetmap.org/search",
			UserAgent:    "weather-history/1.0",
			Timeout:      8,
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			DSN:    "weather.db",
		},
		Refresh: RefreshConfig{
			Enabled:  false,
			Interval: 6 * time.Hour,
			Limit:    20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

func (p *FileConfigProvider) Load() (*Config, error) {
	cnf := DefaultConfig()

	if err := p.loadFromFile(cnf); err != nil {
		return nil, err
	}

	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	if err := envconfig.Process("", cnf); err != nil {
		return nil, fmt.Errorf("error environment variable parsing: %w", err)
	}

	return cnf, nil
}

func (p *FileConfigProvider) loadFromFile(config *Config) error {
	yamlData, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", p.path, err)
	}

	if err := yaml.Unmarshal(yamlData, config); err != nil {
		return fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return nil
}

// Validate reports every failed rule, using yaml paths such as
// "app.name is required".
func (p *FileConfigProvider) Validate(config *Config) error {
	err := p.validate.Struct(config)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		switch fe.Tag() {
		case "required", "required_if":
			msgs = append(msgs, path+" is required")
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of [%s]", path, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s validation", path, fe.Tag()))
		}
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func NewConfigWithProvider(provider ConfigProvider) (*Config, error) {
	cnf, err := provider.Load()
	if err != nil {
		return nil, err
	}

	if err := provider.Validate(cnf); err != nil {
		return nil, err
	}

	return cnf, nil
}

// NewConfig loads the config from DefaultConfigPath and the environment.
func NewConfig() (*Config, error) {
	return NewConfigWithProvider(NewFileConfigProvider(DefaultConfigPath))
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production" || c.App.Env == "prod"
}

func (c *Config) HasGeocoder(name string) bool {
	for _, p := range c.Geocoding.Providers {
		if p == name {
			return true
		}
	}
	return false
}

func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.Timeout) * time.Second
}

func (g GeocodingConfig) RequestTimeout() time.Duration {
	return time.Duration(g.Timeout) * time.Second
}

func (s ServerConfig) Timeouts() (read, write, idle time.Duration) {
	return time.Duration(s.ReadTimeout) * time.Second,
		time.Duration(s.WriteTimeout) * time.Second,
		time.Duration(s.IdleTimeout) * time.Second
}
