package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// SourceType identifies the catalog backend
type SourceType string

const (
	SourceTMDB     SourceType = "tmdb"
	SourceIndex    SourceType = "index"
	SourcePostgres SourceType = "postgres"
)

// Config holds all application configuration
type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Index    IndexConfig    `mapstructure:"index"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Search   SearchConfig   `mapstructure:"search"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CatalogConfig selects and tunes the catalog backend
type CatalogConfig struct {
	Source       SourceType    `mapstructure:"source" validate:"required,oneof=tmdb index postgres"`
	PageSize     int           `mapstructure:"page_size" validate:"min=1,max=100"` // index and postgres only
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" validate:"gt=0"`
}

// TMDBConfig holds The Movie Database API settings
type TMDBConfig struct {
	APIKey       string `mapstructure:"api_key"`      // v3 key, sent as a query parameter
	AccessToken  string `mapstructure:"access_token"` // v4 read token, sent as a bearer header
	BaseURL      string `mapstructure:"base_url" validate:"required,url"`
	ImageBaseURL string `mapstructure:"image_base_url"`
	Language     string `mapstructure:"language"`
	IncludeAdult bool   `mapstructure:"include_adult"`
}

// IndexConfig holds the local index location
type IndexConfig struct {
	Path string `mapstructure:"path"`
}

// PostgresConfig holds the SQL catalog connection
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns" validate:"min=0"`
}

// SearchConfig holds search behavior settings
type SearchConfig struct {
	SeedQuery string        `mapstructure:"seed_query"`
	Debounce  time.Duration `mapstructure:"debounce" validate:"gt=0"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowOverview bool `mapstructure:"show_overview"`
	ShowPosters  bool `mapstructure:"show_posters"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=DEBUG INFO WARN WARNING ERROR debug info warn warning error"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source:       SourceTMDB,
			PageSize:     20,
			FetchTimeout: 15 * time.Second,
		},
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Language:     "en-US",
		},
		Index: IndexConfig{
			Path: filepath.Join(defaultDataPath(), "index"),
		},
		Search: SearchConfig{
			SeedQuery: "return",
			Debounce:  750 * time.Millisecond,
		},
		UI: UIConfig{
			ShowOverview: true,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "cinesearch.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "cinesearch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinesearch")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinesearch")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinesearch")
	}
}

// newViper builds a viper instance with the defaults registered, so that
// environment overrides work for keys absent from the config file
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(defaultConfigPath())
	v.AddConfigPath(".")

	v.SetEnvPrefix("CINESEARCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, DefaultConfig())
	return v
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.source", string(cfg.Catalog.Source))
	v.SetDefault("catalog.page_size", cfg.Catalog.PageSize)
	v.SetDefault("catalog.fetch_timeout", cfg.Catalog.FetchTimeout.String())

	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.access_token", cfg.TMDB.AccessToken)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", cfg.TMDB.Language)
	v.SetDefault("tmdb.include_adult", cfg.TMDB.IncludeAdult)

	v.SetDefault("index.path", cfg.Index.Path)

	v.SetDefault("postgres.url", cfg.Postgres.URL)
	v.SetDefault("postgres.max_conns", cfg.Postgres.MaxConns)

	v.SetDefault("search.seed_query", cfg.Search.SeedQuery)
	v.SetDefault("search.debounce", cfg.Search.Debounce.String())

	v.SetDefault("ui.show_overview", cfg.UI.ShowOverview)
	v.SetDefault("ui.show_posters", cfg.UI.ShowPosters)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from .env, the config file and environment
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := newViper()

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and per-source requirements
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]
			return fmt.Errorf("invalid config field '%s': failed '%s' check", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Catalog.Source {
	case SourceTMDB:
		if c.TMDB.APIKey == "" && c.TMDB.AccessToken == "" {
			return errors.New("tmdb source requires tmdb.api_key or tmdb.access_token")
		}
	case SourceIndex:
		if c.Index.Path == "" {
			return errors.New("index source requires index.path")
		}
	case SourcePostgres:
		if c.Postgres.URL == "" {
			return errors.New("postgres source requires postgres.url")
		}
	}
	return nil
}

// SaveConfig writes cfg to the default config file and returns its path
func SaveConfig(cfg *Config) (string, error) {
	configPath := defaultConfigPath()

	// Ensure config directory exists
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, cfg)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configFile, nil
}
