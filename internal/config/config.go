// Package config loads the application configuration from a YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvConfigFile names the environment variable that points at a config file
// when no --config flag is given.
const EnvConfigFile = "WHERESRELIGION_CONFIG"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	NoteStore NoteStoreConfig `mapstructure:"notestore"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Map       MapConfig       `mapstructure:"map"`
	Admin     AdminConfig     `mapstructure:"admin"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Templates TemplatesConfig `mapstructure:"templates"`
	Outputs   OutputsConfig   `mapstructure:"outputs"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NoteStoreConfig points at the remote note API.
type NoteStoreConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	PublishedURL string `mapstructure:"published_url"`
	Type         string `mapstructure:"type"`
}

// UploadConfig points at the media upload proxy.
type UploadConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// MapConfig holds the public keys the browser map needs.
type MapConfig struct {
	APIKey    string `mapstructure:"api_key"`
	PlacesKey string `mapstructure:"places_key"`
}

type AdminConfig struct {
	Passkey string `mapstructure:"passkey"`
}

// AuthConfig holds the identity provider settings. They are passed through
// untouched.
type AuthConfig struct {
	Secret        string `mapstructure:"secret"`
	BaseURL       string `mapstructure:"base_url"`
	IssuerBaseURL string `mapstructure:"issuer_base_url"`
	ClientID      string `mapstructure:"client_id"`
	ClientSecret  string `mapstructure:"client_secret"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	// ReadyAttempts is how many times the server pings the database at startup.
	ReadyAttempts uint `mapstructure:"ready_attempts"`
}

type TemplatesConfig struct {
	NoteTemplate string `mapstructure:"note_template" validate:"omitempty,file"`
}

type OutputsConfig struct {
	NoteDirectory string `mapstructure:"note_directory"`
}

var envBindings = []struct {
	key string
	env string
}{
	{"map.api_key", "NEXT_PUBLIC_MAP_KEY"},
	{"map.places_key", "NEXT_PUBLIC_PLACES_KEY"},
	{"upload.base_url", "NEXT_PUBLIC_S3_PROXY_PREFIX"},
	{"notestore.base_url", "NEXT_PUBLIC_RERUM_PREFIX"},
	{"admin.passkey", "NEXT_PUBLIC_ADMIN_PASKEY"},
	{"auth.secret", "AUTH0_SECRET"},
	{"auth.base_url", "AUTH0_BASE_URL"},
	{"auth.issuer_base_url", "AUTH0_ISSUER_BASE_URL"},
	{"auth.client_id", "AUTH0_CLIENT_ID"},
	{"auth.client_secret", "AUTH0_CLIENT_SECRET"},
	{"database.password", "DB_PASSWORD"},
}

type ConfigLoader struct {
	viper     *viper.Viper
	validator *Validator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, err := NewValidator()
	if err != nil {
		return nil, fmt.Errorf("NewValidator() > %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wheresreligion")
	}

	return &ConfigLoader{
		viper:     v,
		validator: validate,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("notestore.type", "message")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "wheresreligion")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.ready_attempts", 5)
	// The embedded template is used when no file is given
	v.SetDefault("templates.note_template", "")
	v.SetDefault("outputs.note_directory", filepath.Join("outputs", "notes"))

	// Secrets and deployment endpoints come from the environment the web app
	// already uses.
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", b.env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if cfg.NoteStore.PublishedURL == "" && cfg.NoteStore.BaseURL != "" {
		cfg.NoteStore.PublishedURL = cfg.NoteStore.BaseURL + "query"
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
