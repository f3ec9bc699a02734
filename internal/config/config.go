package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type LookupFunc func(string) (string, bool)

type Profile string

const (
	ProfileDev  Profile = "dev"
	ProfileTest Profile = "test"
	ProfileProd Profile = "prod"
)

// placeholderPassword is the prototype default. Prod startup refuses it.
const placeholderPassword = "your_password"

type Config struct {
	Profile       Profile
	Service       ServiceConfig
	HTTP          HTTPConfig
	Database      DatabaseConfig
	AI            AIConfig
	Archive       ArchiveConfig
	Observability ObservabilityConfig
	Auth          AuthConfig
}

type ServiceConfig struct {
	Name string
}

type HTTPConfig struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Name            string
	User            string
	Password        string
	Port            int
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration
}

// DSN renders the connection parameters as a pgx-compatible URL.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		query := url.Values{}
		query.Set("sslmode", d.SSLMode)
		u.RawQuery = query.Encode()
	}
	return u.String()
}

type AIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

type ArchiveConfig struct {
	Enabled          bool
	Endpoint         string
	Region           string
	Bucket           string
	AccessKeyID      string
	SecretAccessKey  string
	UseSSL           bool
	Prefix           string
	AutoCreateBucket bool
}

type ObservabilityConfig struct {
	LogLevel slog.Level
	LogJSON  bool
}

type AuthConfig struct {
	Required   bool
	StaticKeys string
}

func LoadFromEnv(serviceName string) (Config, error) {
	return Load(serviceName, os.LookupEnv)
}

func Load(serviceName string, lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	profile := ProfileDev
	if raw, ok := lookup("SQLGENIUS_PROFILE"); ok {
		profile = Profile(strings.ToLower(strings.TrimSpace(raw)))
	}
	if !isValidProfile(profile) {
		return Config{}, fmt.Errorf("invalid SQLGENIUS_PROFILE: %q", profile)
	}

	cfg := defaultsForProfile(profile)
	if serviceName != "" {
		cfg.Service.Name = serviceName
	}

	if err := applyString(lookup, "SQLGENIUS_SERVICE_NAME", &cfg.Service.Name); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_HTTP_ADDR", &cfg.HTTP.Address); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLGENIUS_HTTP_READ_TIMEOUT", &cfg.HTTP.ReadTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLGENIUS_HTTP_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLGENIUS_HTTP_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_PG_HOST", &cfg.Database.Host); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_PG_DATABASE", &cfg.Database.Name); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_PG_USER", &cfg.Database.User); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_PG_PASSWORD", &cfg.Database.Password); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SQLGENIUS_PG_PORT", &cfg.Database.Port); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_PG_SSLMODE", &cfg.Database.SSLMode); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SQLGENIUS_PG_MAX_OPEN_CONNS", &cfg.Database.MaxOpenConns); err != nil {
		return Config{}, err
	}
	if err := applyInt(lookup, "SQLGENIUS_PG_MAX_IDLE_CONNS", &cfg.Database.MaxIdleConns); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLGENIUS_PG_CONN_MAX_IDLE_TIME", &cfg.Database.ConnMaxIdleTime); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLGENIUS_PG_CONN_MAX_LIFETIME", &cfg.Database.ConnMaxLifetime); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_AI_BASE_URL", &cfg.AI.BaseURL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_AI_API_KEY", &cfg.AI.APIKey); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_AI_MODEL", &cfg.AI.Model); err != nil {
		return Config{}, err
	}
	if err := applyFloat(lookup, "SQLGENIUS_AI_TEMPERATURE", &cfg.AI.Temperature); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "SQLGENIUS_AI_TIMEOUT", &cfg.AI.Timeout); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SQLGENIUS_ARCHIVE_ENABLED", &cfg.Archive.Enabled); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_ARCHIVE_ENDPOINT", &cfg.Archive.Endpoint); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_ARCHIVE_REGION", &cfg.Archive.Region); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_ARCHIVE_BUCKET", &cfg.Archive.Bucket); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_ARCHIVE_ACCESS_KEY", &cfg.Archive.AccessKeyID); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_ARCHIVE_SECRET_KEY", &cfg.Archive.SecretAccessKey); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SQLGENIUS_ARCHIVE_USE_SSL", &cfg.Archive.UseSSL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_ARCHIVE_PREFIX", &cfg.Archive.Prefix); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SQLGENIUS_ARCHIVE_AUTO_CREATE_BUCKET", &cfg.Archive.AutoCreateBucket); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SQLGENIUS_LOG_JSON", &cfg.Observability.LogJSON); err != nil {
		return Config{}, err
	}
	if err := applyLogLevel(lookup, "SQLGENIUS_LOG_LEVEL", &cfg.Observability.LogLevel); err != nil {
		return Config{}, err
	}
	if err := applyBool(lookup, "SQLGENIUS_AUTH_REQUIRED", &cfg.Auth.Required); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "SQLGENIUS_AUTH_STATIC_KEYS", &cfg.Auth.StaticKeys); err != nil {
		return Config{}, err
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.Service.Name == "" {
		return fmt.Errorf("service name is required")
	}
	if cfg.HTTP.Address == "" {
		return fmt.Errorf("http address is required")
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("SQLGENIUS_PG_HOST is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("SQLGENIUS_PG_DATABASE is required")
	}
	if cfg.Database.User == "" {
		return fmt.Errorf("SQLGENIUS_PG_USER is required")
	}
	if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
		return fmt.Errorf("SQLGENIUS_PG_PORT must be a valid port, got %d", cfg.Database.Port)
	}
	if cfg.Archive.Enabled {
		if cfg.Archive.Endpoint == "" {
			return fmt.Errorf("SQLGENIUS_ARCHIVE_ENDPOINT is required when the archive is enabled")
		}
		if cfg.Archive.Bucket == "" {
			return fmt.Errorf("SQLGENIUS_ARCHIVE_BUCKET is required when the archive is enabled")
		}
	}
	if cfg.Profile != ProfileProd {
		return nil
	}

	// The dev defaults are insecure placeholders, never a prod contract.
	if cfg.Database.Password == "" || cfg.Database.Password == placeholderPassword {
		return fmt.Errorf("SQLGENIUS_PG_PASSWORD must be set to a real credential in the prod profile")
	}
	if strings.TrimSpace(cfg.AI.APIKey) == "" {
		return fmt.Errorf("SQLGENIUS_AI_API_KEY is required in the prod profile")
	}
	if cfg.Auth.Required && strings.TrimSpace(cfg.Auth.StaticKeys) == "" {
		return fmt.Errorf("SQLGENIUS_AUTH_STATIC_KEYS is required when auth is enabled")
	}
	return nil
}

func defaultsForProfile(profile Profile) Config {
	cfg := Config{
		Profile: profile,
		Service: ServiceConfig{Name: "sqlgenius"},
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Name:            "my_local_db",
			User:            "postgres",
			Password:        placeholderPassword,
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxIdleTime: 5 * time.Minute,
			ConnMaxLifetime: 30 * time.Minute,
		},
		AI: AIConfig{
			BaseURL:     "https://api.openai.com",
			Model:       "gpt-4o-mini",
			Temperature: 0.1,
			Timeout:     15 * time.Second,
		},
		Archive: ArchiveConfig{
			Enabled:          false,
			Endpoint:         "localhost:9000",
			Region:           "us-east-1",
			Bucket:           "sqlgenius-exports",
			AccessKeyID:      "minio",
			SecretAccessKey:  "miniostorage",
			UseSSL:           false,
			Prefix:           "exports",
			AutoCreateBucket: true,
		},
		Observability: ObservabilityConfig{
			LogLevel: slog.LevelDebug,
			LogJSON:  true,
		},
		Auth: AuthConfig{
			Required:   false,
			StaticKeys: "",
		},
	}

	switch profile {
	case ProfileTest:
		cfg.HTTP.Address = ":18080"
		cfg.Observability.LogLevel = slog.LevelWarn
	case ProfileProd:
		cfg.Observability.LogLevel = slog.LevelInfo
		cfg.Database.Password = ""
		cfg.Database.SSLMode = "require"
		cfg.Auth.Required = true
		cfg.Archive.UseSSL = true
		cfg.Archive.AutoCreateBucket = false
	}

	return cfg
}

func isValidProfile(profile Profile) bool {
	switch profile {
	case ProfileDev, ProfileTest, ProfileProd:
		return true
	default:
		return false
	}
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyBool(lookup LookupFunc, key string, dst *bool) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyInt(lookup LookupFunc, key string, dst *int) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyFloat(lookup LookupFunc, key string, dst *float64) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = value
	return nil
}

func applyLogLevel(lookup LookupFunc, key string, dst *slog.Level) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	level := strings.ToLower(strings.TrimSpace(raw))
	switch level {
	case "debug":
		*dst = slog.LevelDebug
	case "info":
		*dst = slog.LevelInfo
	case "warn", "warning":
		*dst = slog.LevelWarn
	case "error":
		*dst = slog.LevelError
	default:
		return fmt.Errorf("invalid %s: %q", key, raw)
	}
	return nil
}
