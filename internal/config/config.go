package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config is the top-level application configuration.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Auth     AuthConfig     `koanf:"auth"`
	Payment  PaymentConfig  `koanf:"payment"`
	Events   EventsConfig   `koanf:"events"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// AppConfig holds settings shared by the storefront-facing modules.
type AppConfig struct {
	Name string `koanf:"name"`
	// BaseURL is the public storefront origin used for payment redirects.
	BaseURL string `koanf:"base_url"`
	// AssetBaseURL prefixes stored upload paths in API responses.
	AssetBaseURL string `koanf:"asset_base_url"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host      string          `koanf:"host"`
	Port      int             `koanf:"port"`
	Mode      string          `koanf:"mode"`
	Timeout   string          `koanf:"timeout"`
	CORS      CORSConfig      `koanf:"cors"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
}

// CORSConfig holds CORS middleware settings.
type CORSConfig struct {
	AllowOrigins     []string `koanf:"allow_origins"`
	AllowMethods     []string `koanf:"allow_methods"`
	AllowHeaders     []string `koanf:"allow_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           string   `koanf:"max_age"`
}

// RateLimitConfig holds rate limiting settings.
type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Driver      string         `koanf:"driver"`
	AutoMigrate bool           `koanf:"auto_migrate"`
	SQLite      SQLiteConfig   `koanf:"sqlite"`
	Postgres    PostgresConfig `koanf:"postgres"`
	Pool        PoolConfig     `koanf:"pool"`
}

// SQLiteConfig holds SQLite-specific settings.
type SQLiteConfig struct {
	Path string `koanf:"path"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DBName   string `koanf:"dbname"`
	SSLMode  string `koanf:"sslmode"`
}

// PoolConfig holds database connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int    `koanf:"max_idle_conns"`
	MaxOpenConns    int    `koanf:"max_open_conns"`
	ConnMaxLifetime string `koanf:"conn_max_lifetime"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level           string `koanf:"level"`
	Format          string `koanf:"format"`
	Color           *bool  `koanf:"color"`
	FilePath        string `koanf:"file_path"`
	MaxSizeMB       int    `koanf:"max_size_mb"`
	RetentionDays   int    `koanf:"retention_days"`
	MaxBackups      int    `koanf:"max_backups"`
	CompressRotated *bool  `koanf:"compress_rotated"`
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret    string `koanf:"jwt_secret"`
	TokenExpiry  string `koanf:"token_expiry"`
	CookieName   string `koanf:"cookie_name"`
	CookieSecure bool   `koanf:"cookie_secure"`
}

// PaymentConfig holds hosted checkout settings.
type PaymentConfig struct {
	SecretKey     string `koanf:"secret_key"`
	WebhookSecret string `koanf:"webhook_secret"`
	Currency      string `koanf:"currency"`
	SuccessPath   string `koanf:"success_path"`
	CancelPath    string `koanf:"cancel_path"`
}

// EventsConfig holds message broker settings. No brokers disables publishing.
type EventsConfig struct {
	Brokers []string `koanf:"brokers"`
	Topic   string   `koanf:"topic"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Path      string `koanf:"path"`
	Namespace string `koanf:"namespace"`
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped so a checked-out tree without .env still starts.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from a YAML file and overlays environment variables.
// Environment variables use the prefix "APP__" and double-underscore as the
// hierarchy separator. Single underscores are preserved as part of the key name.
// For example, APP__SERVER__PORT=9090 overrides server.port and
// APP__PAYMENT__WEBHOOK_SECRET overrides payment.webhook_secret.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}

	if err := k.Load(env.Provider("APP__", ".", func(s string) string {
		key := strings.TrimPrefix(s, "APP__")
		key = strings.ToLower(key)
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints and supported values, filling in
// defaults for optional fields.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateDatabase(); err != nil {
		return err
	}
	if err := c.validateAuth(); err != nil {
		return err
	}
	if err := c.validateApp(); err != nil {
		return err
	}
	if err := c.validatePayment(); err != nil {
		return err
	}
	c.validateEvents()
	if err := c.validateMetrics(); err != nil {
		return err
	}
	return c.validateLog()
}

func (c *Config) validateServer() error {
	mode := strings.TrimSpace(c.Server.Mode)
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		c.Server.Mode = mode
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", c.Server.Mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", c.Server.Port)
	}

	host := strings.TrimSpace(c.Server.Host)
	if host == "" {
		return fmt.Errorf("server.host is required")
	}
	c.Server.Host = host

	c.Server.Timeout = strings.TrimSpace(c.Server.Timeout)
	if _, err := optionalDuration("server.timeout", c.Server.Timeout); err != nil {
		return err
	}
	c.Server.CORS.MaxAge = strings.TrimSpace(c.Server.CORS.MaxAge)
	if _, err := optionalDuration("server.cors.max_age", c.Server.CORS.MaxAge); err != nil {
		return err
	}

	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RPS <= 0 {
			return fmt.Errorf("invalid server.rate_limit.rps %v: must be positive when rate limiting is enabled", c.Server.RateLimit.RPS)
		}
		if c.Server.RateLimit.Burst <= 0 {
			return fmt.Errorf("invalid server.rate_limit.burst %d: must be positive when rate limiting is enabled", c.Server.RateLimit.Burst)
		}
	}
	return nil
}

func (c *Config) validateDatabase() error {
	switch c.Database.Driver {
	case "sqlite":
		sqlitePath := strings.TrimSpace(c.Database.SQLite.Path)
		if sqlitePath == "" {
			return fmt.Errorf("database.sqlite.path is required when driver is sqlite")
		}
		c.Database.SQLite.Path = sqlitePath
	case "postgres":
		pg := &c.Database.Postgres
		pg.Host = strings.TrimSpace(pg.Host)
		pg.User = strings.TrimSpace(pg.User)
		pg.DBName = strings.TrimSpace(pg.DBName)
		pg.SSLMode = strings.TrimSpace(pg.SSLMode)
		if pg.Host == "" {
			return fmt.Errorf("database.postgres.host is required when driver is postgres")
		}
		if pg.Port < 1 || pg.Port > 65535 {
			return fmt.Errorf("invalid database.postgres.port %d: must be between 1 and 65535", pg.Port)
		}
		if pg.User == "" {
			return fmt.Errorf("database.postgres.user is required when driver is postgres")
		}
		if pg.DBName == "" {
			return fmt.Errorf("database.postgres.dbname is required when driver is postgres")
		}
		switch pg.SSLMode {
		case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
		default:
			return fmt.Errorf("invalid database.postgres.sslmode %q: must be one of %q, %q, %q, %q, %q, %q", pg.SSLMode, "disable", "allow", "prefer", "require", "verify-ca", "verify-full")
		}
		if c.Server.Mode == gin.ReleaseMode {
			switch pg.SSLMode {
			case "require", "verify-ca", "verify-full":
			default:
				return fmt.Errorf("invalid database.postgres.sslmode %q for server.mode %q: must be one of %q, %q, %q", pg.SSLMode, gin.ReleaseMode, "require", "verify-ca", "verify-full")
			}
		}
	default:
		return fmt.Errorf("invalid database.driver %q: must be one of %q, %q", c.Database.Driver, "sqlite", "postgres")
	}

	c.Database.Pool.ConnMaxLifetime = strings.TrimSpace(c.Database.Pool.ConnMaxLifetime)
	_, err := optionalDuration("database.pool.conn_max_lifetime", c.Database.Pool.ConnMaxLifetime)
	return err
}

func (c *Config) validateAuth() error {
	secret := strings.TrimSpace(c.Auth.JWTSecret)
	if secret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if len(secret) < 32 {
		return fmt.Errorf("invalid auth.jwt_secret: must be at least 32 characters")
	}
	if c.Server.Mode == gin.ReleaseMode && CountSecretClasses(secret) < 3 {
		return fmt.Errorf("auth.jwt_secret must include at least 3 character classes (lowercase, uppercase, digit, symbol) in release mode")
	}
	c.Auth.JWTSecret = secret

	c.Auth.TokenExpiry = strings.TrimSpace(c.Auth.TokenExpiry)
	if c.Auth.TokenExpiry == "" {
		c.Auth.TokenExpiry = "168h"
	}
	if _, err := optionalDuration("auth.token_expiry", c.Auth.TokenExpiry); err != nil {
		return err
	}

	c.Auth.CookieName = strings.TrimSpace(c.Auth.CookieName)
	if c.Auth.CookieName == "" {
		c.Auth.CookieName = "token"
	}
	return nil
}

func (c *Config) validateApp() error {
	c.App.Name = strings.TrimSpace(c.App.Name)
	if c.App.Name == "" {
		c.App.Name = "photostore"
	}

	base := strings.TrimRight(strings.TrimSpace(c.App.BaseURL), "/")
	if base == "" {
		return fmt.Errorf("app.base_url is required")
	}
	if u, err := url.Parse(base); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid app.base_url %q: must be an absolute http(s) URL", c.App.BaseURL)
	}
	c.App.BaseURL = base
	c.App.AssetBaseURL = strings.TrimRight(strings.TrimSpace(c.App.AssetBaseURL), "/")
	return nil
}

func (c *Config) validatePayment() error {
	p := &c.Payment
	p.SecretKey = strings.TrimSpace(p.SecretKey)
	p.WebhookSecret = strings.TrimSpace(p.WebhookSecret)
	if c.Server.Mode == gin.ReleaseMode {
		if p.SecretKey == "" {
			return fmt.Errorf("payment.secret_key is required in release mode")
		}
		if p.WebhookSecret == "" {
			return fmt.Errorf("payment.webhook_secret is required in release mode")
		}
	}

	p.Currency = strings.ToLower(strings.TrimSpace(p.Currency))
	if p.Currency == "" {
		p.Currency = "usd"
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("invalid payment.currency %q: must be a 3-letter ISO code", c.Payment.Currency)
	}

	for _, f := range []struct {
		name  string
		value *string
		def   string
	}{
		{"payment.success_path", &p.SuccessPath, "/checkout/success"},
		{"payment.cancel_path", &p.CancelPath, "/checkout/cancel"},
	} {
		v := strings.TrimSpace(*f.value)
		if v == "" {
			v = f.def
		}
		if !strings.HasPrefix(v, "/") {
			return fmt.Errorf("invalid %s %q: must start with '/'", f.name, *f.value)
		}
		*f.value = v
	}
	return nil
}

func (c *Config) validateEvents() {
	brokers := make([]string, 0, len(c.Events.Brokers))
	for _, b := range c.Events.Brokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	c.Events.Brokers = brokers
	c.Events.Topic = strings.TrimSpace(c.Events.Topic)
	if c.Events.Topic == "" {
		c.Events.Topic = "photostore.orders"
	}
}

func (c *Config) validateMetrics() error {
	c.Metrics.Path = strings.TrimSpace(c.Metrics.Path)
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics.path %q: must start with '/'", c.Metrics.Path)
	}
	c.Metrics.Namespace = strings.TrimSpace(c.Metrics.Namespace)
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = "photostore"
	}
	return nil
}

func (c *Config) validateLog() error {
	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	switch level {
	case "debug", "info", "warn", "error":
		c.Log.Level = level
	default:
		return fmt.Errorf("invalid log.level %q: must be one of %q, %q, %q, %q", c.Log.Level, "debug", "info", "warn", "error")
	}

	format := strings.ToLower(strings.TrimSpace(c.Log.Format))
	switch format {
	case "text", "json":
		c.Log.Format = format
	default:
		return fmt.Errorf("invalid log.format %q: must be one of %q, %q", c.Log.Format, "text", "json")
	}
	return nil
}

// optionalDuration parses v when set. Empty means unset and returns 0.
func optionalDuration(name, v string) (time.Duration, error) {
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be greater than 0", name, v)
	}
	return d, nil
}

// Duration returns the parsed value of a duration field that Validate
// already accepted, or def when the field is unset.
func Duration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// CountSecretClasses counts how many character classes (lowercase, uppercase,
// digit, symbol) are present in the given secret string.
func CountSecretClasses(secret string) int {
	var lower, upper, digit, symbol bool
	for _, r := range secret {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}

	classes := 0
	for _, has := range []bool{lower, upper, digit, symbol} {
		if has {
			classes++
		}
	}
	return classes
}
