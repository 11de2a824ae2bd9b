package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "Photo-Store-Secret-Key-0123456789"

const testYAML = `app:
  name: "photostore"
  base_url: "https://shop.example.com/"
  asset_base_url: "https://cdn.example.com/"
server:
  host: "127.0.0.1"
  port: 3000
  mode: "release"
  timeout: "15s"
  cors:
    allow_origins: ["https://shop.example.com"]
    allow_credentials: true
    max_age: "12h"
  rate_limit:
    enabled: true
    rps: 20
    burst: 40
database:
  driver: "postgres"
  postgres:
    host: "db.example.com"
    port: 5433
    user: "photostore"
    password: "secret"
    dbname: "photostore"
    sslmode: "require"
  pool:
    max_idle_conns: 5
    max_open_conns: 50
    conn_max_lifetime: "30m"
log:
  level: "INFO"
  format: "json"
auth:
  jwt_secret: "` + testSecret + `"
  token_expiry: "72h"
payment:
  secret_key: "sk_test_123"
  webhook_secret: "whsec_123"
  currency: "USD"
events:
  brokers: ["kafka-1:9092", " ", "kafka-2:9092"]
metrics:
  enabled: true
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

// validConfig returns a minimal debug configuration that passes Validate.
func validConfig() *Config {
	return &Config{
		App:      AppConfig{BaseURL: "http://localhost:3000"},
		Server:   ServerConfig{Host: "localhost", Port: 8080, Mode: "debug"},
		Database: DatabaseConfig{Driver: "sqlite", SQLite: SQLiteConfig{Path: "data/photostore.db"}},
		Log:      LogConfig{Level: "debug", Format: "text"},
		Auth:     AuthConfig{JWTSecret: testSecret},
	}
}

func TestLoad_FullYAML(t *testing.T) {
	cfg, err := Load(writeTestConfig(t, testYAML))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	checks := []struct {
		name      string
		got, want any
	}{
		{"App.BaseURL", cfg.App.BaseURL, "https://shop.example.com"},
		{"App.AssetBaseURL", cfg.App.AssetBaseURL, "https://cdn.example.com"},
		{"Server.Port", cfg.Server.Port, 3000},
		{"Server.Mode", cfg.Server.Mode, "release"},
		{"Server.CORS.MaxAge", cfg.Server.CORS.MaxAge, "12h"},
		{"Server.CORS.AllowCredentials", cfg.Server.CORS.AllowCredentials, true},
		{"Server.RateLimit.Burst", cfg.Server.RateLimit.Burst, 40},
		{"Database.Postgres.Port", cfg.Database.Postgres.Port, 5433},
		{"Database.Pool.MaxOpenConns", cfg.Database.Pool.MaxOpenConns, 50},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Auth.TokenExpiry", cfg.Auth.TokenExpiry, "72h"},
		{"Auth.CookieName", cfg.Auth.CookieName, "token"},
		{"Payment.Currency", cfg.Payment.Currency, "usd"},
		{"Payment.SuccessPath", cfg.Payment.SuccessPath, "/checkout/success"},
		{"Payment.CancelPath", cfg.Payment.CancelPath, "/checkout/cancel"},
		{"Events.Brokers", strings.Join(cfg.Events.Brokers, ","), "kafka-1:9092,kafka-2:9092"},
		{"Events.Topic", cfg.Events.Topic, "photostore.orders"},
		{"Metrics.Path", cfg.Metrics.Path, "/metrics"},
		{"Metrics.Namespace", cfg.Metrics.Namespace, "photostore"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeTestConfig(t, testYAML)

	t.Setenv("APP__SERVER__PORT", "9090")
	t.Setenv("APP__SERVER__MODE", "debug")
	t.Setenv("APP__DATABASE__DRIVER", "sqlite")
	t.Setenv("APP__DATABASE__SQLITE__PATH", "data/override.db")
	t.Setenv("APP__DATABASE__POOL__MAX_IDLE_CONNS", "20")
	t.Setenv("APP__PAYMENT__WEBHOOK_SECRET", "whsec_from_env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Server.Mode != "debug" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.SQLite.Path != "data/override.db" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Database.Pool.MaxIdleConns != 20 {
		t.Errorf("Pool.MaxIdleConns = %d, want 20", cfg.Database.Pool.MaxIdleConns)
	}
	if cfg.Payment.WebhookSecret != "whsec_from_env" {
		t.Errorf("Payment.WebhookSecret = %q", cfg.Payment.WebhookSecret)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
	if _, err := Load(writeTestConfig(t, "server: [unterminated")); err == nil {
		t.Error("Load() of invalid YAML succeeded")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "APP__PAYMENT__SECRET_KEY=sk_from_dotenv\nPHOTOSTORE_PRESET=from_file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PHOTOSTORE_PRESET", "from_process")
	t.Setenv("APP__PAYMENT__SECRET_KEY", "")
	os.Unsetenv("APP__PAYMENT__SECRET_KEY")

	if err := LoadDotEnv(filepath.Join(dir, "absent.env"), path); err != nil {
		t.Fatalf("LoadDotEnv() error: %v", err)
	}
	if got := os.Getenv("APP__PAYMENT__SECRET_KEY"); got != "sk_from_dotenv" {
		t.Errorf("dotenv value = %q", got)
	}
	if got := os.Getenv("PHOTOSTORE_PRESET"); got != "from_process" {
		t.Errorf("existing variable overridden: %q", got)
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg.App.Name != "photostore" || cfg.Auth.TokenExpiry != "168h" || cfg.Payment.Currency != "usd" {
		t.Errorf("defaults not applied: app=%+v auth=%+v payment=%+v", cfg.App, cfg.Auth, cfg.Payment)
	}
	if len(cfg.Events.Brokers) != 0 {
		t.Errorf("brokers = %v, want none", cfg.Events.Brokers)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad mode", func(c *Config) { c.Server.Mode = "prod" }, "server.mode"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"blank host", func(c *Config) { c.Server.Host = "  " }, "server.host"},
		{"bad timeout", func(c *Config) { c.Server.Timeout = "soon" }, "server.timeout"},
		{"negative cors max age", func(c *Config) { c.Server.CORS.MaxAge = "-1h" }, "server.cors.max_age"},
		{"rate limit without rps", func(c *Config) { c.Server.RateLimit = RateLimitConfig{Enabled: true, Burst: 1} }, "rate_limit.rps"},
		{"rate limit without burst", func(c *Config) { c.Server.RateLimit = RateLimitConfig{Enabled: true, RPS: 1} }, "rate_limit.burst"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"sqlite without path", func(c *Config) { c.Database.SQLite.Path = "" }, "sqlite.path"},
		{"postgres without host", func(c *Config) {
			c.Database = DatabaseConfig{Driver: "postgres", Postgres: PostgresConfig{Port: 5432, User: "u", DBName: "d", SSLMode: "disable"}}
		}, "postgres.host"},
		{"postgres bad sslmode", func(c *Config) {
			c.Database = DatabaseConfig{Driver: "postgres", Postgres: PostgresConfig{Host: "h", Port: 5432, User: "u", DBName: "d", SSLMode: "maybe"}}
		}, "sslmode"},
		{"bad pool lifetime", func(c *Config) { c.Database.Pool.ConnMaxLifetime = "0s" }, "conn_max_lifetime"},
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = "" }, "auth.jwt_secret is required"},
		{"short secret", func(c *Config) { c.Auth.JWTSecret = "short" }, "at least 32"},
		{"bad token expiry", func(c *Config) { c.Auth.TokenExpiry = "forever" }, "auth.token_expiry"},
		{"missing base url", func(c *Config) { c.App.BaseURL = "" }, "app.base_url is required"},
		{"relative base url", func(c *Config) { c.App.BaseURL = "shop.example.com" }, "app.base_url"},
		{"bad currency", func(c *Config) { c.Payment.Currency = "dollars" }, "payment.currency"},
		{"relative success path", func(c *Config) { c.Payment.SuccessPath = "done" }, "payment.success_path"},
		{"relative metrics path", func(c *Config) { c.Metrics.Path = "metrics" }, "metrics.path"},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReleaseMode(t *testing.T) {
	release := func() *Config {
		cfg := validConfig()
		cfg.Server.Mode = "release"
		cfg.Payment = PaymentConfig{SecretKey: "sk_live", WebhookSecret: "whsec_live"}
		return cfg
	}

	if err := release().Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"weak secret", func(c *Config) { c.Auth.JWTSecret = strings.Repeat("a", 40) }, "character classes"},
		{"no stripe key", func(c *Config) { c.Payment.SecretKey = "" }, "payment.secret_key"},
		{"no webhook secret", func(c *Config) { c.Payment.WebhookSecret = " " }, "payment.webhook_secret"},
		{"postgres without tls", func(c *Config) {
			c.Database = DatabaseConfig{Driver: "postgres", Postgres: PostgresConfig{Host: "h", Port: 5432, User: "u", DBName: "d", SSLMode: "disable"}}
		}, "server.mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := release()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	if got := Duration("90s", time.Minute); got != 90*time.Second {
		t.Errorf("Duration(90s) = %v", got)
	}
	if got := Duration("", time.Minute); got != time.Minute {
		t.Errorf("Duration(empty) = %v", got)
	}
}

func TestCountSecretClasses(t *testing.T) {
	tests := []struct {
		secret string
		want   int
	}{
		{"", 0},
		{"abc", 1},
		{"abcDEF", 2},
		{"abcDEF123", 3},
		{"abcDEF123!@#", 4},
	}
	for _, tt := range tests {
		if got := CountSecretClasses(tt.secret); got != tt.want {
			t.Errorf("CountSecretClasses(%q) = %d, want %d", tt.secret, got, tt.want)
		}
	}
}
