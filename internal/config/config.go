package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`

	// Shared settings
	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`

	// Client-side settings
	ServerURL    string `env:"-"`
	ClientDBPath string `env:"CLIENT_DB_PATH"`
	TokenFile    string `env:"TOKEN_FILE"`
	Version      bool   `env:"-"` // show client version and exit (flag only)
	Verbose      bool   `env:"-"` // client: log sync failures to stderr (flag only)
}

// ErrMissingDSN и ErrMissingSecret — ошибки старта сервера.
var (
	ErrMissingDSN    = errors.New("database DSN is required (DATABASE_URI or -d)")
	ErrMissingSecret = errors.New("auth secret is required (AUTH_SECRET or -auth-secret)")
)

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres:// или путь к sqlite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	// Shared/client flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address of the TaskBuckets server (host:port)")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (client: prefer https scheme for BaseURL)")
	// Client flags
	flag.StringVar(&cfg.ClientDBPath, "client-db", cfg.ClientDBPath, "base directory for per-user client cache DBs")
	flag.StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "path to auth token file (client)")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "log failed mutations to stderr")

	flag.Parse()

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8081"
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	// Fill client defaults if empty
	base, err := os.UserConfigDir()
	if err != nil {
		base, _ = os.UserHomeDir()
	}
	base = filepath.Join(base, "TaskBuckets")
	if cfg.ClientDBPath == "" {
		cfg.ClientDBPath = filepath.Join(base, "users")
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = filepath.Join(base, "auth_token")
	}

	return cfg
}

// ValidateServer проверяет обязательные для сервера параметры.
// Отсутствие строки подключения или секрета — ошибка старта, а не запроса.
func (c *Config) ValidateServer() error {
	if c.DatabaseDSN == "" {
		return ErrMissingDSN
	}
	if c.AuthSecret == "" {
		return ErrMissingSecret
	}
	return nil
}
