package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DB        DBConfig        `envconfig:"DB"`
	HTTP      HTTPConfig      `envconfig:"HTTP"`
	GRPC      GRPCConfig      `envconfig:"GRPC"`
	JWT       JWTConfig       `envconfig:"JWT"`
	Auth      AuthConfig      `envconfig:"AUTH"`
	Log       LogConfig       `envconfig:"LOG"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	Driver     string `envconfig:"DRIVER" default:"postgres"`
	SQLitePath string `envconfig:"SQLITE_PATH" default:"catalog.db"`

	Host            string `envconfig:"HOST" default:"postgres"`
	Port            int    `envconfig:"PORT" default:"5432"`
	User            string `envconfig:"USER" default:"catalog"`
	Password        string `envconfig:"PASSWORD" default:"catalog"`
	Name            string `envconfig:"NAME" default:"catalog_db"`
	SSLMode         string `envconfig:"SSLMODE" default:"disable"`
	TimeZone        string `envconfig:"TIMEZONE" default:"UTC"`
	MaxOpenConns    int    `envconfig:"MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int    `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifeTime int    `envconfig:"CONN_MAX_LIFETIME_MIN" default:"30"` // минут
}

type HTTPConfig struct {
	Addr         string        `envconfig:"ADDR" default:":8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
}

type GRPCConfig struct {
	Addr string `envconfig:"ADDR" default:":50051"`
}

type JWTConfig struct {
	Key       string        `envconfig:"KEY"`
	Issuer    string        `envconfig:"ISSUER" default:"provider-catalog"`
	Audience  string        `envconfig:"AUDIENCE" default:"provider-catalog-client"`
	ExpiresIn time.Duration `envconfig:"EXPIRES_IN" default:"60m"`
}

// AuthConfig: единственный пользователь API.
type AuthConfig struct {
	Username string `envconfig:"USERNAME" default:"admin"`
	Password string `envconfig:"PASSWORD"`
}

type LogConfig struct {
	Level string `envconfig:"LEVEL" default:"info"`
}

type RateLimitConfig struct {
	RPS   float64 `envconfig:"RPS" default:"50"`
	Burst int     `envconfig:"BURST" default:"100"`
}

// Load читает .env (если он есть), затем переменные окружения.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate: минимальная проверка того, без чего сервис не поднимется.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres:
		if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
			return fmt.Errorf("invalid DB config: host/user/name must not be empty")
		}
	case DriverSQLite:
		if c.DB.SQLitePath == "" {
			return fmt.Errorf("invalid DB config: sqlite path must not be empty")
		}
	default:
		return fmt.Errorf("invalid DB config: unknown driver %q", c.DB.Driver)
	}

	if c.JWT.Key == "" {
		return fmt.Errorf("invalid JWT config: JWT_KEY is required")
	}
	if c.JWT.ExpiresIn <= 0 {
		return fmt.Errorf("invalid JWT config: expiry must be positive")
	}
	return nil
}
