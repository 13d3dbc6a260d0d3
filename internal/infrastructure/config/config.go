package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverRedis    = "redis"
)

type Config struct {
	Port      string `env:"PORT,       default=4000"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info" validate:"oneof=trace debug info warn warning error"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Store StoreConfig
	HTTP  HTTPConfig
	Auth  AuthConfig
}

type StoreConfig struct {
	Driver      string        `env:"STORE_DRIVER,  default=file" validate:"oneof=file sqlite postgres mongo redis"`
	DataFile    string        `env:"DATA_FILE,     default=data/users.json" validate:"required_if=Driver file"`
	Timeout     time.Duration `env:"STORE_TIMEOUT, default=5s" validate:"gt=0"`
	SQLiteDSN   string        `env:"SQLITE_DSN,    default=file:data/users.db" validate:"required_if=Driver sqlite"`
	PostgresURL string        `env:"POSTGRES_URL" validate:"required_if=Driver postgres"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_management"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
	Key  string `env:"REDIS_KEY,  default=user-management:users"`
}

type HTTPConfig struct {
	TLSCertFile     string        `env:"TLS_CERT_FILE,    default=certs/cert.pem"`
	TLSKeyFile      string        `env:"TLS_KEY_FILE,     default=certs/key.pem"`
	StaticDir       string        `env:"STATIC_DIR,       default=../frontend/build"`
	CORSOrigins     []string      `env:"CORS_ORIGINS,     default=*"`
	RateLimitRPS    float64       `env:"RATE_LIMIT_RPS,   default=0" validate:"gte=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s" validate:"gt=0"`
}

type AuthConfig struct {
	JWTSecret  string        `env:"JWT_SECRET" validate:"required_if=AdminGuard true"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h" validate:"gt=0"`
	AdminGuard bool          `env:"ADMIN_GUARD, default=false"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }

func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper and validates it.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
