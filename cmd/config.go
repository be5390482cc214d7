package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the whole service configuration, read from the environment.
type Config struct {
	// HTTP
	HTTPPort        string        `env:"HTTP_PORT"        envDefault:"8080"`
	ServiceName     string        `env:"SERVICE_NAME"     envDefault:"cleaner-dispatch"`
	ServiceVersion  string        `env:"SERVICE_VERSION"  envDefault:"dev"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"  envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Database
	DBHost         string        `env:"DB_HOST"           envDefault:"localhost"`
	DBPort         string        `env:"DB_PORT"           envDefault:"5432"`
	DBUser         string        `env:"DB_USER"`
	DBPassword     string        `env:"DB_PASSWORD"`
	DBName         string        `env:"DB_NAME"`
	DBSslMode      string        `env:"DB_SSLMODE"        envDefault:"disable"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"10"`
	DBLogLevel     string        `env:"DB_LOG_LEVEL"      envDefault:"warn"`
	StorageTimeout time.Duration `env:"STORAGE_TIMEOUT"   envDefault:"3s"`

	// Pricing
	PricingHourlyRateCents int `env:"PRICING_HOURLY_RATE_CENTS" envDefault:"4500"`

	// Presence
	PresenceTTL       time.Duration `env:"PRESENCE_TTL"        envDefault:"15m"`
	PresenceRateLimit float64       `env:"PRESENCE_RATE_LIMIT" envDefault:"5"`
	PresenceRateBurst int           `env:"PRESENCE_RATE_BURST" envDefault:"10"`

	// Background jobs
	DispatchSweepSchedule  string `env:"DISPATCH_SWEEP_SCHEDULE"  envDefault:"*/30 * * * * *"`
	DispatchSweepBatch     int    `env:"DISPATCH_SWEEP_BATCH"     envDefault:"50"`
	PresenceExpirySchedule string `env:"PRESENCE_EXPIRY_SCHEDULE" envDefault:"0 * * * * *"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// Events. An empty AMQPURL logs events instead of publishing them.
	AMQPURL      string `env:"AMQP_URL"`
	AMQPExchange string `env:"AMQP_EXCHANGE" envDefault:"dispatch.events"`

	// Tracing
	TracingEnabled bool `env:"TRACING_ENABLED" envDefault:"false"`
}

// LoadConfig reads an optional .env file from the working directory and then
// parses the environment. Variables already set win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	var problems []error

	required := map[string]string{
		"DB_HOST": c.DBHost,
		"DB_PORT": c.DBPort,
		"DB_USER": c.DBUser,
		"DB_NAME": c.DBName,
	}
	for _, name := range []string{"DB_HOST", "DB_PORT", "DB_USER", "DB_NAME"} {
		if strings.TrimSpace(required[name]) == "" {
			problems = append(problems, fmt.Errorf("%s is required", name))
		}
	}

	if c.StorageTimeout <= 0 {
		problems = append(problems, errors.New("STORAGE_TIMEOUT must be positive"))
	}
	if c.PricingHourlyRateCents <= 0 {
		problems = append(problems, errors.New("PRICING_HOURLY_RATE_CENTS must be positive"))
	}
	if c.PresenceTTL <= 0 {
		problems = append(problems, errors.New("PRESENCE_TTL must be positive"))
	}
	if c.DispatchSweepBatch <= 0 {
		problems = append(problems, errors.New("DISPATCH_SWEEP_BATCH must be positive"))
	}

	return errors.Join(problems...)
}

// DSN returns the PostgreSQL connection URL.
func (c Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.DBSslMode}}.Encode(),
	}
	return u.String()
}

// HTTPAddr is the listen address of the HTTP server.
func (c Config) HTTPAddr() string {
	return net.JoinHostPort("0.0.0.0", c.HTTPPort)
}
