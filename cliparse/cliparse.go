package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	StoreType    string        `env:"TRUCO_STORE" envDefault:"sqlite" validate:"oneof=memory sqlite postgres redis"`
	DatabaseURL  string        `env:"DATABASE_URL" envDefault:"file:truco.db" validate:"required_if=StoreType sqlite,required_if=StoreType postgres"`
	RedisURL     string        `env:"REDIS_URL" validate:"required_if=StoreType redis"`
	Users        []string      `env:"TRUCO_USERS" envSeparator:","`
	HistoryLimit int           `env:"TRUCO_HISTORY_LIMIT" envDefault:"5" validate:"min=1"`
	ConfirmTTL   time.Duration `env:"TRUCO_CONFIRM_TTL" envDefault:"5m" validate:"min=1s"`
	TimeFormat   string        `env:"TRUCO_TIME_FORMAT" envDefault:"%Y-%m-%d %H:%M:%S" validate:"required"`
	MaxRetries   int           `env:"TRUCO_MAX_RETRIES" envDefault:"5" validate:"min=1"`
	LogFile      string        `env:"LOG_FILE"`
	LogLevel     string        `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
}

// DotEnvFile is loaded, when present, before reading the environment
var DotEnvFile = ".env"

// ParseFlags reads the configuration from .env, the environment and flags,
// in increasing order of precedence
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Values already in the environment win over .env
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("wcf-truco", flag.ContinueOnError)

	// Storage
	fs.StringVar(&cfg.StoreType, "t", cfg.StoreType, "Store type (memory, sqlite, postgres or redis)")
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Database URL for sqlite or postgres")
	fs.StringVar(&cfg.RedisURL, "redis", cfg.RedisURL, "Redis URL")
	fs.IntVar(&cfg.MaxRetries, "retries", cfg.MaxRetries, "Attempts per update before giving up on conflicts")

	// Behaviour
	users := strings.Join(cfg.Users, ",")
	fs.StringVar(&users, "users", users, "Comma separated users allowed in; empty allows anyone")
	fs.IntVar(&cfg.HistoryLimit, "history", cfg.HistoryLimit, "Ended sessions shown by history")
	fs.DurationVar(&cfg.ConfirmTTL, "confirm-ttl", cfg.ConfirmTTL, "How long an 'end' waits for confirmation")
	fs.StringVar(&cfg.TimeFormat, "time-format", cfg.TimeFormat, "strftime layout for timestamps")

	// Logging
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Write JSON logs to this rotated file instead of stderr")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.Users = splitUsers(users)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func splitUsers(s string) []string {
	var out []string
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
