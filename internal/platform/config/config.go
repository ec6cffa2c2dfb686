package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StoreDriver    string
	RunMigrations  bool
	MigrationsPath string
	SeedAccounts   string
	LogLevel       slog.Level

	// Rate limiting; RedisURL switches the limiter to a shared store.
	RateLimit string
	RedisURL  string

	CORSAllowedOrigins []string

	// Posting engine
	TxMaxRetries          int
	TxRetryBaseDelay      time.Duration
	AllowEmptyJournalPost bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("SEED_ACCOUNTS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("TX_MAX_RETRIES", 3)
	v.SetDefault("TX_RETRY_BASE_DELAY", "20ms")
	v.SetDefault("ALLOW_EMPTY_JOURNAL_POST", true)
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:           v.GetString("PGSQL_URL"),
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		StoreDriver:           strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		RunMigrations:         v.GetBool("RUN_MIGRATIONS"),
		MigrationsPath:        v.GetString("MIGRATIONS_PATH"),
		SeedAccounts:          v.GetString("SEED_ACCOUNTS"),
		RateLimit:             v.GetString("RATE_LIMIT"),
		RedisURL:              v.GetString("REDIS_URL"),
		TxMaxRetries:          v.GetInt("TX_MAX_RETRIES"),
		AllowEmptyJournalPost: v.GetBool("ALLOW_EMPTY_JOURNAL_POST"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StoreDriver {
	case StoreDriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL must be set when STORE_DRIVER is %q", StoreDriverPostgres)
		}
	case StoreDriverMemory:
		if cfg.IsProduction {
			log.Println("Warning: STORE_DRIVER=memory in production; data is lost on restart.")
		}
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q", cfg.StoreDriver)
	}

	delayStr := v.GetString("TX_RETRY_BASE_DELAY")
	delay, err := time.ParseDuration(delayStr)
	if err != nil || delay < 0 {
		delay = 20 * time.Millisecond
		log.Printf("Warning: Invalid value for TX_RETRY_BASE_DELAY ('%s'). Defaulting to %s.\n", delayStr, delay)
	}
	cfg.TxRetryBaseDelay = delay

	if cfg.TxMaxRetries < 0 {
		log.Printf("Warning: TX_MAX_RETRIES is negative (%d). Defaulting to 0.\n", cfg.TxMaxRetries)
		cfg.TxMaxRetries = 0
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
