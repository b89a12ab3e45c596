package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              int
	DatabaseURL       string
	DatabaseType      string
	AdminPasswordHash string
	AdminTokenSecret  string
	AdminTokenTTL     time.Duration
	LogSalt           string
	RegionCatalog     string
	LogFormat         string
}

const (
	LogFormatTint = "tint"
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// ParseFlags validates flags and fills the rest from the environment.
// A .env file in the working directory is loaded first if present.
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// Missing .env is fine; real env vars always win over it.
	_ = godotenv.Load()

	fs := flag.NewFlagSet("region-survey", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL or sqlite file path")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminPasswordHash, "admin-hash", "", "bcrypt hash of the admin password (prefer env)")
	fs.StringVar(&cfg.AdminTokenSecret, "token-secret", "", "Admin token signing secret (prefer env)")
	fs.DurationVar(&cfg.AdminTokenTTL, "token-ttl", 0, "Admin token lifetime")
	fs.StringVar(&cfg.LogSalt, "log-salt", "", "Salt for hashing client IPs in logs")

	fs.StringVar(&cfg.RegionCatalog, "catalog", "", "YAML region catalog to seed on startup")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (tint, json or text)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminPasswordHash == "" {
		cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	}
	if cfg.AdminPasswordHash == "" {
		return Config{}, errors.New("ADMIN_PASSWORD_HASH required")
	}

	if cfg.AdminTokenSecret == "" {
		cfg.AdminTokenSecret = os.Getenv("ADMIN_TOKEN_SECRET")
	}
	if cfg.AdminTokenSecret == "" {
		return Config{}, errors.New("ADMIN_TOKEN_SECRET required")
	}

	if cfg.AdminTokenTTL == 0 {
		if ttlStr := os.Getenv("ADMIN_TOKEN_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid ADMIN_TOKEN_TTL env variable")
			}
			cfg.AdminTokenTTL = ttl
		} else {
			cfg.AdminTokenTTL = 12 * time.Hour
		}
	}
	if cfg.AdminTokenTTL <= 0 {
		return Config{}, errors.New("admin token TTL must be positive")
	}

	// Optional
	if cfg.LogSalt == "" {
		cfg.LogSalt = os.Getenv("LOG_SALT")
	}
	if cfg.RegionCatalog == "" {
		cfg.RegionCatalog = os.Getenv("REGION_CATALOG")
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
		if cfg.LogFormat == "" {
			cfg.LogFormat = LogFormatTint
		}
	}
	switch cfg.LogFormat {
	case LogFormatTint, LogFormatJSON, LogFormatText:
	default:
		return Config{}, fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}

	return cfg, nil
}
