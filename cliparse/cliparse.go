package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"

	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	PageSize       int
	CacheBackend   string
	CacheTTL       time.Duration
	RedisAddr      string
	Locale         string
	LogLevel       string
	LogEncoding    string
	AllowedOrigins []string
	EnableIngest   bool
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// A missing .env is fine; values may come from the real environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	fs := flag.NewFlagSet("rekap", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Table and cache tuning
	fs.IntVar(&cfg.PageSize, "page-size", 0, "Rows per statistics page")
	fs.StringVar(&cfg.CacheBackend, "cache", "", "Record cache backend (memory or redis)")
	fs.DurationVar(&cfg.CacheTTL, "cache-ttl", 0, "Record cache TTL")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "Redis address host:port")
	fs.StringVar(&cfg.Locale, "locale", "", "Collation locale for column ordering")
	fs.BoolVar(&cfg.EnableIngest, "enable-ingest", false, "Mount POST /records")

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
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	if cfg.PageSize == 0 {
		if sizeStr := os.Getenv("PAGE_SIZE"); sizeStr != "" {
			size, err := strconv.Atoi(sizeStr)
			if err != nil {
				return Config{}, errors.New("invalid PAGE_SIZE env variable")
			}
			cfg.PageSize = size
		} else {
			cfg.PageSize = 30
		}
	}
	if cfg.PageSize < 1 {
		return Config{}, errors.New("page size must be positive")
	}

	if cfg.CacheBackend == "" {
		cfg.CacheBackend = envDefault("CACHE_BACKEND", CacheMemory)
	}
	if cfg.CacheBackend != CacheMemory && cfg.CacheBackend != CacheRedis {
		return Config{}, errors.New("CACHE_BACKEND must be memory or redis")
	}

	if cfg.CacheTTL == 0 {
		if ttlStr := os.Getenv("CACHE_TTL"); ttlStr != "" {
			ttl, err := time.ParseDuration(ttlStr)
			if err != nil {
				return Config{}, errors.New("invalid CACHE_TTL env variable")
			}
			cfg.CacheTTL = ttl
		} else {
			cfg.CacheTTL = 5 * time.Minute
		}
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}
	if cfg.CacheBackend == CacheRedis && cfg.RedisAddr == "" {
		return Config{}, errors.New("REDIS_ADDR required for redis cache")
	}

	if cfg.Locale == "" {
		cfg.Locale = envDefault("LOCALE", "id")
	}

	if !cfg.EnableIngest {
		if v := os.Getenv("ENABLE_INGEST"); v != "" {
			enabled, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid ENABLE_INGEST env variable")
			}
			cfg.EnableIngest = enabled
		}
	}

	// Logging and CORS are env only
	cfg.LogLevel = envDefault("LOG_LEVEL", "info")
	cfg.LogEncoding = envDefault("LOG_ENCODING", "json")
	cfg.AllowedOrigins = splitList(envDefault("CORS_ORIGINS", "*"))

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
