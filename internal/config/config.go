package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	NATS     NATSConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type StoreConfig struct {
	Backend string
	// SeedDemoData writes the demo companies, students and opportunities at
	// startup. Existing documents with the same ids are overwritten.
	SeedDemoData bool
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration
	RunMigrations         bool
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type JWTConfig struct {
	Secret string
	Issuer string
}

type NATSConfig struct {
	URL           string
	SubjectPrefix string
	ConnTimeout   time.Duration
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}
	optDefault := func(key, def string) string {
		if v := opt(key); v != "" {
			return v
		}
		return def
	}
	optInt := func(key string, def int) int {
		v := opt(key)
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return n
	}
	optDuration := func(key string, def time.Duration) time.Duration {
		v := opt(key)
		if v == "" {
			return def
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	optBool := func(key string, def bool) bool {
		v := opt(key)
		if v == "" {
			return def
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Store = StoreConfig{
		Backend:      strings.ToLower(optDefault("STORE_BACKEND", StoreBackendMemory)),
		SeedDemoData: optBool("SEED_DEMO_DATA", false),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  optDefault("DB_SSL_MODE", "disable"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),
		RunMigrations:         optBool("DB_RUN_MIGRATIONS", true),
	}

	cfg.Redis = RedisConfig{
		Addr:      optDefault("REDIS_ADDR", "localhost:6379"),
		Password:  opt("REDIS_PASSWORD"),
		DB:        optInt("REDIS_DB", 0),
		KeyPrefix: optDefault("REDIS_KEY_PREFIX", "skillmatch"),
	}

	cfg.JWT = JWTConfig{
		Secret: req("JWT_SECRET"),
		Issuer: opt("JWT_ISSUER"),
	}

	cfg.NATS = NATSConfig{
		URL:           opt("NATS_URL"),
		SubjectPrefix: optDefault("NATS_SUBJECT_PREFIX", "skillmatch"),
		ConnTimeout:   optDuration("NATS_CONN_TIMEOUT", 5*time.Second),
	}

	switch cfg.Store.Backend {
	case StoreBackendMemory, StoreBackendRedis:
	case StoreBackendPostgres:
		for _, kv := range [][2]string{
			{"DB_HOST", cfg.Database.DBHost},
			{"DB_PORT", cfg.Database.DBPort},
			{"DB_NAME", cfg.Database.DBName},
			{"DB_USER", cfg.Database.DBUser},
		} {
			if kv[1] == "" {
				missing = append(missing, kv[0])
			}
		}
	default:
		invalid = append(invalid, "STORE_BACKEND")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}
