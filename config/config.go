package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreMySQL  = "mysql"
	StoreMemory = "memory"
)

// Config holds the runtime settings read from the environment.
type Config struct {
	Port    string
	GinMode string

	// StoreDriver is mysql or memory. The memory store is seeded with demo
	// data and is meant for local runs.
	StoreDriver string
	JWTSecret   string

	RedisEnabled   bool
	SearchCacheTTL time.Duration

	AMQPEnabled bool
	AMQPURL     string

	MaxStayNights int
	SnowflakeNode int64
	SeedDemoData  bool

	LogLevel    string
	LogFormat   string
	CORSOrigins []string
}

// Load reads the configuration. Every value has a default so the service
// starts with an empty environment.
func Load() Config {
	amqpURL := strings.TrimSpace(os.Getenv("RABBITMQ_URL"))
	if amqpURL == "" {
		amqpURL = strings.TrimSpace(os.Getenv("AMQP_URL"))
	}
	return Config{
		Port:           envOrDefault("PORT", "8080"),
		GinMode:        envOrDefault("GIN_MODE", "release"),
		StoreDriver:    strings.ToLower(envOrDefault("STORE_DRIVER", StoreMySQL)),
		JWTSecret:      envOrDefault("JWT_SECRET", "change-me"),
		RedisEnabled:   envBool("REDIS_ENABLED", true),
		SearchCacheTTL: envDuration("SEARCH_CACHE_TTL", 60*time.Second),
		AMQPEnabled:    amqpURL != "" || envBool("AMQP_ENABLED", false),
		AMQPURL:        amqpURL,
		MaxStayNights:  envInt("MAX_STAY_NIGHTS", 30),
		SnowflakeNode:  int64(envInt("SNOWFLAKE_NODE", 1)),
		SeedDemoData:   envBool("SEED_DEMO_DATA", true),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "text"),
		CORSOrigins:    parseList(os.Getenv("CORS_ORIGINS")),
	}
}

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func envInt(key string, def int) int {
	n, err := strconv.Atoi(envOrDefault(key, ""))
	if err != nil {
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	b, err := strconv.ParseBool(envOrDefault(key, ""))
	if err != nil {
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(envOrDefault(key, ""))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// parseList splits a comma separated value, falling back to "*".
func parseList(raw string) []string {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
