package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend selectors.
const (
	BackendBolt  = "bolt"
	BackendRedis = "redis"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string
	Environment string
	HTTP        HTTPConfig
	Storage     StorageConfig
	Redis       RedisConfig
	Engine      EngineConfig
	JWT         JWTConfig
	Context     ContextConfig
	Logger      LoggerConfig
}

type HTTPConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageConfig selects and parameterizes the persistence backend. State is
// a single JSON document under StateKey regardless of backend.
type StorageConfig struct {
	Backend       string
	BoltPath      string
	BoltBucket    string
	StateKey      string
	FlushInterval time.Duration
}

type RedisConfig struct {
	URL           string
	Password      string
	DB            int
	NotifyEnabled bool
	NotifyChannel string
}

// EngineConfig tunes the countdown runtime.
type EngineConfig struct {
	TickInterval    time.Duration
	MonitorInterval time.Duration
}

type JWTConfig struct {
	// Secret enables bearer auth on the API when non-empty.
	Secret string
	Issuer string
}

type ContextConfig struct {
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// Load reads configuration from environment variables (optionally .env)
// and applies sane defaults so the service can boot in any environment.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		AppName:     getString("APP_NAME", "multitimer"),
		Environment: getString("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Host:         getString("SERVER_HOST", "0.0.0.0"),
			Port:         getString("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Storage: StorageConfig{
			Backend:       getString("STORAGE_BACKEND", BackendBolt),
			BoltPath:      getString("BOLTDB_PATH", "./data/state.db"),
			BoltBucket:    getString("BOLTDB_BUCKET", "state"),
			StateKey:      getString("STATE_KEY", "timerState"),
			FlushInterval: getDuration("FLUSH_INTERVAL", 2*time.Second),
		},
		Redis: RedisConfig{
			URL:           getString("REDIS_URL", "redis://localhost:6379"),
			Password:      os.Getenv("REDIS_PASSWORD"),
			DB:            getInt("REDIS_DB", 0),
			NotifyEnabled: getBool("REDIS_NOTIFY_ENABLED", false),
			NotifyChannel: getString("REDIS_NOTIFY_CHANNEL", "timer:alerts"),
		},
		Engine: EngineConfig{
			TickInterval:    getDuration("TICK_INTERVAL", time.Second),
			MonitorInterval: getDuration("MONITOR_INTERVAL", 10*time.Second),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getString("JWT_ISSUER", "multitimer"),
		},
		Context: ContextConfig{
			RequestTimeout:  getDuration("REQUEST_TIMEOUT_SECONDS", 5*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT_SECONDS", 15*time.Second),
		},
		Logger: LoggerConfig{
			Level:    getString("LOG_LEVEL", "info"),
			Encoding: getString("LOG_ENCODING", "json"),
		},
	}

	if cfg.Storage.Backend != BackendBolt && cfg.Storage.Backend != BackendRedis {
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

// MustLoad panics if configuration cannot be loaded.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

func getString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
