package confs

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting. It is loaded once in main and passed
// into the components that need it.
type Config struct {
	HTTPAddr    string
	CORSOrigins []string
	LogLevel    slog.Level

	// Database
	DBDriver   string // postgres | sqlite
	DBURL      string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string
	SeedData   bool

	// Sessions
	SessionSecret []byte
	SessionTTL    time.Duration
	CookieSecure  bool

	// Live feed
	SimulatorInterval time.Duration
	PersistReadings   bool
	PersistInterval   time.Duration

	// Optional sinks
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	MQTTBroker      string
	MQTTClientID    string
	MQTTTopicPrefix string
}

// LoadConfig loads environment variables from a .env file if present
// and builds the Config, falling back to development defaults.
func LoadConfig() (Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("could not load .env", "error", err)
		}
	}
	return FromEnv()
}

// FromEnv builds the Config from the current process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		HTTPAddr:        getEnv("HTTP_ADDR", "0.0.0.0:3536"),
		CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "")),
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBURL:           getEnv("DB_URL", ""),
		DBHost:          getEnv("DB_HOST", ""),
		DBPort:          getEnv("DB_PORT", ""),
		DBUser:          getEnv("DB_USER", ""),
		DBPassword:      getEnv("DB_PASSWORD", ""),
		DBName:          getEnv("DB_NAME", ""),
		DBPath:          getEnv("DB_PATH", "motor-monitor.db"),
		SessionSecret:   []byte(getEnv("SESSION_SECRET", "")),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		MQTTBroker:      getEnv("MQTT_BROKER", ""),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "motor-monitor"),
		MQTTTopicPrefix: strings.TrimSuffix(getEnv("MQTT_TOPIC_PREFIX", "motors/readings"), "/"),
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return Config{}, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", cfg.DBDriver)
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	if cfg.SeedData, err = parseBool("SEED_DATA", true); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = parseBool("COOKIE_SECURE", false); err != nil {
		return Config{}, err
	}
	if cfg.PersistReadings, err = parseBool("PERSIST_READINGS", false); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = parseDuration("SESSION_TTL", 12*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.SimulatorInterval, err = parseDuration("SIMULATOR_INTERVAL", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.PersistInterval, err = parseDuration("PERSIST_INTERVAL", time.Minute); err != nil {
		return Config{}, err
	}
	if v := getEnv("REDIS_DB", ""); v != "" {
		if cfg.RedisDB, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("invalid REDIS_DB %q: %w", v, err)
		}
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func parseBool(key string, fallback bool) (bool, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", key, d)
	}
	return d, nil
}

func parseLevel(v string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
	}
	return level, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
