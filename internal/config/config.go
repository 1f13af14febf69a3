package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-manager/internal/db"
	"github.com/ukydev/fleet-manager/internal/events"
)

// Config is the full runtime configuration, read from the environment.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Log         LogConfig
	Auth        AuthConfig
	RateLimit   RateLimitConfig
	MQTT        events.MQTTConfig
	Cloudinary  CloudinaryConfig
	Collections db.Collections
}

type ServerConfig struct {
	Port            string
	GinMode         string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL     string
	Name    string
	Timeout time.Duration
}

type LogConfig struct {
	Level string
	File  string
}

// AuthConfig controls the optional JWT boundary. It is off unless AUTH_REQUIRED is set.
// When AdminEmail is set, an admin account is seeded at startup.
type AuthConfig struct {
	Required      bool
	JWTSecret     string
	Expiry        time.Duration
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

// RateLimitConfig is disabled when Requests is zero.
type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

type CloudinaryConfig struct {
	URL    string
	Folder string
}

// Load reads a .env file if present and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, using system environment variables")
	}

	collections := db.DefaultCollections()
	collections.User = getEnv("COLLECTION_USER", collections.User)
	collections.Vehicle = getEnv("COLLECTION_VEHICLE", collections.Vehicle)
	collections.Load = getEnv("COLLECTION_LOAD", collections.Load)
	collections.WalletTransaction = getEnv("COLLECTION_WALLET_TRANSACTION", collections.WalletTransaction)
	collections.Document = getEnv("COLLECTION_DOCUMENT", collections.Document)
	collections.Notification = getEnv("COLLECTION_NOTIFICATION", collections.Notification)

	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			GinMode:         getEnv("GIN_MODE", "release"),
			CORSOrigins:     getEnvAsList("CORS_ORIGINS", []string{"*"}),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL:     getEnv("DATABASE_URL", "mongodb://localhost:27017"),
			Name:    getEnv("DATABASE_NAME", "appdb"),
			Timeout: getEnvAsDuration("STORE_TIMEOUT", 10*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  os.Getenv("LOG_FILE"),
		},
		Auth: AuthConfig{
			Required:      getEnvAsBool("AUTH_REQUIRED", false),
			JWTSecret:     os.Getenv("JWT_SECRET"),
			Expiry:        getEnvAsDuration("JWT_EXPIRY", 24*time.Hour),
			AdminName:     getEnv("ADMIN_NAME", "Administrator"),
			AdminEmail:    os.Getenv("ADMIN_EMAIL"),
			AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Requests:      getEnvAsInt("RATE_LIMIT_REQUESTS", 0),
			WindowSeconds: getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		MQTT: events.MQTTConfig{
			BrokerURL:   os.Getenv("MQTT_BROKER_URL"),
			ClientID:    getEnv("MQTT_CLIENT_ID", "fleet-manager"),
			TopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "fleet"),
			Timeout:     getEnvAsDuration("MQTT_TIMEOUT", 5*time.Second),
		},
		Cloudinary: CloudinaryConfig{
			URL:    os.Getenv("CLOUDINARY_URL"),
			Folder: getEnv("CLOUDINARY_FOLDER", "fleet/documents"),
		},
		Collections: collections,
	}
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if c.Auth.Required && c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set when AUTH_REQUIRED is enabled")
	}
	if c.Auth.AdminEmail != "" && c.Auth.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD must be set together with ADMIN_EMAIL")
	}
	return nil
}

// EphemeralSecret returns a random signing key for runs without JWT_SECRET.
// Tokens signed with it stop validating when the process exits.
func EphemeralSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.WithField("key", key).Warn("Ignoring non-integer environment value")
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.WithField("key", key).Warn("Ignoring non-boolean environment value")
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("30s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	log.WithField("key", key).Warn("Ignoring invalid duration environment value")
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
