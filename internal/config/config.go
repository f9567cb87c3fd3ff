// Package config loads application settings from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the root of all application configuration. It is assembled once
// at startup and treated as read-only afterwards.
type Config struct {
	Server    ServerConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	WebSocket WebSocketConfig
	Logging   LoggingConfig
	App       AppConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	URI            string
	Database       string
	MaxPoolSize    uint64
	ConnectTimeout time.Duration
	PingTimeout    time.Duration
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// RateLimitConfig carries two budgets: a general one for the API and a
// stricter one for the auth endpoints, where brute force lives.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstSize         int
	AuthRPS           float64
	AuthBurst         int
}

type WebSocketConfig struct {
	AllowedOrigins  []string
	ReadBufferSize  int
	WriteBufferSize int
	PingInterval    time.Duration
	PongWait        time.Duration
	SendBufferSize  int
}

type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load reads the environment (and .env, when present) into a validated
// Config. Malformed optional values silently fall back to their defaults;
// only missing required values and inconsistent combinations are errors.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Server:    loadServer(),
		Mongo:     loadMongo(),
		JWT:       loadJWT(),
		RateLimit: loadRateLimit(),
		WebSocket: loadWebSocket(),
		App:       loadApp(),
	}
	cfg.Logging = loadLogging(cfg.App)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadServer() ServerConfig {
	return ServerConfig{
		Port:            envString("SERVER_PORT", ":8080"),
		ReadTimeout:     envDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    envDuration("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     envDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: envDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func loadMongo() MongoConfig {
	return MongoConfig{
		URI:            os.Getenv("MONGO_URI"),
		Database:       envString("MONGO_DATABASE", "customer_service"),
		MaxPoolSize:    uint64(envInt("MONGO_MAX_POOL_SIZE", 100)),
		ConnectTimeout: envDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		PingTimeout:    envDuration("MONGO_PING_TIMEOUT", 5*time.Second),
	}
}

func loadJWT() JWTConfig {
	return JWTConfig{
		Secret:         os.Getenv("JWT_SECRET"),
		AccessTokenTTL: envDuration("JWT_ACCESS_TOKEN_TTL", time.Hour),
	}
}

func loadRateLimit() RateLimitConfig {
	return RateLimitConfig{
		Enabled:           envBool("RATE_LIMIT_ENABLED", true),
		RequestsPerSecond: envFloat("RATE_LIMIT_RPS", 10),
		BurstSize:         envInt("RATE_LIMIT_BURST", 20),
		AuthRPS:           envFloat("RATE_LIMIT_AUTH_RPS", 1),
		AuthBurst:         envInt("RATE_LIMIT_AUTH_BURST", 5),
	}
}

func loadWebSocket() WebSocketConfig {
	return WebSocketConfig{
		AllowedOrigins:  envCSV("WS_ALLOWED_ORIGINS"),
		ReadBufferSize:  envInt("WS_READ_BUFFER_SIZE", 1024),
		WriteBufferSize: envInt("WS_WRITE_BUFFER_SIZE", 1024),
		PingInterval:    envDuration("WS_PING_INTERVAL", 54*time.Second),
		PongWait:        envDuration("WS_PONG_WAIT", 60*time.Second),
		SendBufferSize:  envInt("WS_SEND_BUFFER_SIZE", 256),
	}
}

// loadLogging defaults to human-readable text logs in development and JSON
// everywhere else.
func loadLogging(app AppConfig) LoggingConfig {
	format := "json"
	if app.Environment == "development" {
		format = "text"
	}
	return LoggingConfig{
		Level:  envString("LOG_LEVEL", "info"),
		Format: envString("LOG_FORMAT", format),
	}
}

func loadApp() AppConfig {
	return AppConfig{
		Name:        envString("APP_NAME", "customer-service"),
		Version:     envString("APP_VERSION", "dev"),
		Environment: envString("APP_ENV", "development"),
	}
}

// Validate reports every problem at once rather than failing on the first,
// so a broken deployment can be fixed in one pass.
func (c *Config) Validate() error {
	var problems []string

	if c.Mongo.URI == "" {
		problems = append(problems, "MONGO_URI is required")
	}
	if c.Mongo.Database == "" {
		problems = append(problems, "MONGO_DATABASE is required")
	}
	if c.JWT.Secret == "" {
		problems = append(problems, "JWT_SECRET is required")
	}

	if c.IsProduction() {
		if len(c.JWT.Secret) < 32 {
			problems = append(problems, "JWT_SECRET must be at least 32 characters in production")
		}
		if len(c.WebSocket.AllowedOrigins) == 0 {
			problems = append(problems, "WS_ALLOWED_ORIGINS must be set in production")
		}
	}

	// Pings that arrive after the pong deadline would disconnect every
	// healthy client.
	if c.WebSocket.PingInterval >= c.WebSocket.PongWait {
		problems = append(problems, "WS_PING_INTERVAL must be shorter than WS_PONG_WAIT")
	}

	if len(problems) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}

func (c *Config) IsDevelopment() bool { return c.App.Environment == "development" }

func (c *Config) IsProduction() bool { return c.App.Environment == "production" }

// String renders the config for startup logs with secrets redacted.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Server: %s, Mongo: %s/%s, JWT: [REDACTED], RateLimit: %v, Environment: %s}",
		c.Server.Port,
		redactURI(c.Mongo.URI),
		c.Mongo.Database,
		c.RateLimit.Enabled,
		c.App.Environment,
	)
}

// redactURI strips everything before the host so embedded credentials never
// reach a log line.
func redactURI(uri string) string {
	if uri == "" {
		return ""
	}
	if at := strings.Index(uri, "@"); at > 0 {
		return "[REDACTED]" + uri[at:]
	}
	return "[REDACTED]"
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

// envCSV splits a comma-separated variable into its non-empty, trimmed
// entries. Unset or all-blank variables yield nil.
func envCSV(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
