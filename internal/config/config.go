package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultClientDomain = "http://localhost:3000/payment"

// Config is read once at startup and never modified afterwards.
type Config struct {
	ServiceName        string
	HTTPPort           string
	ClientID           string
	APIKey             string
	ChecksumKey        string
	ClientDomain       string
	PayOSBaseURL       string
	GatewayTimeout     time.Duration
	ShutdownTimeout    time.Duration
	MaxRequestBodySize int64
	AllowedOrigins     []string
	RedisAddr          string
	RedisPassword      string
	LogLevel           string
	LogFormat          string
	OTLPEndpoint       string
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// MissingCredentialsError lists every PayOS credential absent from the environment.
type MissingCredentialsError struct {
	Vars []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing PayOS credentials: %s", strings.Join(e.Vars, ", "))
}

// Load fails when any PayOS credential is missing so the service never starts
// without them.
func Load() (*Config, error) {
	cfg := &Config{
		ServiceName:        getEnv("SERVICE_NAME", "payos-link"),
		HTTPPort:           getEnv("HTTP_PORT", "8000"),
		ClientID:           os.Getenv("PAYOS_CLIENT_ID"),
		APIKey:             os.Getenv("PAYOS_API_KEY"),
		ChecksumKey:        os.Getenv("PAYOS_CHECKSUM_KEY"),
		ClientDomain:       getEnv("CLIENT_DOMAIN", DefaultClientDomain),
		PayOSBaseURL:       getEnv("PAYOS_BASE_URL", "https://api-merchant.payos.vn"),
		GatewayTimeout:     parseDuration("GATEWAY_TIMEOUT", 15*time.Second),
		ShutdownTimeout:    parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: int64(parseInt("MAX_BODY_BYTES", 1<<20)), // 1MB
		AllowedOrigins:     splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		OTLPEndpoint:       os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		BreakerMaxFailures: uint32(parseInt("BREAKER_MAX_FAILURES", 5)),
		BreakerOpenTimeout: parseDuration("BREAKER_OPEN_TIMEOUT", 30*time.Second),
	}

	var missing []string
	if cfg.ClientID == "" {
		missing = append(missing, "PAYOS_CLIENT_ID")
	}
	if cfg.APIKey == "" {
		missing = append(missing, "PAYOS_API_KEY")
	}
	if cfg.ChecksumKey == "" {
		missing = append(missing, "PAYOS_CHECKSUM_KEY")
	}
	if len(missing) > 0 {
		return nil, &MissingCredentialsError{Vars: missing}
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key string, def time.Duration) time.Duration {
	if raw, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
			return d
		}
	}
	return def
}

func parseInt(key string, def int) int {
	if raw, ok := os.LookupEnv(key); ok {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
