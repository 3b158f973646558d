package config

import (
	"os"
	"strings"
)

type Config struct {
	Neo4jURI     string
	Neo4jUser    string
	Neo4jPass    string
	RedisAddr    string
	NatsUrl      string
	HTTPPort     string
	OtelEndpoint string
	Env          string // "local" ou "prod"
}

func Load() Config {
	return Config{
		Neo4jURI:     getEnv("NEO4J_URI", "bolt://neo4j:7687"),
		Neo4jUser:    getEnv("NEO4J_USER", "neo4j"),
		Neo4jPass:    getEnv("NEO4J_PASSWORD", "password123"),
		RedisAddr:    getEnv("REDIS_ADDR", "redis:6379"),
		NatsUrl:      getEnv("NATS_URL", "nats://nats:4222"),
		HTTPPort:     getEnv("HTTP_PORT", "8080"),
		OtelEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "jaeger:4317"),
		Env:          getEnv("APP_ENV", "local"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}
