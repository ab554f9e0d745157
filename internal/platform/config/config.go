// Package config builds service configuration from environment variables so
// main stays lean. Absent infrastructure URLs degrade to in-process fallbacks
// rather than failing startup.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server needs at startup.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Extraction  ExtractionConfig
	Intake      IntakeConfig
}

// RedisConfig tunes the lookup-cache client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// ExtractionConfig configures the document-understanding adapter.
type ExtractionConfig struct {
	APIKey          string
	Model           string
	Timeout         time.Duration
	AnalysisTimeout time.Duration
}

// IntakeConfig carries intake pipeline knobs.
type IntakeConfig struct {
	// MinConfidence below which an extracted draft is routed to correction
	// even when structurally valid. Zero disables the gate; the score stays
	// informational.
	MinConfidence  int
	LookupCacheTTL time.Duration
}

// FromEnv reads configuration from the environment.
func FromEnv() Config {
	return Config{
		Addr:        envString("POLICYGATE_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Extraction: ExtractionConfig{
			APIKey:          os.Getenv("GEMINI_API_KEY"),
			Model:           envString("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:         envDuration("EXTRACTION_TIMEOUT", 90*time.Second),
			AnalysisTimeout: envDuration("ANALYSIS_TIMEOUT", 45*time.Second),
		},
		Intake: IntakeConfig{
			MinConfidence:  envInt("INTAKE_MIN_CONFIDENCE", 0),
			LookupCacheTTL: envDuration("LOOKUP_CACHE_TTL", 5*time.Minute),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
