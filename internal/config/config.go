package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/ini.v1"
)

// Snapshot source kinds.
const (
	SourceHTTP     = "http"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Snapshot
	SnapshotSource  string
	SnapshotURL     string
	ChallengeURL    string
	SnapshotFile    string
	ChallengeFile   string
	FetchTimeout    time.Duration
	RefreshInterval time.Duration
	Timezone        string

	// Storage
	PostgresURL string
	RedisURL    string
	CacheTTL    time.Duration

	// Auth
	AdminToken string
}

// lookup resolves a key from the environment first, then the optional
// INI file.
type lookup struct {
	file *ini.Section
}

// Load loads configuration from environment variables, layered over the
// file named by CONFIG_FILE when set.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	l := lookup{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		f, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
		l.file = f.Section("")
	}

	cfg := &Config{
		Port: l.getInt("PORT", 8080),
		Env:  l.get("ENV", "development"),

		SnapshotSource:  strings.ToLower(l.get("SNAPSHOT_SOURCE", SourceHTTP)),
		SnapshotURL:     l.get("SNAPSHOT_URL", ""),
		ChallengeURL:    l.get("CHALLENGE_URL", ""),
		SnapshotFile:    l.get("SNAPSHOT_FILE", "data.json"),
		ChallengeFile:   l.get("CHALLENGE_FILE", "challenge.json"),
		FetchTimeout:    l.getDuration("FETCH_TIMEOUT", 15*time.Second),
		RefreshInterval: l.getDuration("REFRESH_INTERVAL", 5*time.Minute),
		Timezone:        l.get("TIMEZONE", "Asia/Tokyo"),

		PostgresURL: l.get("POSTGRES_URL", ""),
		RedisURL:    l.get("REDIS_URL", ""),
		CacheTTL:    l.getDuration("CACHE_TTL", time.Minute),

		AdminToken: l.get("ADMIN_TOKEN", ""),
	}

	// CORS
	origins := l.get("ALLOWED_ORIGINS", "http://localhost:3000")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing for the chosen source
	switch cfg.SnapshotSource {
	case SourceHTTP:
		if cfg.SnapshotURL == "" {
			return nil, fmt.Errorf("missing required configuration: SNAPSHOT_URL")
		}
		if cfg.ChallengeURL == "" {
			return nil, fmt.Errorf("missing required configuration: CHALLENGE_URL")
		}
	case SourceFile:
	case SourcePostgres:
		if cfg.PostgresURL == "" {
			return nil, fmt.Errorf("missing required configuration: POSTGRES_URL")
		}
	default:
		return nil, fmt.Errorf("unknown SNAPSHOT_SOURCE %q", cfg.SnapshotSource)
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// Location returns the configured zone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (l lookup) get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	if l.file != nil {
		if value := l.file.Key(key).String(); value != "" {
			return value
		}
	}
	return fallback
}

func (l lookup) getInt(key string, fallback int) int {
	if value := l.get(key, ""); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func (l lookup) getDuration(key string, fallback time.Duration) time.Duration {
	if value := l.get(key, ""); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
