package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds the server settings.
type Config struct {
	Addr           string
	Store          string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SessionTTL     time.Duration
	MaxUploadBytes int64
	Days           []string
	GinMode        string
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Addr:           ":8080",
		Store:          StoreMemory,
		RedisAddr:      "127.0.0.1:6379",
		RedisDB:        0,
		SessionTTL:     2 * time.Hour,
		MaxUploadBytes: 10 << 20,
		Days:           []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	}
}

// Load reads an optional .env file, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	} else {
		log.Println(".env file loaded")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Invalid values are logged and replaced
// by their defaults.
func FromEnv(getenv func(string) string) Config {
	cfg := Default()

	if v := getenv("ROSTER_ADDR"); v != "" {
		cfg.Addr = v
	}
	switch v := strings.ToLower(getenv("ROSTER_STORE")); v {
	case "":
	case StoreMemory, StoreRedis:
		cfg.Store = v
	default:
		log.Printf("Warning: unknown ROSTER_STORE %q, using %s", v, cfg.Store)
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	cfg.RedisPassword = getenv("REDIS_PASSWORD")
	if v := getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("Warning: invalid REDIS_DB %q, using %d", v, cfg.RedisDB)
		} else {
			cfg.RedisDB = n
		}
	}
	if v := getenv("ROSTER_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Printf("Warning: invalid ROSTER_SESSION_TTL %q, using %s", v, cfg.SessionTTL)
		} else {
			cfg.SessionTTL = d
		}
	}
	if v := getenv("ROSTER_MAX_UPLOAD"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			log.Printf("Warning: invalid ROSTER_MAX_UPLOAD %q, using %d", v, cfg.MaxUploadBytes)
		} else {
			cfg.MaxUploadBytes = n
		}
	}
	if v := getenv("ROSTER_DAYS"); v != "" {
		days := splitList(v)
		if len(days) == 0 {
			log.Printf("Warning: ROSTER_DAYS %q has no entries, using defaults", v)
		} else {
			cfg.Days = days
		}
	}
	cfg.GinMode = getenv("GIN_MODE")
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
