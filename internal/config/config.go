package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string
	BankPath string
	Title    string

	DBDriver string // memory|sqlite|postgres
	DBDSN    string

	SessionSecret string
	SessionTTL    time.Duration

	DefaultTheme string

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		BankPath:      envOr("BANK_PATH", "questions_bank.json"),
		Title:         envOr("QUIZ_TITLE", "Practice Quiz"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		SessionSecret: envOr("SESSION_SECRET", "supersecret-dev-key"),
		SessionTTL:    durOr("SESSION_TTL", 8*time.Hour),
		DefaultTheme:  envOr("DEFAULT_THEME", "default-theme"),
		CORSOrigins:   csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func durOr(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
