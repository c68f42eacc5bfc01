package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string
	BankPath string

	DBDriver string
	DBDSN    string

	// Exam layout and scoring.
	NumSingle    int
	NumMultiple  int
	NumTrueFalse int
	SingleScore  int
	MultipleScore int
	SamplingSeed int64

	// Static shared secret for the admin score view, compared in plaintext.
	AdminPassword string

	SessionTTL        time.Duration
	SessionSweep      string // cron spec for the idle-session sweeper
	SessionHMACSecret string

	CORSOrigins []string
}

func FromEnv() Config {
	return Config{
		HTTPAddr: envOr("HTTP_ADDR", ":8080"),
		BankPath: envOr("BANK_PATH", "extracted_questions.csv"),

		DBDriver: envOr("DB_DRIVER", "sqlite"),
		DBDSN:    envOr("DB_DSN", ""),

		NumSingle:     envInt("NUM_SINGLE", 30),
		NumMultiple:   envInt("NUM_MULTIPLE", 20),
		NumTrueFalse:  envInt("NUM_TRUE_FALSE", 10),
		SingleScore:   envInt("SINGLE_SCORE", 1),
		MultipleScore: envInt("MULTIPLE_SCORE", 2),
		SamplingSeed:  int64(envInt("SAMPLING_SEED", 42)),

		AdminPassword: envOr("ADMIN_PASSWORD", "admin123"),

		SessionTTL:        envDuration("SESSION_TTL", 2*time.Hour),
		SessionSweep:      envOr("SESSION_SWEEP", "@every 10m"),
		SessionHMACSecret: envOr("SESSION_HMAC_SECRET", "examstack-dev-secret"),

		CORSOrigins: csvOr("CORS_ORIGINS", "http://localhost:3000"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
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
