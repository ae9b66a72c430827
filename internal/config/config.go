package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Port            string
	DatabaseURL     string
	AllowedOrigins  []string
	ReportDelay     time.Duration
	UploadDir       string
	MaxUploadBytes  int64
	SeedSampleData  bool
	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment. Values from a .env file
// in the working directory are used when present but never override variables
// that are already set.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "loading env file")
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    databaseURL(),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
	}

	var err error
	if cfg.ReportDelay, err = time.ParseDuration(getEnv("REPORT_DELAY", "1500ms")); err != nil {
		return nil, errors.Wrap(err, "REPORT_DELAY")
	}
	if cfg.ShutdownTimeout, err = time.ParseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s")); err != nil {
		return nil, errors.Wrap(err, "SHUTDOWN_TIMEOUT")
	}
	maxMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_MB", "100"), 10, 64)
	if err != nil {
		return nil, errors.Wrap(err, "MAX_UPLOAD_MB")
	}
	cfg.MaxUploadBytes = maxMB << 20
	if cfg.SeedSampleData, err = strconv.ParseBool(getEnv("SEED_SAMPLE_DATA", "true")); err != nil {
		return nil, errors.Wrap(err, "SEED_SAMPLE_DATA")
	}

	return cfg, nil
}

// databaseURL prefers DATABASE_URL and falls back to a postgres DSN assembled
// from the DB_* variables, then to a local sqlite file.
func databaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	if host := os.Getenv("DB_HOST"); host != "" {
		return "host=" + host +
			" user=" + os.Getenv("DB_USER") +
			" password=" + os.Getenv("DB_PASSWORD") +
			" dbname=" + os.Getenv("DB_NAME") +
			" port=" + getEnv("DB_PORT", "5432") +
			" sslmode=disable"
	}
	return "file:local.db"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
