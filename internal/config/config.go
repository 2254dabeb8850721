// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Defaults.
const (
	DefaultBucket       = "music-wheel"
	DefaultPort         = "8080"
	DefaultTempDir      = "temp_uploads"
	DefaultStoreTimeout = 30 * time.Second
)

// ErrMissingCredentials is returned when the storage credentials are
// not set.
var ErrMissingCredentials = errors.New("missing R2 credentials: set R2_ACCOUNT_ID, R2_ACCESS_KEY and R2_SECRET_KEY")

// Config holds everything the server needs from the environment.
type Config struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string

	Addr         string
	TempDir      string
	StoreTimeout time.Duration
}

// Load reads configuration from the environment, after a best-effort
// load of a local .env file. Returns ErrMissingCredentials when any of
// the storage credentials is unset.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		AccountID: os.Getenv("R2_ACCOUNT_ID"),
		AccessKey: os.Getenv("R2_ACCESS_KEY"),
		SecretKey: os.Getenv("R2_SECRET_KEY"),
		Bucket:    getenv("R2_BUCKET_NAME", DefaultBucket),
		TempDir:   getenv("UPLOAD_TEMP_DIR", DefaultTempDir),

		Addr:         ":" + getenv("PORT", DefaultPort),
		StoreTimeout: DefaultStoreTimeout,
	}

	if cfg.AccountID == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrMissingCredentials
	}

	cfg.PublicBaseURL = getenv("R2_PUBLIC_URL", fmt.Sprintf("https://pub-%s.r2.dev", cfg.AccountID))

	if timeout := os.Getenv("STORE_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return nil, fmt.Errorf("parsing STORE_TIMEOUT: %w", err)
		}
		cfg.StoreTimeout = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
