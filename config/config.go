package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultServerPort     = 8080
	defaultBackupInterval = time.Hour
)

// Config holds every setting of the service.
type Config struct {
	ServerPort  int
	DatabaseURL string // empty keeps snapshots in memory

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	BackupInterval     time.Duration // 0 disables scheduled backups
	CORSAllowedOrigins []string
	RandomSeed         *uint64 // nil draws from the system generator
}

// R2Enabled reports whether snapshot export to object storage is configured.
func (c *Config) R2Enabled() bool {
	return c.R2AccountID != ""
}

// Load reads the configuration from the environment, loading a .env file
// first when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		cfg.ServerPort = defaultServerPort
	} else {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
		}
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
		}
		cfg.ServerPort = port
	}

	r2 := []string{cfg.R2AccountID, cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2BucketName, cfg.R2PublicBaseURL}
	set := 0
	for _, v := range r2 {
		if v != "" {
			set++
		}
	}
	if set != 0 && set != len(r2) {
		return nil, errors.New("R2 configuration is incomplete: set all of R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME, R2_PUBLIC_BASE_URL or none")
	}

	cfg.BackupInterval = defaultBackupInterval
	if v := os.Getenv("BACKUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKUP_INTERVAL environment variable: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("BACKUP_INTERVAL must not be negative, got %s", d)
		}
		cfg.BackupInterval = d
	}

	cfg.CORSAllowedOrigins = []string{"*"}
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			cfg.CORSAllowedOrigins = origins
		}
	}

	if v := os.Getenv("RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid RANDOM_SEED environment variable: %w", err)
		}
		cfg.RandomSeed = &seed
	}

	return cfg, nil
}
