// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Sadiq-Teslim/ules-voting-sub000/fingerprint"
	"github.com/Sadiq-Teslim/ules-voting-sub000/retry"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	TallyURL      string
	ValidationURL string
	CatalogURL    string
	MaxRetries    int
	BaseDelay     time.Duration
	Display       fingerprint.Display
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile, geometry string
	retries := -1

	fs := flag.NewFlagSet("ules-voting", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Portal port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Session store database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Remote services
	fs.StringVar(&cfg.TallyURL, "tally-url", "", "Vote submission endpoint")
	fs.StringVar(&cfg.ValidationURL, "validation-url", "", "Voter validation endpoint")
	fs.StringVar(&cfg.CatalogURL, "catalog-url", "", "Category catalog URL or file")

	// Submission policy
	fs.IntVar(&retries, "retries", -1, "Retries after the first submission attempt")
	fs.DurationVar(&cfg.BaseDelay, "backoff", 0, "Base backoff delay")

	fs.StringVar(&geometry, "screen", "", "Host display geometry WxHxDEPTH")
	fs.StringVar(&envFile, "env", ".env", "dotenv file to load")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:ules-voting.db"
	}

	// Remote endpoints - MUST be provided
	if cfg.TallyURL == "" {
		cfg.TallyURL = os.Getenv("TALLY_URL")
	}
	if cfg.TallyURL == "" {
		return Config{}, errors.New("TALLY_URL required")
	}
	if cfg.ValidationURL == "" {
		cfg.ValidationURL = os.Getenv("VALIDATION_URL")
	}
	if cfg.ValidationURL == "" {
		return Config{}, errors.New("VALIDATION_URL required")
	}
	if cfg.CatalogURL == "" {
		cfg.CatalogURL = os.Getenv("CATALOG_URL")
	}
	if cfg.CatalogURL == "" {
		return Config{}, errors.New("CATALOG_URL required")
	}

	if retries < 0 {
		retries = retry.DefaultMaxRetries
		if s := os.Getenv("SUBMIT_MAX_RETRIES"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 0 {
				return Config{}, errors.New("invalid SUBMIT_MAX_RETRIES env variable")
			}
			retries = n
		}
	}
	cfg.MaxRetries = retries

	if cfg.BaseDelay == 0 {
		cfg.BaseDelay = retry.DefaultBaseDelay
		if s := os.Getenv("SUBMIT_BASE_DELAY"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid SUBMIT_BASE_DELAY env variable")
			}
			cfg.BaseDelay = d
		}
	}
	if cfg.BaseDelay < 0 {
		return Config{}, errors.New("backoff must not be negative")
	}

	if geometry == "" {
		geometry = os.Getenv("DISPLAY_GEOMETRY")
	}
	if geometry == "" {
		geometry = "1920x1080x24"
	}
	display, err := ParseGeometry(geometry)
	if err != nil {
		return Config{}, err
	}
	cfg.Display = display

	return cfg, nil
}

// RetryPolicy builds the submission retry policy from the config.
func (c Config) RetryPolicy() retry.Policy {
	return retry.Policy{
		MaxRetries: c.MaxRetries,
		BaseDelay:  c.BaseDelay,
	}
}

// ParseGeometry reads "WIDTHxHEIGHT" or "WIDTHxHEIGHTxDEPTH".
func ParseGeometry(s string) (fingerprint.Display, error) {
	parts := strings.Split(strings.ToLower(s), "x")
	if len(parts) < 2 || len(parts) > 3 {
		return fingerprint.Display{}, fmt.Errorf("invalid display geometry %q", s)
	}

	nums := make([]int, 3)
	nums[2] = 24
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 {
			return fingerprint.Display{}, fmt.Errorf("invalid display geometry %q", s)
		}
		nums[i] = n
	}

	d := fingerprint.Display{Width: nums[0], Height: nums[1], ColorDepth: nums[2]}
	if d.Width >= d.Height {
		d.Orientation = "landscape-primary"
	} else {
		d.Orientation = "portrait-primary"
	}
	return d, nil
}

// loadEnvFile loads a dotenv file without overriding variables already set.
// A missing file is fine.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
