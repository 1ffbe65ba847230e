// Package config reads report settings from environment variables. The only
// command-line input is the dataset path; everything tunable lives here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/domain"
)

// Config holds all report settings, populated from environment variables.
type Config struct {
	// WindowStart is the lower bound of the recency filter. Zero means
	// "derive from the data": 20 years before the latest occurrence date.
	WindowStart time.Time

	// AllowedExponents is the damage exponent whitelist.
	AllowedExponents map[string]struct{}

	// Outlier thresholds used only at rendering time to pick which scatter
	// points get a label.
	OutlierFatalities float64
	OutlierInjuries   float64

	OutputDir string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	windowStart, err := parseWindowStart(os.Getenv("WINDOW_START"))
	if err != nil {
		return nil, err
	}

	outlierFatalities, err := parseThreshold("OUTLIER_FATALITIES", 350)
	if err != nil {
		return nil, err
	}
	outlierInjuries, err := parseThreshold("OUTLIER_INJURIES", 2500)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		WindowStart:       windowStart,
		AllowedExponents:  parseAllowedExponents(os.Getenv("ALLOWED_EXPONENTS")),
		OutlierFatalities: outlierFatalities,
		OutlierInjuries:   outlierInjuries,
		OutputDir:         envOrDefault("OUTPUT_DIR", "out"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		LogFormat:         envOrDefault("LOG_FORMAT", "json"),
	}

	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	if len(cfg.AllowedExponents) == 0 {
		return nil, fmt.Errorf("ALLOWED_EXPONENTS produced an empty set")
	}

	return cfg, nil
}

// parseWindowStart accepts an RFC 3339 timestamp, a plain YYYY-MM-DD date, or
// the dataset's own M/D/YYYY H:MM:SS format. Empty means derive from data.
func parseWindowStart(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02", "1/2/2006 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid WINDOW_START %q", s)
}

// parseAllowedExponents splits a comma-separated list into a set. An empty
// element (leading comma or empty field) stands for the bare-dollar exponent.
// Unset env falls back to the default set.
func parseAllowedExponents(s string) map[string]struct{} {
	if s == "" {
		return domain.DefaultExponents()
	}

	set := make(map[string]struct{})
	for _, code := range strings.Split(s, ",") {
		set[strings.TrimSpace(code)] = struct{}{}
	}
	return set
}

func parseThreshold(name string, fallback float64) (float64, error) {
	s := os.Getenv(name)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", name, s)
	}
	return v, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
