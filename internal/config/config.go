package config

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"golang.org/x/text/language"

	"github.com/vytor/ergolog/internal/logger"
)

// DefaultPalette is the series colour order: distance, duration, pace, reps.
var DefaultPalette = []string{"#008FFB", "#00E396", "#FEB019", "#FF4560"}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	LogFile         string
	LogMaxSizeMB    int
	WorkerCount     int
	QueueSize       int
	PerPage         int
	CacheSizeMB     int
	CacheTTLSeconds int
	DataLabelMax    int
	AxisLabelMax    int
	Palette         []string
	Locale          string
	OpenBrowser     bool
	MetricsEnabled  bool
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "file:ergolog.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		LogFile:         envOr("LOG_FILE", ""),
		LogMaxSizeMB:    envIntOr("LOG_MAX_SIZE_MB", 10),
		WorkerCount:     envIntOr("WORKER_COUNT", 2),
		QueueSize:       envIntOr("QUEUE_SIZE", 32),
		PerPage:         envIntOr("PER_PAGE", 10),
		CacheSizeMB:     envIntOr("CACHE_SIZE_MB", 8),
		CacheTTLSeconds: envIntOr("CACHE_TTL_SECONDS", 300),
		DataLabelMax:    envIntOr("CHART_DATA_LABEL_MAX", 5),
		AxisLabelMax:    envIntOr("CHART_AXIS_LABEL_MAX", 8),
		Palette:         envListOr("CHART_PALETTE", DefaultPalette),
		Locale:          envOr("LOCALE", "en"),
		OpenBrowser:     envBoolOr("OPEN_BROWSER", false),
		MetricsEnabled:  envBoolOr("METRICS_ENABLED", true),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var err error
	if strings.TrimSpace(c.Addr) == "" {
		err = multierr.Append(err, fmt.Errorf("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		err = multierr.Append(err, fmt.Errorf("DB_PATH cannot be empty"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		err = multierr.Append(err, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.LogFile != "" && c.LogMaxSizeMB < 1 {
		err = multierr.Append(err, fmt.Errorf("LOG_MAX_SIZE_MB must be at least 1, got %d", c.LogMaxSizeMB))
	}
	if c.WorkerCount < 1 {
		err = multierr.Append(err, fmt.Errorf("WORKER_COUNT must be at least 1, got %d", c.WorkerCount))
	}
	if c.QueueSize < 1 {
		err = multierr.Append(err, fmt.Errorf("QUEUE_SIZE must be at least 1, got %d", c.QueueSize))
	}
	if c.PerPage < 1 || c.PerPage > 500 {
		err = multierr.Append(err, fmt.Errorf("PER_PAGE must be between 1 and 500, got %d", c.PerPage))
	}
	if c.CacheSizeMB < 1 {
		err = multierr.Append(err, fmt.Errorf("CACHE_SIZE_MB must be at least 1, got %d", c.CacheSizeMB))
	}
	if c.CacheTTLSeconds < 0 {
		err = multierr.Append(err, fmt.Errorf("CACHE_TTL_SECONDS cannot be negative, got %d", c.CacheTTLSeconds))
	}
	if c.DataLabelMax < 0 {
		err = multierr.Append(err, fmt.Errorf("CHART_DATA_LABEL_MAX cannot be negative, got %d", c.DataLabelMax))
	}
	if c.AxisLabelMax < 0 {
		err = multierr.Append(err, fmt.Errorf("CHART_AXIS_LABEL_MAX cannot be negative, got %d", c.AxisLabelMax))
	}
	if len(c.Palette) != len(DefaultPalette) {
		err = multierr.Append(err, fmt.Errorf("CHART_PALETTE must list %d colours, got %d", len(DefaultPalette), len(c.Palette)))
	}
	for _, color := range c.Palette {
		if !hexColor.MatchString(color) {
			err = multierr.Append(err, fmt.Errorf("CHART_PALETTE entry %q is not a hex colour", color))
		}
	}
	if _, perr := language.Parse(c.Locale); perr != nil {
		err = multierr.Append(err, fmt.Errorf("LOCALE %q: %w", c.Locale, perr))
	}
	return err
}

// Language returns the parsed locale, falling back to English.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envListOr(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), def...)
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
