package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasfilter/parser"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize int64

	// list_endpoints defaults.
	ListLimit int
	MaxLimit  int

	// filter_spec and collect_refs defaults.
	DefaultFormat parser.SourceFormat
	StrictRefs    bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASFILTER_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASFILTER_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASFILTER_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASFILTER_CACHE_FILE_TTL", 15*time.Minute),
		CacheContentTTL:    envDuration("OASFILTER_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASFILTER_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("OASFILTER_MAX_INLINE_SIZE", 10*1024*1024)),
		ListLimit:          envInt("OASFILTER_LIST_LIMIT", 100),
		MaxLimit:           envInt("OASFILTER_MAX_LIMIT", 1000),
		DefaultFormat:      envFormat("OASFILTER_DEFAULT_FORMAT"),
		StrictRefs:         envBool("OASFILTER_STRICT_REFS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

// envFormat returns SourceFormatUnknown, meaning "same as the source", when
// the variable is unset or invalid.
func envFormat(key string) parser.SourceFormat {
	v := os.Getenv(key)
	if v == "" {
		return parser.SourceFormatUnknown
	}
	f, err := parser.ParseSourceFormat(v)
	if err != nil {
		slog.Warn("invalid format env var, ignoring", "key", key, "value", v) //nolint:gosec // G706: values are structured log fields, not format strings
		return parser.SourceFormatUnknown
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
