package mcpserver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erraggy/oasfilter/parser"
)

// specInput is how a tool receives the OAS document to work on.
// Exactly one of File or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

// specCache holds parsed documents for the lifetime of the server. File
// entries are keyed by absolute path and modification time, so an edited
// file misses; content entries are keyed by a SHA-256 of the content.
var specCache = newLRUCache[*parser.ParseResult](cfg.CacheMaxSize)

// makeCacheKey returns the cache key for s, or "" when s cannot be cached.
func makeCacheKey(s specInput) string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		sum := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(sum[:])
	default:
		return ""
	}
}

func (s specInput) validate() error {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OASFILTER_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

func (s specInput) ttl() time.Duration {
	if s.File != "" {
		return cfg.CacheFileTTL
	}
	return cfg.CacheContentTTL
}

func (s specInput) parseOptions() []parser.Option {
	if s.File != "" {
		return []parser.Option{parser.WithFilePath(s.File)}
	}
	return []parser.Option{parser.WithReader(strings.NewReader(s.Content))}
}

// resolve returns the parsed document, from the cache when possible.
func (s specInput) resolve() (*parser.ParseResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	key := ""
	if cfg.CacheEnabled {
		key = makeCacheKey(s)
	}
	if key != "" {
		if cached, ok := specCache.get(key); ok {
			st := specCache.stats()
			slog.Debug("spec cache hit", "source", cached.SourcePath, "hits", st.Hits, "entries", st.Entries)
			return cached, nil
		}
	}

	result, err := parser.ParseWithOptions(s.parseOptions()...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		specCache.put(key, result, s.ttl())
	}
	return result, nil
}
