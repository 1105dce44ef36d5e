package extract

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TextCache stores extraction results on disk with a TTL so repeated
// analysis of the same filing skips the expensive strategies.
type TextCache struct {
	path string
	ttl  time.Duration
}

// NewTextCache creates the cache directory if needed.
func NewTextCache(path string, ttl time.Duration) (*TextCache, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create text cache directory: %w", err)
	}
	return &TextCache{path: path, ttl: ttl}, nil
}

// key hashes the filing id, strategy, and page window together so a
// different request never hits a stale entry.
func (c *TextCache) key(docID string, strategy StrategyName, startPage, endPage int) string {
	hash := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%d", docID, strategy, startPage, endPage))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves a cached result, or nil and false on a miss or an
// expired entry.
func (c *TextCache) Get(docID string, strategy StrategyName, startPage, endPage int) (*Result, bool) {
	filePath := filepath.Join(c.path, c.key(docID, strategy, startPage, endPage))

	info, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, false
	}
	if err != nil || time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false
	}
	return &result, true
}

// Set stores an extraction result.
func (c *TextCache) Set(docID string, strategy StrategyName, startPage, endPage int, result *Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode cached text: %w", err)
	}
	filePath := filepath.Join(c.path, c.key(docID, strategy, startPage, endPage))
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write to text cache: %w", err)
	}
	return nil
}
