// Package cache provides a content-addressed disk implementation of the
// ResponseCache interface.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ersonp/fable-core/internal/domain/ports"
)

// entry is the on-disk shape of one cached response.
type entry struct {
	PromptHash string    `json:"prompt_hash"`
	Prompt     string    `json:"prompt"`
	Response   string    `json:"response"`
	Timestamp  time.Time `json:"timestamp"`
}

// DiskCache stores one JSON file per SHA-256 prompt digest under a root
// directory. The key is the content, so racing writers on one key write
// identical files and no locking is needed. Every I/O failure degrades to
// a miss or no-op; the pipeline stays correct with a broken cache.
type DiskCache struct {
	root   string
	logger *slog.Logger
}

// New creates a disk cache rooted at the given directory.
func New(root string) *DiskCache {
	return &DiskCache{
		root:   root,
		logger: slog.Default().With("component", "response_cache"),
	}
}

// hashPrompt returns the hex SHA-256 digest of the prompt text.
func hashPrompt(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

func (c *DiskCache) entryPath(prompt string) string {
	return filepath.Join(c.root, hashPrompt(prompt)+".json")
}

// Get returns the cached response for the prompt, if present and
// readable.
func (c *DiskCache) Get(prompt string) (string, bool) {
	path := c.entryPath(prompt)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("cache read failed", "path", path, "error", err)
		}
		return "", false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("cache entry corrupt", "path", path, "error", err)
		return "", false
	}
	return e.Response, true
}

// Set stores the response under the prompt's digest as one whole-file
// write.
func (c *DiskCache) Set(prompt, response string) error {
	if err := os.MkdirAll(c.root, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	e := entry{
		PromptHash: hashPrompt(prompt),
		Prompt:     prompt,
		Response:   response,
		Timestamp:  time.Now(),
	}
	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}
	path := c.entryPath(prompt)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Clear removes all entries and returns how many were removed.
func (c *DiskCache) Clear() (int, error) {
	files, err := c.entryFiles()
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, f := range files {
		if err := os.Remove(filepath.Join(c.root, f.Name())); err != nil {
			c.logger.Warn("cache remove failed", "name", f.Name(), "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Stats reports the entry count and total size on disk.
func (c *DiskCache) Stats() (ports.CacheStats, error) {
	files, err := c.entryFiles()
	if err != nil {
		return ports.CacheStats{}, err
	}
	stats := ports.CacheStats{Count: len(files)}
	for _, f := range files {
		info, err := f.Info()
		if err != nil {
			continue
		}
		stats.TotalSize += info.Size()
	}
	return stats, nil
}

func (c *DiskCache) entryFiles() ([]os.DirEntry, error) {
	all, err := os.ReadDir(c.root)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading cache dir: %w", err)
	}
	var files []os.DirEntry
	for _, f := range all {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		files = append(files, f)
	}
	return files, nil
}
