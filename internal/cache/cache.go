// Package cache persists parsed completion payloads per optimizer binary.
//
// Help text is expensive to produce and deterministic per binary
// version, so entries are keyed by binary path and validated cheaply by
// mtime, then by a checksum of the help text itself. The cache is best
// effort: a corrupt or unwritable cache degrades to re-parsing, never
// to a failure of the completion widget.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/oowekyala/mlir-zsh-plugin/internal/zspec"
)

// MaxEntryAge is how long an unused entry survives before pruning
const MaxEntryAge = 30 * 24 * time.Hour

// Entry is the cached parse result for one optimizer binary
type Entry struct {
	Binary       string               `json:"binary"`
	MTime        int64                `json:"mtime"`
	Checksum     string               `json:"checksum"`
	LastAccessed time.Time            `json:"last_accessed"`
	Payload      *zspec.Payload       `json:"payload"`
	Candidates   *zspec.CompletionSet `json:"candidates,omitempty"`
}

// Cache manages the persistent payload cache
type Cache struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*Entry
}

// DefaultPath returns the cache file location, honoring XDG_CACHE_HOME
func DefaultPath() string {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "mlircomp", "cache.json")
}

// New creates a cache instance backed by the given file. A missing or
// corrupt file starts an empty cache.
func New(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]*Entry),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	if err := c.load(); err != nil {
		// Unreadable cache content is treated as empty
		c.entries = make(map[string]*Entry)
	}

	return c, nil
}

// Path returns the backing file path
func (c *Cache) Path() string {
	return c.path
}

// Get retrieves the entry for a binary path. A hit refreshes the
// entry's idle timer so entries served from cache every day are not
// pruned as unused; the refresh is persisted by the next save.
func (c *Cache) Get(binary string) (*Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.entries[binary]
	if found {
		entry.LastAccessed = time.Now()
	}
	return entry, found
}

// Set stores an entry and persists the cache
func (c *Cache) Set(entry *Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry.LastAccessed = time.Now()
	c.entries[entry.Binary] = entry
	return c.persist()
}

// Delete removes the entry for a binary path
func (c *Cache) Delete(binary string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, binary)
	return c.persist()
}

// Clear removes the cache file entirely
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
	err := os.Remove(c.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Entries returns a snapshot of all cached entries
func (c *Cache) Entries() []*Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*Entry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry)
	}
	return out
}

// Hash computes the checksum used to detect help-text changes
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// MTimeOf returns the modification time of a binary in unix seconds,
// or zero when it cannot be determined.
func MTimeOf(binary string) int64 {
	info, err := os.Stat(binary)
	if err != nil {
		return 0
	}
	return info.ModTime().Unix()
}

// load reads cache from disk
func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}

	c.entries = entries
	return nil
}

// persist writes the cache atomically, pruning idle entries first.
// Callers hold the write lock.
func (c *Cache) persist() error {
	now := time.Now()
	for binary, entry := range c.entries {
		if now.Sub(entry.LastAccessed) > MaxEntryAge {
			delete(c.entries, binary)
		}
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}
