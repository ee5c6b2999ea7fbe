package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/smokyabdulrahman/hijri-cal/internal/api"
	"github.com/smokyabdulrahman/hijri-cal/internal/log"
)

const keyPrefix = "calendar"

// Cache provides disk-backed caching for Hijri month conversions.
// Values are JSON compressed with zstd. Conversions for a past or future
// month never change for a given calendar method, so entries have no TTL.
type Cache struct {
	d   *diskv.Diskv
	dir string
}

// MonthEntry stores the API day records of one Gregorian month.
type MonthEntry struct {
	Method   string         `json:"method"`
	Year     int            `json:"year"`
	Month    int            `json:"month"`
	Days     []api.DateInfo `json:"days"`
	CachedAt time.Time      `json:"cached_at"`
}

// DefaultDir returns ~/.cache/hijri-cal.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".cache", "hijri-cal"), nil
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to DefaultDir.
func New(dir string) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: keyToPath,
			InverseTransform:  pathToKey,
			CacheSizeMax:      512 * 1024,
			Compression:       zstdCompression{},
		}),
		dir: dir,
	}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

// monthKey builds calendar-<method>-<year>-<month>, stored on disk as
// calendar/<method>/<year>/<month>.
func monthKey(method string, year int, month time.Month) string {
	if method == "" {
		method = "default"
	}
	return fmt.Sprintf("%s-%s-%04d-%02d", keyPrefix, sanitize(method), year, int(month))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || r == '/' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, s)
}

// LoadMonth reads the cached month for the given method.
// Returns nil if the entry is missing or unreadable.
func (c *Cache) LoadMonth(method string, year int, month time.Month) *MonthEntry {
	key := monthKey(method, year, month)

	data, err := c.d.Read(key)
	if err != nil {
		log.Debug("cache miss", "key", key)
		return nil
	}

	var entry MonthEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		log.Debug("cache entry corrupt", "key", key, "err", err)
		return nil
	}

	// Guard against a renamed or hand-edited file.
	if entry.Year != year || entry.Month != int(month) || len(entry.Days) == 0 {
		return nil
	}

	log.Debug("cache hit", "key", key)
	return &entry
}

// SaveMonth writes a month of day records to the cache.
func (c *Cache) SaveMonth(method string, year int, month time.Month, days []api.DateInfo) error {
	entry := MonthEntry{
		Method:   method,
		Year:     year,
		Month:    int(month),
		Days:     days,
		CachedAt: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := c.d.Write(monthKey(method, year, month), data); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	return nil
}

// Keys lists every cached key in no particular order.
func (c *Cache) Keys() []string {
	var keys []string
	for k := range c.d.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes every cached entry.
func (c *Cache) Clear() error {
	if err := c.d.EraseAll(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func keyToPath(key string) *diskv.PathKey {
	parts := strings.Split(key, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + ".json.zst",
	}
}

func pathToKey(pk *diskv.PathKey) string {
	name := strings.TrimSuffix(pk.FileName, ".json.zst")
	return strings.Join(append(append([]string{}, pk.Path...), name), "-")
}
