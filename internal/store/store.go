// Package store persists small JSON documents under string keys.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/peterbourgon/diskv/v3"

	"github.com/smokyabdulrahman/hijri-cal/internal/log"
)

// ErrNotFound is returned by Get for a key that was never stored or was removed.
var ErrNotFound = errors.New("key not found")

var validKey = regexp.MustCompile(`^[a-z0-9_]+$`)

// Store is a directory of <key>.json files.
type Store struct {
	d   *diskv.Diskv
	dir string
}

// Open creates dir if needed and returns a Store rooted there.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("store directory is empty")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("cannot create data directory %s: %w", dir, err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: func(key string) *diskv.PathKey { return &diskv.PathKey{FileName: key + ".json"} },
			InverseTransform: func(pk *diskv.PathKey) string {
				return pk.FileName[:len(pk.FileName)-len(".json")]
			},
			FilePerm: 0o600,
			PathPerm: 0o700,
		}),
		dir: dir,
	}, nil
}

// Dir returns the store root.
func (s *Store) Dir() string { return s.dir }

// Put stores v as JSON under key.
func (s *Store) Put(key string, v any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	log.Debug("store put", "key", key, "bytes", len(data))
	return nil
}

// Get decodes the value under key into v.
func (s *Store) Get(key string, v any) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return ErrNotFound
	}
	data, err := s.d.Read(key)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if !s.d.Has(key) {
		return nil
	}
	if err := s.d.Erase(key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Keys lists the stored keys in no particular order.
func (s *Store) Keys() []string {
	var keys []string
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid store key %q", key)
	}
	return nil
}
