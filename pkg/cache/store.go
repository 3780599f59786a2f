package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// entryExt is the filename extension of cache entries.
const entryExt = ".txc"

// Key derives the content-addressed cache key for a source blob.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Store is a directory of compressed cache entries keyed by content hash.
// Concurrent readers are safe; concurrent writers of the same key race
// harmlessly (last rename wins, both wrote identical content).
type Store struct {
	dir   string
	level int
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithCompressionLevel sets the zstd level used for new entries.
func WithCompressionLevel(level int) StoreOption {
	return func(s *Store) {
		s.level = level
	}
}

// NewStore opens (creating if needed) a cache directory.
func NewStore(dir string, opts ...StoreOption) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	s := &Store{dir: dir, level: DefaultCompressionLevel}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Path returns the on-disk location of an entry.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+entryExt)
}

// Has reports whether an entry exists.
func (s *Store) Has(key string) bool {
	_, err := os.Stat(s.Path(key))
	return err == nil
}

// Put stores data under key. The entry is written to a temporary file and
// renamed into place so readers never observe a partial entry.
func (s *Store) Put(key string, data []byte) error {
	blob, err := EncodeEntry(data, s.level)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, key+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp entry: %w", err)
	}

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close entry: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish entry: %w", err)
	}
	return nil
}

// Get retrieves the data stored under key. Missing entries return
// os.ErrNotExist (test with os.IsNotExist or errors.Is).
func (s *Store) Get(key string) ([]byte, error) {
	blob, err := os.ReadFile(s.Path(key))
	if err != nil {
		return nil, err
	}

	data, err := DecodeEntry(blob)
	if err != nil {
		return nil, fmt.Errorf("cache entry %s: %w", key, err)
	}
	return data, nil
}
