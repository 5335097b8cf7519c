package cache

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FileStorage keeps one JSON document per key under dir, sharded by the
// first two hex characters of the key to keep directories small:
//
//	<dir>/<key[:2]>/<key>.json
//
// The directory is created on first write, not on construction.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-backed Storage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Read implements Storage.
func (s *FileStorage) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Write implements Storage. The entry is written to a temporary file and
// renamed into place so readers never see a partial document.
func (s *FileStorage) Write(key string, data []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	tmpPath := path + ".tmp." + uuid.NewString()
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Clear implements Storage, removing every shard directory under dir.
// The root directory itself is kept.
func (s *FileStorage) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (s *FileStorage) path(key string) string {
	shard := key
	if len(key) >= 2 {
		shard = key[:2]
	}
	return filepath.Join(s.dir, shard, key+".json")
}
