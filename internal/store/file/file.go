// Package file stores the knowledge base as a single human-readable file.
package file

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"errkb/internal/domain"
	"errkb/internal/store"
)

// Ensure Storage implements store.Storage at compile time.
var _ store.Storage = (*Storage)(nil)

// Storage keeps the Store in one YAML or JSON file. Saves go to a temporary
// file in the same directory which is then renamed over the target, so
// readers see either the old or the new content, never a partial write.
type Storage struct {
	path  string
	codec store.Codec
}

// NewStorage creates a Storage for path; the codec is chosen by extension.
func NewStorage(path string) *Storage {
	return &Storage{path: path, codec: store.CodecFor(path)}
}

// Exists reports whether the store file is present.
func (s *Storage) Exists(ctx context.Context) (bool, error) {
	_, err := os.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Load reads and decodes the store file.
func (s *Storage) Load(ctx context.Context) (*domain.Store, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.Errorf(domain.ENOTFOUND, "store file %s does not exist", s.path)
		}
		return nil, err
	}
	return s.codec.Decode(data)
}

// Save encodes st and atomically replaces the store file.
func (s *Storage) Save(ctx context.Context, st *domain.Store) error {
	data, err := s.codec.Encode(st)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		// No-op after a successful rename.
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpName, s.path)
}
